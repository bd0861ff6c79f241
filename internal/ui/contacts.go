package ui

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/anandpillai/mitra/internal/contacts"
)

func (a *App) contactsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "contacts",
		Short: "Manage contacts",
	}

	cmd.AddCommand(a.contactsAddCmd())
	cmd.AddCommand(a.contactsListCmd())
	cmd.AddCommand(a.contactsFindCmd())
	cmd.AddCommand(a.contactsUpdateCmd())
	cmd.AddCommand(a.contactsDeleteCmd())

	return cmd
}

func (a *App) contactsAddCmd() *cobra.Command {
	var (
		emailFlag string
		phoneFlag string
		notesFlag string
		freqFlag  int
	)

	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Add a contact",
		Example: `  mitra contacts add "Asha" --email=asha@example.com
  mitra contacts add "Ravi" --frequency=7`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.ensureRepo(); err != nil {
				return err
			}
			contact, err := contacts.New(args[0], emailFlag, phoneFlag, notesFlag, freqFlag)
			if err != nil {
				return err
			}
			if err := a.repo.CreateContact(cmd.Context(), contact); err != nil {
				return fmt.Errorf("creating contact: %w", err)
			}
			fmt.Println(formatSuccess(fmt.Sprintf("Added contact %s (ID: %s).", contact.Name, contact.ID)))
			return nil
		},
	}

	cmd.Flags().StringVar(&emailFlag, "email", "", "Email address")
	cmd.Flags().StringVar(&phoneFlag, "phone", "", "Phone number")
	cmd.Flags().StringVar(&notesFlag, "notes", "", "Free-form notes")
	cmd.Flags().IntVar(&freqFlag, "frequency", 0, "Days between calls (0 disables the cadence)")
	return cmd
}

func (a *App) contactsListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all contacts",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.ensureRepo(); err != nil {
				return err
			}
			all, err := a.repo.ListContacts(cmd.Context())
			if err != nil {
				return fmt.Errorf("listing contacts: %w", err)
			}
			printContacts(all, "No contacts found.")
			return nil
		},
	}
}

func (a *App) contactsFindCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "find <query>",
		Short: "Find contacts by name, email or phone",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.ensureRepo(); err != nil {
				return err
			}
			matches, err := a.repo.SearchContacts(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("searching contacts: %w", err)
			}
			printContacts(matches, fmt.Sprintf("No contacts matching %q.", args[0]))
			return nil
		},
	}
}

func (a *App) contactsUpdateCmd() *cobra.Command {
	var (
		nameFlag  string
		emailFlag string
		phoneFlag string
		notesFlag string
		freqFlag  int
	)

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Update a contact's fields",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.ensureRepo(); err != nil {
				return err
			}
			contact, err := a.repo.GetContact(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			flags := cmd.Flags()
			if flags.Changed("name") {
				contact.Name = nameFlag
			}
			if flags.Changed("email") {
				contact.Email = emailFlag
			}
			if flags.Changed("phone") {
				contact.Phone = phoneFlag
			}
			if flags.Changed("notes") {
				contact.Notes = notesFlag
			}
			if flags.Changed("frequency") {
				contact.FrequencyDays = freqFlag
			}
			if err := a.repo.UpdateContact(cmd.Context(), contact); err != nil {
				return fmt.Errorf("updating contact: %w", err)
			}
			fmt.Println(formatSuccess("Contact updated."))
			return nil
		},
	}

	cmd.Flags().StringVar(&nameFlag, "name", "", "Contact name")
	cmd.Flags().StringVar(&emailFlag, "email", "", "Email address")
	cmd.Flags().StringVar(&phoneFlag, "phone", "", "Phone number")
	cmd.Flags().StringVar(&notesFlag, "notes", "", "Free-form notes")
	cmd.Flags().IntVar(&freqFlag, "frequency", 0, "Days between calls (0 disables the cadence)")
	return cmd
}

func (a *App) contactsDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a contact (recorded calls are kept)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.ensureRepo(); err != nil {
				return err
			}
			if err := a.repo.DeleteContact(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Println(formatSuccess("Contact deleted."))
			return nil
		},
	}
}

func printContacts(list []*contacts.Contact, empty string) {
	if len(list) == 0 {
		fmt.Println(empty)
		return
	}
	for _, c := range list {
		line := fmt.Sprintf("%s  %s", c.ID, c.Name)
		if c.Email != "" {
			line += "  " + c.Email
		}
		if c.Phone != "" {
			line += "  " + c.Phone
		}
		fmt.Println(line)
		if c.HasCadence() {
			fmt.Println(formatMuted(fmt.Sprintf("    call every %d days", c.FrequencyDays)))
		}
		if c.Notes != "" {
			fmt.Println(formatMuted("    " + c.Notes))
		}
	}
}
