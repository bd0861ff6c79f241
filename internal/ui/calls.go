package ui

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/anandpillai/mitra/internal/contacts"
	"github.com/anandpillai/mitra/internal/dateutil"
	"github.com/anandpillai/mitra/internal/recurrence"
)

func (a *App) callsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "calls",
		Short: "Manage scheduled calls",
	}

	cmd.AddCommand(a.callsListCmd())
	cmd.AddCommand(a.callsScheduleCmd())
	cmd.AddCommand(a.callsDeleteCmd())

	return cmd
}

func (a *App) callsListCmd() *cobra.Command {
	var contactFlag string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List scheduled calls",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.ensureRepo(); err != nil {
				return err
			}
			var calls []*contacts.Call
			var err error
			if contactFlag != "" {
				calls, err = a.repo.ListCallsForContact(cmd.Context(), contactFlag)
			} else {
				calls, err = a.repo.ListCalls(cmd.Context())
			}
			if err != nil {
				return fmt.Errorf("listing calls: %w", err)
			}
			if len(calls) == 0 {
				fmt.Println("No calls recorded.")
				return nil
			}
			for _, call := range calls {
				fmt.Printf("%s  %s  %d min  contact %s\n",
					call.ID, call.Start.In(a.zone).Format("2006-01-02 15:04"), call.DurationMinutes, call.ContactID)
				if call.Notes != "" {
					fmt.Println(formatMuted("    " + call.Notes))
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&contactFlag, "contact", "", "Only list calls for this contact ID")
	return cmd
}

func (a *App) callsScheduleCmd() *cobra.Command {
	var (
		dateFlag     string
		timeFlag     string
		durationFlag int
		notesFlag    string
	)

	cmd := &cobra.Command{
		Use:   "schedule <contact-id>",
		Short: "Schedule a call with a contact, committing a calendar event",
		Example: `  mitra calls schedule contact-id --date=2026-03-10 --time=18:00
  mitra calls schedule contact-id --time=18:00 --duration=45 --notes="catch up"`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			scheduler, err := a.callScheduler(ctx)
			if err != nil {
				return err
			}
			date, err := a.parseDate(dateFlag)
			if err != nil {
				return err
			}
			start, err := dateutil.At(date, timeFlag)
			if err != nil {
				return err
			}
			result := scheduler.ScheduleCall(ctx, args[0], start, durationFlag, notesFlag)
			printCallResult(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&dateFlag, "date", "", "Date (YYYY-MM-DD, defaults to today)")
	cmd.Flags().StringVar(&timeFlag, "time", "", "Start time (HH:MM)")
	cmd.Flags().IntVar(&durationFlag, "duration", 30, "Minutes")
	cmd.Flags().StringVar(&notesFlag, "notes", "", "Notes for the call")
	_ = cmd.MarkFlagRequired("time")
	return cmd
}

func (a *App) callsDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <call-id>",
		Short: "Delete a call and its calendar event",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			scheduler, err := a.callScheduler(ctx)
			if err != nil {
				return err
			}
			if err := scheduler.DeleteCall(ctx, args[0]); err != nil {
				return err
			}
			fmt.Println(formatSuccess("Call deleted."))
			return nil
		},
	}
}

func (a *App) autoCallsCmd() *cobra.Command {
	var (
		startFlag    string
		endFlag      string
		timeFlag     string
		durationFlag int
		notesFlag    string
	)

	cmd := &cobra.Command{
		Use:   "auto-calls",
		Short: "Project call cadences over a date range and commit the calls",
		Long: `Project each contact's call cadence over a date range and commit the
resulting calls to the calendar.

A contact with no call history gets its first call at the range start.
Contacts without a cadence are skipped.`,
		Example: `  mitra auto-calls --start=2026-03-01 --end=2026-03-31`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			scheduler, err := a.callScheduler(ctx)
			if err != nil {
				return err
			}
			dr, err := dateutil.NewDateRange(startFlag, endFlag, a.zone)
			if err != nil {
				return err
			}
			rangeStart, err := dateutil.At(dr.Start, timeFlag)
			if err != nil {
				return err
			}
			rangeEnd, err := dateutil.At(dr.End, timeFlag)
			if err != nil {
				return err
			}
			results, err := scheduler.Run(ctx, rangeStart, rangeEnd, durationFlag, notesFlag)
			if err != nil {
				return err
			}
			if len(results) == 0 {
				fmt.Println("No calls to schedule in that range.")
				return nil
			}
			for _, result := range results {
				printCallResult(result)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&startFlag, "start", "", "Range start (YYYY-MM-DD, defaults to today)")
	cmd.Flags().StringVar(&endFlag, "end", "", "Range end (YYYY-MM-DD, defaults to start)")
	cmd.Flags().StringVar(&timeFlag, "time", "18:00", "Call time (HH:MM)")
	cmd.Flags().IntVar(&durationFlag, "duration", 30, "Minutes per call")
	cmd.Flags().StringVar(&notesFlag, "notes", "", "Notes applied to every call")
	return cmd
}

func printCallResult(r recurrence.CallResult) {
	if r.Err != nil {
		fmt.Println(formatFail(r.Message()))
		return
	}
	fmt.Println(formatSuccess(r.Message()))
}
