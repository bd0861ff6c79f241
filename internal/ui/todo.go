package ui

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/anandpillai/mitra/internal/todo"
)

func (a *App) todoCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "todo",
		Short: "Manage the to-do list",
	}

	cmd.AddCommand(a.todoListCmd())
	cmd.AddCommand(a.todoAddCmd())
	cmd.AddCommand(a.todoDoneCmd())
	cmd.AddCommand(a.todoDeleteCmd())

	return cmd
}

func (a *App) todoListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all to-do items",
		RunE: func(_ *cobra.Command, _ []string) error {
			if err := a.ensureTodos(); err != nil {
				return err
			}
			items, err := a.todos.Items()
			if err != nil {
				return err
			}
			if len(items) == 0 {
				fmt.Println("No tasks in to-do list.")
				return nil
			}
			for i, item := range items {
				line := fmt.Sprintf("%d. %s", i+1, todo.FormatItem(item))
				if item.Done {
					fmt.Println(formatMuted(line))
				} else {
					fmt.Println(line)
				}
			}
			return nil
		},
	}
}

func (a *App) todoAddCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "add <text>",
		Short: "Add a pending item",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			if err := a.ensureTodos(); err != nil {
				return err
			}
			if err := a.todos.Add(args[0]); err != nil {
				return err
			}
			fmt.Println(formatSuccess("Added to to-do list: " + args[0]))
			return nil
		},
	}
}

func (a *App) todoDoneCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "done <text>",
		Short: "Mark pending items containing the text as done",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			if err := a.ensureTodos(); err != nil {
				return err
			}
			found, err := a.todos.MarkDone(args[0])
			if err != nil {
				return err
			}
			if !found {
				fmt.Println(formatWarn("Task not found."))
				return nil
			}
			fmt.Println(formatSuccess("Marked task as done."))
			return nil
		},
	}
}

func (a *App) todoDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <text>",
		Short: "Delete items containing the text",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			if err := a.ensureTodos(); err != nil {
				return err
			}
			deleted, err := a.todos.Delete(args[0])
			if err != nil {
				return err
			}
			if deleted == 0 {
				fmt.Println(formatWarn("Task not found."))
				return nil
			}
			fmt.Println(formatSuccess(fmt.Sprintf("Deleted %d matching task(s).", deleted)))
			return nil
		},
	}
}
