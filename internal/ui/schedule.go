package ui

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/anandpillai/mitra/internal/dateutil"
	"github.com/anandpillai/mitra/internal/schedule"
)

func (a *App) parseDate(s string) (time.Time, error) {
	if s == "" {
		return dateutil.TruncateToDay(time.Now().In(a.zone)), nil
	}
	return dateutil.ParseDate(s, a.zone)
}

func (a *App) scheduleCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "schedule",
		Short: "Manage per-day schedule files",
	}

	cmd.AddCommand(a.scheduleShowCmd())
	cmd.AddCommand(a.scheduleAddCmd())
	cmd.AddCommand(a.scheduleDoneCmd())
	cmd.AddCommand(a.scheduleSummaryCmd())
	cmd.AddCommand(a.scheduleNextCmd())
	cmd.AddCommand(a.scheduleDeleteCmd())

	return cmd
}

func (a *App) scheduleShowCmd() *cobra.Command {
	var dateFlag string

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show a day's schedule, creating the default template if missing",
		Example: `  mitra schedule show
  mitra schedule show --date=2026-03-10`,
		RunE: func(_ *cobra.Command, _ []string) error {
			if err := a.ensureStore(); err != nil {
				return err
			}
			date, err := a.parseDate(dateFlag)
			if err != nil {
				return err
			}
			content, err := a.store.ReadFile(date)
			if err != nil {
				return err
			}
			fmt.Println(formatHeader("Schedule for " + date.Format("2006-01-02")))
			fmt.Print(content)
			return nil
		},
	}

	cmd.Flags().StringVar(&dateFlag, "date", "", "Date (YYYY-MM-DD, defaults to today)")
	return cmd
}

func (a *App) scheduleAddCmd() *cobra.Command {
	var (
		dateFlag  string
		startFlag string
		endFlag   string
	)

	cmd := &cobra.Command{
		Use:   "add <description>",
		Short: "Append a task block to a day's schedule",
		Example: `  mitra schedule add "Review notes" --start=16:00 --end=17:00
  mitra schedule add "Standup" --start=09:00 --end=09:15 --date=2026-03-10`,
		Args: cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			if err := a.ensureStore(); err != nil {
				return err
			}
			date, err := a.parseDate(dateFlag)
			if err != nil {
				return err
			}
			block := schedule.TimeBlock{Start: startFlag, End: endFlag, Description: args[0]}
			if err := a.store.Append(date, block); err != nil {
				if errors.Is(err, schedule.ErrBlockOverlap) {
					fmt.Println(formatWarn("That block overlaps an existing one."))
					return nil
				}
				return err
			}
			fmt.Println(formatSuccess(fmt.Sprintf("Added %q from %s to %s on %s.",
				args[0], startFlag, endFlag, date.Format("2006-01-02"))))
			return nil
		},
	}

	cmd.Flags().StringVar(&dateFlag, "date", "", "Date (YYYY-MM-DD, defaults to today)")
	cmd.Flags().StringVar(&startFlag, "start", "", "Start time (HH:MM)")
	cmd.Flags().StringVar(&endFlag, "end", "", "End time (HH:MM)")
	_ = cmd.MarkFlagRequired("start")
	_ = cmd.MarkFlagRequired("end")
	return cmd
}

func (a *App) scheduleDoneCmd() *cobra.Command {
	var dateFlag string

	cmd := &cobra.Command{
		Use:   "done <text>",
		Short: "Mark the first pending task containing the text as done",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			if err := a.ensureStore(); err != nil {
				return err
			}
			date, err := a.parseDate(dateFlag)
			if err != nil {
				return err
			}
			found, err := a.store.MarkDone(date, args[0])
			if err != nil {
				return err
			}
			if !found {
				fmt.Println(formatWarn(fmt.Sprintf("No pending task matching %q.", args[0])))
				return nil
			}
			fmt.Println(formatSuccess("Marked task as done."))
			return nil
		},
	}

	cmd.Flags().StringVar(&dateFlag, "date", "", "Date (YYYY-MM-DD, defaults to today)")
	return cmd
}

func (a *App) scheduleSummaryCmd() *cobra.Command {
	var dateFlag string

	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Show how many of the day's tasks are done",
		RunE: func(_ *cobra.Command, _ []string) error {
			if err := a.ensureStore(); err != nil {
				return err
			}
			date, err := a.parseDate(dateFlag)
			if err != nil {
				return err
			}
			done, total, err := a.store.Summary(date)
			if err != nil {
				return err
			}
			fmt.Printf("%d of %d tasks done on %s.\n", done, total, date.Format("2006-01-02"))
			return nil
		},
	}

	cmd.Flags().StringVar(&dateFlag, "date", "", "Date (YYYY-MM-DD, defaults to today)")
	return cmd
}

func (a *App) scheduleNextCmd() *cobra.Command {
	var dateFlag string

	cmd := &cobra.Command{
		Use:   "next",
		Short: "Suggest the next pending task",
		RunE: func(_ *cobra.Command, _ []string) error {
			if err := a.ensureStore(); err != nil {
				return err
			}
			date, err := a.parseDate(dateFlag)
			if err != nil {
				return err
			}
			block, ok, err := a.store.NextPending(date)
			if err != nil {
				return err
			}
			if !ok {
				fmt.Println(formatMuted("All tasks are done. Nothing pending."))
				return nil
			}
			fmt.Printf("Next up: %s (%s - %s)\n", block.Description, block.Start, block.End)
			return nil
		},
	}

	cmd.Flags().StringVar(&dateFlag, "date", "", "Date (YYYY-MM-DD, defaults to today)")
	return cmd
}

func (a *App) scheduleDeleteCmd() *cobra.Command {
	var dateFlag string

	cmd := &cobra.Command{
		Use:   "delete",
		Short: "Delete a day's schedule file",
		RunE: func(_ *cobra.Command, _ []string) error {
			if err := a.ensureStore(); err != nil {
				return err
			}
			date, err := a.parseDate(dateFlag)
			if err != nil {
				return err
			}
			removed, err := a.store.Delete(date)
			if err != nil {
				return err
			}
			if !removed {
				fmt.Println(formatWarn("No schedule found for " + date.Format("2006-01-02") + "."))
				return nil
			}
			fmt.Println(formatSuccess("Schedule for " + date.Format("2006-01-02") + " deleted."))
			return nil
		},
	}

	cmd.Flags().StringVar(&dateFlag, "date", "", "Date (YYYY-MM-DD, defaults to today)")
	return cmd
}
