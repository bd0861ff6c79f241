package ui

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/anandpillai/mitra/internal/dateutil"
	"github.com/anandpillai/mitra/internal/placement"
	"github.com/anandpillai/mitra/internal/slot"
)

func (a *App) slotsCmd() *cobra.Command {
	var (
		dateFlag     string
		durationFlag int
	)

	cmd := &cobra.Command{
		Use:   "slots",
		Short: "List free calendar slots on a date",
		Example: `  mitra slots --duration=90
  mitra slots --date=2026-03-10 --duration=30`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			if err := a.ensureEvents(ctx); err != nil {
				return err
			}
			date, err := a.parseDate(dateFlag)
			if err != nil {
				return err
			}
			duration := a.defaultDuration()
			if durationFlag > 0 {
				duration = minutes(durationFlag)
			}

			start, end := dateutil.DayWindow(date)
			events, err := a.events.ListEvents(ctx, start, end)
			if err != nil {
				return fmt.Errorf("listing events: %w", err)
			}
			busy := make([]slot.Interval, 0, len(events))
			for _, ev := range events {
				busy = append(busy, slot.Interval{Start: ev.Start, End: ev.End})
			}

			free := slot.Find(start, end, busy, duration)
			if len(free) == 0 {
				fmt.Printf("No free slots of at least %d minutes on %s.\n",
					int(duration.Minutes()), date.Format("2006-01-02"))
				return nil
			}
			fmt.Println(formatHeader(fmt.Sprintf("Free slots on %s for %d minutes:",
				date.Format("2006-01-02"), int(duration.Minutes()))))
			for _, iv := range free {
				fmt.Printf("  %s to %s\n", iv.Start.In(a.zone).Format("15:04"), iv.End.In(a.zone).Format("15:04"))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&dateFlag, "date", "", "Date (YYYY-MM-DD, defaults to today)")
	cmd.Flags().IntVar(&durationFlag, "duration", 0, "Minimum slot length in minutes (defaults to configured duration)")
	return cmd
}

func (a *App) planCmd() *cobra.Command {
	var (
		dateFlag     string
		durationFlag int
		earliestFlag string
		latestFlag   string
	)

	cmd := &cobra.Command{
		Use:   "plan <description>",
		Short: "Place a task into the earliest free calendar slot",
		Example: `  mitra plan "Write report" --duration=90
  mitra plan "Call bank" --date=2026-03-10 --earliest=10:00 --latest=17:00`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			engine, err := a.engine(ctx)
			if err != nil {
				return err
			}
			date, err := a.parseDate(dateFlag)
			if err != nil {
				return err
			}
			duration := a.defaultDuration()
			if durationFlag > 0 {
				duration = minutes(durationFlag)
			}

			result := engine.PlaceTask(ctx, args[0], duration, date, earliestFlag, latestFlag)
			printPlacement(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&dateFlag, "date", "", "Date (YYYY-MM-DD, defaults to today)")
	cmd.Flags().IntVar(&durationFlag, "duration", 0, "Minutes needed (defaults to configured duration)")
	cmd.Flags().StringVar(&earliestFlag, "earliest", "", "Earliest start time (HH:MM)")
	cmd.Flags().StringVar(&latestFlag, "latest", "", "Latest end time (HH:MM)")
	return cmd
}

func (a *App) planTodosCmd() *cobra.Command {
	var (
		dateFlag     string
		durationFlag int
	)

	cmd := &cobra.Command{
		Use:   "plan-todos",
		Short: "Place every pending to-do item into free calendar slots",
		Long: `Place every pending to-do item into free calendar slots on a date.

Items are placed in list order. An item that does not fit is reported and
skipped; the remaining items are still attempted.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			engine, err := a.engine(ctx)
			if err != nil {
				return err
			}
			if err := a.ensureTodos(); err != nil {
				return err
			}
			date, err := a.parseDate(dateFlag)
			if err != nil {
				return err
			}
			duration := a.defaultDuration()
			if durationFlag > 0 {
				duration = minutes(durationFlag)
			}

			results, err := engine.PlacePendingTasks(ctx, a.todos, date, duration)
			if err != nil {
				return err
			}
			if len(results) == 0 {
				fmt.Println("No pending tasks to schedule.")
				return nil
			}
			for _, result := range results {
				printPlacement(result)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&dateFlag, "date", "", "Date (YYYY-MM-DD, defaults to today)")
	cmd.Flags().IntVar(&durationFlag, "duration", 0, "Minutes per task (defaults to configured duration)")
	return cmd
}

func printPlacement(r placement.Result) {
	switch r.Outcome {
	case placement.OutcomeScheduled:
		fmt.Println(formatSuccess(r.Message()))
	case placement.OutcomeNoSlot:
		fmt.Println(formatWarn(r.Message()))
	default:
		fmt.Println(formatFail(r.Message()))
	}
}
