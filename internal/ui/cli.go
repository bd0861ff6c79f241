// Package ui implements the mitra command line interface.
package ui

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/anandpillai/mitra/internal/calendar"
	"github.com/anandpillai/mitra/internal/config"
	"github.com/anandpillai/mitra/internal/contacts"
	"github.com/anandpillai/mitra/internal/db"
	"github.com/anandpillai/mitra/internal/integrations"
	"github.com/anandpillai/mitra/internal/placement"
	"github.com/anandpillai/mitra/internal/recurrence"
	"github.com/anandpillai/mitra/internal/schedule"
	"github.com/anandpillai/mitra/internal/todo"
)

var (
	// Version is set at build time
	Version = "dev"
	// Commit is set at build time
	Commit = "none"
)

// App holds the CLI application state. Collaborators are opened lazily so
// commands only pay for what they touch.
type App struct {
	config *config.Config
	zone   *time.Location
	root   *cobra.Command

	repo   contacts.Repository
	events calendar.EventSource
	store  *schedule.Store
	todos  *todo.List
}

// NewApp creates a new CLI application with the given config.
func NewApp(cfg *config.Config) *App {
	a := &App{config: cfg, zone: cfg.Location()}

	a.root = &cobra.Command{
		Use:   "mitra",
		Short: "A personal assistant for your schedule, calendar and contacts",
		Long: `Mitra is a personal assistant CLI.

It keeps per-day schedule files, places tasks into free calendar slots,
projects recurring calls with your contacts, and answers natural-language
requests through an LLM chat loop.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runChat(cmd.Context(), args)
		},
	}

	a.root.AddCommand(a.versionCmd())
	a.root.AddCommand(a.configCmd())
	a.root.AddCommand(a.chatCmd())
	a.root.AddCommand(a.scheduleCmd())
	a.root.AddCommand(a.slotsCmd())
	a.root.AddCommand(a.planCmd())
	a.root.AddCommand(a.planTodosCmd())
	a.root.AddCommand(a.todoCmd())
	a.root.AddCommand(a.contactsCmd())
	a.root.AddCommand(a.callsCmd())
	a.root.AddCommand(a.autoCallsCmd())

	return a
}

func (a *App) versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Run: func(_ *cobra.Command, _ []string) {
			fmt.Printf("mitra %s (commit: %s)\n", Version, Commit)
		},
	}
}

// Execute runs the CLI application.
func (a *App) Execute() error {
	return a.root.Execute()
}

// Close releases lazily opened resources.
func (a *App) Close() error {
	if a.repo != nil {
		return a.repo.Close()
	}
	return nil
}

func (a *App) ensureRepo() error {
	if a.repo != nil {
		return nil
	}
	repo, err := db.New(a.config.Storage.DBPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	a.repo = repo
	return nil
}

func (a *App) ensureEvents(ctx context.Context) error {
	if a.events != nil {
		return nil
	}
	switch a.config.Calendar.Provider {
	case "memory":
		a.events = calendar.NewMemory()
	default:
		events, err := calendar.NewGoogle(ctx, a.config.Calendar.CredentialsDir, a.config.Calendar.CalendarID, a.zone)
		if err != nil {
			return fmt.Errorf("connecting to calendar: %w", err)
		}
		a.events = events
	}
	return nil
}

func (a *App) ensureStore() error {
	if a.store != nil {
		return nil
	}
	store, err := schedule.NewStore(a.config.Schedule.Dir)
	if err != nil {
		return fmt.Errorf("opening schedule store: %w", err)
	}
	a.store = store
	return nil
}

func (a *App) ensureTodos() error {
	if a.todos != nil {
		return nil
	}
	todos, err := todo.NewList(a.config.Schedule.TodoFile)
	if err != nil {
		return fmt.Errorf("opening to-do list: %w", err)
	}
	a.todos = todos
	return nil
}

func (a *App) engine(ctx context.Context) (*placement.Engine, error) {
	if err := a.ensureEvents(ctx); err != nil {
		return nil, err
	}
	return placement.NewEngine(a.events), nil
}

func (a *App) callScheduler(ctx context.Context) (*recurrence.Scheduler, error) {
	if err := a.ensureRepo(); err != nil {
		return nil, err
	}
	if err := a.ensureEvents(ctx); err != nil {
		return nil, err
	}
	return recurrence.NewScheduler(a.repo, a.events, a.zone), nil
}

func (a *App) integrations() *integrations.Service {
	i := a.config.Integrations
	return integrations.NewService(i.WeatherAPIKey, i.MapsAPIKey, i.SMTPHost, i.SMTPPort, i.EmailUser, i.EmailPass)
}

func (a *App) defaultDuration() time.Duration {
	return minutes(a.config.Schedule.DefaultDuration)
}

func minutes(n int) time.Duration {
	return time.Duration(n) * time.Minute
}
