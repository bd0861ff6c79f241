package ui

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/anandpillai/mitra/internal/config"
)

func (a *App) configCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "View or edit configuration",
		Long: `Interactive configuration management.

If no config file exists, creates one with default values.
Otherwise, displays current config and allows editing.`,
		RunE: func(_ *cobra.Command, _ []string) error {
			return runConfigInteractive()
		},
	}
}

func runConfigInteractive() error {
	configPath := config.DefaultConfigPath()
	fmt.Printf("Config file: %s\n\n", configPath)

	cfg, err := config.LoadFrom(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	_, fileErr := os.Stat(configPath)
	if os.IsNotExist(fileErr) {
		fmt.Println("No config file found. Creating with default values...")
		if err := cfg.Save(); err != nil {
			return fmt.Errorf("saving config: %w", err)
		}
		fmt.Printf("Created %s\n\n", configPath)
	}

	printConfig(cfg)

	if !promptYesNo("\nWould you like to edit the configuration?") {
		return nil
	}

	reader := bufio.NewReader(os.Stdin)

	cfg.Timezone = promptValue(reader, "Timezone", cfg.Timezone)
	cfg.Schedule.Dir = promptValue(reader, "Schedule directory", cfg.Schedule.Dir)
	cfg.Schedule.TodoFile = promptValue(reader, "To-do file", cfg.Schedule.TodoFile)
	cfg.Schedule.DefaultDuration = promptInt(reader, "Default task duration (minutes)", cfg.Schedule.DefaultDuration)
	cfg.Calendar.Provider = promptValue(reader, "Calendar provider (google/memory)", cfg.Calendar.Provider)
	cfg.Calendar.CalendarID = promptValue(reader, "Calendar ID", cfg.Calendar.CalendarID)
	cfg.LLM.Provider = promptValue(reader, "LLM provider (openai/ollama)", cfg.LLM.Provider)
	cfg.LLM.Model = promptValue(reader, "LLM model", cfg.LLM.Model)
	cfg.LLM.BaseURL = promptValue(reader, "LLM base URL (empty for default)", cfg.LLM.BaseURL)

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	if err := cfg.Save(); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}

	fmt.Println(formatSuccess("\nConfiguration saved."))
	return nil
}

func printConfig(cfg *config.Config) {
	fmt.Println(formatHeader("Current configuration:"))
	fmt.Printf("  Timezone:          %s\n", cfg.Timezone)
	fmt.Printf("  Schedule dir:      %s\n", cfg.Schedule.Dir)
	fmt.Printf("  To-do file:        %s\n", cfg.Schedule.TodoFile)
	fmt.Printf("  History dir:       %s\n", cfg.Schedule.HistoryDir)
	fmt.Printf("  Default duration:  %d minutes\n", cfg.Schedule.DefaultDuration)
	fmt.Printf("  Calendar provider: %s\n", cfg.Calendar.Provider)
	fmt.Printf("  Calendar ID:       %s\n", cfg.Calendar.CalendarID)
	fmt.Printf("  Credentials dir:   %s\n", cfg.Calendar.CredentialsDir)
	fmt.Printf("  LLM provider:      %s\n", cfg.LLM.Provider)
	fmt.Printf("  LLM model:         %s\n", cfg.LLM.Model)
	if cfg.LLM.BaseURL != "" {
		fmt.Printf("  LLM base URL:      %s\n", cfg.LLM.BaseURL)
	}
	fmt.Printf("  Database:          %s\n", cfg.Storage.DBPath)
}

func promptYesNo(question string) bool {
	fmt.Printf("%s [y/N]: ", question)
	reader := bufio.NewReader(os.Stdin)
	answer, err := reader.ReadString('\n')
	if err != nil {
		return false
	}
	answer = strings.ToLower(strings.TrimSpace(answer))
	return answer == "y" || answer == "yes"
}

func promptValue(reader *bufio.Reader, label, current string) string {
	fmt.Printf("%s [%s]: ", label, current)
	answer, err := reader.ReadString('\n')
	if err != nil {
		return current
	}
	answer = strings.TrimSpace(answer)
	if answer == "" {
		return current
	}
	return answer
}

func promptInt(reader *bufio.Reader, label string, current int) int {
	fmt.Printf("%s [%d]: ", label, current)
	answer, err := reader.ReadString('\n')
	if err != nil {
		return current
	}
	answer = strings.TrimSpace(answer)
	if answer == "" {
		return current
	}
	var value int
	if _, err := fmt.Sscanf(answer, "%d", &value); err != nil || value <= 0 {
		fmt.Println(formatWarn("Keeping previous value."))
		return current
	}
	return value
}
