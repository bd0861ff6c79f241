package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/anandpillai/mitra/internal/config"
	"github.com/anandpillai/mitra/internal/ui"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// A .env in the working directory supplies API keys during development.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	app := ui.NewApp(cfg)
	defer func() { _ = app.Close() }()
	return app.Execute()
}
