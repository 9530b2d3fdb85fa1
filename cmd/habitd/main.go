package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"habitd/internal/service"
	"habitd/internal/storage"
	"habitd/internal/update"
)

func main() {
	cfg := update.RuntimeConfigFromEnv(update.DefaultRuntimeConfig())

	db, err := storage.OpenSQLite(cfg.DBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "habitd failed: %v\n", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := storage.MigrateUp(db.DB()); err != nil {
		fmt.Fprintf(os.Stderr, "habitd failed: %v\n", err)
		os.Exit(1)
	}

	svc := service.New(db)
	program := tea.NewProgram(update.NewModel(svc, cfg))
	if _, err := program.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "habitd failed: %v\n", err)
		os.Exit(1)
	}
}
