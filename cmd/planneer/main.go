package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/RodolfoSilva/planneer-sub000/internal/cli"
	"github.com/RodolfoSilva/planneer-sub000/internal/db"
	"github.com/RodolfoSilva/planneer-sub000/internal/repository"
	"github.com/RodolfoSilva/planneer-sub000/internal/service"
	"github.com/RodolfoSilva/planneer-sub000/internal/storage"
	"github.com/mattn/go-isatty"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Determine DB path: env var or default ~/.planneer/planneer.db
	dbPath := os.Getenv("PLANNEER_DB")
	if dbPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("finding home directory: %w", err)
		}
		dbPath = filepath.Join(home, ".planneer", "planneer.db")
	}

	exportDir := os.Getenv("PLANNEER_EXPORT_DIR")
	if exportDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("finding home directory: %w", err)
		}
		exportDir = filepath.Join(home, ".planneer")
	}

	database, err := db.OpenDB(dbPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	// Use-case telemetry goes to stderr only when it is not a terminal
	// (piped into a log collector); interactive runs stay quiet.
	var logSink io.Writer
	if !isatty.IsTerminal(os.Stderr.Fd()) && !isatty.IsCygwinTerminal(os.Stderr.Fd()) {
		logSink = os.Stderr
	}
	observer := service.NewLogUseCaseObserver(logSink)

	scheduleRepo := repository.NewSQLiteScheduleRepo(database)
	store := storage.NewFSStore(exportDir)

	app := &cli.App{
		Ingest:    service.NewIngestService(observer),
		Export:    service.NewExportService(scheduleRepo, store, observer),
		Generate:  service.NewGenerateService(scheduleRepo, observer),
		Schedules: scheduleRepo,
	}

	rootCmd := cli.NewRootCmd(app)
	return rootCmd.Execute()
}
