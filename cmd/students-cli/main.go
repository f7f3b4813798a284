// main is the entry point of the students-cli application.
//
// STARTUP SEQUENCE:
//  1. Load configuration (YAML file and/or environment)
//  2. Initialise the logger
//  3. Open (and set up) the SQLite database
//  4. Run the interactive menu on stdin/stdout until the user exits
//
// RUNNING THE TOOL:
//
//	go run ./cmd/students-cli
//
// or with an explicit config file:
//
//	go run ./cmd/students-cli --config=config/local.yaml
package main

import (
	"log/slog"
	"os"

	"github.com/aanand-mishra/students-cli/internal/cli"
	"github.com/aanand-mishra/students-cli/internal/config"
	"github.com/aanand-mishra/students-cli/internal/storage/sqlite"
)

func main() {
	// MustLoad panics/fatals if anything is wrong — if it returns, the
	// config is guaranteed valid.
	cfg := config.MustLoad()

	// Logs go to stderr so they never interleave with the menu, which
	// owns stdout.
	log := setupLogger(cfg.Env)

	log.Info("starting students-cli",
		slog.String("env", cfg.Env),
		slog.String("storage", cfg.StoragePath),
	)

	// sqlite.New opens the database file and creates the students table
	// if needed. The rest of the program only ever sees the
	// storage.Storage interface — swapping the backend later means
	// changing this one line.
	store, err := sqlite.New(cfg)
	if err != nil {
		log.Error("failed to initialise storage",
			slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer store.Close()

	app := cli.New(os.Stdin, os.Stdout, store, cfg.ExportPath, log)
	if err := app.Run(); err != nil {
		log.Error("menu loop failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

// setupLogger returns a *slog.Logger configured for the given
// environment: machine-readable JSON for prod/staging, human-readable
// text (with debug) for everything else.
func setupLogger(env string) *slog.Logger {
	switch env {
	case "prod":
		return slog.New(
			slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
				Level: slog.LevelInfo,
			}),
		)
	case "staging":
		return slog.New(
			slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
				Level: slog.LevelDebug,
			}),
		)
	default: // "dev" and anything unrecognised
		return slog.New(
			slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
				Level: slog.LevelDebug,
			}),
		)
	}
}
