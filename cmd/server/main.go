// Package main implements the entry point for the memory-anki server,
// which manages spaced repetition flashcards and drives review and test
// study sessions over an HTTP API.
package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"

	"github.com/youbo0129ueno-star/memory-anki/internal/config"
	"github.com/youbo0129ueno-star/memory-anki/internal/platform/logger"
)

func main() {
	app, err := initializeApp()
	if err != nil {
		log.Fatalf("Failed to initialize application: %v", err)
	}

	if err := app.startHTTPServer(context.Background(), app.setupRouter()); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}

// initializeApp loads configuration, sets up logging and storage, and wires
// the application dependencies. Returns the assembled application or any
// initialization error.
func initializeApp() (*application, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	appLogger, err := logger.Setup(cfg.Server)
	if err != nil {
		return nil, fmt.Errorf("failed to set up logger: %w", err)
	}

	slog.Info("Server configuration loaded",
		"port", cfg.Server.Port,
		"log_level", cfg.Server.LogLevel,
		"storage_driver", cfg.Storage.Driver)

	app, err := newApplication(cfg, appLogger)
	if err != nil {
		return nil, fmt.Errorf("failed to assemble application: %w", err)
	}

	return app, nil
}
