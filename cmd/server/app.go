package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/youbo0129ueno-star/memory-anki/internal/config"
	"github.com/youbo0129ueno-star/memory-anki/internal/domain/srs"
	"github.com/youbo0129ueno-star/memory-anki/internal/platform/jsonfile"
	"github.com/youbo0129ueno-star/memory-anki/internal/platform/postgres"
	"github.com/youbo0129ueno-star/memory-anki/internal/service"
	"github.com/youbo0129ueno-star/memory-anki/internal/store"
)

// application holds the long-lived dependencies shared across the server.
type application struct {
	config *config.Config
	logger *slog.Logger

	// db is nil when the file storage driver is active.
	db *sql.DB

	cardStore store.Store
	svc       *service.Service
}

// newApplication selects the storage backend from configuration, loads the
// card collection, and builds the service layer on top of it.
func newApplication(cfg *config.Config, logger *slog.Logger) (*application, error) {
	app := &application{
		config: cfg,
		logger: logger,
	}

	switch cfg.Storage.Driver {
	case "file":
		app.cardStore = jsonfile.New(cfg.Storage.Path, logger)
		logger.Info("Using file storage", "path", cfg.Storage.Path)
	case "postgres":
		db, err := setupAppDatabase(cfg, logger)
		if err != nil {
			return nil, err
		}
		if err := postgres.Migrate(db); err != nil {
			closeDatabase(db, logger)
			return nil, fmt.Errorf("failed to run migrations: %w", err)
		}
		app.db = db
		app.cardStore = postgres.NewStore(db, logger)
	default:
		return nil, fmt.Errorf("unsupported storage driver: %q", cfg.Storage.Driver)
	}

	svc, err := service.New(context.Background(), app.cardStore, srs.NewService(), nil, logger)
	if err != nil {
		app.cleanup()
		return nil, fmt.Errorf("failed to load card collection: %w", err)
	}
	app.svc = svc

	return app, nil
}

// cleanup releases resources held by the application.
func (app *application) cleanup() {
	if app.db != nil {
		closeDatabase(app.db, app.logger)
		app.db = nil
	}
}
