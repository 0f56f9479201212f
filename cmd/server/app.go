package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/rzaytsev/vocab-api/internal/catalog"
	"github.com/rzaytsev/vocab-api/internal/config"
	"github.com/rzaytsev/vocab-api/internal/domain/srs"
	"github.com/rzaytsev/vocab-api/internal/platform/logger"
	"github.com/rzaytsev/vocab-api/internal/platform/sqlite"
	"github.com/rzaytsev/vocab-api/internal/service"
	"github.com/rzaytsev/vocab-api/internal/service/review"
	"github.com/rzaytsev/vocab-api/internal/store"
)

// application holds the wired dependency graph. Everything hangs off the
// config; construction order is config, logger, store, catalog, services.
type application struct {
	config      *config.Config
	logger      *slog.Logger
	kv          store.KV
	catalog     *catalog.Catalog
	learning    *service.LearningService
	preferences *service.PreferencesService
	engine      *review.Engine
}

// newApplication builds the full dependency graph from a loaded config.
func newApplication(ctx context.Context, cfg *config.Config) (*application, error) {
	log := logger.Setup(cfg.Server.LogLevel)

	kv, err := sqlite.Open(cfg.Storage.Path, log)
	if err != nil {
		return nil, fmt.Errorf("failed to open storage at %q: %w", cfg.Storage.Path, err)
	}

	cat, err := catalog.Load(cfg.Catalog.Path, log)
	if err != nil {
		closeErr := kv.Close()
		if closeErr != nil {
			log.Warn("failed to close storage during startup abort",
				slog.String("error", closeErr.Error()))
		}
		return nil, fmt.Errorf("failed to load word catalog: %w", err)
	}

	srsService := srs.NewDefaultService()

	learning, err := service.NewLearningService(ctx, kv, cat, srsService, log)
	if err != nil {
		closeErr := kv.Close()
		if closeErr != nil {
			log.Warn("failed to close storage during startup abort",
				slog.String("error", closeErr.Error()))
		}
		return nil, fmt.Errorf("failed to initialize learning service: %w", err)
	}

	return &application{
		config:      cfg,
		logger:      log,
		kv:          kv,
		catalog:     cat,
		learning:    learning,
		preferences: service.NewPreferencesService(kv, log),
		engine: review.NewEngine(learning, cat, srsService, log,
			review.WithSessionCap(cfg.Review.SessionCap)),
	}, nil
}

// cleanup releases held resources.
func (app *application) cleanup() {
	if err := app.kv.Close(); err != nil {
		app.logger.Warn("failed to close storage", slog.String("error", err.Error()))
	}
}
