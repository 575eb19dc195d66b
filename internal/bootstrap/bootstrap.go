// Package bootstrap builds the components shared by the server and the CLI from configuration.
package bootstrap

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/mamadbah2/feedration/internal/catalog"
	"github.com/mamadbah2/feedration/internal/config"
	"github.com/mamadbah2/feedration/internal/repository"
	"github.com/mamadbah2/feedration/internal/repository/memory"
	"github.com/mamadbah2/feedration/internal/repository/mongodb"
	"github.com/mamadbah2/feedration/internal/repository/sheets"
	"github.com/mamadbah2/feedration/internal/repository/sqlite"
	"github.com/mamadbah2/feedration/internal/service/advisory"
	"github.com/mamadbah2/feedration/pkg/clients/anthropic"
	"github.com/mamadbah2/feedration/pkg/clients/gemini"
)

// LoadCatalog returns the built-in catalog, overlaid with CATALOG_PATH when set.
func LoadCatalog(cfg config.CatalogConfig) (*catalog.Catalog, error) {
	if cfg.Path == "" {
		return catalog.Default(), nil
	}
	c, err := catalog.LoadFile(cfg.Path)
	if err != nil {
		return nil, fmt.Errorf("load catalog overlay: %w", err)
	}
	return c, nil
}

// OpenStore opens the configured record store. The returned func releases it.
func OpenStore(ctx context.Context, cfg *config.Config, logger *zap.Logger) (repository.RecordStore, func(), error) {
	switch cfg.Store.Driver {
	case config.StoreMemory:
		return memory.NewStore(), func() {}, nil

	case config.StoreSQLite:
		store, err := sqlite.Open(ctx, cfg.Store.SQLitePath, logger.Named("repo.sqlite"))
		if err != nil {
			return nil, nil, err
		}
		return store, func() {
			if err := store.Close(); err != nil {
				logger.Error("failed to close sqlite store", zap.Error(err))
			}
		}, nil

	case config.StoreMongoDB:
		store, err := mongodb.NewMongoDBRepository(ctx, cfg.MongoDB.URI, cfg.MongoDB.DBName)
		if err != nil {
			return nil, nil, err
		}
		return store, func() {
			if err := store.Close(context.Background()); err != nil {
				logger.Error("failed to close mongodb connection", zap.Error(err))
			}
		}, nil
	}
	return nil, nil, fmt.Errorf("unsupported store driver %q", cfg.Store.Driver)
}

// NewAdvisor builds the advisory client for the configured provider, or returns
// nil when the provider has no credentials.
func NewAdvisor(ctx context.Context, cfg config.AIConfig, logger *zap.Logger) (*advisory.Advisor, error) {
	if !cfg.AdvisoryEnabled() {
		logger.Warn("advisory api key missing, advice, optimization and price refresh disabled",
			zap.String("provider", cfg.Provider))
		return nil, nil
	}

	var gen advisory.Generator
	switch cfg.Provider {
	case config.ProviderGemini:
		client, err := gemini.NewClient(ctx, gemini.Config{APIKey: cfg.GeminiKey, Model: cfg.GeminiModel})
		if err != nil {
			return nil, err
		}
		gen = advisory.NewGeminiGenerator(client)
	case config.ProviderAnthropic:
		gen = advisory.NewAnthropicGenerator(anthropic.NewClient(cfg.AnthropicKey))
	default:
		return nil, fmt.Errorf("unsupported ai provider %q", cfg.Provider)
	}

	logger.Info("advisory client enabled", zap.String("provider", cfg.Provider))
	return advisory.New(advisory.WithBreaker(gen, logger), logger), nil
}

// NewLedger returns the Google Sheets ledger, or nil when it is not configured.
func NewLedger(ctx context.Context, cfg *config.Config, logger *zap.Logger) (sheets.Ledger, error) {
	if !cfg.Sheets.LedgerEnabled() {
		return nil, nil
	}
	repo, err := sheets.NewGoogleSheetRepository(ctx, cfg.Sheets, cfg.Server.Location(), logger)
	if err != nil {
		return nil, err
	}
	return repo, nil
}
