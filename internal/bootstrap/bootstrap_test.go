package bootstrap

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/mamadbah2/feedration/internal/config"
	"github.com/mamadbah2/feedration/internal/repository/memory"
	"github.com/mamadbah2/feedration/internal/repository/sqlite"
)

func TestLoadCatalog(t *testing.T) {
	c, err := LoadCatalog(config.CatalogConfig{})
	require.NoError(t, err)
	assert.NotEmpty(t, c.Feeds())

	path := filepath.Join(t.TempDir(), "catalog.yaml")
	require.NoError(t, os.WriteFile(path, []byte("feeds:\n  - id: barley\n    name: Local barley\n    group: energy\n    dry_matter_percent: 87\n    price_per_kg: 9\n"), 0o600))

	c, err = LoadCatalog(config.CatalogConfig{Path: path})
	require.NoError(t, err)
	f, ok := c.Feed("barley")
	require.True(t, ok)
	assert.Equal(t, "Local barley", f.Name)

	_, err = LoadCatalog(config.CatalogConfig{Path: filepath.Join(t.TempDir(), "missing.yaml")})
	assert.Error(t, err)
}

func TestOpenStore(t *testing.T) {
	ctx := context.Background()

	store, closeFn, err := OpenStore(ctx, &config.Config{Store: config.StoreConfig{Driver: config.StoreMemory}}, zap.NewNop())
	require.NoError(t, err)
	assert.IsType(t, &memory.Store{}, store)
	closeFn()

	cfg := &config.Config{Store: config.StoreConfig{Driver: config.StoreSQLite, SQLitePath: filepath.Join(t.TempDir(), "r.db")}}
	store, closeFn, err = OpenStore(ctx, cfg, zap.NewNop())
	require.NoError(t, err)
	assert.IsType(t, &sqlite.Store{}, store)
	closeFn()

	_, _, err = OpenStore(ctx, &config.Config{Store: config.StoreConfig{Driver: "csv"}}, zap.NewNop())
	assert.Error(t, err)
}

func TestNewAdvisorDisabledWithoutKey(t *testing.T) {
	adv, err := NewAdvisor(context.Background(), config.AIConfig{Provider: config.ProviderGemini}, zap.NewNop())
	require.NoError(t, err)
	assert.Nil(t, adv)

	adv, err = NewAdvisor(context.Background(), config.AIConfig{Provider: config.ProviderAnthropic, AnthropicKey: "k"}, zap.NewNop())
	require.NoError(t, err)
	assert.NotNil(t, adv)
}

func TestNewLedgerDisabled(t *testing.T) {
	ledger, err := NewLedger(context.Background(), &config.Config{}, zap.NewNop())
	require.NoError(t, err)
	assert.Nil(t, ledger)
}
