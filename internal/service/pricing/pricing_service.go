package pricing

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/mamadbah2/feedration/internal/catalog"
	"github.com/mamadbah2/feedration/internal/domain/models"
)

// ErrDisabled is returned when no price source is configured.
var ErrDisabled = errors.New("market price refresh is disabled")

// PriceSource returns current per-kg prices keyed by feed id.
type PriceSource interface {
	MarketPrices(ctx context.Context, feeds []models.Feed) (map[string]float64, error)
}

// Service refreshes catalog prices.
type Service struct {
	holder   *catalog.Holder
	source   PriceSource
	location *time.Location
	now      func() time.Time
	logger   *zap.Logger
}

// NewService wires the price refresher. A nil source disables refreshes.
func NewService(holder *catalog.Holder, source PriceSource, loc *time.Location, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	if loc == nil {
		loc = time.UTC
	}
	return &Service{holder: holder, source: source, location: loc, now: time.Now, logger: logger}
}

// Refresh fetches prices for the base catalog's feeds and publishes a new snapshot
// built from the base catalog. On failure the current snapshot stays in place.
func (s *Service) Refresh(ctx context.Context) (*catalog.Catalog, error) {
	if s.source == nil {
		return nil, ErrDisabled
	}

	base := s.holder.Base()
	prices, err := s.source.MarketPrices(ctx, base.Feeds())
	if err != nil {
		return nil, fmt.Errorf("fetch market prices: %w", err)
	}
	if len(prices) == 0 {
		return nil, errors.New("no usable market prices returned")
	}

	date := s.now().In(s.location).Format("2006-01-02 15:04")
	next := base.WithPrices(prices, date)
	s.holder.Publish(next)

	s.logger.Info("catalog prices refreshed",
		zap.Int("updated", len(prices)),
		zap.String("snapshot_date", date))
	return next, nil
}
