package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/feedration/internal/catalog"
	"github.com/mamadbah2/feedration/internal/domain/models"
)

// PriceRefresher refreshes the catalog's market prices.
type PriceRefresher interface {
	Refresh(ctx context.Context) (*catalog.Catalog, error)
}

// CatalogHandler serves breeds, feeds and price refreshes.
type CatalogHandler struct {
	catalogs *catalog.Holder
	prices   PriceRefresher
	logger   *zap.Logger
}

// NewCatalogHandler constructs the catalog HTTP adapter.
func NewCatalogHandler(catalogs *catalog.Holder, prices PriceRefresher, logger *zap.Logger) *CatalogHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CatalogHandler{catalogs: catalogs, prices: prices, logger: logger}
}

// Breeds lists breeds, optionally filtered by ?category=.
func (h *CatalogHandler) Breeds(c *gin.Context) {
	snap := h.catalogs.Current()

	raw := c.Query("category")
	if raw == "" {
		c.JSON(http.StatusOK, gin.H{"breeds": snap.Breeds()})
		return
	}

	category, err := models.ParseCategory(raw)
	if err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"breeds": snap.BreedsFor(category)})
}

// Feeds lists feeds with the prices of the current snapshot.
func (h *CatalogHandler) Feeds(c *gin.Context) {
	snap := h.catalogs.Current()
	c.JSON(http.StatusOK, gin.H{
		"feeds":               snap.Feeds(),
		"price_snapshot_date": snap.PriceSnapshotDate(),
	})
}

// RefreshPrices triggers a market price refresh.
func (h *CatalogHandler) RefreshPrices(c *gin.Context) {
	snap, err := h.prices.Refresh(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, "price refresh failed", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"feeds":               snap.Feeds(),
		"price_snapshot_date": snap.PriceSnapshotDate(),
	})
}
