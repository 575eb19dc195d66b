package ration

import (
	"math"

	"github.com/mamadbah2/feedration/internal/domain/models"
)

// FeedLookup resolves feed ids against the active catalog.
type FeedLookup interface {
	Feed(id string) (models.Feed, bool)
}

// Diagnostics records the inputs Totalize ignored or corrected.
type Diagnostics struct {
	UnresolvedFeedIDs []string `json:"unresolved_feed_ids,omitempty"`
	ClampedItems      []int    `json:"clamped_items,omitempty"` // positions whose amount was replaced by 0
}

// Empty reports whether every input was used as given.
func (d Diagnostics) Empty() bool {
	return len(d.UnresolvedFeedIDs) == 0 && len(d.ClampedItems) == 0
}

// Totalize sums what the ration delivers. Items whose feed cannot be resolved are
// skipped; negative or non-finite amounts count as zero.
func Totalize(items []models.RationItem, feeds FeedLookup) (models.NutrientTotals, Diagnostics) {
	var (
		t    models.NutrientTotals
		diag Diagnostics
	)

	for i, item := range items {
		feed, ok := feeds.Feed(item.FeedID)
		if !ok {
			diag.UnresolvedFeedIDs = append(diag.UnresolvedFeedIDs, item.FeedID)
			continue
		}

		amount, clamped := clampAmount(item.AmountKg)
		if clamped {
			diag.ClampedItems = append(diag.ClampedItems, i)
		}

		dm := amount * feed.DryMatterPercent / 100

		t.DryMatterKg += dm
		t.EnergyMJ += dm * feed.MetabolizableEnergy
		t.ProteinG += grams(dm, feed.CrudeProtein)
		t.CalciumG += grams(dm, feed.Calcium)
		t.PhosphorusG += grams(dm, feed.Phosphorus)
		t.MagnesiumG += grams(dm, feed.Magnesium)
		t.SodiumG += grams(dm, feed.Sodium)
		t.BicarbonateG += grams(dm, feed.Bicarbonate)
		t.Cost += amount * feed.PricePerKg
		t.TotalFreshKg += amount
	}

	return t, diag
}

// ClampItems returns a copy of items with negative or non-finite amounts set to 0,
// the amounts Totalize actually counted.
func ClampItems(items []models.RationItem) []models.RationItem {
	out := make([]models.RationItem, len(items))
	for i, item := range items {
		item.AmountKg, _ = clampAmount(item.AmountKg)
		out[i] = item
	}
	return out
}

func clampAmount(kg float64) (float64, bool) {
	if math.IsNaN(kg) || math.IsInf(kg, 0) || kg < 0 {
		return 0, true
	}
	return kg, false
}

// grams converts a percent-of-DM analysis into grams delivered by dm kilograms.
func grams(dmKg, percent float64) float64 {
	return dmKg * percent / 100 * 1000
}
