package ration

import (
	"errors"
	"fmt"

	"github.com/mamadbah2/feedration/internal/domain/models"
)

// CattleFreshWeightCeiling is the most fresh feed, in kg per day, an optimized cattle ration may contain.
const CattleFreshWeightCeiling = 9.0

// ErrConstraintViolation indicates suggested amounts break a feeding constraint.
var ErrConstraintViolation = errors.New("ration violates feeding constraints")

// FreshWeightCeiling returns the daily fresh-weight limit for a category, if any.
func FreshWeightCeiling(c models.Category) (float64, bool) {
	if c == models.CategoryCattle {
		return CattleFreshWeightCeiling, true
	}
	return 0, false
}

// Warnings lists human-readable feeding-limit notices for an evaluated ration.
func Warnings(c models.Category, t models.NutrientTotals, d Diagnostics) []string {
	var out []string
	if ceiling, ok := FreshWeightCeiling(c); ok && t.TotalFreshKg > ceiling {
		out = append(out, fmt.Sprintf("total fresh weight %.1f kg exceeds the %.1f kg %s limit", t.TotalFreshKg, ceiling, c))
	}
	for _, id := range d.UnresolvedFeedIDs {
		out = append(out, fmt.Sprintf("feed %q is not in the catalog and was ignored", id))
	}
	if n := len(d.ClampedItems); n > 0 {
		out = append(out, fmt.Sprintf("%d item(s) had an invalid amount and were counted as 0 kg", n))
	}
	return out
}

// ValidateSuggestion checks amounts proposed for a ration before they are applied:
// every feed must come from allowed, every amount must be finite and non-negative,
// and the category's fresh-weight ceiling must hold.
func ValidateSuggestion(c models.Category, allowed []models.RationItem, suggested []models.RationItem) error {
	if len(suggested) == 0 {
		return fmt.Errorf("%w: no amounts suggested", ErrConstraintViolation)
	}

	permitted := make(map[string]struct{}, len(allowed))
	for _, item := range allowed {
		permitted[item.FeedID] = struct{}{}
	}

	var total float64
	for _, item := range suggested {
		if _, ok := permitted[item.FeedID]; !ok {
			return fmt.Errorf("%w: feed %q was not part of the ration", ErrConstraintViolation, item.FeedID)
		}
		if !finite(item.AmountKg) || item.AmountKg < 0 {
			return fmt.Errorf("%w: invalid amount %v for %s", ErrConstraintViolation, item.AmountKg, item.FeedID)
		}
		total += item.AmountKg
	}

	// Tolerate rounding in the model's arithmetic.
	if ceiling, ok := FreshWeightCeiling(c); ok && total > ceiling+1e-9 {
		return fmt.Errorf("%w: %.2f kg exceeds %.1f kg ceiling", ErrConstraintViolation, total, ceiling)
	}

	return nil
}
