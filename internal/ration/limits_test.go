package ration

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mamadbah2/feedration/internal/domain/models"
)

func TestFreshWeightCeiling(t *testing.T) {
	ceiling, ok := FreshWeightCeiling(models.CategoryCattle)
	assert.True(t, ok)
	assert.Equal(t, 9.0, ceiling)

	_, ok = FreshWeightCeiling(models.CategorySheep)
	assert.False(t, ok)
	_, ok = FreshWeightCeiling(models.CategoryGoat)
	assert.False(t, ok)
}

func TestWarnings(t *testing.T) {
	heavy := models.NutrientTotals{TotalFreshKg: 22}

	w := Warnings(models.CategoryCattle, heavy, Diagnostics{})
	assert.Len(t, w, 1)
	assert.Contains(t, w[0], "exceeds")

	assert.Empty(t, Warnings(models.CategorySheep, heavy, Diagnostics{}))

	w = Warnings(models.CategoryGoat, models.NutrientTotals{}, Diagnostics{UnresolvedFeedIDs: []string{"x"}, ClampedItems: []int{1, 2}})
	assert.Len(t, w, 2)
}

func TestValidateSuggestion(t *testing.T) {
	allowed := []models.RationItem{{FeedID: "corn_silage", AmountKg: 15}, {FeedID: "barley", AmountKg: 4}}

	tests := []struct {
		name      string
		category  models.Category
		suggested []models.RationItem
		wantErr   bool
	}{
		{"within ceiling", models.CategoryCattle, []models.RationItem{{FeedID: "corn_silage", AmountKg: 6}, {FeedID: "barley", AmountKg: 3}}, false},
		{"over ceiling", models.CategoryCattle, []models.RationItem{{FeedID: "corn_silage", AmountKg: 6}, {FeedID: "barley", AmountKg: 3.5}}, true},
		{"sheep has no ceiling", models.CategorySheep, []models.RationItem{{FeedID: "corn_silage", AmountKg: 20}}, false},
		{"foreign feed", models.CategorySheep, []models.RationItem{{FeedID: "soybean_meal", AmountKg: 1}}, true},
		{"negative amount", models.CategoryGoat, []models.RationItem{{FeedID: "barley", AmountKg: -1}}, true},
		{"nan amount", models.CategoryGoat, []models.RationItem{{FeedID: "barley", AmountKg: math.NaN()}}, true},
		{"empty", models.CategoryGoat, nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateSuggestion(tt.category, allowed, tt.suggested)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrConstraintViolation)
				return
			}
			assert.NoError(t, err)
		})
	}
}
