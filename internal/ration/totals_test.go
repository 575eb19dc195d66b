package ration

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mamadbah2/feedration/internal/domain/models"
)

type feedMap map[string]models.Feed

func (m feedMap) Feed(id string) (models.Feed, bool) {
	f, ok := m[id]
	return f, ok
}

var testFeeds = feedMap{
	"corn": {ID: "corn", DryMatterPercent: 88, MetabolizableEnergy: 13.5, CrudeProtein: 9, Calcium: 0.02, Phosphorus: 0.30, PricePerKg: 9.2},
	"salt": {ID: "salt", DryMatterPercent: 99, Sodium: 39.3, PricePerKg: 5},
	"bica": {ID: "bica", DryMatterPercent: 100, Sodium: 27, Bicarbonate: 72, PricePerKg: 20},
}

func TestTotalizeScenario(t *testing.T) {
	totals, diag := Totalize([]models.RationItem{{FeedID: "corn", AmountKg: 10}}, testFeeds)

	assert.True(t, diag.Empty())
	assert.InDelta(t, 8.8, totals.DryMatterKg, eps)
	assert.InDelta(t, 118.8, totals.EnergyMJ, eps)
	assert.InDelta(t, 792.0, totals.ProteinG, eps)
	assert.InDelta(t, 1.76, totals.CalciumG, eps)
	assert.InDelta(t, 26.4, totals.PhosphorusG, eps)
	assert.InDelta(t, 92.0, totals.Cost, eps)
	assert.InDelta(t, 10.0, totals.TotalFreshKg, eps)
}

func TestTotalizeEmpty(t *testing.T) {
	totals, diag := Totalize(nil, testFeeds)
	assert.Equal(t, models.NutrientTotals{}, totals)
	assert.True(t, diag.Empty())
}

func TestTotalizeUnresolvedEqualsEmpty(t *testing.T) {
	totals, diag := Totalize([]models.RationItem{
		{FeedID: "unobtainium", AmountKg: 4},
		{FeedID: "", AmountKg: 2},
	}, testFeeds)

	assert.Equal(t, models.NutrientTotals{}, totals)
	assert.Equal(t, []string{"unobtainium", ""}, diag.UnresolvedFeedIDs)
}

func TestTotalizeClampsInvalidAmounts(t *testing.T) {
	totals, diag := Totalize([]models.RationItem{
		{FeedID: "corn", AmountKg: math.NaN()},
		{FeedID: "corn", AmountKg: math.Inf(1)},
		{FeedID: "corn", AmountKg: -3},
		{FeedID: "corn", AmountKg: 1},
	}, testFeeds)

	assert.Equal(t, []int{0, 1, 2}, diag.ClampedItems)
	assert.InDelta(t, 0.88, totals.DryMatterKg, eps)
	assert.InDelta(t, 1.0, totals.TotalFreshKg, eps)
	assert.False(t, math.IsNaN(totals.Cost))
}

func TestClampItems(t *testing.T) {
	in := []models.RationItem{
		{FeedID: "corn", AmountKg: math.NaN()},
		{FeedID: "salt", AmountKg: math.Inf(-1)},
		{FeedID: "bica", AmountKg: -1},
		{FeedID: "corn", AmountKg: 2.5},
	}
	got := ClampItems(in)

	assert.Equal(t, []models.RationItem{
		{FeedID: "corn", AmountKg: 0},
		{FeedID: "salt", AmountKg: 0},
		{FeedID: "bica", AmountKg: 0},
		{FeedID: "corn", AmountKg: 2.5},
	}, got)
	assert.True(t, math.IsNaN(in[0].AmountKg), "input must not be modified")
}

func TestTotalizeMineralsUseDryMatter(t *testing.T) {
	totals, _ := Totalize([]models.RationItem{
		{FeedID: "salt", AmountKg: 0.05},
		{FeedID: "bica", AmountKg: 0.1},
	}, testFeeds)

	assert.InDelta(t, 0.0495*0.393*1000+0.1*0.27*1000, totals.SodiumG, 1e-6)
	assert.InDelta(t, 72.0, totals.BicarbonateG, 1e-6)
	assert.InDelta(t, 0.25+2.0, totals.Cost, eps)
}
