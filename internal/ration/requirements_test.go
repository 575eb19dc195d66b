package ration

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mamadbah2/feedration/internal/catalog"
	"github.com/mamadbah2/feedration/internal/domain/models"
)

const eps = 1e-9

var holstein = models.AnimalBreed{ID: "holstein", Category: models.CategoryCattle, MaintenanceEnergy: 0.52, MaintenanceProtein: 0.6}

func TestRequirementsCattleScenario(t *testing.T) {
	p := models.AnimalProfile{Category: models.CategoryCattle, BreedID: "holstein", LiveWeightKg: 450, DailyGainKg: 1.2, AgeMonths: 18}

	r := Requirements(p, holstein)

	assert.InDelta(t, 11.25, r.DryMatterIntakeKg, eps)
	assert.InDelta(t, 276.0, r.EnergyMJ, eps)
	assert.InDelta(t, 810.0, r.ProteinG, eps)
	assert.InDelta(t, 40.5, r.CalciumG, eps)
	assert.InDelta(t, 23.1, r.PhosphorusG, eps)
	assert.InDelta(t, 22.5, r.MagnesiumG, eps)
	assert.InDelta(t, 13.5, r.SodiumG, eps)
}

func TestRequirementsSheepAndGoatShareFactors(t *testing.T) {
	breed := models.AnimalBreed{ID: "merino", MaintenanceEnergy: 0.42, MaintenanceProtein: 1.1}
	sheep := models.AnimalProfile{Category: models.CategorySheep, LiveWeightKg: 60, DailyGainKg: 0.25}
	goat := sheep
	goat.Category = models.CategoryGoat

	r := Requirements(sheep, breed)
	assert.InDelta(t, 2.1, r.DryMatterIntakeKg, eps)
	assert.InDelta(t, 31.45, r.EnergyMJ, eps)
	assert.InDelta(t, 141.0, r.ProteinG, eps)
	assert.Equal(t, r, Requirements(goat, breed))
}

func TestRequirementsDegenerateWeight(t *testing.T) {
	for _, w := range []float64{0, -100} {
		r := Requirements(models.AnimalProfile{Category: models.CategoryCattle, LiveWeightKg: w}, holstein)
		assert.Equal(t, minDryMatterIntake, r.DryMatterIntakeKg, "weight %v", w)
		assert.Greater(t, r.DryMatterIntakeKg, 0.0)
	}
}

func TestRequirementsIdempotent(t *testing.T) {
	p := models.AnimalProfile{Category: models.CategoryCattle, LiveWeightKg: 512.3, DailyGainKg: 1.37}
	assert.Equal(t, Requirements(p, holstein), Requirements(p, holstein))
}

func TestResolveRequirementsFallback(t *testing.T) {
	c := catalog.Default()

	p := models.AnimalProfile{Category: models.CategoryCattle, BreedID: "does-not-exist", LiveWeightKg: 450, DailyGainKg: 1.2}
	r, ok := ResolveRequirements(p, c)
	assert.False(t, ok)
	assert.InDelta(t, 276.0, r.EnergyMJ, eps, "falls back to the first breed")

	p.BreedID = "angus"
	r, ok = ResolveRequirements(p, c)
	assert.True(t, ok)
	assert.InDelta(t, 450*0.50+1.2*35, r.EnergyMJ, eps)
}
