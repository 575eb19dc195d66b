// Package ration holds the nutrient arithmetic: daily requirements for an animal,
// what a feed mixture delivers, and how well the two match.
package ration

import (
	"github.com/mamadbah2/feedration/internal/domain/models"
)

// minDryMatterIntake keeps the intake target strictly positive so scoring never divides by zero.
const minDryMatterIntake = 1e-6

type factorSet struct {
	dmi            float64 // kg DM per kg live weight
	energyPerGain  float64 // MJ per kg gain
	proteinPerGain float64 // g per kg gain
}

// Sheep and goats share one factor set.
var (
	cattleFactors = factorSet{dmi: 0.025, energyPerGain: 35, proteinPerGain: 450}
	smallFactors  = factorSet{dmi: 0.035, energyPerGain: 25, proteinPerGain: 300}
)

func factorsFor(c models.Category) factorSet {
	if c == models.CategoryCattle {
		return cattleFactors
	}
	return smallFactors
}

// BreedResolver resolves a breed id, falling back to a default breed.
type BreedResolver interface {
	ResolveBreed(id string) (models.AnimalBreed, bool)
}

// Requirements computes the daily nutrient targets for a profile and its breed.
func Requirements(p models.AnimalProfile, breed models.AnimalBreed) models.NutrientRequirements {
	f := factorsFor(p.Category)

	dmi := p.LiveWeightKg * f.dmi
	if !(dmi >= minDryMatterIntake) {
		dmi = minDryMatterIntake
	}

	return models.NutrientRequirements{
		DryMatterIntakeKg: dmi,
		EnergyMJ:          p.LiveWeightKg*breed.MaintenanceEnergy + p.DailyGainKg*f.energyPerGain,
		ProteinG:          p.LiveWeightKg*breed.MaintenanceProtein + p.DailyGainKg*f.proteinPerGain,
		CalciumG:          p.LiveWeightKg*0.05 + p.DailyGainKg*15,
		PhosphorusG:       p.LiveWeightKg*0.03 + p.DailyGainKg*8,
		MagnesiumG:        dmi * 2.0,
		SodiumG:           dmi * 1.2,
	}
}

// ResolveRequirements resolves the profile's breed and computes its requirements.
// The boolean is false when the breed id was unknown and the fallback breed was used.
func ResolveRequirements(p models.AnimalProfile, breeds BreedResolver) (models.NutrientRequirements, bool) {
	breed, ok := breeds.ResolveBreed(p.BreedID)
	return Requirements(p, breed), ok
}
