package models

import (
	"fmt"
	"strings"
)

// Category groups breeds that share requirement factors and feeding limits.
type Category string

const (
	CategoryCattle Category = "cattle"
	CategorySheep  Category = "sheep"
	CategoryGoat   Category = "goat"
)

// Categories lists the supported categories in display order.
var Categories = []Category{CategoryCattle, CategorySheep, CategoryGoat}

// ParseCategory normalizes user input into a known Category.
func ParseCategory(value string) (Category, error) {
	normalized := Category(strings.TrimSpace(strings.ToLower(value)))
	for _, c := range Categories {
		if c == normalized {
			return c, nil
		}
	}
	return "", fmt.Errorf("unknown animal category %q", value)
}

// AnimalBreed is read-only reference data describing maintenance needs per kg of live weight.
type AnimalBreed struct {
	ID                 string   `json:"id" yaml:"id"`
	Name               string   `json:"name" yaml:"name"`
	Category           Category `json:"category" yaml:"category"`
	MaintenanceEnergy  float64  `json:"maintenance_energy" yaml:"maintenance_energy"`   // MJ/kg LW
	MaintenanceProtein float64  `json:"maintenance_protein" yaml:"maintenance_protein"` // g/kg LW
}

// AnimalProfile is the user-supplied description of the animal being fed.
type AnimalProfile struct {
	Category     Category `json:"category" bson:"category" binding:"required"`
	BreedID      string   `json:"breed_id" bson:"breed_id"`
	LiveWeightKg float64  `json:"live_weight_kg" bson:"live_weight_kg"`
	DailyGainKg  float64  `json:"daily_gain_kg" bson:"daily_gain_kg"`
	AgeMonths    int      `json:"age_months" bson:"age_months"`
}
