package models

// NutrientRequirements are the daily targets derived from an AnimalProfile.
type NutrientRequirements struct {
	DryMatterIntakeKg float64 `json:"dry_matter_intake_kg" bson:"dry_matter_intake_kg"`
	EnergyMJ          float64 `json:"energy_mj" bson:"energy_mj"`
	ProteinG          float64 `json:"protein_g" bson:"protein_g"`
	CalciumG          float64 `json:"calcium_g" bson:"calcium_g"`
	PhosphorusG       float64 `json:"phosphorus_g" bson:"phosphorus_g"`
	MagnesiumG        float64 `json:"magnesium_g" bson:"magnesium_g"`
	SodiumG           float64 `json:"sodium_g" bson:"sodium_g"`
}

// NutrientTotals is what a ration actually delivers per day.
type NutrientTotals struct {
	DryMatterKg  float64 `json:"dry_matter_kg" bson:"dry_matter_kg"`
	EnergyMJ     float64 `json:"energy_mj" bson:"energy_mj"`
	ProteinG     float64 `json:"protein_g" bson:"protein_g"`
	CalciumG     float64 `json:"calcium_g" bson:"calcium_g"`
	PhosphorusG  float64 `json:"phosphorus_g" bson:"phosphorus_g"`
	MagnesiumG   float64 `json:"magnesium_g" bson:"magnesium_g"`
	SodiumG      float64 `json:"sodium_g" bson:"sodium_g"`
	BicarbonateG float64 `json:"bicarbonate_g" bson:"bicarbonate_g"`
	Cost         float64 `json:"cost" bson:"cost"`
	TotalFreshKg float64 `json:"total_fresh_kg" bson:"total_fresh_kg"`
}
