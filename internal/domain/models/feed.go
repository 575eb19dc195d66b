package models

// FeedGroup is a coarse classification used for catalog display.
type FeedGroup string

const (
	FeedGroupEnergy    FeedGroup = "energy"
	FeedGroupProtein   FeedGroup = "protein"
	FeedGroupByProduct FeedGroup = "by_product"
	FeedGroupRoughage  FeedGroup = "roughage"
	FeedGroupMineral   FeedGroup = "mineral"
)

// Feed describes a feedstuff. All nutrient percentages are expressed on a dry-matter basis,
// price is per kg of fresh (as-fed) weight.
type Feed struct {
	ID                  string    `json:"id" yaml:"id"`
	Name                string    `json:"name" yaml:"name"`
	Group               FeedGroup `json:"group" yaml:"group"`
	DryMatterPercent    float64   `json:"dry_matter_percent" yaml:"dry_matter_percent"`
	MetabolizableEnergy float64   `json:"metabolizable_energy" yaml:"metabolizable_energy"` // MJ/kg DM
	CrudeProtein        float64   `json:"crude_protein_percent" yaml:"crude_protein_percent"`
	Calcium             float64   `json:"calcium_percent" yaml:"calcium_percent"`
	Phosphorus          float64   `json:"phosphorus_percent" yaml:"phosphorus_percent"`
	Magnesium           float64   `json:"magnesium_percent,omitempty" yaml:"magnesium_percent"`
	Sodium              float64   `json:"sodium_percent,omitempty" yaml:"sodium_percent"`
	Bicarbonate         float64   `json:"bicarbonate_percent,omitempty" yaml:"bicarbonate_percent"`
	PricePerKg          float64   `json:"price_per_kg" yaml:"price_per_kg"`
}

// RationItem is one line of a ration: a feed and its fresh-weight amount.
type RationItem struct {
	FeedID   string  `json:"feed_id" bson:"feed_id" binding:"required"`
	AmountKg float64 `json:"amount_kg" bson:"amount_kg"`
}
