package models

// RecordSchemaVersion identifies the field set of SavedRecord, NutrientTotals and
// NutrientRequirements written by this build.
const RecordSchemaVersion = 2

// SavedRecord is a snapshot of a ration session. Only AdvisoryReports grows after creation.
type SavedRecord struct {
	ID                int64                `json:"id" bson:"_id"`
	SchemaVersion     int                  `json:"schema_version" bson:"schema_version"`
	Timestamp         int64                `json:"timestamp" bson:"timestamp"` // epoch ms
	FormattedDate     string               `json:"formatted_date" bson:"formatted_date"`
	PriceSnapshotDate string               `json:"price_snapshot_date,omitempty" bson:"price_snapshot_date,omitempty"`
	Profile           AnimalProfile        `json:"profile" bson:"profile"`
	Ration            []RationItem         `json:"ration" bson:"ration"`
	Totals            NutrientTotals       `json:"totals" bson:"totals"`
	Requirements      NutrientRequirements `json:"requirements" bson:"requirements"`
	QualityScore      int                  `json:"quality_score" bson:"quality_score"`
	AdvisoryReports   []string             `json:"advisory_reports" bson:"advisory_reports"`
}
