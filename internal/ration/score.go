package ration

import (
	"math"

	"github.com/mamadbah2/feedration/internal/domain/models"
)

// Breakdown holds the part score of every nutrient included in the quality score.
type Breakdown struct {
	DryMatter  float64 `json:"dry_matter"`
	Energy     float64 `json:"energy"`
	Protein    float64 `json:"protein"`
	Calcium    float64 `json:"calcium"`
	Phosphorus float64 `json:"phosphorus"`
	Magnesium  float64 `json:"magnesium"`
}

func (b Breakdown) parts() []float64 {
	return []float64{b.DryMatter, b.Energy, b.Protein, b.Calcium, b.Phosphorus, b.Magnesium}
}

// Grade buckets a quality score for display.
type Grade string

const (
	GradeExcellent Grade = "excellent"
	GradeGood      Grade = "good"
	GradeFair      Grade = "fair"
	GradePoor      Grade = "poor"
)

// GradeOf maps a score onto its band.
func GradeOf(score int) Grade {
	switch {
	case score >= 90:
		return GradeExcellent
	case score >= 75:
		return GradeGood
	case score >= 50:
		return GradeFair
	default:
		return GradePoor
	}
}

// Score rates how closely totals match requirements, from 0 to 100. An empty ration scores 0.
func Score(t models.NutrientTotals, r models.NutrientRequirements, rationLen int) int {
	score, _ := ScoreBreakdown(t, r, rationLen)
	return score
}

// ScoreBreakdown is Score plus the per-nutrient parts it averaged.
func ScoreBreakdown(t models.NutrientTotals, r models.NutrientRequirements, rationLen int) (int, Breakdown) {
	if rationLen == 0 {
		return 0, Breakdown{}
	}

	b := Breakdown{
		DryMatter:  SymmetricPart(t.DryMatterKg, r.DryMatterIntakeKg),
		Energy:     SymmetricPart(t.EnergyMJ, r.EnergyMJ),
		Protein:    SymmetricPart(t.ProteinG, r.ProteinG),
		Calcium:    MinimumPart(t.CalciumG, r.CalciumG),
		Phosphorus: MinimumPart(t.PhosphorusG, r.PhosphorusG),
		Magnesium:  MinimumPart(t.MagnesiumG, r.MagnesiumG),
	}

	var sum float64
	parts := b.parts()
	for _, p := range parts {
		sum += p
	}

	score := int(math.Round(sum / float64(len(parts))))
	return min(max(score, 0), 100), b
}

// SymmetricPart penalizes deviation from the requirement in either direction.
// A non-positive or non-finite requirement, or a non-finite current value, scores 0.
func SymmetricPart(current, required float64) float64 {
	if !finite(current) || !finite(required) || required <= 0 {
		return 0
	}
	return math.Max(0, 100*(1-math.Abs(current-required)/required))
}

// MinimumPart penalizes under-supply linearly and never penalizes excess.
func MinimumPart(current, required float64) float64 {
	if !finite(current) {
		return 0
	}
	if !finite(required) || required <= 0 || current >= required {
		return 100
	}
	return math.Max(0, 100*current/required)
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
