package reporting

import (
	"context"
	"fmt"
	"math"
	"slices"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/mamadbah2/feedration/internal/domain/models"
)

const dateLayout = "2006-01-02"

// RecordLister reads saved rations.
type RecordLister interface {
	List(ctx context.Context) ([]models.SavedRecord, error)
}

// CategorySummary aggregates the rations of one category.
type CategorySummary struct {
	Category     models.Category `json:"category"`
	Rations      int             `json:"rations"`
	AverageScore float64         `json:"average_score"`
	AverageCost  float64         `json:"average_cost"`
	AverageKg    float64         `json:"average_fresh_kg"`
	Reports      int             `json:"advisory_reports"`
}

// Summary covers the rations saved in [From, To].
type Summary struct {
	From       string            `json:"from"`
	To         string            `json:"to"`
	Rations    int               `json:"rations"`
	Categories []CategorySummary `json:"categories"`
}

// Service exposes lightweight analytics over the ration archive.
type Service struct {
	records  RecordLister
	location *time.Location
	logger   *zap.Logger
}

// NewService wires a new reporting service instance.
func NewService(records RecordLister, loc *time.Location, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	if loc == nil {
		loc = time.UTC
	}
	return &Service{records: records, location: loc, logger: logger}
}

// Summarize aggregates rations whose timestamp falls within [start, end].
func (s *Service) Summarize(ctx context.Context, start, end time.Time) (Summary, error) {
	if end.Before(start) {
		return Summary{}, fmt.Errorf("period end %s is before start %s", end.Format(dateLayout), start.Format(dateLayout))
	}

	records, err := s.records.List(ctx)
	if err != nil {
		return Summary{}, fmt.Errorf("load records: %w", err)
	}

	sums := make(map[models.Category]*CategorySummary)
	skipped := 0
	out := Summary{From: start.In(s.location).Format(dateLayout), To: end.In(s.location).Format(dateLayout)}

	for _, r := range records {
		ts := time.UnixMilli(r.Timestamp)
		if ts.Before(start) || ts.After(end) {
			continue
		}
		// Imported archives may carry categories the catalog does not know.
		if !slices.Contains(models.Categories, r.Profile.Category) {
			skipped++
			continue
		}

		cs, ok := sums[r.Profile.Category]
		if !ok {
			cs = &CategorySummary{Category: r.Profile.Category}
			sums[r.Profile.Category] = cs
		}
		cs.Rations++
		cs.AverageScore += float64(r.QualityScore)
		cs.AverageCost += r.Totals.Cost
		cs.AverageKg += r.Totals.TotalFreshKg
		cs.Reports += len(r.AdvisoryReports)
		out.Rations++
	}

	for _, c := range models.Categories {
		cs, ok := sums[c]
		if !ok {
			continue
		}
		n := float64(cs.Rations)
		cs.AverageScore = round2(cs.AverageScore / n)
		cs.AverageCost = round2(cs.AverageCost / n)
		cs.AverageKg = round2(cs.AverageKg / n)
		out.Categories = append(out.Categories, *cs)
	}

	if skipped > 0 {
		s.logger.Warn("rations with unknown category left out of summary", zap.Int("count", skipped))
	}
	s.logger.Debug("ration summary computed", zap.Int("rations", out.Rations), zap.String("from", out.From), zap.String("to", out.To))
	return out, nil
}

// LastDays summarizes the trailing period ending at now.
func (s *Service) LastDays(ctx context.Context, now time.Time, days int) (Summary, error) {
	if days <= 0 {
		return Summary{}, fmt.Errorf("days must be positive, got %d", days)
	}
	return s.Summarize(ctx, now.AddDate(0, 0, -days), now)
}

// Format renders a summary as plain text.
func Format(s Summary) string {
	if s.Rations == 0 {
		return fmt.Sprintf("Rations (%s to %s): no rations saved.", s.From, s.To)
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Rations (%s to %s): %d saved.", s.From, s.To, s.Rations)
	for _, c := range s.Categories {
		fmt.Fprintf(&sb, "\n- %s: %d rations, average score %.0f, average cost %.2f for %.2f kg, %d advisory reports",
			c.Category, c.Rations, c.AverageScore, c.AverageCost, c.AverageKg, c.Reports)
	}
	return sb.String()
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
