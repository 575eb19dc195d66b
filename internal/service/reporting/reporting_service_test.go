package reporting

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mamadbah2/feedration/internal/domain/models"
)

type listerFunc func(ctx context.Context) ([]models.SavedRecord, error)

func (f listerFunc) List(ctx context.Context) ([]models.SavedRecord, error) { return f(ctx) }

func record(day int, c models.Category, score int, cost float64, reports int) models.SavedRecord {
	return models.SavedRecord{
		Timestamp:       time.Date(2026, 10, day, 12, 0, 0, 0, time.UTC).UnixMilli(),
		Profile:         models.AnimalProfile{Category: c},
		QualityScore:    score,
		Totals:          models.NutrientTotals{Cost: cost, TotalFreshKg: 10},
		AdvisoryReports: make([]string, reports),
	}
}

func TestSummarize(t *testing.T) {
	records := []models.SavedRecord{
		record(14, models.CategoryCattle, 80, 100, 1),
		record(13, models.CategoryCattle, 61, 50, 0),
		record(12, models.CategorySheep, 90, 20, 2),
		record(1, models.CategoryGoat, 50, 10, 0),
	}
	svc := NewService(listerFunc(func(context.Context) ([]models.SavedRecord, error) { return records, nil }), time.UTC, nil)

	now := time.Date(2026, 10, 15, 0, 0, 0, 0, time.UTC)
	sum, err := svc.LastDays(context.Background(), now, 7)
	require.NoError(t, err)

	assert.Equal(t, "2026-10-08", sum.From)
	assert.Equal(t, 3, sum.Rations)
	require.Len(t, sum.Categories, 2)
	assert.Equal(t, CategorySummary{Category: models.CategoryCattle, Rations: 2, AverageScore: 70.5, AverageCost: 75, AverageKg: 10, Reports: 1}, sum.Categories[0])
	assert.Equal(t, models.CategorySheep, sum.Categories[1].Category)

	text := Format(sum)
	assert.Contains(t, text, "3 saved")
	assert.Contains(t, text, "cattle: 2 rations, average score 70")
}

func TestSummarizeEmptyAndErrors(t *testing.T) {
	empty := NewService(listerFunc(func(context.Context) ([]models.SavedRecord, error) { return nil, nil }), nil, nil)
	now := time.Now()

	sum, err := empty.LastDays(context.Background(), now, 1)
	require.NoError(t, err)
	assert.Contains(t, Format(sum), "no rations saved")

	_, err = empty.LastDays(context.Background(), now, 0)
	assert.Error(t, err)
	_, err = empty.Summarize(context.Background(), now, now.Add(-time.Hour))
	assert.Error(t, err)

	failing := NewService(listerFunc(func(context.Context) ([]models.SavedRecord, error) { return nil, errors.New("db down") }), nil, nil)
	_, err = failing.LastDays(context.Background(), now, 7)
	assert.Error(t, err)
}

func TestSummarizeSkipsUnknownCategories(t *testing.T) {
	records := []models.SavedRecord{
		record(14, models.CategoryCattle, 80, 100, 0),
		record(13, "horse", 40, 30, 1),
		record(12, models.CategoryGoat, 70, 10, 0),
	}
	svc := NewService(listerFunc(func(context.Context) ([]models.SavedRecord, error) { return records, nil }), time.UTC, nil)

	sum, err := svc.LastDays(context.Background(), time.Date(2026, 10, 15, 0, 0, 0, 0, time.UTC), 7)
	require.NoError(t, err)

	total := 0
	for _, c := range sum.Categories {
		total += c.Rations
	}
	assert.Equal(t, 2, sum.Rations)
	assert.Equal(t, sum.Rations, total, "total equals the sum of the categories")
}
