// Package storetest is a behavioural suite every repository.RecordStore must pass.
package storetest

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mamadbah2/feedration/internal/domain/models"
	"github.com/mamadbah2/feedration/internal/repository"
)

// Factory returns an empty store for one subtest.
type Factory func(t *testing.T) repository.RecordStore

// Record builds a minimal valid record with the given timestamp.
func Record(ts int64) models.SavedRecord {
	return models.SavedRecord{
		SchemaVersion: models.RecordSchemaVersion,
		Timestamp:     ts,
		FormattedDate: "15 October 2026 10:00",
		Profile: models.AnimalProfile{
			Category:     models.CategoryCattle,
			BreedID:      "holstein",
			LiveWeightKg: 450,
			DailyGainKg:  1.2,
			AgeMonths:    18,
		},
		Ration: []models.RationItem{
			{FeedID: "corn_silage", AmountKg: 15},
			{FeedID: "barley", AmountKg: 4},
		},
		Totals:          models.NutrientTotals{DryMatterKg: 8.47, EnergyMJ: 97.5, Cost: 82},
		Requirements:    models.NutrientRequirements{DryMatterIntakeKg: 11.25, EnergyMJ: 276},
		QualityScore:    61,
		AdvisoryReports: []string{},
	}
}

// Run executes the suite.
func Run(t *testing.T, newStore Factory) {
	t.Run("CreateAssignsIncreasingIDs", func(t *testing.T) {
		ctx := context.Background()
		s := newStore(t)

		first, err := s.Create(ctx, Record(1000))
		require.NoError(t, err)
		second, err := s.Create(ctx, Record(2000))
		require.NoError(t, err)

		assert.Greater(t, first, int64(0))
		assert.Greater(t, second, first)

		got, err := s.Get(ctx, second)
		require.NoError(t, err)
		want := Record(2000)
		want.ID = second
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("record mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("ListNewestFirst", func(t *testing.T) {
		ctx := context.Background()
		s := newStore(t)

		for _, ts := range []int64{2000, 1000, 3000} {
			_, err := s.Create(ctx, Record(ts))
			require.NoError(t, err)
		}

		list, err := s.List(ctx)
		require.NoError(t, err)
		require.Len(t, list, 3)
		assert.Equal(t, []int64{3000, 2000, 1000}, []int64{list[0].Timestamp, list[1].Timestamp, list[2].Timestamp})
	})

	t.Run("UpdateAppendsReports", func(t *testing.T) {
		ctx := context.Background()
		s := newStore(t)

		id, err := s.Create(ctx, Record(1000))
		require.NoError(t, err)

		rec, err := s.Get(ctx, id)
		require.NoError(t, err)
		rec.AdvisoryReports = append(rec.AdvisoryReports, "first", "second")
		require.NoError(t, s.Update(ctx, rec))

		got, err := s.Get(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, []string{"first", "second"}, got.AdvisoryReports)
	})

	t.Run("MissingIDs", func(t *testing.T) {
		ctx := context.Background()
		s := newStore(t)

		_, err := s.Get(ctx, 42)
		assert.ErrorIs(t, err, repository.ErrNotFound)

		missing := Record(1)
		missing.ID = 42
		assert.ErrorIs(t, s.Update(ctx, missing), repository.ErrNotFound)
		assert.ErrorIs(t, s.Delete(ctx, 42), repository.ErrNotFound)
	})

	t.Run("Delete", func(t *testing.T) {
		ctx := context.Background()
		s := newStore(t)

		id, err := s.Create(ctx, Record(1000))
		require.NoError(t, err)
		require.NoError(t, s.Delete(ctx, id))

		list, err := s.List(ctx)
		require.NoError(t, err)
		assert.Empty(t, list)
	})

	t.Run("ReplaceAllPreservesIDs", func(t *testing.T) {
		ctx := context.Background()
		s := newStore(t)

		_, err := s.Create(ctx, Record(1))
		require.NoError(t, err)

		a, b, c := Record(500), Record(700), Record(600)
		a.ID, b.ID = 7, 3
		b.AdvisoryReports = []string{"kept"}
		require.NoError(t, s.ReplaceAll(ctx, []models.SavedRecord{a, b, c}))

		list, err := s.List(ctx)
		require.NoError(t, err)
		require.Len(t, list, 3)
		assert.Equal(t, int64(3), list[0].ID)
		assert.Equal(t, []string{"kept"}, list[0].AdvisoryReports)
		assert.Equal(t, int64(8), list[1].ID, "missing id follows the largest imported id")
		assert.Equal(t, int64(7), list[2].ID)

		next, err := s.Create(ctx, Record(900))
		require.NoError(t, err)
		assert.Equal(t, int64(9), next)
	})

	t.Run("ReplaceAllRestartsSequence", func(t *testing.T) {
		ctx := context.Background()
		s := newStore(t)

		for i := 0; i < 5; i++ {
			_, err := s.Create(ctx, Record(int64(100+i)))
			require.NoError(t, err)
		}

		kept := Record(50)
		kept.ID = 1
		require.NoError(t, s.ReplaceAll(ctx, []models.SavedRecord{kept}))

		next, err := s.Create(ctx, Record(900))
		require.NoError(t, err)
		assert.Equal(t, int64(2), next, "next id follows the largest imported id")
	})

	t.Run("ReplaceAllEmpty", func(t *testing.T) {
		ctx := context.Background()
		s := newStore(t)

		_, err := s.Create(ctx, Record(1))
		require.NoError(t, err)
		require.NoError(t, s.ReplaceAll(ctx, nil))

		list, err := s.List(ctx)
		require.NoError(t, err)
		assert.Empty(t, list)

		next, err := s.Create(ctx, Record(2))
		require.NoError(t, err)
		assert.Equal(t, int64(1), next)
	})
}
