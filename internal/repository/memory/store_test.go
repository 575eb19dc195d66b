package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mamadbah2/feedration/internal/domain/models"
	"github.com/mamadbah2/feedration/internal/repository"
	"github.com/mamadbah2/feedration/internal/repository/storetest"
)

func TestStoreContract(t *testing.T) {
	storetest.Run(t, func(t *testing.T) repository.RecordStore { return NewStore() })
}

func TestStoreIsolatesCallerSlices(t *testing.T) {
	ctx := context.Background()
	s := NewStore()

	rec := storetest.Record(1)
	id, err := s.Create(ctx, rec)
	require.NoError(t, err)

	rec.Ration[0].AmountKg = 999

	got, err := s.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, 15.0, got.Ration[0].AmountKg)

	got.AdvisoryReports = append(got.AdvisoryReports, "local only")
	again, err := s.Get(ctx, id)
	require.NoError(t, err)
	assert.Empty(t, again.AdvisoryReports)
}

func TestReplaceAllRejectsDuplicateIDs(t *testing.T) {
	s := NewStore()
	a, b := storetest.Record(1), storetest.Record(2)
	a.ID, b.ID = 5, 5

	err := s.ReplaceAll(context.Background(), []models.SavedRecord{a, b})
	assert.Error(t, err)
}
