// Package memory is a process-local RecordStore used by tests and ephemeral deployments.
package memory

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/mamadbah2/feedration/internal/domain/models"
	"github.com/mamadbah2/feedration/internal/repository"
)

// Store keeps records in a map guarded by a mutex.
type Store struct {
	mu      sync.RWMutex
	records map[int64]models.SavedRecord
	nextID  int64
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{records: make(map[int64]models.SavedRecord)}
}

// Create implements repository.RecordStore.
func (s *Store) Create(_ context.Context, record models.SavedRecord) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextID++
	record.ID = s.nextID
	s.records[record.ID] = clone(record)
	return record.ID, nil
}

// Update implements repository.RecordStore.
func (s *Store) Update(_ context.Context, record models.SavedRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.records[record.ID]; !ok {
		return fmt.Errorf("update record %d: %w", record.ID, repository.ErrNotFound)
	}
	s.records[record.ID] = clone(record)
	return nil
}

// Get implements repository.RecordStore.
func (s *Store) Get(_ context.Context, id int64) (models.SavedRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	r, ok := s.records[id]
	if !ok {
		return models.SavedRecord{}, fmt.Errorf("get record %d: %w", id, repository.ErrNotFound)
	}
	return clone(r), nil
}

// List implements repository.RecordStore.
func (s *Store) List(_ context.Context) ([]models.SavedRecord, error) {
	s.mu.RLock()
	out := make([]models.SavedRecord, 0, len(s.records))
	for _, r := range s.records {
		out = append(out, clone(r))
	}
	s.mu.RUnlock()

	repository.SortNewestFirst(out)
	return out, nil
}

// Delete implements repository.RecordStore.
func (s *Store) Delete(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.records[id]; !ok {
		return fmt.Errorf("delete record %d: %w", id, repository.ErrNotFound)
	}
	delete(s.records, id)
	return nil
}

// ReplaceAll implements repository.RecordStore.
func (s *Store) ReplaceAll(_ context.Context, records []models.SavedRecord) error {
	incoming := make([]models.SavedRecord, len(records))
	for i, r := range records {
		incoming[i] = clone(r)
	}
	maxID := repository.AssignMissingIDs(incoming)

	next := make(map[int64]models.SavedRecord, len(incoming))
	for _, r := range incoming {
		if _, dup := next[r.ID]; dup {
			return fmt.Errorf("replace records: duplicate id %d", r.ID)
		}
		next[r.ID] = r
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = next
	s.nextID = maxID
	return nil
}

// clone detaches the slices of a record from the caller's copy.
func clone(r models.SavedRecord) models.SavedRecord {
	r.Ration = slices.Clone(r.Ration)
	r.AdvisoryReports = slices.Clone(r.AdvisoryReports)
	return r
}
