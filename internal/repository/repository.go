// Package repository defines the saved-ration store contract shared by the
// memory, SQLite and MongoDB adapters.
package repository

import (
	"context"
	"errors"
	"sort"

	"github.com/mamadbah2/feedration/internal/domain/models"
)

// ErrNotFound is returned when a record id does not exist.
var ErrNotFound = errors.New("record not found")

// RecordStore persists saved ration records.
type RecordStore interface {
	// Create stores a new record and returns the id it was assigned. Any id on the input is ignored.
	Create(ctx context.Context, record models.SavedRecord) (int64, error)
	// Update replaces an existing record.
	Update(ctx context.Context, record models.SavedRecord) error
	Get(ctx context.Context, id int64) (models.SavedRecord, error)
	// List returns every record, newest first.
	List(ctx context.Context) ([]models.SavedRecord, error)
	Delete(ctx context.Context, id int64) error
	// ReplaceAll drops every record and stores the given ones. Records keep their ids;
	// records without an id are assigned one.
	ReplaceAll(ctx context.Context, records []models.SavedRecord) error
}

// SortNewestFirst orders records by timestamp descending, breaking ties by id descending.
func SortNewestFirst(records []models.SavedRecord) {
	sort.SliceStable(records, func(i, j int) bool {
		if records[i].Timestamp != records[j].Timestamp {
			return records[i].Timestamp > records[j].Timestamp
		}
		return records[i].ID > records[j].ID
	})
}

// AssignMissingIDs gives every record with a zero id the next id after the largest
// one present, and returns the largest id in the set.
func AssignMissingIDs(records []models.SavedRecord) int64 {
	var maxID int64
	for _, r := range records {
		if r.ID > maxID {
			maxID = r.ID
		}
	}
	for i := range records {
		if records[i].ID == 0 {
			maxID++
			records[i].ID = maxID
		}
	}
	return maxID
}
