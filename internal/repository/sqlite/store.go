// Package sqlite stores saved rations in a local SQLite file. Each record is kept as a
// JSON document next to the columns needed for ordering.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	_ "modernc.org/sqlite"

	"github.com/mamadbah2/feedration/internal/domain/models"
	"github.com/mamadbah2/feedration/internal/repository"
)

const schema = `
CREATE TABLE IF NOT EXISTS saved_rations (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	timestamp INTEGER NOT NULL,
	payload TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_saved_rations_timestamp ON saved_rations(timestamp);
`

// Store implements repository.RecordStore on SQLite.
type Store struct {
	db     *sql.DB
	path   string
	logger *zap.Logger
}

// Open creates or opens the database at path. ":memory:" opens a private in-memory database.
func Open(ctx context.Context, path string, logger *zap.Logger) (*Store, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	dsn := ":memory:"
	if path != ":memory:" {
		if dir := filepath.Dir(path); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("create database directory: %w", err)
			}
		}
		dsn = "file:" + path + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}
	// A single connection serializes writers and keeps ":memory:" databases shared.
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite database: %w", err)
	}

	if _, err := db.ExecContext(ctx, schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("initialize schema: %w", err)
	}

	logger.Debug("sqlite store ready", zap.String("path", path))
	return &Store{db: db, path: path, logger: logger}, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Create implements repository.RecordStore.
func (s *Store) Create(ctx context.Context, record models.SavedRecord) (int64, error) {
	record.ID = 0
	payload, err := json.Marshal(record)
	if err != nil {
		return 0, fmt.Errorf("encode record: %w", err)
	}

	res, err := s.db.ExecContext(ctx, `INSERT INTO saved_rations (timestamp, payload) VALUES (?, ?)`, record.Timestamp, string(payload))
	if err != nil {
		return 0, fmt.Errorf("insert record: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("read inserted id: %w", err)
	}
	return id, nil
}

// Update implements repository.RecordStore.
func (s *Store) Update(ctx context.Context, record models.SavedRecord) error {
	payload, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("encode record: %w", err)
	}

	res, err := s.db.ExecContext(ctx, `UPDATE saved_rations SET timestamp = ?, payload = ? WHERE id = ?`, record.Timestamp, string(payload), record.ID)
	if err != nil {
		return fmt.Errorf("update record %d: %w", record.ID, err)
	}
	return requireAffected(res, "update", record.ID)
}

// Get implements repository.RecordStore.
func (s *Store) Get(ctx context.Context, id int64) (models.SavedRecord, error) {
	row := s.db.QueryRowContext(ctx, `SELECT id, payload FROM saved_rations WHERE id = ?`, id)
	rec, err := scanRecord(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.SavedRecord{}, fmt.Errorf("get record %d: %w", id, repository.ErrNotFound)
	}
	if err != nil {
		return models.SavedRecord{}, fmt.Errorf("get record %d: %w", id, err)
	}
	return rec, nil
}

// List implements repository.RecordStore.
func (s *Store) List(ctx context.Context) ([]models.SavedRecord, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, payload FROM saved_rations ORDER BY timestamp DESC, id DESC`)
	if err != nil {
		return nil, fmt.Errorf("list records: %w", err)
	}
	defer rows.Close()

	out := []models.SavedRecord{}
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("list records: %w", err)
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list records: %w", err)
	}
	return out, nil
}

// Delete implements repository.RecordStore.
func (s *Store) Delete(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM saved_rations WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete record %d: %w", id, err)
	}
	return requireAffected(res, "delete", id)
}

// ReplaceAll implements repository.RecordStore inside a single transaction. The id
// sequence restarts after the largest imported id.
func (s *Store) ReplaceAll(ctx context.Context, records []models.SavedRecord) error {
	incoming := append([]models.SavedRecord(nil), records...)
	repository.AssignMissingIDs(incoming)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin replace: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM saved_rations`); err != nil {
		return fmt.Errorf("clear records: %w", err)
	}
	// Explicit ids below raise the sequence again, so it ends at the largest imported id.
	if _, err := tx.ExecContext(ctx, `DELETE FROM sqlite_sequence WHERE name = 'saved_rations'`); err != nil {
		return fmt.Errorf("reset record sequence: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO saved_rations (id, timestamp, payload) VALUES (?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, rec := range incoming {
		payload, err := json.Marshal(rec)
		if err != nil {
			return fmt.Errorf("encode record %d: %w", rec.ID, err)
		}
		if _, err := stmt.ExecContext(ctx, rec.ID, rec.Timestamp, string(payload)); err != nil {
			return fmt.Errorf("insert record %d: %w", rec.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit replace: %w", err)
	}

	s.logger.Info("records replaced", zap.Int("count", len(incoming)))
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRecord(row scanner) (models.SavedRecord, error) {
	var (
		id      int64
		payload string
		rec     models.SavedRecord
	)
	if err := row.Scan(&id, &payload); err != nil {
		return rec, err
	}
	if err := json.Unmarshal([]byte(payload), &rec); err != nil {
		return rec, fmt.Errorf("decode record %d: %w", id, err)
	}
	rec.ID = id
	return rec, nil
}

func requireAffected(res sql.Result, op string, id int64) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s record %d: %w", op, id, err)
	}
	if n == 0 {
		return fmt.Errorf("%s record %d: %w", op, id, repository.ErrNotFound)
	}
	return nil
}
