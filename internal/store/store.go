// Package store persists extraction records in SQLite, keyed by an
// opaque id plus the human-validation flag and notes.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/a01110946/extraction-validation-engine/internal/schema"
)

// ErrNotFound is returned when no extraction exists for the given id.
var ErrNotFound = errors.New("extraction not found")

const schemaSQL = `
CREATE TABLE IF NOT EXISTS extractions (
	id               TEXT PRIMARY KEY,
	data             TEXT NOT NULL,
	validated        INTEGER NOT NULL DEFAULT 0,
	validation_notes TEXT NOT NULL DEFAULT '',
	saved_at         INTEGER NOT NULL,
	updated_at       INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_extractions_saved_at ON extractions(saved_at DESC);
`

// StoredExtraction is one persisted record with its metadata.
type StoredExtraction struct {
	ID              string                   `json:"id"`
	Record          *schema.ColumnExtraction `json:"data"`
	Validated       bool                     `json:"validated"`
	ValidationNotes string                   `json:"validation_notes,omitempty"`
	SavedAt         time.Time                `json:"saved_at"`
	UpdatedAt       time.Time                `json:"updated_at"`
}

// Store persists extraction records in SQLite.
type Store struct {
	sqlDB *sql.DB
}

func toMillis(value time.Time) int64 {
	return value.UTC().UnixMilli()
}

func fromMillis(value int64) time.Time {
	return time.UnixMilli(value).UTC()
}

// Open opens the SQLite store at path and creates the schema if
// needed.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	dsn := filepath.Clean(path) + "?_journal_mode=WAL&_busy_timeout=5000&_synchronous=NORMAL"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if _, err := sqlDB.Exec(schemaSQL); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}
	return &Store{sqlDB: sqlDB}, nil
}

// Close closes the SQLite handle.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

// Save inserts one extraction and returns its generated id.
func (s *Store) Save(ctx context.Context, rec *schema.ColumnExtraction, validated bool, notes string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if s == nil || s.sqlDB == nil {
		return "", fmt.Errorf("storage is not configured")
	}
	if rec == nil {
		return "", fmt.Errorf("extraction record is required")
	}

	data, err := json.Marshal(rec)
	if err != nil {
		return "", fmt.Errorf("encode extraction: %w", err)
	}

	id := uuid.NewString()
	now := toMillis(time.Now())
	_, err = s.sqlDB.ExecContext(ctx, `
		INSERT INTO extractions (id, data, validated, validation_notes, saved_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		id, string(data), boolToInt(validated), notes, now, now)
	if err != nil {
		return "", fmt.Errorf("insert extraction: %w", err)
	}
	return id, nil
}

// Get fetches one extraction by id.
func (s *Store) Get(ctx context.Context, id string) (*StoredExtraction, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s == nil || s.sqlDB == nil {
		return nil, fmt.Errorf("storage is not configured")
	}

	row := s.sqlDB.QueryRowContext(ctx, `
		SELECT id, data, validated, validation_notes, saved_at, updated_at
		FROM extractions WHERE id = ?`, id)
	ext, err := scanExtraction(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("fetch extraction: %w", err)
	}
	return ext, nil
}

// List returns extractions ordered by save time, newest first.
func (s *Store) List(ctx context.Context, limit, offset int, validatedOnly bool) ([]*StoredExtraction, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s == nil || s.sqlDB == nil {
		return nil, fmt.Errorf("storage is not configured")
	}
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	query := `
		SELECT id, data, validated, validation_notes, saved_at, updated_at
		FROM extractions`
	if validatedOnly {
		query += ` WHERE validated = 1`
	}
	query += ` ORDER BY saved_at DESC LIMIT ? OFFSET ?`

	rows, err := s.sqlDB.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list extractions: %w", err)
	}
	defer rows.Close()

	var out []*StoredExtraction
	for rows.Next() {
		ext, err := scanExtraction(rows)
		if err != nil {
			return nil, fmt.Errorf("scan extraction: %w", err)
		}
		out = append(out, ext)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list extractions: %w", err)
	}
	return out, nil
}

// Update replaces the record for an id; validated and notes are only
// touched when non-nil.
func (s *Store) Update(ctx context.Context, id string, rec *schema.ColumnExtraction, validated *bool, notes *string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	if rec == nil {
		return fmt.Errorf("extraction record is required")
	}

	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("encode extraction: %w", err)
	}

	query := `UPDATE extractions SET data = ?, updated_at = ?`
	args := []any{string(data), toMillis(time.Now())}
	if validated != nil {
		query += `, validated = ?`
		args = append(args, boolToInt(*validated))
	}
	if notes != nil {
		query += `, validation_notes = ?`
		args = append(args, *notes)
	}
	query += ` WHERE id = ?`
	args = append(args, id)

	res, err := s.sqlDB.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update extraction: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update extraction: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanExtraction(row rowScanner) (*StoredExtraction, error) {
	var (
		ext       StoredExtraction
		data      string
		validated int64
		savedAt   int64
		updatedAt int64
	)
	if err := row.Scan(&ext.ID, &data, &validated, &ext.ValidationNotes, &savedAt, &updatedAt); err != nil {
		return nil, err
	}
	var rec schema.ColumnExtraction
	if err := json.Unmarshal([]byte(data), &rec); err != nil {
		return nil, fmt.Errorf("decode stored extraction: %w", err)
	}
	ext.Record = &rec
	ext.Validated = validated != 0
	ext.SavedAt = fromMillis(savedAt)
	ext.UpdatedAt = fromMillis(updatedAt)
	return &ext, nil
}

func boolToInt(b bool) int64 {
	if b {
		return 1
	}
	return 0
}
