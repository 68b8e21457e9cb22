// Package store persists classifier hints and run records in SQLite.
// The cache spares repeat invocations of the external classifier:
// re-running the tool over an unchanged document reuses the labels
// from the previous run.
package store

import (
	"context"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/KBGitHubacc/wordformat/aihint"
)

// Run is one reformatting run's audit record.
type Run struct {
	ID          string `json:"id"`
	InputPath   string `json:"input_path"`
	OutputPath  string `json:"output_path,omitempty"`
	ContentHash string `json:"content_hash"`
	Targets     int    `json:"targets"`
	Matched     int    `json:"matched"`
	Dropped     int    `json:"dropped"`
	Skipped     int    `json:"skipped"`
	NumID       int    `json:"num_id"`
	CreatedAt   string `json:"created_at"`
}

// Store wraps the SQLite database for all wordformat persistence.
type Store struct {
	db *sql.DB
}

// Open opens (or creates) a SQLite database at the given path and
// initialises the schema.
func Open(dbPath string) (*Store, error) {
	if dir := filepath.Dir(dbPath); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=5000&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if _, err := db.Exec(schemaSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("initialising schema: %w", err)
	}

	s := &Store{db: db}
	if err := s.Migrate(context.Background()); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// ContentHash returns the cache key for a document's plain text.
func ContentHash(text string) string {
	sum := sha256.Sum256([]byte(text))
	return hex.EncodeToString(sum[:])
}

// GetHints returns the cached classifier hints for a content hash, in
// paragraph order, or nil when the document has never been labelled.
func (s *Store) GetHints(ctx context.Context, contentHash string) ([]aihint.Hint, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT para_index, para_type, level FROM hints WHERE content_hash = ? ORDER BY para_index",
		contentHash)
	if err != nil {
		return nil, fmt.Errorf("querying hints: %w", err)
	}
	defer rows.Close()

	var hints []aihint.Hint
	for rows.Next() {
		var h aihint.Hint
		if err := rows.Scan(&h.Index, &h.Type, &h.Level); err != nil {
			return nil, fmt.Errorf("scanning hint: %w", err)
		}
		hints = append(hints, h)
	}
	return hints, rows.Err()
}

// PutHints stores classifier hints for a content hash, replacing any
// previous labelling of the same document.
func (s *Store) PutHints(ctx context.Context, contentHash, model string, hints []aihint.Hint) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin put hints: %w", err)
	}

	if _, err := tx.ExecContext(ctx, "DELETE FROM hints WHERE content_hash = ?", contentHash); err != nil {
		tx.Rollback()
		return fmt.Errorf("clearing stale hints: %w", err)
	}
	for _, h := range hints {
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO hints (content_hash, para_index, para_type, level, model) VALUES (?, ?, ?, ?, ?)",
			contentHash, h.Index, h.Type, h.Level, model); err != nil {
			tx.Rollback()
			return fmt.Errorf("inserting hint %d: %w", h.Index, err)
		}
	}
	return tx.Commit()
}

// RecordRun inserts a run record and returns its generated id.
func (s *Store) RecordRun(ctx context.Context, run Run) (string, error) {
	id := uuid.NewString()
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO runs (id, input_path, output_path, content_hash, targets, matched, dropped, skipped, num_id)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		id, run.InputPath, run.OutputPath, run.ContentHash,
		run.Targets, run.Matched, run.Dropped, run.Skipped, run.NumID)
	if err != nil {
		return "", fmt.Errorf("recording run: %w", err)
	}
	return id, nil
}

// RecentRuns returns the most recent run records, newest first.
func (s *Store) RecentRuns(ctx context.Context, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, input_path, COALESCE(output_path, ''), content_hash,
		       targets, matched, dropped, skipped, num_id, created_at
		FROM runs ORDER BY created_at DESC, id LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		if err := rows.Scan(&r.ID, &r.InputPath, &r.OutputPath, &r.ContentHash,
			&r.Targets, &r.Matched, &r.Dropped, &r.Skipped, &r.NumID, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning run: %w", err)
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}
