package database

import (
	"database/sql"
	"fmt"
	"time"

	"exprune/internal/database/migrations"
	"exprune/internal/prune"

	_ "github.com/mattn/go-sqlite3" // SQLite driver
)

// SQLiteHistory implements prune.HistoryStore using SQLite.
type SQLiteHistory struct {
	db *sql.DB
}

// NewSQLiteHistory opens (or creates) the history database at path and
// brings its schema up to date. path can be ":memory:" for an in-memory
// database.
func NewSQLiteHistory(path string) (*SQLiteHistory, error) {
	db, err := OpenConnection(path)
	if err != nil {
		return nil, err
	}

	if err := migrations.MigrateUp(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrating history schema: %w", err)
	}

	return &SQLiteHistory{db: db}, nil
}

// OpenConnection opens and configures a SQLite database connection with
// appropriate PRAGMAs. Exported for tests that need a raw connection.
func OpenConnection(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// PRAGMAs are per-connection, and ":memory:" databases are per-connection
	// too, so the pool must stay at a single connection.
	db.SetMaxOpenConns(1)

	// Enable foreign key constraints (SQLite default is OFF for backward compatibility)
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	if _, err := db.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to set busy timeout: %w", err)
	}

	return db, nil
}

// CreateRun inserts a new run record.
func (s *SQLiteHistory) CreateRun(run *prune.Run) error {
	_, err := s.db.Exec(`
		INSERT INTO runs (id, path, sort_mode, keep_count, recursive, started_at, status, kept_count, deleted_count, failed_count)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		run.ID, run.Path, run.SortMode, run.KeepCount, run.Recursive,
		run.StartedAt, run.Status, run.Kept, run.Deleted, run.Failed,
	)
	if err != nil {
		return fmt.Errorf("inserting run: %w", err)
	}
	return nil
}

// RecordDeletion inserts the outcome of one removal attempt.
func (s *SQLiteHistory) RecordDeletion(d *prune.Deletion) error {
	_, err := s.db.Exec(`
		INSERT INTO deletions (run_id, path, file_time, deleted_at, status, error)
		VALUES (?, ?, ?, ?, ?, ?)`,
		d.RunID, d.Path, d.FileTime, d.DeletedAt, d.Status, d.Error,
	)
	if err != nil {
		return fmt.Errorf("inserting deletion: %w", err)
	}
	return nil
}

// FinishRun finalizes a run record with its outcome and counts.
func (s *SQLiteHistory) FinishRun(id, status string, kept, deleted, failed int, finishedAt time.Time) error {
	res, err := s.db.Exec(`
		UPDATE runs
		SET status = ?, kept_count = ?, deleted_count = ?, failed_count = ?, finished_at = ?
		WHERE id = ?`,
		status, kept, deleted, failed, finishedAt, id,
	)
	if err != nil {
		return fmt.Errorf("updating run: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking update result: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("no run with id %s", id)
	}
	return nil
}

// ListRuns returns the most recent runs, newest first.
func (s *SQLiteHistory) ListRuns(limit int) ([]*prune.Run, error) {
	rows, err := s.db.Query(`
		SELECT id, path, sort_mode, keep_count, recursive, started_at, finished_at, status, kept_count, deleted_count, failed_count
		FROM runs
		ORDER BY started_at DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying runs: %w", err)
	}
	defer rows.Close()

	var runs []*prune.Run
	for rows.Next() {
		var run prune.Run
		var finishedAt sql.NullTime
		if err := rows.Scan(
			&run.ID, &run.Path, &run.SortMode, &run.KeepCount, &run.Recursive,
			&run.StartedAt, &finishedAt, &run.Status, &run.Kept, &run.Deleted, &run.Failed,
		); err != nil {
			return nil, fmt.Errorf("scanning run: %w", err)
		}
		if finishedAt.Valid {
			run.FinishedAt = finishedAt.Time
		}
		runs = append(runs, &run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating runs: %w", err)
	}
	return runs, nil
}

// ListDeletions returns the per-file outcomes of one run, in deletion order.
func (s *SQLiteHistory) ListDeletions(runID string) ([]*prune.Deletion, error) {
	rows, err := s.db.Query(`
		SELECT run_id, path, file_time, deleted_at, status, error
		FROM deletions
		WHERE run_id = ?
		ORDER BY id`, runID)
	if err != nil {
		return nil, fmt.Errorf("querying deletions: %w", err)
	}
	defer rows.Close()

	var deletions []*prune.Deletion
	for rows.Next() {
		var d prune.Deletion
		if err := rows.Scan(&d.RunID, &d.Path, &d.FileTime, &d.DeletedAt, &d.Status, &d.Error); err != nil {
			return nil, fmt.Errorf("scanning deletion: %w", err)
		}
		deletions = append(deletions, &d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating deletions: %w", err)
	}
	return deletions, nil
}

// Close closes the underlying database connection.
func (s *SQLiteHistory) Close() error {
	return s.db.Close()
}

// Compile-time check that SQLiteHistory implements prune.HistoryStore
var _ prune.HistoryStore = (*SQLiteHistory)(nil)
