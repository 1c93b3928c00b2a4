// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package journal records sync runs in a local SQLite database. The journal
// is observational: sync decisions never read from it, and idempotency comes
// from title matching on the remote tree, not from recorded IDs.
package journal

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

const dbFile = "journal.db"

// Statuses recorded on runs.
const (
	StatusRunning = "running"
	StatusOK      = "ok"
	StatusFailed  = "failed"
)

// Journal is an open run journal.
type Journal struct {
	db *sql.DB
}

// DefaultPath returns the journal location under the user cache directory.
func DefaultPath() (string, error) {
	cache, err := os.UserCacheDir()
	if err != nil {
		return "", fmt.Errorf("locating cache directory: %w", err)
	}
	return filepath.Join(cache, "notion-tree", dbFile), nil
}

// Open opens or creates the journal at path (DefaultPath when empty) and
// creates the schema if it does not exist.
func Open(path string) (*Journal, error) {
	if path == "" {
		var err error
		path, err = DefaultPath()
		if err != nil {
			return nil, err
		}
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("creating journal directory: %w", err)
	}

	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening journal: %w", err)
	}

	j := &Journal{db: db}
	if err := j.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating journal schema: %w", err)
	}
	return j, nil
}

// Close releases the database connection.
func (j *Journal) Close() error {
	return j.db.Close()
}

func (j *Journal) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS runs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			started_at TEXT NOT NULL,
			finished_at TEXT,
			root TEXT NOT NULL,
			parent_id TEXT NOT NULL,
			status TEXT NOT NULL,
			created INTEGER NOT NULL DEFAULT 0,
			matched INTEGER NOT NULL DEFAULT 0,
			uploaded INTEGER NOT NULL DEFAULT 0,
			skipped INTEGER NOT NULL DEFAULT 0
		)`,
		`CREATE TABLE IF NOT EXISTS operations (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id INTEGER NOT NULL REFERENCES runs(id),
			kind TEXT NOT NULL,
			path TEXT NOT NULL,
			title TEXT NOT NULL,
			remote_id TEXT,
			remote_url TEXT,
			duration_ms INTEGER NOT NULL DEFAULT 0
		)`,
		`CREATE INDEX IF NOT EXISTS idx_operations_run_id ON operations(run_id)`,
	}
	for _, stmt := range statements {
		if _, err := j.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// Run is one recorded sync run.
type Run struct {
	ID         int64     `json:"id"`
	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `json:"finished_at,omitempty"`
	Root       string    `json:"root"`
	ParentID   string    `json:"parent_id"`
	Status     string    `json:"status"`
	Created    int       `json:"created"`
	Matched    int       `json:"matched"`
	Uploaded   int       `json:"uploaded"`
	Skipped    int       `json:"skipped"`
}

// Operation is one recorded remote mutation or skip.
type Operation struct {
	RunID     int64         `json:"run_id"`
	Kind      string        `json:"kind"`
	Path      string        `json:"path"`
	Title     string        `json:"title"`
	RemoteID  string        `json:"remote_id,omitempty"`
	RemoteURL string        `json:"remote_url,omitempty"`
	Duration  time.Duration `json:"duration"`
}

// BeginRun inserts a new run row in the running state and returns its ID.
func (j *Journal) BeginRun(root, parentID string) (int64, error) {
	res, err := j.db.Exec(
		`INSERT INTO runs (started_at, root, parent_id, status) VALUES (?, ?, ?, ?)`,
		time.Now().UTC().Format(time.RFC3339), root, parentID, StatusRunning,
	)
	if err != nil {
		return 0, fmt.Errorf("recording run start: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("reading run id: %w", err)
	}
	return id, nil
}

// FinishRun marks the run finished with the given status and counts.
func (j *Journal) FinishRun(id int64, status string, created, matched, uploaded, skipped int) error {
	_, err := j.db.Exec(
		`UPDATE runs SET finished_at = ?, status = ?, created = ?, matched = ?, uploaded = ?, skipped = ? WHERE id = ?`,
		time.Now().UTC().Format(time.RFC3339), status, created, matched, uploaded, skipped, id,
	)
	if err != nil {
		return fmt.Errorf("recording run finish: %w", err)
	}
	return nil
}

// Record appends one operation row to the run.
func (j *Journal) Record(runID int64, op Operation) error {
	_, err := j.db.Exec(
		`INSERT INTO operations (run_id, kind, path, title, remote_id, remote_url, duration_ms)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		runID, op.Kind, op.Path, op.Title, op.RemoteID, op.RemoteURL, op.Duration.Milliseconds(),
	)
	if err != nil {
		return fmt.Errorf("recording operation: %w", err)
	}
	return nil
}

// Runs returns the most recent runs, newest first, up to limit (20 when
// limit is not positive).
func (j *Journal) Runs(limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := j.db.Query(
		`SELECT id, started_at, COALESCE(finished_at, ''), root, parent_id, status,
		        created, matched, uploaded, skipped
		   FROM runs ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		var started, finished string
		if err := rows.Scan(&r.ID, &started, &finished, &r.Root, &r.ParentID, &r.Status,
			&r.Created, &r.Matched, &r.Uploaded, &r.Skipped); err != nil {
			return nil, fmt.Errorf("scanning run row: %w", err)
		}
		r.StartedAt, _ = time.Parse(time.RFC3339, started)
		if finished != "" {
			r.FinishedAt, _ = time.Parse(time.RFC3339, finished)
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// Operations returns the operations of one run in recorded order.
func (j *Journal) Operations(runID int64) ([]Operation, error) {
	rows, err := j.db.Query(
		`SELECT run_id, kind, path, title, COALESCE(remote_id, ''), COALESCE(remote_url, ''), duration_ms
		   FROM operations WHERE run_id = ? ORDER BY id`, runID)
	if err != nil {
		return nil, fmt.Errorf("querying operations: %w", err)
	}
	defer rows.Close()

	var ops []Operation
	for rows.Next() {
		var op Operation
		var ms int64
		if err := rows.Scan(&op.RunID, &op.Kind, &op.Path, &op.Title, &op.RemoteID, &op.RemoteURL, &ms); err != nil {
			return nil, fmt.Errorf("scanning operation row: %w", err)
		}
		op.Duration = time.Duration(ms) * time.Millisecond
		ops = append(ops, op)
	}
	return ops, rows.Err()
}
