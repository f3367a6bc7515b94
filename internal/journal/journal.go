// Package journal keeps a local sqlite record of every import attempt.
//
// Each run gets a row in runs; each record the run touches gets a row in
// imports that tracks its commit state (pending -> uploaded -> written ->
// committed, or rolled_back / failed). The journal is what lets
// `glc rollback` find and undo half-committed leftovers after a crash or a
// write failure that orphaned an uploaded screenshot.
package journal

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	// Import SQLite driver
	_ "modernc.org/sqlite"
)

// Import states, in commit order.
const (
	StatePending    = "pending"
	StateUploaded   = "uploaded"
	StateWritten    = "written"
	StateCommitted  = "committed"
	StateRolledBack = "rolled_back"
	StateFailed     = "failed"
)

const schema = `
CREATE TABLE IF NOT EXISTS runs (
	id          TEXT PRIMARY KEY,
	started_at  DATETIME NOT NULL,
	operator    TEXT NOT NULL,
	email       TEXT NOT NULL,
	source_file TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS imports (
	run_id         TEXT NOT NULL REFERENCES runs(id),
	record_id      INTEGER NOT NULL,
	implementation TEXT NOT NULL,
	asset_key      TEXT NOT NULL DEFAULT '',
	image_url      TEXT NOT NULL DEFAULT '',
	state          TEXT NOT NULL,
	error          TEXT NOT NULL DEFAULT '',
	updated_at     DATETIME NOT NULL,
	PRIMARY KEY (run_id, record_id)
);

CREATE INDEX IF NOT EXISTS idx_imports_state ON imports(state);
`

// Entry is one journaled record import.
type Entry struct {
	RunID          string
	RecordID       int
	Implementation string
	AssetKey       string
	ImageURL       string
	State          string
	Error          string
	UpdatedAt      time.Time
}

// Journal wraps the sqlite journal database.
type Journal struct {
	db   *sql.DB
	path string
}

// Open opens (creating if needed) the journal database at path.
func Open(path string) (*Journal, error) {
	if !strings.Contains(path, ":memory:") {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("failed to create journal directory: %w", err)
		}
	}

	// _time_format=sqlite enables automatic parsing of DATETIME columns
	// to time.Time.
	connStr := path
	if strings.Contains(path, "?") {
		connStr += "&_pragma=journal_mode(WAL)&_pragma=foreign_keys(ON)&_pragma=busy_timeout(5000)&_time_format=sqlite"
	} else {
		connStr += "?_pragma=journal_mode(WAL)&_pragma=foreign_keys(ON)&_pragma=busy_timeout(5000)&_time_format=sqlite"
	}

	db, err := sql.Open("sqlite", connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to open journal: %w", err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping journal: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to initialize journal schema: %w", err)
	}
	return &Journal{db: db, path: path}, nil
}

// BeginRun records the start of an import run and returns its id.
func (j *Journal) BeginRun(ctx context.Context, operator, email, sourceFile string) (string, error) {
	runID := uuid.New().String()
	_, err := j.db.ExecContext(ctx,
		`INSERT INTO runs (id, started_at, operator, email, source_file) VALUES (?, ?, ?, ?, ?)`,
		runID, time.Now().UTC(), operator, email, sourceFile)
	if err != nil {
		return "", fmt.Errorf("failed to record run: %w", err)
	}
	return runID, nil
}

// RecordImport creates or replaces the journal entry for one record in a
// run, in state pending.
func (j *Journal) RecordImport(ctx context.Context, runID string, recordID int, implementation string) error {
	_, err := j.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO imports (run_id, record_id, implementation, state, updated_at)
		 VALUES (?, ?, ?, ?, ?)`,
		runID, recordID, implementation, StatePending, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("failed to journal record %d: %w", recordID, err)
	}
	return nil
}

// SetAsset stores the uploaded asset key and signed URL for a record and
// advances it to state uploaded.
func (j *Journal) SetAsset(ctx context.Context, runID string, recordID int, assetKey, imageURL string) error {
	return j.update(ctx, runID, recordID,
		`UPDATE imports SET asset_key = ?, image_url = ?, state = ?, updated_at = ? WHERE run_id = ? AND record_id = ?`,
		assetKey, imageURL, StateUploaded, time.Now().UTC(), runID, recordID)
}

// SetState advances a record to state, optionally with an error message.
func (j *Journal) SetState(ctx context.Context, runID string, recordID int, state, errMsg string) error {
	return j.update(ctx, runID, recordID,
		`UPDATE imports SET state = ?, error = ?, updated_at = ? WHERE run_id = ? AND record_id = ?`,
		state, errMsg, time.Now().UTC(), runID, recordID)
}

func (j *Journal) update(ctx context.Context, runID string, recordID int, query string, args ...interface{}) error {
	res, err := j.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update journal for record %d: %w", recordID, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("no journal entry for run %s record %d", runID, recordID)
	}
	return nil
}

// Uncommitted returns every entry stuck between upload and commit: states
// uploaded and written. These are the candidates for manual rollback.
func (j *Journal) Uncommitted(ctx context.Context) ([]*Entry, error) {
	rows, err := j.db.QueryContext(ctx,
		`SELECT run_id, record_id, implementation, asset_key, image_url, state, error, updated_at
		 FROM imports WHERE state IN (?, ?) ORDER BY updated_at`,
		StateUploaded, StateWritten)
	if err != nil {
		return nil, fmt.Errorf("failed to query journal: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var entries []*Entry
	for rows.Next() {
		e := &Entry{}
		if err := rows.Scan(&e.RunID, &e.RecordID, &e.Implementation, &e.AssetKey,
			&e.ImageURL, &e.State, &e.Error, &e.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan journal entry: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Path returns the journal database location.
func (j *Journal) Path() string {
	return j.path
}

// Close closes the journal database.
func (j *Journal) Close() error {
	return j.db.Close()
}
