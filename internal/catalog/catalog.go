package catalog

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"
)

//go:embed schema.sql
var schemaSQL string

// schemaVersion is the current schema version. Bump this when the schema
// changes; stale databases are rejected with ErrSchemaMismatch.
const schemaVersion = 1

// ErrSchemaMismatch indicates the database schema version doesn't match the expected version.
var ErrSchemaMismatch = errors.New("schema version mismatch")

// ErrNoRuns indicates the catalog holds no recorded runs yet.
var ErrNoRuns = errors.New("catalog has no recorded runs")

// Item statuses recorded per sequence entry.
const (
	StatusCopied  = "copied"
	StatusSkipped = "skipped"
)

// Run summarizes one extraction pass.
type Run struct {
	ID          string
	StartedAt   time.Time
	FinishedAt  time.Time
	ArchiveRoot string
	OutputDir   string
	Sections    int
	Copied      int
	Skipped     int
}

// Item records the outcome of one sequence entry.
type Item struct {
	RunID         string
	SectionNumber int
	SectionName   string
	Ordinal       int
	RefID         string
	Kind          string
	ContextID     string
	DisplayName   string
	SourcePath    string
	DestPath      string
	Status        string
	Reason        string
}

// Store manages catalog persistence backed by SQLite.
type Store struct {
	db   *sql.DB
	path string
}

const (
	busyRetryAttempts       = 5
	busyRetryInitialBackoff = 10 * time.Millisecond
	busyRetryMaxBackoff     = 200 * time.Millisecond
)

// Open initializes or connects to the catalog database at path.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("catalog path is empty")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("ensure catalog directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	store := &Store{db: db, path: path}
	if err := store.initSchema(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Path returns the on-disk database location.
func (s *Store) Path() string {
	if s == nil {
		return ""
	}
	return s.path
}

func (s *Store) initSchema(ctx context.Context) error {
	var tableExists int
	err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(1) FROM sqlite_master WHERE type='table' AND name='schema_version'",
	).Scan(&tableExists)
	if err != nil {
		return fmt.Errorf("check schema_version table: %w", err)
	}

	if tableExists == 0 {
		return s.createSchema(ctx)
	}

	var version int
	err = s.db.QueryRowContext(ctx, "SELECT version FROM schema_version LIMIT 1").Scan(&version)
	if err != nil {
		return fmt.Errorf("read schema version: %w", err)
	}
	if version != schemaVersion {
		return fmt.Errorf("%w: database has version %d, expected %d (delete %s to rebuild)",
			ErrSchemaMismatch, version, schemaVersion, s.path)
	}
	return nil
}

func (s *Store) createSchema(ctx context.Context) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin schema tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, schemaSQL); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	if _, err := tx.ExecContext(ctx, "INSERT INTO schema_version (version) VALUES (?)", schemaVersion); err != nil {
		return fmt.Errorf("record schema version: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit schema: %w", err)
	}
	return nil
}

// BeginRun records the start of an extraction pass.
func (s *Store) BeginRun(ctx context.Context, run Run) error {
	started := run.StartedAt
	if started.IsZero() {
		started = time.Now()
	}
	return s.execWithRetry(ctx,
		`INSERT INTO runs (id, started_at, archive_root, output_dir) VALUES (?, ?, ?, ?)`,
		run.ID, started.UTC().Format(time.RFC3339), run.ArchiveRoot, run.OutputDir)
}

// FinishRun stamps the completion time and counters on a run.
func (s *Store) FinishRun(ctx context.Context, id string, sections, copied, skipped int) error {
	return s.execWithRetry(ctx,
		`UPDATE runs SET finished_at = ?, sections = ?, copied = ?, skipped = ? WHERE id = ?`,
		time.Now().UTC().Format(time.RFC3339), sections, copied, skipped, id)
}

// RecordItem appends one item outcome to a run.
func (s *Store) RecordItem(ctx context.Context, item Item) error {
	return s.execWithRetry(ctx,
		`INSERT INTO items (run_id, section_number, section_name, ordinal, ref_id, kind,
			context_id, display_name, source_path, dest_path, status, reason)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		item.RunID, item.SectionNumber, item.SectionName, item.Ordinal, item.RefID, item.Kind,
		item.ContextID, item.DisplayName, item.SourcePath, item.DestPath, item.Status, item.Reason)
}

// LatestRun returns the most recently started run.
func (s *Store) LatestRun(ctx context.Context) (Run, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, started_at, COALESCE(finished_at, ''), archive_root, output_dir, sections, copied, skipped
		 FROM runs ORDER BY started_at DESC, rowid DESC LIMIT 1`)
	return scanRun(row)
}

// RunByID returns the run with the given identifier.
func (s *Store) RunByID(ctx context.Context, id string) (Run, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, started_at, COALESCE(finished_at, ''), archive_root, output_dir, sections, copied, skipped
		 FROM runs WHERE id = ?`, id)
	return scanRun(row)
}

// Items returns a run's item outcomes in insertion order.
func (s *Store) Items(ctx context.Context, runID string) ([]Item, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT run_id, section_number, section_name, ordinal, ref_id, kind,
			context_id, display_name, source_path, dest_path, status, reason
		 FROM items WHERE run_id = ? ORDER BY id`, runID)
	if err != nil {
		return nil, fmt.Errorf("query items: %w", err)
	}
	defer rows.Close()

	var items []Item
	for rows.Next() {
		var item Item
		if err := rows.Scan(&item.RunID, &item.SectionNumber, &item.SectionName, &item.Ordinal,
			&item.RefID, &item.Kind, &item.ContextID, &item.DisplayName,
			&item.SourcePath, &item.DestPath, &item.Status, &item.Reason); err != nil {
			return nil, fmt.Errorf("scan item: %w", err)
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func scanRun(row *sql.Row) (Run, error) {
	var run Run
	var started, finished string
	err := row.Scan(&run.ID, &started, &finished, &run.ArchiveRoot, &run.OutputDir,
		&run.Sections, &run.Copied, &run.Skipped)
	if errors.Is(err, sql.ErrNoRows) {
		return Run{}, ErrNoRuns
	}
	if err != nil {
		return Run{}, fmt.Errorf("scan run: %w", err)
	}
	if ts, parseErr := time.Parse(time.RFC3339, started); parseErr == nil {
		run.StartedAt = ts
	}
	if finished != "" {
		if ts, parseErr := time.Parse(time.RFC3339, finished); parseErr == nil {
			run.FinishedAt = ts
		}
	}
	return run, nil
}

func (s *Store) execWithRetry(ctx context.Context, query string, args ...any) error {
	if ctx == nil {
		ctx = context.Background()
	}
	delay := busyRetryInitialBackoff
	var lastErr error
	for attempt := 0; attempt < busyRetryAttempts; attempt++ {
		_, lastErr = s.db.ExecContext(ctx, query, args...)
		if lastErr == nil {
			return nil
		}
		if !isSQLiteBusy(lastErr) || attempt == busyRetryAttempts-1 {
			break
		}
		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return ctx.Err()
		}
		if next := delay * 2; next <= busyRetryMaxBackoff {
			delay = next
		}
	}
	return lastErr
}

func isSQLiteBusy(err error) bool {
	if err == nil {
		return false
	}
	var coder interface{ Code() int }
	if errors.As(err, &coder) && coder.Code() == 5 {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "SQLITE_BUSY") || strings.Contains(msg, "database is locked")
}
