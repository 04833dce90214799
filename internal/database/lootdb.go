package database

import (
	"context"
	"database/sql"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/crypto/sha3"
	_ "modernc.org/sqlite" // SQLite driver

	"github.com/nao1215/protravel/internal/model"
)

// FileName is the name of the database file inside the database directory.
const FileName = "protravel.db"

// LootDB provides SQLite-based storage for fetch history and notices.
type LootDB struct {
	// db is the underlying SQL database connection.
	db *sql.DB

	// dbPath is the path to the SQLite database file.
	dbPath string
}

// Options configures LootDB behavior.
type Options struct {
	// CreateIfNotExists creates the database file if it doesn't exist.
	CreateIfNotExists bool

	// EnableWAL enables Write-Ahead Logging.
	EnableWAL bool
}

// DefaultOptions returns the default database options.
func DefaultOptions() Options {
	return Options{
		CreateIfNotExists: true,
		EnableWAL:         true,
	}
}

// Open opens or creates a LootDB in dbDir.
// If CreateIfNotExists is false and the database doesn't exist, an error is returned.
func Open(dbDir string, opts Options) (*LootDB, error) {
	dbPath := filepath.Join(dbDir, FileName)

	if !opts.CreateIfNotExists {
		if _, err := os.Stat(dbPath); os.IsNotExist(err) {
			return nil, fmt.Errorf("database not found at %s (use CreateIfNotExists option to create)", dbPath)
		} else if err != nil {
			return nil, fmt.Errorf("failed to check database path: %w", err)
		}
	} else {
		if err := os.MkdirAll(dbDir, 0750); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	// mode=rw refuses to create a missing file, mode=rwc allows it.
	var dsn string
	if opts.CreateIfNotExists {
		dsn = dbPath + "?mode=rwc"
	} else {
		dsn = dbPath + "?mode=rw"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(1) // SQLite only supports one writer
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(time.Hour)

	ldb := &LootDB{
		db:     db,
		dbPath: dbPath,
	}

	if opts.EnableWAL {
		if _, err := db.ExecContext(context.Background(), "PRAGMA journal_mode=WAL"); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
		}
	}

	if err := ldb.createTables(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	return ldb, nil
}

// Path returns the database file path.
func (ldb *LootDB) Path() string {
	return ldb.dbPath
}

// Close closes the database connection.
func (ldb *LootDB) Close() error {
	return ldb.db.Close()
}

// createTables creates the database schema if it doesn't exist.
func (ldb *LootDB) createTables() error {
	schema := `
	-- One row per target and path, updated on every attempt
	CREATE TABLE IF NOT EXISTS fetches (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		target TEXT NOT NULL,
		path TEXT NOT NULL,
		outcome TEXT NOT NULL,
		size INTEGER DEFAULT 0,
		digest TEXT,
		error TEXT,
		timestamp DATETIME DEFAULT CURRENT_TIMESTAMP,
		UNIQUE(target, path)
	);

	CREATE INDEX IF NOT EXISTS idx_fetches_target ON fetches(target);
	CREATE INDEX IF NOT EXISTS idx_fetches_outcome ON fetches(outcome);

	-- Notices raised by handlers and the loot analyzer
	CREATE TABLE IF NOT EXISTS notices (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		target TEXT NOT NULL,
		path TEXT NOT NULL,
		source TEXT NOT NULL,
		kind TEXT NOT NULL,
		severity TEXT NOT NULL,
		message TEXT NOT NULL,
		details TEXT,
		timestamp DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_notices_target ON notices(target);

	-- Run reports stored as JSON
	CREATE TABLE IF NOT EXISTS runs (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		target TEXT NOT NULL,
		state TEXT NOT NULL,
		timestamp DATETIME DEFAULT CURRENT_TIMESTAMP,
		report_json TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_runs_target ON runs(target);
	`

	_, err := ldb.db.ExecContext(context.Background(), schema)
	return err
}

// Digest returns the hex SHA3-256 digest of content.
func Digest(content []byte) string {
	sum := sha3.Sum256(content)
	return hex.EncodeToString(sum[:])
}

// FetchRecord is one stored fetch attempt.
type FetchRecord struct {
	ID        int64
	Target    string
	Path      string
	Outcome   model.Outcome
	Size      int
	Digest    string
	Error     string
	Timestamp time.Time
}

// RecordFetch inserts or updates the fetch record for target and path.
// The digest is computed only for non-empty content.
func (ldb *LootDB) RecordFetch(ctx context.Context, target, path string, outcome model.Outcome, content []byte, fetchErr error) error {
	digest := ""
	if len(content) > 0 {
		digest = Digest(content)
	}
	errText := ""
	if fetchErr != nil {
		errText = fetchErr.Error()
	}

	query := `
	INSERT INTO fetches (target, path, outcome, size, digest, error)
	VALUES (?, ?, ?, ?, ?, ?)
	ON CONFLICT(target, path) DO UPDATE SET
		outcome = excluded.outcome,
		size = excluded.size,
		digest = excluded.digest,
		error = excluded.error,
		timestamp = CURRENT_TIMESTAMP
	`

	_, err := ldb.db.ExecContext(ctx, query,
		target,
		path,
		outcome.String(),
		len(content),
		digest,
		errText,
	)
	if err != nil {
		return fmt.Errorf("failed to record fetch: %w", err)
	}
	return nil
}

// GetFetch retrieves the fetch record for target and path.
// It returns nil without error when no record exists.
func (ldb *LootDB) GetFetch(ctx context.Context, target, path string) (*FetchRecord, error) {
	query := `
	SELECT id, target, path, outcome, size, digest, error, timestamp
	FROM fetches
	WHERE target = ? AND path = ?
	`

	rec, err := scanFetch(ldb.db.QueryRowContext(ctx, query, target, path))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get fetch record: %w", err)
	}
	return rec, nil
}

// ListFetches returns the fetch records of target ordered by path.
// Failed attempts are skipped unless includeFailures is true.
func (ldb *LootDB) ListFetches(ctx context.Context, target string, includeFailures bool) ([]FetchRecord, error) {
	query := `
	SELECT id, target, path, outcome, size, digest, error, timestamp
	FROM fetches
	WHERE target = ?
	`
	args := []any{target}
	if !includeFailures {
		query += " AND outcome != ?"
		args = append(args, model.OutcomeFailure.String())
	}
	query += " ORDER BY path"

	rows, err := ldb.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list fetches: %w", err)
	}
	defer rows.Close()

	var results []FetchRecord
	for rows.Next() {
		rec, err := scanFetch(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan fetch record: %w", err)
		}
		results = append(results, *rec)
	}
	return results, rows.Err()
}

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanFetch(row rowScanner) (*FetchRecord, error) {
	var rec FetchRecord
	var outcome, timestamp string
	var digest, errText sql.NullString

	if err := row.Scan(
		&rec.ID,
		&rec.Target,
		&rec.Path,
		&outcome,
		&rec.Size,
		&digest,
		&errText,
		&timestamp,
	); err != nil {
		return nil, err
	}
	rec.Outcome = model.ParseOutcome(outcome)
	rec.Digest = digest.String
	rec.Error = errText.String
	rec.Timestamp = parseTimestamp(timestamp)
	return &rec, nil
}

// NoticeRecord is one stored notice.
type NoticeRecord struct {
	ID        int64
	Target    string
	Notice    model.Notice
	Timestamp time.Time
}

// RecordNotice appends a notice raised for target.
func (ldb *LootDB) RecordNotice(ctx context.Context, target string, n model.Notice) error {
	query := `
	INSERT INTO notices (target, path, source, kind, severity, message, details)
	VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	_, err := ldb.db.ExecContext(ctx, query,
		target,
		n.Path,
		n.Source,
		n.Kind,
		n.Severity.String(),
		n.Message,
		strings.Join(n.Details, "\n"),
	)
	if err != nil {
		return fmt.Errorf("failed to record notice: %w", err)
	}
	return nil
}

// ListNotices returns the notices recorded for target, oldest first.
func (ldb *LootDB) ListNotices(ctx context.Context, target string) ([]NoticeRecord, error) {
	query := `
	SELECT id, target, path, source, kind, severity, message, details, timestamp
	FROM notices
	WHERE target = ?
	ORDER BY id
	`

	rows, err := ldb.db.QueryContext(ctx, query, target)
	if err != nil {
		return nil, fmt.Errorf("failed to list notices: %w", err)
	}
	defer rows.Close()

	var results []NoticeRecord
	for rows.Next() {
		var rec NoticeRecord
		var severity, timestamp string
		var details sql.NullString

		if err := rows.Scan(
			&rec.ID,
			&rec.Target,
			&rec.Notice.Path,
			&rec.Notice.Source,
			&rec.Notice.Kind,
			&severity,
			&rec.Notice.Message,
			&details,
			&timestamp,
		); err != nil {
			return nil, fmt.Errorf("failed to scan notice: %w", err)
		}

		if sev, err := model.ParseSeverity(severity); err == nil {
			rec.Notice.Severity = sev
		}
		if details.String != "" {
			rec.Notice.Details = strings.Split(details.String, "\n")
		}
		rec.Timestamp = parseTimestamp(timestamp)
		results = append(results, rec)
	}
	return results, rows.Err()
}

// SaveRun stores a finished run report as JSON.
func (ldb *LootDB) SaveRun(ctx context.Context, report *model.RunReport) error {
	reportJSON, err := json.Marshal(report)
	if err != nil {
		return fmt.Errorf("failed to serialize report: %w", err)
	}

	query := `
	INSERT INTO runs (target, state, report_json)
	VALUES (?, ?, ?)
	`

	_, err = ldb.db.ExecContext(ctx, query,
		report.Target,
		report.State.String(),
		string(reportJSON),
	)
	if err != nil {
		return fmt.Errorf("failed to save run report: %w", err)
	}
	return nil
}

// ListRuns returns the stored run reports of target, newest first.
func (ldb *LootDB) ListRuns(ctx context.Context, target string) ([]*model.RunReport, error) {
	query := `
	SELECT report_json FROM runs
	WHERE target = ?
	ORDER BY id DESC
	`

	rows, err := ldb.db.QueryContext(ctx, query, target)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer rows.Close()

	var reports []*model.RunReport
	for rows.Next() {
		var reportJSON string
		if err := rows.Scan(&reportJSON); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}

		var report model.RunReport
		if err := json.Unmarshal([]byte(reportJSON), &report); err != nil {
			continue // Skip malformed reports
		}
		reports = append(reports, &report)
	}
	return reports, rows.Err()
}

// TargetSummary is the per-target overview shown by the history command.
type TargetSummary struct {
	Target    string
	Succeeded int
	Empty     int
	Failed    int
	LastSeen  time.Time
}

// ListTargets returns every target with at least one fetch, ordered by name.
func (ldb *LootDB) ListTargets(ctx context.Context) ([]TargetSummary, error) {
	query := `
	SELECT target,
		SUM(CASE WHEN outcome = ? THEN 1 ELSE 0 END),
		SUM(CASE WHEN outcome = ? THEN 1 ELSE 0 END),
		SUM(CASE WHEN outcome = ? THEN 1 ELSE 0 END),
		MAX(timestamp)
	FROM fetches
	GROUP BY target
	ORDER BY target
	`

	rows, err := ldb.db.QueryContext(ctx, query,
		model.OutcomeSuccess.String(),
		model.OutcomeEmpty.String(),
		model.OutcomeFailure.String(),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list targets: %w", err)
	}
	defer rows.Close()

	var results []TargetSummary
	for rows.Next() {
		var s TargetSummary
		var lastSeen sql.NullString
		if err := rows.Scan(&s.Target, &s.Succeeded, &s.Empty, &s.Failed, &lastSeen); err != nil {
			return nil, fmt.Errorf("failed to scan target: %w", err)
		}
		s.LastSeen = parseTimestamp(lastSeen.String)
		results = append(results, s)
	}
	return results, rows.Err()
}

// timestampFormats contains the timestamp formats that SQLite may return.
// The order matters: more specific formats should come first.
var timestampFormats = []string{
	"2006-01-02 15:04:05",     // SQLite default datetime format
	"2006-01-02T15:04:05Z",    // ISO 8601 with Z suffix
	"2006-01-02T15:04:05",     // ISO 8601 without timezone
	time.RFC3339,              // Full RFC3339 format
	time.RFC3339Nano,          // RFC3339 with nanoseconds
	"2006-01-02 15:04:05.999", // SQLite with milliseconds
}

// parseTimestamp attempts to parse a timestamp string using multiple formats.
// If parsing fails with all formats, returns zero time.
func parseTimestamp(s string) time.Time {
	for _, format := range timestampFormats {
		if t, err := time.Parse(format, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
