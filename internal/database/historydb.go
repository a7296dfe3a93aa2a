package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // SQLite driver

	"github.com/nao1215/fieldscan/internal/model"
)

// DBFile is the history database file name.
const DBFile = "fieldscan.db"

// timeLayout is fixed width so stored timestamps sort lexically.
const timeLayout = "2006-01-02 15:04:05.000000000"

// HistoryDB stores comparison run summaries.
type HistoryDB struct {
	// db is the underlying SQL database connection.
	db *sql.DB

	// dbPath is the path to the SQLite database file.
	dbPath string
}

// Options configures HistoryDB behavior.
type Options struct {
	// CreateIfNotExists creates the database file if it doesn't exist.
	CreateIfNotExists bool

	// EnableWAL enables Write-Ahead Logging for better concurrent performance.
	EnableWAL bool
}

// DefaultOptions returns the default database options.
func DefaultOptions() Options {
	return Options{
		CreateIfNotExists: true,
		EnableWAL:         true,
	}
}

// Open opens or creates a HistoryDB in dbDir.
// If CreateIfNotExists is false and the database doesn't exist,
// ErrDatabaseNotFound is returned.
func Open(dbDir string, opts Options) (*HistoryDB, error) {
	dbPath := filepath.Join(dbDir, DBFile)

	if !opts.CreateIfNotExists {
		if _, err := os.Stat(dbPath); os.IsNotExist(err) {
			return nil, fmt.Errorf("%w at %s", ErrDatabaseNotFound, dbPath)
		} else if err != nil {
			return nil, fmt.Errorf("failed to check database path: %w", err)
		}
	} else {
		if err := os.MkdirAll(dbDir, 0750); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	// mode=rw refuses to create a new file, mode=rwc allows it.
	dsn := dbPath + "?mode=rw"
	if opts.CreateIfNotExists {
		dsn = dbPath + "?mode=rwc"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(1) // SQLite only supports one writer
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(time.Hour)

	hdb := &HistoryDB{
		db:     db,
		dbPath: dbPath,
	}

	if opts.EnableWAL {
		if _, err := db.ExecContext(context.Background(), "PRAGMA journal_mode=WAL"); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
		}
	}

	if err := hdb.createTables(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	return hdb, nil
}

// Path returns the database file path.
func (hdb *HistoryDB) Path() string {
	return hdb.dbPath
}

// Close closes the database connection.
func (hdb *HistoryDB) Close() error {
	return hdb.db.Close()
}

// createTables creates the database schema if it doesn't exist.
func (hdb *HistoryDB) createTables() error {
	schema := `
	-- One row per comparison run
	CREATE TABLE IF NOT EXISTS runs (
		id TEXT PRIMARY KEY,
		schema_name TEXT NOT NULL,
		timestamp TEXT NOT NULL,
		files INTEGER NOT NULL,
		failed INTEGER NOT NULL,
		matched INTEGER NOT NULL,
		missing INTEGER NOT NULL,
		extra INTEGER NOT NULL,
		exact INTEGER NOT NULL,
		fuzzy INTEGER NOT NULL,
		unique_missing TEXT NOT NULL,
		unique_extra TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_runs_schema ON runs(schema_name);
	CREATE INDEX IF NOT EXISTS idx_runs_timestamp ON runs(timestamp);
	`

	_, err := hdb.db.ExecContext(context.Background(), schema)
	return err
}

// RunRecord is the stored summary of one comparison run.
type RunRecord struct {
	ID            string                  `json:"id"`
	Schema        string                  `json:"schema"`
	Timestamp     time.Time               `json:"timestamp"`
	Totals        model.Totals            `json:"totals"`
	UniqueMissing []model.FieldOccurrence `json:"unique_missing_in_target"`
	UniqueExtra   []model.FieldOccurrence `json:"unique_not_in_reference"`
}

// NewRunRecord creates a record for report with a fresh run ID.
func NewRunRecord(report *model.AggregateReport) *RunRecord {
	ts := report.GeneratedAt
	if ts.IsZero() {
		ts = time.Now()
	}
	return &RunRecord{
		ID:            uuid.NewString(),
		Schema:        report.Schema,
		Timestamp:     ts.UTC(),
		Totals:        report.Totals,
		UniqueMissing: report.UniqueMissing,
		UniqueExtra:   report.UniqueExtra,
	}
}

// SaveRun stores a run record.
func (hdb *HistoryDB) SaveRun(ctx context.Context, rec *RunRecord) error {
	missingJSON, err := marshalOccurrences(rec.UniqueMissing)
	if err != nil {
		return fmt.Errorf("failed to serialize missing fields: %w", err)
	}
	extraJSON, err := marshalOccurrences(rec.UniqueExtra)
	if err != nil {
		return fmt.Errorf("failed to serialize extra fields: %w", err)
	}

	query := `
	INSERT INTO runs (id, schema_name, timestamp, files, failed,
		matched, missing, extra, exact, fuzzy, unique_missing, unique_extra)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	t := rec.Totals
	_, err = hdb.db.ExecContext(ctx, query,
		rec.ID,
		rec.Schema,
		rec.Timestamp.UTC().Format(timeLayout),
		t.Files, t.Failed,
		t.Matched, t.Missing, t.Extra, t.Exact, t.Fuzzy,
		missingJSON,
		extraJSON,
	)
	if err != nil {
		return fmt.Errorf("failed to save run: %w", err)
	}
	return nil
}

// ListRuns returns the runs of schema, newest first.
// An empty schema lists the runs of every schema.
func (hdb *HistoryDB) ListRuns(ctx context.Context, schema string) ([]*RunRecord, error) {
	return hdb.queryRuns(ctx, schema, -1)
}

// LatestRuns returns at most n runs of schema, newest first.
func (hdb *HistoryDB) LatestRuns(ctx context.Context, schema string, n int) ([]*RunRecord, error) {
	return hdb.queryRuns(ctx, schema, n)
}

func (hdb *HistoryDB) queryRuns(ctx context.Context, schema string, limit int) ([]*RunRecord, error) {
	query := `
	SELECT id, schema_name, timestamp, files, failed,
		matched, missing, extra, exact, fuzzy, unique_missing, unique_extra
	FROM runs
	WHERE (? = '' OR schema_name = ?)
	ORDER BY timestamp DESC, rowid DESC
	LIMIT ?
	`

	rows, err := hdb.db.QueryContext(ctx, query, schema, schema, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer rows.Close()

	var runs []*RunRecord
	for rows.Next() {
		var (
			rec         RunRecord
			timestamp   string
			missingJSON string
			extraJSON   string
		)
		t := &rec.Totals
		if err := rows.Scan(&rec.ID, &rec.Schema, &timestamp, &t.Files, &t.Failed,
			&t.Matched, &t.Missing, &t.Extra, &t.Exact, &t.Fuzzy,
			&missingJSON, &extraJSON); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}

		rec.Timestamp = parseTimestamp(timestamp)
		if err := json.Unmarshal([]byte(missingJSON), &rec.UniqueMissing); err != nil {
			return nil, fmt.Errorf("failed to parse run %s: %w", rec.ID, err)
		}
		if err := json.Unmarshal([]byte(extraJSON), &rec.UniqueExtra); err != nil {
			return nil, fmt.Errorf("failed to parse run %s: %w", rec.ID, err)
		}
		runs = append(runs, &rec)
	}

	return runs, rows.Err()
}

// ListSchemas returns the names of schemas with stored runs.
func (hdb *HistoryDB) ListSchemas(ctx context.Context) ([]string, error) {
	rows, err := hdb.db.QueryContext(ctx, `SELECT DISTINCT schema_name FROM runs ORDER BY schema_name`)
	if err != nil {
		return nil, fmt.Errorf("failed to list schemas: %w", err)
	}
	defer rows.Close()

	var schemas []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("failed to scan schema: %w", err)
		}
		schemas = append(schemas, name)
	}
	return schemas, rows.Err()
}

// Drift compares the two most recent runs of schema.
func (hdb *HistoryDB) Drift(ctx context.Context, schema string) (*Drift, error) {
	runs, err := hdb.LatestRuns(ctx, schema, 2)
	if err != nil {
		return nil, err
	}
	if len(runs) < 2 {
		return nil, fmt.Errorf("%w: schema %q has %d", ErrNotEnoughRuns, schema, len(runs))
	}
	return NewDrift(runs[1], runs[0]), nil
}

func marshalOccurrences(occ []model.FieldOccurrence) (string, error) {
	if occ == nil {
		occ = []model.FieldOccurrence{}
	}
	data, err := json.Marshal(occ)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// timestampFormats contains the timestamp formats that may be stored.
// The order matters: more specific formats should come first.
var timestampFormats = []string{
	timeLayout,
	"2006-01-02 15:04:05",
	time.RFC3339Nano,
	time.RFC3339,
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
