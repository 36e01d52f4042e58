package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // SQLite driver
)

// LookupDB provides SQLite-based storage for provider lookup results.
// It manages connection pooling and provides methods for caching and
// history queries.
//
// Design decision: We use a single database file for all providers
// rather than a file per provider. This keeps history queries across
// providers cheap and simplifies backup.
type LookupDB struct {
	// db is the underlying SQL database connection.
	db *sql.DB

	// dbPath is the path to the SQLite database file.
	dbPath string
}

// Options configures LookupDB behavior.
type Options struct {
	// CreateIfNotExists creates the database file if it doesn't exist.
	CreateIfNotExists bool

	// EnableWAL enables Write-Ahead Logging for better concurrent performance.
	// This is recommended for most use cases.
	EnableWAL bool
}

// DefaultOptions returns the default database options.
func DefaultOptions() Options {
	return Options{
		CreateIfNotExists: true,
		EnableWAL:         true,
	}
}

// Open opens or creates a LookupDB at the specified directory.
// If CreateIfNotExists is true, the directory and database file are created.
// If CreateIfNotExists is false and the database doesn't exist, an error is returned.
func Open(dbDir string, opts Options) (*LookupDB, error) {
	dbPath := filepath.Join(dbDir, "osintkit.db")

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

	// modernc.org/sqlite connection string: mode=rw prevents creating
	// new files, mode=rwc allows creation.
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

	// SQLite only supports one writer
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(time.Hour)

	ldb := &LookupDB{
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

// Close closes the database connection.
func (ldb *LookupDB) Close() error {
	return ldb.db.Close()
}

// createTables creates the database schema if it doesn't exist.
func (ldb *LookupDB) createTables() error {
	schema := `
	-- Lookup records store raw provider responses keyed by query
	CREATE TABLE IF NOT EXISTS lookups (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		provider TEXT NOT NULL,
		query TEXT NOT NULL,
		response_json TEXT NOT NULL,
		timestamp DATETIME DEFAULT CURRENT_TIMESTAMP,
		UNIQUE(provider, query)
	);

	CREATE INDEX IF NOT EXISTS idx_lookups_provider ON lookups(provider);
	CREATE INDEX IF NOT EXISTS idx_lookups_query ON lookups(query);
	CREATE INDEX IF NOT EXISTS idx_lookups_timestamp ON lookups(timestamp);
	`

	_, err := ldb.db.ExecContext(context.Background(), schema)
	return err
}

// LookupRecord represents a stored provider lookup.
type LookupRecord struct {
	ID        int64
	Provider  string
	Query     string
	Response  json.RawMessage
	Timestamp time.Time
}

// SaveLookup stores a provider response, replacing any previous
// response for the same (provider, query) pair.
func (ldb *LookupDB) SaveLookup(ctx context.Context, provider, query string, response any) error {
	responseJSON, err := json.Marshal(response)
	if err != nil {
		return fmt.Errorf("failed to serialize response: %w", err)
	}

	stmt := `
	INSERT INTO lookups (provider, query, response_json)
	VALUES (?, ?, ?)
	ON CONFLICT(provider, query) DO UPDATE SET
		response_json = excluded.response_json,
		timestamp = CURRENT_TIMESTAMP
	`

	if _, err := ldb.db.ExecContext(ctx, stmt, provider, query, string(responseJSON)); err != nil {
		return fmt.Errorf("failed to save lookup: %w", err)
	}
	return nil
}

// GetLookup retrieves a cached response into out. Returns false with a
// nil error when no record exists.
func (ldb *LookupDB) GetLookup(ctx context.Context, provider, query string, out any) (bool, error) {
	stmt := `
	SELECT response_json FROM lookups
	WHERE provider = ? AND query = ?
	`

	var responseJSON string
	err := ldb.db.QueryRowContext(ctx, stmt, provider, query).Scan(&responseJSON)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to get lookup: %w", err)
	}

	if out != nil {
		if err := json.Unmarshal([]byte(responseJSON), out); err != nil {
			return false, fmt.Errorf("failed to parse cached response: %w", err)
		}
	}
	return true, nil
}

// GetRecentLookup is GetLookup restricted to records newer than ttl.
// A stale record counts as a miss but is left in place for history.
func (ldb *LookupDB) GetRecentLookup(ctx context.Context, provider, query string, ttl time.Duration, out any) (bool, error) {
	stmt := `
	SELECT response_json FROM lookups
	WHERE provider = ? AND query = ? AND timestamp > datetime('now', ?)
	`

	modifier := fmt.Sprintf("-%d seconds", int(ttl.Seconds()))

	var responseJSON string
	err := ldb.db.QueryRowContext(ctx, stmt, provider, query, modifier).Scan(&responseJSON)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to get lookup: %w", err)
	}

	if out != nil {
		if err := json.Unmarshal([]byte(responseJSON), out); err != nil {
			return false, fmt.Errorf("failed to parse cached response: %w", err)
		}
	}
	return true, nil
}

// HasRecentLookup checks if a query was answered within the specified duration.
func (ldb *LookupDB) HasRecentLookup(ctx context.Context, provider, query string, ttl time.Duration) (bool, error) {
	stmt := `
	SELECT COUNT(*) FROM lookups
	WHERE provider = ? AND query = ? AND timestamp > datetime('now', ?)
	`

	modifier := fmt.Sprintf("-%d seconds", int(ttl.Seconds()))

	var count int
	if err := ldb.db.QueryRowContext(ctx, stmt, provider, query, modifier).Scan(&count); err != nil {
		return false, fmt.Errorf("failed to check recent lookup: %w", err)
	}
	return count > 0, nil
}

// History returns stored lookups, newest first. provider filters to one
// provider when non-empty; limit caps the result when positive.
func (ldb *LookupDB) History(ctx context.Context, provider string, limit int) ([]LookupRecord, error) {
	stmt := `
	SELECT id, provider, query, response_json, timestamp
	FROM lookups
	WHERE 1=1
	`
	args := make([]any, 0, 2)

	if provider != "" {
		stmt += " AND provider = ?"
		args = append(args, provider)
	}

	stmt += " ORDER BY timestamp DESC"

	if limit > 0 {
		stmt += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := ldb.db.QueryContext(ctx, stmt, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query history: %w", err)
	}
	defer rows.Close()

	var results []LookupRecord
	for rows.Next() {
		var rec LookupRecord
		var responseJSON string
		var timestamp string

		if err := rows.Scan(&rec.ID, &rec.Provider, &rec.Query, &responseJSON, &timestamp); err != nil {
			return nil, fmt.Errorf("failed to scan lookup: %w", err)
		}

		rec.Response = json.RawMessage(responseJSON)
		rec.Timestamp = parseTimestamp(timestamp)
		results = append(results, rec)
	}

	return results, rows.Err()
}

// ListProviders returns the distinct providers with stored lookups.
func (ldb *LookupDB) ListProviders(ctx context.Context) ([]string, error) {
	stmt := `
	SELECT DISTINCT provider FROM lookups
	ORDER BY provider
	`

	rows, err := ldb.db.QueryContext(ctx, stmt)
	if err != nil {
		return nil, fmt.Errorf("failed to list providers: %w", err)
	}
	defer rows.Close()

	var providers []string
	for rows.Next() {
		var p string
		if err := rows.Scan(&p); err != nil {
			return nil, fmt.Errorf("failed to scan provider: %w", err)
		}
		providers = append(providers, p)
	}

	return providers, rows.Err()
}

// PurgeOlderThan deletes records older than age and returns how many
// were removed.
func (ldb *LookupDB) PurgeOlderThan(ctx context.Context, age time.Duration) (int64, error) {
	stmt := `
	DELETE FROM lookups
	WHERE timestamp <= datetime('now', ?)
	`

	modifier := fmt.Sprintf("-%d seconds", int(age.Seconds()))

	result, err := ldb.db.ExecContext(ctx, stmt, modifier)
	if err != nil {
		return 0, fmt.Errorf("failed to purge lookups: %w", err)
	}
	return result.RowsAffected()
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
// SQLite may return timestamps in different formats depending on configuration.
// If parsing fails with all formats, returns zero time.
func parseTimestamp(s string) time.Time {
	for _, format := range timestampFormats {
		if t, err := time.Parse(format, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
