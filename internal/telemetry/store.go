package telemetry

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS queries (
	id         INTEGER PRIMARY KEY AUTOINCREMENT,
	at         TEXT NOT NULL,
	query      TEXT NOT NULL,
	domain     TEXT NOT NULL,
	mode       TEXT NOT NULL,
	results    INTEGER NOT NULL,
	latency_ms INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_queries_at ON queries(at);
`

// Store persists query events to a local SQLite database.
type Store struct {
	db *sql.DB
}

// OpenStore opens (creating if needed) the metrics database at path.
func OpenStore(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create metrics dir: %w", err)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open metrics db: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("init metrics schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Insert writes one event.
func (s *Store) Insert(ctx context.Context, ev Event) error {
	at := ev.At
	if at.IsZero() {
		at = time.Now()
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO queries (at, query, domain, mode, results, latency_ms) VALUES (?, ?, ?, ?, ?, ?)`,
		at.UTC().Format(time.RFC3339Nano), ev.Query, ev.Domain, ev.Mode, ev.Results, ev.Latency.Milliseconds())
	if err != nil {
		return fmt.Errorf("insert query event: %w", err)
	}
	return nil
}

// Recent returns the n most recent events, newest first.
func (s *Store) Recent(ctx context.Context, n int) ([]Event, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT at, query, domain, mode, results, latency_ms FROM queries ORDER BY id DESC LIMIT ?`, n)
	if err != nil {
		return nil, fmt.Errorf("query recent events: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var events []Event
	for rows.Next() {
		var ev Event
		var at string
		var latencyMS int64
		if err := rows.Scan(&at, &ev.Query, &ev.Domain, &ev.Mode, &ev.Results, &latencyMS); err != nil {
			return nil, fmt.Errorf("scan query event: %w", err)
		}
		ev.At, _ = time.Parse(time.RFC3339Nano, at)
		ev.Latency = time.Duration(latencyMS) * time.Millisecond
		events = append(events, ev)
	}
	return events, rows.Err()
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}
