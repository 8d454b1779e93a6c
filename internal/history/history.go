// Package history records a durable, append-only audit trail of every
// operation a sync run executed, backed by SQLite. Recording is purely
// additive: a failure to record never fails or blocks a run.
package history

import (
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// Store appends operation records to a SQLite database at its configured
// path, one row per executed operation.
type Store struct {
	db *sql.DB
}

// Open opens (creating if needed) the SQLite database at path and ensures
// its schema exists.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open history database: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create history schema: %w", err)
	}
	return &Store{db: db}, nil
}

const schema = `
CREATE TABLE IF NOT EXISTS operations (
	id              INTEGER PRIMARY KEY AUTOINCREMENT,
	run_id          TEXT NOT NULL,
	repo            TEXT NOT NULL,
	kind            TEXT NOT NULL,
	source_abs      TEXT,
	destination_abs TEXT,
	executed_at     TEXT NOT NULL
);
`

// Record is one executed operation, ready to be appended to the store.
type Record struct {
	RunID          string
	Repo           string
	Kind           string
	SourceAbs      string
	DestinationAbs string
}

// Append records one operation under record.RunID, storing executedAt as
// a UTC RFC 3339 timestamp.
func (s *Store) Append(record Record, executedAt time.Time) error {
	_, err := s.db.Exec(
		`INSERT INTO operations (run_id, repo, kind, source_abs, destination_abs, executed_at) VALUES (?, ?, ?, ?, ?, ?)`,
		record.RunID, record.Repo, record.Kind, record.SourceAbs, record.DestinationAbs, executedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("append history record: %w", err)
	}
	return nil
}

// RunRecords returns every record appended under runID, oldest first.
func (s *Store) RunRecords(runID string) ([]Record, error) {
	rows, err := s.db.Query(
		`SELECT repo, kind, source_abs, destination_abs FROM operations WHERE run_id = ? ORDER BY id ASC`,
		runID,
	)
	if err != nil {
		return nil, fmt.Errorf("query history records: %w", err)
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		var r Record
		var sourceAbs, destinationAbs sql.NullString
		if err := rows.Scan(&r.Repo, &r.Kind, &sourceAbs, &destinationAbs); err != nil {
			return nil, fmt.Errorf("scan history record: %w", err)
		}
		r.RunID = runID
		r.SourceAbs = sourceAbs.String
		r.DestinationAbs = destinationAbs.String
		records = append(records, r)
	}
	return records, rows.Err()
}

// Close releases the underlying database handle.
func (s *Store) Close() error {
	return s.db.Close()
}
