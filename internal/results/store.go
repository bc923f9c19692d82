package results

import (
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

const schema = `
CREATE TABLE IF NOT EXISTS runs (
	id            INTEGER PRIMARY KEY AUTOINCREMENT,
	name          TEXT    NOT NULL,
	capacity      INTEGER NOT NULL,
	items         INTEGER NOT NULL,
	trials        INTEGER NOT NULL,
	mean_ns       INTEGER NOT NULL,
	min_ns        INTEGER NOT NULL,
	max_ns        INTEGER NOT NULL,
	items_per_sec REAL    NOT NULL,
	mean_cycles   INTEGER NOT NULL DEFAULT 0,
	recorded_at   TEXT    NOT NULL
);
CREATE INDEX IF NOT EXISTS runs_name_time ON runs(name, recorded_at);
`

// Store keeps benchmark history in a SQLite file so runs on the same
// machine can be compared across code changes.
type Store struct {
	db *sql.DB
}

// OpenStore opens (creating if needed) the history database at path.
func OpenStore(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("results: open %s: %w", path, err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("results: init schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Append inserts the records in one transaction.
func (s *Store) Append(recs []Record) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("results: begin: %w", err)
	}
	stmt, err := tx.Prepare(`INSERT INTO runs
		(name, capacity, items, trials, mean_ns, min_ns, max_ns, items_per_sec, mean_cycles, recorded_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		tx.Rollback()
		return fmt.Errorf("results: prepare: %w", err)
	}
	defer stmt.Close()

	for _, r := range recs {
		if _, err := stmt.Exec(
			r.Name, r.Capacity, r.Items, r.Trials,
			r.MeanNs, r.MinNs, r.MaxNs, r.ItemsPerSec, r.MeanCycles,
			r.RecordedAt.Format(time.RFC3339Nano),
		); err != nil {
			tx.Rollback()
			return fmt.Errorf("results: insert %s: %w", r.Name, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("results: commit: %w", err)
	}
	return nil
}

// Recent returns up to limit records for name, newest first. An empty
// name matches every configuration.
func (s *Store) Recent(name string, limit int) ([]Record, error) {
	query := `SELECT name, capacity, items, trials, mean_ns, min_ns, max_ns, items_per_sec, mean_cycles, recorded_at
		FROM runs`
	args := []any{}
	if name != "" {
		query += ` WHERE name = ?`
		args = append(args, name)
	}
	query += ` ORDER BY recorded_at DESC LIMIT ?`
	args = append(args, limit)

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("results: query: %w", err)
	}
	defer rows.Close()

	var recs []Record
	for rows.Next() {
		var r Record
		var ts string
		if err := rows.Scan(
			&r.Name, &r.Capacity, &r.Items, &r.Trials,
			&r.MeanNs, &r.MinNs, &r.MaxNs, &r.ItemsPerSec, &r.MeanCycles, &ts,
		); err != nil {
			return nil, fmt.Errorf("results: scan: %w", err)
		}
		if t, err := time.Parse(time.RFC3339Nano, ts); err == nil {
			r.RecordedAt = t
		}
		recs = append(recs, r)
	}
	return recs, rows.Err()
}

// Close releases the database handle.
func (s *Store) Close() error {
	return s.db.Close()
}
