// Package results stores benchmark runs of the prime generators in a
// small SQLite database, so that timings can be compared across
// machines and revisions.
package results

import (
	"database/sql"
	"errors"
	"time"

	_ "github.com/mattn/go-sqlite3" // Import go-sqlite3 library
)

// ErrRunMissing is returned when no run matches a query.
var ErrRunMissing = errors.New("benchmark run not found")

// Run is one recorded generation benchmark.
type Run struct {
	ID        int64
	Kind      string // "prime" or "safe-prime"
	Bits      int
	Workers   int
	Elapsed   time.Duration
	PrimeHex  string
	StartedAt time.Time
}

// SQLiteStore is backed by SQLite
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens (and if necessary creates) the results database
// at path.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}
	stmt, err := db.Prepare(`
		CREATE TABLE IF NOT EXISTS runs (
			id INTEGER NOT NULL PRIMARY KEY AUTOINCREMENT,
			kind TEXT NOT NULL,          -- "prime" or "safe-prime"
			bits INTEGER NOT NULL,       -- requested bit length
			workers INTEGER NOT NULL,    -- 1 for the serial generators
			elapsed_ns INTEGER NOT NULL, -- wall time of the run
			prime_hex TEXT NOT NULL,
			started_at INTEGER NOT NULL  -- unix timestamp in seconds
		);
	`)
	if err != nil {
		return nil, err
	}
	defer stmt.Close()
	if _, err = stmt.Exec(); err != nil {
		return nil, err
	}
	return &SQLiteStore{db: db}, err
}

// Close closes the underlying database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// Record inserts a run, filling in its ID.
func (s *SQLiteStore) Record(run *Run) error {
	stmt, err := s.db.Prepare(`
		INSERT INTO runs (kind, bits, workers, elapsed_ns, prime_hex, started_at)
		          VALUES (?,    ?,    ?,       ?,          ?,         ?);
	`)
	if err != nil {
		return err
	}
	defer stmt.Close()
	res, err := stmt.Exec(
		run.Kind,
		run.Bits,
		run.Workers,
		run.Elapsed.Nanoseconds(),
		run.PrimeHex,
		run.StartedAt.Unix(),
	)
	if err != nil {
		return err
	}
	run.ID, err = res.LastInsertId()
	return err
}

func scanRun(row *sql.Row, run *Run) (*Run, error) {
	var elapsedNS, startedAt int64
	err := row.Scan(
		&(run.ID),
		&(run.Kind),
		&(run.Bits),
		&(run.Workers),
		&elapsedNS,
		&(run.PrimeHex),
		&startedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return run, ErrRunMissing
	}
	run.Elapsed = time.Duration(elapsedNS)
	run.StartedAt = time.Unix(startedAt, 0)
	return run, err
}

// Fastest returns the fastest recorded run for the given kind and bit
// length.
func (s *SQLiteStore) Fastest(kind string, bits int) (*Run, error) {
	stmt, err := s.db.Prepare(`
		SELECT id, kind, bits, workers, elapsed_ns, prime_hex, started_at
		FROM runs
		WHERE kind = ? AND bits = ?
		ORDER BY elapsed_ns ASC, id ASC LIMIT 1
	`)
	if err != nil {
		return nil, err
	}
	defer stmt.Close()
	return scanRun(stmt.QueryRow(kind, bits), &Run{})
}

// Runs returns every recorded run for the given kind and bit length,
// most recent first.
func (s *SQLiteStore) Runs(kind string, bits int) ([]*Run, error) {
	stmt, err := s.db.Prepare(`
		SELECT id, kind, bits, workers, elapsed_ns, prime_hex, started_at
		FROM runs
		WHERE kind = ? AND bits = ?
		ORDER BY started_at DESC, id DESC
	`)
	if err != nil {
		return nil, err
	}
	defer stmt.Close()
	rows, err := stmt.Query(kind, bits)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*Run
	for rows.Next() {
		run := &Run{}
		var elapsedNS, startedAt int64
		err := rows.Scan(
			&(run.ID),
			&(run.Kind),
			&(run.Bits),
			&(run.Workers),
			&elapsedNS,
			&(run.PrimeHex),
			&startedAt,
		)
		if err != nil {
			return nil, err
		}
		run.Elapsed = time.Duration(elapsedNS)
		run.StartedAt = time.Unix(startedAt, 0)
		out = append(out, run)
	}
	return out, rows.Err()
}
