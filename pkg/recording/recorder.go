// Package recording persists computed limit tables to a SQLite database so
// past protection settings stay auditable.
package recording

import (
	"database/sql"
	"fmt"
	"time"

	// Need to use SQLite connections.
	_ "github.com/mattn/go-sqlite3"
	"github.com/rs/xid"

	"github.com/teddyrendahl/pymps/pkg/limits"
)

// timeLayout matches SQLite's datetime text format with sub-second digits.
const timeLayout = "2006-01-02 15:04:05.000000000"

const schema = `
CREATE TABLE IF NOT EXISTS runs (
	run_id       TEXT PRIMARY KEY,
	state        TEXT NOT NULL,
	requirements TEXT NOT NULL,
	beam         TEXT NOT NULL,
	max_power_w  REAL NOT NULL,
	command      TEXT NOT NULL,
	hostname     TEXT NOT NULL,
	created_at   TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS limit_cells (
	run_id          TEXT NOT NULL REFERENCES runs(run_id),
	bunch_charge    TEXT NOT NULL,
	photon_energy   TEXT NOT NULL,
	min_attenuation REAL NOT NULL,
	max_rep_rate_hz REAL NOT NULL
);`

// Run is the metadata stored once per recorded state. ID and CreatedAt are
// assigned by Record.
type Run struct {
	ID           string
	State        string
	Requirements string
	Beam         string
	MaxPowerW    float64
	Command      string
	Hostname     string
	CreatedAt    time.Time
}

// Recorder appends computed limit tables to a SQLite database. The embedded
// DB is open for ad-hoc queries.
type Recorder struct {
	*sql.DB
}

// Open opens (or creates) the database at path and ensures the schema.
// Recording into an existing database appends new runs.
func Open(path string) (*Recorder, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("recording: open %s: %w", path, err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("recording: create schema: %w", err)
	}
	return &Recorder{DB: db}, nil
}

// Record writes one runs row plus every cell of both limit tables inside a
// single transaction, so a failed recording leaves no partial run behind.
// It returns the generated run id.
func (r *Recorder) Record(run Run, l *limits.Limits) (string, error) {
	run.ID = xid.New().String()
	run.CreatedAt = time.Now()

	tx, err := r.Begin()
	if err != nil {
		return "", fmt.Errorf("recording: begin: %w", err)
	}
	if _, err := tx.Exec(
		`INSERT INTO runs VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		run.ID, run.State, run.Requirements, run.Beam, run.MaxPowerW,
		run.Command, run.Hostname, run.CreatedAt.Format(timeLayout),
	); err != nil {
		_ = tx.Rollback()
		return "", fmt.Errorf("recording: insert run: %w", err)
	}

	stmt, err := tx.Prepare(`INSERT INTO limit_cells VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		_ = tx.Rollback()
		return "", fmt.Errorf("recording: prepare: %w", err)
	}
	rows := l.MinAttenuation.Rows()
	cols := l.MinAttenuation.Cols()
	for i, charge := range rows {
		for j, energy := range cols {
			if _, err := stmt.Exec(run.ID, charge, energy,
				l.MinAttenuation.Value(i, j), l.MaxRepRate.Value(i, j)); err != nil {
				stmt.Close()
				_ = tx.Rollback()
				return "", fmt.Errorf("recording: insert cell (%s, %s): %w", charge, energy, err)
			}
		}
	}
	stmt.Close()
	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("recording: commit: %w", err)
	}
	return run.ID, nil
}
