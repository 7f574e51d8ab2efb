// Package sqlite persists one summary record per computed profile in a
// local SQLite database.
package sqlite

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/nlcsci/pmcice/pkg/icemodel"
)

const schema = `
CREATE TABLE IF NOT EXISTS runs (
	id               TEXT PRIMARY KEY,
	created_at       TIMESTAMP NOT NULL,
	parameterization INTEGER NOT NULL,
	levels           INTEGER NOT NULL,
	z_top            REAL NOT NULL,
	z_max            REAL NOT NULL,
	z_bot            REAL NOT NULL,
	iwc              REAL NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_runs_created_at ON runs(created_at);
`

// RunRecord is one stored model invocation: when it ran, which
// parameterization it used, how many levels the profile had, and the
// layer summary it produced.
type RunRecord struct {
	ID               string         `json:"id"`
	CreatedAt        time.Time      `json:"created_at"`
	Parameterization int            `json:"parameterization"`
	Levels           int            `json:"levels"`
	Layer            icemodel.Layer `json:"layer"`
}

// RunStore records and queries run summaries.
type RunStore struct {
	db *sql.DB
}

// Open opens (creating if necessary) the run database at path and
// bootstraps the schema.
func Open(path string) (*RunStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open SQLite database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping SQLite database: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create runs schema: %w", err)
	}
	return &RunStore{db: db}, nil
}

// RecordRun inserts one summary row and returns the stored record.
func (s *RunStore) RecordRun(vp icemodel.Parameterization, levels int, lay icemodel.Layer) (RunRecord, error) {
	rec := RunRecord{
		ID:               uuid.New().String(),
		CreatedAt:        time.Now().UTC(),
		Parameterization: int(vp),
		Levels:           levels,
		Layer:            lay,
	}
	_, err := s.db.Exec(`
		INSERT INTO runs (id, created_at, parameterization, levels, z_top, z_max, z_bot, iwc)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.ID, rec.CreatedAt, rec.Parameterization, rec.Levels,
		lay.ZTop, lay.ZMax, lay.ZBot, lay.IWC)
	if err != nil {
		return RunRecord{}, fmt.Errorf("failed to insert run: %w", err)
	}
	return rec, nil
}

// RecentRuns returns up to limit records, newest first.
func (s *RunStore) RecentRuns(limit int) ([]RunRecord, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.db.Query(`
		SELECT id, created_at, parameterization, levels, z_top, z_max, z_bot, iwc
		FROM runs
		ORDER BY created_at DESC, id
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}
	defer rows.Close()

	var recs []RunRecord
	for rows.Next() {
		var rec RunRecord
		err := rows.Scan(&rec.ID, &rec.CreatedAt, &rec.Parameterization, &rec.Levels,
			&rec.Layer.ZTop, &rec.Layer.ZMax, &rec.Layer.ZBot, &rec.Layer.IWC)
		if err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		recs = append(recs, rec)
	}
	return recs, rows.Err()
}

// Close closes the database connection.
func (s *RunStore) Close() error {
	return s.db.Close()
}
