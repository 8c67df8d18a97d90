// Package storage provides SQLite-based persistence for recorded
// simulation runs. Uses the pure-Go modernc.org/sqlite driver to avoid
// CGO dependencies.
package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// Recorder manages the SQLite database connection for run persistence.
type Recorder struct {
	db *sql.DB
}

// Run describes one recorded simulation run.
type Run struct {
	ID        int64
	Scenario  string
	Steps     int
	CreatedAt time.Time
}

// Sample is a single recorded controller position within a run.
type Sample struct {
	Step    int
	TimeSec float64
	X, Y, Z float64
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Recorder, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	rec := &Recorder{db: db}

	if err := rec.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return rec, nil
}

// migrate creates the database schema if it doesn't exist.
func (r *Recorder) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS runs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			scenario TEXT NOT NULL,
			steps INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);

		CREATE TABLE IF NOT EXISTS samples (
			run_id INTEGER NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
			step INTEGER NOT NULL,
			time_sec REAL NOT NULL,
			x REAL NOT NULL,
			y REAL NOT NULL,
			z REAL NOT NULL,
			PRIMARY KEY (run_id, step)
		);
		CREATE INDEX IF NOT EXISTS idx_samples_run_id ON samples(run_id);
	`

	_, err := r.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (r *Recorder) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// BeginRun opens a new run for the given scenario.
// Returns the ID of the inserted record.
func (r *Recorder) BeginRun(scenario string) (int64, error) {
	result, err := r.db.Exec(
		"INSERT INTO runs (scenario) VALUES (?)",
		scenario,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot begin run: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

// AddSample records one controller position for the given run and bumps
// the run's step counter.
func (r *Recorder) AddSample(runID int64, s Sample) error {
	_, err := r.db.Exec(
		"INSERT INTO samples (run_id, step, time_sec, x, y, z) VALUES (?, ?, ?, ?, ?, ?)",
		runID, s.Step, s.TimeSec, s.X, s.Y, s.Z,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot add sample: %w", err)
	}

	_, err = r.db.Exec(
		"UPDATE runs SET steps = steps + 1 WHERE id = ?",
		runID,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot update run: %w", err)
	}
	return nil
}

// Runs retrieves the most recent runs, newest first.
func (r *Recorder) Runs(limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := r.db.Query(
		`SELECT id, scenario, steps, created_at
		 FROM runs
		 ORDER BY id DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var run Run
		var createdAt any
		if err := rows.Scan(&run.ID, &run.Scenario, &run.Steps, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}

		// Parse the datetime - handle both time.Time and string
		switch v := createdAt.(type) {
		case time.Time:
			run.CreatedAt = v
		case string:
			if parsed, err := time.Parse("2006-01-02 15:04:05", v); err == nil {
				run.CreatedAt = parsed
			}
		}
		runs = append(runs, run)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return runs, nil
}

// Samples retrieves every sample of the given run in step order.
func (r *Recorder) Samples(runID int64) ([]Sample, error) {
	rows, err := r.db.Query(
		`SELECT step, time_sec, x, y, z
		 FROM samples
		 WHERE run_id = ?
		 ORDER BY step ASC`,
		runID,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query samples: %w", err)
	}
	defer rows.Close()

	var samples []Sample
	for rows.Next() {
		var s Sample
		if err := rows.Scan(&s.Step, &s.TimeSec, &s.X, &s.Y, &s.Z); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		samples = append(samples, s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return samples, nil
}
