// Package store persists estimator runs in an SQLite database: one row per
// run, its convergence trace, and the final averaged potentials.
package store

import (
	"time"

	"github.com/cockroachdb/errors"
	"github.com/jmoiron/sqlx"
	// Registers the "sqlite3" driver.
	_ "github.com/mattn/go-sqlite3"
)

const (
	// SQL statement creating the run tables
	createSQL = `
PRAGMA journal_mode = MEMORY;
CREATE TABLE IF NOT EXISTS runs (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	created DATETIME DEFAULT CURRENT_TIMESTAMP,
	name TEXT,
	variant TEXT,
	ns INTEGER,
	nt INTEGER,
	reg1 FLOAT,
	reg2 FLOAT,
	lr FLOAT,
	batch_size INTEGER,
	num_iter_max INTEGER,
	iterations INTEGER,
	elapsed_ns INTEGER,
	seed INTEGER,
	final_grad_norm FLOAT,
	final_target_error FLOAT,
	slope FLOAT
);
CREATE TABLE IF NOT EXISTS trace (
	run_id INTEGER,
	iter INTEGER,
	time FLOAT,
	grad_norm FLOAT,
	target_error FLOAT
);
CREATE TABLE IF NOT EXISTS potentials (
	run_id INTEGER,
	side TEXT,
	idx INTEGER,
	value FLOAT
);
`

	// SQL statement inserting a run row
	insertRunSQL = `
INSERT INTO runs (
	name, variant, ns, nt, reg1, reg2, lr, batch_size, num_iter_max,
	iterations, elapsed_ns, seed, final_grad_norm, final_target_error, slope
) VALUES (
	:name, :variant, :ns, :nt, :reg1, :reg2, :lr, :batch_size, :num_iter_max,
	:iterations, :elapsed_ns, :seed, :final_grad_norm, :final_target_error, :slope
)
`

	// SQL statement inserting one trace point
	insertTraceSQL = `INSERT INTO trace (run_id, iter, time, grad_norm, target_error) VALUES (?, ?, ?, ?, ?)`

	// SQL statement inserting one potential coordinate
	insertPotentialSQL = `INSERT INTO potentials (run_id, side, idx, value) VALUES (?, ?, ?, ?)`

	selectRunsSQL       = `SELECT * FROM runs ORDER BY id`
	selectTraceSQL      = `SELECT * FROM trace WHERE run_id = ? ORDER BY iter`
	selectPotentialsSQL = `SELECT value FROM potentials WHERE run_id = ? AND side = ? ORDER BY idx`

	sideAlpha = "alpha"
	sideBeta  = "beta"
)

// ErrUnknownRun is returned when a run id has no rows.
var ErrUnknownRun = errors.New("store: unknown run")

// Run is the summary row of one estimator run.
type Run struct {
	ID               int64     `db:"id"`
	Created          time.Time `db:"created"`
	Name             string    `db:"name"`
	Variant          string    `db:"variant"`
	Ns               int       `db:"ns"`
	Nt               int       `db:"nt"`
	Reg1             float64   `db:"reg1"`
	Reg2             float64   `db:"reg2"`
	LearningRate     float64   `db:"lr"`
	BatchSize        int       `db:"batch_size"`
	NumIterMax       int       `db:"num_iter_max"`
	Iterations       int       `db:"iterations"`
	ElapsedNs        int64     `db:"elapsed_ns"`
	Seed             int64     `db:"seed"`
	FinalGradNorm    float64   `db:"final_grad_norm"`
	FinalTargetError float64   `db:"final_target_error"`
	Slope            float64   `db:"slope"`
}

// Elapsed returns the run time as a duration.
func (r Run) Elapsed() time.Duration { return time.Duration(r.ElapsedNs) }

// TracePoint is one iteration of a convergence trace.
type TracePoint struct {
	RunID       int64   `db:"run_id"`
	Iter        int     `db:"iter"`
	Time        float64 `db:"time"`
	GradNorm    float64 `db:"grad_norm"`
	TargetError float64 `db:"target_error"`
}

// Record is everything written for one run.
type Record struct {
	Run   Run
	Trace []TracePoint
	Alpha []float64
	Beta  []float64
}

//go:generate mockgen -source store.go -destination store_mock.go -package store

// RunDB is a database of estimator runs.
type RunDB interface {
	// Add writes rec in one transaction and returns the new run id.
	Add(rec Record) (int64, error)
	// Runs lists all runs in insertion order.
	Runs() ([]Run, error)
	// Trace returns the convergence trace of a run.
	Trace(runID int64) ([]TracePoint, error)
	// Potentials returns the final averaged α and β of a run.
	Potentials(runID int64) (alpha, beta []float64, err error)
	Close() error
}

// runDB is the sqlx implementation of RunDB.
type runDB struct {
	db *sqlx.DB
}

// NewRunDB opens (or creates) the SQLite database in dbFile.
func NewRunDB(dbFile string) (RunDB, error) {
	return newRunDB(dbFile)
}

func newRunDB(dbFile string) (*runDB, error) {
	db, err := sqlx.Open("sqlite3", dbFile)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open database %v", dbFile)
	}
	if _, err = db.Exec(createSQL); err != nil {
		_ = db.Close()
		return nil, errors.Wrap(err, "failed to create schema")
	}

	return &runDB{db: db}, nil
}

// Close closes the database.
func (s *runDB) Close() error {
	return s.db.Close()
}

// Add writes the run row, its trace and its potentials atomically.
func (s *runDB) Add(rec Record) (int64, error) {
	tx, err := s.db.Beginx()
	if err != nil {
		return 0, errors.Wrap(err, "failed to begin transaction")
	}

	res, err := tx.NamedExec(insertRunSQL, &rec.Run)
	if err != nil {
		_ = tx.Rollback()
		return 0, errors.Wrap(err, "failed to insert run")
	}
	id, err := res.LastInsertId()
	if err != nil {
		_ = tx.Rollback()
		return 0, errors.Wrap(err, "failed to read run id")
	}

	for _, p := range rec.Trace {
		if _, err = tx.Exec(insertTraceSQL, id, p.Iter, p.Time, p.GradNorm, p.TargetError); err != nil {
			_ = tx.Rollback()
			return 0, errors.Wrapf(err, "failed to insert trace point %d", p.Iter)
		}
	}
	for _, side := range []struct {
		name   string
		values []float64
	}{{sideAlpha, rec.Alpha}, {sideBeta, rec.Beta}} {
		for k, v := range side.values {
			if _, err = tx.Exec(insertPotentialSQL, id, side.name, k, v); err != nil {
				_ = tx.Rollback()
				return 0, errors.Wrapf(err, "failed to insert %s[%d]", side.name, k)
			}
		}
	}

	if err = tx.Commit(); err != nil {
		return 0, errors.Wrap(err, "failed to commit run")
	}

	return id, nil
}

// Runs lists all runs.
func (s *runDB) Runs() ([]Run, error) {
	var runs []Run
	if err := s.db.Select(&runs, selectRunsSQL); err != nil {
		return nil, errors.Wrap(err, "failed to list runs")
	}

	return runs, nil
}

// Trace returns the trace of runID; ErrUnknownRun when it has none.
func (s *runDB) Trace(runID int64) ([]TracePoint, error) {
	var trace []TracePoint
	if err := s.db.Select(&trace, selectTraceSQL, runID); err != nil {
		return nil, errors.Wrapf(err, "failed to read trace of run %d", runID)
	}
	if len(trace) == 0 {
		return nil, errors.Wrapf(ErrUnknownRun, "run %d", runID)
	}

	return trace, nil
}

// Potentials returns the stored α and β of runID.
func (s *runDB) Potentials(runID int64) (alpha, beta []float64, err error) {
	if err = s.db.Select(&alpha, selectPotentialsSQL, runID, sideAlpha); err != nil {
		return nil, nil, errors.Wrapf(err, "failed to read alpha of run %d", runID)
	}
	if err = s.db.Select(&beta, selectPotentialsSQL, runID, sideBeta); err != nil {
		return nil, nil, errors.Wrapf(err, "failed to read beta of run %d", runID)
	}
	if len(alpha) == 0 && len(beta) == 0 {
		return nil, nil, errors.Wrapf(ErrUnknownRun, "run %d", runID)
	}

	return alpha, beta, nil
}
