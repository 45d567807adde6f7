package estimator

import (
	"time"

	"github.com/katalvlaran/rwe/matrix"
)

// Solve estimates the dual potentials of the regularized OT problem (a, b,
// cost) and returns the averaged trajectories.
//
// Stages:
//  1. Validate Options, both measures and the cost matrix.
//  2. Dispatch on BatchSize: 0 ⇒ SemiSGD, 1 ⇒ SGD, ≥2 ⇒ BatchedSGD.
//  3. Average the α and β trajectories (AverageTrajectory).
//
// The three returned sequences have one entry per completed iteration:
// exactly NumIterMax without MaxTime, possibly fewer with it.
//
// Errors: ErrEmptyMeasure, ErrNotProbability, ErrNilCost,
// ErrDimensionMismatch, ErrNonFiniteCost, ErrBadRegularization,
// ErrBadIterations, ErrBadBatchSize, ErrBadLearningRate, ErrBadTimeLimit,
// ErrBadTolerance, ErrNumericalInstability.
func Solve(a, b []float64, cost matrix.Matrix, opts Options) (Result, error) {
	// Stage 1: validate once.
	p, err := validateAll(a, b, cost, opts)
	if err != nil {
		return Result{}, err
	}
	variant, err := VariantFor(opts.BatchSize)
	if err != nil {
		return Result{}, err
	}

	// Stage 2: run the selected driver.
	var (
		r       = newRunner(p, opts)
		traj    Trajectory
		elapsed time.Duration
	)
	switch variant {
	case SemiStochastic:
		traj, elapsed, err = r.runSemi()
	case SingleSample:
		traj, elapsed, err = r.runSGD()
	default:
		traj, elapsed, err = r.runBatched()
	}
	if err != nil {
		return Result{}, err
	}

	// Stage 3: average.
	return Result{
		Alpha:      AverageTrajectory(traj.Alpha),
		Beta:       AverageTrajectory(traj.Beta),
		Times:      traj.Times,
		Variant:    variant,
		Iterations: traj.Len(),
		Elapsed:    elapsed,
	}, nil
}
