package estimator

// Validation shared by Solve and the exported drivers.
//
// Inputs are validated exactly once, before any state is allocated; the
// drivers then work on explicit dimensions (ns, nt) and never re-derive them.

import (
	"math"

	"github.com/cockroachdb/errors"
	"github.com/katalvlaran/rwe/matrix"
	"github.com/katalvlaran/rwe/sampler"
)

// problem is a validated, immutable view of the inputs.
type problem struct {
	a, b   []float64
	cost   *matrix.Dense
	ns, nt int
}

// validateAll verifies Options, both measures and the cost matrix.
//
// Stages:
//  1. Options-only sanity (regularization, budget, batch size, step, tolerance).
//  2. Measures are probability vectors within PMFTolerance.
//  3. Cost is ns×nt and finite.
//
// Complexity: O(ns·nt).
func validateAll(a, b []float64, cost matrix.Matrix, opts Options) (problem, error) {
	// Stage 1: options.
	if err := validateOptions(opts); err != nil {
		return problem{}, err
	}

	// Stage 2: measures.
	tol := opts.PMFTolerance
	if tol == 0 {
		tol = DefaultPMFTolerance
	}
	if err := validateMeasure("source", a, tol); err != nil {
		return problem{}, err
	}
	if err := validateMeasure("target", b, tol); err != nil {
		return problem{}, err
	}

	// Stage 3: cost.
	if matrix.ValidateNotNil(cost) != nil {
		return problem{}, ErrNilCost
	}
	ns, nt := len(a), len(b)
	if err := matrix.ValidateShape(cost, ns, nt); err != nil {
		return problem{}, errors.Wrapf(ErrDimensionMismatch,
			"cost is %d×%d, measures need %d×%d", cost.Rows(), cost.Cols(), ns, nt)
	}
	if err := matrix.ValidateFinite(cost); err != nil {
		return problem{}, errors.Wrapf(ErrNonFiniteCost, "%v", err)
	}
	dense, err := matrix.AsDense(cost)
	if err != nil {
		return problem{}, errors.Wrap(err, "estimator: cost")
	}

	return problem{a: a, b: b, cost: dense, ns: ns, nt: nt}, nil
}

// validateOptions checks Options without reference to the data.
// Complexity: O(1).
func validateOptions(opts Options) error {
	if !positiveFinite(opts.Reg1) {
		return errors.Wrapf(ErrBadRegularization, "reg1 = %v", opts.Reg1)
	}
	if !positiveFinite(opts.Reg2) {
		return errors.Wrapf(ErrBadRegularization, "reg2 = %v", opts.Reg2)
	}
	if opts.NumIterMax <= 0 {
		return errors.Wrapf(ErrBadIterations, "NumIterMax = %d", opts.NumIterMax)
	}
	if opts.BatchSize < 0 {
		return errors.Wrapf(ErrBadBatchSize, "batch size %d", opts.BatchSize)
	}
	if !positiveFinite(opts.LearningRate) {
		return errors.Wrapf(ErrBadLearningRate, "lr = %v", opts.LearningRate)
	}
	if opts.MaxTime < 0 {
		return errors.Wrapf(ErrBadTimeLimit, "MaxTime = %v", opts.MaxTime)
	}
	if opts.PMFTolerance < 0 || math.IsNaN(opts.PMFTolerance) || math.IsInf(opts.PMFTolerance, 0) {
		return errors.Wrapf(ErrBadTolerance, "tolerance = %v", opts.PMFTolerance)
	}

	return nil
}

// validateMeasure maps sampler PMF sentinels onto estimator sentinels.
func validateMeasure(side string, m []float64, tol float64) error {
	err := sampler.CheckPMF(m, tol)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, sampler.ErrEmptyDistribution):
		return errors.Wrapf(ErrEmptyMeasure, "%s measure", side)
	default:
		return errors.Wrapf(ErrNotProbability, "%s measure: %v", side, err)
	}
}

func positiveFinite(x float64) bool {
	return x > 0 && !math.IsInf(x, 1)
}
