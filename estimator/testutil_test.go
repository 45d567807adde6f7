// Package estimator_test holds the shared fixtures of the estimator tests.
package estimator_test

import (
	"testing"

	"github.com/katalvlaran/rwe/estimator"
	"github.com/katalvlaran/rwe/logger"
	"github.com/katalvlaran/rwe/matrix"
	"github.com/katalvlaran/rwe/sampler"
	"github.com/stretchr/testify/require"
)

// -----------------------------------------------------------------------------
// Constants
// -----------------------------------------------------------------------------

const (
	// epsTight bounds pure floating-point drift (S maintenance, averaging).
	epsTight = 1e-9

	// seedDet is the seed of every randomized fixture.
	seedDet = int64(42)
)

// quietLog keeps test output free of run summaries.
var quietLog = logger.NewLogger("CRITICAL", "estimator-test")

// -----------------------------------------------------------------------------
// Fixtures
// -----------------------------------------------------------------------------

// twoByTwo is the symmetric 2-atom problem with a zero diagonal cost.
func twoByTwo(t testing.TB) (a, b []float64, cost *matrix.Dense) {
	t.Helper()
	cost, err := matrix.NewDenseFrom([][]float64{{0, 1}, {1, 0}})
	require.NoError(t, err)

	return []float64{0.5, 0.5}, []float64{0.5, 0.5}, cost
}

// randomProblem returns uniform-ish random measures and a cost with entries
// in [0.1, 1.1), so every gradient at zero potentials is non-zero.
func randomProblem(t testing.TB, ns, nt int) (a, b []float64, cost *matrix.Dense) {
	t.Helper()
	rng := sampler.NewRand(seedDet)
	a = randomPMF(rng.Float64, ns)
	b = randomPMF(rng.Float64, nt)

	cost, err := matrix.NewDense(ns, nt)
	require.NoError(t, err)
	for i := 0; i < ns; i++ {
		row := cost.RawRow(i)
		for j := range row {
			row[j] = 0.1 + rng.Float64()
		}
	}

	return a, b, cost
}

// randomPMF returns n positive weights summing to one.
func randomPMF(next func() float64, n int) []float64 {
	var (
		p     = make([]float64, n)
		total float64
	)
	for i := range p {
		p[i] = 0.5 + next()
		total += p[i]
	}
	for i := range p {
		p[i] /= total
	}

	return p
}

// baseOptions returns a small, quiet configuration.
func baseOptions(batch int) estimator.Options {
	opts := estimator.DefaultOptions()
	opts.NumIterMax = 200
	opts.BatchSize = batch
	opts.Seed = seedDet
	opts.Logger = quietLog

	return opts
}

// nonZero counts entries different from zero.
func nonZero(v []float64) int {
	var n int
	for _, x := range v {
		if x != 0 {
			n++
		}
	}

	return n
}
