package estimator_test

import (
	"math"
	"testing"

	"github.com/katalvlaran/rwe/estimator"
	"github.com/katalvlaran/rwe/sampler"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// assertSConsistent checks the maintained S against a full recomputation.
func assertSConsistent(t *testing.T, st *estimator.State, step int) {
	t.Helper()
	exact := st.ExactS()
	require.InDeltaf(t, exact, st.S(), epsTight*math.Max(1, exact), "S drifted at step %d", step)
}

// ------------------------------------------------------------------------
// 1. Initial state
// ------------------------------------------------------------------------

func TestNewState_ZeroPotentialsUnitS(t *testing.T) {
	b := []float64{0.2, 0.3, 0.5}
	st := estimator.NewState(b, 4, 0.5)

	assert.Equal(t, []float64{0, 0, 0, 0}, st.Alpha())
	assert.Equal(t, []float64{0, 0, 0}, st.Beta())
	assert.Equal(t, 1.0, st.S())
	assertSConsistent(t, st, 0)
}

// ------------------------------------------------------------------------
// 2. Incremental maintenance of S
// ------------------------------------------------------------------------

func TestState_ApplySingleKeepsS(t *testing.T) {
	var (
		b   = []float64{0.1, 0.2, 0.3, 0.4}
		st  = estimator.NewState(b, 3, 0.7)
		rng = sampler.NewRand(seedDet)
	)
	for k := 0; k < 2000; k++ {
		i, j := rng.Intn(3), rng.Intn(4)
		st.ApplySingle(i, j, rng.NormFloat64(), rng.NormFloat64(), 0.05)
		assertSConsistent(t, st, k)
	}
}

func TestState_ApplySingleTouchesOnlyPair(t *testing.T) {
	st := estimator.NewState([]float64{0.5, 0.5}, 2, 1)
	st.ApplySingle(1, 0, 2, -4, 0.5)

	assert.Equal(t, []float64{0, 1}, st.Alpha())
	assert.Equal(t, []float64{-2, 0}, st.Beta())
	assert.InDelta(t, 0.5*math.Exp(2)+0.5, st.S(), epsTight)
}

func TestState_ApplyBatchDuplicates(t *testing.T) {
	var (
		b      = []float64{0.25, 0.25, 0.25, 0.25}
		st     = estimator.NewState(b, 2, 1)
		batchA = []int{0, 1, 0, 1}
		batchB = []int{2, 2, 2, 0}
		gradA  = []float64{1, 1, 1, 1}
		gradB  = []float64{1, 1, 1, 1}
	)
	st.ApplyBatch(batchA, batchB, gradA, gradB, 0.1)

	// Every occurrence contributes its own step.
	assert.InDelta(t, 0.2, st.Alpha()[0], epsTight)
	assert.InDelta(t, 0.2, st.Alpha()[1], epsTight)
	assert.InDelta(t, 0.3, st.Beta()[2], epsTight)
	assert.InDelta(t, 0.1, st.Beta()[0], epsTight)
	assert.Equal(t, 0.0, st.Beta()[1])
	// S is repaired once per distinct index.
	assertSConsistent(t, st, 0)
}

func TestState_ApplyBatchManyEpochs(t *testing.T) {
	var (
		nt    = 7
		b     = make([]float64, nt)
		rng   = sampler.NewRand(seedDet)
		batch = 16
		bA    = make([]int, batch)
		bB    = make([]int, batch)
		gA    = make([]float64, batch)
		gB    = make([]float64, batch)
	)
	for j := range b {
		b[j] = 1 / float64(nt)
	}
	st := estimator.NewState(b, 5, 0.3)
	for k := 0; k < 1000; k++ {
		for m := 0; m < batch; m++ {
			bA[m], bB[m] = rng.Intn(5), rng.Intn(3) // heavy duplication on purpose
			gA[m], gB[m] = rng.NormFloat64(), rng.NormFloat64()
		}
		st.ApplyBatch(bA, bB, gA, gB, 0.01)
		assertSConsistent(t, st, k)
	}
}

func TestState_ApplySemiRecomputesS(t *testing.T) {
	var (
		b  = []float64{0.5, 0.3, 0.2}
		st = estimator.NewState(b, 2, 2)
		gB = []float64{1, -1, 0.5}
	)
	st.ApplySemi(1, 3, gB, 0.5)

	assert.Equal(t, []float64{0, 1.5}, st.Alpha())
	assert.Equal(t, []float64{0.5, -0.5, 0.25}, st.Beta())
	assertSConsistent(t, st, 0)
}

func TestState_RecomputeS(t *testing.T) {
	st := estimator.NewState([]float64{0.4, 0.6}, 1, 1)
	st.ApplySemi(0, 0, []float64{1, 1}, 1)
	got := st.RecomputeS()

	assert.InDelta(t, math.Exp(-1), got, epsTight)
	assert.Equal(t, got, st.S())
}
