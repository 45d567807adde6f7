package estimator_test

import (
	"math"
	"testing"

	"github.com/katalvlaran/rwe/estimator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/floats"
)

func TestPartialTargetMeas(t *testing.T) {
	assert.InDelta(t, 0.25, estimator.PartialTargetMeas(0.5, 0, 1, 2), epsTight)
	assert.InDelta(t, 0.5*math.Exp(-2), estimator.PartialTargetMeas(0.5, 1, 0.5, 1), epsTight)
}

func TestPartialGradDual(t *testing.T) {
	// α+β−M = 0 ⇒ D = 1.
	ga, gb := estimator.PartialGradDual(0.5, 0.5, 1, 0.3, 0.4, 0.6)
	assert.InDelta(t, 0, ga, epsTight)
	assert.InDelta(t, 0, gb, epsTight)

	// D = e^{-1}.
	ga, gb = estimator.PartialGradDual(0.25, 0.5, 2, 2, 0, 0)
	assert.InDelta(t, 1-math.Exp(-1), ga, epsTight)
	assert.InDelta(t, 2-math.Exp(-1), gb, epsTight)
}

func TestBatchGradDual_MatchesElementwise(t *testing.T) {
	_, b, cost := randomProblem(t, 4, 5)
	var (
		alpha  = []float64{0.1, -0.2, 0.3, 0}
		beta   = []float64{0.5, 0, -0.1, 0.2, 0.05}
		batchA = []int{0, 3, 3, 1, 2}
		batchB = []int{4, 4, 0, 2, 1}
		gA     = make([]float64, len(batchA))
		gB     = make([]float64, len(batchA))
		s      = 0.9
	)
	estimator.BatchGradDual(gA, gB, batchA, batchB, b, cost, 0.7, 0.4, s, alpha, beta)

	for k := range batchA {
		i, j := batchA[k], batchB[k]
		m, err := cost.At(i, j)
		require.NoError(t, err)
		nu := estimator.PartialTargetMeas(b[j], beta[j], 0.4, s)
		wa, wb := estimator.PartialGradDual(b[j], nu, m, 0.7, alpha[i], beta[j])
		assert.InDelta(t, wa, gA[k], epsTight)
		assert.InDelta(t, wb, gB[k], epsTight)
	}
}

func TestDualToTarget(t *testing.T) {
	b := []float64{0.2, 0.3, 0.5}

	// β = 0 returns b itself.
	got := estimator.DualToTarget(nil, b, []float64{0, 0, 0}, 1)
	assert.InDeltaSlice(t, b, got, epsTight)

	// Uniform shifts of β cancel in the normalization.
	dst := make([]float64, 3)
	shifted := estimator.DualToTarget(dst, b, []float64{3, 3, 3}, 0.5)
	assert.InDeltaSlice(t, b, shifted, epsTight)
	assert.Same(t, &dst[0], &shifted[0])

	// Larger β moves mass away.
	moved := estimator.DualToTarget(nil, b, []float64{1, 0, 0}, 1)
	assert.InDelta(t, 1, floats.Sum(moved), epsTight)
	assert.Less(t, moved[0], b[0])
}

func TestSemiGradDual(t *testing.T) {
	var (
		b       = []float64{0.5, 0.5}
		target  = []float64{0.6, 0.4}
		costRow = []float64{0, 1}
		beta    = []float64{0, 0}
		gB      = make([]float64, 2)
	)
	ga := estimator.SemiGradDual(gB, b, target, costRow, 1, 0, beta)

	d0, d1 := 0.5, 0.5*math.Exp(-1)
	assert.InDelta(t, 1-d0-d1, ga, epsTight)
	assert.InDeltaSlice(t, []float64{0.6 - d0, 0.4 - d1}, gB, epsTight)
}

func TestStepSizes(t *testing.T) {
	assert.InDelta(t, 1, estimator.StepSize(1, 0), epsTight)
	assert.InDelta(t, 0.5, estimator.StepSize(1, 3), epsTight)
	// Capped by reg1, then divided by the batch size.
	assert.InDelta(t, 0.1/4, estimator.BatchStepSize(1, 0.1, 0, 4), epsTight)
	assert.InDelta(t, 0.01/2, estimator.BatchStepSize(0.1, 1, 99, 2), epsTight)
}
