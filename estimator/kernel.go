package estimator

import (
	"math"

	"github.com/katalvlaran/rwe/matrix"
)

// PartialTargetMeas returns one coordinate of the current target measure,
// ν_j = b_j·exp(−β_j/reg2)/S, using the maintained normalization S.
//
// Complexity: O(1).
func PartialTargetMeas(bj, betaj, reg2, s float64) float64 {
	return bj * math.Exp(-betaj/reg2) / s
}

// PartialGradDual returns the stochastic dual gradient at the sampled pair
// (i, j):
//
//	D          = exp((α_i + β_j − M_ij)/reg1)
//	gradAlpha  = 1 − D
//	gradBeta   = ν_j/b_j − D
//
// bj must be positive; the sampler never draws zero-mass atoms.
//
// Complexity: O(1).
func PartialGradDual(bj, nuj, mij, reg1, alphai, betaj float64) (gradAlpha, gradBeta float64) {
	d := math.Exp((alphai + betaj - mij) / reg1)

	return 1 - d, nuj/bj - d
}

// BatchGradDual applies PartialTargetMeas and PartialGradDual elementwise to
// the pairs (batchA[k], batchB[k]), writing into gradA and gradB. All pairs
// are evaluated at the same (α, β, S), before any of them is applied.
//
// gradA, gradB, batchA and batchB must share one length.
//
// Complexity: O(len(batchA)), no allocation.
func BatchGradDual(
	gradA, gradB []float64,
	batchA, batchB []int,
	b []float64,
	cost *matrix.Dense,
	reg1, reg2, s float64,
	alpha, beta []float64,
) {
	var (
		k, i, j int
		nu      float64
	)
	for k = range batchA {
		i, j = batchA[k], batchB[k]
		nu = PartialTargetMeas(b[j], beta[j], reg2, s)
		gradA[k], gradB[k] = PartialGradDual(b[j], nu, cost.RawRow(i)[j], reg1, alpha[i], beta[j])
	}
}

// DualToTarget writes the full target measure b·exp(−β/reg2), normalized to
// unit mass, into dst and returns dst. A nil dst is allocated.
//
// Complexity: O(nt).
func DualToTarget(dst, b, beta []float64, reg2 float64) []float64 {
	if dst == nil {
		dst = make([]float64, len(b))
	}
	var total float64
	for k := range b {
		dst[k] = b[k] * math.Exp(-beta[k]/reg2)
		total += dst[k]
	}
	for k := range dst {
		dst[k] /= total
	}

	return dst
}

// SemiGradDual returns the stochastic gradient for α_i and writes the full
// gradient for β into gradBeta:
//
//	D_j       = exp((α_i + β_j − M_ij)/reg1)·b_j
//	gradAlpha = 1 − Σ_j D_j
//	gradBeta  = target − D
//
// costRow is row i of the cost matrix.
//
// Complexity: O(nt).
func SemiGradDual(gradBeta, b, target, costRow []float64, reg1, alphai float64, beta []float64) (gradAlpha float64) {
	var (
		sum float64
		d   float64
	)
	for j := range b {
		d = math.Exp((alphai+beta[j]-costRow[j])/reg1) * b[j]
		sum += d
		gradBeta[j] = target[j] - d
	}

	return 1 - sum
}
