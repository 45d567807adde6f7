package estimator

import (
	"math"
	"slices"

	"github.com/cockroachdb/errors"
	"gonum.org/v1/gonum/floats"
)

// State owns the dual variables of one run together with the normalization
// scalar S = Σ_k b_k·exp(−β_k/reg2).
//
// Every mutation of β goes through an Apply* method, which repairs S in the
// same call; between calls S equals ExactS up to floating-point rounding.
type State struct {
	alpha []float64
	beta  []float64
	s     float64

	b    []float64 // target weights, read-only
	reg2 float64

	// Scratch for ApplyBatch: mark[j] == epoch iff j was already seen in the
	// current batch; distinct lists those j in first-seen order.
	mark     []uint32
	epoch    uint32
	distinct []int
}

// NewState returns zero potentials and S = 1, the value of the normalization
// at β = 0 for a probability vector b. b is retained, not copied.
//
// Complexity: O(ns + nt).
func NewState(b []float64, ns int, reg2 float64) *State {
	return &State{
		alpha: make([]float64, ns),
		beta:  make([]float64, len(b)),
		s:     1,
		b:     b,
		reg2:  reg2,
	}
}

// contribution returns b_j·exp(−β_j/reg2).
func (st *State) contribution(j int) float64 {
	return st.b[j] * math.Exp(-st.beta[j]/st.reg2)
}

// ApplySingle performs α_i += step·gradAlpha and β_j += step·gradBeta,
// repairing S around the change of β_j.
//
// Complexity: O(1).
func (st *State) ApplySingle(i, j int, gradAlpha, gradBeta, step float64) {
	st.s -= st.contribution(j)
	st.alpha[i] += step * gradAlpha
	st.beta[j] += step * gradBeta
	st.s += st.contribution(j)
}

// ApplyBatch applies one step per sampled pair. An index drawn several times
// receives every one of its additive steps, while its contribution to S is
// removed and restored exactly once.
//
// Stages:
//  1. Collect the distinct target indices of batchB.
//  2. Subtract their current contributions from S.
//  3. Apply the per-occurrence steps to α and β.
//  4. Add the new contributions of the same distinct indices.
//
// Complexity: O(len(batchB)) time, no allocation after the first call.
func (st *State) ApplyBatch(batchA, batchB []int, gradA, gradB []float64, step float64) {
	// Stage 1: distinct touched targets.
	st.collectDistinct(batchB)

	// Stage 2: remove old contributions.
	for _, j := range st.distinct {
		st.s -= st.contribution(j)
	}

	// Stage 3: per-occurrence updates.
	for k, i := range batchA {
		st.alpha[i] += step * gradA[k]
	}
	for k, j := range batchB {
		st.beta[j] += step * gradB[k]
	}

	// Stage 4: restore.
	for _, j := range st.distinct {
		st.s += st.contribution(j)
	}
}

// collectDistinct fills st.distinct with the distinct values of idx.
func (st *State) collectDistinct(idx []int) {
	if st.mark == nil {
		st.mark = make([]uint32, len(st.beta))
	}
	st.epoch++
	if st.epoch == 0 {
		// Counter wrapped: stale marks could alias the new epoch.
		clear(st.mark)
		st.epoch = 1
	}
	st.distinct = st.distinct[:0]
	for _, j := range idx {
		if st.mark[j] != st.epoch {
			st.mark[j] = st.epoch
			st.distinct = append(st.distinct, j)
		}
	}
}

// ApplySemi performs α_i += step·gradAlpha and β += step·gradBeta over every
// target coordinate. Since all of β moves, S is recomputed in full.
//
// Complexity: O(nt).
func (st *State) ApplySemi(i int, gradAlpha float64, gradBeta []float64, step float64) {
	st.alpha[i] += step * gradAlpha
	floats.AddScaled(st.beta, step, gradBeta)
	st.RecomputeS()
}

// ExactS evaluates Σ_k b_k·exp(−β_k/reg2) from scratch without storing it.
//
// Complexity: O(nt).
func (st *State) ExactS() float64 {
	var total float64
	for j := range st.b {
		total += st.contribution(j)
	}

	return total
}

// RecomputeS replaces the maintained S with ExactS and returns it.
func (st *State) RecomputeS() float64 {
	st.s = st.ExactS()

	return st.s
}

// S returns the maintained normalization scalar.
func (st *State) S() float64 { return st.s }

// Alpha returns a read-only view of α. Callers must not modify it.
func (st *State) Alpha() []float64 { return st.alpha }

// Beta returns a read-only view of β. Callers must not modify it.
func (st *State) Beta() []float64 { return st.beta }

// snapshot returns independent copies of α and β.
func (st *State) snapshot() (alpha, beta []float64) {
	return slices.Clone(st.alpha), slices.Clone(st.beta)
}

// checkFinite reports ErrNumericalInstability if S, or any α_i for i in
// alphaIdx, or any β_j for j in betaIdx is NaN or ±Inf. A nil betaIdx checks
// all of β. S must also stay positive.
func (st *State) checkFinite(alphaIdx, betaIdx []int) error {
	if !isFinite(st.s) || st.s <= 0 {
		return errors.Wrapf(ErrNumericalInstability, "normalization S = %v", st.s)
	}
	for _, i := range alphaIdx {
		if !isFinite(st.alpha[i]) {
			return errors.Wrapf(ErrNumericalInstability, "alpha[%d] = %v", i, st.alpha[i])
		}
	}
	if betaIdx == nil {
		for j, v := range st.beta {
			if !isFinite(v) {
				return errors.Wrapf(ErrNumericalInstability, "beta[%d] = %v", j, v)
			}
		}

		return nil
	}
	for _, j := range betaIdx {
		if !isFinite(st.beta[j]) {
			return errors.Wrapf(ErrNumericalInstability, "beta[%d] = %v", j, st.beta[j])
		}
	}

	return nil
}

func isFinite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}
