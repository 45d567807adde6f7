// Package estimator estimates the dual potentials (α, β) of an entropically
// regularized optimal-transport problem between two discrete measures by
// stochastic gradient ascent on the dual objective.
//
// 🚀 What is solved?
//
//	Given a source measure a (ns atoms), a target measure b (nt atoms) and a
//	cost matrix M (ns×nt), the estimators ascend the dual of the problem with
//	two regularizations: reg1 smooths the transport plan through the kernel
//	exp((α_i+β_j−M_ij)/reg1), reg2 controls how far the estimated target
//	measure ν ∝ b·exp(−β/reg2) may drift from b.
//
// ✨ Variants (selected by Options.BatchSize):
//   - 0 : semi-stochastic: one sampled source atom, full gradient for β (O(nt)/iter).
//   - 1 : single-sample SGD: one (i, j) pair per iteration (O(1)/iter).
//   - ≥2: mini-batch SGD: BatchSize pairs per iteration (O(BatchSize)/iter).
//
// The O(1) cost of the stochastic variants rests on the normalization scalar
// S = Σ_k b_k·exp(−β_k/reg2), kept exactly consistent with β by State: every
// update subtracts the old contribution of the touched target atoms, applies
// the step and adds the new contribution back.
//
// Iterates are averaged uniformly (AverageTrajectory); the averaged sequence is
// the one with convergence guarantees and is what Solve returns.
//
// ⚙️ Usage:
//
//	opts := estimator.DefaultOptions()
//	opts.Reg1, opts.Reg2 = 0.1, 0.1
//	opts.NumIterMax = 5000
//	opts.BatchSize = 8
//	res, err := estimator.Solve(a, b, cost, opts)
//	alpha, beta := res.FinalAlpha(), res.FinalBeta()
//
// Numerical policy:
//
//	Exponentials are not clamped. If reg1/reg2 are too small relative to the
//	dynamic range of M (or the learning rate is too large) a run fails with
//	ErrNumericalInstability at the first iteration that produced NaN/±Inf.
//
// Concurrency:
//
//	A run owns all of its mutable state; separate Solve calls may run on
//	separate goroutines as long as they do not share Options.Rand.
package estimator
