package diagnostics

import (
	"math"

	"github.com/cockroachdb/errors"
	"github.com/katalvlaran/rwe/estimator"
	"github.com/katalvlaran/rwe/matrix"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

var (
	// ErrDimensionMismatch indicates vectors and cost matrix disagree in size.
	ErrDimensionMismatch = errors.New("diagnostics: dimension mismatch")

	// ErrBadRegularization indicates a non-positive regularization.
	ErrBadRegularization = errors.New("diagnostics: regularization must be positive")

	// ErrEmptyTrajectory indicates a trajectory with no iterates or with
	// differing α and β lengths.
	ErrEmptyTrajectory = errors.New("diagnostics: empty or unbalanced trajectory")
)

// Input groups the fixed data of a problem.
type Input struct {
	A    []float64
	B    []float64
	Cost matrix.Matrix
}

// dense validates in and returns the cost as *matrix.Dense.
func (in Input) dense() (*matrix.Dense, error) {
	if err := matrix.ValidateShape(in.Cost, len(in.A), len(in.B)); err != nil {
		return nil, errors.Wrapf(ErrDimensionMismatch, "%v", err)
	}

	return matrix.AsDense(in.Cost)
}

// checkPotentials validates α, β lengths and the regularizations.
func checkPotentials(in Input, alpha, beta []float64, regs ...float64) error {
	if len(alpha) != len(in.A) || len(beta) != len(in.B) {
		return errors.Wrapf(ErrDimensionMismatch, "alpha %d/%d, beta %d/%d",
			len(alpha), len(in.A), len(beta), len(in.B))
	}
	for _, r := range regs {
		if !(r > 0) {
			return errors.Wrapf(ErrBadRegularization, "reg = %v", r)
		}
	}

	return nil
}

// kernelPlan fills g[i,j] = exp((α_i+β_j−M_ij)/reg1)·a_i·w_j and returns it
// together with its total mass.
func kernelPlan(cost *matrix.Dense, a, w []float64, reg1 float64, alpha, beta []float64) (*mat.Dense, float64) {
	var (
		ns, nt = len(a), len(w)
		g      = mat.NewDense(ns, nt, nil)
		total  float64
		v      float64
	)
	for i := 0; i < ns; i++ {
		row := cost.RawRow(i)
		for j := 0; j < nt; j++ {
			v = math.Exp((alpha[i]+beta[j]-row[j])/reg1) * a[i] * w[j]
			g.Set(i, j, v)
			total += v
		}
	}

	return g, total
}

// NormGradDual returns √(‖∇_α‖² + ‖∇_β‖²) of the dual objective at (α, β):
//
//	D_ij   = exp((α_i+β_j−M_ij)/reg1)·a_i·b_j
//	∇_α    = a − Σ_j D_ij
//	∇_β    = target − Σ_i D_ij
//
// where target is the current target measure (estimator.DualToTarget).
func NormGradDual(in Input, target []float64, reg1 float64, alpha, beta []float64) (float64, error) {
	cost, err := in.dense()
	if err != nil {
		return 0, err
	}
	if err = checkPotentials(in, alpha, beta, reg1); err != nil {
		return 0, err
	}
	if len(target) != len(in.B) {
		return 0, errors.Wrapf(ErrDimensionMismatch, "target %d/%d", len(target), len(in.B))
	}

	return normGrad(cost, in.A, in.B, target, reg1, alpha, beta), nil
}

func normGrad(cost *matrix.Dense, a, b, target []float64, reg1 float64, alpha, beta []float64) float64 {
	var (
		gradA = make([]float64, len(a))
		gradB = make([]float64, len(b))
		d     float64
	)
	copy(gradA, a)
	copy(gradB, target)
	for i := range a {
		row := cost.RawRow(i)
		for j := range b {
			d = math.Exp((alpha[i]+beta[j]-row[j])/reg1) * a[i] * b[j]
			gradA[i] -= d
			gradB[j] -= d
		}
	}
	na, nb := floats.Norm(gradA, 2), floats.Norm(gradB, 2)

	return math.Sqrt(na*na + nb*nb)
}

// GradNormTrajectory evaluates NormGradDual at every (alphas[k], betas[k]),
// deriving each target measure from betas[k] with reg2.
//
// Complexity: O(K·ns·nt) for K iterates.
func GradNormTrajectory(in Input, reg1, reg2 float64, alphas, betas [][]float64) ([]float64, error) {
	if len(alphas) == 0 || len(alphas) != len(betas) {
		return nil, ErrEmptyTrajectory
	}
	cost, err := in.dense()
	if err != nil {
		return nil, err
	}
	var (
		out    = make([]float64, len(alphas))
		target = make([]float64, len(in.B))
	)
	for k := range alphas {
		if err = checkPotentials(in, alphas[k], betas[k], reg1, reg2); err != nil {
			return nil, errors.Wrapf(err, "iterate %d", k)
		}
		estimator.DualToTarget(target, in.B, betas[k], reg2)
		out[k] = normGrad(cost, in.A, in.B, target, reg1, alphas[k], betas[k])
	}

	return out, nil
}

// inducedPlan returns the plan built on the current target measure,
// normalized to unit mass, together with that target.
func inducedPlan(in Input, reg1, reg2 float64, alpha, beta []float64) (*mat.Dense, []float64, *matrix.Dense, error) {
	cost, err := in.dense()
	if err != nil {
		return nil, nil, nil, err
	}
	if err = checkPotentials(in, alpha, beta, reg1, reg2); err != nil {
		return nil, nil, nil, err
	}
	target := estimator.DualToTarget(nil, in.B, beta, reg2)
	pi, total := kernelPlan(cost, in.A, target, reg1, alpha, beta)
	pi.Scale(1/total, pi)

	return pi, target, cost, nil
}

// ScalarLoss returns ⟨M, π⟩ for the plan π ∝ exp((α⊕β−M)/reg1)·(a⊗ν),
// ν = DualToTarget(b, β, reg2).
func ScalarLoss(in Input, reg1, reg2 float64, alpha, beta []float64) (float64, error) {
	pi, _, cost, err := inducedPlan(in, reg1, reg2, alpha, beta)
	if err != nil {
		return 0, err
	}

	return mat.Sum(elementwise(pi, cost.ToGonum())), nil
}

// Reg1Loss returns KL(π ‖ a⊗b) for the plan of ScalarLoss.
func Reg1Loss(in Input, reg1, reg2 float64, alpha, beta []float64) (float64, error) {
	pi, _, _, err := inducedPlan(in, reg1, reg2, alpha, beta)
	if err != nil {
		return 0, err
	}
	var (
		loss float64
		p    float64
	)
	for i := range in.A {
		for j := range in.B {
			if p = pi.At(i, j); p > 0 {
				loss += p * math.Log(p/(in.A[i]*in.B[j]))
			}
		}
	}

	return loss, nil
}

// Reg2Loss returns KL(ν ‖ b) for ν = DualToTarget(b, β, reg2).
func Reg2Loss(b []float64, reg2 float64, beta []float64) (float64, error) {
	if len(b) != len(beta) {
		return 0, errors.Wrapf(ErrDimensionMismatch, "beta %d/%d", len(beta), len(b))
	}
	if !(reg2 > 0) {
		return 0, errors.Wrapf(ErrBadRegularization, "reg2 = %v", reg2)
	}

	return KLDiv(estimator.DualToTarget(nil, b, beta, reg2), b)
}

// KLDiv returns Σ p_k·log(p_k/q_k), skipping p_k = 0. A positive p_k facing
// q_k = 0 yields +Inf.
//
// Complexity: O(n).
func KLDiv(p, q []float64) (float64, error) {
	if len(p) != len(q) {
		return 0, errors.Wrapf(ErrDimensionMismatch, "len %d vs %d", len(p), len(q))
	}
	var kl float64
	for k := range p {
		if p[k] == 0 {
			continue
		}
		kl += p[k] * math.Log(p[k]/q[k])
	}

	return kl, nil
}

// TargetErrorTrajectory returns KL(ref ‖ ν_k) for each ν_k derived from
// betas[k]; with ref the measure the target should reproduce this is the
// error curve of a run.
func TargetErrorTrajectory(ref, b []float64, reg2 float64, betas [][]float64) ([]float64, error) {
	if len(betas) == 0 {
		return nil, ErrEmptyTrajectory
	}
	if len(ref) != len(b) {
		return nil, errors.Wrapf(ErrDimensionMismatch, "ref %d vs b %d", len(ref), len(b))
	}
	var (
		out    = make([]float64, len(betas))
		target = make([]float64, len(b))
		err    error
	)
	for k, beta := range betas {
		if len(beta) != len(b) {
			return nil, errors.Wrapf(ErrDimensionMismatch, "iterate %d", k)
		}
		estimator.DualToTarget(target, b, beta, reg2)
		if out[k], err = KLDiv(ref, target); err != nil {
			return nil, err
		}
	}

	return out, nil
}

// TransportPlan returns π ∝ exp((α⊕β−M)/reg1)·(a⊗b), normalized to unit mass.
func TransportPlan(in Input, reg1 float64, alpha, beta []float64) (*mat.Dense, error) {
	cost, err := in.dense()
	if err != nil {
		return nil, err
	}
	if err = checkPotentials(in, alpha, beta, reg1); err != nil {
		return nil, err
	}
	pi, total := kernelPlan(cost, in.A, in.B, reg1, alpha, beta)
	pi.Scale(1/total, pi)

	return pi, nil
}

// elementwise returns x∘y.
func elementwise(x, y mat.Matrix) *mat.Dense {
	var out mat.Dense
	out.MulElem(x, y)

	return &out
}
