package report

import (
	"time"

	"github.com/cockroachdb/errors"
	"github.com/katalvlaran/rwe/diagnostics"
	"github.com/katalvlaran/rwe/estimator"
	"gonum.org/v1/gonum/mat"
)

// Report collects everything rendered for one run.
type Report struct {
	Title   string
	Variant string

	// GradNorm[k] is the dual gradient norm at the k-th averaged iterate.
	GradNorm []float64
	// Times[k] is the elapsed time after iteration k, in seconds.
	Times []float64
	// TargetError[k] is KL(b ‖ ν_k) for the k-th averaged β.
	TargetError []float64

	B      []float64
	Target []float64
	Plan   *mat.Dense

	Fit        Fit
	Iterations int
	Elapsed    time.Duration
}

// New evaluates the averaged trajectory of res on in.
//
// Complexity: O(K·ns·nt) for K iterations.
func New(title string, in diagnostics.Input, reg1, reg2 float64, res estimator.Result) (Report, error) {
	norms, err := diagnostics.GradNormTrajectory(in, reg1, reg2, res.Alpha, res.Beta)
	if err != nil {
		return Report{}, errors.Wrap(err, "report: gradient norms")
	}
	klErr, err := diagnostics.TargetErrorTrajectory(in.B, in.B, reg2, res.Beta)
	if err != nil {
		return Report{}, errors.Wrap(err, "report: target error")
	}
	plan, err := diagnostics.TransportPlan(in, reg1, res.FinalAlpha(), res.FinalBeta())
	if err != nil {
		return Report{}, errors.Wrap(err, "report: transport plan")
	}

	rep := Report{
		Title:       title,
		Variant:     res.Variant.String(),
		GradNorm:    norms,
		Times:       res.Times,
		TargetError: klErr,
		B:           in.B,
		Target:      estimator.DualToTarget(nil, in.B, res.FinalBeta(), reg2),
		Plan:        plan,
		Iterations:  res.Iterations,
		Elapsed:     res.Elapsed,
	}
	// A run too short to fit keeps a zero Fit.
	if fit, err := LogLogSlope(norms); err == nil {
		rep.Fit = fit
	}

	return rep, nil
}

// FinalGradNorm returns the last gradient norm, or 0 for an empty report.
func (r Report) FinalGradNorm() float64 {
	if len(r.GradNorm) == 0 {
		return 0
	}

	return r.GradNorm[len(r.GradNorm)-1]
}

// FinalTargetError returns the last target error, or 0 for an empty report.
func (r Report) FinalTargetError() float64 {
	if len(r.TargetError) == 0 {
		return 0
	}

	return r.TargetError[len(r.TargetError)-1]
}
