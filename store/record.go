package store

import (
	"github.com/katalvlaran/rwe/estimator"
	"github.com/katalvlaran/rwe/report"
)

// NewRecord assembles the stored form of a run from its options, result and
// evaluated report. Trace entries missing from rep are stored as zero.
func NewRecord(name string, opts estimator.Options, res estimator.Result, rep report.Report) Record {
	run := Run{
		Name:             name,
		Variant:          res.Variant.String(),
		Ns:               len(res.FinalAlpha()),
		Nt:               len(res.FinalBeta()),
		Reg1:             opts.Reg1,
		Reg2:             opts.Reg2,
		LearningRate:     opts.LearningRate,
		BatchSize:        opts.BatchSize,
		NumIterMax:       opts.NumIterMax,
		Iterations:       res.Iterations,
		ElapsedNs:        res.Elapsed.Nanoseconds(),
		Seed:             opts.Seed,
		FinalGradNorm:    rep.FinalGradNorm(),
		FinalTargetError: rep.FinalTargetError(),
		Slope:            rep.Fit.Slope,
	}

	trace := make([]TracePoint, len(res.Times))
	for k := range trace {
		trace[k] = TracePoint{Iter: k, Time: res.Times[k]}
		if k < len(rep.GradNorm) {
			trace[k].GradNorm = rep.GradNorm[k]
		}
		if k < len(rep.TargetError) {
			trace[k].TargetError = rep.TargetError[k]
		}
	}

	return Record{Run: run, Trace: trace, Alpha: res.FinalAlpha(), Beta: res.FinalBeta()}
}
