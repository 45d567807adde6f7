package estimator

import (
	"math/rand"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/katalvlaran/rwe/logger"
	"github.com/katalvlaran/rwe/matrix"
	"github.com/katalvlaran/rwe/sampler"
)

// runner carries the validated inputs and the resolved collaborators of one
// driver invocation.
type runner struct {
	p       problem
	reg1    float64
	reg2    float64
	lr      float64
	numIter int
	batch   int
	maxTime time.Duration
	clock   Clock
	log     logger.Logger
	rng     *rand.Rand
}

// newRunner resolves the optional collaborators of opts.
func newRunner(p problem, opts Options) *runner {
	r := &runner{
		p:       p,
		reg1:    opts.Reg1,
		reg2:    opts.Reg2,
		lr:      opts.LearningRate,
		numIter: opts.NumIterMax,
		batch:   opts.BatchSize,
		maxTime: opts.MaxTime,
		clock:   opts.Clock,
		log:     opts.Logger,
		rng:     opts.Rand,
	}
	if r.clock == nil {
		r.clock = SystemClock{}
	}
	if r.log == nil {
		r.log = logger.NewLogger("WARNING", "estimator")
	}
	if r.rng == nil {
		r.rng = sampler.NewRand(opts.Seed)
	}

	return r
}

// SGD runs single-sample stochastic dual ascent and returns the raw
// (non-averaged) trajectory. Options.BatchSize is ignored.
//
// Errors: validation sentinels, ErrNumericalInstability.
// Complexity: O(1) per iteration plus O(ns + nt) per recorded snapshot.
func SGD(a, b []float64, cost matrix.Matrix, opts Options) (Trajectory, error) {
	p, err := validateAll(a, b, cost, opts)
	if err != nil {
		return Trajectory{}, err
	}
	traj, _, err := newRunner(p, opts).runSGD()

	return traj, err
}

// BatchedSGD runs mini-batch stochastic dual ascent with Options.BatchSize
// pairs per iteration and returns the raw trajectory. BatchSize must be ≥ 1.
//
// Errors: validation sentinels, ErrBadBatchSize, ErrNumericalInstability.
// Complexity: O(BatchSize) per iteration plus the snapshots.
func BatchedSGD(a, b []float64, cost matrix.Matrix, opts Options) (Trajectory, error) {
	if opts.BatchSize < 1 {
		return Trajectory{}, errors.Wrapf(ErrBadBatchSize, "batched driver needs batch ≥ 1, got %d", opts.BatchSize)
	}
	p, err := validateAll(a, b, cost, opts)
	if err != nil {
		return Trajectory{}, err
	}
	traj, _, err := newRunner(p, opts).runBatched()

	return traj, err
}

// SemiSGD runs semi-stochastic dual ascent (sampled α coordinate, full β
// gradient) and returns the raw trajectory. Options.BatchSize is ignored.
//
// Errors: validation sentinels, ErrNumericalInstability.
// Complexity: O(nt) per iteration plus the snapshots.
func SemiSGD(a, b []float64, cost matrix.Matrix, opts Options) (Trajectory, error) {
	p, err := validateAll(a, b, cost, opts)
	if err != nil {
		return Trajectory{}, err
	}
	traj, _, err := newRunner(p, opts).runSemi()

	return traj, err
}

// loop is the iteration skeleton shared by every variant. step(k) performs
// the gradient computation and state update of iteration k and reports a
// numerical failure. After each completed iteration the iterates and the
// elapsed time are recorded; the time budget is consulted only then.
func (r *runner) loop(v Variant, in *Init, step func(k int) error) (Trajectory, time.Duration, error) {
	var (
		traj  = in.Trajectory
		st    = in.State
		start = r.clock.Now()
		k     int
		t     time.Duration
		err   error
	)
	r.log.Debugf("%v: ns=%d nt=%d iterations=%d batch=%d", v, r.p.ns, r.p.nt, r.numIter, r.batch)

	for k = 0; k < r.numIter; k++ {
		if err = step(k); err != nil {
			return Trajectory{}, r.clock.Since(start), errors.Wrapf(err, "%v iteration %d", v, k)
		}

		alpha, beta := st.snapshot()
		traj.Alpha = append(traj.Alpha, alpha)
		traj.Beta = append(traj.Beta, beta)
		t = r.clock.Since(start)
		traj.Times = append(traj.Times, t.Seconds())

		if r.maxTime > 0 && t > r.maxTime {
			break
		}
	}

	elapsed := r.clock.Since(start)
	r.summary(v, traj.Len(), elapsed)

	return traj, elapsed, nil
}

// summary logs the iteration count, total time and mean iteration time.
func (r *runner) summary(v Variant, iters int, elapsed time.Duration) {
	h, m, s := logger.ParseTime(elapsed)
	var avg time.Duration
	if iters > 0 {
		avg = elapsed / time.Duration(iters)
	}
	r.log.Infof("%v: nb iter %d, time %dh %dm %ds (%v), average iteration time %v",
		v, iters, h, m, s, elapsed, avg)
}

// runSGD is the single-sample driver.
func (r *runner) runSGD() (Trajectory, time.Duration, error) {
	in, err := Initialize(r.p.a, r.p.b, r.p.ns, r.p.nt, r.numIter, 1, r.reg2, r.rng)
	if err != nil {
		return Trajectory{}, 0, err
	}
	var (
		st   = in.State
		b    = r.p.b
		cost = r.p.cost
	)

	return r.loop(SingleSample, in, func(k int) error {
		i, j := in.IndicesA[k], in.IndicesB[k]
		nu := PartialTargetMeas(b[j], st.beta[j], r.reg2, st.s)
		ga, gb := PartialGradDual(b[j], nu, cost.RawRow(i)[j], r.reg1, st.alpha[i], st.beta[j])
		st.ApplySingle(i, j, ga, gb, StepSize(r.lr, k))

		return st.checkFinite(in.IndicesA[k:k+1], in.IndicesB[k:k+1])
	})
}

// runBatched is the mini-batch driver.
func (r *runner) runBatched() (Trajectory, time.Duration, error) {
	in, err := Initialize(r.p.a, r.p.b, r.p.ns, r.p.nt, r.numIter, r.batch, r.reg2, r.rng)
	if err != nil {
		return Trajectory{}, 0, err
	}
	var (
		st    = in.State
		batch = r.batch
		gradA = make([]float64, batch)
		gradB = make([]float64, batch)
	)

	return r.loop(MiniBatch, in, func(k int) error {
		batchA := in.IndicesA[k*batch : (k+1)*batch]
		batchB := in.IndicesB[k*batch : (k+1)*batch]
		BatchGradDual(gradA, gradB, batchA, batchB, r.p.b, r.p.cost, r.reg1, r.reg2, st.s, st.alpha, st.beta)
		st.ApplyBatch(batchA, batchB, gradA, gradB, BatchStepSize(r.lr, r.reg1, k, batch))

		return st.checkFinite(batchA, st.distinct)
	})
}

// runSemi is the semi-stochastic driver. It does not use the incremental S
// path: every iteration moves all of β, so State.ApplySemi recomputes S.
func (r *runner) runSemi() (Trajectory, time.Duration, error) {
	in, err := Initialize(r.p.a, r.p.b, r.p.ns, r.p.nt, r.numIter, 0, r.reg2, r.rng)
	if err != nil {
		return Trajectory{}, 0, err
	}
	var (
		st       = in.State
		b        = r.p.b
		target   = make([]float64, r.p.nt)
		gradBeta = make([]float64, r.p.nt)
	)

	return r.loop(SemiStochastic, in, func(k int) error {
		i := in.IndicesA[k]
		DualToTarget(target, b, st.beta, r.reg2)
		ga := SemiGradDual(gradBeta, b, target, r.p.cost.RawRow(i), r.reg1, st.alpha[i], st.beta)
		st.ApplySemi(i, ga, gradBeta, StepSize(r.lr, k))

		return st.checkFinite(in.IndicesA[k:k+1], nil)
	})
}
