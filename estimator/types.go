package estimator

import (
	"math/rand"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/katalvlaran/rwe/logger"
)

// Sentinel errors. Callers branch with errors.Is; returned errors carry context.
var (
	// ErrEmptyMeasure indicates that a or b has no atoms.
	ErrEmptyMeasure = errors.New("estimator: empty measure")

	// ErrNotProbability indicates that a or b is not a probability vector.
	ErrNotProbability = errors.New("estimator: measure is not a probability vector")

	// ErrNilCost indicates that no cost matrix was supplied.
	ErrNilCost = errors.New("estimator: nil cost matrix")

	// ErrDimensionMismatch indicates that the cost matrix is not len(a)×len(b).
	ErrDimensionMismatch = errors.New("estimator: cost matrix does not match measures")

	// ErrNonFiniteCost indicates a NaN or ±Inf entry in the cost matrix.
	ErrNonFiniteCost = errors.New("estimator: cost matrix has NaN or Inf")

	// ErrBadRegularization indicates reg1 or reg2 is not a positive finite number.
	ErrBadRegularization = errors.New("estimator: regularization must be positive and finite")

	// ErrBadIterations indicates NumIterMax <= 0.
	ErrBadIterations = errors.New("estimator: NumIterMax must be positive")

	// ErrBadBatchSize indicates a negative (or, for BatchedSGD, zero) batch size.
	ErrBadBatchSize = errors.New("estimator: invalid batch size")

	// ErrBadLearningRate indicates the learning rate is not positive and finite.
	ErrBadLearningRate = errors.New("estimator: learning rate must be positive and finite")

	// ErrBadTimeLimit indicates a negative MaxTime.
	ErrBadTimeLimit = errors.New("estimator: MaxTime must be non-negative")

	// ErrBadTolerance indicates a negative or non-finite PMFTolerance.
	ErrBadTolerance = errors.New("estimator: PMF tolerance must be non-negative")

	// ErrNumericalInstability indicates an iteration produced NaN or ±Inf.
	// Lower the learning rate or increase reg1/reg2.
	ErrNumericalInstability = errors.New("estimator: numerical instability")
)

// Variant identifies which driver runs an optimization.
type Variant int

const (
	// SemiStochastic samples one source atom and takes the full β gradient.
	SemiStochastic Variant = iota
	// SingleSample samples one (source, target) pair per iteration.
	SingleSample
	// MiniBatch samples BatchSize pairs per iteration.
	MiniBatch
)

// String implements fmt.Stringer.
func (v Variant) String() string {
	switch v {
	case SemiStochastic:
		return "semi-stochastic"
	case SingleSample:
		return "sgd"
	case MiniBatch:
		return "mini-batch"
	default:
		return "unknown"
	}
}

// VariantFor maps a batch size to its driver: 0 ⇒ SemiStochastic,
// 1 ⇒ SingleSample, ≥2 ⇒ MiniBatch.
func VariantFor(batchSize int) (Variant, error) {
	switch {
	case batchSize < 0:
		return 0, errors.Wrapf(ErrBadBatchSize, "batch size %d", batchSize)
	case batchSize == 0:
		return SemiStochastic, nil
	case batchSize == 1:
		return SingleSample, nil
	default:
		return MiniBatch, nil
	}
}

// Defaults mirror the reference estimator's keyword defaults.
const (
	DefaultNumIterMax   = 10000
	DefaultBatchSize    = 1
	DefaultLearningRate = 1.0
	DefaultReg          = 1.0

	// DefaultPMFTolerance bounds |Σa − 1| and |Σb − 1| during validation.
	DefaultPMFTolerance = 1e-6
)

// Options configures a run.
//
// Fields:
//   - Reg1, Reg2  : positive regularization strengths (plan / target fit).
//   - NumIterMax  : iteration budget, > 0.
//   - BatchSize   : 0 semi-stochastic, 1 single-sample, ≥2 mini-batch.
//   - LearningRate: base step; the schedule divides it by sqrt(k+1).
//   - MaxTime     : optional wall-clock budget (0 ⇒ none), checked after each
//     completed iteration, so a run may overshoot by one iteration.
//   - Seed / Rand : randomness; Rand wins when non-nil, Seed 0 ⇒ fixed default.
//   - Clock       : monotonic time source; nil ⇒ SystemClock.
//   - Logger      : run summaries; nil ⇒ a WARNING-level module logger.
//   - PMFTolerance: 0 ⇒ DefaultPMFTolerance.
type Options struct {
	Reg1         float64
	Reg2         float64
	NumIterMax   int
	BatchSize    int
	LearningRate float64
	MaxTime      time.Duration
	Seed         int64
	Rand         *rand.Rand
	Clock        Clock
	Logger       logger.Logger
	PMFTolerance float64
}

// DefaultOptions returns Options with documented defaults.
func DefaultOptions() Options {
	return Options{
		Reg1:         DefaultReg,
		Reg2:         DefaultReg,
		NumIterMax:   DefaultNumIterMax,
		BatchSize:    DefaultBatchSize,
		LearningRate: DefaultLearningRate,
	}
}

// Trajectory is the raw record of one driver invocation: one snapshot of α and
// β and one cumulative elapsed time (seconds) per completed iteration.
type Trajectory struct {
	Alpha [][]float64
	Beta  [][]float64
	Times []float64
}

// Len returns the number of completed iterations.
func (t Trajectory) Len() int { return len(t.Times) }

// Result is the outcome of Solve.
type Result struct {
	// Alpha and Beta hold the running averages of the iterates; entry k is the
	// mean of iterates 0..k.
	Alpha [][]float64
	Beta  [][]float64

	// Times[k] is the elapsed wall-clock time in seconds after iteration k.
	Times []float64

	// Variant is the driver that produced the trajectory.
	Variant Variant

	// Iterations is the number of completed iterations (≤ NumIterMax).
	Iterations int

	// Elapsed is the total loop time.
	Elapsed time.Duration
}

// FinalAlpha returns the last averaged α (nil for an empty result).
func (r Result) FinalAlpha() []float64 {
	if len(r.Alpha) == 0 {
		return nil
	}

	return r.Alpha[len(r.Alpha)-1]
}

// FinalBeta returns the last averaged β (nil for an empty result).
func (r Result) FinalBeta() []float64 {
	if len(r.Beta) == 0 {
		return nil
	}

	return r.Beta[len(r.Beta)-1]
}
