package estimator

import (
	"math/rand"

	"github.com/cockroachdb/errors"
	"github.com/katalvlaran/rwe/sampler"
)

// Init is the starting point of one driver run.
type Init struct {
	// IndicesA and IndicesB hold numItermax·batchSize pre-drawn source and
	// target indices; iteration k consumes [k·batch, (k+1)·batch).
	IndicesA []int
	IndicesB []int

	// State holds α = 0, β = 0 and S = 1.
	State *State

	// Trajectory is empty with capacity for numItermax snapshots.
	Trajectory Trajectory
}

// Initialize draws the index sequences and allocates the state of a run.
// batchSize 0 (semi-stochastic) draws one index per iteration.
//
// Preconditions (not re-checked): a and b are probability vectors of
// lengths ns and nt, numItermax > 0, batchSize ≥ 0.
//
// Complexity: O((ns + nt) + numItermax·batchSize·log(max(ns, nt))).
func Initialize(a, b []float64, ns, nt, numItermax, batchSize int, reg2 float64, rng *rand.Rand) (*Init, error) {
	if batchSize == 0 {
		batchSize = 1
	}
	length := numItermax * batchSize

	idxA, err := sampler.RandomIntList(rng, a[:ns], length)
	if err != nil {
		return nil, errors.Wrap(err, "estimator: sampling source indices")
	}
	idxB, err := sampler.RandomIntList(rng, b[:nt], length)
	if err != nil {
		return nil, errors.Wrap(err, "estimator: sampling target indices")
	}

	return &Init{
		IndicesA: idxA,
		IndicesB: idxB,
		State:    NewState(b[:nt], ns, reg2),
		Trajectory: Trajectory{
			Alpha: make([][]float64, 0, numItermax),
			Beta:  make([][]float64, 0, numItermax),
			Times: make([]float64, 0, numItermax),
		},
	}, nil
}
