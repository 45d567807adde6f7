package sampler

import (
	"math"
	"math/rand"
	"sort"

	"github.com/cockroachdb/errors"
	"gonum.org/v1/gonum/floats"
)

// DefaultTolerance bounds |Σp − 1| in CheckPMF.
const DefaultTolerance = 1e-9

var (
	// ErrEmptyDistribution is returned for a distribution with no categories.
	ErrEmptyDistribution = errors.New("sampler: empty distribution")

	// ErrNotProbability is returned when an entry is outside [0,1], NaN, or the
	// entries do not sum to one within tolerance.
	ErrNotProbability = errors.New("sampler: not a probability vector")

	// ErrNegativeLength is returned when a negative number of draws is requested.
	ErrNegativeLength = errors.New("sampler: negative length")

	// ErrNilRand is returned when no random source is supplied.
	ErrNilRand = errors.New("sampler: nil random source")
)

// CheckPMF checks that dist is a valid probability mass function: non-empty,
// every entry finite and in [0,1], and the total within tol of 1.
//
// Complexity: O(n).
func CheckPMF(dist []float64, tol float64) error {
	if len(dist) == 0 {
		return ErrEmptyDistribution
	}
	for i, p := range dist {
		if math.IsNaN(p) || p < 0 || p > 1 {
			return errors.Wrapf(ErrNotProbability, "entry %d = %v", i, p)
		}
	}
	if total := floats.Sum(dist); math.Abs(total-1) > tol {
		return errors.Wrapf(ErrNotProbability, "total %v", total)
	}

	return nil
}

// CumSum returns the running totals c[i] = Σ_{k≤i} dist[k].
//
// Complexity: O(n).
func CumSum(dist []float64) []float64 {
	if len(dist) == 0 {
		return nil
	}

	return floats.CumSum(make([]float64, len(dist)), dist)
}

// searchCDF returns the first index whose cumulative value exceeds u. If
// rounding left u at or above the total, the last atom with positive mass is
// returned so that no out-of-range or zero-mass index escapes.
//
// Complexity: O(log n).
func searchCDF(cdf []float64, last int, u float64) int {
	i := sort.Search(len(cdf), func(k int) bool { return cdf[k] > u })
	if i == len(cdf) {
		return last
	}

	return i
}

// lastPositive returns the largest index with dist[i] > 0, or 0 if none.
func lastPositive(dist []float64) int {
	for i := len(dist) - 1; i >= 0; i-- {
		if dist[i] > 0 {
			return i
		}
	}

	return 0
}

// RandomIntList draws length independent indices from dist (with replacement).
//
// Algorithm:
//  1. Build the cumulative sum once (O(n)).
//  2. For every draw take u ~ U[0,1) from rng and locate the insertion point of
//     u in the CDF by binary search (O(log n)).
//
// Index i is returned iff c[i−1] ≤ u < c[i], i.e. with probability dist[i].
// dist is assumed to be a PMF (see CheckPMF); it is not re-validated here.
//
// Errors: ErrNilRand, ErrEmptyDistribution, ErrNegativeLength.
// Complexity: O(n + length·log n) time, O(n + length) memory.
func RandomIntList(rng *rand.Rand, dist []float64, length int) ([]int, error) {
	if rng == nil {
		return nil, ErrNilRand
	}
	if len(dist) == 0 {
		return nil, ErrEmptyDistribution
	}
	if length < 0 {
		return nil, errors.Wrapf(ErrNegativeLength, "length %d", length)
	}

	var (
		cdf  = CumSum(dist)
		last = lastPositive(dist)
		out  = make([]int, length)
		k    int
	)
	for k = 0; k < length; k++ {
		out[k] = searchCDF(cdf, last, rng.Float64())
	}

	return out, nil
}
