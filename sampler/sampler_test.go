package sampler_test

import (
	"math"
	"testing"

	"github.com/katalvlaran/rwe/sampler"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat/distuv"
)

func TestCumSum(t *testing.T) {
	assert.Nil(t, sampler.CumSum(nil))
	got := sampler.CumSum([]float64{0.25, 0.25, 0.5})
	assert.True(t, floats.EqualApprox(got, []float64{0.25, 0.5, 1}, 1e-15), "got %v", got)
}

func TestCheckPMF(t *testing.T) {
	assert.NoError(t, sampler.CheckPMF([]float64{0.5, 0.5}, sampler.DefaultTolerance))
	assert.NoError(t, sampler.CheckPMF([]float64{1, 0}, sampler.DefaultTolerance))

	assert.ErrorIs(t, sampler.CheckPMF(nil, sampler.DefaultTolerance), sampler.ErrEmptyDistribution)
	assert.ErrorIs(t, sampler.CheckPMF([]float64{-0.1, 1.1}, sampler.DefaultTolerance), sampler.ErrNotProbability)
	assert.ErrorIs(t, sampler.CheckPMF([]float64{math.NaN(), 1}, sampler.DefaultTolerance), sampler.ErrNotProbability)
	assert.ErrorIs(t, sampler.CheckPMF([]float64{0.5, 0.4}, sampler.DefaultTolerance), sampler.ErrNotProbability)
	assert.NoError(t, sampler.CheckPMF([]float64{0.5, 0.4}, 0.2), "loose tolerance accepts")
}

func TestRandomIntList_Errors(t *testing.T) {
	_, err := sampler.RandomIntList(nil, []float64{1}, 1)
	assert.ErrorIs(t, err, sampler.ErrNilRand)

	_, err = sampler.RandomIntList(sampler.NewRand(1), nil, 1)
	assert.ErrorIs(t, err, sampler.ErrEmptyDistribution)

	_, err = sampler.RandomIntList(sampler.NewRand(1), []float64{1}, -1)
	assert.ErrorIs(t, err, sampler.ErrNegativeLength)

	out, err := sampler.RandomIntList(sampler.NewRand(1), []float64{1}, 0)
	require.NoError(t, err)
	assert.Empty(t, out)
}

// TestRandomIntList_SeedDeterminism checks that identical seeds and inputs
// produce identical sequences, and different seeds diverge.
func TestRandomIntList_SeedDeterminism(t *testing.T) {
	dist := []float64{0.1, 0.2, 0.3, 0.4}

	first, err := sampler.RandomIntList(sampler.NewRand(7), dist, 500)
	require.NoError(t, err)
	second, err := sampler.RandomIntList(sampler.NewRand(7), dist, 500)
	require.NoError(t, err)
	assert.Equal(t, first, second)

	other, err := sampler.RandomIntList(sampler.NewRand(8), dist, 500)
	require.NoError(t, err)
	assert.NotEqual(t, first, other)
}

// TestNewRand_ZeroSeedPolicy locks the seed==0 ⇒ DefaultSeed mapping.
func TestNewRand_ZeroSeedPolicy(t *testing.T) {
	assert.Equal(t, sampler.NewRand(0).Int63(), sampler.NewRand(sampler.DefaultSeed).Int63())
}

// TestRandomIntList_FairCoin draws 100000 indices from [0.5, 0.5] and checks
// the empirical frequency against the binomial 3-sigma band.
func TestRandomIntList_FairCoin(t *testing.T) {
	const n = 100000
	out, err := sampler.RandomIntList(sampler.NewRand(123), []float64{0.5, 0.5}, n)
	require.NoError(t, err)

	var ones int
	for _, v := range out {
		require.Contains(t, []int{0, 1}, v)
		ones += v
	}

	bin := distuv.Binomial{N: n, P: 0.5}
	sigma := math.Sqrt(bin.Variance())
	assert.InDelta(t, bin.Mean(), float64(ones), 3*sigma)
	assert.InDelta(t, 0.5, float64(ones)/n, 0.01)
}

// TestRandomIntList_SkewedFrequencies checks every category of a skewed PMF.
func TestRandomIntList_SkewedFrequencies(t *testing.T) {
	const n = 200000
	dist := []float64{0.7, 0.2, 0.1}
	out, err := sampler.RandomIntList(sampler.NewRand(99), dist, n)
	require.NoError(t, err)

	counts := make([]float64, len(dist))
	for _, v := range out {
		counts[v]++
	}
	for i, p := range dist {
		bin := distuv.Binomial{N: n, P: p}
		assert.InDelta(t, bin.Mean(), counts[i], 4*math.Sqrt(bin.Variance()), "category %d", i)
	}
}

// TestRandomIntList_ZeroMassNeverDrawn verifies that atoms with zero
// probability are skipped, including leading and trailing zeros.
func TestRandomIntList_ZeroMassNeverDrawn(t *testing.T) {
	dist := []float64{0, 0.5, 0, 0.5, 0}
	out, err := sampler.RandomIntList(sampler.NewRand(5), dist, 20000)
	require.NoError(t, err)
	for _, v := range out {
		require.True(t, v == 1 || v == 3, "drew zero-mass index %d", v)
	}
}

// TestRandomIntList_RoundingShortfall covers a PMF whose floating total is
// slightly below 1: draws above the total must land on the last positive atom.
func TestRandomIntList_RoundingShortfall(t *testing.T) {
	dist := []float64{0.3, 0.3, 0.3999999, 0}
	out, err := sampler.RandomIntList(sampler.NewRand(11), dist, 50000)
	require.NoError(t, err)
	for _, v := range out {
		require.Less(t, v, 3)
	}
}

func BenchmarkRandomIntList(b *testing.B) {
	dist := make([]float64, 1000)
	for i := range dist {
		dist[i] = 1.0 / float64(len(dist))
	}
	rng := sampler.NewRand(1)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := sampler.RandomIntList(rng, dist, 10000); err != nil {
			b.Fatalf("RandomIntList failed: %v", err)
		}
	}
}
