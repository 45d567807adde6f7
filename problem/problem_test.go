package problem_test

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/katalvlaran/rwe/matrix"
	"github.com/katalvlaran/rwe/problem"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/floats"
)

// ------------------------------------------------------------------------
// 1. Measures
// ------------------------------------------------------------------------

func TestUniform(t *testing.T) {
	u, err := problem.Uniform(4)
	require.NoError(t, err)
	assert.Equal(t, []float64{0.25, 0.25, 0.25, 0.25}, u)

	_, err = problem.Uniform(0)
	assert.True(t, errors.Is(err, problem.ErrInvalidSize))
}

func TestRandomMeasure_IsPMFAndSeeded(t *testing.T) {
	m1, err := problem.RandomMeasure(30, problem.WithSeed(5), problem.WithConcentration(0.3))
	require.NoError(t, err)
	m2, err := problem.RandomMeasure(30, problem.WithSeed(5), problem.WithConcentration(0.3))
	require.NoError(t, err)
	m3, err := problem.RandomMeasure(30, problem.WithSeed(6), problem.WithConcentration(0.3))
	require.NoError(t, err)

	assert.InDelta(t, 1, floats.Sum(m1), 1e-12)
	assert.GreaterOrEqual(t, floats.Min(m1), 0.0)
	assert.Equal(t, m1, m2)
	assert.NotEqual(t, m1, m3)
}

func TestOptions_PanicOnNonsense(t *testing.T) {
	assert.Panics(t, func() { problem.WithConcentration(0) })
	assert.Panics(t, func() { problem.WithExponent(-1) })
	assert.Panics(t, func() { problem.WithCostScale(0) })
	assert.Panics(t, func() { problem.WithDimension(0) })
	assert.Panics(t, func() { problem.WithSource(nil) })
}

// ------------------------------------------------------------------------
// 2. Costs
// ------------------------------------------------------------------------

func TestLineCost(t *testing.T) {
	cost, err := problem.LineCost(3, 2)
	require.NoError(t, err)
	assert.Equal(t, [][]float64{{0, 1}, {0.25, 0.25}, {1, 0}}, cost.ToRows())

	single, err := problem.LineCost(1, 1, problem.WithExponent(1), problem.WithCostScale(3))
	require.NoError(t, err)
	assert.Equal(t, [][]float64{{0}}, single.ToRows())
}

func TestPointCloudCost(t *testing.T) {
	xs := [][]float64{{0, 0}, {3, 4}}
	ys := [][]float64{{0, 0}}
	cost, err := problem.PointCloudCost(xs, ys, problem.WithExponent(1))
	require.NoError(t, err)
	assert.Equal(t, [][]float64{{0}, {5}}, cost.ToRows())

	_, err = problem.PointCloudCost(xs, [][]float64{{1}})
	assert.True(t, errors.Is(err, problem.ErrDimensionMismatch))
	_, err = problem.PointCloudCost(nil, ys)
	assert.True(t, errors.Is(err, problem.ErrInvalidSize))
}

func TestSynthetic(t *testing.T) {
	p, err := problem.Synthetic(6, 4, problem.WithSeed(11), problem.WithDimension(3))
	require.NoError(t, err)
	require.NoError(t, p.Validate(1e-9))
	assert.Equal(t, 6, p.Ns())
	assert.Equal(t, 4, p.Nt())

	lo, hi := p.Cost.Range()
	assert.GreaterOrEqual(t, lo, 0.0)
	assert.LessOrEqual(t, hi, 3.0) // squared diameter of the unit cube

	q, err := problem.Synthetic(6, 4, problem.WithSeed(11), problem.WithDimension(3))
	require.NoError(t, err)
	assert.Equal(t, p.Cost.ToRows(), q.Cost.ToRows())
}

// ------------------------------------------------------------------------
// 3. Validation and serialization
// ------------------------------------------------------------------------

func TestValidate(t *testing.T) {
	cost, err := matrix.NewDenseFrom([][]float64{{0, 1}})
	require.NoError(t, err)

	p := &problem.Problem{A: []float64{1}, B: []float64{0.5, 0.5}, Cost: cost}
	require.NoError(t, p.Validate(1e-9))

	p.B = []float64{0.5, 0.6}
	assert.True(t, errors.Is(p.Validate(1e-9), problem.ErrInvalidMeasure))

	p.B = []float64{1}
	assert.True(t, errors.Is(p.Validate(1e-9), problem.ErrDimensionMismatch))

	p.Cost = nil
	assert.True(t, errors.Is(p.Validate(1e-9), problem.ErrNilCost))
}

func TestSaveLoadRoundTrip(t *testing.T) {
	p, err := problem.Synthetic(3, 5, problem.WithSeed(2))
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, p.Save(&buf))
	assert.Contains(t, buf.String(), `"cost"`)

	q, err := problem.Load(&buf)
	require.NoError(t, err)
	assert.Equal(t, p.A, q.A)
	assert.Equal(t, p.B, q.B)
	assert.Equal(t, p.Cost.ToRows(), q.Cost.ToRows())
}

func TestSaveLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "p.json")
	p, err := problem.Synthetic(2, 2, problem.WithSeed(1))
	require.NoError(t, err)
	require.NoError(t, p.SaveFile(path))

	q, err := problem.LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, p.A, q.A)

	_, err = problem.LoadFile(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}

func TestLoad_Malformed(t *testing.T) {
	_, err := problem.Load(strings.NewReader("{"))
	assert.True(t, errors.Is(err, problem.ErrDecode))

	_, err = problem.Load(strings.NewReader(`{"a":[1],"b":[1],"cost":[[1],[1,2]]}`))
	assert.True(t, errors.Is(err, problem.ErrDecode))
}
