package matrix_test

import (
	"math"
	"testing"

	"github.com/katalvlaran/rwe/matrix"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// sparseRows is a Matrix that is not a *Dense, used to exercise the generic
// (At-based) validator and AsDense paths.
type sparseRows struct {
	r, c int
	nz   map[[2]int]float64
}

func (s *sparseRows) Rows() int { return s.r }
func (s *sparseRows) Cols() int { return s.c }
func (s *sparseRows) At(i, j int) (float64, error) {
	if i < 0 || i >= s.r || j < 0 || j >= s.c {
		return 0, matrix.ErrIndexOutOfBounds
	}
	return s.nz[[2]int{i, j}], nil
}
func (s *sparseRows) Set(i, j int, v float64) error {
	if i < 0 || i >= s.r || j < 0 || j >= s.c {
		return matrix.ErrIndexOutOfBounds
	}
	s.nz[[2]int{i, j}] = v
	return nil
}
func (s *sparseRows) Clone() matrix.Matrix {
	cp := &sparseRows{r: s.r, c: s.c, nz: make(map[[2]int]float64, len(s.nz))}
	for k, v := range s.nz {
		cp.nz[k] = v
	}
	return cp
}

func TestValidateNotNil(t *testing.T) {
	assert.ErrorIs(t, matrix.ValidateNotNil(nil), matrix.ErrNilMatrix)

	var typedNil *matrix.Dense
	assert.ErrorIs(t, matrix.ValidateNotNil(typedNil), matrix.ErrNilMatrix)

	m, _ := matrix.NewDense(1, 1)
	assert.NoError(t, matrix.ValidateNotNil(m))
}

func TestValidateShape(t *testing.T) {
	m, _ := matrix.NewDense(2, 3)
	assert.NoError(t, matrix.ValidateShape(m, 2, 3))
	assert.ErrorIs(t, matrix.ValidateShape(m, 3, 3), matrix.ErrDimensionMismatch)
	assert.ErrorIs(t, matrix.ValidateShape(m, 2, 2), matrix.ErrDimensionMismatch)
	assert.ErrorIs(t, matrix.ValidateShape(nil, 2, 2), matrix.ErrNilMatrix)
}

func TestValidateFinite(t *testing.T) {
	m, _ := matrix.NewDense(2, 2)
	assert.NoError(t, matrix.ValidateFinite(m))

	require.NoError(t, m.Set(1, 1, math.Inf(1)))
	assert.ErrorIs(t, matrix.ValidateFinite(m), matrix.ErrNaNInf)

	s := &sparseRows{r: 2, c: 2, nz: map[[2]int]float64{{0, 1}: math.NaN()}}
	assert.ErrorIs(t, matrix.ValidateFinite(s), matrix.ErrNaNInf)
}

func TestValidateVecLen(t *testing.T) {
	assert.NoError(t, matrix.ValidateVecLen([]float64{1, 2}, 2))
	assert.ErrorIs(t, matrix.ValidateVecLen([]float64{1}, 2), matrix.ErrDimensionMismatch)
}

// TestAsDense checks the identity fast path and the generic copy path.
func TestAsDense(t *testing.T) {
	d, _ := matrix.NewDense(1, 2)
	same, err := matrix.AsDense(d)
	require.NoError(t, err)
	assert.Same(t, d, same)

	s := &sparseRows{r: 2, c: 2, nz: map[[2]int]float64{{1, 0}: 3}}
	cp, err := matrix.AsDense(s)
	require.NoError(t, err)
	assert.Equal(t, []float64{3, 0}, cp.RawRow(1))

	_, err = matrix.AsDense(nil)
	assert.ErrorIs(t, err, matrix.ErrNilMatrix)
}
