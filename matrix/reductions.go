// SPDX-License-Identifier: MIT
// Package: matrix
//
// Row/column reductions over Dense plus the gonum bridge.
//
// Determinism & Performance:
//   - Fixed loop orders (i→j) over the flat row-major buffer.
//   - No allocations beyond the returned vectors.

package matrix

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// RowSums returns s[i] = Σ_j m[i,j].
// Complexity: O(r*c).
func (m *Dense) RowSums() []float64 {
	out := make([]float64, m.r)
	for i := 0; i < m.r; i++ {
		out[i] = floats.Sum(m.RawRow(i))
	}

	return out
}

// ColSums returns s[j] = Σ_i m[i,j].
// Complexity: O(r*c).
func (m *Dense) ColSums() []float64 {
	out := make([]float64, m.c)
	for i := 0; i < m.r; i++ {
		floats.Add(out, m.RawRow(i))
	}

	return out
}

// Range returns the smallest and largest entries. For a cost matrix the spread
// max−min bounds the exponent (α+β−M)/ε at the start of a run, which is what
// decides whether ε is large enough to avoid overflow.
// Complexity: O(r*c).
func (m *Dense) Range() (lo, hi float64) {
	lo, hi = math.Inf(1), math.Inf(-1)
	for _, v := range m.data {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}

	return lo, hi
}

// Sum returns Σ_ij m[i,j].
// Complexity: O(r*c).
func (m *Dense) Sum() float64 {
	return floats.Sum(m.data)
}

// Scale multiplies every entry by f in place.
// Complexity: O(r*c).
func (m *Dense) Scale(f float64) {
	floats.Scale(f, m.data)
}

// ToGonum returns a *mat.Dense sharing the same backing storage.
// Mutations through either view are visible in both.
// Complexity: O(1).
func (m *Dense) ToGonum() *mat.Dense {
	return mat.NewDense(m.r, m.c, m.data)
}

// FromGonum copies a gonum matrix into a new Dense.
// Complexity: O(r*c).
func FromGonum(g mat.Matrix) (*Dense, error) {
	if g == nil {
		return nil, matrixErrorf("FromGonum", ErrNilMatrix)
	}
	r, c := g.Dims()
	out, err := NewDense(r, c)
	if err != nil {
		return nil, matrixErrorf("FromGonum", err)
	}
	out.ToGonum().Copy(g)

	return out, nil
}
