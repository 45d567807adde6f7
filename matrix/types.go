// SPDX-License-Identifier: MIT

package matrix

// Matrix is a ground-cost matrix: row i is a source atom, column j a target
// atom. Solvers accept any Matrix and copy it into a Dense once with AsDense,
// so implementations only need cheap element access.
type Matrix interface {
	// Rows is the number of source atoms.
	Rows() int
	// Cols is the number of target atoms.
	Cols() int

	// At reads M[i][j]; ErrIndexOutOfBounds outside the shape.
	At(i, j int) (float64, error)
	// Set writes M[i][j]; ErrIndexOutOfBounds outside the shape.
	Set(i, j int, v float64) error

	// Clone returns an independent copy. O(rows·cols).
	Clone() Matrix
}

var _ Matrix = (*Dense)(nil)
