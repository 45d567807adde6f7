// SPDX-License-Identifier: MIT
// Package: rwe/problem
//
// errors.go: sentinel errors of the problem package.
// Callers match with errors.Is; returned errors carry the failing argument.

package problem

import "github.com/cockroachdb/errors"

var (
	// ErrInvalidSize indicates a non-positive number of atoms or dimensions.
	ErrInvalidSize = errors.New("problem: size must be > 0")

	// ErrDimensionMismatch indicates point clouds of different dimension or a
	// cost matrix that does not match the measures.
	ErrDimensionMismatch = errors.New("problem: dimension mismatch")

	// ErrInvalidMeasure indicates that a or b is not a probability vector.
	ErrInvalidMeasure = errors.New("problem: invalid measure")

	// ErrNilCost indicates a problem without a cost matrix.
	ErrNilCost = errors.New("problem: nil cost matrix")

	// ErrDecode indicates malformed serialized input.
	ErrDecode = errors.New("problem: decode")
)
