// SPDX-License-Identifier: MIT

// Package matrix provides the dense cost-matrix representation consumed by the
// dual estimators in rwe.
//
// 🚀 What lives here?
//
//	• Matrix - a tiny, error-returning interface (Rows, Cols, At, Set, Clone).
//	• Dense  - a row-major implementation backed by one flat []float64.
//	• Validators for shape and the finite-value numeric policy.
//	• Row/column reductions and the dynamic-range helper used to reason about
//	  exp((α+β−M)/ε) overflow.
//	• A zero-copy bridge to gonum (ToGonum) for diagnostics.
//
// ⚙️ Usage:
//
//	cost, err := matrix.NewDenseFrom([][]float64{
//	  {0, 1},
//	  {1, 0},
//	})
//	if err != nil {
//	  // ErrInvalidDimensions, ErrRaggedRows, ErrNaNInf
//	}
//	row := cost.RawRow(0) // hot-path view, no bounds re-checks per element
//
// Public indexers (At/Set) never panic; RawRow is the single unchecked fast path
// and is reserved for callers that validated dimensions once up front.
package matrix
