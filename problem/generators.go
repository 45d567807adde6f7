// SPDX-License-Identifier: MIT
// Package: rwe/problem
//
// generators.go: measures, ground costs and synthetic problems.
//
// Determinism:
//   • Every random draw comes from config.src, so equal options give equal
//     outputs.
//   • Loops run in fixed i→j order.

package problem

import (
	"math"

	"github.com/cockroachdb/errors"
	"github.com/katalvlaran/rwe/matrix"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat/distuv"
)

// Uniform returns the uniform probability vector on n atoms.
// Complexity: O(n).
func Uniform(n int) ([]float64, error) {
	if n <= 0 {
		return nil, errors.Wrapf(ErrInvalidSize, "n = %d", n)
	}
	out := make([]float64, n)
	for i := range out {
		out[i] = 1 / float64(n)
	}

	return out, nil
}

// RandomMeasure draws a probability vector from the symmetric Dirichlet
// distribution with the configured concentration, by normalizing
// independent Gamma(concentration, 1) draws.
//
// Complexity: O(n).
func RandomMeasure(n int, opts ...Option) ([]float64, error) {
	if n <= 0 {
		return nil, errors.Wrapf(ErrInvalidSize, "n = %d", n)
	}
	cfg := newConfig(opts...)

	return dirichlet(n, cfg), nil
}

func dirichlet(n int, cfg config) []float64 {
	var (
		gamma = distuv.Gamma{Alpha: cfg.concentration, Beta: 1, Src: cfg.src}
		out   = make([]float64, n)
	)
	for {
		for i := range out {
			out[i] = gamma.Rand()
		}
		// All-zero draws only happen for tiny concentrations; redraw.
		if total := floats.Sum(out); total > 0 {
			floats.Scale(1/total, out)
			return out
		}
	}
}

// LineCost returns the cost |x_i − y_j|^p·scale between ns and nt points
// evenly spaced on [0, 1]. A single atom sits at 0.5.
// Complexity: O(ns·nt).
func LineCost(ns, nt int, opts ...Option) (*matrix.Dense, error) {
	if ns <= 0 || nt <= 0 {
		return nil, errors.Wrapf(ErrInvalidSize, "%d×%d", ns, nt)
	}
	var (
		cfg = newConfig(opts...)
		xs  = linePoints(ns)
		ys  = linePoints(nt)
	)

	return PointCloudCost(xs, ys, WithExponent(cfg.exponent), WithCostScale(cfg.costScale))
}

func linePoints(n int) [][]float64 {
	pts := make([][]float64, n)
	if n == 1 {
		pts[0] = []float64{0.5}
		return pts
	}
	for i := range pts {
		pts[i] = []float64{float64(i) / float64(n-1)}
	}

	return pts
}

// PointCloudCost returns the cost ‖x_i − y_j‖₂^p·scale between two point
// clouds of equal dimension.
//
// Errors: ErrInvalidSize, ErrDimensionMismatch.
// Complexity: O(ns·nt·d).
func PointCloudCost(xs, ys [][]float64, opts ...Option) (*matrix.Dense, error) {
	if len(xs) == 0 || len(ys) == 0 {
		return nil, errors.Wrapf(ErrInvalidSize, "%d×%d points", len(xs), len(ys))
	}
	var (
		cfg = newConfig(opts...)
		dim = len(xs[0])
	)
	if dim == 0 {
		return nil, errors.Wrap(ErrInvalidSize, "zero-dimensional points")
	}
	for _, cloud := range [][][]float64{xs, ys} {
		for k, p := range cloud {
			if len(p) != dim {
				return nil, errors.Wrapf(ErrDimensionMismatch, "point %d has dimension %d, want %d", k, len(p), dim)
			}
		}
	}

	cost, err := matrix.NewDense(len(xs), len(ys))
	if err != nil {
		return nil, err
	}
	for i, x := range xs {
		row := cost.RawRow(i)
		for j, y := range ys {
			row[j] = math.Pow(floats.Distance(x, y, 2), cfg.exponent) * cfg.costScale
		}
	}

	return cost, nil
}

// Synthetic draws a complete problem: ns and nt points uniform in the unit
// cube of the configured dimension, Dirichlet weights on each side, and the
// ‖x−y‖^p ground cost between them.
//
// Complexity: O(ns·nt·d).
func Synthetic(ns, nt int, opts ...Option) (*Problem, error) {
	if ns <= 0 || nt <= 0 {
		return nil, errors.Wrapf(ErrInvalidSize, "%d×%d", ns, nt)
	}
	var (
		cfg = newConfig(opts...)
		u   = distuv.Uniform{Min: 0, Max: 1, Src: cfg.src}
		xs  = cloud(ns, cfg.dimension, u)
		ys  = cloud(nt, cfg.dimension, u)
	)
	cost, err := PointCloudCost(xs, ys, WithExponent(cfg.exponent), WithCostScale(cfg.costScale))
	if err != nil {
		return nil, err
	}

	return &Problem{
		A:    dirichlet(ns, cfg),
		B:    dirichlet(nt, cfg),
		Cost: cost,
	}, nil
}

func cloud(n, dim int, u distuv.Uniform) [][]float64 {
	pts := make([][]float64, n)
	for i := range pts {
		pts[i] = make([]float64, dim)
		for d := range pts[i] {
			pts[i][d] = u.Rand()
		}
	}

	return pts
}
