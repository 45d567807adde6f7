// SPDX-License-Identifier: MIT
// Package: rwe/problem
//
// options.go: functional options for the generators.
//
// Contract:
//   • Options are functional (type Option func(*config)).
//   • Option constructors validate and panic on meaningless inputs;
//     generators themselves return errors and never panic.
//   • Determinism is explicit: seeding is done via WithSeed or WithSource.

package problem

import (
	"golang.org/x/exp/rand"
)

// Option customizes a generator by mutating its config before generation.
// Complexity: applying N options costs O(N).
type Option func(*config)

// WithSeed seeds the generator deterministically. Seed 0 is a valid seed.
func WithSeed(seed int64) Option {
	return func(c *config) {
		c.src = rand.NewSource(uint64(seed))
	}
}

// WithSource provides an explicit random source. Panics on nil.
func WithSource(src rand.Source) Option {
	if src == nil {
		panic("problem: WithSource(nil)")
	}
	return func(c *config) {
		c.src = src
	}
}

// WithConcentration sets the Dirichlet concentration of RandomMeasure.
// Large values give nearly uniform measures, small values spiky ones.
// Panics if c <= 0.
func WithConcentration(conc float64) Option {
	if !(conc > 0) {
		panic("problem: WithConcentration(c<=0)")
	}
	return func(c *config) {
		c.concentration = conc
	}
}

// WithExponent sets p in the ground cost |x−y|^p. Panics if p <= 0.
func WithExponent(p float64) Option {
	if !(p > 0) {
		panic("problem: WithExponent(p<=0)")
	}
	return func(c *config) {
		c.exponent = p
	}
}

// WithCostScale multiplies every cost entry by s. Panics if s <= 0.
func WithCostScale(s float64) Option {
	if !(s > 0) {
		panic("problem: WithCostScale(s<=0)")
	}
	return func(c *config) {
		c.costScale = s
	}
}

// WithDimension sets the dimension of the point clouds drawn by Synthetic.
// Panics if d <= 0.
func WithDimension(d int) Option {
	if d <= 0 {
		panic("problem: WithDimension(d<=0)")
	}
	return func(c *config) {
		c.dimension = d
	}
}
