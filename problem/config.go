// SPDX-License-Identifier: MIT
// Package: rwe/problem
//
// config.go: internal configuration and deterministic defaults.
//
// Deterministic defaults:
//   • src           = rand.NewSource(DefaultSeed)
//   • concentration = 1   (uniform over the simplex)
//   • exponent      = 2   (squared Euclidean cost)
//   • costScale     = 1
//   • dimension     = 2

package problem

import (
	"golang.org/x/exp/rand"
)

// DefaultSeed seeds generators that were given no WithSeed/WithSource.
const DefaultSeed uint64 = 1

const (
	defaultConcentration = 1.0
	defaultExponent      = 2.0
	defaultCostScale     = 1.0
	defaultDimension     = 2
)

// config aggregates all generator knobs. Passed by value.
type config struct {
	src           rand.Source
	concentration float64
	exponent      float64
	costScale     float64
	dimension     int
}

// newConfig applies opts over the defaults; later options win.
// Complexity: O(len(opts)).
func newConfig(opts ...Option) config {
	cfg := config{
		concentration: defaultConcentration,
		exponent:      defaultExponent,
		costScale:     defaultCostScale,
		dimension:     defaultDimension,
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.src == nil {
		cfg.src = rand.NewSource(DefaultSeed)
	}

	return cfg
}
