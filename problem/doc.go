// SPDX-License-Identifier: MIT

// Package problem builds and stores discrete optimal-transport instances.
//
// A Problem holds two probability vectors and their ground cost. Generators
// cover the usual test beds:
//
//	a, _ := problem.Uniform(50)
//	b, _ := problem.RandomMeasure(40, problem.WithSeed(7), problem.WithConcentration(0.5))
//	cost, _ := problem.LineCost(50, 40)                      // squared distance on [0,1]
//	p, _ := problem.Synthetic(50, 40, problem.WithSeed(7))   // random clouds in [0,1]^2
//
// Problems round-trip through JSON with Save/Load (and the *File variants),
// which is the format the rwe command reads and writes.
package problem
