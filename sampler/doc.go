// Package sampler draws index sequences from finite discrete distributions by
// inverting the cumulative distribution function.
//
// 🚀 What is it for?
//
//	The dual estimators pick one (or a batch of) source/target atoms per
//	iteration. All draws for a run are generated once, up front, so the
//	optimization loop only pays a slice lookup per iteration.
//
// ✨ Key features:
//   - CumSum: O(n) cumulative sum (gonum floats).
//   - RandomIntList: O(length · log n) draws via binary search on the CDF.
//   - Zero-probability atoms are never drawn.
//   - CheckPMF: validation of probability vectors with an explicit tolerance.
//   - NewRand: deterministic RNG factory (seed 0 ⇒ fixed default seed).
//
// ⚙️ Usage:
//
//	rng := sampler.NewRand(42)
//	idx, err := sampler.RandomIntList(rng, []float64{0.2, 0.8}, 1000)
//
// Concurrency:
//   - math/rand.Rand is NOT goroutine-safe; give every run its own *rand.Rand.
package sampler
