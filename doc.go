// Package rwe estimates the entropically regularized Wasserstein projection of
// a target measure by stochastic dual ascent.
//
// Given source weights a, target weights b and a ground cost M, the estimator
// maximizes the smooth dual of
//
//	min_π ⟨π, M⟩ + reg1·KL(π ‖ a⊗b) + reg2·KL(ν ‖ b),   π·1 = a, πᵀ·1 = ν
//
// over potentials (α, β), sampling source and target atoms instead of sweeping
// the full cost matrix. Three drivers share one state:
//
//	batch size 0   semi-stochastic: one source atom, full β gradient
//	batch size 1   single-sample SGD on one (i, j) pair
//	batch size ≥2  mini-batch SGD
//
// Packages:
//
//	estimator/    drivers, Solve, running averages, incremental normalization
//	sampler/      PMF checks and seeded categorical sampling
//	matrix/       dense row-major cost matrices and validators
//	diagnostics/  gradient norms, losses and the induced transport plan
//	report/       convergence slopes, HTML charts and summary tables
//	problem/      problem generators and the JSON problem format
//	store/        SQLite run database
//	export/       CSV trajectories, optionally gzip or zstd compressed
//	config/       command line configuration
//	logger/       leveled module loggers
//	cmd/rwe/      the rwe command (solve, generate, inspect)
//
// Quick start:
//
//	opts := estimator.DefaultOptions()
//	opts.BatchSize = 8
//	res, err := estimator.Solve(a, b, cost, opts)
//	alpha, beta := res.FinalAlpha(), res.FinalBeta()
package rwe
