package config

import (
	"github.com/urfave/cli/v2"
)

// Estimator knobs.
var (
	Reg1Flag = cli.Float64Flag{
		Name:  "reg1",
		Usage: "entropic regularization of the transport plan",
		Value: DefaultReg1,
	}
	Reg2Flag = cli.Float64Flag{
		Name:  "reg2",
		Usage: "entropic regularization of the estimated target measure",
		Value: DefaultReg2,
	}
	IterationsFlag = cli.IntFlag{
		Name:    "iterations",
		Aliases: []string{"n"},
		Usage:   "maximum number of iterations",
		Value:   DefaultIterations,
	}
	BatchSizeFlag = cli.IntFlag{
		Name:    "batch-size",
		Aliases: []string{"b"},
		Usage:   "samples per iteration: 0 semi-stochastic, 1 single-sample, >1 mini-batch",
		Value:   DefaultBatchSize,
	}
	LearningRateFlag = cli.Float64Flag{
		Name:  "lr",
		Usage: "base learning rate, divided by sqrt(k+1) at iteration k",
		Value: DefaultLearningRate,
	}
	MaxTimeFlag = cli.DurationFlag{
		Name:  "max-time",
		Usage: "wall-clock budget, 0 disables it",
	}
	SeedFlag = cli.Int64Flag{
		Name:  "seed",
		Usage: "seed of the sampling and problem generators",
		Value: DefaultSeed,
	}
)

// Problem selection.
var (
	ProblemFlag = cli.PathFlag{
		Name:    "problem",
		Aliases: []string{"p"},
		Usage:   "problem JSON file; a synthetic problem is generated when empty",
	}
	NsFlag = cli.IntFlag{
		Name:  "ns",
		Usage: "number of source atoms of a synthetic problem",
		Value: DefaultNs,
	}
	NtFlag = cli.IntFlag{
		Name:  "nt",
		Usage: "number of target atoms of a synthetic problem",
		Value: DefaultNt,
	}
)

// Outputs.
var (
	OutFlag = cli.PathFlag{
		Name:    "out",
		Aliases: []string{"o"},
		Usage:   "output file (.csv, .csv.gz or .csv.zst for solve, .json for generate)",
	}
	ReportFlag = cli.PathFlag{
		Name:  "report",
		Usage: "HTML convergence report file",
	}
	DbFlag = cli.PathFlag{
		Name:  "db",
		Usage: "SQLite run database",
	}
	NameFlag = cli.StringFlag{
		Name:  "name",
		Usage: "run name stored in the database",
	}
)
