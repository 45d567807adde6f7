// Package config assembles a run configuration from command line flags.
package config

import (
	"math"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/katalvlaran/rwe/estimator"
	"github.com/katalvlaran/rwe/logger"
	"github.com/urfave/cli/v2"
)

// Defaults of the command line tool.
const (
	DefaultReg1         = estimator.DefaultReg
	DefaultReg2         = estimator.DefaultReg
	DefaultIterations   = estimator.DefaultNumIterMax
	DefaultBatchSize    = estimator.DefaultBatchSize
	DefaultLearningRate = estimator.DefaultLearningRate
	DefaultSeed         = int64(1)
	DefaultNs           = 50
	DefaultNt           = 50
)

// ErrInvalidConfig is wrapped by every Validate failure.
var ErrInvalidConfig = errors.New("config: invalid configuration")

// Config holds the knobs of one command invocation.
type Config struct {
	AppName     string
	CommandName string

	Reg1         float64
	Reg2         float64
	Iterations   int
	BatchSize    int
	LearningRate float64
	MaxTime      time.Duration
	Seed         int64

	ProblemFile string
	Ns          int
	Nt          int

	OutFile    string
	ReportFile string
	DbFile     string
	RunName    string

	LogLevel string
}

// NewConfig reads the flags of the running command, falling back to flag
// defaults for flags the command does not declare, and validates the result.
func NewConfig(ctx *cli.Context) (*Config, error) {
	cfg := createConfigFromFlags(ctx)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// createConfigFromFlags returns Config instance with user specified values or the default ones
func createConfigFromFlags(ctx *cli.Context) *Config {
	cfg := &Config{
		Reg1:         getFlagValue(ctx, Reg1Flag).(float64),
		Reg2:         getFlagValue(ctx, Reg2Flag).(float64),
		Iterations:   getFlagValue(ctx, IterationsFlag).(int),
		BatchSize:    getFlagValue(ctx, BatchSizeFlag).(int),
		LearningRate: getFlagValue(ctx, LearningRateFlag).(float64),
		MaxTime:      getFlagValue(ctx, MaxTimeFlag).(time.Duration),
		Seed:         getFlagValue(ctx, SeedFlag).(int64),
		ProblemFile:  getFlagValue(ctx, ProblemFlag).(string),
		Ns:           getFlagValue(ctx, NsFlag).(int),
		Nt:           getFlagValue(ctx, NtFlag).(int),
		OutFile:      getFlagValue(ctx, OutFlag).(string),
		ReportFile:   getFlagValue(ctx, ReportFlag).(string),
		DbFile:       getFlagValue(ctx, DbFlag).(string),
		RunName:      getFlagValue(ctx, NameFlag).(string),
		LogLevel:     getFlagValue(ctx, logger.LogLevelFlag).(string),
	}
	if ctx.App != nil {
		cfg.AppName = ctx.App.HelpName
	}
	if ctx.Command != nil {
		cfg.CommandName = ctx.Command.Name
	}

	return cfg
}

// getFlagValue returns value specified by user if flag is present in cli context, otherwise return default flag value
func getFlagValue(ctx *cli.Context, flag interface{}) interface{} {
	if ctx.Command != nil {
		for _, cmdFlag := range ctx.Command.Flags {
			name := cmdFlag.Names()[0]
			switch f := flag.(type) {
			case cli.IntFlag:
				if name == f.Name {
					return ctx.Int(f.Name)
				}
			case cli.Int64Flag:
				if name == f.Name {
					return ctx.Int64(f.Name)
				}
			case cli.Float64Flag:
				if name == f.Name {
					return ctx.Float64(f.Name)
				}
			case cli.DurationFlag:
				if name == f.Name {
					return ctx.Duration(f.Name)
				}
			case cli.StringFlag:
				if name == f.Name {
					return ctx.String(f.Name)
				}
			case cli.PathFlag:
				if name == f.Name {
					return ctx.Path(f.Name)
				}
			}
		}
	}

	// If flag not found, return the default value of the flag
	switch f := flag.(type) {
	case cli.IntFlag:
		return f.Value
	case cli.Int64Flag:
		return f.Value
	case cli.Float64Flag:
		return f.Value
	case cli.DurationFlag:
		return f.Value
	case cli.StringFlag:
		return f.Value
	case cli.PathFlag:
		return f.Value
	}

	return nil
}

// Validate checks the estimator knobs and the synthetic problem size.
func (cfg *Config) Validate() error {
	switch {
	case !positiveFinite(cfg.Reg1):
		return errors.Wrapf(ErrInvalidConfig, "reg1 %v must be positive", cfg.Reg1)
	case !positiveFinite(cfg.Reg2):
		return errors.Wrapf(ErrInvalidConfig, "reg2 %v must be positive", cfg.Reg2)
	case cfg.Iterations <= 0:
		return errors.Wrapf(ErrInvalidConfig, "iterations %d must be positive", cfg.Iterations)
	case cfg.BatchSize < 0:
		return errors.Wrapf(ErrInvalidConfig, "batch size %d must be non-negative", cfg.BatchSize)
	case !positiveFinite(cfg.LearningRate):
		return errors.Wrapf(ErrInvalidConfig, "learning rate %v must be positive", cfg.LearningRate)
	case cfg.MaxTime < 0:
		return errors.Wrapf(ErrInvalidConfig, "max time %v must be non-negative", cfg.MaxTime)
	case cfg.ProblemFile == "" && (cfg.Ns <= 0 || cfg.Nt <= 0):
		return errors.Wrapf(ErrInvalidConfig, "synthetic problem size %d×%d", cfg.Ns, cfg.Nt)
	}

	return nil
}

// ToOptions converts cfg into estimator options logging through log.
func (cfg *Config) ToOptions(log logger.Logger) estimator.Options {
	opts := estimator.DefaultOptions()
	opts.Reg1 = cfg.Reg1
	opts.Reg2 = cfg.Reg2
	opts.NumIterMax = cfg.Iterations
	opts.BatchSize = cfg.BatchSize
	opts.LearningRate = cfg.LearningRate
	opts.MaxTime = cfg.MaxTime
	opts.Seed = cfg.Seed
	opts.Logger = log

	return opts
}

func positiveFinite(v float64) bool {
	return v > 0 && !math.IsInf(v, 0)
}
