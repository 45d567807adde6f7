package config

import (
	"testing"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/katalvlaran/rwe/estimator"
	"github.com/katalvlaran/rwe/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"
)

// runWith parses args against a command declaring flags and returns the
// config NewConfig built inside its action.
func runWith(t *testing.T, flags []cli.Flag, args ...string) (*Config, error) {
	var (
		cfg    *Config
		cfgErr error
	)
	app := cli.NewApp()
	app.Commands = []*cli.Command{{
		Name:  "testcmd",
		Flags: flags,
		Action: func(ctx *cli.Context) error {
			cfg, cfgErr = NewConfig(ctx)
			return nil
		},
	}}
	require.NoError(t, app.Run(append([]string{"rwe", "testcmd"}, args...)))

	return cfg, cfgErr
}

func allFlags() []cli.Flag {
	return []cli.Flag{
		&Reg1Flag, &Reg2Flag, &IterationsFlag, &BatchSizeFlag, &LearningRateFlag,
		&MaxTimeFlag, &SeedFlag, &ProblemFlag, &NsFlag, &NtFlag, &OutFlag,
		&ReportFlag, &DbFlag, &NameFlag, &logger.LogLevelFlag,
	}
}

func TestNewConfig_Defaults(t *testing.T) {
	cfg, err := runWith(t, allFlags())
	require.NoError(t, err)

	assert.Equal(t, "testcmd", cfg.CommandName)
	assert.Equal(t, DefaultReg1, cfg.Reg1)
	assert.Equal(t, DefaultReg2, cfg.Reg2)
	assert.Equal(t, DefaultIterations, cfg.Iterations)
	assert.Equal(t, DefaultBatchSize, cfg.BatchSize)
	assert.Equal(t, DefaultSeed, cfg.Seed)
	assert.Equal(t, DefaultNs, cfg.Ns)
	assert.Equal(t, time.Duration(0), cfg.MaxTime)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestNewConfig_UserValues(t *testing.T) {
	cfg, err := runWith(t, allFlags(),
		"--reg1", "0.05", "--reg2", "0.2", "-n", "300", "-b", "0", "--lr", "0.5",
		"--max-time", "2s", "--seed", "77", "--ns", "10", "--nt", "12",
		"-o", "run.csv.gz", "--report", "r.html", "--db", "runs.db", "--name", "demo", "-l", "debug")
	require.NoError(t, err)

	assert.Equal(t, 0.05, cfg.Reg1)
	assert.Equal(t, 0.2, cfg.Reg2)
	assert.Equal(t, 300, cfg.Iterations)
	assert.Equal(t, 0, cfg.BatchSize)
	assert.Equal(t, 0.5, cfg.LearningRate)
	assert.Equal(t, 2*time.Second, cfg.MaxTime)
	assert.Equal(t, int64(77), cfg.Seed)
	assert.Equal(t, 10, cfg.Ns)
	assert.Equal(t, 12, cfg.Nt)
	assert.Equal(t, "run.csv.gz", cfg.OutFile)
	assert.Equal(t, "r.html", cfg.ReportFile)
	assert.Equal(t, "runs.db", cfg.DbFile)
	assert.Equal(t, "demo", cfg.RunName)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestNewConfig_UndeclaredFlagsUseDefaults(t *testing.T) {
	cfg, err := runWith(t, []cli.Flag{&Reg1Flag}, "--reg1", "3")
	require.NoError(t, err)
	assert.Equal(t, 3.0, cfg.Reg1)
	assert.Equal(t, DefaultReg2, cfg.Reg2)
	assert.Equal(t, DefaultIterations, cfg.Iterations)
}

func TestNewConfig_Invalid(t *testing.T) {
	cases := []struct {
		name string
		args []string
	}{
		{"reg1", []string{"--reg1", "0"}},
		{"reg2", []string{"--reg2", "-1"}},
		{"iterations", []string{"-n", "0"}},
		{"batch", []string{"-b", "-2"}},
		{"lr", []string{"--lr", "0"}},
		{"max time", []string{"--max-time", "-1s"}},
		{"size", []string{"--ns", "0"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := runWith(t, allFlags(), tc.args...)
			assert.True(t, errors.Is(err, ErrInvalidConfig), "got %v", err)
		})
	}
}

func TestValidate_ProblemFileSkipsSize(t *testing.T) {
	cfg := &Config{Reg1: 1, Reg2: 1, Iterations: 1, LearningRate: 1, ProblemFile: "p.json"}
	assert.NoError(t, cfg.Validate())
}

func TestToOptions(t *testing.T) {
	cfg := &Config{Reg1: 0.1, Reg2: 0.2, Iterations: 9, BatchSize: 4, LearningRate: 2,
		MaxTime: time.Second, Seed: 3}
	log := logger.NewLogger("critical", "config-test")

	opts := cfg.ToOptions(log)
	assert.Equal(t, 0.1, opts.Reg1)
	assert.Equal(t, 0.2, opts.Reg2)
	assert.Equal(t, 9, opts.NumIterMax)
	assert.Equal(t, 4, opts.BatchSize)
	assert.Equal(t, 2.0, opts.LearningRate)
	assert.Equal(t, time.Second, opts.MaxTime)
	assert.Equal(t, int64(3), opts.Seed)
	assert.Same(t, log, opts.Logger)
	assert.Zero(t, opts.PMFTolerance)

	v, err := estimator.VariantFor(opts.BatchSize)
	require.NoError(t, err)
	assert.Equal(t, estimator.MiniBatch, v)
}
