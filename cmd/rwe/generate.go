package main

import (
	"github.com/katalvlaran/rwe/config"
	"github.com/katalvlaran/rwe/logger"
	"github.com/katalvlaran/rwe/problem"
	"github.com/urfave/cli/v2"
)

// GenerateCommand writes a synthetic problem file.
var GenerateCommand = cli.Command{
	Action:    generateAction,
	Name:      "generate",
	Usage:     "generate a synthetic problem file",
	ArgsUsage: "",
	Flags: []cli.Flag{
		&config.NsFlag,
		&config.NtFlag,
		&config.SeedFlag,
		&config.OutFlag,
		&logger.LogLevelFlag,
	},
	Description: "Draws random measures and point clouds in the unit square and writes them as JSON.",
}

// generateAction produces a problem of the configured size and seed.
func generateAction(ctx *cli.Context) error {
	cfg, err := config.NewConfig(ctx)
	if err != nil {
		return err
	}
	log := logger.NewLogger(cfg.LogLevel, "rwe-generate")

	p, err := problem.Synthetic(cfg.Ns, cfg.Nt, problem.WithSeed(cfg.Seed))
	if err != nil {
		return err
	}
	if cfg.OutFile == "" {
		cfg.OutFile = "./problem.json"
	}
	log.Noticef("Write %d×%d problem %v", cfg.Ns, cfg.Nt, cfg.OutFile)

	return p.SaveFile(cfg.OutFile)
}
