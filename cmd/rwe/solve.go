package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/katalvlaran/rwe/config"
	"github.com/katalvlaran/rwe/diagnostics"
	"github.com/katalvlaran/rwe/estimator"
	"github.com/katalvlaran/rwe/export"
	"github.com/katalvlaran/rwe/logger"
	"github.com/katalvlaran/rwe/problem"
	"github.com/katalvlaran/rwe/report"
	"github.com/katalvlaran/rwe/store"
	"github.com/urfave/cli/v2"
)

// SolveCommand runs the estimator on a problem file or a synthetic problem.
var SolveCommand = cli.Command{
	Action:    solveAction,
	Name:      "solve",
	Usage:     "run the estimator and report its convergence",
	ArgsUsage: "",
	Flags: []cli.Flag{
		&config.Reg1Flag,
		&config.Reg2Flag,
		&config.IterationsFlag,
		&config.BatchSizeFlag,
		&config.LearningRateFlag,
		&config.MaxTimeFlag,
		&config.SeedFlag,
		&config.ProblemFlag,
		&config.NsFlag,
		&config.NtFlag,
		&config.OutFlag,
		&config.ReportFlag,
		&config.DbFlag,
		&config.NameFlag,
		&logger.LogLevelFlag,
	},
	Description: `
Solves the problem given by --problem, or a synthetic problem of size
--ns × --nt drawn with --seed. The variant follows --batch-size. A summary
table is printed; --out, --report and --db additionally write the averaged
trajectory, an HTML report and a database record.`,
}

func solveAction(ctx *cli.Context) error {
	cfg, err := config.NewConfig(ctx)
	if err != nil {
		return err
	}
	log := logger.NewLogger(cfg.LogLevel, "rwe-solve")

	p, name, err := loadProblem(cfg)
	if err != nil {
		return err
	}
	log.Noticef("Solve %v (%d×%d), reg1 %v, reg2 %v, batch size %d",
		name, p.Ns(), p.Nt(), cfg.Reg1, cfg.Reg2, cfg.BatchSize)

	opts := cfg.ToOptions(log)
	res, err := estimator.Solve(p.A, p.B, p.Cost, opts)
	if err != nil {
		return err
	}

	log.Info("Evaluate trajectory")
	in := diagnostics.Input{A: p.A, B: p.B, Cost: p.Cost}
	rep, err := report.New(name, in, cfg.Reg1, cfg.Reg2, res)
	if err != nil {
		return err
	}
	fmt.Fprintln(ctx.App.Writer, report.SummaryTable(rep))

	if cfg.OutFile != "" {
		log.Noticef("Write trajectory %v", cfg.OutFile)
		if err = export.WriteTrajectory(cfg.OutFile, res); err != nil {
			return err
		}
	}
	if cfg.ReportFile != "" {
		log.Noticef("Write report %v", cfg.ReportFile)
		if err = writeReport(cfg.ReportFile, rep); err != nil {
			return err
		}
	}
	if cfg.DbFile != "" {
		id, err := saveRun(cfg.DbFile, store.NewRecord(name, opts, res, rep))
		if err != nil {
			return err
		}
		log.Noticef("Stored run %d in %v", id, cfg.DbFile)
	}

	return nil
}

// loadProblem reads cfg.ProblemFile or synthesizes a problem, and names it.
func loadProblem(cfg *config.Config) (*problem.Problem, string, error) {
	var (
		p    *problem.Problem
		name string
		err  error
	)
	if cfg.ProblemFile != "" {
		p, err = problem.LoadFile(cfg.ProblemFile)
		if err != nil {
			return nil, "", err
		}
		if err = p.Validate(estimator.DefaultPMFTolerance); err != nil {
			return nil, "", errors.Wrapf(err, "problem %v", cfg.ProblemFile)
		}
		name = strings.TrimSuffix(filepath.Base(cfg.ProblemFile), filepath.Ext(cfg.ProblemFile))
	} else {
		p, err = problem.Synthetic(cfg.Ns, cfg.Nt, problem.WithSeed(cfg.Seed))
		if err != nil {
			return nil, "", err
		}
		name = fmt.Sprintf("synthetic-%dx%d", cfg.Ns, cfg.Nt)
	}
	if cfg.RunName != "" {
		name = cfg.RunName
	}

	return p, name, nil
}

func writeReport(path string, rep report.Report) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "failed to create report")
	}
	if err = report.Render(f, rep); err != nil {
		_ = f.Close()
		return err
	}

	return f.Close()
}

func saveRun(dbFile string, rec store.Record) (int64, error) {
	db, err := store.NewRunDB(dbFile)
	if err != nil {
		return 0, err
	}
	id, err := db.Add(rec)

	return id, errors.CombineErrors(err, db.Close())
}
