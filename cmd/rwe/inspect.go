package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/katalvlaran/rwe/config"
	"github.com/katalvlaran/rwe/logger"
	"github.com/katalvlaran/rwe/store"
	"github.com/urfave/cli/v2"
)

// maxTraceRows bounds the rows printed for one trace.
const maxTraceRows = 20

// InspectCommand lists runs stored in a database.
var InspectCommand = cli.Command{
	Action:    inspectAction,
	Name:      "inspect",
	Usage:     "list stored runs, or the trace of one run",
	ArgsUsage: "[run-id]",
	Flags: []cli.Flag{
		&config.DbFlag,
		&logger.LogLevelFlag,
	},
}

func inspectAction(ctx *cli.Context) error {
	cfg, err := config.NewConfig(ctx)
	if err != nil {
		return err
	}
	if cfg.DbFile == "" {
		return errors.New("inspect: --db is required")
	}
	if ctx.Args().Len() > 1 {
		return errors.New("inspect: at most one run id")
	}

	db, err := store.NewRunDB(cfg.DbFile)
	if err != nil {
		return err
	}
	defer db.Close()

	if ctx.Args().Len() == 0 {
		runs, err := db.Runs()
		if err != nil {
			return err
		}
		fmt.Fprintln(ctx.App.Writer, runsTable(runs))
		return nil
	}

	id, err := strconv.ParseInt(ctx.Args().First(), 10, 64)
	if err != nil {
		return errors.Wrapf(err, "inspect: run id %q", ctx.Args().First())
	}
	trace, err := db.Trace(id)
	if err != nil {
		return err
	}
	fmt.Fprintln(ctx.App.Writer, traceTable(trace))

	return nil
}

func runsTable(runs []store.Run) string {
	t := table.NewWriter()
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"ID", "Name", "Variant", "Size", "Batch", "Iterations", "Elapsed", "Grad norm", "Slope", "Created"})
	for _, r := range runs {
		t.AppendRow(table.Row{
			r.ID,
			r.Name,
			r.Variant,
			fmt.Sprintf("%d×%d", r.Ns, r.Nt),
			r.BatchSize,
			r.Iterations,
			r.Elapsed().Round(time.Microsecond).String(),
			strconv.FormatFloat(r.FinalGradNorm, 'g', 4, 64),
			strconv.FormatFloat(r.Slope, 'g', 4, 64),
			r.Created.Format(time.DateTime),
		})
	}

	return t.Render()
}

// traceTable prints at most maxTraceRows evenly spaced points, always
// including the last one.
func traceTable(trace []store.TracePoint) string {
	t := table.NewWriter()
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Iter", "Time (s)", "Grad norm", "KL(b‖ν)"})

	stride := (len(trace) + maxTraceRows - 1) / maxTraceRows
	if stride < 1 {
		stride = 1
	}
	for k := 0; k < len(trace); k++ {
		if k%stride != 0 && k != len(trace)-1 {
			continue
		}
		p := trace[k]
		t.AppendRow(table.Row{
			p.Iter,
			strconv.FormatFloat(p.Time, 'g', 4, 64),
			strconv.FormatFloat(p.GradNorm, 'g', 4, 64),
			strconv.FormatFloat(p.TargetError, 'g', 4, 64),
		})
	}

	return t.Render()
}
