// Command rwe estimates entropically regularized Wasserstein barycentric
// targets by stochastic dual ascent.
//
//	rwe generate --ns 40 --nt 30 --seed 3 -o problem.json
//	rwe solve -p problem.json -b 8 -n 5000 -o run.csv.gz --report run.html --db runs.db
//	rwe inspect --db runs.db [run-id]
package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"
)

var rweApp = &cli.App{
	Name:      "Regularized Wasserstein estimator",
	HelpName:  "rwe",
	Usage:     "stochastic dual ascent for regularized optimal transport",
	Copyright: "(c) 2025 katalvlaran",
	Commands: []*cli.Command{
		&SolveCommand,
		&GenerateCommand,
		&InspectCommand,
	},
}

func main() {
	if err := rweApp.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
