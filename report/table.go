package report

import (
	"fmt"
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"
	"gonum.org/v1/gonum/mat"
)

// SummaryTable formats one row per report: variant, iterations, elapsed time,
// final gradient norm, final target error and the fitted slope.
func SummaryTable(reports ...Report) string {
	t := table.NewWriter()
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Run", "Variant", "Iterations", "Elapsed", "Grad norm", "KL(b‖ν)", "Slope", "R²"})
	for _, r := range reports {
		t.AppendRow(table.Row{
			r.Title,
			r.Variant,
			r.Iterations,
			r.Elapsed.String(),
			formatFloat(r.FinalGradNorm()),
			formatFloat(r.FinalTargetError()),
			formatFloat(r.Fit.Slope),
			formatFloat(r.Fit.RSquared),
		})
	}

	return t.Render()
}

// PlanTable formats a transport plan with row and column indices.
func PlanTable(pi mat.Matrix) string {
	r, c := pi.Dims()
	t := table.NewWriter()
	t.SetStyle(table.StyleLight)

	header := make(table.Row, c+1)
	header[0] = ""
	for j := 0; j < c; j++ {
		header[j+1] = j
	}
	t.AppendHeader(header)
	for i := 0; i < r; i++ {
		row := make(table.Row, c+1)
		row[0] = i
		for j := 0; j < c; j++ {
			row[j+1] = formatFloat(pi.At(i, j))
		}
		t.AppendRow(row)
	}

	return t.Render()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', 4, 64)
}

// String implements fmt.Stringer.
func (f Fit) String() string {
	return fmt.Sprintf("slope %.4g (R² %.3g, %d points)", f.Slope, f.RSquared, f.Points)
}
