package report

import (
	"fmt"
	"io"
	"math"

	"github.com/cockroachdb/errors"
	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/go-echarts/go-echarts/v2/types"
	"gonum.org/v1/gonum/mat"
)

// Series is one named curve of a convergence chart.
type Series struct {
	Name string
	X    []float64
	Y    []float64
}

// IterationSeries pairs values with the iteration numbers 1..len(values).
func IterationSeries(name string, values []float64) Series {
	xs := make([]float64, len(values))
	for k := range xs {
		xs[k] = float64(k + 1)
	}

	return Series{Name: name, X: xs, Y: values}
}

// convertSeries converts a series to chart points, dropping points that a
// log axis cannot show.
func convertSeries(s Series) []opts.LineData {
	items := []opts.LineData{}
	for k := range s.X {
		if s.X[k] <= 0 || s.Y[k] <= 0 || math.IsInf(s.Y[k], 0) || math.IsNaN(s.Y[k]) {
			continue
		}
		items = append(items, opts.LineData{Value: [2]float64{s.X[k], s.Y[k]}})
	}

	return items
}

// globalOptions are shared by every chart of a report page.
func globalOptions(title, subtitle string) []charts.GlobalOpts {
	return []charts.GlobalOpts{
		charts.WithInitializationOpts(opts.Initialization{
			Theme: types.ThemeWesteros,
		}),
		charts.WithToolboxOpts(opts.Toolbox{
			Show: true,
			Feature: &opts.ToolBoxFeature{
				SaveAsImage: &opts.ToolBoxFeatureSaveAsImage{
					Show:  true,
					Title: "Save",
				},
				DataZoom: &opts.ToolBoxFeatureDataZoom{
					Show: true,
				},
			},
		}),
		charts.WithLegendOpts(opts.Legend{Show: true}),
		charts.WithTitleOpts(opts.Title{
			Title:    title,
			Subtitle: subtitle,
		}),
	}
}

// NewConvergenceChart creates a line chart with logarithmic axes.
func NewConvergenceChart(title, xName, yName string, series ...Series) (*charts.Line, error) {
	chart := charts.NewLine()
	global := append(globalOptions(title, ""),
		charts.WithXAxisOpts(opts.XAxis{Name: xName, Type: "log"}),
		charts.WithYAxisOpts(opts.YAxis{Name: yName, Type: "log"}),
	)
	chart.SetGlobalOptions(global...)
	for _, s := range series {
		if len(s.X) != len(s.Y) {
			return nil, errors.Wrapf(ErrLengthMismatch, "series %q: %d x, %d y", s.Name, len(s.X), len(s.Y))
		}
		chart.AddSeries(s.Name, convertSeries(s))
	}

	return chart, nil
}

// NewMarginalChart creates a bar chart comparing b with an estimated target.
func NewMarginalChart(b, target []float64) (*charts.Bar, error) {
	if len(b) != len(target) {
		return nil, errors.Wrapf(ErrLengthMismatch, "b %d, target %d", len(b), len(target))
	}
	var (
		chart  = charts.NewBar()
		labels = make([]string, len(b))
		bs     = make([]opts.BarData, len(b))
		ts     = make([]opts.BarData, len(b))
	)
	for k := range b {
		labels[k] = fmt.Sprint(k)
		bs[k] = opts.BarData{Value: b[k]}
		ts[k] = opts.BarData{Value: target[k]}
	}
	chart.SetGlobalOptions(globalOptions("Target measure", "b and estimate")...)
	chart.SetXAxis(labels).AddSeries("b", bs).AddSeries("estimate", ts)

	return chart, nil
}

// NewPlanChart creates a heat map of a transport plan.
func NewPlanChart(pi mat.Matrix) *charts.HeatMap {
	var (
		r, c  = pi.Dims()
		chart = charts.NewHeatMap()
		xs    = make([]string, c)
		ys    = make([]string, r)
		data  = make([]opts.HeatMapData, 0, r*c)
		hi    float64
	)
	for j := range xs {
		xs[j] = fmt.Sprint(j)
	}
	for i := range ys {
		ys[i] = fmt.Sprint(i)
	}
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			v := pi.At(i, j)
			hi = math.Max(hi, v)
			data = append(data, opts.HeatMapData{Value: [3]interface{}{j, i, v}})
		}
	}
	global := append(globalOptions("Transport plan", ""),
		charts.WithYAxisOpts(opts.YAxis{Type: "category", Data: ys}),
		charts.WithVisualMapOpts(opts.VisualMap{
			Calculable: true,
			Min:        0,
			Max:        float32(hi),
			InRange:    &opts.VisualMapInRange{Color: []string{"#f7fbff", "#08306b"}},
		}),
	)
	chart.SetGlobalOptions(global...)
	chart.SetXAxis(xs).AddSeries("plan", data)

	return chart
}

// Render writes every chart of rep as one HTML page.
func Render(w io.Writer, rep Report) error {
	page := components.NewPage()
	page.PageTitle = rep.Title

	byIter, err := NewConvergenceChart("Gradient norm", "iteration", "norm",
		IterationSeries(rep.Variant, rep.GradNorm))
	if err != nil {
		return err
	}
	page.AddCharts(byIter)

	if len(rep.Times) == len(rep.GradNorm) {
		byTime, err := NewConvergenceChart("Gradient norm over time", "seconds", "norm",
			Series{Name: rep.Variant, X: rep.Times, Y: rep.GradNorm})
		if err != nil {
			return err
		}
		page.AddCharts(byTime)
	}
	if len(rep.TargetError) > 0 {
		kl, err := NewConvergenceChart("Target error", "iteration", "KL",
			IterationSeries(rep.Variant, rep.TargetError))
		if err != nil {
			return err
		}
		page.AddCharts(kl)
	}
	if rep.Target != nil {
		bars, err := NewMarginalChart(rep.B, rep.Target)
		if err != nil {
			return err
		}
		page.AddCharts(bars)
	}
	if rep.Plan != nil {
		page.AddCharts(NewPlanChart(rep.Plan))
	}

	return errors.Wrap(page.Render(w), "report: render page")
}
