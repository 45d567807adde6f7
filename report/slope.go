package report

import (
	"math"

	"github.com/cockroachdb/errors"
	"gonum.org/v1/gonum/stat"
)

var (
	// ErrTooFewPoints indicates a curve with fewer than two usable points.
	ErrTooFewPoints = errors.New("report: need at least two positive points")

	// ErrLengthMismatch indicates x and y series of different length.
	ErrLengthMismatch = errors.New("report: series length mismatch")
)

// Fit is a least-squares line log(y) = Intercept + Slope·log(x).
type Fit struct {
	Slope     float64
	Intercept float64
	RSquared  float64
	Points    int
}

// LogLogSlope fits log(values[k]) against log(k+1). Points that are not
// strictly positive and finite are skipped, since their logarithm is
// undefined; a curve decaying like k^−p reports Slope ≈ −p.
//
// Complexity: O(n).
func LogLogSlope(values []float64) (Fit, error) {
	var (
		xs = make([]float64, 0, len(values))
		ys = make([]float64, 0, len(values))
	)
	for k, v := range values {
		if v > 0 && !math.IsInf(v, 1) {
			xs = append(xs, math.Log(float64(k+1)))
			ys = append(ys, math.Log(v))
		}
	}
	if len(xs) < 2 {
		return Fit{}, errors.Wrapf(ErrTooFewPoints, "%d of %d usable", len(xs), len(values))
	}
	intercept, slope := stat.LinearRegression(xs, ys, nil, false)

	return Fit{
		Slope:     slope,
		Intercept: intercept,
		RSquared:  stat.RSquared(xs, ys, nil, intercept, slope),
		Points:    len(xs),
	}, nil
}
