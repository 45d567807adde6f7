package estimator

import (
	"slices"

	"gonum.org/v1/gonum/floats"
)

// AverageTrajectory returns the running uniform averages of raw:
//
//	avg[0] = raw[0]
//	avg[i] = τ·raw[i] + (1−τ)·avg[i−1],  τ = 1/(i+1)
//
// so avg[i] is the componentwise mean of raw[0..i]. Every output vector is
// freshly allocated and raw is left untouched. Empty input yields nil.
//
// Complexity: O(len(raw)·d) for vectors of length d.
func AverageTrajectory(raw [][]float64) [][]float64 {
	if len(raw) == 0 {
		return nil
	}

	var (
		out = make([][]float64, len(raw))
		tau float64
		i   int
	)
	out[0] = slices.Clone(raw[0])
	for i = 1; i < len(raw); i++ {
		tau = 1 / float64(i+1)
		out[i] = make([]float64, len(raw[i]))
		floats.ScaleTo(out[i], tau, raw[i])
		floats.AddScaled(out[i], 1-tau, out[i-1])
	}

	return out
}
