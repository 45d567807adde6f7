package estimator

import "math"

// StepSize is the diminishing schedule lr/√(k+1) of the single-sample and
// semi-stochastic drivers; k is the zero-based iteration.
func StepSize(lr float64, k int) float64 {
	return lr / math.Sqrt(float64(k+1))
}

// BatchStepSize is the mini-batch schedule min(lr/√(k+1), reg1)/batch.
func BatchStepSize(lr, reg1 float64, k, batch int) float64 {
	return math.Min(StepSize(lr, k), reg1) / float64(batch)
}
