package analysis

import (
	"math"

	"github.com/arloliu/asymptote/regression"
)

// Stabilization returns the coefficient of variation of the last tail
// values of a ratio sequence. Smaller means flatter. It returns NaN when
// tail < 2, the sequence is shorter than tail, or the tail mean is zero.
//
// The number is a heuristic for the reader; it is not compared against any
// threshold here.
func Stabilization(ratios []float64, tail int) float64 {
	if tail < 2 || len(ratios) < tail {
		return math.NaN()
	}

	return regression.CoefficientOfVariation(ratios[len(ratios)-tail:])
}
