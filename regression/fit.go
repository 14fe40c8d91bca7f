package regression

import (
	"fmt"
	"math"

	"github.com/arloliu/asymptote/errs"
)

const (
	epsilon = 0x1p-52
	// degenerateULPs is the x spread, in ulps of the largest |x|, below
	// which the points are treated as one x value.
	degenerateULPs = 64
)

// Fit is an ordinary least squares line y = Intercept + Slope*x.
type Fit struct {
	Slope     float64
	Intercept float64
	// RSquared is the coefficient of determination. It is 0 when y has no
	// variance.
	RSquared float64
	RMSE     float64
	// N is the number of points used.
	N int
	// Residuals holds observed minus predicted, in input order.
	Residuals []float64
}

// Predict evaluates the fitted line at x.
func (f Fit) Predict(x float64) float64 {
	return f.Intercept + f.Slope*x
}

// Linear fits y = a + b*x by ordinary least squares.
//
// It needs at least two points and at least two distinct x values. Non-finite
// inputs are rejected rather than propagated into the coefficients.
//
// Parameters:
//   - x: Independent variable, e.g. log2 of the problem size
//   - y: Observations, same length as x
//
// Returns:
//   - Fit: Coefficients, R², RMSE and residuals
//   - error: ErrTooFewPoints, ErrDegenerateX, ErrInvalidValue, or a length mismatch
func Linear(x, y []float64) (Fit, error) {
	if len(x) != len(y) {
		return Fit{}, fmt.Errorf("mismatched data lengths: %d x vs %d y", len(x), len(y))
	}

	n := len(x)
	if n < 2 {
		return Fit{}, fmt.Errorf("%w: %d", errs.ErrTooFewPoints, n)
	}

	var sumX, sumY, maxAbsX float64
	for i := range n {
		if !isFinite(x[i]) || !isFinite(y[i]) {
			return Fit{}, fmt.Errorf("%w: point %d is (%v, %v)", errs.ErrInvalidValue, i, x[i], y[i])
		}
		sumX += x[i]
		sumY += y[i]
		maxAbsX = max(maxAbsX, math.Abs(x[i]))
	}

	meanX := sumX / float64(n)
	meanY := sumY / float64(n)

	// centered sums are numerically safer than the raw normal equations
	var sxx, sxy float64
	for i := range n {
		dx := x[i] - meanX
		sxx += dx * dx
		sxy += dx * (y[i] - meanY)
	}
	// identical x values still leave rounding noise of a few ulps in dx
	if sxx == 0 || math.Sqrt(sxx/float64(n)) <= degenerateULPs*epsilon*maxAbsX {
		return Fit{}, fmt.Errorf("%w: all %d points at x=%v", errs.ErrDegenerateX, n, meanX)
	}

	b := sxy / sxx
	a := meanY - b*meanX

	predicted := make([]float64, n)
	residuals := make([]float64, n)
	for i := range n {
		predicted[i] = a + b*x[i]
		residuals[i] = y[i] - predicted[i]
	}

	return Fit{
		Slope:     b,
		Intercept: a,
		RSquared:  calculateRSquared(y, predicted),
		RMSE:      calculateRMSE(y, predicted),
		N:         n,
		Residuals: residuals,
	}, nil
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
