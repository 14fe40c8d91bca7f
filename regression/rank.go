package regression

import (
	"fmt"
	"math"
	"slices"

	"github.com/arloliu/asymptote/errs"
)

// Rank fits every candidate model to (n, T) and orders them by R², best
// first. Candidates whose domain excludes the data (logarithms of
// non-positive values) are listed in Result.Skipped.
//
// Parameters:
//   - x: Problem sizes
//   - y: Measured times, same length as x
//   - opts: Optional RankOption values such as WithCandidates
//
// Returns:
//   - *Result: Fitted models ordered by R², best first
//   - error: ErrTooFewPoints, a length mismatch, or an invalid option
//
// Example:
//
//	result, err := regression.Rank(sizes, times)
//	if err != nil {
//	    return err
//	}
//	fmt.Println(result.BestFit.Formula) // "T = 1e-06 * n^3.001"
func Rank(x, y []float64, opts ...RankOption) (*Result, error) {
	cfg, err := newRankConfig(opts...)
	if err != nil {
		return nil, err
	}
	if len(x) != len(y) {
		return nil, fmt.Errorf("mismatched data lengths: %d x vs %d y", len(x), len(y))
	}
	if len(x) < 2 {
		return nil, fmt.Errorf("%w: %d", errs.ErrTooFewPoints, len(x))
	}

	positiveX := allPositive(x)
	positiveY := allPositive(y)

	res := &Result{}
	for _, mt := range cfg.candidates {
		var (
			m   *Model
			err error
		)
		switch mt {
		case ModelTypeLinear:
			m, err = fitLinear(x, y)
		case ModelTypeLogarithmic:
			if !positiveX {
				res.Skipped = append(res.Skipped, mt)
				continue
			}
			m, err = fitLogarithmic(x, y)
		case ModelTypePower:
			if !positiveX || !positiveY {
				res.Skipped = append(res.Skipped, mt)
				continue
			}
			m, err = fitPower(x, y)
		case ModelTypeExponential:
			if !positiveY {
				res.Skipped = append(res.Skipped, mt)
				continue
			}
			m, err = fitExponential(x, y)
		case ModelTypeQuadratic:
			m, err = fitQuadratic(x, y)
		default:
			return nil, fmt.Errorf("unknown model type %d", mt)
		}
		if err != nil {
			return nil, fmt.Errorf("fit %s: %w", mt, err)
		}
		res.AllModels = append(res.AllModels, m)
	}

	if len(res.AllModels) == 0 {
		return nil, fmt.Errorf("no candidate model applies to the data")
	}

	slices.SortStableFunc(res.AllModels, func(a, b *Model) int {
		if a.RSquared > b.RSquared {
			return -1
		}
		if a.RSquared < b.RSquared {
			return 1
		}

		return 0
	})
	res.BestFit = res.AllModels[0]

	return res, nil
}

func allPositive(values []float64) bool {
	for _, v := range values {
		if v <= 0 {
			return false
		}
	}

	return true
}

// finish computes R² and RMSE on the original scale.
func finish(mt ModelType, est Estimator, formula string, x, y []float64) *Model {
	predicted := make([]float64, len(x))
	for i := range x {
		predicted[i] = est.Estimate(x[i])
	}

	return &Model{
		Type:         mt,
		Coefficients: est.Coefficients(),
		RSquared:     calculateRSquared(y, predicted),
		RMSE:         calculateRMSE(y, predicted),
		Formula:      formula,
		Estimator:    est,
	}
}

func transform(values []float64, fn func(float64) float64) []float64 {
	out := make([]float64, len(values))
	for i, v := range values {
		out[i] = fn(v)
	}

	return out
}

// fitLinear fits T = a + b*n.
func fitLinear(x, y []float64) (*Model, error) {
	f, err := Linear(x, y)
	if err != nil {
		return nil, err
	}
	est := NewLinearEstimator(f.Intercept, f.Slope)

	return finish(ModelTypeLinear, est, fmt.Sprintf("T = %.4g + %.4g*n", f.Intercept, f.Slope), x, y), nil
}

// fitLogarithmic fits T = a + b*ln(n) by regressing T on ln(n).
func fitLogarithmic(x, y []float64) (*Model, error) {
	f, err := Linear(transform(x, math.Log), y)
	if err != nil {
		return nil, err
	}
	est := NewLogarithmicEstimator(f.Intercept, f.Slope)

	return finish(ModelTypeLogarithmic, est, fmt.Sprintf("T = %.4g + %.4g*ln(n)", f.Intercept, f.Slope), x, y), nil
}

// fitPower fits T = a * n^b by regressing ln(T) on ln(n).
func fitPower(x, y []float64) (*Model, error) {
	f, err := Linear(transform(x, math.Log), transform(y, math.Log))
	if err != nil {
		return nil, err
	}
	a := math.Exp(f.Intercept)
	est := NewPowerEstimator(a, f.Slope)

	return finish(ModelTypePower, est, fmt.Sprintf("T = %.4g * n^%.4g", a, f.Slope), x, y), nil
}

// fitExponential fits T = a * e^(b*n) by regressing ln(T) on n. The formula
// shows the growth base e^b.
func fitExponential(x, y []float64) (*Model, error) {
	f, err := Linear(x, transform(y, math.Log))
	if err != nil {
		return nil, err
	}
	a := math.Exp(f.Intercept)
	est := NewExponentialEstimator(a, f.Slope)

	return finish(ModelTypeExponential, est, fmt.Sprintf("T = %.4g * %.4g^n", a, est.Base()), x, y), nil
}

// fitQuadratic fits T = a + b*n + c*n² with the normal equations, falling
// back to a straight line when there are fewer than three points or the
// system is singular.
func fitQuadratic(x, y []float64) (*Model, error) {
	n := len(x)
	if n < 3 {
		return quadraticFromLinear(x, y)
	}

	// [n    Σx   Σx²] [a]   [Σy]
	// [Σx   Σx²  Σx³] [b] = [Σxy]
	// [Σx²  Σx³  Σx⁴] [c]   [Σx²y]
	var sumX, sumX2, sumX3, sumX4, sumY, sumXY, sumX2Y float64
	for i := range n {
		xi := x[i]
		xi2 := xi * xi
		sumX += xi
		sumX2 += xi2
		sumX3 += xi2 * xi
		sumX4 += xi2 * xi2
		sumY += y[i]
		sumXY += xi * y[i]
		sumX2Y += xi2 * y[i]
	}

	fn := float64(n)
	det := fn*(sumX2*sumX4-sumX3*sumX3) - sumX*(sumX*sumX4-sumX3*sumX2) + sumX2*(sumX*sumX3-sumX2*sumX2)
	scale := math.Max(1, math.Abs(fn*sumX2*sumX4))
	if math.Abs(det) < 1e-12*scale {
		return quadraticFromLinear(x, y)
	}

	detA := sumY*(sumX2*sumX4-sumX3*sumX3) - sumX*(sumXY*sumX4-sumX3*sumX2Y) + sumX2*(sumXY*sumX3-sumX2*sumX2Y)
	detB := fn*(sumXY*sumX4-sumX2Y*sumX3) - sumY*(sumX*sumX4-sumX3*sumX2) + sumX2*(sumX*sumX2Y-sumXY*sumX2)
	detC := fn*(sumX2*sumX2Y-sumXY*sumX3) - sumX*(sumX*sumX2Y-sumXY*sumX2) + sumY*(sumX*sumX3-sumX2*sumX2)

	a, b, c := detA/det, detB/det, detC/det
	est := NewQuadraticEstimator(a, b, c)

	return finish(ModelTypeQuadratic, est, fmt.Sprintf("T = %.4g + %.4g*n + %.4g*n²", a, b, c), x, y), nil
}

func quadraticFromLinear(x, y []float64) (*Model, error) {
	f, err := Linear(x, y)
	if err != nil {
		return nil, err
	}
	est := NewQuadraticEstimator(f.Intercept, f.Slope, 0)

	return finish(ModelTypeQuadratic, est, fmt.Sprintf("T = %.4g + %.4g*n", f.Intercept, f.Slope), x, y), nil
}
