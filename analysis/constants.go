package analysis

import (
	"math"

	"github.com/arloliu/asymptote/growth"
	"github.com/arloliu/asymptote/regression"
	"github.com/arloliu/asymptote/table"
)

// CurvePoint compares a measured time with the fitted c·h(n)+b.
type CurvePoint struct {
	Size     int
	Growth   float64
	Time     float64
	Fitted   float64
	Residual float64
}

// ConstantsResult is the linear fit of time against h(n) for one algorithm.
type ConstantsResult struct {
	Algorithm string
	Model     growth.Model
	Fit       regression.Fit
	// Constant is the fitted slope c and Overhead the intercept b.
	Constant float64
	Overhead float64
	Curve    []CurvePoint
	Skipped  int
	Err      error
}

// ConstantsTest regresses time on h(n) for every column in records.
func ConstantsTest(records []table.Record, suite *growth.Suite, opts ...Option) ([]ConstantsResult, error) {
	cfg, err := newConfig(opts...)
	if err != nil {
		return nil, err
	}

	all := split(records, suite, cfg)
	out := make([]ConstantsResult, 0, len(all))
	for _, s := range all {
		out = append(out, constantsTest(s))
	}

	return out, nil
}

func constantsTest(s series) ConstantsResult {
	res := ConstantsResult{Algorithm: s.column}
	if s.err != nil {
		res.Err = s.err
		return res
	}
	res.Model = s.algorithm.Model

	var (
		sizes []int
		hs    []float64
		ts    []float64
	)
	for i, t := range s.times {
		h := s.algorithm.Model.Eval(s.problem[i])
		if math.IsNaN(h) || math.IsInf(h, 0) {
			res.Skipped++
			continue
		}
		sizes = append(sizes, s.sizes[i])
		hs = append(hs, h)
		ts = append(ts, t)
	}

	fit, err := regression.Linear(hs, ts)
	if err != nil {
		res.Err = err
		return res
	}
	res.Fit = fit
	res.Constant = fit.Slope
	res.Overhead = fit.Intercept

	res.Curve = make([]CurvePoint, len(hs))
	for i := range hs {
		fitted := fit.Predict(hs[i])
		res.Curve[i] = CurvePoint{
			Size:     sizes[i],
			Growth:   hs[i],
			Time:     ts[i],
			Fitted:   fitted,
			Residual: ts[i] - fitted,
		}
	}

	return res
}
