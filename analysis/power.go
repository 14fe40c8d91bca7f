package analysis

import (
	"math"

	"github.com/arloliu/asymptote/growth"
	"github.com/arloliu/asymptote/regression"
	"github.com/arloliu/asymptote/table"
)

// PowerResult is the log-log fit of one algorithm.
type PowerResult struct {
	Algorithm string
	Model     growth.Model
	Fit       regression.Fit
	// Points is the number of rows used; Skipped counts non-positive times,
	// which have no logarithm.
	Points  int
	Skipped int
	// Theoretical is the exponent of a power-law model. HasTheoretical is
	// false for exponential and n^k log n models, where the log-log slope is
	// not constant.
	Theoretical    float64
	HasTheoretical bool
	// Deviation is Fit.Slope - Theoretical when HasTheoretical.
	Deviation float64
	Err       error
}

// PowerTest runs the power test for every column in records.
func PowerTest(records []table.Record, suite *growth.Suite, opts ...Option) ([]PowerResult, error) {
	cfg, err := newConfig(opts...)
	if err != nil {
		return nil, err
	}

	all := split(records, suite, cfg)
	out := make([]PowerResult, 0, len(all))
	for _, s := range all {
		out = append(out, powerTest(s))
	}

	return out, nil
}

func powerTest(s series) PowerResult {
	res := PowerResult{Algorithm: s.column}
	if s.err != nil {
		res.Err = s.err
		return res
	}
	res.Model = s.algorithm.Model
	res.Theoretical, res.HasTheoretical = s.algorithm.Model.Exponent()

	logN := make([]float64, 0, len(s.times))
	logT := make([]float64, 0, len(s.times))
	for i, t := range s.times {
		if t <= 0 || s.problem[i] <= 0 {
			res.Skipped++
			continue
		}
		logN = append(logN, math.Log2(s.problem[i]))
		logT = append(logT, math.Log2(t))
	}
	res.Points = len(logN)

	fit, err := regression.Linear(logN, logT)
	if err != nil {
		res.Err = err
		return res
	}
	res.Fit = fit
	if res.HasTheoretical {
		res.Deviation = fit.Slope - res.Theoretical
	}

	return res
}
