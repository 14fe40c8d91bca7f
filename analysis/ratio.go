package analysis

import (
	"fmt"
	"math"

	"github.com/arloliu/asymptote/errs"
	"github.com/arloliu/asymptote/growth"
	"github.com/arloliu/asymptote/table"
)

// RatioPoint is time / h(n) at one measured size.
type RatioPoint struct {
	Size        int
	ProblemSize float64
	Time        float64
	Growth      float64
	Ratio       float64
}

// RatioResult is the ratio sequence of one algorithm, ascending size.
type RatioResult struct {
	Algorithm string
	Model     growth.Model
	Points    []RatioPoint
	// Skipped counts sizes where h(n) overflowed or was zero.
	Skipped int
	Err     error
}

// Ratios returns the ratio values in size order.
func (r RatioResult) Ratios() []float64 {
	out := make([]float64, len(r.Points))
	for i, p := range r.Points {
		out[i] = p.Ratio
	}

	return out
}

// RatioTest computes time / h(n) for every measured size of every column.
// The sequence is the result; no convergence verdict is drawn.
func RatioTest(records []table.Record, suite *growth.Suite, opts ...Option) ([]RatioResult, error) {
	cfg, err := newConfig(opts...)
	if err != nil {
		return nil, err
	}

	all := split(records, suite, cfg)
	out := make([]RatioResult, 0, len(all))
	for _, s := range all {
		out = append(out, ratioTest(s))
	}

	return out, nil
}

func ratioTest(s series) RatioResult {
	res := RatioResult{Algorithm: s.column}
	if s.err != nil {
		res.Err = s.err
		return res
	}
	res.Model = s.algorithm.Model

	for i, t := range s.times {
		h := s.algorithm.Model.Eval(s.problem[i])
		if h == 0 || math.IsNaN(h) || math.IsInf(h, 0) {
			res.Skipped++
			continue
		}
		res.Points = append(res.Points, RatioPoint{
			Size:        s.sizes[i],
			ProblemSize: s.problem[i],
			Time:        t,
			Growth:      h,
			Ratio:       t / h,
		})
	}

	if len(res.Points) == 0 {
		res.Err = fmt.Errorf("%w: no usable sizes", errs.ErrTooFewPoints)
	}

	return res
}
