package analysis

import (
	"errors"
	"math"

	"github.com/arloliu/asymptote/growth"
	"github.com/arloliu/asymptote/regression"
	"github.com/arloliu/asymptote/table"
)

// RankResult is the best-fit ranking of one algorithm.
type RankResult struct {
	Algorithm string
	Result    *regression.Result
	Err       error
}

// Report bundles every procedure run over one table.
type Report struct {
	Suite     string
	IndexName string
	ValueName string
	// Tail is the stabilization window; zero when disabled.
	Tail int

	Power     []PowerResult
	Ratio     []RatioResult
	Constants []ConstantsResult
	// Stability maps algorithm to Stabilization(ratios, Tail). Absent when
	// the sequence is shorter than Tail.
	Stability map[string]float64
	Ranking   []RankResult
}

// Analyze runs the power, ratio and constants tests on tbl, plus the
// stabilization heuristic and best-fit ranking unless disabled.
// Every table column is reported, including columns with no cells.
func Analyze(tbl *table.Table, suite *growth.Suite, opts ...Option) (*Report, error) {
	if tbl == nil || suite == nil {
		return nil, errors.New("analyze: nil table or suite")
	}

	cfg, err := newConfig(append([]Option{WithColumns(tbl.Columns()...)}, opts...)...)
	if err != nil {
		return nil, err
	}

	all := split(tbl.Long(), suite, cfg)
	rep := &Report{
		Suite:     suite.Name,
		IndexName: tbl.IndexName(),
		ValueName: tbl.ValueName(),
		Tail:      cfg.tail,
		Stability: make(map[string]float64),
	}

	for _, s := range all {
		rep.Power = append(rep.Power, powerTest(s))

		ratio := ratioTest(s)
		rep.Ratio = append(rep.Ratio, ratio)
		if cfg.tail > 0 && ratio.Err == nil {
			if cv := Stabilization(ratio.Ratios(), cfg.tail); !math.IsNaN(cv) {
				rep.Stability[s.column] = cv
			}
		}

		rep.Constants = append(rep.Constants, constantsTest(s))

		if cfg.rank {
			rr := RankResult{Algorithm: s.column}
			rr.Result, rr.Err = regression.Rank(s.problem, s.times)
			rep.Ranking = append(rep.Ranking, rr)
		}
	}

	return rep, nil
}

// Failed lists algorithms for which at least one procedure returned an error.
func (r *Report) Failed() []string {
	var out []string
	for i, p := range r.Power {
		if p.Err != nil || r.Ratio[i].Err != nil || r.Constants[i].Err != nil {
			out = append(out, p.Algorithm)
		}
	}

	return out
}
