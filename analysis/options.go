package analysis

import (
	"fmt"
	"slices"

	"github.com/arloliu/asymptote/errs"
	"github.com/arloliu/asymptote/growth"
	"github.com/arloliu/asymptote/internal/options"
	"github.com/arloliu/asymptote/table"
)

// Config holds options shared by the analysis procedures.
type Config struct {
	columns     []string
	algorithmOf func(column string) string
	tail        int
	rank        bool
}

// Option configures the analysis procedures and Analyze.
type Option = options.Option[*Config]

func newConfig(opts ...Option) (*Config, error) {
	cfg := &Config{
		algorithmOf: func(column string) string { return column },
		tail:        3,
		rank:        true,
	}
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}

	return cfg, nil
}

// WithColumns fixes the reporting order and includes columns that have no
// records at all. By default columns are reported in first-seen order.
func WithColumns(columns ...string) Option {
	return options.NoError(func(cfg *Config) {
		cfg.columns = slices.Clone(columns)
	})
}

// WithAlgorithm attributes every column to one algorithm, as in a parameter
// sweep where columns are parameter values.
func WithAlgorithm(name string) Option {
	return options.New(func(cfg *Config) error {
		if name == "" {
			return fmt.Errorf("%w: empty name", errs.ErrUnknownAlgorithm)
		}
		cfg.algorithmOf = func(string) string { return name }

		return nil
	})
}

// WithStabilizationTail sets how many trailing ratios Analyze uses for the
// stabilization heuristic. Zero disables it.
func WithStabilizationTail(n int) Option {
	return options.New(func(cfg *Config) error {
		if n < 0 {
			return fmt.Errorf("stabilization tail must be >= 0, got %d", n)
		}
		cfg.tail = n

		return nil
	})
}

// WithRanking enables or disables best-fit model ranking in Analyze.
func WithRanking(enabled bool) Option {
	return options.NoError(func(cfg *Config) {
		cfg.rank = enabled
	})
}

// series is one column's data prepared for a test.
type series struct {
	column    string
	algorithm growth.Algorithm
	err       error
	sizes     []int
	problem   []float64
	times     []float64
}

// split groups records per column and resolves each column's algorithm.
// Records keep their order, which is ascending size for table.Long output.
func split(records []table.Record, suite *growth.Suite, cfg *Config) []series {
	order := slices.Clone(cfg.columns)
	byColumn := make(map[string]*series)
	for _, c := range order {
		byColumn[c] = &series{column: c}
	}

	for _, r := range records {
		s, ok := byColumn[r.Column]
		if !ok {
			if cfg.columns != nil {
				continue
			}
			s = &series{column: r.Column}
			byColumn[r.Column] = s
			order = append(order, r.Column)
		}
		s.sizes = append(s.sizes, r.Size)
		s.problem = append(s.problem, suite.ProblemSize(r.Size))
		s.times = append(s.times, r.Value)
	}

	out := make([]series, 0, len(order))
	for _, c := range order {
		s := byColumn[c]
		s.sortBySize()
		s.algorithm, s.err = suite.Algorithm(cfg.algorithmOf(c))
		out = append(out, *s)
	}

	return out
}

func (s *series) sortBySize() {
	if slices.IsSorted(s.sizes) {
		return
	}

	idx := make([]int, len(s.sizes))
	for i := range idx {
		idx[i] = i
	}
	slices.SortStableFunc(idx, func(a, b int) int { return s.sizes[a] - s.sizes[b] })

	sizes := make([]int, len(idx))
	problem := make([]float64, len(idx))
	times := make([]float64, len(idx))
	for i, j := range idx {
		sizes[i], problem[i], times[i] = s.sizes[j], s.problem[j], s.times[j]
	}
	s.sizes, s.problem, s.times = sizes, problem, times
}
