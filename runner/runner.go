package runner

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/arloliu/asymptote/discover"
	"github.com/arloliu/asymptote/errs"
	"github.com/arloliu/asymptote/growth"
	"github.com/arloliu/asymptote/internal/options"
	"github.com/arloliu/asymptote/regression"
	"github.com/arloliu/asymptote/table"
)

// ExecutionTime is the value name of execution-time tables.
const ExecutionTime = "ExecutionTime"

// Aggregate is the two-level mean for one (algorithm, size) cell.
type Aggregate struct {
	Algorithm string
	Size      int
	// Elapsed is the mean over units of the per-unit mean over trials, in ms.
	Elapsed float64
	// Metrics holds the secondary metric means, in the algorithm's
	// declaration order.
	Metrics []float64
	Units   int
	Trials  int
}

// Result holds the tables produced by Run.
type Result struct {
	Times *table.Table
	// Metrics maps a secondary metric name to its table.
	Metrics map[string]*table.Table
	// MetricNames lists Metrics keys in declaration order.
	MetricNames []string
}

// Runner executes algorithms strictly sequentially; it never overlaps two
// invocations. A Runner is not safe for concurrent use.
type Runner struct {
	exec Executor
	cfg  *config
	m    *metrics
}

// New creates a Runner that executes trials through exec.
func New(exec Executor, opts ...Option) (*Runner, error) {
	if exec == nil {
		return nil, errors.New("runner: nil executor")
	}

	cfg := &config{
		logger: slog.Default(),
		trials: DefaultTrials,
	}
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}
	if cfg.registry == nil {
		cfg.registry = prometheus.NewRegistry()
	}

	return &Runner{exec: exec, cfg: cfg, m: newMetrics(cfg.registry)}, nil
}

// Registry returns the registry holding the runner metrics.
func (r *Runner) Registry() *prometheus.Registry {
	return r.cfg.registry
}

// Trials returns the configured repetitions per unit.
func (r *Runner) Trials() int {
	return r.cfg.trials
}

// Measure computes the aggregate of alg on one size bucket. A size past the
// algorithm's cutoff returns an error wrapping errs.ErrInfeasible and runs
// nothing; callers treat it as a missing cell, not a failure.
func (r *Runner) Measure(ctx context.Context, suite *growth.Suite, alg growth.Algorithm,
	bucket *discover.Bucket, params ...Param,
) (Aggregate, error) {
	if err := feasible(alg, bucket.Size); err != nil {
		return Aggregate{}, err
	}

	units, err := bucket.Units(suite.Operands)
	if err != nil {
		return Aggregate{}, err
	}

	return r.measureUnits(ctx, alg, bucket.Size, units, params)
}

func feasible(alg growth.Algorithm, size int) error {
	if alg.Feasible(size) {
		return nil
	}

	return fmt.Errorf("%w: %s size %d > %d", errs.ErrInfeasible, alg.Name, size, alg.MaxSize)
}

func (r *Runner) measureUnits(ctx context.Context, alg growth.Algorithm, size int,
	units []discover.Unit, params []Param,
) (Aggregate, error) {
	nm := len(alg.Metrics)
	unitTimes := make([]float64, 0, len(units))
	unitMetrics := make([][]float64, nm)

	for _, u := range units {
		inv := Invocation{
			Selector:     alg.Selector,
			Inputs:       u.Paths(),
			PrintMetrics: nm > 0,
			Params:       params,
		}

		times := make([]float64, 0, r.cfg.trials)
		metricTrials := make([][]float64, nm)
		for trial := range r.cfg.trials {
			s, err := r.trial(ctx, inv, alg)
			if err != nil {
				var ee *errs.ExecutionError
				if errors.As(err, &ee) {
					ee.Algorithm, ee.Size, ee.Unit, ee.Trial = alg.Name, size, u.Label(), trial
				}

				return Aggregate{}, err
			}
			times = append(times, s.Elapsed)
			for i, v := range s.Metrics {
				metricTrials[i] = append(metricTrials[i], v)
			}
		}

		unitTimes = append(unitTimes, regression.Mean(times))
		for i := range metricTrials {
			unitMetrics[i] = append(unitMetrics[i], regression.Mean(metricTrials[i]))
		}
	}

	agg := Aggregate{
		Algorithm: alg.Name,
		Size:      size,
		Elapsed:   regression.Mean(unitTimes),
		Units:     len(units),
		Trials:    r.cfg.trials,
	}
	if nm > 0 {
		agg.Metrics = make([]float64, nm)
		for i := range unitMetrics {
			agg.Metrics[i] = regression.Mean(unitMetrics[i])
		}
	}

	return agg, nil
}

func (r *Runner) trial(ctx context.Context, inv Invocation, alg growth.Algorithm) (Sample, error) {
	r.m.trials.WithLabelValues(alg.Name).Inc()

	out, err := r.exec.Execute(ctx, inv)
	if err != nil {
		if ctx.Err() == nil {
			r.m.failures.WithLabelValues(alg.Name, causeLabel(err)).Inc()
		}

		return Sample{}, err
	}

	s, err := ParseOutput(out, len(alg.Metrics))
	if err != nil {
		r.m.failures.WithLabelValues(alg.Name, causeLabel(err)).Inc()
		return Sample{}, errs.NewExecutionError(err)
	}
	r.m.duration.WithLabelValues(alg.Name).Observe(s.Elapsed)

	return s, nil
}

func causeLabel(err error) string {
	switch {
	case errors.Is(err, errs.ErrTimeout):
		return "timeout"
	case errors.Is(err, errs.ErrNonZeroExit):
		return "exit"
	case errors.Is(err, errs.ErrMalformedOutput):
		return "output"
	case errors.Is(err, errs.ErrStart):
		return "start"
	default:
		return "other"
	}
}

// plan resolves the trial units of every bucket up front so that input
// errors surface before any trial runs.
func plan(inv *discover.Inventory, operands int) (map[int][]discover.Unit, error) {
	units := make(map[int][]discover.Unit, inv.Len())
	for _, b := range inv.Buckets() {
		u, err := b.Units(operands)
		if err != nil {
			return nil, err
		}
		units[b.Size] = u
	}

	return units, nil
}

// Run measures every algorithm of suite over every size of inv, algorithms
// in declaration order and sizes ascending. Sizes past an algorithm's cutoff
// are left missing.
func (r *Runner) Run(ctx context.Context, suite *growth.Suite, inv *discover.Inventory, params ...Param) (*Result, error) {
	units, err := plan(inv, suite.Operands)
	if err != nil {
		return nil, err
	}

	res := &Result{
		Times:       table.New(suite.IndexName, ExecutionTime, suite.Names()...),
		Metrics:     make(map[string]*table.Table),
		MetricNames: suite.Metrics(),
	}
	for _, name := range res.MetricNames {
		var cols []string
		for _, a := range suite.Algorithms {
			if slices.Contains(a.Metrics, name) {
				cols = append(cols, a.Name)
			}
		}
		res.Metrics[name] = table.New(suite.IndexName, name, cols...)
	}

	for _, alg := range suite.Algorithms {
		r.cfg.logger.InfoContext(ctx, "measuring algorithm",
			"suite", suite.Name, "algorithm", alg.Name, "selector", alg.Selector)

		err := r.measureColumn(ctx, alg, inv.Sizes(), units, params, func(agg Aggregate) error {
			if err := res.Times.Put(alg.Name, agg.Size, agg.Elapsed); err != nil {
				return err
			}
			for i, name := range alg.Metrics {
				if err := res.Metrics[name].Put(alg.Name, agg.Size, agg.Metrics[i]); err != nil {
					return err
				}
			}

			return nil
		})
		if err != nil {
			return nil, err
		}
	}

	if err := r.writeTextfile(); err != nil {
		return nil, err
	}

	return res, nil
}

// Sweep measures one algorithm once per parameter value. Column
// "<param>=<value>" holds the times measured with "--<param> <value>".
// When suite declares a sweep for alg, its size cutoff replaces the
// algorithm's own.
func (r *Runner) Sweep(ctx context.Context, suite *growth.Suite, algName string, inv *discover.Inventory,
	param string, values []int,
) (*table.Table, error) {
	alg, err := suite.Algorithm(algName)
	if err != nil {
		return nil, err
	}
	if param == "" || len(values) == 0 {
		return nil, errors.New("sweep: parameter name and values are required")
	}
	if s := suite.Sweep; s != nil && s.Algorithm == alg.Name && s.MaxSize != growth.Unbounded {
		alg.MaxSize = s.MaxSize
	}
	// secondary metrics are not collected during a sweep
	alg.Metrics = nil

	units, err := plan(inv, suite.Operands)
	if err != nil {
		return nil, err
	}

	columns := make([]string, len(values))
	for i, v := range values {
		columns[i] = Param{Name: param, Value: v}.String()
	}
	tbl := table.New(suite.IndexName, ExecutionTime, columns...)

	for i, v := range values {
		col := columns[i]
		r.cfg.logger.InfoContext(ctx, "sweeping parameter",
			"suite", suite.Name, "algorithm", alg.Name, "param", param, "value", v)

		params := []Param{{Name: param, Value: v}}
		err := r.measureColumn(ctx, alg, inv.Sizes(), units, params, func(agg Aggregate) error {
			return tbl.Put(col, agg.Size, agg.Elapsed)
		})
		if err != nil {
			return nil, err
		}
	}

	if err := r.writeTextfile(); err != nil {
		return nil, err
	}

	return tbl, nil
}

func (r *Runner) measureColumn(ctx context.Context, alg growth.Algorithm, sizes []int,
	units map[int][]discover.Unit, params []Param, store func(Aggregate) error,
) error {
	for _, size := range sizes {
		if err := feasible(alg, size); err != nil {
			r.m.skipped.WithLabelValues(alg.Name, "cutoff").Inc()
			r.cfg.logger.DebugContext(ctx, "cell skipped", "algorithm", alg.Name, "size", size, "reason", err)

			continue
		}

		agg, err := r.measureUnits(ctx, alg, size, units[size], params)
		if err != nil {
			if ctx.Err() != nil || !r.cfg.continueOnError || !errors.Is(err, errs.ErrExecution) {
				return fmt.Errorf("measure %s at size %d: %w", alg.Name, size, err)
			}
			r.m.skipped.WithLabelValues(alg.Name, "error").Inc()
			r.cfg.logger.WarnContext(ctx, "cell left missing",
				"algorithm", alg.Name, "size", size, "error", err)

			continue
		}

		r.cfg.logger.InfoContext(ctx, "measured",
			"algorithm", alg.Name, "size", size,
			"mean_ms", agg.Elapsed, "units", agg.Units, "trials", agg.Trials)

		if err := store(agg); err != nil {
			return err
		}
	}

	return nil
}

func (r *Runner) writeTextfile() error {
	if r.cfg.textfile == "" {
		return nil
	}
	if err := prometheus.WriteToTextfile(r.cfg.textfile, r.cfg.registry); err != nil {
		return fmt.Errorf("write metrics textfile: %w", err)
	}

	return nil
}
