// Package pipeline ties measurement and analysis into a two-phase workflow.
//
// A Session moves through Unmeasured, Measured and Analyzed. The persisted
// execution-time table is the only artifact that crosses from the measure
// phase to the analyze phase, so the two may run in separate processes. The
// snapshot header records the run ID and the phase last reached.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/arloliu/asymptote/analysis"
	"github.com/arloliu/asymptote/discover"
	"github.com/arloliu/asymptote/errs"
	"github.com/arloliu/asymptote/format"
	"github.com/arloliu/asymptote/growth"
	"github.com/arloliu/asymptote/internal/options"
	"github.com/arloliu/asymptote/runner"
	"github.com/arloliu/asymptote/table"
)

const (
	// TimesName is the base name of the execution-time table.
	TimesName = "execution_times"
	// ReportName is the file the analysis report is written to.
	ReportName = "complexity.txt"
)

// State is the workflow phase of a session.
type State uint8

const (
	StateUnmeasured State = iota
	StateMeasured
	StateAnalyzed
)

func (s State) String() string {
	switch s {
	case StateUnmeasured:
		return "unmeasured"
	case StateMeasured:
		return "measured"
	case StateAnalyzed:
		return "analyzed"
	default:
		return fmt.Sprintf("State(%d)", uint8(s))
	}
}

type config struct {
	logger      *slog.Logger
	compression format.CompressionType
	snapshot    bool
}

// Option configures a Session.
type Option = options.Option[*config]

// WithLogger sets the session logger.
func WithLogger(l *slog.Logger) Option {
	return options.NoError(func(c *config) {
		if l != nil {
			c.logger = l
		}
	})
}

// WithCompression selects the snapshot codec.
func WithCompression(ct format.CompressionType) Option {
	return options.NoError(func(c *config) {
		c.compression = ct
	})
}

// WithSnapshot enables or disables the binary snapshot next to the CSV.
func WithSnapshot(enabled bool) Option {
	return options.NoError(func(c *config) {
		c.snapshot = enabled
	})
}

// Session is one suite's results directory.
type Session struct {
	suite *growth.Suite
	out   string
	cfg   *config
	id    uuid.UUID
	state State
}

// Open inspects out and resumes from whatever it holds: a persisted
// execution-time table means the session is at least Measured.
func Open(suite *growth.Suite, out string, opts ...Option) (*Session, error) {
	if suite == nil {
		return nil, errors.New("pipeline: nil suite")
	}

	cfg := &config{
		logger:      slog.Default(),
		compression: format.CompressionZstd,
		snapshot:    true,
	}
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}

	s := &Session{suite: suite, out: out, cfg: cfg, id: uuid.New(), state: StateUnmeasured}

	data, err := os.ReadFile(s.path(TimesName, format.FormatSnapshot))
	switch {
	case err == nil:
		meta, err := table.ReadMeta(data)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", TimesName, err)
		}
		if meta.RunID != uuid.Nil {
			s.id = meta.RunID
		}
		s.state = StateMeasured
		if State(meta.Phase) == StateAnalyzed {
			s.state = StateAnalyzed
		}
	case errors.Is(err, fs.ErrNotExist):
		if _, err := os.Stat(s.path(TimesName, format.FormatCSV)); err == nil {
			s.state = StateMeasured
		}
	default:
		return nil, err
	}

	return s, nil
}

// ID is the run identifier recorded in snapshots.
func (s *Session) ID() uuid.UUID { return s.id }

// State returns the current phase.
func (s *Session) State() State { return s.state }

// Suite returns the session's suite.
func (s *Session) Suite() *growth.Suite { return s.suite }

func (s *Session) path(name string, f format.TableFormat) string {
	return filepath.Join(s.out, name+f.Extension())
}

// TablePath returns where the named table is stored in the given format.
func (s *Session) TablePath(name string, f format.TableFormat) string {
	return s.path(name, f)
}

// Measure runs the whole suite and persists the execution-time table and
// one table per secondary metric. A new measurement starts a new run ID.
func (s *Session) Measure(ctx context.Context, r *runner.Runner, inv *discover.Inventory) (*runner.Result, error) {
	s.id = uuid.New()
	log := s.cfg.logger.With("run_id", s.id.String(), "suite", s.suite.Name)
	log.InfoContext(ctx, "measure started", "sizes", len(inv.Sizes()), "trials", r.Trials())

	res, err := r.Run(ctx, s.suite, inv)
	if err != nil {
		return nil, err
	}

	if err := s.save(TimesName, res.Times, StateMeasured); err != nil {
		return nil, err
	}
	for _, name := range res.MetricNames {
		if err := s.save(metricFileName(name), res.Metrics[name], StateMeasured); err != nil {
			return nil, err
		}
	}

	s.state = StateMeasured
	log.InfoContext(ctx, "measure finished", "cells", res.Times.Len(), "out", s.out)

	return res, nil
}

// SweepName is the base name of a sweep table.
func SweepName(alg, param string) string {
	return fmt.Sprintf("%s_%s_sweep", alg, param)
}

// Sweep runs a parameter sweep and persists its table. It does not change
// the session state.
func (s *Session) Sweep(ctx context.Context, r *runner.Runner, inv *discover.Inventory,
	alg, param string, values []int,
) (*table.Table, error) {
	tbl, err := r.Sweep(ctx, s.suite, alg, inv, param, values)
	if err != nil {
		return nil, err
	}
	if err := s.save(SweepName(alg, param), tbl, StateMeasured); err != nil {
		return nil, err
	}

	return tbl, nil
}

// Load reads a persisted table, preferring the snapshot over the CSV.
// A table that was never written yields *errs.MissingResultsError.
func (s *Session) Load(name string) (*table.Table, error) {
	tbl, err := table.Load(s.path(name, format.FormatSnapshot))
	if err == nil || !errors.Is(err, errs.ErrMissingResults) {
		return tbl, err
	}

	return table.Load(s.path(name, format.FormatCSV))
}

// Analyze loads the execution-time table, analyzes it, writes the report
// and marks the session Analyzed.
func (s *Session) Analyze(ctx context.Context, opts ...analysis.Option) (*analysis.Report, error) {
	if s.state == StateUnmeasured {
		return nil, &errs.MissingResultsError{Path: s.path(TimesName, format.FormatCSV)}
	}

	return s.AnalyzeTable(ctx, TimesName, opts...)
}

// AnalyzeTable analyzes any persisted table of the session, such as a sweep.
func (s *Session) AnalyzeTable(ctx context.Context, name string, opts ...analysis.Option) (*analysis.Report, error) {
	tbl, err := s.Load(name)
	if err != nil {
		return nil, err
	}

	rep, err := analysis.Analyze(tbl, s.suite, opts...)
	if err != nil {
		return nil, err
	}

	reportPath := filepath.Join(s.out, ReportName)
	if name != TimesName {
		reportPath = filepath.Join(s.out, name+"_"+ReportName)
	}
	if err := writeReport(reportPath, rep); err != nil {
		return nil, err
	}

	if failed := rep.Failed(); len(failed) > 0 {
		s.cfg.logger.WarnContext(ctx, "some algorithms could not be fully analyzed",
			"run_id", s.id.String(), "algorithms", failed)
	}

	if name == TimesName {
		tbl.Meta.RunID = s.id
		if err := s.save(TimesName, tbl, StateAnalyzed); err != nil {
			return nil, err
		}
		s.state = StateAnalyzed
	}

	return rep, nil
}

func (s *Session) save(name string, tbl *table.Table, phase State) error {
	if tbl.Meta.RunID == uuid.Nil || phase == StateMeasured {
		tbl.Meta.RunID = s.id
	}
	tbl.Meta.Phase = uint8(phase)

	formats := []format.TableFormat{format.FormatCSV, format.FormatMarkdown}
	if s.cfg.snapshot {
		formats = append(formats, format.FormatSnapshot)
	} else if phase == StateMeasured {
		// Load prefers the snapshot, so one from an earlier run must not outlive the CSV
		snap := s.path(name, format.FormatSnapshot)
		if err := os.Remove(snap); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("remove stale %s: %w", snap, err)
		}
	}
	for _, f := range formats {
		// CSV and Markdown carry no phase, skip rewriting them after analysis
		if phase == StateAnalyzed && f != format.FormatSnapshot {
			continue
		}
		path := s.path(name, f)
		if err := tbl.Save(path, table.WithCompression(s.cfg.compression)); err != nil {
			return fmt.Errorf("save %s: %w", path, err)
		}
	}

	return nil
}

func writeReport(path string, rep *analysis.Report) error {
	var sb strings.Builder
	if err := rep.WriteText(&sb); err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	return os.WriteFile(path, []byte(sb.String()), 0o644)
}

func metricFileName(metric string) string {
	return strings.ToLower(strings.ReplaceAll(metric, " ", "_"))
}
