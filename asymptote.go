// Package asymptote checks empirically whether algorithm implementations grow
// as their theoretical complexity predicts.
//
// The pipeline has two phases joined by a persisted results table. The
// measure phase runs an external program over problem instances of
// increasing size and stores the mean execution time per (algorithm, size).
// The analyze phase reads the table back and applies three regression tests
// per algorithm:
//
//   - Power test: the slope of log2(T) against log2(n) estimates the exponent.
//   - Ratio test: T/h(n) should level off at a constant for the right h.
//   - Constants test: T = c*h(n) + b fitted by least squares.
//
// # Core Features
//
//   - Closed registry of algorithm suites with growth models and size cutoffs
//   - Two-level averaging: trials per instance or pair, then across units
//   - Sparse results table with wide and long views
//   - CSV, Markdown and compressed binary snapshot renderings (None, Zstd, S2, LZ4)
//   - xxHash64 checksums on snapshots
//   - Missing cells are gaps, never zeros, and each algorithm is analyzed on its
//     own rows
//
// # Basic Usage
//
// Analyzing a stored table:
//
//	import "github.com/arloliu/asymptote"
//
//	report, err := asymptote.AnalyzeFile("results/execution_times.csv", "matrix")
//	if err != nil {
//	    return err
//	}
//	report.WriteText(os.Stdout)
//
// # Package Structure
//
// This package provides thin wrappers over the table, growth and analysis
// packages for the most common use. The measure phase lives in the runner and
// pipeline packages, and cmd/asymptote is the command-line front end.
package asymptote

import (
	"github.com/arloliu/asymptote/analysis"
	"github.com/arloliu/asymptote/growth"
	"github.com/arloliu/asymptote/internal/hash"
	"github.com/arloliu/asymptote/table"
)

// Suite returns a copy of the named registry suite. The lookup is
// case-insensitive.
func Suite(name string) (*growth.Suite, error) {
	return growth.Lookup(name)
}

// LoadResults reads a table saved as CSV (.csv) or snapshot (.snap).
// A missing file yields *errs.MissingResultsError.
func LoadResults(path string) (*table.Table, error) {
	return table.Load(path)
}

// AnalyzeFile loads the table at path and analyzes it against the named suite.
func AnalyzeFile(path, suite string, opts ...analysis.Option) (*analysis.Report, error) {
	s, err := growth.Lookup(suite)
	if err != nil {
		return nil, err
	}

	tbl, err := table.Load(path)
	if err != nil {
		return nil, err
	}

	return analysis.Analyze(tbl, s, opts...)
}

// ColumnID returns the 64-bit identifier a results table indexes a column
// name by. Two names with the same ID cannot share a table.
//
// Example:
//
//	asymptote.ColumnID("Strassen") == asymptote.ColumnID("Strassen") // true
func ColumnID(name string) uint64 {
	return hash.ID(name)
}
