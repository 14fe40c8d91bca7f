package growth

import (
	"fmt"
	"math"
	"slices"

	"github.com/arloliu/asymptote/errs"
)

// Unbounded marks an algorithm that is measured at every discovered size.
const Unbounded = 0

// SizeScale maps the numeric tag found in an instance file name to the
// problem size fed to growth functions and to the log-log regression.
type SizeScale int

const (
	// Identity uses the tag as the problem size (e.g. vertex count).
	Identity SizeScale = iota
	// PowerOfTwo reads tag N as problem size 2^N (e.g. matrix dimension).
	PowerOfTwo
)

// ProblemSize converts a size tag.
func (s SizeScale) ProblemSize(tag int) float64 {
	if s == PowerOfTwo {
		return math.Ldexp(1, tag)
	}

	return float64(tag)
}

func (s SizeScale) String() string {
	if s == PowerOfTwo {
		return "2^tag"
	}

	return "tag"
}

// Algorithm is one registry entry. Every per-algorithm constant lives here so
// adding an algorithm is a single edit.
type Algorithm struct {
	// Name is the column label in result tables.
	Name string
	// Selector is the token passed to the external executable.
	Selector string
	// Model is the hypothesized growth function.
	Model Model
	// MaxSize is the largest size tag worth measuring, or Unbounded.
	MaxSize int
	// Metrics names the secondary values printed before the elapsed time,
	// in output order.
	Metrics []string
}

// Feasible reports whether size is within the algorithm's cutoff.
func (a Algorithm) Feasible(size int) bool {
	return a.MaxSize == Unbounded || size <= a.MaxSize
}

// SweepSpec describes a parameter sweep over one algorithm.
type SweepSpec struct {
	Algorithm string
	Param     string // flag name without dashes, e.g. "threshold"
	Values    []int
	Trials    int
	MaxSize   int // overrides the algorithm cutoff during the sweep
}

// Suite is a group of algorithms that read the same instances and are
// compared in one results table.
type Suite struct {
	Name        string
	Description string
	// IndexName labels the size column of persisted tables.
	IndexName string
	Scale     SizeScale
	// Operands is 1 for single-instance algorithms, 2 for pairwise ones.
	Operands   int
	Algorithms []Algorithm
	Sweep      *SweepSpec
}

// Algorithm returns the entry named name.
func (s *Suite) Algorithm(name string) (Algorithm, error) {
	for _, a := range s.Algorithms {
		if a.Name == name {
			return a, nil
		}
	}

	return Algorithm{}, fmt.Errorf("%w %q in suite %s", errs.ErrUnknownAlgorithm, name, s.Name)
}

// Names returns algorithm names in declaration order.
func (s *Suite) Names() []string {
	names := make([]string, len(s.Algorithms))
	for i, a := range s.Algorithms {
		names[i] = a.Name
	}

	return names
}

// Metrics returns every declared secondary metric, first occurrence order.
func (s *Suite) Metrics() []string {
	var out []string
	for _, a := range s.Algorithms {
		for _, m := range a.Metrics {
			if !slices.Contains(out, m) {
				out = append(out, m)
			}
		}
	}

	return out
}

// ProblemSize converts a size tag using the suite's scale.
func (s *Suite) ProblemSize(tag int) float64 {
	return s.Scale.ProblemSize(tag)
}

func (s *Suite) clone() *Suite {
	c := *s
	c.Algorithms = make([]Algorithm, len(s.Algorithms))
	for i, a := range s.Algorithms {
		a.Metrics = slices.Clone(a.Metrics)
		c.Algorithms[i] = a
	}
	if s.Sweep != nil {
		sw := *s.Sweep
		sw.Values = slices.Clone(s.Sweep.Values)
		c.Sweep = &sw
	}

	return &c
}
