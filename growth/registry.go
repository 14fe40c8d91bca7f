// Package growth is the closed registry of algorithm suites and their
// theoretical growth functions.
//
// The registry is fixed at compile time. Each Algorithm entry carries its
// selector token, growth model, size cutoff and display formula together;
// there are no parallel lookup tables to keep in sync.
//
//	suite, err := growth.Lookup("coloring")
//	if err != nil {
//	    return err
//	}
//	alg, _ := suite.Algorithm("BranchAndBound")
//	alg.Feasible(80)        // false, cutoff is 72
//	alg.Model.Formula("n")  // "1.25^n"
package growth

import (
	"fmt"
	"math"
	"strings"

	"github.com/arloliu/asymptote/errs"
)

var strassenExponent = PowerNamed(math.Log2(7), "log_2(7)")

var matrixSuite = &Suite{
	Name:        "matrix",
	Description: "square matrix multiplication on 2^N x 2^N operands",
	IndexName:   "N",
	Scale:       PowerOfTwo,
	Operands:    2,
	Algorithms: []Algorithm{
		{Name: "Conventional", Selector: "conv", Model: Power(3), MaxSize: Unbounded},
		{Name: "Strassen", Selector: "strassen", Model: strassenExponent, MaxSize: 9},
		{Name: "StrassenThreshold", Selector: "strassenSeuil", Model: strassenExponent, MaxSize: Unbounded},
	},
	Sweep: &SweepSpec{
		Algorithm: "StrassenThreshold",
		Param:     "threshold",
		Values:    []int{4, 8, 16, 32, 64, 128, 256},
		Trials:    3,
		MaxSize:   9,
	},
}

var coloringSuite = &Suite{
	Name:        "coloring",
	Description: "graph coloring on n-vertex graphs, reporting the color count",
	IndexName:   "GraphSize",
	Scale:       Identity,
	Operands:    1,
	Algorithms: []Algorithm{
		{Name: "Greedy", Selector: "glouton", Model: Power(3), MaxSize: Unbounded, Metrics: []string{"colors"}},
		{Name: "BranchAndBound", Selector: "branch_bound", Model: Exponential(1.25), MaxSize: 72, Metrics: []string{"colors"}},
		{Name: "Tabu", Selector: "tabou", Model: Power(3), MaxSize: Unbounded, Metrics: []string{"colors"}},
	},
}

var builtinSuites = []*Suite{matrixSuite, coloringSuite}

// Lookup returns a copy of the named suite.
func Lookup(name string) (*Suite, error) {
	for _, s := range builtinSuites {
		if strings.EqualFold(s.Name, name) {
			return s.clone(), nil
		}
	}

	return nil, fmt.Errorf("%w: %q (known: %s)", errs.ErrUnknownSuite, name, strings.Join(SuiteNames(), ", "))
}

// Suites returns copies of every registered suite in registration order.
func Suites() []*Suite {
	out := make([]*Suite, len(builtinSuites))
	for i, s := range builtinSuites {
		out[i] = s.clone()
	}

	return out
}

// SuiteNames lists registered suite names.
func SuiteNames() []string {
	names := make([]string, len(builtinSuites))
	for i, s := range builtinSuites {
		names[i] = s.Name
	}

	return names
}
