package growth

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/asymptote/errs"
)

func TestLookup(t *testing.T) {
	s, err := Lookup("Matrix")
	require.NoError(t, err)
	require.Equal(t, "matrix", s.Name)
	require.Equal(t, []string{"Conventional", "Strassen", "StrassenThreshold"}, s.Names())
	require.Equal(t, 2, s.Operands)
	require.Equal(t, "N", s.IndexName)

	_, err = Lookup("sorting")
	require.ErrorIs(t, err, errs.ErrUnknownSuite)
}

func TestLookupReturnsCopies(t *testing.T) {
	s, err := Lookup("coloring")
	require.NoError(t, err)
	s.Algorithms[0].Metrics[0] = "mutated"
	s.Algorithms[0].MaxSize = 3

	again, err := Lookup("coloring")
	require.NoError(t, err)
	require.Equal(t, "colors", again.Algorithms[0].Metrics[0])
	require.Equal(t, Unbounded, again.Algorithms[0].MaxSize)
}

func TestEverySuiteIsComplete(t *testing.T) {
	for _, s := range Suites() {
		require.NotEmpty(t, s.IndexName, s.Name)
		require.Contains(t, []int{1, 2}, s.Operands, s.Name)
		seen := map[string]bool{}
		for _, a := range s.Algorithms {
			require.NotEmpty(t, a.Name)
			require.NotEmpty(t, a.Selector, a.Name)
			require.False(t, seen[a.Name], "duplicate %s", a.Name)
			seen[a.Name] = true
			require.False(t, math.IsNaN(a.Model.Eval(4)), a.Name)
		}
		if s.Sweep != nil {
			_, err := s.Algorithm(s.Sweep.Algorithm)
			require.NoError(t, err)
		}
	}
}

func TestAlgorithmFeasible(t *testing.T) {
	s, _ := Lookup("coloring")
	bb, err := s.Algorithm("BranchAndBound")
	require.NoError(t, err)
	require.True(t, bb.Feasible(72))
	require.False(t, bb.Feasible(73))

	greedy, _ := s.Algorithm("Greedy")
	require.True(t, greedy.Feasible(1_000_000))

	_, err = s.Algorithm("Dsatur")
	require.ErrorIs(t, err, errs.ErrUnknownAlgorithm)
}

func TestSuiteMetrics(t *testing.T) {
	coloring, _ := Lookup("coloring")
	require.Equal(t, []string{"colors"}, coloring.Metrics())

	matrix, _ := Lookup("matrix")
	require.Empty(t, matrix.Metrics())
}

func TestSizeScale(t *testing.T) {
	require.Equal(t, 512.0, PowerOfTwo.ProblemSize(9))
	require.Equal(t, 72.0, Identity.ProblemSize(72))
}
