package analysis

import (
	"bytes"
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/asymptote/errs"
	"github.com/arloliu/asymptote/growth"
	"github.com/arloliu/asymptote/table"
)

func testSuite() *growth.Suite {
	return &growth.Suite{
		Name:      "synthetic",
		IndexName: "n",
		Scale:     growth.Identity,
		Operands:  1,
		Algorithms: []growth.Algorithm{
			{Name: "Cubic", Selector: "cubic", Model: growth.Power(3)},
			{Name: "Quadratic", Selector: "quad", Model: growth.Power(2)},
			{Name: "Exp", Selector: "exp", Model: growth.Exponential(1.25), MaxSize: 60},
		},
	}
}

func records(column string, sizes []int, times []float64) []table.Record {
	out := make([]table.Record, len(sizes))
	for i := range sizes {
		out[i] = table.Record{Column: column, Size: sizes[i], Value: times[i]}
	}

	return out
}

func TestCubicEndToEnd(t *testing.T) {
	recs := records("Cubic", []int{4, 8, 16, 32}, []float64{10, 80, 640, 5120})
	suite := testSuite()

	power, err := PowerTest(recs, suite)
	require.NoError(t, err)
	require.Len(t, power, 1)
	require.NoError(t, power[0].Err)
	require.InDelta(t, 3.0, power[0].Fit.Slope, 1e-9)
	require.InDelta(t, math.Log2(0.15625), power[0].Fit.Intercept, 1e-9)
	require.True(t, power[0].HasTheoretical)
	require.InDelta(t, 0.0, power[0].Deviation, 1e-9)
	require.Equal(t, 4, power[0].Points)

	ratio, err := RatioTest(recs, suite)
	require.NoError(t, err)
	require.NoError(t, ratio[0].Err)
	require.Len(t, ratio[0].Points, 4)
	for _, r := range ratio[0].Ratios() {
		require.InDelta(t, 0.15625, r, 1e-12)
	}
	require.Equal(t, 64.0, ratio[0].Points[0].Growth)

	constants, err := ConstantsTest(recs, suite)
	require.NoError(t, err)
	require.NoError(t, constants[0].Err)
	require.InDelta(t, 0.15625, constants[0].Constant, 1e-9)
	require.InDelta(t, 0.0, constants[0].Overhead, 1e-6)
	require.Len(t, constants[0].Curve, 4)
	for _, p := range constants[0].Curve {
		require.InDelta(t, p.Time, p.Fitted, 1e-6)
		require.InDelta(t, 0.0, p.Residual, 1e-6)
	}
}

func TestPowerRecoversExponent(t *testing.T) {
	var sizes []int
	var times []float64
	for n := 16; n <= 1024; n *= 2 {
		sizes = append(sizes, n)
		times = append(times, 1e-6*math.Pow(float64(n), 3))
	}

	res, err := PowerTest(records("Cubic", sizes, times), testSuite())
	require.NoError(t, err)
	require.NoError(t, res[0].Err)
	require.InDelta(t, 3.0, res[0].Fit.Slope, 0.01)
	require.InDelta(t, 1.0, res[0].Fit.RSquared, 1e-9)
}

func TestRatioConstantOnExactData(t *testing.T) {
	const c = 3.5e-4
	sizes := []int{10, 20, 30, 40, 50}
	times := make([]float64, len(sizes))
	for i, n := range sizes {
		times[i] = c * math.Pow(1.25, float64(n))
	}

	res, err := RatioTest(records("Exp", sizes, times), testSuite())
	require.NoError(t, err)
	require.NoError(t, res[0].Err)
	for _, r := range res[0].Ratios() {
		require.InDelta(t, c, r, 1e-15)
	}
	require.InDelta(t, 0.0, Stabilization(res[0].Ratios(), 5), 1e-9)
}

func TestConstantsRecoversSlopeAndIntercept(t *testing.T) {
	const c, b = 2e-3, 5.0
	sizes := []int{8, 16, 24, 32, 40}
	times := make([]float64, len(sizes))
	for i, n := range sizes {
		times[i] = c*float64(n*n) + b
	}

	res, err := ConstantsTest(records("Quadratic", sizes, times), testSuite())
	require.NoError(t, err)
	require.NoError(t, res[0].Err)
	require.InDelta(t, c, res[0].Constant, 1e-12)
	require.InDelta(t, b, res[0].Overhead, 1e-9)
	require.InDelta(t, 1.0, res[0].Fit.RSquared, 1e-12)
}

func TestGapsAreIndependent(t *testing.T) {
	recs := append(
		records("Cubic", []int{4, 8, 16, 32}, []float64{10, 80, 640, 5120}),
		records("Quadratic", []int{4, 8}, []float64{1.6, 6.4})...,
	)
	recs = append(recs, records("Exp", []int{4}, []float64{1})...)
	suite := testSuite()

	power, err := PowerTest(recs, suite)
	require.NoError(t, err)
	require.Len(t, power, 3)
	require.NoError(t, power[0].Err)
	require.NoError(t, power[1].Err)
	require.InDelta(t, 2.0, power[1].Fit.Slope, 1e-9)
	require.ErrorIs(t, power[2].Err, errs.ErrTooFewPoints)

	ratio, err := RatioTest(recs, suite)
	require.NoError(t, err)
	require.Len(t, ratio[1].Points, 2)
	require.NoError(t, ratio[2].Err)
	require.Len(t, ratio[2].Points, 1)

	constants, err := ConstantsTest(recs, suite)
	require.NoError(t, err)
	require.NoError(t, constants[0].Err)
	require.NoError(t, constants[1].Err)
	require.InDelta(t, 0.1, constants[1].Constant, 1e-12)
	require.ErrorIs(t, constants[2].Err, errs.ErrTooFewPoints)
}

func TestPowerSkipsNonPositiveTimes(t *testing.T) {
	recs := records("Cubic", []int{2, 4, 8, 16}, []float64{0, 0.64, 5.12, 40.96})
	res, err := PowerTest(recs, testSuite())
	require.NoError(t, err)
	require.Equal(t, 1, res[0].Skipped)
	require.Equal(t, 3, res[0].Points)
	require.InDelta(t, 3.0, res[0].Fit.Slope, 1e-9)

	// the other tests keep the zero
	ratio, err := RatioTest(recs, testSuite())
	require.NoError(t, err)
	require.Len(t, ratio[0].Points, 4)
	require.Equal(t, 0.0, ratio[0].Points[0].Ratio)
}

func TestExponentialHasNoTheoreticalExponent(t *testing.T) {
	recs := records("Exp", []int{10, 20, 30}, []float64{1, 9, 90})
	res, err := PowerTest(recs, testSuite())
	require.NoError(t, err)
	require.NoError(t, res[0].Err)
	require.False(t, res[0].HasTheoretical)
	require.Equal(t, 0.0, res[0].Deviation)
}

func TestPowerOfTwoScale(t *testing.T) {
	suite, err := growth.Lookup("matrix")
	require.NoError(t, err)

	var recs []table.Record
	for tag := 2; tag <= 9; tag++ {
		n := math.Ldexp(1, tag)
		recs = append(recs,
			table.Record{Column: "Conventional", Size: tag, Value: 1e-6 * n * n * n},
		)
	}
	for tag := 2; tag <= 9; tag++ {
		n := math.Ldexp(1, tag)
		recs = append(recs,
			table.Record{Column: "Strassen", Size: tag, Value: 4e-6 * math.Pow(n, math.Log2(7))},
		)
	}

	res, err := PowerTest(recs, suite)
	require.NoError(t, err)
	require.InDelta(t, 3.0, res[0].Fit.Slope, 1e-9)
	require.InDelta(t, math.Log2(7), res[1].Fit.Slope, 1e-9)
	require.InDelta(t, 0.0, res[1].Deviation, 1e-9)

	ratio, err := RatioTest(recs, suite)
	require.NoError(t, err)
	require.Equal(t, 4.0, ratio[0].Points[0].ProblemSize)
	for _, r := range ratio[1].Ratios() {
		require.InDelta(t, 4e-6, r, 1e-15)
	}
}

func TestUnknownColumn(t *testing.T) {
	recs := records("Mystery", []int{1, 2}, []float64{1, 2})
	res, err := PowerTest(recs, testSuite())
	require.NoError(t, err)
	require.ErrorIs(t, res[0].Err, errs.ErrUnknownAlgorithm)
}

func TestWithAlgorithmForSweepColumns(t *testing.T) {
	recs := append(
		records("threshold=4", []int{4, 8}, []float64{6.4, 51.2}),
		records("threshold=8", []int{4, 8}, []float64{3.2, 25.6})...,
	)

	res, err := ConstantsTest(recs, testSuite(), WithAlgorithm("Cubic"))
	require.NoError(t, err)
	require.Len(t, res, 2)
	require.Equal(t, "threshold=4", res[0].Algorithm)
	require.InDelta(t, 0.1, res[0].Constant, 1e-12)
	require.InDelta(t, 0.05, res[1].Constant, 1e-12)

	_, err = ConstantsTest(recs, testSuite(), WithAlgorithm(""))
	require.Error(t, err)
}

func TestUnsortedRecords(t *testing.T) {
	recs := records("Cubic", []int{16, 4, 8}, []float64{640, 10, 80})
	res, err := RatioTest(recs, testSuite())
	require.NoError(t, err)
	require.Equal(t, 4, res[0].Points[0].Size)
	require.Equal(t, 16, res[0].Points[2].Size)
}

func TestStabilization(t *testing.T) {
	require.True(t, math.IsNaN(Stabilization([]float64{1, 2}, 3)))
	require.True(t, math.IsNaN(Stabilization([]float64{1, 2, 3}, 1)))
	require.InDelta(t, 0.0, Stabilization([]float64{9, 1, 1, 1}, 3), 1e-12)
	require.Greater(t, Stabilization([]float64{1, 2, 4, 8}, 3), 0.3)
}

func TestAnalyzeReport(t *testing.T) {
	tbl := table.New("n", "ExecutionTime", "Cubic", "Quadratic", "Exp")
	for i, n := range []int{4, 8, 16, 32} {
		require.NoError(t, tbl.Put("Cubic", n, []float64{10, 80, 640, 5120}[i]))
	}
	require.NoError(t, tbl.Put("Quadratic", 4, 1.6))

	rep, err := Analyze(tbl, testSuite())
	require.NoError(t, err)
	require.Equal(t, "synthetic", rep.Suite)
	require.Equal(t, 3, rep.Tail)
	require.Len(t, rep.Power, 3)
	require.Len(t, rep.Ranking, 3)
	require.Equal(t, "Exp", rep.Power[2].Algorithm)
	require.ErrorIs(t, rep.Power[2].Err, errs.ErrTooFewPoints)
	require.ElementsMatch(t, []string{"Quadratic", "Exp"}, rep.Failed())

	cv, ok := rep.Stability["Cubic"]
	require.True(t, ok)
	require.InDelta(t, 0.0, cv, 1e-12)
	_, ok = rep.Stability["Quadratic"]
	require.False(t, ok)

	require.NoError(t, rep.Ranking[0].Err)
	require.Equal(t, "power", rep.Ranking[0].Result.BestFit.Type.String())

	var buf bytes.Buffer
	require.NoError(t, rep.WriteText(&buf))
	out := buf.String()
	require.Contains(t, out, "Power test")
	require.Contains(t, out, "Ratio test")
	require.Contains(t, out, "Constants test")
	require.Contains(t, out, "Best-fit ranking")
	require.Contains(t, out, "0.15625")
	require.Contains(t, out, "n^3")
}

func TestAnalyzeOptions(t *testing.T) {
	tbl := table.New("n", "ExecutionTime", "Cubic")
	for i, n := range []int{4, 8, 16, 32} {
		require.NoError(t, tbl.Put("Cubic", n, []float64{10, 80, 640, 5120}[i]))
	}

	rep, err := Analyze(tbl, testSuite(), WithRanking(false), WithStabilizationTail(0))
	require.NoError(t, err)
	require.Empty(t, rep.Ranking)
	require.Empty(t, rep.Stability)

	_, err = Analyze(tbl, testSuite(), WithStabilizationTail(-1))
	require.Error(t, err)

	_, err = Analyze(nil, testSuite())
	require.Error(t, err)
}
