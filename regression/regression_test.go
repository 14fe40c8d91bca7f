package regression

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/asymptote/errs"
)

func TestLinearExact(t *testing.T) {
	x := []float64{1, 2, 3, 4, 5}
	y := []float64{3, 5, 7, 9, 11}

	f, err := Linear(x, y)
	require.NoError(t, err)
	require.InDelta(t, 2.0, f.Slope, 1e-12)
	require.InDelta(t, 1.0, f.Intercept, 1e-12)
	require.InDelta(t, 1.0, f.RSquared, 1e-12)
	require.InDelta(t, 0.0, f.RMSE, 1e-12)
	require.Equal(t, 5, f.N)
	require.Len(t, f.Residuals, 5)
	require.InDelta(t, 13.0, f.Predict(6), 1e-12)
}

func TestLinearNoisy(t *testing.T) {
	x := []float64{0, 1, 2, 3}
	y := []float64{1, 2, 2, 4}

	f, err := Linear(x, y)
	require.NoError(t, err)
	// hand-computed: slope 0.9, intercept 0.9
	require.InDelta(t, 0.9, f.Slope, 1e-12)
	require.InDelta(t, 0.9, f.Intercept, 1e-12)
	require.Greater(t, f.RSquared, 0.8)
	require.Less(t, f.RSquared, 1.0)

	sum := 0.0
	for _, r := range f.Residuals {
		sum += r
	}
	require.InDelta(t, 0, sum, 1e-12)
}

func TestLinearErrors(t *testing.T) {
	_, err := Linear([]float64{1}, []float64{1})
	require.ErrorIs(t, err, errs.ErrTooFewPoints)

	_, err = Linear(nil, nil)
	require.ErrorIs(t, err, errs.ErrTooFewPoints)

	_, err = Linear([]float64{2, 2, 2}, []float64{1, 2, 3})
	require.ErrorIs(t, err, errs.ErrDegenerateX)

	_, err = Linear([]float64{0.1, 0.1, 0.1}, []float64{1, 2, 3})
	require.ErrorIs(t, err, errs.ErrDegenerateX)

	_, err = Linear([]float64{1, 2}, []float64{1})
	require.Error(t, err)

	_, err = Linear([]float64{1, 2}, []float64{1, math.NaN()})
	require.ErrorIs(t, err, errs.ErrInvalidValue)
}

func TestLinearSmallRelativeSpread(t *testing.T) {
	f, err := Linear([]float64{1e6, 1e6 + 1}, []float64{1, 3})
	require.NoError(t, err)
	require.InDelta(t, 2.0, f.Slope, 1e-9)

	f, err = Linear([]float64{1e9, 1e9 + 1, 1e9 + 2}, []float64{5, 6, 7})
	require.NoError(t, err)
	require.InDelta(t, 1.0, f.Slope, 1e-9)
}

func TestLinearConstantY(t *testing.T) {
	f, err := Linear([]float64{1, 2, 3}, []float64{5, 5, 5})
	require.NoError(t, err)
	require.Equal(t, 0.0, f.Slope)
	require.Equal(t, 5.0, f.Intercept)
	require.Equal(t, 0.0, f.RSquared)
}

func TestRankPicksPower(t *testing.T) {
	var x, y []float64
	for n := 10.0; n <= 200; n += 10 {
		x = append(x, n)
		y = append(y, 1e-6*n*n*n)
	}

	res, err := Rank(x, y)
	require.NoError(t, err)
	require.Len(t, res.AllModels, len(DefaultCandidates))
	require.Equal(t, ModelTypePower, res.BestFit.Type)
	require.InDelta(t, 3.0, res.BestFit.Coefficients[1], 1e-9)
	require.InDelta(t, 1e-6, res.BestFit.Coefficients[0], 1e-12)
	require.Contains(t, res.BestFit.Formula, "n^3")

	for i := 1; i < len(res.AllModels); i++ {
		require.GreaterOrEqual(t, res.AllModels[i-1].RSquared, res.AllModels[i].RSquared)
	}
}

func TestRankPicksExponential(t *testing.T) {
	var x, y []float64
	for n := 1.0; n <= 40; n++ {
		x = append(x, n)
		y = append(y, 0.5*math.Pow(1.25, n))
	}

	res, err := Rank(x, y)
	require.NoError(t, err)
	require.Equal(t, ModelTypeExponential, res.BestFit.Type)

	est, ok := res.BestFit.Estimator.(*ExponentialEstimator)
	require.True(t, ok)
	require.InDelta(t, 1.25, est.Base(), 1e-9)
	require.Contains(t, res.BestFit.Formula, "1.25^n")
}

func TestRankSkipsInvalidDomains(t *testing.T) {
	x := []float64{1, 2, 3, 4}
	y := []float64{0, 1, 2, 3}

	res, err := Rank(x, y)
	require.NoError(t, err)
	require.ElementsMatch(t, []ModelType{ModelTypePower, ModelTypeExponential}, res.Skipped)
	require.Equal(t, ModelTypeLinear, res.BestFit.Type)
	require.InDelta(t, 1.0, res.BestFit.RSquared, 1e-12)
}

func TestRankQuadratic(t *testing.T) {
	x := []float64{-2, -1, 0, 1, 2, 3}
	y := make([]float64, len(x))
	for i, v := range x {
		y[i] = 1 + 2*v + 3*v*v
	}

	res, err := Rank(x, y, WithCandidates(ModelTypeQuadratic, ModelTypeLinear))
	require.NoError(t, err)
	require.Equal(t, ModelTypeQuadratic, res.BestFit.Type)
	coeffs := res.BestFit.Coefficients
	require.InDelta(t, 1.0, coeffs[0], 1e-9)
	require.InDelta(t, 2.0, coeffs[1], 1e-9)
	require.InDelta(t, 3.0, coeffs[2], 1e-9)

	// two points fall back to a line
	res, err = Rank([]float64{1, 2}, []float64{2, 4}, WithCandidates(ModelTypeQuadratic))
	require.NoError(t, err)
	require.Equal(t, 0.0, res.BestFit.Coefficients[2])
}

func TestRankErrors(t *testing.T) {
	_, err := Rank([]float64{1}, []float64{1})
	require.ErrorIs(t, err, errs.ErrTooFewPoints)

	_, err = Rank([]float64{1, 2}, []float64{1, 2}, WithCandidates())
	require.Error(t, err)

	_, err = Rank([]float64{1, 2}, []float64{1, 2}, WithCandidates(ModelType(42)))
	require.Error(t, err)

	_, err = Rank([]float64{-1, -2}, []float64{-1, -2}, WithCandidates(ModelTypePower))
	require.Error(t, err)
}

func TestEstimators(t *testing.T) {
	tests := []struct {
		name     string
		est      Estimator
		n        float64
		expected float64
	}{
		{"linear", NewLinearEstimator(1, 2), 3, 7},
		{"logarithmic", NewLogarithmicEstimator(1, 2), math.E, 3},
		{"power", NewPowerEstimator(2, 3), 2, 16},
		{"exponential", NewExponentialEstimator(2, math.Log(3)), 2, 18},
		{"quadratic", NewQuadraticEstimator(1, 1, 1), 2, 7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.InDelta(t, tt.expected, tt.est.Estimate(tt.n), 1e-9)
			require.Equal(t, tt.name, tt.est.Type().String())

			rebuilt, err := NewEstimator(tt.est.Type(), tt.est.Coefficients())
			require.NoError(t, err)
			require.InDelta(t, tt.expected, rebuilt.Estimate(tt.n), 1e-9)
		})
	}

	require.True(t, math.IsInf(NewPowerEstimator(1, 2).Estimate(0), 1))
	require.True(t, math.IsInf(NewLogarithmicEstimator(1, 2).Estimate(-1), 1))

	_, err := NewEstimator(ModelTypeQuadratic, []float64{1, 2})
	require.Error(t, err)
}

func TestModelTypeFromString(t *testing.T) {
	require.Equal(t, ModelTypePower, ModelTypeFromString("Power"))
	require.Equal(t, ModelTypeQuadratic, ModelTypeFromString("quadratic"))
	require.Equal(t, ModelType(-1), ModelTypeFromString("cubic"))
	require.Equal(t, "unknown", ModelType(-1).String())
}

func TestDispersion(t *testing.T) {
	require.Equal(t, 0.0, Mean(nil))
	require.Equal(t, 2.5, Mean([]float64{1, 2, 3, 4}))
	require.InDelta(t, math.Sqrt(1.25), StdDev([]float64{1, 2, 3, 4}), 1e-12)
	require.Equal(t, 0.0, CoefficientOfVariation([]float64{7, 7, 7}))
	require.InDelta(t, math.Sqrt(1.25)/2.5, CoefficientOfVariation([]float64{1, 2, 3, 4}), 1e-12)
	require.True(t, math.IsNaN(CoefficientOfVariation(nil)))
	require.True(t, math.IsNaN(CoefficientOfVariation([]float64{-1, 1})))
}

func TestResultString(t *testing.T) {
	require.Equal(t, "Result{BestFit: nil}", (&Result{}).String())

	res, err := Rank([]float64{1, 2, 3}, []float64{2, 4, 6})
	require.NoError(t, err)
	require.Contains(t, res.String(), "TotalModels: 4")
}
