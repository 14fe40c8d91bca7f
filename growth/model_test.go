package growth

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestModelEval(t *testing.T) {
	tests := []struct {
		name  string
		model Model
		n     float64
		want  float64
	}{
		{"cubic", Power(3), 4, 64},
		{"strassen", PowerNamed(math.Log2(7), "log_2(7)"), 2, 7},
		{"exponential", Exponential(1.25), 2, 1.5625},
		{"n log n", PowerLog(1), 8, 24},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.InDelta(t, tt.want, tt.model.Eval(tt.n), 1e-9)
		})
	}

	require.True(t, math.IsNaN(Model{typ: ModelType(42)}.Eval(3)))
}

func TestModelFormula(t *testing.T) {
	require.Equal(t, "n^3", Power(3).Formula("n"))
	require.Equal(t, "x^(log_2(7))", PowerNamed(math.Log2(7), "log_2(7)").Formula("x"))
	require.Equal(t, "1.25^n", Exponential(1.25).String())
	require.Equal(t, "n^2 log_2(n)", PowerLog(2).String())
}

func TestModelExponent(t *testing.T) {
	k, ok := Power(3).Exponent()
	require.True(t, ok)
	require.Equal(t, 3.0, k)

	_, ok = Exponential(2).Exponent()
	require.False(t, ok)

	_, ok = PowerLog(1).Exponent()
	require.False(t, ok)

	require.Equal(t, "exponential", ModelTypeExponential.String())
	require.Equal(t, "unknown", ModelType(9).String())
}
