package regression

import (
	"fmt"
	"math"
	"strings"
)

// ModelType represents the family of a fitted candidate model.
type ModelType int

const (
	// ModelTypeLinear represents T = a + b*n
	ModelTypeLinear ModelType = iota
	// ModelTypeLogarithmic represents T = a + b*ln(n)
	ModelTypeLogarithmic
	// ModelTypePower represents T = a * n^b
	ModelTypePower
	// ModelTypeExponential represents T = a * e^(b*n)
	ModelTypeExponential
	// ModelTypeQuadratic represents T = a + b*n + c*n²
	ModelTypeQuadratic
)

var modelTypeNames = map[ModelType]string{
	ModelTypeLinear:      "linear",
	ModelTypeLogarithmic: "logarithmic",
	ModelTypePower:       "power",
	ModelTypeExponential: "exponential",
	ModelTypeQuadratic:   "quadratic",
}

// String returns the string representation of the model type.
func (mt ModelType) String() string {
	if name, exists := modelTypeNames[mt]; exists {
		return name
	}

	return "unknown"
}

// ModelTypeFromString returns the ModelType for a given name, or
// ModelType(-1) for unknown names.
func ModelTypeFromString(name string) ModelType {
	for mt, n := range modelTypeNames {
		if n == strings.ToLower(name) {
			return mt
		}
	}

	return ModelType(-1)
}

// Estimator predicts running time from problem size.
type Estimator interface {
	Estimate(n float64) float64
	Type() ModelType
	Coefficients() []float64
}

type twoParam struct {
	a, b float64
}

func (p twoParam) Coefficients() []float64 { return []float64{p.a, p.b} }

// LinearEstimator implements T = a + b*n.
type LinearEstimator struct{ twoParam }

// NewLinearEstimator creates a linear estimator.
func NewLinearEstimator(a, b float64) *LinearEstimator {
	return &LinearEstimator{twoParam{a, b}}
}

// Estimate returns a + b*n.
func (e *LinearEstimator) Estimate(n float64) float64 { return e.a + e.b*n }

// Type returns ModelTypeLinear.
func (e *LinearEstimator) Type() ModelType { return ModelTypeLinear }

// LogarithmicEstimator implements T = a + b*ln(n).
type LogarithmicEstimator struct{ twoParam }

// NewLogarithmicEstimator creates a logarithmic estimator.
func NewLogarithmicEstimator(a, b float64) *LogarithmicEstimator {
	return &LogarithmicEstimator{twoParam{a, b}}
}

// Estimate returns a + b*ln(n), or +Inf for n <= 0.
func (e *LogarithmicEstimator) Estimate(n float64) float64 {
	if n <= 0 {
		return math.Inf(1)
	}

	return e.a + e.b*math.Log(n)
}

// Type returns ModelTypeLogarithmic.
func (e *LogarithmicEstimator) Type() ModelType { return ModelTypeLogarithmic }

// PowerEstimator implements T = a * n^b.
type PowerEstimator struct{ twoParam }

// NewPowerEstimator creates a power estimator.
func NewPowerEstimator(a, b float64) *PowerEstimator {
	return &PowerEstimator{twoParam{a, b}}
}

// Estimate returns a * n^b, or +Inf for n <= 0.
func (e *PowerEstimator) Estimate(n float64) float64 {
	if n <= 0 {
		return math.Inf(1)
	}

	return e.a * math.Pow(n, e.b)
}

// Type returns ModelTypePower.
func (e *PowerEstimator) Type() ModelType { return ModelTypePower }

// ExponentialEstimator implements T = a * e^(b*n).
type ExponentialEstimator struct{ twoParam }

// NewExponentialEstimator creates an exponential estimator.
func NewExponentialEstimator(a, b float64) *ExponentialEstimator {
	return &ExponentialEstimator{twoParam{a, b}}
}

// Estimate returns a * e^(b*n).
func (e *ExponentialEstimator) Estimate(n float64) float64 { return e.a * math.Exp(e.b*n) }

// Type returns ModelTypeExponential.
func (e *ExponentialEstimator) Type() ModelType { return ModelTypeExponential }

// Base returns the per-unit growth factor e^b.
func (e *ExponentialEstimator) Base() float64 { return math.Exp(e.b) }

// QuadraticEstimator implements T = a + b*n + c*n².
type QuadraticEstimator struct {
	a, b, c float64
}

// NewQuadraticEstimator creates a quadratic estimator.
func NewQuadraticEstimator(a, b, c float64) *QuadraticEstimator {
	return &QuadraticEstimator{a: a, b: b, c: c}
}

// Estimate returns a + b*n + c*n².
func (e *QuadraticEstimator) Estimate(n float64) float64 { return e.a + e.b*n + e.c*n*n }

// Type returns ModelTypeQuadratic.
func (e *QuadraticEstimator) Type() ModelType { return ModelTypeQuadratic }

// Coefficients returns [a, b, c].
func (e *QuadraticEstimator) Coefficients() []float64 { return []float64{e.a, e.b, e.c} }

// NewEstimator builds an estimator of the given type from its coefficients.
//
// Parameters:
//   - mt: Model type
//   - coeffs: [a, b] for two-parameter models, [a, b, c] for quadratic
//
// Returns:
//   - Estimator: Estimator evaluating the model
//   - error: Error if the coefficient count or model type is wrong
func NewEstimator(mt ModelType, coeffs []float64) (Estimator, error) {
	want := 2
	if mt == ModelTypeQuadratic {
		want = 3
	}
	if len(coeffs) != want {
		return nil, fmt.Errorf("%s model expects exactly %d coefficients, got %d", mt, want, len(coeffs))
	}

	switch mt {
	case ModelTypeLinear:
		return NewLinearEstimator(coeffs[0], coeffs[1]), nil
	case ModelTypeLogarithmic:
		return NewLogarithmicEstimator(coeffs[0], coeffs[1]), nil
	case ModelTypePower:
		return NewPowerEstimator(coeffs[0], coeffs[1]), nil
	case ModelTypeExponential:
		return NewExponentialEstimator(coeffs[0], coeffs[1]), nil
	case ModelTypeQuadratic:
		return NewQuadraticEstimator(coeffs[0], coeffs[1], coeffs[2]), nil
	default:
		return nil, fmt.Errorf("unknown model type %d", mt)
	}
}
