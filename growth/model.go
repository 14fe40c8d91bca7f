package growth

import (
	"fmt"
	"math"
	"strconv"
)

// ModelType identifies the family of a theoretical growth function.
type ModelType int

const (
	// ModelTypePower represents h(n) = n^k.
	ModelTypePower ModelType = iota
	// ModelTypeExponential represents h(n) = b^n.
	ModelTypeExponential
	// ModelTypePowerLog represents h(n) = n^k · log₂(n).
	ModelTypePowerLog
)

var modelTypeNames = map[ModelType]string{
	ModelTypePower:       "power",
	ModelTypeExponential: "exponential",
	ModelTypePowerLog:    "power-log",
}

// String returns the string representation of the model type.
func (mt ModelType) String() string {
	if name, ok := modelTypeNames[mt]; ok {
		return name
	}

	return "unknown"
}

// Model is a theoretical growth function. The zero value is not usable;
// build models with Power, Exponential or PowerLog.
//
// Models are immutable values, so the registry can hand them out freely.
type Model struct {
	typ   ModelType
	param float64 // exponent k or base b
	shown string  // display form of param, e.g. "log_2(7)"
}

// Power returns h(n) = n^k.
func Power(k float64) Model {
	return Model{typ: ModelTypePower, param: k}
}

// PowerNamed returns h(n) = n^k with a symbolic exponent for display,
// e.g. PowerNamed(math.Log2(7), "log_2(7)").
func PowerNamed(k float64, shown string) Model {
	return Model{typ: ModelTypePower, param: k, shown: shown}
}

// Exponential returns h(n) = base^n.
func Exponential(base float64) Model {
	return Model{typ: ModelTypeExponential, param: base}
}

// PowerLog returns h(n) = n^k · log₂(n).
func PowerLog(k float64) Model {
	return Model{typ: ModelTypePowerLog, param: k}
}

// Type returns the model family.
func (m Model) Type() ModelType {
	return m.typ
}

// Param returns the exponent (power models) or the base (exponential models).
func (m Model) Param() float64 {
	return m.param
}

// Eval returns h(n).
func (m Model) Eval(n float64) float64 {
	switch m.typ {
	case ModelTypePower:
		return math.Pow(n, m.param)
	case ModelTypeExponential:
		return math.Pow(m.param, n)
	case ModelTypePowerLog:
		return math.Pow(n, m.param) * math.Log2(n)
	default:
		return math.NaN()
	}
}

// Exponent returns the log-log slope the power test should observe.
// Only pure power models have a constant slope.
func (m Model) Exponent() (float64, bool) {
	if m.typ != ModelTypePower {
		return 0, false
	}

	return m.param, true
}

// Formula renders h with the given variable name, e.g. "n^3" or "1.25^n".
func (m Model) Formula(v string) string {
	p := m.shown
	if p == "" {
		p = strconv.FormatFloat(m.param, 'g', 4, 64)
	}

	switch m.typ {
	case ModelTypePower:
		if m.shown != "" {
			return fmt.Sprintf("%s^(%s)", v, p)
		}

		return fmt.Sprintf("%s^%s", v, p)
	case ModelTypeExponential:
		return fmt.Sprintf("%s^%s", p, v)
	case ModelTypePowerLog:
		return fmt.Sprintf("%s^%s log_2(%s)", v, p, v)
	default:
		return "?"
	}
}

// String returns the formula in terms of n.
func (m Model) String() string {
	return m.Formula("n")
}
