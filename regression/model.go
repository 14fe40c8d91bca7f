package regression

import "fmt"

// Model is one fitted candidate.
type Model struct {
	Type         ModelType
	Coefficients []float64
	// RSquared is measured on the original (untransformed) scale so that
	// candidates are comparable.
	RSquared  float64
	RMSE      float64
	Formula   string
	Estimator Estimator
}

// String returns a one-line summary.
func (m *Model) String() string {
	return fmt.Sprintf("Model{Type: %s, R²: %.4f, RMSE: %.4g, Formula: %s}",
		m.Type, m.RSquared, m.RMSE, m.Formula)
}

// Result holds the candidates of one ranking, best first.
type Result struct {
	BestFit   *Model
	AllModels []*Model
	// Skipped lists candidates whose domain excluded the data, e.g. power
	// and exponential models when some time is not positive.
	Skipped []ModelType
}

// String returns a one-line summary.
func (r *Result) String() string {
	if r.BestFit == nil {
		return "Result{BestFit: nil}"
	}

	return fmt.Sprintf("Result{BestFit: %s, TotalModels: %d}", r.BestFit, len(r.AllModels))
}
