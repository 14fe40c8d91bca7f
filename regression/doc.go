// Package regression provides the least squares kernel used by the
// complexity tests, plus a best-fit ranking of growth models.
//
// # Ordinary least squares
//
// Linear fits y = a + b*x and reports slope, intercept, R², RMSE and the
// residuals. The complexity tests call it on transformed data:
//
//	// power test: log2(T) against log2(n)
//	fit, err := regression.Linear(logSizes, logTimes)
//	fmt.Printf("observed exponent %.3f (R²=%.4f)\n", fit.Slope, fit.RSquared)
//
// Linear refuses fewer than two points and inputs where every x is equal,
// returning errs.ErrTooFewPoints or errs.ErrDegenerateX.
//
// # Model ranking
//
// Rank fits several candidate models to raw (n, T) data and orders them by R²
// computed on the original scale:
//
//   - Power: T = a * n^b
//   - Exponential: T = a * e^(b*n), shown as a * base^n
//   - Logarithmic: T = a + b * ln(n)
//   - Linear: T = a + b*n
//   - Quadratic: T = a + b*n + c*n² (opt in with WithCandidates)
//
// Ranking is informational. It answers "which family looks closest", not
// "does the data match the hypothesis", which is what the power, ratio and
// constants tests in package analysis are for.
//
// # Dispersion
//
// Mean, StdDev and CoefficientOfVariation support the ratio-test
// stabilization heuristic.
package regression
