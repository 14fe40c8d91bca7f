// Package analysis checks measured running times against the growth models
// of the registry.
//
// All procedures take the long-form records of a results table and a suite,
// and treat each algorithm independently: an algorithm measured at fewer
// sizes than another (for instance because of a size cutoff) is analysed on
// its own rows only, and an algorithm without enough rows gets an error in
// its own result without affecting the others.
//
//   - PowerTest regresses log2(time) on log2(n). The slope is the observed
//     exponent.
//   - RatioTest divides each time by h(n). A sequence that flattens as n
//     grows supports the model.
//   - ConstantsTest regresses time on h(n). The slope estimates the leading
//     constant and the intercept the fixed overhead.
//
// None of them decides pass or fail. Tolerances and verdicts belong to
// whoever reads the report.
package analysis
