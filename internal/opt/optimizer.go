// Package opt provides an alternative, continuous solver for the center
// search, cross-checking the grid-based fitter against a general-purpose
// optimizer minimizing the same residual.
package opt

// Optimizer defines an optimization algorithm interface
type Optimizer interface {
	// Run minimizes eval over the box [lower, upper] in dim dimensions and
	// returns the best parameters and their cost.
	Run(eval func([]float64) float64, lower, upper []float64, dim int) ([]float64, float64)
}
