package opt

import (
	"math"

	"github.com/cwbudde/arcfit/internal/fit"
	"github.com/cwbudde/arcfit/internal/geom"
)

// FitCenter estimates the circle center for points by minimizing the fit
// residual with a continuous optimizer instead of the multi-resolution grid
// search. The search box is the point bounding box expanded by its own span
// on every side, mirroring the region the grid search can reach.
func FitCenter(o Optimizer, points []geom.Point, tactic fit.Tactic) (fit.FitResult, error) {
	// Surface precondition violations before handing an eval function to
	// the optimizer.
	centroid, err := geom.Centroid(points)
	if err != nil {
		return fit.FitResult{}, err
	}
	span, err := geom.BoundingSpan(points)
	if err != nil {
		return fit.FitResult{}, err
	}
	if _, err := fit.Score(tactic, centroid, points); err != nil {
		return fit.FitResult{}, err
	}

	// Square search box so the scalar-bound optimizer sees the same range
	// on both axes.
	half := span
	if half == 0 {
		half = 1
	}
	lo := math.Min(centroid.X, centroid.Y) - half
	hi := math.Max(centroid.X, centroid.Y) + half
	lower := []float64{lo, lo}
	upper := []float64{hi, hi}

	eval := func(params []float64) float64 {
		score, err := fit.Score(tactic, geom.Pt(params[0], params[1]), points)
		if err != nil {
			// Preconditions were validated above; any residual error
			// here means an unusable candidate.
			return math.Inf(1)
		}
		return score
	}

	best, cost := o.Run(eval, lower, upper, 2)
	return fit.FitResult{Center: geom.Pt(best[0], best[1]), Score: cost}, nil
}
