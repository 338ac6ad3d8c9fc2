package fit

import (
	"log/slog"

	"github.com/cwbudde/arcfit/internal/geom"
)

const (
	// DefaultMinImprovement is the score plateau below which refinement is
	// considered converged.
	DefaultMinImprovement = 0.0001

	// DefaultMinScanRange is the scan range below which the grid is
	// considered fine enough.
	DefaultMinScanRange = 0.01
)

// Iteration describes one completed resolution level of a fit.
type Iteration struct {
	// N is the 1-based iteration number.
	N int

	// Center is the best candidate found at this level.
	Center geom.Point

	// Score is the residual of Center.
	Score float64

	// ScanRange is the half-width of the region this level scanned.
	ScanRange float64
}

// Observer receives a callback after every iteration of a fit. Used for
// tracing and progress streaming; may be nil.
type Observer func(Iteration)

// Fitter estimates the center of a circle from an ordered sequence of points
// sampled along an arc of it. The zero value uses the default convergence
// thresholds.
type Fitter struct {
	// MinImprovement overrides DefaultMinImprovement when positive.
	MinImprovement float64

	// MinScanRange overrides DefaultMinScanRange when positive.
	MinScanRange float64

	// Observer, when non-nil, is invoked after each iteration.
	Observer Observer
}

// Fit runs the multi-resolution search: starting from the centroid of the
// points with a scan range covering their bounding box, it repeatedly scans
// a grid of candidate centers, re-centers on the best one and halves the
// range, until the score has plateaued and the grid is fine enough.
//
// The search is a coarse-to-fine local refinement. It can settle in a local
// minimum of the residual; no restart strategy is attempted.
func (f *Fitter) Fit(points []geom.Point, tactic Tactic) (geom.Point, error) {
	if err := validatePoints(points); err != nil {
		return geom.Point{}, err
	}

	hint, err := geom.Centroid(points)
	if err != nil {
		return geom.Point{}, err
	}
	scanRange, err := geom.BoundingSpan(points)
	if err != nil {
		return geom.Point{}, err
	}

	minImprovement := f.MinImprovement
	if minImprovement <= 0 {
		minImprovement = DefaultMinImprovement
	}
	minScanRange := f.MinScanRange
	if minScanRange <= 0 {
		minScanRange = DefaultMinScanRange
	}

	slog.Debug("starting fit",
		"tactic", tactic.String(),
		"points", len(points),
		"hint", hint.String(),
		"scan_range", scanRange,
	)

	tracker := newProgressTracker(minImprovement, minScanRange)
	iter := 0

	for !tracker.done(scanRange) {
		result, err := FitAt(hint, scanRange, points, tactic)
		if err != nil {
			return geom.Point{}, err
		}

		iter++
		hint = result.Center
		tracker.observe(result.Score)

		slog.Debug("fit iteration",
			"iteration", iter,
			"center", hint.String(),
			"score", result.Score,
			"scan_range", scanRange,
		)

		if f.Observer != nil {
			f.Observer(Iteration{
				N:         iter,
				Center:    hint,
				Score:     result.Score,
				ScanRange: scanRange,
			})
		}

		scanRange /= 2
	}

	slog.Debug("fit converged", "iterations", iter, "center", hint.String())
	return hint, nil
}

// Fit estimates the circle center for points with default settings.
func Fit(points []geom.Point, tactic Tactic) (geom.Point, error) {
	var f Fitter
	return f.Fit(points, tactic)
}
