package fit

import (
	"errors"
	"fmt"
	"math"

	"github.com/cwbudde/arcfit/internal/geom"
)

// ErrInsufficientPoints is returned when a point sequence is too short for
// the requested operation. Use errors.Is to check for it.
var ErrInsufficientPoints = errors.New("insufficient points")

// AverageRadius returns the mean euclidean distance from center to each
// point. This is the radius a presentation layer should draw a fitted circle
// with.
func AverageRadius(center geom.Point, points []geom.Point) (float64, error) {
	if len(points) == 0 {
		return 0, fmt.Errorf("average radius: %w: need at least 1, got 0", ErrInsufficientPoints)
	}

	var total float64
	for _, p := range points {
		total += center.Distance(p)
	}

	return total / float64(len(points)), nil
}

// Score computes the residual of a candidate center against an ordered point
// sequence. Consecutive points form the segments being scored; lower is
// better and 0 is a perfect fit.
//
// Both tactics need at least one segment, so the sequence must hold at least
// two points. Coincident consecutive points yield ErrDegenerateSegment.
func Score(tactic Tactic, center geom.Point, points []geom.Point) (float64, error) {
	if err := validatePoints(points); err != nil {
		return 0, err
	}

	var avgRadius float64
	if tactic == TacticRadius {
		// Depends on the candidate center, so it is computed once per
		// candidate rather than once per grid.
		r, err := AverageRadius(center, points)
		if err != nil {
			return 0, err
		}
		avgRadius = r
	}

	var total float64
	segments := 0
	for i := 0; i+1 < len(points); i++ {
		mid, normalAngle, err := geom.SegmentNormal(points[i], points[i+1])
		if err != nil {
			return 0, fmt.Errorf("segment %d: %w", i, err)
		}

		switch tactic {
		case TacticAngle:
			total += angleResidual(mid.AngleTo(center), normalAngle)
		case TacticRadius:
			total += math.Abs(mid.Distance(center) - avgRadius)
		}
		segments++
	}

	return total / float64(segments), nil
}

// angleResidual returns the angular distance between two directions treated
// as undirected lines, folded into [0, pi/2]. A segment normal may point
// toward or away from the center depending on the winding of the input arc;
// both orientations score as a perfect fit.
func angleResidual(a, b float64) float64 {
	d := math.Mod(math.Abs(a-b), math.Pi)
	if d > math.Pi/2 {
		d = math.Pi - d
	}
	return d
}

// validatePoints checks the sequence preconditions shared by both tactics
// before any floating-point work is attempted.
func validatePoints(points []geom.Point) error {
	if len(points) < 2 {
		return fmt.Errorf("score: %w: need at least 2, got %d", ErrInsufficientPoints, len(points))
	}
	return nil
}
