// Package gen produces synthetic point sequences for testing and
// demonstration: points sampled along a circle, optionally perturbed by
// jitter and truncated to an arc.
package gen

import (
	"math"
	"math/rand"

	"github.com/cwbudde/arcfit/internal/geom"
)

// Generator describes a jittered circle of sample points.
type Generator struct {
	Center    geom.Point
	Radius    float64
	NumPoints int

	// JitterRatio scales the perturbation applied to each coordinate.
	// The jitter amplitude is JitterRatio times the circumference divided
	// by NumPoints, i.e. proportional to the spacing between samples.
	JitterRatio float64
}

// Points returns the generated sequence, ordered by increasing angle from 0.
// All randomness comes from rng, so a fixed seed reproduces the exact same
// points. With JitterRatio 0 the points lie exactly on the circle and rng
// may be nil.
func (g Generator) Points(rng *rand.Rand) []geom.Point {
	jitterSize := g.JitterRatio * g.Radius * math.Pi * 2 / float64(g.NumPoints)
	jitter := func() float64 {
		if jitterSize == 0 {
			return 0
		}
		return rng.Float64()*2*jitterSize - jitterSize
	}

	points := make([]geom.Point, 0, g.NumPoints)
	segment := math.Pi * 2 / float64(g.NumPoints)
	for i := 0; i < g.NumPoints; i++ {
		// Indexed rather than accumulated, so the count is exact and the
		// spacing carries no accumulated rounding.
		sin, cos := math.Sincos(segment * float64(i))
		points = append(points, geom.Pt(
			g.Center.X+g.Radius*cos+jitter(),
			g.Center.Y+g.Radius*sin+jitter(),
		))
	}

	return points
}

// Arc truncates points to the leading fraction ratio of the full sequence,
// keeping at least one point for any positive ratio.
func Arc(points []geom.Point, ratio float64) []geom.Point {
	n := int(ratio * float64(len(points)))
	if n < 1 {
		n = 1
	}
	if n > len(points) {
		n = len(points)
	}
	return points[:n]
}
