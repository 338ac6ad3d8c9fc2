package geom

import (
	"fmt"
	"math"
)

// Point is a location in the 2D plane.
type Point struct {
	X, Y float64
}

// Pt returns the point (x, y).
func Pt(x, y float64) Point {
	return Point{X: x, Y: y}
}

func (p Point) String() string {
	return fmt.Sprintf("(%g, %g)", p.X, p.Y)
}

// Midpoint returns the point halfway between p and o.
func (p Point) Midpoint(o Point) Point {
	return Point{
		X: 0.5 * (p.X + o.X),
		Y: 0.5 * (p.Y + o.Y),
	}
}

// Distance returns the euclidean distance between p and o.
func (p Point) Distance(o Point) float64 {
	return math.Hypot(p.X-o.X, p.Y-o.Y)
}

// AngleTo returns the angle of the direction from p to o, in radians in
// (-pi, pi], measured with a two-argument arctangent so that vertical and
// horizontal directions are exact.
func (p Point) AngleTo(o Point) float64 {
	return math.Atan2(o.Y-p.Y, o.X-p.X)
}
