package geom

import (
	"errors"
	"math"
)

// ErrDegenerateSegment is returned when two consecutive points coincide and
// the segment between them therefore has no direction.
var ErrDegenerateSegment = errors.New("degenerate segment: points coincide")

// SegmentNormal returns the midpoint of the segment p0-p1 and the angle of
// the segment's normal (the direction perpendicular to p1-p0, rotated a
// quarter turn counter-clockwise).
//
// The angle is computed with math.Atan2, so axis-aligned segments are handled
// without sign ambiguity. The returned angle differs from the segment's own
// direction angle by exactly pi/2 (mod 2pi).
func SegmentNormal(p0, p1 Point) (Point, float64, error) {
	if p0 == p1 {
		return Point{}, 0, ErrDegenerateSegment
	}

	mid := p0.Midpoint(p1)

	// Perpendicular of v = p1-p0 is (-v.Y, v.X).
	vx := p1.X - p0.X
	vy := p1.Y - p0.Y
	angle := math.Atan2(vx, -vy)

	return mid, angle, nil
}
