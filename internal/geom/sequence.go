package geom

import "errors"

// ErrNoPoints is returned by aggregate operations applied to an empty slice.
var ErrNoPoints = errors.New("no points")

// Centroid returns the arithmetic mean of the point coordinates.
func Centroid(points []Point) (Point, error) {
	if len(points) == 0 {
		return Point{}, ErrNoPoints
	}

	var sx, sy float64
	for _, p := range points {
		sx += p.X
		sy += p.Y
	}
	n := float64(len(points))

	return Point{X: sx / n, Y: sy / n}, nil
}

// BoundingSpan returns the larger side of the axis-aligned bounding box of
// the points. A single point has span 0.
func BoundingSpan(points []Point) (float64, error) {
	if len(points) == 0 {
		return 0, ErrNoPoints
	}

	minX, maxX := points[0].X, points[0].X
	minY, maxY := points[0].Y, points[0].Y
	for _, p := range points[1:] {
		if p.X < minX {
			minX = p.X
		}
		if p.X > maxX {
			maxX = p.X
		}
		if p.Y < minY {
			minY = p.Y
		}
		if p.Y > maxY {
			maxY = p.Y
		}
	}

	w := maxX - minX
	h := maxY - minY
	if h > w {
		return h, nil
	}
	return w, nil
}
