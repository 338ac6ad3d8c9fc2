package fit

import (
	"errors"
	"math"
	"testing"

	"github.com/cwbudde/arcfit/internal/gen"
	"github.com/cwbudde/arcfit/internal/geom"
)

// cleanCircle returns n evenly spaced, unperturbed points on a circle.
func cleanCircle(center geom.Point, radius float64, n int) []geom.Point {
	g := gen.Generator{Center: center, Radius: radius, NumPoints: n}
	return g.Points(nil)
}

func TestAverageRadiusExact(t *testing.T) {
	points := cleanCircle(geom.Pt(0, 0), 10, 50)

	r, err := AverageRadius(geom.Pt(0, 0), points)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if math.Abs(r-10) > 1e-6 {
		t.Errorf("Expected average radius 10, got %.9f", r)
	}
}

func TestAverageRadiusEmpty(t *testing.T) {
	_, err := AverageRadius(geom.Pt(0, 0), nil)
	if !errors.Is(err, ErrInsufficientPoints) {
		t.Errorf("Expected ErrInsufficientPoints, got %v", err)
	}
}

func TestScoreAtTrueCenter(t *testing.T) {
	points := cleanCircle(geom.Pt(3, -2), 5, 40)

	t.Run("angle", func(t *testing.T) {
		// Each chord's perpendicular bisector passes through the center,
		// so the angle residual vanishes there.
		score, err := Score(TacticAngle, geom.Pt(3, -2), points)
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		if score > 1e-9 {
			t.Errorf("Expected near-zero angle score at true center, got %g", score)
		}
	})

	t.Run("radius", func(t *testing.T) {
		// Chord midpoints sit at r*cos(pi/n) from the center while the
		// average radius is r, so the floor of the radius residual is
		// r*(1-cos(pi/n)), not zero.
		score, err := Score(TacticRadius, geom.Pt(3, -2), points)
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		want := 5 * (1 - math.Cos(math.Pi/40))
		if math.Abs(score-want) > 1e-9 {
			t.Errorf("Expected radius score %g at true center, got %g", want, score)
		}
	})
}

func TestScorePrefersTrueCenter(t *testing.T) {
	points := cleanCircle(geom.Pt(0, 0), 10, 50)

	for _, tactic := range []Tactic{TacticAngle, TacticRadius} {
		t.Run(tactic.String(), func(t *testing.T) {
			atCenter, err := Score(tactic, geom.Pt(0, 0), points)
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			offCenter, err := Score(tactic, geom.Pt(2, 1), points)
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if atCenter >= offCenter {
				t.Errorf("True center score %g not below off-center score %g", atCenter, offCenter)
			}
		})
	}
}

func TestScoreInsufficientPoints(t *testing.T) {
	for _, tactic := range []Tactic{TacticAngle, TacticRadius} {
		for _, points := range [][]geom.Point{nil, {geom.Pt(1, 1)}} {
			_, err := Score(tactic, geom.Pt(0, 0), points)
			if !errors.Is(err, ErrInsufficientPoints) {
				t.Errorf("Score(%v, %d points): expected ErrInsufficientPoints, got %v",
					tactic, len(points), err)
			}
		}
	}
}

func TestScoreDegenerateSegment(t *testing.T) {
	points := []geom.Point{geom.Pt(0, 0), geom.Pt(1, 1), geom.Pt(1, 1), geom.Pt(2, 0)}

	_, err := Score(TacticAngle, geom.Pt(0, 0), points)
	if !errors.Is(err, geom.ErrDegenerateSegment) {
		t.Errorf("Expected ErrDegenerateSegment, got %v", err)
	}
}

func TestAngleResidualFold(t *testing.T) {
	tests := []struct {
		name string
		a, b float64
		want float64
	}{
		{"identical", 1.2, 1.2, 0},
		{"opposite directions", math.Pi / 4, math.Pi/4 - math.Pi, 0},
		{"quarter turn", 0, math.Pi / 2, math.Pi / 2},
		{"wrap across pi", math.Pi - 0.01, -math.Pi + 0.01, 0.02},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := angleResidual(tt.a, tt.b)
			if math.Abs(got-tt.want) > 1e-12 {
				t.Errorf("angleResidual(%f, %f) = %f, want %f", tt.a, tt.b, got, tt.want)
			}
		})
	}
}
