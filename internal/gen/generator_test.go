package gen

import (
	"math"
	"math/rand"
	"testing"

	"github.com/cwbudde/arcfit/internal/geom"
)

func TestPointsCountAndRadius(t *testing.T) {
	g := Generator{Center: geom.Pt(2, -3), Radius: 10, NumPoints: 50}
	points := g.Points(nil)

	if len(points) != 50 {
		t.Fatalf("Expected 50 points, got %d", len(points))
	}

	for i, p := range points {
		d := p.Distance(geom.Pt(2, -3))
		if math.Abs(d-10) > 1e-9 {
			t.Errorf("Point %d at distance %f, want 10", i, d)
		}
	}
}

func TestPointsEvenSpacing(t *testing.T) {
	g := Generator{Center: geom.Pt(0, 0), Radius: 5, NumPoints: 36}
	points := g.Points(nil)

	want := 2 * 5 * math.Sin(math.Pi/36) // chord length for a 10 degree step
	for i := 0; i+1 < len(points); i++ {
		chord := points[i].Distance(points[i+1])
		if math.Abs(chord-want) > 1e-9 {
			t.Errorf("Chord %d has length %f, want %f", i, chord, want)
		}
	}
}

func TestPointsDeterministicUnderSeed(t *testing.T) {
	g := Generator{Center: geom.Pt(0, 0), Radius: 10, NumPoints: 40, JitterRatio: 0.05}

	first := g.Points(rand.New(rand.NewSource(99)))
	second := g.Points(rand.New(rand.NewSource(99)))

	if len(first) != len(second) {
		t.Fatalf("Length mismatch: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("Point %d differs: %v vs %v", i, first[i], second[i])
		}
	}
}

func TestPointsJitterBounded(t *testing.T) {
	g := Generator{Center: geom.Pt(0, 0), Radius: 10, NumPoints: 50, JitterRatio: 0.05}
	points := g.Points(rand.New(rand.NewSource(1)))

	// Per-coordinate jitter is bounded by jitterRatio * circumference / n,
	// so the radial error is at most sqrt(2) times that.
	maxJitter := 0.05 * 10 * math.Pi * 2 / 50 * math.Sqrt2
	for i, p := range points {
		d := p.Distance(geom.Pt(0, 0))
		if math.Abs(d-10) > maxJitter {
			t.Errorf("Point %d at distance %f, beyond jitter bound %f from radius 10", i, d, maxJitter)
		}
	}
}

func TestArc(t *testing.T) {
	g := Generator{Center: geom.Pt(0, 0), Radius: 10, NumPoints: 50}
	points := g.Points(nil)

	tests := []struct {
		ratio float64
		want  int
	}{
		{1, 50},
		{0.3, 15},
		{0.5, 25},
		{0.001, 1}, // never below one point
	}

	for _, tt := range tests {
		got := Arc(points, tt.ratio)
		if len(got) != tt.want {
			t.Errorf("Arc(ratio=%g): expected %d points, got %d", tt.ratio, tt.want, len(got))
		}
		for i := range got {
			if got[i] != points[i] {
				t.Fatalf("Arc must keep the leading points in order")
			}
		}
	}
}
