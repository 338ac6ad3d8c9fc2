package geom

import (
	"errors"
	"math"
	"math/rand"
	"testing"
)

func TestSegmentNormalMidpoint(t *testing.T) {
	mid, _, err := SegmentNormal(Pt(0, 0), Pt(2, 4))
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if mid != Pt(1, 2) {
		t.Errorf("Expected midpoint (1, 2), got %v", mid)
	}
}

func TestSegmentNormalAxisAligned(t *testing.T) {
	// Axis-aligned segments have a zero slope component; atan2 must stay exact.
	tests := []struct {
		name      string
		p0, p1    Point
		wantAngle float64
	}{
		{"horizontal right", Pt(0, 0), Pt(1, 0), math.Pi / 2},
		{"vertical up", Pt(0, 0), Pt(0, 1), math.Pi},
		{"horizontal left", Pt(1, 0), Pt(0, 0), -math.Pi / 2},
		{"vertical down", Pt(0, 1), Pt(0, 0), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, angle, err := SegmentNormal(tt.p0, tt.p1)
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if math.Abs(angle-tt.wantAngle) > 1e-12 {
				t.Errorf("Expected normal angle %f, got %f", tt.wantAngle, angle)
			}
		})
	}
}

func TestSegmentNormalPerpendicular(t *testing.T) {
	// Property: for any non-coincident pair, the normal angle differs from
	// the segment direction angle by exactly pi/2 (mod 2pi).
	rng := rand.New(rand.NewSource(7))

	for i := 0; i < 1000; i++ {
		p0 := Pt(rng.Float64()*200-100, rng.Float64()*200-100)
		p1 := Pt(rng.Float64()*200-100, rng.Float64()*200-100)
		if p0 == p1 {
			continue
		}

		mid, angle, err := SegmentNormal(p0, p1)
		if err != nil {
			t.Fatalf("Unexpected error for %v-%v: %v", p0, p1, err)
		}

		wantMid := p0.Midpoint(p1)
		if mid != wantMid {
			t.Fatalf("Midpoint mismatch: got %v, want %v", mid, wantMid)
		}

		dir := math.Atan2(p1.Y-p0.Y, p1.X-p0.X)
		diff := math.Mod(angle-dir+2*math.Pi, 2*math.Pi)
		if math.Abs(diff-math.Pi/2) > 1e-9 {
			t.Fatalf("Normal of %v-%v is %f from direction, want pi/2", p0, p1, diff)
		}
	}
}

func TestSegmentNormalDegenerate(t *testing.T) {
	_, _, err := SegmentNormal(Pt(3, 3), Pt(3, 3))
	if !errors.Is(err, ErrDegenerateSegment) {
		t.Errorf("Expected ErrDegenerateSegment, got %v", err)
	}
}
