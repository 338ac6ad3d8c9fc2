package fit

import (
	"errors"
	"math"
	"testing"

	"github.com/cwbudde/arcfit/internal/geom"
)

func TestFitFullCircle(t *testing.T) {
	points := cleanCircle(geom.Pt(0, 0), 10, 50)

	for _, tactic := range []Tactic{TacticAngle, TacticRadius} {
		t.Run(tactic.String(), func(t *testing.T) {
			center, err := Fit(points, tactic)
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}

			miss := center.Distance(geom.Pt(0, 0))
			if miss > 0.05 {
				t.Errorf("Fitted center %v misses true center by %f, want <= 0.05", center, miss)
			}
		})
	}
}

func TestFitOffsetCircle(t *testing.T) {
	trueCenter := geom.Pt(-4.5, 7.25)
	points := cleanCircle(trueCenter, 3, 60)

	center, err := Fit(points, TacticRadius)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if miss := center.Distance(trueCenter); miss > 0.05 {
		t.Errorf("Fitted center %v misses %v by %f", center, trueCenter, miss)
	}
}

func TestFitPartialArc(t *testing.T) {
	// 30% arc coverage: information loss perpendicular to the arc makes the
	// tolerance looser.
	points := cleanCircle(geom.Pt(0, 0), 10, 50)[:15]

	center, err := Fit(points, TacticRadius)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if miss := center.Distance(geom.Pt(0, 0)); miss > 0.5 {
		t.Errorf("Fitted center %v misses true center by %f, want <= 0.5", center, miss)
	}
}

func TestFitIterationBound(t *testing.T) {
	points := cleanCircle(geom.Pt(0, 0), 10, 50)

	span, err := geom.BoundingSpan(points)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	iterations := 0
	fitter := Fitter{Observer: func(it Iteration) { iterations = it.N }}
	if _, err := fitter.Fit(points, TacticRadius); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	bound := int(math.Ceil(math.Log2(span/DefaultMinScanRange))) + 2
	if iterations > bound {
		t.Errorf("Fit took %d iterations, want <= %d", iterations, bound)
	}
	if iterations < 2 {
		t.Errorf("Fit must compute at least two scores, got %d iterations", iterations)
	}
}

func TestFitObserverSeesShrinkingRange(t *testing.T) {
	points := cleanCircle(geom.Pt(2, 2), 6, 40)

	var ranges []float64
	fitter := Fitter{Observer: func(it Iteration) { ranges = append(ranges, it.ScanRange) }}
	if _, err := fitter.Fit(points, TacticAngle); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	for i := 1; i < len(ranges); i++ {
		if ranges[i] != ranges[i-1]/2 {
			t.Fatalf("Scan range not halved: %f -> %f", ranges[i-1], ranges[i])
		}
	}
	for _, r := range ranges {
		if r <= 0 {
			t.Fatalf("Scan range must stay positive, got %f", r)
		}
	}
}

func TestFitInsufficientPoints(t *testing.T) {
	tests := []struct {
		name   string
		points []geom.Point
		tactic Tactic
	}{
		{"empty angle", nil, TacticAngle},
		{"empty radius", nil, TacticRadius},
		{"single point angle", []geom.Point{geom.Pt(1, 2)}, TacticAngle},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Fit(tt.points, tt.tactic)
			if !errors.Is(err, ErrInsufficientPoints) {
				t.Errorf("Expected ErrInsufficientPoints, got %v", err)
			}
		})
	}
}

func TestFitDeterministic(t *testing.T) {
	points := cleanCircle(geom.Pt(1, -1), 7, 45)

	first, err := Fit(points, TacticAngle)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	second, err := Fit(points, TacticAngle)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if first != second {
		t.Errorf("Fit not deterministic: %v vs %v", first, second)
	}
}
