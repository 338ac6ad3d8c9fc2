package opt

import (
	"math"
	"math/rand"
	"testing"

	"github.com/cwbudde/arcfit/internal/fit"
	"github.com/cwbudde/arcfit/internal/gen"
)

// Sphere function: f(x) = sum(x_i^2), minimum at origin
func sphere(x []float64) float64 {
	var sum float64
	for _, v := range x {
		sum += v * v
	}
	return sum
}

func TestMayflyAdapterOnSphere(t *testing.T) {
	optimizer := NewMayfly(100, 20, 42) // maxIters, popSize, seed

	dim := 2
	lower := []float64{-10, -10}
	upper := []float64{10, 10}

	best, cost := optimizer.Run(sphere, lower, upper, dim)

	if len(best) != dim {
		t.Fatalf("Expected %d parameters, got %d", dim, len(best))
	}

	// Should converge close to zero
	if cost > 0.1 {
		t.Errorf("Expected cost near 0, got %f", cost)
	}

	for i, v := range best {
		if math.Abs(v) > 1.0 {
			t.Errorf("Parameter %d = %f, expected near 0", i, v)
		}
	}
}

func TestMayflyAdapterDeterministic(t *testing.T) {
	dim := 2
	lower := []float64{-5, -5}
	upper := []float64{5, 5}

	// Run twice with same seed (popSize must be >=20 for mayfly v0.1.0)
	optimizer1 := NewMayfly(50, 20, 123)
	_, cost1 := optimizer1.Run(sphere, lower, upper, dim)

	optimizer2 := NewMayfly(50, 20, 123)
	_, cost2 := optimizer2.Run(sphere, lower, upper, dim)

	if cost1 != cost2 {
		t.Errorf("Non-deterministic: cost1=%f, cost2=%f", cost1, cost2)
	}
}

func TestFitCenterOnCleanCircle(t *testing.T) {
	g := gen.Generator{Radius: 10, NumPoints: 50}
	points := g.Points(rand.New(rand.NewSource(42)))

	optimizer := NewMayfly(200, 30, 42)
	result, err := FitCenter(optimizer, points, fit.TacticRadius)
	if err != nil {
		t.Fatal(err)
	}

	// Stochastic search, so a loose tolerance relative to the radius.
	if d := math.Hypot(result.Center.X, result.Center.Y); d > 1.0 {
		t.Errorf("Fitted center %s is %f from the true center", result.Center.String(), d)
	}
}

func TestFitCenterDeterministic(t *testing.T) {
	g := gen.Generator{Radius: 5, NumPoints: 40, JitterRatio: 0.05}
	points := g.Points(rand.New(rand.NewSource(7)))

	r1, err := FitCenter(NewMayfly(100, 20, 99), points, fit.TacticAngle)
	if err != nil {
		t.Fatal(err)
	}
	r2, err := FitCenter(NewMayfly(100, 20, 99), points, fit.TacticAngle)
	if err != nil {
		t.Fatal(err)
	}

	if r1.Center != r2.Center || r1.Score != r2.Score {
		t.Errorf("Non-deterministic: %+v vs %+v", r1, r2)
	}
}

func TestFitCenterInsufficientPoints(t *testing.T) {
	_, err := FitCenter(NewMayfly(50, 20, 1), nil, fit.TacticRadius)
	if err == nil {
		t.Fatal("Expected error for empty point set")
	}
}
