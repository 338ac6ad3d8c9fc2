package server

import (
	"fmt"
	"math/rand"

	"github.com/cwbudde/arcfit/internal/gen"
	"github.com/cwbudde/arcfit/internal/geom"
	"github.com/cwbudde/arcfit/internal/store"
)

// applyDefaults fills unset generator fields of a job config.
func applyDefaults(config *JobConfig) {
	if config.PointsPath == "" {
		if config.NumPoints == 0 {
			config.NumPoints = 50
		}
		if config.ArcRatio == 0 {
			config.ArcRatio = 1
		}
		if config.Radius == 0 {
			config.Radius = 10
		}
	}
	if config.Tactic == "" {
		config.Tactic = "radius"
	}
	if config.Solver == "" {
		config.Solver = "grid"
	}
}

// validateConfig checks the ranges the command surface promises the core.
func validateConfig(config JobConfig) error {
	if config.PointsPath == "" {
		if config.NumPoints < 1 {
			return fmt.Errorf("numPoints must be a positive integer, got %d", config.NumPoints)
		}
		if config.ArcRatio <= 0 || config.ArcRatio > 1 {
			return fmt.Errorf("arcRatio must be in (0, 1], got %g", config.ArcRatio)
		}
		if config.JitterRatio < 0 || config.JitterRatio > 1 {
			return fmt.Errorf("jitterRatio must be in [0, 1], got %g", config.JitterRatio)
		}
		if config.Radius <= 0 {
			return fmt.Errorf("radius must be positive, got %g", config.Radius)
		}
	}
	if config.Solver != "grid" && config.Solver != "mayfly" {
		return fmt.Errorf("unknown solver %q (want grid or mayfly)", config.Solver)
	}
	return nil
}

// buildPoints produces the point sequence a job fits: either the contents of
// a recorded CSV file or a freshly generated jittered arc. Generation is
// seeded, so the same config always yields the same points.
func buildPoints(config JobConfig) ([]geom.Point, error) {
	if config.PointsPath != "" {
		points, err := store.ReadPoints(config.PointsPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load points: %w", err)
		}
		return points, nil
	}

	g := gen.Generator{
		Center:      geom.Pt(0, 0),
		Radius:      config.Radius,
		NumPoints:   config.NumPoints,
		JitterRatio: config.JitterRatio,
	}
	rng := rand.New(rand.NewSource(config.Seed))
	return gen.Arc(g.Points(rng), config.ArcRatio), nil
}
