package main

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/cwbudde/arcfit/internal/fit"
	"github.com/cwbudde/arcfit/internal/geom"
	"github.com/cwbudde/arcfit/internal/opt"
	"github.com/cwbudde/arcfit/internal/plot"
	"github.com/cwbudde/arcfit/internal/store"
	"github.com/spf13/cobra"
)

var (
	fitTactic  string
	fitSolver  string
	fitSeed    int64
	fitOutPath string
)

var fitCmd = &cobra.Command{
	Use:   "fit <points.csv>",
	Short: "Fit a circle center to a recorded point sequence",
	Long: `Reads an ordered point sequence from a CSV file (one "x,y" pair per
row) and estimates the center of the circle the points were sampled from.
Point order matters: consecutive points form the segments the angle tactic
scores.`,
	Args: cobra.ExactArgs(1),
	RunE: runFitFile,
}

func init() {
	fitCmd.Flags().StringVar(&fitTactic, "tactic", "radius", "Residual tactic: angle or radius (case-insensitive)")
	fitCmd.Flags().StringVar(&fitSolver, "solver", "grid", "Solver: grid (multi-resolution search) or mayfly")
	fitCmd.Flags().Int64Var(&fitSeed, "seed", 42, "Random seed for the mayfly solver")
	fitCmd.Flags().StringVar(&fitOutPath, "out", "", "Optional output plot path")

	rootCmd.AddCommand(fitCmd)
}

func runFitFile(cmd *cobra.Command, args []string) error {
	tactic, err := fit.ParseTactic(fitTactic)
	if err != nil {
		return err
	}

	points, err := store.ReadPoints(args[0])
	if err != nil {
		return err
	}

	slog.Info("loaded points", "path", args[0], "count", len(points))

	start := time.Now()

	var center geom.Point
	var score float64
	switch fitSolver {
	case "grid":
		var fitter fit.Fitter
		fitter.Observer = func(it fit.Iteration) { score = it.Score }
		center, err = fitter.Fit(points, tactic)
	case "mayfly":
		var result fit.FitResult
		result, err = opt.FitCenter(opt.NewMayfly(200, 30, fitSeed), points, tactic)
		center, score = result.Center, result.Score
	default:
		return fmt.Errorf("unknown solver %q (want grid or mayfly)", fitSolver)
	}
	if err != nil {
		return fmt.Errorf("fit failed: %w", err)
	}

	avgRadius, err := fit.AverageRadius(center, points)
	if err != nil {
		return err
	}

	slog.Info("fit complete",
		"elapsed", time.Since(start),
		"center", center.String(),
		"score", score,
		"avg_radius", avgRadius,
	)

	if fitOutPath != "" {
		renderer := plot.NewRenderer(800, 800)
		scene := plot.Scene{
			Points: points,
			Fitted: &plot.Circle{Center: center, Radius: avgRadius},
		}
		if err := renderer.WritePNG(fitOutPath, scene); err != nil {
			return err
		}
	}

	fmt.Printf("Fitted center %s (score %.6f, avg radius %.4f)\n", center.String(), score, avgRadius)
	return nil
}
