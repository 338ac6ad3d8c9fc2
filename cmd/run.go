package main

import (
	"fmt"
	"log/slog"
	"math/rand"
	"path/filepath"
	"time"

	"github.com/cwbudde/arcfit/internal/fit"
	"github.com/cwbudde/arcfit/internal/gen"
	"github.com/cwbudde/arcfit/internal/geom"
	"github.com/cwbudde/arcfit/internal/opt"
	"github.com/cwbudde/arcfit/internal/plot"
	"github.com/cwbudde/arcfit/internal/store"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

var (
	runNumPoints int
	runArcRatio  float64
	runJitter    float64
	runRadius    float64
	runTactic    string
	runSolver    string
	runSeed      int64
	runOutPath   string
	runPointsOut string
	runDataDir   string
	runSave      bool
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Generate a jittered arc and fit a circle to it",
	Long: `Generates points along an arc of a circle with a random center,
perturbs them by jitter, fits a center estimate to them, and writes a plot
comparing the generated and fitted circles.`,
	RunE: runFit,
}

func init() {
	runCmd.Flags().IntVar(&runNumPoints, "points", 50, "Number of points in the generated circle")
	runCmd.Flags().Float64Var(&runArcRatio, "arc", 0.3, "Ratio of the circle covered by the arc, in (0, 1]")
	runCmd.Flags().Float64Var(&runJitter, "jitter", 0.05, "Ratio of point spacing to perturb coordinates by, in (0, 1]")
	runCmd.Flags().Float64Var(&runRadius, "radius", 10, "Radius of the generated circle")
	runCmd.Flags().StringVar(&runTactic, "tactic", "radius", "Residual tactic: angle or radius (case-insensitive)")
	runCmd.Flags().StringVar(&runSolver, "solver", "grid", "Solver: grid (multi-resolution search) or mayfly")
	runCmd.Flags().Int64Var(&runSeed, "seed", 42, "Random seed for center placement and jitter")
	runCmd.Flags().StringVar(&runOutPath, "out", "fit.png", "Output plot path")
	runCmd.Flags().StringVar(&runPointsOut, "save-points", "", "Write the generated points to a CSV file")
	runCmd.Flags().StringVar(&runDataDir, "data-dir", "./data", "Base directory for persisted results")
	runCmd.Flags().BoolVar(&runSave, "save", false, "Persist result, plot and iteration trace under --data-dir")

	rootCmd.AddCommand(runCmd)
}

func runFit(cmd *cobra.Command, args []string) error {
	if runNumPoints < 1 {
		return fmt.Errorf("--points must be a positive integer, got %d", runNumPoints)
	}
	if runArcRatio <= 0 || runArcRatio > 1 {
		return fmt.Errorf("--arc must be in (0, 1], got %g", runArcRatio)
	}
	if runJitter <= 0 || runJitter > 1 {
		return fmt.Errorf("--jitter must be in (0, 1], got %g", runJitter)
	}
	tactic, err := fit.ParseTactic(runTactic)
	if err != nil {
		return err
	}

	rng := rand.New(rand.NewSource(runSeed))
	trueCenter := geom.Pt(
		rng.Float64()*2*runRadius-runRadius,
		rng.Float64()*2*runRadius-runRadius,
	)

	generator := gen.Generator{
		Center:      trueCenter,
		Radius:      runRadius,
		NumPoints:   runNumPoints,
		JitterRatio: runJitter,
	}
	points := gen.Arc(generator.Points(rng), runArcRatio)

	slog.Info("generated arc",
		"tactic", tactic.String(),
		"num_points", runNumPoints,
		"arc_ratio", runArcRatio,
		"used_points", len(points),
		"jitter_ratio", runJitter,
		"radius", runRadius,
		"true_center", trueCenter.String(),
	)

	if runPointsOut != "" {
		if err := store.WritePoints(runPointsOut, points); err != nil {
			return err
		}
		slog.Info("wrote points", "path", runPointsOut)
	}

	var resultStore *store.FSStore
	var traceWriter *store.TraceWriter
	resultID := uuid.New().String()
	if runSave {
		resultStore, err = store.NewFSStore(runDataDir)
		if err != nil {
			return fmt.Errorf("failed to create result store: %w", err)
		}
		traceWriter, err = store.NewTraceWriter(runDataDir, resultID)
		if err != nil {
			return fmt.Errorf("failed to create trace writer: %w", err)
		}
		defer traceWriter.Close()
	}

	start := time.Now()

	var center geom.Point
	var score float64
	iterations := 0

	switch runSolver {
	case "grid":
		fitter := fit.Fitter{
			Observer: func(it fit.Iteration) {
				iterations = it.N
				score = it.Score
				if traceWriter != nil {
					traceWriter.Write(store.TraceEntry{
						Iteration: it.N,
						X:         it.Center.X,
						Y:         it.Center.Y,
						Score:     it.Score,
						ScanRange: it.ScanRange,
						Timestamp: time.Now(),
					})
				}
			},
		}
		center, err = fitter.Fit(points, tactic)
	case "mayfly":
		var result fit.FitResult
		result, err = opt.FitCenter(opt.NewMayfly(200, 30, runSeed), points, tactic)
		center, score = result.Center, result.Score
	default:
		return fmt.Errorf("unknown solver %q (want grid or mayfly)", runSolver)
	}
	if err != nil {
		return fmt.Errorf("fit failed: %w", err)
	}

	elapsed := time.Since(start)

	avgRadius, err := fit.AverageRadius(center, points)
	if err != nil {
		return err
	}

	slog.Info("fit complete",
		"elapsed", elapsed,
		"center", center.String(),
		"score", score,
		"avg_radius", avgRadius,
		"miss_distance", center.Distance(trueCenter),
	)

	renderer := plot.NewRenderer(800, 800)
	scene := plot.Scene{
		Points:    points,
		Fitted:    &plot.Circle{Center: center, Radius: avgRadius},
		Reference: &plot.Circle{Center: trueCenter, Radius: runRadius},
	}
	if err := renderer.WritePNG(runOutPath, scene); err != nil {
		return err
	}

	if resultStore != nil {
		result := &store.Result{
			ID: resultID,
			Config: store.JobConfig{
				NumPoints:   runNumPoints,
				ArcRatio:    runArcRatio,
				JitterRatio: runJitter,
				Radius:      runRadius,
				Seed:        runSeed,
				Tactic:      tactic.String(),
				Solver:      runSolver,
			},
			CenterX:    center.X,
			CenterY:    center.Y,
			Score:      score,
			AvgRadius:  avgRadius,
			NumInput:   len(points),
			Iterations: iterations,
			ElapsedMS:  elapsed.Milliseconds(),
			CreatedAt:  time.Now(),
		}
		if err := resultStore.SaveResult(resultID, result); err != nil {
			return err
		}
		plotPath := filepath.Join(resultStore.ResultDir(resultID), "plot.png")
		if err := renderer.WritePNG(plotPath, scene); err != nil {
			return err
		}
		slog.Info("result saved", "id", resultID, "dir", resultStore.ResultDir(resultID))
	}

	fmt.Printf("Fitted center %s (score %.6f, avg radius %.4f), wrote %s\n",
		center.String(), score, avgRadius, runOutPath)

	return nil
}
