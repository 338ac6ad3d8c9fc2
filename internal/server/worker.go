package server

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/cwbudde/arcfit/internal/fit"
	"github.com/cwbudde/arcfit/internal/geom"
	"github.com/cwbudde/arcfit/internal/opt"
	"github.com/cwbudde/arcfit/internal/plot"
	"github.com/cwbudde/arcfit/internal/store"
)

// runJob executes a fit job in the background.
// If resultStore is not nil, the result, a plot, and the iteration trace are
// persisted under the job's ID.
func runJob(ctx context.Context, jm *JobManager, resultStore *store.FSStore, jobID string) error {
	job, exists := jm.GetJob(jobID)
	if !exists {
		return fmt.Errorf("job not found: %s", jobID)
	}

	if err := jm.UpdateJob(jobID, func(j *Job) {
		j.State = StateRunning
	}); err != nil {
		return err
	}

	slog.Info("starting job", "job_id", jobID, "tactic", job.Config.Tactic, "solver", job.Config.Solver)

	tactic, err := fit.ParseTactic(job.Config.Tactic)
	if err != nil {
		markJobFailed(jm, jobID, err)
		return err
	}

	points, err := buildPoints(job.Config)
	if err != nil {
		markJobFailed(jm, jobID, err)
		return err
	}

	jm.UpdateJob(jobID, func(j *Job) {
		j.NumInput = len(points)
	})

	// Check for cancellation before the fit starts.
	select {
	case <-ctx.Done():
		markJobCancelled(jm, jobID)
		return ctx.Err()
	default:
	}

	var traceWriter *store.TraceWriter
	if resultStore != nil {
		tw, err := store.NewTraceWriter(resultStore.BaseDir(), jobID)
		if err != nil {
			slog.Warn("failed to create trace writer", "job_id", jobID, "error", err)
		} else {
			traceWriter = tw
			defer traceWriter.Close()
		}
	}

	observer := func(it fit.Iteration) {
		jm.UpdateJob(jobID, func(j *Job) {
			j.Iterations = it.N
			j.CenterX = it.Center.X
			j.CenterY = it.Center.Y
			j.Score = it.Score
		})

		jm.broadcaster.Broadcast(ProgressEvent{
			JobID:     jobID,
			State:     StateRunning,
			Iteration: it.N,
			CenterX:   it.Center.X,
			CenterY:   it.Center.Y,
			Score:     it.Score,
			ScanRange: it.ScanRange,
			Timestamp: time.Now(),
		})

		if traceWriter != nil {
			entry := store.TraceEntry{
				Iteration: it.N,
				X:         it.Center.X,
				Y:         it.Center.Y,
				Score:     it.Score,
				ScanRange: it.ScanRange,
				Timestamp: time.Now(),
			}
			if err := traceWriter.Write(entry); err != nil {
				slog.Warn("failed to write trace entry", "job_id", jobID, "error", err)
			}
		}
	}

	start := time.Now()

	var center geom.Point
	var score float64
	switch job.Config.Solver {
	case "mayfly":
		optimizer := opt.NewMayfly(200, 30, job.Config.Seed)
		result, err := opt.FitCenter(optimizer, points, tactic)
		if err != nil {
			markJobFailed(jm, jobID, err)
			return err
		}
		center, score = result.Center, result.Score
		jm.UpdateJob(jobID, func(j *Job) {
			j.CenterX = center.X
			j.CenterY = center.Y
			j.Score = score
		})
	default:
		fitter := fit.Fitter{Observer: observer}
		center, err = fitter.Fit(points, tactic)
		if err != nil {
			markJobFailed(jm, jobID, err)
			return err
		}
		current, _ := jm.GetJob(jobID)
		score = current.Score
	}

	elapsed := time.Since(start)

	avgRadius, err := fit.AverageRadius(center, points)
	if err != nil {
		markJobFailed(jm, jobID, err)
		return err
	}

	endTime := time.Now()
	var final Job
	jm.UpdateJob(jobID, func(j *Job) {
		j.State = StateCompleted
		j.CenterX = center.X
		j.CenterY = center.Y
		j.Score = score
		j.AvgRadius = avgRadius
		j.EndTime = &endTime
		final = *j
	})

	slog.Info("job completed",
		"job_id", jobID,
		"elapsed", elapsed,
		"center", center.String(),
		"score", score,
		"avg_radius", avgRadius,
		"iterations", final.Iterations,
	)

	jm.broadcaster.Broadcast(ProgressEvent{
		JobID:     jobID,
		State:     StateCompleted,
		Iteration: final.Iterations,
		CenterX:   center.X,
		CenterY:   center.Y,
		Score:     score,
		Timestamp: time.Now(),
	})

	if resultStore != nil {
		if err := persistResult(resultStore, final, points, elapsed); err != nil {
			slog.Warn("failed to persist result", "job_id", jobID, "error", err)
		}
	}

	return nil
}

// persistResult saves result.json and plot.png for a completed job.
func persistResult(resultStore *store.FSStore, job Job, points []geom.Point, elapsed time.Duration) error {
	result := &store.Result{
		ID:         job.ID,
		Config:     job.Config,
		CenterX:    job.CenterX,
		CenterY:    job.CenterY,
		Score:      job.Score,
		AvgRadius:  job.AvgRadius,
		NumInput:   len(points),
		Iterations: job.Iterations,
		ElapsedMS:  elapsed.Milliseconds(),
		CreatedAt:  time.Now(),
	}
	if err := resultStore.SaveResult(job.ID, result); err != nil {
		return err
	}

	renderer := plot.NewRenderer(800, 800)
	scene := plot.Scene{
		Points: points,
		Fitted: &plot.Circle{
			Center: geom.Pt(job.CenterX, job.CenterY),
			Radius: job.AvgRadius,
		},
	}
	plotPath := filepath.Join(resultStore.ResultDir(job.ID), "plot.png")
	return renderer.WritePNG(plotPath, scene)
}

// markJobFailed marks a job as failed with an error message
func markJobFailed(jm *JobManager, jobID string, err error) {
	endTime := time.Now()
	jm.UpdateJob(jobID, func(j *Job) {
		j.State = StateFailed
		j.Error = err.Error()
		j.EndTime = &endTime
	})
	slog.Error("job failed", "job_id", jobID, "error", err)
}

// markJobCancelled marks a job as cancelled
func markJobCancelled(jm *JobManager, jobID string) {
	endTime := time.Now()
	jm.UpdateJob(jobID, func(j *Job) {
		j.State = StateCancelled
		j.EndTime = &endTime
	})
	slog.Info("job cancelled", "job_id", jobID)
}
