package server

import (
	"context"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/cwbudde/arcfit/internal/store"
)

func TestRunJobPersistsResultAndTrace(t *testing.T) {
	dir := t.TempDir()
	resultStore, err := store.NewFSStore(dir)
	if err != nil {
		t.Fatal(err)
	}

	jm := NewJobManager()
	config := JobConfig{NumPoints: 50, ArcRatio: 1, Radius: 10, Tactic: "radius", Solver: "grid"}
	job := jm.CreateJob(config)

	if err := runJob(context.Background(), jm, resultStore, job.ID); err != nil {
		t.Fatalf("runJob failed: %v", err)
	}

	got, exists := jm.GetJob(job.ID)
	if !exists {
		t.Fatal("Job disappeared")
	}
	if got.State != StateCompleted {
		t.Fatalf("Expected completed, got %s (%s)", got.State, got.Error)
	}
	if math.Hypot(got.CenterX, got.CenterY) > 0.05 {
		t.Errorf("Fitted center (%f, %f) too far from origin", got.CenterX, got.CenterY)
	}
	if got.Iterations == 0 {
		t.Error("Expected iteration count from observer")
	}

	result, err := resultStore.LoadResult(job.ID)
	if err != nil {
		t.Fatalf("Result not persisted: %v", err)
	}
	if result.Config != config {
		t.Errorf("Persisted config differs: %+v", result.Config)
	}

	reader, err := store.NewTraceReader(dir, job.ID)
	if err != nil {
		t.Fatalf("Trace not persisted: %v", err)
	}
	defer reader.Close()

	entries, err := reader.ReadAll()
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != got.Iterations {
		t.Errorf("Expected %d trace entries, got %d", got.Iterations, len(entries))
	}

	if _, err := os.Stat(filepath.Join(resultStore.ResultDir(job.ID), "plot.png")); err != nil {
		t.Errorf("Expected plot artifact: %v", err)
	}
}

func TestRunJobBadTactic(t *testing.T) {
	jm := NewJobManager()
	job := jm.CreateJob(JobConfig{NumPoints: 10, ArcRatio: 1, Radius: 10, Tactic: "nope"})

	if err := runJob(context.Background(), jm, nil, job.ID); err == nil {
		t.Fatal("Expected error for unknown tactic")
	}

	got, _ := jm.GetJob(job.ID)
	if got.State != StateFailed {
		t.Errorf("Expected failed state, got %s", got.State)
	}
	if got.Error == "" {
		t.Error("Expected error message on job")
	}
}

func TestRunJobMissingPointsFile(t *testing.T) {
	jm := NewJobManager()
	job := jm.CreateJob(JobConfig{PointsPath: filepath.Join(t.TempDir(), "absent.csv"), Tactic: "radius"})

	if err := runJob(context.Background(), jm, nil, job.ID); err == nil {
		t.Fatal("Expected error for missing points file")
	}

	got, _ := jm.GetJob(job.ID)
	if got.State != StateFailed {
		t.Errorf("Expected failed state, got %s", got.State)
	}
}

func TestRunJobCancelled(t *testing.T) {
	jm := NewJobManager()
	job := jm.CreateJob(JobConfig{NumPoints: 20, ArcRatio: 1, Radius: 10, Tactic: "radius"})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := runJob(ctx, jm, nil, job.ID); err == nil {
		t.Fatal("Expected context error")
	}

	got, _ := jm.GetJob(job.ID)
	if got.State != StateCancelled {
		t.Errorf("Expected cancelled state, got %s", got.State)
	}
}
