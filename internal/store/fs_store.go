package store

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
)

// FSStore implements the Store interface using filesystem-based persistence.
// Results are stored in a directory structure: <baseDir>/results/<id>/
//
// Thread-safety: atomic file operations (temp file + rename) are used, so no
// locks are required and multiple goroutines can call methods concurrently.
type FSStore struct {
	baseDir string
}

// NewFSStore creates a new filesystem-based store.
// The baseDir will be created if it doesn't exist.
func NewFSStore(baseDir string) (*FSStore, error) {
	if err := os.MkdirAll(baseDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create base directory: %w", err)
	}

	return &FSStore{baseDir: baseDir}, nil
}

// BaseDir returns the root directory the store writes under.
func (fs *FSStore) BaseDir() string {
	return fs.baseDir
}

// ResultDir returns the directory holding a result and its artifacts
// (plot.png, trace.jsonl).
func (fs *FSStore) ResultDir(id string) string {
	return filepath.Join(fs.baseDir, "results", id)
}

func (fs *FSStore) resultPath(id string) string {
	return filepath.Join(fs.ResultDir(id), "result.json")
}

// SaveResult atomically saves a result using the temp file + rename pattern.
func (fs *FSStore) SaveResult(id string, result *Result) error {
	if id == "" {
		return fmt.Errorf("id cannot be empty")
	}
	if result == nil {
		return fmt.Errorf("result cannot be nil")
	}

	dir := fs.ResultDir(id)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create result directory: %w", err)
	}

	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize result: %w", err)
	}

	tempPath := fs.resultPath(id) + ".tmp"
	if err := os.WriteFile(tempPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write temp result file: %w", err)
	}

	finalPath := fs.resultPath(id)
	if err := os.Rename(tempPath, finalPath); err != nil {
		os.Remove(tempPath)
		return fmt.Errorf("failed to rename result file: %w", err)
	}

	slog.Debug("result saved", "id", id, "path", finalPath)
	return nil
}

// LoadResult retrieves the result for the given id.
func (fs *FSStore) LoadResult(id string) (*Result, error) {
	if id == "" {
		return nil, fmt.Errorf("id cannot be empty")
	}

	data, err := os.ReadFile(fs.resultPath(id))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, &NotFoundError{ID: id}
		}
		return nil, fmt.Errorf("failed to read result file: %w", err)
	}

	var result Result
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, fmt.Errorf("failed to deserialize result: %w", err)
	}

	return &result, nil
}

// ListResults scans the results directory and returns metadata for every
// readable result, newest first.
func (fs *FSStore) ListResults() ([]ResultInfo, error) {
	resultsDir := filepath.Join(fs.baseDir, "results")

	entries, err := os.ReadDir(resultsDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []ResultInfo{}, nil
		}
		return nil, fmt.Errorf("failed to scan results directory: %w", err)
	}

	infos := make([]ResultInfo, 0, len(entries))
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		result, err := fs.LoadResult(entry.Name())
		if err != nil {
			// Skip corrupt or partial entries rather than failing the
			// whole listing.
			slog.Warn("skipping unreadable result", "id", entry.Name(), "error", err)
			continue
		}

		infos = append(infos, ResultInfo{
			ID:        result.ID,
			Tactic:    result.Config.Tactic,
			Score:     result.Score,
			CreatedAt: result.CreatedAt,
		})
	}

	sort.Slice(infos, func(i, j int) bool {
		return infos[i].CreatedAt.After(infos[j].CreatedAt)
	})

	return infos, nil
}

// DeleteResult removes the result directory and everything in it.
func (fs *FSStore) DeleteResult(id string) error {
	if id == "" {
		return fmt.Errorf("id cannot be empty")
	}

	dir := fs.ResultDir(id)
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		return &NotFoundError{ID: id}
	}

	if err := os.RemoveAll(dir); err != nil {
		return fmt.Errorf("failed to delete result: %w", err)
	}

	slog.Debug("result deleted", "id", id)
	return nil
}
