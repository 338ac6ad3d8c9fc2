package store

// Store defines the interface for fit result persistence.
// Implementations must be safe for concurrent use.
//
// Error handling conventions:
//   - Return nil error on success
//   - Return ErrNotFound if the result doesn't exist (for Load/Delete)
//   - Wrap underlying errors with context using fmt.Errorf("context: %w", err)
type Store interface {
	// SaveResult atomically saves a fit result. If a result already exists
	// for this id, it is overwritten.
	SaveResult(id string, result *Result) error

	// LoadResult retrieves the result for the given id.
	// Returns ErrNotFound if no result exists.
	LoadResult(id string) (*Result, error)

	// ListResults returns metadata for all persisted results.
	// The returned slice may be empty.
	ListResults() ([]ResultInfo, error)

	// DeleteResult removes the result and all associated artifacts
	// (result.json, plot.png, trace.jsonl).
	// Returns ErrNotFound if no result exists for this id.
	DeleteResult(id string) error
}

// ErrNotFound is returned when a requested result does not exist.
// Use errors.Is(err, ErrNotFound) to check for this error.
var ErrNotFound = &NotFoundError{}

// NotFoundError represents a missing result error.
type NotFoundError struct {
	ID string
}

func (e *NotFoundError) Error() string {
	if e.ID != "" {
		return "result not found: " + e.ID
	}
	return "result not found"
}

func (e *NotFoundError) Is(target error) bool {
	_, ok := target.(*NotFoundError)
	return ok
}
