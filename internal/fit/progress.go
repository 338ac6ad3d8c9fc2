package fit

// progressTracker records the score history of the multi-resolution loop and
// decides when refinement should stop.
//
// The loop stops only once at least two scores have been observed, the
// improvement between the two most recent scores has dropped to
// minImprovement or below, and the scan range has shrunk to minScanRange or
// below. The scan range halves unconditionally every iteration, so
// termination is guaranteed regardless of score behavior.
type progressTracker struct {
	minImprovement float64
	minScanRange   float64

	observed int
	last     float64 // score before current
	current  float64 // most recent score
}

func newProgressTracker(minImprovement, minScanRange float64) *progressTracker {
	return &progressTracker{
		minImprovement: minImprovement,
		minScanRange:   minScanRange,
	}
}

// observe records the score of a completed iteration.
func (t *progressTracker) observe(score float64) {
	t.last = t.current
	t.current = score
	t.observed++
}

// done reports whether refinement should stop. nextScanRange is the range
// the next iteration would scan with.
func (t *progressTracker) done(nextScanRange float64) bool {
	if t.observed < 2 {
		return false
	}
	if t.last-t.current > t.minImprovement {
		return false
	}
	return nextScanRange <= t.minScanRange
}
