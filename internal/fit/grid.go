package fit

import (
	"fmt"
	"sync"

	"github.com/cwbudde/arcfit/internal/geom"
)

// FitResult is the outcome of a search: the best candidate center and its
// residual score.
type FitResult struct {
	Center geom.Point `json:"center"`
	Score  float64    `json:"score"`
}

// FitAt performs one resolution level of exhaustive search. Candidate
// centers lie on a grid around hint: x and y range independently from
// hint-scanRange up to but excluding hint+scanRange in steps of scanRange/2,
// giving a 4x4 grid of 16 candidates. The far boundary is deliberately
// excluded; the iterative Fit loop re-centers on the winner, which
// compensates for the asymmetry.
//
// Candidates are scored concurrently and reduced in enumeration order
// (increasing x, then increasing y) with a strict less-than comparison, so
// ties keep the first candidate and the result is deterministic.
func FitAt(hint geom.Point, scanRange float64, points []geom.Point, tactic Tactic) (FitResult, error) {
	if scanRange <= 0 {
		return FitResult{}, fmt.Errorf("fit at: scan range must be positive, got %g", scanRange)
	}
	if err := validatePoints(points); err != nil {
		return FitResult{}, err
	}

	step := scanRange / 2
	var candidates []geom.Point
	for x := hint.X - scanRange; x < hint.X+scanRange; x += step {
		for y := hint.Y - scanRange; y < hint.Y+scanRange; y += step {
			candidates = append(candidates, geom.Pt(x, y))
		}
	}

	scores := make([]float64, len(candidates))
	errs := make([]error, len(candidates))

	var wg sync.WaitGroup
	for i, c := range candidates {
		wg.Add(1)
		go func() {
			defer wg.Done()
			scores[i], errs[i] = Score(tactic, c, points)
		}()
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return FitResult{}, err
		}
	}

	best := FitResult{Center: candidates[0], Score: scores[0]}
	for i := 1; i < len(candidates); i++ {
		if scores[i] < best.Score {
			best = FitResult{Center: candidates[i], Score: scores[i]}
		}
	}

	return best, nil
}
