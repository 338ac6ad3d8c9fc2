package store

import "time"

// JobConfig holds the configuration of a fit job. It lives here rather than
// in the server package so both the CLI and the server can persist it
// without an import cycle.
type JobConfig struct {
	// PointsPath is a CSV point file to fit. When empty, a point set is
	// generated from the fields below.
	PointsPath string `json:"pointsPath,omitempty"`

	NumPoints   int     `json:"numPoints,omitempty"`
	ArcRatio    float64 `json:"arcRatio,omitempty"`
	JitterRatio float64 `json:"jitterRatio,omitempty"`
	Radius      float64 `json:"radius,omitempty"`
	Seed        int64   `json:"seed,omitempty"`

	Tactic string `json:"tactic"`
	Solver string `json:"solver,omitempty"` // grid (default) or mayfly
}

// Result is a completed fit: the estimated center, its residual score, and
// enough context to reproduce the run. Serialized to result.json.
type Result struct {
	ID        string    `json:"id"`
	Config    JobConfig `json:"config"`
	CenterX   float64   `json:"centerX"`
	CenterY   float64   `json:"centerY"`
	Score     float64   `json:"score"`
	AvgRadius float64   `json:"avgRadius"`
	NumInput  int       `json:"numInput"` // points actually fitted
	Iterations int      `json:"iterations"`
	ElapsedMS int64     `json:"elapsedMs"`
	CreatedAt time.Time `json:"createdAt"`
}

// ResultInfo is the listing view of a persisted result.
type ResultInfo struct {
	ID        string    `json:"id"`
	Tactic    string    `json:"tactic"`
	Score     float64   `json:"score"`
	CreatedAt time.Time `json:"createdAt"`
}
