package fit

import (
	"fmt"
	"strings"
)

// Tactic selects the residual used to judge how well a candidate center fits
// the observed points.
type Tactic int

const (
	// TacticAngle compares each segment's normal direction with the
	// direction from the segment midpoint to the candidate center.
	TacticAngle Tactic = iota

	// TacticRadius compares each segment midpoint's distance to the
	// candidate center with the average point-to-center distance.
	TacticRadius
)

func (t Tactic) String() string {
	switch t {
	case TacticAngle:
		return "angle"
	case TacticRadius:
		return "radius"
	default:
		return fmt.Sprintf("Tactic(%d)", int(t))
	}
}

// ParseTactic converts a tactic name to its Tactic value. Matching is
// case-insensitive. Intended for command surfaces; core code passes Tactic
// values directly.
func ParseTactic(name string) (Tactic, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "angle":
		return TacticAngle, nil
	case "radius":
		return TacticRadius, nil
	default:
		return 0, fmt.Errorf("unknown tactic %q (want angle or radius)", name)
	}
}
