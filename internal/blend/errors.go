package blend

import "fmt"

// TopologyMismatchError reports buffers that cannot be blended together:
// a target whose flattened length differs from the base, or a weight
// vector whose length differs from the number of targets.
type TopologyMismatchError struct {
	// What is being compared, e.g. "target 3 positions" or "weights".
	What string
	Want int
	Got  int
}

func (e *TopologyMismatchError) Error() string {
	return fmt.Sprintf("topology mismatch: %s has length %d, want %d", e.What, e.Got, e.Want)
}
