package output

import "time"

// Metrics records workflow outcomes. Implementations must be safe for concurrent use.
type Metrics interface {
	AvailabilityQueried(found int)
	ApprovalFinished(outcome string)
	SweepItem(kind, result string)
	SweepFinished(d time.Duration)
}
