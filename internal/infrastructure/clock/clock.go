package clock

import (
	"time"

	"clubvenue/internal/ports/output"
)

var _ output.Clock = System{}

// System reads the wall clock.
type System struct{}

func (System) Now() time.Time { return time.Now() }
