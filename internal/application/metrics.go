package application

import "time"

// NopMetrics discards every observation.
type NopMetrics struct{}

func (NopMetrics) AvailabilityQueried(int)     {}
func (NopMetrics) ApprovalFinished(string)     {}
func (NopMetrics) SweepItem(string, string)    {}
func (NopMetrics) SweepFinished(time.Duration) {}
