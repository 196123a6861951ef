package input

import "context"

// SweepReport summarizes one expiry pass.
type SweepReport struct {
	TopicsClosed  int
	EventsClosed  int
	EventsSkipped int
	Failures      int
}

type SweepUseCase interface {
	Sweep(ctx context.Context) (SweepReport, error)
}
