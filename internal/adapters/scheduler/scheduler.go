package scheduler

import (
	"context"
	"log"
	"time"

	"clubvenue/internal/ports/input"
	"clubvenue/internal/ports/output"
)

const lockKey = "sweep"

// Scheduler runs the expiry sweep on a fixed interval. Each tick first takes
// the shared sweep lock, so only one instance sweeps at a time.
type Scheduler struct {
	sweeper  input.SweepUseCase
	lock     output.SweepLock
	interval time.Duration
}

func New(sweeper input.SweepUseCase, lock output.SweepLock, interval time.Duration) *Scheduler {
	return &Scheduler{sweeper: sweeper, lock: lock, interval: interval}
}

// Run sweeps once immediately, then every interval until ctx is done.
func (s *Scheduler) Run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.tick(ctx)
	for {
		select {
		case <-ctx.Done():
			log.Println("🛑 Sweep scheduler stopped.")
			return
		case <-ticker.C:
			s.tick(ctx)
		}
	}
}

// RunOnce performs a single locked sweep. ran is false when another instance holds the lock.
func (s *Scheduler) RunOnce(ctx context.Context) (report input.SweepReport, ran bool, err error) {
	unlock, ok, err := s.lock.TryLock(ctx, lockKey, s.interval)
	if err != nil || !ok {
		return input.SweepReport{}, false, err
	}
	defer unlock()

	report, err = s.sweeper.Sweep(ctx)
	return report, true, err
}

func (s *Scheduler) tick(ctx context.Context) {
	report, ran, err := s.RunOnce(ctx)
	switch {
	case !ran && err != nil:
		log.Printf("⚠️ Sweep lock unavailable: %v", err)
	case !ran:
		log.Println("⏭️ Sweep skipped, another instance holds the lock.")
	case err != nil:
		log.Printf("⚠️ Sweep finished with errors: %v (topics=%d events=%d failures=%d)",
			err, report.TopicsClosed, report.EventsClosed, report.Failures)
	default:
		log.Printf("🧹 Sweep done: topics=%d events=%d skipped=%d",
			report.TopicsClosed, report.EventsClosed, report.EventsSkipped)
	}
}
