package notify

import (
	"context"
	"errors"
	"log"

	"clubvenue/internal/domain/entities"
	"clubvenue/internal/ports/output"
)

var _ output.Notifier = (*Fanout)(nil)

// Fanout stores every notification in the primary inbox and mirrors it to optional channels.
// Only a primary failure is returned; mirror failures are logged.
type Fanout struct {
	primary output.Notifier
	mirrors []output.Notifier
}

func NewFanout(primary output.Notifier, mirrors ...output.Notifier) *Fanout {
	out := &Fanout{primary: primary}
	for _, m := range mirrors {
		if m != nil {
			out.mirrors = append(out.mirrors, m)
		}
	}
	return out
}

func (f *Fanout) Notify(ctx context.Context, n entities.Notification) error {
	var errs []error
	if err := f.primary.Notify(ctx, n); err != nil {
		errs = append(errs, err)
	}
	for _, m := range f.mirrors {
		if err := m.Notify(ctx, n); err != nil {
			log.Printf("⚠️ notification mirror failed for user %d: %v", n.UserID, err)
		}
	}
	return errors.Join(errs...)
}
