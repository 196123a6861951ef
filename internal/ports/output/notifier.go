package output

import (
	"context"

	"clubvenue/internal/domain/entities"
)

// Notifier delivers a notification. Callers treat it as fire-and-forget.
type Notifier interface {
	Notify(ctx context.Context, n entities.Notification) error
}
