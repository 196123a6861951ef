package output

import (
	"context"
	"time"

	"clubvenue/internal/domain/entities"
)

type TopicRepository interface {
	// FindDeadlineExpired returns active topics whose deadline is at or before cutoff.
	FindDeadlineExpired(ctx context.Context, cutoff time.Time) ([]entities.Topic, error)
	// CloseExpired deactivates and closes the topic if it is still active; false when nothing changed.
	CloseExpired(ctx context.Context, id uint) (bool, error)
}
