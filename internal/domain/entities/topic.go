package entities

import (
	"time"

	"clubvenue/internal/domain"
)

// Topic is a club problem statement that collects ideas until its deadline.
type Topic struct {
	ID        uint
	ClubID    uint
	PostedBy  uint
	Title     string
	Deadline  *time.Time
	Active    bool
	Status    domain.TopicStatus
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (t *Topic) DeadlineState(now time.Time) DeadlineState {
	return DeadlineStateAt(t.Deadline, now)
}
