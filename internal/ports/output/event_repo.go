package output

import (
	"context"
	"time"

	"clubvenue/internal/domain"
	"clubvenue/internal/domain/entities"
)

type EventRepository interface {
	Create(ctx context.Context, event *entities.EventProposal) error
	FindByID(ctx context.Context, id uint) (*entities.EventProposal, error)
	Update(ctx context.Context, event *entities.EventProposal) error
	ListByApproval(ctx context.Context, status domain.ApprovalStatus, clubID *uint) ([]entities.EventProposal, error)
	// FindConflicting returns approved, non-terminal bookings of venueID whose buffered window intersects [start, end].
	FindConflicting(ctx context.Context, venueID uint, start, end time.Time, excludeEventID *uint) ([]entities.EventProposal, error)
	// FindDeadlineExpired returns active proposals whose idea-submission deadline is at or before cutoff.
	FindDeadlineExpired(ctx context.Context, cutoff time.Time) ([]entities.EventProposal, error)
	// CloseExpired deactivates and completes the proposal if it is still active; false when nothing changed.
	CloseExpired(ctx context.Context, id uint) (bool, error)
	AppendHistory(ctx context.Context, record *entities.ApprovalRecord) error
	History(ctx context.Context, eventID uint) ([]entities.ApprovalRecord, error)
}
