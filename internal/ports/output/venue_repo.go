package output

import (
	"context"
	"time"

	"clubvenue/internal/domain/entities"
)

type VenueRepository interface {
	Create(ctx context.Context, venue *entities.Venue) error
	FindByID(ctx context.Context, id uint) (*entities.Venue, error)
	ListActive(ctx context.Context) ([]entities.Venue, error)
	// FindAvailable returns active venues with capacity >= required and no conflicting booking,
	// ordered by best fit.
	FindAvailable(ctx context.Context, required int, start, end time.Time, excludeEventID *uint) ([]entities.Venue, error)
	Update(ctx context.Context, venue *entities.Venue) error
	Deactivate(ctx context.Context, id uint) error
	UpsertByName(ctx context.Context, venue *entities.Venue) error
}
