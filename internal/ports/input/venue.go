package input

import (
	"context"
	"time"

	"clubvenue/internal/domain/entities"
)

// AvailabilityQuery asks for venues able to host RequiredCapacity people during [Start, End].
type AvailabilityQuery struct {
	RequiredCapacity int
	Start            *time.Time
	End              *time.Time
	ExcludeEventID   *uint
}

type VenueInput struct {
	Name        string
	Capacity    int
	Location    string
	Facilities  string
	Description string
	Active      *bool
}

type VenueUseCase interface {
	FindAvailable(ctx context.Context, q AvailabilityQuery) ([]entities.Venue, error)
	BestFit(ctx context.Context, required int, start, end *time.Time) (*entities.Venue, error)
	ListActive(ctx context.Context) ([]entities.Venue, error)
	GetVenue(ctx context.Context, id uint) (*entities.Venue, error)
	CreateVenue(ctx context.Context, actor entities.Actor, in VenueInput) (*entities.Venue, error)
	UpdateVenue(ctx context.Context, actor entities.Actor, id uint, in VenueInput) (*entities.Venue, error)
	DeactivateVenue(ctx context.Context, actor entities.Actor, id uint) error
}
