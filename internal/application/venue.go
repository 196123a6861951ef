package application

import (
	"context"
	"fmt"
	"log"
	"math"
	"strings"
	"time"

	"clubvenue/internal/domain"
	"clubvenue/internal/domain/entities"
	"clubvenue/internal/ports/input"
	"clubvenue/internal/ports/output"
)

var _ input.VenueUseCase = (*VenueService)(nil)

// VenueService answers availability questions and administers the venue catalogue.
type VenueService struct {
	venueRepo output.VenueRepository
	metrics   output.Metrics
}

func NewVenueService(venueRepo output.VenueRepository, metrics output.Metrics) *VenueService {
	if metrics == nil {
		metrics = NopMetrics{}
	}
	return &VenueService{venueRepo: venueRepo, metrics: metrics}
}

// FindAvailable lists venues that can host q.RequiredCapacity people during the window,
// best fit first. A missing or inverted window yields an empty list, not an error.
func (s *VenueService) FindAvailable(ctx context.Context, q input.AvailabilityQuery) ([]entities.Venue, error) {
	if q.RequiredCapacity <= 0 || q.RequiredCapacity > math.MaxInt32 {
		return nil, domain.ErrInvalidCapacity
	}
	window, ok := entities.NewWindow(q.Start, q.End)
	if !ok {
		log.Printf("⚠️ Availability query with an incomplete or inverted window (capacity=%d)", q.RequiredCapacity)
		return []entities.Venue{}, nil
	}
	found, err := s.venueRepo.FindAvailable(ctx, q.RequiredCapacity, window.Start, window.End, q.ExcludeEventID)
	if err != nil {
		return nil, fmt.Errorf("find available venues: %w", err)
	}
	venues := make([]entities.Venue, 0, len(found))
	for _, v := range found {
		if v.Fits(q.RequiredCapacity) {
			venues = append(venues, v)
		}
	}
	entities.SortByFit(venues, q.RequiredCapacity)
	s.metrics.AvailabilityQueried(len(venues))
	return venues, nil
}

// BestFit is the head of FindAvailable, nil when nothing qualifies.
func (s *VenueService) BestFit(ctx context.Context, required int, start, end *time.Time) (*entities.Venue, error) {
	venues, err := s.FindAvailable(ctx, input.AvailabilityQuery{RequiredCapacity: required, Start: start, End: end})
	if err != nil {
		return nil, err
	}
	if len(venues) == 0 {
		return nil, nil
	}
	best := venues[0]
	return &best, nil
}

func (s *VenueService) ListActive(ctx context.Context) ([]entities.Venue, error) {
	return s.venueRepo.ListActive(ctx)
}

func (s *VenueService) GetVenue(ctx context.Context, id uint) (*entities.Venue, error) {
	return s.venueRepo.FindByID(ctx, id)
}

func validateVenueInput(in input.VenueInput) error {
	if strings.TrimSpace(in.Name) == "" {
		return domain.ErrMissingVenueName
	}
	if in.Capacity <= 0 || in.Capacity > math.MaxInt32 {
		return domain.ErrInvalidCapacity
	}
	return nil
}

func (s *VenueService) CreateVenue(ctx context.Context, actor entities.Actor, in input.VenueInput) (*entities.Venue, error) {
	if !CapabilitiesFor(actor).CanManageVenues() {
		return nil, domain.ErrNotAllowed
	}
	if err := validateVenueInput(in); err != nil {
		return nil, err
	}
	venue := &entities.Venue{
		Name:        strings.TrimSpace(in.Name),
		Capacity:    in.Capacity,
		Active:      true,
		Location:    in.Location,
		Facilities:  in.Facilities,
		Description: in.Description,
	}
	if in.Active != nil {
		venue.Active = *in.Active
	}
	if err := s.venueRepo.Create(ctx, venue); err != nil {
		return nil, err
	}
	log.Printf("✅ Venue created: %s (id=%d, capacity=%d)", venue.Name, venue.ID, venue.Capacity)
	return venue, nil
}

func (s *VenueService) UpdateVenue(ctx context.Context, actor entities.Actor, id uint, in input.VenueInput) (*entities.Venue, error) {
	if !CapabilitiesFor(actor).CanManageVenues() {
		return nil, domain.ErrNotAllowed
	}
	if err := validateVenueInput(in); err != nil {
		return nil, err
	}
	venue, err := s.venueRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	venue.Name = strings.TrimSpace(in.Name)
	venue.Capacity = in.Capacity
	venue.Location = in.Location
	venue.Facilities = in.Facilities
	venue.Description = in.Description
	if in.Active != nil {
		venue.Active = *in.Active
	}
	if err := s.venueRepo.Update(ctx, venue); err != nil {
		return nil, err
	}
	return venue, nil
}

// DeactivateVenue soft-deletes a venue; existing bookings keep their reference.
func (s *VenueService) DeactivateVenue(ctx context.Context, actor entities.Actor, id uint) error {
	if !CapabilitiesFor(actor).CanManageVenues() {
		return domain.ErrNotAllowed
	}
	if err := s.venueRepo.Deactivate(ctx, id); err != nil {
		return err
	}
	log.Printf("🗑️ Venue %d deactivated", id)
	return nil
}
