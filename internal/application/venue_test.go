package application

import (
	"context"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"clubvenue/internal/domain"
	"clubvenue/internal/domain/entities"
	"clubvenue/internal/ports/input"
)

var day = time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)

func hm(h, m int) *time.Time {
	t := day.Add(time.Duration(h)*time.Hour + time.Duration(m)*time.Minute)
	return &t
}

func catalogue() []entities.Venue {
	return []entities.Venue{
		{ID: 1, Name: "Main Hall", Capacity: 500, Active: true},
		{ID: 2, Name: "Auditorium B", Capacity: 200, Active: true},
		{ID: 3, Name: "Room 101", Capacity: 100, Active: true},
		{ID: 4, Name: "Lab 4", Capacity: 150, Active: true},
		{ID: 5, Name: "Studio", Capacity: 120, Active: true},
		{ID: 6, Name: "Closed Wing", Capacity: 100, Active: false},
		{ID: 7, Name: "Seminar Room", Capacity: 40, Active: true},
	}
}

func bookedEvent(id, venueID uint, start, end *time.Time) entities.EventProposal {
	return entities.EventProposal{
		ID:             id,
		ClubID:         1,
		Title:          "Booked",
		StartAt:        start,
		EndAt:          end,
		VenueID:        &venueID,
		Status:         domain.StatusPublished,
		ApprovalStatus: domain.ApprovalApproved,
		Active:         true,
	}
}

func ids(venues []entities.Venue) []uint {
	out := make([]uint, 0, len(venues))
	for _, v := range venues {
		out = append(out, v.ID)
	}
	return out
}

func TestVenueService_FindAvailable_BestFitOrder(t *testing.T) {
	metrics := newCountingMetrics()
	svc := NewVenueService(newMemVenues(newMemEvents(), catalogue()...), metrics)

	venues, err := svc.FindAvailable(context.Background(), input.AvailabilityQuery{
		RequiredCapacity: 100, Start: hm(10, 0), End: hm(12, 0),
	})

	require.NoError(t, err)
	assert.Equal(t, []uint{3, 5, 4, 2, 1}, ids(venues))
	assert.Equal(t, []int{5}, metrics.queried)
}

func TestVenueService_FindAvailable_BufferBoundary(t *testing.T) {
	events := newMemEvents(bookedEvent(10, 3, hm(10, 0), hm(12, 0)))
	svc := NewVenueService(newMemVenues(events, catalogue()...), nil)
	ctx := context.Background()

	t.Run("inside buffer", func(t *testing.T) {
		venues, err := svc.FindAvailable(ctx, input.AvailabilityQuery{RequiredCapacity: 100, Start: hm(13, 59), End: hm(15, 0)})
		require.NoError(t, err)
		assert.NotContains(t, ids(venues), uint(3))
	})

	t.Run("gap equal to buffer", func(t *testing.T) {
		venues, err := svc.FindAvailable(ctx, input.AvailabilityQuery{RequiredCapacity: 100, Start: hm(14, 0), End: hm(16, 0)})
		require.NoError(t, err)
		assert.Equal(t, uint(3), venues[0].ID)
	})

	t.Run("before the booking", func(t *testing.T) {
		venues, err := svc.FindAvailable(ctx, input.AvailabilityQuery{RequiredCapacity: 100, Start: hm(6, 0), End: hm(8, 0)})
		require.NoError(t, err)
		assert.Contains(t, ids(venues), uint(3))

		venues, err = svc.FindAvailable(ctx, input.AvailabilityQuery{RequiredCapacity: 100, Start: hm(6, 0), End: hm(8, 1)})
		require.NoError(t, err)
		assert.NotContains(t, ids(venues), uint(3))
	})

	t.Run("excluded event does not block itself", func(t *testing.T) {
		venues, err := svc.FindAvailable(ctx, input.AvailabilityQuery{
			RequiredCapacity: 100, Start: hm(10, 0), End: hm(12, 0), ExcludeEventID: ptr(uint(10)),
		})
		require.NoError(t, err)
		assert.Equal(t, uint(3), venues[0].ID)
	})
}

func TestVenueService_FindAvailable_IgnoresReleasedBookings(t *testing.T) {
	cancelled := bookedEvent(10, 3, hm(10, 0), hm(12, 0))
	cancelled.Status = domain.StatusCancelled
	rejected := bookedEvent(11, 3, hm(10, 0), hm(12, 0))
	rejected.ApprovalStatus = domain.ApprovalRejected
	unscheduled := bookedEvent(12, 3, nil, nil)

	svc := NewVenueService(newMemVenues(newMemEvents(cancelled, rejected, unscheduled), catalogue()...), nil)
	venues, err := svc.FindAvailable(context.Background(), input.AvailabilityQuery{RequiredCapacity: 100, Start: hm(10, 0), End: hm(12, 0)})

	require.NoError(t, err)
	assert.Equal(t, uint(3), venues[0].ID)
}

func TestVenueService_FindAvailable_DegenerateInput(t *testing.T) {
	svc := NewVenueService(newMemVenues(newMemEvents(), catalogue()...), nil)
	ctx := context.Background()

	_, err := svc.FindAvailable(ctx, input.AvailabilityQuery{RequiredCapacity: 0, Start: hm(10, 0), End: hm(12, 0)})
	assert.ErrorIs(t, err, domain.ErrInvalidCapacity)

	_, err = svc.FindAvailable(ctx, input.AvailabilityQuery{RequiredCapacity: math.MaxInt32 + 1, Start: hm(10, 0), End: hm(12, 0)})
	assert.ErrorIs(t, err, domain.ErrInvalidCapacity)

	_, err = svc.BestFit(ctx, math.MaxInt32+1, hm(10, 0), hm(12, 0))
	assert.ErrorIs(t, err, domain.ErrInvalidCapacity)

	venues, err := svc.FindAvailable(ctx, input.AvailabilityQuery{RequiredCapacity: 10, Start: hm(12, 0), End: hm(10, 0)})
	require.NoError(t, err)
	assert.Empty(t, venues)

	venues, err = svc.FindAvailable(ctx, input.AvailabilityQuery{RequiredCapacity: 10, Start: hm(12, 0)})
	require.NoError(t, err)
	assert.Empty(t, venues)

	venues, err = svc.FindAvailable(ctx, input.AvailabilityQuery{RequiredCapacity: 1000, Start: hm(10, 0), End: hm(12, 0)})
	require.NoError(t, err)
	assert.Empty(t, venues)
}

func TestVenueService_BestFit(t *testing.T) {
	events := newMemEvents(bookedEvent(10, 3, hm(10, 0), hm(12, 0)))
	svc := NewVenueService(newMemVenues(events, catalogue()...), nil)
	ctx := context.Background()

	best, err := svc.BestFit(ctx, 100, hm(10, 0), hm(12, 0))
	require.NoError(t, err)
	require.NotNil(t, best)
	assert.Equal(t, uint(5), best.ID)

	best, err = svc.BestFit(ctx, 30, hm(10, 0), hm(12, 0))
	require.NoError(t, err)
	assert.Equal(t, uint(7), best.ID)

	best, err = svc.BestFit(ctx, 900, hm(10, 0), hm(12, 0))
	require.NoError(t, err)
	assert.Nil(t, best)
}

func TestVenueService_Admin(t *testing.T) {
	admin := entities.Actor{UserID: 1, Role: domain.RoleSuperAdmin}
	student := entities.Actor{UserID: 9, Role: domain.RoleStudent}
	repo := newMemVenues(nil)
	svc := NewVenueService(repo, nil)
	ctx := context.Background()

	_, err := svc.CreateVenue(ctx, student, input.VenueInput{Name: "Hall", Capacity: 50})
	assert.ErrorIs(t, err, domain.ErrNotAllowed)

	_, err = svc.CreateVenue(ctx, admin, input.VenueInput{Name: "  ", Capacity: 50})
	assert.ErrorIs(t, err, domain.ErrMissingVenueName)

	_, err = svc.CreateVenue(ctx, admin, input.VenueInput{Name: "Hall", Capacity: 0})
	assert.ErrorIs(t, err, domain.ErrInvalidCapacity)

	_, err = svc.CreateVenue(ctx, admin, input.VenueInput{Name: "Hall", Capacity: math.MaxInt32 + 1})
	assert.ErrorIs(t, err, domain.ErrInvalidCapacity)

	created, err := svc.CreateVenue(ctx, admin, input.VenueInput{Name: " Hall ", Capacity: 50, Facilities: "projector"})
	require.NoError(t, err)
	assert.Equal(t, "Hall", created.Name)
	assert.True(t, created.Active)

	_, err = svc.CreateVenue(ctx, admin, input.VenueInput{Name: "Hall", Capacity: 60})
	assert.ErrorIs(t, err, domain.ErrDuplicateVenue)

	updated, err := svc.UpdateVenue(ctx, admin, created.ID, input.VenueInput{Name: "Hall", Capacity: 80})
	require.NoError(t, err)
	assert.Equal(t, 80, updated.Capacity)

	require.NoError(t, svc.DeactivateVenue(ctx, admin, created.ID))
	active, err := svc.ListActive(ctx)
	require.NoError(t, err)
	assert.Empty(t, active)

	got, err := svc.GetVenue(ctx, created.ID)
	require.NoError(t, err)
	assert.False(t, got.Active)

	assert.ErrorIs(t, svc.DeactivateVenue(ctx, student, created.ID), domain.ErrNotAllowed)
}
