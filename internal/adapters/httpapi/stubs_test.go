package httpapi

import (
	"context"
	"io"
	"time"

	"clubvenue/internal/domain"
	"clubvenue/internal/domain/entities"
	"clubvenue/internal/ports/input"
)

type stubActors map[uint]domain.Role

func (s stubActors) ResolveActor(_ context.Context, id uint) (entities.Actor, error) {
	role, ok := s[id]
	if !ok {
		return entities.Actor{}, domain.ErrUserNotFound
	}
	return entities.Actor{UserID: id, Role: role}, nil
}

type stubVenues struct {
	input.VenueUseCase
	available []entities.Venue
	best      *entities.Venue
	lastQuery input.AvailabilityQuery
}

func (s *stubVenues) FindAvailable(_ context.Context, q input.AvailabilityQuery) ([]entities.Venue, error) {
	s.lastQuery = q
	if q.RequiredCapacity <= 0 {
		return nil, domain.ErrInvalidCapacity
	}
	return s.available, nil
}

func (s *stubVenues) BestFit(_ context.Context, required int, _, _ *time.Time) (*entities.Venue, error) {
	if required <= 0 {
		return nil, domain.ErrInvalidCapacity
	}
	return s.best, nil
}

func (s *stubVenues) GetVenue(_ context.Context, id uint) (*entities.Venue, error) {
	for _, v := range s.available {
		if v.ID == id {
			return &v, nil
		}
	}
	return nil, domain.ErrVenueNotFound
}

type stubApprovals struct {
	input.ApprovalUseCase
	approveErr   error
	approved     input.ApproveInput
	posterBody   string
	rejectReason string
	viewer       entities.Actor
}

func (s *stubApprovals) Approve(_ context.Context, actor entities.Actor, in input.ApproveInput) (*entities.EventProposal, error) {
	s.approved = in
	if in.Poster != nil {
		b, _ := io.ReadAll(in.Poster.Content)
		s.posterBody = string(b)
	}
	if s.approveErr != nil {
		return nil, s.approveErr
	}
	venue := uint(3)
	return &entities.EventProposal{
		ID:             in.ProposalID,
		Title:          in.EventName,
		VenueID:        &venue,
		Status:         domain.StatusPublished,
		ApprovalStatus: domain.ApprovalApproved,
		Active:         true,
	}, nil
}

func (s *stubApprovals) Reject(_ context.Context, _ entities.Actor, id uint, reason string) (*entities.EventProposal, error) {
	if reason == "" {
		return nil, domain.ErrMissingReason
	}
	s.rejectReason = reason
	return &entities.EventProposal{ID: id, RejectionReason: reason, ApprovalStatus: domain.ApprovalRejected}, nil
}

func (s *stubApprovals) Get(_ context.Context, actor entities.Actor, id uint) (*input.ProposalView, error) {
	s.viewer = actor
	if id != 7 {
		return nil, domain.ErrProposalNotFound
	}
	return &input.ProposalView{
		EventProposal: entities.EventProposal{ID: 7, Status: domain.StatusPublished, ApprovalStatus: domain.ApprovalApproved},
		Stage:         entities.StageOngoing,
		Observed:      domain.StatusOngoing,
		DeadlineState: entities.DeadlineVisible,
	}, nil
}

func (s *stubApprovals) ListPending(_ context.Context, actor entities.Actor) ([]entities.EventProposal, error) {
	if actor.Role != domain.RoleSuperAdmin {
		return nil, domain.ErrNotAllowed
	}
	return []entities.EventProposal{{ID: 7, Status: domain.StatusSubmitted, ApprovalStatus: domain.ApprovalPending}}, nil
}

type stubSweeper struct {
	calls int
	err   error
}

func (s *stubSweeper) RunOnce(context.Context) (input.SweepReport, bool, error) {
	s.calls++
	if s.err != nil {
		return input.SweepReport{}, true, s.err
	}
	return input.SweepReport{TopicsClosed: 1, EventsClosed: 2}, true, nil
}

type stubInbox struct{}

func (stubInbox) ListForUser(_ context.Context, userID uint, limit int) ([]entities.Notification, error) {
	return []entities.Notification{{ID: 1, UserID: userID, Title: "Event approved", Kind: "event_approved"}}, nil
}
