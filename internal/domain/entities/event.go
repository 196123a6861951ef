package entities

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"clubvenue/internal/domain"
)

// Stage is the single observable state of a proposal, derived from the stored
// (Status, ApprovalStatus) pair plus the clock for the live states.
type Stage string

const (
	StageDraft              Stage = "DRAFT"
	StagePendingApproval    Stage = "PENDING_APPROVAL"
	StageRejected           Stage = "REJECTED"
	StagePublished          Stage = "PUBLISHED"
	StageRegistrationClosed Stage = "REGISTRATION_CLOSED"
	StageOngoing            Stage = "ONGOING"
	StageCompleted          Stage = "COMPLETED"
	StageCancelled          Stage = "CANCELLED"
)

// EventProposal is a club event moving through the approval workflow.
type EventProposal struct {
	ID                     uint
	ClubID                 uint
	OrganizerID            uint
	Title                  string
	Description            string
	Type                   domain.EventType
	Location               string
	StartAt                *time.Time
	EndAt                  *time.Time
	RegistrationDeadline   *time.Time
	IdeaSubmissionDeadline *time.Time
	VenueID                *uint // set only once approved
	RequestedVenueID       *uint // organizer preference, never a booking
	MaxParticipants        *int
	RegistrationFee        decimal.Decimal
	PosterURL              string
	SlidesURL              string
	Status                 domain.EventStatus
	ApprovalStatus         domain.ApprovalStatus
	RejectionReason        string
	Active                 bool
	CreatedAt              time.Time
	UpdatedAt              time.Time
}

// ProposalDetails are the fields an approver or a resubmitting organizer supplies.
type ProposalDetails struct {
	Title           string
	Type            domain.EventType
	Window          Window
	Location        string
	Description     string
	MaxParticipants *int
	RegistrationFee decimal.Decimal
	SlidesURL       string
}

// ApprovalRecord is one entry of a proposal's approval history.
type ApprovalRecord struct {
	ID      uint
	EventID uint
	Action  string
	ActorID uint
	Reason  string
	At      time.Time
}

func (e *EventProposal) baseStage() Stage {
	switch {
	case e.Status == domain.StatusCancelled:
		return StageCancelled
	case e.Status == domain.StatusCompleted:
		return StageCompleted
	case e.Status == domain.StatusPublished,
		e.Status == domain.StatusOngoing,
		e.Status == domain.StatusRegistrationClosed:
		return StagePublished
	case e.ApprovalStatus == domain.ApprovalRejected:
		return StageRejected
	case e.ApprovalStatus == domain.ApprovalPending:
		return StagePendingApproval
	default:
		return StageDraft
	}
}

// Stage projects the stored pair onto a single stage as observed at now.
func (e *EventProposal) Stage(now time.Time) Stage {
	stage := e.baseStage()
	if stage != StagePublished {
		return stage
	}
	if w, ok := e.Schedule(); ok {
		if w.Contains(now) {
			return StageOngoing
		}
		if e.RegistrationDeadline != nil && now.After(*e.RegistrationDeadline) && now.Before(w.Start) {
			return StageRegistrationClosed
		}
	}
	return StagePublished
}

// ObservedStatus is the status shown to readers, with ONGOING and REGISTRATION_CLOSED derived.
func (e *EventProposal) ObservedStatus(now time.Time) domain.EventStatus {
	switch e.Stage(now) {
	case StageOngoing:
		return domain.StatusOngoing
	case StageRegistrationClosed:
		return domain.StatusRegistrationClosed
	}
	return e.Status
}

// Schedule returns the event window when both bounds are set and consistent.
func (e *EventProposal) Schedule() (Window, bool) {
	return NewWindow(e.StartAt, e.EndAt)
}

// Booking returns the venue and window this proposal holds, if it holds one.
func (e *EventProposal) Booking() (uint, Window, bool) {
	if e.VenueID == nil || e.ApprovalStatus != domain.ApprovalApproved || e.Status.Terminal() {
		return 0, Window{}, false
	}
	w, ok := e.Schedule()
	if !ok {
		return 0, Window{}, false
	}
	return *e.VenueID, w, true
}

// BlocksVenue reports whether this proposal's booking prevents venueID from hosting w.
// Proposals without a complete schedule never block.
func (e *EventProposal) BlocksVenue(venueID uint, w Window, excludeID *uint) bool {
	if excludeID != nil && *excludeID == e.ID {
		return false
	}
	bookedVenue, booked, ok := e.Booking()
	if !ok || bookedVenue != venueID {
		return false
	}
	return w.Conflicts(booked)
}

// DeadlineState is the idea-submission visibility of the proposal.
func (e *EventProposal) DeadlineState(now time.Time) DeadlineState {
	return DeadlineStateAt(e.IdeaSubmissionDeadline, now)
}

// SweepExempt reports whether the deadline sweep must leave this proposal alone.
func (e *EventProposal) SweepExempt() bool {
	return e.Status == domain.StatusPublished ||
		e.ApprovalStatus == domain.ApprovalApproved ||
		e.Status.Terminal()
}

func (e *EventProposal) guard(expected Stage) error {
	if e.Status.Terminal() {
		return domain.ErrProposalTerminal
	}
	if e.baseStage() != expected {
		return domain.ErrInvalidTransition
	}
	return nil
}

// Submit places a draft in the approval queue.
func (e *EventProposal) Submit(requestedVenueID *uint) error {
	if err := e.guard(StageDraft); err != nil {
		return err
	}
	e.Status = domain.StatusSubmitted
	e.ApprovalStatus = domain.ApprovalPending
	e.RequestedVenueID = requestedVenueID
	return nil
}

// CanApprove reports whether Approve would accept the current state.
func (e *EventProposal) CanApprove() error {
	return e.guard(StagePendingApproval)
}

// Approve binds the schedule and the optional venue and publishes the event.
func (e *EventProposal) Approve(d ProposalDetails, venueID *uint, posterURL string) error {
	if err := e.CanApprove(); err != nil {
		return err
	}
	e.apply(d)
	e.VenueID = venueID
	if posterURL != "" {
		e.PosterURL = posterURL
	}
	e.Status = domain.StatusPublished
	e.ApprovalStatus = domain.ApprovalApproved
	e.RejectionReason = ""
	return nil
}

// Reject keeps the proposal submitted and records why it was turned down.
func (e *EventProposal) Reject(reason string) error {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return domain.ErrMissingReason
	}
	if err := e.guard(StagePendingApproval); err != nil {
		return err
	}
	e.ApprovalStatus = domain.ApprovalRejected
	e.RejectionReason = reason
	return nil
}

// CanResubmit reports whether Resubmit would accept the current state.
func (e *EventProposal) CanResubmit() error {
	return e.guard(StageRejected)
}

// Resubmit returns a rejected proposal to the queue with updated details.
// The live rejection reason is cleared; it stays in the approval history.
func (e *EventProposal) Resubmit(d ProposalDetails, requestedVenueID *uint) error {
	if err := e.CanResubmit(); err != nil {
		return err
	}
	e.apply(d)
	e.RequestedVenueID = requestedVenueID
	e.VenueID = nil
	e.Status = domain.StatusSubmitted
	e.ApprovalStatus = domain.ApprovalPending
	e.RejectionReason = ""
	return nil
}

// Cancel moves any non-terminal proposal to CANCELLED and deactivates it.
func (e *EventProposal) Cancel() error {
	if e.Status.Terminal() {
		return domain.ErrProposalTerminal
	}
	e.Status = domain.StatusCancelled
	e.Active = false
	return nil
}

func (e *EventProposal) apply(d ProposalDetails) {
	start, end := d.Window.Start, d.Window.End
	e.Title = d.Title
	e.Type = d.Type
	e.StartAt = &start
	e.EndAt = &end
	e.Location = d.Location
	e.Description = d.Description
	e.MaxParticipants = d.MaxParticipants
	e.RegistrationFee = d.RegistrationFee
	if d.SlidesURL != "" {
		e.SlidesURL = d.SlidesURL
	}
}
