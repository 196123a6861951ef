package input

import (
	"context"
	"io"
	"time"

	"clubvenue/internal/domain"
	"clubvenue/internal/domain/entities"
)

type CreateProposalInput struct {
	ClubID                 uint
	Title                  string
	Description            string
	IdeaSubmissionDeadline *time.Time
	RegistrationDeadline   *time.Time
	MaxParticipants        *int
}

// Poster is an uploaded poster image.
type Poster struct {
	Filename string
	Content  io.Reader
}

// ScheduleInput carries the fields shared by approval and resubmission.
// Date-times are ISO-8601 local date-times with minute precision.
type ScheduleInput struct {
	EventName       string
	EventType       string
	StartDateTime   string
	EndDateTime     string
	Location        string
	MaxParticipants *int
	RegistrationFee string
	Description     string
	SlidesURL       string
	VenueID         *uint
}

type ApproveInput struct {
	ProposalID uint
	ScheduleInput
	Poster *Poster
}

type ResubmitInput struct {
	ProposalID uint
	ScheduleInput
}

// ProposalView is a proposal as observed at read time.
type ProposalView struct {
	entities.EventProposal
	Stage         entities.Stage
	Observed      domain.EventStatus
	DeadlineState entities.DeadlineState
}

type ApprovalUseCase interface {
	CreateProposal(ctx context.Context, actor entities.Actor, in CreateProposalInput) (*entities.EventProposal, error)
	Submit(ctx context.Context, actor entities.Actor, proposalID uint, desiredVenueID *uint) (*entities.EventProposal, error)
	Approve(ctx context.Context, actor entities.Actor, in ApproveInput) (*entities.EventProposal, error)
	Reject(ctx context.Context, actor entities.Actor, proposalID uint, reason string) (*entities.EventProposal, error)
	Resubmit(ctx context.Context, actor entities.Actor, in ResubmitInput) (*entities.EventProposal, error)
	Cancel(ctx context.Context, actor entities.Actor, proposalID uint, reason string) (*entities.EventProposal, error)
	Get(ctx context.Context, actor entities.Actor, proposalID uint) (*ProposalView, error)
	ListPending(ctx context.Context, actor entities.Actor) ([]entities.EventProposal, error)
	ListRejected(ctx context.Context, actor entities.Actor, clubID *uint) ([]entities.EventProposal, error)
	History(ctx context.Context, actor entities.Actor, proposalID uint) ([]entities.ApprovalRecord, error)
}

// ActorResolver turns an authenticated user id into an Actor with its role.
type ActorResolver interface {
	ResolveActor(ctx context.Context, userID uint) (entities.Actor, error)
}
