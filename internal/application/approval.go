package application

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"clubvenue/internal/domain"
	"clubvenue/internal/domain/entities"
	"clubvenue/internal/ports/input"
	"clubvenue/internal/ports/output"
	"clubvenue/pkg/datetime"
)

var _ input.ApprovalUseCase = (*ApprovalService)(nil)

// BestFitSelector picks the tightest available venue for a head count.
type BestFitSelector interface {
	BestFit(ctx context.Context, required int, start, end *time.Time) (*entities.Venue, error)
}

// ApprovalDeps groups the collaborators of ApprovalService.
type ApprovalDeps struct {
	Events     output.EventRepository
	Venues     output.VenueRepository
	Clubs      output.ClubDirectory
	Locker     output.VenueLocker
	Selector   BestFitSelector
	Posters    output.PosterStore
	Notifier   output.Notifier
	Translator output.Translator
	Clock      output.Clock
	Metrics    output.Metrics
	Location   *time.Location
	Locale     string
}

// ApprovalService drives event proposals through submission, review and publication.
type ApprovalService struct {
	ApprovalDeps
}

func NewApprovalService(deps ApprovalDeps) *ApprovalService {
	if deps.Metrics == nil {
		deps.Metrics = NopMetrics{}
	}
	if deps.Location == nil {
		deps.Location = time.UTC
	}
	if deps.Locale == "" {
		deps.Locale = "en"
	}
	return &ApprovalService{ApprovalDeps: deps}
}

func (s *ApprovalService) CreateProposal(ctx context.Context, actor entities.Actor, in input.CreateProposalInput) (*entities.EventProposal, error) {
	club, err := s.Clubs.FindClub(ctx, in.ClubID)
	if err != nil {
		return nil, err
	}
	if !CapabilitiesFor(actor).CanCreateProposal(club) {
		return nil, domain.ErrNotAllowed
	}
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return nil, domain.ErrMissingTitle
	}
	if in.MaxParticipants != nil && *in.MaxParticipants <= 0 {
		return nil, domain.ErrInvalidCapacity
	}

	proposal := &entities.EventProposal{
		ClubID:                 club.ID,
		OrganizerID:            actor.UserID,
		Title:                  title,
		Description:            in.Description,
		IdeaSubmissionDeadline: in.IdeaSubmissionDeadline,
		RegistrationDeadline:   in.RegistrationDeadline,
		MaxParticipants:        in.MaxParticipants,
		RegistrationFee:        decimal.Zero,
		Status:                 domain.StatusDraft,
		ApprovalStatus:         domain.ApprovalNone,
		Active:                 true,
	}
	if err := s.Events.Create(ctx, proposal); err != nil {
		return nil, err
	}
	log.Printf("✅ Proposal %d created for club %d by user %d", proposal.ID, club.ID, actor.UserID)
	return proposal, nil
}

func (s *ApprovalService) Submit(ctx context.Context, actor entities.Actor, proposalID uint, desiredVenueID *uint) (*entities.EventProposal, error) {
	proposal, club, err := s.loadWithClub(ctx, proposalID)
	if err != nil {
		return nil, err
	}
	if !CapabilitiesFor(actor).CanEditProposal(proposal, club) {
		return nil, domain.ErrNotAllowed
	}
	if err := s.checkRequestedVenue(ctx, desiredVenueID); err != nil {
		return nil, err
	}

	var submitted *entities.EventProposal
	err = s.Locker.WithinTx(ctx, func(ctx context.Context) error {
		current, err := s.Events.FindByID(ctx, proposalID)
		if err != nil {
			return err
		}
		if err := current.Submit(desiredVenueID); err != nil {
			return err
		}
		if err := s.persist(ctx, current, domain.ActionSubmitted, actor, ""); err != nil {
			return err
		}
		submitted = current
		return nil
	})
	if err != nil {
		return nil, err
	}
	log.Printf("📨 Proposal %d submitted for approval", proposalID)
	return submitted, nil
}

// Approve publishes a pending proposal. Venue resolution order: the explicit venue,
// the organizer's requested venue, then a best-fit pick when a head count is known.
// The booking is checked and written under the venue lock.
func (s *ApprovalService) Approve(ctx context.Context, actor entities.Actor, in input.ApproveInput) (*entities.EventProposal, error) {
	approved, err := s.approve(ctx, actor, in)
	switch {
	case err == nil:
		s.Metrics.ApprovalFinished("approved")
	case domain.KindOf(err) == domain.KindConflict:
		s.Metrics.ApprovalFinished("conflict")
	default:
		s.Metrics.ApprovalFinished("failed")
	}
	return approved, err
}

func (s *ApprovalService) approve(ctx context.Context, actor entities.Actor, in input.ApproveInput) (*entities.EventProposal, error) {
	proposal, err := s.Events.FindByID(ctx, in.ProposalID)
	if err != nil {
		return nil, err
	}
	caps := CapabilitiesFor(actor)
	if !caps.CanApprove(proposal) {
		return nil, domain.ErrNotAllowed
	}
	if err := proposal.CanApprove(); err != nil {
		return nil, err
	}
	if strings.TrimSpace(in.EventName) == "" {
		return nil, domain.ErrMissingEventName
	}
	club, err := s.Clubs.FindClub(ctx, proposal.ClubID)
	if err != nil {
		return nil, err
	}
	details, err := s.parseDetails(in.ScheduleInput)
	if err != nil {
		return nil, err
	}
	if in.VenueID != nil && !caps.CanAssignVenue() {
		return nil, domain.ErrNotAllowed
	}
	venueID, err := s.resolveVenue(ctx, proposal, in.VenueID, details)
	if err != nil {
		return nil, err
	}

	posterURL := s.uploadPoster(ctx, in.ProposalID, in.Poster)

	var published *entities.EventProposal
	err = s.withVenue(ctx, venueID, func(ctx context.Context) error {
		current, err := s.Events.FindByID(ctx, in.ProposalID)
		if err != nil {
			return err
		}
		if err := current.CanApprove(); err != nil {
			return err
		}
		if venueID != nil {
			if err := s.checkBooking(ctx, *venueID, current.ID, details); err != nil {
				return err
			}
		}
		if err := current.Approve(details, venueID, posterURL); err != nil {
			return err
		}
		if err := s.persist(ctx, current, domain.ActionApproved, actor, ""); err != nil {
			return err
		}
		published = current
		return nil
	})
	if err != nil {
		if domain.KindOf(err) == domain.KindConflict {
			log.Printf("⚠️ Approval of proposal %d lost the venue: %v", in.ProposalID, err)
		}
		s.discardPoster(ctx, in.ProposalID, posterURL)
		return nil, err
	}

	log.Printf("✅ Proposal %d approved and published (venue=%s)", published.ID, venueLabel(published.VenueID))
	s.notify(ctx, entities.Notification{
		UserID:            club.AdminUserID,
		Title:             s.Translator.T(s.Locale, "notification.event_approved.title", nil),
		Message:           s.Translator.T(s.Locale, "notification.event_approved.message", map[string]any{"Title": published.Title}),
		Kind:              domain.NotificationEventAnnouncement,
		RelatedEntityID:   published.ID,
		RelatedEntityType: domain.EntityEvent,
	})
	return published, nil
}

func (s *ApprovalService) Reject(ctx context.Context, actor entities.Actor, proposalID uint, reason string) (*entities.EventProposal, error) {
	proposal, err := s.Events.FindByID(ctx, proposalID)
	if err != nil {
		return nil, err
	}
	if !CapabilitiesFor(actor).CanApprove(proposal) {
		return nil, domain.ErrNotAllowed
	}
	if strings.TrimSpace(reason) == "" {
		return nil, domain.ErrMissingReason
	}

	var rejected *entities.EventProposal
	err = s.Locker.WithinTx(ctx, func(ctx context.Context) error {
		current, err := s.Events.FindByID(ctx, proposalID)
		if err != nil {
			return err
		}
		if err := current.Reject(reason); err != nil {
			return err
		}
		if err := s.persist(ctx, current, domain.ActionRejected, actor, current.RejectionReason); err != nil {
			return err
		}
		rejected = current
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.Metrics.ApprovalFinished("rejected")

	log.Printf("❌ Proposal %d rejected: %s", proposalID, rejected.RejectionReason)
	s.notify(ctx, entities.Notification{
		UserID: rejected.OrganizerID,
		Title:  s.Translator.T(s.Locale, "notification.event_rejected.title", nil),
		Message: s.Translator.T(s.Locale, "notification.event_rejected.message", map[string]any{
			"Title":  rejected.Title,
			"Reason": rejected.RejectionReason,
		}),
		Kind:              domain.NotificationSystem,
		RelatedEntityID:   rejected.ID,
		RelatedEntityType: domain.EntityEvent,
	})
	return rejected, nil
}

// Resubmit puts a rejected proposal back in the queue under the same id.
func (s *ApprovalService) Resubmit(ctx context.Context, actor entities.Actor, in input.ResubmitInput) (*entities.EventProposal, error) {
	proposal, club, err := s.loadWithClub(ctx, in.ProposalID)
	if err != nil {
		return nil, err
	}
	if !CapabilitiesFor(actor).CanEditProposal(proposal, club) {
		return nil, domain.ErrNotAllowed
	}
	if err := proposal.CanResubmit(); err != nil {
		return nil, err
	}
	if strings.TrimSpace(in.EventName) == "" {
		return nil, domain.ErrMissingEventName
	}
	details, err := s.parseDetails(in.ScheduleInput)
	if err != nil {
		return nil, err
	}
	if err := s.checkRequestedVenue(ctx, in.VenueID); err != nil {
		return nil, err
	}

	var resubmitted *entities.EventProposal
	err = s.Locker.WithinTx(ctx, func(ctx context.Context) error {
		current, err := s.Events.FindByID(ctx, in.ProposalID)
		if err != nil {
			return err
		}
		if err := current.Resubmit(details, in.VenueID); err != nil {
			return err
		}
		if err := s.persist(ctx, current, domain.ActionResubmitted, actor, ""); err != nil {
			return err
		}
		resubmitted = current
		return nil
	})
	if err != nil {
		return nil, err
	}
	log.Printf("🔁 Proposal %d resubmitted for approval", in.ProposalID)
	return resubmitted, nil
}

func (s *ApprovalService) Cancel(ctx context.Context, actor entities.Actor, proposalID uint, reason string) (*entities.EventProposal, error) {
	proposal, club, err := s.loadWithClub(ctx, proposalID)
	if err != nil {
		return nil, err
	}
	if !CapabilitiesFor(actor).CanCancel(proposal, club) {
		return nil, domain.ErrNotAllowed
	}

	var cancelled *entities.EventProposal
	err = s.withVenue(ctx, proposal.VenueID, func(ctx context.Context) error {
		current, err := s.Events.FindByID(ctx, proposalID)
		if err != nil {
			return err
		}
		if err := current.Cancel(); err != nil {
			return err
		}
		if err := s.persist(ctx, current, domain.ActionCancelled, actor, strings.TrimSpace(reason)); err != nil {
			return err
		}
		cancelled = current
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Printf("🚫 Proposal %d cancelled by user %d", proposalID, actor.UserID)
	s.notify(ctx, entities.Notification{
		UserID:            club.AdminUserID,
		Title:             s.Translator.T(s.Locale, "notification.event_cancelled.title", nil),
		Message:           s.Translator.T(s.Locale, "notification.event_cancelled.message", map[string]any{"Title": cancelled.Title}),
		Kind:              domain.NotificationSystem,
		RelatedEntityID:   cancelled.ID,
		RelatedEntityType: domain.EntityEvent,
	})
	return cancelled, nil
}

func (s *ApprovalService) Get(ctx context.Context, actor entities.Actor, proposalID uint) (*input.ProposalView, error) {
	proposal, _, err := s.loadVisible(ctx, actor, proposalID)
	if err != nil {
		return nil, err
	}
	now := s.Clock.Now()
	return &input.ProposalView{
		EventProposal: *proposal,
		Stage:         proposal.Stage(now),
		Observed:      proposal.ObservedStatus(now),
		DeadlineState: proposal.DeadlineState(now),
	}, nil
}

// ListPending is the review queue, open to approvers only.
func (s *ApprovalService) ListPending(ctx context.Context, actor entities.Actor) ([]entities.EventProposal, error) {
	if !CapabilitiesFor(actor).CanReviewQueue() {
		return nil, domain.ErrNotAllowed
	}
	return s.Events.ListByApproval(ctx, domain.ApprovalPending, nil)
}

// ListRejected lists rejected proposals. Without a club filter only super admins may ask.
func (s *ApprovalService) ListRejected(ctx context.Context, actor entities.Actor, clubID *uint) ([]entities.EventProposal, error) {
	var club *entities.Club
	if clubID != nil {
		found, err := s.Clubs.FindClub(ctx, *clubID)
		if err != nil {
			return nil, err
		}
		club = found
	}
	if !CapabilitiesFor(actor).CanListRejected(club) {
		return nil, domain.ErrNotAllowed
	}
	return s.Events.ListByApproval(ctx, domain.ApprovalRejected, clubID)
}

func (s *ApprovalService) History(ctx context.Context, actor entities.Actor, proposalID uint) ([]entities.ApprovalRecord, error) {
	if _, _, err := s.loadVisible(ctx, actor, proposalID); err != nil {
		return nil, err
	}
	return s.Events.History(ctx, proposalID)
}

func (s *ApprovalService) loadVisible(ctx context.Context, actor entities.Actor, proposalID uint) (*entities.EventProposal, *entities.Club, error) {
	proposal, club, err := s.loadWithClub(ctx, proposalID)
	if err != nil {
		return nil, nil, err
	}
	if !CapabilitiesFor(actor).CanViewProposal(proposal, club) {
		return nil, nil, domain.ErrNotAllowed
	}
	return proposal, club, nil
}

// withVenue locks the venue when there is one, otherwise it only opens a transaction.
func (s *ApprovalService) withVenue(ctx context.Context, venueID *uint, fn func(ctx context.Context) error) error {
	if venueID == nil {
		return s.Locker.WithinTx(ctx, fn)
	}
	return s.Locker.WithVenueLock(ctx, *venueID, fn)
}

func (s *ApprovalService) loadWithClub(ctx context.Context, proposalID uint) (*entities.EventProposal, *entities.Club, error) {
	proposal, err := s.Events.FindByID(ctx, proposalID)
	if err != nil {
		return nil, nil, err
	}
	club, err := s.Clubs.FindClub(ctx, proposal.ClubID)
	if err != nil {
		return nil, nil, err
	}
	return proposal, club, nil
}

// parseDetails validates approver input in order: date-times, event type, fee, head count.
func (s *ApprovalService) parseDetails(in input.ScheduleInput) (entities.ProposalDetails, error) {
	start, end, err := datetime.ParseWindow(in.StartDateTime, in.EndDateTime, s.Location)
	if err != nil {
		return entities.ProposalDetails{}, err
	}
	eventType, err := domain.ParseEventType(in.EventType)
	if err != nil {
		return entities.ProposalDetails{}, err
	}
	fee, err := parseFee(in.RegistrationFee)
	if err != nil {
		return entities.ProposalDetails{}, err
	}
	if in.MaxParticipants != nil && *in.MaxParticipants <= 0 {
		return entities.ProposalDetails{}, domain.ErrInvalidCapacity
	}
	return entities.ProposalDetails{
		Title:           strings.TrimSpace(in.EventName),
		Type:            eventType,
		Window:          entities.Window{Start: start, End: end},
		Location:        in.Location,
		Description:     in.Description,
		MaxParticipants: in.MaxParticipants,
		RegistrationFee: fee,
		SlidesURL:       in.SlidesURL,
	}, nil
}

func parseFee(raw string) (decimal.Decimal, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return decimal.Zero, nil
	}
	fee, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %q", domain.ErrInvalidFee, raw)
	}
	if fee.IsNegative() {
		return decimal.Zero, domain.ErrInvalidFee
	}
	return fee, nil
}

func (s *ApprovalService) resolveVenue(ctx context.Context, p *entities.EventProposal, explicit *uint, d entities.ProposalDetails) (*uint, error) {
	switch {
	case explicit != nil:
		return explicit, nil
	case p.RequestedVenueID != nil:
		id := *p.RequestedVenueID
		return &id, nil
	case d.MaxParticipants == nil:
		return nil, nil
	}
	start, end := d.Window.Start, d.Window.End
	best, err := s.Selector.BestFit(ctx, *d.MaxParticipants, &start, &end)
	if err != nil {
		return nil, err
	}
	if best == nil {
		return nil, domain.ErrNoVenueAvailable
	}
	log.Printf("🏛️ Best-fit picked venue %d (%s) for proposal %d", best.ID, best.Name, p.ID)
	return &best.ID, nil
}

// checkBooking re-validates the venue against the latest bookings. Must run under the venue lock.
func (s *ApprovalService) checkBooking(ctx context.Context, venueID, proposalID uint, d entities.ProposalDetails) error {
	venue, err := s.Venues.FindByID(ctx, venueID)
	if err != nil {
		return err
	}
	if !venue.Active {
		return domain.ErrVenueInactive
	}
	if d.MaxParticipants != nil && !venue.Fits(*d.MaxParticipants) {
		return fmt.Errorf("%w: %s holds %d, %d requested", domain.ErrVenueTooSmall, venue.Name, venue.Capacity, *d.MaxParticipants)
	}
	conflicts, err := s.Events.FindConflicting(ctx, venueID, d.Window.Start, d.Window.End, &proposalID)
	if err != nil {
		return err
	}
	if len(conflicts) > 0 {
		return fmt.Errorf("%w: %s is booked by event %d", domain.ErrVenueUnavailable, venue.Name, conflicts[0].ID)
	}
	return nil
}

func (s *ApprovalService) checkRequestedVenue(ctx context.Context, venueID *uint) error {
	if venueID == nil {
		return nil
	}
	venue, err := s.Venues.FindByID(ctx, *venueID)
	if err != nil {
		return err
	}
	if !venue.Active {
		return domain.ErrVenueInactive
	}
	return nil
}

func (s *ApprovalService) uploadPoster(ctx context.Context, proposalID uint, poster *input.Poster) string {
	if poster == nil || poster.Content == nil || s.Posters == nil {
		return ""
	}
	url, err := s.Posters.Save(ctx, poster.Filename, poster.Content)
	if err != nil {
		log.Printf("⚠️ Poster upload failed for proposal %d, approving without it: %v", proposalID, err)
		return ""
	}
	return url
}

// discardPoster removes a poster stored for an approval that did not go through.
func (s *ApprovalService) discardPoster(ctx context.Context, proposalID uint, url string) {
	if url == "" || s.Posters == nil {
		return
	}
	if err := s.Posters.Remove(context.WithoutCancel(ctx), url); err != nil {
		log.Printf("⚠️ Failed to remove poster %s of proposal %d: %v", url, proposalID, err)
	}
}

func (s *ApprovalService) persist(ctx context.Context, p *entities.EventProposal, action string, actor entities.Actor, reason string) error {
	if err := s.Events.Update(ctx, p); err != nil {
		return err
	}
	return s.Events.AppendHistory(ctx, &entities.ApprovalRecord{
		EventID: p.ID,
		Action:  action,
		ActorID: actor.UserID,
		Reason:  reason,
		At:      s.Clock.Now(),
	})
}

func (s *ApprovalService) notify(ctx context.Context, n entities.Notification) {
	if s.Notifier == nil || n.UserID == 0 {
		return
	}
	if err := s.Notifier.Notify(ctx, n); err != nil {
		log.Printf("⚠️ Failed to deliver notification to user %d: %v", n.UserID, err)
	}
}

func venueLabel(id *uint) string {
	if id == nil {
		return "none"
	}
	return fmt.Sprintf("%d", *id)
}
