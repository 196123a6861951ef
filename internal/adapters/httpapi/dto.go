package httpapi

import (
	"time"

	"clubvenue/internal/domain/entities"
	"clubvenue/internal/ports/input"
)

type venueRequest struct {
	Name        string `json:"name"`
	Capacity    int    `json:"capacity"`
	Location    string `json:"location"`
	Facilities  string `json:"facilities"`
	Description string `json:"description"`
	Active      *bool  `json:"active"`
}

func (r venueRequest) toInput() input.VenueInput {
	return input.VenueInput{
		Name:        r.Name,
		Capacity:    r.Capacity,
		Location:    r.Location,
		Facilities:  r.Facilities,
		Description: r.Description,
		Active:      r.Active,
	}
}

type venueResponse struct {
	ID          uint      `json:"id"`
	Name        string    `json:"name"`
	Capacity    int       `json:"capacity"`
	Active      bool      `json:"active"`
	Location    string    `json:"location"`
	Facilities  string    `json:"facilities"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func toVenueResponse(v entities.Venue) venueResponse {
	return venueResponse{
		ID:          v.ID,
		Name:        v.Name,
		Capacity:    v.Capacity,
		Active:      v.Active,
		Location:    v.Location,
		Facilities:  v.Facilities,
		Description: v.Description,
		CreatedAt:   v.CreatedAt,
		UpdatedAt:   v.UpdatedAt,
	}
}

func toVenueList(venues []entities.Venue) []venueResponse {
	out := make([]venueResponse, 0, len(venues))
	for _, v := range venues {
		out = append(out, toVenueResponse(v))
	}
	return out
}

type createProposalRequest struct {
	ClubID                 uint   `json:"club_id"`
	Title                  string `json:"title"`
	Description            string `json:"description"`
	IdeaSubmissionDeadline string `json:"idea_submission_deadline"`
	RegistrationDeadline   string `json:"registration_deadline"`
	MaxParticipants        *int   `json:"max_participants"`
}

type submitRequest struct {
	VenueID *uint `json:"venue_id"`
}

type scheduleRequest struct {
	EventName       string `json:"event_name"`
	EventType       string `json:"event_type"`
	StartDateTime   string `json:"start_date_time"`
	EndDateTime     string `json:"end_date_time"`
	Location        string `json:"location"`
	MaxParticipants *int   `json:"max_participants"`
	RegistrationFee string `json:"registration_fee"`
	Description     string `json:"description"`
	SlidesURL       string `json:"slides_url"`
	VenueID         *uint  `json:"venue_id"`
}

func (r scheduleRequest) toInput() input.ScheduleInput {
	return input.ScheduleInput{
		EventName:       r.EventName,
		EventType:       r.EventType,
		StartDateTime:   r.StartDateTime,
		EndDateTime:     r.EndDateTime,
		Location:        r.Location,
		MaxParticipants: r.MaxParticipants,
		RegistrationFee: r.RegistrationFee,
		Description:     r.Description,
		SlidesURL:       r.SlidesURL,
		VenueID:         r.VenueID,
	}
}

type reasonRequest struct {
	Reason string `json:"reason"`
}

type proposalResponse struct {
	ID                     uint       `json:"id"`
	ClubID                 uint       `json:"club_id"`
	OrganizerID            uint       `json:"organizer_id"`
	Title                  string     `json:"title"`
	Description            string     `json:"description"`
	EventType              string     `json:"event_type,omitempty"`
	Location               string     `json:"location"`
	StartAt                *time.Time `json:"start_at"`
	EndAt                  *time.Time `json:"end_at"`
	RegistrationDeadline   *time.Time `json:"registration_deadline"`
	IdeaSubmissionDeadline *time.Time `json:"idea_submission_deadline"`
	VenueID                *uint      `json:"venue_id"`
	RequestedVenueID       *uint      `json:"requested_venue_id"`
	MaxParticipants        *int       `json:"max_participants"`
	RegistrationFee        string     `json:"registration_fee"`
	PosterURL              string     `json:"poster_url,omitempty"`
	SlidesURL              string     `json:"slides_url,omitempty"`
	Status                 string     `json:"status"`
	ApprovalStatus         string     `json:"approval_status"`
	RejectionReason        string     `json:"rejection_reason,omitempty"`
	Active                 bool       `json:"active"`
	Stage                  string     `json:"stage,omitempty"`
	ObservedStatus         string     `json:"observed_status,omitempty"`
	DeadlineState          string     `json:"deadline_state,omitempty"`
	CreatedAt              time.Time  `json:"created_at"`
	UpdatedAt              time.Time  `json:"updated_at"`
}

func toProposalResponse(p entities.EventProposal) proposalResponse {
	return proposalResponse{
		ID:                     p.ID,
		ClubID:                 p.ClubID,
		OrganizerID:            p.OrganizerID,
		Title:                  p.Title,
		Description:            p.Description,
		EventType:              string(p.Type),
		Location:               p.Location,
		StartAt:                p.StartAt,
		EndAt:                  p.EndAt,
		RegistrationDeadline:   p.RegistrationDeadline,
		IdeaSubmissionDeadline: p.IdeaSubmissionDeadline,
		VenueID:                p.VenueID,
		RequestedVenueID:       p.RequestedVenueID,
		MaxParticipants:        p.MaxParticipants,
		RegistrationFee:        p.RegistrationFee.StringFixed(2),
		PosterURL:              p.PosterURL,
		SlidesURL:              p.SlidesURL,
		Status:                 string(p.Status),
		ApprovalStatus:         string(p.ApprovalStatus),
		RejectionReason:        p.RejectionReason,
		Active:                 p.Active,
		CreatedAt:              p.CreatedAt,
		UpdatedAt:              p.UpdatedAt,
	}
}

func toProposalView(v input.ProposalView) proposalResponse {
	out := toProposalResponse(v.EventProposal)
	out.Stage = string(v.Stage)
	out.ObservedStatus = string(v.Observed)
	out.DeadlineState = string(v.DeadlineState)
	return out
}

func toProposalList(ps []entities.EventProposal) []proposalResponse {
	out := make([]proposalResponse, 0, len(ps))
	for _, p := range ps {
		out = append(out, toProposalResponse(p))
	}
	return out
}

type historyResponse struct {
	ID      uint      `json:"id"`
	Action  string    `json:"action"`
	ActorID uint      `json:"actor_id"`
	Reason  string    `json:"reason,omitempty"`
	At      time.Time `json:"at"`
}

type notificationResponse struct {
	ID                uint      `json:"id"`
	Title             string    `json:"title"`
	Message           string    `json:"message"`
	Kind              string    `json:"kind"`
	RelatedEntityID   uint      `json:"related_entity_id,omitempty"`
	RelatedEntityType string    `json:"related_entity_type,omitempty"`
	CreatedAt         time.Time `json:"created_at"`
}

type sweepResponse struct {
	Ran           bool `json:"ran"`
	TopicsClosed  int  `json:"topics_closed"`
	EventsClosed  int  `json:"events_closed"`
	EventsSkipped int  `json:"events_skipped"`
	Failures      int  `json:"failures"`
}
