package domain

import "strings"

// EventStatus is the lifecycle status stored on an event proposal.
type EventStatus string

const (
	StatusDraft              EventStatus = "DRAFT"
	StatusSubmitted          EventStatus = "SUBMITTED"
	StatusPublished          EventStatus = "PUBLISHED"
	StatusRegistrationClosed EventStatus = "REGISTRATION_CLOSED"
	StatusOngoing            EventStatus = "ONGOING"
	StatusCompleted          EventStatus = "COMPLETED"
	StatusCancelled          EventStatus = "CANCELLED"
)

// Terminal reports whether no further mutation is allowed.
func (s EventStatus) Terminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// ApprovalStatus is the approval axis of an event proposal. The zero value means "not yet submitted".
type ApprovalStatus string

const (
	ApprovalNone     ApprovalStatus = ""
	ApprovalPending  ApprovalStatus = "PENDING"
	ApprovalApproved ApprovalStatus = "APPROVED"
	ApprovalRejected ApprovalStatus = "REJECTED"
)

// TopicStatus is the status of a club topic ("problem").
type TopicStatus string

const (
	TopicOpen         TopicStatus = "OPEN"
	TopicReviewing    TopicStatus = "REVIEWING"
	TopicImplementing TopicStatus = "IMPLEMENTING"
	TopicCompleted    TopicStatus = "COMPLETED"
	TopicClosed       TopicStatus = "CLOSED"
)

// EventType is the kind of event an approver assigns at publication.
type EventType string

const (
	TypeWorkshop    EventType = "WORKSHOP"
	TypeSeminar     EventType = "SEMINAR"
	TypeCompetition EventType = "COMPETITION"
	TypeHackathon   EventType = "HACKATHON"
	TypeConference  EventType = "CONFERENCE"
	TypeNetworking  EventType = "NETWORKING"
	TypeSocial      EventType = "SOCIAL"
	TypeSports      EventType = "SPORTS"
	TypeCultural    EventType = "CULTURAL"
	TypeTechnical   EventType = "TECHNICAL"
	TypeOther       EventType = "OTHER"
)

var eventTypes = []EventType{
	TypeWorkshop, TypeSeminar, TypeCompetition, TypeHackathon, TypeConference, TypeNetworking,
	TypeSocial, TypeSports, TypeCultural, TypeTechnical, TypeOther,
}

// ParseEventType accepts any casing of a known token.
func ParseEventType(s string) (EventType, error) {
	token := EventType(strings.ToUpper(strings.TrimSpace(s)))
	for _, t := range eventTypes {
		if t == token {
			return t, nil
		}
	}
	return "", ErrInvalidEventType
}

// Role is the platform role of a user.
type Role string

const (
	RoleSuperAdmin Role = "SUPER_ADMIN"
	RoleClubAdmin  Role = "CLUB_ADMIN"
	RoleStudent    Role = "STUDENT"
)

// Notification kinds and related entity types.
const (
	NotificationSystem            = "SYSTEM"
	NotificationEventAnnouncement = "EVENT_ANNOUNCEMENT"

	EntityEvent   = "EVENT"
	EntityProblem = "PROBLEM"
)

// History actions recorded for every approval transition.
const (
	ActionSubmitted   = "SUBMITTED"
	ActionApproved    = "APPROVED"
	ActionRejected    = "REJECTED"
	ActionResubmitted = "RESUBMITTED"
	ActionCancelled   = "CANCELLED"
)
