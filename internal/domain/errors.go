package domain

import "errors"

// Kind classifies a domain error so adapters can map it without knowing every sentinel.
type Kind int

const (
	KindInternal Kind = iota
	KindNotFound
	KindValidation
	KindConflict
	KindPermission
	KindStatus
	KindTransient
)

func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "not_found"
	case KindValidation:
		return "validation"
	case KindConflict:
		return "conflict"
	case KindPermission:
		return "permission"
	case KindStatus:
		return "status"
	case KindTransient:
		return "transient"
	default:
		return "internal"
	}
}

// Error is a classified domain error. Code is stable and doubles as the i18n key suffix.
type Error struct {
	Kind Kind
	Code string
	Msg  string
}

func (e *Error) Error() string { return e.Msg }

func newError(kind Kind, code, msg string) *Error {
	return &Error{Kind: kind, Code: code, Msg: msg}
}

// Domain errors.
var (
	ErrVenueNotFound    = newError(KindNotFound, "venue_not_found", "venue not found")
	ErrProposalNotFound = newError(KindNotFound, "proposal_not_found", "event proposal not found")
	ErrClubNotFound     = newError(KindNotFound, "club_not_found", "club not found")
	ErrUserNotFound     = newError(KindNotFound, "user_not_found", "user not found")

	ErrInvalidWindow     = newError(KindValidation, "invalid_window", "start must not be after end")
	ErrInvalidDateTime   = newError(KindValidation, "invalid_datetime", "invalid date-time format, expected YYYY-MM-DDTHH:MM")
	ErrInvalidEventType  = newError(KindValidation, "invalid_event_type", "invalid event type")
	ErrInvalidCapacity   = newError(KindValidation, "invalid_capacity", "capacity must be positive")
	ErrInvalidFee        = newError(KindValidation, "invalid_fee", "registration fee must be a non-negative amount")
	ErrMissingEventName  = newError(KindValidation, "missing_event_name", "event name is required")
	ErrMissingReason     = newError(KindValidation, "missing_reason", "a rejection reason is required")
	ErrMissingVenueName  = newError(KindValidation, "missing_venue_name", "venue name is required")
	ErrMissingTitle      = newError(KindValidation, "missing_title", "title is required")
	ErrDuplicateVenue    = newError(KindConflict, "duplicate_venue", "a venue with this name already exists")
	ErrVenueUnavailable  = newError(KindConflict, "venue_unavailable", "venue is not available for the requested window")
	ErrNoVenueAvailable  = newError(KindConflict, "no_venue_available", "no venue is available for the requested window")
	ErrVenueInactive     = newError(KindConflict, "venue_inactive", "venue is not active")
	ErrVenueTooSmall     = newError(KindConflict, "venue_too_small", "venue capacity is below the requested participants")
	ErrNotAllowed        = newError(KindPermission, "not_allowed", "you are not allowed to perform this action")
	ErrInvalidTransition = newError(KindStatus, "invalid_transition", "the proposal is not in a state that allows this action")
	ErrProposalTerminal  = newError(KindStatus, "proposal_terminal", "the proposal is completed or cancelled")
)

// KindOf returns the classification of err, KindInternal when err carries none.
func KindOf(err error) Kind {
	var de *Error
	if errors.As(err, &de) {
		return de.Kind
	}
	return KindInternal
}

// Code returns the stable code of the domain error wrapped in err, or "".
func Code(err error) string {
	var de *Error
	if errors.As(err, &de) {
		return de.Code
	}
	return ""
}
