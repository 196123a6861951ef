package application

import (
	"context"
	"fmt"

	"clubvenue/internal/domain"
	"clubvenue/internal/domain/entities"
	"clubvenue/internal/ports/input"
	"clubvenue/internal/ports/output"
)

type capability uint8

const (
	capApprove capability = 1 << iota
	capAssignVenue
	capManageVenues
	capSweep
	capAnyProposal
	capOwnClub
)

var roleCapabilities = map[domain.Role]capability{
	domain.RoleSuperAdmin: capApprove | capAssignVenue | capManageVenues | capSweep | capAnyProposal | capOwnClub,
	domain.RoleClubAdmin:  capOwnClub,
	domain.RoleStudent:    0,
}

// Capabilities is the permission set of one actor, resolved from its role once.
type Capabilities struct {
	actor entities.Actor
	set   capability
}

func CapabilitiesFor(actor entities.Actor) Capabilities {
	return Capabilities{actor: actor, set: roleCapabilities[actor.Role]}
}

func (c Capabilities) has(flag capability) bool { return c.set&flag != 0 }

func (c Capabilities) CanApprove(*entities.EventProposal) bool { return c.has(capApprove) }
func (c Capabilities) CanAssignVenue() bool                   { return c.has(capAssignVenue) }
func (c Capabilities) CanManageVenues() bool                  { return c.has(capManageVenues) }
func (c Capabilities) CanSweep() bool                         { return c.has(capSweep) }

func (c Capabilities) administers(club *entities.Club) bool {
	return c.has(capOwnClub) && club != nil && club.AdminUserID == c.actor.UserID
}

// CanCreateProposal: super admins anywhere, club admins for their own club.
func (c Capabilities) CanCreateProposal(club *entities.Club) bool {
	return c.has(capAnyProposal) || c.administers(club)
}

// CanEditProposal covers submission and resubmission.
func (c Capabilities) CanEditProposal(p *entities.EventProposal, club *entities.Club) bool {
	return c.has(capAnyProposal) || p.OrganizerID == c.actor.UserID || c.administers(club)
}

// CanViewProposal: the organizer, the club's admin and super admins.
func (c Capabilities) CanViewProposal(p *entities.EventProposal, club *entities.Club) bool {
	return c.has(capAnyProposal) || p.OrganizerID == c.actor.UserID || c.administers(club)
}

func (c Capabilities) CanReviewQueue() bool { return c.has(capApprove) }

// CanListRejected: a nil club means every club.
func (c Capabilities) CanListRejected(club *entities.Club) bool {
	if club == nil {
		return c.has(capAnyProposal)
	}
	return c.has(capAnyProposal) || c.administers(club)
}

func (c Capabilities) CanCancel(p *entities.EventProposal, club *entities.Club) bool {
	return c.has(capAnyProposal) || c.administers(club)
}

var _ input.ActorResolver = (*ActorService)(nil)

// ActorService resolves callers against the user directory.
type ActorService struct {
	users output.UserDirectory
}

func NewActorService(users output.UserDirectory) *ActorService {
	return &ActorService{users: users}
}

func (s *ActorService) ResolveActor(ctx context.Context, userID uint) (entities.Actor, error) {
	if userID == 0 {
		return entities.Actor{}, domain.ErrNotAllowed
	}
	role, err := s.users.FindRole(ctx, userID)
	if err != nil {
		return entities.Actor{}, fmt.Errorf("resolve actor %d: %w", userID, err)
	}
	return entities.Actor{UserID: userID, Role: role}, nil
}
