package output

import (
	"context"

	"clubvenue/internal/domain"
	"clubvenue/internal/domain/entities"
)

// ClubDirectory resolves club ownership. Clubs are managed elsewhere.
type ClubDirectory interface {
	FindClub(ctx context.Context, id uint) (*entities.Club, error)
}

// UserDirectory resolves the platform role of a user id issued by the auth service.
type UserDirectory interface {
	FindRole(ctx context.Context, userID uint) (domain.Role, error)
}
