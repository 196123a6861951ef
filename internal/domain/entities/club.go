package entities

import "clubvenue/internal/domain"

type Club struct {
	ID          uint
	Name        string
	AdminUserID uint
}

// Actor is the authenticated caller of a use case.
type Actor struct {
	UserID uint
	Role   domain.Role
}
