package entities

import "time"

// Notification is a message addressed to a single user.
type Notification struct {
	ID                uint
	UserID            uint
	Title             string
	Message           string
	Kind              string
	RelatedEntityID   uint
	RelatedEntityType string
	CreatedAt         time.Time
}
