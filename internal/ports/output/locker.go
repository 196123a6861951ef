package output

import "context"

// VenueLocker serializes writers of a venue's bookings. fn runs inside a single
// transaction; repositories called with the ctx handed to fn take part in it.
type VenueLocker interface {
	// WithVenueLock holds the venue's lock for the whole transaction. venueID must be non-zero.
	WithVenueLock(ctx context.Context, venueID uint, fn func(ctx context.Context) error) error
	// WithinTx runs fn in a transaction without taking any venue lock.
	WithinTx(ctx context.Context, fn func(ctx context.Context) error) error
}
