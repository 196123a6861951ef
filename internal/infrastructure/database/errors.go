package database

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"clubvenue/internal/domain"
)

const (
	pgUniqueViolation    = "23505"
	pgExclusionViolation = "23P01"
)

// mapError wraps err with op, translating no-rows and constraint violations into domain errors.
func mapError(op string, err error, notFound error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) && notFound != nil {
		return notFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgExclusionViolation:
			return fmt.Errorf("%w: %s", domain.ErrVenueUnavailable, pgErr.ConstraintName)
		case pgUniqueViolation:
			if pgErr.TableName == "venues" {
				return domain.ErrDuplicateVenue
			}
		}
	}
	return fmt.Errorf("%s: %w", op, err)
}
