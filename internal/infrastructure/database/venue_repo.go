package database

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"clubvenue/internal/domain"
	"clubvenue/internal/domain/entities"
	"clubvenue/internal/ports/output"
)

var _ output.VenueRepository = (*VenueRepository)(nil)

const venueColumns = `v.id, v.name, v.capacity, v.active, v.location, v.facilities, v.description, v.created_at, v.updated_at`

type VenueRepository struct {
	pool *pgxpool.Pool
}

func NewVenueRepository(pool *pgxpool.Pool) *VenueRepository {
	return &VenueRepository{pool: pool}
}

func scanVenue(row pgx.Row) (entities.Venue, error) {
	var (
		v                    entities.Venue
		id                   int64
		capacity             int32
		createdAt, updatedAt pgtype.Timestamptz
	)
	if err := row.Scan(&id, &v.Name, &capacity, &v.Active, &v.Location, &v.Facilities, &v.Description, &createdAt, &updatedAt); err != nil {
		return entities.Venue{}, err
	}
	v.ID = uint(id)
	v.Capacity = int(capacity)
	v.CreatedAt = pgtypeTimestamptzToTime(createdAt)
	v.UpdatedAt = pgtypeTimestamptzToTime(updatedAt)
	return v, nil
}

func collectVenues(rows pgx.Rows) ([]entities.Venue, error) {
	defer rows.Close()
	out := []entities.Venue{}
	for rows.Next() {
		v, err := scanVenue(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

func (r *VenueRepository) Create(ctx context.Context, venue *entities.Venue) error {
	var id int64
	var createdAt, updatedAt pgtype.Timestamptz
	err := conn(ctx, r.pool).QueryRow(ctx, `
		INSERT INTO venues (name, capacity, active, location, facilities, description)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at`,
		venue.Name, int32(venue.Capacity), venue.Active, venue.Location, venue.Facilities, venue.Description,
	).Scan(&id, &createdAt, &updatedAt)
	if err != nil {
		return mapError("create venue", err, nil)
	}
	venue.ID = uint(id)
	venue.CreatedAt = pgtypeTimestamptzToTime(createdAt)
	venue.UpdatedAt = pgtypeTimestamptzToTime(updatedAt)
	return nil
}

func (r *VenueRepository) FindByID(ctx context.Context, id uint) (*entities.Venue, error) {
	v, err := scanVenue(conn(ctx, r.pool).QueryRow(ctx, `SELECT `+venueColumns+` FROM venues v WHERE v.id = $1`, int64(id)))
	if err != nil {
		return nil, mapError("get venue", err, domain.ErrVenueNotFound)
	}
	return &v, nil
}

func (r *VenueRepository) ListActive(ctx context.Context) ([]entities.Venue, error) {
	rows, err := conn(ctx, r.pool).Query(ctx, `SELECT `+venueColumns+` FROM venues v WHERE v.active ORDER BY v.capacity, v.id`)
	if err != nil {
		return nil, mapError("list active venues", err, nil)
	}
	out, err := collectVenues(rows)
	if err != nil {
		return nil, mapError("list active venues", err, nil)
	}
	return out, nil
}

// FindAvailable applies the eligibility predicate and best-fit ordering in one query.
func (r *VenueRepository) FindAvailable(ctx context.Context, required int, start, end time.Time, excludeEventID *uint) ([]entities.Venue, error) {
	rows, err := conn(ctx, r.pool).Query(ctx, `
		SELECT `+venueColumns+` FROM venues v
		WHERE v.active
			AND v.capacity >= $1
			AND NOT EXISTS (
				SELECT 1 FROM events e
				WHERE e.venue_id = v.id
					AND e.approval_status = 'APPROVED'
					AND e.status NOT IN ('CANCELLED', 'COMPLETED')
					AND e.start_at IS NOT NULL AND e.end_at IS NOT NULL
					AND e.start_at - make_interval(secs => $4) < $3
					AND e.end_at + make_interval(secs => $4) > $2
					AND ($5::bigint IS NULL OR e.id <> $5)
			)
		ORDER BY CASE WHEN v.capacity <= $1::bigint + $6 THEN 0 ELSE 1 END, v.capacity, v.id`,
		int32(required), start, end, entities.BookingBuffer.Seconds(), toInt8(excludeEventID), int32(entities.BestFitBand))
	if err != nil {
		return nil, mapError("find available venues", err, nil)
	}
	out, err := collectVenues(rows)
	if err != nil {
		return nil, mapError("find available venues", err, nil)
	}
	return out, nil
}

func (r *VenueRepository) Update(ctx context.Context, venue *entities.Venue) error {
	var updatedAt pgtype.Timestamptz
	err := conn(ctx, r.pool).QueryRow(ctx, `
		UPDATE venues SET name = $2, capacity = $3, active = $4, location = $5, facilities = $6,
			description = $7, updated_at = now()
		WHERE id = $1
		RETURNING updated_at`,
		int64(venue.ID), venue.Name, int32(venue.Capacity), venue.Active, venue.Location, venue.Facilities, venue.Description,
	).Scan(&updatedAt)
	if err != nil {
		return mapError("update venue", err, domain.ErrVenueNotFound)
	}
	venue.UpdatedAt = pgtypeTimestamptzToTime(updatedAt)
	return nil
}

func (r *VenueRepository) Deactivate(ctx context.Context, id uint) error {
	tag, err := conn(ctx, r.pool).Exec(ctx, `UPDATE venues SET active = FALSE, updated_at = now() WHERE id = $1`, int64(id))
	if err != nil {
		return mapError("deactivate venue", err, nil)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrVenueNotFound
	}
	return nil
}

// UpsertByName inserts the venue or refreshes the one with the same name.
func (r *VenueRepository) UpsertByName(ctx context.Context, venue *entities.Venue) error {
	var id int64
	var createdAt, updatedAt pgtype.Timestamptz
	err := conn(ctx, r.pool).QueryRow(ctx, `
		INSERT INTO venues (name, capacity, active, location, facilities, description)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (name) DO UPDATE SET
			capacity = EXCLUDED.capacity,
			active = EXCLUDED.active,
			location = EXCLUDED.location,
			facilities = EXCLUDED.facilities,
			description = EXCLUDED.description,
			updated_at = now()
		RETURNING id, created_at, updated_at`,
		venue.Name, int32(venue.Capacity), venue.Active, venue.Location, venue.Facilities, venue.Description,
	).Scan(&id, &createdAt, &updatedAt)
	if err != nil {
		return mapError("upsert venue", err, nil)
	}
	venue.ID = uint(id)
	venue.CreatedAt = pgtypeTimestamptzToTime(createdAt)
	venue.UpdatedAt = pgtypeTimestamptzToTime(updatedAt)
	return nil
}
