package database

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"clubvenue/internal/domain"
	"clubvenue/internal/domain/entities"
	"clubvenue/internal/ports/output"
)

var _ output.EventRepository = (*EventRepository)(nil)

const eventColumns = `id, club_id, organizer_id, title, description, event_type, location,
	start_at, end_at, registration_deadline, idea_submission_deadline,
	venue_id, requested_venue_id, max_participants, registration_fee::text,
	poster_url, slides_url, status, approval_status, rejection_reason, active, created_at, updated_at`

// liveBookingConflict matches approved, non-terminal bookings that hold a complete schedule.
// $1 venue, $2 start, $3 end, $4 buffer in seconds, $5 excluded event id.
const liveBookingConflict = `venue_id = $1
	AND approval_status = 'APPROVED'
	AND status NOT IN ('CANCELLED', 'COMPLETED')
	AND start_at IS NOT NULL AND end_at IS NOT NULL
	AND start_at - make_interval(secs => $4) < $3
	AND end_at + make_interval(secs => $4) > $2
	AND ($5::bigint IS NULL OR id <> $5)`

type EventRepository struct {
	pool *pgxpool.Pool
}

func NewEventRepository(pool *pgxpool.Pool) *EventRepository {
	return &EventRepository{pool: pool}
}

func scanEvent(row pgx.Row) (entities.EventProposal, error) {
	var (
		e                                         entities.EventProposal
		id, clubID, organizerID                   int64
		eventType, status, approval, fee          string
		startAt, endAt, regDeadline, ideaDeadline pgtype.Timestamptz
		venueID, requestedVenueID                 pgtype.Int8
		maxParticipants                           pgtype.Int4
		createdAt, updatedAt                      pgtype.Timestamptz
	)
	err := row.Scan(
		&id, &clubID, &organizerID, &e.Title, &e.Description, &eventType, &e.Location,
		&startAt, &endAt, &regDeadline, &ideaDeadline,
		&venueID, &requestedVenueID, &maxParticipants, &fee,
		&e.PosterURL, &e.SlidesURL, &status, &approval, &e.RejectionReason, &e.Active, &createdAt, &updatedAt,
	)
	if err != nil {
		return entities.EventProposal{}, err
	}
	e.ID = uint(id)
	e.ClubID = uint(clubID)
	e.OrganizerID = uint(organizerID)
	e.Type = domain.EventType(eventType)
	e.StartAt = timestamptzPtr(startAt)
	e.EndAt = timestamptzPtr(endAt)
	e.RegistrationDeadline = timestamptzPtr(regDeadline)
	e.IdeaSubmissionDeadline = timestamptzPtr(ideaDeadline)
	e.VenueID = int8Ptr(venueID)
	e.RequestedVenueID = int8Ptr(requestedVenueID)
	e.MaxParticipants = int4Ptr(maxParticipants)
	e.Status = domain.EventStatus(status)
	e.ApprovalStatus = domain.ApprovalStatus(approval)
	e.CreatedAt = pgtypeTimestamptzToTime(createdAt)
	e.UpdatedAt = pgtypeTimestamptzToTime(updatedAt)
	if e.RegistrationFee, err = decimal.NewFromString(fee); err != nil {
		return entities.EventProposal{}, fmt.Errorf("registration fee %q: %w", fee, err)
	}
	return e, nil
}

func collectEvents(rows pgx.Rows) ([]entities.EventProposal, error) {
	defer rows.Close()
	out := []entities.EventProposal{}
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func (r *EventRepository) Create(ctx context.Context, event *entities.EventProposal) error {
	var id int64
	var createdAt, updatedAt pgtype.Timestamptz
	err := conn(ctx, r.pool).QueryRow(ctx, `
		INSERT INTO events (club_id, organizer_id, title, description, event_type, location,
			start_at, end_at, registration_deadline, idea_submission_deadline,
			venue_id, requested_venue_id, max_participants, registration_fee,
			poster_url, slides_url, status, approval_status, rejection_reason, active)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14::numeric, $15, $16, $17, $18, $19, $20)
		RETURNING id, created_at, updated_at`,
		int64(event.ClubID), int64(event.OrganizerID), event.Title, event.Description, string(event.Type), event.Location,
		toTimestamptz(event.StartAt), toTimestamptz(event.EndAt),
		toTimestamptz(event.RegistrationDeadline), toTimestamptz(event.IdeaSubmissionDeadline),
		toInt8(event.VenueID), toInt8(event.RequestedVenueID), toInt4(event.MaxParticipants), event.RegistrationFee.String(),
		event.PosterURL, event.SlidesURL, string(event.Status), string(event.ApprovalStatus), event.RejectionReason, event.Active,
	).Scan(&id, &createdAt, &updatedAt)
	if err != nil {
		return mapError("create event", err, nil)
	}
	event.ID = uint(id)
	event.CreatedAt = pgtypeTimestamptzToTime(createdAt)
	event.UpdatedAt = pgtypeTimestamptzToTime(updatedAt)
	return nil
}

// FindByID locks the row when called inside a transaction.
func (r *EventRepository) FindByID(ctx context.Context, id uint) (*entities.EventProposal, error) {
	query := `SELECT ` + eventColumns + ` FROM events WHERE id = $1`
	if _, ok := txFrom(ctx); ok {
		query += ` FOR UPDATE`
	}
	e, err := scanEvent(conn(ctx, r.pool).QueryRow(ctx, query, int64(id)))
	if err != nil {
		return nil, mapError("get event by id", err, domain.ErrProposalNotFound)
	}
	return &e, nil
}

func (r *EventRepository) Update(ctx context.Context, event *entities.EventProposal) error {
	var updatedAt pgtype.Timestamptz
	err := conn(ctx, r.pool).QueryRow(ctx, `
		UPDATE events SET
			title = $2, description = $3, event_type = $4, location = $5,
			start_at = $6, end_at = $7, registration_deadline = $8, idea_submission_deadline = $9,
			venue_id = $10, requested_venue_id = $11, max_participants = $12, registration_fee = $13::numeric,
			poster_url = $14, slides_url = $15, status = $16, approval_status = $17, rejection_reason = $18,
			active = $19, updated_at = now()
		WHERE id = $1
		RETURNING updated_at`,
		int64(event.ID), event.Title, event.Description, string(event.Type), event.Location,
		toTimestamptz(event.StartAt), toTimestamptz(event.EndAt),
		toTimestamptz(event.RegistrationDeadline), toTimestamptz(event.IdeaSubmissionDeadline),
		toInt8(event.VenueID), toInt8(event.RequestedVenueID), toInt4(event.MaxParticipants), event.RegistrationFee.String(),
		event.PosterURL, event.SlidesURL, string(event.Status), string(event.ApprovalStatus), event.RejectionReason,
		event.Active,
	).Scan(&updatedAt)
	if err != nil {
		return mapError("update event", err, domain.ErrProposalNotFound)
	}
	event.UpdatedAt = pgtypeTimestamptzToTime(updatedAt)
	return nil
}

func (r *EventRepository) ListByApproval(ctx context.Context, status domain.ApprovalStatus, clubID *uint) ([]entities.EventProposal, error) {
	rows, err := conn(ctx, r.pool).Query(ctx, `
		SELECT `+eventColumns+` FROM events
		WHERE approval_status = $1
			AND status NOT IN ('CANCELLED', 'COMPLETED')
			AND ($2::bigint IS NULL OR club_id = $2)
		ORDER BY created_at, id`,
		string(status), toInt8(clubID))
	if err != nil {
		return nil, mapError("list events by approval", err, nil)
	}
	out, err := collectEvents(rows)
	if err != nil {
		return nil, mapError("list events by approval", err, nil)
	}
	return out, nil
}

func (r *EventRepository) FindConflicting(ctx context.Context, venueID uint, start, end time.Time, excludeEventID *uint) ([]entities.EventProposal, error) {
	rows, err := conn(ctx, r.pool).Query(ctx,
		`SELECT `+eventColumns+` FROM events WHERE `+liveBookingConflict+` ORDER BY start_at, id`,
		int64(venueID), start, end, entities.BookingBuffer.Seconds(), toInt8(excludeEventID))
	if err != nil {
		return nil, mapError("find conflicting bookings", err, nil)
	}
	out, err := collectEvents(rows)
	if err != nil {
		return nil, mapError("find conflicting bookings", err, nil)
	}
	return out, nil
}

func (r *EventRepository) FindDeadlineExpired(ctx context.Context, cutoff time.Time) ([]entities.EventProposal, error) {
	rows, err := conn(ctx, r.pool).Query(ctx, `
		SELECT `+eventColumns+` FROM events
		WHERE active AND idea_submission_deadline IS NOT NULL AND idea_submission_deadline <= $1
		ORDER BY idea_submission_deadline, id`, cutoff)
	if err != nil {
		return nil, mapError("find expired events", err, nil)
	}
	out, err := collectEvents(rows)
	if err != nil {
		return nil, mapError("find expired events", err, nil)
	}
	return out, nil
}

// CloseExpired only touches rows that are still active and not held by an approval.
func (r *EventRepository) CloseExpired(ctx context.Context, id uint) (bool, error) {
	tag, err := conn(ctx, r.pool).Exec(ctx, `
		UPDATE events SET active = FALSE, status = 'COMPLETED', updated_at = now()
		WHERE id = $1
			AND active
			AND status NOT IN ('PUBLISHED', 'CANCELLED', 'COMPLETED')
			AND approval_status <> 'APPROVED'`, int64(id))
	if err != nil {
		return false, mapError("close expired event", err, nil)
	}
	return tag.RowsAffected() == 1, nil
}

func (r *EventRepository) AppendHistory(ctx context.Context, record *entities.ApprovalRecord) error {
	var id int64
	err := conn(ctx, r.pool).QueryRow(ctx, `
		INSERT INTO approval_history (event_id, action, actor_id, reason, created_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`,
		int64(record.EventID), record.Action, int64(record.ActorID), record.Reason, record.At,
	).Scan(&id)
	if err != nil {
		return mapError("append approval history", err, nil)
	}
	record.ID = uint(id)
	return nil
}

func (r *EventRepository) History(ctx context.Context, eventID uint) ([]entities.ApprovalRecord, error) {
	rows, err := conn(ctx, r.pool).Query(ctx, `
		SELECT id, event_id, action, actor_id, reason, created_at
		FROM approval_history WHERE event_id = $1 ORDER BY id`, int64(eventID))
	if err != nil {
		return nil, mapError("get approval history", err, nil)
	}
	defer rows.Close()

	out := []entities.ApprovalRecord{}
	for rows.Next() {
		var id, evID, actorID int64
		var rec entities.ApprovalRecord
		if err := rows.Scan(&id, &evID, &rec.Action, &actorID, &rec.Reason, &rec.At); err != nil {
			return nil, mapError("scan approval history", err, nil)
		}
		rec.ID, rec.EventID, rec.ActorID = uint(id), uint(evID), uint(actorID)
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, mapError("get approval history", err, nil)
	}
	return out, nil
}
