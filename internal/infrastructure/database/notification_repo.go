package database

import (
	"context"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"clubvenue/internal/domain/entities"
	"clubvenue/internal/ports/output"
)

var _ output.Notifier = (*NotificationRepository)(nil)

// NotificationRepository is the in-app inbox: notifying means inserting a row.
type NotificationRepository struct {
	pool *pgxpool.Pool
}

func NewNotificationRepository(pool *pgxpool.Pool) *NotificationRepository {
	return &NotificationRepository{pool: pool}
}

func (r *NotificationRepository) Notify(ctx context.Context, n entities.Notification) error {
	var related pgtype.Int8
	if n.RelatedEntityID != 0 {
		related = pgtype.Int8{Int64: int64(n.RelatedEntityID), Valid: true}
	}
	_, err := conn(ctx, r.pool).Exec(ctx, `
		INSERT INTO notifications (user_id, title, message, kind, related_entity_id, related_entity_type)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		int64(n.UserID), n.Title, n.Message, n.Kind, related, n.RelatedEntityType)
	return mapError("insert notification", err, nil)
}

// ListForUser returns the newest notifications of a user first.
func (r *NotificationRepository) ListForUser(ctx context.Context, userID uint, limit int) ([]entities.Notification, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := conn(ctx, r.pool).Query(ctx, `
		SELECT id, user_id, title, message, kind, related_entity_id, related_entity_type, created_at
		FROM notifications WHERE user_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2`, int64(userID), limit)
	if err != nil {
		return nil, mapError("list notifications", err, nil)
	}
	defer rows.Close()

	out := []entities.Notification{}
	for rows.Next() {
		var (
			n         entities.Notification
			id, user  int64
			related   pgtype.Int8
			createdAt pgtype.Timestamptz
		)
		if err := rows.Scan(&id, &user, &n.Title, &n.Message, &n.Kind, &related, &n.RelatedEntityType, &createdAt); err != nil {
			return nil, mapError("scan notification", err, nil)
		}
		n.ID, n.UserID = uint(id), uint(user)
		if related.Valid {
			n.RelatedEntityID = uint(related.Int64)
		}
		n.CreatedAt = pgtypeTimestamptzToTime(createdAt)
		out = append(out, n)
	}
	if err := rows.Err(); err != nil {
		return nil, mapError("list notifications", err, nil)
	}
	return out, nil
}
