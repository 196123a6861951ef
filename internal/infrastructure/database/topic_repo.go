package database

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"clubvenue/internal/domain"
	"clubvenue/internal/domain/entities"
	"clubvenue/internal/ports/output"
)

var _ output.TopicRepository = (*TopicRepository)(nil)

type TopicRepository struct {
	pool *pgxpool.Pool
}

func NewTopicRepository(pool *pgxpool.Pool) *TopicRepository {
	return &TopicRepository{pool: pool}
}

func (r *TopicRepository) FindDeadlineExpired(ctx context.Context, cutoff time.Time) ([]entities.Topic, error) {
	rows, err := conn(ctx, r.pool).Query(ctx, `
		SELECT id, club_id, posted_by, title, deadline, active, status, created_at, updated_at
		FROM topics
		WHERE active AND deadline IS NOT NULL AND deadline <= $1
		ORDER BY deadline, id`, cutoff)
	if err != nil {
		return nil, mapError("find expired topics", err, nil)
	}
	defer rows.Close()

	out := []entities.Topic{}
	for rows.Next() {
		var (
			t                              entities.Topic
			id, clubID, postedBy           int64
			status                         string
			deadline, createdAt, updatedAt pgtype.Timestamptz
		)
		if err := rows.Scan(&id, &clubID, &postedBy, &t.Title, &deadline, &t.Active, &status, &createdAt, &updatedAt); err != nil {
			return nil, mapError("scan topic", err, nil)
		}
		t.ID, t.ClubID, t.PostedBy = uint(id), uint(clubID), uint(postedBy)
		t.Deadline = timestamptzPtr(deadline)
		t.Status = domain.TopicStatus(status)
		t.CreatedAt = pgtypeTimestamptzToTime(createdAt)
		t.UpdatedAt = pgtypeTimestamptzToTime(updatedAt)
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, mapError("find expired topics", err, nil)
	}
	return out, nil
}

func (r *TopicRepository) CloseExpired(ctx context.Context, id uint) (bool, error) {
	tag, err := conn(ctx, r.pool).Exec(ctx, `
		UPDATE topics SET active = FALSE, status = 'CLOSED', updated_at = now()
		WHERE id = $1 AND active`, int64(id))
	if err != nil {
		return false, mapError("close expired topic", err, nil)
	}
	return tag.RowsAffected() == 1, nil
}
