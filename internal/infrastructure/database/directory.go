package database

import (
	"context"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"clubvenue/internal/domain"
	"clubvenue/internal/domain/entities"
	"clubvenue/internal/ports/output"
)

var (
	_ output.ClubDirectory = (*Directory)(nil)
	_ output.UserDirectory = (*Directory)(nil)
)

// Directory reads clubs and users owned by the wider campus platform.
type Directory struct {
	pool *pgxpool.Pool
}

func NewDirectory(pool *pgxpool.Pool) *Directory {
	return &Directory{pool: pool}
}

func (d *Directory) FindClub(ctx context.Context, id uint) (*entities.Club, error) {
	var (
		clubID  int64
		adminID pgtype.Int8
		club    entities.Club
	)
	err := conn(ctx, d.pool).QueryRow(ctx, `SELECT id, name, admin_user_id FROM clubs WHERE id = $1`, int64(id)).
		Scan(&clubID, &club.Name, &adminID)
	if err != nil {
		return nil, mapError("get club", err, domain.ErrClubNotFound)
	}
	club.ID = uint(clubID)
	if adminID.Valid {
		club.AdminUserID = uint(adminID.Int64)
	}
	return &club, nil
}

func (d *Directory) FindRole(ctx context.Context, userID uint) (domain.Role, error) {
	var role string
	err := conn(ctx, d.pool).QueryRow(ctx, `SELECT role FROM users WHERE id = $1`, int64(userID)).Scan(&role)
	if err != nil {
		return "", mapError("get user role", err, domain.ErrUserNotFound)
	}
	return domain.Role(role), nil
}
