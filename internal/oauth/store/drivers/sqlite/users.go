package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/greyhollow/gatekeep/internal/oauth/domain"
)

type usersRepo struct {
	db *sql.DB
}

func (r *usersRepo) GetUserByID(ctx context.Context, id string) (domain.UserProfile, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, first_name, last_name, email, created_at
		FROM users
		WHERE id = ?`, id)

	var u domain.UserProfile
	err := row.Scan(&u.ID, &u.FirstName, &u.LastName, &u.Email, &u.CreatedAt)
	if err != nil {
		return domain.UserProfile{}, mapNotFound(err)
	}
	return u, nil
}

func (r *usersRepo) CreateUser(ctx context.Context, u domain.UserProfile) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO users (id, first_name, last_name, email, created_at)
		VALUES (?, ?, ?, ?, ?)`,
		u.ID, u.FirstName, u.LastName, u.Email, time.Now().UTC(),
	)
	return err
}
