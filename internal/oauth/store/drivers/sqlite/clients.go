package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/greyhollow/gatekeep/internal/oauth/domain"
)

type clientsRepo struct {
	db *sql.DB
}

func (r *clientsRepo) GetClientByClientID(ctx context.Context, clientID string) (domain.Client, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, client_id, client_secret_hash, redirect_uri, login_title, login_form, enabled, created_at, updated_at
		FROM oauth_clients
		WHERE client_id = ?`, clientID)

	var c domain.Client
	err := row.Scan(
		&c.ID,
		&c.ClientID,
		&c.ClientSecretHash,
		&c.RedirectURI,
		&c.LoginTitle,
		&c.LoginForm,
		&c.Enabled,
		&c.CreatedAt,
		&c.UpdatedAt,
	)
	if err != nil {
		return domain.Client{}, mapNotFound(err)
	}
	return c, nil
}

func (r *clientsRepo) CreateClient(ctx context.Context, c domain.Client) error {
	now := time.Now().UTC()
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO oauth_clients (id, client_id, client_secret_hash, redirect_uri, login_title, login_form, enabled, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		c.ID, c.ClientID, c.ClientSecretHash, c.RedirectURI, c.LoginTitle, c.LoginForm, c.Enabled, now, now,
	)
	return err
}

func (r *clientsRepo) SetClientEnabled(ctx context.Context, clientID string, enabled bool) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE oauth_clients SET enabled = ?, updated_at = ? WHERE client_id = ?`,
		enabled, time.Now().UTC(), clientID,
	)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return mapNotFound(sql.ErrNoRows)
	}
	return nil
}
