package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/greyhollow/gatekeep/internal/oauth/domain"
)

type accessTokensRepo struct {
	db *sql.DB
}

func (r *accessTokensRepo) CreateAccessToken(ctx context.Context, t domain.AccessToken) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO oauth_access_tokens (id, token_hash, client_id, user_id, expires_at, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		t.ID, t.TokenHash, t.ClientID, t.UserID, t.ExpiresAt.UTC(), time.Now().UTC(),
	)
	return err
}

func (r *accessTokensRepo) GetAccessTokenByHash(ctx context.Context, hash string) (domain.AccessToken, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, token_hash, client_id, user_id, expires_at, created_at
		FROM oauth_access_tokens
		WHERE token_hash = ?`, hash)

	var t domain.AccessToken
	err := row.Scan(&t.ID, &t.TokenHash, &t.ClientID, &t.UserID, &t.ExpiresAt, &t.CreatedAt)
	if err != nil {
		return domain.AccessToken{}, mapNotFound(err)
	}
	return t, nil
}

func (r *accessTokensRepo) DeleteExpiredAccessTokens(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, `
		DELETE FROM oauth_access_tokens WHERE expires_at <= ?`,
		time.Now().UTC(),
	)
	return err
}
