package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/greyhollow/gatekeep/internal/oauth/domain"
)

type authorizationCodesRepo struct {
	db *sql.DB
}

func (r *authorizationCodesRepo) CreateAuthorizationCode(ctx context.Context, code domain.AuthorizationCode) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO oauth_authorization_codes (id, code_hash, client_id, user_id, redirect_uri, expires_at, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		code.ID, code.CodeHash, code.ClientID, code.UserID, code.RedirectURI,
		code.ExpiresAt.UTC(), time.Now().UTC(),
	)
	return err
}

// ConsumeAuthorizationCode is the check-and-delete the whole grant hinges on.
// The conditional DELETE ... RETURNING executes as one statement, so two
// concurrent redemptions of the same code can never both see the row. An
// expired row does not match the WHERE clause and is left for housekeeping.
func (r *authorizationCodesRepo) ConsumeAuthorizationCode(ctx context.Context, codeHash, clientID string, now time.Time) (string, error) {
	row := r.db.QueryRowContext(ctx, `
		DELETE FROM oauth_authorization_codes
		WHERE code_hash = ? AND client_id = ? AND expires_at > ?
		RETURNING user_id`,
		codeHash, clientID, now.UTC(),
	)

	var userID string
	if err := row.Scan(&userID); err != nil {
		if err == sql.ErrNoRows {
			return "", mapNotFound(err)
		}
		return "", err
	}
	return userID, nil
}

func (r *authorizationCodesRepo) DeleteExpiredAuthorizationCodes(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, `
		DELETE FROM oauth_authorization_codes WHERE expires_at <= ?`,
		time.Now().UTC(),
	)
	return err
}
