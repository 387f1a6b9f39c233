package service

import (
	"context"
	"errors"
	"time"

	"github.com/greyhollow/gatekeep/internal/oauth/domain"
	"github.com/greyhollow/gatekeep/internal/oauth/store"
	"github.com/greyhollow/gatekeep/pkg/cryptox"
	"github.com/greyhollow/gatekeep/pkg/idx"
	"github.com/greyhollow/gatekeep/pkg/slogx"
)

// DefaultAccessTTL is the lifetime of issued access tokens.
const DefaultAccessTTL = time.Hour

// GrantTypeAuthorizationCode is the only grant type this server supports.
const GrantTypeAuthorizationCode = "authorization_code"

// ExchangeRequest carries the token endpoint form fields. Absent fields
// arrive as empty strings; validation happens inside Exchange, field by
// field, in the order the checks apply.
type ExchangeRequest struct {
	ClientID     string
	ClientSecret string
	GrantType    string
	Code         string
}

// TokenService implements the token endpoint's grant exchange and bearer
// token validation.
type TokenService struct {
	Store     store.Store
	Registry  *ClientService
	AccessTTL time.Duration
}

func (s *TokenService) accessTTL() time.Duration {
	if s.AccessTTL > 0 {
		return s.AccessTTL
	}
	return DefaultAccessTTL
}

// Exchange redeems an authorization code for a bearer access token.
//
// Checks run in a fixed order: client credentials first, then grant type,
// then the code itself. A failed credential check must not consume the code,
// so the atomic redeem happens strictly after authentication succeeds.
func (s *TokenService) Exchange(ctx context.Context, req ExchangeRequest) (domain.AccessTokenGrant, error) {
	l := slogx.FromContext(ctx)
	now := time.Now().UTC()

	// The registered redirect URI is looked up for diagnostics only; the
	// authorization_code exchange itself does not redirect anywhere.
	if client, err := s.Registry.FindByClientID(ctx, req.ClientID); err == nil {
		l.Debug("token exchange requested", "client_id", req.ClientID, "redirect_uri", client.RedirectURI)
	}

	if _, err := s.Registry.VerifyCredentials(ctx, req.ClientID, req.ClientSecret); err != nil {
		return domain.AccessTokenGrant{}, err
	}

	if req.GrantType != GrantTypeAuthorizationCode {
		l.Info("unsupported grant type requested", "client_id", req.ClientID, "grant_type", req.GrantType)
		return domain.AccessTokenGrant{}, ErrUnsupportedGrantType
	}

	userID, err := s.Store.AuthorizationCodes().ConsumeAuthorizationCode(
		ctx, cryptox.FingerprintToken(req.Code), req.ClientID, now)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			l.Info("authorization code rejected", "client_id", req.ClientID)
			return domain.AccessTokenGrant{}, ErrInvalidGrant
		}
		return domain.AccessTokenGrant{}, err
	}

	token, err := cryptox.GenerateToken(cryptox.TokenSize256)
	if err != nil {
		l.Error("failed to generate access token", "error", err)
		return domain.AccessTokenGrant{}, err
	}

	ttl := s.accessTTL()
	err = s.Store.AccessTokens().CreateAccessToken(ctx, domain.AccessToken{
		ID:        idx.New().String(),
		UserID:    userID,
		ClientID:  req.ClientID,
		TokenHash: cryptox.FingerprintToken(token),
		ExpiresAt: now.Add(ttl),
		CreatedAt: now,
	})
	if err != nil {
		l.Error("failed to store access token", "error", err, "client_id", req.ClientID)
		return domain.AccessTokenGrant{}, err
	}

	l.Info("access token issued", "client_id", req.ClientID, "user_id", userID)
	return domain.AccessTokenGrant{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresIn:   ttl,
	}, nil
}

// Validate checks a presented bearer token and returns the user it was
// issued for. Unknown and expired tokens both map to ErrInvalidToken;
// validation does not consume the token.
func (s *TokenService) Validate(ctx context.Context, token string) (string, error) {
	record, err := s.Store.AccessTokens().GetAccessTokenByHash(ctx, cryptox.FingerprintToken(token))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return "", ErrInvalidToken
		}
		return "", err
	}

	if !record.ExpiresAt.After(time.Now().UTC()) {
		return "", ErrInvalidToken
	}

	return record.UserID, nil
}
