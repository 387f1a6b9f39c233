package service

import (
	"context"
	"time"

	"github.com/greyhollow/gatekeep/internal/oauth/domain"
	"github.com/greyhollow/gatekeep/internal/oauth/store"
	"github.com/greyhollow/gatekeep/pkg/cryptox"
	"github.com/greyhollow/gatekeep/pkg/idx"
	"github.com/greyhollow/gatekeep/pkg/slogx"
)

// DefaultCodeTTL is how long an authorization code stays exchangeable.
const DefaultCodeTTL = 10 * time.Minute

// AuthorizationView is what the authorization endpoint hands to the frontend
// for a verified client, so the host application can render its login page.
type AuthorizationView struct {
	ClientID    string
	RedirectURI string
	LoginTitle  string
	LoginForm   string
	State       string
}

// AuthorizeService implements the authorization endpoint's server side:
// verifying the requesting client and, once the host application has
// authenticated the user, minting single-use authorization codes.
type AuthorizeService struct {
	Store    store.Store
	Registry *ClientService
	CodeTTL  time.Duration
}

func (s *AuthorizeService) codeTTL() time.Duration {
	if s.CodeTTL > 0 {
		return s.CodeTTL
	}
	return DefaultCodeTTL
}

// BeginAuthorization looks the client up and returns the login view for
// rendering, using the registered redirect URI. Only unknown clients come
// back as ErrInvalidClient; enablement and redirect-URI matching are
// enforced later, when IssueAuthorizationCode mints the code.
func (s *AuthorizeService) BeginAuthorization(ctx context.Context, clientID, state string) (AuthorizationView, error) {
	client, err := s.Registry.FindByClientID(ctx, clientID)
	if err != nil {
		return AuthorizationView{}, err
	}

	return AuthorizationView{
		ClientID:    client.ClientID,
		RedirectURI: client.RedirectURI,
		LoginTitle:  client.LoginTitle,
		LoginForm:   client.LoginForm,
		State:       state,
	}, nil
}

// IssueAuthorizationCode mints a fresh authorization code for userID after
// the host application has authenticated them. The raw code is returned to
// be delivered to the client via redirect; only its fingerprint is stored.
func (s *AuthorizeService) IssueAuthorizationCode(ctx context.Context, clientID, redirectURI, userID string) (string, error) {
	l := slogx.FromContext(ctx)

	client, err := s.Registry.VerifyClient(ctx, clientID, redirectURI)
	if err != nil {
		return "", err
	}

	code, err := cryptox.GenerateToken(cryptox.TokenSize128)
	if err != nil {
		l.Error("failed to generate authorization code", "error", err)
		return "", err
	}

	now := time.Now().UTC()
	err = s.Store.AuthorizationCodes().CreateAuthorizationCode(ctx, domain.AuthorizationCode{
		ID:          idx.New().String(),
		UserID:      userID,
		ClientID:    client.ClientID,
		CodeHash:    cryptox.FingerprintToken(code),
		RedirectURI: redirectURI,
		ExpiresAt:   now.Add(s.codeTTL()),
		CreatedAt:   now,
	})
	if err != nil {
		l.Error("failed to store authorization code", "error", err, "client_id", clientID)
		return "", err
	}

	l.Info("authorization code issued", "client_id", clientID, "user_id", userID)
	return code, nil
}
