package service

import (
	"context"
	"errors"

	"github.com/greyhollow/gatekeep/internal/oauth/domain"
	"github.com/greyhollow/gatekeep/internal/oauth/store"
	"github.com/greyhollow/gatekeep/pkg/cryptox"
	"github.com/greyhollow/gatekeep/pkg/slogx"
)

// Sentinel errors for the OAuth2 flows. The HTTP layer maps these onto the
// RFC 6749 error vocabulary.
var (
	ErrInvalidClient        = errors.New("invalid_client")
	ErrUnsupportedGrantType = errors.New("unsupported_grant_type")
	ErrInvalidGrant         = errors.New("invalid_grant")
	ErrInvalidToken         = errors.New("invalid_token")
)

// ClientService is the read side of the client registry. Registration and
// secret rotation are administrative operations outside the grant flows, so
// this service only ever looks clients up and checks credentials.
type ClientService struct {
	Store store.Store
}

// FindByClientID returns the registered client for a public client_id.
// Unknown clients map to ErrInvalidClient.
func (s *ClientService) FindByClientID(ctx context.Context, clientID string) (domain.Client, error) {
	client, err := s.Store.Clients().GetClientByClientID(ctx, clientID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Client{}, ErrInvalidClient
		}
		return domain.Client{}, err
	}
	return client, nil
}

// VerifyClient checks that a client exists, is enabled, and that the given
// redirect URI exactly matches the registered one. This is the gate applied
// before an authorization code is minted.
func (s *ClientService) VerifyClient(ctx context.Context, clientID, redirectURI string) (domain.Client, error) {
	l := slogx.FromContext(ctx)

	client, err := s.FindByClientID(ctx, clientID)
	if err != nil {
		return domain.Client{}, err
	}

	if !client.Enabled {
		l.Info("authorization attempt for disabled client", "client_id", clientID)
		return domain.Client{}, ErrInvalidClient
	}

	// Exact string match only. No prefix or wildcard matching.
	if client.RedirectURI != redirectURI {
		l.Info("authorization redirect_uri mismatch", "client_id", clientID)
		return domain.Client{}, ErrInvalidClient
	}

	return client, nil
}

// VerifyCredentials authenticates a client by id and secret for the token
// endpoint. The enabled flag is deliberately not consulted here: disabling a
// client stops new authorizations at the authorization endpoint, while codes
// already issued remain exchangeable until they expire.
func (s *ClientService) VerifyCredentials(ctx context.Context, clientID, clientSecret string) (domain.Client, error) {
	l := slogx.FromContext(ctx)

	client, err := s.FindByClientID(ctx, clientID)
	if err != nil {
		return domain.Client{}, err
	}

	ok, err := cryptox.VerifySecret(clientSecret, client.ClientSecretHash)
	if err != nil || !ok {
		l.Info("client authentication failed", "client_id", clientID)
		return domain.Client{}, ErrInvalidClient
	}

	return client, nil
}
