package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/greyhollow/gatekeep/internal/oauth/service"
	"github.com/greyhollow/gatekeep/pkg/httpx"
	"github.com/greyhollow/gatekeep/pkg/oauthsdk"
	"github.com/greyhollow/gatekeep/pkg/slogx"
)

// TokenHandler serves POST /oauth/token.
// Accepts application/x-www-form-urlencoded per RFC 6749.
type TokenHandler struct {
	TokenService *service.TokenService
}

func (h *TokenHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	if ct := r.Header.Get("Content-Type"); ct != "" &&
		!strings.HasPrefix(ct, "application/x-www-form-urlencoded") {
		oauthsdk.ErrInvalidContentType.WriteError(w)
		return
	}

	if err := r.ParseForm(); err != nil {
		oauthsdk.ErrInvalidFormBody.WriteError(w)
		return
	}

	// Fields default to "" when absent. Presence is not validated here: an
	// empty client_id or code simply fails the corresponding check in the
	// service, producing invalid_client or invalid_grant rather than
	// invalid_request.
	grant, err := h.TokenService.Exchange(ctx, service.ExchangeRequest{
		ClientID:     r.Form.Get("client_id"),
		ClientSecret: r.Form.Get("client_secret"),
		GrantType:    r.Form.Get("grant_type"),
		Code:         r.Form.Get("code"),
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidClient):
			oauthsdk.ErrInvalidClient.WriteError(w)
		case errors.Is(err, service.ErrUnsupportedGrantType):
			oauthsdk.ErrUnsupportedGrantType.WriteError(w)
		case errors.Is(err, service.ErrInvalidGrant):
			oauthsdk.ErrInvalidGrant.WriteError(w)
		default:
			log.Error("token exchange failed", "err", err)
			oauthsdk.ErrServerError.WriteError(w)
		}
		return
	}

	httpx.WriteJSON(w, http.StatusOK, oauthsdk.TokenResponse{
		AccessToken: grant.AccessToken,
		TokenType:   grant.TokenType,
		ExpiresIn:   int(grant.ExpiresIn.Seconds()),
	})
}
