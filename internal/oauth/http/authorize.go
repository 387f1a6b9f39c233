package http

import (
	"errors"
	"net/http"

	"github.com/greyhollow/gatekeep/internal/oauth/service"
	"github.com/greyhollow/gatekeep/pkg/httpx"
	"github.com/greyhollow/gatekeep/pkg/oauthsdk"
	"github.com/greyhollow/gatekeep/pkg/slogx"
)

// AuthorizeHandler serves GET /oauth/authorize.
//
// For a registered client it returns the login view as JSON for the host
// application to render, including the registered redirect URI. An unknown
// client_id answers with a 302 to a bare ?error=invalid_client: with no
// client on record there is no redirect target to trust, so the browser
// stays on this origin.
type AuthorizeHandler struct {
	AuthorizeService *service.AuthorizeService
}

func (h *AuthorizeHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	query := r.URL.Query()
	clientID := query.Get("client_id")
	state := query.Get("state")

	view, err := h.AuthorizeService.BeginAuthorization(ctx, clientID, state)
	if err != nil {
		if errors.Is(err, service.ErrInvalidClient) {
			http.Redirect(w, r, "?error="+oauthsdk.ErrorCodeInvalidClient, http.StatusFound)
			return
		}
		log.Error("authorization request failed", "err", err)
		oauthsdk.ErrServerError.WriteError(w)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, oauthsdk.AuthorizationViewResponse{
		ClientID:    view.ClientID,
		RedirectURI: view.RedirectURI,
		LoginTitle:  view.LoginTitle,
		LoginForm:   view.LoginForm,
		State:       view.State,
	})
}
