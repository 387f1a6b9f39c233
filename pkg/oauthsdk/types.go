package oauthsdk

// TokenResponse is the successful token endpoint response body.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int    `json:"expires_in"`
}

// UserInfoResponse is the userinfo endpoint response body.
type UserInfoResponse struct {
	Sub   string `json:"sub"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// AuthorizationViewResponse describes the login view the authorization
// endpoint returns for a valid client, so a frontend can render the consent
// or login page.
type AuthorizationViewResponse struct {
	ClientID    string `json:"client_id"`
	RedirectURI string `json:"redirect_uri"`
	LoginTitle  string `json:"login_title"`
	LoginForm   string `json:"login_form"`
	State       string `json:"state,omitempty"`
}

// ErrorResponse is the standard OAuth2 error response body.
type ErrorResponse struct {
	Error            string `json:"error"`
	ErrorDescription string `json:"error_description"`
}

// HealthChecks holds the per-dependency status of a readiness probe.
type HealthChecks struct {
	Database string `json:"database"`
}

// HealthResponse is the body returned by the health endpoints.
type HealthResponse struct {
	Status  string        `json:"status"`
	Uptime  string        `json:"uptime,omitempty"`
	Version string        `json:"version,omitempty"`
	Checks  *HealthChecks `json:"checks,omitempty"`
}
