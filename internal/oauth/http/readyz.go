package http

import (
	"net/http"
	"time"

	"github.com/greyhollow/gatekeep/internal/oauth/store"
	"github.com/greyhollow/gatekeep/pkg/httpx"
	"github.com/greyhollow/gatekeep/pkg/oauthsdk"
)

// ReadyzHandler is the readiness probe. It reports 503 when the database is
// unreachable, so load balancers stop routing traffic here.
func ReadyzHandler(startTime time.Time, version string, st store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		checks := &oauthsdk.HealthChecks{Database: "ok"}
		overallStatus := "ok"
		statusCode := http.StatusOK

		if err := st.Ping(r.Context()); err != nil {
			checks.Database = "error: " + err.Error()
			overallStatus = "degraded"
			statusCode = http.StatusServiceUnavailable
		}

		httpx.WriteJSON(w, statusCode, oauthsdk.HealthResponse{
			Status:  overallStatus,
			Uptime:  time.Since(startTime).String(),
			Version: version,
			Checks:  checks,
		})
	}
}
