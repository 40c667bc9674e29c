package testutil

import (
	"net/http"
	"time"

	"cims/internal/authz"
	"cims/internal/platform/middleware"
	"cims/pkg/requestcontext"
)

// WithScope attaches a staff scope to the request context, simulating what
// RequireAuth does for an authenticated request.
func WithScope(req *http.Request, scope authz.Scope) *http.Request {
	return req.WithContext(middleware.WithScope(req.Context(), scope))
}

// WithRequestTime pins the request time so handlers under test see a fixed
// clock.
func WithRequestTime(req *http.Request, now time.Time) *http.Request {
	return req.WithContext(requestcontext.WithTime(req.Context(), now))
}
