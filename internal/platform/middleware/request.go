// Package middleware carries the HTTP cross-cutting concerns: request
// metadata injection and the staff capability scope.
package middleware

import (
	"net/http"
	"time"

	"github.com/google/uuid"

	"cims/pkg/requestcontext"
)

// RequestMetadata assigns every request an ID and pins the request time so
// all derived computation in one request reads the same clock.
func RequestMetadata(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		ctx = requestcontext.WithRequestID(ctx, uuid.NewString())
		ctx = requestcontext.WithTime(ctx, time.Now().UTC())
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
