package middleware

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"cims/internal/authz"
	id "cims/pkg/domain"
	"cims/pkg/requestcontext"
)

type scopeKey struct{}

// ContextKeyScope is exported for tests that build contexts by hand.
var ContextKeyScope = scopeKey{}

// GetScope retrieves the authenticated staff scope from the context.
func GetScope(ctx context.Context) (authz.Scope, bool) {
	scope, ok := ctx.Value(ContextKeyScope).(authz.Scope)
	return scope, ok
}

// WithScope injects a scope into a context. Test helper and internal use.
func WithScope(ctx context.Context, scope authz.Scope) context.Context {
	return context.WithValue(ctx, ContextKeyScope, scope)
}

// staffClaims are the claims the identity provider issues for staff tokens.
// Token issuance and sessions live in the identity provider, not here; this
// service only verifies and reads.
type staffClaims struct {
	Role         string `json:"role"`
	ProvinceCode string `json:"province_code,omitempty"`
	LGUCode      string `json:"lgu_code,omitempty"`
	jwt.RegisteredClaims
}

// ScopeValidator turns a bearer token into a staff capability scope.
type ScopeValidator interface {
	ValidateToken(tokenString string) (authz.Scope, error)
}

// JWTValidator verifies HMAC-signed staff tokens.
type JWTValidator struct {
	signingKey []byte
}

func NewJWTValidator(signingKey string) *JWTValidator {
	return &JWTValidator{signingKey: []byte(signingKey)}
}

func (v *JWTValidator) ValidateToken(tokenString string) (authz.Scope, error) {
	var claims staffClaims
	token, err := jwt.ParseWithClaims(tokenString, &claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return v.signingKey, nil
	})
	if err != nil {
		return authz.Scope{}, fmt.Errorf("parse token: %w", err)
	}
	if !token.Valid {
		return authz.Scope{}, fmt.Errorf("invalid token")
	}

	staffID, err := id.ParseStaffID(claims.Subject)
	if err != nil {
		return authz.Scope{}, err
	}
	role, err := id.ParseRole(claims.Role)
	if err != nil {
		return authz.Scope{}, err
	}

	return authz.Scope{
		StaffID:      staffID,
		Role:         role,
		ProvinceCode: claims.ProvinceCode,
		LGUCode:      claims.LGUCode,
	}, nil
}

// RequireAuth rejects requests without a valid bearer token and attaches the
// resolved scope to the context.
func RequireAuth(validator ScopeValidator, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			token, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
			if !ok || token == "" {
				logger.WarnContext(ctx, "unauthorized access - missing token",
					"request_id", requestcontext.RequestID(ctx),
				)
				writeUnauthorized(w, "Missing or invalid Authorization header")
				return
			}

			scope, err := validator.ValidateToken(token)
			if err != nil {
				logger.WarnContext(ctx, "unauthorized access - invalid token",
					"error", err,
					"request_id", requestcontext.RequestID(ctx),
				)
				writeUnauthorized(w, "Invalid or expired token")
				return
			}

			next.ServeHTTP(w, r.WithContext(WithScope(ctx, scope)))
		})
	}
}

func writeUnauthorized(w http.ResponseWriter, description string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_, _ = fmt.Fprintf(w, `{"error":"unauthorized","error_description":"%s"}`, description)
}
