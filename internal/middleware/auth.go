package middleware

import (
	"context"
	"log"
	"net/http"
	"strings"

	"github.com/biteflow/restaurant-service/internal/api"
	"github.com/biteflow/restaurant-service/internal/apperr"
	"github.com/biteflow/restaurant-service/internal/service"
	"github.com/google/uuid"
)

// TokenCookie is the cookie sessions are carried in
const TokenCookie = "token"

// contextKey is a type for context keys
type contextKey string

// Context keys
const (
	UserIDKey contextKey = "userID"
	ClaimsKey contextKey = "claims"
)

// TokenValidator verifies a session token
type TokenValidator interface {
	ValidateToken(tokenString string) (*service.Claims, error)
}

// Authenticate admits user sessions only. Admin sessions issued for the
// configured admin email carry no user id and are rejected.
func Authenticate(validator TokenValidator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, err := verify(validator, r)
			if err != nil {
				api.Error(w, err)
				return
			}

			if claims.ID == "" {
				api.Error(w, apperr.Unauthenticated("Not Authorized"))
				return
			}

			userID, err := uuid.Parse(claims.ID)
			if err != nil {
				api.Error(w, apperr.Unauthenticated("Invalid token"))
				return
			}

			ctx := context.WithValue(r.Context(), UserIDKey, userID)
			ctx = context.WithValue(ctx, ClaimsKey, claims)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// AdminOnly admits the configured admin and any session with the admin role
func AdminOnly(validator TokenValidator, adminEmail string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, err := verify(validator, r)
			if err != nil {
				api.Error(w, err)
				return
			}

			if !claims.IsAdmin(adminEmail) {
				api.Error(w, apperr.Forbidden("Forbidden"))
				return
			}

			ctx := context.WithValue(r.Context(), ClaimsKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func verify(validator TokenValidator, r *http.Request) (*service.Claims, error) {
	tokenString := tokenFromRequest(r)
	if tokenString == "" {
		return nil, apperr.Unauthenticated("Not Authorized")
	}

	claims, err := validator.ValidateToken(tokenString)
	if err != nil {
		log.Printf("Rejected token for %s %s: %v", r.Method, r.URL.Path, err)
		return nil, apperr.Unauthenticated("Invalid token")
	}

	return claims, nil
}

// tokenFromRequest prefers the session cookie and falls back to a Bearer header
func tokenFromRequest(r *http.Request) string {
	if cookie, err := r.Cookie(TokenCookie); err == nil && cookie.Value != "" {
		return cookie.Value
	}

	parts := strings.SplitN(r.Header.Get("Authorization"), " ", 2)
	if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
		return strings.TrimSpace(parts[1])
	}

	return ""
}

// GetUserID returns the user id placed by Authenticate
func GetUserID(ctx context.Context) (uuid.UUID, bool) {
	id, ok := ctx.Value(UserIDKey).(uuid.UUID)
	return id, ok
}

// GetClaims returns the verified claims placed by either gate
func GetClaims(ctx context.Context) (*service.Claims, bool) {
	claims, ok := ctx.Value(ClaimsKey).(*service.Claims)
	return claims, ok
}
