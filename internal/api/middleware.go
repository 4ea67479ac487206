package api

import (
	"context"
	"net/http"
	"strings"
	"time"

	"photodrive/internal/platform/crypto"

	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/v2/bson"
)

// CtxKey is a custom type for context keys to avoid collisions.
type CtxKey string

const (
	// UserIDKey is the key for storing the user's ID in the request context.
	UserIDKey CtxKey = "userID"
	// IdentityKey is the key for storing the user's email in the request
	// context. The email is the identity string recorded on folders.
	IdentityKey CtxKey = "identity"
)

// AuthMiddleware verifies access tokens and attaches the caller's identity to
// the request context.
type AuthMiddleware struct {
	tokenSvc crypto.TokenGenerator
}

// NewAuthMiddleware creates a new AuthMiddleware.
func NewAuthMiddleware(tokenSvc crypto.TokenGenerator) *AuthMiddleware {
	return &AuthMiddleware{tokenSvc: tokenSvc}
}

// RequireAuth checks for a valid access token in the "access-token" cookie or
// a bearer Authorization header. The "isAuthenticated" cookie set at sign-in
// is advisory only and is never consulted here.
func (m *AuthMiddleware) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := bearerToken(r)
		if token == "" {
			cookie, err := r.Cookie("access-token")
			if err != nil {
				writeJSON(w, http.StatusUnauthorized, NewUnauthorizedError("Missing authentication token"))
				return
			}
			token = cookie.Value
		}

		claims, err := m.tokenSvc.Verify(token)
		if err != nil {
			writeJSON(w, http.StatusUnauthorized, NewUnauthorizedError("Invalid authentication token"))
			return
		}

		ctx := context.WithValue(r.Context(), UserIDKey, claims.UserID)
		ctx = context.WithValue(ctx, IdentityKey, claims.Email)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}
	return ""
}

// GetUserIDFromContext is a helper to safely retrieve the user ID from the
// context.
func GetUserIDFromContext(ctx context.Context) (bson.ObjectID, bool) {
	userID, ok := ctx.Value(UserIDKey).(bson.ObjectID)
	return userID, ok
}

// GetIdentityFromContext is a helper to safely retrieve the caller's email
// from the context.
func GetIdentityFromContext(ctx context.Context) (string, bool) {
	identity, ok := ctx.Value(IdentityKey).(string)
	return identity, ok
}

// loggingMiddleware emits one structured log line per request.
func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		log.Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Dur("elapsed", time.Since(start)).
			Msg("request")
	})
}
