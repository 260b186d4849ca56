// internal/infrastructure/middleware/auth.go
package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/finbook/finance-tracker/internal/domain/entity"
	"github.com/finbook/finance-tracker/internal/infrastructure/logger"
)

// SessionCookieName is the cookie carrying the session token.
const SessionCookieName = "jwt_token"

// TokenVerifier verifies a session token and returns the embedded user id.
type TokenVerifier interface {
	Verify(ctx context.Context, token string) (string, error)
}

// AuthMiddleware is the access gate: it locates the session token in the
// session cookie, verifies it, and attaches the authenticated user id to the
// request context. Requests without a valid token are rejected with 401 and
// never reach downstream handlers. The gate has no knowledge of the resource
// being accessed.
func AuthMiddleware(tokens TokenVerifier, log logger.Logger) func(http.Handler) http.Handler {
	if log == nil {
		log = logger.GetDefaultLogger()
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			requestID := GetRequestID(r.Context())

			userID, err := authenticate(r, tokens)
			if err != nil {
				log.Warn("Request rejected at access gate", map[string]interface{}{
					"request_id": requestID,
					"path":       r.URL.Path,
					"error":      err.Error(),
				})

				if errors.Is(err, entity.ErrNoToken) {
					writeAuthError(w, "No token, authorization denied")
				} else {
					writeAuthError(w, "Invalid token")
				}
				return
			}

			ctx := context.WithValue(r.Context(), userIDKey, userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// authenticate locates the session cookie and verifies its token
func authenticate(r *http.Request, tokens TokenVerifier) (string, error) {
	cookie, err := r.Cookie(SessionCookieName)
	if err != nil || cookie.Value == "" {
		return "", entity.ErrNoToken
	}

	return tokens.Verify(r.Context(), cookie.Value)
}

func writeAuthError(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)

	json.NewEncoder(w).Encode(map[string]interface{}{
		"error":  message,
		"status": http.StatusUnauthorized,
	})
}
