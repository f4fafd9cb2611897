package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/lorrc/mentor-portal/internal/auth"
	"github.com/lorrc/mentor-portal/internal/core/domain"
	"github.com/lorrc/mentor-portal/internal/infrastructure/logging"
)

// contextKey is a custom type for context keys to avoid collisions.
type contextKey string

const (
	// UserClaimsKey is the key used to store user claims in the request context.
	UserClaimsKey contextKey = "userClaims"
	tokenKey      contextKey = "sessionToken"
)

// SessionCookie carries the session token for browser requests.
const SessionCookie = "access_token"

// JWTMiddleware validates the session token and answers 401 JSON when it is
// missing or invalid.
func JWTMiddleware(tm *auth.TokenManager) func(http.Handler) http.Handler {
	return SessionMiddleware(tm, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		_ = json.NewEncoder(w).Encode(map[string]string{
			"error": "Authentication required",
			"code":  "UNAUTHORIZED",
		})
	}))
}

// SessionMiddleware validates the session token from the Authorization header
// or the session cookie, and hands unauthenticated requests to unauthorized.
func SessionMiddleware(tm *auth.TokenManager, unauthorized http.Handler) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenString, ok := tokenFromRequest(r)
			if !ok {
				unauthorized.ServeHTTP(w, r)
				return
			}

			claims, err := tm.ValidateToken(tokenString)
			if err != nil {
				unauthorized.ServeHTTP(w, r)
				return
			}

			ctx := context.WithValue(r.Context(), UserClaimsKey, claims)
			ctx = context.WithValue(ctx, tokenKey, tokenString)
			ctx = logging.WithUserID(ctx, claims.UserID.String())
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func tokenFromRequest(r *http.Request) (string, bool) {
	if authHeader := r.Header.Get("Authorization"); authHeader != "" {
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
			return "", false
		}
		return parts[1], true
	}

	if cookie, err := r.Cookie(SessionCookie); err == nil && cookie.Value != "" {
		return cookie.Value, true
	}
	return "", false
}

// GetClaims returns the validated claims of the request.
func GetClaims(ctx context.Context) (*auth.Claims, bool) {
	claims, ok := ctx.Value(UserClaimsKey).(*auth.Claims)
	return claims, ok && claims != nil
}

// SessionFromContext returns the session the account backend is called with.
func SessionFromContext(ctx context.Context) (domain.Session, bool) {
	claims, ok := GetClaims(ctx)
	if !ok {
		return domain.Session{}, false
	}
	token, _ := ctx.Value(tokenKey).(string)
	return domain.Session{UserID: claims.UserID, Token: token}, true
}
