package middleware

import (
	"net/http"
	"time"

	"github.com/lorrc/mentor-portal/internal/core/domain"
)

const (
	// EditGrantCookie carries the profile edit grant. It is scoped to the edit page.
	EditGrantCookie = "profile_edit_grant"
	// EditGrantHeader carries the grant for API clients.
	EditGrantHeader = "X-Edit-Grant"
)

// SetEditGrantCookie stores grant for ttl.
func SetEditGrantCookie(w http.ResponseWriter, grant string, ttl time.Duration, secure bool) {
	http.SetCookie(w, &http.Cookie{
		Name:     EditGrantCookie,
		Value:    grant,
		Path:     domain.RouteProfileEdit,
		MaxAge:   int(ttl.Seconds()),
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// EditGrantFromRequest returns the grant from the header, else the cookie, or "".
func EditGrantFromRequest(r *http.Request) string {
	if grant := r.Header.Get(EditGrantHeader); grant != "" {
		return grant
	}
	if cookie, err := r.Cookie(EditGrantCookie); err == nil {
		return cookie.Value
	}
	return ""
}
