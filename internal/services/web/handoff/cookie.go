package handoff

import (
	"net/http"
	"strings"
	"time"

	"github.com/greenblade/lawncare/internal/services/web/platform/requestmeta"
)

// CookieName carries the signed handoff token.
const CookieName = "gb_handoff"

// ReadCookie returns the trimmed handoff token when present.
func ReadCookie(r *http.Request) (string, bool) {
	if r == nil {
		return "", false
	}
	cookie, err := r.Cookie(CookieName)
	if err != nil || cookie == nil {
		return "", false
	}
	value := strings.TrimSpace(cookie.Value)
	if value == "" {
		return "", false
	}
	return value, true
}

// WriteCookie sets the handoff cookie until expiresAt.
func WriteCookie(w http.ResponseWriter, r *http.Request, token string, expiresAt time.Time, policy requestmeta.SchemePolicy) {
	if w == nil {
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    strings.TrimSpace(token),
		Path:     "/",
		Expires:  expiresAt.UTC(),
		HttpOnly: true,
		Secure:   requestmeta.IsHTTPS(r, policy),
		SameSite: http.SameSiteLaxMode,
	})
}

// ClearCookie expires the handoff cookie.
func ClearCookie(w http.ResponseWriter, r *http.Request, policy requestmeta.SchemePolicy) {
	if w == nil {
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		Secure:   requestmeta.IsHTTPS(r, policy),
		SameSite: http.SameSiteLaxMode,
		MaxAge:   -1,
	})
}
