package security

import (
	"net/http"
)

// SessionCookieName carries the session token (the user's email).
const SessionCookieName = "session"

// The cookie must ride cross-site requests from the allow-listed front end,
// so SameSite=None, which browsers only accept together with Secure.
// Plain-HTTP clients therefore cannot hold a session.
func sessionCookie(value string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     SessionCookieName,
		Value:    value,
		Path:     "/",
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteNoneMode,
		MaxAge:   maxAge,
	}
}

// SetSession issues the session cookie. It has no expiry: it lives until
// the browser session ends or logout clears it.
func SetSession(w http.ResponseWriter, token string) {
	http.SetCookie(w, sessionCookie(token, 0))
}

func ClearSession(w http.ResponseWriter) {
	http.SetCookie(w, sessionCookie("", -1))
}

// ReadSession returns the session token, or "" when the request carries none.
func ReadSession(r *http.Request) string {
	c, err := r.Cookie(SessionCookieName)
	if err != nil {
		return ""
	}
	return c.Value
}
