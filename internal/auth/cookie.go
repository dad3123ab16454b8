package auth

import (
	"net/http"
	"time"
)

// SessionCookie is the name of the session cookie.
const SessionCookie = "session"

// CookieOptions defines how session cookies are issued. It is resolved once
// at startup from the deployment environment rather than branched on inside
// the session path.
type CookieOptions struct {
	Secure   bool
	SameSite http.SameSite
}

// NewCookieOptions returns the cookie flags for the deployment environment:
// strict and HTTPS-only in production, relaxed for local development.
func NewCookieOptions(production bool) CookieOptions {
	if production {
		return CookieOptions{Secure: true, SameSite: http.SameSiteStrictMode}
	}
	return CookieOptions{Secure: false, SameSite: http.SameSiteLaxMode}
}

// SetSessionCookie binds the session token to the client with an HTTP-only
// cookie expiring together with the session row.
func SetSessionCookie(w http.ResponseWriter, token string, expiresAt time.Time, opts CookieOptions) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    token,
		Path:     "/",
		Expires:  expiresAt,
		HttpOnly: true,
		Secure:   opts.Secure,
		SameSite: opts.SameSite,
	})
}

// ClearSessionCookie removes the session cookie from the client.
func ClearSessionCookie(w http.ResponseWriter, opts CookieOptions) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   opts.Secure,
		SameSite: opts.SameSite,
	})
}
