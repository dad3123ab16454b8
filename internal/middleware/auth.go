package middleware

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/RafaelR4mos/auth-session-app-example/internal/auth"
)

// RequireAuth validates the session cookie against the store and injects the
// resolved user into the request context. An absent cookie, an unknown token,
// and an expired session are all rejected with the same response.
func RequireAuth(sessions *auth.Service) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(auth.SessionCookie)
			if err != nil {
				unauthorized(w)
				return
			}

			user, err := sessions.CurrentUser(r.Context(), cookie.Value)
			if err != nil {
				if errors.Is(err, auth.ErrNotFound) {
					unauthorized(w)
					return
				}
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusInternalServerError)
				json.NewEncoder(w).Encode(map[string]string{"error": "internal error"})
				return
			}

			next.ServeHTTP(w, r.WithContext(auth.ContextWithUser(r.Context(), user)))
		})
	}
}

func unauthorized(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	json.NewEncoder(w).Encode(map[string]string{"error": "not authenticated"})
}
