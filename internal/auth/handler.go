package auth

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/RafaelR4mos/auth-session-app-example/internal/models"
)

// Handler holds auth-related HTTP handlers.
type Handler struct {
	sessions *Service
	cookies  CookieOptions
	log      *slog.Logger
}

func NewHandler(sessions *Service, cookies CookieOptions, log *slog.Logger) *Handler {
	return &Handler{sessions: sessions, cookies: cookies, log: log}
}

// Login verifies credentials and binds a new session to the client.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.CredentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Email == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "email and password are required")
		return
	}

	session, err := h.sessions.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			writeError(w, http.StatusUnauthorized, "invalid credentials")
			return
		}
		h.log.Error("login failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	SetSessionCookie(w, session.Token, session.ExpiresAt, h.cookies)
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

// Register creates a user and immediately logs it in.
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req models.CredentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Email == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "email and password are required")
		return
	}

	session, err := h.sessions.Register(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, ErrEmailTaken) {
			writeError(w, http.StatusConflict, "email already registered")
			return
		}
		h.log.Error("register failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	SetSessionCookie(w, session.Token, session.ExpiresAt, h.cookies)
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

// Logout destroys the current session and clears the cookie. Always clears,
// even when no matching session row existed, so it is safe to call twice.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(SessionCookie); err == nil {
		if err := h.sessions.Logout(r.Context(), cookie.Value); err != nil {
			h.log.Error("logout failed", "error", err)
			ClearSessionCookie(w, h.cookies)
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}
	}

	ClearSessionCookie(w, h.cookies)
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

// Me returns the user resolved from the session cookie by RequireAuth.
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	user, ok := UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "not authenticated")
		return
	}
	writeJSON(w, http.StatusOK, user)
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
