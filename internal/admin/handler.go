// Package admin exposes the operator escape hatch over the session table:
// list every session (expired ones included) and force-revoke any session by
// id without possession of its cookie.
package admin

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/RafaelR4mos/auth-session-app-example/internal/models"
)

// SessionStore defines the persistence the admin surface needs.
type SessionStore interface {
	// ListSessions returns every session joined with its user, newest
	// first, with no liveness filter.
	ListSessions(ctx context.Context) ([]models.SessionRow, error)

	// DeleteSessionByID removes a session and reports rows affected.
	DeleteSessionByID(ctx context.Context, id string) (int64, error)
}

// Handler holds the administrative session handlers.
type Handler struct {
	store SessionStore
	log   *slog.Logger
}

func NewHandler(store SessionStore, log *slog.Logger) *Handler {
	return &Handler{store: store, log: log}
}

// List returns all sessions, newest first.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	sessions, err := h.store.ListSessions(r.Context())
	if err != nil {
		h.log.Error("list sessions failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusOK, map[string][]models.SessionRow{"sessions": sessions})
}

// Revoke force-deletes a session by id. Distinct from logout: it needs only
// the identifier, not the cookie, and reports a miss as 404.
func (h *Handler) Revoke(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "session id is required")
		return
	}

	affected, err := h.store.DeleteSessionByID(r.Context(), id)
	if err != nil {
		h.log.Error("revoke session failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	if affected == 0 {
		writeError(w, http.StatusNotFound, "session not found")
		return
	}

	h.log.Info("session revoked", "session_id", id)
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
