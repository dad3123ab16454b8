package admin_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RafaelR4mos/auth-session-app-example/internal/admin"
	"github.com/RafaelR4mos/auth-session-app-example/internal/models"
	"github.com/RafaelR4mos/auth-session-app-example/internal/store"
)

func newTestHandler(t *testing.T) (*chi.Mux, *store.MemoryStore) {
	t.Helper()

	mem := store.NewMemoryStore()
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	h := admin.NewHandler(mem, log)

	r := chi.NewRouter()
	r.Get("/sessions", h.List)
	r.Delete("/sessions/{id}", h.Revoke)
	return r, mem
}

// seedSession inserts a user (once per email) and a session at the given
// creation instant.
func seedSession(t *testing.T, mem *store.MemoryStore, email, token string, createdAt time.Time, ttl time.Duration) {
	t.Helper()
	ctx := context.Background()

	userID, err := mem.CreateUser(ctx, email, "hash")
	if err != nil {
		u, ferr := mem.FindUserByEmail(ctx, email)
		require.NoError(t, ferr)
		userID = u.ID
	}

	mem.SetClock(func() time.Time { return createdAt })
	_, err = mem.InsertSession(ctx, token, userID, ttl)
	require.NoError(t, err)
	mem.SetClock(time.Now)
}

func listSessions(t *testing.T, r http.Handler) []models.SessionRow {
	t.Helper()

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/sessions", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Sessions []models.SessionRow `json:"sessions"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body.Sessions
}

func TestList_NewestFirstIncludingExpired(t *testing.T) {
	r, mem := newTestHandler(t)
	base := time.Now().Add(-time.Hour)

	seedSession(t, mem, "old@x.com", "token-old", base, time.Minute) // long expired
	seedSession(t, mem, "new@x.com", "token-new", base.Add(30*time.Minute), 24*time.Hour)

	sessions := listSessions(t, r)
	require.Len(t, sessions, 2, "expired sessions stay visible to operators")
	assert.Equal(t, "token-new", sessions[0].ID)
	assert.Equal(t, "token-old", sessions[1].ID)
	assert.Equal(t, "new@x.com", sessions[0].Email)
}

func TestList_Empty(t *testing.T) {
	r, _ := newTestHandler(t)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/sessions", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"sessions":[]}`, w.Body.String())
}

func TestRevoke_RemovesExactlyOne(t *testing.T) {
	r, mem := newTestHandler(t)
	base := time.Now()

	seedSession(t, mem, "a@x.com", "token-a", base, time.Hour)
	seedSession(t, mem, "b@x.com", "token-b", base.Add(time.Second), time.Hour)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/sessions/token-a", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"success":true}`, w.Body.String())

	sessions := listSessions(t, r)
	require.Len(t, sessions, 1)
	assert.Equal(t, "token-b", sessions[0].ID)
}

func TestRevoke_UnknownID(t *testing.T) {
	r, _ := newTestHandler(t)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/sessions/no-such-token", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"error":"session not found"}`, w.Body.String())
}

func TestRevoke_MissingID(t *testing.T) {
	_, mem := newTestHandler(t)
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	h := admin.NewHandler(mem, log)

	// bypass the router so the id URL param is absent entirely
	w := httptest.NewRecorder()
	h.Revoke(w, httptest.NewRequest(http.MethodDelete, "/sessions/", nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
