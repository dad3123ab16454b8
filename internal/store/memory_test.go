package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/RafaelR4mos/auth-session-app-example/internal/auth"
)

// Liveness requires expiry strictly in the future: a session is already dead
// at the exact expiry instant.
func TestMemoryStore_LivenessBoundary(t *testing.T) {
	mem := NewMemoryStore()
	ctx := context.Background()

	userID, err := mem.CreateUser(ctx, "a@x.com", "hash")
	if err != nil {
		t.Fatalf("CreateUser error: %v", err)
	}

	created := time.Now()
	mem.SetClock(func() time.Time { return created })
	expires, err := mem.InsertSession(ctx, "tok", userID, time.Hour)
	if err != nil {
		t.Fatalf("InsertSession error: %v", err)
	}

	mem.SetClock(func() time.Time { return expires.Add(-time.Nanosecond) })
	if _, err := mem.FindLiveSessionUser(ctx, "tok"); err != nil {
		t.Fatalf("session should be live just before expiry: %v", err)
	}

	mem.SetClock(func() time.Time { return expires })
	if _, err := mem.FindLiveSessionUser(ctx, "tok"); !errors.Is(err, auth.ErrNotFound) {
		t.Fatalf("session must be dead at the expiry instant, got %v", err)
	}
}

func TestMemoryStore_ExpiredRowsRemainUntilDeleted(t *testing.T) {
	mem := NewMemoryStore()
	ctx := context.Background()

	userID, err := mem.CreateUser(ctx, "a@x.com", "hash")
	if err != nil {
		t.Fatalf("CreateUser error: %v", err)
	}
	if _, err := mem.InsertSession(ctx, "tok", userID, -time.Hour); err != nil {
		t.Fatalf("InsertSession error: %v", err)
	}

	// dead on the auth path, still visible to operators
	if _, err := mem.FindLiveSessionUser(ctx, "tok"); !errors.Is(err, auth.ErrNotFound) {
		t.Fatalf("want auth.ErrNotFound, got %v", err)
	}
	rows, err := mem.ListSessions(ctx)
	if err != nil {
		t.Fatalf("ListSessions error: %v", err)
	}
	if len(rows) != 1 || rows[0].ID != "tok" {
		t.Fatalf("expired session missing from listing: %+v", rows)
	}

	affected, err := mem.DeleteSessionByID(ctx, "tok")
	if err != nil || affected != 1 {
		t.Fatalf("DeleteSessionByID = (%d, %v), want (1, nil)", affected, err)
	}
	affected, err = mem.DeleteSessionByID(ctx, "tok")
	if err != nil || affected != 0 {
		t.Fatalf("second DeleteSessionByID = (%d, %v), want (0, nil)", affected, err)
	}
}
