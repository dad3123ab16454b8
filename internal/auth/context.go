package auth

import (
	"context"

	"github.com/RafaelR4mos/auth-session-app-example/internal/models"
)

type contextKey struct{}

var userContextKey contextKey

// ContextWithUser returns a context carrying the resolved session user.
func ContextWithUser(ctx context.Context, user *models.SessionUser) context.Context {
	return context.WithValue(ctx, userContextKey, user)
}

// UserFromContext extracts the session user placed by RequireAuth.
func UserFromContext(ctx context.Context) (*models.SessionUser, bool) {
	user, ok := ctx.Value(userContextKey).(*models.SessionUser)
	return user, ok
}
