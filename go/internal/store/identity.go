package store

import (
	"context"

	"github.com/iamdexbot/Scoreboard-Pro/go/internal/models"
)

// IdentitySource yields the signed-in user, if any
type IdentitySource interface {
	Identity(ctx context.Context) (models.Identity, bool)
}

// RequireIdentity returns the current identity or ErrNoIdentity
func RequireIdentity(ctx context.Context, ids IdentitySource) (models.Identity, error) {
	if ids == nil {
		return models.Identity{}, ErrNoIdentity
	}
	id, ok := ids.Identity(ctx)
	if !ok || id.UserID == "" {
		return models.Identity{}, ErrNoIdentity
	}
	return id, nil
}
