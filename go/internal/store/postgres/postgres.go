// Package postgres keeps each signed-in user's data in the scoreboard schema.
package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/iamdexbot/Scoreboard-Pro/go/internal/models"
	"github.com/iamdexbot/Scoreboard-Pro/go/internal/sqlutil"
	"github.com/iamdexbot/Scoreboard-Pro/go/internal/store"
	"github.com/iamdexbot/Scoreboard-Pro/go/internal/store/postgres/db"
	"github.com/jonboulle/clockwork"
	"github.com/sqlc-dev/pqtype"
)

var ErrInvalidUserID = errors.New("user id is not a uuid")

// Querier defines what the backend needs from the database layer
type Querier interface {
	GetProData(ctx context.Context, arg db.GetProDataParams) (pqtype.NullRawMessage, error)
	UpsertProData(ctx context.Context, arg db.UpsertProDataParams) error
	GetGameState(ctx context.Context, userID uuid.UUID) (pqtype.NullRawMessage, error)
	UpsertGameState(ctx context.Context, arg db.UpsertGameStateParams) error
	GetUpcomingGames(ctx context.Context, userID uuid.UUID) (pqtype.NullRawMessage, error)
	UpsertUpcomingGames(ctx context.Context, arg db.UpsertUpcomingGamesParams) error
	GetProfile(ctx context.Context, id uuid.UUID) (db.Profile, error)
	UpsertDisplayName(ctx context.Context, arg db.UpsertDisplayNameParams) (db.Profile, error)
}

// Backend is a store.Backend scoped to the signed-in identity
type Backend struct {
	queries    Querier
	identities store.IdentitySource
	clock      clockwork.Clock
}

func NewBackend(queries Querier, identities store.IdentitySource) *Backend {
	return &Backend{
		queries:    queries,
		identities: identities,
		clock:      clockwork.NewRealClock(),
	}
}

func (b *Backend) userID(ctx context.Context) (uuid.UUID, error) {
	id, err := store.RequireIdentity(ctx, b.identities)
	if err != nil {
		return uuid.Nil, err
	}
	uid, err := uuid.Parse(id.UserID)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: %q", ErrInvalidUserID, id.UserID)
	}
	return uid, nil
}

func (b *Backend) Read(ctx context.Context, key store.Key) ([]byte, error) {
	uid, err := b.userID(ctx)
	if err != nil {
		return nil, err
	}

	var raw pqtype.NullRawMessage
	switch key {
	case store.KeyScoreboard:
		raw, err = b.queries.GetGameState(ctx, uid)
	case store.KeyUpcoming:
		raw, err = b.queries.GetUpcomingGames(ctx, uid)
	default:
		raw, err = b.queries.GetProData(ctx, db.GetProDataParams{UserID: uid, DataKey: string(key)})
	}
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", key, err)
	}
	if !raw.Valid {
		return nil, nil
	}
	return raw.RawMessage, nil
}

func (b *Backend) Write(ctx context.Context, key store.Key, value []byte) error {
	uid, err := b.userID(ctx)
	if err != nil {
		return err
	}

	raw := pqtype.NullRawMessage{RawMessage: json.RawMessage(value), Valid: value != nil}
	now := b.clock.Now()
	switch key {
	case store.KeyScoreboard:
		err = b.queries.UpsertGameState(ctx, db.UpsertGameStateParams{UserID: uid, State: raw, UpdatedAt: now})
	case store.KeyUpcoming:
		err = b.queries.UpsertUpcomingGames(ctx, db.UpsertUpcomingGamesParams{UserID: uid, Games: raw, UpdatedAt: now})
	default:
		err = b.queries.UpsertProData(ctx, db.UpsertProDataParams{UserID: uid, DataKey: string(key), DataValue: raw, UpdatedAt: now})
	}
	if err != nil {
		return fmt.Errorf("failed to write %s: %w", key, err)
	}
	return nil
}

// GetProfile returns the signed-in user's profile, empty when none was saved yet
func (b *Backend) GetProfile(ctx context.Context) (*models.Profile, error) {
	uid, err := b.userID(ctx)
	if err != nil {
		return nil, err
	}

	p, err := b.queries.GetProfile(ctx, uid)
	if errors.Is(err, sql.ErrNoRows) {
		return &models.Profile{ID: uid.String()}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}
	return profileToModel(p), nil
}

// UpdateDisplayName sets the display name; blank clears it
func (b *Backend) UpdateDisplayName(ctx context.Context, name string) (*models.Profile, error) {
	uid, err := b.userID(ctx)
	if err != nil {
		return nil, err
	}

	var displayName *string
	if trimmed := strings.TrimSpace(name); trimmed != "" {
		displayName = &trimmed
	}
	p, err := b.queries.UpsertDisplayName(ctx, db.UpsertDisplayNameParams{
		ID:          uid,
		DisplayName: sqlutil.ToSqlString(displayName),
		UpdatedAt:   b.clock.Now(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}
	return profileToModel(p), nil
}

func profileToModel(p db.Profile) *models.Profile {
	return &models.Profile{
		ID:          p.ID.String(),
		DisplayName: sqlutil.FromSqlStringPtr(p.DisplayName),
		UpdatedAt:   p.UpdatedAt,
	}
}
