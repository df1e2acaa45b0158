// Package supabase stores each signed-in user's data in Supabase tables.
package supabase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/iamdexbot/Scoreboard-Pro/go/clients/supabase_client"
	"github.com/iamdexbot/Scoreboard-Pro/go/internal/models"
	"github.com/iamdexbot/Scoreboard-Pro/go/internal/store"
	"github.com/jonboulle/clockwork"
)

// Backend is a store.Backend scoped to whoever the IdentitySource says is signed in
type Backend struct {
	client     *supabase_client.SupabaseClient
	identities store.IdentitySource
	clock      clockwork.Clock
}

func NewBackend(client *supabase_client.SupabaseClient, identities store.IdentitySource) *Backend {
	return &Backend{
		client:     client,
		identities: identities,
		clock:      clockwork.NewRealClock(),
	}
}

// table describes where a key lives and which column holds its value
type table struct {
	name       string
	column     string
	onConflict string
	proKey     bool
}

func tableFor(key store.Key) table {
	switch key {
	case store.KeyScoreboard:
		return table{name: supabase_client.GameStateTable, column: "state", onConflict: "user_id"}
	case store.KeyUpcoming:
		return table{name: supabase_client.UpcomingGamesTable, column: "games", onConflict: "user_id"}
	}
	return table{name: supabase_client.ProDataTable, column: "data_value", onConflict: "user_id,data_key", proKey: true}
}

func (b *Backend) Read(ctx context.Context, key store.Key) ([]byte, error) {
	id, err := store.RequireIdentity(ctx, b.identities)
	if err != nil {
		return nil, err
	}

	t := tableFor(key)
	q := b.client.From(t.name).
		Select(t.column).
		Eq("user_id", id.UserID)
	if t.proKey {
		q = q.Eq("data_key", string(key))
	}

	var row map[string]json.RawMessage
	err = q.Limit(1).Single().WithToken(id.AccessToken).ExecuteInto(ctx, &row)
	if errors.Is(err, supabase_client.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s from %s: %w", key, t.name, err)
	}

	raw := row[t.column]
	if len(raw) == 0 || string(raw) == "null" {
		return nil, nil
	}
	return raw, nil
}

// Write upserts the whole value in one request, so a failure leaves the old row
func (b *Backend) Write(ctx context.Context, key store.Key, value []byte) error {
	id, err := store.RequireIdentity(ctx, b.identities)
	if err != nil {
		return err
	}

	t := tableFor(key)
	row := map[string]interface{}{
		"user_id":    id.UserID,
		t.column:     json.RawMessage(value),
		"updated_at": b.clock.Now().UTC(),
	}
	if t.proKey {
		row["data_key"] = string(key)
	}

	if _, err := b.client.From(t.name).Upsert(row, t.onConflict).WithToken(id.AccessToken).Execute(ctx); err != nil {
		return fmt.Errorf("failed to write %s to %s: %w", key, t.name, err)
	}
	return nil
}

// GetProfile returns the signed-in user's profile; a missing row is an empty profile
func (b *Backend) GetProfile(ctx context.Context) (*models.Profile, error) {
	id, err := store.RequireIdentity(ctx, b.identities)
	if err != nil {
		return nil, err
	}

	var profile models.Profile
	err = b.client.From(supabase_client.ProfilesTable).
		Select("*").
		Eq("id", id.UserID).
		Single().
		WithToken(id.AccessToken).
		ExecuteInto(ctx, &profile)
	if errors.Is(err, supabase_client.ErrNoRows) {
		return &models.Profile{ID: id.UserID}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}
	return &profile, nil
}

func (b *Backend) UpdateDisplayName(ctx context.Context, name string) (*models.Profile, error) {
	id, err := store.RequireIdentity(ctx, b.identities)
	if err != nil {
		return nil, err
	}

	profile := models.Profile{ID: id.UserID, DisplayName: &name, UpdatedAt: b.clock.Now().UTC()}
	if _, err := b.client.From(supabase_client.ProfilesTable).Upsert(profile, "id").WithToken(id.AccessToken).Execute(ctx); err != nil {
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}
	return &profile, nil
}
