package redis

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/iamdexbot/Scoreboard-Pro/go/internal/models"
	"github.com/iamdexbot/Scoreboard-Pro/go/internal/store"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClient struct {
	mu   sync.Mutex
	data map[string]string
	ttls map[string]time.Duration
	err  error
}

func newFakeClient() *fakeClient {
	return &fakeClient{data: map[string]string{}, ttls: map[string]time.Duration{}}
}

func (f *fakeClient) Get(_ context.Context, key string) *redis.StringCmd {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return redis.NewStringResult("", f.err)
	}
	v, ok := f.data[key]
	if !ok {
		return redis.NewStringResult("", redis.Nil)
	}
	return redis.NewStringResult(v, nil)
}

func (f *fakeClient) Set(_ context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return redis.NewStatusResult("", f.err)
	}
	f.data[key] = string(value.([]byte))
	f.ttls[key] = expiration
	return redis.NewStatusResult("OK", nil)
}

type staticIdentity struct {
	id models.Identity
	ok bool
}

func (s staticIdentity) Identity(context.Context) (models.Identity, bool) { return s.id, s.ok }

var coach = staticIdentity{id: models.Identity{UserID: "user-1"}, ok: true}

func TestKeysAreScopedPerUser(t *testing.T) {
	ctx := context.Background()
	client := newFakeClient()
	b := NewBackend(client, coach, WithTTL(time.Hour))

	require.NoError(t, b.Write(ctx, store.KeyStandings, []byte(`[]`)))
	assert.Equal(t, `[]`, client.data["scoreboard:user-1:standings"])
	assert.Equal(t, time.Hour, client.ttls["scoreboard:user-1:standings"])

	raw, err := b.Read(ctx, store.KeyStandings)
	require.NoError(t, err)
	assert.Equal(t, `[]`, string(raw))

	other := NewBackend(client, staticIdentity{id: models.Identity{UserID: "user-2"}, ok: true})
	raw, err = other.Read(ctx, store.KeyStandings)
	require.NoError(t, err)
	assert.Nil(t, raw)
}

func TestWithoutIdentity(t *testing.T) {
	ctx := context.Background()
	client := newFakeClient()
	b := NewBackend(client, staticIdentity{})

	assert.ErrorIs(t, b.Write(ctx, store.KeyRoster, []byte(`{}`)), store.ErrNoIdentity)
	_, err := b.Read(ctx, store.KeyRoster)
	assert.ErrorIs(t, err, store.ErrNoIdentity)
	assert.Empty(t, client.data)
}

func TestFailuresReachTheHook(t *testing.T) {
	ctx := context.Background()
	client := newFakeClient()
	client.err = errors.New("connection refused")

	var ops []string
	s := store.New(NewBackend(client, coach), store.WithFailureHook(func(_ context.Context, op string, _ store.Key, _ error) {
		ops = append(ops, op)
	}))

	assert.Error(t, s.Write(ctx, store.KeyHistory, []models.GameRecord{}))
	assert.Empty(t, store.LoadHistory(ctx, s))
	assert.Equal(t, []string{"write", "read"}, ops)
}
