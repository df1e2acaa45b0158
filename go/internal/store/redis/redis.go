// Package redis keeps each signed-in user's data under per-user Redis keys.
package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/iamdexbot/Scoreboard-Pro/go/internal/store"
	"github.com/redis/go-redis/v9"
)

const keyPrefix = "scoreboard"

// Client is the part of redis.Cmdable the backend uses
type Client interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
}

// Backend is a store.Backend scoped to the signed-in identity
type Backend struct {
	client     Client
	identities store.IdentitySource
	ttl        time.Duration
}

type Option func(*Backend)

// WithTTL expires idle data; zero keeps it forever
func WithTTL(ttl time.Duration) Option {
	return func(b *Backend) { b.ttl = ttl }
}

func NewBackend(client Client, identities store.IdentitySource, opts ...Option) *Backend {
	b := &Backend{
		client:     client,
		identities: identities,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// NewClient connects using a redis:// URL
func NewClient(redisURL string) (*redis.Client, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis url: %w", err)
	}
	return redis.NewClient(opts), nil
}

// Key is where key lives for userID
func Key(userID string, key store.Key) string {
	return fmt.Sprintf("%s:%s:%s", keyPrefix, userID, key)
}

func (b *Backend) Read(ctx context.Context, key store.Key) ([]byte, error) {
	id, err := store.RequireIdentity(ctx, b.identities)
	if err != nil {
		return nil, err
	}

	raw, err := b.client.Get(ctx, Key(id.UserID, key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", key, err)
	}
	return raw, nil
}

func (b *Backend) Write(ctx context.Context, key store.Key, value []byte) error {
	id, err := store.RequireIdentity(ctx, b.identities)
	if err != nil {
		return err
	}

	if err := b.client.Set(ctx, Key(id.UserID, key), value, b.ttl).Err(); err != nil {
		return fmt.Errorf("failed to write %s: %w", key, err)
	}
	return nil
}
