// Package store persists scoreboard and pro data behind a key-value contract.
//
// A Backend moves raw JSON for a Key. Store wraps a Backend with JSON
// encoding, missing-data defaults and a failure hook: no read or write
// failure ever reaches the domain components, they only see "no data" or
// "not saved".
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"
)

// Key names one persisted entity
type Key string

const (
	KeyRoster     Key = "roster"
	KeyStats      Key = "stats"
	KeyStandings  Key = "standings"
	KeyHistory    Key = "history"
	KeyScoreboard Key = "scoreboard"
	KeyUpcoming   Key = "upcoming"
)

// Keys lists every key in load order
var Keys = []Key{KeyRoster, KeyStats, KeyStandings, KeyHistory, KeyScoreboard, KeyUpcoming}

// ProKeys are the keys kept in the remote pro_data table
var ProKeys = []Key{KeyRoster, KeyStats, KeyStandings, KeyHistory}

// LocalName returns the device-storage name of k
func (k Key) LocalName() string {
	if k == KeyScoreboard {
		return string(k)
	}
	return "pro_" + string(k)
}

// IsPro reports whether k is stored in the pro_data table remotely
func (k Key) IsPro() bool {
	for _, p := range ProKeys {
		if p == k {
			return true
		}
	}
	return false
}

// ErrNoIdentity is returned by remote backends when nobody is signed in
var ErrNoIdentity = errors.New("no signed-in identity")

// Backend reads and writes raw JSON values.
// Read returns nil, nil when the key has no data.
// Write must leave the previous value intact when it fails.
type Backend interface {
	Read(ctx context.Context, key Key) ([]byte, error)
	Write(ctx context.Context, key Key, value []byte) error
}

// FailureHook is told about every read or write a backend could not complete
type FailureHook func(ctx context.Context, op string, key Key, err error)

// LogFailure is the default hook: log and drop
func LogFailure(ctx context.Context, op string, key Key, err error) {
	if errors.Is(err, ErrNoIdentity) {
		log.Debug().Str("op", op).Str("key", string(key)).Msg("skipped store operation without identity")
		return
	}
	log.Warn().Err(err).Str("op", op).Str("key", string(key)).Msg("store operation failed")
}

// Store is the adapter the domain components persist through
type Store struct {
	backend   Backend
	onFailure FailureHook
}

// Option configures a Store
type Option func(*Store)

// WithFailureHook replaces the default log-and-drop hook
func WithFailureHook(hook FailureHook) Option {
	return func(s *Store) {
		if hook != nil {
			s.onFailure = hook
		}
	}
}

// New creates a Store over backend
func New(backend Backend, opts ...Option) *Store {
	s := &Store{
		backend:   backend,
		onFailure: LogFailure,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Backend returns the wrapped backend
func (s *Store) Backend() Backend {
	return s.backend
}

// Read decodes the value under key into dst.
// It returns false when there is no data, the backend failed, or the value is malformed.
func (s *Store) Read(ctx context.Context, key Key, dst any) bool {
	raw, err := s.backend.Read(ctx, key)
	if err != nil {
		s.onFailure(ctx, "read", key, err)
		return false
	}
	if len(raw) == 0 || string(raw) == "null" {
		return false
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		s.onFailure(ctx, "decode", key, fmt.Errorf("malformed %s data: %w", key, err))
		return false
	}
	return true
}

// Write encodes value and stores it under key.
// The error has already been reported to the failure hook; callers may ignore it.
func (s *Store) Write(ctx context.Context, key Key, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		err = fmt.Errorf("failed to encode %s: %w", key, err)
		s.onFailure(ctx, "encode", key, err)
		return err
	}
	if err := s.backend.Write(ctx, key, raw); err != nil {
		s.onFailure(ctx, "write", key, err)
		return err
	}
	return nil
}
