// Package auth gates the controller behind a Supabase session and exposes
// the signed-in identity to the remote stores.
package auth

import (
	"context"
	"sync"

	"github.com/iamdexbot/Scoreboard-Pro/go/internal/models"
)

// Session holds the controller's one signed-in identity
type Session struct {
	mu       sync.RWMutex
	identity *models.Identity
}

func NewSession() *Session {
	return &Session{}
}

// Identity implements store.IdentitySource
func (s *Session) Identity(_ context.Context) (models.Identity, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.identity == nil {
		return models.Identity{}, false
	}
	return *s.identity, true
}

func (s *Session) set(id models.Identity) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.identity = &id
}

// clear drops the identity and returns the one that was held
func (s *Session) clear() (models.Identity, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.identity == nil {
		return models.Identity{}, false
	}
	id := *s.identity
	s.identity = nil
	return id, true
}
