// Package state holds the controller-owned application state every component works on.
package state

import (
	"context"
	"sync"

	"github.com/iamdexbot/Scoreboard-Pro/go/internal/models"
	"github.com/iamdexbot/Scoreboard-Pro/go/internal/store"
	"github.com/rs/zerolog/log"
)

// State is the single in-memory copy of everything the controller manages.
// Components receive a pointer to it; callers hold the lock for the whole of
// one operation so each handler or clock tick runs to completion alone.
type State struct {
	mu sync.Mutex

	Roster     models.Roster
	Stats      models.Stats
	Selection  *models.Selection
	Standings  []models.TeamRecord
	History    []models.GameRecord
	Scoreboard models.Scoreboard
	Upcoming   []models.UpcomingGame
}

// New returns empty state with the given scoreboard
func New(scoreboard models.Scoreboard) *State {
	return &State{
		Roster:     models.NewRoster(),
		Stats:      models.NewStats(),
		Standings:  []models.TeamRecord{},
		History:    []models.GameRecord{},
		Scoreboard: scoreboard,
		Upcoming:   []models.UpcomingGame{},
	}
}

// Lock serializes an operation against the state
func (s *State) Lock() { s.mu.Lock() }

// Unlock ends the current operation
func (s *State) Unlock() { s.mu.Unlock() }

// Load hydrates state from st, using defaults for anything missing
func Load(ctx context.Context, st *store.Store, scoreboard models.Scoreboard) *State {
	s := New(scoreboard)
	s.Reload(ctx, st)
	return s
}

// Reload replaces every entity with what st holds now. Used after sign-in
// switches the identity a remote store is scoped to.
func (s *State) Reload(ctx context.Context, st *store.Store) {
	s.Roster = store.LoadRoster(ctx, st)
	s.Stats = store.LoadStats(ctx, st)
	s.Standings = store.LoadStandings(ctx, st)
	s.History = store.LoadHistory(ctx, st)
	s.Upcoming = store.LoadUpcoming(ctx, st)
	s.Scoreboard = store.LoadOr(ctx, st, store.KeyScoreboard, s.Scoreboard)
	s.Selection = nil
	s.ensureStatLines()

	log.Info().
		Int("home_players", len(s.Roster.Home)).
		Int("away_players", len(s.Roster.Away)).
		Int("teams", len(s.Standings)).
		Int("games", len(s.History)).
		Msg("loaded state")
}

// ensureStatLines gives every rostered player a stat line
func (s *State) ensureStatLines() {
	for _, side := range models.Sides {
		lines := s.Stats.Lines(side)
		for _, p := range s.Roster.Players(side) {
			if _, ok := lines[p.ID]; !ok {
				lines[p.ID] = models.StatLine{}
			}
		}
	}
}
