package store

import (
	"context"

	"github.com/iamdexbot/Scoreboard-Pro/go/internal/models"
)

// LoadOr reads key into a T, returning def when nothing usable is stored
func LoadOr[T any](ctx context.Context, s *Store, key Key, def T) T {
	var v T
	if !s.Read(ctx, key, &v) {
		return def
	}
	return v
}

// LoadRoster returns the stored roster or an empty one
func LoadRoster(ctx context.Context, s *Store) models.Roster {
	r := LoadOr(ctx, s, KeyRoster, models.NewRoster())
	if r.Home == nil {
		r.Home = []models.Player{}
	}
	if r.Away == nil {
		r.Away = []models.Player{}
	}
	return r
}

// LoadStats returns the stored stat ledger or an empty one
func LoadStats(ctx context.Context, s *Store) models.Stats {
	st := LoadOr(ctx, s, KeyStats, models.NewStats())
	if st.Home == nil {
		st.Home = map[string]models.StatLine{}
	}
	if st.Away == nil {
		st.Away = map[string]models.StatLine{}
	}
	return st
}

// LoadStandings returns the stored standings or an empty list
func LoadStandings(ctx context.Context, s *Store) []models.TeamRecord {
	recs := LoadOr(ctx, s, KeyStandings, []models.TeamRecord{})
	if recs == nil {
		return []models.TeamRecord{}
	}
	return recs
}

// LoadHistory returns the stored history or an empty list
func LoadHistory(ctx context.Context, s *Store) []models.GameRecord {
	games := LoadOr(ctx, s, KeyHistory, []models.GameRecord{})
	if games == nil {
		return []models.GameRecord{}
	}
	return games
}

// LoadUpcoming returns the stored upcoming games or an empty list
func LoadUpcoming(ctx context.Context, s *Store) []models.UpcomingGame {
	games := LoadOr(ctx, s, KeyUpcoming, []models.UpcomingGame{})
	if games == nil {
		return []models.UpcomingGame{}
	}
	return games
}
