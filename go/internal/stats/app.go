package stats

import (
	"context"
	"errors"
	"fmt"
	"maps"

	"github.com/iamdexbot/Scoreboard-Pro/go/internal/confirm"
	"github.com/iamdexbot/Scoreboard-Pro/go/internal/models"
	"github.com/iamdexbot/Scoreboard-Pro/go/internal/state"
	"github.com/iamdexbot/Scoreboard-Pro/go/internal/store"
	"github.com/rs/zerolog/log"
)

var (
	ErrNoSelection   = errors.New("no player selected")
	ErrUnknownPlayer = errors.New("player is not on the roster")
	ErrInvalidSide   = errors.New("side must be home or away")
	ErrUnknownStat   = errors.New("unknown stat")
)

const resetStatsPrompt = "Reset all player stats for this game?"

// App is the per-player stat ledger
type App struct {
	state     *state.State
	store     *store.Store
	confirmer confirm.Confirmer
}

// NewApp creates a new stat ledger App
func NewApp(st *state.State, s *store.Store, c confirm.Confirmer) *App {
	return &App{
		state:     st,
		store:     s,
		confirmer: c,
	}
}

// Select toggles the selected player: selecting the current selection clears it
func (a *App) Select(side models.Side, playerID string) (*models.Selection, error) {
	if !side.Valid() {
		return nil, fmt.Errorf("validation failed: %w", ErrInvalidSide)
	}
	if _, ok := a.state.Roster.Find(side, playerID); !ok {
		return nil, fmt.Errorf("validation failed: %w", ErrUnknownPlayer)
	}

	if sel := a.state.Selection; sel != nil && sel.Side == side && sel.PlayerID == playerID {
		a.state.Selection = nil
		return nil, nil
	}
	a.state.Selection = &models.Selection{Side: side, PlayerID: playerID}
	return a.state.Selection, nil
}

// ClearSelection deselects any player
func (a *App) ClearSelection() {
	a.state.Selection = nil
}

// Selection returns the current selection, if any
func (a *App) Selection() *models.Selection {
	if a.state.Selection == nil {
		return nil
	}
	sel := *a.state.Selection
	return &sel
}

// RecordStat adds delta to the selected player's counter, never going below zero
func (a *App) RecordStat(ctx context.Context, stat models.StatName, delta int) (*models.StatLine, error) {
	sel := a.state.Selection
	if sel == nil {
		return nil, ErrNoSelection
	}

	lines := a.state.Stats.Lines(sel.Side)
	line := lines[sel.PlayerID]
	if err := line.Apply(stat, delta); err != nil {
		return nil, fmt.Errorf("validation failed: %w: %s", ErrUnknownStat, stat)
	}
	lines[sel.PlayerID] = line

	_ = a.store.Write(ctx, store.KeyStats, a.state.Stats)

	log.Debug().
		Str("side", string(sel.Side)).
		Str("player_id", sel.PlayerID).
		Str("stat", string(stat)).
		Int("delta", delta).
		Msg("recorded stat")
	return &line, nil
}

// ResetGameStats zeroes every rostered player's line after confirmation.
// Lines for players no longer on the roster are discarded.
func (a *App) ResetGameStats(ctx context.Context) error {
	if !a.confirmer.Confirm(ctx, resetStatsPrompt) {
		return confirm.ErrDeclined
	}

	fresh := models.NewStats()
	for _, side := range models.Sides {
		lines := fresh.Lines(side)
		for _, p := range a.state.Roster.Players(side) {
			lines[p.ID] = models.StatLine{}
		}
	}
	a.state.Stats = fresh
	a.state.Selection = nil

	_ = a.store.Write(ctx, store.KeyStats, a.state.Stats)

	log.Info().Msg("reset game stats")
	return nil
}

// Stats returns a copy of the ledger
func (a *App) Stats() models.Stats {
	return models.Stats{
		Home: maps.Clone(a.state.Stats.Lines(models.SideHome)),
		Away: maps.Clone(a.state.Stats.Lines(models.SideAway)),
	}
}

// Totals sums each counter over the side's rostered players
func (a *App) Totals(side models.Side) (models.StatLine, error) {
	if !side.Valid() {
		return models.StatLine{}, fmt.Errorf("validation failed: %w", ErrInvalidSide)
	}
	var total models.StatLine
	for _, p := range a.state.Roster.Players(side) {
		total = total.Add(a.state.Stats.Line(side, p.ID))
	}
	return total, nil
}
