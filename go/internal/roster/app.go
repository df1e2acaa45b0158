package roster

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/google/uuid"
	"github.com/iamdexbot/Scoreboard-Pro/go/internal/models"
	"github.com/iamdexbot/Scoreboard-Pro/go/internal/state"
	"github.com/iamdexbot/Scoreboard-Pro/go/internal/store"
	"github.com/rs/zerolog/log"
)

var (
	ErrEmptyName       = errors.New("player name is required")
	ErrInvalidSide     = errors.New("side must be home or away")
	ErrInvalidPosition = errors.New("unknown position")
)

// AddPlayerRequest carries the fields of a new roster entry
type AddPlayerRequest struct {
	Side     models.Side
	Number   string
	Name     string
	Position models.Position
}

// App handles roster business logic
type App struct {
	state *state.State
	store *store.Store
}

// NewApp creates a new roster App
func NewApp(st *state.State, s *store.Store) *App {
	return &App{
		state: st,
		store: s,
	}
}

// AddPlayer appends a player to a side and gives them a zeroed stat line
func (a *App) AddPlayer(ctx context.Context, req AddPlayerRequest) (*models.Player, error) {
	req.Name = strings.TrimSpace(req.Name)
	req.Number = strings.TrimSpace(req.Number)
	if req.Position == "" {
		req.Position = models.PositionNone
	}
	if err := a.validateAddPlayerRequest(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}
	if req.Number == "" {
		req.Number = "?"
	}

	player := models.Player{
		ID:       a.newPlayerID(req.Side),
		Number:   req.Number,
		Name:     req.Name,
		Position: req.Position,
	}

	players := append(a.state.Roster.Players(req.Side), player)
	a.state.Roster.SetPlayers(req.Side, players)

	lines := a.state.Stats.Lines(req.Side)
	if _, ok := lines[player.ID]; !ok {
		lines[player.ID] = models.StatLine{}
	}

	a.persist(ctx)

	log.Info().
		Str("side", string(req.Side)).
		Str("player_id", player.ID).
		Str("name", player.Name).
		Msg("added player")
	return &player, nil
}

// RemovePlayer drops a player and their live stat line. Removing an absent id is a no-op.
func (a *App) RemovePlayer(ctx context.Context, side models.Side, id string) error {
	if !side.Valid() {
		return fmt.Errorf("validation failed: %w", ErrInvalidSide)
	}

	players := a.state.Roster.Players(side)
	kept := slices.DeleteFunc(slices.Clone(players), func(p models.Player) bool {
		return p.ID == id
	})
	if len(kept) == len(players) {
		log.Debug().Str("side", string(side)).Str("player_id", id).Msg("player not on roster")
		return nil
	}

	a.state.Roster.SetPlayers(side, kept)
	delete(a.state.Stats.Lines(side), id)
	if sel := a.state.Selection; sel != nil && sel.Side == side && sel.PlayerID == id {
		a.state.Selection = nil
	}

	a.persist(ctx)

	log.Info().Str("side", string(side)).Str("player_id", id).Msg("removed player")
	return nil
}

// Players returns a copy of one side's roster
func (a *App) Players(side models.Side) ([]models.Player, error) {
	if !side.Valid() {
		return nil, fmt.Errorf("validation failed: %w", ErrInvalidSide)
	}
	return slices.Clone(a.state.Roster.Players(side)), nil
}

// Roster returns a copy of both sides
func (a *App) Roster() models.Roster {
	return models.Roster{
		Home: slices.Clone(a.state.Roster.Home),
		Away: slices.Clone(a.state.Roster.Away),
	}
}

func (a *App) persist(ctx context.Context) {
	_ = a.store.Write(ctx, store.KeyRoster, a.state.Roster)
	_ = a.store.Write(ctx, store.KeyStats, a.state.Stats)
}

func (a *App) newPlayerID(side models.Side) string {
	for {
		id := uuid.NewString()
		if _, taken := a.state.Roster.Find(side, id); !taken {
			return id
		}
	}
}

func (a *App) validateAddPlayerRequest(req AddPlayerRequest) error {
	if !req.Side.Valid() {
		return ErrInvalidSide
	}
	if req.Name == "" {
		return ErrEmptyName
	}
	if !req.Position.Valid() {
		return fmt.Errorf("%w: %s", ErrInvalidPosition, req.Position)
	}
	return nil
}
