package schedule

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/iamdexbot/Scoreboard-Pro/go/internal/confirm"
	"github.com/iamdexbot/Scoreboard-Pro/go/internal/models"
	"github.com/iamdexbot/Scoreboard-Pro/go/internal/state"
	"github.com/iamdexbot/Scoreboard-Pro/go/internal/store"
	"github.com/rs/zerolog/log"
)

var (
	ErrTeamsRequired = errors.New("home and away teams are required")
	ErrSameTeam      = errors.New("a team cannot play itself")
	ErrInvalidDate   = errors.New("date must look like 2006-01-02")
	ErrInvalidTime   = errors.New("time must look like 15:04")
)

const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04"

	clearPrompt = "Clear all upcoming games?"
)

// AddGameRequest describes a fixture to schedule
type AddGameRequest struct {
	Date     string
	Time     string
	HomeName string
	AwayName string
	Venue    string
}

func (r *AddGameRequest) validate() error {
	r.Date = strings.TrimSpace(r.Date)
	r.Time = strings.TrimSpace(r.Time)
	r.HomeName = strings.TrimSpace(r.HomeName)
	r.AwayName = strings.TrimSpace(r.AwayName)
	r.Venue = strings.TrimSpace(r.Venue)

	if r.HomeName == "" || r.AwayName == "" {
		return ErrTeamsRequired
	}
	if strings.EqualFold(r.HomeName, r.AwayName) {
		return ErrSameTeam
	}
	if _, err := time.Parse(DateLayout, r.Date); err != nil {
		return ErrInvalidDate
	}
	if r.Time != "" {
		if _, err := time.Parse(TimeLayout, r.Time); err != nil {
			return ErrInvalidTime
		}
	}
	return nil
}

// App keeps the list of upcoming games
type App struct {
	state     *state.State
	store     *store.Store
	confirmer confirm.Confirmer
}

// NewApp creates a new schedule App
func NewApp(st *state.State, s *store.Store, c confirm.Confirmer) *App {
	return &App{
		state:     st,
		store:     s,
		confirmer: c,
	}
}

// List returns upcoming games, soonest first
func (a *App) List() []models.UpcomingGame {
	return slices.Clone(a.state.Upcoming)
}

// Add schedules a game and keeps the list in date order
func (a *App) Add(ctx context.Context, req AddGameRequest) (*models.UpcomingGame, error) {
	if err := req.validate(); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	game := models.UpcomingGame{
		ID:       uuid.NewString(),
		Date:     req.Date,
		Time:     req.Time,
		HomeName: req.HomeName,
		AwayName: req.AwayName,
		Venue:    req.Venue,
	}
	a.state.Upcoming = append(a.state.Upcoming, game)
	slices.SortStableFunc(a.state.Upcoming, func(x, y models.UpcomingGame) int {
		if c := cmp.Compare(x.Date, y.Date); c != 0 {
			return c
		}
		return cmp.Compare(x.Time, y.Time)
	})
	_ = a.store.Write(ctx, store.KeyUpcoming, a.state.Upcoming)

	log.Info().
		Str("game_id", game.ID).
		Str("date", game.Date).
		Str("home", game.HomeName).
		Str("away", game.AwayName).
		Msg("scheduled game")
	return &game, nil
}

// Remove drops a scheduled game; unknown ids are ignored
func (a *App) Remove(ctx context.Context, id string) error {
	a.state.Upcoming = slices.DeleteFunc(a.state.Upcoming, func(g models.UpcomingGame) bool {
		return g.ID == id
	})
	_ = a.store.Write(ctx, store.KeyUpcoming, a.state.Upcoming)
	return nil
}

func (a *App) Clear(ctx context.Context) error {
	if !a.confirmer.Confirm(ctx, clearPrompt) {
		return confirm.ErrDeclined
	}
	a.state.Upcoming = []models.UpcomingGame{}
	_ = a.store.Write(ctx, store.KeyUpcoming, a.state.Upcoming)

	log.Info().Msg("cleared upcoming games")
	return nil
}
