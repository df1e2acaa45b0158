package history

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/google/uuid"
	"github.com/iamdexbot/Scoreboard-Pro/go/internal/confirm"
	"github.com/iamdexbot/Scoreboard-Pro/go/internal/events"
	"github.com/iamdexbot/Scoreboard-Pro/go/internal/models"
	"github.com/iamdexbot/Scoreboard-Pro/go/internal/state"
	"github.com/iamdexbot/Scoreboard-Pro/go/internal/store"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"
)

var (
	ErrGameNotStarted = errors.New("start the game first before saving")
	ErrGameNotFound   = errors.New("game not found")
)

const (
	saveGamePrompt     = "Save this game result to history and standings?"
	deleteGamePrompt   = "Delete this game from history?"
	clearHistoryPrompt = "Clear ALL game history? This cannot be undone."

	DefaultHomeName   = "HOME"
	DefaultAwayName   = "AWAY"
	DefaultLeagueName = "Hoops"

	// DateLayout is how a saved game's date is written, e.g. "Mar 14, 2026"
	DateLayout = "Jan 2, 2006"

	localOwner = "local"
)

// StandingsRecorder is the part of the standings engine a save feeds
type StandingsRecorder interface {
	CheckResult(homeScore, awayScore int) error
	RecordGameResult(ctx context.Context, homeName string, homeScore int, awayName string, awayScore int) error
	Standings() []models.TeamRecord
}

// SaveGameRequest is a final result to snapshot
type SaveGameRequest struct {
	HomeName   string
	AwayName   string
	HomeScore  int
	AwayScore  int
	LeagueName string
}

func (r SaveGameRequest) withDefaults() SaveGameRequest {
	if r.HomeName == "" {
		r.HomeName = DefaultHomeName
	}
	if r.AwayName == "" {
		r.AwayName = DefaultAwayName
	}
	if r.LeagueName == "" {
		r.LeagueName = DefaultLeagueName
	}
	return r
}

// App is the game history log
type App struct {
	state      *state.State
	store      *store.Store
	confirmer  confirm.Confirmer
	standings  StandingsRecorder
	publisher  events.EventPublisher
	identities store.IdentitySource
	clock      clockwork.Clock
}

type Option func(*App)

// WithPublisher publishes GameSaved and StandingsUpdated after each save
func WithPublisher(p events.EventPublisher) Option {
	return func(a *App) { a.publisher = p }
}

// WithIdentities tags published events with the signed-in user
func WithIdentities(ids store.IdentitySource) Option {
	return func(a *App) { a.identities = ids }
}

func WithClock(c clockwork.Clock) Option {
	return func(a *App) { a.clock = c }
}

// NewApp creates a new history App
func NewApp(st *state.State, s *store.Store, c confirm.Confirmer, standings StandingsRecorder, opts ...Option) *App {
	a := &App{
		state:     st,
		store:     s,
		confirmer: c,
		standings: standings,
		publisher: events.NewLogPublisher(),
		clock:     clockwork.NewRealClock(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// SaveGame snapshots the current roster and stats as a completed game, then feeds the standings
func (a *App) SaveGame(ctx context.Context, req SaveGameRequest) (*models.GameRecord, error) {
	req = req.withDefaults()
	if req.HomeScore == 0 && req.AwayScore == 0 {
		return nil, ErrGameNotStarted
	}
	if err := a.standings.CheckResult(req.HomeScore, req.AwayScore); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}
	if !a.confirmer.Confirm(ctx, saveGamePrompt) {
		return nil, confirm.ErrDeclined
	}

	game := models.GameRecord{
		ID:         uuid.NewString(),
		Date:       a.clock.Now().Format(DateLayout),
		HomeName:   req.HomeName,
		AwayName:   req.AwayName,
		HomeScore:  req.HomeScore,
		AwayScore:  req.AwayScore,
		BoxScore:   a.boxScore(),
		LeagueName: req.LeagueName,
	}
	a.state.History = slices.Insert(a.state.History, 0, game)
	_ = a.store.Write(ctx, store.KeyHistory, a.state.History)

	if err := a.standings.RecordGameResult(ctx, game.HomeName, game.HomeScore, game.AwayName, game.AwayScore); err != nil {
		// CheckResult already passed, so this is unexpected; the game stays saved
		log.Error().Err(err).Str("game_id", game.ID).Msg("failed to update standings")
	}

	log.Info().
		Str("game_id", game.ID).
		Str("home", game.HomeName).
		Int("home_score", game.HomeScore).
		Str("away", game.AwayName).
		Int("away_score", game.AwayScore).
		Msg("saved game")

	a.publishSaved(ctx, game)
	return &game, nil
}

// SaveCurrentGame saves the live scoreboard's names, scores and league
func (a *App) SaveCurrentGame(ctx context.Context) (*models.GameRecord, error) {
	sb := a.state.Scoreboard
	return a.SaveGame(ctx, SaveGameRequest{
		HomeName:   sb.HomeName,
		AwayName:   sb.AwayName,
		HomeScore:  sb.HomeScore,
		AwayScore:  sb.AwayScore,
		LeagueName: sb.LeagueName,
	})
}

// boxScore copies every rostered player with their current line; missing lines are zero
func (a *App) boxScore() models.BoxScore {
	entries := func(side models.Side) []models.BoxScoreEntry {
		players := a.state.Roster.Players(side)
		lines := a.state.Stats.Lines(side)
		out := make([]models.BoxScoreEntry, 0, len(players))
		for _, p := range players {
			out = append(out, models.BoxScoreEntry{Player: p, Stats: lines[p.ID]})
		}
		return out
	}
	return models.BoxScore{
		Home: entries(models.SideHome),
		Away: entries(models.SideAway),
	}
}

// DeleteGame removes a game after confirmation; an unknown id changes nothing
func (a *App) DeleteGame(ctx context.Context, id string) error {
	if !a.confirmer.Confirm(ctx, deleteGamePrompt) {
		return confirm.ErrDeclined
	}
	a.state.History = slices.DeleteFunc(a.state.History, func(g models.GameRecord) bool {
		return g.ID == id
	})
	_ = a.store.Write(ctx, store.KeyHistory, a.state.History)

	log.Info().Str("game_id", id).Msg("deleted game")
	return nil
}

// ClearHistory empties the log after confirmation; standings are left alone
func (a *App) ClearHistory(ctx context.Context) error {
	if !a.confirmer.Confirm(ctx, clearHistoryPrompt) {
		return confirm.ErrDeclined
	}
	a.state.History = []models.GameRecord{}
	_ = a.store.Write(ctx, store.KeyHistory, a.state.History)

	log.Info().Msg("cleared game history")
	return nil
}

// Games returns the log, newest first
func (a *App) Games() []models.GameRecord {
	return slices.Clone(a.state.History)
}

func (a *App) Game(id string) (*models.GameRecord, error) {
	for _, g := range a.state.History {
		if g.ID == id {
			return &g, nil
		}
	}
	return nil, ErrGameNotFound
}

func (a *App) owner(ctx context.Context) string {
	if a.identities == nil {
		return localOwner
	}
	if id, ok := a.identities.Identity(ctx); ok {
		return id.UserID
	}
	return localOwner
}

func (a *App) publishSaved(ctx context.Context, game models.GameRecord) {
	owner := a.owner(ctx)
	now := a.clock.Now()

	teams := make([]events.StandingsLine, 0, 2)
	for _, t := range a.standings.Standings() {
		if t.Name == game.HomeName || t.Name == game.AwayName {
			teams = append(teams, events.StandingsLine{Name: t.Name, Wins: t.Wins, Losses: t.Losses, Streak: t.StreakLabel()})
		}
	}

	payloads := []struct {
		eventType string
		payload   any
	}{
		{events.EventTypeGameSaved, events.GameSavedPayload{
			GameID:     game.ID,
			Date:       game.Date,
			HomeName:   game.HomeName,
			AwayName:   game.AwayName,
			HomeScore:  game.HomeScore,
			AwayScore:  game.AwayScore,
			LeagueName: game.LeagueName,
		}},
		{events.EventTypeStandingsUpdated, events.StandingsUpdatedPayload{GameID: game.ID, Teams: teams}},
	}

	for _, p := range payloads {
		ev, err := events.NewEvent(p.eventType, owner, p.payload, now)
		if err == nil {
			err = a.publisher.Publish(ctx, ev)
		}
		if err != nil {
			log.Warn().Err(err).Str("event_type", p.eventType).Str("game_id", game.ID).Msg("failed to publish event")
		}
	}
}
