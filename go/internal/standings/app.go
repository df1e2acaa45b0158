package standings

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/iamdexbot/Scoreboard-Pro/go/internal/confirm"
	"github.com/iamdexbot/Scoreboard-Pro/go/internal/models"
	"github.com/iamdexbot/Scoreboard-Pro/go/internal/state"
	"github.com/iamdexbot/Scoreboard-Pro/go/internal/store"
	"github.com/rs/zerolog/log"
)

var (
	ErrTieGame       = errors.New("tied games are not recorded")
	ErrEmptyTeamName = errors.New("team name is required")
	ErrNegativeScore = errors.New("scores cannot be negative")
	ErrUnknownPolicy = errors.New("unknown tie policy")
)

const resetStandingsPrompt = "Clear all standings data?"

// TiePolicy decides what an equal final score does to the standings
type TiePolicy string

const (
	// TieAwayWins credits a tie to the away team, matching records saved by
	// earlier versions where the home team needed a strictly higher score.
	TieAwayWins TiePolicy = "away_wins"
	// TieReject refuses tied results; nothing is recorded.
	TieReject TiePolicy = "reject"
)

// ParseTiePolicy reads a policy name; empty means TieAwayWins
func ParseTiePolicy(s string) (TiePolicy, error) {
	switch TiePolicy(strings.ToLower(strings.TrimSpace(s))) {
	case "", TieAwayWins:
		return TieAwayWins, nil
	case TieReject:
		return TieReject, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownPolicy, s)
}

// App is the standings engine
type App struct {
	state     *state.State
	store     *store.Store
	confirmer confirm.Confirmer
	tiePolicy TiePolicy
}

// NewApp creates a new standings App
func NewApp(st *state.State, s *store.Store, c confirm.Confirmer, tiePolicy TiePolicy) *App {
	if tiePolicy == "" {
		tiePolicy = TieAwayWins
	}
	return &App{
		state:     st,
		store:     s,
		confirmer: c,
		tiePolicy: tiePolicy,
	}
}

// TiePolicy returns the configured tie policy
func (a *App) TiePolicy() TiePolicy {
	return a.tiePolicy
}

// CheckResult reports whether a final score can be recorded, without changing anything
func (a *App) CheckResult(homeScore, awayScore int) error {
	if homeScore < 0 || awayScore < 0 {
		return ErrNegativeScore
	}
	if homeScore == awayScore && a.tiePolicy == TieReject {
		return ErrTieGame
	}
	return nil
}

// RecordGameResult folds one final score into both teams' records, re-sorts and persists
func (a *App) RecordGameResult(ctx context.Context, homeName string, homeScore int, awayName string, awayScore int) error {
	if homeName == "" || awayName == "" {
		return fmt.Errorf("validation failed: %w", ErrEmptyTeamName)
	}
	if err := a.CheckResult(homeScore, awayScore); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	hi := a.getOrCreate(homeName)
	ai := a.getOrCreate(awayName)
	home := &a.state.Standings[hi]
	away := &a.state.Standings[ai]

	home.PointsFor += homeScore
	home.PointsAgainst += awayScore
	away.PointsFor += awayScore
	away.PointsAgainst += homeScore

	// strict comparison: under TieAwayWins a tie falls through to the away team
	if homeScore > awayScore {
		applyResult(home, away)
	} else {
		applyResult(away, home)
	}
	home.Streak = home.StreakLabel()
	away.Streak = away.StreakLabel()

	Sort(a.state.Standings)
	_ = a.store.Write(ctx, store.KeyStandings, a.state.Standings)

	log.Info().
		Str("home", homeName).
		Int("home_score", homeScore).
		Str("away", awayName).
		Int("away_score", awayScore).
		Msg("recorded game result")
	return nil
}

func applyResult(winner, loser *models.TeamRecord) {
	winner.Wins++
	loser.Losses++
	extendStreak(winner, models.StreakWin)
	extendStreak(loser, models.StreakLoss)
}

func extendStreak(t *models.TeamRecord, kind models.StreakKind) {
	if t.StreakKind == kind {
		t.StreakLength++
		return
	}
	t.StreakKind = kind
	t.StreakLength = 1
}

// getOrCreate returns the index of name's record, appending a fresh one when missing
func (a *App) getOrCreate(name string) int {
	for i, t := range a.state.Standings {
		if t.Name == name {
			return i
		}
	}
	a.state.Standings = append(a.state.Standings, models.NewTeamRecord(name))
	return len(a.state.Standings) - 1
}

// Standings returns a copy of the ordered records
func (a *App) Standings() []models.TeamRecord {
	return slices.Clone(a.state.Standings)
}

// Table returns the display rows for the current standings
func (a *App) Table() []Row {
	return Table(a.state.Standings)
}

// ResetStandings clears every record after confirmation
func (a *App) ResetStandings(ctx context.Context) error {
	if !a.confirmer.Confirm(ctx, resetStandingsPrompt) {
		return confirm.ErrDeclined
	}
	a.state.Standings = []models.TeamRecord{}
	_ = a.store.Write(ctx, store.KeyStandings, a.state.Standings)

	log.Info().Msg("reset standings")
	return nil
}

// RemoveTeam drops the record named name; an unknown name still persists the unchanged list
func (a *App) RemoveTeam(ctx context.Context, name string) error {
	a.state.Standings = slices.DeleteFunc(a.state.Standings, func(t models.TeamRecord) bool {
		return t.Name == name
	})
	_ = a.store.Write(ctx, store.KeyStandings, a.state.Standings)

	log.Info().Str("team", name).Msg("removed team from standings")
	return nil
}
