// Package scoreboard runs the live game display: scores, fouls, timeouts,
// period, possession and the two game clocks.
package scoreboard

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/iamdexbot/Scoreboard-Pro/go/internal/confirm"
	"github.com/iamdexbot/Scoreboard-Pro/go/internal/models"
	"github.com/iamdexbot/Scoreboard-Pro/go/internal/state"
	"github.com/iamdexbot/Scoreboard-Pro/go/internal/store"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"
)

var (
	ErrInvalidSide  = errors.New("side must be home or away")
	ErrOutOfRange   = errors.New("value out of range")
	ErrUnknownTheme = errors.New("unknown theme")
	ErrInvalidTheme = errors.New("theme colours must be hex values like #FF5E1A")
)

const (
	MaxFouls           = 5
	DefaultMaxTimeouts = 5
	DefaultMinutes     = 12
	DefaultShotClock   = 24
	MaxPeriod          = 5

	newGamePrompt = "Reset the entire scoreboard?"

	gameClockInterval = 100 * time.Millisecond
	shotClockInterval = time.Second
)

var periodLabels = []string{"1st Quarter", "2nd Quarter", "3rd Quarter", "4th Quarter", "OT"}

// PeriodLabel names period n; anything past the fourth is overtime
func PeriodLabel(n int) string {
	if n >= 1 && n <= len(periodLabels) {
		return periodLabels[n-1]
	}
	return "OT"
}

// Default is the scoreboard a fresh install starts with
func Default() models.Scoreboard {
	return models.Scoreboard{
		HomeName:          "HOME",
		AwayName:          "AWAY",
		LeagueName:        "Hoops",
		Period:            1,
		PeriodLabel:       PeriodLabel(1),
		Possession:        models.SideHome,
		MinutesPerQuarter: DefaultMinutes,
		TimerCentiseconds: DefaultMinutes * 60 * 100,
		ShotClockSeconds:  DefaultShotClock,
		ShotClockDefault:  DefaultShotClock,
		HomeTimeouts:      DefaultMaxTimeouts,
		AwayTimeouts:      DefaultMaxTimeouts,
		MaxTimeouts:       DefaultMaxTimeouts,
		Theme:             Presets[0],
	}
}

// Hook is told about clock events such as the end-of-period buzzer
type Hook func(ctx context.Context, sb models.Scoreboard)

// App operates the scoreboard in state. Operations expect the state lock to
// be held by the caller; clock ticks take it themselves.
type App struct {
	state     *state.State
	store     *store.Store
	confirmer confirm.Confirmer
	clock     clockwork.Clock
	themes    []models.Theme

	onBuzzer    Hook
	onViolation Hook

	game *countdown
	shot *countdown
}

type Option func(*App)

func WithClock(c clockwork.Clock) Option {
	return func(a *App) { a.clock = c }
}

// WithThemes adds themes to the built-in presets
func WithThemes(themes ...models.Theme) Option {
	return func(a *App) { a.themes = append(a.themes, themes...) }
}

// WithBuzzer is called when the game clock runs out
func WithBuzzer(h Hook) Option {
	return func(a *App) { a.onBuzzer = h }
}

// WithViolation is called when the shot clock runs out
func WithViolation(h Hook) Option {
	return func(a *App) { a.onViolation = h }
}

// NewApp creates a new scoreboard App. Clocks never resume on start, whatever
// the stored state says.
func NewApp(st *state.State, s *store.Store, c confirm.Confirmer, opts ...Option) *App {
	a := &App{
		state:     st,
		store:     s,
		confirmer: c,
		clock:     clockwork.NewRealClock(),
		themes:    append([]models.Theme{}, Presets...),
		onBuzzer: func(_ context.Context, sb models.Scoreboard) {
			log.Info().Int("period", sb.Period).Msg("buzzer")
		},
		onViolation: func(_ context.Context, sb models.Scoreboard) {
			log.Info().Str("possession", string(sb.Possession)).Msg("shot clock violation")
		},
	}
	for _, opt := range opts {
		opt(a)
	}
	a.game = newCountdown(a.clock, st, gameClockInterval, 10*time.Millisecond)
	a.shot = newCountdown(a.clock, st, shotClockInterval, time.Second)

	a.settle()
	return a
}

// Reload halts the clocks and adopts whatever scoreboard the state now holds,
// e.g. after a sign-in swapped the stored data
func (a *App) Reload(ctx context.Context, reload func(ctx context.Context)) {
	a.game.stop()
	a.shot.stop()
	reload(ctx)
	a.settle()
}

func (a *App) settle() {
	sb := a.sb()
	sb.TimerRunning = false
	sb.ShotClockRunning = false
	sb.PeriodLabel = PeriodLabel(sb.Period)
}

// Themes lists the themes SetTheme accepts
func (a *App) Themes() []models.Theme {
	return append([]models.Theme{}, a.themes...)
}

// Scoreboard returns a copy of the live scoreboard
func (a *App) Scoreboard() models.Scoreboard {
	return a.state.Scoreboard
}

func (a *App) sb() *models.Scoreboard {
	return &a.state.Scoreboard
}

func (a *App) persist(ctx context.Context) {
	_ = a.store.Write(ctx, store.KeyScoreboard, a.state.Scoreboard)
}

func validSide(side models.Side) error {
	if !side.Valid() {
		return fmt.Errorf("validation failed: %w", ErrInvalidSide)
	}
	return nil
}

func inRange(n, lo, hi int) error {
	if n < lo || n > hi {
		return fmt.Errorf("validation failed: %w: %d not in %d..%d", ErrOutOfRange, n, lo, hi)
	}
	return nil
}

// AdjustScore adds delta to side's score; scores never go below zero
func (a *App) AdjustScore(ctx context.Context, side models.Side, delta int) error {
	if err := validSide(side); err != nil {
		return err
	}
	sb := a.sb()
	if side == models.SideHome {
		sb.HomeScore = max(0, sb.HomeScore+delta)
	} else {
		sb.AwayScore = max(0, sb.AwayScore+delta)
	}
	a.persist(ctx)
	return nil
}

// ToggleFoul treats fouls as a row of dots: pressing dot index fills up to
// it, pressing the last filled dot clears it
func (a *App) ToggleFoul(ctx context.Context, side models.Side, index int) error {
	if err := validSide(side); err != nil {
		return err
	}
	if err := inRange(index, 0, MaxFouls-1); err != nil {
		return err
	}
	fouls := a.fouls(side)
	if *fouls == index+1 {
		*fouls = index
	} else {
		*fouls = index + 1
	}
	a.persist(ctx)
	return nil
}

func (a *App) fouls(side models.Side) *int {
	if side == models.SideAway {
		return &a.sb().AwayFouls
	}
	return &a.sb().HomeFouls
}

func (a *App) ResetFouls(ctx context.Context) error {
	a.sb().HomeFouls = 0
	a.sb().AwayFouls = 0
	a.persist(ctx)
	return nil
}

func (a *App) timeouts(side models.Side) *int {
	if side == models.SideAway {
		return &a.sb().AwayTimeouts
	}
	return &a.sb().HomeTimeouts
}

// UseTimeout spends one of side's remaining timeouts; none left is a no-op
func (a *App) UseTimeout(ctx context.Context, side models.Side) error {
	if err := validSide(side); err != nil {
		return err
	}
	left := a.timeouts(side)
	if *left <= 0 {
		return nil
	}
	*left--
	a.persist(ctx)
	return nil
}

// RestoreTimeout gives one back, up to the maximum
func (a *App) RestoreTimeout(ctx context.Context, side models.Side) error {
	if err := validSide(side); err != nil {
		return err
	}
	left := a.timeouts(side)
	if *left >= a.sb().MaxTimeouts {
		return nil
	}
	*left++
	a.persist(ctx)
	return nil
}

// SetMaxTimeouts changes the allowance and gives both teams a full set
func (a *App) SetMaxTimeouts(ctx context.Context, n int) error {
	if err := inRange(n, 1, 10); err != nil {
		return err
	}
	sb := a.sb()
	sb.MaxTimeouts = n
	sb.HomeTimeouts = n
	sb.AwayTimeouts = n
	a.persist(ctx)
	return nil
}

// SetPeriod jumps to period n, resetting the game clock and restarting the shot clock
func (a *App) SetPeriod(ctx context.Context, n int) error {
	if err := inRange(n, 1, MaxPeriod); err != nil {
		return err
	}
	a.setPeriod(ctx, n)
	return nil
}

// ChangePeriod moves by delta, clamped to the valid periods
func (a *App) ChangePeriod(ctx context.Context, delta int) error {
	a.setPeriod(ctx, min(MaxPeriod, max(1, a.sb().Period+delta)))
	return nil
}

func (a *App) NextPeriod(ctx context.Context) error {
	return a.ChangePeriod(ctx, 1)
}

func (a *App) setPeriod(ctx context.Context, n int) {
	sb := a.sb()
	sb.Period = n
	sb.PeriodLabel = PeriodLabel(n)
	a.resetClock()
	a.restartShotClock(ctx, sb.ShotClockDefault)
	a.persist(ctx)

	log.Info().Int("period", n).Str("label", sb.PeriodLabel).Msg("period changed")
}

// SetMinutes changes the quarter length and resets the game clock
func (a *App) SetMinutes(ctx context.Context, n int) error {
	if err := inRange(n, 1, 60); err != nil {
		return err
	}
	a.sb().MinutesPerQuarter = n
	a.resetClock()
	a.persist(ctx)
	return nil
}

// ToggleClock starts or pauses the game clock. Starting it also starts the
// shot clock if that is stopped; pausing leaves the shot clock alone.
func (a *App) ToggleClock(ctx context.Context) error {
	sb := a.sb()
	if a.game.running() {
		if left, ok := a.game.stop(); ok {
			sb.TimerCentiseconds = left
		}
		sb.TimerRunning = false
		a.persist(ctx)
		log.Info().Str("clock", FormatClock(sb.TimerCentiseconds)).Msg("game clock stopped")
		return nil
	}

	sb.TimerRunning = true
	a.game.start(ctx, sb.TimerCentiseconds, a.gameTick())
	if !a.shot.running() {
		a.startShotClock(ctx)
	}
	a.persist(ctx)
	log.Info().Str("clock", FormatClock(sb.TimerCentiseconds)).Msg("game clock started")
	return nil
}

// ResetClock stops the game clock and sets it back to a full quarter
func (a *App) ResetClock(ctx context.Context) error {
	a.resetClock()
	a.persist(ctx)
	return nil
}

func (a *App) resetClock() {
	a.game.stop()
	sb := a.sb()
	sb.TimerRunning = false
	sb.TimerCentiseconds = sb.MinutesPerQuarter * 60 * 100
}

func (a *App) gameTick() func(ctx context.Context, remaining int) bool {
	lastSecond := a.sb().TimerCentiseconds / 100
	return func(ctx context.Context, remaining int) bool {
		sb := a.sb()
		sb.TimerCentiseconds = remaining
		if remaining == 0 {
			sb.TimerRunning = false
			a.persist(ctx)
			a.onBuzzer(ctx, *sb)
			return false
		}
		if s := remaining / 100; s != lastSecond {
			lastSecond = s
			a.persist(ctx)
		}
		return true
	}
}

// ToggleShotClock starts or pauses the shot clock
func (a *App) ToggleShotClock(ctx context.Context) error {
	sb := a.sb()
	if a.shot.running() {
		if left, ok := a.shot.stop(); ok {
			sb.ShotClockSeconds = left
		}
		sb.ShotClockRunning = false
	} else {
		a.startShotClock(ctx)
	}
	a.persist(ctx)
	return nil
}

// ResetShotClock restarts the shot clock from its default. A positive
// seconds value first becomes the new default.
func (a *App) ResetShotClock(ctx context.Context, seconds int) error {
	if seconds != 0 {
		if err := inRange(seconds, 1, 60); err != nil {
			return err
		}
		a.sb().ShotClockDefault = seconds
	}
	a.restartShotClock(ctx, a.sb().ShotClockDefault)
	a.persist(ctx)
	return nil
}

func (a *App) restartShotClock(ctx context.Context, seconds int) {
	a.shot.stop()
	a.sb().ShotClockSeconds = seconds
	a.startShotClock(ctx)
}

func (a *App) startShotClock(ctx context.Context) {
	sb := a.sb()
	sb.ShotClockRunning = true
	a.shot.start(ctx, sb.ShotClockSeconds, func(ctx context.Context, remaining int) bool {
		sb := a.sb()
		sb.ShotClockSeconds = remaining
		if remaining == 0 {
			sb.ShotClockRunning = false
			a.persist(ctx)
			a.onViolation(ctx, *sb)
			return false
		}
		a.persist(ctx)
		return true
	})
}

func (a *App) SetPossession(ctx context.Context, side models.Side) error {
	if err := validSide(side); err != nil {
		return err
	}
	a.sb().Possession = side
	a.persist(ctx)
	return nil
}

func (a *App) TogglePossession(ctx context.Context) error {
	sb := a.sb()
	if sb.Possession == models.SideAway {
		sb.Possession = models.SideHome
	} else {
		sb.Possession = models.SideAway
	}
	a.persist(ctx)
	return nil
}

// SetTeamName renames side; a blank name falls back to HOME or AWAY
func (a *App) SetTeamName(ctx context.Context, side models.Side, name string) error {
	if err := validSide(side); err != nil {
		return err
	}
	name = strings.TrimSpace(name)
	if name == "" {
		name = strings.ToUpper(string(side))
	}
	if side == models.SideHome {
		a.sb().HomeName = name
	} else {
		a.sb().AwayName = name
	}
	a.persist(ctx)
	return nil
}

// SetLeagueName renames the league; a blank name is ignored
func (a *App) SetLeagueName(ctx context.Context, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil
	}
	a.sb().LeagueName = name
	a.persist(ctx)
	return nil
}

// SetTheme switches to the theme with the given id
func (a *App) SetTheme(ctx context.Context, id string) error {
	t, ok := findTheme(a.themes, id)
	if !ok {
		return fmt.Errorf("validation failed: %w: %q", ErrUnknownTheme, id)
	}
	a.sb().Theme = t
	a.persist(ctx)
	return nil
}

// SetCustomTheme applies caller-chosen colours
func (a *App) SetCustomTheme(ctx context.Context, t models.Theme) error {
	if !validTheme(t) {
		return fmt.Errorf("validation failed: %w", ErrInvalidTheme)
	}
	t.ID = CustomThemeID
	t.Name = "Custom"
	a.sb().Theme = t
	a.persist(ctx)
	return nil
}

// NewGame clears the game after confirmation. Names, league, theme and the
// clock settings survive; both clocks are left stopped.
func (a *App) NewGame(ctx context.Context) error {
	if !a.confirmer.Confirm(ctx, newGamePrompt) {
		return confirm.ErrDeclined
	}
	a.game.stop()
	a.shot.stop()

	sb := a.sb()
	sb.HomeScore, sb.AwayScore = 0, 0
	sb.HomeFouls, sb.AwayFouls = 0, 0
	sb.Period = 1
	sb.PeriodLabel = PeriodLabel(1)
	sb.TimerRunning = false
	sb.TimerCentiseconds = sb.MinutesPerQuarter * 60 * 100
	sb.ShotClockRunning = false
	sb.ShotClockSeconds = sb.ShotClockDefault
	sb.HomeTimeouts = sb.MaxTimeouts
	sb.AwayTimeouts = sb.MaxTimeouts
	sb.Possession = models.SideHome
	a.persist(ctx)

	log.Info().Msg("new game")
	return nil
}

// Stop halts both clocks, keeping the time they reached
func (a *App) Stop(ctx context.Context) {
	sb := a.sb()
	if left, ok := a.game.stop(); ok {
		sb.TimerCentiseconds = left
	}
	if left, ok := a.shot.stop(); ok {
		sb.ShotClockSeconds = left
	}
	sb.TimerRunning = false
	sb.ShotClockRunning = false
	a.persist(ctx)
}
