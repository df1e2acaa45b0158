package scoreboard

import (
	"context"
	"net/http/httptest"
	"testing"
	"time"

	"connectrpc.com/connect"
	"github.com/iamdexbot/Scoreboard-Pro/go/internal/confirm"
	"github.com/iamdexbot/Scoreboard-Pro/go/internal/models"
	"github.com/iamdexbot/Scoreboard-Pro/go/internal/rpc"
	"github.com/iamdexbot/Scoreboard-Pro/go/internal/state"
	"github.com/iamdexbot/Scoreboard-Pro/go/internal/store"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	app   *App
	state *state.State
	store *store.Store
	clock *clockwork.FakeClock
}

func newFixture(t *testing.T, c confirm.Confirmer, opts ...Option) fixture {
	t.Helper()
	st := state.New(Default())
	s := store.New(store.NewMemory())
	fc := clockwork.NewFakeClock()
	app := NewApp(st, s, c, append([]Option{WithClock(fc)}, opts...)...)
	f := fixture{app: app, state: st, store: s, clock: fc}
	t.Cleanup(func() {
		f.locked(func() { app.Stop(context.Background()) })
	})
	return f
}

// locked runs fn the way a handler would, holding the state lock
func (f fixture) locked(fn func()) {
	f.state.Lock()
	defer f.state.Unlock()
	fn()
}

func (f fixture) snapshot() models.Scoreboard {
	var sb models.Scoreboard
	f.locked(func() { sb = f.app.Scoreboard() })
	return sb
}

func (f fixture) stored() models.Scoreboard {
	var sb models.Scoreboard
	f.locked(func() {
		f.store.Read(context.Background(), store.KeyScoreboard, &sb)
	})
	return sb
}

func TestAdjustScoreClampsAtZero(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, confirm.Always)

	require.NoError(t, f.app.AdjustScore(ctx, models.SideHome, 3))
	require.NoError(t, f.app.AdjustScore(ctx, models.SideHome, -5))
	require.NoError(t, f.app.AdjustScore(ctx, models.SideAway, 2))

	assert.Equal(t, 0, f.app.Scoreboard().HomeScore)
	assert.Equal(t, 2, f.app.Scoreboard().AwayScore)
	assert.Equal(t, 2, f.stored().AwayScore)

	assert.ErrorIs(t, f.app.AdjustScore(ctx, "middle", 1), ErrInvalidSide)
}

func TestToggleFoul(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, confirm.Always)

	require.NoError(t, f.app.ToggleFoul(ctx, models.SideHome, 2))
	assert.Equal(t, 3, f.app.Scoreboard().HomeFouls)

	// pressing the last lit dot turns it off
	require.NoError(t, f.app.ToggleFoul(ctx, models.SideHome, 2))
	assert.Equal(t, 2, f.app.Scoreboard().HomeFouls)

	require.NoError(t, f.app.ToggleFoul(ctx, models.SideAway, 4))
	assert.Equal(t, MaxFouls, f.app.Scoreboard().AwayFouls)
	assert.Equal(t, PenaltyLabel, NewView(f.app.Scoreboard()).AwayFoulLabel)

	assert.ErrorIs(t, f.app.ToggleFoul(ctx, models.SideAway, 5), ErrOutOfRange)
	assert.Equal(t, MaxFouls, f.app.Scoreboard().AwayFouls)

	require.NoError(t, f.app.ResetFouls(ctx))
	assert.Zero(t, f.app.Scoreboard().HomeFouls)
	assert.Zero(t, f.app.Scoreboard().AwayFouls)
}

func TestTimeouts(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, confirm.Always)

	require.NoError(t, f.app.RestoreTimeout(ctx, models.SideHome))
	assert.Equal(t, DefaultMaxTimeouts, f.app.Scoreboard().HomeTimeouts)

	for i := 0; i < DefaultMaxTimeouts+2; i++ {
		require.NoError(t, f.app.UseTimeout(ctx, models.SideAway))
	}
	assert.Zero(t, f.app.Scoreboard().AwayTimeouts)

	require.NoError(t, f.app.RestoreTimeout(ctx, models.SideAway))
	assert.Equal(t, 1, f.app.Scoreboard().AwayTimeouts)

	require.NoError(t, f.app.SetMaxTimeouts(ctx, 7))
	sb := f.app.Scoreboard()
	assert.Equal(t, 7, sb.MaxTimeouts)
	assert.Equal(t, 7, sb.HomeTimeouts)
	assert.Equal(t, 7, sb.AwayTimeouts)

	assert.ErrorIs(t, f.app.SetMaxTimeouts(ctx, 0), ErrOutOfRange)
	assert.ErrorIs(t, f.app.SetMaxTimeouts(ctx, 11), ErrOutOfRange)
	assert.Equal(t, 7, f.app.Scoreboard().MaxTimeouts)
}

func TestPeriods(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, confirm.Always)

	f.locked(func() {
		require.NoError(t, f.app.ChangePeriod(ctx, -1))
		assert.Equal(t, 1, f.app.Scoreboard().Period)

		for i := 0; i < 6; i++ {
			require.NoError(t, f.app.NextPeriod(ctx))
		}
		sb := f.app.Scoreboard()
		assert.Equal(t, MaxPeriod, sb.Period)
		assert.Equal(t, "OT", sb.PeriodLabel)

		require.NoError(t, f.app.SetPeriod(ctx, 3))
		sb = f.app.Scoreboard()
		assert.Equal(t, "3rd Quarter", sb.PeriodLabel)
		assert.Equal(t, DefaultMinutes*60*100, sb.TimerCentiseconds)
		assert.False(t, sb.TimerRunning)
		// a new period restarts the shot clock
		assert.True(t, sb.ShotClockRunning)
		assert.Equal(t, DefaultShotClock, sb.ShotClockSeconds)

		assert.ErrorIs(t, f.app.SetPeriod(ctx, 6), ErrOutOfRange)
		assert.Equal(t, 3, f.app.Scoreboard().Period)
	})
}

func TestSetMinutesResetsClock(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, confirm.Always)

	require.NoError(t, f.app.SetMinutes(ctx, 10))
	assert.Equal(t, 60000, f.app.Scoreboard().TimerCentiseconds)
	assert.Equal(t, "10:00.00", NewView(f.app.Scoreboard()).Clock)

	assert.ErrorIs(t, f.app.SetMinutes(ctx, 61), ErrOutOfRange)
	assert.ErrorIs(t, f.app.SetMinutes(ctx, 0), ErrOutOfRange)
	assert.Equal(t, 10, f.app.Scoreboard().MinutesPerQuarter)
}

func TestGameClockPauseKeepsElapsedTime(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, confirm.Always)

	f.locked(func() { require.NoError(t, f.app.ToggleClock(ctx)) })
	sb := f.snapshot()
	assert.True(t, sb.TimerRunning)
	assert.True(t, sb.ShotClockRunning, "starting the game clock starts the shot clock")

	f.clock.Advance(10*time.Second + 250*time.Millisecond)
	f.locked(func() { require.NoError(t, f.app.ToggleClock(ctx)) })

	sb = f.snapshot()
	assert.False(t, sb.TimerRunning)
	assert.Equal(t, 72000-1025, sb.TimerCentiseconds)
	assert.True(t, sb.ShotClockRunning, "pausing the game clock leaves the shot clock running")
	assert.Equal(t, sb.TimerCentiseconds, f.stored().TimerCentiseconds)

	// paused time does not count
	f.clock.Advance(time.Minute)
	assert.Equal(t, 72000-1025, f.snapshot().TimerCentiseconds)
}

func TestGameClockTicksAndBuzzes(t *testing.T) {
	ctx := context.Background()
	buzzed := make(chan models.Scoreboard, 1)
	f := newFixture(t, confirm.Always, WithBuzzer(func(_ context.Context, sb models.Scoreboard) {
		buzzed <- sb
	}))

	f.locked(func() {
		require.NoError(t, f.app.SetMinutes(ctx, 1))
		require.NoError(t, f.app.ToggleClock(ctx))
	})

	f.clock.Advance(30 * time.Second)
	require.Eventually(t, func() bool {
		return f.snapshot().TimerCentiseconds == 3000
	}, time.Second, 5*time.Millisecond)
	require.Eventually(t, func() bool {
		return f.stored().TimerCentiseconds == 3000
	}, time.Second, 5*time.Millisecond)

	f.clock.Advance(31 * time.Second)
	select {
	case sb := <-buzzed:
		assert.Zero(t, sb.TimerCentiseconds)
		assert.False(t, sb.TimerRunning)
	case <-time.After(time.Second):
		t.Fatal("buzzer did not sound")
	}
	assert.False(t, f.stored().TimerRunning)
}

func TestShotClockViolation(t *testing.T) {
	ctx := context.Background()
	violations := make(chan models.Scoreboard, 1)
	f := newFixture(t, confirm.Always, WithViolation(func(_ context.Context, sb models.Scoreboard) {
		violations <- sb
	}))

	f.locked(func() { require.NoError(t, f.app.ResetShotClock(ctx, 5)) })
	sb := f.snapshot()
	assert.Equal(t, 5, sb.ShotClockDefault)
	assert.True(t, sb.ShotClockRunning)
	assert.False(t, sb.TimerRunning, "the shot clock runs on its own")

	f.clock.Advance(2 * time.Second)
	require.Eventually(t, func() bool {
		return f.snapshot().ShotClockSeconds == 3
	}, time.Second, 5*time.Millisecond)
	assert.Equal(t, "critical", ShotClockLevel(3))

	f.clock.Advance(3 * time.Second)
	select {
	case sb := <-violations:
		assert.Zero(t, sb.ShotClockSeconds)
		assert.False(t, sb.ShotClockRunning)
	case <-time.After(time.Second):
		t.Fatal("no shot clock violation")
	}

	f.locked(func() {
		require.NoError(t, f.app.ResetShotClock(ctx, 0))
		assert.Equal(t, 5, f.app.Scoreboard().ShotClockSeconds)
		assert.ErrorIs(t, f.app.ResetShotClock(ctx, 61), ErrOutOfRange)
	})
}

func TestToggleShotClock(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, confirm.Always)

	f.locked(func() { require.NoError(t, f.app.ToggleShotClock(ctx)) })
	f.clock.Advance(4 * time.Second)
	f.locked(func() { require.NoError(t, f.app.ToggleShotClock(ctx)) })

	sb := f.snapshot()
	assert.False(t, sb.ShotClockRunning)
	assert.Equal(t, 20, sb.ShotClockSeconds)
}

func TestPossession(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, confirm.Always)

	assert.Equal(t, models.SideHome, f.app.Scoreboard().Possession)
	require.NoError(t, f.app.TogglePossession(ctx))
	assert.Equal(t, models.SideAway, f.app.Scoreboard().Possession)
	require.NoError(t, f.app.SetPossession(ctx, models.SideHome))
	assert.Equal(t, models.SideHome, f.app.Scoreboard().Possession)
	assert.ErrorIs(t, f.app.SetPossession(ctx, ""), ErrInvalidSide)
}

func TestNames(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, confirm.Always)

	require.NoError(t, f.app.SetTeamName(ctx, models.SideAway, "  Jazz "))
	assert.Equal(t, "Jazz", f.app.Scoreboard().AwayName)
	require.NoError(t, f.app.SetTeamName(ctx, models.SideAway, ""))
	assert.Equal(t, "AWAY", f.app.Scoreboard().AwayName)

	require.NoError(t, f.app.SetLeagueName(ctx, " Rec League "))
	require.NoError(t, f.app.SetLeagueName(ctx, "   "))
	assert.Equal(t, "Rec League", f.app.Scoreboard().LeagueName)
}

func TestThemes(t *testing.T) {
	ctx := context.Background()
	extra := models.Theme{ID: "club", Name: "Club", Accent: "#123456", HomeColor: "#123456", AwayColor: "#654321", Yellow: "#FFF", Dark: "#000", Panel: "#111"}
	f := newFixture(t, confirm.Always, WithThemes(extra))

	assert.Len(t, f.app.Themes(), len(Presets)+1)
	require.NoError(t, f.app.SetTheme(ctx, "nba"))
	assert.Equal(t, "#C9082A", f.app.Scoreboard().Theme.Accent)
	require.NoError(t, f.app.SetTheme(ctx, "club"))
	assert.Equal(t, "Club", f.app.Scoreboard().Theme.Name)
	assert.ErrorIs(t, f.app.SetTheme(ctx, "neon"), ErrUnknownTheme)

	custom := Presets[0]
	custom.Accent = "#ABCDEF"
	require.NoError(t, f.app.SetCustomTheme(ctx, custom))
	assert.Equal(t, CustomThemeID, f.app.Scoreboard().Theme.ID)

	custom.Panel = "red"
	assert.ErrorIs(t, f.app.SetCustomTheme(ctx, custom), ErrInvalidTheme)
	assert.Equal(t, "#161616", f.app.Scoreboard().Theme.Panel)
}

func TestNewGame(t *testing.T) {
	ctx := context.Background()

	declined := newFixture(t, confirm.Never)
	require.NoError(t, declined.app.AdjustScore(ctx, models.SideHome, 10))
	assert.ErrorIs(t, declined.app.NewGame(ctx), confirm.ErrDeclined)
	assert.Equal(t, 10, declined.app.Scoreboard().HomeScore)

	f := newFixture(t, confirm.Always)
	f.locked(func() {
		require.NoError(t, f.app.SetTeamName(ctx, models.SideHome, "Bulls"))
		require.NoError(t, f.app.SetMinutes(ctx, 8))
		require.NoError(t, f.app.AdjustScore(ctx, models.SideHome, 10))
		require.NoError(t, f.app.ToggleFoul(ctx, models.SideAway, 3))
		require.NoError(t, f.app.UseTimeout(ctx, models.SideHome))
		require.NoError(t, f.app.SetPeriod(ctx, 4))
		require.NoError(t, f.app.SetPossession(ctx, models.SideAway))
		require.NoError(t, f.app.ToggleClock(ctx))
	})
	f.clock.Advance(3 * time.Second)

	f.locked(func() { require.NoError(t, f.app.NewGame(ctx)) })
	sb := f.snapshot()
	assert.Equal(t, "Bulls", sb.HomeName)
	assert.Equal(t, 8, sb.MinutesPerQuarter)
	assert.Zero(t, sb.HomeScore)
	assert.Zero(t, sb.AwayFouls)
	assert.Equal(t, DefaultMaxTimeouts, sb.HomeTimeouts)
	assert.Equal(t, 1, sb.Period)
	assert.Equal(t, "1st Quarter", sb.PeriodLabel)
	assert.Equal(t, models.SideHome, sb.Possession)
	assert.Equal(t, 8*60*100, sb.TimerCentiseconds)
	assert.False(t, sb.TimerRunning)
	assert.False(t, sb.ShotClockRunning)
	assert.Equal(t, DefaultShotClock, sb.ShotClockSeconds)
}

func TestNewAppNeverResumesClocks(t *testing.T) {
	sb := Default()
	sb.TimerRunning = true
	sb.ShotClockRunning = true
	sb.Period = 2
	st := state.New(sb)

	app := NewApp(st, store.New(store.NewMemory()), confirm.Always, WithClock(clockwork.NewFakeClock()))
	got := app.Scoreboard()
	assert.False(t, got.TimerRunning)
	assert.False(t, got.ShotClockRunning)
	assert.Equal(t, "2nd Quarter", got.PeriodLabel)
}

func TestReloadStopsClocksAndAdoptsNewState(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, confirm.Always)

	f.locked(func() {
		require.NoError(t, f.app.ToggleClock(ctx))
		assert.True(t, f.app.game.running())

		f.app.Reload(ctx, func(context.Context) {
			sb := Default()
			sb.Period = 3
			sb.HomeScore = 40
			sb.TimerRunning = true
			sb.ShotClockRunning = true
			f.state.Scoreboard = sb
		})

		assert.False(t, f.app.game.running())
		assert.False(t, f.app.shot.running())
	})

	got := f.snapshot()
	assert.Equal(t, 40, got.HomeScore)
	assert.Equal(t, "3rd Quarter", got.PeriodLabel)
	assert.False(t, got.TimerRunning)
	assert.False(t, got.ShotClockRunning)
}

func TestServiceRoundTrip(t *testing.T) {
	f := newFixture(t, confirm.FromContext{})
	_, handler := NewHandler(NewService(f.app), rpc.DefaultInterceptors(f.state))
	srv := httptest.NewServer(handler)
	defer srv.Close()
	ctx := context.Background()

	adjust := rpc.NewClient[AdjustScoreMessage, ScoreboardResponse](srv.Client(), srv.URL, AdjustScoreProcedure)
	res, err := adjust.CallUnary(ctx, connect.NewRequest(&AdjustScoreMessage{Side: models.SideAway, Delta: 3}))
	require.NoError(t, err)
	assert.Equal(t, 3, res.Msg.Scoreboard.AwayScore)
	assert.Equal(t, "12:00.00", res.Msg.Scoreboard.Clock)

	_, err = adjust.CallUnary(ctx, connect.NewRequest(&AdjustScoreMessage{Side: "left", Delta: 3}))
	assert.Equal(t, connect.CodeInvalidArgument, connect.CodeOf(err))

	theme := rpc.NewClient[SetThemeMessage, ScoreboardResponse](srv.Client(), srv.URL, SetThemeProcedure)
	_, err = theme.CallUnary(ctx, connect.NewRequest(&SetThemeMessage{ID: "neon"}))
	assert.Equal(t, connect.CodeNotFound, connect.CodeOf(err))

	newGame := rpc.NewClient[EmptyMessage, ScoreboardResponse](srv.Client(), srv.URL, NewGameProcedure)
	_, err = newGame.CallUnary(ctx, connect.NewRequest(&EmptyMessage{}))
	assert.Equal(t, connect.CodeAborted, connect.CodeOf(err))

	req := connect.NewRequest(&EmptyMessage{})
	req.Header().Set(rpc.ConfirmHeader, "true")
	res, err = newGame.CallUnary(ctx, req)
	require.NoError(t, err)
	assert.Zero(t, res.Msg.Scoreboard.AwayScore)
}
