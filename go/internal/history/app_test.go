package history

import (
	"context"
	"encoding/json"
	"errors"
	"net/http/httptest"
	"testing"
	"time"

	"connectrpc.com/connect"
	"github.com/iamdexbot/Scoreboard-Pro/go/internal/confirm"
	"github.com/iamdexbot/Scoreboard-Pro/go/internal/events"
	"github.com/iamdexbot/Scoreboard-Pro/go/internal/models"
	"github.com/iamdexbot/Scoreboard-Pro/go/internal/rpc"
	"github.com/iamdexbot/Scoreboard-Pro/go/internal/standings"
	"github.com/iamdexbot/Scoreboard-Pro/go/internal/state"
	"github.com/iamdexbot/Scoreboard-Pro/go/internal/store"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	app       *App
	state     *state.State
	store     *store.Store
	standings *standings.App
	published *events.Recorder
}

type staticIdentity struct{ id models.Identity }

func (s staticIdentity) Identity(context.Context) (models.Identity, bool) { return s.id, true }

func newFixture(t *testing.T, c confirm.Confirmer, policy standings.TiePolicy) fixture {
	t.Helper()
	st := state.New(models.Scoreboard{})
	s := store.New(store.NewMemory())
	sa := standings.NewApp(st, s, confirm.Always, policy)
	rec := events.NewRecorder()
	clock := clockwork.NewFakeClockAt(time.Date(2026, time.March, 14, 20, 15, 0, 0, time.UTC))

	st.Roster.Home = []models.Player{
		{ID: "h1", Number: "23", Name: "Jordan", Position: models.PositionShootingGuard},
		{ID: "h2", Number: "33", Name: "Pippen", Position: models.PositionSmallForward},
	}
	st.Roster.Away = []models.Player{
		{ID: "a1", Number: "32", Name: "Malone", Position: models.PositionPowerForward},
	}
	st.Stats.Home["h1"] = models.StatLine{Points: 38, Assists: 4}

	app := NewApp(st, s, c, sa,
		WithPublisher(rec),
		WithClock(clock),
		WithIdentities(staticIdentity{models.Identity{UserID: "user-9"}}),
	)
	return fixture{app: app, state: st, store: s, standings: sa, published: rec}
}

func TestSaveGame(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, confirm.Always, standings.TieAwayWins)

	game, err := f.app.SaveGame(ctx, SaveGameRequest{HomeName: "Bulls", AwayName: "Jazz", HomeScore: 87, AwayScore: 86, LeagueName: "Finals"})
	require.NoError(t, err)

	assert.NotEmpty(t, game.ID)
	assert.Equal(t, "Mar 14, 2026", game.Date)
	assert.Equal(t, "Finals", game.LeagueName)
	require.Len(t, game.BoxScore.Home, 2)
	require.Len(t, game.BoxScore.Away, 1)
	assert.Equal(t, 38, game.BoxScore.Home[0].Stats.Points)
	assert.Equal(t, "Jordan", game.BoxScore.Home[0].Name)
	// players without a stat line are snapshotted with zeros
	assert.Equal(t, models.StatLine{}, game.BoxScore.Away[0].Stats)

	assert.Equal(t, []models.GameRecord{*game}, store.LoadHistory(ctx, f.store))

	standingsNow := f.standings.Standings()
	require.Len(t, standingsNow, 2)
	assert.Equal(t, "Bulls", standingsNow[0].Name)
	assert.Equal(t, 1, standingsNow[0].Wins)
}

func TestSaveGameSnapshotIsIndependent(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, confirm.Always, standings.TieAwayWins)

	game, err := f.app.SaveGame(ctx, SaveGameRequest{HomeName: "Bulls", AwayName: "Jazz", HomeScore: 90, AwayScore: 80})
	require.NoError(t, err)

	f.state.Stats.Home["h1"] = models.StatLine{Points: 99}
	f.state.Roster.Home[0].Name = "Renamed"

	saved, err := f.app.Game(game.ID)
	require.NoError(t, err)
	assert.Equal(t, 38, saved.BoxScore.Home[0].Stats.Points)
	assert.Equal(t, "Jordan", saved.BoxScore.Home[0].Name)
}

func TestSaveGameDefaults(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, confirm.Always, standings.TieAwayWins)

	game, err := f.app.SaveGame(ctx, SaveGameRequest{HomeScore: 2})
	require.NoError(t, err)
	assert.Equal(t, DefaultHomeName, game.HomeName)
	assert.Equal(t, DefaultAwayName, game.AwayName)
	assert.Equal(t, DefaultLeagueName, game.LeagueName)
}

func TestSaveGameKeepsNamesVerbatim(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, confirm.Always, standings.TieAwayWins)

	game, err := f.app.SaveGame(ctx, SaveGameRequest{HomeName: " Bulls ", AwayName: "  ", LeagueName: "Rec ", HomeScore: 2})
	require.NoError(t, err)
	assert.Equal(t, " Bulls ", game.HomeName)
	assert.Equal(t, "  ", game.AwayName)
	assert.Equal(t, "Rec ", game.LeagueName)
}

func TestSaveGameNewestFirst(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, confirm.Always, standings.TieAwayWins)

	first, err := f.app.SaveGame(ctx, SaveGameRequest{HomeName: "A", AwayName: "B", HomeScore: 1})
	require.NoError(t, err)
	second, err := f.app.SaveGame(ctx, SaveGameRequest{HomeName: "A", AwayName: "B", AwayScore: 1})
	require.NoError(t, err)

	games := f.app.Games()
	require.Len(t, games, 2)
	assert.Equal(t, second.ID, games[0].ID)
	assert.Equal(t, first.ID, games[1].ID)
	assert.NotEqual(t, first.ID, second.ID)
}

func TestSaveGameRejectsUnstartedGame(t *testing.T) {
	ctx := context.Background()
	asked := false
	f := newFixture(t, confirm.Func(func(context.Context, string) bool {
		asked = true
		return true
	}), standings.TieAwayWins)

	_, err := f.app.SaveGame(ctx, SaveGameRequest{HomeName: "A", AwayName: "B"})
	assert.ErrorIs(t, err, ErrGameNotStarted)
	assert.False(t, asked)
	assert.Empty(t, f.state.History)
	assert.Empty(t, f.state.Standings)
	assert.Empty(t, f.published.Events())
}

func TestSaveGameDeclined(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, confirm.Never, standings.TieAwayWins)

	_, err := f.app.SaveGame(ctx, SaveGameRequest{HomeName: "A", AwayName: "B", HomeScore: 10, AwayScore: 3})
	assert.ErrorIs(t, err, confirm.ErrDeclined)
	assert.Empty(t, f.state.History)
	assert.Empty(t, f.state.Standings)

	raw, err := f.store.Backend().Read(ctx, store.KeyHistory)
	require.NoError(t, err)
	assert.Nil(t, raw)
}

func TestSaveGameTiePolicies(t *testing.T) {
	ctx := context.Background()

	legacy := newFixture(t, confirm.Always, standings.TieAwayWins)
	_, err := legacy.app.SaveGame(ctx, SaveGameRequest{HomeName: "A", AwayName: "B", HomeScore: 70, AwayScore: 70})
	require.NoError(t, err)
	assert.Equal(t, "B", legacy.standings.Standings()[0].Name)

	strict := newFixture(t, confirm.Always, standings.TieReject)
	_, err = strict.app.SaveGame(ctx, SaveGameRequest{HomeName: "A", AwayName: "B", HomeScore: 70, AwayScore: 70})
	assert.ErrorIs(t, err, standings.ErrTieGame)
	assert.Empty(t, strict.state.History)
	assert.Empty(t, strict.state.Standings)
}

func TestSaveGamePublishesEvents(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, confirm.Always, standings.TieAwayWins)

	game, err := f.app.SaveGame(ctx, SaveGameRequest{HomeName: "Bulls", AwayName: "Jazz", HomeScore: 87, AwayScore: 86})
	require.NoError(t, err)

	published := f.published.Events()
	require.Len(t, published, 2)
	assert.Equal(t, events.EventTypeGameSaved, published[0].Type)
	assert.Equal(t, events.EventTypeStandingsUpdated, published[1].Type)
	assert.Equal(t, "user-9", published[0].OwnerID)

	var saved events.GameSavedPayload
	require.NoError(t, json.Unmarshal(published[0].Payload, &saved))
	assert.Equal(t, game.ID, saved.GameID)
	assert.Equal(t, 87, saved.HomeScore)

	var updated events.StandingsUpdatedPayload
	require.NoError(t, json.Unmarshal(published[1].Payload, &updated))
	assert.Len(t, updated.Teams, 2)
}

func TestPublishFailureDoesNotUndoSave(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, confirm.Always, standings.TieAwayWins)
	f.published.FailWith(errors.New("broker down"))

	_, err := f.app.SaveGame(ctx, SaveGameRequest{HomeName: "A", AwayName: "B", HomeScore: 3, AwayScore: 1})
	require.NoError(t, err)
	assert.Len(t, f.state.History, 1)
	assert.Len(t, f.state.Standings, 2)
}

func TestSaveCurrentGame(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, confirm.Always, standings.TieAwayWins)
	f.state.Scoreboard = models.Scoreboard{HomeName: "Lakers", AwayName: "Celtics", HomeScore: 101, AwayScore: 99, LeagueName: "NBA"}

	game, err := f.app.SaveCurrentGame(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Lakers", game.HomeName)
	assert.Equal(t, 99, game.AwayScore)
	assert.Equal(t, "NBA", game.LeagueName)
}

func TestDeleteGame(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, confirm.Always, standings.TieAwayWins)
	game, err := f.app.SaveGame(ctx, SaveGameRequest{HomeName: "A", AwayName: "B", HomeScore: 3})
	require.NoError(t, err)

	require.NoError(t, f.app.DeleteGame(ctx, game.ID))
	assert.Empty(t, f.app.Games())
	require.NoError(t, f.app.DeleteGame(ctx, game.ID))
	assert.Empty(t, store.LoadHistory(ctx, f.store))

	_, err = f.app.Game(game.ID)
	assert.ErrorIs(t, err, ErrGameNotFound)

	// deleting history leaves standings alone
	assert.Len(t, f.state.Standings, 2)
}

func TestDeleteAndClearNeedConfirmation(t *testing.T) {
	ctx := context.Background()
	answer := true
	f := newFixture(t, confirm.Func(func(context.Context, string) bool { return answer }), standings.TieAwayWins)
	game, err := f.app.SaveGame(ctx, SaveGameRequest{HomeName: "A", AwayName: "B", HomeScore: 3})
	require.NoError(t, err)

	answer = false
	assert.ErrorIs(t, f.app.DeleteGame(ctx, game.ID), confirm.ErrDeclined)
	assert.ErrorIs(t, f.app.ClearHistory(ctx), confirm.ErrDeclined)
	assert.Len(t, f.app.Games(), 1)

	answer = true
	require.NoError(t, f.app.ClearHistory(ctx))
	assert.Empty(t, f.app.Games())
	assert.Empty(t, store.LoadHistory(ctx, f.store))
}

func TestServiceRoundTrip(t *testing.T) {
	f := newFixture(t, confirm.FromContext{}, standings.TieReject)
	_, handler := NewHandler(NewService(f.app), rpc.DefaultInterceptors(f.state))
	srv := httptest.NewServer(handler)
	defer srv.Close()
	ctx := context.Background()

	save := rpc.NewClient[SaveGameMessage, SaveGameResponse](srv.Client(), srv.URL, SaveGameProcedure)

	_, err := save.CallUnary(ctx, connect.NewRequest(&SaveGameMessage{HomeName: "A", AwayName: "B"}))
	assert.Equal(t, connect.CodeFailedPrecondition, connect.CodeOf(err))

	_, err = save.CallUnary(ctx, connect.NewRequest(&SaveGameMessage{HomeName: "A", AwayName: "B", HomeScore: 4, AwayScore: 4}))
	assert.Equal(t, connect.CodeFailedPrecondition, connect.CodeOf(err))

	_, err = save.CallUnary(ctx, connect.NewRequest(&SaveGameMessage{HomeName: "A", AwayName: "B", HomeScore: 4}))
	assert.Equal(t, connect.CodeAborted, connect.CodeOf(err))

	req := connect.NewRequest(&SaveGameMessage{HomeName: "A", AwayName: "B", HomeScore: 4})
	req.Header().Set(rpc.ConfirmHeader, "yes")
	res, err := save.CallUnary(ctx, req)
	require.NoError(t, err)

	get := rpc.NewClient[GetGameMessage, GetGameResponse](srv.Client(), srv.URL, GetGameProcedure)
	game, err := get.CallUnary(ctx, connect.NewRequest(&GetGameMessage{ID: res.Msg.Game.ID}))
	require.NoError(t, err)
	assert.Equal(t, 38, game.Msg.HomeTotal.Points)

	_, err = get.CallUnary(ctx, connect.NewRequest(&GetGameMessage{ID: "missing"}))
	assert.Equal(t, connect.CodeNotFound, connect.CodeOf(err))
}
