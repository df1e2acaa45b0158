package postgres

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/iamdexbot/Scoreboard-Pro/go/internal/models"
	"github.com/iamdexbot/Scoreboard-Pro/go/internal/store"
	"github.com/iamdexbot/Scoreboard-Pro/go/internal/store/postgres/db"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const userID = "6f1c2f8e-5a43-4d0e-9b8a-2f6b1c9d7e10"

var testNow = time.Date(2026, 3, 14, 19, 0, 0, 0, time.UTC)

type staticIdentity struct {
	id models.Identity
	ok bool
}

func (s staticIdentity) Identity(context.Context) (models.Identity, bool) { return s.id, s.ok }

func signedIn(id string) staticIdentity {
	return staticIdentity{id: models.Identity{UserID: id}, ok: true}
}

func newBackend(t *testing.T, ids store.IdentitySource) (*Backend, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, mock.ExpectationsWereMet())
		_ = sqlDB.Close()
	})

	b := NewBackend(db.New(sqlDB), ids)
	b.clock = clockwork.NewFakeClockAt(testNow)
	return b, mock
}

func TestReadRoutesKeysToTables(t *testing.T) {
	ctx := context.Background()
	b, mock := newBackend(t, signedIn(userID))

	mock.ExpectQuery(regexp.QuoteMeta("SELECT data_value FROM pro_data")).
		WithArgs(userID, "roster").
		WillReturnRows(sqlmock.NewRows([]string{"data_value"}).AddRow([]byte(`{"home":[],"away":[]}`)))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT state FROM game_state")).
		WithArgs(userID).
		WillReturnRows(sqlmock.NewRows([]string{"state"}).AddRow([]byte(`{"homeScore":3}`)))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT games FROM upcoming_games")).
		WithArgs(userID).
		WillReturnRows(sqlmock.NewRows([]string{"games"}).AddRow([]byte(`[]`)))

	raw, err := b.Read(ctx, store.KeyRoster)
	require.NoError(t, err)
	assert.JSONEq(t, `{"home":[],"away":[]}`, string(raw))

	raw, err = b.Read(ctx, store.KeyScoreboard)
	require.NoError(t, err)
	assert.JSONEq(t, `{"homeScore":3}`, string(raw))

	raw, err = b.Read(ctx, store.KeyUpcoming)
	require.NoError(t, err)
	assert.Equal(t, `[]`, string(raw))
}

func TestReadMissingRowOrNullValue(t *testing.T) {
	ctx := context.Background()
	b, mock := newBackend(t, signedIn(userID))

	mock.ExpectQuery("SELECT data_value FROM pro_data").
		WithArgs(userID, "stats").
		WillReturnError(sql.ErrNoRows)
	mock.ExpectQuery("SELECT data_value FROM pro_data").
		WithArgs(userID, "history").
		WillReturnRows(sqlmock.NewRows([]string{"data_value"}).AddRow(nil))

	raw, err := b.Read(ctx, store.KeyStats)
	require.NoError(t, err)
	assert.Nil(t, raw)

	raw, err = b.Read(ctx, store.KeyHistory)
	require.NoError(t, err)
	assert.Nil(t, raw)
}

func TestWriteUpsertsWithTimestamp(t *testing.T) {
	ctx := context.Background()
	b, mock := newBackend(t, signedIn(userID))

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO pro_data")).
		WithArgs(userID, "standings", []byte(`[]`), testNow).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO game_state")).
		WithArgs(userID, []byte(`{}`), testNow).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO upcoming_games")).
		WithArgs(userID, []byte(`[]`), testNow).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, b.Write(ctx, store.KeyStandings, []byte(`[]`)))
	require.NoError(t, b.Write(ctx, store.KeyScoreboard, []byte(`{}`)))
	require.NoError(t, b.Write(ctx, store.KeyUpcoming, []byte(`[]`)))
}

func TestWithoutIdentityNothingIsQueried(t *testing.T) {
	ctx := context.Background()
	b, _ := newBackend(t, staticIdentity{})

	_, err := b.Read(ctx, store.KeyRoster)
	assert.ErrorIs(t, err, store.ErrNoIdentity)
	assert.ErrorIs(t, b.Write(ctx, store.KeyRoster, []byte(`{}`)), store.ErrNoIdentity)
}

func TestNonUUIDIdentityIsRejected(t *testing.T) {
	b, _ := newBackend(t, signedIn("local"))
	_, err := b.Read(context.Background(), store.KeyRoster)
	assert.ErrorIs(t, err, ErrInvalidUserID)
}

func TestStoreFallsBackWhenDatabaseFails(t *testing.T) {
	ctx := context.Background()
	b, mock := newBackend(t, signedIn(userID))

	mock.ExpectExec("INSERT INTO pro_data").WillReturnError(errors.New("connection reset"))
	mock.ExpectQuery("SELECT data_value FROM pro_data").WillReturnError(errors.New("connection reset"))

	var ops []string
	s := store.New(b, store.WithFailureHook(func(_ context.Context, op string, _ store.Key, _ error) {
		ops = append(ops, op)
	}))

	assert.Error(t, s.Write(ctx, store.KeyRoster, models.Roster{}))
	assert.Equal(t, models.Roster{Home: []models.Player{}, Away: []models.Player{}}, store.LoadRoster(ctx, s))
	assert.Equal(t, []string{"write", "read"}, ops)
}

func TestProfile(t *testing.T) {
	ctx := context.Background()
	b, mock := newBackend(t, signedIn(userID))

	mock.ExpectQuery("SELECT id, display_name, updated_at FROM profiles").
		WithArgs(userID).
		WillReturnError(sql.ErrNoRows)
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO profiles")).
		WithArgs(userID, "Coach K", testNow).
		WillReturnRows(sqlmock.NewRows([]string{"id", "display_name", "updated_at"}).AddRow(userID, "Coach K", testNow))
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO profiles")).
		WithArgs(userID, nil, testNow).
		WillReturnRows(sqlmock.NewRows([]string{"id", "display_name", "updated_at"}).AddRow(userID, nil, testNow))

	p, err := b.GetProfile(ctx)
	require.NoError(t, err)
	assert.Equal(t, userID, p.ID)
	assert.Nil(t, p.DisplayName)

	p, err = b.UpdateDisplayName(ctx, "  Coach K ")
	require.NoError(t, err)
	require.NotNil(t, p.DisplayName)
	assert.Equal(t, "Coach K", *p.DisplayName)
	assert.Equal(t, testNow, p.UpdatedAt)

	p, err = b.UpdateDisplayName(ctx, " ")
	require.NoError(t, err)
	assert.Nil(t, p.DisplayName)
}
