package database

import (
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrationsArePaired(t *testing.T) {
	ups, err := fs.Glob(migrations, "migrations/*.up.sql")
	require.NoError(t, err)
	downs, err := fs.Glob(migrations, "migrations/*.down.sql")
	require.NoError(t, err)

	require.NotEmpty(t, ups)
	assert.Len(t, downs, len(ups))
}

func TestInitialSchemaCreatesStoreTables(t *testing.T) {
	raw, err := fs.ReadFile(migrations, "migrations/000001_init_schema.up.sql")
	require.NoError(t, err)

	for _, table := range []string{"profiles", "game_state", "pro_data", "upcoming_games"} {
		assert.Contains(t, string(raw), "CREATE TABLE IF NOT EXISTS "+table, table)
	}
}
