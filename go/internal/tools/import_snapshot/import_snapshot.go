// Command import_snapshot copies a local scoreboard data directory into the
// Postgres tables of one user.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/iamdexbot/Scoreboard-Pro/go/internal/confirm"
	"github.com/iamdexbot/Scoreboard-Pro/go/internal/dbconfig"
	"github.com/iamdexbot/Scoreboard-Pro/go/internal/store"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Execer is the part of pgx.Tx the import uses
type Execer interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
}

func main() {
	dir := flag.String("dir", "data", "local store directory to read")
	user := flag.String("user", "", "user id (uuid) that will own the data")
	yes := flag.Bool("yes", false, "skip the confirmation prompt")
	flag.Parse()

	userID, err := uuid.Parse(*user)
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid -user %q: %v\n", *user, err)
		os.Exit(2)
	}

	// 1) Load the snapshot
	local, err := store.NewLocal(*dir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "open snapshot: %v\n", err)
		os.Exit(1)
	}
	ctx := context.Background()
	values, err := readSnapshot(ctx, local)
	if err != nil {
		fmt.Fprintf(os.Stderr, "read snapshot: %v\n", err)
		os.Exit(1)
	}
	if len(values) == 0 {
		fmt.Printf("nothing to import from %s\n", *dir)
		return
	}

	var c confirm.Confirmer = confirm.Always
	if !*yes {
		c = confirm.NewPrompt(os.Stdin, os.Stdout)
	}
	if !c.Confirm(ctx, fmt.Sprintf("Overwrite %d stored values for user %s?", len(values), userID)) {
		fmt.Println("aborted")
		return
	}

	// 2) Connect using shared dbconfig
	cfg := dbconfig.NewConfigFromEnv()
	pool, err := pgxpool.New(ctx, cfg.DSN())
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to connect: %v\n", err)
		os.Exit(1)
	}
	defer pool.Close()

	// 3) Upsert everything in one transaction
	var written int
	err = pgx.BeginFunc(ctx, pool, func(tx pgx.Tx) error {
		written, err = importSnapshot(ctx, tx, userID, values, time.Now().UTC())
		return err
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "import failed, nothing was written: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("imported %d values for user %s\n", written, userID)
}

// readSnapshot collects every key that has data
func readSnapshot(ctx context.Context, backend store.Backend) (map[store.Key][]byte, error) {
	values := map[store.Key][]byte{}
	for _, key := range store.Keys {
		raw, err := backend.Read(ctx, key)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", key, err)
		}
		if len(raw) > 0 {
			values[key] = raw
		}
	}
	return values, nil
}

func importSnapshot(ctx context.Context, db Execer, userID uuid.UUID, values map[store.Key][]byte, now time.Time) (int, error) {
	written := 0
	for _, key := range store.Keys {
		raw, ok := values[key]
		if !ok {
			continue
		}

		var err error
		switch key {
		case store.KeyScoreboard:
			_, err = db.Exec(ctx, `
                INSERT INTO game_state (user_id, state, updated_at)
                VALUES ($1, $2, $3)
                ON CONFLICT (user_id) DO UPDATE
                SET state = EXCLUDED.state, updated_at = EXCLUDED.updated_at
            `, userID, string(raw), now)
		case store.KeyUpcoming:
			_, err = db.Exec(ctx, `
                INSERT INTO upcoming_games (user_id, games, updated_at)
                VALUES ($1, $2, $3)
                ON CONFLICT (user_id) DO UPDATE
                SET games = EXCLUDED.games, updated_at = EXCLUDED.updated_at
            `, userID, string(raw), now)
		default:
			_, err = db.Exec(ctx, `
                INSERT INTO pro_data (user_id, data_key, data_value, updated_at)
                VALUES ($1, $2, $3, $4)
                ON CONFLICT (user_id, data_key) DO UPDATE
                SET data_value = EXCLUDED.data_value, updated_at = EXCLUDED.updated_at
            `, userID, string(key), string(raw), now)
		}
		if err != nil {
			return written, fmt.Errorf("import %s: %w", key, err)
		}
		written++
	}
	return written, nil
}
