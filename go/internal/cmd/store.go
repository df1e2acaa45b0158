package main

import (
	"context"
	"fmt"

	"github.com/iamdexbot/Scoreboard-Pro/go/clients/supabase_client"
	"github.com/iamdexbot/Scoreboard-Pro/go/internal/auth"
	"github.com/iamdexbot/Scoreboard-Pro/go/internal/database"
	"github.com/iamdexbot/Scoreboard-Pro/go/internal/dbconfig"
	"github.com/iamdexbot/Scoreboard-Pro/go/internal/events"
	"github.com/iamdexbot/Scoreboard-Pro/go/internal/store"
	"github.com/iamdexbot/Scoreboard-Pro/go/internal/store/postgres"
	"github.com/iamdexbot/Scoreboard-Pro/go/internal/store/postgres/db"
	redisstore "github.com/iamdexbot/Scoreboard-Pro/go/internal/store/redis"
	"github.com/iamdexbot/Scoreboard-Pro/go/internal/store/supabase"
	"github.com/rs/zerolog/log"
)

// Backend bundles the selected store backend with what it can offer besides key/value storage
type Backend struct {
	store.Backend
	Profiles auth.ProfileStore
	Close    func()
}

func setupStore(ctx context.Context, cfg *Config, client *supabase_client.SupabaseClient, session *auth.Session) (*Backend, error) {
	noop := func() {}

	switch cfg.Store.Backend {
	case BackendMemory:
		return &Backend{Backend: store.NewMemory(), Close: noop}, nil

	case BackendSupabase:
		b := supabase.NewBackend(client, session)
		return &Backend{Backend: b, Profiles: b, Close: noop}, nil

	case BackendPostgres:
		dbCfg := dbconfig.NewConfigFromEnv()
		if cfg.Store.Migrate {
			if err := database.RunMigrations(dbCfg.DSN()); err != nil {
				return nil, err
			}
		}
		sqlDB, err := database.Open(dbCfg)
		if err != nil {
			return nil, err
		}
		b := postgres.NewBackend(db.New(sqlDB), session)
		return &Backend{Backend: b, Profiles: b, Close: func() { _ = sqlDB.Close() }}, nil

	case BackendRedis:
		rdb, err := redisstore.NewClient(cfg.Store.RedisURL)
		if err != nil {
			return nil, err
		}
		if err := rdb.Ping(ctx).Err(); err != nil {
			_ = rdb.Close()
			return nil, fmt.Errorf("failed to ping redis: %w", err)
		}
		log.Info().Msg("connected to redis")
		b := redisstore.NewBackend(rdb, session, redisstore.WithTTL(cfg.Store.RedisTTL))
		return &Backend{Backend: b, Close: func() { _ = rdb.Close() }}, nil
	}

	local, err := store.NewLocal(cfg.Store.Dir)
	if err != nil {
		return nil, fmt.Errorf("failed to open local store: %w", err)
	}
	return &Backend{Backend: local, Close: noop}, nil
}

// Publisher is an EventPublisher that holds a connection
type Publisher interface {
	events.EventPublisher
	Close() error
}

func setupPublisher(ctx context.Context, cfg *Config) (Publisher, error) {
	if cfg.Events.Publisher != PublisherJetStream {
		return events.NewLogPublisher(), nil
	}

	jsCfg := events.DefaultJetStreamConfig()
	if cfg.Events.NATSURL != "" {
		jsCfg.URL = cfg.Events.NATSURL
	}
	if cfg.Events.StreamName != "" {
		jsCfg.StreamName = cfg.Events.StreamName
	}
	if cfg.Events.SubjectPrefix != "" {
		jsCfg.SubjectPrefix = cfg.Events.SubjectPrefix
	}
	return events.NewJetStreamPublisher(ctx, jsCfg)
}
