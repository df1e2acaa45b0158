package main

import (
	"context"

	"github.com/iamdexbot/Scoreboard-Pro/go/clients/supabase_client"
	"github.com/iamdexbot/Scoreboard-Pro/go/internal/auth"
	"github.com/iamdexbot/Scoreboard-Pro/go/internal/confirm"
	"github.com/iamdexbot/Scoreboard-Pro/go/internal/events"
	"github.com/iamdexbot/Scoreboard-Pro/go/internal/history"
	"github.com/iamdexbot/Scoreboard-Pro/go/internal/roster"
	"github.com/iamdexbot/Scoreboard-Pro/go/internal/schedule"
	"github.com/iamdexbot/Scoreboard-Pro/go/internal/scoreboard"
	"github.com/iamdexbot/Scoreboard-Pro/go/internal/standings"
	"github.com/iamdexbot/Scoreboard-Pro/go/internal/state"
	"github.com/iamdexbot/Scoreboard-Pro/go/internal/stats"
	"github.com/iamdexbot/Scoreboard-Pro/go/internal/store"
)

type Services struct {
	State      *state.State
	Scoreboard *scoreboard.App

	Roster        *roster.Service
	Stats         *stats.Service
	Standings     *standings.Service
	History       *history.Service
	Schedule      *schedule.Service
	ScoreboardRPC *scoreboard.Service
	Auth          *auth.Service
	Session       *auth.Session
	AuthRequired  bool
}

// setupServices wires State → App layer → Service layer. Confirmation comes
// from the Confirm header of each call.
func setupServices(
	ctx context.Context,
	cfg *Config,
	s *store.Store,
	profiles auth.ProfileStore,
	client *supabase_client.SupabaseClient,
	session *auth.Session,
	publisher events.EventPublisher,
) *Services {
	confirmer := confirm.FromContext{}
	tiePolicy, _ := standings.ParseTiePolicy(cfg.Standings.TiePolicy)

	st := state.Load(ctx, s, scoreboard.Default())
	scoreboardApp := scoreboard.NewApp(st, s, confirmer, scoreboard.WithThemes(cfg.Scoreboard.Themes...))

	rosterApp := roster.NewApp(st, s)
	statsApp := stats.NewApp(st, s, confirmer)
	standingsApp := standings.NewApp(st, s, confirmer, tiePolicy)
	historyApp := history.NewApp(st, s, confirmer, standingsApp,
		history.WithPublisher(publisher),
		history.WithIdentities(session),
	)
	scheduleApp := schedule.NewApp(st, s, confirmer)

	services := &Services{
		State:         st,
		Scoreboard:    scoreboardApp,
		Roster:        roster.NewService(rosterApp),
		Stats:         stats.NewService(statsApp),
		Standings:     standings.NewService(standingsApp),
		History:       history.NewService(historyApp),
		Schedule:      schedule.NewService(scheduleApp),
		ScoreboardRPC: scoreboard.NewService(scoreboardApp),
		Session:       session,
		AuthRequired:  cfg.authEnabled(),
	}

	if cfg.authEnabled() {
		// sign-in and sign-out run under the state lock, so reloading here is safe
		gate := auth.NewGate(client, session,
			auth.WithJWTSecret(cfg.Supabase.JWTSecret),
			auth.OnChange(func(ctx context.Context) {
				scoreboardApp.Reload(ctx, func(ctx context.Context) { st.Reload(ctx, s) })
			}),
		)
		services.Auth = auth.NewService(gate, profiles)
	}
	return services
}
