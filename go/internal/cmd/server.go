package main

import (
	"fmt"
	"net/http"

	"connectrpc.com/connect"
	"github.com/iamdexbot/Scoreboard-Pro/go/internal/auth"
	"github.com/iamdexbot/Scoreboard-Pro/go/internal/history"
	"github.com/iamdexbot/Scoreboard-Pro/go/internal/roster"
	"github.com/iamdexbot/Scoreboard-Pro/go/internal/rpc"
	"github.com/iamdexbot/Scoreboard-Pro/go/internal/schedule"
	"github.com/iamdexbot/Scoreboard-Pro/go/internal/scoreboard"
	"github.com/iamdexbot/Scoreboard-Pro/go/internal/standings"
	"github.com/iamdexbot/Scoreboard-Pro/go/internal/stats"
	"github.com/rs/cors"
	"github.com/rs/zerolog/log"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"
)

const (
	healthPath = "/health"
	logoutPath = "/logout"
)

func setupServer(cfg *Config, services *Services) *http.Server {
	mux := http.NewServeMux()

	// Setup CORS middleware
	c := cors.New(cors.Options{
		AllowedMethods: []string{
			http.MethodHead,
			http.MethodGet,
			http.MethodPost,
		},
		AllowedOrigins: cfg.Server.AllowedOrigins,
		AllowedHeaders: []string{"*"},
	})

	registerServices(mux, services)
	setupHealthCheck(mux)

	var handler http.Handler = mux
	if services.AuthRequired {
		setupLoginPage(mux, cfg.Server.LoginPath)
		mux.Handle(logoutPath, auth.LogoutHandler(services.Auth.Gate(), services.State, cfg.Server.LoginPath))
		handler = auth.RequireSession(services.Session, cfg.Server.LoginPath,
			healthPath,
			"/"+auth.ServiceName+"/",
		)(handler)
	}

	// Setup HTTP/2 server
	return &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.Server.Port),
		Handler: h2c.NewHandler(c.Handler(handler), &http2.Server{}),
	}
}

func registerServices(mux *http.ServeMux, services *Services) {
	opts := []connect.HandlerOption{rpc.DefaultInterceptors(services.State)}

	mux.Handle(scoreboard.NewHandler(services.ScoreboardRPC, opts...))
	mux.Handle(roster.NewHandler(services.Roster, opts...))
	mux.Handle(stats.NewHandler(services.Stats, opts...))
	mux.Handle(standings.NewHandler(services.Standings, opts...))
	mux.Handle(history.NewHandler(services.History, opts...))
	mux.Handle(schedule.NewHandler(services.Schedule, opts...))
	if services.Auth != nil {
		mux.Handle(auth.NewHandler(services.Auth, opts...))
	}
}

func setupHealthCheck(mux *http.ServeMux) {
	mux.HandleFunc(healthPath, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			log.Warn().Err(err).Msg("failed to write health check response")
		}
	})
}

// setupLoginPage answers the redirect target for signed-out browsers
func setupLoginPage(mux *http.ServeMux, loginPath string) {
	mux.HandleFunc(loginPath, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = fmt.Fprintf(w, "Sign in with POST %s\n", auth.SignInWithPasswordProcedure)
	})
}
