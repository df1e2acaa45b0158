package standings

import (
	"context"
	"net/http"

	"connectrpc.com/connect"
	"github.com/iamdexbot/Scoreboard-Pro/go/internal/models"
	"github.com/iamdexbot/Scoreboard-Pro/go/internal/rpc"
)

const (
	ServiceName = "scoreboard.standings.v1.StandingsService"

	GetStandingsProcedure     = "/" + ServiceName + "/GetStandings"
	RecordGameResultProcedure = "/" + ServiceName + "/RecordGameResult"
	ResetStandingsProcedure   = "/" + ServiceName + "/ResetStandings"
	RemoveTeamProcedure       = "/" + ServiceName + "/RemoveTeam"
)

// StandingsApp defines what the service layer needs from the standings engine
type StandingsApp interface {
	RecordGameResult(ctx context.Context, homeName string, homeScore int, awayName string, awayScore int) error
	Standings() []models.TeamRecord
	Table() []Row
	ResetStandings(ctx context.Context) error
	RemoveTeam(ctx context.Context, name string) error
	TiePolicy() TiePolicy
}

type GetStandingsMessage struct{}

type GetStandingsResponse struct {
	Records   []models.TeamRecord `json:"records"`
	Rows      []Row               `json:"rows"`
	TiePolicy TiePolicy           `json:"tiePolicy"`
}

type RecordGameResultMessage struct {
	HomeName  string `json:"homeName"`
	HomeScore int    `json:"homeScore"`
	AwayName  string `json:"awayName"`
	AwayScore int    `json:"awayScore"`
}

type ResetStandingsMessage struct{}

type RemoveTeamMessage struct {
	Name string `json:"name"`
}

var errorCodes = rpc.Codes{
	ErrTieGame:       connect.CodeFailedPrecondition,
	ErrEmptyTeamName: connect.CodeInvalidArgument,
	ErrNegativeScore: connect.CodeInvalidArgument,
}

// Service exposes the standings engine over Connect
type Service struct {
	app StandingsApp
}

// NewService creates a new standings service
func NewService(app StandingsApp) *Service {
	return &Service{
		app: app,
	}
}

// NewHandler mounts the service's procedures and returns the path prefix to register
func NewHandler(svc *Service, opts ...connect.HandlerOption) (string, http.Handler) {
	mux := http.NewServeMux()
	mux.Handle(GetStandingsProcedure, rpc.NewUnaryHandler(GetStandingsProcedure, svc.GetStandings, opts...))
	mux.Handle(RecordGameResultProcedure, rpc.NewUnaryHandler(RecordGameResultProcedure, svc.RecordGameResult, opts...))
	mux.Handle(ResetStandingsProcedure, rpc.NewUnaryHandler(ResetStandingsProcedure, svc.ResetStandings, opts...))
	mux.Handle(RemoveTeamProcedure, rpc.NewUnaryHandler(RemoveTeamProcedure, svc.RemoveTeam, opts...))
	return "/" + ServiceName + "/", mux
}

func (s *Service) GetStandings(_ context.Context, _ *connect.Request[GetStandingsMessage]) (*connect.Response[GetStandingsResponse], error) {
	return connect.NewResponse(s.snapshot()), nil
}

// RecordGameResult applies a result without touching history
func (s *Service) RecordGameResult(ctx context.Context, req *connect.Request[RecordGameResultMessage]) (*connect.Response[GetStandingsResponse], error) {
	m := req.Msg
	if err := s.app.RecordGameResult(ctx, m.HomeName, m.HomeScore, m.AwayName, m.AwayScore); err != nil {
		return nil, rpc.Error(err, errorCodes)
	}
	return connect.NewResponse(s.snapshot()), nil
}

func (s *Service) ResetStandings(ctx context.Context, _ *connect.Request[ResetStandingsMessage]) (*connect.Response[GetStandingsResponse], error) {
	if err := s.app.ResetStandings(ctx); err != nil {
		return nil, rpc.Error(err, errorCodes)
	}
	return connect.NewResponse(s.snapshot()), nil
}

func (s *Service) RemoveTeam(ctx context.Context, req *connect.Request[RemoveTeamMessage]) (*connect.Response[GetStandingsResponse], error) {
	if err := s.app.RemoveTeam(ctx, req.Msg.Name); err != nil {
		return nil, rpc.Error(err, errorCodes)
	}
	return connect.NewResponse(s.snapshot()), nil
}

func (s *Service) snapshot() *GetStandingsResponse {
	return &GetStandingsResponse{
		Records:   s.app.Standings(),
		Rows:      s.app.Table(),
		TiePolicy: s.app.TiePolicy(),
	}
}
