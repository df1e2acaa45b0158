package stats

import (
	"context"
	"net/http"

	"connectrpc.com/connect"
	"github.com/iamdexbot/Scoreboard-Pro/go/internal/models"
	"github.com/iamdexbot/Scoreboard-Pro/go/internal/rpc"
)

const (
	ServiceName = "scoreboard.stats.v1.StatsService"

	SelectPlayerProcedure   = "/" + ServiceName + "/SelectPlayer"
	RecordStatProcedure     = "/" + ServiceName + "/RecordStat"
	ResetGameStatsProcedure = "/" + ServiceName + "/ResetGameStats"
	GetStatsProcedure       = "/" + ServiceName + "/GetStats"
)

// StatsApp defines what the service layer needs from the stat ledger
type StatsApp interface {
	Select(side models.Side, playerID string) (*models.Selection, error)
	Selection() *models.Selection
	RecordStat(ctx context.Context, stat models.StatName, delta int) (*models.StatLine, error)
	ResetGameStats(ctx context.Context) error
	Stats() models.Stats
	Totals(side models.Side) (models.StatLine, error)
}

type SelectPlayerMessage struct {
	Side models.Side `json:"side"`
	ID   string      `json:"id"`
}

type SelectPlayerResponse struct {
	Selection *models.Selection `json:"selection"`
}

type RecordStatMessage struct {
	Stat  models.StatName `json:"stat"`
	Delta int             `json:"delta"`
}

type RecordStatResponse struct {
	Line models.StatLine `json:"line"`
}

type ResetGameStatsMessage struct{}

type ResetGameStatsResponse struct{}

type GetStatsMessage struct{}

type GetStatsResponse struct {
	Stats     models.Stats      `json:"stats"`
	Selection *models.Selection `json:"selection"`
	HomeTotal models.StatLine   `json:"homeTotal"`
	AwayTotal models.StatLine   `json:"awayTotal"`
}

var errorCodes = rpc.Codes{
	ErrNoSelection:   connect.CodeFailedPrecondition,
	ErrUnknownPlayer: connect.CodeNotFound,
	ErrInvalidSide:   connect.CodeInvalidArgument,
	ErrUnknownStat:   connect.CodeInvalidArgument,
}

// Service exposes the stat ledger over Connect
type Service struct {
	app StatsApp
}

// NewService creates a new stats service
func NewService(app StatsApp) *Service {
	return &Service{
		app: app,
	}
}

// NewHandler mounts the service's procedures and returns the path prefix to register
func NewHandler(svc *Service, opts ...connect.HandlerOption) (string, http.Handler) {
	mux := http.NewServeMux()
	mux.Handle(SelectPlayerProcedure, rpc.NewUnaryHandler(SelectPlayerProcedure, svc.SelectPlayer, opts...))
	mux.Handle(RecordStatProcedure, rpc.NewUnaryHandler(RecordStatProcedure, svc.RecordStat, opts...))
	mux.Handle(ResetGameStatsProcedure, rpc.NewUnaryHandler(ResetGameStatsProcedure, svc.ResetGameStats, opts...))
	mux.Handle(GetStatsProcedure, rpc.NewUnaryHandler(GetStatsProcedure, svc.GetStats, opts...))
	return "/" + ServiceName + "/", mux
}

func (s *Service) SelectPlayer(_ context.Context, req *connect.Request[SelectPlayerMessage]) (*connect.Response[SelectPlayerResponse], error) {
	sel, err := s.app.Select(req.Msg.Side, req.Msg.ID)
	if err != nil {
		return nil, rpc.Error(err, errorCodes)
	}
	return connect.NewResponse(&SelectPlayerResponse{Selection: sel}), nil
}

func (s *Service) RecordStat(ctx context.Context, req *connect.Request[RecordStatMessage]) (*connect.Response[RecordStatResponse], error) {
	line, err := s.app.RecordStat(ctx, req.Msg.Stat, req.Msg.Delta)
	if err != nil {
		return nil, rpc.Error(err, errorCodes)
	}
	return connect.NewResponse(&RecordStatResponse{Line: *line}), nil
}

func (s *Service) ResetGameStats(ctx context.Context, _ *connect.Request[ResetGameStatsMessage]) (*connect.Response[ResetGameStatsResponse], error) {
	if err := s.app.ResetGameStats(ctx); err != nil {
		return nil, rpc.Error(err, errorCodes)
	}
	return connect.NewResponse(&ResetGameStatsResponse{}), nil
}

func (s *Service) GetStats(_ context.Context, _ *connect.Request[GetStatsMessage]) (*connect.Response[GetStatsResponse], error) {
	home, err := s.app.Totals(models.SideHome)
	if err != nil {
		return nil, rpc.Error(err, errorCodes)
	}
	away, err := s.app.Totals(models.SideAway)
	if err != nil {
		return nil, rpc.Error(err, errorCodes)
	}
	return connect.NewResponse(&GetStatsResponse{
		Stats:     s.app.Stats(),
		Selection: s.app.Selection(),
		HomeTotal: home,
		AwayTotal: away,
	}), nil
}
