package schedule

import (
	"context"
	"net/http"

	"connectrpc.com/connect"
	"github.com/iamdexbot/Scoreboard-Pro/go/internal/models"
	"github.com/iamdexbot/Scoreboard-Pro/go/internal/rpc"
)

const (
	ServiceName = "scoreboard.schedule.v1.ScheduleService"

	ListGamesProcedure  = "/" + ServiceName + "/ListGames"
	AddGameProcedure    = "/" + ServiceName + "/AddGame"
	RemoveGameProcedure = "/" + ServiceName + "/RemoveGame"
	ClearGamesProcedure = "/" + ServiceName + "/ClearGames"
)

// ScheduleApp defines what the service layer needs from the schedule
type ScheduleApp interface {
	List() []models.UpcomingGame
	Add(ctx context.Context, req AddGameRequest) (*models.UpcomingGame, error)
	Remove(ctx context.Context, id string) error
	Clear(ctx context.Context) error
}

type ListGamesMessage struct{}

type ListGamesResponse struct {
	Games []models.UpcomingGame `json:"games"`
}

type AddGameMessage struct {
	Date     string `json:"date"`
	Time     string `json:"time"`
	HomeName string `json:"homeName"`
	AwayName string `json:"awayName"`
	Venue    string `json:"venue"`
}

type AddGameResponse struct {
	Game models.UpcomingGame `json:"game"`
}

type RemoveGameMessage struct {
	ID string `json:"id"`
}

type ClearGamesMessage struct{}

var errorCodes = rpc.Codes{
	ErrTeamsRequired: connect.CodeInvalidArgument,
	ErrSameTeam:      connect.CodeInvalidArgument,
	ErrInvalidDate:   connect.CodeInvalidArgument,
	ErrInvalidTime:   connect.CodeInvalidArgument,
}

// Service exposes upcoming games over Connect
type Service struct {
	app ScheduleApp
}

// NewService creates a new schedule service
func NewService(app ScheduleApp) *Service {
	return &Service{
		app: app,
	}
}

// NewHandler mounts the service's procedures and returns the path prefix to register
func NewHandler(svc *Service, opts ...connect.HandlerOption) (string, http.Handler) {
	mux := http.NewServeMux()
	mux.Handle(ListGamesProcedure, rpc.NewUnaryHandler(ListGamesProcedure, svc.ListGames, opts...))
	mux.Handle(AddGameProcedure, rpc.NewUnaryHandler(AddGameProcedure, svc.AddGame, opts...))
	mux.Handle(RemoveGameProcedure, rpc.NewUnaryHandler(RemoveGameProcedure, svc.RemoveGame, opts...))
	mux.Handle(ClearGamesProcedure, rpc.NewUnaryHandler(ClearGamesProcedure, svc.ClearGames, opts...))
	return "/" + ServiceName + "/", mux
}

func (s *Service) ListGames(_ context.Context, _ *connect.Request[ListGamesMessage]) (*connect.Response[ListGamesResponse], error) {
	return connect.NewResponse(&ListGamesResponse{Games: s.app.List()}), nil
}

func (s *Service) AddGame(ctx context.Context, req *connect.Request[AddGameMessage]) (*connect.Response[AddGameResponse], error) {
	m := req.Msg
	game, err := s.app.Add(ctx, AddGameRequest{
		Date:     m.Date,
		Time:     m.Time,
		HomeName: m.HomeName,
		AwayName: m.AwayName,
		Venue:    m.Venue,
	})
	if err != nil {
		return nil, rpc.Error(err, errorCodes)
	}
	return connect.NewResponse(&AddGameResponse{Game: *game}), nil
}

func (s *Service) RemoveGame(ctx context.Context, req *connect.Request[RemoveGameMessage]) (*connect.Response[ListGamesResponse], error) {
	if err := s.app.Remove(ctx, req.Msg.ID); err != nil {
		return nil, rpc.Error(err, errorCodes)
	}
	return connect.NewResponse(&ListGamesResponse{Games: s.app.List()}), nil
}

func (s *Service) ClearGames(ctx context.Context, _ *connect.Request[ClearGamesMessage]) (*connect.Response[ListGamesResponse], error) {
	if err := s.app.Clear(ctx); err != nil {
		return nil, rpc.Error(err, errorCodes)
	}
	return connect.NewResponse(&ListGamesResponse{Games: s.app.List()}), nil
}
