package history

import (
	"context"
	"net/http"

	"connectrpc.com/connect"
	"github.com/iamdexbot/Scoreboard-Pro/go/internal/models"
	"github.com/iamdexbot/Scoreboard-Pro/go/internal/rpc"
	"github.com/iamdexbot/Scoreboard-Pro/go/internal/standings"
)

const (
	ServiceName = "scoreboard.history.v1.HistoryService"

	SaveGameProcedure        = "/" + ServiceName + "/SaveGame"
	SaveCurrentGameProcedure = "/" + ServiceName + "/SaveCurrentGame"
	DeleteGameProcedure      = "/" + ServiceName + "/DeleteGame"
	ClearHistoryProcedure    = "/" + ServiceName + "/ClearHistory"
	ListGamesProcedure       = "/" + ServiceName + "/ListGames"
	GetGameProcedure         = "/" + ServiceName + "/GetGame"
)

// HistoryApp defines what the service layer needs from the history log
type HistoryApp interface {
	SaveGame(ctx context.Context, req SaveGameRequest) (*models.GameRecord, error)
	SaveCurrentGame(ctx context.Context) (*models.GameRecord, error)
	DeleteGame(ctx context.Context, id string) error
	ClearHistory(ctx context.Context) error
	Games() []models.GameRecord
	Game(id string) (*models.GameRecord, error)
}

type SaveGameMessage struct {
	HomeName   string `json:"homeName"`
	AwayName   string `json:"awayName"`
	HomeScore  int    `json:"homeScore"`
	AwayScore  int    `json:"awayScore"`
	LeagueName string `json:"leagueName"`
}

type SaveCurrentGameMessage struct{}

type SaveGameResponse struct {
	Game models.GameRecord `json:"game"`
}

type DeleteGameMessage struct {
	ID string `json:"id"`
}

type ClearHistoryMessage struct{}

type ListGamesMessage struct{}

type ListGamesResponse struct {
	Games []models.GameRecord `json:"games"`
}

type GetGameMessage struct {
	ID string `json:"id"`
}

type GetGameResponse struct {
	Game      models.GameRecord `json:"game"`
	HomeTotal models.StatLine   `json:"homeTotal"`
	AwayTotal models.StatLine   `json:"awayTotal"`
}

var errorCodes = rpc.Codes{
	ErrGameNotStarted:          connect.CodeFailedPrecondition,
	ErrGameNotFound:            connect.CodeNotFound,
	standings.ErrTieGame:       connect.CodeFailedPrecondition,
	standings.ErrNegativeScore: connect.CodeInvalidArgument,
}

// Service exposes the history log over Connect
type Service struct {
	app HistoryApp
}

// NewService creates a new history service
func NewService(app HistoryApp) *Service {
	return &Service{
		app: app,
	}
}

// NewHandler mounts the service's procedures and returns the path prefix to register
func NewHandler(svc *Service, opts ...connect.HandlerOption) (string, http.Handler) {
	mux := http.NewServeMux()
	mux.Handle(SaveGameProcedure, rpc.NewUnaryHandler(SaveGameProcedure, svc.SaveGame, opts...))
	mux.Handle(SaveCurrentGameProcedure, rpc.NewUnaryHandler(SaveCurrentGameProcedure, svc.SaveCurrentGame, opts...))
	mux.Handle(DeleteGameProcedure, rpc.NewUnaryHandler(DeleteGameProcedure, svc.DeleteGame, opts...))
	mux.Handle(ClearHistoryProcedure, rpc.NewUnaryHandler(ClearHistoryProcedure, svc.ClearHistory, opts...))
	mux.Handle(ListGamesProcedure, rpc.NewUnaryHandler(ListGamesProcedure, svc.ListGames, opts...))
	mux.Handle(GetGameProcedure, rpc.NewUnaryHandler(GetGameProcedure, svc.GetGame, opts...))
	return "/" + ServiceName + "/", mux
}

func (s *Service) SaveGame(ctx context.Context, req *connect.Request[SaveGameMessage]) (*connect.Response[SaveGameResponse], error) {
	m := req.Msg
	game, err := s.app.SaveGame(ctx, SaveGameRequest{
		HomeName:   m.HomeName,
		AwayName:   m.AwayName,
		HomeScore:  m.HomeScore,
		AwayScore:  m.AwayScore,
		LeagueName: m.LeagueName,
	})
	if err != nil {
		return nil, rpc.Error(err, errorCodes)
	}
	return connect.NewResponse(&SaveGameResponse{Game: *game}), nil
}

// SaveCurrentGame saves whatever the live scoreboard shows
func (s *Service) SaveCurrentGame(ctx context.Context, _ *connect.Request[SaveCurrentGameMessage]) (*connect.Response[SaveGameResponse], error) {
	game, err := s.app.SaveCurrentGame(ctx)
	if err != nil {
		return nil, rpc.Error(err, errorCodes)
	}
	return connect.NewResponse(&SaveGameResponse{Game: *game}), nil
}

func (s *Service) DeleteGame(ctx context.Context, req *connect.Request[DeleteGameMessage]) (*connect.Response[ListGamesResponse], error) {
	if err := s.app.DeleteGame(ctx, req.Msg.ID); err != nil {
		return nil, rpc.Error(err, errorCodes)
	}
	return connect.NewResponse(&ListGamesResponse{Games: s.app.Games()}), nil
}

func (s *Service) ClearHistory(ctx context.Context, _ *connect.Request[ClearHistoryMessage]) (*connect.Response[ListGamesResponse], error) {
	if err := s.app.ClearHistory(ctx); err != nil {
		return nil, rpc.Error(err, errorCodes)
	}
	return connect.NewResponse(&ListGamesResponse{Games: s.app.Games()}), nil
}

func (s *Service) ListGames(_ context.Context, _ *connect.Request[ListGamesMessage]) (*connect.Response[ListGamesResponse], error) {
	return connect.NewResponse(&ListGamesResponse{Games: s.app.Games()}), nil
}

// GetGame returns one game with its box score team totals
func (s *Service) GetGame(_ context.Context, req *connect.Request[GetGameMessage]) (*connect.Response[GetGameResponse], error) {
	game, err := s.app.Game(req.Msg.ID)
	if err != nil {
		return nil, rpc.Error(err, errorCodes)
	}
	return connect.NewResponse(&GetGameResponse{
		Game:      *game,
		HomeTotal: game.BoxScore.Totals(models.SideHome),
		AwayTotal: game.BoxScore.Totals(models.SideAway),
	}), nil
}
