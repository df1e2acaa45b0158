package roster

import (
	"context"
	"net/http"

	"connectrpc.com/connect"
	"github.com/iamdexbot/Scoreboard-Pro/go/internal/models"
	"github.com/iamdexbot/Scoreboard-Pro/go/internal/rpc"
)

const (
	ServiceName = "scoreboard.roster.v1.RosterService"

	AddPlayerProcedure    = "/" + ServiceName + "/AddPlayer"
	RemovePlayerProcedure = "/" + ServiceName + "/RemovePlayer"
	GetRosterProcedure    = "/" + ServiceName + "/GetRoster"
)

// RosterApp defines what the service layer needs from the roster application
type RosterApp interface {
	AddPlayer(ctx context.Context, req AddPlayerRequest) (*models.Player, error)
	RemovePlayer(ctx context.Context, side models.Side, id string) error
	Roster() models.Roster
}

type AddPlayerMessage struct {
	Side     models.Side     `json:"side"`
	Number   string          `json:"num"`
	Name     string          `json:"name"`
	Position models.Position `json:"pos"`
}

type AddPlayerResponse struct {
	Player models.Player `json:"player"`
}

type RemovePlayerMessage struct {
	Side models.Side `json:"side"`
	ID   string      `json:"id"`
}

type RemovePlayerResponse struct{}

type GetRosterMessage struct{}

type GetRosterResponse struct {
	Roster models.Roster `json:"roster"`
}

var errorCodes = rpc.Codes{
	ErrEmptyName:       connect.CodeInvalidArgument,
	ErrInvalidSide:     connect.CodeInvalidArgument,
	ErrInvalidPosition: connect.CodeInvalidArgument,
}

// Service exposes the roster over Connect
type Service struct {
	app RosterApp
}

// NewService creates a new roster service
func NewService(app RosterApp) *Service {
	return &Service{
		app: app,
	}
}

// NewHandler mounts the service's procedures and returns the path prefix to register
func NewHandler(svc *Service, opts ...connect.HandlerOption) (string, http.Handler) {
	mux := http.NewServeMux()
	mux.Handle(AddPlayerProcedure, rpc.NewUnaryHandler(AddPlayerProcedure, svc.AddPlayer, opts...))
	mux.Handle(RemovePlayerProcedure, rpc.NewUnaryHandler(RemovePlayerProcedure, svc.RemovePlayer, opts...))
	mux.Handle(GetRosterProcedure, rpc.NewUnaryHandler(GetRosterProcedure, svc.GetRoster, opts...))
	return "/" + ServiceName + "/", mux
}

// AddPlayer adds a player to one side
func (s *Service) AddPlayer(ctx context.Context, req *connect.Request[AddPlayerMessage]) (*connect.Response[AddPlayerResponse], error) {
	player, err := s.app.AddPlayer(ctx, AddPlayerRequest{
		Side:     req.Msg.Side,
		Number:   req.Msg.Number,
		Name:     req.Msg.Name,
		Position: req.Msg.Position,
	})
	if err != nil {
		return nil, rpc.Error(err, errorCodes)
	}
	return connect.NewResponse(&AddPlayerResponse{Player: *player}), nil
}

// RemovePlayer removes a player from one side
func (s *Service) RemovePlayer(ctx context.Context, req *connect.Request[RemovePlayerMessage]) (*connect.Response[RemovePlayerResponse], error) {
	if err := s.app.RemovePlayer(ctx, req.Msg.Side, req.Msg.ID); err != nil {
		return nil, rpc.Error(err, errorCodes)
	}
	return connect.NewResponse(&RemovePlayerResponse{}), nil
}

// GetRoster returns both sides' players
func (s *Service) GetRoster(_ context.Context, _ *connect.Request[GetRosterMessage]) (*connect.Response[GetRosterResponse], error) {
	return connect.NewResponse(&GetRosterResponse{Roster: s.app.Roster()}), nil
}
