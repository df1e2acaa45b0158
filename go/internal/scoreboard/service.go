package scoreboard

import (
	"context"
	"net/http"

	"connectrpc.com/connect"
	"github.com/iamdexbot/Scoreboard-Pro/go/internal/models"
	"github.com/iamdexbot/Scoreboard-Pro/go/internal/rpc"
)

const (
	ServiceName = "scoreboard.scoreboard.v1.ScoreboardService"

	GetScoreboardProcedure    = "/" + ServiceName + "/GetScoreboard"
	ListThemesProcedure       = "/" + ServiceName + "/ListThemes"
	AdjustScoreProcedure      = "/" + ServiceName + "/AdjustScore"
	ToggleFoulProcedure       = "/" + ServiceName + "/ToggleFoul"
	ResetFoulsProcedure       = "/" + ServiceName + "/ResetFouls"
	UseTimeoutProcedure       = "/" + ServiceName + "/UseTimeout"
	RestoreTimeoutProcedure   = "/" + ServiceName + "/RestoreTimeout"
	SetMaxTimeoutsProcedure   = "/" + ServiceName + "/SetMaxTimeouts"
	SetPeriodProcedure        = "/" + ServiceName + "/SetPeriod"
	ChangePeriodProcedure     = "/" + ServiceName + "/ChangePeriod"
	SetMinutesProcedure       = "/" + ServiceName + "/SetMinutes"
	ToggleClockProcedure      = "/" + ServiceName + "/ToggleClock"
	ResetClockProcedure       = "/" + ServiceName + "/ResetClock"
	ToggleShotClockProcedure  = "/" + ServiceName + "/ToggleShotClock"
	ResetShotClockProcedure   = "/" + ServiceName + "/ResetShotClock"
	SetPossessionProcedure    = "/" + ServiceName + "/SetPossession"
	TogglePossessionProcedure = "/" + ServiceName + "/TogglePossession"
	SetTeamNameProcedure      = "/" + ServiceName + "/SetTeamName"
	SetLeagueNameProcedure    = "/" + ServiceName + "/SetLeagueName"
	SetThemeProcedure         = "/" + ServiceName + "/SetTheme"
	SetCustomThemeProcedure   = "/" + ServiceName + "/SetCustomTheme"
	NewGameProcedure          = "/" + ServiceName + "/NewGame"
)

// ScoreboardApp defines what the service layer needs from the scoreboard
type ScoreboardApp interface {
	Scoreboard() models.Scoreboard
	Themes() []models.Theme
	AdjustScore(ctx context.Context, side models.Side, delta int) error
	ToggleFoul(ctx context.Context, side models.Side, index int) error
	ResetFouls(ctx context.Context) error
	UseTimeout(ctx context.Context, side models.Side) error
	RestoreTimeout(ctx context.Context, side models.Side) error
	SetMaxTimeouts(ctx context.Context, n int) error
	SetPeriod(ctx context.Context, n int) error
	ChangePeriod(ctx context.Context, delta int) error
	SetMinutes(ctx context.Context, n int) error
	ToggleClock(ctx context.Context) error
	ResetClock(ctx context.Context) error
	ToggleShotClock(ctx context.Context) error
	ResetShotClock(ctx context.Context, seconds int) error
	SetPossession(ctx context.Context, side models.Side) error
	TogglePossession(ctx context.Context) error
	SetTeamName(ctx context.Context, side models.Side, name string) error
	SetLeagueName(ctx context.Context, name string) error
	SetTheme(ctx context.Context, id string) error
	SetCustomTheme(ctx context.Context, t models.Theme) error
	NewGame(ctx context.Context) error
}

type EmptyMessage struct{}

type SideMessage struct {
	Side models.Side `json:"side"`
}

type AdjustScoreMessage struct {
	Side  models.Side `json:"side"`
	Delta int         `json:"delta"`
}

type ToggleFoulMessage struct {
	Side  models.Side `json:"side"`
	Index int         `json:"index"`
}

// ValueMessage carries the single number an operation takes
type ValueMessage struct {
	Value int `json:"value"`
}

type SetTeamNameMessage struct {
	Side models.Side `json:"side"`
	Name string      `json:"name"`
}

type NameMessage struct {
	Name string `json:"name"`
}

type SetThemeMessage struct {
	ID string `json:"id"`
}

type SetCustomThemeMessage struct {
	Theme models.Theme `json:"theme"`
}

type ScoreboardResponse struct {
	Scoreboard View `json:"scoreboard"`
}

type ListThemesResponse struct {
	Themes []models.Theme `json:"themes"`
}

var errorCodes = rpc.Codes{
	ErrInvalidSide:  connect.CodeInvalidArgument,
	ErrOutOfRange:   connect.CodeInvalidArgument,
	ErrUnknownTheme: connect.CodeNotFound,
	ErrInvalidTheme: connect.CodeInvalidArgument,
}

// Service exposes the scoreboard over Connect
type Service struct {
	app ScoreboardApp
}

// NewService creates a new scoreboard service
func NewService(app ScoreboardApp) *Service {
	return &Service{
		app: app,
	}
}

// NewHandler mounts the service's procedures and returns the path prefix to register
func NewHandler(svc *Service, opts ...connect.HandlerOption) (string, http.Handler) {
	mux := http.NewServeMux()
	mux.Handle(GetScoreboardProcedure, rpc.NewUnaryHandler(GetScoreboardProcedure, svc.GetScoreboard, opts...))
	mux.Handle(ListThemesProcedure, rpc.NewUnaryHandler(ListThemesProcedure, svc.ListThemes, opts...))
	mux.Handle(AdjustScoreProcedure, rpc.NewUnaryHandler(AdjustScoreProcedure, svc.AdjustScore, opts...))
	mux.Handle(ToggleFoulProcedure, rpc.NewUnaryHandler(ToggleFoulProcedure, svc.ToggleFoul, opts...))
	mux.Handle(ResetFoulsProcedure, rpc.NewUnaryHandler(ResetFoulsProcedure, svc.ResetFouls, opts...))
	mux.Handle(UseTimeoutProcedure, rpc.NewUnaryHandler(UseTimeoutProcedure, svc.UseTimeout, opts...))
	mux.Handle(RestoreTimeoutProcedure, rpc.NewUnaryHandler(RestoreTimeoutProcedure, svc.RestoreTimeout, opts...))
	mux.Handle(SetMaxTimeoutsProcedure, rpc.NewUnaryHandler(SetMaxTimeoutsProcedure, svc.SetMaxTimeouts, opts...))
	mux.Handle(SetPeriodProcedure, rpc.NewUnaryHandler(SetPeriodProcedure, svc.SetPeriod, opts...))
	mux.Handle(ChangePeriodProcedure, rpc.NewUnaryHandler(ChangePeriodProcedure, svc.ChangePeriod, opts...))
	mux.Handle(SetMinutesProcedure, rpc.NewUnaryHandler(SetMinutesProcedure, svc.SetMinutes, opts...))
	mux.Handle(ToggleClockProcedure, rpc.NewUnaryHandler(ToggleClockProcedure, svc.ToggleClock, opts...))
	mux.Handle(ResetClockProcedure, rpc.NewUnaryHandler(ResetClockProcedure, svc.ResetClock, opts...))
	mux.Handle(ToggleShotClockProcedure, rpc.NewUnaryHandler(ToggleShotClockProcedure, svc.ToggleShotClock, opts...))
	mux.Handle(ResetShotClockProcedure, rpc.NewUnaryHandler(ResetShotClockProcedure, svc.ResetShotClock, opts...))
	mux.Handle(SetPossessionProcedure, rpc.NewUnaryHandler(SetPossessionProcedure, svc.SetPossession, opts...))
	mux.Handle(TogglePossessionProcedure, rpc.NewUnaryHandler(TogglePossessionProcedure, svc.TogglePossession, opts...))
	mux.Handle(SetTeamNameProcedure, rpc.NewUnaryHandler(SetTeamNameProcedure, svc.SetTeamName, opts...))
	mux.Handle(SetLeagueNameProcedure, rpc.NewUnaryHandler(SetLeagueNameProcedure, svc.SetLeagueName, opts...))
	mux.Handle(SetThemeProcedure, rpc.NewUnaryHandler(SetThemeProcedure, svc.SetTheme, opts...))
	mux.Handle(SetCustomThemeProcedure, rpc.NewUnaryHandler(SetCustomThemeProcedure, svc.SetCustomTheme, opts...))
	mux.Handle(NewGameProcedure, rpc.NewUnaryHandler(NewGameProcedure, svc.NewGame, opts...))
	return "/" + ServiceName + "/", mux
}

// respond returns the scoreboard as it stands after an operation
func (s *Service) respond(err error) (*connect.Response[ScoreboardResponse], error) {
	if err != nil {
		return nil, rpc.Error(err, errorCodes)
	}
	return connect.NewResponse(&ScoreboardResponse{Scoreboard: NewView(s.app.Scoreboard())}), nil
}

func (s *Service) GetScoreboard(_ context.Context, _ *connect.Request[EmptyMessage]) (*connect.Response[ScoreboardResponse], error) {
	return s.respond(nil)
}

func (s *Service) ListThemes(_ context.Context, _ *connect.Request[EmptyMessage]) (*connect.Response[ListThemesResponse], error) {
	return connect.NewResponse(&ListThemesResponse{Themes: s.app.Themes()}), nil
}

func (s *Service) AdjustScore(ctx context.Context, req *connect.Request[AdjustScoreMessage]) (*connect.Response[ScoreboardResponse], error) {
	return s.respond(s.app.AdjustScore(ctx, req.Msg.Side, req.Msg.Delta))
}

func (s *Service) ToggleFoul(ctx context.Context, req *connect.Request[ToggleFoulMessage]) (*connect.Response[ScoreboardResponse], error) {
	return s.respond(s.app.ToggleFoul(ctx, req.Msg.Side, req.Msg.Index))
}

func (s *Service) ResetFouls(ctx context.Context, _ *connect.Request[EmptyMessage]) (*connect.Response[ScoreboardResponse], error) {
	return s.respond(s.app.ResetFouls(ctx))
}

func (s *Service) UseTimeout(ctx context.Context, req *connect.Request[SideMessage]) (*connect.Response[ScoreboardResponse], error) {
	return s.respond(s.app.UseTimeout(ctx, req.Msg.Side))
}

func (s *Service) RestoreTimeout(ctx context.Context, req *connect.Request[SideMessage]) (*connect.Response[ScoreboardResponse], error) {
	return s.respond(s.app.RestoreTimeout(ctx, req.Msg.Side))
}

func (s *Service) SetMaxTimeouts(ctx context.Context, req *connect.Request[ValueMessage]) (*connect.Response[ScoreboardResponse], error) {
	return s.respond(s.app.SetMaxTimeouts(ctx, req.Msg.Value))
}

func (s *Service) SetPeriod(ctx context.Context, req *connect.Request[ValueMessage]) (*connect.Response[ScoreboardResponse], error) {
	return s.respond(s.app.SetPeriod(ctx, req.Msg.Value))
}

// ChangePeriod takes a delta, usually +1 or -1
func (s *Service) ChangePeriod(ctx context.Context, req *connect.Request[ValueMessage]) (*connect.Response[ScoreboardResponse], error) {
	return s.respond(s.app.ChangePeriod(ctx, req.Msg.Value))
}

func (s *Service) SetMinutes(ctx context.Context, req *connect.Request[ValueMessage]) (*connect.Response[ScoreboardResponse], error) {
	return s.respond(s.app.SetMinutes(ctx, req.Msg.Value))
}

func (s *Service) ToggleClock(ctx context.Context, _ *connect.Request[EmptyMessage]) (*connect.Response[ScoreboardResponse], error) {
	return s.respond(s.app.ToggleClock(ctx))
}

func (s *Service) ResetClock(ctx context.Context, _ *connect.Request[EmptyMessage]) (*connect.Response[ScoreboardResponse], error) {
	return s.respond(s.app.ResetClock(ctx))
}

func (s *Service) ToggleShotClock(ctx context.Context, _ *connect.Request[EmptyMessage]) (*connect.Response[ScoreboardResponse], error) {
	return s.respond(s.app.ToggleShotClock(ctx))
}

// ResetShotClock restarts from the default; a non-zero value sets a new default first
func (s *Service) ResetShotClock(ctx context.Context, req *connect.Request[ValueMessage]) (*connect.Response[ScoreboardResponse], error) {
	return s.respond(s.app.ResetShotClock(ctx, req.Msg.Value))
}

func (s *Service) SetPossession(ctx context.Context, req *connect.Request[SideMessage]) (*connect.Response[ScoreboardResponse], error) {
	return s.respond(s.app.SetPossession(ctx, req.Msg.Side))
}

func (s *Service) TogglePossession(ctx context.Context, _ *connect.Request[EmptyMessage]) (*connect.Response[ScoreboardResponse], error) {
	return s.respond(s.app.TogglePossession(ctx))
}

func (s *Service) SetTeamName(ctx context.Context, req *connect.Request[SetTeamNameMessage]) (*connect.Response[ScoreboardResponse], error) {
	return s.respond(s.app.SetTeamName(ctx, req.Msg.Side, req.Msg.Name))
}

func (s *Service) SetLeagueName(ctx context.Context, req *connect.Request[NameMessage]) (*connect.Response[ScoreboardResponse], error) {
	return s.respond(s.app.SetLeagueName(ctx, req.Msg.Name))
}

func (s *Service) SetTheme(ctx context.Context, req *connect.Request[SetThemeMessage]) (*connect.Response[ScoreboardResponse], error) {
	return s.respond(s.app.SetTheme(ctx, req.Msg.ID))
}

func (s *Service) SetCustomTheme(ctx context.Context, req *connect.Request[SetCustomThemeMessage]) (*connect.Response[ScoreboardResponse], error) {
	return s.respond(s.app.SetCustomTheme(ctx, req.Msg.Theme))
}

func (s *Service) NewGame(ctx context.Context, _ *connect.Request[EmptyMessage]) (*connect.Response[ScoreboardResponse], error) {
	return s.respond(s.app.NewGame(ctx))
}
