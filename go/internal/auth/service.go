package auth

import (
	"context"
	"errors"
	"net/http"

	"connectrpc.com/connect"
	"github.com/iamdexbot/Scoreboard-Pro/go/internal/models"
	"github.com/iamdexbot/Scoreboard-Pro/go/internal/rpc"
)

const (
	ServiceName = "scoreboard.auth.v1.AuthService"

	SignInWithPasswordProcedure = "/" + ServiceName + "/SignInWithPassword"
	SignInWithTokenProcedure    = "/" + ServiceName + "/SignInWithToken"
	SignOutProcedure            = "/" + ServiceName + "/SignOut"
	GetSessionProcedure         = "/" + ServiceName + "/GetSession"
	GetProfileProcedure         = "/" + ServiceName + "/GetProfile"
	UpdateDisplayNameProcedure  = "/" + ServiceName + "/UpdateDisplayName"
)

var ErrProfilesUnavailable = errors.New("profiles are not available on this store")

// ProfileStore reads and updates the signed-in user's profile
type ProfileStore interface {
	GetProfile(ctx context.Context) (*models.Profile, error)
	UpdateDisplayName(ctx context.Context, name string) (*models.Profile, error)
}

type SignInWithPasswordMessage struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type SignInWithTokenMessage struct {
	AccessToken string `json:"accessToken"`
}

type EmptyMessage struct{}

type UpdateDisplayNameMessage struct {
	DisplayName string `json:"displayName"`
}

type SessionResponse struct {
	SignedIn bool             `json:"signedIn"`
	Identity *models.Identity `json:"identity,omitempty"`
}

type ProfileResponse struct {
	Profile *models.Profile `json:"profile"`
}

var errorCodes = rpc.Codes{
	ErrInvalidToken:        connect.CodeUnauthenticated,
	ErrInvalidCredentials:  connect.CodeUnauthenticated,
	ErrMissingCredentials:  connect.CodeInvalidArgument,
	ErrProfilesUnavailable: connect.CodeUnimplemented,
}

// Service exposes the gate and the profile store over Connect
type Service struct {
	gate     *Gate
	profiles ProfileStore
}

// NewService creates the auth service; profiles may be nil when the store keeps none
func NewService(gate *Gate, profiles ProfileStore) *Service {
	return &Service{
		gate:     gate,
		profiles: profiles,
	}
}

func NewHandler(svc *Service, opts ...connect.HandlerOption) (string, http.Handler) {
	mux := http.NewServeMux()
	mux.Handle(SignInWithPasswordProcedure, rpc.NewUnaryHandler(SignInWithPasswordProcedure, svc.SignInWithPassword, opts...))
	mux.Handle(SignInWithTokenProcedure, rpc.NewUnaryHandler(SignInWithTokenProcedure, svc.SignInWithToken, opts...))
	mux.Handle(SignOutProcedure, rpc.NewUnaryHandler(SignOutProcedure, svc.SignOut, opts...))
	mux.Handle(GetSessionProcedure, rpc.NewUnaryHandler(GetSessionProcedure, svc.GetSession, opts...))
	mux.Handle(GetProfileProcedure, rpc.NewUnaryHandler(GetProfileProcedure, svc.GetProfile, opts...))
	mux.Handle(UpdateDisplayNameProcedure, rpc.NewUnaryHandler(UpdateDisplayNameProcedure, svc.UpdateDisplayName, opts...))
	return "/" + ServiceName + "/", mux
}

func (s *Service) Gate() *Gate {
	return s.gate
}

func (s *Service) SignInWithPassword(ctx context.Context, req *connect.Request[SignInWithPasswordMessage]) (*connect.Response[SessionResponse], error) {
	id, err := s.gate.SignInWithPassword(ctx, req.Msg.Email, req.Msg.Password)
	if err != nil {
		return nil, rpc.Error(err, errorCodes)
	}
	return connect.NewResponse(&SessionResponse{SignedIn: true, Identity: id}), nil
}

func (s *Service) SignInWithToken(ctx context.Context, req *connect.Request[SignInWithTokenMessage]) (*connect.Response[SessionResponse], error) {
	token := req.Msg.AccessToken
	if token == "" {
		token = req.Header().Get("Authorization")
	}
	id, err := s.gate.SignInWithToken(ctx, token)
	if err != nil {
		return nil, rpc.Error(err, errorCodes)
	}
	return connect.NewResponse(&SessionResponse{SignedIn: true, Identity: id}), nil
}

func (s *Service) SignOut(ctx context.Context, _ *connect.Request[EmptyMessage]) (*connect.Response[SessionResponse], error) {
	s.gate.SignOut(ctx)
	return connect.NewResponse(&SessionResponse{}), nil
}

func (s *Service) GetSession(ctx context.Context, _ *connect.Request[EmptyMessage]) (*connect.Response[SessionResponse], error) {
	id, ok := s.gate.Session().Identity(ctx)
	if !ok {
		return connect.NewResponse(&SessionResponse{}), nil
	}
	return connect.NewResponse(&SessionResponse{SignedIn: true, Identity: &id}), nil
}

func (s *Service) GetProfile(ctx context.Context, _ *connect.Request[EmptyMessage]) (*connect.Response[ProfileResponse], error) {
	if s.profiles == nil {
		return nil, rpc.Error(ErrProfilesUnavailable, errorCodes)
	}
	p, err := s.profiles.GetProfile(ctx)
	if err != nil {
		return nil, rpc.Error(err, errorCodes)
	}
	return connect.NewResponse(&ProfileResponse{Profile: p}), nil
}

func (s *Service) UpdateDisplayName(ctx context.Context, req *connect.Request[UpdateDisplayNameMessage]) (*connect.Response[ProfileResponse], error) {
	if s.profiles == nil {
		return nil, rpc.Error(ErrProfilesUnavailable, errorCodes)
	}
	p, err := s.profiles.UpdateDisplayName(ctx, req.Msg.DisplayName)
	if err != nil {
		return nil, rpc.Error(err, errorCodes)
	}
	return connect.NewResponse(&ProfileResponse{Profile: p}), nil
}
