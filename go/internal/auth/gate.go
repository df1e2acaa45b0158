package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/iamdexbot/Scoreboard-Pro/go/clients/supabase_client"
	"github.com/iamdexbot/Scoreboard-Pro/go/internal/models"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"
)

var (
	ErrInvalidToken       = errors.New("invalid access token")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrMissingCredentials = errors.New("email and password are required")
)

// AuthAPI is the part of the Supabase auth API the gate uses
type AuthAPI interface {
	SignInWithPassword(ctx context.Context, email, password string) (*supabase_client.Session, error)
	GetUser(ctx context.Context, accessToken string) (*supabase_client.User, error)
	SignOut(ctx context.Context, accessToken string) error
}

// Gate signs the controller in and out
type Gate struct {
	api       AuthAPI
	jwtSecret []byte
	session   *Session
	clock     clockwork.Clock
	onChange  func(ctx context.Context)
}

type Option func(*Gate)

// WithJWTSecret validates access tokens locally instead of asking the auth API
func WithJWTSecret(secret string) Option {
	return func(g *Gate) {
		if secret != "" {
			g.jwtSecret = []byte(secret)
		}
	}
}

func WithClock(c clockwork.Clock) Option {
	return func(g *Gate) { g.clock = c }
}

// OnChange runs after every sign-in and sign-out, e.g. to reload state for the new identity
func OnChange(fn func(ctx context.Context)) Option {
	return func(g *Gate) { g.onChange = fn }
}

func NewGate(api AuthAPI, session *Session, opts ...Option) *Gate {
	g := &Gate{
		api:      api,
		session:  session,
		clock:    clockwork.NewRealClock(),
		onChange: func(context.Context) {},
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

func (g *Gate) Session() *Session {
	return g.session
}

// SignInWithToken adopts an existing access token
func (g *Gate) SignInWithToken(ctx context.Context, token string) (*models.Identity, error) {
	token = strings.TrimSpace(strings.TrimPrefix(token, "Bearer "))
	if token == "" {
		return nil, ErrInvalidToken
	}

	id, err := g.validate(ctx, token)
	if err != nil {
		return nil, err
	}
	g.signIn(ctx, *id)
	return id, nil
}

// SignInWithPassword signs in through the auth API
func (g *Gate) SignInWithPassword(ctx context.Context, email, password string) (*models.Identity, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return nil, fmt.Errorf("validation failed: %w", ErrMissingCredentials)
	}

	session, err := g.api.SignInWithPassword(ctx, email, password)
	if err != nil {
		var apiErr *supabase_client.Error
		if errors.As(err, &apiErr) && apiErr.StatusCode < 500 {
			return nil, fmt.Errorf("%w: %s", ErrInvalidCredentials, apiErr.Message)
		}
		return nil, fmt.Errorf("failed to sign in: %w", err)
	}
	if session.User == nil || session.AccessToken == "" {
		return nil, fmt.Errorf("failed to sign in: %w", ErrInvalidCredentials)
	}

	id := models.Identity{
		UserID:      session.User.ID,
		Email:       session.User.Email,
		Role:        session.User.Role,
		AccessToken: session.AccessToken,
	}
	g.signIn(ctx, id)
	return &id, nil
}

// SignOut ends the session. Revoking the token upstream is best effort.
func (g *Gate) SignOut(ctx context.Context) {
	id, ok := g.session.clear()
	if !ok {
		return
	}
	if err := g.api.SignOut(ctx, id.AccessToken); err != nil {
		log.Warn().Err(err).Str("user_id", id.UserID).Msg("failed to revoke session")
	}
	log.Info().Str("user_id", id.UserID).Msg("signed out")
	g.onChange(ctx)
}

func (g *Gate) signIn(ctx context.Context, id models.Identity) {
	g.session.set(id)
	log.Info().Str("user_id", id.UserID).Str("email", id.Email).Msg("signed in")
	g.onChange(ctx)
}

func (g *Gate) validate(ctx context.Context, token string) (*models.Identity, error) {
	if len(g.jwtSecret) > 0 {
		id, err := g.validateLocal(token)
		if err == nil {
			return id, nil
		}
		log.Debug().Err(err).Msg("local token validation failed, asking auth API")
	}

	user, err := g.api.GetUser(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if user == nil || user.ID == "" {
		return nil, ErrInvalidToken
	}
	return &models.Identity{UserID: user.ID, Email: user.Email, Role: user.Role, AccessToken: token}, nil
}

func (g *Gate) validateLocal(token string) (*models.Identity, error) {
	claims := jwt.MapClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return g.jwtSecret, nil
	}, jwt.WithTimeFunc(g.clock.Now), jwt.WithExpirationRequired())
	if err != nil {
		return nil, fmt.Errorf("jwt parse: %w", err)
	}
	if !parsed.Valid {
		return nil, ErrInvalidToken
	}

	sub, err := claims.GetSubject()
	if err != nil || sub == "" {
		return nil, fmt.Errorf("%w: missing subject", ErrInvalidToken)
	}
	return &models.Identity{
		UserID:      sub,
		Email:       stringClaim(claims, "email"),
		Role:        stringClaim(claims, "role"),
		AccessToken: token,
	}, nil
}

func stringClaim(claims jwt.MapClaims, key string) string {
	if s, ok := claims[key].(string); ok {
		return s
	}
	return ""
}
