package supabase_client

import (
	"errors"
	"fmt"
	"time"
)

// ErrNoRows is returned by Single queries that matched nothing
var ErrNoRows = errors.New("no rows returned")

type User struct {
	ID           string                 `json:"id"`
	Aud          string                 `json:"aud"`
	Role         string                 `json:"role"`
	Email        string                 `json:"email"`
	LastSignInAt *time.Time             `json:"last_sign_in_at,omitempty"`
	UserMetadata map[string]interface{} `json:"user_metadata,omitempty"`
	CreatedAt    time.Time              `json:"created_at"`
	UpdatedAt    time.Time              `json:"updated_at"`
}

type Session struct {
	AccessToken  string `json:"access_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int    `json:"expires_in"`
	ExpiresAt    int64  `json:"expires_at,omitempty"`
	RefreshToken string `json:"refresh_token"`
	User         *User  `json:"user,omitempty"`
}

// Error is a non-2xx response from PostgREST or the auth API
type Error struct {
	StatusCode int
	Code       string
	Message    string
}

func (e *Error) Error() string {
	return fmt.Sprintf("supabase: %d %s: %s", e.StatusCode, e.Code, e.Message)
}

// Unwrap lets errors.Is(err, ErrNoRows) match an empty Single result
func (e *Error) Unwrap() error {
	if e.Code == noRowsCode {
		return ErrNoRows
	}
	return nil
}
