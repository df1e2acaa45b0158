package models

import (
	"time"
)

// Identity is the signed-in user a remote store is scoped to
type Identity struct {
	UserID      string `json:"user_id"`
	Email       string `json:"email"`
	Role        string `json:"role,omitempty"`
	AccessToken string `json:"-"`
}

// Profile represents a user's profile row
type Profile struct {
	ID          string    `json:"id"`
	DisplayName *string   `json:"display_name,omitempty"`
	UpdatedAt   time.Time `json:"updated_at"`
}
