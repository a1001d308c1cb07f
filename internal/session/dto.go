package session

import (
	"time"

	"github.com/fkhayef/tableboard/internal/user"
)

// LoginRequest represents the request body for opening a session
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// TokenResponse is the bearer token handed out at login
type TokenResponse struct {
	Type      string    `json:"type"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// LoginResponse represents the response for a successful login
type LoginResponse struct {
	User  *user.UserResponse `json:"user"`
	Token *TokenResponse     `json:"token"`
}
