package auth

import "github.com/stockpilothq/stockpilot-backend/internal/users"

// RegisterRequest is the payload for creating a new account.
type RegisterRequest struct {
	Username string `json:"username" validate:"required,min=3,max=64"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,max=128"`
}

// RegisterResponse returns the created account summary.
type RegisterResponse struct {
	User users.UserSummary `json:"user"`
}

// LoginRequest is the payload for exchanging credentials for a token.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse carries the minted access token and account summary.
type LoginResponse struct {
	AccessToken string            `json:"access_token"`
	User        users.UserSummary `json:"user"`
}
