package users

import (
	"time"

	"github.com/google/uuid"

	"github.com/stockpilothq/stockpilot-backend/pkg/db/models"
)

// CreateUserDTO carries the fields needed to persist a new account.
type CreateUserDTO struct {
	Username     string
	Email        string
	PasswordHash string
}

// ToModel converts the DTO into a persistable user model.
func (d CreateUserDTO) ToModel() *models.User {
	return &models.User{
		Username:     d.Username,
		Email:        d.Email,
		PasswordHash: d.PasswordHash,
		IsActive:     true,
	}
}

// UserSummary is the public shape returned to API clients.
type UserSummary struct {
	ID        uuid.UUID `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

// FromModel maps a user model to its public summary.
func FromModel(user *models.User) UserSummary {
	if user == nil {
		return UserSummary{}
	}
	return UserSummary{
		ID:        user.ID,
		Username:  user.Username,
		Email:     user.Email,
		CreatedAt: user.CreatedAt,
	}
}
