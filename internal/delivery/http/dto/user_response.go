package dto

import (
	"time"

	"skill-matrix/internal/domain/user"

	"github.com/google/uuid"
)

type UserResponse struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	FullName  string    `json:"full_name"`
	Role      string    `json:"role"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}

func FromUser(p user.Profile) UserResponse {
	return UserResponse{
		ID:        p.ID,
		Email:     p.Email,
		FullName:  p.FullName,
		Role:      string(p.Role),
		IsActive:  p.IsActive,
		CreatedAt: p.CreatedAt,
	}
}

func FromUsers(items []user.Profile) []UserResponse {
	out := make([]UserResponse, 0, len(items))
	for _, p := range items {
		out = append(out, FromUser(p))
	}
	return out
}
