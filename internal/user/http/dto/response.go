package dto

import (
	"time"

	"github.com/google/uuid"
)

// UserResponse represents the API response for a user.
// It never carries the password digest.
type UserResponse struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

// CountResponse is returned by GET /v1/users/count.
type CountResponse struct {
	Count int64 `json:"count"`
}
