package dto

import (
	authDomain "github.com/allisson/storefront/internal/auth/domain"
	userDomain "github.com/allisson/storefront/internal/user/domain"
	userDTO "github.com/allisson/storefront/internal/user/http/dto"
)

// LoginResponse is returned by a successful login. The token itself travels in
// the auth-token cookie only.
type LoginResponse struct {
	Success bool                 `json:"success"`
	User    userDTO.UserResponse `json:"user"`
}

// LogoutResponse is returned by POST /v1/auth/logout.
type LogoutResponse struct {
	Success bool `json:"success"`
}

// SessionResponse describes the identity of the current session.
type SessionResponse struct {
	Subject string `json:"subject"`
	Email   string `json:"email"`
}

// MapLoginToResponse converts the logged-in user to an API response.
func MapLoginToResponse(user *userDomain.User) LoginResponse {
	return LoginResponse{
		Success: true,
		User:    userDTO.ToUserResponse(user),
	}
}

// MapSessionToResponse converts a session to an API response.
func MapSessionToResponse(session *authDomain.Session) SessionResponse {
	return SessionResponse{
		Subject: session.UserID.String(),
		Email:   session.Email,
	}
}
