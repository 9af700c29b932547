package dto

import "github.com/yigit/dormitory/internal/app/auth"

// LoginRequest represents login credentials
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// TokenResponse represents JWT token information
type TokenResponse struct {
	AccessToken string `json:"accessToken"`
	TokenType   string `json:"tokenType"`
	ExpiresIn   int64  `json:"expiresIn"`
}

// IdentityResponse describes the caller and the modules it may open
type IdentityResponse struct {
	ID       int64         `json:"id"`
	Username string        `json:"username"`
	Role     auth.Role     `json:"role"`
	Modules  []auth.Module `json:"modules"`
}

// AuthResponse represents successful authentication response
type AuthResponse struct {
	Token TokenResponse    `json:"token"`
	User  IdentityResponse `json:"user"`
}

// CreateUserRequest is accepted by the admin module
type CreateUserRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
	Role     string `json:"role" binding:"required,oneof=admin commandant accountant viewer"`
}
