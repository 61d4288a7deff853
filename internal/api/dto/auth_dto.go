package dto

import (
	"github.com/spec-kit/tenant-platform/internal/domain"
	"github.com/spec-kit/tenant-platform/internal/service"
)

// RegisterRequest payload for new accounts. Name carries the first name; the
// tenant falls back to the default tenant when unset.
type RegisterRequest struct {
	Name     string `json:"name"`
	LastName string `json:"last_name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
	TenantID *int64 `json:"tenantId"`
}

// LoginRequest payload for login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthUserResponse is the user body returned by login, register, and refresh.
// Tokens are delivered both here and as http-only cookies so native clients
// that cannot read cookies still work.
type AuthUserResponse struct {
	UserID       int64  `json:"userId"`
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	Email        string `json:"email"`
	Role         string `json:"role"`
	TenantID     *int64 `json:"tenantId"`
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// NewAuthUserResponse builds the response body from a user and token pair.
func NewAuthUserResponse(user *domain.User, pair *service.TokenPair) AuthUserResponse {
	return AuthUserResponse{
		UserID:       user.ID,
		FirstName:    user.FirstName,
		LastName:     user.LastName,
		Email:        user.Email,
		Role:         string(user.Role),
		TenantID:     user.TenantID,
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
	}
}

// UserResponse is the profile body returned by get-user.
type UserResponse struct {
	UserID    int64  `json:"user_id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Role      string `json:"role"`
	TenantID  *int64 `json:"tenant_id"`
}

// NewUserResponse builds the profile body.
func NewUserResponse(user *domain.User) UserResponse {
	return UserResponse{
		UserID:    user.ID,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Email:     user.Email,
		Role:      string(user.Role),
		TenantID:  user.TenantID,
	}
}
