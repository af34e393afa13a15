package handler

import (
	"time"

	identityapp "github.com/dishankgupta/milk-subs-sub005/internal/application/identity"
)

// LoginRequest represents a login request
type LoginRequest struct {
	Username string `json:"username" binding:"required,min=1,max=100"`
	Password string `json:"password" binding:"required,min=1,max=200"`
	TOTPCode string `json:"totp_code" binding:"omitempty,len=6,numeric"`
}

// UserInfoResponse represents the authenticated user in API responses
type UserInfoResponse struct {
	ID          string `json:"id"`
	Username    string `json:"username"`
	DisplayName string `json:"display_name"`
	Email       string `json:"email,omitempty"`
	Role        string `json:"role"`
	TOTPEnabled bool   `json:"totp_enabled"`
}

// LoginResponse represents a successful login
type LoginResponse struct {
	AccessToken           string           `json:"access_token"`
	RefreshToken          string           `json:"refresh_token"`
	AccessTokenExpiresAt  time.Time        `json:"access_token_expires_at"`
	RefreshTokenExpiresAt time.Time        `json:"refresh_token_expires_at"`
	TokenType             string           `json:"token_type"`
	User                  UserInfoResponse `json:"user"`
}

// RefreshRequest represents a token refresh request
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// RefreshResponse represents a refreshed token pair
type RefreshResponse struct {
	AccessToken           string    `json:"access_token"`
	RefreshToken          string    `json:"refresh_token"`
	AccessTokenExpiresAt  time.Time `json:"access_token_expires_at"`
	RefreshTokenExpiresAt time.Time `json:"refresh_token_expires_at"`
	TokenType             string    `json:"token_type"`
}

// LogoutRequest represents a logout request
type LogoutRequest struct {
	AllSessions bool `json:"all_sessions"`
}

// ChangePasswordRequest represents a password change request
type ChangePasswordRequest struct {
	OldPassword string `json:"old_password" binding:"required"`
	NewPassword string `json:"new_password" binding:"required,min=8,max=200"`
}

// TOTPEnrollmentResponse carries the material for setting up an authenticator app
type TOTPEnrollmentResponse struct {
	Secret string `json:"secret"`
	URL    string `json:"url"`
}

// ConfirmTOTPRequest confirms MFA enrollment with a code from the app
type ConfirmTOTPRequest struct {
	Code string `json:"code" binding:"required,len=6,numeric"`
}

// DisableTOTPRequest removes MFA after re-authentication
type DisableTOTPRequest struct {
	Password string `json:"password" binding:"required"`
}

func toUserInfoResponse(u identityapp.UserInfo) UserInfoResponse {
	return UserInfoResponse{
		ID:          u.ID.String(),
		Username:    u.Username,
		DisplayName: u.DisplayName,
		Email:       u.Email,
		Role:        u.Role,
		TOTPEnabled: u.TOTPEnabled,
	}
}
