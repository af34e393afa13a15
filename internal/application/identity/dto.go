package identity

import (
	"time"

	"github.com/google/uuid"
)

// LoginInput contains the input for user login
type LoginInput struct {
	Username string
	Password string
	TOTPCode string // Required when the account has MFA enabled
	IP       string // Client IP for login tracking
}

// LoginResult contains the result of a successful login
type LoginResult struct {
	AccessToken           string
	RefreshToken          string
	AccessTokenExpiresAt  time.Time
	RefreshTokenExpiresAt time.Time
	TokenType             string
	User                  UserInfo
}

// UserInfo contains basic user information returned after login
type UserInfo struct {
	ID          uuid.UUID
	Username    string
	DisplayName string
	Email       string
	Role        string
	TOTPEnabled bool
}

// RefreshTokenInput contains the input for token refresh
type RefreshTokenInput struct {
	RefreshToken string
}

// RefreshTokenResult contains the result of a token refresh
type RefreshTokenResult struct {
	AccessToken           string
	RefreshToken          string
	AccessTokenExpiresAt  time.Time
	RefreshTokenExpiresAt time.Time
	TokenType             string
}

// LogoutInput contains the input for user logout
type LogoutInput struct {
	UserID      uuid.UUID
	TokenJTI    string        // JWT ID of the access token being revoked
	TokenTTL    time.Duration // Remaining lifetime of that token
	AllSessions bool          // Revoke every session for the user
}

// ChangePasswordInput contains the input for password change
type ChangePasswordInput struct {
	UserID      uuid.UUID
	OldPassword string
	NewPassword string
}

// BeginTOTPInput contains the input for starting MFA enrollment
type BeginTOTPInput struct {
	UserID uuid.UUID
}

// BeginTOTPResult contains the enrollment material for the authenticator app
type BeginTOTPResult struct {
	Secret string // Base32 secret for manual entry
	URL    string // otpauth:// URL for QR codes
}

// ConfirmTOTPInput contains the input for completing MFA enrollment
type ConfirmTOTPInput struct {
	UserID uuid.UUID
	Code   string
}

// DisableTOTPInput contains the input for removing MFA from an account
type DisableTOTPInput struct {
	UserID   uuid.UUID
	Password string // Re-authentication before weakening the account
}
