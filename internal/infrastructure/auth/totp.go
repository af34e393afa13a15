package auth

import (
	"errors"
	"time"

	"github.com/pquerna/otp"
	"github.com/pquerna/otp/totp"
)

// TOTP errors
var (
	ErrInvalidTOTPCode = errors.New("invalid TOTP code")
	ErrEmptyTOTPSecret = errors.New("empty TOTP secret")
)

// TOTPEnrollment holds the material a user needs to register an authenticator app
type TOTPEnrollment struct {
	Secret string // base32 encoded shared secret
	URL    string // otpauth:// provisioning URL for QR codes
}

// TOTPService generates and verifies time-based one-time passwords
type TOTPService struct {
	issuer string
}

// NewTOTPService creates a TOTP service. The issuer is displayed in
// authenticator apps next to the account name.
func NewTOTPService(issuer string) *TOTPService {
	if issuer == "" {
		issuer = "Milk Subs"
	}
	return &TOTPService{issuer: issuer}
}

// GenerateSecret creates a new shared secret for the given account
func (s *TOTPService) GenerateSecret(accountName string) (*TOTPEnrollment, error) {
	key, err := totp.Generate(totp.GenerateOpts{
		Issuer:      s.issuer,
		AccountName: accountName,
		Period:      30,
		Digits:      otp.DigitsSix,
		Algorithm:   otp.AlgorithmSHA1,
	})
	if err != nil {
		return nil, err
	}

	return &TOTPEnrollment{
		Secret: key.Secret(),
		URL:    key.URL(),
	}, nil
}

// ValidateCode checks a six digit code against the shared secret.
// A skew of one period is allowed in both directions to absorb clock drift.
func (s *TOTPService) ValidateCode(secret, code string) error {
	if secret == "" {
		return ErrEmptyTOTPSecret
	}

	valid, err := totp.ValidateCustom(code, secret, time.Now(), totp.ValidateOpts{
		Period:    30,
		Skew:      1,
		Digits:    otp.DigitsSix,
		Algorithm: otp.AlgorithmSHA1,
	})
	if err != nil {
		return ErrInvalidTOTPCode
	}
	if !valid {
		return ErrInvalidTOTPCode
	}
	return nil
}
