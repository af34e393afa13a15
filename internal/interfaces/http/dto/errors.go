package dto

import (
	"net/http"
	"strings"
)

// Transport-level error codes. Domain errors keep their own codes and
// are mapped to HTTP status by GetHTTPStatus.
const (
	ErrCodeBadRequest   = "BAD_REQUEST"
	ErrCodeValidation   = "VALIDATION_ERROR"
	ErrCodeUnauthorized = "UNAUTHORIZED"
	ErrCodeForbidden    = "FORBIDDEN"
	ErrCodeNotFound     = "NOT_FOUND"
	ErrCodeConflict     = "CONFLICT"
	ErrCodeRateLimited  = "RATE_LIMIT_EXCEEDED"
	ErrCodeTooLarge     = "REQUEST_TOO_LARGE"
	ErrCodeDuplicate    = "DUPLICATE_REQUEST"
	ErrCodeInternal     = "INTERNAL_ERROR"
)

// ErrorCodeHTTPStatus maps known error codes to HTTP status codes.
// Codes not listed here fall through to the suffix rules in GetHTTPStatus.
var ErrorCodeHTTPStatus = map[string]int{
	ErrCodeBadRequest:   http.StatusBadRequest,
	ErrCodeValidation:   http.StatusBadRequest,
	ErrCodeUnauthorized: http.StatusUnauthorized,
	ErrCodeForbidden:    http.StatusForbidden,
	ErrCodeNotFound:     http.StatusNotFound,
	ErrCodeConflict:     http.StatusConflict,
	ErrCodeRateLimited:  http.StatusTooManyRequests,
	ErrCodeTooLarge:     http.StatusRequestEntityTooLarge,
	ErrCodeInternal:     http.StatusInternalServerError,

	// Authentication
	"INVALID_CREDENTIALS": http.StatusUnauthorized,
	"TOTP_REQUIRED":       http.StatusUnauthorized,
	"TOTP_INVALID":        http.StatusUnauthorized,
	"ACCOUNT_LOCKED":      http.StatusUnauthorized,
	"ACCOUNT_DEACTIVATED": http.StatusUnauthorized,
	"ACCOUNT_INACTIVE":    http.StatusUnauthorized,
	"TOKEN_EXPIRED":       http.StatusUnauthorized,
	"TOKEN_INVALID":       http.StatusUnauthorized,
	"TOKEN_MAX_REFRESH":   http.StatusUnauthorized,
	"TOKEN_ERROR":         http.StatusInternalServerError,
	"INVALID_PASSWORD":    http.StatusUnprocessableEntity,

	// Concurrency
	"OPTIMISTIC_LOCK_ERROR": http.StatusConflict,
	"CONCURRENCY_CONFLICT":  http.StatusConflict,

	// Billing and delivery state conflicts
	"ORDERS_EXIST":    http.StatusConflict,
	"NOTHING_TO_BILL": http.StatusUnprocessableEntity,
	"EMPTY_INVOICE":   http.StatusUnprocessableEntity,
	"OVERPAYMENT":     http.StatusUnprocessableEntity,
	"ROUTE_IN_USE":    http.StatusConflict,

	// Infrastructure
	"DB_ERROR":            http.StatusInternalServerError,
	"PASSWORD_HASH_ERROR": http.StatusInternalServerError,
}

// GetHTTPStatus resolves an error code to an HTTP status. Unmapped
// codes are classified by their shape: not-found 404, duplicates and
// already-in-state 409, everything else a business rule violation 422.
func GetHTTPStatus(code string) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	switch {
	case strings.HasSuffix(code, "_NOT_FOUND"):
		return http.StatusNotFound
	case strings.HasSuffix(code, "_EXISTS"),
		strings.HasPrefix(code, "DUPLICATE_"),
		strings.HasPrefix(code, "ALREADY_"):
		return http.StatusConflict
	}
	return http.StatusUnprocessableEntity
}
