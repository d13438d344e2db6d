package domain

import "errors"

// Authentication errors
var (
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserAlreadyExists  = errors.New("user already exists")
	ErrEmailNotVerified   = errors.New("email not verified")
)

// Verification code errors
var (
	ErrCodeExpired     = errors.New("verification code has expired")
	ErrCodeInvalid     = errors.New("invalid verification code")
	ErrCodeNotFound    = errors.New("verification code not found")
	ErrCodeResendLimit = errors.New("verification code resend limit exceeded")
)

// Token errors
var (
	ErrTokenInvalid   = errors.New("invalid token")
	ErrTokenExpired   = errors.New("token has expired")
	ErrTokenMalformed = errors.New("malformed token")
)

// Session errors
var (
	ErrSessionNotFound = errors.New("session not found")
	ErrSessionExpired  = errors.New("session has expired")
)

// Marketplace errors
var (
	ErrProviderNotFound = errors.New("provider not found")
	ErrSelfReview       = errors.New("provider cannot review itself")
	ErrInvalidRating    = errors.New("rating must be between 1 and 5")
	ErrPaymentNotFound  = errors.New("payment not found")
	ErrInvalidPayment   = errors.New("invalid payment request")
	ErrChargeRejected   = errors.New("charge rejected by gateway")
)

// Authorization errors
var (
	ErrUnauthorized     = errors.New("unauthorized access")
	ErrInsufficientRole = errors.New("insufficient role permissions")
)
