package auth

import "errors"

var (
	ErrInvalidCredentials         = errors.New("invalid email or password")
	ErrEmailAlreadyExists         = errors.New("email already registered")
	ErrInvalidToken               = errors.New("invalid token")
	ErrTokenExpired               = errors.New("token expired")
	ErrRefreshTokenMismatch       = errors.New("refresh token does not match stored token")
	ErrResetTokenInvalid          = errors.New("password reset token is invalid or expired")
	ErrRefreshTokenCookieNotFound = errors.New("refresh token cookie not found")
	ErrRefreshTokenCookieEmpty    = errors.New("refresh token cookie is empty")
)
