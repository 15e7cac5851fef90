// Package common defines shared constants and sentinel errors used across
// client and server layers of fraudcheck. Callers should use errors.Is to
// match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound    = errors.New("not found")
	ErrAlreadyExists = errors.New("already exists")

	// Service-level errors.
	ErrorInternal     = errors.New("internal error")
	ErrorUnauthorized = errors.New("unauthorized")
	ErrorValidation   = errors.New("validation error")

	// ErrAuthRequired means there is no signed-in identity.
	ErrAuthRequired = errors.New("authentication required")

	// ErrAccessDenied is returned when the caller does not own the record.
	ErrAccessDenied = errors.New("access denied")

	ErrUnsupportedFileType = errors.New("unsupported file type")
	ErrFileTooLarge        = errors.New("file too large")

	// ErrSubmitInProgress rejects a second submit from the same editor.
	ErrSubmitInProgress = errors.New("submit already in progress")

	// Auth errors (invalid or malformed token).
	ErrInvalidToken = errors.New("invalid token")

	// Token lifecycle errors.
	ErrTokenExpired        = errors.New("token expired")
	ErrRefreshTokenExpired = errors.New("refresh token expired")
)
