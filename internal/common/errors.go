// Package common defines shared constants and sentinel errors used across
// the SalesPilots storage and service layers. Callers should use errors.Is
// to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrNotFound      = errors.New("not found")
	ErrAlreadyExists = errors.New("already exists")
	ErrCorruptData   = errors.New("corrupt data")

	// Service-level errors.
	ErrUnauthorized       = errors.New("unauthorized")
	ErrValidation         = errors.New("validation error")
	ErrBackendUnavailable = errors.New("storage backend unavailable")

	// Auth errors (invalid or malformed credential).
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")
)
