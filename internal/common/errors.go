// Package common defines shared constants and sentinel errors used across
// the server and viewer layers of kiview. Callers should use errors.Is to
// match these values.
package common

import "errors"

var (
	// Repository / storage errors.
	ErrorNotFound = errors.New("not found")

	// Service-level errors (generic/internal flow control).
	ErrorInternal     = errors.New("internal error")
	ErrorUnauthorized = errors.New("unauthorized")

	// Auth errors (invalid or malformed token).
	ErrInvalidToken = errors.New("invalid token")

	// Share token lifecycle errors.
	ErrTokenExpired = errors.New("token expired")

	// Viewer-side errors.
	ErrFetchFailed    = errors.New("fetch failed")
	ErrDeliveryFailed = errors.New("content delivery failed")
)
