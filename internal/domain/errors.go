package domain

import "errors"

// Sentinel errors for domain operations
var (
	// ErrItemNotFound indicates the requested title does not exist in the metadata API
	ErrItemNotFound = errors.New("media item not found")

	// ErrServerOffline indicates the metadata API is unreachable
	ErrServerOffline = errors.New("metadata server is unreachable")

	// ErrAuthFailed indicates the API key was rejected
	ErrAuthFailed = errors.New("api key is invalid")

	// ErrInvalidMediaType indicates a media type other than movie or tv
	ErrInvalidMediaType = errors.New("invalid media type")

	// ErrUnknownBackend indicates an unsupported storage backend name
	ErrUnknownBackend = errors.New("unknown storage backend")
)
