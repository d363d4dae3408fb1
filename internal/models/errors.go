package models

import "errors"

var (
	ErrMissingCredential  = errors.New("YouTube API key is required")
	ErrInvalidReference   = errors.New("unsupported YouTube URL format")
	ErrResolutionNotFound = errors.New("not found")
	ErrUpstream           = errors.New("YouTube API request failed")
)

// ErrorKind returns a stable tag for err so callers can decide how to present it
func ErrorKind(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrMissingCredential):
		return "missing_credential"
	case errors.Is(err, ErrInvalidReference):
		return "invalid_reference"
	case errors.Is(err, ErrResolutionNotFound):
		return "not_found"
	case errors.Is(err, ErrUpstream):
		return "upstream"
	default:
		return "internal"
	}
}
