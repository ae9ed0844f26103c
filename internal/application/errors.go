package application

import (
	"errors"
	"fmt"
)

// ReferenceError reports a video reference that could not be parsed
type ReferenceError struct {
	Reference string
	Err       error
}

func (e *ReferenceError) Error() string {
	return "Could not parse YouTube video ID."
}

func (e *ReferenceError) Unwrap() error { return e.Err }

// ProviderError reports that the caption provider could not supply a transcript
type ProviderError struct {
	VideoID string
	Lang    string
	Err     error
}

func (e *ProviderError) Error() string {
	return "Transcript not available for this video (or blocked/disabled)."
}

// Details returns the provider's own diagnostic message
func (e *ProviderError) Details() string {
	if e.Err == nil {
		return ""
	}
	return e.Err.Error()
}

func (e *ProviderError) Unwrap() error { return e.Err }

// TransportError reports a failure talking to the transcript server
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("Failed to fetch transcript: %v", e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// ErrorMessage returns the text a session shows for a failed fetch
func ErrorMessage(err error) string {
	var refErr *ReferenceError
	var provErr *ProviderError
	switch {
	case errors.As(err, &refErr):
		return refErr.Error()
	case errors.As(err, &provErr):
		return provErr.Error()
	default:
		return "Failed to fetch transcript."
	}
}
