package domain

import "errors"

var (
	// Reference errors
	ErrInvalidReference = errors.New("could not parse YouTube video ID")

	// Caption provider errors
	ErrTranscriptUnavailable = errors.New("transcript not available")
	ErrCaptionsDisabled      = errors.New("captions are disabled for this video")
	ErrVideoNotFound         = errors.New("video not found or is private")
	ErrRateLimited           = errors.New("rate limited by YouTube")
	ErrProviderNotAvailable  = errors.New("caption provider not available")

	// Session errors
	ErrNoTranscript  = errors.New("no transcript loaded")
	ErrFetchInFlight = errors.New("a transcript fetch is already in progress")
)
