package ports

import (
	"context"

	"github.com/iandelaney/youtran/internal/domain"
)

// CueFetcher retrieves the raw caption cues of a video from a provider
type CueFetcher interface {
	// FetchCues returns cues in source order for the given video and language.
	// A single attempt is made; callers do not retry.
	FetchCues(ctx context.Context, videoID, lang string) ([]domain.Cue, error)
}

// Dependency is an external tool a provider relies on.
type Dependency interface {
	// IsAvailable checks if the tool is installed and ready.
	IsAvailable() bool

	// GetBinaryPath returns the path to the tool binary.
	GetBinaryPath() string

	// Install downloads and installs the tool, reporting progress via callback.
	Install(ctx context.Context, progress func(downloaded, total int64)) error

	// Update updates the tool to the latest version.
	Update(ctx context.Context) error
}
