package ports

import (
	"context"

	"github.com/iandelaney/youtran/internal/domain"
)

// TranscriptResponse is a fetched transcript with every rendered representation
type TranscriptResponse struct {
	VideoID string
	Lang    string
	Cues    []domain.Cue
	Output  domain.RenderedOutput
}

// TranscriptFetcher produces transcripts for a client session, either in
// process or through the HTTP API.
type TranscriptFetcher interface {
	FetchTranscript(ctx context.Context, reference, lang string) (*TranscriptResponse, error)
}
