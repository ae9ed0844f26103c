package application

import (
	"context"
	"strings"

	"github.com/iandelaney/youtran/internal/domain"
	"github.com/iandelaney/youtran/internal/logging"
	"github.com/iandelaney/youtran/internal/ports"
)

// TranscriptOptions configures the transcript service
type TranscriptOptions struct {
	DefaultLang string // used when a request has no language
	Lenient     bool   // skip the canonical-shape check on extracted IDs
}

// TranscriptResult contains a transcript and its rendered representations
type TranscriptResult struct {
	VideoID   string
	Lang      string
	Cues      []domain.Cue
	PlainText string
	SRT       string
	Rows      []domain.Row
}

// Output returns the rendered representations as one value
func (r *TranscriptResult) Output() domain.RenderedOutput {
	return domain.RenderedOutput{
		PlainText: r.PlainText,
		SRT:       r.SRT,
		Rows:      r.Rows,
	}
}

// TranscriptService resolves a reference, fetches cues, and renders them.
// It keeps no state between calls.
type TranscriptService struct {
	fetcher ports.CueFetcher
	opts    TranscriptOptions
	logger  *logging.Logger
}

// NewTranscriptService creates a new transcript service
func NewTranscriptService(fetcher ports.CueFetcher, opts TranscriptOptions, logger *logging.Logger) *TranscriptService {
	if opts.DefaultLang == "" {
		opts.DefaultLang = "en"
	}
	if logger == nil {
		logger = logging.Nop()
	}
	return &TranscriptService{
		fetcher: fetcher,
		opts:    opts,
		logger:  logger,
	}
}

// GetTranscript fetches the caption track for rawReference in lang
func (s *TranscriptService) GetTranscript(ctx context.Context, rawReference, lang string) (*TranscriptResult, error) {
	videoID, err := s.resolve(rawReference)
	if err != nil {
		s.logger.Infow("Rejected video reference", "reference", rawReference, "error", err)
		return nil, &ReferenceError{Reference: rawReference, Err: err}
	}

	lang = strings.TrimSpace(lang)
	if lang == "" {
		lang = s.opts.DefaultLang
	}

	s.logger.Debugw("Fetching captions", "video_id", videoID, "lang", lang)

	// Single attempt: caption availability failures do not go away on retry.
	cues, err := s.fetcher.FetchCues(ctx, videoID, lang)
	if err != nil {
		s.logger.Warnw("Caption provider failed", "video_id", videoID, "lang", lang, "error", err)
		return nil, &ProviderError{VideoID: videoID, Lang: lang, Err: err}
	}

	transcript := domain.NewTranscript(videoID, lang, cues)
	out := transcript.Render()

	s.logger.Infow("Transcript loaded", "video_id", videoID, "lang", lang, "cues", transcript.Len())

	return &TranscriptResult{
		VideoID:   transcript.VideoID(),
		Lang:      transcript.Lang(),
		Cues:      transcript.Cues(),
		PlainText: out.PlainText,
		SRT:       out.SRT,
		Rows:      out.Rows,
	}, nil
}

// FetchTranscript adapts the service to a client session
func (s *TranscriptService) FetchTranscript(ctx context.Context, reference, lang string) (*ports.TranscriptResponse, error) {
	result, err := s.GetTranscript(ctx, reference, lang)
	if err != nil {
		return nil, err
	}
	return &ports.TranscriptResponse{
		VideoID: result.VideoID,
		Lang:    result.Lang,
		Cues:    result.Cues,
		Output:  result.Output(),
	}, nil
}

func (s *TranscriptService) resolve(reference string) (string, error) {
	if s.opts.Lenient {
		return domain.ExtractVideoID(strings.TrimSpace(reference))
	}
	return domain.ResolveVideoID(reference)
}

var _ ports.TranscriptFetcher = (*TranscriptService)(nil)
