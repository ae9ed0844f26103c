package application

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/iandelaney/youtran/internal/domain"
)

// Mock implementations for testing
type mockCueFetcher struct {
	cues  []domain.Cue
	err   error
	calls int
	gotID string
	gotLn string
}

func (m *mockCueFetcher) FetchCues(ctx context.Context, videoID, lang string) ([]domain.Cue, error) {
	m.calls++
	m.gotID = videoID
	m.gotLn = lang
	if m.err != nil {
		return nil, m.err
	}
	return m.cues, nil
}

func sampleCues() []domain.Cue {
	return []domain.Cue{
		{StartMs: 0, DurationMs: 1500, Text: "hi"},
		{StartMs: 1500, DurationMs: 2000, Text: "there  friend"},
	}
}

func TestTranscriptService_GetTranscript(t *testing.T) {
	fetcher := &mockCueFetcher{cues: sampleCues()}
	svc := NewTranscriptService(fetcher, TranscriptOptions{}, nil)

	result, err := svc.GetTranscript(context.Background(), "https://youtu.be/abc12345678", "fr")
	if err != nil {
		t.Fatalf("GetTranscript() error = %v", err)
	}

	if fetcher.gotID != "abc12345678" || fetcher.gotLn != "fr" {
		t.Errorf("fetcher called with (%q, %q), want (abc12345678, fr)", fetcher.gotID, fetcher.gotLn)
	}
	if result.VideoID != "abc12345678" || result.Lang != "fr" {
		t.Errorf("result = (%q, %q)", result.VideoID, result.Lang)
	}
	if result.PlainText != "hi there friend" {
		t.Errorf("PlainText = %q", result.PlainText)
	}
	if !strings.HasPrefix(result.SRT, "1\n00:00:00,000 --> 00:00:01,500\nhi\n") {
		t.Errorf("SRT = %q", result.SRT)
	}
	if len(result.Rows) != 2 || result.Rows[1].Index != 2 {
		t.Errorf("Rows = %+v", result.Rows)
	}
	if len(result.Cues) != 2 {
		t.Errorf("Cues = %+v", result.Cues)
	}
}

func TestTranscriptService_DefaultLang(t *testing.T) {
	fetcher := &mockCueFetcher{cues: sampleCues()}
	svc := NewTranscriptService(fetcher, TranscriptOptions{DefaultLang: "de"}, nil)

	result, err := svc.GetTranscript(context.Background(), "abc12345678", "  ")
	if err != nil {
		t.Fatalf("GetTranscript() error = %v", err)
	}
	if fetcher.gotLn != "de" || result.Lang != "de" {
		t.Errorf("lang = %q, want de", fetcher.gotLn)
	}
}

func TestTranscriptService_ReferenceError(t *testing.T) {
	fetcher := &mockCueFetcher{cues: sampleCues()}
	svc := NewTranscriptService(fetcher, TranscriptOptions{}, nil)

	_, err := svc.GetTranscript(context.Background(), "not a url", "en")

	var refErr *ReferenceError
	if !errors.As(err, &refErr) {
		t.Fatalf("GetTranscript() error = %v, want *ReferenceError", err)
	}
	if !errors.Is(err, domain.ErrInvalidReference) {
		t.Errorf("error should wrap ErrInvalidReference")
	}
	if fetcher.calls != 0 {
		t.Errorf("fetcher called %d times for an invalid reference", fetcher.calls)
	}
}

func TestTranscriptService_StrictAndLenient(t *testing.T) {
	const ref = "https://x.com/watch?v=abc"

	strict := NewTranscriptService(&mockCueFetcher{}, TranscriptOptions{}, nil)
	if _, err := strict.GetTranscript(context.Background(), ref, "en"); err == nil {
		t.Error("strict service should reject a malformed extracted ID")
	}

	fetcher := &mockCueFetcher{cues: sampleCues()}
	lenient := NewTranscriptService(fetcher, TranscriptOptions{Lenient: true}, nil)
	result, err := lenient.GetTranscript(context.Background(), ref, "en")
	if err != nil {
		t.Fatalf("lenient GetTranscript() error = %v", err)
	}
	if result.VideoID != "abc" {
		t.Errorf("VideoID = %q, want abc", result.VideoID)
	}
}

func TestTranscriptService_ProviderError(t *testing.T) {
	fetcher := &mockCueFetcher{err: domain.ErrCaptionsDisabled}
	svc := NewTranscriptService(fetcher, TranscriptOptions{}, nil)

	result, err := svc.GetTranscript(context.Background(), "abc12345678", "en")
	if result != nil {
		t.Errorf("result should be nil on provider failure")
	}

	var provErr *ProviderError
	if !errors.As(err, &provErr) {
		t.Fatalf("GetTranscript() error = %v, want *ProviderError", err)
	}
	if provErr.Details() != domain.ErrCaptionsDisabled.Error() {
		t.Errorf("Details() = %q", provErr.Details())
	}
	if !errors.Is(err, domain.ErrCaptionsDisabled) {
		t.Errorf("error should wrap the provider error")
	}
	if fetcher.calls != 1 {
		t.Errorf("fetcher called %d times, want exactly 1 (no retry)", fetcher.calls)
	}
}

func TestTranscriptService_EmptyCues(t *testing.T) {
	svc := NewTranscriptService(&mockCueFetcher{}, TranscriptOptions{}, nil)

	result, err := svc.GetTranscript(context.Background(), "abc12345678", "en")
	if err != nil {
		t.Fatalf("GetTranscript() error = %v", err)
	}
	if result.PlainText != "" || result.SRT != "" || len(result.Rows) != 0 {
		t.Errorf("empty cues should render empty output, got %+v", result)
	}
}

func TestTranscriptService_FetchTranscript(t *testing.T) {
	svc := NewTranscriptService(&mockCueFetcher{cues: sampleCues()}, TranscriptOptions{}, nil)

	resp, err := svc.FetchTranscript(context.Background(), "abc12345678", "en")
	if err != nil {
		t.Fatalf("FetchTranscript() error = %v", err)
	}
	if resp.Output.PlainText != "hi there friend" || len(resp.Output.Rows) != 2 {
		t.Errorf("Output = %+v", resp.Output)
	}
}

func TestErrorMessage(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"reference", &ReferenceError{Err: domain.ErrInvalidReference}, "Could not parse YouTube video ID."},
		{"provider", &ProviderError{Err: errors.New("boom")}, "Transcript not available for this video (or blocked/disabled)."},
		{"transport", &TransportError{Err: errors.New("connection refused")}, "Failed to fetch transcript."},
		{"other", errors.New("x"), "Failed to fetch transcript."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ErrorMessage(tt.err); got != tt.want {
				t.Errorf("ErrorMessage() = %q, want %q", got, tt.want)
			}
		})
	}
}
