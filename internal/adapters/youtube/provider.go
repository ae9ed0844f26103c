// Package youtube fetches caption cues with the youtube-transcript-api-go client.
package youtube

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/horiagug/youtube-transcript-api-go/pkg/yt_transcript"
	"github.com/horiagug/youtube-transcript-api-go/pkg/yt_transcript_models"

	"github.com/iandelaney/youtran/internal/domain"
	"github.com/iandelaney/youtran/internal/ports"
)

// transcriptClient is the subset of yt_transcript.Client the provider uses
type transcriptClient interface {
	GetFormattedTranscripts(videoID string, languages []string, preserveFormatting bool) (string, error)
}

// Provider implements ports.CueFetcher on top of YouTube's transcript endpoints
type Provider struct {
	client transcriptClient
}

// NewProvider creates a provider whose client emits cues as JSON.
// Cues go through a formatter because only GetFormattedTranscripts accepts
// preserveFormatting; GetTranscripts always keeps caption markup such as
// <i> tags, which must not reach the plain text and SRT outputs.
func NewProvider() *Provider {
	return &Provider{
		client: yt_transcript.NewClient(
			yt_transcript.WithFormatter(cueFormatter{}),
		),
	}
}

// FetchCues downloads the caption track for videoID in lang
func (p *Provider) FetchCues(ctx context.Context, videoID, lang string) ([]domain.Cue, error) {
	type result struct {
		out string
		err error
	}

	// The client has no context support; abandon the call on cancellation.
	done := make(chan result, 1)
	go func() {
		out, err := p.client.GetFormattedTranscripts(videoID, []string{lang}, false)
		done <- result{out, err}
	}()

	var res result
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res = <-done:
	}

	if res.err != nil {
		return nil, classify(res.err)
	}

	var cues []domain.Cue
	if err := json.Unmarshal([]byte(res.out), &cues); err != nil {
		return nil, fmt.Errorf("failed to decode transcript: %w", err)
	}
	if len(cues) == 0 {
		return nil, fmt.Errorf("%w: no %s captions for %s", domain.ErrTranscriptUnavailable, lang, videoID)
	}
	return cues, nil
}

// cueFormatter renders the first returned transcript as a JSON cue list
type cueFormatter struct{}

func (cueFormatter) Format(transcripts []yt_transcript_models.Transcript) (string, error) {
	cues := []domain.Cue{}
	if len(transcripts) > 0 {
		for _, line := range transcripts[0].Lines {
			cues = append(cues, domain.Cue{
				StartMs:    secondsToMs(line.Start),
				DurationMs: secondsToMs(line.Duration),
				Text:       line.Text,
			})
		}
	}

	data, err := json.Marshal(cues)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func secondsToMs(s float64) int64 {
	return max(int64(math.Round(s*1000)), 0)
}

// classify maps client errors onto domain errors, keeping the original message
func classify(err error) error {
	msg := strings.ToLower(err.Error())
	var kind error
	switch {
	case strings.Contains(msg, "disabled"):
		kind = domain.ErrCaptionsDisabled
	case strings.Contains(msg, "too many requests"), strings.Contains(msg, "429"),
		strings.Contains(msg, "recaptcha"):
		kind = domain.ErrRateLimited
	case strings.Contains(msg, "unavailable"), strings.Contains(msg, "not found"),
		strings.Contains(msg, "private"):
		kind = domain.ErrVideoNotFound
	default:
		kind = domain.ErrTranscriptUnavailable
	}
	if errors.Is(err, kind) {
		return err
	}
	return fmt.Errorf("%w: %v", kind, err)
}

var _ ports.CueFetcher = (*Provider)(nil)
