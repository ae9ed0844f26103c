package ytdlp

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/iandelaney/youtran/internal/domain"
)

// rawJSON3 is a YouTube json3 caption track
type rawJSON3 struct {
	Events []rawEvent `json:"events"`
}

type rawEvent struct {
	TStartMs    *int64   `json:"tStartMs,omitempty"`
	DDurationMs *int64   `json:"dDurationMs,omitempty"`
	Segs        []rawSeg `json:"segs,omitempty"`
	// Window and style fields are ignored.
}

type rawSeg struct {
	Utf8 string `json:"utf8"`
}

func parseJSON3(b []byte) (*rawJSON3, error) {
	if len(b) == 0 {
		return nil, fmt.Errorf("parse json3: empty input")
	}
	var raw rawJSON3
	// Unknown fields are expected and ignored.
	if err := json.NewDecoder(bytes.NewReader(b)).Decode(&raw); err != nil {
		return nil, fmt.Errorf("parse json3: %w", err)
	}
	return &raw, nil
}

// text joins the event's segments
func (e rawEvent) text() string {
	var sb strings.Builder
	for _, s := range e.Segs {
		sb.WriteString(s.Utf8)
	}
	return strings.TrimSpace(sb.String())
}

// cues converts events with visible text into cues, in track order
func (r *rawJSON3) cues() []domain.Cue {
	var cues []domain.Cue
	for _, e := range r.Events {
		if e.TStartMs == nil || len(e.Segs) == 0 {
			continue
		}
		text := e.text()
		if text == "" {
			continue
		}
		var dur int64
		if e.DDurationMs != nil {
			dur = max(*e.DDurationMs, 0)
		}
		cues = append(cues, domain.Cue{
			StartMs:    max(*e.TStartMs, 0),
			DurationMs: dur,
			Text:       text,
		})
	}
	return cues
}
