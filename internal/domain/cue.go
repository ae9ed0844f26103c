package domain

import "time"

// Cue is a single timed caption line
type Cue struct {
	StartMs    int64  `json:"offset"`
	DurationMs int64  `json:"duration"`
	Text       string `json:"text"`
}

// EndMs returns the instant the cue stops being displayed
func (c Cue) EndMs() int64 {
	return c.StartMs + c.DurationMs
}

// Start returns the cue start as a duration
func (c Cue) Start() time.Duration {
	return time.Duration(c.StartMs) * time.Millisecond
}

// Transcript is the caption track of one video in one language.
// It is immutable once constructed.
type Transcript struct {
	videoID string
	lang    string
	cues    []Cue
}

// NewTranscript builds a transcript, keeping cues in source order
func NewTranscript(videoID, lang string, cues []Cue) *Transcript {
	return &Transcript{
		videoID: videoID,
		lang:    lang,
		cues:    append([]Cue(nil), cues...),
	}
}

func (t *Transcript) VideoID() string { return t.videoID }
func (t *Transcript) Lang() string    { return t.lang }
func (t *Transcript) Len() int        { return len(t.cues) }

// Cues returns a copy of the cue sequence
func (t *Transcript) Cues() []Cue {
	return append([]Cue(nil), t.cues...)
}

// Render derives all output representations of the transcript
func (t *Transcript) Render() RenderedOutput {
	return Render(t.cues)
}
