package cli

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/iandelaney/youtran/internal/adapters/cli/tui"
	"github.com/iandelaney/youtran/internal/adapters/export"
	"github.com/iandelaney/youtran/internal/application"
	"github.com/iandelaney/youtran/internal/domain"
	"github.com/iandelaney/youtran/internal/ports"
)

type mockFetcher struct {
	calls atomic.Int32
}

func (m *mockFetcher) FetchTranscript(ctx context.Context, reference, lang string) (*ports.TranscriptResponse, error) {
	m.calls.Add(1)
	id, err := domain.ResolveVideoID(reference)
	if err != nil {
		return nil, &application.ReferenceError{Reference: reference, Err: err}
	}
	if id == "kJQP7kiw5Fk" {
		return nil, &application.ProviderError{VideoID: id, Lang: lang, Err: errors.New("disabled")}
	}
	cues := []domain.Cue{{StartMs: 0, DurationMs: 1000, Text: "hi " + id}}
	return &ports.TranscriptResponse{VideoID: id, Lang: lang, Cues: cues, Output: domain.Render(cues)}, nil
}

func TestProcessBatch(t *testing.T) {
	dir := t.TempDir()
	fetcher := &mockFetcher{}
	var reported atomic.Int32

	summary := processBatch(context.Background(), batchJob{
		fetcher:     fetcher,
		sink:        export.NewDirSink(dir),
		lang:        "en",
		format:      "srt",
		concurrency: 2,
		onResult:    func(tui.BatchResult) { reported.Add(1) },
	}, []string{"dQw4w9WgXcQ", "https://youtu.be/9bZkp7q19f0", "kJQP7kiw5Fk", "nonsense"})

	if summary.Total != 4 || len(summary.Results) != 4 {
		t.Fatalf("summary = %+v", summary)
	}
	if fetcher.calls.Load() != 4 || reported.Load() != 4 {
		t.Errorf("calls = %d, reported = %d, want 4", fetcher.calls.Load(), reported.Load())
	}

	failed := summary.Failed()
	if len(failed) != 2 {
		t.Fatalf("failed = %+v, want 2", failed)
	}

	for _, id := range []string{"dQw4w9WgXcQ", "9bZkp7q19f0"} {
		data, err := os.ReadFile(filepath.Join(dir, id+".srt"))
		if err != nil {
			t.Errorf("missing output for %s: %v", id, err)
			continue
		}
		want := "1\n00:00:00,000 --> 00:00:01,000\nhi " + id + "\n"
		if string(data) != want {
			t.Errorf("%s.srt = %q, want %q", id, data, want)
		}
	}
}

func TestProcessOne_Messages(t *testing.T) {
	job := batchJob{fetcher: &mockFetcher{}, sink: export.NewDirSink(t.TempDir()), lang: "en", format: "text"}

	if r := processOne(context.Background(), job, "nonsense"); r.ErrMsg != "Could not parse YouTube video ID." {
		t.Errorf("ErrMsg = %q", r.ErrMsg)
	}
	if r := processOne(context.Background(), job, "kJQP7kiw5Fk"); r.ErrMsg != "Transcript not available for this video (or blocked/disabled)." {
		t.Errorf("ErrMsg = %q", r.ErrMsg)
	}
	r := processOne(context.Background(), job, "dQw4w9WgXcQ")
	if !r.Success() || filepath.Base(r.Path) != "dQw4w9WgXcQ.txt" {
		t.Errorf("result = %+v", r)
	}
}
