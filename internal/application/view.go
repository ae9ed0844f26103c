package application

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/iandelaney/youtran/internal/domain"
	"github.com/iandelaney/youtran/internal/ports"
)

// Tab selects which representation a session shows and exports
type Tab string

const (
	TabPlain      Tab = "plain"
	TabTimestamps Tab = "timestamps"
	TabSRT        Tab = "srt"
)

// Tabs lists the tabs in display order
func Tabs() []Tab {
	return []Tab{TabPlain, TabTimestamps, TabSRT}
}

// ParseTab converts a tab name into a Tab
func ParseTab(s string) (Tab, error) {
	switch t := Tab(strings.ToLower(strings.TrimSpace(s))); t {
	case TabPlain, TabTimestamps, TabSRT:
		return t, nil
	default:
		return "", fmt.Errorf("unknown tab: %s", s)
	}
}

// Download file names per tab
const (
	PlainFileName      = "transcript.txt"
	SRTFileName        = "transcript.srt"
	TimestampsFileName = "transcript-timestamps.txt"
)

// ErrEmptyReference is returned when a fetch is requested without a reference
var ErrEmptyReference = errors.New("empty video reference")

// Snapshot is a consistent copy of a session for rendering
type Snapshot struct {
	Tab     Tab
	Output  *domain.RenderedOutput
	VideoID string
	Status  string
	Failed  bool
	Busy    bool
}

// ViewState holds one client session: the last loaded transcript, the active
// tab, and the status line. Create one per session with NewViewState.
type ViewState struct {
	fetcher  ports.TranscriptFetcher
	inFlight atomic.Bool

	mu        sync.Mutex
	activeTab Tab
	output    *domain.RenderedOutput
	videoID   string
	status    string
	failed    bool
}

// NewViewState creates a session showing the plain text tab
func NewViewState(fetcher ports.TranscriptFetcher) *ViewState {
	return &ViewState{
		fetcher:   fetcher,
		activeTab: TabPlain,
		status:    "Ready.",
	}
}

// Fetch loads the transcript for reference, replacing the current output on
// success and clearing it on failure. Only one fetch may run at a time; an
// overlapping call returns domain.ErrFetchInFlight without touching state.
func (v *ViewState) Fetch(ctx context.Context, reference, lang string) error {
	reference = strings.TrimSpace(reference)
	if reference == "" {
		v.mu.Lock()
		v.output = nil
		v.videoID = ""
		v.status = "Please paste a YouTube URL or ID."
		v.failed = true
		v.mu.Unlock()
		return ErrEmptyReference
	}

	if !v.inFlight.CompareAndSwap(false, true) {
		return domain.ErrFetchInFlight
	}
	defer v.inFlight.Store(false)

	v.setStatus("Fetching transcript…", false)

	resp, err := v.fetcher.FetchTranscript(ctx, reference, lang)

	v.mu.Lock()
	defer v.mu.Unlock()

	if err != nil {
		v.output = nil
		v.videoID = ""
		v.status = ErrorMessage(err)
		v.failed = true
		return err
	}

	out := resp.Output
	v.output = &out
	v.videoID = resp.VideoID
	v.status = fmt.Sprintf("Loaded transcript (%d lines).", len(out.Rows))
	v.failed = false
	return nil
}

// Busy reports whether a fetch is in progress
func (v *ViewState) Busy() bool {
	return v.inFlight.Load()
}

// SelectTab makes tab the active tab
func (v *ViewState) SelectTab(tab Tab) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.activeTab = tab
}

// ActiveTab returns the active tab
func (v *ViewState) ActiveTab() Tab {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.activeTab
}

// Output returns the current output, if any
func (v *ViewState) Output() (domain.RenderedOutput, bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.output == nil {
		return domain.RenderedOutput{}, false
	}
	return *v.output, true
}

// Snapshot returns the session state for rendering
func (v *ViewState) Snapshot() Snapshot {
	v.mu.Lock()
	defer v.mu.Unlock()
	return Snapshot{
		Tab:     v.activeTab,
		Output:  v.output,
		VideoID: v.videoID,
		Status:  v.status,
		Failed:  v.failed,
		Busy:    v.inFlight.Load(),
	}
}

// CopySource returns the text a copy action places on the clipboard
func (v *ViewState) CopySource() (string, error) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.output == nil {
		return "", domain.ErrNoTranscript
	}
	return sourceFor(v.activeTab, *v.output), nil
}

// DownloadSource returns the file name and contents a download action writes
func (v *ViewState) DownloadSource() (string, string, error) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.output == nil {
		return "", "", domain.ErrNoTranscript
	}

	var name string
	switch v.activeTab {
	case TabSRT:
		name = SRTFileName
	case TabTimestamps:
		name = TimestampsFileName
	default:
		name = PlainFileName
	}
	return name, sourceFor(v.activeTab, *v.output), nil
}

// Copy places the active representation on the clipboard
func (v *ViewState) Copy(cb ports.Clipboard) error {
	text, err := v.CopySource()
	if err != nil {
		v.setStatus("Nothing to copy.", true)
		return err
	}
	if err := cb.WriteAll(text); err != nil {
		v.setStatus(fmt.Sprintf("Copy failed: %v", err), true)
		return fmt.Errorf("copy to clipboard: %w", err)
	}
	v.setStatus("Copied to clipboard.", false)
	return nil
}

// Download saves the active representation through sink and returns its path
func (v *ViewState) Download(ctx context.Context, sink ports.FileSink) (string, error) {
	name, text, err := v.DownloadSource()
	if err != nil {
		v.setStatus("Nothing to download.", true)
		return "", err
	}
	path, err := sink.Save(ctx, name, []byte(text))
	if err != nil {
		v.setStatus(fmt.Sprintf("Download failed: %v", err), true)
		return "", fmt.Errorf("save %s: %w", name, err)
	}
	v.setStatus("Downloaded.", false)
	return path, nil
}

// Clear drops the current output. The active tab is kept.
func (v *ViewState) Clear() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.output = nil
	v.videoID = ""
	v.status = "Cleared."
	v.failed = false
}

func (v *ViewState) setStatus(msg string, isError bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.status = msg
	v.failed = isError
}

func sourceFor(tab Tab, out domain.RenderedOutput) string {
	switch tab {
	case TabSRT:
		return out.SRT
	case TabTimestamps:
		return out.TimestampDocument()
	default:
		return out.PlainText
	}
}
