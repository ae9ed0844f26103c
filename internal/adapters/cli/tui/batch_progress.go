package tui

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"time"
)

// maxShownResults bounds the result lines redrawn under the progress bar
const maxShownResults = 10

// renderProgressBar creates a text progress bar like [=====>    ]
func renderProgressBar(current, total, width int) string {
	if total <= 0 || current <= 0 {
		return "[" + strings.Repeat(" ", width) + "]"
	}
	if current >= total {
		return "[" + strings.Repeat("=", width) + "]"
	}

	filled := min(current*width/total, width-1)
	return "[" + strings.Repeat("=", filled) + ">" + strings.Repeat(" ", width-filled-1) + "]"
}

// BatchResult represents the result of fetching one transcript
type BatchResult struct {
	Reference string
	Path      string
	ErrMsg    string
	Duration  time.Duration
}

// Success reports whether the transcript was written
func (r BatchResult) Success() bool {
	return r.ErrMsg == ""
}

// BatchProgress manages batch processing progress display
type BatchProgress struct {
	w         io.Writer
	total     int
	results   []BatchResult
	failures  []BatchResult
	quiet     bool
	mu        sync.Mutex
	lastLines int
}

// NewBatchProgress creates a new batch progress display
func NewBatchProgress(w io.Writer, total int, quiet bool) *BatchProgress {
	return &BatchProgress{
		w:     w,
		total: max(total, 0),
		quiet: quiet,
	}
}

// AddResult records a finished item and updates the display
func (bp *BatchProgress) AddResult(result BatchResult) {
	bp.mu.Lock()
	defer bp.mu.Unlock()

	bp.results = append(bp.results, result)
	if !result.Success() {
		bp.failures = append(bp.failures, result)
	}
	bp.render()
}

func (bp *BatchProgress) render() {
	if bp.quiet {
		return
	}

	if bp.lastLines > 0 {
		fmt.Fprintf(bp.w, "\033[%dA\033[J", bp.lastLines)
	}

	done := len(bp.results)
	percent := 0
	if bp.total > 0 {
		percent = done * 100 / bp.total
	}
	fmt.Fprintf(bp.w, "Fetching %d/%d transcripts %s %d%%\n",
		done, bp.total, renderProgressBar(done, bp.total, 20), percent)

	shown := bp.results[max(len(bp.results)-maxShownResults, 0):]
	for _, r := range shown {
		if r.Success() {
			fmt.Fprintf(bp.w, "%s %s (%.1fs)\n", doneMark, Truncate(r.Reference, 60), r.Duration.Seconds())
		} else {
			fmt.Fprintf(bp.w, "%s %s: %s\n", failMark, Truncate(r.Reference, 60), r.ErrMsg)
		}
	}
	bp.lastLines = 1 + len(shown)
}

// Complete prints the final summary
func (bp *BatchProgress) Complete() {
	if bp.quiet {
		return
	}

	bp.mu.Lock()
	defer bp.mu.Unlock()

	fmt.Fprintln(bp.w)
	fmt.Fprintf(bp.w, "Batch complete: %d/%d succeeded\n", len(bp.results)-len(bp.failures), bp.total)

	if len(bp.failures) > 0 {
		fmt.Fprintln(bp.w, "\nFailures:")
		for _, f := range bp.failures {
			fmt.Fprintf(bp.w, "  %s %s: %s\n", failMark, f.Reference, f.ErrMsg)
		}
	}
}

// SuccessCount returns the number of successful results
func (bp *BatchProgress) SuccessCount() int {
	bp.mu.Lock()
	defer bp.mu.Unlock()
	return len(bp.results) - len(bp.failures)
}

// FailureCount returns the number of failed results
func (bp *BatchProgress) FailureCount() int {
	bp.mu.Lock()
	defer bp.mu.Unlock()
	return len(bp.failures)
}
