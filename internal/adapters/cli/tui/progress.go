package tui

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/lipgloss"
)

// StepStatus represents the state of a progress step
type StepStatus int

const (
	StepPending StepStatus = iota
	StepRunning
	StepComplete
	StepError
)

var (
	doneMark = lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Render("✓")
	failMark = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Render("✗")
)

// ProgressStep represents a single step in the progress
type ProgressStep struct {
	Name    string
	Status  StepStatus
	Total   int64 // bytes, for download steps
	Current int64
	Error   string
}

// ProgressDisplay draws multi-step progress to a terminal stream. Output goes
// to w so that stdout stays free for transcript text.
type ProgressDisplay struct {
	w          io.Writer
	steps      []ProgressStep
	spinnerIdx int
	quiet      bool
	mu         sync.Mutex
	lastRender time.Time
	rendered   bool
}

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// NewProgressDisplay creates a new progress display
func NewProgressDisplay(w io.Writer, steps []string, quiet bool) *ProgressDisplay {
	pd := &ProgressDisplay{
		w:     w,
		steps: make([]ProgressStep, len(steps)),
		quiet: quiet,
	}
	for i, name := range steps {
		pd.steps[i] = ProgressStep{Name: name, Status: StepPending}
	}
	return pd
}

func (p *ProgressDisplay) set(index int, fn func(*ProgressStep)) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if index >= 0 && index < len(p.steps) {
		fn(&p.steps[index])
		p.render()
	}
}

// StartStep marks a step as running
func (p *ProgressDisplay) StartStep(index int) {
	p.set(index, func(s *ProgressStep) { s.Status = StepRunning })
}

// CompleteStep marks a step as complete
func (p *ProgressDisplay) CompleteStep(index int) {
	p.set(index, func(s *ProgressStep) { s.Status = StepComplete })
}

// FailStep marks a step as failed
func (p *ProgressDisplay) FailStep(index int, err string) {
	p.set(index, func(s *ProgressStep) {
		s.Status = StepError
		s.Error = err
	})
}

// UpdateProgress updates download progress for a step
func (p *ProgressDisplay) UpdateProgress(index int, current, total int64) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if index < 0 || index >= len(p.steps) {
		return
	}
	p.steps[index].Current = current
	p.steps[index].Total = total
	// Throttle renders to avoid flickering
	if time.Since(p.lastRender) > 100*time.Millisecond {
		p.render()
	}
}

// Tick advances the spinner animation
func (p *ProgressDisplay) Tick() {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.spinnerIdx = (p.spinnerIdx + 1) % len(spinnerFrames)
	p.render()
}

func (p *ProgressDisplay) render() {
	if p.quiet {
		return
	}
	p.lastRender = time.Now()

	if p.rendered {
		fmt.Fprintf(p.w, "\033[%dA\033[J", len(p.steps))
	}

	total := len(p.steps)
	for i, step := range p.steps {
		fmt.Fprintf(p.w, "[%d/%d] %s... %s\n", i+1, total, step.Name, p.statusText(step))
	}
	p.rendered = true
}

func (p *ProgressDisplay) statusText(step ProgressStep) string {
	switch step.Status {
	case StepRunning:
		if step.Total > 0 {
			pct := float64(step.Current) / float64(step.Total) * 100
			return fmt.Sprintf("%.1f%% (%s / %s)", pct, FormatBytes(step.Current), FormatBytes(step.Total))
		}
		return spinnerFrames[p.spinnerIdx]
	case StepComplete:
		return doneMark
	case StepError:
		return failMark + " " + step.Error
	default:
		return ""
	}
}

// Complete prints the final success message
func (p *ProgressDisplay) Complete(outputs map[string]string) {
	if p.quiet || len(outputs) == 0 {
		return
	}

	fmt.Fprintln(p.w)
	fmt.Fprintln(p.w, doneMark+" Complete!")
	for label, path := range outputs {
		fmt.Fprintf(p.w, "  %s: %s\n", label, path)
	}
}

// StartSpinner starts a goroutine that ticks the spinner until done is closed
func (p *ProgressDisplay) StartSpinner() chan struct{} {
	done := make(chan struct{})
	go func() {
		ticker := time.NewTicker(100 * time.Millisecond)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				p.Tick()
			}
		}
	}()
	return done
}
