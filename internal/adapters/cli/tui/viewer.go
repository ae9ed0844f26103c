package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/iandelaney/youtran/internal/application"
	"github.com/iandelaney/youtran/internal/domain"
	"github.com/iandelaney/youtran/internal/ports"
)

var (
	activeTabStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212")).Underline(true)
	inactiveTabStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	okStyle          = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	errorStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
)

var tabLabels = map[application.Tab]string{
	application.TabPlain:      "Plain text",
	application.TabTimestamps: "Timestamps",
	application.TabSRT:        "SRT",
}

const (
	headerLines = 3
	footerLines = 3
)

// ViewerOptions configures the transcript viewer
type ViewerOptions struct {
	Reference string // prefilled reference
	Lang      string
	Clipboard ports.Clipboard
	Sink      ports.FileSink
}

type fetchDoneMsg struct{ err error }

type actionDoneMsg struct {
	path string
	err  error
}

// ViewerModel is the bubbletea model for the interactive transcript viewer.
// All transcript state lives in the ViewState; the model only draws it.
type ViewerModel struct {
	ctx   context.Context
	state *application.ViewState
	opts  ViewerOptions

	ref      textinput.Model
	lang     textinput.Model
	spinner  spinner.Model
	viewport viewport.Model

	fetching bool
	width    int
	height   int
}

// NewViewerModel creates a viewer over state
func NewViewerModel(ctx context.Context, state *application.ViewState, opts ViewerOptions) ViewerModel {
	ref := textinput.New()
	ref.Placeholder = "YouTube URL or video ID"
	ref.Prompt = "URL: "
	ref.Width = 50
	ref.SetValue(opts.Reference)
	ref.Focus()

	lang := textinput.New()
	lang.Prompt = "Lang: "
	lang.CharLimit = 16
	lang.Width = 8
	lang.SetValue(opts.Lang)

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("212"))

	m := ViewerModel{
		ctx:      ctx,
		state:    state,
		opts:     opts,
		ref:      ref,
		lang:     lang,
		spinner:  sp,
		viewport: viewport.New(80, 20),
		width:    80,
		height:   20 + headerLines + footerLines,
	}
	m.refresh()
	return m
}

func (m ViewerModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m ViewerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.viewport.Width = msg.Width
		m.viewport.Height = max(msg.Height-headerLines-footerLines, 1)
		m.refresh()
		return m, nil

	case fetchDoneMsg:
		m.fetching = false
		m.viewport.GotoTop()
		m.refresh()
		return m, nil

	case actionDoneMsg:
		m.refresh()
		return m, nil

	case spinner.TickMsg:
		if !m.fetching {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m ViewerModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "esc":
		return m, tea.Quit

	case "enter":
		if m.fetching {
			return m, nil
		}
		m.fetching = true
		return m, tea.Batch(m.fetchCmd(m.ref.Value(), m.lang.Value()), m.spinner.Tick)

	case "tab":
		if m.ref.Focused() {
			m.ref.Blur()
			return m, m.lang.Focus()
		}
		m.lang.Blur()
		return m, m.ref.Focus()

	case "f1":
		m.selectTab(application.TabPlain)
		return m, nil
	case "f2":
		m.selectTab(application.TabTimestamps)
		return m, nil
	case "f3":
		m.selectTab(application.TabSRT)
		return m, nil
	case "ctrl+t":
		m.selectTab(nextTab(m.state.ActiveTab()))
		return m, nil

	case "ctrl+y":
		return m, m.copyCmd()
	case "ctrl+s":
		return m, m.downloadCmd()
	case "ctrl+l":
		m.state.Clear()
		m.ref.Reset()
		m.refresh()
		return m, nil

	case "up", "down", "pgup", "pgdown":
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	if m.ref.Focused() {
		m.ref, cmd = m.ref.Update(msg)
	} else {
		m.lang, cmd = m.lang.Update(msg)
	}
	return m, cmd
}

func (m *ViewerModel) selectTab(tab application.Tab) {
	m.state.SelectTab(tab)
	m.viewport.GotoTop()
	m.refresh()
}

func nextTab(current application.Tab) application.Tab {
	tabs := application.Tabs()
	for i, t := range tabs {
		if t == current {
			return tabs[(i+1)%len(tabs)]
		}
	}
	return tabs[0]
}

func (m ViewerModel) fetchCmd(ref, lang string) tea.Cmd {
	state, ctx := m.state, m.ctx
	return func() tea.Msg {
		return fetchDoneMsg{err: state.Fetch(ctx, ref, lang)}
	}
}

func (m ViewerModel) copyCmd() tea.Cmd {
	state, cb := m.state, m.opts.Clipboard
	return func() tea.Msg {
		if cb == nil {
			return actionDoneMsg{err: errors.New("no clipboard")}
		}
		return actionDoneMsg{err: state.Copy(cb)}
	}
}

func (m ViewerModel) downloadCmd() tea.Cmd {
	state, sink, ctx := m.state, m.opts.Sink, m.ctx
	return func() tea.Msg {
		if sink == nil {
			return actionDoneMsg{err: errors.New("no download directory")}
		}
		path, err := state.Download(ctx, sink)
		return actionDoneMsg{path: path, err: err}
	}
}

// refresh redraws the active tab into the viewport
func (m *ViewerModel) refresh() {
	m.viewport.SetContent(tabContent(m.state.Snapshot(), m.viewport.Width))
}

func tabContent(snap application.Snapshot, width int) string {
	if snap.Output == nil {
		return hintStyle.Render("Paste a YouTube URL or video ID and press enter.")
	}
	switch snap.Tab {
	case application.TabTimestamps:
		return FormatRowTable(snap.Output.Rows)
	case application.TabSRT:
		return snap.Output.SRT
	default:
		return lipgloss.NewStyle().Width(max(width, 1)).Render(snap.Output.PlainText)
	}
}

func (m ViewerModel) View() string {
	snap := m.state.Snapshot()

	var b strings.Builder
	b.WriteString(m.ref.View() + "  " + m.lang.View() + "\n")
	b.WriteString(renderTabs(snap.Tab) + "\n\n")
	b.WriteString(m.viewport.View() + "\n\n")
	b.WriteString(m.statusLine(snap) + "\n")
	b.WriteString(hintStyle.Render("enter fetch · tab switch field · F1-F3/ctrl+t tabs · ctrl+y copy · ctrl+s download · ctrl+l clear · esc quit"))
	return b.String()
}

func renderTabs(active application.Tab) string {
	parts := make([]string, 0, len(tabLabels))
	for _, t := range application.Tabs() {
		style := inactiveTabStyle
		if t == active {
			style = activeTabStyle
		}
		parts = append(parts, style.Render(tabLabels[t]))
	}
	return strings.Join(parts, "   ")
}

func (m ViewerModel) statusLine(snap application.Snapshot) string {
	var indicator string
	switch {
	case m.fetching:
		indicator = m.spinner.View()
	case snap.Failed:
		indicator = errorStyle.Render("Error")
	default:
		indicator = okStyle.Render("OK")
	}

	line := fmt.Sprintf("%s  %s", indicator, snap.Status)
	if snap.VideoID != "" {
		line += "  " + hintStyle.Render(domain.WatchURL(snap.VideoID))
	}
	return line
}

// RunViewer runs the interactive viewer until the user quits
func RunViewer(ctx context.Context, state *application.ViewState, opts ViewerOptions) error {
	p := tea.NewProgram(NewViewerModel(ctx, state, opts), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}
