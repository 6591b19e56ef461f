// Package downloadmodal renders the download flow as a popup.
package downloadmodal

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/llehouerou/tunefetch/internal/download"
	"github.com/llehouerou/tunefetch/internal/icons"
	"github.com/llehouerou/tunefetch/internal/ui"
	"github.com/llehouerou/tunefetch/internal/ui/popup"
	"github.com/llehouerou/tunefetch/internal/ui/render"
	"github.com/llehouerou/tunefetch/internal/ui/styles"
)

// Compile-time check that Model implements popup.Popup.
var _ popup.Popup = (*Model)(nil)

// barWidth is the width of the modal progress bar.
const barWidth = 40

// State is a snapshot of the flow for display.
type State struct {
	Phase    download.State
	Title    string
	Artist   string
	Quality  string
	Progress int // 0..100
	Text     string
	IsError  bool
	Filename string
	ProxyURL string
}

// FromFlow captures the flow's current display state.
func FromFlow(f *download.Flow) State {
	return State{
		Phase:    f.State(),
		Title:    f.Title(),
		Artist:   f.Artist(),
		Quality:  f.QualityLabel(),
		Progress: f.Progress(),
		Text:     f.Text(),
		IsError:  f.IsError(),
		Filename: f.Filename(),
		ProxyURL: f.ProxyURL(),
	}
}

// Model is the download modal.
type Model struct {
	ui.Base
	state State
}

// New creates an empty modal.
func New() *Model {
	return &Model{}
}

// SetState replaces the displayed snapshot.
func (m *Model) SetState(s State) {
	m.state = s
}

// State returns the displayed snapshot.
func (m *Model) State() State {
	return m.state
}

// Init implements popup.Popup.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements popup.Popup.
func (m *Model) Update(msg tea.Msg) (popup.Popup, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch keyMsg.String() {
	case "esc", "q", "enter":
		return m, func() tea.Msg { return ActionMsg(Close{}) }
	case "y":
		if m.state.Phase == download.StateLinkReady && m.state.ProxyURL != "" {
			url := m.state.ProxyURL
			return m, func() tea.Msg { return ActionMsg(CopyLink{URL: url}) }
		}
	}
	return m, nil
}

// View implements popup.Popup.
func (m *Model) View() string {
	if m.Width() == 0 || m.Height() == 0 {
		return ""
	}
	t := styles.T()
	s := m.state
	width := max(min(m.Width()-8, 60), 20)

	var b strings.Builder
	b.WriteString(t.S().Title.Render(render.Truncate(s.Title, width)))
	b.WriteString("\n")
	b.WriteString(t.S().Muted.Render(render.Truncate(s.Artist, width)))
	b.WriteString("\n")
	b.WriteString(t.S().Badge.Render(s.Quality))
	b.WriteString("\n\n")
	b.WriteString(progressBar(s.Progress, min(barWidth, width-5), s.IsError))
	b.WriteString("\n")

	status := s.Text
	switch {
	case s.IsError:
		b.WriteString(t.S().Error.Render(icons.Failed() + " " + render.Truncate(status, width-2)))
	case s.Phase == download.StateLinkReady:
		b.WriteString(t.S().Success.Render(icons.Download() + " " + render.Truncate(status, width-2)))
	default:
		b.WriteString(t.S().Base.Render(render.Truncate(status, width)))
	}

	if s.Filename != "" {
		b.WriteString("\n")
		b.WriteString(t.S().Subtle.Render(render.Truncate(s.Filename, width)))
	}

	b.WriteString("\n\n")
	hint := "esc close"
	if s.Phase == download.StateLinkReady {
		hint = "y copy link · esc close"
	}
	b.WriteString(t.S().Subtle.Render(hint))
	return b.String()
}

func progressBar(pct, width int, failed bool) string {
	t := styles.T()
	width = max(width, 5)
	pct = min(max(pct, 0), 100)
	filled := width * pct / 100
	fill := lipgloss.NewStyle().Foreground(t.Primary)
	if failed {
		fill = t.S().Error
	}
	return fill.Render(strings.Repeat("█", filled)) +
		t.S().Subtle.Render(strings.Repeat("░", width-filled)) +
		t.S().Muted.Render(fmt.Sprintf(" %3d%%", pct))
}
