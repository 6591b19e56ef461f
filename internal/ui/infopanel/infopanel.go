// Package infopanel is a scrollable text popup for token details, new
// credentials, renewal instructions and the download history.
package infopanel

import (
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/llehouerou/tunefetch/internal/keymap"
	"github.com/llehouerou/tunefetch/internal/ui"
	"github.com/llehouerou/tunefetch/internal/ui/popup"
	"github.com/llehouerou/tunefetch/internal/ui/styles"
)

// Compile-time check that Model implements popup.Popup.
var _ popup.Popup = (*Model)(nil)

// Kind selects the panel's title and available actions.
type Kind int

const (
	KindTokenDetails Kind = iota
	KindCredentials
	KindInstructions
	KindHistory
)

// chrome is the vertical space taken by title, footer, popup border and
// margins around the viewport.
const chrome = 8

// Model holds the state for the info panel.
type Model struct {
	ui.Base
	kind      Kind
	title     string
	body      string
	backup    string
	timestamp string
	note      string

	viewport viewport.Model
	resolver *keymap.Resolver
}

// New creates an empty info panel.
func New() *Model {
	return &Model{
		viewport: viewport.New(0, 0),
		resolver: keymap.NewResolver(keymap.ByContext("instructions")),
	}
}

// Show fills the panel with body. backup is only used by
// KindInstructions and enables the save action when non-empty.
func (m *Model) Show(kind Kind, title, body, backup, timestamp string) {
	m.kind = kind
	m.title = title
	m.body = body
	m.backup = backup
	m.timestamp = timestamp
	m.note = ""
	m.viewport.SetContent(body)
	if m.Width() > 0 {
		m.SetSize(m.Width(), m.Height())
	}
	m.viewport.GotoTop()
}

// Kind returns the kind of content shown.
func (m *Model) Kind() Kind {
	return m.kind
}

// SetNote shows a short status line (e.g. "Copied to clipboard").
func (m *Model) SetNote(note string) {
	m.note = note
}

// Note returns the status line set by SetNote.
func (m *Model) Note() string {
	return m.note
}

// SetSize implements popup.Popup and sizes the viewport.
func (m *Model) SetSize(width, height int) {
	m.Base.SetSize(width, height)
	contentWidth := 0
	for line := range strings.SplitSeq(m.body, "\n") {
		contentWidth = max(contentWidth, lipgloss.Width(line))
	}
	m.viewport.Width = max(min(contentWidth, width-8), 10)
	m.viewport.Height = max(min(strings.Count(m.body, "\n")+1, height-chrome), 3)
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

	switch m.resolver.Resolve(keyMsg.String()) {
	case keymap.ActionClosePanel:
		return m, func() tea.Msg { return ActionMsg(Close{}) }
	case keymap.ActionCopyInstructions:
		text := m.body
		return m, func() tea.Msg { return ActionMsg(Copy{Text: text}) }
	case keymap.ActionSaveBackup:
		if m.kind != KindInstructions || m.backup == "" {
			return m, nil
		}
		data, ts := m.backup, m.timestamp
		return m, func() tea.Msg { return ActionMsg(SaveBackup{Data: data, Timestamp: ts}) }
	}

	switch keyMsg.String() {
	case "g", "home":
		m.viewport.GotoTop()
		return m, nil
	case "G", "end":
		m.viewport.GotoBottom()
		return m, nil
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// View implements popup.Popup.
func (m *Model) View() string {
	if m.Width() == 0 || m.Height() == 0 {
		return ""
	}
	t := styles.T()

	var b strings.Builder
	b.WriteString(t.S().Title.Render(m.title))
	b.WriteString("\n\n")
	b.WriteString(m.viewport.View())
	b.WriteString("\n\n")
	if m.note != "" {
		b.WriteString(t.S().Success.Render(m.note))
		b.WriteString("\n")
	}
	b.WriteString(t.S().Subtle.Render(m.footer()))
	return b.String()
}

func (m *Model) footer() string {
	parts := []string{"c copy"}
	if m.kind == KindInstructions && m.backup != "" {
		parts = append(parts, "s save backup")
	}
	if !m.viewport.AtTop() || !m.viewport.AtBottom() {
		parts = append(parts, "j/k scroll")
	}
	parts = append(parts, "esc close")
	return strings.Join(parts, " · ")
}
