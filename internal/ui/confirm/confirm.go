// Package confirm provides a yes/no confirmation popup component.
package confirm

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/tunefetch/internal/ui"
	"github.com/llehouerou/tunefetch/internal/ui/popup"
	"github.com/llehouerou/tunefetch/internal/ui/styles"
)

// Compile-time check that Model implements popup.Popup.
var _ popup.Popup = (*Model)(nil)

// Model is a yes/no confirmation popup.
type Model struct {
	ui.Base
	title   string
	message string
	context any
	active  bool
}

// New creates a new confirmation model.
func New() Model {
	return Model{}
}

// Show displays the confirmation popup. The context is handed back
// unchanged in the Result.
func (m *Model) Show(title, message string, context any, width, height int) {
	m.title = title
	m.message = message
	m.context = context
	m.SetSize(width, height)
	m.active = true
}

// Reset clears the confirmation state.
func (m *Model) Reset() {
	m.title = ""
	m.message = ""
	m.context = nil
	m.active = false
}

// Active returns whether the confirmation is currently shown.
func (m Model) Active() bool {
	return m.active
}

// Init implements popup.Popup.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements popup.Popup.
func (m *Model) Update(msg tea.Msg) (popup.Popup, tea.Cmd) {
	if !m.active {
		return m, nil
	}

	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch keyMsg.String() {
	case "enter", "y", "Y":
		return m, m.resolve(true)
	case "esc", "n", "N", "q":
		return m, m.resolve(false)
	}
	return m, nil
}

func (m *Model) resolve(confirmed bool) tea.Cmd {
	m.active = false
	ctx := m.context
	return func() tea.Msg {
		return ActionMsg(Result{Confirmed: confirmed, Context: ctx})
	}
}

// View implements popup.Popup.
func (m *Model) View() string {
	if !m.active || m.Width() == 0 || m.Height() == 0 {
		return ""
	}

	t := styles.T()
	title := t.S().Active.Render(m.title)
	message := t.S().Base.Render(m.message)
	hint := t.S().Subtle.Render("Enter/Y: confirm, Esc/N: cancel")
	return title + "\n\n" + message + "\n\n" + hint
}
