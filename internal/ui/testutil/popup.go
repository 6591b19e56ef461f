package testutil

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/tunefetch/internal/ui/popup"
)

// PopupHarness drives a popup.Popup the way the popup manager does and
// records every command it returns.
type PopupHarness struct {
	popup popup.Popup
	cmds  []tea.Cmd
}

// NewPopupHarness wraps p and records its Init command.
func NewPopupHarness(p popup.Popup) *PopupHarness {
	h := &PopupHarness{popup: p}
	h.record(p.Init())
	return h
}

func (h *PopupHarness) record(cmd tea.Cmd) tea.Cmd {
	if cmd != nil {
		h.cmds = append(h.cmds, cmd)
	}
	return cmd
}

// Popup returns the wrapped popup.
func (h *PopupHarness) Popup() popup.Popup { return h.popup }

// SetSize resizes the popup.
func (h *PopupHarness) SetSize(width, height int) { h.popup.SetSize(width, height) }

// View renders the popup.
func (h *PopupHarness) View() string { return h.popup.View() }

// SendMsg delivers msg and returns the popup's command.
func (h *PopupHarness) SendMsg(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	h.popup, cmd = h.popup.Update(msg)
	return h.record(cmd)
}

// SendKey types key as runes.
func (h *PopupHarness) SendKey(key string) tea.Cmd {
	return h.SendMsg(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)})
}

func (h *PopupHarness) sendType(t tea.KeyType) tea.Cmd {
	return h.SendMsg(tea.KeyMsg{Type: t})
}

func (h *PopupHarness) SendEnter() tea.Cmd  { return h.sendType(tea.KeyEnter) }
func (h *PopupHarness) SendEscape() tea.Cmd { return h.sendType(tea.KeyEscape) }
func (h *PopupHarness) SendUp() tea.Cmd     { return h.sendType(tea.KeyUp) }
func (h *PopupHarness) SendDown() tea.Cmd   { return h.sendType(tea.KeyDown) }
func (h *PopupHarness) SendTab() tea.Cmd    { return h.sendType(tea.KeyTab) }

// Commands returns the commands recorded since the last ClearCommands.
func (h *PopupHarness) Commands() []tea.Cmd { return h.cmds }

// LastCommand returns the most recent recorded command, or nil.
func (h *PopupHarness) LastCommand() tea.Cmd {
	if len(h.cmds) == 0 {
		return nil
	}
	return h.cmds[len(h.cmds)-1]
}

// ClearCommands forgets the recorded commands.
func (h *PopupHarness) ClearCommands() { h.cmds = nil }

// ExecuteCmd runs cmd, returning nil for a nil command.
func ExecuteCmd(cmd tea.Cmd) tea.Msg {
	if cmd == nil {
		return nil
	}
	return cmd()
}

// ExecuteAndSend runs cmd and feeds its message back into the popup.
func (h *PopupHarness) ExecuteAndSend(cmd tea.Cmd) (tea.Msg, tea.Cmd) {
	msg := ExecuteCmd(cmd)
	if msg == nil {
		return nil, nil
	}
	return msg, h.SendMsg(msg)
}

// ViewContains reports whether the plain view contains substr.
func (h *PopupHarness) ViewContains(substr string) bool {
	return strings.Contains(StripANSI(h.View()), substr)
}

// AssertViewContains returns a failure message, or "" when the view
// contains substr.
func (h *PopupHarness) AssertViewContains(substr string) string {
	return assertContains(h.View(), substr, true)
}

// AssertViewNotContains returns a failure message, or "" when the view
// does not contain substr.
func (h *PopupHarness) AssertViewNotContains(substr string) string {
	return assertContains(h.View(), substr, false)
}
