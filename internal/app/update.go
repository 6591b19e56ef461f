// internal/app/update.go
package app

import (
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/llehouerou/tunefetch/internal/ui/action"
)

// Update handles messages and returns updated model and commands.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		m.ResizeComponents()
		return m, nil

	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case action.Msg:
		return m.handleUIAction(msg)

	case SearchMessage:
		return m.handleSearchMessage(msg)

	case DownloadMessage:
		return m.handleDownloadMessage(msg)

	case PreviewMessage:
		return m.handlePreviewMessage(msg)

	case TokenMessage:
		return m.handleTokenMessage(msg)

	case MPRISCommandMsg:
		return m.handleMPRISCommand(msg)

	case FlashTickMsg:
		return m.handleFlashTick(msg)

	case NotificationClearMsg:
		return m.handleNotificationClear(msg)

	case StderrMsg:
		m.log.Warn("captured stderr", zap.String("line", msg.Line))
		return m, WatchStderr()

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.Results, cmd = m.Results.Update(msg)
		return m, cmd
	}

	// Cursor blink and other field messages
	if m.SearchBar.Focused() {
		var cmd tea.Cmd
		m.SearchBar, cmd = m.SearchBar.Update(msg)
		return m, cmd
	}
	return m, nil
}
