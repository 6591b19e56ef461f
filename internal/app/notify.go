// internal/app/notify.go
package app

import (
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/llehouerou/tunefetch/internal/notify"
)

// maxNotifications caps the banner stack; the oldest is dropped first.
const maxNotifications = 3

// banner shows a temporary message under the results and returns the
// command that clears it.
func (m *Model) banner(message string, isError bool) tea.Cmd {
	m.nextNotificationID++
	id := m.nextNotificationID
	m.Notifications = append(m.Notifications, Notification{ID: id, Message: message, IsError: isError})
	if len(m.Notifications) > maxNotifications {
		m.Notifications = m.Notifications[len(m.Notifications)-maxNotifications:]
	}
	m.ResizeComponents()
	return NotificationClearCmd(id)
}

func (m *Model) info(message string) tea.Cmd {
	return m.banner(message, false)
}

func (m *Model) fail(message string) tea.Cmd {
	return m.banner(message, true)
}

func (m Model) handleNotificationClear(msg NotificationClearMsg) (tea.Model, tea.Cmd) {
	for i, n := range m.Notifications {
		if n.ID == msg.ID {
			m.Notifications = append(m.Notifications[:i:i], m.Notifications[i+1:]...)
			m.ResizeComponents()
			break
		}
	}
	return m, nil
}

// desktopNotify sends n to the desktop when notifications are enabled.
// Failures are logged and otherwise ignored.
func (m *Model) desktopNotify(n notify.Notification) {
	if m.Notifier == nil || !*m.cfg.GetNotificationsConfig().Enabled {
		return
	}
	if _, err := m.Notifier.Notify(n); err != nil {
		m.log.Debug("desktop notification failed", zap.String("title", n.Title), zap.Error(err))
	}
}

func (m Model) notifyTimeout() int32 {
	return m.cfg.GetNotificationsConfig().Timeout
}
