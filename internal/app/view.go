// internal/app/view.go
package app

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/llehouerou/tunefetch/internal/tokenstatus"
	"github.com/llehouerou/tunefetch/internal/ui/headerbar"
	"github.com/llehouerou/tunefetch/internal/ui/jobbar"
	"github.com/llehouerou/tunefetch/internal/ui/playerbar"
	"github.com/llehouerou/tunefetch/internal/ui/render"
	"github.com/llehouerou/tunefetch/internal/ui/styles"
)

// View renders the application UI.
func (m Model) View() string {
	if m.Width == 0 || m.Height == 0 {
		return ""
	}

	header := headerbar.Render(headerbar.State{
		Tab:     m.Search.Tab(),
		Quality: m.Quality.Label(),
		Token:   m.Token,
		Renewal: renewalNote(m.Renewal),
	}, m.Width)

	view := header + "\n" + m.SearchBar.View() + "\n" + m.Results.View()

	if ps := m.playerBarState(); ps.Visible() {
		view += "\n" + playerbar.Render(ps, m.Width)
	}

	if m.Jobs.HasActiveJobs() {
		view += "\n" + jobbar.Render(m.Jobs, m.Width)
	}

	if len(m.Notifications) > 0 {
		view += "\n" + m.renderNotifications()
	}

	view = m.Popups.RenderOverlay(view)

	// Ensure view is exactly terminal height (pad or truncate if needed)
	return enforceHeight(view, m.Height)
}

// renewalNote is the short header text for the renewal status.
func renewalNote(r tokenstatus.Renewal) string {
	switch {
	case !r.Known:
		return ""
	case r.NeedsRenewal:
		return fmt.Sprintf("renew in %dd", r.DaysRemaining)
	case r.Vercel:
		return "auto-renew (hosted)"
	default:
		return "auto-renew"
	}
}

// enforceHeight ensures the view has exactly the specified number of lines.
func enforceHeight(view string, targetHeight int) string {
	lines := splitLines(view)
	currentHeight := len(lines)

	if currentHeight == targetHeight {
		return view
	}

	if currentHeight < targetHeight {
		for i := currentHeight; i < targetHeight; i++ {
			lines = append(lines, "")
		}
	} else {
		lines = lines[:targetHeight]
	}

	return strings.Join(lines, "\n")
}

// splitLines splits a string into lines without using strings.Split.
func splitLines(s string) []string {
	var lines []string
	start := 0
	for i := range len(s) {
		if s[i] == '\n' {
			lines = append(lines, s[start:i])
			start = i + 1
		}
	}
	if start < len(s) {
		lines = append(lines, s[start:])
	}
	return lines
}

// renderNotifications renders the banner stack.
func (m Model) renderNotifications() string {
	if len(m.Notifications) == 0 {
		return ""
	}

	t := styles.T()
	innerWidth := m.Width - 2 // Account for borders

	okStyle := lipgloss.NewStyle().Foreground(t.Primary)
	msgStyle := lipgloss.NewStyle().Foreground(t.FgBase)

	lines := make([]string, 0, len(m.Notifications))
	for _, n := range m.Notifications {
		mark := okStyle.Render("✓")
		if n.IsError {
			mark = t.S().Error.Render("✗")
		}
		line := mark + " " + msgStyle.Render(n.Message)
		line = render.TruncateAndPad(line, innerWidth)
		lines = append(lines, line)
	}

	content := strings.Join(lines, "\n")
	return styles.PanelStyle(false).Width(innerWidth).Render(content)
}
