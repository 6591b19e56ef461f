package styles

import "github.com/charmbracelet/lipgloss"

// PanelStyle returns the bordered panel style for the focus state.
func PanelStyle(focused bool) lipgloss.Style {
	t := T()
	color := t.Border
	if focused {
		color = t.BorderFocus
	}
	return lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(color)
}

// PanelTitle renders a panel heading. A non-zero flash frame renders it
// with a gradient that fades back to the plain title as frames run out.
func PanelTitle(title string, flash int) string {
	t := T()
	if flash <= 0 {
		return t.S().Title.Render(title)
	}
	if flash%2 == 0 {
		return ApplyBoldGradient(title, t.Primary, t.Secondary)
	}
	return ApplyBoldGradient(title, t.Secondary, t.Primary)
}
