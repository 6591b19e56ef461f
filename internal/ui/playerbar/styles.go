package playerbar

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/llehouerou/tunefetch/internal/ui/styles"
)

func barStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(styles.T().Border)
}

func titleStyle() lipgloss.Style        { return styles.T().S().Title }
func artistStyle() lipgloss.Style       { return styles.T().S().Muted }
func progressTimeStyle() lipgloss.Style { return styles.T().S().Muted }
func progressBarFilled() lipgloss.Style { return lipgloss.NewStyle().Foreground(styles.T().Primary) }
func progressBarEmpty() lipgloss.Style  { return styles.T().S().Subtle }
func statusStyle() lipgloss.Style       { return styles.T().S().Active }
func errorStyle() lipgloss.Style        { return styles.T().S().Error }
func loadingStyle() lipgloss.Style      { return styles.T().S().Warning }
