// Package headerbar renders the top line: provider tabs on the left,
// quality and token status on the right.
package headerbar

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/llehouerou/tunefetch/internal/search"
	"github.com/llehouerou/tunefetch/internal/tokenstatus"
	"github.com/llehouerou/tunefetch/internal/ui/render"
	"github.com/llehouerou/tunefetch/internal/ui/styles"
)

// Height is the fixed height of the header bar (single line).
const Height = 1

// tab represents a header bar tab.
type tab struct {
	key string
	tab search.Tab
}

var tabs = []tab{
	{"F1", search.TabQobuz},
	{"F2", search.TabSpotify},
}

// State is everything the header shows.
type State struct {
	Tab     search.Tab
	Quality string // quality label, e.g. "FLAC 16-bit/44.1kHz"
	Token   tokenstatus.Status
	Renewal string // short renewal note, empty when unknown
}

func activeStyle() lipgloss.Style   { return styles.T().S().Active }
func inactiveStyle() lipgloss.Style { return styles.T().S().Muted }
func separatorStyle() lipgloss.Style {
	return styles.T().S().Subtle
}

func tokenStyle(st tokenstatus.Status) lipgloss.Style {
	s := styles.T().S()
	switch st.Level {
	case tokenstatus.LevelValid:
		return s.Success
	case tokenstatus.LevelWarning:
		if st.Urgent {
			return s.Error
		}
		return s.Warning
	case tokenstatus.LevelExpired:
		return s.Error.Bold(true)
	default:
		return s.Muted
	}
}

// Render returns the header bar string for the given width.
func Render(s State, width int) string {
	if width < 20 {
		return ""
	}

	sep := separatorStyle().Render(" │ ")

	parts := make([]string, 0, len(tabs))
	for _, t := range tabs {
		style := inactiveStyle()
		if t.tab == s.Tab {
			style = activeStyle()
		}
		parts = append(parts, style.Render(t.key+" "+t.tab.Label()))
	}
	left := strings.Join(parts, sep)

	var right []string
	if s.Quality != "" {
		right = append(right, styles.T().S().Badge.Render(s.Quality))
	}
	if s.Renewal != "" {
		right = append(right, styles.T().S().Muted.Render(s.Renewal))
	}
	token := s.Token
	if token.Text == "" {
		token = tokenstatus.Checking
	}
	right = append(right, tokenStyle(token).Render(token.Icon()+" "+token.Text))
	rightStr := strings.Join(right, sep)

	gap := width - lipgloss.Width(left) - lipgloss.Width(rightStr) - 2
	if gap < 1 {
		// Token text goes first, then the rest of the right side.
		avail := max(width-lipgloss.Width(left)-3, 0)
		rightStr = tokenStyle(token).Render(render.TruncateEllipsis(token.Icon()+" "+token.Text, avail))
		gap = max(width-lipgloss.Width(left)-lipgloss.Width(rightStr)-2, 1)
	}

	return " " + left + strings.Repeat(" ", gap) + rightStr + " "
}
