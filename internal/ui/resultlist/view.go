package resultlist

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/llehouerou/tunefetch/internal/icons"
	"github.com/llehouerou/tunefetch/internal/preview"
	"github.com/llehouerou/tunefetch/internal/results"
	"github.com/llehouerou/tunefetch/internal/ui"
	"github.com/llehouerou/tunefetch/internal/ui/layout"
	"github.com/llehouerou/tunefetch/internal/ui/render"
	"github.com/llehouerou/tunefetch/internal/ui/styles"
)

// Row layout widths.
const (
	cursorWidth   = 2
	indexWidth    = 3
	iconWidth     = 2
	durationWidth = 5
)

// View renders the results panel.
func (m Model) View() string {
	if m.Width() == 0 || m.Height() == 0 {
		return ""
	}

	innerWidth := m.Width() - ui.BorderHeight
	listHeight := m.listHeight()

	var b strings.Builder
	b.WriteString(m.renderHeader(innerWidth))
	b.WriteString("\n")
	b.WriteString(render.Separator(innerWidth))
	b.WriteString("\n")
	if m.notice != "" {
		b.WriteString(styles.T().S().Warning.Render(render.TruncateAndPad(m.notice, innerWidth)))
		b.WriteString("\n")
	}
	b.WriteString(m.renderBody(innerWidth, listHeight))
	b.WriteString("\n")
	b.WriteString(m.renderDetail(innerWidth))

	return styles.PanelStyle(m.IsFocused()).
		Width(innerWidth).
		Render(b.String())
}

func (m Model) renderHeader(innerWidth int) string {
	title := styles.PanelTitle("Results", m.flash)
	summary := m.view.Summary.Text
	if !m.hasView {
		summary = ""
	}
	right := styles.T().S().Muted.Render(render.Truncate(summary, max(innerWidth-10, 0)))
	return render.Row(title, right, innerWidth)
}

func (m Model) renderBody(innerWidth, listHeight int) string {
	var lines []string
	switch {
	case m.loading != "":
		lines = append(lines, m.spinner.View()+" "+styles.T().S().Muted.Render(render.Truncate(m.loading, innerWidth-3)))
	case m.errText != "":
		lines = append(lines, styles.T().S().Error.Render(render.Truncate(m.errText, innerWidth)))
	case m.hasView && len(m.view.Items) == 0:
		lines = append(lines, styles.T().S().Muted.Render(m.view.Summary.Text))
	case !m.hasView:
		lines = append(lines, styles.T().S().Subtle.Render("Press / to search"))
	default:
		start, end := m.cursor.VisibleRange(len(m.view.Items), listHeight)
		cols := layout.ResultColumns(innerWidth, m.fixedWidth(start, end))
		for i := start; i < end; i++ {
			lines = append(lines, m.renderRow(m.view.Items[i], i == m.cursor.Pos(), cols, innerWidth))
		}
	}

	for len(lines) < listHeight {
		lines = append(lines, "")
	}
	return strings.Join(lines, "\n")
}

// fixedWidth is the width taken by everything except the text columns
// for the visible rows.
func (m Model) fixedWidth(start, end int) int {
	badgeWidth := 0
	for i := start; i < end; i++ {
		badgeWidth = max(badgeWidth, lipgloss.Width(badges(m.view.Items[i])))
	}
	// four single-space gaps between columns, one more when badges show
	w := cursorWidth + indexWidth + iconWidth + durationWidth + 4 + badgeWidth
	if badgeWidth > 0 {
		w++
	}
	return w
}

func (m Model) renderRow(it results.Item, selected bool, cols layout.Columns, innerWidth int) string {
	mark := "  "
	if selected {
		mark = "▸ "
	}

	parts := []string{
		mark + fmt.Sprintf("%*d", indexWidth-1, it.Index+1),
		render.Pad(m.previewIcon(it.Index), iconWidth),
		render.TruncateAndPad(it.Title, cols.Title),
		render.TruncateAndPad(it.Artist, cols.Artist),
	}
	if cols.Album > 0 {
		parts = append(parts, render.TruncateAndPad(it.Album, cols.Album))
	}
	parts = append(parts, fmt.Sprintf("%*s", durationWidth, it.Duration))
	if b := badges(it); b != "" {
		parts = append(parts, b)
	}

	line := render.TruncateEllipsis(strings.Join(parts, " "), innerWidth)
	line = render.Pad(line, innerWidth)

	s := styles.T().S()
	switch {
	case selected:
		return s.Cursor.Render(line)
	case it.Inert():
		return s.Inert.Render(line)
	case it.Index == m.previewIndex && m.previewState == preview.Playing:
		return s.Active.Render(line)
	default:
		return s.Base.Render(line)
	}
}

func (m Model) previewIcon(index int) string {
	if index != m.previewIndex {
		return ""
	}
	switch m.previewState {
	case preview.Loading:
		return icons.Loading()
	case preview.Playing:
		return icons.Play()
	case preview.Error:
		return icons.Failed()
	default:
		return ""
	}
}

func badges(it results.Item) string {
	var out []string
	for _, b := range it.Badges {
		switch b {
		case results.BadgeLyrics:
			out = append(out, icons.Lyrics())
		case results.BadgeGenius:
			out = append(out, icons.Genius())
		case results.BadgeSpotify:
			out = append(out, icons.Spotify())
		}
	}
	return strings.Join(out, "")
}

func (m Model) renderDetail(innerWidth int) string {
	it, ok := m.Selected()
	if !ok {
		return render.Pad("", innerWidth)
	}
	s := styles.T().S()
	if it.Inert() {
		return s.Warning.Render(render.TruncateAndPad(it.InertReason, innerWidth))
	}
	if it.Fragment != "" {
		return s.Badge.Render(render.TruncateAndPad(icons.Lyrics()+" "+it.Fragment, innerWidth))
	}
	var info []string
	if it.Album != "" {
		info = append(info, it.Album)
	}
	if it.Duration != "" {
		info = append(info, it.Duration)
	}
	return s.Muted.Render(render.TruncateAndPad(strings.Join(info, " · "), innerWidth))
}
