package popup

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/llehouerou/tunefetch/internal/ui/render"
	"github.com/llehouerou/tunefetch/internal/ui/styles"
)

// Dialog is a centered box with a title, a body and a footer hint.
type Dialog struct {
	Title   string
	Content string
	Footer  string
}

// New creates an empty dialog.
func New() *Dialog {
	return &Dialog{}
}

// Render draws the dialog centered in a termWidth x termHeight area.
func (d *Dialog) Render(termWidth, termHeight int) string {
	t := styles.T()
	width := max(maxLineWidth(d.Content), lipgloss.Width(d.Title), lipgloss.Width(d.Footer)) + 2
	width = max(min(width, termWidth-6), 1)

	lines := make([]string, 0, strings.Count(d.Content, "\n")+5)
	if d.Title != "" {
		lines = append(lines, lipgloss.PlaceHorizontal(width, lipgloss.Center, t.S().Title.Render(d.Title)), "")
	}
	for line := range strings.SplitSeq(d.Content, "\n") {
		lines = append(lines, render.TruncateEllipsis(line, width))
	}
	if d.Footer != "" {
		lines = append(lines, "", lipgloss.PlaceHorizontal(width, lipgloss.Center, t.S().Subtle.Render(d.Footer)))
	}

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.Border).
		Padding(0, 1).
		Width(width + 2).
		Render(strings.Join(lines, "\n"))
	return Center(box, termWidth, termHeight)
}

// Center places pre-rendered content in the middle of the terminal.
func Center(content string, termWidth, termHeight int) string {
	return lipgloss.Place(termWidth, termHeight, lipgloss.Center, lipgloss.Center, content)
}

// SizeConfig defines how a popup should be sized.
type SizeConfig struct {
	WidthPct  int // Percentage of screen width (0 = auto-fit)
	HeightPct int // Percentage of screen height (0 = auto-fit)
	MaxWidth  int // Maximum width in columns (0 = no limit)
}

// Common size configurations.
var (
	SizeLarge  = SizeConfig{WidthPct: 80, HeightPct: 70} // info panel
	SizeMedium = SizeConfig{WidthPct: 60, HeightPct: 40} // download modal
	SizeAuto   = SizeConfig{}                            // help, confirm
)

// RenderBordered wraps content in a rounded border and centers it.
func RenderBordered(content string, screenW, screenH int, size SizeConfig) string {
	width, height := dimensions(content, screenW, screenH, size)

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(styles.T().Border).
		Width(width-2).
		Height(height-2).
		Padding(1, 2).
		Render(content)
	return Center(box, screenW, screenH)
}

func dimensions(content string, screenW, screenH int, size SizeConfig) (width, height int) {
	if size.WidthPct > 0 {
		return screenW * size.WidthPct / 100, screenH * size.HeightPct / 100
	}

	width = maxLineWidth(content) + 6
	if size.MaxWidth > 0 {
		width = min(width, size.MaxWidth)
	}
	height = strings.Count(content, "\n") + 5
	return min(width, screenW-4), min(height, screenH-4)
}

func maxLineWidth(s string) int {
	w := 0
	for line := range strings.SplitSeq(s, "\n") {
		w = max(w, lipgloss.Width(line))
	}
	return w
}

// Compose overlays popupView on base. Each overlay line replaces the base
// between its first and last visible column; blank overlay lines leave
// the base untouched. ANSI sequences on both sides are preserved.
func Compose(base, popupView string, width, _ int) string {
	baseLines := strings.Split(base, "\n")

	for i, line := range strings.Split(popupView, "\n") {
		if i >= len(baseLines) {
			break
		}
		plain := ansi.Strip(line)
		trimmed := strings.TrimRight(plain, " ")
		if strings.TrimSpace(trimmed) == "" {
			continue
		}

		start := len(trimmed) - len(strings.TrimLeft(trimmed, " "))
		end := ansi.StringWidth(trimmed)
		baseLines[i] = splice(baseLines[i], ansi.Cut(line, start, end), start, end, width)
	}

	return strings.Join(baseLines, "\n")
}

// splice replaces columns [start, end) of line with overlay.
func splice(line, overlay string, start, end, width int) string {
	if w := ansi.StringWidth(line); w < width {
		line += strings.Repeat(" ", width-w)
	}

	// A wide rune cut at start is dropped by ansi.Cut; pad its columns.
	prefix := ansi.Cut(line, 0, start)
	if w := ansi.StringWidth(prefix); w < start {
		prefix += strings.Repeat(" ", start-w)
	}
	if end >= width {
		return prefix + overlay
	}

	suffix := ansi.Cut(line, end, width)
	want := width - end
	switch w := ansi.StringWidth(suffix); {
	case w > want:
		// A wide rune straddles end; blank its visible half.
		suffix = " " + ansi.Cut(suffix, w-want+1, w)
	case w < want:
		suffix += strings.Repeat(" ", want-w)
	}
	return prefix + overlay + suffix
}
