// Package playerbar renders the preview mini player.
package playerbar

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/llehouerou/tunefetch/internal/icons"
	"github.com/llehouerou/tunefetch/internal/preview"
	"github.com/llehouerou/tunefetch/internal/ui/render"
)

// Height is the mini player height: top border, content, bottom border.
const Height = 3

// State holds everything needed to render the mini player.
type State struct {
	Phase    preview.State
	Title    string
	Artist   string
	Position time.Duration
	Volume   float64 // 0..1
	ErrText  string  // category message while in Error
}

// Visible reports whether the mini player takes space on screen.
func (s State) Visible() bool {
	return s.Phase != preview.Stopped
}

// Render returns the mini player for the given width, or "" when no
// preview is active.
func Render(s State, width int) string {
	if !s.Visible() {
		return ""
	}

	innerWidth := max(width-6, 0)

	var status, right string
	switch s.Phase {
	case preview.Loading:
		status = loadingStyle().Render(icons.Loading())
		right = loadingStyle().Render("Loading preview...")
	case preview.Error:
		status = errorStyle().Render(icons.Failed())
		right = errorStyle().Render(s.ErrText)
	default:
		status = statusStyle().Render(icons.Play())
		right = progressLine(s, innerWidth/2)
	}

	title := s.Title
	if title == "" {
		title = "Unknown Track"
	}
	info := titleStyle().Render(title)
	if s.Artist != "" {
		info += "  " + artistStyle().Render(s.Artist)
	}

	leftWidth := max(innerWidth-lipgloss.Width(status)-lipgloss.Width(right)-4, 10)
	info = render.TruncateEllipsis(info, leftWidth)
	info += strings.Repeat(" ", max(leftWidth-lipgloss.Width(info), 0))

	content := status + "  " + info + "  " + right
	return barStyle().Padding(0, 2).Width(width - 2).Render(content)
}

// progressLine renders "━━━━────  0:12 / 0:30  vol 80%" scaled to the
// preview window.
func progressLine(s State, width int) string {
	timeStr := preview.FormatPosition(s.Position) + " / " + preview.FormatPosition(preview.MaxDuration)
	vol := fmt.Sprintf("vol %d%%", int(s.Volume*100+0.5))
	fixed := lipgloss.Width(timeStr) + lipgloss.Width(vol) + 4
	barWidth := max(width-fixed, 5)

	return RenderProgressBar(preview.Progress(s.Position), barWidth) +
		"  " + progressTimeStyle().Render(timeStr) +
		"  " + progressTimeStyle().Render(vol)
}

// RenderProgressBar renders a ratio in [0,1] as a bar of the given width.
func RenderProgressBar(ratio float64, width int) string {
	ratio = min(max(ratio, 0), 1)
	filled := min(int(float64(width)*ratio), width)
	return progressBarFilled().Render(strings.Repeat("━", filled)) +
		progressBarEmpty().Render(strings.Repeat("─", width-filled))
}
