// Package jobbar displays download saves in progress at the bottom of the screen.
package jobbar

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/llehouerou/tunefetch/internal/ui/render"
	"github.com/llehouerou/tunefetch/internal/ui/styles"
)

// HeightPerJob is the height per job line.
const HeightPerJob = 1

// BorderHeight is the height of borders around the job bar.
const BorderHeight = 2

// Height returns the total height for the given number of active jobs.
func Height(activeCount int) int {
	if activeCount == 0 {
		return 0
	}
	return activeCount + BorderHeight
}

// Job is one file being saved.
type Job struct {
	ID      string
	Label   string
	Written int64
	Total   int64 // 0 if the server sent no length
	Done    bool
}

// HasProgress returns true if the job has known progress (Total > 0).
func (j Job) HasProgress() bool {
	return j.Total > 0
}

// State holds the jobs to display.
type State struct {
	Jobs []Job
}

// Update records progress for the job with id, adding it if unknown.
func (s *State) Update(j Job) {
	for i := range s.Jobs {
		if s.Jobs[i].ID == j.ID {
			s.Jobs[i] = j
			return
		}
	}
	s.Jobs = append(s.Jobs, j)
}

// Remove drops the job with id.
func (s *State) Remove(id string) {
	for i := range s.Jobs {
		if s.Jobs[i].ID == id {
			s.Jobs = append(s.Jobs[:i], s.Jobs[i+1:]...)
			return
		}
	}
}

// HasActiveJobs returns true if there are any non-completed jobs.
func (s State) HasActiveJobs() bool {
	return s.ActiveCount() > 0
}

// ActiveCount returns the number of non-completed jobs.
func (s State) ActiveCount() int {
	count := 0
	for _, j := range s.Jobs {
		if !j.Done {
			count++
		}
	}
	return count
}

func labelStyle() lipgloss.Style {
	return styles.T().S().Title
}

func progressStyle() lipgloss.Style {
	return styles.T().S().Muted
}

func barFilledStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(styles.T().Primary)
}

func barEmptyStyle() lipgloss.Style {
	return styles.T().S().Subtle
}

// Render renders the job bar with the given width.
// Returns empty string if there are no active jobs.
func Render(state State, width int) string {
	if !state.HasActiveJobs() {
		return ""
	}

	innerWidth := width - 2 // account for borders

	// Render all active jobs
	var lines []string
	for i := range state.Jobs {
		if !state.Jobs[i].Done {
			lines = append(lines, renderJobLine(state.Jobs[i], innerWidth))
		}
	}

	content := strings.Join(lines, "\n")

	return styles.PanelStyle(false).
		Width(innerWidth).
		Render(content)
}

// renderJobLine renders a single job as a one-line display with optional progress bar.
func renderJobLine(job Job, width int) string {
	if job.HasProgress() {
		return renderWithProgressBar(job, width)
	}
	return renderWithSpinner(job, width)
}

// renderWithProgressBar renders: "◦ Label  [━━━━────] 1.2 MB / 8.4 MB"
func renderWithProgressBar(job Job, width int) string {
	spinner := "◦"

	countStr := humanize.Bytes(uint64(job.Written)) + " / " + humanize.Bytes(uint64(job.Total))
	countWidth := lipgloss.Width(countStr)

	// Layout: spinner(1) + space(1) + label + space(2) + "[" + bar + "]" + space(1) + count
	spinnerWidth := 2
	minBarWidth := 10
	brackets := 2
	spacing := 3
	fixedWidth := spinnerWidth + brackets + spacing + countWidth

	availableForLabel := max(width-fixedWidth-minBarWidth, 10)
	label := render.TruncateAndPad(job.Label, availableForLabel)
	barWidth := max(width-availableForLabel-fixedWidth, minBarWidth)

	ratio := min(float64(job.Written)/float64(job.Total), 1)
	filled := int(float64(barWidth) * ratio)

	filledBar := barFilledStyle().Render(strings.Repeat("━", filled))
	emptyBar := barEmptyStyle().Render(strings.Repeat("─", barWidth-filled))

	var result strings.Builder
	result.WriteString(barFilledStyle().Render(spinner))
	result.WriteString(" ")
	result.WriteString(labelStyle().Render(label))
	result.WriteString("  [")
	result.WriteString(filledBar)
	result.WriteString(emptyBar)
	result.WriteString("] ")
	result.WriteString(progressStyle().Render(countStr))

	return result.String()
}

// renderWithSpinner renders: "◦ Label                    3.1 MB"
func renderWithSpinner(job Job, width int) string {
	spinner := "◦"

	var countInfo string
	if job.Written > 0 {
		countInfo = humanize.Bytes(uint64(job.Written))
	}

	spinnerWidth := 2
	spacing := 2
	countWidth := lipgloss.Width(countInfo)

	labelWidth := max(width-spinnerWidth-spacing-countWidth, 10)
	label := render.TruncateAndPad(job.Label, labelWidth)

	var result strings.Builder
	result.WriteString(barFilledStyle().Render(spinner))
	result.WriteString(" ")
	result.WriteString(labelStyle().Render(label))
	if countInfo != "" {
		result.WriteString("  ")
		result.WriteString(progressStyle().Render(countInfo))
	}

	return result.String()
}
