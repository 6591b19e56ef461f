// Package resultlist draws the search results panel.
package resultlist

import (
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/tunefetch/internal/keymap"
	"github.com/llehouerou/tunefetch/internal/preview"
	"github.com/llehouerou/tunefetch/internal/results"
	"github.com/llehouerou/tunefetch/internal/ui"
	"github.com/llehouerou/tunefetch/internal/ui/cursor"
)

// detailHeight is the line under the list showing the selected item's
// fragment or inert reason.
const detailHeight = 1

// Model is the results panel.
type Model struct {
	ui.Base
	cursor  cursor.Cursor
	view    results.View
	hasView bool // a search completed, so an empty list reads "No results found"
	loading string
	errText string
	notice  string // e.g. Spotify fallback note

	previewIndex int
	previewState preview.State

	flash   int
	spinner spinner.Model
}

// New creates an empty results panel.
func New() Model {
	return Model{
		cursor:       cursor.New(ui.ScrollMargin),
		previewIndex: -1,
		spinner:      spinner.New(spinner.WithSpinner(spinner.Dot)),
	}
}

// SetResults shows a completed result set and moves the cursor to the top.
func (m *Model) SetResults(v results.View) {
	m.view = v
	m.hasView = true
	m.loading = ""
	m.errText = ""
	m.cursor.Reset()
}

// SetLoading clears the list and shows msg with a spinner. The returned
// command starts the spinner.
func (m *Model) SetLoading(msg string) tea.Cmd {
	m.view = results.View{}
	m.hasView = false
	m.errText = ""
	m.notice = ""
	m.loading = msg
	m.cursor.Reset()
	if msg == "" {
		return nil
	}
	return m.spinner.Tick
}

// SetError shows a search failure in place of the list.
func (m *Model) SetError(text string) {
	m.view = results.View{}
	m.hasView = false
	m.loading = ""
	m.errText = text
	m.cursor.Reset()
}

// SetNotice sets a one-line note shown above the list.
func (m *Model) SetNotice(text string) {
	m.notice = text
}

// Clear returns the panel to its initial state.
func (m *Model) Clear() {
	m.view = results.View{}
	m.hasView = false
	m.loading = ""
	m.errText = ""
	m.notice = ""
	m.cursor.Reset()
}

// SetPreview marks which item's preview control is active.
func (m *Model) SetPreview(index int, state preview.State) {
	m.previewIndex = index
	m.previewState = state
}

// SetFlash sets the title flash frame (0 for none).
func (m *Model) SetFlash(frame int) {
	m.flash = frame
}

// Flash returns the current flash frame.
func (m Model) Flash() int {
	return m.flash
}

// Loading reports whether a search is in flight.
func (m Model) Loading() bool {
	return m.loading != ""
}

// Len returns the number of items.
func (m Model) Len() int {
	return len(m.view.Items)
}

// Summary returns the summary line of the current result set.
func (m Model) Summary() string {
	return m.view.Summary.Text
}

// Selected returns the item under the cursor.
func (m Model) Selected() (results.Item, bool) {
	pos := m.cursor.Pos()
	if pos < 0 || pos >= len(m.view.Items) {
		return results.Item{}, false
	}
	return m.view.Items[pos], true
}

// Item returns the item at index.
func (m Model) Item(index int) (results.Item, bool) {
	if index < 0 || index >= len(m.view.Items) {
		return results.Item{}, false
	}
	return m.view.Items[index], true
}

// Navigate moves the cursor for a navigation action.
func (m *Model) Navigate(action keymap.Action) bool {
	return m.cursor.Navigate(action, m.Len(), m.listHeight())
}

// Update advances the loading spinner.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if _, ok := msg.(spinner.TickMsg); !ok || m.loading == "" {
		return m, nil
	}
	var cmd tea.Cmd
	m.spinner, cmd = m.spinner.Update(msg)
	return m, cmd
}

// listHeight is the number of item rows that fit in the panel.
func (m Model) listHeight() int {
	h := m.ListHeight(ui.PanelOverhead + detailHeight)
	if m.notice != "" {
		h--
	}
	return max(h, 1)
}
