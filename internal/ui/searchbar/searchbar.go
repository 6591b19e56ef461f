// Package searchbar is the single-line search field under the header.
package searchbar

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/llehouerou/tunefetch/internal/icons"
	"github.com/llehouerou/tunefetch/internal/intent"
	"github.com/llehouerou/tunefetch/internal/search"
	"github.com/llehouerou/tunefetch/internal/ui/render"
	"github.com/llehouerou/tunefetch/internal/ui/styles"
)

// Height is the search field height.
const Height = 1

// CharLimit caps the query length.
const CharLimit = 500

var placeholders = map[search.Tab]string{
	search.TabQobuz:   "Song, artist, album or a few lines of lyrics",
	search.TabSpotify: "Spotify track link or search terms",
}

// Model wraps a bubbles text input with the lyrics-mode hint.
type Model struct {
	input     textinput.Model
	tab       search.Tab
	threshold int
	width     int
}

// New creates the search field for tab.
func New(tab search.Tab, threshold int) Model {
	in := textinput.New()
	in.Prompt = "/ "
	in.CharLimit = CharLimit
	m := Model{input: in, threshold: threshold}
	m.SetTab(tab)
	return m
}

// SetTab updates the placeholder for tab.
func (m *Model) SetTab(tab search.Tab) {
	m.tab = tab
	m.input.Placeholder = placeholders[tab]
}

// SetWidth sets the rendered width.
func (m *Model) SetWidth(w int) {
	m.width = w
}

// Focus gives the field keyboard focus.
func (m *Model) Focus() tea.Cmd {
	return m.input.Focus()
}

// Blur removes keyboard focus.
func (m *Model) Blur() {
	m.input.Blur()
}

// Focused reports whether the field has focus.
func (m Model) Focused() bool {
	return m.input.Focused()
}

// Value returns the typed query.
func (m Model) Value() string {
	return m.input.Value()
}

// SetValue replaces the query.
func (m *Model) SetValue(s string) {
	m.input.SetValue(s)
	m.input.CursorEnd()
}

// Reset empties the field.
func (m *Model) Reset() {
	m.input.Reset()
}

// LyricsHint reports whether the current text would search lyrics.
func (m Model) LyricsHint() bool {
	return m.tab == search.TabQobuz && intent.ClassifyWith(m.input.Value(), m.threshold).IsLyrics
}

// Update forwards key input to the text field.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// View renders the field with the lyrics hint on the right.
func (m Model) View() string {
	t := styles.T()
	var hint string
	if m.LyricsHint() {
		hint = t.S().Badge.Render(icons.Lyrics() + " lyrics search")
	}

	m.input.Width = max(m.width-lipgloss.Width(hint)-4, 10)
	if m.Focused() {
		m.input.PromptStyle = t.S().Active
	} else {
		m.input.PromptStyle = t.S().Muted
	}
	m.input.PlaceholderStyle = t.S().Subtle
	m.input.TextStyle = t.S().Base

	return " " + render.Row(m.input.View(), hint, max(m.width-2, 0)) + " "
}
