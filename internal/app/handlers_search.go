// internal/app/handlers_search.go
package app

import (
	"errors"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/llehouerou/tunefetch/internal/errmsg"
	"github.com/llehouerou/tunefetch/internal/results"
	"github.com/llehouerou/tunefetch/internal/search"
)

// spotifyFallbackNotice explains results that came from Qobuz after a
// Spotify lookup failed.
const spotifyFallbackNotice = "Spotify lookup failed; showing Qobuz matches instead"

// submitSearch starts a search for the field's text. A search already in
// flight makes this a no-op.
func (m *Model) submitSearch() tea.Cmd {
	req, err := m.Search.Begin(m.SearchBar.Value())
	switch {
	case errors.Is(err, search.ErrBusy):
		return nil
	case err != nil:
		return m.fail(err.Error())
	}

	// Indices of a playing preview point into the list being replaced
	m.stopPreview()
	m.SearchBar.Blur()
	m.ResizeComponents()
	m.log.Debug("search",
		zap.String("source", req.Source),
		zap.String("mode", req.Mode),
		zap.Uint64("gen", req.Gen),
	)
	return tea.Batch(
		m.Results.SetLoading(m.Search.Loading()),
		SearchCmd(m.ctx, m.Client, req),
	)
}

func (m Model) handleSearchMessage(msg SearchMessage) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case SearchDoneMsg:
		return m.handleSearchDone(msg)
	}
	return m, nil
}

func (m Model) handleSearchDone(msg SearchDoneMsg) (tea.Model, tea.Cmd) {
	if !m.Search.Complete(msg.Gen, msg.Resp, msg.Err) {
		m.log.Debug("stale search response dropped", zap.Uint64("gen", msg.Gen))
		return m, nil
	}

	if text := m.Search.Err(); text != "" {
		if msg.Err != nil {
			m.log.Warn(errmsg.Format(errmsg.OpSearch, msg.Err))
		}
		m.Results.SetError(text)
		return m, nil
	}

	view := results.Render(m.Search.Results())
	m.Results.SetResults(view)
	if m.Search.SpotifyFallback() {
		m.Results.SetNotice(spotifyFallbackNotice)
	}
	m.Presenter.ResultsRendered(len(view.Items))
	m.Results.SetFlash(flashFrames)
	return m, FlashTickCmd(flashFrames - 1)
}

func (m Model) handleFlashTick(msg FlashTickMsg) (tea.Model, tea.Cmd) {
	m.Results.SetFlash(msg.Frame)
	if msg.Frame <= 0 {
		return m, nil
	}
	return m, FlashTickCmd(msg.Frame - 1)
}

// switchTab moves to tab, dropping the old tab's results and any
// response still in flight for it.
func (m Model) switchTab(tab search.Tab) (Model, tea.Cmd) {
	if !m.Search.SwitchTab(tab) {
		return m, nil
	}
	m.stopPreview()
	m.SearchBar.SetTab(tab)
	m.Results.Clear()
	m.saveSettings()
	cmd := m.SearchBar.Focus()
	m.ResizeComponents()
	return m, cmd
}

func (m Model) actTabQobuz() (Model, tea.Cmd)   { return m.switchTab(search.TabQobuz) }
func (m Model) actTabSpotify() (Model, tea.Cmd) { return m.switchTab(search.TabSpotify) }
func (m Model) actNextTab() (Model, tea.Cmd)    { return m.switchTab(m.Search.Tab().Next()) }

func (m Model) actFocusSearch() (Model, tea.Cmd) {
	cmd := m.SearchBar.Focus()
	m.ResizeComponents()
	return m, cmd
}

func (m Model) actClearSearch() (Model, tea.Cmd) {
	m.Search.Clear()
	m.stopPreview()
	m.SearchBar.Reset()
	m.Results.Clear()
	cmd := m.SearchBar.Focus()
	m.ResizeComponents()
	return m, cmd
}
