// internal/app/keys.go
package app

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/tunefetch/internal/app/handler"
	"github.com/llehouerou/tunefetch/internal/keymap"
)

// dispatch maps semantic actions to their handlers. Navigation actions
// share one handler bound to the action.
var dispatch = map[keymap.Action]func(Model) (Model, tea.Cmd){
	keymap.ActionQuit:          Model.actQuit,
	keymap.ActionHelp:          Model.actHelp,
	keymap.ActionFocusSearch:   Model.actFocusSearch,
	keymap.ActionClearSearch:   Model.actClearSearch,
	keymap.ActionTabQobuz:      Model.actTabQobuz,
	keymap.ActionTabSpotify:    Model.actTabSpotify,
	keymap.ActionNextTab:       Model.actNextTab,
	keymap.ActionCycleQuality:  Model.actCycleQuality,
	keymap.ActionTokenDetails:  Model.actTokenDetails,
	keymap.ActionRenewalCheck:  Model.actRenewalCheck,
	keymap.ActionRenewalForce:  Model.actRenewalForce,
	keymap.ActionShowDownloads: Model.actShowDownloads,

	keymap.ActionMoveUp:    navigate(keymap.ActionMoveUp),
	keymap.ActionMoveDown:  navigate(keymap.ActionMoveDown),
	keymap.ActionJumpStart: navigate(keymap.ActionJumpStart),
	keymap.ActionJumpEnd:   navigate(keymap.ActionJumpEnd),
	keymap.ActionPageUp:    navigate(keymap.ActionPageUp),
	keymap.ActionPageDown:  navigate(keymap.ActionPageDown),

	keymap.ActionDownload:      Model.actDownload,
	keymap.ActionTogglePreview: Model.actTogglePreview,
	keymap.ActionStopPreview:   Model.actStopPreview,
	keymap.ActionCopyResult:    Model.actCopyResult,
}

// inputActions are the global actions still reachable while typing.
var inputActions = map[string]keymap.Action{
	"ctrl+c": keymap.ActionQuit,
	"ctrl+l": keymap.ActionClearSearch,
	"f1":     keymap.ActionTabQobuz,
	"f2":     keymap.ActionTabSpotify,
	"tab":    keymap.ActionNextTab,
}

func navigate(a keymap.Action) func(Model) (Model, tea.Cmd) {
	return func(m Model) (Model, tea.Cmd) {
		m.Results.Navigate(a)
		return m, nil
	}
}

func (m Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	mp := &m
	_, cmd := handler.Chain(msg,
		mp.handlePopupKeys,
		mp.handleInputKeys,
		mp.handleActionKeys,
	)
	return m, cmd
}

func (m *Model) handlePopupKeys(msg tea.KeyMsg) handler.Result {
	return handler.From(m.Popups.HandleKey(msg))
}

func (m *Model) handleInputKeys(msg tea.KeyMsg) handler.Result {
	if !m.SearchBar.Focused() {
		return handler.NotHandled
	}

	key := msg.String()
	if a, ok := inputActions[key]; ok {
		return m.run(a)
	}

	switch m.inputResolver.Resolve(key) {
	case keymap.ActionSubmitSearch:
		return handler.Handled(m.submitSearch())
	case keymap.ActionLeaveInput:
		m.SearchBar.Blur()
		m.ResizeComponents()
		return handler.HandledNoCmd
	}

	var cmd tea.Cmd
	m.SearchBar, cmd = m.SearchBar.Update(msg)
	return handler.Handled(cmd)
}

func (m *Model) handleActionKeys(msg tea.KeyMsg) handler.Result {
	a := m.resolver.Resolve(msg.String())
	if a == "" {
		return handler.NotHandled
	}
	return m.run(a)
}

// run executes the dispatch entry for a.
func (m *Model) run(a keymap.Action) handler.Result {
	fn, ok := dispatch[a]
	if !ok {
		return handler.NotHandled
	}
	updated, cmd := fn(*m)
	*m = updated
	return handler.Handled(cmd)
}
