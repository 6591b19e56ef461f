// internal/app/layout.go
package app

import (
	"github.com/llehouerou/tunefetch/internal/ui/headerbar"
	"github.com/llehouerou/tunefetch/internal/ui/jobbar"
	"github.com/llehouerou/tunefetch/internal/ui/layout"
	"github.com/llehouerou/tunefetch/internal/ui/playerbar"
	"github.com/llehouerou/tunefetch/internal/ui/searchbar"
)

// PlayerBarHeight returns the mini player height, 0 when hidden.
func (m Model) PlayerBarHeight() int {
	if !m.playerBarState().Visible() {
		return 0
	}
	return playerbar.Height
}

// JobBarHeight returns the job bar height, 0 when no save is running.
func (m Model) JobBarHeight() int {
	return jobbar.Height(m.Jobs.ActiveCount())
}

// ContentHeight returns the height of the results panel.
func (m Model) ContentHeight() int {
	return layout.ContentHeight(m.Height, layout.ContentOpts{
		HeaderHeight:      headerbar.Height + searchbar.Height,
		PlayerBarHeight:   m.PlayerBarHeight(),
		JobBarHeight:      m.JobBarHeight(),
		NotificationCount: len(m.Notifications),
	})
}

// ResizeComponents updates component sizes after the window or the
// bottom bars changed.
func (m *Model) ResizeComponents() {
	m.SearchBar.SetWidth(m.Width)
	m.Results.SetSize(m.Width, m.ContentHeight())
	m.Results.SetFocused(!m.SearchBar.Focused())
	m.Popups.SetSize(m.Width, m.Height)
}
