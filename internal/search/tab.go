package search

// Tab is the active provider.
type Tab string

const (
	TabQobuz   Tab = "qobuz"
	TabSpotify Tab = "spotify"
)

// Tabs lists the tabs in display order.
var Tabs = []Tab{TabQobuz, TabSpotify}

// ParseTab returns the tab named s, or TabQobuz.
func ParseTab(s string) Tab {
	if Tab(s) == TabSpotify {
		return TabSpotify
	}
	return TabQobuz
}

// Next returns the tab after t, wrapping around.
func (t Tab) Next() Tab {
	if t == TabQobuz {
		return TabSpotify
	}
	return TabQobuz
}

// Label returns the tab title.
func (t Tab) Label() string {
	if t == TabSpotify {
		return "Spotify"
	}
	return "Qobuz"
}
