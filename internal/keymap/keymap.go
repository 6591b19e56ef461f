package keymap

// Binding describes a single key binding.
type Binding struct {
	Action      Action
	Keys        []string
	Description string
	Context     string // "global", "results", "input", "instructions"
}

// Bindings contains all key bindings, for the resolvers and the help popup.
var Bindings = []Binding{
	// Global
	{ActionQuit, []string{"q", "ctrl+c"}, "Quit application", "global"},
	{ActionHelp, []string{"?"}, "Show help", "global"},
	{ActionFocusSearch, []string{"/"}, "Search", "global"},
	{ActionClearSearch, []string{"ctrl+l"}, "Clear search", "global"},
	{ActionTabQobuz, []string{"f1"}, "Qobuz tab", "global"},
	{ActionTabSpotify, []string{"f2"}, "Spotify tab", "global"},
	{ActionNextTab, []string{"tab"}, "Next tab", "global"},
	{ActionCycleQuality, []string{"Q"}, "Cycle download quality", "global"},
	{ActionTokenDetails, []string{"t"}, "Token details", "global"},
	{ActionRenewalCheck, []string{"r"}, "Check credential renewal", "global"},
	{ActionRenewalForce, []string{"R"}, "Force credential renewal", "global"},
	{ActionShowDownloads, []string{"H"}, "Download history", "global"},

	// Results
	{ActionMoveDown, []string{"j", "down"}, "Move down", "results"},
	{ActionMoveUp, []string{"k", "up"}, "Move up", "results"},
	{ActionJumpStart, []string{"g", "home"}, "First result", "results"},
	{ActionJumpEnd, []string{"G", "end"}, "Last result", "results"},
	{ActionPageDown, []string{"pgdown", "ctrl+d"}, "Page down", "results"},
	{ActionPageUp, []string{"pgup", "ctrl+u"}, "Page up", "results"},
	{ActionDownload, []string{"enter", "d"}, "Download", "results"},
	{ActionTogglePreview, []string{" ", "p"}, "Play/stop preview", "results"},
	{ActionStopPreview, []string{"s"}, "Stop preview", "results"},
	{ActionCopyResult, []string{"y"}, "Copy artist - title", "results"},

	// Search input
	{ActionSubmitSearch, []string{"enter"}, "Run search", "input"},
	{ActionLeaveInput, []string{"esc"}, "Leave search input", "input"},

	// Renewal instructions panel
	{ActionCopyInstructions, []string{"c"}, "Copy instructions", "instructions"},
	{ActionSaveBackup, []string{"s"}, "Save credential backup", "instructions"},
	{ActionClosePanel, []string{"esc", "q"}, "Close", "instructions"},
}

// ByContext returns key bindings filtered by context.
func ByContext(context string) []Binding {
	var result []Binding
	for _, kb := range Bindings {
		if kb.Context == context {
			result = append(result, kb)
		}
	}
	return result
}

// ForContexts returns the bindings of every listed context, in order.
func ForContexts(contexts ...string) []Binding {
	var result []Binding
	for _, c := range contexts {
		result = append(result, ByContext(c)...)
	}
	return result
}
