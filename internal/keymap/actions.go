// Package keymap defines key bindings and action dispatch for the application.
package keymap

// Action represents a user-triggerable action.
type Action string

const (
	// Global actions
	ActionQuit         Action = "quit"
	ActionHelp         Action = "help"
	ActionFocusSearch  Action = "focus_search"
	ActionClearSearch  Action = "clear_search"
	ActionTabQobuz     Action = "tab_qobuz"
	ActionTabSpotify   Action = "tab_spotify"
	ActionNextTab      Action = "next_tab"
	ActionCycleQuality Action = "cycle_quality"

	// Token and renewal actions
	ActionTokenDetails  Action = "token_details"
	ActionRenewalCheck  Action = "renewal_check"
	ActionRenewalForce  Action = "renewal_force"
	ActionShowDownloads Action = "show_downloads"

	// Search input actions
	ActionSubmitSearch Action = "submit_search" // enter
	ActionLeaveInput   Action = "leave_input"   // esc

	// Navigation actions
	ActionMoveUp    Action = "move_up"
	ActionMoveDown  Action = "move_down"
	ActionJumpStart Action = "jump_start"
	ActionJumpEnd   Action = "jump_end"
	ActionPageUp    Action = "page_up"
	ActionPageDown  Action = "page_down"

	// Result actions
	ActionDownload      Action = "download"       // enter, d
	ActionTogglePreview Action = "toggle_preview" // space, p
	ActionStopPreview   Action = "stop_preview"   // s
	ActionCopyResult    Action = "copy_result"    // y

	// Instructions panel actions
	ActionCopyInstructions Action = "copy_instructions" // c
	ActionSaveBackup       Action = "save_backup"       // s
	ActionClosePanel       Action = "close_panel"       // esc
)
