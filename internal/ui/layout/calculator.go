// Package layout provides pure functions for UI dimension calculations.
package layout

// NarrowThreshold is the terminal width below which result rows drop the
// album column.
const NarrowThreshold = 100

// NotificationBorderHeight is the height of borders around notifications.
const NotificationBorderHeight = 2

// MinTitleWidth keeps the title column readable on tiny terminals.
const MinTitleWidth = 10

// ContentOpts contains the parameters needed to calculate content height.
type ContentOpts struct {
	HeaderHeight      int // tabs, token indicator and search field
	PlayerBarHeight   int // 0 when no preview is active
	JobBarHeight      int // 0 if no download is being saved
	NotificationCount int
}

// ContentHeight calculates the available height for the results panel.
// This is the terminal height minus header, player bar, job bar, and
// notifications.
func ContentHeight(windowHeight int, opts ContentOpts) int {
	height := windowHeight
	height -= opts.HeaderHeight
	height -= opts.PlayerBarHeight
	height -= opts.JobBarHeight
	height -= NotificationHeight(opts.NotificationCount)
	return max(height, 0)
}

// NotificationHeight returns the height needed for the given number of notifications.
func NotificationHeight(count int) int {
	if count == 0 {
		return 0
	}
	return count + NotificationBorderHeight
}

// IsNarrowMode returns true if the terminal width is below the narrow threshold.
func IsNarrowMode(width int) bool {
	return width < NarrowThreshold
}

// Columns holds the widths of the result row text columns.
type Columns struct {
	Title  int
	Artist int
	Album  int // 0 in narrow mode
}

// ResultColumns splits the row width left after the fixed parts (cursor,
// index, icon, duration and badges) between title, artist and album.
// Title gets half in wide mode, artist and album a quarter each. In narrow
// mode the album column is dropped and title takes 60%.
func ResultColumns(width, fixed int) Columns {
	avail := max(width-fixed, 0)
	if IsNarrowMode(width) {
		title := max(avail*3/5, MinTitleWidth)
		return Columns{Title: title, Artist: max(avail-title, 0)}
	}
	title := max(avail/2, MinTitleWidth)
	artist := max(avail-title, 0) / 2
	return Columns{Title: title, Artist: artist, Album: max(avail-title-artist, 0)}
}

// PlayerBarRow calculates the 1-based row number where the player bar starts.
// Returns 0 if playerBarHeight is 0 (no preview).
func PlayerBarRow(windowHeight, playerBarHeight, jobBarHeight, notificationCount int) int {
	if playerBarHeight == 0 {
		return 0
	}

	row := windowHeight
	row -= NotificationHeight(notificationCount)
	row -= jobBarHeight
	row -= playerBarHeight

	// Convert to 1-based row number
	return row + 1
}
