// Package cursor tracks the selected row and scroll offset of the result list.
package cursor

import "github.com/llehouerou/tunefetch/internal/keymap"

// Cursor holds a selection and scroll offset. List length and viewport
// height are passed per call because both change with every search and
// resize.
type Cursor struct {
	pos    int
	offset int
	margin int // rows kept visible above and below the selection
}

// New creates a Cursor keeping margin rows of context around the selection.
func New(margin int) Cursor {
	return Cursor{margin: margin}
}

// Pos returns the selected index.
func (c Cursor) Pos() int { return c.pos }

// Offset returns the first visible index.
func (c Cursor) Offset() int { return c.offset }

// Reset selects the first row.
func (c *Cursor) Reset() {
	c.pos, c.offset = 0, 0
}

// Navigate applies a list navigation action and reports whether the
// action was one. Page moves go half a viewport.
func (c *Cursor) Navigate(action keymap.Action, listLen, height int) bool {
	step := max(height/2, 1)
	switch action {
	case keymap.ActionMoveDown:
		c.moveTo(c.pos+1, listLen, height)
	case keymap.ActionMoveUp:
		c.moveTo(c.pos-1, listLen, height)
	case keymap.ActionPageDown:
		c.moveTo(c.pos+step, listLen, height)
	case keymap.ActionPageUp:
		c.moveTo(c.pos-step, listLen, height)
	case keymap.ActionJumpStart:
		c.Reset()
	case keymap.ActionJumpEnd:
		c.moveTo(listLen-1, listLen, height)
	default:
		return false
	}
	return true
}

// VisibleRange returns the visible indices as [start, end).
func (c Cursor) VisibleRange(listLen, height int) (start, end int) {
	if listLen == 0 || height <= 0 {
		return 0, 0
	}
	return c.offset, min(c.offset+height, listLen)
}

func (c *Cursor) moveTo(pos, listLen, height int) {
	if listLen == 0 {
		return
	}
	c.pos = clamp(pos, listLen-1)
	if height <= 0 {
		return
	}
	// Keep the margin in view, shrinking it on tiny viewports.
	margin := min(c.margin, (height-1)/2)
	if c.pos < c.offset+margin {
		c.offset = c.pos - margin
	}
	if c.pos >= c.offset+height-margin {
		c.offset = c.pos - height + margin + 1
	}
	c.offset = clamp(c.offset, max(listLen-height, 0))
}

func clamp(v, hi int) int {
	return max(0, min(v, hi))
}
