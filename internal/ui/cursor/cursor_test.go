package cursor

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/llehouerou/tunefetch/internal/keymap"
)

func TestNavigate(t *testing.T) {
	tests := []struct {
		name       string
		start      int
		action     keymap.Action
		listLen    int
		height     int
		wantPos    int
		wantOffset int
	}{
		{name: "down without scrolling", action: keymap.ActionMoveDown, listLen: 20, height: 10, wantPos: 1},
		{name: "down scrolls to keep margin", start: 7, action: keymap.ActionMoveDown, listLen: 20, height: 10, wantPos: 8, wantOffset: 1},
		{name: "up stops at first row", action: keymap.ActionMoveUp, listLen: 20, height: 10},
		{name: "down stops at last row", start: 19, action: keymap.ActionMoveDown, listLen: 20, height: 10, wantPos: 19, wantOffset: 10},
		{name: "page down moves half a viewport", action: keymap.ActionPageDown, listLen: 20, height: 10, wantPos: 5},
		{name: "page up from the end", start: 19, action: keymap.ActionPageUp, listLen: 20, height: 10, wantPos: 14, wantOffset: 10},
		{name: "end of short list", action: keymap.ActionJumpEnd, listLen: 4, height: 10, wantPos: 3},
		{name: "end of long list", action: keymap.ActionJumpEnd, listLen: 50, height: 10, wantPos: 49, wantOffset: 40},
		{name: "start resets", start: 30, action: keymap.ActionJumpStart, listLen: 50, height: 10},
		{name: "empty list", action: keymap.ActionMoveDown, height: 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := New(2)
			// walk to the start row one step at a time
			for range tt.start {
				c.Navigate(keymap.ActionMoveDown, tt.listLen, tt.height)
			}

			assert.True(t, c.Navigate(tt.action, tt.listLen, tt.height))
			assert.Equal(t, tt.wantPos, c.Pos())
			assert.Equal(t, tt.wantOffset, c.Offset())
		})
	}
}

func TestNavigate_IgnoresOtherActions(t *testing.T) {
	c := New(2)

	assert.False(t, c.Navigate(keymap.ActionDownload, 10, 5))
	assert.Equal(t, 0, c.Pos())
}

func TestVisibleRange(t *testing.T) {
	c := New(2)
	for range 12 {
		c.Navigate(keymap.ActionMoveDown, 15, 6)
	}

	start, end := c.VisibleRange(15, 6)

	assert.Equal(t, 9, start)
	assert.Equal(t, 15, end)

	start, end = New(2).VisibleRange(0, 6)
	assert.Zero(t, start)
	assert.Zero(t, end)
}
