package infopanel

import (
	"github.com/llehouerou/tunefetch/internal/ui/action"
)

// Close signals the panel should close.
type Close struct{}

// ActionType implements action.Action.
func (a Close) ActionType() string { return "infopanel.close" }

// Copy asks for Text to be put on the clipboard.
type Copy struct {
	Text string
}

// ActionType implements action.Action.
func (a Copy) ActionType() string { return "infopanel.copy" }

// SaveBackup asks for the renewal backup data to be stored.
type SaveBackup struct {
	Data      string
	Timestamp string
}

// ActionType implements action.Action.
func (a SaveBackup) ActionType() string { return "infopanel.save_backup" }

// ActionMsg creates an action.Msg for an info panel action.
func ActionMsg(a action.Action) action.Msg {
	return action.Msg{Source: "infopanel", Action: a}
}

var (
	_ action.Action = Close{}
	_ action.Action = Copy{}
	_ action.Action = SaveBackup{}
)
