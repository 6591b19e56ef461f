package downloadmodal

import (
	"github.com/llehouerou/tunefetch/internal/ui/action"
)

// Close signals the modal should close.
type Close struct{}

// ActionType implements action.Action.
func (a Close) ActionType() string { return "downloadmodal.close" }

// CopyLink asks for the resolved link to be copied to the clipboard.
type CopyLink struct {
	URL string
}

// ActionType implements action.Action.
func (a CopyLink) ActionType() string { return "downloadmodal.copy_link" }

// ActionMsg creates an action.Msg for a download modal action.
func ActionMsg(a action.Action) action.Msg {
	return action.Msg{Source: "downloadmodal", Action: a}
}

var (
	_ action.Action = Close{}
	_ action.Action = CopyLink{}
)
