// internal/app/messages.go
package app

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/tunefetch/internal/api"
	"github.com/llehouerou/tunefetch/internal/download"
	"github.com/llehouerou/tunefetch/internal/mpris"
	"github.com/llehouerou/tunefetch/internal/player"
	"github.com/llehouerou/tunefetch/internal/preview"
	"github.com/llehouerou/tunefetch/internal/tags"
)

// SearchMessage is implemented by search lifecycle messages.
type SearchMessage interface {
	tea.Msg
	searchMessage()
}

// SearchDoneMsg carries the backend answer for the search issued under Gen.
type SearchDoneMsg struct {
	Gen  uint64
	Resp *api.SearchResponse
	Err  error
}

func (SearchDoneMsg) searchMessage() {}

// DownloadMessage is implemented by download flow and save messages.
type DownloadMessage interface {
	tea.Msg
	downloadMessage()
}

// DownloadAdvanceMsg moves the modal opened under Gen to resolving.
type DownloadAdvanceMsg struct {
	Gen uint64
}

func (DownloadAdvanceMsg) downloadMessage() {}

// DownloadResolvedMsg carries the link lookup for the flow Gen.
type DownloadResolvedMsg struct {
	Gen  uint64
	Resp *api.DownloadResponse
	Err  error
}

func (DownloadResolvedMsg) downloadMessage() {}

// DownloadAutoCloseMsg closes the modal of flow Gen if it is still ready.
type DownloadAutoCloseMsg struct {
	Gen uint64
}

func (DownloadAutoCloseMsg) downloadMessage() {}

// SaveEventMsg is one progress or completion event of a background save.
type SaveEventMsg struct {
	Job   download.Job
	Event download.Event
	ch    <-chan download.Event
}

func (SaveEventMsg) downloadMessage() {}

// TagsFilledMsg reports the tag check of a saved file.
type TagsFilledMsg struct {
	Job    download.Job
	Path   string
	Size   int64
	Status tags.Status
	Err    error
}

func (TagsFilledMsg) downloadMessage() {}

// PreviewMessage is implemented by preview playback messages.
type PreviewMessage interface {
	tea.Msg
	previewMessage()
}

// PreviewResolvedMsg carries the preview URL lookup for Ticket.
type PreviewResolvedMsg struct {
	Ticket preview.Ticket
	Resp   *api.PreviewResponse
	Err    error
}

func (PreviewResolvedMsg) previewMessage() {}

// PreviewLoadedMsg carries the fetched audio for Ticket.
type PreviewLoadedMsg struct {
	Ticket preview.Ticket
	Source *player.Source
	Err    error
}

func (PreviewLoadedMsg) previewMessage() {}

// PreviewAutoStopMsg ends the preview started under Gen after the window.
type PreviewAutoStopMsg struct {
	Gen uint64
}

func (PreviewAutoStopMsg) previewMessage() {}

// PreviewCooldownMsg clears the error of the preview issued under Gen.
type PreviewCooldownMsg struct {
	Gen uint64
}

func (PreviewCooldownMsg) previewMessage() {}

// PreviewTickMsg refreshes the mini player while Gen plays.
type PreviewTickMsg struct {
	Gen uint64
}

func (PreviewTickMsg) previewMessage() {}

// PreviewFinishedMsg is sent when the preview started under Gen stops
// playing, either at its end or because it was stopped or replaced.
type PreviewFinishedMsg struct {
	Gen uint64
}

func (PreviewFinishedMsg) previewMessage() {}

// TokenMessage is implemented by token and renewal messages.
type TokenMessage interface {
	tea.Msg
	tokenMessage()
}

// TokenPollTickMsg triggers a token-info poll.
type TokenPollTickMsg struct{}

func (TokenPollTickMsg) tokenMessage() {}

// TokenInfoMsg carries a token-info answer. ShowDetails is set when the
// user asked for the detail popup.
type TokenInfoMsg struct {
	Resp        *api.TokenInfoResponse
	Err         error
	ShowDetails bool
	At          time.Time
}

func (TokenInfoMsg) tokenMessage() {}

// RenewalPollTickMsg triggers a renewal status poll.
type RenewalPollTickMsg struct{}

func (RenewalPollTickMsg) tokenMessage() {}

// RenewalStatusMsg carries a renewal status or check answer. Manual is
// set for user-triggered checks, which report back in a banner.
type RenewalStatusMsg struct {
	Resp   *api.RenewalResponse
	Err    error
	Manual bool
}

func (RenewalStatusMsg) tokenMessage() {}

// RenewalForceMsg carries the answer of a forced renewal.
type RenewalForceMsg struct {
	Resp *api.RenewalResponse
	Err  error
}

func (RenewalForceMsg) tokenMessage() {}

// forceRenewal is the confirm dialog context for a forced renewal.
type forceRenewal struct{}

// MPRISCommandMsg is a media key or desktop control request.
type MPRISCommandMsg struct {
	Command mpris.Command
}

// FlashTickMsg advances the results title flash.
type FlashTickMsg struct {
	Frame int
}

// StderrMsg is sent when stderr output is captured from the audio stack.
type StderrMsg struct {
	Line string
}

// Notification is a temporary banner under the results.
type Notification struct {
	ID      int64
	Message string
	IsError bool
}

// NotificationClearMsg is sent to clear a specific notification after a delay.
type NotificationClearMsg struct {
	ID int64
}

// NotificationDuration is how long notifications are displayed.
const NotificationDuration = 5 * time.Second
