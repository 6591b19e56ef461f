// internal/app/commands.go
package app

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/tunefetch/internal/api"
	"github.com/llehouerou/tunefetch/internal/download"
	"github.com/llehouerou/tunefetch/internal/player"
	"github.com/llehouerou/tunefetch/internal/preview"
	"github.com/llehouerou/tunefetch/internal/search"
	"github.com/llehouerou/tunefetch/internal/stderr"
	"github.com/llehouerou/tunefetch/internal/tags"
)

// Results title flash.
const (
	flashFrames   = 6
	flashInterval = 90 * time.Millisecond
)

// SearchCmd sends req to the backend.
func SearchCmd(ctx context.Context, client *api.Client, req search.Request) tea.Cmd {
	return func() tea.Msg {
		resp, err := client.Search(ctx, req.API())
		return SearchDoneMsg{Gen: req.Gen, Resp: resp, Err: err}
	}
}

// DownloadAdvanceCmd schedules the modal's move to resolving.
func DownloadAdvanceCmd(gen uint64) tea.Cmd {
	return tea.Tick(download.AdvanceDelay, func(time.Time) tea.Msg {
		return DownloadAdvanceMsg{Gen: gen}
	})
}

// ResolveDownloadCmd asks the backend for the download link of id.
func ResolveDownloadCmd(ctx context.Context, client *api.Client, gen uint64, id api.TrackID, quality string) tea.Cmd {
	return func() tea.Msg {
		resp, err := client.Download(ctx, id, quality)
		return DownloadResolvedMsg{Gen: gen, Resp: resp, Err: err}
	}
}

// DownloadAutoCloseCmd schedules the ready modal's auto-close.
func DownloadAutoCloseCmd(gen uint64) tea.Cmd {
	return tea.Tick(download.AutoCloseDelay, func(time.Time) tea.Msg {
		return DownloadAutoCloseMsg{Gen: gen}
	})
}

// WaitForSave returns a command that waits for the next event of a save.
func WaitForSave(job download.Job, ch <-chan download.Event) tea.Cmd {
	return waitForChannel(ch, func(ev download.Event, ok bool) tea.Msg {
		if !ok {
			return nil
		}
		return SaveEventMsg{Job: job, Event: ev, ch: ch}
	})
}

// FillTagsCmd checks the saved file at path and fills missing tags.
func FillTagsCmd(ctx context.Context, filler *tags.Filler, job download.Job, path string, size int64) tea.Cmd {
	return func() tea.Msg {
		status, err := filler.Fill(ctx, path, tags.SourceFromResult(job.Result))
		return TagsFilledMsg{Job: job, Path: path, Size: size, Status: status, Err: err}
	}
}

// ResolvePreviewCmd asks the backend for the preview URL of id.
func ResolvePreviewCmd(ctx context.Context, client *api.Client, t preview.Ticket, id api.TrackID) tea.Cmd {
	return func() tea.Msg {
		resp, err := client.Preview(ctx, id)
		return PreviewResolvedMsg{Ticket: t, Resp: resp, Err: err}
	}
}

// LoadPreviewCmd downloads the preview audio. The player is not touched
// here; Update starts it only if the ticket is still current.
func LoadPreviewCmd(ctx context.Context, opener player.Opener, t preview.Ticket, url string) tea.Cmd {
	return func() tea.Msg {
		src, err := player.Fetch(ctx, opener, url)
		return PreviewLoadedMsg{Ticket: t, Source: src, Err: err}
	}
}

// PreviewAutoStopCmd schedules the end of the preview window.
func PreviewAutoStopCmd(gen uint64) tea.Cmd {
	return tea.Tick(preview.MaxDuration, func(time.Time) tea.Msg {
		return PreviewAutoStopMsg{Gen: gen}
	})
}

// PreviewCooldownCmd schedules the return to idle after an error.
func PreviewCooldownCmd(gen uint64) tea.Cmd {
	return tea.Tick(preview.CooldownDelay, func(time.Time) tea.Msg {
		return PreviewCooldownMsg{Gen: gen}
	})
}

// PreviewTickCmd schedules the next mini player refresh.
func PreviewTickCmd(gen uint64) tea.Cmd {
	return tea.Tick(preview.TickInterval, func(time.Time) tea.Msg {
		return PreviewTickMsg{Gen: gen}
	})
}

// WatchPreviewFinished waits for the preview just started under gen to
// stop. The channel is taken now, so a later Play cannot hand this watcher
// the next preview's signal.
func WatchPreviewFinished(p player.Interface, gen uint64) tea.Cmd {
	finished := p.FinishedChan()
	return func() tea.Msg {
		<-finished
		return PreviewFinishedMsg{Gen: gen}
	}
}

// TokenInfoCmd fetches the token status.
func TokenInfoCmd(ctx context.Context, client *api.Client, showDetails bool) tea.Cmd {
	return func() tea.Msg {
		resp, err := client.TokenInfo(ctx)
		return TokenInfoMsg{Resp: resp, Err: err, ShowDetails: showDetails, At: time.Now()}
	}
}

// TokenPollTickCmd schedules the next token poll.
func TokenPollTickCmd(interval time.Duration) tea.Cmd {
	return tea.Tick(interval, func(time.Time) tea.Msg {
		return TokenPollTickMsg{}
	})
}

// RenewalStatusCmd fetches the renewal status, or runs a check when manual.
func RenewalStatusCmd(ctx context.Context, client *api.Client, manual bool) tea.Cmd {
	return func() tea.Msg {
		call := client.RenewalStatus
		if manual {
			call = client.RenewalCheck
		}
		resp, err := call(ctx)
		return RenewalStatusMsg{Resp: resp, Err: err, Manual: manual}
	}
}

// RenewalPollTickCmd schedules the next renewal status poll.
func RenewalPollTickCmd(interval time.Duration) tea.Cmd {
	return tea.Tick(interval, func(time.Time) tea.Msg {
		return RenewalPollTickMsg{}
	})
}

// RenewalForceCmd forces a credential renewal.
func RenewalForceCmd(ctx context.Context, client *api.Client) tea.Cmd {
	return func() tea.Msg {
		resp, err := client.RenewalForce(ctx)
		return RenewalForceMsg{Resp: resp, Err: err}
	}
}

// FlashTickCmd schedules the next frame of the results title flash.
func FlashTickCmd(frame int) tea.Cmd {
	return tea.Tick(flashInterval, func(time.Time) tea.Msg {
		return FlashTickMsg{Frame: frame}
	})
}

// NotificationClearCmd returns a command that clears the notification after a delay.
func NotificationClearCmd(id int64) tea.Cmd {
	return tea.Tick(NotificationDuration, func(time.Time) tea.Msg {
		return NotificationClearMsg{ID: id}
	})
}

// waitForChannel creates a command that waits for a value from a channel and converts it to a message.
// onResult receives the value and a boolean indicating if the channel is still open (false means channel closed).
func waitForChannel[T any](ch <-chan T, onResult func(T, bool) tea.Msg) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		result, ok := <-ch
		return onResult(result, ok)
	}
}

// WatchStderr returns a command that waits for stderr output from the audio stack.
func WatchStderr() tea.Cmd {
	var ch <-chan string = stderr.Messages
	return waitForChannel(ch, func(line string, ok bool) tea.Msg {
		if !ok {
			return nil
		}
		return StderrMsg{Line: line}
	})
}
