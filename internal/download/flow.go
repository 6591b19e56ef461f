// Package download implements the download modal state machine and the
// background file saver.
package download

import (
	"time"

	"github.com/llehouerou/tunefetch/internal/api"
	"github.com/llehouerou/tunefetch/internal/quality"
	"github.com/llehouerou/tunefetch/internal/ui/render"
)

// Timings of the modal.
const (
	AdvanceDelay   = 500 * time.Millisecond
	AutoCloseDelay = 2 * time.Second
)

// User-facing texts.
const (
	MsgPreparing       = "Preparing download..."
	MsgResolving       = "Getting download link..."
	MsgStarted         = "Download started"
	MsgNoLink          = "Could not get download link"
	MsgConnectionError = "Connection error during download"
)

// URLBuilder builds the proxy URL that streams a resolved download.
type URLBuilder interface {
	ProxyDownloadURL(downloadURL, filename string, id api.TrackID) string
}

// Flow is the single download modal. Opening a new flow supersedes the
// previous one; late responses for it are dropped by generation.
type Flow struct {
	urls URLBuilder

	state    State
	gen      uint64
	result   api.Result
	quality  quality.Code
	progress int
	text     string
	isError  bool

	downloadURL string
	filename    string
	proxyURL    string
}

// NewFlow creates an idle flow.
func NewFlow(urls URLBuilder) *Flow {
	return &Flow{urls: urls}
}

func (f *Flow) State() State          { return f.state }
func (f *Flow) Gen() uint64           { return f.gen }
func (f *Flow) Result() api.Result    { return f.result }
func (f *Flow) Quality() quality.Code { return f.quality }
func (f *Flow) Progress() int         { return f.progress }
func (f *Flow) Text() string          { return f.text }
func (f *Flow) IsError() bool         { return f.isError }
func (f *Flow) DownloadURL() string   { return f.downloadURL }
func (f *Flow) Filename() string      { return f.filename }
func (f *Flow) ProxyURL() string      { return f.proxyURL }
func (f *Flow) QualityLabel() string  { return f.quality.Label() }

// Open shows the modal for r at quality q and returns its generation.
// The caller schedules Advance after AdvanceDelay.
func (f *Flow) Open(r api.Result, q quality.Code) uint64 {
	f.gen++
	f.state = StateModalOpen
	f.result = r
	f.quality = q
	f.progress = 0
	f.text = MsgPreparing
	f.isError = false
	f.downloadURL = ""
	f.filename = ""
	f.proxyURL = ""
	return f.gen
}

// Advance moves an open modal to resolving. It reports whether the
// caller should request the download link.
func (f *Flow) Advance(gen uint64) bool {
	if gen != f.gen || f.state != StateModalOpen {
		return false
	}
	f.state = StateResolving
	f.progress = 20
	f.text = MsgResolving
	return true
}

// Resolve applies the link response for gen. It reports whether the
// flow reached LinkReady; stale or unexpected responses change nothing.
func (f *Flow) Resolve(gen uint64, resp *api.DownloadResponse, err error) bool {
	if gen != f.gen || f.state != StateResolving {
		return false
	}

	switch {
	case err != nil:
		f.fail(MsgConnectionError)
		return false
	case resp == nil || resp.DownloadURL == "":
		msg := MsgNoLink
		if resp != nil && resp.Error != "" {
			msg = resp.Error
		}
		f.fail(msg)
		return false
	}

	f.progress = 60
	f.downloadURL = resp.DownloadURL
	f.filename = Filename(f.result.Artist, f.result.Title, f.quality)
	f.proxyURL = f.urls.ProxyDownloadURL(resp.DownloadURL, f.filename, f.result.ID)
	f.state = StateLinkReady
	f.progress = 100
	f.text = MsgStarted
	return true
}

func (f *Flow) fail(msg string) {
	f.state = StateError
	f.isError = true
	f.text = msg
}

// AutoClose closes the modal if gen is still the ready flow.
func (f *Flow) AutoClose(gen uint64) bool {
	if gen != f.gen || f.state != StateLinkReady {
		return false
	}
	f.Close()
	return true
}

// Close hides the modal. Pending responses for it become stale.
func (f *Flow) Close() {
	if !f.state.IsOpen() {
		return
	}
	f.gen++
	f.state = StateClosed
}

// Title returns the sanitized modal heading.
func (f *Flow) Title() string {
	return render.Sanitize(f.result.Title)
}

// Artist returns the sanitized artist line.
func (f *Flow) Artist() string {
	return render.Sanitize(f.result.Artist)
}
