// internal/app/interfaces.go
package app

import (
	"github.com/atotto/clipboard"
	"go.uber.org/zap"

	"github.com/llehouerou/tunefetch/internal/mpris"
)

// Presenter receives presentation events at the matching transitions.
// The app does not depend on what it does with them.
type Presenter interface {
	ResultsRendered(count int)
	ModalOpened(trackID string)
	ModalClosed()
}

// StatusPublisher exposes the preview state to the desktop (MPRIS).
type StatusPublisher interface {
	SetStatus(s mpris.Status)
}

// Clipboard writes text to the system clipboard.
type Clipboard interface {
	WriteAll(text string) error
}

type systemClipboard struct{}

func (systemClipboard) WriteAll(text string) error {
	return clipboard.WriteAll(text)
}

// logPresenter is the default Presenter. The results flash itself is
// driven by the app; this only records the events.
type logPresenter struct {
	log *zap.Logger
}

func (p logPresenter) ResultsRendered(count int) {
	p.log.Debug("results rendered", zap.Int("count", count))
}

func (p logPresenter) ModalOpened(trackID string) {
	p.log.Debug("download modal opened", zap.String("track_id", trackID))
}

func (p logPresenter) ModalClosed() {
	p.log.Debug("download modal closed")
}

var (
	_ Presenter       = logPresenter{}
	_ StatusPublisher = (*mpris.Adapter)(nil)
	_ Clipboard       = systemClipboard{}
)
