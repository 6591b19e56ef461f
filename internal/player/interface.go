package player

import "time"

// Interface is the player contract used by the app, so tests never
// touch the audio device.
type Interface interface {
	Play(src *Source) error
	Stop()
	Pause()
	Resume()
	Toggle()
	State() State
	Source() *Source
	Position() time.Duration
	Duration() time.Duration
	SetVolume(level float64)
	FinishedChan() <-chan struct{}
}

var _ Interface = (*Player)(nil)
