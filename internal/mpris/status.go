// Package mpris exposes the preview player over the MPRIS D-Bus interface.
//
// The adapter never touches player state directly: it reads the last
// Status pushed by the app and forwards control requests as Commands.
package mpris

import (
	"sync"
	"time"
)

// BusName is the suffix of org.mpris.MediaPlayer2.<name>.
const BusName = "tunefetch"

// Command is a control request coming from the desktop.
type Command int

const (
	CommandPlayPause Command = iota
	CommandPlay
	CommandPause
	CommandStop
)

func (c Command) String() string {
	switch c {
	case CommandPlayPause:
		return "play-pause"
	case CommandPlay:
		return "play"
	case CommandPause:
		return "pause"
	case CommandStop:
		return "stop"
	}
	return "unknown"
}

// Track describes the previewed result.
type Track struct {
	ID     string
	Title  string
	Artist string
	Album  string
	Cover  string
	Length time.Duration
}

// Status is the snapshot of the preview reported to the desktop.
type Status struct {
	Playing  bool
	Track    *Track
	Position time.Duration
}

// statusBox guards the snapshot shared with the D-Bus goroutine.
type statusBox struct {
	mu     sync.RWMutex
	status Status
}

func (b *statusBox) set(s Status) {
	b.mu.Lock()
	b.status = s
	b.mu.Unlock()
}

func (b *statusBox) get() Status {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.status
}
