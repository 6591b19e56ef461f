// Package preview holds the state machine for short track previews.
//
// A Session tracks which result is previewing and in which phase. Every
// load is issued under a Ticket; once the user stops, switches track or
// the session ends, older tickets are no longer current and whatever
// they resolve to is dropped.
//
//	Stopped ──toggle──▶ Loading ──started──▶ Playing
//	   ▲                   │                    │
//	   │ 3s cooldown       ▼ fail               │ stop, end or 30s
//	   └─────────────── Error                   │
//	   ▲                                        │
//	   └────────────────────────────────────────┘
package preview

import (
	"errors"
	"fmt"
	"time"
)

// Timings used by the app when scheduling preview messages.
const (
	MaxDuration   = 30 * time.Second
	CooldownDelay = 3 * time.Second
	TickInterval  = 100 * time.Millisecond
)

// MsgFinished is shown when the 30 second window runs out.
const MsgFinished = "Preview finished"

// State is the phase of the current preview.
type State int

const (
	Stopped State = iota
	Loading
	Playing
	Error
)

func (s State) String() string {
	switch s {
	case Stopped:
		return "Stopped"
	case Loading:
		return "Loading"
	case Playing:
		return "Playing"
	case Error:
		return "Error"
	default:
		return "Unknown"
	}
}

// IsActive reports whether audio is loading or playing.
func (s State) IsActive() bool {
	return s == Loading || s == Playing
}

// Ticket identifies one preview request.
type Ticket struct {
	Gen   uint64
	Index int
}

// ActionKind tells the caller what a toggle requires.
type ActionKind int

const (
	// ActionNone means the toggle was ignored.
	ActionNone ActionKind = iota
	// ActionStop means the caller must stop the player.
	ActionStop
	// ActionLoad means the caller must stop any player and load Ticket.
	ActionLoad
)

// Action is the result of Session.Toggle.
type Action struct {
	Kind   ActionKind
	Ticket Ticket
}

// Session is the preview state. The zero value is not usable; call New.
type Session struct {
	state State
	index int
	gen   uint64
	url   string
	err   error
}

// New returns a stopped session.
func New() *Session {
	return &Session{index: -1}
}

func (s *Session) State() State { return s.state }
func (s *Session) Index() int   { return s.index }
func (s *Session) Gen() uint64  { return s.gen }
func (s *Session) URL() string  { return s.url }
func (s *Session) Err() error   { return s.err }

// Ticket returns the ticket of the current preview.
func (s *Session) Ticket() Ticket {
	return Ticket{Gen: s.gen, Index: s.index}
}

// StateOf returns the state of the control for the result at index.
func (s *Session) StateOf(index int) State {
	if index != s.index {
		return Stopped
	}
	return s.state
}

// Current reports whether t still owns the session.
func (s *Session) Current(t Ticket) bool {
	return t.Gen == s.gen && t.Index == s.index && s.state.IsActive()
}

// Toggle handles a play/stop press on the result at index.
func (s *Session) Toggle(index int) Action {
	if index == s.index {
		switch s.state {
		case Error:
			return Action{Kind: ActionNone}
		case Loading, Playing:
			s.Stop()
			return Action{Kind: ActionStop}
		}
	}

	s.gen++
	s.index = index
	s.state = Loading
	s.url = ""
	s.err = nil
	return Action{Kind: ActionLoad, Ticket: s.Ticket()}
}

// Resolved records the preview URL lookup for t. A failed lookup moves
// the session to Error. It returns false for stale tickets.
func (s *Session) Resolved(t Ticket, url string, err error) bool {
	if !s.Current(t) || s.state != Loading {
		return false
	}
	if err != nil {
		s.fail(err)
		return true
	}
	s.url = url
	return true
}

// Started marks t as playing. It returns false for stale tickets; the
// caller must then discard the audio it just opened.
func (s *Session) Started(t Ticket) bool {
	if !s.Current(t) || s.state != Loading {
		return false
	}
	s.state = Playing
	return true
}

// Fail moves the session to Error when t is current.
func (s *Session) Fail(t Ticket, err error) bool {
	if !s.Current(t) {
		return false
	}
	s.fail(err)
	return true
}

func (s *Session) fail(err error) {
	if err == nil {
		err = errors.New("preview failed")
	}
	s.state = Error
	s.err = err
}

// Stop ends any preview. Pending tickets become stale.
func (s *Session) Stop() {
	s.gen++
	s.state = Stopped
	s.index = -1
	s.url = ""
	s.err = nil
}

// End stops the preview started under gen, for a natural end or the
// 30 second limit. It returns false when gen is stale or nothing plays.
func (s *Session) End(gen uint64) bool {
	if gen != s.gen || s.state != Playing {
		return false
	}
	s.Stop()
	return true
}

// Cooldown clears the error started under gen.
func (s *Session) Cooldown(gen uint64) bool {
	if gen != s.gen || s.state != Error {
		return false
	}
	s.state = Stopped
	s.index = -1
	s.err = nil
	return true
}

// Progress scales pos to the preview window, in [0, 1].
func Progress(pos time.Duration) float64 {
	if pos <= 0 {
		return 0
	}
	if pos >= MaxDuration {
		return 1
	}
	return float64(pos) / float64(MaxDuration)
}

// FormatPosition renders pos as M:SS.
func FormatPosition(pos time.Duration) string {
	if pos < 0 {
		pos = 0
	}
	secs := int(pos / time.Second)
	return fmt.Sprintf("%d:%02d", secs/60, secs%60)
}
