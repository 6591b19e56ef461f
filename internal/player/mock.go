package player

import "time"

// Mock is a test double for Player.
type Mock struct {
	state     State
	source    *Source
	position  time.Duration
	duration  time.Duration
	volume    float64
	playErr   error
	playCalls []*Source
	stopCalls int
	ended     *endSignal
}

// NewMock creates a new mock player for testing.
func NewMock() *Mock {
	return &Mock{
		state:  Stopped,
		volume: 1,
		ended:  newEndSignal(),
	}
}

func (m *Mock) Play(src *Source) error {
	m.playCalls = append(m.playCalls, src)
	m.ended.fire()
	m.ended = newEndSignal()
	if m.playErr != nil {
		return m.playErr
	}
	m.source = src
	m.state = Playing
	return nil
}

func (m *Mock) Stop() {
	m.stopCalls++
	m.ended.fire()
	m.state = Stopped
	m.source = nil
}

func (m *Mock) Pause() {
	if m.state == Playing {
		m.state = Paused
	}
}

func (m *Mock) Resume() {
	if m.state == Paused {
		m.state = Playing
	}
}

func (m *Mock) Toggle() {
	switch m.state {
	case Playing:
		m.Pause()
	case Paused:
		m.Resume()
	case Stopped:
	}
}

func (m *Mock) State() State                  { return m.state }
func (m *Mock) Source() *Source               { return m.source }
func (m *Mock) Position() time.Duration       { return m.position }
func (m *Mock) Duration() time.Duration       { return m.duration }
func (m *Mock) SetVolume(level float64)       { m.volume = level }
func (m *Mock) FinishedChan() <-chan struct{} { return m.ended.ch }

// Test helpers

func (m *Mock) SetPlayError(err error)      { m.playErr = err }
func (m *Mock) PlayCalls() []*Source        { return m.playCalls }
func (m *Mock) StopCalls() int              { return m.stopCalls }
func (m *Mock) Volume() float64             { return m.volume }
func (m *Mock) SetPosition(d time.Duration) { m.position = d }
func (m *Mock) SetDuration(d time.Duration) { m.duration = d }

// SimulateFinished simulates a preview playing to its end.
func (m *Mock) SimulateFinished() {
	m.ended.fire()
}

var _ Interface = (*Mock)(nil)
