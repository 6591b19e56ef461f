// Package player plays preview audio through the beep speaker.
package player

import (
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/effects"
	"github.com/gopxl/beep/v2/flac"
	"github.com/gopxl/beep/v2/speaker"
)

type State int

const (
	Stopped State = iota
	Playing
	Paused
)

var (
	// ErrDevice wraps failures to open the audio output.
	ErrDevice = errors.New("audio device unavailable")
	// ErrDecode wraps failures to decode the preview stream.
	ErrDecode = errors.New("decode audio")
)

type Player struct {
	state       State
	ctrl        *beep.Ctrl
	volume      *effects.Volume
	streamer    beep.StreamSeekCloser
	format      beep.Format
	source      *Source
	volumeLevel float64
	muted       bool
	ended       *endSignal
}

// endSignal is closed once when a preview stops for any reason.
type endSignal struct {
	ch   chan struct{}
	once sync.Once
}

func newEndSignal() *endSignal { return &endSignal{ch: make(chan struct{})} }

func (s *endSignal) fire() { s.once.Do(func() { close(s.ch) }) }

var (
	speakerInitialized bool
	speakerSampleRate  beep.SampleRate
)

func New() *Player {
	return &Player{
		state:       Stopped,
		volumeLevel: 1.0,
		ended:       newEndSignal(),
	}
}

// Play stops any current preview and starts src. It returns once the
// stream is handed to the speaker.
func (p *Player) Play(src *Source) error {
	p.Stop()
	p.ended = newEndSignal()

	var streamer beep.StreamSeekCloser
	var format beep.Format
	var err error

	switch src.Format {
	case FormatMP3:
		streamer, format, err = decodeGoMP3(src.reader())
	case FormatFLAC:
		r := src.reader()
		// Some taggers prepend ID3v2 to FLAC files
		if err := skipID3v2(r); err != nil {
			return fmt.Errorf("%w: %w", ErrDecode, err)
		}
		streamer, format, err = flac.Decode(r)
	default:
		return ErrUnsupported
	}
	if err != nil {
		return fmt.Errorf("%w: %w", ErrDecode, err)
	}

	if !speakerInitialized {
		speakerSampleRate = format.SampleRate
		if err := speaker.Init(speakerSampleRate, speakerSampleRate.N(time.Second/10)); err != nil {
			streamer.Close()
			return fmt.Errorf("%w: %w", ErrDevice, err)
		}
		speakerInitialized = true
	}

	p.streamer = streamer
	p.format = format
	p.source = src

	// Resample if the preview's sample rate differs from the speaker's
	var playStreamer beep.Streamer = streamer
	if format.SampleRate != speakerSampleRate {
		playStreamer = beep.Resample(4, format.SampleRate, speakerSampleRate, streamer)
	}
	p.ctrl = &beep.Ctrl{Streamer: playStreamer}
	p.volume = &effects.Volume{
		Streamer: p.ctrl,
		Base:     2,
		Volume:   levelToVolume(p.volumeLevel),
		Silent:   p.muted,
	}

	p.state = Playing
	speaker.Play(beep.Seq(p.volume, beep.Callback(p.ended.fire)))

	return nil
}

func (p *Player) State() State { return p.state }

// Source returns the preview being played, or nil.
func (p *Player) Source() *Source { return p.source }

// Duration returns the decoded length of the current preview.
func (p *Player) Duration() time.Duration {
	if p.streamer == nil {
		return 0
	}
	return p.format.SampleRate.D(p.streamer.Len())
}

// FinishedChan returns a channel closed when the current preview plays to
// its end, is stopped, or is replaced by the next Play. Callers must take
// it after Play returns.
func (p *Player) FinishedChan() <-chan struct{} {
	return p.ended.ch
}

// skipID3v2 skips an ID3v2 tag if present at the start of r.
func skipID3v2(r *sourceReader) error {
	header := make([]byte, 10)
	n, err := r.Read(header)
	if err != nil {
		return err
	}
	if n < 10 || string(header[0:3]) != "ID3" {
		_, err = r.Seek(0, io.SeekStart)
		return err
	}

	// ID3v2 size is a syncsafe integer in bytes 6-9
	size := int64(header[6])<<21 | int64(header[7])<<14 | int64(header[8])<<7 | int64(header[9])
	_, err = r.Seek(10+size, io.SeekStart)
	return err
}
