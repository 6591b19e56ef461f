//go:build linux

package mpris

import (
	"fmt"
	"hash/fnv"

	"github.com/godbus/dbus/v5"
	"github.com/quarckster/go-mpris-server/pkg/server"
	"github.com/quarckster/go-mpris-server/pkg/types"
)

// Adapter connects the preview player to MPRIS over D-Bus.
type Adapter struct {
	server *server.Server
	status *statusBox
}

// New creates and starts a new MPRIS adapter. send is called from the
// D-Bus goroutine for every control request.
func New(send func(Command)) (*Adapter, error) {
	a := &Adapter{status: &statusBox{}}

	rootAdapter := &rootAdapter{}
	playerAdapter := &playerAdapter{status: a.status, send: send}

	a.server = server.NewServer(BusName, rootAdapter, playerAdapter)

	go func() {
		_ = a.server.Listen()
	}()

	return a, nil
}

// SetStatus replaces the snapshot reported to the desktop.
func (a *Adapter) SetStatus(s Status) {
	a.status.set(s)
}

// Close stops the adapter and releases D-Bus resources.
func (a *Adapter) Close() error {
	return a.server.Stop()
}

// rootAdapter implements OrgMprisMediaPlayer2Adapter.
type rootAdapter struct{}

func (r *rootAdapter) Raise() error {
	return nil // Not supported
}

func (r *rootAdapter) Quit() error {
	return nil // Not supported - app manages its own lifecycle
}

func (r *rootAdapter) CanQuit() (bool, error) {
	return false, nil
}

func (r *rootAdapter) CanRaise() (bool, error) {
	return false, nil
}

func (r *rootAdapter) HasTrackList() (bool, error) {
	return false, nil
}

func (r *rootAdapter) Identity() (string, error) {
	return "tunefetch", nil
}

//nolint:revive // Method name required by interface.
func (r *rootAdapter) SupportedUriSchemes() ([]string, error) {
	return []string{"https"}, nil
}

func (r *rootAdapter) SupportedMimeTypes() ([]string, error) {
	return []string{"audio/mpeg", "audio/flac"}, nil
}

// playerAdapter implements OrgMprisMediaPlayer2PlayerAdapter.
type playerAdapter struct {
	status *statusBox
	send   func(Command)
}

func (p *playerAdapter) request(c Command) error {
	if p.send != nil {
		p.send(c)
	}
	return nil
}

func (p *playerAdapter) Next() error      { return nil }
func (p *playerAdapter) Previous() error  { return nil }
func (p *playerAdapter) Pause() error     { return p.request(CommandPause) }
func (p *playerAdapter) PlayPause() error { return p.request(CommandPlayPause) }
func (p *playerAdapter) Stop() error      { return p.request(CommandStop) }
func (p *playerAdapter) Play() error      { return p.request(CommandPlay) }

// Previews are short; seeking is not offered.
func (p *playerAdapter) Seek(_ types.Microseconds) error { return nil }

func (p *playerAdapter) SetPosition(_ string, _ types.Microseconds) error { return nil }

//nolint:revive // Method name required by interface.
func (p *playerAdapter) OpenUri(_ string) error {
	return nil // Not supported
}

func (p *playerAdapter) PlaybackStatus() (types.PlaybackStatus, error) {
	if p.status.get().Playing {
		return types.PlaybackStatusPlaying, nil
	}
	return types.PlaybackStatusStopped, nil
}

func (p *playerAdapter) Rate() (float64, error) {
	return 1.0, nil
}

func (p *playerAdapter) SetRate(_ float64) error {
	return nil // Not supported
}

func (p *playerAdapter) Metadata() (types.Metadata, error) {
	track := p.status.get().Track
	if track == nil {
		return types.Metadata{}, nil
	}

	meta := types.Metadata{
		TrackId: dbus.ObjectPath(formatTrackID(track.ID)),
		Length:  types.Microseconds(track.Length.Microseconds()),
		Title:   track.Title,
		Artist:  []string{track.Artist},
		Album:   track.Album,
		ArtUrl:  ArtURL(track.Cover),
	}
	return meta, nil
}

func (p *playerAdapter) Volume() (float64, error) {
	return 1.0, nil
}

func (p *playerAdapter) SetVolume(_ float64) error {
	return nil // Not supported
}

func (p *playerAdapter) Position() (int64, error) {
	return p.status.get().Position.Microseconds(), nil
}

func (p *playerAdapter) MinimumRate() (float64, error) {
	return 1.0, nil
}

func (p *playerAdapter) MaximumRate() (float64, error) {
	return 1.0, nil
}

func (p *playerAdapter) CanGoNext() (bool, error) {
	return false, nil
}

func (p *playerAdapter) CanGoPrevious() (bool, error) {
	return false, nil
}

func (p *playerAdapter) CanPlay() (bool, error) {
	return p.status.get().Track != nil, nil
}

func (p *playerAdapter) CanPause() (bool, error) {
	return true, nil
}

func (p *playerAdapter) CanSeek() (bool, error) {
	return false, nil
}

func (p *playerAdapter) CanControl() (bool, error) {
	return true, nil
}

func formatTrackID(id string) string {
	h := fnv.New64a()
	h.Write([]byte(id))
	return fmt.Sprintf("/org/mpris/MediaPlayer2/Track/%x", h.Sum64())
}
