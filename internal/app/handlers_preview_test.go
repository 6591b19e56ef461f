//nolint:goconst // test cases intentionally use repeated literals
package app

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/llehouerou/tunefetch/internal/api"
	"github.com/llehouerou/tunefetch/internal/mpris"
	"github.com/llehouerou/tunefetch/internal/player"
	"github.com/llehouerou/tunefetch/internal/preview"
)

func previewResp(url string) *api.PreviewResponse {
	return &api.PreviewResponse{Success: true, PreviewURL: url}
}

// playPreview toggles the selected result and walks it to Playing.
func playPreview(t *testing.T, m Model) Model {
	t.Helper()
	m = press(m, " ")
	require.Equal(t, preview.Loading, m.Preview.State())
	ticket := m.Preview.Ticket()

	m, cmd := update(m, PreviewResolvedMsg{Ticket: ticket, Resp: previewResp("http://x/files/101.mp3?preview=1")})
	require.NotNil(t, cmd)
	m, _ = update(m, PreviewLoadedMsg{Ticket: ticket, Source: &player.Source{URL: "http://x/files/101.mp3?preview=1"}})
	require.Equal(t, preview.Playing, m.Preview.State())
	return m
}

func TestPreview_Plays(t *testing.T) {
	m, f := newTestModel(t)
	m = searchFor(t, m, f, "tonight slow")

	m = playPreview(t, m)

	assert.Len(t, f.player.PlayCalls(), 1)
	assert.Equal(t, 0, m.Preview.Index())
	st := f.publisher.last()
	assert.True(t, st.Playing)
	require.NotNil(t, st.Track)
	assert.Equal(t, "101", st.Track.ID)
	assert.Equal(t, preview.MaxDuration, st.Track.Length)
	assert.Equal(t, "Tonight The Rain", m.playerBarState().Title)
}

func TestPreview_ToggleSameItemStops(t *testing.T) {
	m, f := newTestModel(t)
	m = searchFor(t, m, f, "tonight")
	m = playPreview(t, m)
	stops := f.player.StopCalls()

	m = press(m, " ")

	assert.Equal(t, preview.Stopped, m.Preview.State())
	assert.Equal(t, stops+1, f.player.StopCalls())
	assert.False(t, f.publisher.last().Playing)
	assert.False(t, m.playerBarState().Visible())
}

func TestPreview_StaleTicketNeverPlays(t *testing.T) {
	m, f := newTestModel(t)
	m = searchFor(t, m, f, "tonight slow")

	m = press(m, " ")
	first := m.Preview.Ticket()
	m = press(m, "j", " ")
	second := m.Preview.Ticket()
	require.NotEqual(t, first, second)
	require.Equal(t, 1, m.Preview.Index())

	m, cmd := update(m, PreviewResolvedMsg{Ticket: first, Resp: previewResp("http://x/a.mp3")})
	assert.Nil(t, cmd)
	m, _ = update(m, PreviewLoadedMsg{Ticket: first, Source: &player.Source{}})

	assert.Empty(t, f.player.PlayCalls())
	assert.Equal(t, preview.Loading, m.Preview.State())
	assert.Equal(t, 1, m.Preview.Index())
}

func TestPreview_Failures(t *testing.T) {
	tests := []struct {
		name    string
		resolve PreviewResolvedMsg
		loadErr error
		playErr error
	}{
		{
			name:    "backend refuses preview",
			resolve: PreviewResolvedMsg{Resp: &api.PreviewResponse{Success: false, Error: "Preview no disponible"}},
		},
		{
			name:    "transport error",
			resolve: PreviewResolvedMsg{Err: errors.New("connection refused")},
		},
		{
			name:    "fetch fails",
			resolve: PreviewResolvedMsg{Resp: previewResp("http://x/a.mp3")},
			loadErr: player.ErrUnsupported,
		},
		{
			name:    "decoder fails",
			resolve: PreviewResolvedMsg{Resp: previewResp("http://x/a.mp3")},
			playErr: errors.New("mp3: invalid frame"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, f := newTestModel(t)
			f.player.SetPlayError(tt.playErr)
			m = searchFor(t, m, f, "tonight")
			m = press(m, " ")
			ticket := m.Preview.Ticket()

			tt.resolve.Ticket = ticket
			m, _ = update(m, tt.resolve)
			if m.Preview.State() == preview.Loading {
				m, _ = update(m, PreviewLoadedMsg{Ticket: ticket, Source: &player.Source{}, Err: tt.loadErr})
			}

			require.Equal(t, preview.Error, m.Preview.State())
			assert.True(t, lastNotification(m).IsError)
			assert.Equal(t, preview.Message(m.Preview.Err()), lastNotification(m).Message)
			require.Len(t, f.notifier.notifications, 1)
			assert.True(t, m.playerBarState().Visible())

			// Retrying during the cooldown is ignored
			m = press(m, " ")
			assert.Equal(t, preview.Error, m.Preview.State())

			m, _ = update(m, PreviewCooldownMsg{Gen: ticket.Gen})
			assert.Equal(t, preview.Stopped, m.Preview.State())
		})
	}
}

func TestPreview_AutoStop(t *testing.T) {
	m, f := newTestModel(t)
	m = searchFor(t, m, f, "tonight")
	m = playPreview(t, m)
	gen := m.Preview.Gen()

	m, _ = update(m, PreviewAutoStopMsg{Gen: gen - 1})
	require.Equal(t, preview.Playing, m.Preview.State())

	m, _ = update(m, PreviewAutoStopMsg{Gen: gen})

	assert.Equal(t, preview.Stopped, m.Preview.State())
	assert.Equal(t, preview.MsgFinished, lastNotification(m).Message)
}

func TestPreview_FinishedStopsOnlyItsOwnPreview(t *testing.T) {
	m, f := newTestModel(t)
	m = searchFor(t, m, f, "tonight")
	m = playPreview(t, m)
	gen := m.Preview.Gen()

	m, _ = update(m, PreviewFinishedMsg{Gen: gen - 1})
	require.Equal(t, preview.Playing, m.Preview.State())

	m, cmd := update(m, PreviewFinishedMsg{Gen: gen})

	assert.Equal(t, preview.Stopped, m.Preview.State())
	assert.Nil(t, cmd)
}

func TestPreview_WatcherTaggedWithStartedGen(t *testing.T) {
	m, f := newTestModel(t)
	m = searchFor(t, m, f, "tonight slow")
	m = playPreview(t, m)
	gen := m.Preview.Gen()
	watch := WatchPreviewFinished(f.player, gen)

	f.player.SimulateFinished()

	assert.Equal(t, PreviewFinishedMsg{Gen: gen}, watch())
}

func TestPreview_ReplacedPreviewWatcherIgnored(t *testing.T) {
	m, f := newTestModel(t)
	m = searchFor(t, m, f, "tonight slow")
	m = playPreview(t, m)
	first := WatchPreviewFinished(f.player, m.Preview.Gen())

	m = press(m, "j")
	m = playPreview(t, m)

	// Starting the second preview released the first watcher
	m, _ = update(m, first())

	assert.Equal(t, preview.Playing, m.Preview.State())
	assert.Equal(t, 1, m.Preview.Index())
	assert.Equal(t, player.Playing, f.player.State())
}

func TestPreview_TickOnlyWhilePlaying(t *testing.T) {
	m, f := newTestModel(t)
	m = searchFor(t, m, f, "tonight")
	m = playPreview(t, m)
	gen := m.Preview.Gen()

	_, cmd := update(m, PreviewTickMsg{Gen: gen})
	assert.NotNil(t, cmd)

	_, cmd = update(m, PreviewTickMsg{Gen: gen + 1})
	assert.Nil(t, cmd)
}

func TestPreview_StoppedByNewSearch(t *testing.T) {
	m, f := newTestModel(t)
	m = searchFor(t, m, f, "tonight")
	m = playPreview(t, m)

	m = press(m, "/")
	m = searchFor(t, m, f, "slow")

	assert.Equal(t, preview.Stopped, m.Preview.State())
}

func TestPreview_StopKey(t *testing.T) {
	m, f := newTestModel(t)
	m = searchFor(t, m, f, "tonight")
	m = playPreview(t, m)

	m = press(m, "s")

	assert.Equal(t, preview.Stopped, m.Preview.State())
}

func TestMPRISCommands(t *testing.T) {
	tests := []struct {
		name    string
		playing bool
		cmd     mpris.Command
		want    preview.State
	}{
		{name: "stop while playing", playing: true, cmd: mpris.CommandStop, want: preview.Stopped},
		{name: "pause while playing", playing: true, cmd: mpris.CommandPause, want: preview.Stopped},
		{name: "play-pause while playing", playing: true, cmd: mpris.CommandPlayPause, want: preview.Stopped},
		{name: "play-pause while stopped", cmd: mpris.CommandPlayPause, want: preview.Loading},
		{name: "play while stopped", cmd: mpris.CommandPlay, want: preview.Loading},
		{name: "play while playing", playing: true, cmd: mpris.CommandPlay, want: preview.Playing},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, f := newTestModel(t)
			m = searchFor(t, m, f, "tonight")
			if tt.playing {
				m = playPreview(t, m)
			}

			m, _ = update(m, MPRISCommandMsg{Command: tt.cmd})

			assert.Equal(t, tt.want, m.Preview.State())
		})
	}
}
