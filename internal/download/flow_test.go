package download

import (
	"errors"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/llehouerou/tunefetch/internal/api"
	"github.com/llehouerou/tunefetch/internal/quality"
)

type fakeURLs struct{}

func (fakeURLs) ProxyDownloadURL(downloadURL, filename string, id api.TrackID) string {
	q := url.Values{}
	q.Set("url", downloadURL)
	q.Set("filename", filename)
	q.Set("track_id", string(id))
	return "http://backend/api/proxy-download?" + q.Encode()
}

var song = api.Result{ID: "42", Title: "Song", Artist: "Artist", Cover: "http://c/1.jpg"}

func openResolving(t *testing.T, f *Flow, q quality.Code) uint64 {
	t.Helper()
	gen := f.Open(song, q)
	require.True(t, f.Advance(gen))
	return gen
}

func TestFlow_OpenAndAdvance(t *testing.T) {
	f := NewFlow(fakeURLs{})
	assert.Equal(t, StateIdle, f.State())

	gen := f.Open(song, quality.FLAC16)
	assert.Equal(t, StateModalOpen, f.State())
	assert.Equal(t, 0, f.Progress())
	assert.Equal(t, "Song", f.Title())
	assert.Equal(t, "Artist", f.Artist())
	assert.Equal(t, quality.FLAC16.Label(), f.QualityLabel())

	assert.False(t, f.Advance(gen+1), "stale advance must be ignored")
	assert.True(t, f.Advance(gen))
	assert.Equal(t, StateResolving, f.State())
	assert.Equal(t, 20, f.Progress())
	assert.Equal(t, MsgResolving, f.Text())
	assert.False(t, f.Advance(gen), "advance only applies once")
}

func TestFlow_ResolveSuccess(t *testing.T) {
	tests := []struct {
		name    string
		quality quality.Code
		want    string
	}{
		{"lossy is mp3", quality.MP3320, "Artist - Song.mp3"},
		{"cd is flac", quality.FLAC16, "Artist - Song.flac"},
		{"hires is flac", quality.FLAC24x96, "Artist - Song.flac"},
		{"max is flac", quality.FLAC24Max, "Artist - Song.flac"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := NewFlow(fakeURLs{})
			gen := openResolving(t, f, tt.quality)

			ok := f.Resolve(gen, &api.DownloadResponse{Success: true, DownloadURL: "https://cdn/x?sig=1"}, nil)
			require.True(t, ok)
			assert.Equal(t, StateLinkReady, f.State())
			assert.Equal(t, 100, f.Progress())
			assert.Equal(t, MsgStarted, f.Text())
			assert.Equal(t, tt.want, f.Filename())

			u, err := url.Parse(f.ProxyURL())
			require.NoError(t, err)
			assert.Equal(t, "https://cdn/x?sig=1", u.Query().Get("url"))
			assert.Equal(t, tt.want, u.Query().Get("filename"))
			assert.Equal(t, "42", u.Query().Get("track_id"))
		})
	}
}

func TestFlow_ResolveFailureKeepsModalOpen(t *testing.T) {
	tests := []struct {
		name string
		resp *api.DownloadResponse
		err  error
		want string
	}{
		{"backend error verbatim", &api.DownloadResponse{Error: "Track no encontrado"}, nil, "Track no encontrado"},
		{"missing url fallback", &api.DownloadResponse{Success: true}, nil, MsgNoLink},
		{"nil response", nil, nil, MsgNoLink},
		{"transport error", nil, errors.New("execute request: refused"), MsgConnectionError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := NewFlow(fakeURLs{})
			gen := openResolving(t, f, quality.FLAC16)

			assert.False(t, f.Resolve(gen, tt.resp, tt.err))
			assert.Equal(t, StateError, f.State())
			assert.True(t, f.State().IsOpen(), "modal stays open on error")
			assert.True(t, f.IsError())
			assert.Equal(t, tt.want, f.Text())
			assert.False(t, f.AutoClose(gen), "errors are never auto-closed")

			f.Close()
			assert.Equal(t, StateClosed, f.State())
		})
	}
}

func TestFlow_SupersededResponseIgnored(t *testing.T) {
	f := NewFlow(fakeURLs{})
	oldGen := openResolving(t, f, quality.FLAC16)

	other := api.Result{ID: "7", Title: "Other", Artist: "Band"}
	newGen := f.Open(other, quality.MP3320)
	require.True(t, f.Advance(newGen))

	assert.False(t, f.Resolve(oldGen, &api.DownloadResponse{DownloadURL: "https://cdn/old"}, nil))
	assert.Equal(t, StateResolving, f.State())
	assert.Empty(t, f.ProxyURL())
	assert.Equal(t, api.TrackID("7"), f.Result().ID)

	require.True(t, f.Resolve(newGen, &api.DownloadResponse{DownloadURL: "https://cdn/new"}, nil))
	assert.Equal(t, "Band - Other.mp3", f.Filename())
}

func TestFlow_CloseMakesPendingResponseStale(t *testing.T) {
	f := NewFlow(fakeURLs{})
	gen := openResolving(t, f, quality.FLAC16)
	f.Close()

	assert.False(t, f.Resolve(gen, &api.DownloadResponse{DownloadURL: "https://cdn/x"}, nil))
	assert.Equal(t, StateClosed, f.State())
}

func TestFlow_AutoClose(t *testing.T) {
	f := NewFlow(fakeURLs{})
	gen := openResolving(t, f, quality.FLAC16)
	require.True(t, f.Resolve(gen, &api.DownloadResponse{DownloadURL: "https://cdn/x"}, nil))

	assert.False(t, f.AutoClose(gen+5))
	assert.True(t, f.AutoClose(gen))
	assert.Equal(t, StateClosed, f.State())
	assert.False(t, f.State().IsOpen())
}

func TestState_String(t *testing.T) {
	for s := StateIdle; s <= StateClosed; s++ {
		assert.NotEqual(t, "unknown", s.String())
	}
	assert.Equal(t, "unknown", State(99).String())
}
