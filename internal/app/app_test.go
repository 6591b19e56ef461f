//nolint:goconst // test cases intentionally use repeated literals
package app

import (
	"context"
	"errors"
	"net/http/httptest"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/llehouerou/tunefetch/internal/api"
	"github.com/llehouerou/tunefetch/internal/config"
	"github.com/llehouerou/tunefetch/internal/mockapi"
	"github.com/llehouerou/tunefetch/internal/mpris"
	"github.com/llehouerou/tunefetch/internal/notify"
	"github.com/llehouerou/tunefetch/internal/player"
	"github.com/llehouerou/tunefetch/internal/quality"
	"github.com/llehouerou/tunefetch/internal/search"
	"github.com/llehouerou/tunefetch/internal/state"
)

type mockNotifier struct {
	notifications []notify.Notification
	lastID        uint32
}

func (m *mockNotifier) Notify(n notify.Notification) (uint32, error) {
	m.lastID++
	m.notifications = append(m.notifications, n)
	return m.lastID, nil
}

func (m *mockNotifier) Close(_ uint32) error { return nil }

type mockClipboard struct {
	text string
	err  error
}

func (c *mockClipboard) WriteAll(text string) error {
	if c.err != nil {
		return c.err
	}
	c.text = text
	return nil
}

type mockPresenter struct {
	rendered []int
	opened   []string
	closed   int
}

func (p *mockPresenter) ResultsRendered(count int)  { p.rendered = append(p.rendered, count) }
func (p *mockPresenter) ModalOpened(trackID string) { p.opened = append(p.opened, trackID) }
func (p *mockPresenter) ModalClosed()               { p.closed++ }

type mockPublisher struct {
	statuses []mpris.Status
}

func (p *mockPublisher) SetStatus(s mpris.Status) { p.statuses = append(p.statuses, s) }

func (p *mockPublisher) last() mpris.Status {
	if len(p.statuses) == 0 {
		return mpris.Status{}
	}
	return p.statuses[len(p.statuses)-1]
}

// fixture holds the doubles behind a test model.
type fixture struct {
	backend   *mockapi.Server
	client    *api.Client
	cfg       *config.Config
	player    *player.Mock
	state     *state.Mock
	notifier  *mockNotifier
	clipboard *mockClipboard
	presenter *mockPresenter
	publisher *mockPublisher
}

func newFixture(t *testing.T, opts ...mockapi.Option) *fixture {
	t.Helper()
	backend := mockapi.New(opts...)
	srv := httptest.NewServer(backend.Handler())
	t.Cleanup(srv.Close)

	noTags := false
	cfg := &config.Config{}
	cfg.API.BaseURL = srv.URL
	cfg.Download.Dir = t.TempDir()
	cfg.Download.TagFill = &noTags

	return &fixture{
		backend:   backend,
		client:    api.NewClient(srv.URL, 5*time.Second),
		cfg:       cfg,
		player:    player.NewMock(),
		state:     state.NewMock(),
		notifier:  &mockNotifier{},
		clipboard: &mockClipboard{},
		presenter: &mockPresenter{},
		publisher: &mockPublisher{},
	}
}

func (f *fixture) model() Model {
	m := New(f.cfg, Deps{
		Client:    f.client,
		Player:    f.player,
		State:     f.state,
		Notifier:  f.notifier,
		MPRIS:     f.publisher,
		Presenter: f.presenter,
		Clipboard: f.clipboard,
	})
	m, _ = update(m, tea.WindowSizeMsg{Width: 100, Height: 30})
	return m
}

func newTestModel(t *testing.T, opts ...mockapi.Option) (Model, *fixture) {
	t.Helper()
	f := newFixture(t, opts...)
	return f.model(), f
}

// update runs one message through the model.
func update(m Model, msg tea.Msg) (Model, tea.Cmd) {
	next, cmd := m.Update(msg)
	return next.(Model), cmd
}

func keyMsg(key string) tea.KeyMsg {
	switch key {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "f1":
		return tea.KeyMsg{Type: tea.KeyF1}
	case "f2":
		return tea.KeyMsg{Type: tea.KeyF2}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	case "ctrl+l":
		return tea.KeyMsg{Type: tea.KeyCtrlL}
	case " ":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)}
}

func press(m Model, keys ...string) Model {
	for _, k := range keys {
		m, _ = update(m, keyMsg(k))
	}
	return m
}

// searchFor submits query and feeds the backend's answer back.
func searchFor(t *testing.T, m Model, f *fixture, query string) Model {
	t.Helper()
	m.SearchBar.SetValue(query)
	m, _ = update(m, keyMsg("enter"))
	require.True(t, m.Search.Searching())

	resp, err := f.client.Search(context.Background(), api.SearchRequest{
		Query:  query,
		Source: string(m.Search.Tab()),
	})
	require.NoError(t, err)
	m, _ = update(m, SearchDoneMsg{Gen: m.Search.Gen(), Resp: resp})
	return m
}

func lastNotification(m Model) Notification {
	if len(m.Notifications) == 0 {
		return Notification{}
	}
	return m.Notifications[len(m.Notifications)-1]
}

func TestNew_Defaults(t *testing.T) {
	m, f := newTestModel(t)

	assert.Equal(t, search.TabQobuz, m.Search.Tab())
	assert.Equal(t, quality.Default, m.Quality)
	assert.True(t, m.SearchBar.Focused())
	assert.InDelta(t, 0.8, f.player.Volume(), 0.001)
}

func TestNew_RestoresSavedSettings(t *testing.T) {
	f := newFixture(t)
	f.state.SetSettings(state.Settings{Tab: "spotify", Quality: "27"})

	m := f.model()

	assert.Equal(t, search.TabSpotify, m.Search.Tab())
	assert.Equal(t, quality.FLAC24Max, m.Quality)
}

func TestNew_IgnoresInvalidSavedQuality(t *testing.T) {
	f := newFixture(t)
	f.state.SetSettings(state.Settings{Quality: "99"})

	m := f.model()

	assert.Equal(t, quality.Default, m.Quality)
}

func TestQuit_ShutsDown(t *testing.T) {
	m, f := newTestModel(t)

	_, cmd := update(m, keyMsg("ctrl+c"))

	require.NotNil(t, cmd)
	assert.Equal(t, tea.QuitMsg{}, cmd())
	assert.True(t, f.state.IsClosed())
	assert.Equal(t, 1, f.player.StopCalls())
	assert.ErrorIs(t, m.ctx.Err(), context.Canceled)
}

func TestCycleQuality_SavesSettings(t *testing.T) {
	m, f := newTestModel(t)
	m = press(m, "esc")

	m = press(m, "Q")

	assert.Equal(t, quality.FLAC24x96, m.Quality)
	assert.Equal(t, quality.FLAC24x96.Label(), m.Quality.Label())
	settings, err := f.state.GetSettings()
	require.NoError(t, err)
	assert.Equal(t, "7", settings.Quality)
	assert.Equal(t, "Quality: "+quality.FLAC24x96.Label(), lastNotification(m).Message)
}

func TestCopyResult(t *testing.T) {
	tests := []struct {
		name    string
		clipErr error
		want    string
		isError bool
	}{
		{name: "copies artist and title", want: "Copied: Low Tide - Tonight The Rain"},
		{name: "reports clipboard errors", clipErr: errors.New("no display"), isError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, f := newTestModel(t)
			f.clipboard.err = tt.clipErr
			m = searchFor(t, m, f, "tonight")

			m = press(m, "y")

			n := lastNotification(m)
			assert.Equal(t, tt.isError, n.IsError)
			if tt.want != "" {
				assert.Equal(t, tt.want, n.Message)
				assert.Equal(t, "Low Tide - Tonight The Rain", f.clipboard.text)
			}
		})
	}
}

func TestStderrMsg_RearmsWatcher(t *testing.T) {
	m, _ := newTestModel(t)

	_, cmd := update(m, StderrMsg{Line: "ALSA lib pcm.c: underrun"})

	assert.NotNil(t, cmd)
}
