package preview

import (
	"errors"
	"fmt"
	"io"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/llehouerou/tunefetch/internal/api"
	"github.com/llehouerou/tunefetch/internal/player"
)

func TestToggle_LoadThenStopSameIndex(t *testing.T) {
	s := New()

	a := s.Toggle(2)
	require.Equal(t, ActionLoad, a.Kind)
	assert.Equal(t, 2, a.Ticket.Index)
	assert.Equal(t, Loading, s.State())
	assert.Equal(t, Loading, s.StateOf(2))
	assert.Equal(t, Stopped, s.StateOf(1))

	a = s.Toggle(2)
	assert.Equal(t, ActionStop, a.Kind)
	assert.Equal(t, Stopped, s.State())
	assert.Equal(t, -1, s.Index())
}

func TestToggle_OtherIndexSupersedes(t *testing.T) {
	s := New()
	first := s.Toggle(0).Ticket
	require.True(t, s.Resolved(first, "http://cdn/0.mp3", nil))
	require.True(t, s.Started(first))

	second := s.Toggle(1)
	require.Equal(t, ActionLoad, second.Kind)
	assert.NotEqual(t, first.Gen, second.Ticket.Gen)
	assert.Equal(t, Stopped, s.StateOf(0), "previous control returns to idle")
	assert.Equal(t, Loading, s.StateOf(1))
}

// At most one preview is ever current.
func TestToggle_OnlyOneCurrent(t *testing.T) {
	s := New()
	var tickets []Ticket
	for i := range 5 {
		tickets = append(tickets, s.Toggle(i).Ticket)
	}
	current := 0
	for _, tk := range tickets {
		if s.Current(tk) {
			current++
		}
	}
	assert.Equal(t, 1, current)
	assert.True(t, s.Current(tickets[4]))
}

func TestStaleTicketsIgnored(t *testing.T) {
	s := New()
	old := s.Toggle(0).Ticket
	fresh := s.Toggle(1).Ticket

	assert.False(t, s.Resolved(old, "http://cdn/0.mp3", nil))
	assert.False(t, s.Started(old), "stale handle must not start")
	assert.False(t, s.Fail(old, errors.New("boom")))
	assert.Equal(t, Loading, s.State())
	assert.Equal(t, 1, s.Index())

	assert.True(t, s.Resolved(fresh, "http://cdn/1.mp3", nil))
	assert.Equal(t, "http://cdn/1.mp3", s.URL())
	assert.True(t, s.Started(fresh))
	assert.Equal(t, Playing, s.State())
}

func TestStartedAfterStopIsIgnored(t *testing.T) {
	s := New()
	tk := s.Toggle(3).Ticket
	s.Stop()

	assert.False(t, s.Started(tk))
	assert.Equal(t, Stopped, s.State())
}

func TestSameIndexRetoggleInvalidatesTicket(t *testing.T) {
	s := New()
	first := s.Toggle(0).Ticket
	s.Toggle(0) // stop
	second := s.Toggle(0).Ticket

	assert.Equal(t, first.Index, second.Index)
	assert.False(t, s.Started(first))
	assert.True(t, s.Started(second))
}

func TestErrorCooldown(t *testing.T) {
	s := New()
	tk := s.Toggle(4).Ticket
	require.True(t, s.Resolved(tk, "", &api.StatusError{Code: 404}))
	assert.Equal(t, Error, s.State())
	assert.Equal(t, Error, s.StateOf(4))
	require.Error(t, s.Err())

	assert.Equal(t, ActionNone, s.Toggle(4).Kind, "toggle during cooldown is ignored")
	assert.Equal(t, Error, s.State())

	assert.False(t, s.Cooldown(tk.Gen+1))
	assert.True(t, s.Cooldown(tk.Gen))
	assert.Equal(t, Stopped, s.State())
	assert.Equal(t, Stopped, s.StateOf(4))
	assert.NoError(t, s.Err())

	assert.Equal(t, ActionLoad, s.Toggle(4).Kind)
}

func TestErrorOnOtherIndexDoesNotBlock(t *testing.T) {
	s := New()
	tk := s.Toggle(0).Ticket
	s.Fail(tk, errors.New("decode"))

	a := s.Toggle(1)
	assert.Equal(t, ActionLoad, a.Kind)
	assert.False(t, s.Cooldown(tk.Gen), "cooldown of superseded error is stale")
	assert.Equal(t, Loading, s.State())
}

func TestEnd(t *testing.T) {
	s := New()
	tk := s.Toggle(0).Ticket

	assert.False(t, s.End(tk.Gen), "not playing yet")
	s.Started(tk)
	assert.False(t, s.End(tk.Gen+1))
	assert.True(t, s.End(tk.Gen))
	assert.Equal(t, Stopped, s.State())
	assert.False(t, s.End(tk.Gen), "second end is a no-op")
}

func TestProgress(t *testing.T) {
	tests := []struct {
		pos  time.Duration
		want float64
	}{
		{-time.Second, 0},
		{0, 0},
		{15 * time.Second, 0.5},
		{30 * time.Second, 1},
		{45 * time.Second, 1},
	}
	for _, tt := range tests {
		assert.InDelta(t, tt.want, Progress(tt.pos), 1e-9, "Progress(%v)", tt.pos)
	}
}

func TestFormatPosition(t *testing.T) {
	tests := []struct {
		pos  time.Duration
		want string
	}{
		{0, "0:00"},
		{-time.Second, "0:00"},
		{9*time.Second + 900*time.Millisecond, "0:09"},
		{30 * time.Second, "0:30"},
		{75 * time.Second, "1:15"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatPosition(tt.pos))
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Category
	}{
		{"403 status", &api.StatusError{Code: 403}, CategoryPermission},
		{"401 payload", &api.AppError{Status: 401, Message: "denied"}, CategoryPermission},
		{"audio device", fmt.Errorf("%w: no output", player.ErrDevice), CategoryPermission},
		{"404 status", &api.StatusError{Code: 404}, CategoryNotFound},
		{"410 status", &api.StatusError{Code: 410}, CategoryNotFound},
		{"backend not found text", &api.AppError{Status: 200, Message: "Preview no encontrado"}, CategoryNotFound},
		{"transport", fmt.Errorf("execute request: %w", &url.Error{Op: "Get", URL: "http://x", Err: errors.New("refused")}), CategoryNetwork},
		{"unexpected EOF", fmt.Errorf("read preview: %w", io.ErrUnexpectedEOF), CategoryNetwork},
		{"decode", fmt.Errorf("%w: bad frame", player.ErrDecode), CategoryRestricted},
		{"unsupported", player.ErrUnsupported, CategoryRestricted},
		{"500 status", &api.StatusError{Code: 500}, CategoryRestricted},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.err))
		})
	}
}

func TestCategoryMessages(t *testing.T) {
	assert.Equal(t, "Preview blocked: the provider denied access", CategoryPermission.Message())
	assert.Equal(t, "Preview not available for this track", CategoryNotFound.Message())
	assert.Equal(t, "Network error while loading preview", CategoryNetwork.Message())
	assert.Equal(t, "Preview restricted by the provider", CategoryRestricted.Message())
	assert.Equal(t, MsgNotFound, Message(&api.StatusError{Code: 404}))
}
