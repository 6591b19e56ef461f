package handler

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
)

type testMsg struct{ tag string }

func cmdWith(tag string) tea.Cmd {
	return func() tea.Msg { return testMsg{tag} }
}

func keyMsg(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestResults(t *testing.T) {
	assert.False(t, NotHandled.Handled)
	assert.Nil(t, NotHandled.Cmd)

	assert.True(t, HandledNoCmd.Handled)
	assert.Nil(t, HandledNoCmd.Cmd)

	r := Handled(cmdWith("x"))
	assert.True(t, r.Handled)
	assert.Equal(t, testMsg{"x"}, r.Cmd())

	assert.Equal(t, NotHandled, From(false, nil))
	assert.True(t, From(true, nil).Handled)
}

func TestChain_NoHandlers(t *testing.T) {
	handled, cmd := Chain(keyMsg("a"))
	assert.False(t, handled)
	assert.Nil(t, cmd)
}

func TestChain_StopsAtFirstHandler(t *testing.T) {
	var calls []string
	record := func(name string, r Result) Handler {
		return func(tea.KeyMsg) Result {
			calls = append(calls, name)
			return r
		}
	}

	handled, cmd := Chain(keyMsg("a"),
		record("popup", NotHandled),
		record("input", Handled(cmdWith("input"))),
		record("dispatch", Handled(cmdWith("dispatch"))),
	)

	assert.True(t, handled)
	assert.Equal(t, testMsg{"input"}, cmd())
	assert.Equal(t, []string{"popup", "input"}, calls)
}

func TestChain_HandlersSeeTheKey(t *testing.T) {
	var got string
	Chain(keyMsg("j"), func(msg tea.KeyMsg) Result {
		got = msg.String()
		return HandledNoCmd
	})
	assert.Equal(t, "j", got)
}

func TestChain_NoneHandle(t *testing.T) {
	handled, cmd := Chain(keyMsg("a"),
		func(tea.KeyMsg) Result { return NotHandled },
		func(tea.KeyMsg) Result { return NotHandled },
	)
	assert.False(t, handled)
	assert.Nil(t, cmd)
}
