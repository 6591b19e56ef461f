package jobbar

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/llehouerou/tunefetch/internal/ui/testutil"
)

func TestHeight(t *testing.T) {
	assert.Equal(t, 0, Height(0))
	assert.Equal(t, 3, Height(1))
	assert.Equal(t, 4, Height(2))
}

func TestState_UpdateAndRemove(t *testing.T) {
	var s State
	s.Update(Job{ID: "a", Label: "one"})
	s.Update(Job{ID: "b", Label: "two"})
	s.Update(Job{ID: "a", Label: "one", Written: 10, Total: 20})

	assert.Len(t, s.Jobs, 2)
	assert.Equal(t, int64(10), s.Jobs[0].Written)
	assert.Equal(t, 2, s.ActiveCount())

	s.Jobs[1].Done = true
	assert.Equal(t, 1, s.ActiveCount())

	s.Remove("a")
	s.Remove("missing")
	assert.Len(t, s.Jobs, 1)
	assert.Equal(t, "b", s.Jobs[0].ID)
	assert.False(t, s.HasActiveJobs())
}

func TestRender(t *testing.T) {
	tests := []struct {
		name string
		job  Job
		want []string
	}{
		{"known length", Job{ID: "1", Label: "Artist - Song.flac", Written: 1_000_000, Total: 8_000_000}, []string{"Artist - Song.flac", "1.0 MB / 8.0 MB", "["}},
		{"unknown length", Job{ID: "2", Label: "Artist - Song.mp3", Written: 3_100_000}, []string{"Artist - Song.mp3", "3.1 MB"}},
		{"nothing yet", Job{ID: "3", Label: "Pending.flac"}, []string{"Pending.flac"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := testutil.StripANSI(Render(State{Jobs: []Job{tt.job}}, 100))
			for _, want := range tt.want {
				assert.Contains(t, out, want)
			}
		})
	}
}

func TestRender_OverfullProgressIsClamped(t *testing.T) {
	line := testutil.StripANSI(renderWithProgressBar(Job{ID: "1", Label: "x", Written: 50, Total: 10}, 80))
	bar := line[strings.Index(line, "[")+1 : strings.Index(line, "]")]
	assert.NotContains(t, bar, "─", "bar should be full")
	assert.Contains(t, bar, "━")
}

func TestRender_NoActiveJobs(t *testing.T) {
	assert.Empty(t, Render(State{}, 80))
	assert.Empty(t, Render(State{Jobs: []Job{{ID: "1", Done: true}}}, 80))
}
