package mpris

import (
	"os"
	"path/filepath"
	"testing"
)

func TestArtURL(t *testing.T) {
	dir := t.TempDir()
	coverPath := filepath.Join(dir, "cover.jpg")
	if err := os.WriteFile(coverPath, []byte("fake"), 0o600); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name  string
		cover string
		want  string
	}{
		{"empty", "", ""},
		{"https passes through", "https://img.example/c.jpg", "https://img.example/c.jpg"},
		{"http passes through", "http://img.example/c.jpg", "http://img.example/c.jpg"},
		{"existing file", coverPath, "file://" + coverPath},
		{"missing file", filepath.Join(dir, "missing.jpg"), ""},
		{"relative path ignored", "cover.jpg", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ArtURL(tt.cover); got != tt.want {
				t.Errorf("ArtURL(%q) = %q, want %q", tt.cover, got, tt.want)
			}
		})
	}
}

func TestStatusBox(t *testing.T) {
	var b statusBox
	if got := b.get(); got.Playing || got.Track != nil {
		t.Errorf("zero status = %+v", got)
	}
	b.set(Status{Playing: true, Track: &Track{Title: "Song"}})
	if got := b.get(); !got.Playing || got.Track.Title != "Song" {
		t.Errorf("status = %+v", got)
	}
}

func TestCommandString(t *testing.T) {
	tests := []struct {
		c    Command
		want string
	}{
		{CommandPlayPause, "play-pause"},
		{CommandPlay, "play"},
		{CommandPause, "pause"},
		{CommandStop, "stop"},
		{Command(99), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.c.String(); got != tt.want {
			t.Errorf("Command(%d).String() = %q, want %q", tt.c, got, tt.want)
		}
	}
}
