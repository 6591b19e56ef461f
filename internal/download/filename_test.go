package download

import (
	"strings"
	"testing"

	"github.com/llehouerou/tunefetch/internal/quality"
)

func TestFilename(t *testing.T) {
	if got := Filename(" AC/DC ", "Back in Black", quality.MP3320); got != "AC/DC - Back in Black.mp3" {
		t.Errorf("Filename = %q", got)
	}
	if got := Filename("A", "B", "unknown"); got != "A - B.flac" {
		t.Errorf("Filename with unknown quality = %q", got)
	}
}

func TestCleanFilename(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain", "Artist - Song.flac", "Artist - Song.flac"},
		{"slash", "AC/DC - Back in Black.mp3", "AC_DC - Back in Black.mp3"},
		{"backslash and reserved", `a\b:c*d?e"f<g>h|i.flac`, "a_b_c_d_e_f_g_h_i.flac"},
		{"control chars", "Bad\x00Name\n\t.flac", "BadName.flac"},
		{"escape sequence byte", "x\x1b[31my.flac", "x[31my.flac"},
		{"leading dots", "../../etc/passwd", "_.._etc_passwd"},
		{"trailing dots", "name...", "name"},
		{"collapse spaces", "a   b.flac", "a b.flac"},
		{"empty", "", "download"},
		{"only dots", "...", "download"},
		{"unicode kept", "Sigur Rós - Hoppípolla.flac", "Sigur Rós - Hoppípolla.flac"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CleanFilename(tt.input)
			if got != tt.want {
				t.Errorf("CleanFilename(%q) = %q, want %q", tt.input, got, tt.want)
			}
			if strings.ContainsAny(got, "/\\\x00") {
				t.Errorf("CleanFilename(%q) left a separator: %q", tt.input, got)
			}
		})
	}
}

func TestCleanFilenameTruncatesKeepingExtension(t *testing.T) {
	long := strings.Repeat("é", 300) + ".flac"
	got := CleanFilename(long)
	if len(got) > maxFilenameBytes {
		t.Errorf("len = %d, want <= %d", len(got), maxFilenameBytes)
	}
	if !strings.HasSuffix(got, ".flac") {
		t.Errorf("extension lost: %q", got[len(got)-10:])
	}
	if !strings.HasPrefix(got, "é") {
		t.Error("truncation broke the first rune")
	}
}
