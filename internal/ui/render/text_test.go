package render

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
)

func TestSanitize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain text unchanged", "Daft Punk", "Daft Punk"},
		{"unicode unchanged", "Björk – Jóga", "Björk – Jóga"},
		{"tab kept", "a\tb", "a\tb"},
		{"newline dropped", "line\nbreak", "linebreak"},
		{"ansi color stripped", "\x1b[31mred\x1b[0m", "red"},
		{"cursor movement stripped", "evil\x1b[2Jclear", "evilclear"},
		{"bell dropped", "ding\adong", "dingdong"},
		{"invalid utf8 dropped", "ok\xffok", "okok"},
		{"nbsp normalised", "a\u00a0b", "a b"},
		{"c1 control dropped", "x\u0085y", "xy"},
		{"markup kept as text", "<b>bold</b>", "<b>bold</b>"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Sanitize(tt.input); got != tt.want {
				t.Errorf("Sanitize(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		maxWidth int
		want     string
	}{
		{"no truncation needed", "hello", 10, "hello"},
		{"exact fit", "hello", 5, "hello"},
		{"truncation with ellipsis", "hello world", 8, "hello..."},
		{"very short max width", "hello", 3, "..."},
		{"empty string", "", 5, ""},
		{"sanitizes first", "he\x1b[1mllo", 10, "hello"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Truncate(tt.input, tt.maxWidth); got != tt.want {
				t.Errorf("Truncate(%q, %d) = %q, want %q", tt.input, tt.maxWidth, got, tt.want)
			}
		})
	}
}

func TestTruncateEllipsis(t *testing.T) {
	tests := []struct {
		input    string
		maxWidth int
		want     string
	}{
		{"short", 10, "short"},
		{"hello world", 6, "hello…"},
		{"日本語のタイトル", 5, "日本…"},
		{"abc", 0, ""},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := TruncateEllipsis(tt.input, tt.maxWidth)
			if got != tt.want {
				t.Errorf("TruncateEllipsis(%q, %d) = %q, want %q", tt.input, tt.maxWidth, got, tt.want)
			}
			if lipgloss.Width(got) > tt.maxWidth {
				t.Errorf("width %d exceeds %d", lipgloss.Width(got), tt.maxWidth)
			}
		})
	}
}

func TestTruncateAndPad(t *testing.T) {
	for _, width := range []int{5, 12, 30} {
		got := TruncateAndPad("Some Long Artist Name", width)
		if lipgloss.Width(got) != width {
			t.Errorf("TruncateAndPad width = %d, want %d", lipgloss.Width(got), width)
		}
	}
}

func TestRow(t *testing.T) {
	got := Row("left", "right", 20)
	if lipgloss.Width(got) != 20 {
		t.Errorf("Row width = %d, want 20", lipgloss.Width(got))
	}
	if !strings.HasPrefix(got, "left") || !strings.HasSuffix(got, "right") {
		t.Errorf("Row = %q", got)
	}
	if got := Row("left", "right", 3); got != "left right" {
		t.Errorf("Row overflow = %q, want single space gap", got)
	}
}

func TestSeparatorAndCenter(t *testing.T) {
	if got := Separator(4); got != "────" {
		t.Errorf("Separator(4) = %q", got)
	}
	if got := Separator(-1); got != "" {
		t.Errorf("Separator(-1) = %q", got)
	}
	if got := Center("ab", 6); got != "  ab  " {
		t.Errorf("Center = %q", got)
	}
	if got := Center("abcdef", 3); got != "abcdef" {
		t.Errorf("Center should not cut, got %q", got)
	}
}
