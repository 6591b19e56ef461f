// Package testutil holds helpers for testing rendered UI components.
package testutil

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// StripANSI removes escape sequences so rendered output can be compared
// as plain text.
func StripANSI(s string) string {
	return ansi.Strip(s)
}

// MeasureWidth returns the display width of s in terminal columns.
func MeasureWidth(s string) int {
	return lipgloss.Width(s)
}

// CountLines returns the number of non-blank lines in output.
func CountLines(output string) int {
	n := 0
	for line := range strings.SplitSeq(output, "\n") {
		if strings.TrimSpace(line) != "" {
			n++
		}
	}
	return n
}

// SplitLines splits output into lines without the trailing blank ones.
func SplitLines(output string) []string {
	lines := strings.Split(output, "\n")
	for len(lines) > 0 && strings.TrimSpace(lines[len(lines)-1]) == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}

// assertContains returns a failure message when the plain text of output
// does not contain substr (or does, when want is false).
func assertContains(output, substr string, want bool) string {
	plain := StripANSI(output)
	if strings.Contains(plain, substr) == want {
		return ""
	}
	if want {
		return fmt.Sprintf("expected output to contain %q, got:\n%s", substr, plain)
	}
	return fmt.Sprintf("expected output not to contain %q, got:\n%s", substr, plain)
}
