//nolint:goconst // test cases intentionally repeat strings for readability
package errmsg

import (
	"errors"
	"testing"
)

func TestFormat(t *testing.T) {
	tests := []struct {
		name     string
		op       Op
		err      error
		expected string
	}{
		{
			name:     "nil error returns empty string",
			op:       OpSearch,
			err:      nil,
			expected: "",
		},
		{
			name:     "search operation",
			op:       OpSearch,
			err:      errors.New("timeout"),
			expected: "Failed to search: timeout",
		},
		{
			name:     "download save",
			op:       OpDownloadSave,
			err:      errors.New("disk full"),
			expected: "Failed to save download: disk full",
		},
		{
			name:     "renewal",
			op:       OpRenewalForce,
			err:      errors.New("status 500"),
			expected: "Failed to force renewal: status 500",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Format(tt.op, tt.err)
			if result != tt.expected {
				t.Errorf("Format(%q, %v) = %q, want %q", tt.op, tt.err, result, tt.expected)
			}
		})
	}
}

func TestFormatWith(t *testing.T) {
	tests := []struct {
		name     string
		op       Op
		context  string
		err      error
		expected string
	}{
		{
			name:     "nil error returns empty string",
			op:       OpDownloadSave,
			context:  "Artist - Song.flac",
			err:      nil,
			expected: "",
		},
		{
			name:     "formats error with context",
			op:       OpDownloadSave,
			context:  "Artist - Song.flac",
			err:      errors.New("permission denied"),
			expected: "Failed to save download 'Artist - Song.flac': permission denied",
		},
		{
			name:     "empty context falls back to Format",
			op:       OpPreviewLoad,
			context:  "",
			err:      errors.New("404"),
			expected: "Failed to load preview: 404",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := FormatWith(tt.op, tt.context, tt.err)
			if result != tt.expected {
				t.Errorf("FormatWith(%q, %q, %v) = %q, want %q", tt.op, tt.context, tt.err, result, tt.expected)
			}
		})
	}
}
