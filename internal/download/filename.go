package download

import (
	"strings"
	"unicode"

	"github.com/llehouerou/tunefetch/internal/quality"
)

const maxFilenameBytes = 200

// Filename builds "{artist} - {title}{ext}" for quality q.
func Filename(artist, title string, q quality.Code) string {
	return strings.TrimSpace(artist) + " - " + strings.TrimSpace(title) + q.Ext()
}

// CleanFilename makes name safe to create on common filesystems: path
// separators, reserved characters and control characters are replaced,
// leading dots and trailing dots or spaces are trimmed.
func CleanFilename(name string) string {
	var b strings.Builder
	b.Grow(len(name))
	lastSpace := false
	for _, r := range name {
		switch {
		case unicode.IsControl(r):
			continue
		case strings.ContainsRune(`/\:*?"<>|`, r):
			r = '_'
		case unicode.IsSpace(r):
			if lastSpace {
				continue
			}
			r = ' '
		}
		lastSpace = r == ' '
		b.WriteRune(r)
	}

	out := strings.TrimLeft(b.String(), ". ")
	out = strings.TrimRight(out, ". ")
	out = truncateKeepExt(out, maxFilenameBytes)
	if out == "" || strings.HasPrefix(out, ".") {
		out = "download" + out
	}
	return out
}

// truncateKeepExt cuts name to limit bytes on a rune boundary, keeping
// the extension.
func truncateKeepExt(name string, limit int) string {
	if len(name) <= limit {
		return name
	}
	ext := ""
	if i := strings.LastIndexByte(name, '.'); i > 0 && len(name)-i <= 6 {
		ext = name[i:]
		name = name[:i]
	}
	budget := limit - len(ext)
	cut := 0
	for i := range name {
		if i > budget {
			break
		}
		cut = i
	}
	if len(name) <= budget {
		cut = len(name)
	}
	return strings.TrimRight(name[:cut], ". ") + ext
}
