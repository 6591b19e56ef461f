package mpris

import (
	"os"
	"path/filepath"
	"strings"
)

// ArtURL returns the mpris:artUrl value for a cover reference: remote
// URLs pass through, existing local files get a file:// prefix.
func ArtURL(cover string) string {
	cover = strings.TrimSpace(cover)
	switch {
	case cover == "":
		return ""
	case strings.HasPrefix(cover, "https://"), strings.HasPrefix(cover, "http://"), strings.HasPrefix(cover, "file://"):
		return cover
	case filepath.IsAbs(cover):
		if _, err := os.Stat(cover); err == nil {
			return "file://" + cover
		}
	}
	return ""
}
