// Package tags checks the tags of saved downloads and fills what is missing.
package tags

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/dhowden/tag"
)

// Supported file extensions.
const (
	ExtMP3  = ".mp3"
	ExtFLAC = ".flac"
)

const id3Magic = "ID3"

// ErrUnsupported is returned for files that are neither MP3 nor FLAC.
var ErrUnsupported = errors.New("unsupported file format")

// Info is what a file already carries.
type Info struct {
	Title      string
	Artist     string
	Album      string
	HasPicture bool
}

// Complete reports whether title and artist are both set.
func (i Info) Complete() bool {
	return strings.TrimSpace(i.Title) != "" && strings.TrimSpace(i.Artist) != ""
}

// Meta is the metadata to write. Empty fields are left alone.
type Meta struct {
	Title  string
	Artist string
	Album  string
	Cover  []byte // prepared image, see PrepareCover
}

// Read returns the tags of the file at path. A file without any tag
// yields an empty Info and no error.
func Read(path string) (Info, error) {
	f, err := os.Open(path)
	if err != nil {
		return Info{}, err
	}
	defer f.Close()

	m, err := tag.ReadFrom(f)
	if errors.Is(err, tag.ErrNoTagsFound) {
		return Info{}, nil
	}
	if err != nil {
		return Info{}, fmt.Errorf("read tags: %w", err)
	}

	return Info{
		Title:      m.Title(),
		Artist:     m.Artist(),
		Album:      m.Album(),
		HasPicture: m.Picture() != nil,
	}, nil
}

// Write writes meta into the file at path. Existing values for fields
// left empty in meta are kept.
func Write(path string, meta Meta) error {
	if _, err := os.Stat(path); err != nil {
		return fmt.Errorf("file not found: %w", err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ExtMP3:
		return writeMP3(path, meta)
	case ExtFLAC:
		return writeFLAC(path, meta)
	default:
		return fmt.Errorf("%w: %s", ErrUnsupported, filepath.Ext(path))
	}
}
