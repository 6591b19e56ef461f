package tags

import (
	"context"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/llehouerou/tunefetch/internal/api"
)

// Status is the outcome of a tag check, stored with the download history.
type Status string

const (
	StatusComplete Status = "complete" // file already carried title, artist and cover
	StatusFilled   Status = "filled"   // missing values were written
	StatusSkipped  Status = "skipped"  // unsupported file or disabled
	StatusFailed   Status = "failed"   // tags could not be read or written
)

// Fetcher opens remote resources, used for cover images.
type Fetcher interface {
	OpenStream(ctx context.Context, rawURL string) (*api.Stream, error)
}

// Source is the metadata the backend returned for a track.
type Source struct {
	Title    string
	Artist   string
	Album    string
	CoverURL string
}

// SourceFromResult builds a Source from a search result.
func SourceFromResult(r api.Result) Source {
	return Source{Title: r.Title, Artist: r.Artist, Album: r.Album, CoverURL: r.Cover}
}

// Filler checks saved files and fills missing tags.
type Filler struct {
	fetch Fetcher
	log   *zap.Logger
}

// NewFiller creates a Filler. fetch may be nil to never embed covers.
func NewFiller(fetch Fetcher, log *zap.Logger) *Filler {
	if log == nil {
		log = zap.NewNop()
	}
	return &Filler{fetch: fetch, log: log}
}

// Fill reads the tags of path and writes the values from src that the
// file lacks. Cover failures are logged and do not fail the fill.
func (f *Filler) Fill(ctx context.Context, path string, src Source) (Status, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ExtMP3, ExtFLAC:
	default:
		return StatusSkipped, nil
	}

	info, err := Read(path)
	if err != nil {
		return StatusFailed, err
	}

	wantCover := !info.HasPicture && src.CoverURL != "" && f.fetch != nil
	if info.Complete() && !wantCover {
		return StatusComplete, nil
	}

	var meta Meta
	if strings.TrimSpace(info.Title) == "" {
		meta.Title = src.Title
	}
	if strings.TrimSpace(info.Artist) == "" {
		meta.Artist = src.Artist
	}
	if strings.TrimSpace(info.Album) == "" {
		meta.Album = src.Album
	}
	if wantCover {
		meta.Cover = f.cover(ctx, src.CoverURL)
	}

	if meta.Title == "" && meta.Artist == "" && meta.Album == "" && len(meta.Cover) == 0 {
		return StatusComplete, nil
	}
	if err := Write(path, meta); err != nil {
		return StatusFailed, err
	}

	f.log.Debug("filled tags",
		zap.String("path", path),
		zap.Bool("title", meta.Title != ""),
		zap.Bool("artist", meta.Artist != ""),
		zap.Bool("cover", len(meta.Cover) > 0))
	return StatusFilled, nil
}

func (f *Filler) cover(ctx context.Context, rawURL string) []byte {
	data, err := fetchCover(ctx, f.fetch, rawURL)
	if err != nil {
		f.log.Warn("fetch cover", zap.String("url", rawURL), zap.Error(err))
		return nil
	}
	prepared, err := PrepareCover(data)
	if err != nil {
		f.log.Warn("prepare cover", zap.String("url", rawURL), zap.Error(err))
		return nil
	}
	return prepared
}
