package player

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/url"
	"path"
	"strings"

	"github.com/llehouerou/tunefetch/internal/api"
)

// MaxSourceSize bounds how much of a preview is buffered.
const MaxSourceSize = 16 << 20

var (
	// ErrUnsupported is returned for audio that is neither MP3 nor FLAC.
	ErrUnsupported = errors.New("unsupported audio format")
	// ErrTooLarge is returned when a preview exceeds MaxSourceSize.
	ErrTooLarge = errors.New("preview too large")
)

// Format is the container of a preview.
type Format int

const (
	FormatUnknown Format = iota
	FormatMP3
	FormatFLAC
)

func (f Format) String() string {
	switch f {
	case FormatMP3:
		return "MP3"
	case FormatFLAC:
		return "FLAC"
	default:
		return "unknown"
	}
}

// Opener opens an HTTP body for streaming.
type Opener interface {
	OpenStream(ctx context.Context, rawURL string) (*api.Stream, error)
}

// Source is a preview loaded into memory.
type Source struct {
	URL    string
	Format Format
	Data   []byte
}

// Fetch downloads the preview at rawURL and detects its format.
func Fetch(ctx context.Context, opener Opener, rawURL string) (*Source, error) {
	stream, err := opener.OpenStream(ctx, rawURL)
	if err != nil {
		return nil, err
	}
	defer stream.Body.Close()

	if stream.Size > MaxSourceSize {
		return nil, ErrTooLarge
	}
	data, err := io.ReadAll(io.LimitReader(stream.Body, MaxSourceSize+1))
	if err != nil {
		return nil, fmt.Errorf("read preview: %w", err)
	}
	if len(data) > MaxSourceSize {
		return nil, ErrTooLarge
	}

	format := DetectFormat(stream.ContentType, rawURL, data)
	if format == FormatUnknown {
		return nil, ErrUnsupported
	}
	return &Source{URL: rawURL, Format: format, Data: data}, nil
}

// DetectFormat picks the container from the content type, then the URL
// suffix, then the leading bytes.
func DetectFormat(contentType, rawURL string, data []byte) Format {
	if mt, _, err := mime.ParseMediaType(contentType); err == nil {
		switch mt {
		case "audio/mpeg", "audio/mp3", "audio/mpeg3":
			return FormatMP3
		case "audio/flac", "audio/x-flac":
			return FormatFLAC
		}
	}

	if u, err := url.Parse(rawURL); err == nil {
		switch strings.ToLower(path.Ext(u.Path)) {
		case ".mp3":
			return FormatMP3
		case ".flac":
			return FormatFLAC
		}
	}

	return sniff(data)
}

func sniff(data []byte) Format {
	switch {
	case bytes.HasPrefix(data, []byte("fLaC")):
		return FormatFLAC
	case bytes.HasPrefix(data, []byte("ID3")):
		// ID3v2 in front of FLAC is rare but exists
		if bytes.Contains(data[:min(len(data), 1<<16)], []byte("fLaC")) {
			return FormatFLAC
		}
		return FormatMP3
	case len(data) >= 2 && data[0] == 0xFF && data[1]&0xE0 == 0xE0:
		return FormatMP3
	default:
		return FormatUnknown
	}
}

// sourceReader is a seekable, closable view over Source.Data.
type sourceReader struct {
	*bytes.Reader
}

func (sourceReader) Close() error { return nil }

func (s *Source) reader() *sourceReader {
	return &sourceReader{Reader: bytes.NewReader(s.Data)}
}
