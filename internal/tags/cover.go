package tags

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/jpeg"
	_ "image/png" // register PNG decoder
	"io"
	"net/http"

	"github.com/nfnt/resize"
)

// MaxCoverSize is the largest edge, in pixels, of an embedded cover.
const MaxCoverSize = 600

const maxCoverBytes = 10 << 20

const (
	mimeJPEG = "image/jpeg"
	mimePNG  = "image/png"
)

// PrepareCover decodes a JPEG or PNG image, scales it down so neither
// edge exceeds MaxCoverSize and returns it as JPEG.
func PrepareCover(data []byte) ([]byte, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode cover: %w", err)
	}

	b := img.Bounds()
	if b.Dx() > MaxCoverSize || b.Dy() > MaxCoverSize {
		img = resize.Thumbnail(MaxCoverSize, MaxCoverSize, img, resize.Lanczos3)
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: 90}); err != nil {
		return nil, fmt.Errorf("encode cover: %w", err)
	}
	return buf.Bytes(), nil
}

func fetchCover(ctx context.Context, fetch Fetcher, rawURL string) ([]byte, error) {
	s, err := fetch.OpenStream(ctx, rawURL)
	if err != nil {
		return nil, err
	}
	defer s.Body.Close()

	data, err := io.ReadAll(io.LimitReader(s.Body, maxCoverBytes+1))
	if err != nil {
		return nil, fmt.Errorf("read cover: %w", err)
	}
	if len(data) > maxCoverBytes {
		return nil, fmt.Errorf("cover larger than %d bytes", maxCoverBytes)
	}
	return data, nil
}

func detectMimeType(data []byte) string {
	if http.DetectContentType(data) == mimePNG {
		return mimePNG
	}
	return mimeJPEG
}
