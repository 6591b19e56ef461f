package tags

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/llehouerou/tunefetch/internal/api"
)

func createMinimalMP3(t *testing.T, path string) {
	t.Helper()
	// MPEG1 Layer3 128kbps 44100Hz frame header plus padding.
	frame := make([]byte, 417)
	frame[0], frame[1], frame[2] = 0xff, 0xfb, 0x90
	if err := os.WriteFile(path, frame, 0o600); err != nil {
		t.Fatalf("create test MP3: %v", err)
	}
}

func createMinimalFLAC(t *testing.T, path string) {
	t.Helper()
	var b bytes.Buffer
	b.WriteString("fLaC")
	// Last-block flag + STREAMINFO, 34 bytes.
	b.Write([]byte{0x80, 0x00, 0x00, 0x22})
	streamInfo := []byte{
		0x10, 0x00, 0x10, 0x00, // min/max block size 4096
		0x00, 0x00, 0x00, 0x00, 0x00, 0x00, // min/max frame size unknown
		0x0a, 0xc4, 0x42, 0xf0, // 44100 Hz, 2 channels, 16 bits
		0x00, 0x00, 0x00, 0x00, // total samples
	}
	b.Write(streamInfo)
	b.Write(make([]byte, 16)) // MD5
	b.Write([]byte{0xff, 0xf8, 0x69, 0x08, 0x00, 0x00, 0x00, 0x00})
	if err := os.WriteFile(path, b.Bytes(), 0o600); err != nil {
		t.Fatalf("create test FLAC: %v", err)
	}
}

func testImage(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := range w {
		img.Set(x, x%h, color.RGBA{R: 200, A: 255})
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

type fakeFetcher struct {
	data []byte
	err  error
	urls []string
}

func (f *fakeFetcher) OpenStream(_ context.Context, rawURL string) (*api.Stream, error) {
	f.urls = append(f.urls, rawURL)
	if f.err != nil {
		return nil, f.err
	}
	return &api.Stream{Body: io.NopCloser(bytes.NewReader(f.data)), Size: int64(len(f.data))}, nil
}

func TestRead_NoTags(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a.mp3")
	createMinimalMP3(t, path)

	info, err := Read(path)
	require.NoError(t, err)
	assert.False(t, info.Complete())
	assert.False(t, info.HasPicture)
}

func TestRead_NonexistentFile(t *testing.T) {
	_, err := Read(filepath.Join(t.TempDir(), "missing.mp3"))
	assert.Error(t, err)
}

func TestWrite_RoundTrip(t *testing.T) {
	tests := []struct {
		name   string
		file   string
		create func(*testing.T, string)
	}{
		{"mp3", "song.mp3", createMinimalMP3},
		{"flac", "song.flac", createMinimalFLAC},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), tt.file)
			tt.create(t, path)

			require.NoError(t, Write(path, Meta{Title: "Jóga", Artist: "Björk", Album: "Homogenic"}))

			info, err := Read(path)
			require.NoError(t, err)
			assert.Equal(t, "Jóga", info.Title)
			assert.Equal(t, "Björk", info.Artist)
			assert.Equal(t, "Homogenic", info.Album)
			assert.True(t, info.Complete())
		})
	}
}

func TestWrite_KeepsValuesNotGiven(t *testing.T) {
	for _, name := range []string{"keep.mp3", "keep.flac"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), name)
			if filepath.Ext(name) == ExtMP3 {
				createMinimalMP3(t, path)
			} else {
				createMinimalFLAC(t, path)
			}
			require.NoError(t, Write(path, Meta{Title: "Original", Album: "LP"}))
			require.NoError(t, Write(path, Meta{Artist: "Added"}))

			info, err := Read(path)
			require.NoError(t, err)
			assert.Equal(t, "Original", info.Title)
			assert.Equal(t, "Added", info.Artist)
			assert.Equal(t, "LP", info.Album)
		})
	}
}

func TestWrite_Unsupported(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a.ogg")
	require.NoError(t, os.WriteFile(path, []byte("OggS"), 0o600))
	assert.True(t, errors.Is(Write(path, Meta{Title: "x"}), ErrUnsupported))
}

func TestPrepareCover(t *testing.T) {
	tests := []struct {
		name         string
		w, h         int
		wantW, wantH int
	}{
		{"large landscape", 1200, 800, 600, 400},
		{"large portrait", 500, 1000, 300, 600},
		{"small untouched", 300, 300, 300, 300},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := PrepareCover(testImage(t, tt.w, tt.h))
			require.NoError(t, err)
			assert.Equal(t, mimeJPEG, detectMimeType(out))

			img, err := jpeg.Decode(bytes.NewReader(out))
			require.NoError(t, err)
			assert.Equal(t, tt.wantW, img.Bounds().Dx())
			assert.Equal(t, tt.wantH, img.Bounds().Dy())
		})
	}
}

func TestPrepareCover_Garbage(t *testing.T) {
	_, err := PrepareCover([]byte("not an image"))
	assert.Error(t, err)
}

func TestFiller_FillsMissingTagsAndCover(t *testing.T) {
	for _, name := range []string{"fill.mp3", "fill.flac"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), name)
			if filepath.Ext(name) == ExtMP3 {
				createMinimalMP3(t, path)
			} else {
				createMinimalFLAC(t, path)
			}
			fetch := &fakeFetcher{data: testImage(t, 900, 900)}
			f := NewFiller(fetch, nil)

			status, err := f.Fill(context.Background(), path, Source{
				Title: "Song", Artist: "Artist", Album: "Album", CoverURL: "http://cdn/c.jpg",
			})
			require.NoError(t, err)
			assert.Equal(t, StatusFilled, status)
			assert.Equal(t, []string{"http://cdn/c.jpg"}, fetch.urls)

			info, err := Read(path)
			require.NoError(t, err)
			assert.Equal(t, "Song", info.Title)
			assert.Equal(t, "Artist", info.Artist)
			assert.True(t, info.HasPicture)

			status, err = f.Fill(context.Background(), path, Source{Title: "Other", Artist: "Other", CoverURL: "http://cdn/c.jpg"})
			require.NoError(t, err)
			assert.Equal(t, StatusComplete, status, "complete files are left alone")
			assert.Len(t, fetch.urls, 1)
		})
	}
}

func TestFiller_CoverFailureStillFillsText(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a.mp3")
	createMinimalMP3(t, path)
	f := NewFiller(&fakeFetcher{err: errors.New("offline")}, nil)

	status, err := f.Fill(context.Background(), path, Source{Title: "T", Artist: "A", CoverURL: "http://x"})
	require.NoError(t, err)
	assert.Equal(t, StatusFilled, status)

	info, err := Read(path)
	require.NoError(t, err)
	assert.Equal(t, "T", info.Title)
	assert.False(t, info.HasPicture)
}

func TestFiller_SkipsUnsupported(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a.m4a")
	require.NoError(t, os.WriteFile(path, []byte("data"), 0o600))

	status, err := NewFiller(nil, nil).Fill(context.Background(), path, Source{Title: "T"})
	require.NoError(t, err)
	assert.Equal(t, StatusSkipped, status)
}
