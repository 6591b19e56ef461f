package download

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/llehouerou/tunefetch/internal/api"
	"github.com/llehouerou/tunefetch/internal/mockapi"
	"github.com/llehouerou/tunefetch/internal/quality"
)

func newSaver(t *testing.T) (*Saver, *api.Client, string) {
	t.Helper()
	srv := httptest.NewServer(mockapi.New().Handler())
	t.Cleanup(srv.Close)
	client := api.NewClient(srv.URL, 5*time.Second)
	dir := filepath.Join(t.TempDir(), "downloads")
	return NewSaver(dir, client, nil), client, dir
}

func TestSaver_Save(t *testing.T) {
	s, client, dir := newSaver(t)
	r := api.Result{ID: "101", Title: "Tonight/The Rain", Artist: "Low Tide"}
	filename := Filename(r.Artist, r.Title, quality.FLAC16)
	job := NewJob(client.ProxyDownloadURL("https://cdn/x", filename, r.ID), filename, r, quality.FLAC16)

	var last int64
	path, n, err := s.Save(context.Background(), job, func(written, _ int64) { last = written })
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, "Low Tide - Tonight_The Rain.flac"), path)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, mockapi.Payload("101"), data)
	assert.Equal(t, int64(len(data)), n)
	assert.Equal(t, n, last, "final progress reports the full size")

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	for _, e := range entries {
		assert.False(t, strings.HasSuffix(e.Name(), ".part"), "temp file left behind: %s", e.Name())
	}
}

func TestSaver_SaveDoesNotOverwrite(t *testing.T) {
	s, client, dir := newSaver(t)
	r := api.Result{ID: "102", Title: "Slow Falls", Artist: "Low Tide"}
	job := NewJob(client.ProxyDownloadURL("u", "Low Tide - Slow Falls.flac", r.ID), "Low Tide - Slow Falls.flac", r, quality.FLAC16)

	first, _, err := s.Save(context.Background(), job, nil)
	require.NoError(t, err)
	second, _, err := s.Save(context.Background(), job, nil)
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
	assert.Equal(t, filepath.Join(dir, "Low Tide - Slow Falls (1).flac"), second)
}

func TestSaver_HTTPErrorLeavesNothing(t *testing.T) {
	s, client, dir := newSaver(t)
	job := NewJob(client.BaseURL()+"/files/missing.flac", "x.flac", api.Result{}, quality.FLAC16)

	_, _, err := s.Save(context.Background(), job, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, api.ErrNotFound)

	entries, _ := os.ReadDir(dir)
	assert.Empty(t, entries)
}

func TestSaver_ShortBodyFails(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Length", "100")
		_, _ = w.Write([]byte("short"))
	}))
	defer srv.Close()

	dir := t.TempDir()
	s := NewSaver(dir, api.NewClient(srv.URL, time.Second), nil)
	_, _, err := s.Save(context.Background(), NewJob(srv.URL, "x.flac", api.Result{}, quality.FLAC16), nil)
	require.Error(t, err)

	entries, _ := os.ReadDir(dir)
	assert.Empty(t, entries, "partial file must be removed")
}

func TestSaver_StartEmitsDone(t *testing.T) {
	s, client, _ := newSaver(t)
	r := api.Result{ID: "103", Title: "Paper Lanterns", Artist: "Mira Vale"}
	job := NewJob(client.ProxyDownloadURL("u", "a.flac", r.ID), "a.flac", r, quality.FLAC16)

	var final Event
	for ev := range s.Start(context.Background(), job) {
		assert.Equal(t, job.ID, ev.JobID)
		final = ev
	}
	require.True(t, final.Done)
	require.NoError(t, final.Err)
	assert.FileExists(t, final.Path)
}

func TestSaver_CanceledContext(t *testing.T) {
	s, client, _ := newSaver(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	job := NewJob(client.ProxyDownloadURL("u", "a.flac", "101"), "a.flac", api.Result{}, quality.FLAC16)
	_, _, err := s.Save(ctx, job, nil)
	assert.Error(t, err)
}

func TestNewJobIDsAreUnique(t *testing.T) {
	a := NewJob("u", "f", api.Result{}, quality.FLAC16)
	b := NewJob("u", "f", api.Result{}, quality.FLAC16)
	assert.NotEmpty(t, a.ID)
	assert.NotEqual(t, a.ID, b.ID)
}
