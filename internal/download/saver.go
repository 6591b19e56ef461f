package download

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/llehouerou/tunefetch/internal/api"
	"github.com/llehouerou/tunefetch/internal/quality"
)

const progressStep = 256 << 10

// Opener opens an HTTP body for streaming.
type Opener interface {
	OpenStream(ctx context.Context, rawURL string) (*api.Stream, error)
}

// Job is one file transfer.
type Job struct {
	ID       string
	URL      string
	Filename string
	Result   api.Result
	Quality  quality.Code
}

// NewJob creates a job with a fresh id.
func NewJob(rawURL, filename string, r api.Result, q quality.Code) Job {
	return Job{
		ID:       uuid.NewString(),
		URL:      rawURL,
		Filename: filename,
		Result:   r,
		Quality:  q,
	}
}

// Event reports transfer progress. The last event on a channel has Done set.
type Event struct {
	JobID   string
	Written int64
	Total   int64 // -1 when unknown
	Done    bool
	Path    string
	Err     error
}

// Saver streams files into the downloads directory.
type Saver struct {
	dir    string
	opener Opener
	log    *zap.Logger
}

// NewSaver creates a saver writing into dir.
func NewSaver(dir string, opener Opener, log *zap.Logger) *Saver {
	if log == nil {
		log = zap.NewNop()
	}
	return &Saver{dir: dir, opener: opener, log: log}
}

// Dir returns the target directory.
func (s *Saver) Dir() string {
	return s.dir
}

// Start runs job in a goroutine. The channel carries progress events,
// then one Done event, then is closed.
func (s *Saver) Start(ctx context.Context, job Job) <-chan Event {
	ch := make(chan Event, 16)
	go func() {
		defer close(ch)
		path, n, err := s.Save(ctx, job, func(written, total int64) {
			select {
			case ch <- Event{JobID: job.ID, Written: written, Total: total}:
			default:
			}
		})
		ch <- Event{JobID: job.ID, Written: n, Total: n, Done: true, Path: path, Err: err}
	}()
	return ch
}

// Save downloads job.URL to the downloads directory through a temp file
// and returns the final path and size. progress may be nil.
func (s *Saver) Save(ctx context.Context, job Job, progress func(written, total int64)) (string, int64, error) {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", 0, fmt.Errorf("create downloads dir: %w", err)
	}

	stream, err := s.opener.OpenStream(ctx, job.URL)
	if err != nil {
		return "", 0, err
	}
	defer stream.Body.Close()

	tmp, err := os.CreateTemp(s.dir, ".tunefetch-*.part")
	if err != nil {
		return "", 0, fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	committed := false
	defer func() {
		if !committed {
			_ = os.Remove(tmpPath)
		}
	}()

	w := &progressWriter{total: stream.Size, report: progress}
	n, err := io.Copy(io.MultiWriter(tmp, w), contextReader{ctx: ctx, r: stream.Body})
	if closeErr := tmp.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		return "", n, fmt.Errorf("write file: %w", err)
	}
	if stream.Size > 0 && n != stream.Size {
		return "", n, fmt.Errorf("write file: got %d of %d bytes", n, stream.Size)
	}

	dest, err := uniquePath(filepath.Join(s.dir, CleanFilename(job.Filename)))
	if err != nil {
		return "", n, err
	}
	if err := os.Rename(tmpPath, dest); err != nil {
		return "", n, fmt.Errorf("move file: %w", err)
	}
	committed = true
	if progress != nil {
		progress(n, n)
	}

	s.log.Info("saved download",
		zap.String("job", job.ID),
		zap.String("path", dest),
		zap.Int64("bytes", n))
	return dest, n, nil
}

// uniquePath returns path, or "name (N).ext" when path already exists.
func uniquePath(path string) (string, error) {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return path, nil
	}
	ext := filepath.Ext(path)
	base := strings.TrimSuffix(path, ext)
	for i := 1; i < 1000; i++ {
		candidate := fmt.Sprintf("%s (%d)%s", base, i, ext)
		if _, err := os.Stat(candidate); errors.Is(err, os.ErrNotExist) {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("no free file name for %s", filepath.Base(path))
}

type progressWriter struct {
	written  int64
	reported int64
	total    int64
	report   func(written, total int64)
}

func (w *progressWriter) Write(p []byte) (int, error) {
	w.written += int64(len(p))
	if w.report != nil && w.written-w.reported >= progressStep {
		w.reported = w.written
		w.report(w.written, w.total)
	}
	return len(p), nil
}

type contextReader struct {
	ctx context.Context
	r   io.Reader
}

func (c contextReader) Read(p []byte) (int, error) {
	if err := c.ctx.Err(); err != nil {
		return 0, err
	}
	return c.r.Read(p)
}
