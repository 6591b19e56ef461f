// Package api is the HTTP client for the music backend.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"go.uber.org/zap"
)

const (
	defaultTimeout   = 30 * time.Second
	defaultAttempts  = 3
	defaultRetryBase = 500 * time.Millisecond
	maxBackoff       = 10 * time.Second
	maxBodySize      = 4 << 20
)

// Client provides access to the backend API.
type Client struct {
	baseURL     string
	httpClient  *http.Client
	log         *zap.Logger
	maxAttempts int
	retryBase   time.Duration
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.httpClient = h }
}

// WithLogger sets the logger used for request tracing.
func WithLogger(l *zap.Logger) Option {
	return func(c *Client) { c.log = l }
}

// WithRetry sets the attempt count and base backoff for idempotent requests.
func WithRetry(attempts int, base time.Duration) Option {
	return func(c *Client) {
		c.maxAttempts = max(attempts, 1)
		c.retryBase = base
	}
}

// NewClient creates a new backend API client.
func NewClient(baseURL string, timeout time.Duration, opts ...Option) *Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	c := &Client{
		baseURL:     baseURL,
		httpClient:  &http.Client{Timeout: timeout},
		log:         zap.NewNop(),
		maxAttempts: defaultAttempts,
		retryBase:   defaultRetryBase,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the backend root URL.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Search runs a search on the backend.
func (c *Client) Search(ctx context.Context, req SearchRequest) (*SearchResponse, error) {
	var resp SearchResponse
	status, err := c.post(ctx, "/api/search", req, &resp)
	resp.HTTPStatus = status
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// Download requests a signed download URL for a track.
func (c *Client) Download(ctx context.Context, id TrackID, quality string) (*DownloadResponse, error) {
	var resp DownloadResponse
	status, err := c.post(ctx, "/api/download", DownloadRequest{TrackID: id, Quality: quality}, &resp)
	resp.HTTPStatus = status
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// Preview requests a signed preview URL for a track.
func (c *Client) Preview(ctx context.Context, id TrackID) (*PreviewResponse, error) {
	var resp PreviewResponse
	status, err := c.post(ctx, "/api/preview", PreviewRequest{TrackID: id}, &resp)
	resp.HTTPStatus = status
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// TokenInfo fetches the upstream token and subscription record.
func (c *Client) TokenInfo(ctx context.Context) (*TokenInfoResponse, error) {
	var resp TokenInfoResponse
	status, err := c.get(ctx, "/api/token-info", &resp)
	resp.HTTPStatus = status
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// RenewalStatus fetches whether a credential renewal is due.
func (c *Client) RenewalStatus(ctx context.Context) (*RenewalResponse, error) {
	return c.renewal(ctx, http.MethodGet, "/api/auto-renewal/status")
}

// RenewalCheck asks the backend to renew if the renewal threshold is reached.
func (c *Client) RenewalCheck(ctx context.Context) (*RenewalResponse, error) {
	return c.renewal(ctx, http.MethodGet, "/api/auto-renewal/check")
}

// RenewalForce asks the backend to renew credentials now.
func (c *Client) RenewalForce(ctx context.Context) (*RenewalResponse, error) {
	return c.renewal(ctx, http.MethodPost, "/api/auto-renewal/force")
}

func (c *Client) renewal(ctx context.Context, method, path string) (*RenewalResponse, error) {
	var resp RenewalResponse
	var status int
	var err error
	if method == http.MethodGet {
		status, err = c.get(ctx, path, &resp)
	} else {
		status, err = c.post(ctx, path, struct{}{}, &resp)
	}
	resp.HTTPStatus = status
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// ProxyDownloadURL builds the backend URL that streams and tags the file
// behind a resolved download URL.
func (c *Client) ProxyDownloadURL(downloadURL, filename string, id TrackID) string {
	q := url.Values{}
	q.Set("url", downloadURL)
	q.Set("filename", filename)
	q.Set("track_id", string(id))
	return c.baseURL + "/api/proxy-download?" + q.Encode()
}

// Stream is an open HTTP response body for file and audio transfers.
type Stream struct {
	Body        io.ReadCloser
	ContentType string
	Size        int64 // -1 when unknown
}

// OpenStream issues a GET for rawURL and returns the body for streaming.
// Non-2xx responses are returned as *StatusError.
func (c *Client) OpenStream(ctx context.Context, rawURL string) (*Stream, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	// Transfers can outlive the JSON timeout.
	client := &http.Client{Transport: c.httpClient.Transport}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("execute request: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		resp.Body.Close()
		return nil, &StatusError{Code: resp.StatusCode}
	}

	return &Stream{
		Body:        resp.Body,
		ContentType: resp.Header.Get("Content-Type"),
		Size:        resp.ContentLength,
	}, nil
}

func (c *Client) post(ctx context.Context, path string, body, out any) (int, error) {
	jsonBody, err := json.Marshal(body)
	if err != nil {
		return 0, fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(jsonBody))
	if err != nil {
		return 0, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Debug("request failed", zap.String("path", path), zap.Error(err))
		return 0, fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()
	c.log.Debug("request done",
		zap.String("method", http.MethodPost),
		zap.String("path", path),
		zap.Int("status", resp.StatusCode),
		zap.Duration("took", time.Since(start)))

	return resp.StatusCode, decodeBody(resp, out)
}

// get retries transport errors, 429 and 5xx with exponential backoff,
// honouring Retry-After when the server sends one.
func (c *Client) get(ctx context.Context, path string, out any) (int, error) {
	var lastErr error
	for attempt := range c.maxAttempts {
		if attempt > 0 {
			if err := sleepCtx(ctx, c.backoff(attempt, lastErr)); err != nil {
				return 0, err
			}
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, http.NoBody)
		if err != nil {
			return 0, fmt.Errorf("create request: %w", err)
		}
		req.Header.Set("Accept", "application/json")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			if ctx.Err() != nil {
				return 0, ctx.Err()
			}
			c.log.Debug("request failed", zap.String("path", path), zap.Int("attempt", attempt+1), zap.Error(err))
			lastErr = fmt.Errorf("execute request: %w", err)
			continue
		}

		if retryable(resp.StatusCode) && attempt < c.maxAttempts-1 {
			lastErr = &retryAfterError{
				StatusError: StatusError{Code: resp.StatusCode},
				wait:        parseRetryAfter(resp),
			}
			resp.Body.Close()
			continue
		}

		err = decodeBody(resp, out)
		resp.Body.Close()
		return resp.StatusCode, err
	}
	return 0, lastErr
}

// backoff doubles the base wait on every retry, capped at maxBackoff.
// A longer Retry-After from the server wins.
func (c *Client) backoff(attempt int, lastErr error) time.Duration {
	wait := maxBackoff
	if shift := attempt - 1; shift < 16 {
		wait = min(c.retryBase<<shift, maxBackoff)
	}
	var ra *retryAfterError
	if errors.As(lastErr, &ra) && ra.wait > wait {
		wait = ra.wait
	}
	return wait
}

type retryAfterError struct {
	StatusError
	wait time.Duration
}

func (e *retryAfterError) Unwrap() error { return &e.StatusError }

func retryable(code int) bool {
	return code == http.StatusTooManyRequests || code >= 500
}

func decodeBody(resp *http.Response, out any) error {
	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}
	ok := resp.StatusCode >= 200 && resp.StatusCode <= 299

	// Error payloads are JSON too; only fall back to the status when
	// the body is not a JSON object.
	if err := json.Unmarshal(data, out); err != nil {
		if !ok {
			return &StatusError{Code: resp.StatusCode}
		}
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func parseRetryAfter(resp *http.Response) time.Duration {
	ra := resp.Header.Get("Retry-After")
	if ra == "" {
		return 0
	}
	if seconds, err := strconv.Atoi(ra); err == nil && seconds > 0 {
		return time.Duration(seconds) * time.Second
	}
	if t, err := http.ParseTime(ra); err == nil {
		return time.Until(t)
	}
	return 0
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
