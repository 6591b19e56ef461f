package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// ErrNotFound is matched by status and application errors for missing tracks.
var ErrNotFound = errors.New("not found")

// StatusError is returned when the backend answers with a non-2xx
// status and a body that is not a JSON payload.
type StatusError struct {
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("API returned status %d", e.Code)
}

// Is lets errors.Is(err, ErrNotFound) match gone or missing resources.
func (e *StatusError) Is(target error) bool {
	return target == ErrNotFound && isNotFoundStatus(e.Code)
}

// AppError is a success:false payload. Message is the backend's text,
// possibly empty.
type AppError struct {
	Status  int
	Message string
}

func (e *AppError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("request failed with status %d", e.Status)
	}
	return e.Message
}

// Is matches ErrNotFound on 404/410 or a "not found" style message.
func (e *AppError) Is(target error) bool {
	if target != ErrNotFound {
		return false
	}
	if isNotFoundStatus(e.Status) {
		return true
	}
	msg := strings.ToLower(e.Message)
	return strings.Contains(msg, "not found") || strings.Contains(msg, "no encontrado")
}

func isNotFoundStatus(code int) bool {
	return code == http.StatusNotFound || code == http.StatusGone
}

// Err returns the payload as an *AppError, or nil when it succeeded.
func (r *PreviewResponse) Err() error {
	if r.Success && r.PreviewURL != "" {
		return nil
	}
	return &AppError{Status: r.HTTPStatus, Message: r.Error}
}

// Err returns the payload as an *AppError, or nil when a link was returned.
func (r *DownloadResponse) Err() error {
	if r.DownloadURL != "" {
		return nil
	}
	return &AppError{Status: r.HTTPStatus, Message: r.Error}
}

// Err returns the payload as an *AppError, or nil when it succeeded.
func (r *SearchResponse) Err() error {
	if r.Success {
		return nil
	}
	return &AppError{Status: r.HTTPStatus, Message: r.Error}
}
