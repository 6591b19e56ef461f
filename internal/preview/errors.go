package preview

import (
	"context"
	"errors"
	"io"
	"net"
	"net/http"

	"github.com/llehouerou/tunefetch/internal/api"
	"github.com/llehouerou/tunefetch/internal/player"
)

// Category groups preview failures by what the user can do about them.
type Category int

const (
	CategoryRestricted Category = iota
	CategoryPermission
	CategoryNotFound
	CategoryNetwork
)

// Messages shown for each category.
const (
	MsgPermission = "Preview blocked: the provider denied access"
	MsgNotFound   = "Preview not available for this track"
	MsgNetwork    = "Network error while loading preview"
	MsgRestricted = "Preview restricted by the provider"
)

func (c Category) String() string {
	switch c {
	case CategoryPermission:
		return "permission"
	case CategoryNotFound:
		return "not-found"
	case CategoryNetwork:
		return "network"
	default:
		return "provider-restricted"
	}
}

// Message returns the user-facing text for c.
func (c Category) Message() string {
	switch c {
	case CategoryPermission:
		return MsgPermission
	case CategoryNotFound:
		return MsgNotFound
	case CategoryNetwork:
		return MsgNetwork
	default:
		return MsgRestricted
	}
}

// Classify maps a preview error to its category. Decode failures and
// anything unrecognised count as provider restrictions.
func Classify(err error) Category {
	if err == nil {
		return CategoryRestricted
	}

	if errors.Is(err, player.ErrDevice) {
		return CategoryPermission
	}
	if errors.Is(err, player.ErrDecode) || errors.Is(err, player.ErrUnsupported) {
		return CategoryRestricted
	}
	if status := statusOf(err); status == http.StatusUnauthorized || status == http.StatusForbidden {
		return CategoryPermission
	}
	if errors.Is(err, api.ErrNotFound) {
		return CategoryNotFound
	}

	var netErr net.Error
	if errors.As(err, &netErr) ||
		errors.Is(err, context.DeadlineExceeded) ||
		errors.Is(err, io.ErrUnexpectedEOF) {
		return CategoryNetwork
	}

	return CategoryRestricted
}

// Message is shorthand for Classify(err).Message().
func Message(err error) string {
	return Classify(err).Message()
}

func statusOf(err error) int {
	var se *api.StatusError
	if errors.As(err, &se) {
		return se.Code
	}
	var ae *api.AppError
	if errors.As(err, &ae) {
		return ae.Status
	}
	return 0
}
