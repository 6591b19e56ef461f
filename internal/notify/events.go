package notify

import (
	"github.com/dustin/go-humanize"
)

// DownloadSaved describes a finished download.
func DownloadSaved(artist, title string, size int64, timeout int32) Notification {
	body := artist
	if size > 0 {
		body += " (" + humanize.Bytes(uint64(size)) + ")"
	}
	return Notification{
		Title:   "Downloaded: " + title,
		Body:    body,
		Icon:    "folder-download",
		Timeout: timeout,
		Urgency: UrgencyLow,
	}
}

// DownloadFailed describes a download that could not be resolved or saved.
func DownloadFailed(title, reason string, timeout int32) Notification {
	return Notification{
		Title:   "Download failed: " + title,
		Body:    reason,
		Icon:    "dialog-error",
		Timeout: timeout,
		Urgency: UrgencyNormal,
	}
}

// PreviewFailed describes a preview error.
func PreviewFailed(title, reason string, timeout int32) Notification {
	return Notification{
		Title:   "Preview unavailable: " + title,
		Body:    reason,
		Icon:    "audio-x-generic",
		Timeout: timeout,
		Urgency: UrgencyLow,
	}
}

// TokenWarning describes an expiring or invalid backend token.
func TokenWarning(text string, urgent bool, timeout int32) Notification {
	u := UrgencyNormal
	if urgent {
		u = UrgencyCritical
	}
	return Notification{
		Title:   "tunefetch token",
		Body:    text,
		Icon:    "dialog-warning",
		Timeout: timeout,
		Urgency: u,
	}
}
