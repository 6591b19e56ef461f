// Package errmsg provides consistent error formatting for user-facing messages.
package errmsg

import "fmt"

// Op represents an operation that can fail.
type Op string

// Operation constants - grouped by domain.
const (
	// Search
	OpSearch Op = "search"

	// Download
	OpDownloadLink Op = "get download link"
	OpDownloadSave Op = "save download"
	OpDownloadTags Op = "tag downloaded file"
	OpHistorySave  Op = "record download"
	OpHistoryLoad  Op = "load download history"

	// Preview
	OpPreviewLoad Op = "load preview"
	OpPreviewPlay Op = "play preview"

	// Token and renewal
	OpTokenInfo     Op = "verify token"
	OpRenewalStatus Op = "check renewal status"
	OpRenewalCheck  Op = "check renewal"
	OpRenewalForce  Op = "force renewal"
	OpBackupSave    Op = "save credential backup"

	// Clipboard
	OpClipboardCopy Op = "copy to clipboard"

	// Settings
	OpSettingsSave Op = "save settings"
	OpSettingsLoad Op = "load settings"

	// Initialization
	OpInitialize Op = "initialize application"
)

// Format creates a user-friendly error message.
func Format(op Op, err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("Failed to %s: %v", op, err)
}

// FormatWith creates an error message with additional context.
func FormatWith(op Op, context string, err error) string {
	if err == nil {
		return ""
	}
	if context == "" {
		return Format(op, err)
	}
	return fmt.Sprintf("Failed to %s '%s': %v", op, context, err)
}
