// internal/app/popupctl/types.go
package popupctl

// Type identifies which popup is currently active.
type Type int

const (
	None Type = iota
	Help
	Confirm
	Error
	Download
	Info
)

// Priority defines which popup takes precedence (highest priority first).
var Priority = []Type{
	Error,
	Help,
	Confirm,
	Info,
	Download,
}

// RenderOrder defines the order popups are rendered (bottom to top).
var RenderOrder = []Type{
	Download,
	Info,
	Confirm,
	Help,
	Error,
}
