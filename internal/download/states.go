package download

// State is the phase of the download modal.
type State int

const (
	StateIdle      State = iota // No modal
	StateModalOpen              // Modal shown, waiting to resolve
	StateResolving              // Download link requested
	StateLinkReady              // Link resolved, transfer started
	StateError                  // Link could not be resolved
	StateClosed                 // Modal closed by the user or auto-close
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateModalOpen:
		return "modal-open"
	case StateResolving:
		return "resolving"
	case StateLinkReady:
		return "link-ready"
	case StateError:
		return "error"
	case StateClosed:
		return "closed"
	}
	return "unknown"
}

// IsOpen reports whether the modal is visible.
func (s State) IsOpen() bool {
	switch s {
	case StateModalOpen, StateResolving, StateLinkReady, StateError:
		return true
	case StateIdle, StateClosed:
		return false
	}
	return false
}
