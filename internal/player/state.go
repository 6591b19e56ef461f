package player

// State transitions:
//   - Stopped → Playing (Play)
//   - Playing ↔ Paused  (Pause, Resume, Toggle)
//   - any     → Stopped (Stop, or Play of another preview)
//
// Invalid transitions are ignored.

func (s State) String() string {
	switch s {
	case Stopped:
		return "Stopped"
	case Playing:
		return "Playing"
	case Paused:
		return "Paused"
	default:
		return "Unknown"
	}
}

// IsActive returns true if a preview is loaded (Playing or Paused).
func (s State) IsActive() bool {
	return s == Playing || s == Paused
}
