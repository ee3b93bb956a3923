package tasksync

// Mode is the controller's view of the backend.
type Mode int

const (
	// ModeUnknown is the state before the first successful or failed load.
	ModeUnknown Mode = iota
	// ModeLive means tasks come from and are written to the server.
	ModeLive
	// ModeFallback means the server was unreachable and a local demo set is shown.
	ModeFallback
)

// String returns the mode name.
func (m Mode) String() string {
	switch m {
	case ModeLive:
		return "live"
	case ModeFallback:
		return "fallback"
	default:
		return "unknown"
	}
}
