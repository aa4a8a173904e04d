package display

// State is the lifecycle state of a Display.
type State uint32

const (
	// StateOpen means the handle is idle and usable.
	StateOpen State = iota

	// StateBusy means an operation is in flight.
	StateBusy

	// StateClosed means the connection has been released. Terminal.
	StateClosed
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateOpen:
		return "OPEN"
	case StateBusy:
		return "BUSY"
	case StateClosed:
		return "CLOSED"
	default:
		return "UNKNOWN"
	}
}
