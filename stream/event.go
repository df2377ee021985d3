package stream

// State is a phase of a streaming run.
type State int

const (
	StateIdle State = iota
	StateConnecting
	StateHandshaking
	StateStreaming
	StateDraining
	StateClosed
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateConnecting:
		return "connecting"
	case StateHandshaking:
		return "handshaking"
	case StateStreaming:
		return "streaming"
	case StateDraining:
		return "draining"
	case StateClosed:
		return "closed"
	default:
		return "unknown"
	}
}

// EventKind identifies what an Event reports.
type EventKind int

const (
	EventState EventKind = iota
	// EventSent fires just before a command is written.
	EventSent
	// EventWritten fires once the whole command frame reached the port.
	EventWritten
	EventAck
	EventSkipped
)

// Event is delivered to the Observer as a run progresses. Fields not
// relevant to Kind are zero.
type Event struct {
	Kind    EventKind
	State   State
	Command Command
	Ack     Ack
}

// Err returns a CommandError for a rejected acknowledgment, and nil for
// every other event.
func (e Event) Err() error {
	if e.Kind != EventAck || e.Ack.OK() {
		return nil
	}
	return &CommandError{Command: e.Command, Reply: e.Ack.Text()}
}

// Observer receives events synchronously on the streaming goroutine. It must
// not block for long: the device is waiting.
type Observer interface {
	Observe(Event)
}

// ObserverFunc adapts a function to the Observer interface.
type ObserverFunc func(Event)

// Observe calls f.
func (f ObserverFunc) Observe(e Event) { f(e) }

// Summary counts what happened during a run.
type Summary struct {
	Sent      int
	OK        int
	Rejected  int
	Skipped   int
	Cancelled bool
}
