package stream

import "fmt"

// ConnectionError reports that the device could not be opened. It is never
// retried.
type ConnectionError struct {
	Port     string
	BaudRate int
	Err      error
}

func (e *ConnectionError) Error() string {
	return fmt.Sprintf("connect %s at %d baud: %v", e.Port, e.BaudRate, e.Err)
}

func (e *ConnectionError) Unwrap() error { return e.Err }

// IOError reports a transport failure that ended the run.
type IOError struct {
	// Op is one of "handshake", "source", "write", "read" or "close".
	Op string
	// Line is the source line in flight, or 0 outside the streaming loop.
	Line int
	Err  error
}

func (e *IOError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("%s failed at line %d: %v", e.Op, e.Line, e.Err)
	}
	return fmt.Sprintf("%s failed: %v", e.Op, e.Err)
}

func (e *IOError) Unwrap() error { return e.Err }

// CommandError describes a command the device answered with something other
// than "ok". It is reported to the observer and never ends a run.
type CommandError struct {
	Command Command
	Reply   string
}

func (e *CommandError) Error() string {
	reply := e.Reply
	if reply == "" {
		reply = "<empty>"
	}
	return fmt.Sprintf("line %d %q rejected: %s", e.Command.Line, e.Command.Text, reply)
}
