package stream

import "strings"

// Command is one line of input destined for the device.
type Command struct {
	// Line is the 1-based position in the source.
	Line int
	// Raw is the line as read, without its terminator.
	Raw string
	// Text is Raw with surrounding whitespace removed.
	Text string
}

// NewCommand builds a Command from a raw input line.
func NewCommand(line int, raw string) Command {
	return Command{Line: line, Raw: raw, Text: strings.TrimSpace(raw)}
}

// Empty reports whether the command has nothing to send.
func (c Command) Empty() bool { return c.Text == "" }

// Frame returns the bytes put on the wire: the trimmed text and one '\n'.
func (c Command) Frame() []byte {
	return []byte(c.Text + "\n")
}

// Status classifies a device reply.
type Status int

const (
	StatusOK Status = iota
	StatusError
)

func (s Status) String() string {
	if s == StatusOK {
		return "ok"
	}
	return "error"
}

// Ack is the device's reply to one command.
type Ack struct {
	Raw    string
	Status Status
}

// Classify turns a raw reply line into an Ack. Only a reply that trims to
// exactly "ok" is a success; anything else, including an empty line, is an
// error.
func Classify(raw string) Ack {
	if strings.TrimSpace(raw) == "ok" {
		return Ack{Raw: raw, Status: StatusOK}
	}
	return Ack{Raw: raw, Status: StatusError}
}

// OK reports whether the device accepted the command.
func (a Ack) OK() bool { return a.Status == StatusOK }

// Text returns the trimmed reply.
func (a Ack) Text() string { return strings.TrimSpace(a.Raw) }
