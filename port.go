package gsend

import (
	"context"
	"io"
)

// Port represents a serial port connection interface
type Port interface {
	io.ReadWriteCloser
	WriteContext(ctx context.Context, data []byte) (int, error)
	ReadContext(ctx context.Context, buf []byte) (int, error)
	Drain() error
	FlushInput() error
}

// FlowControl represents the flow control mode
type FlowControl int

const (
	FlowControlNone FlowControl = iota
	FlowControlRTSCTS
)

func (fc FlowControl) String() string {
	switch fc {
	case FlowControlNone:
		return "none"
	case FlowControlRTSCTS:
		return "rtscts"
	default:
		return "unknown"
	}
}

// Parity represents the parity mode
type Parity int

const (
	ParityNone Parity = iota
	ParityOdd
	ParityEven
	ParityMark
	ParitySpace
)

func (p Parity) String() string {
	switch p {
	case ParityOdd:
		return "O"
	case ParityEven:
		return "E"
	case ParityMark:
		return "M"
	case ParitySpace:
		return "S"
	default:
		return "N"
	}
}

// Open opens a serial port with the given device path and options
func Open(device string, opts ...Option) (Port, error) {
	config, err := resolveConfig(opts)
	if err != nil {
		return nil, err
	}
	return openPort(device, config)
}

// checkContext returns the context error, if any, without blocking.
func checkContext(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
		return nil
	}
}
