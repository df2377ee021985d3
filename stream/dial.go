package stream

import (
	"context"

	"github.com/allbin/go-gsend"
)

// Conn is the device side of a run. *gsend.Conn satisfies it.
type Conn interface {
	WriteAll(ctx context.Context, data []byte) error
	ReadLine(ctx context.Context) (string, error)
	ClearInput() error
	Close() error
}

// Dialer opens the device connection for a run.
type Dialer interface {
	Dial(port string, baudRate int) (Conn, error)
}

// DialerFunc adapts a function to the Dialer interface.
type DialerFunc func(port string, baudRate int) (Conn, error)

// Dial calls f.
func (f DialerFunc) Dial(port string, baudRate int) (Conn, error) { return f(port, baudRate) }

// SerialDialer opens real serial devices with gsend.Dial. The baud rate
// given to Dial is applied after opts.
func SerialDialer(opts ...gsend.Option) Dialer {
	return DialerFunc(func(port string, baudRate int) (Conn, error) {
		all := append(append([]gsend.Option(nil), opts...), gsend.WithBaudRate(baudRate))
		conn, err := gsend.Dial(port, all...)
		if err != nil {
			return nil, err
		}
		return conn, nil
	})
}
