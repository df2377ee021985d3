package gsend

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"unicode/utf8"
)

const readChunkSize = 256

// Conn is a line-oriented connection to a serial device. It owns the
// underlying Port and is not safe for concurrent use by multiple readers.
type Conn struct {
	mu      sync.Mutex
	port    Port
	path    string
	config  Config
	pending []byte
	closed  bool
}

// Dial opens the serial device at path and wraps it in a Conn.
func Dial(path string, opts ...Option) (*Conn, error) {
	config, err := resolveConfig(opts)
	if err != nil {
		return nil, err
	}

	p, err := openPort(path, config)
	if err != nil {
		return nil, err
	}

	return &Conn{port: p, path: path, config: config}, nil
}

// NewConn wraps an already open Port.
func NewConn(p Port, path string, config Config) *Conn {
	return &Conn{port: p, path: path, config: config}
}

// Path returns the device path the connection was opened on.
func (c *Conn) Path() string { return c.path }

// BaudRate returns the configured baud rate.
func (c *Conn) BaudRate() int { return c.config.BaudRate }

// WriteAll writes the whole payload or returns an error. Short writes are
// retried until every byte is accepted by the port.
func (c *Conn) WriteAll(ctx context.Context, data []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return ErrPortClosed
	}

	for len(data) > 0 {
		n, err := c.port.WriteContext(ctx, data)
		if errors.Is(err, context.DeadlineExceeded) {
			return fmt.Errorf("write %s: %w", c.path, ErrWriteTimeout)
		}
		if err != nil {
			return fmt.Errorf("write %s: %w", c.path, err)
		}
		if n == 0 {
			return fmt.Errorf("write %s: %w", c.path, io.ErrShortWrite)
		}
		data = data[n:]
	}
	return nil
}

// WriteString writes s in full.
func (c *Conn) WriteString(ctx context.Context, s string) error {
	return c.WriteAll(ctx, []byte(s))
}

// ReadLine blocks until one '\n' terminated line has been received and
// returns it without the terminator (a trailing '\r' is dropped as well).
// Bytes after the terminator are kept for the next call.
//
// The read only gives up when ctx is done; a deadline is reported as
// ErrReadTimeout. Without a deadline ReadLine waits indefinitely.
func (c *Conn) ReadLine(ctx context.Context) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return "", ErrPortClosed
	}

	buf := make([]byte, readChunkSize)
	for {
		if line, ok := c.takeLine(); ok {
			if !utf8.Valid(line) {
				return "", ErrInvalidUTF8
			}
			return string(line), nil
		}

		if err := ctx.Err(); err != nil {
			return "", c.readError(err)
		}

		n, err := c.port.ReadContext(ctx, buf)
		if n > 0 {
			c.pending = append(c.pending, buf[:n]...)
		}
		if err != nil {
			return "", c.readError(err)
		}
	}
}

// takeLine removes the first complete line from the pending buffer.
func (c *Conn) takeLine() ([]byte, bool) {
	i := bytes.IndexByte(c.pending, '\n')
	if i < 0 {
		return nil, false
	}

	line := make([]byte, i)
	copy(line, c.pending[:i])
	c.pending = c.pending[i+1:]

	return bytes.TrimSuffix(line, []byte{'\r'}), true
}

func (c *Conn) readError(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("read %s: %w", c.path, ErrReadTimeout)
	}
	return fmt.Errorf("read %s: %w", c.path, err)
}

// ClearInput discards everything received so far, both in the kernel buffer
// and in the connection's own line buffer.
func (c *Conn) ClearInput() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return ErrPortClosed
	}

	c.pending = c.pending[:0]
	return c.port.FlushInput()
}

// Close waits for buffered output to reach the device, then closes the
// underlying port. It is safe to call more than once and on a nil Conn.
func (c *Conn) Close() error {
	if c == nil {
		return nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return nil
	}
	c.closed = true

	drainErr := c.port.Drain()
	if err := c.port.Close(); err != nil {
		return err
	}
	if drainErr != nil {
		return fmt.Errorf("drain %s: %w", c.path, drainErr)
	}
	return nil
}
