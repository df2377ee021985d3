package stream

import (
	"bufio"
	"errors"
	"io"
	"os"
	"strings"
	"sync"
)

// Source yields commands in order. Next returns io.EOF once the sequence is
// exhausted. A Source is read once and cannot be restarted.
type Source interface {
	Next() (Command, error)
	Close() error
}

// LineSource reads one Command per '\n' terminated line.
type LineSource struct {
	r      *bufio.Reader
	closer io.Closer
	line   int
	done   bool

	closeOnce sync.Once
	closeErr  error
}

// NewLineSource reads commands from r. If r is an io.Closer it is closed by
// Close.
func NewLineSource(r io.Reader) *LineSource {
	s := &LineSource{r: bufio.NewReader(r)}
	if c, ok := r.(io.Closer); ok {
		s.closer = c
	}
	return s
}

// OpenSource opens path for reading. An empty path or "-" reads standard
// input.
func OpenSource(path string) (*LineSource, error) {
	if path == "" || path == "-" {
		return NewLineSource(os.Stdin), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	return NewLineSource(f), nil
}

// Next returns the next line. An unterminated final line is still returned.
func (s *LineSource) Next() (Command, error) {
	if s.done {
		return Command{}, io.EOF
	}

	raw, err := s.r.ReadString('\n')
	if errors.Is(err, io.EOF) {
		s.done = true
		if raw == "" {
			return Command{}, io.EOF
		}
		err = nil
	}
	if err != nil {
		return Command{}, err
	}

	s.line++
	raw = strings.TrimSuffix(raw, "\n")
	raw = strings.TrimSuffix(raw, "\r")
	return NewCommand(s.line, raw), nil
}

// Close releases the underlying reader. Later calls return the first result.
func (s *LineSource) Close() error {
	s.closeOnce.Do(func() {
		s.done = true
		if s.closer != nil {
			s.closeErr = s.closer.Close()
		}
	})
	return s.closeErr
}
