package gsend

import (
	"context"
	"io"
)

// mockPort implements Port for testing
type mockPort struct {
	// chunks are returned by successive reads; an empty chunk models a
	// read timeout with no data
	chunks       [][]byte
	written      []byte
	maxWrite     int
	readErr      error
	writeErr     error
	flushInputs  int
	closeCalls   int
	drainCalls   int
	drainErr     error
	readCalls    int
	onEmptyChunk func()
}

func (m *mockPort) Read(p []byte) (int, error) {
	m.readCalls++
	if len(m.chunks) == 0 {
		if m.readErr != nil {
			return 0, m.readErr
		}
		return 0, io.EOF
	}

	chunk := m.chunks[0]
	if len(chunk) == 0 && m.onEmptyChunk != nil {
		m.onEmptyChunk()
	}
	n := copy(p, chunk)
	if n < len(chunk) {
		m.chunks[0] = chunk[n:]
	} else {
		m.chunks = m.chunks[1:]
	}
	return n, nil
}

func (m *mockPort) Write(p []byte) (int, error) {
	if m.writeErr != nil {
		return 0, m.writeErr
	}
	n := len(p)
	if m.maxWrite > 0 && n > m.maxWrite {
		n = m.maxWrite
	}
	m.written = append(m.written, p[:n]...)
	return n, nil
}

func (m *mockPort) ReadContext(ctx context.Context, p []byte) (int, error) {
	if err := checkContext(ctx); err != nil {
		return 0, err
	}
	return m.Read(p)
}

func (m *mockPort) WriteContext(ctx context.Context, p []byte) (int, error) {
	if err := checkContext(ctx); err != nil {
		return 0, err
	}
	return m.Write(p)
}

func (m *mockPort) Close() error {
	m.closeCalls++
	return nil
}

func (m *mockPort) Drain() error {
	m.drainCalls++
	return m.drainErr
}

func (m *mockPort) FlushInput() error {
	m.flushInputs++
	m.chunks = nil
	return nil
}

// zeroWritePort accepts nothing, without reporting an error
type zeroWritePort struct{ mockPort }

func (z *zeroWritePort) WriteContext(ctx context.Context, p []byte) (int, error) {
	return 0, nil
}
