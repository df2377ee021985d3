//go:build !linux

package gsend

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"sync"

	"go.bug.st/serial"
)

// port adapts go.bug.st/serial to the Port interface on platforms without
// the termios implementation
type port struct {
	mu     sync.RWMutex
	sp     serial.Port
	config Config
	closed bool
}

var _ Port = (*port)(nil)

func supportedBaudRate(rate int) error {
	if rate <= 0 {
		return ErrInvalidBaudRate
	}
	return nil
}

func openPort(device string, config Config) (Port, error) {
	if config.FlowControl == FlowControlRTSCTS {
		return nil, fmt.Errorf("%w: rtscts flow control is only supported on linux", ErrInvalidConfig)
	}

	mode, err := serialMode(config)
	if err != nil {
		return nil, err
	}

	sp, err := serial.Open(device, mode)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", device, classifyOpenError(err))
	}

	if err := sp.SetReadTimeout(config.ReadTimeout); err != nil {
		sp.Close()
		return nil, fmt.Errorf("failed to set read timeout: %w", err)
	}

	return &port{sp: sp, config: config}, nil
}

// serialMode converts the configuration into the structure go.bug.st/serial
// expects when opening a port
func serialMode(config Config) (*serial.Mode, error) {
	mode := &serial.Mode{
		BaudRate: config.BaudRate,
		DataBits: config.DataBits,
	}

	switch config.StopBits {
	case 1:
		mode.StopBits = serial.OneStopBit
	case 2:
		mode.StopBits = serial.TwoStopBits
	default:
		return nil, ErrInvalidConfig
	}

	switch config.Parity {
	case ParityNone:
		mode.Parity = serial.NoParity
	case ParityOdd:
		mode.Parity = serial.OddParity
	case ParityEven:
		mode.Parity = serial.EvenParity
	case ParityMark:
		mode.Parity = serial.MarkParity
	case ParitySpace:
		mode.Parity = serial.SpaceParity
	default:
		return nil, ErrInvalidConfig
	}

	if config.InitialDTR != nil || config.InitialRTS != nil {
		bits := &serial.ModemOutputBits{DTR: true, RTS: true}
		if config.InitialDTR != nil {
			bits.DTR = *config.InitialDTR
		}
		if config.InitialRTS != nil {
			bits.RTS = *config.InitialRTS
		}
		mode.InitialStatusBits = bits
	}

	return mode, nil
}

func classifyOpenError(err error) error {
	if errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%w: %v", ErrDeviceNotFound, err)
	}

	var portErr *serial.PortError
	if !errors.As(err, &portErr) {
		return err
	}
	switch portErr.Code() {
	case serial.PortNotFound:
		return fmt.Errorf("%w: %v", ErrDeviceNotFound, err)
	case serial.PermissionDenied:
		return fmt.Errorf("%w: %v", ErrPermissionDenied, err)
	case serial.PortBusy:
		return fmt.Errorf("%w: %v", ErrDeviceInUse, err)
	case serial.InvalidSpeed:
		return fmt.Errorf("%w: %v", ErrInvalidBaudRate, err)
	default:
		return err
	}
}

// Close closes the serial port
func (p *port) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return ErrPortClosed
	}
	p.closed = true
	return p.sp.Close()
}

// Read reads data from the serial port. It returns 0, nil when the read
// timeout elapses without data.
func (p *port) Read(buf []byte) (int, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if p.closed {
		return 0, ErrPortClosed
	}
	return p.sp.Read(buf)
}

// Write writes data to the serial port
func (p *port) Write(data []byte) (int, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if p.closed {
		return 0, ErrPortClosed
	}
	return p.sp.Write(data)
}

// WriteContext writes data unless the context is already done
func (p *port) WriteContext(ctx context.Context, data []byte) (int, error) {
	if err := checkContext(ctx); err != nil {
		return 0, err
	}
	return p.Write(data)
}

// ReadContext performs a single bounded read unless the context is already done
func (p *port) ReadContext(ctx context.Context, buf []byte) (int, error) {
	if err := checkContext(ctx); err != nil {
		return 0, err
	}
	return p.Read(buf)
}

// Drain waits until all output written to the port has been transmitted
func (p *port) Drain() error {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if p.closed {
		return ErrPortClosed
	}
	return p.sp.Drain()
}

// FlushInput discards any unread input data
func (p *port) FlushInput() error {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if p.closed {
		return ErrPortClosed
	}
	return p.sp.ResetInputBuffer()
}
