package stream

import (
	"context"
	"errors"
	"io"
	"time"

	"github.com/rs/zerolog"
)

// Handshake is written right after the port opens to flush any prompt the
// firmware printed while booting.
const Handshake = "\r\n\r\n"

// DefaultSettleDelay is how long the firmware gets to initialise after the
// handshake before buffered input is discarded.
const DefaultSettleDelay = 2 * time.Second

// Config holds the parameters of a run.
type Config struct {
	Port        string
	BaudRate    int
	SettleDelay time.Duration
	// AckTimeout bounds the wait for each reply. Zero waits forever, which
	// is what the line protocol itself assumes.
	AckTimeout time.Duration
}

// DefaultConfig returns the configuration used when nothing is overridden.
func DefaultConfig() Config {
	return Config{
		BaudRate:    115200,
		SettleDelay: DefaultSettleDelay,
	}
}

// Controller runs the handshake and the send/acknowledge loop.
type Controller struct {
	config   Config
	dialer   Dialer
	observer Observer
	logger   zerolog.Logger
	sleep    func(ctx context.Context, d time.Duration) error
}

// Option configures a Controller.
type Option func(*Controller)

// WithObserver sets the receiver of run events.
func WithObserver(o Observer) Option {
	return func(c *Controller) { c.observer = o }
}

// WithLogger sets the diagnostic logger.
func WithLogger(l zerolog.Logger) Option {
	return func(c *Controller) { c.logger = l }
}

// WithSleep replaces the settle delay wait, mainly for tests.
func WithSleep(sleep func(ctx context.Context, d time.Duration) error) Option {
	return func(c *Controller) { c.sleep = sleep }
}

// New creates a Controller that opens its connection through dialer.
func New(config Config, dialer Dialer, opts ...Option) *Controller {
	c := &Controller{
		config: config,
		dialer: dialer,
		logger: zerolog.Nop(),
		sleep:  sleepContext,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Run streams src to the device and returns once src is exhausted, ctx is
// cancelled, or the transport fails. The connection and src are closed
// exactly once before Run returns, whatever the outcome.
//
// Cancelling ctx is the operator's stop request. It is honoured between
// commands only; the reply to a command already sent is always awaited.
func (c *Controller) Run(ctx context.Context, src Source) (summary Summary, err error) {
	defer c.transition(StateClosed)
	defer func() {
		if cerr := src.Close(); cerr != nil {
			c.logger.Warn().Err(cerr).Msg("closing command source")
		}
	}()

	c.transition(StateConnecting)
	c.logger.Debug().Str("port", c.config.Port).Int("baud", c.config.BaudRate).Msg("opening device")

	conn, err := c.dialer.Dial(c.config.Port, c.config.BaudRate)
	if err != nil {
		c.logger.Error().Err(err).Str("port", c.config.Port).Msg("device open failed")
		return summary, &ConnectionError{Port: c.config.Port, BaudRate: c.config.BaudRate, Err: err}
	}
	defer func() {
		if cerr := conn.Close(); cerr != nil {
			c.logger.Warn().Err(cerr).Str("port", c.config.Port).Msg("closing device")
			if err == nil {
				err = &IOError{Op: "close", Err: cerr}
			}
		}
	}()

	c.transition(StateHandshaking)
	if err := c.handshake(ctx, conn); err != nil {
		c.transition(StateDraining)
		return summary, err
	}

	c.transition(StateStreaming)
	err = c.stream(ctx, conn, src, &summary)
	c.transition(StateDraining)

	if err != nil {
		c.logger.Error().Err(err).Msg("stream aborted")
	}
	c.logger.Debug().
		Int("sent", summary.Sent).
		Int("ok", summary.OK).
		Int("rejected", summary.Rejected).
		Bool("cancelled", summary.Cancelled).
		Msg("stream finished")
	return summary, err
}

// handshake wakes the device and throws away whatever it printed while
// booting. A cancel during the settle delay skips the rest; the streaming
// loop then stops before sending anything.
func (c *Controller) handshake(ctx context.Context, conn Conn) error {
	if err := conn.WriteAll(context.WithoutCancel(ctx), []byte(Handshake)); err != nil {
		return &IOError{Op: "handshake", Err: err}
	}

	c.logger.Debug().Dur("settle", c.config.SettleDelay).Msg("waiting for firmware")
	if err := c.sleep(ctx, c.config.SettleDelay); err != nil {
		return nil
	}

	if err := conn.ClearInput(); err != nil {
		return &IOError{Op: "handshake", Err: err}
	}
	return nil
}

func (c *Controller) stream(ctx context.Context, conn Conn, src Source, summary *Summary) error {
	for {
		if ctx.Err() != nil {
			summary.Cancelled = true
			c.logger.Info().Msg("stop requested, leaving stream")
			return nil
		}

		cmd, err := src.Next()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return &IOError{Op: "source", Line: cmd.Line, Err: err}
		}

		if cmd.Empty() {
			summary.Skipped++
			c.emit(Event{Kind: EventSkipped, Command: cmd})
			continue
		}

		ack, err := c.roundTrip(ctx, conn, cmd, summary)
		if err != nil {
			return err
		}
		if ack.OK() {
			summary.OK++
		} else {
			summary.Rejected++
		}
	}
}

// roundTrip sends one command and waits for its single reply. Neither step
// is interrupted by cancellation of ctx; only AckTimeout bounds the wait.
func (c *Controller) roundTrip(ctx context.Context, conn Conn, cmd Command, summary *Summary) (Ack, error) {
	inflight := context.WithoutCancel(ctx)

	c.emit(Event{Kind: EventSent, Command: cmd})
	if err := conn.WriteAll(inflight, cmd.Frame()); err != nil {
		return Ack{}, &IOError{Op: "write", Line: cmd.Line, Err: err}
	}
	summary.Sent++
	c.emit(Event{Kind: EventWritten, Command: cmd})

	if c.config.AckTimeout > 0 {
		var cancel context.CancelFunc
		inflight, cancel = context.WithTimeout(inflight, c.config.AckTimeout)
		defer cancel()
	}

	reply, err := conn.ReadLine(inflight)
	if err != nil {
		return Ack{}, &IOError{Op: "read", Line: cmd.Line, Err: err}
	}

	ack := Classify(reply)
	c.emit(Event{Kind: EventAck, Command: cmd, Ack: ack})
	if !ack.OK() {
		c.logger.Debug().Int("line", cmd.Line).Str("reply", ack.Text()).Msg("command rejected")
	}
	return ack, nil
}

func (c *Controller) transition(s State) {
	c.logger.Debug().Stringer("state", s).Msg("state change")
	c.emit(Event{Kind: EventState, State: s})
}

func (c *Controller) emit(e Event) {
	if c.observer != nil {
		c.observer.Observe(e)
	}
}
