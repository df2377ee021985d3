// Package gsend provides the serial device layer used to stream G-code to
// plotters and other line-oriented motion controllers.
//
// On Linux ports are driven through termios directly; other platforms use
// go.bug.st/serial. Both expose the same Port interface.
//
// # Basic Usage
//
// Open a line-oriented connection (115200 8N1 by default):
//
//	conn, err := gsend.Dial("/dev/ttyUSB0", gsend.WithBaudRate(115200))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer conn.Close()
//
//	if err := conn.WriteString(ctx, "G28\n"); err != nil {
//	    log.Fatal(err)
//	}
//	reply, err := conn.ReadLine(ctx)
//
// ReadLine waits for a full '\n' terminated line. Give it a context with a
// deadline to bound the wait; the deadline surfaces as ErrReadTimeout.
//
// # Configuration Options
//
//	conn, err := gsend.Dial("/dev/ttyUSB0",
//	    gsend.WithBaudRate(250000),
//	    gsend.WithFlowControl(gsend.FlowControlRTSCTS),
//	    gsend.WithReadTimeout(200*time.Millisecond),
//	    gsend.WithInitialDTR(false),
//	)
//
// # Port Discovery
//
// The library never guesses a device on its own. Callers that want a
// default ask a Resolver once:
//
//	path, err := gsend.GuessResolver{}.Resolve()
//
// ListPorts and GetPortInfo describe what is attached, including USB vendor
// and product IDs read from sysfs on Linux.
//
// # Error Handling
//
// Errors wrap the package sentinels; use errors.Is:
//
//	if errors.Is(err, gsend.ErrReadTimeout) {
//	    // device did not answer in time
//	}
//
// # Default Configuration
//
//   - BaudRate: 115200
//   - DataBits: 8
//   - StopBits: 1
//   - Parity: None
//   - FlowControl: None
//   - ReadTimeout: 100ms poll interval
//   - WriteMode: Buffered
package gsend
