// Package stream drives a line-oriented controller over a serial
// connection with a strict one-command-in-flight handshake.
//
// A Controller dials the device, performs the wake-up handshake, then pulls
// commands from a Source one at a time. Each command is written, and the
// next one is not sent until the device has answered with exactly one line.
// A reply other than "ok" is reported to the Observer but does not stop the
// run; transport failures do.
//
// Cancellation is cooperative. Cancelling the context passed to Run stops the
// loop before the next command is sent. A command already on the wire always
// gets its reply read first.
package stream
