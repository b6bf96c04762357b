// Package sink provides byte-stream transports for the scheduler's
// trace-log task. The scheduler core never formats or addresses a
// transport itself (§1's framing of textual trace formatting as out of
// scope); it only ever writes to an io.Writer. This package supplies one
// concrete io.Writer: a serial port, buffered so a trace-log Run's several
// small tab-separated rows coalesce into one write per logging period
// instead of one write per row.
package sink

import "io"

// defaultBufferSize comfortably holds several tab-separated trace-log
// rows before a Flush is needed.
const defaultBufferSize = 256

// Port is the serial-port transport contract. Implementations:
// - NativePort (github.com/tarm/serial), for the !wasm, !tinygo host build.
type Port interface {
	io.ReadWriteCloser

	// Flush pushes any buffered rows out to the underlying device. The
	// trace-log task calls this once per Run after writing its rows, so a
	// period's diagnostic line is never left sitting in the buffer.
	Flush() error
}

// Config holds serial port configuration for opening a trace sink.
type Config struct {
	// Device path (e.g., "/dev/ttyACM0", "COM3").
	Device string

	// Baud rate.
	Baud int

	// Read timeout in milliseconds (0 = blocking). The trace-log task
	// only writes, but a read timeout keeps an interactive session on
	// the same port (e.g. a debug console) from blocking indefinitely.
	ReadTimeout int

	// BufferSize is the write-buffer capacity in bytes. A trace-log row
	// is a handful of tab-separated fields, so the default comfortably
	// holds several rows of one logging period before a Flush is needed.
	BufferSize int
}

// DefaultConfig returns a reasonable default for a USB-CDC trace sink.
func DefaultConfig(device string) *Config {
	return &Config{
		Device:      device,
		Baud:        115200,
		ReadTimeout: 100,
		BufferSize:  defaultBufferSize,
	}
}
