//go:build !wasm && !tinygo

package sink

import (
	"bufio"
	"fmt"
	"time"

	"github.com/tarm/serial"
)

// NativePort wraps github.com/tarm/serial as a trace sink Port. Writes
// pass through a bufio.Writer so a Run's several small Fprintf calls
// coalesce into one underlying port write, rather than one per row.
type NativePort struct {
	port *serial.Port
	buf  *bufio.Writer
	cfg  *Config
}

// Open dials a native serial port as an io.Writer byte-sink for the
// trace-log task.
func Open(cfg *Config) (Port, error) {
	if cfg == nil {
		return nil, fmt.Errorf("sink: config cannot be nil")
	}

	port, err := serial.OpenPort(&serial.Config{
		Name:        cfg.Device,
		Baud:        cfg.Baud,
		ReadTimeout: time.Duration(cfg.ReadTimeout) * time.Millisecond,
	})
	if err != nil {
		return nil, fmt.Errorf("sink: open %s: %w", cfg.Device, err)
	}

	size := cfg.BufferSize
	if size <= 0 {
		size = defaultBufferSize
	}

	return &NativePort{port: port, buf: bufio.NewWriterSize(port, size), cfg: cfg}, nil
}

// Read reads data from the serial port. Reads bypass the write buffer;
// the trace-log task never reads, but a shared debug console on the same
// port may.
func (p *NativePort) Read(b []byte) (int, error) {
	return p.port.Read(b)
}

// Write buffers b instead of writing straight through, so a Run's header
// line plus its data rows reach the port as one write.
func (p *NativePort) Write(b []byte) (int, error) {
	return p.buf.Write(b)
}

// Close flushes any buffered rows, then closes the underlying port.
func (p *NativePort) Close() error {
	if p.port == nil {
		return nil
	}
	flushErr := p.buf.Flush()
	closeErr := p.port.Close()
	if flushErr != nil {
		return flushErr
	}
	return closeErr
}

// Flush pushes any buffered rows out to the serial port.
func (p *NativePort) Flush() error {
	return p.buf.Flush()
}
