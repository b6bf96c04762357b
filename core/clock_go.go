//go:build !tinygo

package core

import "time"

// hostClock is the host-simulated Clock used for non-tinygo builds:
// bring-up, integration tests, and the serial-sink trace-log task. It is
// wall-clock backed rather than hardware-timer backed.
type hostClock struct {
	epoch time.Time
}

func (h *hostClock) NowMillis() uint32 {
	return uint32(time.Since(h.epoch).Milliseconds())
}

func (h *hostClock) NowMicros() uint32 {
	return uint32(time.Since(h.epoch).Microseconds())
}

func init() {
	SetClock(&hostClock{epoch: time.Now()})
}
