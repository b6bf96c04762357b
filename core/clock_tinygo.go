//go:build tinygo

package core

import "sync/atomic"

// systemMillis and systemMicros are free-running counters driven by a
// target-specific hardware timer ISR. The core never reads hardware
// registers directly; target code calls AddSystemMillis/AddSystemMicros
// from its timer interrupt handler.
var (
	systemMillis uint32
	systemMicros uint32
)

// targetClock is the default Clock on tinygo builds. It is intentionally
// thin: the actual tick source lives in target-specific code outside this
// module, which is expected to call AddSystemMillis/AddSystemMicros (or
// install its own Clock via SetClock).
type targetClock struct{}

func (targetClock) NowMillis() uint32 { return atomic.LoadUint32(&systemMillis) }
func (targetClock) NowMicros() uint32 { return atomic.LoadUint32(&systemMicros) }

// AddSystemMillis advances the millisecond counter. Safe to call from an
// ISR.
func AddSystemMillis(delta uint32) {
	atomic.AddUint32(&systemMillis, delta)
}

// AddSystemMicros advances the microsecond counter. Safe to call from an
// ISR.
func AddSystemMicros(delta uint32) {
	atomic.AddUint32(&systemMicros, delta)
}

func init() {
	SetClock(targetClock{})
}
