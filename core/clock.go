package core

// Clock is the monotonic timestamp source the scheduler reads from. It is
// one of the platform primitives described in the external interfaces:
// the core never assumes a concrete time source, only this contract.
type Clock interface {
	// NowMillis returns a monotonic millisecond counter; wraps at 2^32.
	NowMillis() uint32
	// NowMicros returns a monotonic microsecond counter, used by the
	// profiler and by the event interrupt adapter's timestamp capture.
	NowMicros() uint32
}

var activeClock Clock

// SetClock installs the platform clock. Target-specific code calls this
// once during startup.
func SetClock(c Clock) {
	activeClock = c
}

// MustClock returns the configured clock or panics if none was installed.
func MustClock() Clock {
	if activeClock == nil {
		panic("core: clock not configured")
	}
	return activeClock
}

// funcClock adapts two plain functions to the Clock interface, used by the
// SetClockFuncs test seam to inject deterministic fake time.
type funcClock struct {
	millis func() uint32
	micros func() uint32
}

func (f *funcClock) NowMillis() uint32 { return f.millis() }
func (f *funcClock) NowMicros() uint32 { return f.micros() }

// SetClockFuncs installs a deterministic fake clock for tests, replacing
// whatever Clock is currently active. Either function may be nil, in which
// case that channel always reads zero.
func SetClockFuncs(millis, micros func() uint32) {
	if millis == nil {
		millis = func() uint32 { return 0 }
	}
	if micros == nil {
		micros = func() uint32 { return 0 }
	}
	SetClock(&funcClock{millis: millis, micros: micros})
}

// TimestampSource selects which clock channel an interrupt adapter samples
// on the first event of a batch (the Event adapter's compile-time choice
// of microsecond or millisecond timestamps, realized here as a value
// chosen at construction rather than a template parameter).
type TimestampSource interface {
	Now() uint32
}

// MicrosTimestampSource samples Clock.NowMicros.
type MicrosTimestampSource struct{}

// Now implements TimestampSource.
func (MicrosTimestampSource) Now() uint32 { return MustClock().NowMicros() }

// MillisTimestampSource samples Clock.NowMillis.
type MillisTimestampSource struct{}

// Now implements TimestampSource.
func (MillisTimestampSource) Now() uint32 { return MustClock().NowMillis() }
