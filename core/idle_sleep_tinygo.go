//go:build tinygo

package core

// targetIdleSleeper is the default tinygo idle sleeper. Most embedded
// targets have no portable wait-for-interrupt primitive reachable from
// pure Go, so this default is a no-op busy-return, matching the original
// implementation's fallback branch ("no sleep idle implementation") for
// architectures without one. A target build wanting real power savings
// installs its own IdleSleeper via SetIdleSleeper (e.g. wrapping
// runtime/interrupt wait or an RTOS primitive).
type targetIdleSleeper struct{}

func (targetIdleSleeper) Sleep() {
}

func (targetIdleSleeper) SleepUntil(wake WakeObject, ms uint32) {
}

func init() {
	SetIdleSleeper(targetIdleSleeper{})
}
