//go:build !tinygo

package core

import "time"

// hostIdleSleeper simulates idle sleep on the host build with real time,
// so host-side integration tests exercise the same sleep/wake ordering a
// target build would.
type hostIdleSleeper struct{}

func (hostIdleSleeper) Sleep() {
	time.Sleep(time.Millisecond)
}

func (hostIdleSleeper) SleepUntil(wake WakeObject, ms uint32) {
	timer := time.NewTimer(time.Duration(ms) * time.Millisecond)
	defer timer.Stop()
	select {
	case <-wake:
	case <-timer.C:
	}
}

func init() {
	SetIdleSleeper(hostIdleSleeper{})
}
