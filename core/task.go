// Package core implements the Harmonic cooperative task scheduler: a
// fixed-capacity, millisecond-granularity dispatcher for single-core
// microcontrollers, along with its ISR synchronization primitives.
package core

import "math"

// TaskID addresses a slot in a TaskRegistry. It equals the tracker's index
// and is renotified to the owning task on attach, detach, and any shift.
type TaskID = uint8

// InvalidTaskID is the sentinel value denoting "unregistered". It is never
// assigned as a live id.
const InvalidTaskID TaskID = math.MaxUint8

// MaxCapacity is the largest registry capacity a TaskID range can address:
// live ids run from 0 to InvalidTaskID-1, so the sentinel is never assigned.
const MaxCapacity = int(InvalidTaskID)

// Task is the run contract shared by every scheduled unit of work. Run must
// return quickly (design target: under one millisecond) and must not block;
// the cooperative dispatcher never preempts it.
type Task interface {
	Run()
}

// TaskIDAware is implemented by tasks that need to self-address the
// registry without a lookup. OnTaskIDUpdated is called on attach, on any
// shift caused by a neighbor's detach, and on detach (with InvalidTaskID).
type TaskIDAware interface {
	OnTaskIDUpdated(id TaskID)
}

// Unsigned constrains the saturating counters used by the signal and event
// interrupt adapters to configurable, wrap-free widths.
type Unsigned interface {
	~uint8 | ~uint16 | ~uint32 | ~uint64
}

// maxOf returns the saturation ceiling for an Unsigned counter type.
func maxOf[W Unsigned]() W {
	return ^W(0)
}
