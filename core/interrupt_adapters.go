package core

// Interrupt adapters bridge ISR context to the cooperative loop. Each
// performs only O(1) atomic state updates and a wake request from
// OnInterrupt; all semantic work, the listener callback, runs from Run,
// in cooperative context, where it may use non-reentrant services freely.
//
// Grounded on the original Harmonic::InterruptFlag::CallbackTask,
// InterruptSignal::CallbackTask, and InterruptEvent::CallbackTask.

// FlagListener receives flag-adapter notifications from cooperative
// context.
type FlagListener interface {
	OnFlagInterrupt()
}

// FlagTask coalesces any number of OnInterrupt calls between two dispatch
// passes into exactly one listener callback.
type FlagTask struct {
	DynamicTask
	flag     bool
	listener FlagListener
}

// NewFlagTask constructs an unattached flag adapter.
func NewFlagTask(registry *TaskRegistry) *FlagTask {
	return &FlagTask{DynamicTask: NewDynamicTask(registry)}
}

// AttachListener registers this task with the registry (period 0 so a
// wake runs it immediately), starting disabled until the first interrupt,
// and installs listener.
func (f *FlagTask) AttachListener(listener FlagListener) bool {
	if !f.DynamicTask.Attach(f, 0, false) {
		return false
	}
	f.listener = listener
	state := EnterCritical()
	f.flag = false
	ExitCritical(state)
	return true
}

// Run snapshots and clears the flag, delivers the coalesced notification
// if it was set, then disables itself unless a new interrupt has already
// arrived.
func (f *FlagTask) Run() {
	state := EnterCritical()
	flag := f.flag
	f.flag = false
	ExitCritical(state)

	if flag && f.listener != nil {
		f.listener.OnFlagInterrupt()
	}

	state = EnterCritical()
	pending := f.flag
	ExitCritical(state)
	f.SetEnabled(pending)
}

// OnInterrupt is called from ISR context. If the flag is already set it
// does nothing (coalescing); otherwise it sets the flag and wakes the
// dispatcher.
func (f *FlagTask) OnInterrupt() {
	state := EnterCritical()
	already := f.flag
	f.flag = true
	ExitCritical(state)

	if !already {
		f.WakeFromISR()
	}
}

// SignalListener receives signal-adapter notifications with the
// aggregated count since the last Run.
type SignalListener[W Unsigned] interface {
	OnSignalInterrupt(count W)
}

// SignalTask accumulates a saturating count of ISR firings between
// dispatch passes and delivers it as a single listener call.
type SignalTask[W Unsigned] struct {
	DynamicTask
	count    W
	listener SignalListener[W]
}

// NewSignalTask constructs an unattached signal adapter with counter
// width W.
func NewSignalTask[W Unsigned](registry *TaskRegistry) *SignalTask[W] {
	return &SignalTask[W]{DynamicTask: NewDynamicTask(registry)}
}

// AttachListener registers this task and installs listener.
func (s *SignalTask[W]) AttachListener(listener SignalListener[W]) bool {
	if !s.DynamicTask.Attach(s, 0, false) {
		return false
	}
	s.listener = listener
	state := EnterCritical()
	s.count = 0
	ExitCritical(state)
	return true
}

// Run snapshots-and-clears the counter, delivers it if nonzero, then
// disables itself unless the post-run counter is nonzero again.
func (s *SignalTask[W]) Run() {
	state := EnterCritical()
	count := s.count
	s.count = 0
	ExitCritical(state)

	if count > 0 && s.listener != nil {
		s.listener.OnSignalInterrupt(count)
	}

	state = EnterCritical()
	pending := s.count > 0
	ExitCritical(state)
	s.SetEnabled(pending)
}

// OnInterrupt is called from ISR context. Increments the counter up to
// its saturation ceiling and wakes the dispatcher.
func (s *SignalTask[W]) OnInterrupt() {
	state := EnterCritical()
	if s.count != maxOf[W]() {
		s.count++
	}
	ExitCritical(state)
	s.WakeFromISR()
}

// EventListener receives event-adapter notifications with the timestamp
// of the first unhandled event in the batch and the aggregated count.
type EventListener[W Unsigned] interface {
	OnEventInterrupt(timestamp uint32, count W)
}

// EventTask is the signal adapter plus the timestamp of the first
// unhandled event in the current batch, sampled from a configurable
// TimestampSource (microseconds or milliseconds).
type EventTask[W Unsigned] struct {
	DynamicTask
	source    TimestampSource
	timestamp uint32
	count     W
	listener  EventListener[W]
}

// NewEventTask constructs an unattached event adapter sampling source on
// the first interrupt of each batch.
func NewEventTask[W Unsigned](registry *TaskRegistry, source TimestampSource) *EventTask[W] {
	return &EventTask[W]{DynamicTask: NewDynamicTask(registry), source: source}
}

// AttachListener registers this task and installs listener.
func (e *EventTask[W]) AttachListener(listener EventListener[W]) bool {
	if !e.DynamicTask.Attach(e, 0, false) {
		return false
	}
	e.listener = listener
	state := EnterCritical()
	e.count = 0
	ExitCritical(state)
	return true
}

// Run snapshots-and-clears (timestamp, count) and delivers them to the
// listener if the count is nonzero.
func (e *EventTask[W]) Run() {
	state := EnterCritical()
	timestamp := e.timestamp
	count := e.count
	e.count = 0
	ExitCritical(state)

	if count > 0 && e.listener != nil {
		e.listener.OnEventInterrupt(timestamp, count)
	}

	state = EnterCritical()
	pending := e.count != 0
	ExitCritical(state)
	e.SetEnabled(pending)
}

// OnInterrupt is called from ISR context. On the first interrupt of a
// batch (count was zero) it samples the timestamp source; every call
// increments the count up to its saturation ceiling.
func (e *EventTask[W]) OnInterrupt() {
	state := EnterCritical()
	first := e.count == 0
	if first {
		e.timestamp = e.source.Now()
		e.count++
	} else if e.count != maxOf[W]() {
		e.count++
	}
	ExitCritical(state)

	if first {
		e.WakeFromISR()
	}
}
