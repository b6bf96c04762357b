package core

// Dispatcher wraps a TaskRegistry with the main Loop entry point, the
// next-deadline computation, and the OS/non-OS idle-sleep split.
//
// Grounded on the original Scheduler::TemplateScheduler::Loop, adapted
// from a compile-time template parameterization to runtime construction
// flags (idle sleep enable, OS mode) since Go favors value configuration
// over specialization for this kind of policy switch.
type Dispatcher struct {
	*TaskRegistry
	idleSleepEnabled bool
	osMode           bool
	tickPeriodMs     uint32
}

// NewDispatcher constructs a dispatcher over a fresh registry of the given
// capacity. idleSleepEnabled toggles whether Loop may call into
// IdleSleeper when nothing fired. osMode selects the wake-object-backed
// SleepUntil path (cooperative OS present) over the halt-until-interrupt
// Sleep path; tickPeriodMs is the OS scheduler's tick period, subtracted
// from the computed sleep duration so the wake never lands late.
func NewDispatcher(capacity int, idleSleepEnabled, osMode bool, tickPeriodMs uint32) *Dispatcher {
	return &Dispatcher{
		TaskRegistry:     NewTaskRegistry(capacity, osMode),
		idleSleepEnabled: idleSleepEnabled,
		osMode:           osMode,
		tickPeriodMs:     tickPeriodMs,
	}
}

// Loop runs one scheduling iteration: clears Hot, visits every tracker in
// ascending id order running those that are due, and, if nothing fired
// and idle sleep is enabled, sleeps for no longer than the next
// deadline.
func (d *Dispatcher) Loop() {
	now := d.now()
	d.ClearHot()

	for i := 0; i < d.Count(); i++ {
		if d.runIfDue(i, now) {
			d.MarkHot()
		}
	}

	if !d.idleSleepEnabled || d.Hot() {
		return
	}

	if d.osMode {
		d.sleepOS(now)
		return
	}
	d.sleepBareMetal(now)
}

// sleepBareMetal re-reads the clock and Hot inside the check-then-sleep
// window before committing to IdleSleeper.Sleep, closing the classic
// wake-lost race: if a wake arrived between the pass above and here, Hot
// is already true and we skip the halt.
func (d *Dispatcher) sleepBareMetal(passStart uint32) {
	if d.now() != passStart || d.Hot() {
		return
	}
	MustIdleSleeper().Sleep()
}

// sleepOS bounds the wait on the wake-object to the shortest deadline
// across all trackers, shortened by one OS tick so the wake never lands
// later than the deadline.
func (d *Dispatcher) sleepOS(now uint32) {
	sleepMs := d.timeUntilNextRun(now, 1)
	if sleepMs <= d.tickPeriodMs {
		return
	}
	MustIdleSleeper().SleepUntil(d.WakeObject(), sleepMs-d.tickPeriodMs)
}

// AdvanceTimestamp compensates for a deep-sleep interval that bypassed the
// millisecond clock, by rolling every tracker's LastRun back by offsetMs
// instead of adjusting the clock source itself.
func (d *Dispatcher) AdvanceTimestamp(offsetMs uint32) {
	d.advanceTimestamp(offsetMs)
}

// TimeUntilNextRun returns the shortest time until any registered tracker
// is next due.
func (d *Dispatcher) TimeUntilNextRun() uint32 {
	return d.timeUntilNextRun(d.now(), 0)
}

func (d *Dispatcher) now() uint32 {
	return MustClock().NowMillis()
}
