package core

// TaskTracker holds one task's scheduling parameters and makes the
// per-tick firing decision. Reads of Period and Enabled against ISR
// mutation are guarded so the dispatcher never observes a torn snapshot.
//
// Grounded on the original Platform::TaskTracker / Model::TaskTracker
// RunIfTime contract, generalized with the late-bias and catch-up
// resynchronization rule.
type TaskTracker struct {
	task    Task
	period  uint32
	lastRun uint32
	enabled bool
}

// Bind installs the task reference, resets counters, and anchors LastRun
// to now when enabled starts true, so the first run respects the full
// period instead of firing immediately on a stale LastRun of zero.
func (t *TaskTracker) Bind(task Task, now, period uint32, enabled bool) {
	state := EnterCritical()
	t.task = task
	t.period = period
	t.enabled = enabled
	if enabled {
		t.lastRun = now
	}
	ExitCritical(state)
}

// Task returns the bound task, or nil if the slot is unoccupied.
func (t *TaskTracker) Task() Task {
	return t.task
}

// RunIfDue evaluates the late-bias firing rule and runs the task if due.
//
// Fires iff enabled and (period == 0 OR elapsed > period); the strict `>`
// guarantees a task never fires earlier than its nominal period. Elapsed
// time uses wrapping unsigned arithmetic, which is safe across a 32-bit
// millisecond clock rollover.
//
// After firing, a single catch-up run is permitted when the previous
// firing missed its deadline by more than one full period (elapsed >
// 2*period): LastRun resyncs to now instead of phase-accumulating debt.
// Otherwise LastRun advances by exactly one period, preserving phase.
func (t *TaskTracker) RunIfDue(now uint32) bool {
	state := EnterCritical()
	enabled := t.enabled
	period := t.period
	ExitCritical(state)

	if !enabled {
		return false
	}

	elapsed := now - t.lastRun
	if period != 0 && elapsed <= period {
		return false
	}

	t.task.Run()

	if period > 1 && elapsed > 2*period {
		t.lastRun = now
	} else {
		t.lastRun += period
	}
	return true
}

// SetPeriod atomically sets the firing period.
func (t *TaskTracker) SetPeriod(period uint32) {
	state := EnterCritical()
	t.period = period
	ExitCritical(state)
}

// SetEnabled atomically sets the enabled flag. A false->true transition
// resets LastRun to now so the first post-enable run honors the full
// period rather than catching up on time accrued while disabled.
func (t *TaskTracker) SetEnabled(now uint32, enabled bool) {
	state := EnterCritical()
	wasEnabled := t.enabled
	t.enabled = enabled
	if enabled && !wasEnabled {
		t.lastRun = now
	}
	ExitCritical(state)
}

// SetPeriodAndEnabled atomically sets both fields under one guard.
func (t *TaskTracker) SetPeriodAndEnabled(now, period uint32, enabled bool) {
	state := EnterCritical()
	wasEnabled := t.enabled
	t.period = period
	t.enabled = enabled
	if enabled && !wasEnabled {
		t.lastRun = now
	}
	ExitCritical(state)
}

// Wake atomically sets period to 0 and enabled to true: the next loop
// iteration runs the task unconditionally. This is the ISR fast path.
func (t *TaskTracker) Wake() {
	state := EnterCritical()
	t.period = 0
	t.enabled = true
	ExitCritical(state)
}

// IsEnabled reports the current enabled state. ISR-safe.
func (t *TaskTracker) IsEnabled() bool {
	return t.enabled
}

// Period returns the current firing period. ISR-safe.
func (t *TaskTracker) Period() uint32 {
	state := EnterCritical()
	p := t.period
	ExitCritical(state)
	return p
}

// TimeUntilNextRun returns the milliseconds remaining until this tracker
// is next eligible to run, for idle-sleep duration computation. A
// disabled tracker is treated as never-firing (returns MaxUint32).
func (t *TaskTracker) TimeUntilNextRun(now uint32) uint32 {
	state := EnterCritical()
	enabled := t.enabled
	period := t.period
	ExitCritical(state)

	if !enabled {
		return maxOf[uint32]()
	}
	if period == 0 {
		return 0
	}

	elapsed := now - t.lastRun
	if elapsed >= period {
		return 0
	}
	return period - elapsed
}

// AdvanceLastRun rolls LastRun back by offset, compensating for a deep
// sleep interval that bypassed the millisecond clock. Only Dispatcher's
// AdvanceTimestamp is permitted to call this outside the run/enable paths.
func (t *TaskTracker) AdvanceLastRun(offset uint32) {
	t.lastRun -= offset
}
