// Package compat is a source-compatibility shim emulating an older,
// iteration-counted scheduler API (TaskScheduler-style: Task/enable/
// disable/restart/delay) strictly on top of core's public operations. It
// adds no state machine beyond an iteration counter and a target count,
// letting callers migrating off that API keep their call sites while
// running on the Harmonic dispatcher underneath.
//
// Grounded on the original TS::Task (Harmonic::CompatibilityTask.h).
package compat

import "github.com/GitMoDu/HarmonicScheduler/core"

// Sentinel iteration counts matching the emulated API's constants.
const (
	Immediate uint32 = 0
	Forever   int32  = -1
	Once      int32  = 1
)

// Task emulates the foreign scheduler's per-task surface: iteration
// limits, OnEnable/OnDisable hooks, restart, delay, force-next-iteration,
// and interval adjustment.
type Task struct {
	core.DynamicTask

	// Callback is the task's run body, invoked once per eligible
	// iteration. It returns false to signal its own early exit, mirroring
	// the emulated API's boolean run callback (the return value itself
	// carries no scheduling effect beyond what the caller does with it).
	Callback func() bool

	// OnEnableHook runs before the task transitions disabled->enabled. A
	// false return vetoes the enable.
	OnEnableHook func() bool
	// OnDisableHook runs after the task transitions enabled->disabled.
	OnDisableHook func()

	iterations       uint32
	targetIterations int32
}

// NewTask constructs and attaches a compat.Task, mirroring the emulated
// API's constructor signature (interval, iteration count, scheduler,
// initial enabled state).
func NewTask(registry *core.TaskRegistry, intervalMs uint32, iterations int32, enabled bool) *Task {
	t := &Task{
		DynamicTask:      core.NewDynamicTask(registry),
		targetIterations: iterations,
	}
	t.DynamicTask.Attach(t, intervalMs, enabled)
	return t
}

// Run implements core.Task. Once the target iteration count has been
// reached, it disables itself instead of invoking Callback.
func (t *Task) Run() {
	if t.isLastIteration() {
		t.Disable()
		return
	}
	if t.Callback != nil {
		t.Callback()
	}
	t.iterations++
}

// Enable enables the task, running OnEnableHook first if it was disabled.
// A false OnEnableHook veto leaves the task disabled.
func (t *Task) Enable() bool {
	if !t.IsEnabled() && t.OnEnableHook != nil && !t.OnEnableHook() {
		return false
	}
	t.SetEnabled(true)
	return true
}

// EnableIfNot is an alias for Enable, matching the emulated API's naming.
func (t *Task) EnableIfNot() bool {
	return t.Enable()
}

// EnableDelayed runs OnEnableHook if needed, then enables with a new
// period.
func (t *Task) EnableDelayed(delayMs uint32) bool {
	if !t.IsEnabled() && t.OnEnableHook != nil {
		t.OnEnableHook()
	}
	t.SetPeriodAndEnabled(delayMs, true)
	return t.IsEnabled()
}

// Restart disables then re-enables the task at its current period,
// resetting the late-bias phase anchor.
func (t *Task) Restart() bool {
	if !t.IsEnabled() && t.OnEnableHook != nil {
		t.OnEnableHook()
	}
	period := t.GetPeriod()
	t.SetPeriodAndEnabled(period, false)
	t.SetPeriodAndEnabled(period, true)
	return t.IsEnabled()
}

// RestartDelayed is Restart with a new period.
func (t *Task) RestartDelayed(delayMs uint32) bool {
	if !t.IsEnabled() && t.OnEnableHook != nil {
		t.OnEnableHook()
	}
	t.SetPeriodAndEnabled(0, false)
	t.SetPeriodAndEnabled(delayMs, true)
	return t.IsEnabled()
}

// Delay sets a new period without touching the enabled state.
func (t *Task) Delay(delayMs uint32) {
	t.SetPeriod(delayMs)
}

// Adjust changes the period, re-anchoring the phase as Restart does.
func (t *Task) Adjust(intervalMs uint32) {
	t.SetPeriodAndEnabled(0, false)
	t.SetPeriodAndEnabled(intervalMs, true)
}

// ForceNextIteration makes the task eligible to run on the very next
// dispatch pass, running OnEnableHook first if it was disabled.
func (t *Task) ForceNextIteration() {
	if !t.IsEnabled() && t.OnEnableHook != nil {
		t.OnEnableHook()
	}
	t.SetPeriodAndEnabled(0, true)
}

// Disable disables the task and runs OnDisableHook, if it was enabled.
func (t *Task) Disable() bool {
	if !t.IsEnabled() {
		return false
	}
	t.SetEnabled(false)
	if t.OnDisableHook != nil {
		t.OnDisableHook()
	}
	return true
}

// Abort is an alias for Disable.
func (t *Task) Abort() {
	t.Disable()
}

// Cancel is an alias for Disable.
func (t *Task) Cancel() {
	t.Disable()
}

// Canceled reports whether the task is currently disabled.
func (t *Task) Canceled() bool {
	return !t.IsEnabled()
}

// Set sets both the period and the target iteration count.
func (t *Task) Set(intervalMs uint32, iterations int32) {
	t.targetIterations = iterations
	t.SetPeriod(intervalMs)
}

// SetInterval sets the period, matching the emulated API's setInterval.
func (t *Task) SetInterval(intervalMs uint32) {
	t.SetPeriod(intervalMs)
}

// SetIntervalNoDelay sets the period by cycling the task through disabled
// and back to its prior enabled state. An enabled task has its phase
// anchor reset to now; a disabled task stays disabled.
func (t *Task) SetIntervalNoDelay(intervalMs uint32) {
	enabled := t.IsEnabled()
	t.SetPeriodAndEnabled(0, false)
	t.SetPeriodAndEnabled(intervalMs, enabled)
}

// GetInterval returns the current period.
func (t *Task) GetInterval() uint32 {
	return t.GetPeriod()
}

// SetIterations sets the target iteration count without touching the
// running count.
func (t *Task) SetIterations(iterations int32) {
	t.targetIterations = iterations
}

// GetIterations returns the number of completed iterations.
func (t *Task) GetIterations() uint32 {
	return t.iterations
}

// GetRunCounter is an alias for GetIterations.
func (t *Task) GetRunCounter() uint32 {
	return t.GetIterations()
}

// IsFirstIteration reports whether no iteration has completed yet.
func (t *Task) IsFirstIteration() bool {
	return t.iterations == 0
}

// IsLastIteration reports whether the target iteration count has been
// reached; a negative target count (Forever) never reports true.
func (t *Task) IsLastIteration() bool {
	return t.isLastIteration()
}

func (t *Task) isLastIteration() bool {
	if t.targetIterations >= 0 {
		return t.iterations >= uint32(t.targetIterations)
	}
	return false
}

// Reset is an alias for Restart.
func (t *Task) Reset() bool {
	return t.Restart()
}
