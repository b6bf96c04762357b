package core

// TaskRegistry owns a fixed-capacity table of TaskTracker slots. Occupied
// slots are always the contiguous prefix [0, n); detach shifts the suffix
// left by one and renotifies every moved task of its new id, so a task
// always knows its current id without asking the registry.
//
// Grounded on the original Model::TaskRegistry (AttachTask/Clear/GetTaskId
// /SetDelay/SetEnabled/WakeFromISR) generalized with detach-and-shift
// bookkeeping on top of it.
type TaskRegistry struct {
	trackers []TaskTracker
	tasks    []Task
	capacity int
	n        int
	hot      bool
	wake     WakeObject
}

// NewTaskRegistry constructs a registry with the given fixed capacity.
// osMode installs a wake-object used to break IdleSleeper.SleepUntil early
// on cooperative-OS platforms; leave it false on bare-metal targets that
// use IdleSleeper.Sleep instead.
func NewTaskRegistry(capacity int, osMode bool) *TaskRegistry {
	if capacity <= 0 || capacity > MaxCapacity {
		panic("core: invalid registry capacity")
	}
	r := &TaskRegistry{
		trackers: make([]TaskTracker, capacity),
		tasks:    make([]Task, capacity),
		capacity: capacity,
	}
	if osMode {
		r.wake = NewWakeObject()
	}
	return r
}

// Capacity returns the maximum number of tasks this registry can hold.
func (r *TaskRegistry) Capacity() int {
	return r.capacity
}

// Count returns the number of currently occupied slots.
func (r *TaskRegistry) Count() int {
	return r.n
}

// WakeObject returns the OS-mode wake-object, or nil if none was
// configured. The dispatcher uses this to break out of a bounded sleep.
func (r *TaskRegistry) WakeObject() WakeObject {
	return r.wake
}

// Attach registers a task with the given initial period and enabled
// state. Rejects a nil task, a task already registered, or a full
// registry. Not ISR-safe: call only from cooperative context.
func (r *TaskRegistry) Attach(task Task, period uint32, enabled bool) (TaskID, bool) {
	if task == nil || r.n >= r.capacity {
		return InvalidTaskID, false
	}
	for i := 0; i < r.n; i++ {
		if r.tasks[i] == task {
			return InvalidTaskID, false
		}
	}

	id := TaskID(r.n)
	r.tasks[r.n] = task
	r.trackers[r.n].Bind(task, r.now(), period, enabled)
	r.n++

	if aware, ok := task.(TaskIDAware); ok {
		aware.OnTaskIDUpdated(id)
	}

	r.hot = true
	r.signalWake()
	return id, true
}

// Detach removes the task at id, notifies it of InvalidTaskID, and shifts
// every task above id down by one slot, renotifying each of its new id.
// Idempotent: detaching an unknown id returns false. Not ISR-safe.
func (r *TaskRegistry) Detach(id TaskID) bool {
	if int(id) >= r.n {
		reportInvalidID("Detach", id)
		return false
	}

	outgoing := r.tasks[id]
	if aware, ok := outgoing.(TaskIDAware); ok {
		aware.OnTaskIDUpdated(InvalidTaskID)
	}
	r.trackers[id].SetEnabled(r.now(), false)

	for i := int(id); i < r.n-1; i++ {
		r.trackers[i] = r.trackers[i+1]
		r.tasks[i] = r.tasks[i+1]
		if aware, ok := r.tasks[i].(TaskIDAware); ok {
			aware.OnTaskIDUpdated(TaskID(i))
		}
	}

	r.n--
	r.tasks[r.n] = nil
	r.trackers[r.n] = TaskTracker{}
	r.hot = true
	return true
}

// DetachTask looks up task and detaches it by id.
func (r *TaskRegistry) DetachTask(task Task) bool {
	id, ok := r.GetTaskID(task)
	if !ok {
		return false
	}
	return r.Detach(id)
}

// Clear detaches every registered task, notifying each with InvalidTaskID.
func (r *TaskRegistry) Clear() {
	for r.n > 0 {
		r.Detach(TaskID(r.n - 1))
	}
}

// GetTaskID returns the id currently assigned to task.
func (r *TaskRegistry) GetTaskID(task Task) (TaskID, bool) {
	for i := 0; i < r.n; i++ {
		if r.tasks[i] == task {
			return TaskID(i), true
		}
	}
	return InvalidTaskID, false
}

// TaskExists reports whether task is currently registered.
func (r *TaskRegistry) TaskExists(task Task) bool {
	_, ok := r.GetTaskID(task)
	return ok
}

// IsEnabled reports id's enabled state. ISR-safe.
func (r *TaskRegistry) IsEnabled(id TaskID) bool {
	if int(id) >= r.n {
		reportInvalidID("IsEnabled", id)
		return false
	}
	return r.trackers[id].IsEnabled()
}

// GetPeriod returns id's current firing period. ISR-safe.
func (r *TaskRegistry) GetPeriod(id TaskID) uint32 {
	if int(id) >= r.n {
		reportInvalidID("GetPeriod", id)
		return 0
	}
	return r.trackers[id].Period()
}

// SetPeriod updates id's firing period. No-op on an invalid id. ISR-safe.
func (r *TaskRegistry) SetPeriod(id TaskID, period uint32) {
	if int(id) >= r.n {
		reportInvalidID("SetPeriod", id)
		return
	}
	r.trackers[id].SetPeriod(period)
	r.hot = true
}

// SetEnabled updates id's enabled state. No-op on an invalid id. ISR-safe.
func (r *TaskRegistry) SetEnabled(id TaskID, enabled bool) {
	if int(id) >= r.n {
		reportInvalidID("SetEnabled", id)
		return
	}
	r.trackers[id].SetEnabled(r.now(), enabled)
	r.hot = true
}

// SetPeriodAndEnabled updates both fields atomically. No-op on an invalid
// id. ISR-safe.
func (r *TaskRegistry) SetPeriodAndEnabled(id TaskID, period uint32, enabled bool) {
	if int(id) >= r.n {
		reportInvalidID("SetPeriodAndEnabled", id)
		return
	}
	r.trackers[id].SetPeriodAndEnabled(r.now(), period, enabled)
	r.hot = true
}

// WakeFromISR wakes id's tracker unconditionally and signals the
// wake-object if present. This is the lowest-overhead ISR wake path.
func (r *TaskRegistry) WakeFromISR(id TaskID) {
	if int(id) >= r.n {
		reportInvalidID("WakeFromISR", id)
		return
	}
	r.trackers[id].Wake()
	r.hot = true
	r.signalWake()
}

// ClearHot resets the hot flag; the dispatcher calls this at the top of
// every loop iteration.
func (r *TaskRegistry) ClearHot() {
	r.hot = false
}

// Hot reports whether any mutation has touched scheduling state since the
// last ClearHot. Benign to observe stale-false: worst case is one extra
// sleep-eligible iteration that still re-checks the clock.
func (r *TaskRegistry) Hot() bool {
	return r.hot
}

// MarkHot is exposed for the dispatcher to assert hot after a tracker
// fires during the dispatch pass.
func (r *TaskRegistry) MarkHot() {
	r.hot = true
}

// runIfDue dispatches tracker i for the given timestamp; used by
// Dispatcher, kept unexported so all cross-tracker iteration stays in one
// place under the registry's contiguous-prefix invariant.
func (r *TaskRegistry) runIfDue(i int, now uint32) bool {
	return r.trackers[i].RunIfDue(now)
}

// timeUntilNextRun returns the shortest TimeUntilNextRun across all
// trackers, exiting early once a tracker reports at or below shortest.
func (r *TaskRegistry) timeUntilNextRun(now, shortest uint32) uint32 {
	best := maxOf[uint32]()
	for i := 0; i < r.n; i++ {
		v := r.trackers[i].TimeUntilNextRun(now)
		if v < best {
			best = v
			if best <= shortest {
				break
			}
		}
	}
	return best
}

// advanceTimestamp rolls every tracker's LastRun back by offset.
func (r *TaskRegistry) advanceTimestamp(offset uint32) {
	for i := 0; i < r.n; i++ {
		r.trackers[i].AdvanceLastRun(offset)
	}
}

func (r *TaskRegistry) signalWake() {
	if r.wake != nil {
		r.wake.Signal()
	}
}

func (r *TaskRegistry) now() uint32 {
	return MustClock().NowMillis()
}
