package core

// DynamicTask is the canonical user-facing task base. It holds a
// back-reference to the registry and its assigned id, and forwards the
// scheduling operations to the registry using that id, so subclasses
// never need to thread a TaskID through their own API.
//
// Grounded on the original Harmonic::DynamicTask / ExposedDynamicTask.
type DynamicTask struct {
	registry *TaskRegistry
	id       TaskID
}

// NewDynamicTask constructs a task bound to registry, unattached until
// Attach is called.
func NewDynamicTask(registry *TaskRegistry) DynamicTask {
	return DynamicTask{registry: registry, id: InvalidTaskID}
}

// OnTaskIDUpdated implements TaskIDAware: the registry calls this on
// attach, on any shift caused by a neighbor's detach, and on detach.
func (d *DynamicTask) OnTaskIDUpdated(id TaskID) {
	d.id = id
}

// TaskID returns the id currently assigned by the registry, or
// InvalidTaskID if unattached.
func (d *DynamicTask) TaskID() TaskID {
	return d.id
}

// Attach registers the concrete task (passed by the embedding type, since
// Go has no covariant self-type) with the registry.
func (d *DynamicTask) Attach(self Task, period uint32, enabled bool) bool {
	id, ok := d.registry.Attach(self, period, enabled)
	if ok {
		d.id = id
	}
	return ok
}

// Detach removes this task from the registry.
func (d *DynamicTask) Detach() bool {
	return d.registry.Detach(d.id)
}

// SetPeriod forwards to the registry using this task's id.
func (d *DynamicTask) SetPeriod(period uint32) {
	d.registry.SetPeriod(d.id, period)
}

// SetEnabled forwards to the registry using this task's id.
func (d *DynamicTask) SetEnabled(enabled bool) {
	d.registry.SetEnabled(d.id, enabled)
}

// SetPeriodAndEnabled forwards to the registry using this task's id.
func (d *DynamicTask) SetPeriodAndEnabled(period uint32, enabled bool) {
	d.registry.SetPeriodAndEnabled(d.id, period, enabled)
}

// WakeFromISR forwards to the registry using this task's id. ISR-safe.
func (d *DynamicTask) WakeFromISR() {
	d.registry.WakeFromISR(d.id)
}

// IsEnabled forwards to the registry using this task's id.
func (d *DynamicTask) IsEnabled() bool {
	return d.registry.IsEnabled(d.id)
}

// GetPeriod forwards to the registry using this task's id.
func (d *DynamicTask) GetPeriod() uint32 {
	return d.registry.GetPeriod(d.id)
}

// TaskWrapper composes an external run capability into a DynamicTask
// rather than requiring inheritance-style embedding of a Run method.
// Grounded on the original DynamicTaskWrapper.
type TaskWrapper struct {
	DynamicTask
	runner Task
}

// NewTaskWrapper constructs a wrapper around runner. runner may be nil at
// construction and assigned later with SetRunner, in which case Run is a
// no-op until then.
func NewTaskWrapper(registry *TaskRegistry, runner Task) *TaskWrapper {
	w := &TaskWrapper{DynamicTask: NewDynamicTask(registry), runner: runner}
	return w
}

// SetRunner swaps the wrapped run capability.
func (w *TaskWrapper) SetRunner(runner Task) {
	w.runner = runner
}

// Run forwards to the wrapped runner if one is set.
func (w *TaskWrapper) Run() {
	if w.runner != nil {
		w.runner.Run()
	}
}

// Attach registers this wrapper with the registry.
func (w *TaskWrapper) Attach(period uint32, enabled bool) bool {
	return w.DynamicTask.Attach(w, period, enabled)
}

// Callable is a plain function invoked by CallableTask.Run, optionally
// closing over its own context. This is the Go idiom for the original's
// function pointer plus opaque context pointer pair.
type Callable func()

// CallableTask wraps a plain function as a DynamicTask, with no dynamic
// allocation beyond the closure the caller already built.
// Grounded on the original Harmonic::CallableTask.
type CallableTask struct {
	DynamicTask
	callable Callable
}

// NewCallableTask constructs a task that invokes callable on every Run.
func NewCallableTask(registry *TaskRegistry, callable Callable) *CallableTask {
	return &CallableTask{DynamicTask: NewDynamicTask(registry), callable: callable}
}

// Run invokes the wrapped callable if set.
func (c *CallableTask) Run() {
	if c.callable != nil {
		c.callable()
	}
}

// Attach registers this task with the registry.
func (c *CallableTask) Attach(period uint32, enabled bool) bool {
	return c.DynamicTask.Attach(c, period, enabled)
}
