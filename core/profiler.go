package core

// Three compile-time-selected profiling variants of the dispatcher: None
// is Dispatcher itself (§ dispatcher.go) with zero measurement overhead;
// AggregateProfiler and PerTaskProfiler below add increasing levels of
// per-iteration timing at increasing memory cost.
//
// Grounded on the original Scheduler::SchedulerBaseProfiling and
// Scheduler::SchedulerFullProfiling.

// AggregateTrace holds one measurement window's cumulative timings.
type AggregateTrace struct {
	Iterations   uint32
	SchedulingUs uint64
	BusyUs       uint64
	IdleSleepUs  uint64
}

// AggregateProfiler wraps a TaskRegistry with a Loop that measures
// per-iteration totals: iteration count, cumulative scheduling time (loop
// entry to end of dispatch pass, excluding sleep), cumulative busy time
// (sum of task run durations), and cumulative idle-sleep time.
type AggregateProfiler struct {
	*TaskRegistry
	idleSleepEnabled bool
	osMode           bool
	tickPeriodMs     uint32
	trace            AggregateTrace
}

// NewAggregateProfiler constructs an aggregate-profiling dispatcher over a
// fresh registry of the given capacity.
func NewAggregateProfiler(capacity int, idleSleepEnabled, osMode bool, tickPeriodMs uint32) *AggregateProfiler {
	return &AggregateProfiler{
		TaskRegistry:     NewTaskRegistry(capacity, osMode),
		idleSleepEnabled: idleSleepEnabled,
		osMode:           osMode,
		tickPeriodMs:     tickPeriodMs,
	}
}

// Loop runs one scheduling iteration, bracketing each RunIfDue call with
// microsecond timestamps and accumulating only when it fires.
func (p *AggregateProfiler) Loop() {
	nowMs := MustClock().NowMillis()
	loopStart := MustClock().NowMicros()
	p.ClearHot()

	measure := loopStart
	for i := 0; i < p.Count(); i++ {
		if p.runIfDue(i, nowMs) {
			p.MarkHot()
			end := MustClock().NowMicros()
			p.trace.BusyUs += uint64(end - measure)
			measure = end
		} else {
			measure = MustClock().NowMicros()
		}
	}

	if p.idleSleepEnabled && !p.Hot() {
		sleepStart := measure
		p.sleep(nowMs)
		sleepEnd := MustClock().NowMicros()
		p.trace.IdleSleepUs += uint64(sleepEnd - sleepStart)
	}

	p.trace.Iterations++
	p.trace.SchedulingUs += uint64(measure - loopStart)
}

func (p *AggregateProfiler) sleep(nowMs uint32) {
	if p.osMode {
		sleepMs := p.timeUntilNextRun(nowMs, 1)
		if sleepMs <= p.tickPeriodMs {
			return
		}
		MustIdleSleeper().SleepUntil(p.WakeObject(), sleepMs-p.tickPeriodMs)
		return
	}
	if MustClock().NowMillis() != nowMs || p.Hot() {
		return
	}
	MustIdleSleeper().Sleep()
}

// GetTrace atomically snapshots and zeroes the measurement window.
// Returns false if no iterations have occurred since the last call.
func (p *AggregateProfiler) GetTrace() (AggregateTrace, bool) {
	state := EnterCritical()
	defer ExitCritical(state)

	if p.trace.Iterations == 0 {
		return AggregateTrace{}, false
	}
	trace := p.trace
	p.trace = AggregateTrace{}
	return trace, true
}

// PerTaskTrace holds one task's cumulative timing for a measurement
// window.
type PerTaskTrace struct {
	DurationUs    uint64
	MaxDurationUs uint32
	Iterations    uint32
}

// PerTaskProfiler adds per-task (cumulative duration, max duration,
// iterations) on top of AggregateProfiler's global totals.
type PerTaskProfiler struct {
	*TaskRegistry
	idleSleepEnabled bool
	osMode           bool
	tickPeriodMs     uint32
	trace            AggregateTrace
	perTask          []PerTaskTrace
	lastSeenCount    int
}

// NewPerTaskProfiler constructs a per-task-profiling dispatcher over a
// fresh registry of the given capacity.
func NewPerTaskProfiler(capacity int, idleSleepEnabled, osMode bool, tickPeriodMs uint32) *PerTaskProfiler {
	return &PerTaskProfiler{
		TaskRegistry:     NewTaskRegistry(capacity, osMode),
		idleSleepEnabled: idleSleepEnabled,
		osMode:           osMode,
		tickPeriodMs:     tickPeriodMs,
		perTask:          make([]PerTaskTrace, capacity),
	}
}

// Loop runs one scheduling iteration, additionally attributing each fired
// task's duration to its own slot. If the task count changed mid-window,
// every accumulator is cleared first to avoid mixing configurations.
func (p *PerTaskProfiler) Loop() {
	if p.Count() != p.lastSeenCount {
		p.clearTraceData()
		p.lastSeenCount = p.Count()
	}

	nowMs := MustClock().NowMillis()
	loopStart := MustClock().NowMicros()
	p.ClearHot()

	measure := loopStart
	for i := 0; i < p.Count(); i++ {
		if p.runIfDue(i, nowMs) {
			p.MarkHot()
			end := MustClock().NowMicros()
			duration := uint32(end - measure)
			p.trace.BusyUs += uint64(duration)
			p.perTask[i].DurationUs += uint64(duration)
			p.perTask[i].Iterations++
			if duration > p.perTask[i].MaxDurationUs {
				p.perTask[i].MaxDurationUs = duration
			}
			measure = end
		} else {
			measure = MustClock().NowMicros()
		}
	}

	if p.idleSleepEnabled && !p.Hot() {
		sleepStart := measure
		p.sleep(nowMs)
		sleepEnd := MustClock().NowMicros()
		p.trace.IdleSleepUs += uint64(sleepEnd - sleepStart)
	}

	p.trace.Iterations++
	p.trace.SchedulingUs += uint64(measure - loopStart)
}

func (p *PerTaskProfiler) sleep(nowMs uint32) {
	if p.osMode {
		sleepMs := p.timeUntilNextRun(nowMs, 1)
		if sleepMs <= p.tickPeriodMs {
			return
		}
		MustIdleSleeper().SleepUntil(p.WakeObject(), sleepMs-p.tickPeriodMs)
		return
	}
	if MustClock().NowMillis() != nowMs || p.Hot() {
		return
	}
	MustIdleSleeper().Sleep()
}

// GetTrace atomically snapshots and zeroes the global trace plus up to
// len(out) per-task traces, returning the number copied. Returns false if
// no iterations have occurred since the last call.
func (p *PerTaskProfiler) GetTrace(out []PerTaskTrace) (AggregateTrace, int, bool) {
	state := EnterCritical()
	defer ExitCritical(state)

	if p.trace.Iterations == 0 {
		return AggregateTrace{}, 0, false
	}

	trace := p.trace
	n := p.Count()
	if n > len(out) {
		n = len(out)
	}
	copy(out[:n], p.perTask[:n])

	p.clearTraceData()
	return trace, n, true
}

func (p *PerTaskProfiler) clearTraceData() {
	p.trace = AggregateTrace{}
	for i := range p.perTask {
		p.perTask[i] = PerTaskTrace{}
	}
}
