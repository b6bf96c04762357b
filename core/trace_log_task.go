package core

import (
	"fmt"
	"io"
)

// AggregateSource is the profiler contract AggregateTraceLogTask consumes.
// *AggregateProfiler satisfies it.
type AggregateSource interface {
	GetTrace() (AggregateTrace, bool)
}

// flusher is satisfied by output sinks that buffer writes, such as a
// serial port. A trace-log Run flushes once after writing its rows so a
// period's line is never left sitting in the buffer.
type flusher interface {
	Flush() error
}

// AggregateTraceLogTask periodically formats an AggregateProfiler's
// snapshot as tab-separated text and writes it to a byte sink. Formatting
// itself is intentionally minimal: the scheduler core treats log output
// as a byte-stream sink, not a contract other components rely on.
//
// Grounded on the original Harmonic::TraceLogging::BaseTraceLogTask.
type AggregateTraceLogTask struct {
	DynamicTask
	output io.Writer
	source AggregateSource
	header bool
}

// NewAggregateTraceLogTask constructs a trace-log task that reads from
// source and writes to output.
func NewAggregateTraceLogTask(registry *TaskRegistry, output io.Writer, source AggregateSource) *AggregateTraceLogTask {
	return &AggregateTraceLogTask{DynamicTask: NewDynamicTask(registry), output: output, source: source}
}

// Start attaches this task with the given logging period.
func (t *AggregateTraceLogTask) Start(periodMs uint32) bool {
	return t.DynamicTask.Attach(t, periodMs, true)
}

// Run fetches the current trace window, if any, and writes one row,
// preceded by the header line on the first call that has data.
func (t *AggregateTraceLogTask) Run() {
	trace, ok := t.source.GetTrace()
	if !ok {
		return
	}
	if !t.header {
		fmt.Fprintln(t.output, "ITERATIONS\tSCHEDULING(us)\tBUSY(us)\tIDLE_SLEEP(us)")
		t.header = true
	}
	fmt.Fprintf(t.output, "%d\t%d\t%d\t%d\n",
		trace.Iterations, trace.SchedulingUs, trace.BusyUs, trace.IdleSleepUs)

	if f, ok := t.output.(flusher); ok {
		f.Flush()
	}
}

// PerTaskSource is the profiler contract PerTaskTraceLogTask consumes.
// *PerTaskProfiler satisfies it.
type PerTaskSource interface {
	GetTrace(out []PerTaskTrace) (AggregateTrace, int, bool)
}

// PerTaskTraceLogTask periodically formats a PerTaskProfiler's snapshot,
// the global totals plus one row per task, as tab-separated text.
//
// Grounded on the original Harmonic::TraceLogging::FullTraceLogTask.
type PerTaskTraceLogTask struct {
	DynamicTask
	output io.Writer
	source PerTaskSource
	buf    []PerTaskTrace
	header bool
}

// NewPerTaskTraceLogTask constructs a trace-log task over a capacity-sized
// scratch buffer for per-task rows.
func NewPerTaskTraceLogTask(registry *TaskRegistry, output io.Writer, source PerTaskSource, capacity int) *PerTaskTraceLogTask {
	return &PerTaskTraceLogTask{
		DynamicTask: NewDynamicTask(registry),
		output:      output,
		source:      source,
		buf:         make([]PerTaskTrace, capacity),
	}
}

// Start attaches this task with the given logging period.
func (t *PerTaskTraceLogTask) Start(periodMs uint32) bool {
	return t.DynamicTask.Attach(t, periodMs, true)
}

// Run fetches the current trace window, if any, and writes one line per
// task followed by three global summary lines (BUSY, SCHED, SLEEP),
// preceded by the header line on the first call that has data.
func (t *PerTaskTraceLogTask) Run() {
	trace, n, ok := t.source.GetTrace(t.buf)
	if !ok {
		return
	}
	if !t.header {
		fmt.Fprintln(t.output, "ID\tCALLS\tTIME(us)\tMAX(us)")
		t.header = true
	}
	for i := 0; i < n; i++ {
		pt := t.buf[i]
		fmt.Fprintf(t.output, "%d\t%d\t%d\t%d\n", i, pt.Iterations, pt.DurationUs, pt.MaxDurationUs)
	}
	fmt.Fprintf(t.output, "BUSY\t%d\t%d\nSCHED\t%d\t%d\nSLEEP\t%d\t%d\n",
		trace.Iterations, trace.BusyUs,
		trace.Iterations, trace.SchedulingUs,
		trace.Iterations, trace.IdleSleepUs)

	if f, ok := t.output.(flusher); ok {
		f.Flush()
	}
}
