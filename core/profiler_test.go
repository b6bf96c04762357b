package core

import "testing"

func TestAggregateProfilerTraceIsIdempotentUntilNextIteration(t *testing.T) {
	setNow := withFakeClock(t)
	setNow(0)

	p := NewAggregateProfiler(2, false, false, 0)
	task := &countingTask{}
	p.Attach(task, 0, true)

	if _, ok := p.GetTrace(); ok {
		t.Fatalf("expected no trace before any Loop call")
	}

	p.Loop()
	trace, ok := p.GetTrace()
	if !ok {
		t.Fatalf("expected a trace after one Loop call")
	}
	if trace.Iterations != 1 {
		t.Fatalf("expected 1 iteration, got %d", trace.Iterations)
	}

	if _, ok := p.GetTrace(); ok {
		t.Fatalf("expected GetTrace to zero the window; second call should report nothing new")
	}
}

func TestAggregateProfilerAccumulatesAcrossIterations(t *testing.T) {
	setNow := withFakeClock(t)
	setNow(0)

	p := NewAggregateProfiler(1, false, false, 0)
	p.Attach(&countingTask{}, 0, true)

	p.Loop()
	p.Loop()
	p.Loop()

	trace, ok := p.GetTrace()
	if !ok {
		t.Fatalf("expected a trace")
	}
	if trace.Iterations != 3 {
		t.Fatalf("expected 3 accumulated iterations, got %d", trace.Iterations)
	}
}

func TestPerTaskProfilerAttributesDurationPerSlot(t *testing.T) {
	setNow := withFakeClock(t)
	setNow(0)

	p := NewPerTaskProfiler(2, false, false, 0)
	a := &countingTask{}
	b := &countingTask{}
	p.Attach(a, 0, true)
	p.Attach(b, 1_000_000, true) // b never due

	p.Loop()

	out := make([]PerTaskTrace, 2)
	trace, n, ok := p.GetTrace(out)
	if !ok {
		t.Fatalf("expected a trace")
	}
	if trace.Iterations != 1 {
		t.Fatalf("expected 1 iteration, got %d", trace.Iterations)
	}
	if n != 2 {
		t.Fatalf("expected 2 per-task slots copied, got %d", n)
	}
	if out[0].Iterations != 1 {
		t.Fatalf("expected task a to have run once, got %d", out[0].Iterations)
	}
	if out[1].Iterations != 0 {
		t.Fatalf("expected task b to never have run, got %d", out[1].Iterations)
	}
}

func TestPerTaskProfilerClearsOnTaskCountChange(t *testing.T) {
	setNow := withFakeClock(t)
	setNow(0)

	p := NewPerTaskProfiler(2, false, false, 0)
	a := &countingTask{}
	p.Attach(a, 0, true)

	p.Loop()
	p.Attach(&countingTask{}, 0, true) // count changes mid-window

	p.Loop()
	out := make([]PerTaskTrace, 2)
	trace, _, ok := p.GetTrace(out)
	if !ok {
		t.Fatalf("expected a trace")
	}
	// The count-change reset drops the first Loop's accumulation.
	if trace.Iterations != 1 {
		t.Fatalf("expected accumulator to reset on task-count change, got %d iterations", trace.Iterations)
	}
}

func TestAggregateProfilerSleepOSSubtractsTickPeriod(t *testing.T) {
	setNow := withFakeClock(t)
	setNow(0)
	sleeper := withFakeIdleSleeper(t)

	p := NewAggregateProfiler(1, true, true, 5)
	p.Attach(&countingTask{}, 100, true)

	p.sleep(0)
	if len(sleeper.sleepUntils) != 1 {
		t.Fatalf("expected one SleepUntil call, got %d", len(sleeper.sleepUntils))
	}
	if sleeper.sleepUntils[0].ms != 95 {
		t.Fatalf("expected sleep duration 100-5=95ms, got %d", sleeper.sleepUntils[0].ms)
	}
}

func TestAggregateProfilerSleepBareMetalSkipsWhenClockAdvanced(t *testing.T) {
	setNow := withFakeClock(t)
	setNow(0)
	sleeper := withFakeIdleSleeper(t)

	p := NewAggregateProfiler(1, true, false, 0)
	p.Attach(&countingTask{}, 1_000_000, true)
	p.ClearHot()

	setNow(1)
	p.sleep(0)
	if sleeper.sleeps != 0 {
		t.Fatalf("expected Sleep to be skipped once the clock advanced, got %d calls", sleeper.sleeps)
	}
}

func TestPerTaskProfilerSleepOSSubtractsTickPeriod(t *testing.T) {
	setNow := withFakeClock(t)
	setNow(0)
	sleeper := withFakeIdleSleeper(t)

	p := NewPerTaskProfiler(1, true, true, 5)
	p.Attach(&countingTask{}, 100, true)

	p.sleep(0)
	if len(sleeper.sleepUntils) != 1 {
		t.Fatalf("expected one SleepUntil call, got %d", len(sleeper.sleepUntils))
	}
	if sleeper.sleepUntils[0].ms != 95 {
		t.Fatalf("expected sleep duration 100-5=95ms, got %d", sleeper.sleepUntils[0].ms)
	}
}

func TestPerTaskProfilerSleepBareMetalSleepsWhenIdleAndClockStatic(t *testing.T) {
	setNow := withFakeClock(t)
	setNow(5)
	sleeper := withFakeIdleSleeper(t)

	p := NewPerTaskProfiler(1, true, false, 0)
	p.Attach(&countingTask{}, 1_000_000, true)
	p.ClearHot()

	p.sleep(5)
	if sleeper.sleeps != 1 {
		t.Fatalf("expected exactly one Sleep call, got %d", sleeper.sleeps)
	}
}
