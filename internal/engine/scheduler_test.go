package engine

import (
	"math"
	"testing"
	"time"
)

// fakeClock drives a scheduler deterministically.
type fakeClock struct {
	t time.Time
}

func (c *fakeClock) advance(d time.Duration) { c.t = c.t.Add(d) }
func (c *fakeClock) now() time.Time          { return c.t }

func TestSchedulerGatesBelowInterval(t *testing.T) {
	e := newTestEngine(t, InitConfig{})

	clock := &fakeClock{t: time.Unix(100, 0)}
	s := NewScheduler()
	s.now = clock.now

	calls := 0
	cb := func(float64) { calls++ }

	// First call establishes the start timestamp: no step.
	if s.Tick(e, 60, cb) {
		t.Error("first tick should not step")
	}

	// Two calls inside one 60 Hz interval: exactly one step.
	clock.advance(10 * time.Millisecond)
	first := s.Tick(e, 60, cb)
	clock.advance(10 * time.Millisecond) // 20ms total > 1/60s
	second := s.Tick(e, 60, cb)
	clock.advance(5 * time.Millisecond) // only 5ms since the step fired
	third := s.Tick(e, 60, cb)

	if first {
		t.Error("tick at 10ms should not step")
	}
	if !second {
		t.Error("tick at 20ms should step")
	}
	if third {
		t.Error("tick 5ms after a step should not step")
	}
	if calls != 1 {
		t.Errorf("callback ran %d times, want 1", calls)
	}
}

func TestSchedulerPassesMeasuredElapsed(t *testing.T) {
	e := newTestEngine(t, InitConfig{})

	clock := &fakeClock{t: time.Unix(100, 0)}
	s := NewScheduler()
	s.now = clock.now

	s.Tick(e, 60, nil) // establish start

	clock.advance(50 * time.Millisecond)
	var got float64
	if !s.Tick(e, 60, func(elapsed float64) { got = elapsed }) {
		t.Fatal("expected a step after 50ms at 60 Hz")
	}

	// The measured elapsed time is passed through, not the fixed step.
	if math.Abs(got-0.05) > 1e-9 {
		t.Errorf("elapsed = %v, want 0.05", got)
	}
}

func TestSchedulerNilCallback(t *testing.T) {
	e := newTestEngine(t, InitConfig{})

	clock := &fakeClock{t: time.Unix(100, 0)}
	s := NewScheduler()
	s.now = clock.now

	s.Tick(e, 60, nil)
	clock.advance(time.Second)
	if !s.Tick(e, 60, nil) {
		t.Error("expected a step with a nil callback")
	}
}

func TestIndependentSchedulers(t *testing.T) {
	e := newTestEngine(t, InitConfig{})

	clock := &fakeClock{t: time.Unix(100, 0)}
	fast := NewScheduler()
	fast.now = clock.now
	slow := NewScheduler()
	slow.now = clock.now

	fast.Tick(e, 60, nil)
	slow.Tick(e, 10, nil)

	clock.advance(50 * time.Millisecond)
	if !fast.Tick(e, 60, nil) {
		t.Error("60 Hz scheduler should step after 50ms")
	}
	if slow.Tick(e, 10, nil) {
		t.Error("10 Hz scheduler should still be waiting at 50ms")
	}
	clock.advance(60 * time.Millisecond)
	if !slow.Tick(e, 10, nil) {
		t.Error("10 Hz scheduler should step after 110ms")
	}
}
