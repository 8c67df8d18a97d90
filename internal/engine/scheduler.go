package engine

import "time"

// Scheduler gates simulation to a fixed logical frequency. It is an explicit
// state object owned by the caller, so independent fixed-rate loops can
// coexist — each with its own scheduler.
//
// The frequency is a minimum-interval gate, not a substep integrator: once
// enough wall-clock time has accumulated, the backend is stepped by the
// measured elapsed time, and the accumulator restarts from now.
type Scheduler struct {
	start time.Time
	// now is the clock; tests substitute a fake.
	now func() time.Time
}

// NewScheduler creates a scheduler. The start timestamp is taken lazily on
// the first Tick.
func NewScheduler() *Scheduler {
	return &Scheduler{now: time.Now}
}

// Tick advances the scheduler. If at least 1/frequencyHz seconds of
// wall-clock time have elapsed since the last fired step (or since the first
// Tick), it invokes onPreStep with the measured elapsed time (if non-nil),
// steps the engine by that same elapsed time, resets the accumulator and
// returns true. Otherwise the call is a no-op and returns false.
func (s *Scheduler) Tick(e *Engine, frequencyHz float64, onPreStep func(elapsed float64)) bool {
	if s.now == nil {
		s.now = time.Now
	}
	if s.start.IsZero() {
		s.start = s.now()
	}

	stepSize := 1.0 / frequencyHz
	elapsed := s.now().Sub(s.start).Seconds()
	if elapsed < stepSize {
		return false
	}

	if onPreStep != nil {
		onPreStep(elapsed)
	}
	e.Simulate(elapsed)
	s.start = s.now()
	return true
}
