// Package backend implements the collision/simulation backend behind the
// engine facade: resource cooking, a static world with baked triangle
// geometry, kinematic capsule controllers and a worker-pool dispatcher.
//
// Objects form an explicit creation graph (foundation -> physics -> cooker,
// world, material) and every node carries a Release method. The facade owns
// the teardown order; backend objects only guard against use after release.
//
// Nothing in this package is safe for concurrent use. A single caller thread
// drives the world; Simulate distributes work over the dispatcher internally
// and FetchResults joins it before returning.
package backend

import (
	"errors"

	"github.com/vovakirdan/physkit/internal/logx"
)

// ErrReleased is returned when an object is used after Release.
var ErrReleased = errors.New("backend: object has been released")

// Foundation is the root of the backend object graph. It owns the log sink
// every other backend object reports through.
type Foundation struct {
	sink     logx.Sink
	released bool
}

// NewFoundation creates the backend root. The sink must not be nil.
func NewFoundation(sink logx.Sink) (*Foundation, error) {
	if sink == nil {
		return nil, errors.New("backend: foundation requires a log sink")
	}
	return &Foundation{sink: sink}, nil
}

// Sink returns the foundation's log sink.
func (f *Foundation) Sink() logx.Sink {
	return f.sink
}

// Release tears down the foundation. Objects created from it must already
// have been released.
func (f *Foundation) Release() {
	f.released = true
}

func (f *Foundation) alive() bool {
	return f != nil && !f.released
}
