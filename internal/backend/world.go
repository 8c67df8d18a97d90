package backend

import (
	"errors"
	"sync"

	"github.com/vovakirdan/physkit/internal/core"
)

// WorldConfig configures a simulation world.
type WorldConfig struct {
	Gravity    core.Vec3
	Dispatcher *Dispatcher
}

// World is the single simulation world. It owns the static actors inserted
// into it and the controllers created through its controller manager.
//
// Simulate submits the step to the dispatcher and returns; FetchResults
// blocks until the step has completed. No other method may be called while a
// step is in flight.
type World struct {
	physics     *Physics
	gravity     core.Vec3
	dispatcher  *Dispatcher
	actors      []*StaticActor
	controllers []*Controller
	simTime     float64
	pending     sync.WaitGroup
	released    bool
}

// CreateWorld creates a simulation world on a live physics instance.
// The config must carry a live dispatcher.
func (p *Physics) CreateWorld(cfg WorldConfig) (*World, error) {
	if !p.alive() {
		return nil, ErrReleased
	}
	if !cfg.Dispatcher.alive() {
		return nil, errors.New("backend: world requires a live dispatcher")
	}
	return &World{
		physics:    p,
		gravity:    cfg.Gravity,
		dispatcher: cfg.Dispatcher,
	}, nil
}

// Gravity returns the world's gravity vector.
func (w *World) Gravity() core.Vec3 {
	return w.gravity
}

// Time returns the accumulated simulated time in seconds.
func (w *World) Time() float64 {
	return w.simTime
}

// ActorCount returns the number of static actors in the world.
func (w *World) ActorCount() int {
	return len(w.actors)
}

// Controllers returns the controllers living in this world.
func (w *World) Controllers() []*Controller {
	return w.controllers
}

// AddActor inserts a static actor. The world owns it from this point; there
// is no removal API.
func (w *World) AddActor(a *StaticActor) error {
	if w == nil || w.released {
		return ErrReleased
	}
	if a == nil {
		return errors.New("backend: cannot add a nil actor")
	}
	w.actors = append(w.actors, a)
	return nil
}

// Simulate advances the world by dt seconds. The overlap-recovery pass for
// the controllers is split across the dispatcher workers; each controller is
// owned by exactly one task for the duration of the step.
func (w *World) Simulate(dt float64) {
	if w == nil || w.released {
		return
	}
	w.simTime += dt

	for _, c := range w.controllers {
		ctrl := c
		w.dispatcher.Submit(func() {
			ctrl.recoverOverlap()
		}, &w.pending)
	}
}

// FetchResults blocks until the in-flight step has completed. There is no
// timeout or cancellation.
func (w *World) FetchResults() {
	if w == nil {
		return
	}
	w.pending.Wait()
}

// Release tears down the world, reclaiming every actor and controller it
// owns. Any in-flight step is joined first.
func (w *World) Release() {
	if w == nil || w.released {
		return
	}
	w.pending.Wait()
	w.released = true
	w.actors = nil
	for _, c := range w.controllers {
		c.world = nil
	}
	w.controllers = nil
}

func (w *World) alive() bool {
	return w != nil && !w.released
}
