// Package engine is the facade over the simulation backend. It owns the
// backend lifecycle, cooks geometry into collidable resources, places static
// actors, manages character controllers and steps simulation at a fixed
// logical cadence decoupled from the caller's frame rate.
//
// One goroutine drives an Engine. None of its methods may be called while a
// Simulate or Tick call is in flight, and the registries are not synchronized
// for concurrent access.
package engine

import (
	"fmt"

	"github.com/vovakirdan/physkit/internal/backend"
	"github.com/vovakirdan/physkit/internal/core"
	"github.com/vovakirdan/physkit/internal/logx"
	"github.com/vovakirdan/physkit/internal/telemetry"
)

// Defaults applied by Initialize when the config leaves a field zero.
const (
	DefaultThreadCount = 2

	// toleranceLength is the typical object size the backend is tuned for.
	toleranceLength = 100

	// Default material constants shared by every shape the engine creates.
	defaultStaticFriction  = 0.5
	defaultDynamicFriction = 0.5
	defaultRestitution     = 0.6
)

// DefaultGravity is the gravity used when the config does not set one.
var DefaultGravity = core.V(0, -9.81, 0)

// InitConfig configures Initialize.
type InitConfig struct {
	// ThreadCount sizes the backend's worker pool. Zero means
	// DefaultThreadCount.
	ThreadCount int
	// Gravity is the world gravity vector. The zero vector means
	// DefaultGravity.
	Gravity core.Vec3
	// Telemetry configures the optional debug stream.
	Telemetry telemetry.Config
}

// Engine is the facade object. Create with New, then call Initialize once.
type Engine struct {
	sink logx.Sink

	foundation *backend.Foundation
	physics    *backend.Physics
	cooker     *backend.Cooker
	dispatcher *backend.Dispatcher
	world      *backend.World
	manager    *backend.ControllerManager
	material   *backend.Material
	debug      *telemetry.Client

	gravity     core.Vec3
	meshes      []*backend.TriangleMesh
	controllers []*backend.Controller

	initialized bool
}

// Option customizes an Engine before initialization.
type Option func(*Engine)

// WithSink replaces the default log sink.
func WithSink(sink logx.Sink) Option {
	return func(e *Engine) {
		if sink != nil {
			e.sink = sink
		}
	}
}

// New creates an uninitialized engine.
func New(opts ...Option) *Engine {
	e := &Engine{sink: logx.Default()}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Initialize constructs the backend: foundation, optional debug telemetry,
// physics instance, cooker, world with its dispatcher, controller manager
// and the shared default material, in that order.
//
// On failure the partially constructed state is left in place and the error
// returned; Shutdown releases whatever was built. Re-initializing an engine
// that succeeded once is not supported.
func (e *Engine) Initialize(cfg InitConfig) error {
	if cfg.ThreadCount <= 0 {
		cfg.ThreadCount = DefaultThreadCount
	}
	if cfg.Gravity.IsZero() {
		cfg.Gravity = DefaultGravity
	}
	e.gravity = cfg.Gravity

	var err error
	if e.foundation, err = backend.NewFoundation(e.sink); err != nil {
		e.sink.Error("failed to create the backend foundation", "error", err)
		return fmt.Errorf("%w: foundation: %v", ErrInitialization, err)
	}

	if cfg.Telemetry.Enabled {
		e.debug, err = telemetry.Connect(cfg.Telemetry, e.sink)
		if err != nil {
			// Best effort: the debugger is probably not running.
			e.sink.Warn("could not connect to the visual debugger", "error", err)
			e.debug = nil
		}
	}

	scale := backend.ToleranceScale{Length: toleranceLength}
	if e.physics, err = backend.NewPhysics(e.foundation, scale); err != nil {
		e.sink.Error("failed to create the physics instance", "error", err)
		return fmt.Errorf("%w: physics: %v", ErrInitialization, err)
	}

	if e.cooker, err = backend.NewCooker(e.foundation, backend.CookParams{Scale: scale}); err != nil {
		e.sink.Error("failed to create the cooking context", "error", err)
		return fmt.Errorf("%w: cooker: %v", ErrInitialization, err)
	}

	e.dispatcher = backend.NewDispatcher(cfg.ThreadCount)
	if e.world, err = e.physics.CreateWorld(backend.WorldConfig{
		Gravity:    cfg.Gravity,
		Dispatcher: e.dispatcher,
	}); err != nil {
		e.sink.Error("failed to create the simulation world", "error", err)
		return fmt.Errorf("%w: world: %v", ErrInitialization, err)
	}

	if e.manager, err = backend.NewControllerManager(e.world); err != nil {
		e.sink.Error("failed to create the controller manager", "error", err)
		return fmt.Errorf("%w: controller manager: %v", ErrInitialization, err)
	}

	if e.material, err = e.physics.CreateMaterial(defaultStaticFriction, defaultDynamicFriction, defaultRestitution); err != nil {
		e.sink.Error("failed to create the default material", "error", err)
		return fmt.Errorf("%w: material: %v", ErrInitialization, err)
	}

	e.initialized = true
	return nil
}

// Initialized reports whether Initialize completed successfully.
func (e *Engine) Initialized() bool {
	return e.initialized
}

// Gravity returns the configured gravity vector.
func (e *Engine) Gravity() core.Vec3 {
	return e.gravity
}

// MeshCount returns the number of registered cooked meshes.
func (e *Engine) MeshCount() int {
	return len(e.meshes)
}

// ControllerCount returns the number of registered controllers.
func (e *Engine) ControllerCount() int {
	return len(e.controllers)
}

// ActorCount returns the number of static actors placed in the world.
func (e *Engine) ActorCount() int {
	if e.world == nil {
		return 0
	}
	return e.world.ActorCount()
}

// Simulate advances the simulation by dt seconds: a blocking submit/wait
// pair. A telemetry frame is published afterwards when a debugger is
// connected.
func (e *Engine) Simulate(dt float64) {
	if e.world == nil {
		return
	}
	e.world.Simulate(dt)
	e.world.FetchResults()
	e.publishFrame()
}

func (e *Engine) publishFrame() {
	if e.debug == nil {
		return
	}
	frame := telemetry.Frame{
		Time:       e.world.Time(),
		ActorCount: e.world.ActorCount(),
	}
	for _, c := range e.controllers {
		p := c.Position()
		frame.Controllers = append(frame.Controllers, telemetry.ControllerState{X: p.X, Y: p.Y, Z: p.Z})
	}
	e.debug.Publish(frame)
}

// Shutdown releases the backend in strict reverse-creation order, each step
// guarded by a liveness check so a partially initialized engine tears down
// safely. Shutdown is idempotent.
func (e *Engine) Shutdown() {
	if e.world != nil {
		e.manager.Release()
		e.world.Release()
		e.world = nil
		e.manager = nil
	}
	if e.dispatcher != nil {
		e.dispatcher.Release()
		e.dispatcher = nil
	}
	if e.cooker != nil {
		e.cooker.Release()
		e.cooker = nil
	}
	if e.physics != nil {
		e.physics.Release()
		e.physics = nil
	}
	if e.debug != nil {
		e.debug.Close()
		e.debug = nil
	}
	if e.foundation != nil {
		e.foundation.Release()
		e.foundation = nil
	}
	e.meshes = nil
	e.controllers = nil
	e.initialized = false
}
