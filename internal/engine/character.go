package engine

import (
	"fmt"

	"github.com/vovakirdan/physkit/internal/backend"
	"github.com/vovakirdan/physkit/internal/core"
)

// moveMinDist is the minimum displacement a character move considers.
const moveMinDist = 1e-6

// CreateCharacterController creates a kinematic capsule controller and
// registers it, returning its handle. The contact offset is 10% over the
// radius; the step offset is a quarter of the height, a reasonable
// climbable-step heuristic for humanoid capsules.
func (e *Engine) CreateCharacterController(start core.Vec3, height, radius float64) (ControllerHandle, error) {
	c, err := e.manager.CreateController(backend.ControllerDesc{
		Position:      start,
		Height:        height,
		Radius:        radius,
		ContactOffset: radius * 1.1,
		StepOffset:    height * 0.25,
		Material:      e.material,
	})
	if err != nil {
		e.sink.Error("failed to create the character controller", "error", err)
		return InvalidController, fmt.Errorf("%w: %v", ErrInitialization, err)
	}

	e.controllers = append(e.controllers, c)
	return ControllerHandle(len(e.controllers) - 1), nil
}

// Controller resolves a controller handle. Out-of-range handles are logged
// and reported as ErrNotFound.
func (e *Engine) Controller(h ControllerHandle) (*backend.Controller, error) {
	if int(h) >= len(e.controllers) {
		e.sink.Error("invalid character handle", "handle", h, "controllers", len(e.controllers))
		return nil, fmt.Errorf("%w: controller handle %d of %d", ErrNotFound, h, len(e.controllers))
	}
	return e.controllers[h], nil
}

// MoveCharacter applies a displacement to the controller, adding the world
// gravity vector first unless applyGravity is false, and returns the
// collision flags the backend reports for the move.
//
// The handle must be valid: this is the hot path of the caller's movement
// code, so it resolves the handle without the bounds check — pass handles
// returned by CreateCharacterController only.
func (e *Engine) MoveCharacter(h ControllerHandle, displacement core.Vec3, elapsed float64, applyGravity bool) backend.CollisionFlags {
	c := e.controllers[h]
	if applyGravity {
		displacement = displacement.Add(e.gravity)
	}
	return c.Move(displacement, moveMinDist, elapsed, backend.DefaultFilters())
}
