package engine

import (
	"errors"
	"math"
	"testing"

	"github.com/vovakirdan/physkit/internal/core"
)

func TestCreateCharacterController(t *testing.T) {
	e := newTestEngine(t, InitConfig{})

	h, err := e.CreateCharacterController(core.V(0, 0, 0), 125, 20)
	if err != nil {
		t.Fatalf("CreateCharacterController: %v", err)
	}
	if h != 0 {
		t.Errorf("handle = %d, want 0", h)
	}
	if e.ControllerCount() != 1 {
		t.Errorf("ControllerCount = %d, want 1", e.ControllerCount())
	}

	ctrl, err := e.Controller(h)
	if err != nil {
		t.Fatalf("Controller: %v", err)
	}
	if got := ctrl.ContactOffset(); math.Abs(got-22) > 1e-9 {
		t.Errorf("ContactOffset = %v, want 22 (radius * 1.1)", got)
	}
	if got := ctrl.StepOffset(); math.Abs(got-31.25) > 1e-9 {
		t.Errorf("StepOffset = %v, want 31.25 (height * 0.25)", got)
	}
}

func TestCreateCharacterControllerFailure(t *testing.T) {
	e := newTestEngine(t, InitConfig{})

	h, err := e.CreateCharacterController(core.V(0, 0, 0), 0, 20)
	if err == nil {
		t.Fatal("expected error for zero height")
	}
	if h != InvalidController {
		t.Errorf("handle = %d, want InvalidController", h)
	}
	if e.ControllerCount() != 0 {
		t.Errorf("ControllerCount = %d, want 0", e.ControllerCount())
	}
}

func TestControllerHandleBounds(t *testing.T) {
	e := newTestEngine(t, InitConfig{})

	if _, err := e.Controller(0); !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound for empty registry", err)
	}

	h, err := e.CreateCharacterController(core.V(0, 0, 0), 2, 1)
	if err != nil {
		t.Fatalf("CreateCharacterController: %v", err)
	}
	if _, err := e.Controller(h); err != nil {
		t.Errorf("Controller(%d): %v", h, err)
	}
	if _, err := e.Controller(h + 1); !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound past the registry end", err)
	}
}

// TestMoveCharacterGravityIntent checks the requested displacement before
// collision resolution: with no geometry in the way, one move of (1,0,0)
// under gravity (0,-9.81,0) translates by exactly (1,-9.81,0).
func TestMoveCharacterGravityIntent(t *testing.T) {
	e := newTestEngine(t, InitConfig{})

	h, err := e.CreateCharacterController(core.V(0, 0, 0), 2, 1)
	if err != nil {
		t.Fatalf("CreateCharacterController: %v", err)
	}
	ctrl, _ := e.Controller(h)

	e.MoveCharacter(h, core.V(1, 0, 0), 1.0, true)

	got := ctrl.Position()
	want := core.V(1, -9.81, 0)
	if math.Abs(got.X-want.X) > 1e-9 || math.Abs(got.Y-want.Y) > 1e-9 || math.Abs(got.Z-want.Z) > 1e-9 {
		t.Errorf("position = %v, want %v", got, want)
	}
}

func TestMoveCharacterWithoutGravity(t *testing.T) {
	e := newTestEngine(t, InitConfig{})

	h, err := e.CreateCharacterController(core.V(0, 0, 0), 2, 1)
	if err != nil {
		t.Fatalf("CreateCharacterController: %v", err)
	}
	ctrl, _ := e.Controller(h)

	e.MoveCharacter(h, core.V(1, 0, 0), 1.0, false)

	if got := ctrl.Position(); got != core.V(1, 0, 0) {
		t.Errorf("position = %v, want (1,0,0)", got)
	}
}
