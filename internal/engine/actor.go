package engine

import (
	"fmt"

	"github.com/vovakirdan/physkit/internal/backend"
	"github.com/vovakirdan/physkit/internal/core"
)

// CreateStaticActor places a static collidable body built from a registered
// cooked mesh. The mesh is wrapped with a non-uniform scale and positioned by
// the given transform. The actor is owned by the world from this point on;
// there is no API to remove or mutate it later.
func (e *Engine) CreateStaticActor(h MeshHandle, position core.Vec3, rotation core.Quat, scale core.Vec3) error {
	mesh, err := e.Mesh(h)
	if err != nil {
		return err
	}

	actor, err := backend.NewStaticMeshActor(mesh,
		core.NewTransform(position, rotation), scale, e.material)
	if err != nil {
		e.sink.Error("failed to create the static actor", "error", err)
		return fmt.Errorf("%w: static actor: %v", ErrCooking, err)
	}

	if err := e.world.AddActor(actor); err != nil {
		e.sink.Error("failed to insert the static actor", "error", err)
		return fmt.Errorf("%w: static actor: %v", ErrCooking, err)
	}
	return nil
}
