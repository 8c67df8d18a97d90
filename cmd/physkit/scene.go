package main

import (
	"fmt"

	"github.com/vovakirdan/physkit/internal/core"
	"github.com/vovakirdan/physkit/internal/engine"
	"github.com/vovakirdan/physkit/internal/viz"
)

// The drop scene: a capsule above two stacked quad platforms.
var (
	quadVertices = []core.Vec3{
		{X: -1, Y: 0, Z: -1},
		{X: 1, Y: 0, Z: -1},
		{X: 1, Y: 0, Z: 1},
		{X: -1, Y: 0, Z: 1},
	}
	quadIndices = []uint32{3, 2, 0, 3, 0, 1}
)

const (
	capsuleHeight = 125.0
	capsuleRadius = 20.0
)

// buildDropScene populates an initialized engine with the drop scenario
// and returns the controller handle plus the platforms for rendering.
func buildDropScene(e *engine.Engine) (engine.ControllerHandle, []viz.Platform, error) {
	ctrl, err := e.CreateCharacterController(core.V(0, 0, 0), capsuleHeight, capsuleRadius)
	if err != nil {
		return engine.InvalidController, nil, fmt.Errorf("create controller: %w", err)
	}

	mesh, err := engine.CreateTriangleMesh(e, quadVertices, quadIndices, engine.ExtractVec3)
	if err != nil {
		return engine.InvalidController, nil, fmt.Errorf("cook quad: %w", err)
	}

	type slab struct {
		pos   core.Vec3
		scale core.Vec3
	}
	slabs := []slab{
		{core.V(0, -250, 0), core.V(500, 1, 500)},
		{core.V(100, -400, 0), core.V(800, 1, 800)},
	}

	platforms := make([]viz.Platform, 0, len(slabs))
	for _, s := range slabs {
		if err := e.CreateStaticActor(mesh, s.pos, core.QuatIdentity(), s.scale); err != nil {
			return engine.InvalidController, nil, fmt.Errorf("place platform: %w", err)
		}
		platforms = append(platforms, viz.Platform{
			Y:    s.pos.Y,
			MinX: s.pos.X - s.scale.X,
			MaxX: s.pos.X + s.scale.X,
		})
	}

	return ctrl, platforms, nil
}
