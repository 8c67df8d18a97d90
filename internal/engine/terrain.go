package engine

import (
	"fmt"

	"github.com/vovakirdan/physkit/internal/backend"
	"github.com/vovakirdan/physkit/internal/core"
)

// CreateTerrain cooks a normalized row-major heightmap into a heightfield
// and places it as a static terrain actor at the given position.
//
// The heightmap holds sizeX*sizeY values in [0,1]; heights are dequantized
// into [minZ, maxZ] and stored as 16-bit samples. The grid is always cooked
// at unit spacing; the horizontal stretch scale.X/sizeX by scale.Z/sizeY is
// applied at the actor, never baked into the samples. Terrain supports
// translation only — there is no rotated terrain.
func (e *Engine) CreateTerrain(position, scale core.Vec3, sizeX, sizeY uint32, minZ, maxZ float64, heightmap []float64) error {
	if uint32(len(heightmap)) != sizeX*sizeY {
		e.sink.Error("heightmap size does not match the grid",
			"expected", sizeX*sizeY, "got", len(heightmap))
		return fmt.Errorf("%w: heightmap has %d values, grid needs %d", ErrInvalidArgument, len(heightmap), sizeX*sizeY)
	}

	desc := backend.HeightfieldDesc{
		Columns: sizeX,
		Rows:    sizeY,
		Samples: buildTerrainSamples(sizeX, sizeY, minZ, maxZ, heightmap),
	}

	hf, err := e.cooker.CookHeightfield(desc)
	if err != nil {
		e.sink.Error("failed to cook the heightfield", "error", err)
		return fmt.Errorf("%w: heightfield: %v", ErrCooking, err)
	}

	actor, err := backend.NewStaticHeightfieldActor(hf, position,
		1, scale.X/float64(sizeX), scale.Z/float64(sizeY), e.material)
	if err != nil {
		e.sink.Error("failed to create the terrain actor", "error", err)
		return fmt.Errorf("%w: terrain actor: %v", ErrCooking, err)
	}

	if err := e.world.AddActor(actor); err != nil {
		e.sink.Error("failed to insert the terrain actor", "error", err)
		return fmt.Errorf("%w: terrain actor: %v", ErrCooking, err)
	}
	return nil
}

// buildTerrainSamples quantizes a row-major normalized heightmap into the
// backend's column-major sample layout. The sample for input cell (x, y)
// lands at index y + x*sizeY and carries height
// minZ + (maxZ-minZ)*heightmap[x + y*sizeX], with material index 0.
func buildTerrainSamples(sizeX, sizeY uint32, minZ, maxZ float64, heightmap []float64) []backend.Sample {
	samples := make([]backend.Sample, len(heightmap))
	for y := uint32(0); y < sizeY; y++ {
		for x := uint32(0); x < sizeX; x++ {
			samples[y+x*sizeY] = backend.Sample{
				Height: int16(minZ + (maxZ-minZ)*heightmap[x+y*sizeX]),
			}
		}
	}
	return samples
}
