package backend

import (
	"errors"
	"fmt"

	"github.com/vovakirdan/physkit/internal/core"
)

// degenerateArea is the squared-area threshold below which a triangle is
// dropped during cooking.
const degenerateArea = 1e-12

// CookParams configures the cooker. The scale should match the physics
// instance the cooked resources will be used with.
type CookParams struct {
	Scale ToleranceScale
}

// Cooker transforms raw geometry into immutable collision resources.
type Cooker struct {
	foundation *Foundation
	params     CookParams
	released   bool
}

// NewCooker creates a cooking context on top of a live foundation.
func NewCooker(f *Foundation, params CookParams) (*Cooker, error) {
	if !f.alive() {
		return nil, errors.New("backend: cooker requires a live foundation")
	}
	return &Cooker{foundation: f, params: params}, nil
}

// Release tears down the cooker. Previously cooked resources stay valid.
func (c *Cooker) Release() {
	c.released = true
}

func (c *Cooker) alive() bool {
	return c != nil && !c.released
}

// CookTriangleMesh validates and cooks a triangle mesh description.
// Index counts must be a multiple of three and every index must address a
// vertex. Degenerate (zero area) triangles are dropped; a mesh with no
// surviving triangles fails to cook.
func (c *Cooker) CookTriangleMesh(desc MeshDesc) (*TriangleMesh, error) {
	if !c.alive() {
		return nil, ErrReleased
	}
	if len(desc.Points) == 0 {
		return nil, errors.New("backend: mesh has no vertices")
	}
	if len(desc.Triangles)%3 != 0 {
		return nil, fmt.Errorf("backend: index count %d is not a multiple of 3", len(desc.Triangles))
	}

	mesh := &TriangleMesh{
		points:    make([]core.Vec3, len(desc.Points)),
		triangles: make([]uint32, 0, len(desc.Triangles)),
	}
	copy(mesh.points, desc.Points)

	for i := 0; i+2 < len(desc.Triangles); i += 3 {
		ia, ib, ic := desc.Triangles[i], desc.Triangles[i+1], desc.Triangles[i+2]
		if int(ia) >= len(desc.Points) || int(ib) >= len(desc.Points) || int(ic) >= len(desc.Points) {
			return nil, fmt.Errorf("backend: triangle %d references vertex out of range", i/3)
		}

		a, b, cv := desc.Points[ia], desc.Points[ib], desc.Points[ic]
		if b.Sub(a).Cross(cv.Sub(a)).LengthSq() < degenerateArea {
			continue
		}
		mesh.triangles = append(mesh.triangles, ia, ib, ic)
	}

	if len(mesh.triangles) == 0 {
		return nil, errors.New("backend: mesh has no valid triangles")
	}

	mesh.bounds = core.AABBOf(mesh.points)
	return mesh, nil
}

// CookHeightfield validates and cooks a height-sample grid.
func (c *Cooker) CookHeightfield(desc HeightfieldDesc) (*Heightfield, error) {
	if !c.alive() {
		return nil, ErrReleased
	}
	if desc.Columns < 2 || desc.Rows < 2 {
		return nil, fmt.Errorf("backend: heightfield grid %dx%d is too small", desc.Columns, desc.Rows)
	}
	if uint32(len(desc.Samples)) != desc.Columns*desc.Rows {
		return nil, fmt.Errorf("backend: expected %d samples, got %d", desc.Columns*desc.Rows, len(desc.Samples))
	}

	hf := &Heightfield{
		columns: desc.Columns,
		rows:    desc.Rows,
		samples: make([]Sample, len(desc.Samples)),
	}
	copy(hf.samples, desc.Samples)
	return hf, nil
}
