package backend

import (
	"errors"

	"github.com/vovakirdan/physkit/internal/core"
)

// Triangle is one world-space collision triangle of a static actor.
type Triangle struct {
	A, B, C core.Vec3
	bounds  core.AABB
}

func newTriangle(a, b, c core.Vec3) Triangle {
	return Triangle{
		A: a, B: b, C: c,
		bounds: core.AABBOf([]core.Vec3{a, b, c}),
	}
}

// Normal returns the (unnormalized) face normal.
func (t Triangle) Normal() core.Vec3 {
	return t.B.Sub(t.A).Cross(t.C.Sub(t.A))
}

// StaticActor is a placed, non-simulated collidable body. Its triangles are
// baked into world space at creation, so collision queries never touch the
// source mesh again. Ownership transfers to the world on AddActor.
type StaticActor struct {
	transform core.Transform
	material  *Material
	triangles []Triangle
	bounds    core.AABB
}

// Bounds returns the world-space bounding box of the actor.
func (a *StaticActor) Bounds() core.AABB {
	return a.bounds
}

// TriangleCount returns the number of baked triangles.
func (a *StaticActor) TriangleCount() int {
	return len(a.triangles)
}

// NewStaticMeshActor instantiates a static body from a cooked mesh. The
// non-uniform scale is applied in local space before the rigid transform.
func NewStaticMeshActor(mesh *TriangleMesh, transform core.Transform, scale core.Vec3, material *Material) (*StaticActor, error) {
	if mesh == nil {
		return nil, errors.New("backend: static actor requires a cooked mesh")
	}
	if material == nil {
		return nil, errors.New("backend: static actor requires a material")
	}
	if scale.X == 0 || scale.Y == 0 || scale.Z == 0 {
		return nil, errors.New("backend: static actor scale must be non-zero")
	}

	world := make([]core.Vec3, len(mesh.points))
	for i, p := range mesh.points {
		world[i] = transform.Apply(p.Mul(scale))
	}

	actor := &StaticActor{
		transform: transform,
		material:  material,
		triangles: make([]Triangle, 0, mesh.TriangleCount()),
	}
	for i := 0; i+2 < len(mesh.triangles); i += 3 {
		actor.triangles = append(actor.triangles, newTriangle(
			world[mesh.triangles[i]],
			world[mesh.triangles[i+1]],
			world[mesh.triangles[i+2]],
		))
	}
	actor.bounds = core.AABBOf(world)
	return actor, nil
}

// NewStaticHeightfieldActor instantiates a terrain body from a cooked
// heightfield. Columns are stretched by columnScale along X and rows by
// rowScale along Z; sample heights are multiplied by heightScale. Terrain
// supports translation only.
func NewStaticHeightfieldActor(hf *Heightfield, position core.Vec3, heightScale, columnScale, rowScale float64, material *Material) (*StaticActor, error) {
	if hf == nil {
		return nil, errors.New("backend: terrain actor requires a cooked heightfield")
	}
	if material == nil {
		return nil, errors.New("backend: terrain actor requires a material")
	}

	cols, rows := hf.Columns(), hf.Rows()
	vertex := func(c, r uint32) core.Vec3 {
		h := float64(hf.SampleAt(c, r).Height) * heightScale
		return position.Add(core.V(float64(c)*columnScale, h, float64(r)*rowScale))
	}

	actor := &StaticActor{
		transform: core.NewTransform(position, core.QuatIdentity()),
		material:  material,
		triangles: make([]Triangle, 0, (cols-1)*(rows-1)*2),
	}
	for c := uint32(0); c < cols-1; c++ {
		for r := uint32(0); r < rows-1; r++ {
			v00 := vertex(c, r)
			v10 := vertex(c+1, r)
			v01 := vertex(c, r+1)
			v11 := vertex(c+1, r+1)
			actor.triangles = append(actor.triangles,
				newTriangle(v00, v01, v10),
				newTriangle(v10, v01, v11),
			)
			actor.bounds = actor.bounds.Union(core.AABBOf([]core.Vec3{v00, v10, v01, v11}))
		}
	}
	if len(actor.triangles) > 0 {
		first := actor.triangles[0]
		box := first.bounds
		for _, tri := range actor.triangles[1:] {
			box = box.Union(tri.bounds)
		}
		actor.bounds = box
	}
	return actor, nil
}
