package engine

import (
	"fmt"

	"github.com/vovakirdan/physkit/internal/backend"
	"github.com/vovakirdan/physkit/internal/core"
)

// Index constrains the triangle index element type.
type Index interface {
	~uint16 | ~uint32
}

// ExtractVec3 is the position extractor for meshes whose vertices already
// are plain positions.
func ExtractVec3(v core.Vec3) core.Vec3 { return v }

// CreateTriangleMesh cooks vertex and index data into an immutable collision
// mesh and registers it, returning its handle. The vertex type is generic;
// extract pulls the position out of a vertex, so any layout works without
// copying the vertex data into a position-only buffer first.
//
// The index count must be a multiple of three. On any failure the error is
// logged and (InvalidMesh, error) returned; no mesh is registered.
func CreateTriangleMesh[V any, I Index](e *Engine, vertices []V, indices []I, extract func(V) core.Vec3) (MeshHandle, error) {
	if len(indices)%3 != 0 {
		e.sink.Error("the index count must be a multiple of 3", "indices", len(indices))
		return InvalidMesh, fmt.Errorf("%w: index count %d is not a multiple of 3", ErrInvalidArgument, len(indices))
	}

	desc := backend.MeshDesc{
		Points:    make([]core.Vec3, len(vertices)),
		Triangles: make([]uint32, len(indices)),
	}
	for i, v := range vertices {
		desc.Points[i] = extract(v)
	}
	for i, idx := range indices {
		desc.Triangles[i] = uint32(idx)
	}

	mesh, err := e.cooker.CookTriangleMesh(desc)
	if err != nil {
		e.sink.Error("failed to cook the triangle mesh", "error", err)
		return InvalidMesh, fmt.Errorf("%w: %v", ErrCooking, err)
	}

	// Serialization round trip: cook to a buffer and read it back. The
	// decoded copy is discarded; the mesh registered below is the first
	// cook result.
	if decoded, rtErr := backend.DecodeTriangleMesh(mesh.Encode()); rtErr != nil {
		e.sink.Warn("cooked mesh failed the serialization round trip", "error", rtErr)
	} else {
		_ = decoded
	}

	e.meshes = append(e.meshes, mesh)
	return MeshHandle(len(e.meshes) - 1), nil
}

// Mesh resolves a mesh handle. Out-of-range handles are logged and reported
// as ErrNotFound.
func (e *Engine) Mesh(h MeshHandle) (*backend.TriangleMesh, error) {
	if int(h) >= len(e.meshes) {
		e.sink.Error("invalid mesh handle", "handle", h, "meshes", len(e.meshes))
		return nil, fmt.Errorf("%w: mesh handle %d of %d", ErrNotFound, h, len(e.meshes))
	}
	return e.meshes[h], nil
}
