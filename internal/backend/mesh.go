package backend

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/vovakirdan/physkit/internal/core"
)

// MeshDesc describes raw triangle mesh data handed to the cooker.
type MeshDesc struct {
	// Points are the vertex positions.
	Points []core.Vec3
	// Triangles holds three vertex indices per triangle.
	Triangles []uint32
}

// TriangleMesh is an immutable cooked triangle mesh. Once cooked it is only
// ever read; the world bakes world-space copies of its triangles when an
// actor is placed.
type TriangleMesh struct {
	points    []core.Vec3
	triangles []uint32
	bounds    core.AABB
}

// VertexCount returns the number of vertices in the cooked mesh.
func (m *TriangleMesh) VertexCount() int {
	return len(m.points)
}

// TriangleCount returns the number of triangles in the cooked mesh.
func (m *TriangleMesh) TriangleCount() int {
	return len(m.triangles) / 3
}

// Bounds returns the local-space bounding box of the mesh.
func (m *TriangleMesh) Bounds() core.AABB {
	return m.bounds
}

// meshMagic identifies a serialized cooked mesh.
const meshMagic = uint32(0x504b4d53) // "PKMS"

// Encode serializes the cooked mesh into a portable binary buffer.
func (m *TriangleMesh) Encode() []byte {
	var buf bytes.Buffer

	binary.Write(&buf, binary.LittleEndian, meshMagic)
	binary.Write(&buf, binary.LittleEndian, uint32(len(m.points)))
	binary.Write(&buf, binary.LittleEndian, uint32(len(m.triangles)))
	for _, p := range m.points {
		binary.Write(&buf, binary.LittleEndian, p.X)
		binary.Write(&buf, binary.LittleEndian, p.Y)
		binary.Write(&buf, binary.LittleEndian, p.Z)
	}
	for _, idx := range m.triangles {
		binary.Write(&buf, binary.LittleEndian, idx)
	}

	return buf.Bytes()
}

// DecodeTriangleMesh rebuilds a cooked mesh from an Encode buffer.
func DecodeTriangleMesh(data []byte) (*TriangleMesh, error) {
	r := bytes.NewReader(data)

	var magic, nPoints, nIndices uint32
	if err := binary.Read(r, binary.LittleEndian, &magic); err != nil {
		return nil, fmt.Errorf("backend: truncated mesh buffer: %w", err)
	}
	if magic != meshMagic {
		return nil, errors.New("backend: not a cooked mesh buffer")
	}
	if err := binary.Read(r, binary.LittleEndian, &nPoints); err != nil {
		return nil, fmt.Errorf("backend: truncated mesh buffer: %w", err)
	}
	if err := binary.Read(r, binary.LittleEndian, &nIndices); err != nil {
		return nil, fmt.Errorf("backend: truncated mesh buffer: %w", err)
	}

	mesh := &TriangleMesh{
		points:    make([]core.Vec3, nPoints),
		triangles: make([]uint32, nIndices),
	}
	for i := range mesh.points {
		var x, y, z float64
		if err := binary.Read(r, binary.LittleEndian, &x); err != nil {
			return nil, fmt.Errorf("backend: truncated mesh buffer: %w", err)
		}
		if err := binary.Read(r, binary.LittleEndian, &y); err != nil {
			return nil, fmt.Errorf("backend: truncated mesh buffer: %w", err)
		}
		if err := binary.Read(r, binary.LittleEndian, &z); err != nil {
			return nil, fmt.Errorf("backend: truncated mesh buffer: %w", err)
		}
		mesh.points[i] = core.V(x, y, z)
	}
	for i := range mesh.triangles {
		if err := binary.Read(r, binary.LittleEndian, &mesh.triangles[i]); err != nil {
			return nil, fmt.Errorf("backend: truncated mesh buffer: %w", err)
		}
	}

	mesh.bounds = core.AABBOf(mesh.points)
	return mesh, nil
}
