package backend

import (
	"testing"

	"github.com/vovakirdan/physkit/internal/core"
	"github.com/vovakirdan/physkit/internal/logx"
)

func newTestCooker(t *testing.T) *Cooker {
	t.Helper()
	f, err := NewFoundation(logx.Nop())
	if err != nil {
		t.Fatalf("NewFoundation: %v", err)
	}
	c, err := NewCooker(f, CookParams{Scale: ToleranceScale{Length: 100}})
	if err != nil {
		t.Fatalf("NewCooker: %v", err)
	}
	return c
}

func quadDesc() MeshDesc {
	return MeshDesc{
		Points: []core.Vec3{
			{X: -1, Y: 0, Z: -1},
			{X: -1, Y: 0, Z: 1},
			{X: 1, Y: 0, Z: -1},
			{X: 1, Y: 0, Z: 1},
		},
		Triangles: []uint32{3, 2, 0, 3, 0, 1},
	}
}

func TestCookTriangleMesh(t *testing.T) {
	cooker := newTestCooker(t)

	mesh, err := cooker.CookTriangleMesh(quadDesc())
	if err != nil {
		t.Fatalf("CookTriangleMesh: %v", err)
	}
	if mesh.TriangleCount() != 2 {
		t.Errorf("TriangleCount = %d, want 2", mesh.TriangleCount())
	}
	if mesh.VertexCount() != 4 {
		t.Errorf("VertexCount = %d, want 4", mesh.VertexCount())
	}
	want := core.NewAABB(core.V(-1, 0, -1), core.V(1, 0, 1))
	if mesh.Bounds() != want {
		t.Errorf("Bounds = %v, want %v", mesh.Bounds(), want)
	}
}

func TestCookRejectsBadIndexCount(t *testing.T) {
	cooker := newTestCooker(t)

	desc := quadDesc()
	desc.Triangles = desc.Triangles[:5]
	if _, err := cooker.CookTriangleMesh(desc); err == nil {
		t.Fatal("expected error for index count not a multiple of 3")
	}
}

func TestCookRejectsOutOfRangeIndex(t *testing.T) {
	cooker := newTestCooker(t)

	desc := quadDesc()
	desc.Triangles[0] = 99
	if _, err := cooker.CookTriangleMesh(desc); err == nil {
		t.Fatal("expected error for out-of-range vertex index")
	}
}

func TestCookDropsDegenerateTriangles(t *testing.T) {
	cooker := newTestCooker(t)

	desc := quadDesc()
	// Second triangle collapses to a line.
	desc.Triangles = []uint32{3, 2, 0, 1, 1, 1}
	mesh, err := cooker.CookTriangleMesh(desc)
	if err != nil {
		t.Fatalf("CookTriangleMesh: %v", err)
	}
	if mesh.TriangleCount() != 1 {
		t.Errorf("TriangleCount = %d, want 1", mesh.TriangleCount())
	}

	// All triangles degenerate: cooking fails.
	desc.Triangles = []uint32{0, 0, 0}
	if _, err := cooker.CookTriangleMesh(desc); err == nil {
		t.Fatal("expected error for mesh with no valid triangles")
	}
}

func TestMeshEncodeDecode(t *testing.T) {
	cooker := newTestCooker(t)

	mesh, err := cooker.CookTriangleMesh(quadDesc())
	if err != nil {
		t.Fatalf("CookTriangleMesh: %v", err)
	}

	decoded, err := DecodeTriangleMesh(mesh.Encode())
	if err != nil {
		t.Fatalf("DecodeTriangleMesh: %v", err)
	}
	if decoded.TriangleCount() != mesh.TriangleCount() || decoded.VertexCount() != mesh.VertexCount() {
		t.Errorf("round trip changed counts: %d/%d vs %d/%d",
			decoded.TriangleCount(), decoded.VertexCount(), mesh.TriangleCount(), mesh.VertexCount())
	}
	if decoded.Bounds() != mesh.Bounds() {
		t.Errorf("round trip changed bounds: %v vs %v", decoded.Bounds(), mesh.Bounds())
	}
}

func TestDecodeRejectsGarbage(t *testing.T) {
	if _, err := DecodeTriangleMesh([]byte("not a mesh")); err == nil {
		t.Fatal("expected error for garbage buffer")
	}
	if _, err := DecodeTriangleMesh(nil); err == nil {
		t.Fatal("expected error for empty buffer")
	}
}

func TestCookHeightfield(t *testing.T) {
	cooker := newTestCooker(t)

	desc := HeightfieldDesc{
		Columns: 2,
		Rows:    2,
		Samples: []Sample{{Height: 0}, {Height: 10}, {Height: 0}, {Height: 10}},
	}
	hf, err := cooker.CookHeightfield(desc)
	if err != nil {
		t.Fatalf("CookHeightfield: %v", err)
	}
	if hf.Columns() != 2 || hf.Rows() != 2 {
		t.Errorf("grid = %dx%d, want 2x2", hf.Columns(), hf.Rows())
	}
	if got := hf.SampleAt(0, 1).Height; got != 10 {
		t.Errorf("SampleAt(0,1) = %d, want 10", got)
	}
}

func TestCookHeightfieldValidation(t *testing.T) {
	cooker := newTestCooker(t)

	if _, err := cooker.CookHeightfield(HeightfieldDesc{Columns: 1, Rows: 2, Samples: make([]Sample, 2)}); err == nil {
		t.Error("expected error for grid smaller than 2x2")
	}
	if _, err := cooker.CookHeightfield(HeightfieldDesc{Columns: 2, Rows: 2, Samples: make([]Sample, 3)}); err == nil {
		t.Error("expected error for sample count mismatch")
	}
}

func TestReleasedCookerFails(t *testing.T) {
	cooker := newTestCooker(t)
	cooker.Release()

	if _, err := cooker.CookTriangleMesh(quadDesc()); err == nil {
		t.Fatal("expected error from released cooker")
	}
}
