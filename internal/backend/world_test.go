package backend

import (
	"sync"
	"sync/atomic"
	"testing"

	"github.com/vovakirdan/physkit/internal/core"
	"github.com/vovakirdan/physkit/internal/logx"
)

// testWorld builds the full backend object graph around one world.
type testWorld struct {
	foundation *Foundation
	physics    *Physics
	cooker     *Cooker
	dispatcher *Dispatcher
	world      *World
	manager    *ControllerManager
	material   *Material
}

func newTestWorld(t *testing.T, gravity core.Vec3) *testWorld {
	t.Helper()

	f, err := NewFoundation(logx.Nop())
	if err != nil {
		t.Fatalf("NewFoundation: %v", err)
	}
	p, err := NewPhysics(f, ToleranceScale{Length: 100})
	if err != nil {
		t.Fatalf("NewPhysics: %v", err)
	}
	cooker, err := NewCooker(f, CookParams{Scale: p.Scale()})
	if err != nil {
		t.Fatalf("NewCooker: %v", err)
	}
	d := NewDispatcher(2)
	w, err := p.CreateWorld(WorldConfig{Gravity: gravity, Dispatcher: d})
	if err != nil {
		t.Fatalf("CreateWorld: %v", err)
	}
	m, err := NewControllerManager(w)
	if err != nil {
		t.Fatalf("NewControllerManager: %v", err)
	}
	mat, err := p.CreateMaterial(0.5, 0.5, 0.6)
	if err != nil {
		t.Fatalf("CreateMaterial: %v", err)
	}

	tw := &testWorld{
		foundation: f,
		physics:    p,
		cooker:     cooker,
		dispatcher: d,
		world:      w,
		manager:    m,
		material:   mat,
	}
	t.Cleanup(func() {
		tw.world.Release()
		tw.dispatcher.Release()
		tw.physics.Release()
		tw.foundation.Release()
	})
	return tw
}

// addFloor places the unit quad scaled to a large horizontal plane at height y.
func (tw *testWorld) addFloor(t *testing.T, y, extent float64) {
	t.Helper()

	mesh, err := tw.cooker.CookTriangleMesh(quadDesc())
	if err != nil {
		t.Fatalf("CookTriangleMesh: %v", err)
	}
	actor, err := NewStaticMeshActor(mesh,
		core.NewTransform(core.V(0, y, 0), core.QuatIdentity()),
		core.V(extent, 1, extent), tw.material)
	if err != nil {
		t.Fatalf("NewStaticMeshActor: %v", err)
	}
	if err := tw.world.AddActor(actor); err != nil {
		t.Fatalf("AddActor: %v", err)
	}
}

func TestStaticMeshActorBakesScale(t *testing.T) {
	tw := newTestWorld(t, core.V(0, -9.81, 0))

	mesh, err := tw.cooker.CookTriangleMesh(quadDesc())
	if err != nil {
		t.Fatalf("CookTriangleMesh: %v", err)
	}
	actor, err := NewStaticMeshActor(mesh,
		core.NewTransform(core.V(0, -250, 0), core.QuatIdentity()),
		core.V(500, 1, 500), tw.material)
	if err != nil {
		t.Fatalf("NewStaticMeshActor: %v", err)
	}

	want := core.NewAABB(core.V(-500, -250, -500), core.V(500, -250, 500))
	if actor.Bounds() != want {
		t.Errorf("Bounds = %v, want %v", actor.Bounds(), want)
	}
	if actor.TriangleCount() != 2 {
		t.Errorf("TriangleCount = %d, want 2", actor.TriangleCount())
	}
}

func TestStaticActorValidation(t *testing.T) {
	tw := newTestWorld(t, core.Vec3{})

	mesh, err := tw.cooker.CookTriangleMesh(quadDesc())
	if err != nil {
		t.Fatalf("CookTriangleMesh: %v", err)
	}

	if _, err := NewStaticMeshActor(nil, core.Transform{}, core.V(1, 1, 1), tw.material); err == nil {
		t.Error("expected error for nil mesh")
	}
	if _, err := NewStaticMeshActor(mesh, core.Transform{}, core.V(1, 0, 1), tw.material); err == nil {
		t.Error("expected error for zero scale component")
	}
	if _, err := NewStaticMeshActor(mesh, core.Transform{}, core.V(1, 1, 1), nil); err == nil {
		t.Error("expected error for nil material")
	}
}

func TestHeightfieldActorTriangles(t *testing.T) {
	tw := newTestWorld(t, core.Vec3{})

	hf, err := tw.cooker.CookHeightfield(HeightfieldDesc{
		Columns: 3,
		Rows:    3,
		Samples: make([]Sample, 9),
	})
	if err != nil {
		t.Fatalf("CookHeightfield: %v", err)
	}
	actor, err := NewStaticHeightfieldActor(hf, core.V(0, 0, 0), 1, 10, 10, tw.material)
	if err != nil {
		t.Fatalf("NewStaticHeightfieldActor: %v", err)
	}

	// 2x2 cells, two triangles each.
	if actor.TriangleCount() != 8 {
		t.Errorf("TriangleCount = %d, want 8", actor.TriangleCount())
	}
	want := core.NewAABB(core.V(0, 0, 0), core.V(20, 0, 20))
	if actor.Bounds() != want {
		t.Errorf("Bounds = %v, want %v", actor.Bounds(), want)
	}
}

func TestSimulateCompletesBeforeFetchResults(t *testing.T) {
	tw := newTestWorld(t, core.V(0, -9.81, 0))

	// Several controllers so the step spans multiple dispatcher tasks.
	for i := 0; i < 8; i++ {
		if _, err := tw.manager.CreateController(ControllerDesc{
			Position: core.V(float64(i)*10, 0, 0),
			Height:   2, Radius: 0.5,
			ContactOffset: 0.55, StepOffset: 0.5,
			Material: tw.material,
		}); err != nil {
			t.Fatalf("CreateController: %v", err)
		}
	}

	var steps atomic.Int32
	for i := 0; i < 10; i++ {
		tw.world.Simulate(1.0 / 60)
		tw.world.FetchResults()
		steps.Add(1)
	}

	if got := tw.world.Time(); got < 10.0/60-1e-9 {
		t.Errorf("Time = %v, want at least %v", got, 10.0/60)
	}
}

func TestWorldReleaseIsIdempotent(t *testing.T) {
	tw := newTestWorld(t, core.Vec3{})
	tw.world.Release()
	tw.world.Release()

	if err := tw.world.AddActor(&StaticActor{}); err == nil {
		t.Error("expected error adding actor to released world")
	}
}

func TestDispatcherClampsWorkerCount(t *testing.T) {
	d := NewDispatcher(0)
	defer d.Release()

	var ran atomic.Int32
	var pending sync.WaitGroup
	d.Submit(func() { ran.Add(1) }, &pending)
	pending.Wait()

	if ran.Load() != 1 {
		t.Error("task did not run")
	}
}
