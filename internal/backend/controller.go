package backend

import (
	"errors"

	"github.com/vovakirdan/physkit/internal/core"
)

// CollisionFlags reports which sides of a controller touched geometry
// during a move.
type CollisionFlags uint8

const (
	// CollisionSides is set when the controller hit something laterally.
	CollisionSides CollisionFlags = 1 << iota
	// CollisionUp is set when the controller hit something above it.
	CollisionUp
	// CollisionDown is set when the controller is standing on something.
	CollisionDown
)

// Has reports whether all bits of flag are set.
func (f CollisionFlags) Has(flag CollisionFlags) bool {
	return f&flag == flag
}

// Filters restricts which actors a controller move collides with.
type Filters struct {
	// ActorFilter, when non-nil, is consulted per actor; returning false
	// skips the actor entirely.
	ActorFilter func(*StaticActor) bool
}

// DefaultFilters collides with every actor in the world.
func DefaultFilters() Filters {
	return Filters{}
}

// ControllerDesc describes a capsule character controller.
type ControllerDesc struct {
	// Position is the initial center of the capsule.
	Position core.Vec3
	// Height is the length of the cylindrical section.
	Height float64
	// Radius of the capsule.
	Radius float64
	// ContactOffset is the skin distance at which contacts are reported
	// without being resolved.
	ContactOffset float64
	// StepOffset is the maximum ledge height treated as walkable ground.
	StepOffset float64
	// Material of the capsule surface.
	Material *Material
}

// ControllerManager creates capsule controllers bound to one world.
type ControllerManager struct {
	world    *World
	released bool
}

// NewControllerManager creates a manager for a live world.
func NewControllerManager(w *World) (*ControllerManager, error) {
	if !w.alive() {
		return nil, errors.New("backend: controller manager requires a live world")
	}
	return &ControllerManager{world: w}, nil
}

// CreateController validates the description and creates a kinematic capsule
// controller owned by the manager's world.
func (m *ControllerManager) CreateController(desc ControllerDesc) (*Controller, error) {
	if m == nil || m.released || !m.world.alive() {
		return nil, ErrReleased
	}
	if desc.Height <= 0 || desc.Radius <= 0 {
		return nil, errors.New("backend: controller height and radius must be positive")
	}
	if desc.Material == nil {
		return nil, errors.New("backend: controller requires a material")
	}

	c := &Controller{
		world:         m.world,
		position:      desc.Position,
		height:        desc.Height,
		radius:        desc.Radius,
		contactOffset: desc.ContactOffset,
		stepOffset:    desc.StepOffset,
		material:      desc.Material,
	}
	m.world.controllers = append(m.world.controllers, c)
	return c, nil
}

// Release tears down the manager. Controllers stay owned by the world.
func (m *ControllerManager) Release() {
	if m != nil {
		m.released = true
	}
}

// Controller is a kinematic capsule mover. Position is driven by explicit
// Move calls; collision with static geometry is resolved by iterative
// depenetration (collide and slide). Moves are discrete, so a single
// displacement larger than the capsule radius can tunnel through thin walls.
type Controller struct {
	world         *World
	position      core.Vec3 // capsule center
	height        float64
	radius        float64
	contactOffset float64
	stepOffset    float64
	material      *Material
}

// Position returns the capsule center.
func (c *Controller) Position() core.Vec3 {
	return c.position
}

// SetPosition teleports the controller without collision resolution.
func (c *Controller) SetPosition(p core.Vec3) {
	c.position = p
}

// Height returns the cylindrical section length.
func (c *Controller) Height() float64 { return c.height }

// Radius returns the capsule radius.
func (c *Controller) Radius() float64 { return c.radius }

// ContactOffset returns the contact skin distance.
func (c *Controller) ContactOffset() float64 { return c.contactOffset }

// StepOffset returns the maximum walkable ledge height.
func (c *Controller) StepOffset() float64 { return c.stepOffset }

// resolveIterations caps the depenetration loop per move.
const resolveIterations = 4

// Move displaces the controller and resolves collisions against the world.
// Displacements shorter than minDist are ignored. The elapsed time is
// accepted for parity with sweep-based backends; resolution itself is
// displacement-driven.
func (c *Controller) Move(disp core.Vec3, minDist, elapsed float64, filters Filters) CollisionFlags {
	_ = elapsed

	if c.world == nil || disp.Length() < minDist {
		return 0
	}
	c.position = c.position.Add(disp)
	return c.resolve(filters)
}

// recoverOverlap resolves any residual penetration, e.g. after an actor was
// placed inside a standing controller. Run by the world during Simulate.
func (c *Controller) recoverOverlap() {
	if c.world == nil {
		return
	}
	c.resolve(DefaultFilters())
}

func (c *Controller) segment() (p0, p1 core.Vec3) {
	half := core.V(0, c.height/2, 0)
	return c.position.Sub(half), c.position.Add(half)
}

func (c *Controller) resolve(filters Filters) CollisionFlags {
	var flags CollisionFlags

	for iter := 0; iter < resolveIterations; iter++ {
		moved := false
		p0, p1 := c.segment()
		query := core.AABBOf([]core.Vec3{p0, p1}).Expand(c.radius + c.contactOffset)

		for _, actor := range c.world.actors {
			if filters.ActorFilter != nil && !filters.ActorFilter(actor) {
				continue
			}
			if !actor.bounds.Intersects(query) {
				continue
			}
			for _, tri := range actor.triangles {
				if !tri.bounds.Intersects(query) {
					continue
				}

				onSeg, onTri := closestSegmentTriangle(p0, p1, tri)
				delta := onSeg.Sub(onTri)
				dist := delta.Length()
				if dist >= c.radius+c.contactOffset {
					continue
				}

				var n core.Vec3
				if dist > 1e-9 {
					n = delta.Scale(1 / dist)
				} else {
					// Segment on the surface: fall back to the
					// upward-facing triangle normal.
					n = tri.Normal().Normalized()
					if n.Y < 0 {
						n = n.Scale(-1)
					}
				}

				flags |= c.classify(n, onTri, p0)

				if dist < c.radius {
					c.position = c.position.Add(n.Scale(c.radius - dist))
					p0, p1 = c.segment()
					moved = true
				}
			}
		}

		if !moved {
			break
		}
	}
	return flags
}

// classify maps a contact normal to collision flags. Lateral contacts below
// the step offset count as ground so that small ledges read as walkable.
func (c *Controller) classify(n, contact, segBottom core.Vec3) CollisionFlags {
	switch {
	case n.Y > 0.5:
		return CollisionDown
	case n.Y < -0.5:
		return CollisionUp
	case contact.Y <= segBottom.Y-c.radius+c.stepOffset:
		return CollisionDown
	default:
		return CollisionSides
	}
}
