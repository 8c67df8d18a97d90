package backend

import "errors"

// ToleranceScale tells the backend the typical size of objects in the
// simulation so contact thresholds can be tuned accordingly.
type ToleranceScale struct {
	// Length is the approximate size of a typical object, in world units.
	Length float64
}

// Physics is the central backend instance. Worlds, materials and cooked
// resources hang off it.
type Physics struct {
	foundation *Foundation
	scale      ToleranceScale
	released   bool
}

// NewPhysics creates the physics instance on top of a live foundation.
func NewPhysics(f *Foundation, scale ToleranceScale) (*Physics, error) {
	if !f.alive() {
		return nil, errors.New("backend: physics requires a live foundation")
	}
	if scale.Length <= 0 {
		return nil, errors.New("backend: tolerance length must be positive")
	}
	return &Physics{foundation: f, scale: scale}, nil
}

// Scale returns the tolerance scale the instance was created with.
func (p *Physics) Scale() ToleranceScale {
	return p.scale
}

// CreateMaterial creates a surface material. Friction values are clamped to
// [0,1] and restitution to [0,1].
func (p *Physics) CreateMaterial(staticFriction, dynamicFriction, restitution float64) (*Material, error) {
	if !p.alive() {
		return nil, ErrReleased
	}
	return &Material{
		StaticFriction:  clamp01(staticFriction),
		DynamicFriction: clamp01(dynamicFriction),
		Restitution:     clamp01(restitution),
	}, nil
}

// Release tears down the physics instance.
func (p *Physics) Release() {
	p.released = true
}

func (p *Physics) alive() bool {
	return p != nil && !p.released
}

// Material describes the surface response of a shape.
type Material struct {
	StaticFriction  float64
	DynamicFriction float64
	Restitution     float64
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
