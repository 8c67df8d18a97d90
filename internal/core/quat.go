package core

import "math"

// Quat is a rotation quaternion (X, Y, Z imaginary parts, W real part).
type Quat struct {
	X, Y, Z, W float64
}

// QuatIdentity returns the identity rotation.
func QuatIdentity() Quat {
	return Quat{W: 1}
}

// QuatFromAxisAngle builds a rotation of angle radians around the given axis.
// The axis does not need to be normalized.
func QuatFromAxisAngle(axis Vec3, angle float64) Quat {
	axis = axis.Normalized()
	half := angle / 2
	s := math.Sin(half)
	return Quat{
		X: axis.X * s,
		Y: axis.Y * s,
		Z: axis.Z * s,
		W: math.Cos(half),
	}
}

// Mul returns the composed rotation q * other (other applied first).
func (q Quat) Mul(other Quat) Quat {
	return Quat{
		X: q.W*other.X + q.X*other.W + q.Y*other.Z - q.Z*other.Y,
		Y: q.W*other.Y - q.X*other.Z + q.Y*other.W + q.Z*other.X,
		Z: q.W*other.Z + q.X*other.Y - q.Y*other.X + q.Z*other.W,
		W: q.W*other.W - q.X*other.X - q.Y*other.Y - q.Z*other.Z,
	}
}

// Rotate applies the rotation to a vector.
func (q Quat) Rotate(v Vec3) Vec3 {
	// v' = v + 2*u x (u x v + w*v), u = (X, Y, Z)
	u := Vec3{q.X, q.Y, q.Z}
	t := u.Cross(v).Add(v.Scale(q.W))
	return v.Add(u.Cross(t).Scale(2))
}

// Transform is a rigid transform: rotation followed by translation.
type Transform struct {
	Translation Vec3
	Rotation    Quat
}

// NewTransform creates a transform from a position and rotation.
func NewTransform(pos Vec3, rot Quat) Transform {
	return Transform{Translation: pos, Rotation: rot}
}

// Apply maps a point from local space into the transform's space.
func (t Transform) Apply(p Vec3) Vec3 {
	return t.Rotation.Rotate(p).Add(t.Translation)
}
