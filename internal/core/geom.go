package core

// AABB is an axis-aligned bounding box used for broad-phase culling.
type AABB struct {
	Min, Max Vec3
}

// NewAABB creates a bounding box from explicit corners.
func NewAABB(min, max Vec3) AABB {
	return AABB{Min: min, Max: max}
}

// AABBOf computes the bounding box of a set of points.
// An empty point list yields an inverted (empty) box.
func AABBOf(points []Vec3) AABB {
	if len(points) == 0 {
		return AABB{
			Min: Vec3{1, 1, 1},
			Max: Vec3{-1, -1, -1},
		}
	}
	box := AABB{Min: points[0], Max: points[0]}
	for _, p := range points[1:] {
		box.Min = box.Min.Min(p)
		box.Max = box.Max.Max(p)
	}
	return box
}

// Expand grows the box by margin on every side.
func (b AABB) Expand(margin float64) AABB {
	m := Vec3{margin, margin, margin}
	return AABB{Min: b.Min.Sub(m), Max: b.Max.Add(m)}
}

// Union returns the smallest box containing both b and other.
func (b AABB) Union(other AABB) AABB {
	return AABB{Min: b.Min.Min(other.Min), Max: b.Max.Max(other.Max)}
}

// Include extends the box to contain the point p.
func (b AABB) Include(p Vec3) AABB {
	return AABB{Min: b.Min.Min(p), Max: b.Max.Max(p)}
}

// Intersects returns true if this box overlaps with another.
func (b AABB) Intersects(other AABB) bool {
	if b.Max.X < other.Min.X || other.Max.X < b.Min.X {
		return false
	}
	if b.Max.Y < other.Min.Y || other.Max.Y < b.Min.Y {
		return false
	}
	if b.Max.Z < other.Min.Z || other.Max.Z < b.Min.Z {
		return false
	}
	return true
}

// Contains returns true if the point p is inside the box.
func (b AABB) Contains(p Vec3) bool {
	return p.X >= b.Min.X && p.X <= b.Max.X &&
		p.Y >= b.Min.Y && p.Y <= b.Max.Y &&
		p.Z >= b.Min.Z && p.Z <= b.Max.Z
}

// Center returns the center point of the box.
func (b AABB) Center() Vec3 {
	return b.Min.Add(b.Max).Scale(0.5)
}
