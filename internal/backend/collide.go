package backend

import "github.com/vovakirdan/physkit/internal/core"

// closestPointOnTriangle returns the point of triangle abc closest to p.
// Voronoi-region walk, see Ericson, "Real-Time Collision Detection" 5.1.5.
func closestPointOnTriangle(p, a, b, c core.Vec3) core.Vec3 {
	ab := b.Sub(a)
	ac := c.Sub(a)
	ap := p.Sub(a)

	d1 := ab.Dot(ap)
	d2 := ac.Dot(ap)
	if d1 <= 0 && d2 <= 0 {
		return a
	}

	bp := p.Sub(b)
	d3 := ab.Dot(bp)
	d4 := ac.Dot(bp)
	if d3 >= 0 && d4 <= d3 {
		return b
	}

	vc := d1*d4 - d3*d2
	if vc <= 0 && d1 >= 0 && d3 <= 0 {
		v := d1 / (d1 - d3)
		return a.Add(ab.Scale(v))
	}

	cp := p.Sub(c)
	d5 := ab.Dot(cp)
	d6 := ac.Dot(cp)
	if d6 >= 0 && d5 <= d6 {
		return c
	}

	vb := d5*d2 - d1*d6
	if vb <= 0 && d2 >= 0 && d6 <= 0 {
		w := d2 / (d2 - d6)
		return a.Add(ac.Scale(w))
	}

	va := d3*d6 - d5*d4
	if va <= 0 && (d4-d3) >= 0 && (d5-d6) >= 0 {
		w := (d4 - d3) / ((d4 - d3) + (d5 - d6))
		return b.Add(c.Sub(b).Scale(w))
	}

	denom := 1 / (va + vb + vc)
	v := vb * denom
	w := vc * denom
	return a.Add(ab.Scale(v)).Add(ac.Scale(w))
}

// closestPointOnSegment returns the point on segment [a,b] closest to p.
func closestPointOnSegment(p, a, b core.Vec3) core.Vec3 {
	ab := b.Sub(a)
	denom := ab.Dot(ab)
	if denom == 0 {
		return a
	}
	t := core.ClampF(p.Sub(a).Dot(ab)/denom, 0, 1)
	return a.Add(ab.Scale(t))
}

// closestSegmentTriangle finds (approximately) the closest pair of points
// between segment [p0,p1] and triangle abc. Starting from the triangle point
// closest to the segment midpoint, it alternates projections; two rounds are
// enough for the shallow contacts a character controller generates.
func closestSegmentTriangle(p0, p1 core.Vec3, tri Triangle) (onSegment, onTriangle core.Vec3) {
	mid := p0.Add(p1).Scale(0.5)
	onTriangle = closestPointOnTriangle(mid, tri.A, tri.B, tri.C)
	for i := 0; i < 2; i++ {
		onSegment = closestPointOnSegment(onTriangle, p0, p1)
		onTriangle = closestPointOnTriangle(onSegment, tri.A, tri.B, tri.C)
	}
	return onSegment, onTriangle
}
