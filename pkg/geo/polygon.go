package geo

import "math"

// Polygon is a closed ring of vertices in the XY plane. Z is ignored by every
// area computation.
type Polygon struct {
	Vertices []Vector
}

// NewPolygon creates a polygon from its vertices in order.
func NewPolygon(pts ...Vector) Polygon {
	return Polygon{Vertices: pts}
}

// Rect returns the counterclockwise rectangle with corner origin and extent size.
func Rect(origin, size Vector) Polygon {
	return NewPolygon(
		origin,
		origin.Add(Vec(size.X, 0)),
		origin.Add(Vec(size.X, size.Y)),
		origin.Add(Vec(0, size.Y)),
	)
}

// IsEmpty reports whether p has too few vertices to enclose an area.
func (p Polygon) IsEmpty() bool {
	return len(p.Vertices) < 3
}

// edges calls fn for every directed edge of the ring, including the closing one.
func (p Polygon) edges(fn func(a, b Vector)) {
	n := len(p.Vertices)
	for i, a := range p.Vertices {
		fn(a, p.Vertices[(i+1)%n])
	}
}

// SignedArea is positive for counterclockwise winding.
func (p Polygon) SignedArea() float64 {
	if p.IsEmpty() {
		return 0
	}
	twice := 0.0
	p.edges(func(a, b Vector) { twice += cross2D(a, b) })
	return twice / 2
}

// Area returns the enclosed area regardless of winding.
func (p Polygon) Area() float64 {
	return math.Abs(p.SignedArea())
}

// EnsureCCW returns p wound counterclockwise.
func (p Polygon) EnsureCCW() Polygon {
	if p.SignedArea() >= 0 {
		return p
	}
	return p.Reverse()
}

// Reverse returns p with its winding flipped.
func (p Polygon) Reverse() Polygon {
	out := make([]Vector, len(p.Vertices))
	for i, v := range p.Vertices {
		out[len(out)-1-i] = v
	}
	return Polygon{Vertices: out}
}

// BoundingBox returns the axis-aligned (min, max) corners of p.
func (p Polygon) BoundingBox() (Vector, Vector) {
	return BoundsOf(p.Vertices)
}

// BoundsOf returns the axis-aligned (min, max) corners of pts, Z included.
// An empty set yields two zero vectors.
func BoundsOf(pts []Vector) (Vector, Vector) {
	if len(pts) == 0 {
		return Zero, Zero
	}
	lo, hi := pts[0], pts[0]
	for _, v := range pts[1:] {
		lo = Vec3(math.Min(lo.X, v.X), math.Min(lo.Y, v.Y), math.Min(lo.Z, v.Z))
		hi = Vec3(math.Max(hi.X, v.X), math.Max(hi.Y, v.Y), math.Max(hi.Z, v.Z))
	}
	return lo, hi
}

// Clip returns the part of p inside the convex polygon window
// (Sutherland-Hodgman). The result is empty when they do not intersect.
func (p Polygon) Clip(window Polygon) Polygon {
	if p.IsEmpty() || window.IsEmpty() {
		return Polygon{}
	}
	ring := append([]Vector(nil), p.Vertices...)
	window.EnsureCCW().edges(func(e0, e1 Vector) {
		if len(ring) == 0 {
			return
		}
		side := func(v Vector) float64 { return cross2D(e1.Sub(e0), v.Sub(e0)) }
		var kept []Vector
		for i, cur := range ring {
			next := ring[(i+1)%len(ring)]
			sc, sn := side(cur), side(next)
			if (sc >= 0) != (sn >= 0) {
				kept = append(kept, cur.Lerp(next, sc/(sc-sn)))
			}
			if sn >= 0 {
				kept = append(kept, next)
			}
		}
		ring = kept
	})
	if len(ring) < 3 {
		return Polygon{}
	}
	return Polygon{Vertices: ring}
}

// OverlapArea returns the area shared by two convex polygons.
func OverlapArea(a, b Polygon) float64 {
	return a.Clip(b).Area()
}

// cross2D is the Z component of a x b.
func cross2D(a, b Vector) float64 {
	return a.X*b.Y - a.Y*b.X
}
