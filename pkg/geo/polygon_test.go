package geo

import "testing"

func TestRectArea(t *testing.T) {
	r := Rect(Vec(1, 1), Vec(10, 5))
	if !approxEqual(r.Area(), 50, tolerance) {
		t.Errorf("expected area 50, got %f", r.Area())
	}
	if r.SignedArea() <= 0 {
		t.Error("expected counterclockwise rectangle")
	}
}

func TestBoundsOf(t *testing.T) {
	mn, mx := BoundsOf([]Vector{Vec(-5, -3), Vec(10, 0), Vec3(7, 12, 2)})
	if !mn.Equals(Vec(-5, -3), tolerance) || !mx.Equals(Vec3(10, 12, 2), tolerance) {
		t.Errorf("unexpected bounds %v %v", mn, mx)
	}
}

func TestOverlapArea(t *testing.T) {
	a := Rect(Zero, Vec(10, 10))
	b := Rect(Vec(5, 5), Vec(10, 10))
	if got := OverlapArea(a, b); !approxEqual(got, 25, tolerance) {
		t.Errorf("expected overlap 25, got %f", got)
	}
	c := Rect(Vec(20, 20), Vec(1, 1))
	if got := OverlapArea(a, c); got != 0 {
		t.Errorf("expected no overlap, got %f", got)
	}
	// Clockwise clipper is normalized.
	if got := OverlapArea(a, b.Reverse()); !approxEqual(got, 25, tolerance) {
		t.Errorf("expected overlap 25 with CW clipper, got %f", got)
	}
}

func TestPolylineLength(t *testing.T) {
	pl := NewPolyline(Vec(0, 0), Vec(3, 4), Vec3(3, 10, 7))
	if !approxEqual(pl.Length(), 11, tolerance) {
		t.Errorf("expected planar length 11, got %f", pl.Length())
	}
	legs := pl.Legs()
	if len(legs) != 2 || !approxEqual(legs[0], 5, tolerance) || !approxEqual(legs[1], 6, tolerance) {
		t.Errorf("unexpected legs %v", legs)
	}
	if NewPolyline(Vec(1, 1)).Length() != 0 {
		t.Error("single point polyline should have zero length")
	}
}
