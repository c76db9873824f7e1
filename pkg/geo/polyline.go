package geo

// Polyline is an ordered sequence of points forming a path. Lengths are
// measured in the XY plane.
type Polyline struct {
	Points []Vector
}

// NewPolyline creates a polyline from a list of points.
func NewPolyline(pts ...Vector) Polyline {
	return Polyline{Points: pts}
}

// Length returns the total planar arc length of the polyline.
func (pl Polyline) Length() float64 {
	total := 0.0
	for i := 1; i < len(pl.Points); i++ {
		total += pl.Points[i-1].Distance2D(pl.Points[i])
	}
	return total
}

// Legs returns the planar length of each consecutive pair.
func (pl Polyline) Legs() []float64 {
	if len(pl.Points) < 2 {
		return nil
	}
	legs := make([]float64, len(pl.Points)-1)
	for i := 1; i < len(pl.Points); i++ {
		legs[i-1] = pl.Points[i-1].Distance2D(pl.Points[i])
	}
	return legs
}
