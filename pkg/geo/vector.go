package geo

import (
	"math"

	"github.com/ChicagoDave/fieldplanner/pkg/errors"
)

// DefaultTolerance is the per-component tolerance used by Equals when callers
// have no better bound. Layout coordinates are in meters, so 1e-9 is far below
// any physically meaningful offset.
const DefaultTolerance = 1e-9

// Vector is an immutable 3D vector. Z is zero for planar layout work.
type Vector struct {
	X float64 `json:"x" yaml:"x" toml:"x"`
	Y float64 `json:"y" yaml:"y" toml:"y"`
	Z float64 `json:"z" yaml:"z,omitempty" toml:"z,omitempty"`
}

// Zero is the origin.
var Zero = Vector{}

// Vec is a shorthand constructor for a planar Vector (Z = 0).
func Vec(x, y float64) Vector {
	return Vector{X: x, Y: y}
}

// Vec3 is a shorthand constructor for a 3D Vector.
func Vec3(x, y, z float64) Vector {
	return Vector{X: x, Y: y, Z: z}
}

// Add returns v + w.
func (v Vector) Add(w Vector) Vector {
	return Vector{v.X + w.X, v.Y + w.Y, v.Z + w.Z}
}

// Sub returns v - w.
func (v Vector) Sub(w Vector) Vector {
	return Vector{v.X - w.X, v.Y - w.Y, v.Z - w.Z}
}

// Scale returns v * s.
func (v Vector) Scale(s float64) Vector {
	return Vector{v.X * s, v.Y * s, v.Z * s}
}

// ScaleXYZ scales each axis independently.
func (v Vector) ScaleXYZ(sx, sy, sz float64) Vector {
	return Vector{v.X * sx, v.Y * sy, v.Z * sz}
}

// Multiply returns the component-wise product.
func (v Vector) Multiply(w Vector) Vector {
	return Vector{v.X * w.X, v.Y * w.Y, v.Z * w.Z}
}

// Dot returns the dot product of v and w.
func (v Vector) Dot(w Vector) float64 {
	return v.X*w.X + v.Y*w.Y + v.Z*w.Z
}

// Cross returns v × w.
func (v Vector) Cross(w Vector) Vector {
	return Vector{
		X: v.Y*w.Z - v.Z*w.Y,
		Y: v.Z*w.X - v.X*w.Z,
		Z: v.X*w.Y - v.Y*w.X,
	}
}

// Length returns the Euclidean length of the vector.
func (v Vector) Length() float64 {
	return math.Sqrt(v.Dot(v))
}

// Distance returns the Euclidean distance from v to w.
func (v Vector) Distance(w Vector) float64 {
	return v.Sub(w).Length()
}

// Distance2D returns the distance from v to w projected onto the XY plane.
func (v Vector) Distance2D(w Vector) float64 {
	return math.Hypot(v.X-w.X, v.Y-w.Y)
}

// Normalize returns the vector scaled to length scaleFactor.
// The zero vector has no direction and yields a DIVISION_BY_ZERO error.
func (v Vector) Normalize(scaleFactor float64) (Vector, error) {
	l := v.Length()
	if l == 0 {
		return Vector{}, errors.New(errors.ErrCodeDivisionByZero, "cannot normalize zero-length vector")
	}
	return v.Scale(scaleFactor / l), nil
}

// Lerp returns the linear interpolation between v and w at t in [0,1].
func (v Vector) Lerp(w Vector, t float64) Vector {
	return v.Add(w.Sub(v).Scale(t))
}

// Rotate rotates around the Z axis; see RotateZ.
func (v Vector) Rotate(degrees float64, origin Vector) Vector {
	return v.RotateZ(degrees, origin)
}

// RotateZ rotates v by degrees around a Z-parallel axis through origin.
func (v Vector) RotateZ(degrees float64, origin Vector) Vector {
	return v.Sub(origin).Transform(RotationZ(degrees)).Add(origin)
}

// RotateX rotates v by degrees around an X-parallel axis through origin.
func (v Vector) RotateX(degrees float64, origin Vector) Vector {
	return v.Sub(origin).Transform(RotationX(degrees)).Add(origin)
}

// Transform applies m to v as a point (w = 1).
func (v Vector) Transform(m Matrix) Vector {
	return Vector{
		X: v.X*m[0][0] + v.Y*m[0][1] + v.Z*m[0][2] + m[0][3],
		Y: v.X*m[1][0] + v.Y*m[1][1] + v.Z*m[1][2] + m[1][3],
		Z: v.X*m[2][0] + v.Y*m[2][1] + v.Z*m[2][2] + m[2][3],
	}
}

// ToArray returns the components as [x, y, z].
func (v Vector) ToArray() [3]float64 {
	return [3]float64{v.X, v.Y, v.Z}
}

// IsFinite reports whether no component is NaN or infinite.
func (v Vector) IsFinite() bool {
	return isFinite(v.X) && isFinite(v.Y) && isFinite(v.Z)
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

// Equals reports whether every component of v is within tol of w.
func (v Vector) Equals(w Vector, tol float64) bool {
	return math.Abs(v.X-w.X) <= tol &&
		math.Abs(v.Y-w.Y) <= tol &&
		math.Abs(v.Z-w.Z) <= tol
}

// ExactEquals compares components bit for bit. Results of arithmetic rarely
// satisfy it; prefer Equals.
func (v Vector) ExactEquals(w Vector) bool {
	return v.X == w.X && v.Y == w.Y && v.Z == w.Z
}

func toRadians(degrees float64) float64 {
	return degrees * math.Pi / 180
}
