package geo

import (
	"math"

	"github.com/ChicagoDave/fieldplanner/pkg/errors"
)

// Matrix is an immutable 4x4 homogeneous transform stored row-major.
//
// Chained calls apply in reading order: Translation(v).RotateZ(90) first
// translates, then rotates, because every composition left-multiplies the
// receiver by the new transform.
type Matrix [4][4]float64

// Identity returns the identity transform.
func Identity() Matrix {
	return Matrix{
		{1, 0, 0, 0},
		{0, 1, 0, 0},
		{0, 0, 1, 0},
		{0, 0, 0, 1},
	}
}

// Translation returns a transform moving points by (x, y, z).
func Translation(x, y, z float64) Matrix {
	return Matrix{
		{1, 0, 0, x},
		{0, 1, 0, y},
		{0, 0, 1, z},
		{0, 0, 0, 1},
	}
}

// TranslationVec returns a transform moving points by v.
func TranslationVec(v Vector) Matrix {
	return Translation(v.X, v.Y, v.Z)
}

// Scaling returns a per-axis scaling transform.
func Scaling(sx, sy, sz float64) Matrix {
	return Matrix{
		{sx, 0, 0, 0},
		{0, sy, 0, 0},
		{0, 0, sz, 0},
		{0, 0, 0, 1},
	}
}

// ScalingVec returns a scaling transform using v's components as factors.
func ScalingVec(v Vector) Matrix {
	return Scaling(v.X, v.Y, v.Z)
}

// RotationZ returns a counterclockwise rotation around the Z axis.
func RotationZ(degrees float64) Matrix {
	c, s := math.Cos(toRadians(degrees)), math.Sin(toRadians(degrees))
	return Matrix{
		{c, -s, 0, 0},
		{s, c, 0, 0},
		{0, 0, 1, 0},
		{0, 0, 0, 1},
	}
}

// RotationX returns a rotation around the X axis.
func RotationX(degrees float64) Matrix {
	c, s := math.Cos(toRadians(degrees)), math.Sin(toRadians(degrees))
	return Matrix{
		{1, 0, 0, 0},
		{0, c, -s, 0},
		{0, s, c, 0},
		{0, 0, 0, 1},
	}
}

// Get returns the element at row i, column j.
func (m Matrix) Get(i, j int) float64 {
	return m[i][j]
}

// Compose returns other × m, i.e. m followed by other.
func (m Matrix) Compose(other Matrix) Matrix {
	var out Matrix
	for row := 0; row < 4; row++ {
		for col := 0; col < 4; col++ {
			sum := 0.0
			for k := 0; k < 4; k++ {
				sum += other[row][k] * m[k][col]
			}
			out[row][col] = sum
		}
	}
	return out
}

// Translate appends a translation to m.
func (m Matrix) Translate(x, y, z float64) Matrix {
	return m.Compose(Translation(x, y, z))
}

// TranslateVec appends a translation by v to m.
func (m Matrix) TranslateVec(v Vector) Matrix {
	return m.Compose(TranslationVec(v))
}

// Scale appends a per-axis scaling to m.
func (m Matrix) Scale(sx, sy, sz float64) Matrix {
	return m.Compose(Scaling(sx, sy, sz))
}

// RotateZ appends a Z rotation to m.
func (m Matrix) RotateZ(degrees float64) Matrix {
	return m.Compose(RotationZ(degrees))
}

// RotateX appends an X rotation to m.
func (m Matrix) RotateX(degrees float64) Matrix {
	return m.Compose(RotationX(degrees))
}

// TransformVector applies m to a single point.
func (m Matrix) TransformVector(v Vector) Vector {
	return v.Transform(m)
}

// TransformSequence applies m to every point, returning a new slice.
func (m Matrix) TransformSequence(vs []Vector) []Vector {
	out := make([]Vector, len(vs))
	for i, v := range vs {
		out[i] = v.Transform(m)
	}
	return out
}

// ComposeMatrix is an alias of Compose kept for symmetry with the other
// Transform* operations.
func (m Matrix) ComposeMatrix(other Matrix) Matrix {
	return m.Compose(other)
}

// Operand is the closed set of values a Matrix can be applied to.
type Operand interface {
	operand()
}

// VectorOperand wraps a single point.
type VectorOperand struct{ V Vector }

// SequenceOperand wraps an ordered list of points.
type SequenceOperand struct{ Vs []Vector }

// MatrixOperand wraps another transform to be composed with.
type MatrixOperand struct{ M Matrix }

func (VectorOperand) operand()   {}
func (SequenceOperand) operand() {}
func (MatrixOperand) operand()   {}

// Apply dispatches on the operand kind and returns a value of the same kind.
// A nil operand is rejected with INVALID_ARGUMENT.
func (m Matrix) Apply(op Operand) (Operand, error) {
	switch o := op.(type) {
	case VectorOperand:
		return VectorOperand{m.TransformVector(o.V)}, nil
	case SequenceOperand:
		return SequenceOperand{m.TransformSequence(o.Vs)}, nil
	case MatrixOperand:
		return MatrixOperand{m.ComposeMatrix(o.M)}, nil
	case nil:
		return nil, errors.New(errors.ErrCodeInvalidArgument, "transform operand is nil")
	default:
		return nil, errors.New(errors.ErrCodeInvalidArgument, "unsupported transform operand %T", op)
	}
}

// Equals reports whether every element is within tol.
func (m Matrix) Equals(other Matrix, tol float64) bool {
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			if math.Abs(m[i][j]-other[i][j]) > tol {
				return false
			}
		}
	}
	return true
}
