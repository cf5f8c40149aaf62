package graphics

import (
	"io"

	"github.com/chewxy/math32"
)

// Vector3 is a 3D vector. Model vertices, normals, offsets and scales are all
// carried as Vector3.
type Vector3 struct {
	X, Y, Z float32
}

// Vector3Size is the encoded size of a Vector3 in bytes.
const Vector3Size = 12

// Common vectors.
var (
	Vector3Zero  = Vector3{}
	Vector3One   = Vector3{1, 1, 1}
	Vector3UnitX = Vector3{1, 0, 0}
	Vector3UnitY = Vector3{0, 1, 0}
	Vector3UnitZ = Vector3{0, 0, 1}
)

// NewVector3 creates a vector from float64 components.
func NewVector3(x, y, z float64) Vector3 {
	return Vector3{float32(x), float32(y), float32(z)}
}

// Vector3FromBytes decodes a vector from buf at offset (X, Y, Z as little-endian float32).
func Vector3FromBytes(buf []byte, offset int) (Vector3, error) {
	f, err := float32sFromBytes("Vector3", buf, offset, 3)
	if err != nil {
		return Vector3{}, err
	}
	return Vector3{f[0], f[1], f[2]}, nil
}

// ReadVector3 reads a vector from a stream.
func ReadVector3(r io.Reader) (Vector3, error) {
	f, err := readFloat32s("Vector3", r, 3)
	if err != nil {
		return Vector3{}, err
	}
	return Vector3{f[0], f[1], f[2]}, nil
}

// Write encodes the vector to w.
func (v Vector3) Write(w io.Writer) error {
	return writeFloat32s(w, v.X, v.Y, v.Z)
}

// AppendBytes appends the encoded vector to b.
func (v Vector3) AppendBytes(b []byte) []byte {
	return appendFloat32s(b, v.X, v.Y, v.Z)
}

// Add returns v + other.
func (v Vector3) Add(other Vector3) Vector3 {
	return Vector3{v.X + other.X, v.Y + other.Y, v.Z + other.Z}
}

// Sub returns v - other.
func (v Vector3) Sub(other Vector3) Vector3 {
	return Vector3{v.X - other.X, v.Y - other.Y, v.Z - other.Z}
}

// Mul returns the elementwise product.
func (v Vector3) Mul(other Vector3) Vector3 {
	return Vector3{v.X * other.X, v.Y * other.Y, v.Z * other.Z}
}

// Div returns the elementwise quotient.
func (v Vector3) Div(other Vector3) Vector3 {
	return Vector3{v.X / other.X, v.Y / other.Y, v.Z / other.Z}
}

// Scale returns v * s.
func (v Vector3) Scale(s float32) Vector3 {
	return Vector3{v.X * s, v.Y * s, v.Z * s}
}

// DivScalar returns v / s.
func (v Vector3) DivScalar(s float32) Vector3 {
	return Vector3{v.X / s, v.Y / s, v.Z / s}
}

// Negate returns -v.
func (v Vector3) Negate() Vector3 {
	return Vector3{-v.X, -v.Y, -v.Z}
}

// Dot returns the dot product.
func (v Vector3) Dot(other Vector3) float32 {
	return v.X*other.X + v.Y*other.Y + v.Z*other.Z
}

// Cross returns the cross product.
func (v Vector3) Cross(other Vector3) Vector3 {
	return Vector3{
		v.Y*other.Z - v.Z*other.Y,
		v.Z*other.X - v.X*other.Z,
		v.X*other.Y - v.Y*other.X,
	}
}

// LengthSquared returns the squared magnitude.
func (v Vector3) LengthSquared() float32 {
	return v.X*v.X + v.Y*v.Y + v.Z*v.Z
}

// Length returns the magnitude.
func (v Vector3) Length() float32 {
	return math32.Sqrt(v.LengthSquared())
}

// Normalize returns v divided by its length. A zero vector yields NaN components.
func (v Vector3) Normalize() Vector3 {
	l := v.Length()
	return Vector3{v.X / l, v.Y / l, v.Z / l}
}

// Distance returns the distance to another point.
func (v Vector3) Distance(other Vector3) float32 {
	return v.Sub(other).Length()
}

// Lerp interpolates linearly from v to other.
func (v Vector3) Lerp(other Vector3, t float32) Vector3 {
	return Vector3{
		v.X + t*(other.X-v.X),
		v.Y + t*(other.Y-v.Y),
		v.Z + t*(other.Z-v.Z),
	}
}

// Min returns the componentwise minimum.
func (v Vector3) Min(other Vector3) Vector3 {
	return Vector3{min(v.X, other.X), min(v.Y, other.Y), min(v.Z, other.Z)}
}

// Max returns the componentwise maximum.
func (v Vector3) Max(other Vector3) Vector3 {
	return Vector3{max(v.X, other.X), max(v.Y, other.Y), max(v.Z, other.Z)}
}

// XY returns the X and Y components.
func (v Vector3) XY() Vector2 {
	return Vector2{v.X, v.Y}
}

// XZ returns the X and Z components (the ground plane).
func (v Vector3) XZ() Vector2 {
	return Vector2{v.X, v.Z}
}

// ToVector4 extends v with the given W.
func (v Vector3) ToVector4(w float32) Vector4 {
	return Vector4{v.X, v.Y, v.Z, w}
}

// At returns component i and panics when i is outside 0..2.
func (v Vector3) At(i int) float32 {
	f, err := v.Component(i)
	if err != nil {
		panic(err)
	}
	return f
}

// Component returns component i.
func (v Vector3) Component(i int) (float32, error) {
	switch i {
	case 0:
		return v.X, nil
	case 1:
		return v.Y, nil
	case 2:
		return v.Z, nil
	}
	return 0, indexError("Vector3", i, 3)
}

// SetComponent sets component i.
func (v *Vector3) SetComponent(i int, f float32) error {
	switch i {
	case 0:
		v.X = f
	case 1:
		v.Y = f
	case 2:
		v.Z = f
	default:
		return indexError("Vector3", i, 3)
	}
	return nil
}

// CalculateNormal returns the unit face normal of triangle (a, b, c), computed as
// (b-a) x (c-a). Counter-clockwise winding in the XY plane gives +Z.
func CalculateNormal(a, b, c Vector3) Vector3 {
	return b.Sub(a).Cross(c.Sub(a)).Normalize()
}
