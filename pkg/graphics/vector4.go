package graphics

import (
	"io"

	"github.com/chewxy/math32"
)

// Vector4 is a 4D vector.
type Vector4 struct {
	X, Y, Z, W float32
}

// Vector4Size is the encoded size of a Vector4 in bytes.
const Vector4Size = 16

// NewVector4 creates a vector from float64 components.
func NewVector4(x, y, z, w float64) Vector4 {
	return Vector4{float32(x), float32(y), float32(z), float32(w)}
}

// Vector4FromBytes decodes a vector from buf at offset (X, Y, Z, W as little-endian float32).
func Vector4FromBytes(buf []byte, offset int) (Vector4, error) {
	f, err := float32sFromBytes("Vector4", buf, offset, 4)
	if err != nil {
		return Vector4{}, err
	}
	return Vector4{f[0], f[1], f[2], f[3]}, nil
}

// ReadVector4 reads a vector from a stream.
func ReadVector4(r io.Reader) (Vector4, error) {
	f, err := readFloat32s("Vector4", r, 4)
	if err != nil {
		return Vector4{}, err
	}
	return Vector4{f[0], f[1], f[2], f[3]}, nil
}

// Write encodes the vector to w.
func (v Vector4) Write(w io.Writer) error {
	return writeFloat32s(w, v.X, v.Y, v.Z, v.W)
}

// AppendBytes appends the encoded vector to b.
func (v Vector4) AppendBytes(b []byte) []byte {
	return appendFloat32s(b, v.X, v.Y, v.Z, v.W)
}

// Add returns v + other.
func (v Vector4) Add(other Vector4) Vector4 {
	return Vector4{v.X + other.X, v.Y + other.Y, v.Z + other.Z, v.W + other.W}
}

// Sub returns v - other.
func (v Vector4) Sub(other Vector4) Vector4 {
	return Vector4{v.X - other.X, v.Y - other.Y, v.Z - other.Z, v.W - other.W}
}

// Mul returns the elementwise product.
func (v Vector4) Mul(other Vector4) Vector4 {
	return Vector4{v.X * other.X, v.Y * other.Y, v.Z * other.Z, v.W * other.W}
}

// Div returns the elementwise quotient.
func (v Vector4) Div(other Vector4) Vector4 {
	return Vector4{v.X / other.X, v.Y / other.Y, v.Z / other.Z, v.W / other.W}
}

// Scale returns v * s.
func (v Vector4) Scale(s float32) Vector4 {
	return Vector4{v.X * s, v.Y * s, v.Z * s, v.W * s}
}

// DivScalar returns v / s.
func (v Vector4) DivScalar(s float32) Vector4 {
	return Vector4{v.X / s, v.Y / s, v.Z / s, v.W / s}
}

// Dot returns the dot product.
func (v Vector4) Dot(other Vector4) float32 {
	return v.X*other.X + v.Y*other.Y + v.Z*other.Z + v.W*other.W
}

// LengthSquared returns the squared magnitude.
func (v Vector4) LengthSquared() float32 {
	return v.Dot(v)
}

// Length returns the magnitude.
func (v Vector4) Length() float32 {
	return math32.Sqrt(v.LengthSquared())
}

// Normalize returns v divided by its length. A zero vector yields NaN components.
func (v Vector4) Normalize() Vector4 {
	return v.DivScalar(v.Length())
}

// XYZ drops the W component.
func (v Vector4) XYZ() Vector3 {
	return Vector3{v.X, v.Y, v.Z}
}

// At returns component i and panics when i is outside 0..3.
func (v Vector4) At(i int) float32 {
	f, err := v.Component(i)
	if err != nil {
		panic(err)
	}
	return f
}

// Component returns component i.
func (v Vector4) Component(i int) (float32, error) {
	switch i {
	case 0:
		return v.X, nil
	case 1:
		return v.Y, nil
	case 2:
		return v.Z, nil
	case 3:
		return v.W, nil
	}
	return 0, indexError("Vector4", i, 4)
}

// SetComponent sets component i.
func (v *Vector4) SetComponent(i int, f float32) error {
	switch i {
	case 0:
		v.X = f
	case 1:
		v.Y = f
	case 2:
		v.Z = f
	case 3:
		v.W = f
	default:
		return indexError("Vector4", i, 4)
	}
	return nil
}
