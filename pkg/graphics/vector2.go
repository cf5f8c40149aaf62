package graphics

import (
	"io"

	"github.com/chewxy/math32"
)

// Vector2 is a 2D vector.
type Vector2 struct {
	X, Y float32
}

// Vector2Size is the encoded size of a Vector2 in bytes.
const Vector2Size = 8

// NewVector2 creates a vector from float64 components.
func NewVector2(x, y float64) Vector2 {
	return Vector2{float32(x), float32(y)}
}

// Vector2FromBytes decodes a vector from buf at offset (X, Y as little-endian float32).
func Vector2FromBytes(buf []byte, offset int) (Vector2, error) {
	f, err := float32sFromBytes("Vector2", buf, offset, 2)
	if err != nil {
		return Vector2{}, err
	}
	return Vector2{f[0], f[1]}, nil
}

// ReadVector2 reads a vector from a stream.
func ReadVector2(r io.Reader) (Vector2, error) {
	f, err := readFloat32s("Vector2", r, 2)
	if err != nil {
		return Vector2{}, err
	}
	return Vector2{f[0], f[1]}, nil
}

// Write encodes the vector to w.
func (v Vector2) Write(w io.Writer) error {
	return writeFloat32s(w, v.X, v.Y)
}

// AppendBytes appends the encoded vector to b.
func (v Vector2) AppendBytes(b []byte) []byte {
	return appendFloat32s(b, v.X, v.Y)
}

// Add returns v + other.
func (v Vector2) Add(other Vector2) Vector2 {
	return Vector2{v.X + other.X, v.Y + other.Y}
}

// Sub returns v - other.
func (v Vector2) Sub(other Vector2) Vector2 {
	return Vector2{v.X - other.X, v.Y - other.Y}
}

// Mul returns the elementwise product.
func (v Vector2) Mul(other Vector2) Vector2 {
	return Vector2{v.X * other.X, v.Y * other.Y}
}

// Div returns the elementwise quotient.
func (v Vector2) Div(other Vector2) Vector2 {
	return Vector2{v.X / other.X, v.Y / other.Y}
}

// Scale returns v * s.
func (v Vector2) Scale(s float32) Vector2 {
	return Vector2{v.X * s, v.Y * s}
}

// DivScalar returns v / s.
func (v Vector2) DivScalar(s float32) Vector2 {
	return Vector2{v.X / s, v.Y / s}
}

// Negate returns -v.
func (v Vector2) Negate() Vector2 {
	return Vector2{-v.X, -v.Y}
}

// Dot returns the dot product.
func (v Vector2) Dot(other Vector2) float32 {
	return v.X*other.X + v.Y*other.Y
}

// LengthSquared returns the squared magnitude.
func (v Vector2) LengthSquared() float32 {
	return v.X*v.X + v.Y*v.Y
}

// Length returns the magnitude.
func (v Vector2) Length() float32 {
	return math32.Sqrt(v.LengthSquared())
}

// Normalize returns v divided by its length. A zero vector yields NaN components.
func (v Vector2) Normalize() Vector2 {
	l := v.Length()
	return Vector2{v.X / l, v.Y / l}
}

// Distance returns the distance to another point.
func (v Vector2) Distance(other Vector2) float32 {
	return v.Sub(other).Length()
}

// Lerp interpolates linearly from v to other.
func (v Vector2) Lerp(other Vector2, t float32) Vector2 {
	return Vector2{v.X + t*(other.X-v.X), v.Y + t*(other.Y-v.Y)}
}

// At returns component i and panics when i is outside 0..1.
func (v Vector2) At(i int) float32 {
	f, err := v.Component(i)
	if err != nil {
		panic(err)
	}
	return f
}

// Component returns component i.
func (v Vector2) Component(i int) (float32, error) {
	switch i {
	case 0:
		return v.X, nil
	case 1:
		return v.Y, nil
	}
	return 0, indexError("Vector2", i, 2)
}

// SetComponent sets component i.
func (v *Vector2) SetComponent(i int, f float32) error {
	switch i {
	case 0:
		v.X = f
	case 1:
		v.Y = f
	default:
		return indexError("Vector2", i, 2)
	}
	return nil
}
