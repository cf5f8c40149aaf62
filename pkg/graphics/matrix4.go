package graphics

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/chewxy/math32"
)

// Matrix4 is a 4x4 transform in row-major order: element [row,col] is at index
// 4*row+col and the translation lives in row 3 (indices 12, 13, 14). See the
// package documentation for the vector convention.
type Matrix4 [16]float32

// Matrix4Size is the encoded size of a Matrix4 in bytes.
const Matrix4Size = 64

// DeterminantEpsilon is the magnitude below which a determinant counts as zero
// and inversion fails.
const DeterminantEpsilon = 2.22044604925031e-15

func isZero(d float64) bool {
	return math.Abs(d) < DeterminantEpsilon
}

// Identity returns the 4x4 identity matrix.
func Identity() Matrix4 {
	return Matrix4{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}

// Matrix4FromSlice copies exactly 16 values into a matrix.
func Matrix4FromSlice(values []float32) (Matrix4, error) {
	if len(values) != 16 {
		return Matrix4{}, fmt.Errorf("%w: Matrix4 needs 16, got %d", ErrMatrixSize, len(values))
	}
	return Matrix4(values), nil
}

// Matrix4FromBytes decodes sixteen little-endian float32 values from buf at offset.
func Matrix4FromBytes(buf []byte, offset int) (Matrix4, error) {
	f, err := float32sFromBytes("Matrix4", buf, offset, 16)
	if err != nil {
		return Matrix4{}, err
	}
	return Matrix4(f), nil
}

// ReadMatrix4 reads a matrix from a stream.
func ReadMatrix4(r io.Reader) (Matrix4, error) {
	f, err := readFloat32s("Matrix4", r, 16)
	if err != nil {
		return Matrix4{}, err
	}
	return Matrix4(f), nil
}

// Write encodes the matrix to w.
func (m Matrix4) Write(w io.Writer) error {
	return writeFloat32s(w, m[:]...)
}

// AppendBytes appends the encoded matrix to b.
func (m Matrix4) AppendBytes(b []byte) []byte {
	return appendFloat32s(b, m[:]...)
}

// Get returns element [row,col].
func (m Matrix4) Get(row, col int) (float32, error) {
	if err := checkCell("Matrix4", row, col, 4); err != nil {
		return 0, err
	}
	return m[4*row+col], nil
}

// Set assigns element [row,col].
func (m *Matrix4) Set(row, col int, v float32) error {
	if err := checkCell("Matrix4", row, col, 4); err != nil {
		return err
	}
	m[4*row+col] = v
	return nil
}

// Row returns row i.
func (m Matrix4) Row(i int) Vector4 {
	return Vector4{m[4*i], m[4*i+1], m[4*i+2], m[4*i+3]}
}

// Offset returns the translation (indices 12, 13, 14).
func (m Matrix4) Offset() Vector3 {
	return Vector3{m[12], m[13], m[14]}
}

// WithOffset returns a copy of m with the translation replaced.
func (m Matrix4) WithOffset(v Vector3) Matrix4 {
	m[12], m[13], m[14] = v.X, v.Y, v.Z
	return m
}

// Multiply returns the transform that applies m2 first and m1 second. Row i of
// the result is row i of m2 weighted by the rows of m1:
//
//	r[4*i+j] = m2[4*i]*m1[j] + m2[4*i+1]*m1[4+j] + m2[4*i+2]*m1[8+j] + m2[4*i+3]*m1[12+j]
func Multiply(m1, m2 Matrix4) Matrix4 {
	var r Matrix4
	for i := 0; i < 4; i++ {
		b0, b1, b2, b3 := m2[4*i], m2[4*i+1], m2[4*i+2], m2[4*i+3]
		for j := 0; j < 4; j++ {
			r[4*i+j] = b0*m1[j] + b1*m1[4+j] + b2*m1[8+j] + b3*m1[12+j]
		}
	}
	return r
}

// TransformPoint applies m to a point (w = 1, no perspective divide).
func (m Matrix4) TransformPoint(v Vector3) Vector3 {
	return Vector3{
		m[0]*v.X + m[4]*v.Y + m[8]*v.Z + m[12],
		m[1]*v.X + m[5]*v.Y + m[9]*v.Z + m[13],
		m[2]*v.X + m[6]*v.Y + m[10]*v.Z + m[14],
	}
}

// TransformDirection applies m to a direction, ignoring translation.
func (m Matrix4) TransformDirection(v Vector3) Vector3 {
	return Vector3{
		m[0]*v.X + m[4]*v.Y + m[8]*v.Z,
		m[1]*v.X + m[5]*v.Y + m[9]*v.Z,
		m[2]*v.X + m[6]*v.Y + m[10]*v.Z,
	}
}

// MulVector4 applies m to a homogeneous vector.
func (m Matrix4) MulVector4(v Vector4) Vector4 {
	return Vector4{
		m[0]*v.X + m[4]*v.Y + m[8]*v.Z + m[12]*v.W,
		m[1]*v.X + m[5]*v.Y + m[9]*v.Z + m[13]*v.W,
		m[2]*v.X + m[6]*v.Y + m[10]*v.Z + m[14]*v.W,
		m[3]*v.X + m[7]*v.Y + m[11]*v.Z + m[15]*v.W,
	}
}

// Transpose returns the transposed matrix.
func (m Matrix4) Transpose() Matrix4 {
	return Matrix4{
		m[0], m[4], m[8], m[12],
		m[1], m[5], m[9], m[13],
		m[2], m[6], m[10], m[14],
		m[3], m[7], m[11], m[15],
	}
}

// IsAffine reports whether m has no projective part: indices 3, 7 and 11 are
// zero and index 15 is one.
func (m Matrix4) IsAffine() bool {
	return m[3] == 0 && m[7] == 0 && m[11] == 0 && m[15] == 1
}

// IsIdentity reports whether m equals Identity exactly.
func (m Matrix4) IsIdentity() bool {
	return m == Identity()
}

// ExtractScale returns the lengths of the three basis rows.
func (m Matrix4) ExtractScale() Vector3 {
	return Vector3{
		Vector3{m[0], m[1], m[2]}.Length(),
		Vector3{m[4], m[5], m[6]}.Length(),
		Vector3{m[8], m[9], m[10]}.Length(),
	}
}

// ExtractRotation strips scale by dividing each basis row by its length and
// drops the translation. A zero-length row yields NaN components.
func (m Matrix4) ExtractRotation() Matrix4 {
	r := Identity()
	for row := 0; row < 3; row++ {
		b := Vector3{m[4*row], m[4*row+1], m[4*row+2]}.Normalize()
		r[4*row], r[4*row+1], r[4*row+2] = b.X, b.Y, b.Z
	}
	return r
}

// Equal reports whether every element of a equals the same element of b.
func Equal(a, b Matrix4) bool {
	return a == b
}

// LegacyEqual reproduces a historical equality operator that compared a[0]
// against b[1] on every iteration instead of a[i] against b[i]. Use it only
// where bit-for-bit compatibility with that behaviour is required.
func LegacyEqual(a, b Matrix4) bool {
	for range a {
		if a[0] != b[1] {
			return false
		}
	}
	return true
}

// ApproxEqual reports whether every element differs by at most tolerance.
func ApproxEqual(a, b Matrix4, tolerance float32) bool {
	for i := range a {
		if math32.Abs(a[i]-b[i]) > tolerance {
			return false
		}
	}
	return true
}

// String formats the matrix one row per line.
func (m Matrix4) String() string {
	var sb strings.Builder
	for row := 0; row < 4; row++ {
		if row > 0 {
			sb.WriteByte('\n')
		}
		fmt.Fprintf(&sb, "[%g %g %g %g]", m[4*row], m[4*row+1], m[4*row+2], m[4*row+3])
	}
	return sb.String()
}
