package graphics

import (
	"fmt"
	"io"
)

// Matrix3 is a 3x3 linear transform (rotation and scale, no translation) in
// row-major order: element [row,col] is at index 3*row+col. Vectors follow the
// Matrix4 convention, x' = m[0]*x + m[3]*y + m[6]*z.
type Matrix3 [9]float32

// Matrix3Size is the encoded size of a Matrix3 in bytes.
const Matrix3Size = 36

// Identity3 returns the 3x3 identity matrix.
func Identity3() Matrix3 {
	return Matrix3{
		1, 0, 0,
		0, 1, 0,
		0, 0, 1,
	}
}

// Matrix3FromRows builds a matrix from three rows.
func Matrix3FromRows(r0, r1, r2 Vector3) Matrix3 {
	return Matrix3{
		r0.X, r0.Y, r0.Z,
		r1.X, r1.Y, r1.Z,
		r2.X, r2.Y, r2.Z,
	}
}

// Matrix3FromMatrix4 returns the upper-left 3x3 block of m.
func Matrix3FromMatrix4(m Matrix4) Matrix3 {
	return Matrix3{
		m[0], m[1], m[2],
		m[4], m[5], m[6],
		m[8], m[9], m[10],
	}
}

// Matrix3FromBytes decodes nine little-endian float32 values from buf at offset.
func Matrix3FromBytes(buf []byte, offset int) (Matrix3, error) {
	f, err := float32sFromBytes("Matrix3", buf, offset, 9)
	if err != nil {
		return Matrix3{}, err
	}
	return Matrix3(f), nil
}

// ReadMatrix3 reads a matrix from a stream.
func ReadMatrix3(r io.Reader) (Matrix3, error) {
	f, err := readFloat32s("Matrix3", r, 9)
	if err != nil {
		return Matrix3{}, err
	}
	return Matrix3(f), nil
}

// Write encodes the matrix to w.
func (m Matrix3) Write(w io.Writer) error {
	return writeFloat32s(w, m[:]...)
}

// AppendBytes appends the encoded matrix to b.
func (m Matrix3) AppendBytes(b []byte) []byte {
	return appendFloat32s(b, m[:]...)
}

// Get returns element [row,col].
func (m Matrix3) Get(row, col int) (float32, error) {
	if err := checkCell("Matrix3", row, col, 3); err != nil {
		return 0, err
	}
	return m[3*row+col], nil
}

// Set assigns element [row,col].
func (m *Matrix3) Set(row, col int, v float32) error {
	if err := checkCell("Matrix3", row, col, 3); err != nil {
		return err
	}
	m[3*row+col] = v
	return nil
}

// Row returns row i.
func (m Matrix3) Row(i int) Vector3 {
	return Vector3{m[3*i], m[3*i+1], m[3*i+2]}
}

// Multiply3 returns the transform applying m2 first and m1 second, with the
// same index arithmetic as Multiply.
func Multiply3(m1, m2 Matrix3) Matrix3 {
	var r Matrix3
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			r[3*i+j] = m2[3*i]*m1[j] + m2[3*i+1]*m1[3+j] + m2[3*i+2]*m1[6+j]
		}
	}
	return r
}

// TransformVector applies m to v.
func (m Matrix3) TransformVector(v Vector3) Vector3 {
	return Vector3{
		m[0]*v.X + m[3]*v.Y + m[6]*v.Z,
		m[1]*v.X + m[4]*v.Y + m[7]*v.Z,
		m[2]*v.X + m[5]*v.Y + m[8]*v.Z,
	}
}

// Transpose returns the transposed matrix.
func (m Matrix3) Transpose() Matrix3 {
	return Matrix3{
		m[0], m[3], m[6],
		m[1], m[4], m[7],
		m[2], m[5], m[8],
	}
}

// Determinant returns the determinant.
func (m Matrix3) Determinant() float32 {
	return float32(m.determinant64())
}

func (m Matrix3) determinant64() float64 {
	a := func(i int) float64 { return float64(m[i]) }
	return a(0)*(a(4)*a(8)-a(5)*a(7)) -
		a(1)*(a(3)*a(8)-a(5)*a(6)) +
		a(2)*(a(3)*a(7)-a(4)*a(6))
}

// Invert returns the inverse and true, or m unchanged and false when the
// determinant is within DeterminantEpsilon of zero.
func (m Matrix3) Invert() (Matrix3, bool) {
	det := m.determinant64()
	if isZero(det) {
		return m, false
	}
	a := func(i int) float64 { return float64(m[i]) }
	rcp := 1 / det
	return Matrix3{
		float32((a(4)*a(8) - a(5)*a(7)) * rcp),
		float32((a(2)*a(7) - a(1)*a(8)) * rcp),
		float32((a(1)*a(5) - a(2)*a(4)) * rcp),
		float32((a(5)*a(6) - a(3)*a(8)) * rcp),
		float32((a(0)*a(8) - a(2)*a(6)) * rcp),
		float32((a(2)*a(3) - a(0)*a(5)) * rcp),
		float32((a(3)*a(7) - a(4)*a(6)) * rcp),
		float32((a(1)*a(6) - a(0)*a(7)) * rcp),
		float32((a(0)*a(4) - a(1)*a(3)) * rcp),
	}, true
}

// ToMatrix4 embeds m in the upper-left block of an identity Matrix4.
func (m Matrix3) ToMatrix4() Matrix4 {
	return Matrix4{
		m[0], m[1], m[2], 0,
		m[3], m[4], m[5], 0,
		m[6], m[7], m[8], 0,
		0, 0, 0, 1,
	}
}

func checkCell(kind string, row, col, n int) error {
	if row < 0 || row >= n {
		return indexError(kind+" row", row, n)
	}
	if col < 0 || col >= n {
		return indexError(kind+" column", col, n)
	}
	return nil
}

// String formats the matrix one row per line.
func (m Matrix3) String() string {
	return fmt.Sprintf("[%g %g %g]\n[%g %g %g]\n[%g %g %g]",
		m[0], m[1], m[2], m[3], m[4], m[5], m[6], m[7], m[8])
}
