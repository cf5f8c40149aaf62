package graphics

import (
	"github.com/go-gl/mathgl/mgl32"
	"golang.org/x/image/math/f32"
)

// mgl32 stores matrices column-major with column vectors, which puts the
// translation at indices 12..14 exactly like Matrix4. Conversions are plain
// copies and Multiply(a, b) equals a.Mgl32().Mul4(b.Mgl32()).

// Mgl32 converts v to an mgl32 vector.
func (v Vector2) Mgl32() mgl32.Vec2 { return mgl32.Vec2{v.X, v.Y} }

// Mgl32 converts v to an mgl32 vector.
func (v Vector3) Mgl32() mgl32.Vec3 { return mgl32.Vec3{v.X, v.Y, v.Z} }

// Mgl32 converts v to an mgl32 vector.
func (v Vector4) Mgl32() mgl32.Vec4 { return mgl32.Vec4{v.X, v.Y, v.Z, v.W} }

// Vector2FromMgl32 converts an mgl32 vector.
func Vector2FromMgl32(v mgl32.Vec2) Vector2 { return Vector2{v[0], v[1]} }

// Vector3FromMgl32 converts an mgl32 vector.
func Vector3FromMgl32(v mgl32.Vec3) Vector3 { return Vector3{v[0], v[1], v[2]} }

// Vector4FromMgl32 converts an mgl32 vector.
func Vector4FromMgl32(v mgl32.Vec4) Vector4 { return Vector4{v[0], v[1], v[2], v[3]} }

// Mgl32 converts m to an mgl32 matrix.
func (m Matrix4) Mgl32() mgl32.Mat4 { return mgl32.Mat4(m) }

// Matrix4FromMgl32 converts an mgl32 matrix.
func Matrix4FromMgl32(m mgl32.Mat4) Matrix4 { return Matrix4(m) }

// Mgl32 converts m to an mgl32 matrix.
func (m Matrix3) Mgl32() mgl32.Mat3 { return mgl32.Mat3(m) }

// Matrix3FromMgl32 converts an mgl32 matrix.
func Matrix3FromMgl32(m mgl32.Mat3) Matrix3 { return Matrix3(m) }

// Mgl32 converts q to an mgl32 quaternion.
func (q Quaternion) Mgl32() mgl32.Quat {
	return mgl32.Quat{W: q.W, V: mgl32.Vec3{q.X, q.Y, q.Z}}
}

// QuaternionFromMgl32 converts an mgl32 quaternion.
func QuaternionFromMgl32(q mgl32.Quat) Quaternion {
	return Quaternion{X: q.V[0], Y: q.V[1], Z: q.V[2], W: q.W}
}

// F32 returns the vector as an x/image f32 vector.
func (v Vector3) F32() f32.Vec3 { return f32.Vec3{v.X, v.Y, v.Z} }

// F32 returns the vector as an x/image f32 vector.
func (v Vector4) F32() f32.Vec4 { return f32.Vec4{v.X, v.Y, v.Z, v.W} }

// F32 returns the storage as an x/image f32 matrix. The layout is copied
// as is, so the translation stays at indices 12..14. x/image reads m[4*r+c]
// as row r of a column-vector transform, which makes the result the
// transpose of m's transform; call Transpose first to hand x/image the
// same transform.
func (m Matrix4) F32() f32.Mat4 { return f32.Mat4(m) }

// F32 returns the storage as an x/image f32 matrix. Like Matrix4.F32 the
// copy is x/image's transpose of m.
func (m Matrix3) F32() f32.Mat3 { return f32.Mat3(m) }
