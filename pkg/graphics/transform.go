package graphics

// axisEpsilon is the axis length below which the Rotate variants leave the
// matrix unchanged.
const axisEpsilon = 0.000001

// TranslationMatrix returns a pure translation.
func TranslationMatrix(v Vector3) Matrix4 {
	return Matrix4{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		v.X, v.Y, v.Z, 1,
	}
}

// ScaleMatrix returns a pure scale.
func ScaleMatrix(v Vector3) Matrix4 {
	return Matrix4{
		v.X, 0, 0, 0,
		0, v.Y, 0, 0,
		0, 0, v.Z, 0,
		0, 0, 0, 1,
	}
}

func rotationX(rad float32) Matrix4 {
	s, c := sinCos(rad)
	return Matrix4{
		1, 0, 0, 0,
		0, c, s, 0,
		0, -s, c, 0,
		0, 0, 0, 1,
	}
}

func rotationY(rad float32) Matrix4 {
	s, c := sinCos(rad)
	return Matrix4{
		c, 0, -s, 0,
		0, 1, 0, 0,
		s, 0, c, 0,
		0, 0, 0, 1,
	}
}

func rotationZ(rad float32) Matrix4 {
	s, c := sinCos(rad)
	return Matrix4{
		c, s, 0, 0,
		-s, c, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}

// FromAxisAngle returns a rotation of rad radians about axis. The axis is
// normalized; a zero-length axis yields NaN components.
func FromAxisAngle(axis Vector3, rad float32) Matrix4 {
	a := axis.Normalize()
	x, y, z := a.X, a.Y, a.Z
	s, c := sinCos(rad)
	t := 1 - c
	return Matrix4{
		x*x*t + c, y*x*t + z*s, z*x*t - y*s, 0,
		x*y*t - z*s, y*y*t + c, z*y*t + x*s, 0,
		x*z*t + y*s, y*z*t - x*s, z*z*t + c, 0,
		0, 0, 0, 1,
	}
}

// FromQuaternion returns the rotation matrix of q. q is not normalized first.
func FromQuaternion(q Quaternion) Matrix4 {
	x2, y2, z2 := q.X+q.X, q.Y+q.Y, q.Z+q.Z
	xx, yx, yy := q.X*x2, q.Y*x2, q.Y*y2
	zx, zy, zz := q.Z*x2, q.Z*y2, q.Z*z2
	wx, wy, wz := q.W*x2, q.W*y2, q.W*z2
	return Matrix4{
		1 - yy - zz, yx + wz, zx - wy, 0,
		yx - wz, 1 - xx - zz, zy + wx, 0,
		zx + wy, zy - wx, 1 - xx - yy, 0,
		0, 0, 0, 1,
	}
}

// Translate returns m with a translation by v applied before it, so the
// translation happens in m's local frame.
func Translate(m Matrix4, v Vector3) Matrix4 {
	r := m
	for j := 0; j < 4; j++ {
		r[12+j] = m[j]*v.X + m[4+j]*v.Y + m[8+j]*v.Z + m[12+j]
	}
	return r
}

// Scale returns m with a per-axis scale applied before it. Rows 0, 1 and 2 are
// multiplied by v.X, v.Y and v.Z; the translation row is untouched.
func Scale(m Matrix4, v Vector3) Matrix4 {
	r := m
	for j := 0; j < 4; j++ {
		r[j] *= v.X
		r[4+j] *= v.Y
		r[8+j] *= v.Z
	}
	return r
}

// RotateX returns m with a rotation of rad radians about the local X axis
// applied before it.
func RotateX(m Matrix4, rad float32) Matrix4 {
	return Multiply(m, rotationX(rad))
}

// RotateY returns m with a rotation of rad radians about the local Y axis
// applied before it.
func RotateY(m Matrix4, rad float32) Matrix4 {
	return Multiply(m, rotationY(rad))
}

// RotateZ returns m with a rotation of rad radians about the local Z axis
// applied before it. RotateZ(Identity(), π/2) maps (1,0,0) to (0,1,0).
func RotateZ(m Matrix4, rad float32) Matrix4 {
	return Multiply(m, rotationZ(rad))
}

// Rotate returns m with a right-handed rotation of rad radians about axis
// applied before it, i.e. about the local origin and in the local frame.
// Model nodes use this variant.
func Rotate(m Matrix4, rad float32, axis Vector3) Matrix4 {
	if axis.Length() < axisEpsilon {
		return m
	}
	return Multiply(m, FromAxisAngle(axis, rad))
}

// Rotate2 returns m followed by a right-handed rotation of rad radians about
// axis through the world origin. Unlike Rotate, the translation of m is
// rotated as well.
func Rotate2(m Matrix4, rad float32, axis Vector3) Matrix4 {
	if axis.Length() < axisEpsilon {
		return m
	}
	return Multiply(FromAxisAngle(axis, rad), m)
}

// Rotate3 returns m with a left-handed rotation of rad radians about axis
// applied before it. For the same arguments it turns the opposite way to
// Rotate; map objects stored in the left-handed file space use it.
func Rotate3(m Matrix4, rad float32, axis Vector3) Matrix4 {
	if axis.Length() < axisEpsilon {
		return m
	}
	return Multiply(m, FromAxisAngle(axis, rad).Transpose())
}

// RotateQuaternion returns m with the rotation of q applied before it.
func RotateQuaternion(m Matrix4, q Quaternion) Matrix4 {
	return Multiply(m, FromQuaternion(q))
}
