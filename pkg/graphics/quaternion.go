package graphics

import (
	"io"
	"math"

	"github.com/chewxy/math32"
)

// Quaternion represents a rotation w + xi + yj + zk.
type Quaternion struct {
	X, Y, Z, W float32
}

// QuaternionSize is the encoded size of a Quaternion in bytes.
const QuaternionSize = 16

const (
	// normalizedTolerance bounds |x²+y²+z²+w² - 1| for IsNormalized.
	normalizedTolerance = 0.0005
	// eulerSingularity is the |sin(pitch)/2| above which ToEulerAngles takes the gimbal-lock branch.
	eulerSingularity = 0.4999995
	// slerpLinearThreshold is the cos(half angle) above which Slerp blends linearly.
	slerpLinearThreshold = 0.999999
	// axisAngleEpsilon is the smallest sin(half angle) ToAxisAngle divides by.
	axisAngleEpsilon = 0.0001
)

// QuaternionIdentity returns the identity rotation (0, 0, 0, 1).
func QuaternionIdentity() Quaternion {
	return Quaternion{0, 0, 0, 1}
}

// NewQuaternion creates a quaternion from its components.
func NewQuaternion(x, y, z, w float32) Quaternion {
	return Quaternion{x, y, z, w}
}

// QuaternionFromAxisAngle creates a rotation of angle degrees about axis.
// The axis is normalized; a zero-length axis returns ErrZeroAxis.
func QuaternionFromAxisAngle(axis Vector3, degrees float32) (Quaternion, error) {
	if axis.LengthSquared() == 0 {
		return Quaternion{}, ErrZeroAxis
	}
	axis = axis.Normalize()
	half := DegreesToRadians(degrees) / 2
	s := math32.Sin(half)
	return Quaternion{axis.X * s, axis.Y * s, axis.Z * s, math32.Cos(half)}, nil
}

// QuaternionFromEuler creates a rotation from Euler angles in radians, applied
// as X, then Y, then Z about the rotating frame (q = qx * qy * qz).
func QuaternionFromEuler(x, y, z float32) Quaternion {
	c1, s1 := math32.Cos(x/2), math32.Sin(x/2)
	c2, s2 := math32.Cos(y/2), math32.Sin(y/2)
	c3, s3 := math32.Cos(z/2), math32.Sin(z/2)
	return Quaternion{
		X: s1*c2*c3 + c1*s2*s3,
		Y: c1*s2*c3 - s1*c2*s3,
		Z: c1*c2*s3 + s1*s2*c3,
		W: c1*c2*c3 - s1*s2*s3,
	}
}

// QuaternionFromEulerVector is QuaternionFromEuler(v.X, v.Y, v.Z).
func QuaternionFromEulerVector(v Vector3) Quaternion {
	return QuaternionFromEuler(v.X, v.Y, v.Z)
}

// QuaternionFromBytes decodes X, Y, Z, W from buf at offset.
func QuaternionFromBytes(buf []byte, offset int) (Quaternion, error) {
	f, err := float32sFromBytes("Quaternion", buf, offset, 4)
	if err != nil {
		return Quaternion{}, err
	}
	return Quaternion{f[0], f[1], f[2], f[3]}, nil
}

// ReadQuaternion reads a quaternion from a stream.
func ReadQuaternion(r io.Reader) (Quaternion, error) {
	f, err := readFloat32s("Quaternion", r, 4)
	if err != nil {
		return Quaternion{}, err
	}
	return Quaternion{f[0], f[1], f[2], f[3]}, nil
}

// Write encodes the quaternion to w.
func (q Quaternion) Write(w io.Writer) error {
	return writeFloat32s(w, q.X, q.Y, q.Z, q.W)
}

// AppendBytes appends the encoded quaternion to b.
func (q Quaternion) AppendBytes(b []byte) []byte {
	return appendFloat32s(b, q.X, q.Y, q.Z, q.W)
}

// Xyz returns the vector part.
func (q Quaternion) Xyz() Vector3 {
	return Vector3{q.X, q.Y, q.Z}
}

// Dot returns the four-component dot product.
func (q Quaternion) Dot(other Quaternion) float32 {
	return q.X*other.X + q.Y*other.Y + q.Z*other.Z + q.W*other.W
}

// LengthSquared returns x²+y²+z²+w².
func (q Quaternion) LengthSquared() float32 {
	return q.Dot(q)
}

// Length returns the norm.
func (q Quaternion) Length() float32 {
	return math32.Sqrt(q.LengthSquared())
}

// IsNormalized reports whether the squared length is within 0.0005 of one.
func (q Quaternion) IsNormalized() bool {
	return math32.Abs(q.LengthSquared()-1) < normalizedTolerance
}

// Normalize divides by the length. A zero quaternion yields NaN components.
func (q Quaternion) Normalize() Quaternion {
	l := q.Length()
	return Quaternion{q.X / l, q.Y / l, q.Z / l, q.W / l}
}

// Conjugate negates the vector part.
func (q Quaternion) Conjugate() Quaternion {
	return Quaternion{-q.X, -q.Y, -q.Z, q.W}
}

// Invert returns the conjugate divided by the squared length. A zero
// quaternion yields NaN components.
func (q Quaternion) Invert() Quaternion {
	l := q.LengthSquared()
	c := q.Conjugate()
	return Quaternion{c.X / l, c.Y / l, c.Z / l, c.W / l}
}

// Mul returns the Hamilton product q * other. Applied to a vector, the result
// rotates by other first and q second.
func (q Quaternion) Mul(other Quaternion) Quaternion {
	v := other.Xyz().Scale(q.W).Add(q.Xyz().Scale(other.W)).Add(q.Xyz().Cross(other.Xyz()))
	return Quaternion{v.X, v.Y, v.Z, q.W*other.W - q.Xyz().Dot(other.Xyz())}
}

// Rotate rotates v by the (unit) quaternion.
func (q Quaternion) Rotate(v Vector3) Vector3 {
	u := q.Xyz()
	t := u.Cross(v).Scale(2)
	return v.Add(t.Scale(q.W)).Add(u.Cross(t))
}

// ToAxisAngle returns the rotation axis and angle in degrees. When the rotation
// is close to zero the axis is undefined and the X axis is returned.
func (q Quaternion) ToAxisAngle() (Vector3, float32) {
	if math32.Abs(q.W) > 1 {
		q = q.Normalize()
	}
	angle := RadiansToDegrees(2 * math32.Acos(q.W))
	den := math32.Sqrt(1 - q.W*q.W)
	if den > axisAngleEpsilon {
		return q.Xyz().DivScalar(den), angle
	}
	return Vector3UnitX, angle
}

// ToEulerAngles returns the X, Y, Z Euler angles in radians matching
// QuaternionFromEuler. Near the poles X is fixed at zero and the whole
// rotation is carried by Z.
func (q Quaternion) ToEulerAngles() Vector3 {
	sqw, sqx, sqy, sqz := q.W*q.W, q.X*q.X, q.Y*q.Y, q.Z*q.Z
	unit := sqx + sqy + sqz + sqw
	test := q.X*q.Z + q.W*q.Y

	if test > eulerSingularity*unit {
		return Vector3{0, math.Pi / 2, 2 * math32.Atan2(q.X, q.W)}
	}
	if test < -eulerSingularity*unit {
		return Vector3{0, -math.Pi / 2, -2 * math32.Atan2(q.X, q.W)}
	}
	return Vector3{
		X: math32.Atan2(2*(q.W*q.X-q.Y*q.Z), sqw-sqx-sqy+sqz),
		Y: math32.Asin(2 * test / unit),
		Z: math32.Atan2(2*(q.W*q.Z-q.X*q.Y), sqw+sqx-sqy-sqz),
	}
}

// Slerp interpolates along the shortest arc from a to b.
//
// A zero-length endpoint yields the other endpoint (identity when both are
// zero). Equal or opposite endpoints return a. Above a cosine of 0.999999 the
// endpoints are blended linearly.
func Slerp(a, b Quaternion, t float32) Quaternion {
	if a.LengthSquared() == 0 {
		if b.LengthSquared() == 0 {
			return QuaternionIdentity()
		}
		return b
	}
	if b.LengthSquared() == 0 {
		return a
	}

	cosHalf := a.Dot(b)
	if cosHalf >= 1 || cosHalf <= -1 {
		return a
	}
	if cosHalf < 0 {
		b = Quaternion{-b.X, -b.Y, -b.Z, -b.W}
		cosHalf = -cosHalf
	}

	var blendA, blendB float32
	if cosHalf < slerpLinearThreshold {
		half := math32.Acos(cosHalf)
		inv := 1 / math32.Sin(half)
		blendA = math32.Sin(half*(1-t)) * inv
		blendB = math32.Sin(half*t) * inv
	} else {
		blendA = 1 - t
		blendB = t
	}

	r := Quaternion{
		blendA*a.X + blendB*b.X,
		blendA*a.Y + blendB*b.Y,
		blendA*a.Z + blendB*b.Z,
		blendA*a.W + blendB*b.W,
	}
	if r.LengthSquared() > 0 {
		return r.Normalize()
	}
	return QuaternionIdentity()
}
