package graphics

// Determinant returns the determinant of m.
func (m Matrix4) Determinant() float32 {
	return float32(newCofactors(m).det)
}

// Invert returns the inverse of m and true. When the determinant is within
// DeterminantEpsilon of zero it returns m unchanged and false; the caller
// decides what to do with a singular transform.
func (m Matrix4) Invert() (Matrix4, bool) {
	return m.invertCore()
}

// invertCore dispatches to the affine fast path when m has no projective part.
func (m Matrix4) invertCore() (Matrix4, bool) {
	if m.IsIdentity() {
		return m, true
	}
	if m.IsAffine() {
		return m.normalizedAffineInvert()
	}
	return m.invertGeneral()
}

// normalizedAffineInvert inverts the upper 3x3 block and maps the translation
// through it: for p' = p·A + t the inverse is p = p'·A⁻¹ - t·A⁻¹.
func (m Matrix4) normalizedAffineInvert() (Matrix4, bool) {
	a, ok := Matrix3FromMatrix4(m).Invert()
	if !ok {
		return m, false
	}
	t := m.Offset()
	r := a.ToMatrix4()
	for c := 0; c < 3; c++ {
		r[12+c] = -(t.X*a[c] + t.Y*a[3+c] + t.Z*a[6+c])
	}
	return r, true
}

// cofactors holds the 2x2 sub-determinants of a 4x4 matrix, computed in
// float64 so the singularity test sees the full precision.
type cofactors struct {
	a   [16]float64
	b   [12]float64
	det float64
}

func newCofactors(m Matrix4) cofactors {
	var c cofactors
	for i, v := range m {
		c.a[i] = float64(v)
	}
	a := &c.a
	c.b = [12]float64{
		a[0]*a[5] - a[1]*a[4],
		a[0]*a[6] - a[2]*a[4],
		a[0]*a[7] - a[3]*a[4],
		a[1]*a[6] - a[2]*a[5],
		a[1]*a[7] - a[3]*a[5],
		a[2]*a[7] - a[3]*a[6],
		a[8]*a[13] - a[9]*a[12],
		a[8]*a[14] - a[10]*a[12],
		a[8]*a[15] - a[11]*a[12],
		a[9]*a[14] - a[10]*a[13],
		a[9]*a[15] - a[11]*a[13],
		a[10]*a[15] - a[11]*a[14],
	}
	b := &c.b
	c.det = b[0]*b[11] - b[1]*b[10] + b[2]*b[9] + b[3]*b[8] - b[4]*b[7] + b[5]*b[6]
	return c
}

// invertGeneral computes the adjugate divided by the determinant.
func (m Matrix4) invertGeneral() (Matrix4, bool) {
	c := newCofactors(m)
	if isZero(c.det) {
		return m, false
	}
	a, b := &c.a, &c.b
	rcp := 1 / c.det
	adj := [16]float64{
		a[5]*b[11] - a[6]*b[10] + a[7]*b[9],
		a[2]*b[10] - a[1]*b[11] - a[3]*b[9],
		a[13]*b[5] - a[14]*b[4] + a[15]*b[3],
		a[10]*b[4] - a[9]*b[5] - a[11]*b[3],
		a[6]*b[8] - a[4]*b[11] - a[7]*b[7],
		a[0]*b[11] - a[2]*b[8] + a[3]*b[7],
		a[14]*b[2] - a[12]*b[5] - a[15]*b[1],
		a[8]*b[5] - a[10]*b[2] + a[11]*b[1],
		a[4]*b[10] - a[5]*b[8] + a[7]*b[6],
		a[1]*b[8] - a[0]*b[10] - a[3]*b[6],
		a[12]*b[4] - a[13]*b[2] + a[15]*b[0],
		a[9]*b[2] - a[8]*b[4] - a[11]*b[0],
		a[5]*b[7] - a[4]*b[9] - a[6]*b[6],
		a[0]*b[9] - a[1]*b[7] + a[2]*b[6],
		a[13]*b[1] - a[12]*b[3] - a[14]*b[0],
		a[8]*b[3] - a[9]*b[1] + a[10]*b[0],
	}
	var r Matrix4
	for i, v := range adj {
		r[i] = float32(v * rcp)
	}
	return r, true
}
