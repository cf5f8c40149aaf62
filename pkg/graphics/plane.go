package graphics

// Plane is a quad in the XY plane used as a flat billboard primitive.
// Corners are stored counter-clockwise starting at the lower left.
type Plane struct {
	Corners [4]Vector3
}

// NewPlane builds a width by height quad whose lower-left corner sits at
// (-(width+1)/2, -(height+1)/2).
func NewPlane(width, height float32) Plane {
	x0 := -(width + 1) / 2
	y0 := -(height + 1) / 2
	return Plane{Corners: [4]Vector3{
		{x0, y0, 0},
		{x0 + width, y0, 0},
		{x0 + width, y0 + height, 0},
		{x0, y0 + height, 0},
	}}
}

// Translate moves every corner by v.
func (p *Plane) Translate(v Vector3) {
	for i := range p.Corners {
		p.Corners[i] = p.Corners[i].Add(v)
	}
}

// Scale scales every corner about the origin.
func (p *Plane) Scale(v Vector3) {
	for i := range p.Corners {
		p.Corners[i] = p.Corners[i].Mul(v)
	}
}

// RotateZ rotates the corners about the origin by degrees.
func (p *Plane) RotateZ(degrees float32) {
	s, c := sinCos(DegreesToRadians(degrees))
	for i, v := range p.Corners {
		p.Corners[i] = Vector3{
			X: v.X*c - v.Y*s,
			Y: v.X*s + v.Y*c,
			Z: v.Z,
		}
	}
}

// Transform applies m to every corner.
func (p *Plane) Transform(m Matrix4) {
	for i := range p.Corners {
		p.Corners[i] = m.TransformPoint(p.Corners[i])
	}
}

// Center returns the mean of the four corners.
func (p Plane) Center() Vector3 {
	var sum Vector3
	for _, v := range p.Corners {
		sum = sum.Add(v)
	}
	return sum.DivScalar(4)
}

// Bounds returns the axis-aligned box around the corners.
func (p Plane) Bounds() BoundingBox {
	return BoundingBoxFromPoints(p.Corners[:]...)
}
