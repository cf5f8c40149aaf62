package graphics

import (
	"io"

	"github.com/chewxy/math32"
)

// BoundingBox is the axis-aligned extent of a point set.
//
// Once recalculated, Max[i] >= Min[i], Range[i] == (Max[i]-Min[i])/2 and
// Center[i] == Min[i]+Range[i]. Offset is the midpoint (Max+Min)/2 computed
// by a vertex scan; Union does not recompute it.
type BoundingBox struct {
	Max    Vector3
	Min    Vector3
	Offset Vector3
	Range  Vector3
	Center Vector3
}

// BoundingBoxSize is the encoded size of a BoundingBox (Max, Min, Offset, Range).
const BoundingBoxSize = 4 * Vector3Size

// NewBoundingBox returns an empty box: Max holds the most negative float32 and
// Min the most positive, so the first included point or union replaces them.
func NewBoundingBox() BoundingBox {
	return BoundingBox{
		Max: Vector3{-math32.MaxFloat32, -math32.MaxFloat32, -math32.MaxFloat32},
		Min: Vector3{math32.MaxFloat32, math32.MaxFloat32, math32.MaxFloat32},
	}
}

// BoundingBoxFromPoints scans points and returns the recalculated box.
func BoundingBoxFromPoints(points ...Vector3) BoundingBox {
	b := NewBoundingBox()
	for _, p := range points {
		b.Include(p)
	}
	b.Recalculate()
	return b
}

// BoundingBoxFromBytes decodes Max, Min, Offset and Range (48 bytes) from buf
// at offset. Center is derived as Min+Range.
func BoundingBoxFromBytes(buf []byte, offset int) (BoundingBox, error) {
	if offset < 0 || offset > len(buf) || len(buf)-offset < BoundingBoxSize {
		return BoundingBox{}, shortBufferError("BoundingBox", BoundingBoxSize, offset, len(buf))
	}
	var b BoundingBox
	fields := []*Vector3{&b.Max, &b.Min, &b.Offset, &b.Range}
	for _, f := range fields {
		v, err := Vector3FromBytes(buf, offset)
		if err != nil {
			return BoundingBox{}, err
		}
		*f = v
		offset += Vector3Size
	}
	b.Center = b.Min.Add(b.Range)
	return b, nil
}

// ReadBoundingBox reads Max, Min, Offset and Range from a stream.
func ReadBoundingBox(r io.Reader) (BoundingBox, error) {
	f, err := readFloat32s("BoundingBox", r, 12)
	if err != nil {
		return BoundingBox{}, err
	}
	b := BoundingBox{
		Max:    Vector3{f[0], f[1], f[2]},
		Min:    Vector3{f[3], f[4], f[5]},
		Offset: Vector3{f[6], f[7], f[8]},
		Range:  Vector3{f[9], f[10], f[11]},
	}
	b.Center = b.Min.Add(b.Range)
	return b, nil
}

// Write encodes Max, Min, Offset and Range to w.
func (b BoundingBox) Write(w io.Writer) error {
	_, err := w.Write(b.AppendBytes(make([]byte, 0, BoundingBoxSize)))
	return err
}

// AppendBytes appends Max, Min, Offset and Range to buf.
func (b BoundingBox) AppendBytes(buf []byte) []byte {
	buf = b.Max.AppendBytes(buf)
	buf = b.Min.AppendBytes(buf)
	buf = b.Offset.AppendBytes(buf)
	return b.Range.AppendBytes(buf)
}

// Include widens Max and Min to contain v. Call Recalculate after the scan.
func (b *BoundingBox) Include(v Vector3) {
	b.Max = b.Max.Max(v)
	b.Min = b.Min.Min(v)
}

// Recalculate derives Offset, Range and Center from Max and Min.
func (b *BoundingBox) Recalculate() {
	b.Offset = b.Max.Add(b.Min).Scale(0.5)
	b.Range = b.Max.Sub(b.Min).Scale(0.5)
	b.Center = b.Min.Add(b.Range)
}

// Union returns the box containing a and b. Range and Center are recomputed
// from the merged Max and Min; Offset keeps its zero default.
func Union(a, b BoundingBox) BoundingBox {
	r := NewBoundingBox()
	r.Max = a.Max.Max(b.Max)
	r.Min = a.Min.Min(b.Min)
	r.Range = r.Max.Sub(r.Min).Scale(0.5)
	r.Center = r.Min.Add(r.Range)
	return r
}

// Multiply transforms all five fields by m as points, Range and Offset included.
func (b BoundingBox) Multiply(m Matrix4) BoundingBox {
	return BoundingBox{
		Max:    m.TransformPoint(b.Max),
		Min:    m.TransformPoint(b.Min),
		Offset: m.TransformPoint(b.Offset),
		Range:  m.TransformPoint(b.Range),
		Center: m.TransformPoint(b.Center),
	}
}

// BaseCenter moves the box so X and Z are centred on the origin and the lowest
// Y sits at zero: Center is subtracted first, then Y is shifted by -Min.Y.
func (b BoundingBox) BaseCenter() BoundingBox {
	c := b.Center
	b.Max = b.Max.Sub(c)
	b.Min = b.Min.Sub(c)
	b.Offset = b.Offset.Sub(c)
	b.Center = Vector3{}

	ground := Vector3{0, -b.Min.Y, 0}
	b.Max = b.Max.Add(ground)
	b.Min = b.Min.Add(ground)
	b.Offset = b.Offset.Add(ground)
	b.Center = b.Center.Add(ground)
	return b
}

// ReverseY negates the Y component of all five fields.
func (b BoundingBox) ReverseY() BoundingBox {
	flip := func(v Vector3) Vector3 { return Vector3{v.X, -v.Y, v.Z} }
	return BoundingBox{
		Max:    flip(b.Max),
		Min:    flip(b.Min),
		Offset: flip(b.Offset),
		Range:  flip(b.Range),
		Center: flip(b.Center),
	}
}

// Size returns Max-Min.
func (b BoundingBox) Size() Vector3 {
	return b.Max.Sub(b.Min)
}

// IsEmpty reports whether nothing was ever included (Max below Min on any axis).
func (b BoundingBox) IsEmpty() bool {
	return b.Max.X < b.Min.X || b.Max.Y < b.Min.Y || b.Max.Z < b.Min.Z
}
