package formats

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/Faultbox/grf-graphics/pkg/encoding"
	"github.com/Faultbox/grf-graphics/pkg/graphics"
)

// fieldReader reads little-endian fields and keeps the first error.
// Failures are reported against the owning format's sentinel errors.
type fieldReader struct {
	r   *bytes.Reader
	err error

	truncated error
	invalid   error
}

func newFieldReader(data []byte, truncated, invalid error) *fieldReader {
	return &fieldReader{r: bytes.NewReader(data), truncated: truncated, invalid: invalid}
}

func (p *fieldReader) read(v any) {
	if p.err != nil {
		return
	}
	p.err = binary.Read(p.r, binary.LittleEndian, v)
}

func (p *fieldReader) u8() uint8 {
	var v uint8
	p.read(&v)
	return v
}

func (p *fieldReader) i32() int32 {
	var v int32
	p.read(&v)
	return v
}

func (p *fieldReader) f32() float32 {
	var v float32
	p.read(&v)
	return v
}

func (p *fieldReader) skip(n int64) {
	if p.err != nil {
		return
	}
	if int64(p.r.Len()) < n {
		p.err = io.ErrUnexpectedEOF
		return
	}
	_, p.err = p.r.Seek(n, io.SeekCurrent)
}

// name reads a fixed-width, NUL-padded EUC-KR string.
func (p *fieldReader) name(size int) string {
	if p.err != nil {
		return ""
	}
	buf := make([]byte, size)
	if _, err := io.ReadFull(p.r, buf); err != nil {
		p.err = err
		return ""
	}
	return encoding.FixedStringToUTF8(buf)
}

func (p *fieldReader) vector3() graphics.Vector3 {
	if p.err != nil {
		return graphics.Vector3{}
	}
	var v graphics.Vector3
	v, p.err = graphics.ReadVector3(p.r)
	return v
}

func (p *fieldReader) matrix3() graphics.Matrix3 {
	if p.err != nil {
		return graphics.Matrix3{}
	}
	var m graphics.Matrix3
	m, p.err = graphics.ReadMatrix3(p.r)
	return m
}

func (p *fieldReader) quaternion() graphics.Quaternion {
	if p.err != nil {
		return graphics.Quaternion{}
	}
	var q graphics.Quaternion
	q, p.err = graphics.ReadQuaternion(p.r)
	return q
}

func (p *fieldReader) textureVertex(withColor bool) graphics.TextureVertex {
	if p.err != nil {
		return graphics.TextureVertex{}
	}
	var tv graphics.TextureVertex
	if withColor {
		tv, p.err = graphics.ReadTextureVertex(p.r)
	} else {
		tv, p.err = graphics.ReadTextureVertexUV(p.r, graphics.ColorWhite)
	}
	return tv
}

// count reads an element count and rejects negative or oversized values.
func (p *fieldReader) count(kind string, limit int32) int {
	n := p.i32()
	if p.err == nil && (n < 0 || n > limit) {
		p.err = fmt.Errorf("%w: %d %s", p.invalid, n, kind)
	}
	if p.err != nil {
		return 0
	}
	return int(n)
}

// failure maps the sticky error to the format's sentinel errors.
func (p *fieldReader) failure(context string) error {
	if p.err == nil {
		return nil
	}
	if errors.Is(p.err, p.invalid) {
		return fmt.Errorf("%s: %w", context, p.err)
	}
	return fmt.Errorf("%w: %s: %w", p.truncated, context, p.err)
}
