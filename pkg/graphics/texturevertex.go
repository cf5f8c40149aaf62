package graphics

import (
	"encoding/binary"
	"io"
	"math"
)

// TextureVertex is a UV coordinate with a packed per-vertex color.
type TextureVertex struct {
	Color uint32 // RGBA bytes in file order, little-endian packed
	U, V  float32
}

// Encoded sizes of the two TextureVertex layouts.
const (
	TextureVertexSize   = 12 // [color uint32][U float32][V float32]
	TextureVertexUVSize = 8  // [U float32][V float32]
)

// ColorWhite is the color given to texture vertices of formats that store none.
const ColorWhite uint32 = 0xFFFFFFFF

// TextureVertexFromBytes decodes the 12-byte layout at offset.
func TextureVertexFromBytes(buf []byte, offset int) (TextureVertex, error) {
	if offset < 0 || offset > len(buf) || len(buf)-offset < TextureVertexSize {
		return TextureVertex{}, shortBufferError("TextureVertex", TextureVertexSize, offset, len(buf))
	}
	return TextureVertex{
		Color: binary.LittleEndian.Uint32(buf[offset:]),
		U:     math.Float32frombits(binary.LittleEndian.Uint32(buf[offset+4:])),
		V:     math.Float32frombits(binary.LittleEndian.Uint32(buf[offset+8:])),
	}, nil
}

// TextureVertexUVFromBytes decodes the 8-byte layout at offset, taking the
// color from the caller.
func TextureVertexUVFromBytes(buf []byte, offset int, color uint32) (TextureVertex, error) {
	f, err := float32sFromBytes("TextureVertex", buf, offset, 2)
	if err != nil {
		return TextureVertex{}, err
	}
	return TextureVertex{Color: color, U: f[0], V: f[1]}, nil
}

// ReadTextureVertex reads the 12-byte layout from a stream.
func ReadTextureVertex(r io.Reader) (TextureVertex, error) {
	buf := make([]byte, TextureVertexSize)
	if _, err := io.ReadFull(r, buf); err != nil {
		return TextureVertex{}, shortReadError("TextureVertex", err)
	}
	return TextureVertexFromBytes(buf, 0)
}

// ReadTextureVertexUV reads the 8-byte layout from a stream.
func ReadTextureVertexUV(r io.Reader, color uint32) (TextureVertex, error) {
	f, err := readFloat32s("TextureVertex", r, 2)
	if err != nil {
		return TextureVertex{}, err
	}
	return TextureVertex{Color: color, U: f[0], V: f[1]}, nil
}

// Write encodes the 12-byte layout.
func (t TextureVertex) Write(w io.Writer) error {
	_, err := w.Write(t.AppendBytes(make([]byte, 0, TextureVertexSize)))
	return err
}

// WriteUV encodes the 8-byte layout, dropping the color.
func (t TextureVertex) WriteUV(w io.Writer) error {
	return writeFloat32s(w, t.U, t.V)
}

// AppendBytes appends the 12-byte layout to b.
func (t TextureVertex) AppendBytes(b []byte) []byte {
	b = binary.LittleEndian.AppendUint32(b, t.Color)
	return appendFloat32s(b, t.U, t.V)
}

// UV returns the texture coordinate as a vector.
func (t TextureVertex) UV() Vector2 {
	return Vector2{t.U, t.V}
}

// RGBA unpacks the color into its bytes in file order.
func (t TextureVertex) RGBA() [4]uint8 {
	var c [4]uint8
	binary.LittleEndian.PutUint32(c[:], t.Color)
	return c
}

// PackRGBA packs four color bytes in file order.
func PackRGBA(c [4]uint8) uint32 {
	return binary.LittleEndian.Uint32(c[:])
}
