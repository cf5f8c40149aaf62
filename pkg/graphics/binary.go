package graphics

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
)

// float32sFromBytes decodes n little-endian float32 values starting at offset.
func float32sFromBytes(kind string, buf []byte, offset, n int) ([]float32, error) {
	need := 4 * n
	if offset < 0 || offset > len(buf) || len(buf)-offset < need {
		return nil, shortBufferError(kind, need, offset, len(buf))
	}
	out := make([]float32, n)
	for i := range out {
		out[i] = math.Float32frombits(binary.LittleEndian.Uint32(buf[offset+4*i:]))
	}
	return out, nil
}

// readFloat32s reads n little-endian float32 values from a stream.
func readFloat32s(kind string, r io.Reader, n int) ([]float32, error) {
	buf := make([]byte, 4*n)
	if _, err := io.ReadFull(r, buf); err != nil {
		return nil, shortReadError(kind, err)
	}
	return float32sFromBytes(kind, buf, 0, n)
}

// shortReadError marks a truncated stream with ErrShortBuffer and passes
// other I/O failures through.
func shortReadError(kind string, err error) error {
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return fmt.Errorf("%w: reading %s: %w", ErrShortBuffer, kind, err)
	}
	return fmt.Errorf("reading %s: %w", kind, err)
}

func appendFloat32s(b []byte, values ...float32) []byte {
	for _, f := range values {
		b = binary.LittleEndian.AppendUint32(b, math.Float32bits(f))
	}
	return b
}

func writeFloat32s(w io.Writer, values ...float32) error {
	_, err := w.Write(appendFloat32s(make([]byte, 0, 4*len(values)), values...))
	return err
}
