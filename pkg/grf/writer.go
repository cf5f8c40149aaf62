package grf

import (
	"bytes"
	"compress/zlib"
	"encoding/binary"
	"fmt"
	"io"
	"math"

	"github.com/Faultbox/grf-graphics/pkg/encoding"
)

// File is one file to store in a new archive. Name uses backslashes or
// slashes; it is written with backslashes in EUC-KR as the client expects.
type File struct {
	Name string
	Data []byte
}

// WriteArchive writes a version 0x200 archive holding files, each
// zlib-compressed, followed by the compressed file table.
func WriteArchive(w io.Writer, files []File) error {
	var body, table bytes.Buffer
	for _, f := range files {
		packed, err := deflate(f.Data)
		if err != nil {
			return fmt.Errorf("compressing %s: %w", f.Name, err)
		}
		// Equal sizes mark a stored entry, so keep data that does not shrink raw.
		if len(packed) >= len(f.Data) {
			packed = f.Data
		}
		if body.Len()+len(packed) > math.MaxUint32 {
			return fmt.Errorf("archive too large at %s", f.Name)
		}
		offset := uint32(body.Len())
		body.Write(packed)

		table.Write(encoding.UTF8ToEUCKR(toBackslashes(f.Name)))
		table.WriteByte(0)
		var info [entryInfoSize]byte
		binary.LittleEndian.PutUint32(info[0:], uint32(len(packed)))
		binary.LittleEndian.PutUint32(info[4:], uint32(len(packed)))
		binary.LittleEndian.PutUint32(info[8:], uint32(len(f.Data)))
		info[12] = FlagFile
		binary.LittleEndian.PutUint32(info[13:], offset)
		table.Write(info[:])
	}

	packedTable, err := deflate(table.Bytes())
	if err != nil {
		return fmt.Errorf("compressing table: %w", err)
	}

	var header Header
	copy(header.Magic[:], grfMagic)
	header.TableOffset = uint32(body.Len())
	header.FileCount = uint32(len(files)) + 7
	header.Version = version200

	if err := binary.Write(w, binary.LittleEndian, &header); err != nil {
		return err
	}
	if _, err := w.Write(body.Bytes()); err != nil {
		return err
	}
	sizes := [2]uint32{uint32(len(packedTable)), uint32(table.Len())}
	if err := binary.Write(w, binary.LittleEndian, sizes); err != nil {
		return err
	}
	_, err = w.Write(packedTable)
	return err
}

func deflate(data []byte) ([]byte, error) {
	var buf bytes.Buffer
	zw := zlib.NewWriter(&buf)
	if _, err := zw.Write(data); err != nil {
		return nil, err
	}
	if err := zw.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func toBackslashes(name string) string {
	b := []byte(name)
	for i, c := range b {
		if c == '/' {
			b[i] = '\\'
		}
	}
	return string(b)
}
