// Package grf reads Ragnarok Online GRF archives (version 0x200).
package grf

import (
	"bytes"
	"compress/zlib"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"

	"github.com/Faultbox/grf-graphics/pkg/encoding"
)

const (
	grfMagic   = "Master of Magic"
	headerSize = 46
	version200 = 0x200

	// Fixed fields after each NUL-terminated entry name.
	entryInfoSize = 17
)

// Entry flags.
const (
	FlagFile     uint8 = 0x01
	FlagMixCrypt uint8 = 0x02
	FlagDES      uint8 = 0x04
)

// Archive errors.
var (
	ErrInvalidMagic       = errors.New("invalid GRF magic")
	ErrUnsupportedVersion = errors.New("unsupported GRF version")
	ErrCorruptTable       = errors.New("corrupt GRF file table")
	ErrNotFound           = errors.New("file not found in archive")
	ErrEncrypted          = errors.New("encrypted GRF entries are not supported")
)

// Archive is an opened GRF archive. Reads go through ReadAt, so one
// Archive may serve concurrent callers.
type Archive struct {
	file    *os.File
	header  Header
	entries map[string]*Entry
}

// Header is the 46-byte GRF file header.
type Header struct {
	Magic         [15]byte
	EncryptionKey [15]byte
	TableOffset   uint32
	Seed          uint32
	FileCount     uint32
	Version       uint32
}

// Entry is one file of the archive. Name is the UTF-8 decoded path as
// stored in the table.
type Entry struct {
	Name             string
	CompressedSize   uint32
	AlignedSize      uint32
	UncompressedSize uint32
	Flags            uint8
	Offset           uint32
}

// Encrypted reports whether the entry data is DES-scrambled.
func (e *Entry) Encrypted() bool {
	return e.Flags&(FlagMixCrypt|FlagDES) != 0
}

// Open opens a GRF archive and loads its file table.
func Open(path string) (*Archive, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening file: %w", err)
	}

	a := &Archive{file: file, entries: make(map[string]*Entry)}
	if err := a.readHeader(); err != nil {
		file.Close()
		return nil, fmt.Errorf("reading header: %w", err)
	}
	if err := a.readFileTable(); err != nil {
		file.Close()
		return nil, fmt.Errorf("reading file table: %w", err)
	}
	return a, nil
}

// Close closes the archive.
func (a *Archive) Close() error {
	if a.file != nil {
		return a.file.Close()
	}
	return nil
}

// Header returns the archive header.
func (a *Archive) Header() Header {
	return a.header
}

func (a *Archive) readHeader() error {
	sr := io.NewSectionReader(a.file, 0, headerSize)
	if err := binary.Read(sr, binary.LittleEndian, &a.header); err != nil {
		return err
	}
	if string(a.header.Magic[:]) != grfMagic {
		return ErrInvalidMagic
	}
	if a.header.Version != version200 {
		return fmt.Errorf("%w: 0x%x", ErrUnsupportedVersion, a.header.Version)
	}
	return nil
}

func (a *Archive) readFileTable() error {
	tableOffset := int64(a.header.TableOffset) + headerSize

	var sizes [2]uint32
	if err := binary.Read(io.NewSectionReader(a.file, tableOffset, 8), binary.LittleEndian, &sizes); err != nil {
		return fmt.Errorf("reading table sizes: %w", err)
	}
	compressedSize, uncompressedSize := sizes[0], sizes[1]

	compressed := make([]byte, compressedSize)
	if _, err := a.file.ReadAt(compressed, tableOffset+8); err != nil {
		return fmt.Errorf("reading table: %w", err)
	}
	table, err := inflate(compressed, uncompressedSize)
	if err != nil {
		return fmt.Errorf("inflating table: %w", err)
	}

	if a.header.FileCount < a.header.Seed+7 {
		return fmt.Errorf("%w: file count %d below seed %d", ErrCorruptTable, a.header.FileCount, a.header.Seed)
	}
	fileCount := a.header.FileCount - a.header.Seed - 7

	offset := 0
	for i := uint32(0); i < fileCount; i++ {
		nameEnd := bytes.IndexByte(table[offset:], 0)
		if nameEnd < 0 {
			return fmt.Errorf("%w: entry %d has no name terminator", ErrCorruptTable, i)
		}
		name := encoding.EUCKRToUTF8(table[offset : offset+nameEnd])
		offset += nameEnd + 1

		if offset+entryInfoSize > len(table) {
			return fmt.Errorf("%w: entry %d truncated", ErrCorruptTable, i)
		}
		info := table[offset : offset+entryInfoSize]
		offset += entryInfoSize

		entry := &Entry{
			Name:             name,
			CompressedSize:   binary.LittleEndian.Uint32(info[0:]),
			AlignedSize:      binary.LittleEndian.Uint32(info[4:]),
			UncompressedSize: binary.LittleEndian.Uint32(info[8:]),
			Flags:            info[12],
			Offset:           binary.LittleEndian.Uint32(info[13:]),
		}
		// Directory entries carry no data.
		if entry.Flags&FlagFile != 0 {
			a.entries[encoding.NormalizeGRFPath(name)] = entry
		}
	}
	return nil
}

// Len returns the number of file entries.
func (a *Archive) Len() int {
	return len(a.entries)
}

// List returns all file paths in the archive, normalized and sorted.
func (a *Archive) List() []string {
	result := make([]string, 0, len(a.entries))
	for path := range a.entries {
		result = append(result, path)
	}
	slices.Sort(result)
	return result
}

// Contains checks if a file exists. Lookup ignores case and slash style.
func (a *Archive) Contains(path string) bool {
	_, ok := a.entries[encoding.NormalizeGRFPath(path)]
	return ok
}

// Entry returns the table entry for path.
func (a *Archive) Entry(path string) (*Entry, bool) {
	e, ok := a.entries[encoding.NormalizeGRFPath(path)]
	return e, ok
}

// Read returns the uncompressed contents of a file.
func (a *Archive) Read(path string) ([]byte, error) {
	entry, ok := a.Entry(path)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
	}
	if entry.Encrypted() {
		return nil, fmt.Errorf("%w: %s", ErrEncrypted, path)
	}

	data := make([]byte, entry.CompressedSize)
	if _, err := a.file.ReadAt(data, int64(entry.Offset)+headerSize); err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	if entry.CompressedSize == entry.UncompressedSize {
		return data, nil
	}
	result, err := inflate(data, entry.UncompressedSize)
	if err != nil {
		return nil, fmt.Errorf("inflating %s: %w", path, err)
	}
	return result, nil
}

func inflate(data []byte, size uint32) ([]byte, error) {
	r, err := zlib.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	defer r.Close()

	out := make([]byte, size)
	if _, err := io.ReadFull(r, out); err != nil {
		return nil, err
	}
	return out, nil
}
