package graphics

import (
	"errors"
	"fmt"
)

// Graphics errors.
var (
	ErrIndexOutOfRange = errors.New("index out of range")
	ErrShortBuffer     = errors.New("buffer too short")
	ErrZeroAxis        = errors.New("rotation axis has zero length")
	ErrMatrixSize      = errors.New("wrong number of matrix elements")
)

func indexError(kind string, i, n int) error {
	return fmt.Errorf("%w: %s index %d (valid 0..%d)", ErrIndexOutOfRange, kind, i, n-1)
}

func shortBufferError(kind string, need, offset, have int) error {
	return fmt.Errorf("%w: %s needs %d bytes at offset %d, have %d", ErrShortBuffer, kind, need, offset, have)
}
