// Package lebuf provides bounds-checked little-endian reads over an
// in-memory buffer.
//
// Archive parsing works on whole-file buffers with offsets computed from
// untrusted on-disk fields, so every read validates its range and fails
// with [ErrOutOfBounds] instead of panicking.
package lebuf

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"strings"
)

// ErrOutOfBounds is returned when a read extends past the buffer.
var ErrOutOfBounds = errors.New("bnk: read out of bounds")

// U32 reads a little-endian uint32 at off.
func U32(buf []byte, off int) (uint32, error) {
	if off < 0 || off+4 > len(buf) {
		return 0, fmt.Errorf("bnk: uint32 at %d in %d-byte buffer: %w", off, len(buf), ErrOutOfBounds)
	}
	return binary.LittleEndian.Uint32(buf[off:]), nil
}

// Range returns the size bytes starting at off.
//
// The returned slice aliases buf; callers that retain it must copy.
func Range(buf []byte, off, size int) ([]byte, error) {
	if off < 0 || size < 0 || off+size > len(buf) {
		return nil, fmt.Errorf("bnk: %d bytes at %d in %d-byte buffer: %w", size, off, len(buf), ErrOutOfBounds)
	}
	return buf[off : off+size], nil
}

// Text decodes buf as UTF-8 up to the first null byte (or the whole buffer
// if there is none), trimmed of surrounding whitespace.
func Text(buf []byte) string {
	if i := bytes.IndexByte(buf, 0); i >= 0 {
		buf = buf[:i]
	}
	return strings.TrimSpace(string(buf))
}
