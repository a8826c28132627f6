package bnk

import (
	"fmt"

	"github.com/wildfiretools/bnk/internal/lebuf"
)

// Entry is one named asset inside an archive.
//
// The name field is always exactly 32 bytes, UTF-8 null-padded; entry
// identity within an archive is the name text truncated at the first null.
// Payload bytes are opaque: UncompressedSize and CompressionFlag are
// recorded from disk and written back without interpretation.
type Entry struct {
	name             []byte
	payload          []byte
	uncompressedSize uint32
	compressionFlag  uint32
}

// parseEntry reads the 48-byte directory record at dirOff and extracts the
// payload it points to. archive must be the whole file buffer, since the
// record stores the payload position as a distance from end of file.
func parseEntry(archive []byte, dirOff int) (*Entry, error) {
	rec, err := lebuf.Range(archive, dirOff, recordSize)
	if err != nil {
		return nil, fmt.Errorf("directory record at %d: %w", dirOff, err)
	}

	name := make([]byte, nameSize)
	copy(name, rec[:nameSize])

	// rec is exactly recordSize bytes, so the field reads cannot fail.
	distance, _ := lebuf.U32(rec, recDistance)
	payloadSize, _ := lebuf.U32(rec, recPayloadSize)
	uncompressed, _ := lebuf.U32(rec, recUncompressed)
	flag, _ := lebuf.U32(rec, recFlag)

	payloadStart := len(archive) - int(distance)
	raw, err := lebuf.Range(archive, payloadStart, int(payloadSize))
	if err != nil {
		return nil, fmt.Errorf("payload of %q: %w", lebuf.Text(name), err)
	}
	payload := make([]byte, len(raw))
	copy(payload, raw)

	return &Entry{
		name:             name,
		payload:          payload,
		uncompressedSize: uncompressed,
		compressionFlag:  flag,
	}, nil
}

// Name returns the entry name decoded up to its null padding.
func (e *Entry) Name() string {
	return lebuf.Text(e.name)
}

// Payload returns the entry's raw payload bytes.
// The returned slice aliases the entry; callers that retain it must copy.
func (e *Entry) Payload() []byte {
	return e.payload
}

// PayloadSize returns the on-disk payload length in bytes.
func (e *Entry) PayloadSize() int {
	return len(e.payload)
}

// UncompressedSize returns the declared decoded length. It is recorded
// from disk and never verified.
func (e *Entry) UncompressedSize() uint32 {
	return e.uncompressedSize
}

// CompressionFlag returns the entry's opaque compression marker.
func (e *Entry) CompressionFlag() uint32 {
	return e.compressionFlag
}

// Clone returns a deep copy of the entry. Name and payload buffers are
// copied; the clone shares nothing with the original.
func (e *Entry) Clone() *Entry {
	name := make([]byte, len(e.name))
	copy(name, e.name)
	payload := make([]byte, len(e.payload))
	copy(payload, e.payload)

	return &Entry{
		name:             name,
		payload:          payload,
		uncompressedSize: e.uncompressedSize,
		compressionFlag:  e.compressionFlag,
	}
}

// Rename replaces the entry name with the UTF-8 encoding of s, null-padded
// to the fixed 32-byte width. Fails with ErrNameTooLong if the encoding
// does not fit; the name is left unchanged on failure.
func (e *Entry) Rename(s string) error {
	encoded := []byte(s)
	if len(encoded) > nameSize {
		return fmt.Errorf("%w: %q encodes to %d bytes", ErrNameTooLong, s, len(encoded))
	}

	name := make([]byte, nameSize)
	copy(name, encoded)
	e.name = name
	return nil
}

// setRawName overwrites the name buffer. Used by ReplaceEntry, where the
// slot's original name wins over the replacement's.
func (e *Entry) setRawName(name []byte) {
	e.name = make([]byte, len(name))
	copy(e.name, name)
}
