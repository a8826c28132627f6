package bnk

import (
	"errors"

	"github.com/wildfiretools/bnk/internal/lebuf"
)

// Sentinel errors for the archive codec.
var (
	// ErrBadMagic is returned when a file's footer does not carry the
	// BNK magic and reserved bytes.
	ErrBadMagic = errors.New("bnk: bad archive magic")

	// ErrEntryNotFound is returned when no entry matches the given name.
	ErrEntryNotFound = errors.New("bnk: entry not found")

	// ErrDuplicateEntry is returned when adding an entry whose name is
	// already present in the archive.
	ErrDuplicateEntry = errors.New("bnk: duplicate entry name")

	// ErrNameTooLong is returned when a name's UTF-8 encoding exceeds
	// the fixed 32-byte field width.
	ErrNameTooLong = errors.New("bnk: entry name too long")

	// ErrNilEntry is returned when a nil entry is passed to a mutation.
	ErrNilEntry = errors.New("bnk: nil entry")

	// ErrEmptyPayload is returned when adding an entry with no payload.
	ErrEmptyPayload = errors.New("bnk: empty payload")

	// ErrBadEntryName is returned by Save when an in-memory entry name
	// is not exactly 32 bytes. Unreachable unless an Entry was built
	// outside this package.
	ErrBadEntryName = errors.New("bnk: entry name is not 32 bytes")
)

// ErrOutOfBounds is returned when an on-disk offset or size points past
// the file.
var ErrOutOfBounds = lebuf.ErrOutOfBounds
