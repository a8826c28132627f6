package bnk

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"path/filepath"

	"github.com/spf13/afero"

	"github.com/wildfiretools/bnk/internal/lebuf"
)

// Archive is a parsed BNK container: an ordered list of entries whose
// order matches the on-disk directory. Mutations preserve that order —
// AddEntry appends, RemoveEntry keeps the survivors' relative order, and
// ReplaceEntry reuses the original slot.
type Archive struct {
	path    string
	entries []*Entry
}

// Load reads and parses the BNK file at path.
//
// The final 18 bytes are validated as the footer, then the directory is
// walked record by record. Any failure aborts the whole load; a partial
// archive is never returned.
func Load(fsys afero.Fs, path string) (*Archive, error) {
	data, err := afero.ReadFile(fsys, path)
	if err != nil {
		return nil, fmt.Errorf("bnk: read %s: %w", path, err)
	}

	footer, err := lebuf.Range(data, len(data)-footerSize, footerSize)
	if err != nil {
		return nil, fmt.Errorf("bnk: %s: footer: %w", path, err)
	}
	if string(footer[:len(magic)]) != magic || !bytes.Equal(footer[len(magic):len(magic)+len(reserved)], reserved[:]) {
		return nil, fmt.Errorf("%w: %s", ErrBadMagic, path)
	}

	// footer is exactly footerSize bytes, so the count read cannot fail.
	count, _ := lebuf.U32(footer, len(magic)+len(reserved))

	// The count is untrusted; reject a directory that cannot fit in the
	// file before sizing anything by it. int64 keeps the product from
	// wrapping on 32-bit platforms.
	if int64(count)*recordSize > int64(len(data)-footerSize) {
		return nil, fmt.Errorf("bnk: %s: directory of %d entries: %w", path, count, ErrOutOfBounds)
	}
	dirStart := len(data) - footerSize - int(count)*recordSize

	entries := make([]*Entry, 0, count)
	for i := 0; i < int(count); i++ {
		e, err := parseEntry(data, dirStart+i*recordSize)
		if err != nil {
			return nil, fmt.Errorf("bnk: %s: entry %d: %w", path, i, err)
		}
		entries = append(entries, e)
	}

	return &Archive{path: path, entries: entries}, nil
}

// Path returns the file path the archive was loaded from.
func (a *Archive) Path() string {
	return a.path
}

// Len returns the number of entries.
func (a *Archive) Len() int {
	return len(a.entries)
}

// EntryInfo is a read-only view of one entry's metadata.
type EntryInfo struct {
	Name             string
	PayloadSize      int
	UncompressedSize uint32
	CompressionFlag  uint32
}

// Entries returns metadata for all entries in directory order.
func (a *Archive) Entries() []EntryInfo {
	infos := make([]EntryInfo, len(a.entries))
	for i, e := range a.entries {
		infos[i] = EntryInfo{
			Name:             e.Name(),
			PayloadSize:      len(e.payload),
			UncompressedSize: e.uncompressedSize,
			CompressionFlag:  e.compressionFlag,
		}
	}
	return infos
}

// find returns the index of the entry whose null-truncated name equals
// name, or -1. Matching is case-sensitive.
func (a *Archive) find(name string) int {
	for i, e := range a.entries {
		if e.Name() == name {
			return i
		}
	}
	return -1
}

// CloneEntry returns a deep copy of the named entry.
func (a *Archive) CloneEntry(name string) (*Entry, error) {
	i := a.find(name)
	if i < 0 {
		return nil, fmt.Errorf("%w: %q in %s", ErrEntryNotFound, name, a.path)
	}
	return a.entries[i].Clone(), nil
}

// AddEntry appends a deep clone of e to the archive.
//
// Fails with ErrNilEntry or ErrEmptyPayload on invalid input, and with
// ErrDuplicateEntry if the name is already taken. The entry set is
// unchanged on failure.
func (a *Archive) AddEntry(e *Entry) error {
	if e == nil {
		return fmt.Errorf("%w: add to %s", ErrNilEntry, a.path)
	}
	if len(e.payload) == 0 {
		return fmt.Errorf("%w: %q", ErrEmptyPayload, e.Name())
	}
	if a.find(e.Name()) >= 0 {
		return fmt.Errorf("%w: %q in %s", ErrDuplicateEntry, e.Name(), a.path)
	}

	a.entries = append(a.entries, e.Clone())
	return nil
}

// RemoveEntry drops the named entry, preserving the relative order of the
// rest.
func (a *Archive) RemoveEntry(name string) error {
	i := a.find(name)
	if i < 0 {
		return fmt.Errorf("%w: %q in %s", ErrEntryNotFound, name, a.path)
	}

	a.entries = append(a.entries[:i], a.entries[i+1:]...)
	return nil
}

// ReplaceEntry substitutes a deep clone of e into the slot currently named
// name. Identity belongs to the slot: the clone takes over the slot's
// original name regardless of e's own, and the slot keeps its position.
func (a *Archive) ReplaceEntry(name string, e *Entry) error {
	i := a.find(name)
	if i < 0 {
		return fmt.Errorf("%w: %q in %s", ErrEntryNotFound, name, a.path)
	}
	if e == nil {
		return fmt.Errorf("%w: replace %q", ErrNilEntry, name)
	}

	clone := e.Clone()
	clone.setRawName(a.entries[i].name)
	a.entries[i] = clone
	return nil
}

// Save serializes the archive to path.
//
// Output is staged to a temp file in the destination directory and renamed
// into place, so a mid-write failure leaves the destination untouched.
func (a *Archive) Save(fsys afero.Fs, path string) error {
	for _, e := range a.entries {
		if len(e.name) != nameSize {
			return fmt.Errorf("%w: %q", ErrBadEntryName, e.Name())
		}
	}

	data := a.encode()

	tmp, err := afero.TempFile(fsys, filepath.Dir(path), ".bnk-save-*")
	if err != nil {
		return fmt.Errorf("bnk: stage %s: %w", path, err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		fsys.Remove(tmpPath)
		return fmt.Errorf("bnk: write %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		fsys.Remove(tmpPath)
		return fmt.Errorf("bnk: write %s: %w", path, err)
	}
	if err := fsys.Rename(tmpPath, path); err != nil {
		fsys.Remove(tmpPath)
		return fmt.Errorf("bnk: rename into %s: %w", path, err)
	}
	return nil
}

// encode produces the on-disk bytes: payloads in list order, then one
// directory record per entry in the same order, then the footer.
//
// Each record's offset field is the distance from end of file to the start
// of its payload. Walking entries with a trailing counter initialized to
// the total size yields exactly that, but only because payloads and
// records are written in the same list traversal.
func (a *Archive) encode() []byte {
	metadataSize := len(a.entries)*recordSize + footerSize
	total := metadataSize
	for _, e := range a.entries {
		total += len(e.payload)
	}

	buf := make([]byte, 0, total)
	for _, e := range a.entries {
		buf = append(buf, e.payload...)
	}

	trailing := uint32(total)
	for _, e := range a.entries {
		buf = append(buf, e.name...)
		buf = binary.LittleEndian.AppendUint32(buf, trailing)
		buf = binary.LittleEndian.AppendUint32(buf, uint32(len(e.payload)))
		buf = binary.LittleEndian.AppendUint32(buf, e.uncompressedSize)
		buf = binary.LittleEndian.AppendUint32(buf, e.compressionFlag)
		trailing -= uint32(len(e.payload))
	}

	buf = append(buf, magic...)
	buf = append(buf, reserved[:]...)
	buf = binary.LittleEndian.AppendUint32(buf, uint32(len(a.entries)))
	return buf
}
