// Package bnktest builds BNK fixture files for tests.
//
// Fixtures are assembled by hand rather than through the codec's own
// writer, so load tests do not depend on save being correct.
package bnktest

import (
	"encoding/binary"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"
)

// Entry describes one fixture entry.
type Entry struct {
	Name             string
	Payload          []byte
	UncompressedSize uint32
	CompressionFlag  uint32
}

const (
	nameSize   = 32
	recordSize = 48
	footerSize = 18
)

// Build assembles the on-disk bytes of an archive holding entries.
func Build(t *testing.T, entries ...Entry) []byte {
	t.Helper()

	total := footerSize + len(entries)*recordSize
	for _, e := range entries {
		total += len(e.Payload)
	}

	buf := make([]byte, 0, total)
	for _, e := range entries {
		buf = append(buf, e.Payload...)
	}

	trailing := uint32(total)
	for _, e := range entries {
		require.LessOrEqual(t, len(e.Name), nameSize, "fixture name too long")
		name := make([]byte, nameSize)
		copy(name, e.Name)
		buf = append(buf, name...)
		buf = binary.LittleEndian.AppendUint32(buf, trailing)
		buf = binary.LittleEndian.AppendUint32(buf, uint32(len(e.Payload)))
		buf = binary.LittleEndian.AppendUint32(buf, e.UncompressedSize)
		buf = binary.LittleEndian.AppendUint32(buf, e.CompressionFlag)
		trailing -= uint32(len(e.Payload))
	}

	buf = append(buf, "Wildfire"...)
	buf = append(buf, 0x00, 0x00, 0x00, 0x00, 0x01, 0x00)
	buf = binary.LittleEndian.AppendUint32(buf, uint32(len(entries)))
	return buf
}

// Write assembles an archive and writes it to path on fsys.
func Write(t *testing.T, fsys afero.Fs, path string, entries ...Entry) {
	t.Helper()
	require.NoError(t, afero.WriteFile(fsys, path, Build(t, entries...), 0o644))
}
