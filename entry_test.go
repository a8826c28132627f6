package bnk

import (
	"strings"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wildfiretools/bnk/internal/bnktest"
)

// loadFixture builds an archive file from entries and loads it back.
func loadFixture(t *testing.T, entries ...bnktest.Entry) *Archive {
	t.Helper()
	fsys := afero.NewMemMapFs()
	bnktest.Write(t, fsys, "fixture.bnk", entries...)
	a, err := Load(fsys, "fixture.bnk")
	require.NoError(t, err)
	return a
}

func TestEntryParse(t *testing.T) {
	t.Parallel()

	a := loadFixture(t, bnktest.Entry{
		Name:             "title.pcx",
		Payload:          []byte{0x0A, 0x05, 0x01, 0x08},
		UncompressedSize: 4096,
		CompressionFlag:  1,
	})

	e, err := a.CloneEntry("title.pcx")
	require.NoError(t, err)
	assert.Equal(t, "title.pcx", e.Name())
	assert.Equal(t, []byte{0x0A, 0x05, 0x01, 0x08}, e.Payload())
	assert.Equal(t, 4, e.PayloadSize())
	assert.Equal(t, uint32(4096), e.UncompressedSize())
	assert.Equal(t, uint32(1), e.CompressionFlag())
}

func TestEntryParsePayloadOutOfBounds(t *testing.T) {
	t.Parallel()

	fsys := afero.NewMemMapFs()

	// Distance field larger than the file puts the payload start before
	// byte zero.
	data := bnktest.Build(t, bnktest.Entry{Name: "a", Payload: []byte{1}})
	data[1+recDistance] = 0xFF
	require.NoError(t, afero.WriteFile(fsys, "bad.bnk", data, 0o644))

	_, err := Load(fsys, "bad.bnk")
	require.ErrorIs(t, err, ErrOutOfBounds)
}

func TestEntryClone(t *testing.T) {
	t.Parallel()

	a := loadFixture(t, bnktest.Entry{Name: "voice_01.wav", Payload: []byte("RIFF")})

	e, err := a.CloneEntry("voice_01.wav")
	require.NoError(t, err)
	clone := e.Clone()

	// Deep copy: mutating the clone's buffers must not touch the original.
	clone.Payload()[0] = 'X'
	require.NoError(t, clone.Rename("other name"))

	assert.Equal(t, []byte("RIFF"), e.Payload())
	assert.Equal(t, "voice_01.wav", e.Name())
	assert.Equal(t, "other name", clone.Name())
	assert.Equal(t, []byte("XIFF"), clone.Payload())
}

func TestEntryRename(t *testing.T) {
	t.Parallel()

	a := loadFixture(t, bnktest.Entry{Name: "old.pcx", Payload: []byte{1}})
	e, err := a.CloneEntry("old.pcx")
	require.NoError(t, err)

	require.NoError(t, e.Rename("new.pcx"))
	assert.Equal(t, "new.pcx", e.Name())
	assert.Len(t, e.name, 32)

	// Exactly 32 encoded bytes still fits; there is no null terminator.
	exact := strings.Repeat("n", 32)
	require.NoError(t, e.Rename(exact))
	assert.Equal(t, exact, e.Name())
	assert.Len(t, e.name, 32)
}

func TestEntryRenameTooLong(t *testing.T) {
	t.Parallel()

	a := loadFixture(t, bnktest.Entry{Name: "keep.pcx", Payload: []byte{1}})
	e, err := a.CloneEntry("keep.pcx")
	require.NoError(t, err)

	err = e.Rename(strings.Repeat("n", 33))
	require.ErrorIs(t, err, ErrNameTooLong)
	assert.Equal(t, "keep.pcx", e.Name(), "failed rename must not change the name")

	// Multi-byte runes count in encoded bytes, not in runes.
	err = e.Rename(strings.Repeat("é", 17)) // 34 bytes
	require.ErrorIs(t, err, ErrNameTooLong)
	assert.Equal(t, "keep.pcx", e.Name())
}
