package lebuf

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestU32(t *testing.T) {
	t.Parallel()

	buf := []byte{0x01, 0x02, 0x03, 0x04, 0x05}

	v, err := U32(buf, 0)
	require.NoError(t, err)
	assert.Equal(t, uint32(0x04030201), v)

	v, err = U32(buf, 1)
	require.NoError(t, err)
	assert.Equal(t, uint32(0x05040302), v)

	_, err = U32(buf, 2)
	require.ErrorIs(t, err, ErrOutOfBounds)

	_, err = U32(buf, -1)
	require.ErrorIs(t, err, ErrOutOfBounds)
}

func TestRange(t *testing.T) {
	t.Parallel()

	buf := []byte("abcdef")

	b, err := Range(buf, 2, 3)
	require.NoError(t, err)
	assert.Equal(t, []byte("cde"), b)

	b, err = Range(buf, 6, 0)
	require.NoError(t, err)
	assert.Empty(t, b)

	_, err = Range(buf, 4, 3)
	require.ErrorIs(t, err, ErrOutOfBounds)

	_, err = Range(buf, -1, 2)
	require.ErrorIs(t, err, ErrOutOfBounds)

	_, err = Range(buf, 0, -1)
	require.ErrorIs(t, err, ErrOutOfBounds)
}

func TestText(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "menu.pcx", Text([]byte("menu.pcx\x00\x00\x00junk")))
	assert.Equal(t, "whole buffer", Text([]byte("whole buffer")))
	assert.Equal(t, "trimmed", Text([]byte("  trimmed \x00")))
	assert.Equal(t, "", Text([]byte{0}))
	assert.Equal(t, "", Text(nil))
}
