package backup

import (
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBackupMissingFile(t *testing.T) {
	t.Parallel()

	fsys := afero.NewMemMapFs()
	g := NewGuard(fsys, "game")

	protected, err := g.Backup("game/absent.bnk")
	require.NoError(t, err, "a missing target is expected, not an error")
	assert.False(t, protected)

	// No backup directory appears for a no-op.
	_, err = fsys.Stat(g.Dir())
	require.Error(t, err)
}

func TestBackupAndRestore(t *testing.T) {
	t.Parallel()

	fsys := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fsys, "game/assets.bnk", []byte("pristine"), 0o644))

	g := NewGuard(fsys, "game")

	protected, err := g.Backup("game/assets.bnk")
	require.NoError(t, err)
	assert.True(t, protected)

	saved, err := afero.ReadFile(fsys, "game/backup/assets.bnk")
	require.NoError(t, err)
	assert.Equal(t, []byte("pristine"), saved)

	// Simulate a patch, then roll back.
	require.NoError(t, afero.WriteFile(fsys, "game/assets.bnk", []byte("patched"), 0o644))
	require.NoError(t, g.RestoreAll())

	data, err := afero.ReadFile(fsys, "game/assets.bnk")
	require.NoError(t, err)
	assert.Equal(t, []byte("pristine"), data)

	// Restore moves, not copies: the store is drained.
	infos, err := afero.ReadDir(fsys, g.Dir())
	require.NoError(t, err)
	assert.Empty(t, infos)
}

func TestBackupCollision(t *testing.T) {
	t.Parallel()

	fsys := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fsys, "game/wildfire.exe", []byte("original"), 0o755))

	g := NewGuard(fsys, "game")

	_, err := g.Backup("game/wildfire.exe")
	require.NoError(t, err)

	// Second capture would overwrite the pristine copy with a patched one.
	_, err = g.Backup("game/wildfire.exe")
	require.ErrorIs(t, err, ErrAlreadyBacked)

	saved, err := afero.ReadFile(fsys, "game/backup/wildfire.exe")
	require.NoError(t, err)
	assert.Equal(t, []byte("original"), saved)
}

func TestRestoreAllWithoutBackupDir(t *testing.T) {
	t.Parallel()

	g := NewGuard(afero.NewMemMapFs(), "game")
	require.NoError(t, g.RestoreAll())
}

func TestRestoreAllResetsCaptureSet(t *testing.T) {
	t.Parallel()

	fsys := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fsys, "game/assets.bnk", []byte("v1"), 0o644))

	g := NewGuard(fsys, "game")

	_, err := g.Backup("game/assets.bnk")
	require.NoError(t, err)
	require.NoError(t, g.RestoreAll())

	// After a restore the filename may be captured again.
	protected, err := g.Backup("game/assets.bnk")
	require.NoError(t, err)
	assert.True(t, protected)
}

func TestWithDirName(t *testing.T) {
	t.Parallel()

	fsys := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fsys, "game/assets.bnk", []byte("x"), 0o644))

	g := NewGuard(fsys, "game", WithDirName("undo"))
	_, err := g.Backup("game/assets.bnk")
	require.NoError(t, err)

	_, err = fsys.Stat("game/undo/assets.bnk")
	require.NoError(t, err)
}
