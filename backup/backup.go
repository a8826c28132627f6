// Package backup captures pristine copies of files before they are
// patched and restores them in bulk.
//
// The backup store is a flat directory keyed by base filename. A Guard
// captures at most one copy per filename per run, so a second backup can
// never overwrite the pristine copy with an already-patched one. Running
// RestoreAll before any mutation makes an interrupted run recoverable: the
// working directory is always one RestoreAll away from pristine.
package backup

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
)

// ErrAlreadyBacked is returned when a filename was already captured in
// this run.
var ErrAlreadyBacked = errors.New("backup: file already backed up this run")

// DefaultDirName is the backup directory created inside the working
// directory.
const DefaultDirName = "backup"

// Guard manages the backup store for one run.
type Guard struct {
	fs      afero.Fs
	workDir string
	dir     string
	logger  *slog.Logger
	seen    map[string]struct{}
}

// Option configures a Guard.
type Option func(*Guard)

// WithDirName overrides the backup directory name inside the working
// directory.
func WithDirName(name string) Option {
	return func(g *Guard) {
		g.dir = filepath.Join(g.workDir, name)
	}
}

// WithLogger sets the logger. Defaults to slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(g *Guard) {
		g.logger = l
	}
}

// NewGuard returns a Guard storing backups under workDir.
func NewGuard(fsys afero.Fs, workDir string, opts ...Option) *Guard {
	g := &Guard{
		fs:      fsys,
		workDir: workDir,
		dir:     filepath.Join(workDir, DefaultDirName),
		logger:  slog.Default(),
		seen:    make(map[string]struct{}),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Dir returns the backup directory path.
func (g *Guard) Dir() string {
	return g.dir
}

// Backup copies the file at path into the backup store.
//
// A missing path is expected, not an error: the caller proceeds without
// protection and Backup reports protected=false. A second capture of the
// same filename in one run fails with ErrAlreadyBacked.
func (g *Guard) Backup(path string) (protected bool, err error) {
	if _, err := g.fs.Stat(path); err != nil {
		if os.IsNotExist(err) {
			g.logger.Debug("nothing to back up", "path", path)
			return false, nil
		}
		return false, fmt.Errorf("backup: stat %s: %w", path, err)
	}

	key := filepath.Base(path)
	if _, dup := g.seen[key]; dup {
		return false, fmt.Errorf("%w: %s", ErrAlreadyBacked, key)
	}

	if err := g.fs.MkdirAll(g.dir, 0o755); err != nil {
		return false, fmt.Errorf("backup: create %s: %w", g.dir, err)
	}
	if err := g.copyFile(path, filepath.Join(g.dir, key)); err != nil {
		return false, err
	}

	g.seen[key] = struct{}{}
	g.logger.Debug("backed up", "path", path)
	return true, nil
}

// Protected reports whether the filename at path was already captured in
// this run. Callers that may touch a file more than once per run probe
// this instead of provoking ErrAlreadyBacked.
func (g *Guard) Protected(path string) bool {
	_, ok := g.seen[filepath.Base(path)]
	return ok
}

// RestoreAll moves every file in the backup store back to its place in
// the working directory, overwriting current content. Without a backup
// directory it is a no-op.
func (g *Guard) RestoreAll() error {
	if _, err := g.fs.Stat(g.dir); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("backup: stat %s: %w", g.dir, err)
	}

	infos, err := afero.ReadDir(g.fs, g.dir)
	if err != nil {
		return fmt.Errorf("backup: read %s: %w", g.dir, err)
	}

	for _, info := range infos {
		if info.IsDir() {
			continue
		}
		src := filepath.Join(g.dir, info.Name())
		dst := filepath.Join(g.workDir, info.Name())

		// MemMapFs refuses to rename over an existing file, so clear
		// the destination first.
		if _, err := g.fs.Stat(dst); err == nil {
			if err := g.fs.Remove(dst); err != nil {
				return fmt.Errorf("backup: replace %s: %w", dst, err)
			}
		}
		if err := g.fs.Rename(src, dst); err != nil {
			return fmt.Errorf("backup: restore %s: %w", dst, err)
		}
		g.logger.Info("restored", "path", dst)
	}

	// A fresh run starts with an empty capture set.
	g.seen = make(map[string]struct{})
	return nil
}

// copyFile copies src to dst byte for byte, preserving the mode.
func (g *Guard) copyFile(src, dst string) error {
	info, err := g.fs.Stat(src)
	if err != nil {
		return fmt.Errorf("backup: stat %s: %w", src, err)
	}
	in, err := g.fs.Open(src)
	if err != nil {
		return fmt.Errorf("backup: open %s: %w", src, err)
	}
	defer in.Close()

	out, err := g.fs.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, info.Mode())
	if err != nil {
		return fmt.Errorf("backup: create %s: %w", dst, err)
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return fmt.Errorf("backup: copy %s: %w", src, err)
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf("backup: copy %s: %w", src, err)
	}
	return nil
}
