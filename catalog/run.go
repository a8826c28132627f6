package catalog

import (
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/spf13/afero"

	"github.com/wildfiretools/bnk"
	"github.com/wildfiretools/bnk/backup"
	"github.com/wildfiretools/bnk/patch"
)

// Runner executes a catalog against a game directory.
//
// Execution is strictly sequential and fail-fast: the first failing
// operation aborts the rest, and completed operations are only rolled back
// by a later Restore.
type Runner struct {
	fs      afero.Fs
	dir     string
	logger  *slog.Logger
	guard   *backup.Guard
	patcher *patch.Patcher
}

// Option configures a Runner.
type Option func(*Runner)

// WithLogger sets the logger. Defaults to slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(r *Runner) {
		r.logger = l
	}
}

// NewRunner returns a Runner over the game directory dir on fsys.
func NewRunner(fsys afero.Fs, dir string, opts ...Option) *Runner {
	r := &Runner{fs: fsys, dir: dir, logger: slog.Default()}
	for _, opt := range opts {
		opt(r)
	}
	r.guard = backup.NewGuard(fsys, dir, backup.WithLogger(r.logger))
	r.patcher = patch.New(fsys, patch.WithLogger(r.logger))
	return r
}

// Run applies ops in declared order.
//
// Any leftovers of an interrupted earlier run are restored first, so every
// run starts from pristine files. Each operation's target is backed up
// before the operation touches it; a file already captured this run is not
// captured again.
func (r *Runner) Run(ops []Op) error {
	if err := r.guard.RestoreAll(); err != nil {
		return fmt.Errorf("catalog: restore before run: %w", err)
	}

	for i, op := range ops {
		r.logger.Info("applying fix", "step", i+1, "total", len(ops), "op", op.Name())

		target := r.path(op.Target())
		if !r.guard.Protected(target) {
			if _, err := r.guard.Backup(target); err != nil {
				return fmt.Errorf("catalog: %s: %w", op.Name(), err)
			}
		}
		if err := op.apply(r); err != nil {
			return fmt.Errorf("catalog: %s: %w", op.Name(), err)
		}
	}
	return nil
}

// Restore undoes every applied fix by moving the backed-up files over the
// patched ones.
func (r *Runner) Restore() error {
	return r.guard.RestoreAll()
}

func (r *Runner) path(name string) string {
	return filepath.Join(r.dir, name)
}

// cloneFrom loads a donor archive and deep-copies one entry out of it.
func (r *Runner) cloneFrom(archive, entry string) (*bnk.Entry, error) {
	donor, err := bnk.Load(r.fs, r.path(archive))
	if err != nil {
		return nil, err
	}
	return donor.CloneEntry(entry)
}
