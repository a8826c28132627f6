// Package patch applies exact byte-sequence substitutions to files.
//
// Targets are arbitrary binaries, typically the game executable. A patch
// never changes a file's length: the replacement is written over the match
// position and the whole buffer is flushed back.
package patch

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"

	"github.com/spf13/afero"
)

var (
	// ErrPatternNotFound is returned when the search pattern does not
	// occur in the target file. The file is left untouched.
	ErrPatternNotFound = errors.New("patch: pattern not found")

	// ErrLengthMismatch is returned when search and replacement differ
	// in length and AllowUnequalLengths was not set.
	ErrLengthMismatch = errors.New("patch: search and replacement lengths differ")

	// ErrEmptyPattern is returned for an empty search pattern.
	ErrEmptyPattern = errors.New("patch: empty search pattern")
)

// Patcher performs whole-file byte substitutions on an injected
// filesystem.
type Patcher struct {
	fs           afero.Fs
	logger       *slog.Logger
	allowUnequal bool
}

// Option configures a Patcher.
type Option func(*Patcher)

// WithLogger sets the logger. Defaults to slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(p *Patcher) {
		p.logger = l
	}
}

// AllowUnequalLengths permits a replacement whose length differs from the
// search pattern's.
//
// The file length still never changes: a shorter replacement leaves the
// tail of the matched bytes in place, a longer one overwrites bytes beyond
// the match. On a fixed-layout binary that silently corrupts neighboring
// data, so unequal lengths are rejected unless this option is set, and
// logged as a warning when it is.
func AllowUnequalLengths() Option {
	return func(p *Patcher) {
		p.allowUnequal = true
	}
}

// New returns a Patcher operating on fsys.
func New(fsys afero.Fs, opts ...Option) *Patcher {
	p := &Patcher{fs: fsys, logger: slog.Default()}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Apply replaces the first occurrence of search in the file at path with
// replace, leftmost match winning, and writes the whole buffer back.
//
// On any failure, including a missing pattern, no write occurs.
func (p *Patcher) Apply(path string, search, replace []byte) error {
	if len(search) == 0 {
		return fmt.Errorf("%w: %s", ErrEmptyPattern, path)
	}
	if len(search) != len(replace) {
		if !p.allowUnequal {
			return fmt.Errorf("%w: %s: search %d bytes, replacement %d bytes",
				ErrLengthMismatch, path, len(search), len(replace))
		}
		p.logger.Warn("patching with unequal pattern lengths",
			"path", path, "search", len(search), "replace", len(replace))
	}

	info, err := p.fs.Stat(path)
	if err != nil {
		return fmt.Errorf("patch: stat %s: %w", path, err)
	}
	data, err := afero.ReadFile(p.fs, path)
	if err != nil {
		return fmt.Errorf("patch: read %s: %w", path, err)
	}

	at := bytes.Index(data, search)
	if at < 0 {
		return fmt.Errorf("%w: %s", ErrPatternNotFound, path)
	}
	if at+len(replace) > len(data) {
		return fmt.Errorf("patch: %s: replacement extends past end of file", path)
	}

	copy(data[at:], replace)
	if err := afero.WriteFile(p.fs, path, data, info.Mode()); err != nil {
		return fmt.Errorf("patch: write %s: %w", path, err)
	}

	p.logger.Debug("patched file", "path", path, "offset", at, "bytes", len(replace))
	return nil
}
