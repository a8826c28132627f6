// Package catalog defines the corrective edits applied to an installed
// game and the runner that executes them.
//
// A catalog is an ordered list of tagged operations over archive entries
// and executable bytes. Operations are plain data, so the shipped Wildfire
// fix list is testable against an in-memory filesystem.
package catalog

import (
	"fmt"

	"github.com/wildfiretools/bnk"
)

// Op is one corrective edit. Target names the file the operation mutates,
// relative to the game directory; the runner backs it up before applying.
type Op interface {
	// Name describes the operation for logs and errors.
	Name() string

	// Target is the mutated file, relative to the game directory.
	Target() string

	apply(r *Runner) error
}

// AddEntry clones an entry out of a donor archive and appends it to the
// target archive.
type AddEntry struct {
	SourceArchive string
	SourceEntry   string
	TargetArchive string
}

func (o AddEntry) Name() string {
	return fmt.Sprintf("add %q from %s into %s", o.SourceEntry, o.SourceArchive, o.TargetArchive)
}

func (o AddEntry) Target() string { return o.TargetArchive }

func (o AddEntry) apply(r *Runner) error {
	e, err := r.cloneFrom(o.SourceArchive, o.SourceEntry)
	if err != nil {
		return err
	}

	target, err := bnk.Load(r.fs, r.path(o.TargetArchive))
	if err != nil {
		return err
	}
	if err := target.AddEntry(e); err != nil {
		return err
	}
	return target.Save(r.fs, r.path(o.TargetArchive))
}

// RemoveEntry drops an entry from an archive.
type RemoveEntry struct {
	Archive string
	Entry   string
}

func (o RemoveEntry) Name() string {
	return fmt.Sprintf("remove %q from %s", o.Entry, o.Archive)
}

func (o RemoveEntry) Target() string { return o.Archive }

func (o RemoveEntry) apply(r *Runner) error {
	target, err := bnk.Load(r.fs, r.path(o.Archive))
	if err != nil {
		return err
	}
	if err := target.RemoveEntry(o.Entry); err != nil {
		return err
	}
	return target.Save(r.fs, r.path(o.Archive))
}

// ReplaceEntry substitutes a donor archive's entry into an existing slot
// of the target archive. The slot keeps its name and position.
type ReplaceEntry struct {
	SourceArchive string
	SourceEntry   string
	TargetArchive string
	TargetEntry   string
}

func (o ReplaceEntry) Name() string {
	return fmt.Sprintf("replace %q in %s from %s", o.TargetEntry, o.TargetArchive, o.SourceArchive)
}

func (o ReplaceEntry) Target() string { return o.TargetArchive }

func (o ReplaceEntry) apply(r *Runner) error {
	e, err := r.cloneFrom(o.SourceArchive, o.SourceEntry)
	if err != nil {
		return err
	}

	target, err := bnk.Load(r.fs, r.path(o.TargetArchive))
	if err != nil {
		return err
	}
	if err := target.ReplaceEntry(o.TargetEntry, e); err != nil {
		return err
	}
	return target.Save(r.fs, r.path(o.TargetArchive))
}

// BytePatch substitutes an exact byte sequence in a raw binary.
type BytePatch struct {
	File    string
	Search  []byte
	Replace []byte
}

func (o BytePatch) Name() string {
	return fmt.Sprintf("patch %d bytes in %s", len(o.Search), o.File)
}

func (o BytePatch) Target() string { return o.File }

func (o BytePatch) apply(r *Runner) error {
	return r.patcher.Apply(r.path(o.File), o.Search, o.Replace)
}
