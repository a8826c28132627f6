// Package bnk reads and writes the BNK asset container used by the
// Wildfire game engine.
//
// A BNK file stores named assets (images, audio) as a contiguous payload
// region followed by a fixed-width directory and an 18-byte footer. Payload
// bytes are opaque to this package: the per-entry compression flag and
// uncompressed size are carried through unchanged and never interpreted.
//
// An [Archive] is always constructed by parsing an existing file with
// [Load]; entries move between archives via [Archive.CloneEntry],
// [Archive.AddEntry], and [Archive.ReplaceEntry], which deep-copy so an
// archive never aliases caller-owned data. [Archive.Save] reproduces the
// engine's exact on-disk layout, byte for byte.
//
// All file access goes through an afero.Fs, so callers can run the codec
// against an in-memory filesystem. The sibling packages patch, backup, and
// catalog build the corrective-edit tooling on top of this codec.
package bnk
