// Package loader loads key character maps from named sources, keeps a
// per-device registry of published maps, and optionally watches layout
// files for live reload.
//
// The charmap core performs no I/O; this package is the collaborator
// that reads bytes, declares the acceptance format, and serializes
// overlay mutations by publishing fresh snapshots.
package loader
