// Package charmap implements key character maps: immutable lookup tables
// parsed from a declarative text format that resolve physical key codes
// plus modifier state into characters or fallback actions.
//
// A Map is built once from named source text, optionally layered with an
// overlay map, and then shared read-only across concurrent lookup
// callers. Combine and ClearLayoutOverlay are the only mutating
// operations; callers must serialize them against readers.
package charmap
