// Package textscan provides a line-oriented tokenizer for key character
// map sources.
//
// The tokenizer operates on already-read text; it performs no I/O. Callers
// hand it named contents and pull tokens, tracking the current line number
// for error reporting.
package textscan
