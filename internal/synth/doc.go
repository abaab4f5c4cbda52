// Package synth synthesizes plausible key event sequences that would
// produce a target string on a given key character map.
//
// Synthesis models physical typing: modifier keys are pressed before the
// character key and released after it, shared modifiers stay held across
// consecutive characters, and lock modifiers are never toggled — they
// are ambient state that must already match.
package synth
