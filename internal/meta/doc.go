// Package meta models keyboard modifier state as a bitmask over a closed
// set of modifier groups and implements the compatibility test used to
// match key behaviors against event modifier state.
//
// Each of shift, alt, ctrl and meta is a group carrying a generic bit and
// left/right side-specific bits. Function and the three lock modifiers
// (caps, num, scroll) are single-bit groups. A behavior mask naming a
// group constrains the event's bits for that group; a group absent from
// the mask must be absent from the event.
package meta
