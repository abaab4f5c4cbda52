package textscan

import (
	"strings"
	"unicode/utf8"
)

// Whitespace contains the delimiters treated as token separators by the
// key character map grammar.
const Whitespace = " \t\r"

// Tokenizer walks named text contents token by token, tracking the
// current line number.
type Tokenizer struct {
	name     string
	contents string
	pos      int
	line     int
}

// New creates a tokenizer over the given contents. The name identifies
// the source in error messages; it is not opened or read.
func New(name, contents string) *Tokenizer {
	return &Tokenizer{
		name:     name,
		contents: contents,
		line:     1,
	}
}

// Name returns the source name the tokenizer was created with.
func (t *Tokenizer) Name() string {
	return t.name
}

// LineNumber returns the 1-based line number of the current position.
func (t *Tokenizer) LineNumber() int {
	return t.line
}

// IsEOF returns true if the entire input has been consumed.
func (t *Tokenizer) IsEOF() bool {
	return t.pos >= len(t.contents)
}

// IsEOL returns true if the current position is at the end of a line
// (a newline character or the end of input).
func (t *Tokenizer) IsEOL() bool {
	return t.IsEOF() || t.contents[t.pos] == '\n'
}

// PeekChar returns the character at the current position without
// consuming it. Returns 0 at end of input.
func (t *Tokenizer) PeekChar() byte {
	if t.IsEOF() {
		return 0
	}
	return t.contents[t.pos]
}

// NextChar consumes and returns the character at the current position.
// Returns 0 at end of input.
func (t *Tokenizer) NextChar() byte {
	if t.IsEOF() {
		return 0
	}
	ch := t.contents[t.pos]
	t.pos++
	if ch == '\n' {
		t.line++
	}
	return ch
}

// NextRune consumes and returns the UTF-8 rune at the current position.
// Returns 0 at end of input.
func (t *Tokenizer) NextRune() rune {
	if t.IsEOF() {
		return 0
	}
	r, size := utf8.DecodeRuneInString(t.contents[t.pos:])
	t.pos += size
	if r == '\n' {
		t.line++
	}
	return r
}

// NextToken consumes and returns the run of characters up to the next
// delimiter or end of line. The delimiter itself is not consumed.
func (t *Tokenizer) NextToken(delimiters string) string {
	start := t.pos
	for !t.IsEOL() {
		ch := t.contents[t.pos]
		if strings.IndexByte(delimiters, ch) >= 0 {
			break
		}
		t.pos++
	}
	return t.contents[start:t.pos]
}

// SkipDelimiters consumes any run of the given delimiters, stopping at
// end of line.
func (t *Tokenizer) SkipDelimiters(delimiters string) {
	for !t.IsEOL() && strings.IndexByte(delimiters, t.contents[t.pos]) >= 0 {
		t.pos++
	}
}

// NextLine advances past the end of the current line.
func (t *Tokenizer) NextLine() {
	for !t.IsEOF() {
		if t.NextChar() == '\n' {
			return
		}
	}
}
