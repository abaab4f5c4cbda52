package charmap

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/dshills/keychar/internal/keycode"
	"github.com/dshills/keychar/internal/meta"
	"github.com/dshills/keychar/internal/textscan"
)

const whitespace = textscan.Whitespace

// parseState is the parser's position in the grammar: between directives
// or inside a key block.
type parseState int

const (
	stateTop parseState = iota
	stateKey
)

// parser consumes tokens from one source and populates a map. All
// failures abort the parse and carry the offending line number.
type parser struct {
	m      *Map
	tok    *textscan.Tokenizer
	format Format

	state        parseState
	keyCode      keycode.Code
	key          *Key
	masks        map[meta.State]bool
	declaredType bool
	sawKeyBlock  bool
}

// errorf builds a ParseError at the tokenizer's current line.
func (p *parser) errorf(format string, args ...any) error {
	return &ParseError{
		Source:  p.tok.Name(),
		Line:    p.tok.LineNumber(),
		Message: fmt.Sprintf(format, args...),
	}
}

func (p *parser) parse() error {
	if p.format == FormatOverlay {
		p.m.keyboardType = KeyboardOverlay
	}
	for !p.tok.IsEOF() {
		p.tok.SkipDelimiters(whitespace)
		if !p.tok.IsEOL() && p.tok.PeekChar() != '#' {
			var err error
			switch p.state {
			case stateTop:
				err = p.parseTop()
			case stateKey:
				err = p.parseKeyLine()
			}
			if err != nil {
				return err
			}
			p.tok.SkipDelimiters(whitespace)
			if !p.tok.IsEOL() && p.tok.PeekChar() != '#' {
				return p.errorf("expected end of line, got %q", p.tok.NextToken(whitespace))
			}
		}
		p.tok.NextLine()
	}
	if p.state == stateKey {
		return p.errorf("unterminated key block for %s", p.keyCode)
	}
	return nil
}

func (p *parser) parseTop() error {
	token := p.tok.NextToken(whitespace)
	switch token {
	case "type":
		return p.parseType()
	case "map":
		return p.parseMap()
	default:
		return p.errorf("unknown keyword %q", token)
	}
}

func (p *parser) parseType() error {
	if p.format == FormatOverlay {
		return p.errorf("type directive not allowed in overlay")
	}
	if p.declaredType {
		return p.errorf("duplicate type directive")
	}
	if p.sawKeyBlock {
		return p.errorf("type directive must precede key blocks")
	}
	p.tok.SkipDelimiters(whitespace)
	name := p.tok.NextToken(whitespace)
	if name == "OVERLAY" {
		// A source may declare itself an overlay only when the caller
		// accepts either kind.
		if p.format != FormatAny {
			return p.errorf("keyboard type OVERLAY not allowed in base format")
		}
		p.m.keyboardType = KeyboardOverlay
		p.declaredType = true
		return nil
	}
	t, ok := keyboardTypeNames[name]
	if !ok {
		return p.errorf("unknown keyboard type %q", name)
	}
	p.m.keyboardType = t
	p.declaredType = true
	return nil
}

func (p *parser) parseMap() error {
	p.tok.SkipDelimiters(whitespace)
	if token := p.tok.NextToken(whitespace); token != "key" {
		return p.errorf("expected keyword \"key\", got %q", token)
	}
	p.tok.SkipDelimiters(whitespace)
	token := p.tok.NextToken(whitespace)
	if token == "usage" {
		return p.parseMapUsage()
	}

	scanCode, err := parseDeviceCode(token)
	if err != nil {
		return p.errorf("invalid scan code %q", token)
	}
	p.tok.SkipDelimiters(whitespace)
	name := p.tok.NextToken(whitespace)
	code, ok := keycode.FromName(name)
	if !ok {
		return p.errorf("unknown key name %q", name)
	}
	if _, dup := p.m.keys[code]; dup {
		return p.errorf("duplicate entry for key %s", code)
	}
	if _, dup := p.m.keysByScanCode[scanCode]; dup {
		return p.errorf("duplicate entry for scan code %d", scanCode)
	}
	p.tok.SkipDelimiters(whitespace)
	if brace := p.tok.NextToken(whitespace); brace != "{" {
		return p.errorf("expected { after key declaration, got %q", brace)
	}

	p.m.keysByScanCode[scanCode] = code
	p.state = stateKey
	p.keyCode = code
	p.key = &Key{}
	p.masks = make(map[meta.State]bool)
	p.sawKeyBlock = true
	return nil
}

func (p *parser) parseMapUsage() error {
	p.tok.SkipDelimiters(whitespace)
	token := p.tok.NextToken(whitespace)
	usageCode, err := parseDeviceCode(token)
	if err != nil {
		return p.errorf("invalid usage code %q", token)
	}
	p.tok.SkipDelimiters(whitespace)
	name := p.tok.NextToken(whitespace)
	code, ok := keycode.FromName(name)
	if !ok {
		return p.errorf("unknown key name %q", name)
	}
	if _, dup := p.m.keysByUsageCode[usageCode]; dup {
		return p.errorf("duplicate entry for usage code %d", usageCode)
	}
	p.m.keysByUsageCode[usageCode] = code
	return nil
}

// parseDeviceCode accepts decimal or 0x-prefixed hexadecimal codes.
func parseDeviceCode(token string) (int32, error) {
	n, err := strconv.ParseInt(token, 0, 32)
	if err != nil {
		return 0, err
	}
	if n < 0 {
		return 0, fmt.Errorf("negative device code %d", n)
	}
	return int32(n), nil
}

func (p *parser) parseKeyLine() error {
	if p.tok.PeekChar() == '}' {
		p.tok.NextChar()
		return p.finishKey()
	}
	token := p.tok.NextToken(whitespace)
	switch token {
	case "label:":
		return p.parseKeyCharProperty(&p.key.Label, "label")
	case "number:":
		return p.parseKeyCharProperty(&p.key.Number, "number")
	default:
		return p.parseKeyBehavior(token)
	}
}

func (p *parser) parseKeyCharProperty(dst *rune, what string) error {
	if *dst != 0 {
		return p.errorf("duplicate %s property for key %s", what, p.keyCode)
	}
	p.tok.SkipDelimiters(whitespace)
	ch, err := p.parseCharacterLiteral()
	if err != nil {
		return err
	}
	if ch == 0 {
		return p.errorf("%s property requires a character", what)
	}
	*dst = ch
	return nil
}

func (p *parser) parseKeyBehavior(modifiers string) error {
	var mask meta.State
	for _, part := range strings.Split(modifiers, "+") {
		bits, ok := meta.FromName(part)
		if !ok {
			return p.errorf("unknown modifier %q", part)
		}
		mask |= bits
	}

	b := Behavior{Meta: mask}
	p.tok.SkipDelimiters(whitespace)
	if p.tok.IsEOL() {
		return p.errorf("expected character literal or action after modifiers")
	}
	if p.tok.PeekChar() == '\'' {
		ch, err := p.parseQuotedLiteral()
		if err != nil {
			return err
		}
		b.Character = ch
	} else {
		word := p.tok.NextToken(whitespace)
		switch word {
		case "fallback":
			code, err := p.parseActionKeyName("fallback")
			if err != nil {
				return err
			}
			b.FallbackKeyCode = code
		case "replace":
			code, err := p.parseActionKeyName("replace")
			if err != nil {
				return err
			}
			b.ReplacementKeyCode = code
		default:
			ch, err := p.namedOrNumericLiteral(word)
			if err != nil {
				return err
			}
			b.Character = ch
		}
	}

	if p.masks[mask] {
		return p.errorf("duplicate modifier combination %q for key %s", mask, p.keyCode)
	}
	p.masks[mask] = true
	p.key.Behaviors = append(p.key.Behaviors, b)
	return nil
}

func (p *parser) parseActionKeyName(action string) (keycode.Code, error) {
	p.tok.SkipDelimiters(whitespace)
	name := p.tok.NextToken(whitespace)
	code, ok := keycode.FromName(name)
	if !ok {
		return 0, p.errorf("unknown key name %q after %s", name, action)
	}
	return code, nil
}

// parseCharacterLiteral accepts a quoted character, a named literal or a
// numeric code point.
func (p *parser) parseCharacterLiteral() (rune, error) {
	if p.tok.IsEOL() {
		return 0, p.errorf("expected character literal")
	}
	if p.tok.PeekChar() == '\'' {
		return p.parseQuotedLiteral()
	}
	return p.namedOrNumericLiteral(p.tok.NextToken(whitespace))
}

func (p *parser) namedOrNumericLiteral(word string) (rune, error) {
	switch word {
	case "none":
		return 0, nil
	case "space":
		return ' ', nil
	case "tab":
		return '\t', nil
	}
	n, err := strconv.ParseInt(word, 0, 32)
	if err != nil || n <= 0 || !utf8.ValidRune(rune(n)) {
		return 0, p.errorf("invalid character literal %q", word)
	}
	return rune(n), nil
}

func (p *parser) parseQuotedLiteral() (rune, error) {
	p.tok.NextChar() // opening quote
	if p.tok.IsEOL() {
		return 0, p.errorf("unterminated character literal")
	}
	r := p.tok.NextRune()
	switch r {
	case '\'':
		return 0, p.errorf("empty character literal")
	case '\\':
		esc, err := p.parseEscape()
		if err != nil {
			return 0, err
		}
		r = esc
	}
	// Peek rather than consume: crossing the newline here would charge
	// the error to the wrong line.
	if p.tok.PeekChar() != '\'' {
		return 0, p.errorf("unterminated character literal")
	}
	p.tok.NextChar()
	return r, nil
}

func (p *parser) parseEscape() (rune, error) {
	switch esc := p.tok.NextRune(); esc {
	case '\\':
		return '\\', nil
	case '\'':
		return '\'', nil
	case 'n':
		return '\n', nil
	case 't':
		return '\t', nil
	case 'r':
		return '\r', nil
	case '0':
		return 0, nil
	case 'u':
		var digits [4]byte
		for i := range digits {
			if p.tok.IsEOL() {
				return 0, p.errorf("truncated unicode escape")
			}
			digits[i] = p.tok.NextChar()
		}
		n, err := strconv.ParseUint(string(digits[:]), 16, 32)
		if err != nil || !utf8.ValidRune(rune(n)) {
			return 0, p.errorf("invalid unicode escape \\u%s", string(digits[:]))
		}
		return rune(n), nil
	default:
		return 0, p.errorf("invalid escape \\%c", esc)
	}
}

func (p *parser) finishKey() error {
	key := p.key
	if len(key.Behaviors) == 0 && key.Label == 0 && key.Number == 0 {
		return p.errorf("empty key %s", p.keyCode)
	}
	// Most specific mask first; ties keep declaration order, which pins
	// down lookup for equally specific side variants.
	sort.SliceStable(key.Behaviors, func(i, j int) bool {
		return key.Behaviors[i].Meta.Specificity() > key.Behaviors[j].Meta.Specificity()
	})
	p.m.keys[p.keyCode] = key
	p.state = stateTop
	p.keyCode = 0
	p.key = nil
	p.masks = nil
	return nil
}
