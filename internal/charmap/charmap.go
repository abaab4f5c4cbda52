package charmap

import (
	"sort"
	"strings"

	"github.com/dshills/keychar/internal/keycode"
	"github.com/dshills/keychar/internal/meta"
	"github.com/dshills/keychar/internal/textscan"
)

// KeyboardType identifies the kind of keyboard a map describes.
type KeyboardType int32

const (
	// KeyboardUnknown is the type of a map with no type declaration.
	KeyboardUnknown KeyboardType = iota

	// KeyboardNumeric is a phone-style numeric keypad.
	KeyboardNumeric

	// KeyboardPredictive is a keyboard with all letters but only a few keys.
	KeyboardPredictive

	// KeyboardAlpha is a keyboard with all letters and some numbers.
	KeyboardAlpha

	// KeyboardFull is a full PC-style keyboard.
	KeyboardFull

	// KeyboardSpecialFunction is a keyboard carrying only function keys.
	KeyboardSpecialFunction

	// KeyboardOverlay is the type assigned to maps parsed in overlay
	// format; they cannot declare a type of their own.
	KeyboardOverlay
)

// keyboardTypeNames maps type directive arguments to keyboard types.
var keyboardTypeNames = map[string]KeyboardType{
	"NUMERIC":          KeyboardNumeric,
	"PREDICTIVE":       KeyboardPredictive,
	"ALPHA":            KeyboardAlpha,
	"FULL":             KeyboardFull,
	"SPECIAL_FUNCTION": KeyboardSpecialFunction,
}

// String returns the directive name of the keyboard type.
func (t KeyboardType) String() string {
	switch t {
	case KeyboardNumeric:
		return "NUMERIC"
	case KeyboardPredictive:
		return "PREDICTIVE"
	case KeyboardAlpha:
		return "ALPHA"
	case KeyboardFull:
		return "FULL"
	case KeyboardSpecialFunction:
		return "SPECIAL_FUNCTION"
	case KeyboardOverlay:
		return "OVERLAY"
	default:
		return "UNKNOWN"
	}
}

// Format selects how source text is interpreted when loading a map.
type Format int

const (
	// FormatBase is a full-authority layout that may declare a keyboard
	// type.
	FormatBase Format = iota

	// FormatOverlay is a restricted layout that may only add or
	// override key entries; a type directive is a parse error.
	FormatOverlay

	// FormatAny accepts base layouts and, when the source declares
	// "type OVERLAY", overlay layouts.
	FormatAny
)

// String returns the format name.
func (f Format) String() string {
	switch f {
	case FormatBase:
		return "base"
	case FormatOverlay:
		return "overlay"
	case FormatAny:
		return "any"
	default:
		return "unknown"
	}
}

// FormatFromName returns the Format named by s (case-insensitive).
func FormatFromName(s string) (Format, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "base":
		return FormatBase, true
	case "overlay":
		return FormatOverlay, true
	case "any":
		return FormatAny, true
	default:
		return FormatBase, false
	}
}

// Behavior is one modifier-conditioned outcome for a key.
type Behavior struct {
	// Meta is the modifier mask this behavior requires.
	Meta meta.State

	// Character is the character produced, or 0 if none.
	Character rune

	// FallbackKeyCode is the key code reported when the key is not
	// handled, or 0 if none.
	FallbackKeyCode keycode.Code

	// ReplacementKeyCode is the key code to substitute outright, or 0
	// if none.
	ReplacementKeyCode keycode.Code
}

// Key describes one physical key's behavior within a map.
type Key struct {
	// Label is the character printed on the key, or 0 if none.
	Label rune

	// Number is the character produced in number-pad mode, or 0 if none.
	Number rune

	// Behaviors is sorted from most specific to least specific modifier
	// mask. The order is established when the key's block is parsed.
	Behaviors []Behavior
}

// clone returns a deep copy of the key.
func (k *Key) clone() *Key {
	c := &Key{Label: k.Label, Number: k.Number}
	c.Behaviors = append([]Behavior(nil), k.Behaviors...)
	return c
}

// zeroMask returns the key's zero-mask behavior, or nil if it has none.
func (k *Key) zeroMask() *Behavior {
	for i := range k.Behaviors {
		if k.Behaviors[i].Meta == meta.None {
			return &k.Behaviors[i]
		}
	}
	return nil
}

// FallbackAction is the substitute key code and modifier state inferred
// when no application handles the original key.
type FallbackAction struct {
	KeyCode keycode.Code
	Meta    meta.State
}

// Map is an immutable key character map: keyboard type, per-key-code
// entries and remapping tables, parsed from a named text source.
type Map struct {
	keyboardType    KeyboardType
	keys            map[keycode.Code]*Key
	keysByScanCode  map[int32]keycode.Code
	keysByUsageCode map[int32]keycode.Code
	keyRemap        map[keycode.Code]keycode.Code
	sourceName      string
	overlayApplied  bool
}

// newMap creates an empty map for the given source name.
func newMap(sourceName string) *Map {
	return &Map{
		keys:            make(map[keycode.Code]*Key),
		keysByScanCode:  make(map[int32]keycode.Code),
		keysByUsageCode: make(map[int32]keycode.Code),
		keyRemap:        make(map[keycode.Code]keycode.Code),
		sourceName:      sourceName,
	}
}

// Load parses a key character map from its named text contents. No map
// is returned if any line fails to parse.
func Load(name, contents string, format Format) (*Map, error) {
	m := newMap(name)
	p := &parser{
		m:      m,
		tok:    textscan.New(name, contents),
		format: format,
	}
	if err := p.parse(); err != nil {
		return nil, err
	}
	return m, nil
}

// KeyboardType returns the keyboard type declared by the source, or
// KeyboardOverlay for overlay-format maps.
func (m *Map) KeyboardType() KeyboardType {
	return m.keyboardType
}

// SourceName returns the name of the text this map was parsed from.
func (m *Map) SourceName() string {
	return m.sourceName
}

// OverlayApplied returns true if at least one Combine succeeded since
// the map was constructed or last cleared.
func (m *Map) OverlayApplied() bool {
	return m.overlayApplied
}

// KeyCodes returns the key codes with entries, in ascending order.
func (m *Map) KeyCodes() []keycode.Code {
	codes := make([]keycode.Code, 0, len(m.keys))
	for code := range m.keys {
		codes = append(codes, code)
	}
	sort.Slice(codes, func(i, j int) bool { return codes[i] < codes[j] })
	return codes
}

// Clone returns a deep copy of the map. Mutating operations are applied
// to clones so readers of the original never observe a partially
// combined map.
func (m *Map) Clone() *Map {
	c := newMap(m.sourceName)
	c.keyboardType = m.keyboardType
	c.overlayApplied = m.overlayApplied
	for code, key := range m.keys {
		c.keys[code] = key.clone()
	}
	for scanCode, code := range m.keysByScanCode {
		c.keysByScanCode[scanCode] = code
	}
	for usageCode, code := range m.keysByUsageCode {
		c.keysByUsageCode[usageCode] = code
	}
	for from, to := range m.keyRemap {
		c.keyRemap[from] = to
	}
	return c
}

// Key returns a copy of the entry for a key code, if present.
func (m *Map) Key(code keycode.Code) (Key, bool) {
	key := m.keys[code]
	if key == nil {
		return Key{}, false
	}
	return *key.clone(), true
}
