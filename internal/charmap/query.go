package charmap

import (
	"github.com/dshills/keychar/internal/keycode"
	"github.com/dshills/keychar/internal/meta"
)

// keyBehavior returns the entry for a key code and its first behavior
// compatible with the event state. Behaviors are stored most specific
// first, so a single linear scan implements "most specific wins".
func (m *Map) keyBehavior(code keycode.Code, state meta.State) (*Key, *Behavior) {
	key := m.keys[code]
	if key == nil {
		return nil, nil
	}
	for i := range key.Behaviors {
		b := &key.Behaviors[i]
		if meta.Compatible(b.Meta, state) {
			return key, b
		}
	}
	return key, nil
}

// Character returns the character generated by the key under the given
// modifier state. The second result is false if none is generated.
func (m *Map) Character(code keycode.Code, state meta.State) (rune, bool) {
	_, b := m.keyBehavior(code, state)
	if b == nil || b.Character == 0 {
		return 0, false
	}
	return b.Character, true
}

// DisplayLabel returns the character physically printed on the key.
// The second result is false if the key has none.
func (m *Map) DisplayLabel(code keycode.Code) (rune, bool) {
	key := m.keys[code]
	if key == nil || key.Label == 0 {
		return 0, false
	}
	return key.Label, true
}

// Number returns the number or symbol the key generates in number-pad
// mode. The second result is false if the key has none.
func (m *Map) Number(code keycode.Code) (rune, bool) {
	key := m.keys[code]
	if key == nil || key.Number == 0 {
		return 0, false
	}
	return key.Number, true
}

// FallbackAction returns the substitute key to report when no
// application handles the original key. The matched behavior's fallback
// is paired with the event state stripped of the modifiers that behavior
// consumed; if the matched behavior has no fallback, the key's zero-mask
// behavior supplies one when distinct.
func (m *Map) FallbackAction(code keycode.Code, state meta.State) (FallbackAction, bool) {
	key, b := m.keyBehavior(code, state)
	if key == nil {
		return FallbackAction{}, false
	}
	if b != nil && b.FallbackKeyCode != 0 {
		return FallbackAction{
			KeyCode: b.FallbackKeyCode,
			Meta:    meta.ClearConsumed(state, b.Meta),
		}, true
	}
	if zb := key.zeroMask(); zb != nil && zb != b && zb.FallbackKeyCode != 0 {
		return FallbackAction{KeyCode: zb.FallbackKeyCode, Meta: state}, true
	}
	return FallbackAction{}, false
}

// Match returns the first candidate character the key can generate,
// preferring a behavior whose mask is contained in the preferred state.
// The second result is false if the key generates none of the
// candidates.
func (m *Map) Match(code keycode.Code, candidates []rune, preferred meta.State) (rune, bool) {
	key := m.keys[code]
	if key == nil {
		return 0, false
	}
	var first rune
	for i := range key.Behaviors {
		b := &key.Behaviors[i]
		if b.Character == 0 || !containsRune(candidates, b.Character) {
			continue
		}
		if preferred.Has(b.Meta) {
			return b.Character, true
		}
		if first == 0 {
			first = b.Character
		}
	}
	if first == 0 {
		return 0, false
	}
	return first, true
}

// ReverseMatch finds a key code and modifier state that generate one of
// the candidate characters. Preference, in order: a behavior mask equal
// to the preferred state, then the behavior requiring the fewest
// modifier bits, then the first match in ascending key code order.
//
// A key whose label or number equals a candidate counts as a
// zero-modifier match only when no behavior anywhere produces a
// candidate; a label is printed on the key, it says nothing about what
// the key generates, so it must never shadow a behavior.
func (m *Map) ReverseMatch(candidates []rune, preferred meta.State) (keycode.Code, meta.State, bool) {
	var (
		found     bool
		bestCode  keycode.Code
		bestState meta.State
		labelled  bool
		labelCode keycode.Code
	)
	for _, code := range m.KeyCodes() {
		key := m.keys[code]
		for i := range key.Behaviors {
			b := &key.Behaviors[i]
			if b.Character == 0 || !containsRune(candidates, b.Character) {
				continue
			}
			if b.Meta == preferred {
				return code, b.Meta, true
			}
			if !found || b.Meta.Specificity() < bestState.Specificity() {
				found, bestCode, bestState = true, code, b.Meta
			}
		}
		if !labelled && (containsRune(candidates, key.Label) || containsRune(candidates, key.Number)) {
			labelled, labelCode = true, code
		}
	}
	if found {
		return bestCode, bestState, true
	}
	if labelled {
		return labelCode, meta.None, true
	}
	return 0, meta.None, false
}

// MapDeviceCode resolves a raw device-reported code pair to a key code.
// A usage-code remap takes priority over a scan-code remap when both
// resolve. The second result is false if neither code is recognized.
func (m *Map) MapDeviceCode(scanCode, usageCode int32) (keycode.Code, bool) {
	if usageCode != 0 {
		if code, ok := m.keysByUsageCode[usageCode]; ok {
			return code, true
		}
	}
	if scanCode != 0 {
		if code, ok := m.keysByScanCode[scanCode]; ok {
			return code, true
		}
	}
	return 0, false
}

// AddKeyRemapping registers a key-code to key-code override, applied
// after device code resolution. Mapping a code to itself removes the
// override.
func (m *Map) AddKeyRemapping(from, to keycode.Code) {
	if from == to {
		delete(m.keyRemap, from)
		return
	}
	m.keyRemap[from] = to
}

// ApplyKeyRemap returns the remapped key code, or the input code if no
// remapping is registered. Remaps are a single hop; they are never
// chased transitively.
func (m *Map) ApplyKeyRemap(code keycode.Code) keycode.Code {
	if to, ok := m.keyRemap[code]; ok {
		return to
	}
	return code
}

// ApplyKeyBehavior resolves the behavior for the key and state; if it
// carries a replacement key code, that code is returned with the state
// cleared of the modifiers that triggered the substitution. Otherwise
// the input pair is returned unchanged.
func (m *Map) ApplyKeyBehavior(code keycode.Code, state meta.State) (keycode.Code, meta.State) {
	_, b := m.keyBehavior(code, state)
	if b == nil || b.ReplacementKeyCode == 0 {
		return code, state
	}
	return b.ReplacementKeyCode, meta.ClearConsumed(state, b.Meta)
}

func containsRune(runes []rune, r rune) bool {
	if r == 0 {
		return false
	}
	for _, c := range runes {
		if c == r {
			return true
		}
	}
	return false
}
