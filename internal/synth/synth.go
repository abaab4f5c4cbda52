package synth

import (
	"time"

	"github.com/dshills/keychar/internal/charmap"
	"github.com/dshills/keychar/internal/keycode"
	"github.com/dshills/keychar/internal/meta"
)

// lockMask covers the lock modifiers synthesis treats as ambient.
const lockMask = meta.CapsLockOn | meta.NumLockOn | meta.ScrollLockOn

// heldGroup describes the physical key choices for one holdable
// modifier group. Generic requests use the left key; single-key groups
// have no right key.
type heldGroup struct {
	generic  meta.State
	left     meta.State
	right    meta.State
	leftKey  keycode.Code
	rightKey keycode.Code
}

func (g heldGroup) mask() meta.State {
	return g.generic | g.left | g.right
}

// choose picks the physical key for a mask's requirement on this group.
func (g heldGroup) choose(mask meta.State) (keycode.Code, meta.State) {
	switch {
	case g.right != 0 && mask&g.right != 0 && mask&g.left == 0:
		return g.rightKey, g.right | g.generic
	case g.left != 0:
		return g.leftKey, g.left | g.generic
	default:
		return g.leftKey, g.generic
	}
}

var heldGroups = []heldGroup{
	{meta.ShiftOn, meta.ShiftLeftOn, meta.ShiftRightOn, keycode.ShiftLeft, keycode.ShiftRight},
	{meta.AltOn, meta.AltLeftOn, meta.AltRightOn, keycode.AltLeft, keycode.AltRight},
	{meta.CtrlOn, meta.CtrlLeftOn, meta.CtrlRightOn, keycode.CtrlLeft, keycode.CtrlRight},
	{meta.MetaOn, meta.MetaLeftOn, meta.MetaRightOn, keycode.MetaLeft, keycode.MetaRight},
	{generic: meta.FunctionOn, leftKey: keycode.Function},
}

// resolved is one target character's key and modifier requirement.
type resolved struct {
	ch   rune
	code keycode.Code
	mask meta.State
}

// Synthesize produces a key event sequence that would type text on the
// given map, starting from no held modifiers.
func Synthesize(m *charmap.Map, deviceID int32, text string) ([]KeyEvent, error) {
	return SynthesizeAmbient(m, deviceID, text, meta.None)
}

// SynthesizeAmbient is Synthesize with caller-supplied ambient modifier
// state, typically lock bits. Every character is resolved before any
// event is emitted, so a failure returns no partial sequence. Lock
// modifiers are never toggled: a character whose behavior requires a
// lock state other than the ambient one is unmappable.
func SynthesizeAmbient(m *charmap.Map, deviceID int32, text string, ambient meta.State) ([]KeyEvent, error) {
	runes := []rune(text)
	steps := make([]resolved, 0, len(runes))
	for _, ch := range runes {
		code, mask, ok := m.ReverseMatch([]rune{ch}, ambient)
		if !ok {
			return nil, &UnmappableError{Char: ch}
		}
		if mask&lockMask != ambient&lockMask {
			return nil, &UnmappableError{Char: ch}
		}
		steps = append(steps, resolved{ch: ch, code: code, mask: mask})
	}

	s := &synthesizer{
		m:        m,
		deviceID: deviceID,
		now:      time.Now(),
		ambient:  ambient,
		state:    ambient,
	}
	for i, step := range steps {
		next := meta.None
		if i+1 < len(steps) {
			next = steps[i+1].mask
		}
		s.typeKey(step, next)
	}
	return s.events, nil
}

// heldKey is a modifier key pressed ephemerally by the synthesizer.
type heldKey struct {
	key   keycode.Code
	bits  meta.State
	group meta.State
}

type synthesizer struct {
	m        *charmap.Map
	deviceID int32
	now      time.Time
	ambient  meta.State
	state    meta.State
	held     []heldKey
	events   []KeyEvent
}

// typeKey emits the events for one character: modifier downs for bits
// not already held, the character key down and up, then modifier ups
// for keys the next character does not share.
func (s *synthesizer) typeKey(step resolved, nextMask meta.State) {
	for _, g := range heldGroups {
		gm := g.mask()
		if step.mask&gm == 0 {
			continue
		}
		if s.ambient&gm != 0 || s.groupHeld(gm) {
			continue
		}
		key, bits := g.choose(step.mask)
		s.state = s.state.With(bits)
		s.held = append(s.held, heldKey{key: key, bits: bits, group: gm})
		s.emit(ActionDown, key)
	}

	s.emit(ActionDown, step.code)
	s.emit(ActionUp, step.code)

	// One-character lookahead: keep modifiers the next character needs.
	var remaining []heldKey
	var release []heldKey
	for _, h := range s.held {
		if nextMask&h.group != 0 {
			remaining = append(remaining, h)
		} else {
			release = append(release, h)
		}
	}
	s.held = remaining
	for i := len(release) - 1; i >= 0; i-- {
		s.recomputeState(release[:i])
		s.emit(ActionUp, release[i].key)
	}
}

// recomputeState rebuilds the modifier state from the ambient state,
// the keys still held and the keys not yet released.
func (s *synthesizer) recomputeState(pending []heldKey) {
	s.state = s.ambient
	for _, h := range s.held {
		s.state = s.state.With(h.bits)
	}
	for _, h := range pending {
		s.state = s.state.With(h.bits)
	}
}

func (s *synthesizer) groupHeld(group meta.State) bool {
	for _, h := range s.held {
		if h.group == group {
			return true
		}
	}
	return false
}

func (s *synthesizer) emit(action Action, key keycode.Code) {
	s.events = append(s.events, KeyEvent{
		Time:     s.now,
		DeviceID: s.deviceID,
		Action:   action,
		KeyCode:  key,
		Meta:     s.state,
	})
}
