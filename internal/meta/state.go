package meta

import (
	"math/bits"
	"strings"
)

// State is a bitmask of held and locked keyboard modifiers.
type State uint32

// Modifier state bits.
const (
	// None indicates no modifiers.
	None State = 0

	// ShiftOn is the generic shift bit, set when either shift key is held.
	ShiftOn State = 0x1

	// AltOn is the generic alt bit.
	AltOn State = 0x2

	// FunctionOn indicates the function modifier.
	FunctionOn State = 0x8

	// AltLeftOn and AltRightOn are the side-specific alt bits.
	AltLeftOn  State = 0x10
	AltRightOn State = 0x20

	// ShiftLeftOn and ShiftRightOn are the side-specific shift bits.
	ShiftLeftOn  State = 0x40
	ShiftRightOn State = 0x80

	// CtrlOn is the generic control bit.
	CtrlOn State = 0x1000

	// CtrlLeftOn and CtrlRightOn are the side-specific control bits.
	CtrlLeftOn  State = 0x2000
	CtrlRightOn State = 0x4000

	// MetaOn is the generic meta (super) bit.
	MetaOn State = 0x10000

	// MetaLeftOn and MetaRightOn are the side-specific meta bits.
	MetaLeftOn  State = 0x20000
	MetaRightOn State = 0x40000

	// CapsLockOn, NumLockOn and ScrollLockOn are lock states. They
	// participate in matching like held modifiers but are never toggled
	// by event synthesis.
	CapsLockOn   State = 0x100000
	NumLockOn    State = 0x200000
	ScrollLockOn State = 0x400000
)

// Group describes one modifier group: a generic bit and, for sided
// modifiers, the left and right bits. Single-bit groups leave Left and
// Right zero.
type Group struct {
	Name    string
	Generic State
	Left    State
	Right   State
}

// Mask returns all bits belonging to the group.
func (g Group) Mask() State {
	return g.Generic | g.Left | g.Right
}

// Sided returns true if the group has left/right variants.
func (g Group) Sided() bool {
	return g.Left != 0
}

// Groups is the closed enumeration of modifier groups, in matching order.
var Groups = []Group{
	{Name: "shift", Generic: ShiftOn, Left: ShiftLeftOn, Right: ShiftRightOn},
	{Name: "alt", Generic: AltOn, Left: AltLeftOn, Right: AltRightOn},
	{Name: "ctrl", Generic: CtrlOn, Left: CtrlLeftOn, Right: CtrlRightOn},
	{Name: "meta", Generic: MetaOn, Left: MetaLeftOn, Right: MetaRightOn},
	{Name: "fn", Generic: FunctionOn},
	{Name: "capslock", Generic: CapsLockOn},
	{Name: "numlock", Generic: NumLockOn},
	{Name: "scrolllock", Generic: ScrollLockOn},
}

// Has returns true if s contains all bits of other.
func (s State) Has(other State) bool {
	return s&other == other
}

// With returns s with the given bits added.
func (s State) With(other State) State {
	return s | other
}

// Without returns s with the given bits removed.
func (s State) Without(other State) State {
	return s &^ other
}

// IsEmpty returns true if no modifier bits are set.
func (s State) IsEmpty() bool {
	return s == None
}

// Specificity returns the number of set bits. Behaviors are ordered by
// descending specificity so that the first compatible behavior is the
// most constrained one.
func (s State) Specificity() int {
	return bits.OnesCount32(uint32(s))
}

// Normalize sets each sided group's generic bit whenever one of its side
// bits is set, so that side-specific states also satisfy generic masks.
func Normalize(s State) State {
	for _, g := range Groups {
		if !g.Sided() {
			continue
		}
		if s&(g.Left|g.Right) != 0 {
			s |= g.Generic
		}
	}
	return s
}

// ClearConsumed removes from state every modifier group referenced by
// mask. Consuming a side-specific bit releases the whole group, since
// the generic bit it implied no longer applies.
func ClearConsumed(state, mask State) State {
	for _, g := range Groups {
		if mask&g.Mask() != 0 {
			state &^= g.Mask()
		}
	}
	return state
}

// Compatible reports whether an event modifier state satisfies a
// behavior mask.
//
// For every group named by the mask the event must hold that group: a
// side-specific mask bit requires the matching side bit or the group's
// generic bit, a generic-only mask accepts any bit of the group. Every
// group absent from the mask must be entirely absent from the event;
// this is what makes the zero mask match exactly the no-modifier state.
func Compatible(mask, event State) bool {
	for _, g := range Groups {
		gm := g.Mask()
		bm := mask & gm
		em := event & gm
		if bm == 0 {
			if em != 0 {
				return false
			}
			continue
		}
		if em == 0 {
			return false
		}
		if bm&g.Left != 0 && em&(g.Left|g.Generic) == 0 {
			return false
		}
		if bm&g.Right != 0 && em&(g.Right|g.Generic) == 0 {
			return false
		}
	}
	return true
}

// stateNameMap maps modifier names (lowercase) used by map sources to
// state bits. "base" and "0" denote the empty combination.
var stateNameMap = map[string]State{
	"base":       None,
	"0":          None,
	"shift":      ShiftOn,
	"lshift":     ShiftLeftOn,
	"rshift":     ShiftRightOn,
	"alt":        AltOn,
	"lalt":       AltLeftOn,
	"ralt":       AltRightOn,
	"ctrl":       CtrlOn,
	"control":    CtrlOn,
	"lctrl":      CtrlLeftOn,
	"rctrl":      CtrlRightOn,
	"meta":       MetaOn,
	"lmeta":      MetaLeftOn,
	"rmeta":      MetaRightOn,
	"fn":         FunctionOn,
	"function":   FunctionOn,
	"capslock":   CapsLockOn,
	"numlock":    NumLockOn,
	"scrolllock": ScrollLockOn,
}

// FromName returns the state bits for a single modifier name
// (case-insensitive). The second result is false if the name is not
// recognized.
func FromName(name string) (State, bool) {
	s, ok := stateNameMap[strings.ToLower(name)]
	return s, ok
}

// stateNames lists bits in display order.
var stateNames = []struct {
	bit  State
	name string
}{
	{ShiftLeftOn, "lshift"},
	{ShiftRightOn, "rshift"},
	{ShiftOn, "shift"},
	{AltLeftOn, "lalt"},
	{AltRightOn, "ralt"},
	{AltOn, "alt"},
	{CtrlLeftOn, "lctrl"},
	{CtrlRightOn, "rctrl"},
	{CtrlOn, "ctrl"},
	{MetaLeftOn, "lmeta"},
	{MetaRightOn, "rmeta"},
	{MetaOn, "meta"},
	{FunctionOn, "fn"},
	{CapsLockOn, "capslock"},
	{NumLockOn, "numlock"},
	{ScrollLockOn, "scrolllock"},
}

// String returns a "+"-joined list of modifier names, or "base" for the
// empty state.
func (s State) String() string {
	if s == None {
		return "base"
	}
	var parts []string
	for _, sn := range stateNames {
		if s&sn.bit != 0 {
			parts = append(parts, sn.name)
		}
	}
	return strings.Join(parts, "+")
}
