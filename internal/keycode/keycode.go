// Package keycode defines the logical key code vocabulary used by key
// character maps: platform-level identifiers for physical keys,
// independent of device wiring, with name lookup in both directions.
package keycode

import (
	"fmt"
	"strings"
)

// Code is a logical key code.
type Code int32

// MaxCodes bounds the key code space accepted by maps.
const MaxCodes = 8192

// Key codes. The numbering follows the conventional layout vocabulary
// used by .kcm sources.
const (
	Unknown Code = 0

	Num0  Code = 7
	Num1  Code = 8
	Num2  Code = 9
	Num3  Code = 10
	Num4  Code = 11
	Num5  Code = 12
	Num6  Code = 13
	Num7  Code = 14
	Num8  Code = 15
	Num9  Code = 16
	Star  Code = 17
	Pound Code = 18

	A Code = 29
	B Code = 30
	C Code = 31
	D Code = 32
	E Code = 33
	F Code = 34
	G Code = 35
	H Code = 36
	I Code = 37
	J Code = 38
	K Code = 39
	L Code = 40
	M Code = 41
	N Code = 42
	O Code = 43
	P Code = 44
	Q Code = 45
	R Code = 46
	S Code = 47
	T Code = 48
	U Code = 49
	V Code = 50
	W Code = 51
	X Code = 52
	Y Code = 53
	Z Code = 54

	Comma        Code = 55
	Period       Code = 56
	AltLeft      Code = 57
	AltRight     Code = 58
	ShiftLeft    Code = 59
	ShiftRight   Code = 60
	Tab          Code = 61
	Space        Code = 62
	Enter        Code = 66
	Del          Code = 67
	Grave        Code = 68
	Minus        Code = 69
	Equals       Code = 70
	LeftBracket  Code = 71
	RightBracket Code = 72
	Backslash    Code = 73
	Semicolon    Code = 74
	Apostrophe   Code = 75
	Slash        Code = 76
	At           Code = 77
	Plus         Code = 81

	Escape     Code = 111
	CtrlLeft   Code = 113
	CtrlRight  Code = 114
	CapsLock   Code = 115
	ScrollLock Code = 116
	MetaLeft   Code = 117
	MetaRight  Code = 118
	Function   Code = 119

	NumLock        Code = 143
	Numpad0        Code = 144
	Numpad1        Code = 145
	Numpad2        Code = 146
	Numpad3        Code = 147
	Numpad4        Code = 148
	Numpad5        Code = 149
	Numpad6        Code = 150
	Numpad7        Code = 151
	Numpad8        Code = 152
	Numpad9        Code = 153
	NumpadDivide   Code = 154
	NumpadMultiply Code = 155
	NumpadSubtract Code = 156
	NumpadAdd      Code = 157
	NumpadDot      Code = 158
	NumpadComma    Code = 159
	NumpadEnter    Code = 160
	NumpadEquals   Code = 161
)

// IsValid returns true for codes a map may carry: positive and bounded.
func (c Code) IsValid() bool {
	return c > Unknown && c < MaxCodes
}

// codeNameMap maps the names used in map sources to codes.
var codeNameMap = map[string]Code{
	"0": Num0, "1": Num1, "2": Num2, "3": Num3, "4": Num4,
	"5": Num5, "6": Num6, "7": Num7, "8": Num8, "9": Num9,
	"STAR": Star, "POUND": Pound,
	"A": A, "B": B, "C": C, "D": D, "E": E, "F": F, "G": G,
	"H": H, "I": I, "J": J, "K": K, "L": L, "M": M, "N": N,
	"O": O, "P": P, "Q": Q, "R": R, "S": S, "T": T, "U": U,
	"V": V, "W": W, "X": X, "Y": Y, "Z": Z,
	"COMMA":           Comma,
	"PERIOD":          Period,
	"ALT_LEFT":        AltLeft,
	"ALT_RIGHT":       AltRight,
	"SHIFT_LEFT":      ShiftLeft,
	"SHIFT_RIGHT":     ShiftRight,
	"TAB":             Tab,
	"SPACE":           Space,
	"ENTER":           Enter,
	"DEL":             Del,
	"GRAVE":           Grave,
	"MINUS":           Minus,
	"EQUALS":          Equals,
	"LEFT_BRACKET":    LeftBracket,
	"RIGHT_BRACKET":   RightBracket,
	"BACKSLASH":       Backslash,
	"SEMICOLON":       Semicolon,
	"APOSTROPHE":      Apostrophe,
	"SLASH":           Slash,
	"AT":              At,
	"PLUS":            Plus,
	"ESCAPE":          Escape,
	"CTRL_LEFT":       CtrlLeft,
	"CTRL_RIGHT":      CtrlRight,
	"CAPS_LOCK":       CapsLock,
	"SCROLL_LOCK":     ScrollLock,
	"META_LEFT":       MetaLeft,
	"META_RIGHT":      MetaRight,
	"FUNCTION":        Function,
	"NUM_LOCK":        NumLock,
	"NUMPAD_0":        Numpad0,
	"NUMPAD_1":        Numpad1,
	"NUMPAD_2":        Numpad2,
	"NUMPAD_3":        Numpad3,
	"NUMPAD_4":        Numpad4,
	"NUMPAD_5":        Numpad5,
	"NUMPAD_6":        Numpad6,
	"NUMPAD_7":        Numpad7,
	"NUMPAD_8":        Numpad8,
	"NUMPAD_9":        Numpad9,
	"NUMPAD_DIVIDE":   NumpadDivide,
	"NUMPAD_MULTIPLY": NumpadMultiply,
	"NUMPAD_SUBTRACT": NumpadSubtract,
	"NUMPAD_ADD":      NumpadAdd,
	"NUMPAD_DOT":      NumpadDot,
	"NUMPAD_COMMA":    NumpadComma,
	"NUMPAD_ENTER":    NumpadEnter,
	"NUMPAD_EQUALS":   NumpadEquals,
}

// codeNames is the reverse of codeNameMap, built once at init.
var codeNames = func() map[Code]string {
	m := make(map[Code]string, len(codeNameMap))
	for name, code := range codeNameMap {
		m[code] = name
	}
	return m
}()

// FromName returns the code for a key name as written in map sources
// (case-insensitive). The second result is false if the name is not
// recognized.
func FromName(name string) (Code, bool) {
	c, ok := codeNameMap[strings.ToUpper(strings.TrimSpace(name))]
	return c, ok
}

// String returns the source name of the code, or "KEY(<n>)" for codes
// outside the named vocabulary.
func (c Code) String() string {
	if name, ok := codeNames[c]; ok {
		return name
	}
	return fmt.Sprintf("KEY(%d)", int32(c))
}
