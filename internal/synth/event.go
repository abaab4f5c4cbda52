package synth

import (
	"fmt"
	"time"

	"github.com/dshills/keychar/internal/keycode"
	"github.com/dshills/keychar/internal/meta"
)

// Action is the direction of a key event.
type Action int

const (
	// ActionDown is a key press.
	ActionDown Action = iota

	// ActionUp is a key release.
	ActionUp
)

// String returns the action name.
func (a Action) String() string {
	if a == ActionDown {
		return "down"
	}
	return "up"
}

// KeyEvent is one synthesized key press or release.
type KeyEvent struct {
	// Time is when the event was synthesized.
	Time time.Time

	// DeviceID identifies the device the event is attributed to.
	DeviceID int32

	// Action is the event direction.
	Action Action

	// KeyCode identifies the key.
	KeyCode keycode.Code

	// Meta is the modifier state in effect, including the effect of
	// this event for modifier keys.
	Meta meta.State
}

// String renders the event for logs and CLI output.
func (e KeyEvent) String() string {
	return fmt.Sprintf("%s %s [%s]", e.KeyCode, e.Action, e.Meta)
}

// UnmappableError reports a character no key and modifier combination
// can produce. Synthesis returns no partial sequence.
type UnmappableError struct {
	// Char is the character that could not be mapped.
	Char rune
}

// Error implements the error interface.
func (e *UnmappableError) Error() string {
	return fmt.Sprintf("no key combination produces %q", e.Char)
}
