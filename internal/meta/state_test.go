package meta

import "testing"

func TestCompatibleZeroMask(t *testing.T) {
	tests := []struct {
		event  State
		expect bool
	}{
		{None, true},
		{ShiftOn, false},
		{ShiftLeftOn, false},
		{CapsLockOn, false},
		{CtrlOn | CtrlLeftOn, false},
	}

	for _, tt := range tests {
		if got := Compatible(None, tt.event); got != tt.expect {
			t.Errorf("Compatible(None, %s) = %v, want %v", tt.event, got, tt.expect)
		}
	}
}

func TestCompatibleGenericAndSides(t *testing.T) {
	tests := []struct {
		name   string
		mask   State
		event  State
		expect bool
	}{
		{"generic accepts left event", ShiftOn, ShiftLeftOn, true},
		{"generic accepts right event", ShiftOn, ShiftRightOn, true},
		{"generic accepts generic event", ShiftOn, ShiftOn, true},
		{"generic rejects empty group", ShiftOn, None, false},
		{"left accepts left", ShiftLeftOn, ShiftLeftOn, true},
		{"left accepts generic", ShiftLeftOn, ShiftOn, true},
		{"left rejects bare right", ShiftLeftOn, ShiftRightOn, false},
		{"left accepts right with generic", ShiftLeftOn, ShiftRightOn | ShiftOn, true},
		{"absent group must be empty", ShiftOn, ShiftOn | CtrlOn, false},
		{"two groups", ShiftOn | AltOn, ShiftLeftOn | AltRightOn, true},
		{"two groups one missing", ShiftOn | AltOn, ShiftLeftOn, false},
		{"lock bit required", CapsLockOn, CapsLockOn, true},
		{"lock bit missing", CapsLockOn, None, false},
		{"lock bit unexpected", ShiftOn, ShiftOn | NumLockOn, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Compatible(tt.mask, tt.event); got != tt.expect {
				t.Errorf("Compatible(%s, %s) = %v, want %v", tt.mask, tt.event, got, tt.expect)
			}
		})
	}
}

func TestCompatibleReflexive(t *testing.T) {
	masks := []State{
		None, ShiftOn, ShiftLeftOn, ShiftRightOn, AltOn, CtrlOn | ShiftOn,
		MetaLeftOn, FunctionOn, CapsLockOn, NumLockOn | ShiftOn,
	}
	for _, m := range masks {
		if !Compatible(m, m) {
			t.Errorf("Compatible(%s, %s) = false, want true", m, m)
		}
	}
}

func TestCompatibleMonotonic(t *testing.T) {
	// Gaining bits inside a group already referenced by the mask keeps
	// the match; gaining bits in an unreferenced group breaks it.
	mask := ShiftOn
	event := ShiftLeftOn
	if !Compatible(mask, event) {
		t.Fatal("base case should match")
	}
	if !Compatible(mask, event|ShiftOn) {
		t.Error("gaining the generic bit of a referenced group should keep matching")
	}
	if Compatible(mask, event|AltOn) {
		t.Error("gaining a bit in an unreferenced group should break matching")
	}
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		in   State
		want State
	}{
		{None, None},
		{ShiftLeftOn, ShiftLeftOn | ShiftOn},
		{ShiftOn, ShiftOn},
		{AltRightOn | CtrlLeftOn, AltRightOn | AltOn | CtrlLeftOn | CtrlOn},
		{CapsLockOn, CapsLockOn},
	}

	for _, tt := range tests {
		if got := Normalize(tt.in); got != tt.want {
			t.Errorf("Normalize(%s) = %s, want %s", tt.in, got, tt.want)
		}
	}
}

func TestClearConsumed(t *testing.T) {
	tests := []struct {
		state State
		mask  State
		want  State
	}{
		{ShiftLeftOn | ShiftOn, ShiftOn, None},
		{ShiftLeftOn | ShiftOn | CtrlOn, ShiftLeftOn, CtrlOn},
		{AltOn | AltRightOn, CtrlOn, AltOn | AltRightOn},
		{CapsLockOn | ShiftOn, ShiftOn | CapsLockOn, None},
	}

	for _, tt := range tests {
		if got := ClearConsumed(tt.state, tt.mask); got != tt.want {
			t.Errorf("ClearConsumed(%s, %s) = %s, want %s", tt.state, tt.mask, got, tt.want)
		}
	}
}

func TestFromName(t *testing.T) {
	tests := []struct {
		name string
		want State
		ok   bool
	}{
		{"base", None, true},
		{"0", None, true},
		{"shift", ShiftOn, true},
		{"lshift", ShiftLeftOn, true},
		{"RSHIFT", ShiftRightOn, true},
		{"ctrl", CtrlOn, true},
		{"fn", FunctionOn, true},
		{"capslock", CapsLockOn, true},
		{"bogus", None, false},
	}

	for _, tt := range tests {
		got, ok := FromName(tt.name)
		if got != tt.want || ok != tt.ok {
			t.Errorf("FromName(%q) = (%s, %v), want (%s, %v)", tt.name, got, ok, tt.want, tt.ok)
		}
	}
}

func TestSpecificity(t *testing.T) {
	if got := None.Specificity(); got != 0 {
		t.Errorf("None.Specificity() = %d, want 0", got)
	}
	if got := (ShiftOn | ShiftLeftOn).Specificity(); got != 2 {
		t.Errorf("(shift|lshift).Specificity() = %d, want 2", got)
	}
}

func TestStateString(t *testing.T) {
	if got := None.String(); got != "base" {
		t.Errorf("None.String() = %q, want \"base\"", got)
	}
	if got := (ShiftOn | CtrlOn).String(); got != "shift+ctrl" {
		t.Errorf("(shift|ctrl).String() = %q, want \"shift+ctrl\"", got)
	}
}
