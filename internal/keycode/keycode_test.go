package keycode

import "testing"

func TestFromName(t *testing.T) {
	tests := []struct {
		name string
		want Code
		ok   bool
	}{
		{"A", A, true},
		{"a", A, true},
		{" COMMA ", Comma, true},
		{"SHIFT_LEFT", ShiftLeft, true},
		{"NUMPAD_5", Numpad5, true},
		{"9", Num9, true},
		{"NOPE", Unknown, false},
	}

	for _, tt := range tests {
		got, ok := FromName(tt.name)
		if got != tt.want || ok != tt.ok {
			t.Errorf("FromName(%q) = (%v, %v), want (%v, %v)", tt.name, got, ok, tt.want, tt.ok)
		}
	}
}

func TestString(t *testing.T) {
	if got := Comma.String(); got != "COMMA" {
		t.Errorf("Comma.String() = %q, want \"COMMA\"", got)
	}
	if got := Code(4242).String(); got != "KEY(4242)" {
		t.Errorf("Code(4242).String() = %q, want \"KEY(4242)\"", got)
	}
}

func TestIsValid(t *testing.T) {
	tests := []struct {
		code Code
		want bool
	}{
		{Unknown, false},
		{A, true},
		{Code(-1), false},
		{Code(MaxCodes), false},
		{Code(MaxCodes - 1), true},
	}

	for _, tt := range tests {
		if got := tt.code.IsValid(); got != tt.want {
			t.Errorf("Code(%d).IsValid() = %v, want %v", tt.code, got, tt.want)
		}
	}
}
