package charmap

import (
	"errors"
	"strings"
	"testing"

	"github.com/dshills/keychar/internal/keycode"
	"github.com/dshills/keychar/internal/meta"
)

// baseSource is the layout used across the package tests.
const baseSource = `# test layout
type FULL

map key usage 0x070004 A

map key 30 A {
    label: 'A'
    number: '1'
    0 'a'
    shift 'A'
    capslock 'A'
}

map key 48 B {
    label: 'B'
    0 'b'
    shift 'B'
}

map key 51 COMMA {
    label: ','
    number: '?'
    0 ','
    shift '<'
}

map key 57 SPACE {
    0 ' '
}

map key 18 E {
    0 fallback ENTER
    shift 'E'
}

map key 16 Q {
    label: 'Q'
    0 'q'
    shift 'Q'
    ctrl fallback ESCAPE
    alt replace TAB
}
`

const overlaySource = `# test overlay
map key 51 COMMA {
    label: ';'
    0 ';'
    shift ':'
}
`

func mustLoad(t *testing.T, name, contents string, format Format) *Map {
	t.Helper()
	m, err := Load(name, contents, format)
	if err != nil {
		t.Fatalf("Load(%q) failed: %v", name, err)
	}
	return m
}

func loadBase(t *testing.T) *Map {
	t.Helper()
	return mustLoad(t, "base.kcm", baseSource, FormatBase)
}

func loadOverlay(t *testing.T) *Map {
	t.Helper()
	return mustLoad(t, "overlay.kcm", overlaySource, FormatOverlay)
}

func TestParseBase(t *testing.T) {
	m := loadBase(t)

	if got := m.KeyboardType(); got != KeyboardFull {
		t.Errorf("KeyboardType() = %v, want FULL", got)
	}
	if got := m.SourceName(); got != "base.kcm" {
		t.Errorf("SourceName() = %q, want \"base.kcm\"", got)
	}
	if m.OverlayApplied() {
		t.Error("freshly parsed map should have no overlay applied")
	}
	if got := len(m.KeyCodes()); got != 6 {
		t.Errorf("len(KeyCodes()) = %d, want 6", got)
	}
}

func TestParseCommaBlock(t *testing.T) {
	m := loadBase(t)
	key, ok := m.Key(keycode.Comma)
	if !ok {
		t.Fatal("COMMA entry missing")
	}
	if key.Label != ',' {
		t.Errorf("Label = %q, want ','", key.Label)
	}
	if key.Number != '?' {
		t.Errorf("Number = %q, want '?'", key.Number)
	}
	if len(key.Behaviors) != 2 {
		t.Fatalf("len(Behaviors) = %d, want 2", len(key.Behaviors))
	}
	// Sorted most specific first.
	if key.Behaviors[0].Meta != meta.ShiftOn || key.Behaviors[0].Character != '<' {
		t.Errorf("Behaviors[0] = %+v, want shift '<'", key.Behaviors[0])
	}
	if key.Behaviors[1].Meta != meta.None || key.Behaviors[1].Character != ',' {
		t.Errorf("Behaviors[1] = %+v, want base ','", key.Behaviors[1])
	}
}

func TestBehaviorsSortedBySpecificity(t *testing.T) {
	m := loadBase(t)
	for _, code := range m.KeyCodes() {
		key, _ := m.Key(code)
		for i := 1; i < len(key.Behaviors); i++ {
			prev := key.Behaviors[i-1].Meta.Specificity()
			cur := key.Behaviors[i].Meta.Specificity()
			if cur > prev {
				t.Errorf("key %s: behavior %d (specificity %d) sorted after %d (specificity %d)",
					code, i, cur, i-1, prev)
			}
		}
	}
}

func TestParseUsageDirective(t *testing.T) {
	m := loadBase(t)
	code, ok := m.MapDeviceCode(0, 0x070004)
	if !ok || code != keycode.A {
		t.Errorf("MapDeviceCode(0, 0x070004) = (%v, %v), want (A, true)", code, ok)
	}
}

func TestParseScanCodeDirective(t *testing.T) {
	m := loadBase(t)
	code, ok := m.MapDeviceCode(30, 0)
	if !ok || code != keycode.A {
		t.Errorf("MapDeviceCode(30, 0) = (%v, %v), want (A, true)", code, ok)
	}
}

func TestParseEscapes(t *testing.T) {
	src := `map key 30 A {
    0 '\n'
    shift 'é'
    alt '\\'
    ctrl '\''
}
`
	m := mustLoad(t, "esc.kcm", src, FormatAny)
	tests := []struct {
		state meta.State
		want  rune
	}{
		{meta.None, '\n'},
		{meta.ShiftOn, 'é'},
		{meta.AltOn, '\\'},
		{meta.CtrlOn, '\''},
	}
	for _, tt := range tests {
		got, ok := m.Character(keycode.A, tt.state)
		if !ok || got != tt.want {
			t.Errorf("Character(A, %s) = (%q, %v), want (%q, true)", tt.state, got, ok, tt.want)
		}
	}
}

func TestParseNamedAndNumericLiterals(t *testing.T) {
	src := `map key 30 A {
    0 space
    shift tab
    alt 0x2603
    ctrl 97
}
`
	m := mustLoad(t, "lit.kcm", src, FormatAny)
	tests := []struct {
		state meta.State
		want  rune
	}{
		{meta.None, ' '},
		{meta.ShiftOn, '\t'},
		{meta.AltOn, '☃'},
		{meta.CtrlOn, 'a'},
	}
	for _, tt := range tests {
		got, ok := m.Character(keycode.A, tt.state)
		if !ok || got != tt.want {
			t.Errorf("Character(A, %s) = (%q, %v), want (%q, true)", tt.state, got, ok, tt.want)
		}
	}
}

func TestParseOverlayFormat(t *testing.T) {
	m := loadOverlay(t)
	if got := m.KeyboardType(); got != KeyboardOverlay {
		t.Errorf("KeyboardType() = %v, want OVERLAY", got)
	}
}

func TestParseTypeOverlayWithAnyFormat(t *testing.T) {
	m := mustLoad(t, "ov.kcm", "type OVERLAY\n"+overlaySource, FormatAny)
	if got := m.KeyboardType(); got != KeyboardOverlay {
		t.Errorf("KeyboardType() = %v, want OVERLAY", got)
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name     string
		source   string
		format   Format
		wantLine int
		wantMsg  string
	}{
		{
			name:     "unknown keyword",
			source:   "frob key 30 A\n",
			format:   FormatBase,
			wantLine: 1,
			wantMsg:  "unknown keyword",
		},
		{
			name:     "type in overlay",
			source:   "type NUMERIC\n",
			format:   FormatOverlay,
			wantLine: 1,
			wantMsg:  "not allowed in overlay",
		},
		{
			name:     "type OVERLAY in base",
			source:   "type OVERLAY\n",
			format:   FormatBase,
			wantLine: 1,
			wantMsg:  "not allowed in base",
		},
		{
			name:     "unknown keyboard type",
			source:   "type WEDGE\n",
			format:   FormatBase,
			wantLine: 1,
			wantMsg:  "unknown keyboard type",
		},
		{
			name:     "duplicate type",
			source:   "type FULL\ntype FULL\n",
			format:   FormatBase,
			wantLine: 2,
			wantMsg:  "duplicate type",
		},
		{
			name:     "type after key block",
			source:   "map key 30 A {\n0 'a'\n}\ntype FULL\n",
			format:   FormatBase,
			wantLine: 4,
			wantMsg:  "must precede key blocks",
		},
		{
			name:     "unknown key name",
			source:   "map key 30 WARPCORE {\n",
			format:   FormatBase,
			wantLine: 1,
			wantMsg:  "unknown key name",
		},
		{
			name:     "duplicate key",
			source:   "map key 30 A {\n0 'a'\n}\nmap key 31 A {\n0 'a'\n}\n",
			format:   FormatBase,
			wantLine: 4,
			wantMsg:  "duplicate entry for key",
		},
		{
			name:     "duplicate scan code",
			source:   "map key 30 A {\n0 'a'\n}\nmap key 30 B {\n0 'b'\n}\n",
			format:   FormatBase,
			wantLine: 4,
			wantMsg:  "duplicate entry for scan code",
		},
		{
			name:     "missing brace",
			source:   "map key 30 A\n0 'a'\n}\n",
			format:   FormatBase,
			wantLine: 1,
			wantMsg:  "expected {",
		},
		{
			name:     "unknown modifier",
			source:   "map key 30 A {\nshift+warp 'a'\n}\n",
			format:   FormatBase,
			wantLine: 2,
			wantMsg:  "unknown modifier",
		},
		{
			name:     "duplicate modifier combination",
			source:   "map key 30 A {\nshift 'A'\nshift 'X'\n}\n",
			format:   FormatBase,
			wantLine: 3,
			wantMsg:  "duplicate modifier combination",
		},
		{
			name:     "empty key",
			source:   "map key 30 A {\n}\n",
			format:   FormatBase,
			wantLine: 2,
			wantMsg:  "empty key",
		},
		{
			name:     "unterminated block",
			source:   "map key 30 A {\n0 'a'\n",
			format:   FormatBase,
			wantLine: 3,
			wantMsg:  "unterminated key block",
		},
		{
			name:     "invalid literal",
			source:   "map key 30 A {\n0 zork\n}\n",
			format:   FormatBase,
			wantLine: 2,
			wantMsg:  "invalid character literal",
		},
		{
			name:     "unterminated literal",
			source:   "map key 30 A {\n0 'a\n}\n",
			format:   FormatBase,
			wantLine: 2,
			wantMsg:  "unterminated character literal",
		},
		{
			name:     "unterminated literal at end of line",
			source:   "map key 30 A {\n0 '\n}\n",
			format:   FormatBase,
			wantLine: 2,
			wantMsg:  "unterminated character literal",
		},
		{
			name:     "duplicate label",
			source:   "map key 30 A {\nlabel: 'a'\nlabel: 'b'\n}\n",
			format:   FormatBase,
			wantLine: 3,
			wantMsg:  "duplicate label",
		},
		{
			name:     "fallback unknown key",
			source:   "map key 30 A {\n0 fallback WARP\n}\n",
			format:   FormatBase,
			wantLine: 2,
			wantMsg:  "unknown key name",
		},
		{
			name:     "trailing garbage",
			source:   "type FULL extra\n",
			format:   FormatBase,
			wantLine: 1,
			wantMsg:  "expected end of line",
		},
		{
			name:     "invalid scan code",
			source:   "map key banana A {\n",
			format:   FormatBase,
			wantLine: 1,
			wantMsg:  "invalid scan code",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load("bad.kcm", tt.source, tt.format)
			if err == nil {
				t.Fatal("expected parse error, got nil")
			}
			var perr *ParseError
			if !errors.As(err, &perr) {
				t.Fatalf("error %v is not a *ParseError", err)
			}
			if perr.Line != tt.wantLine {
				t.Errorf("Line = %d, want %d (error: %v)", perr.Line, tt.wantLine, perr)
			}
			if !strings.Contains(perr.Message, tt.wantMsg) {
				t.Errorf("Message = %q, want substring %q", perr.Message, tt.wantMsg)
			}
			if perr.Source != "bad.kcm" {
				t.Errorf("Source = %q, want \"bad.kcm\"", perr.Source)
			}
		})
	}
}

func TestParseNoPartialMap(t *testing.T) {
	src := "map key 30 A {\n0 'a'\n}\nmap key 31 B {\nbogus\n"
	m, err := Load("bad.kcm", src, FormatBase)
	if err == nil {
		t.Fatal("expected parse error")
	}
	if m != nil {
		t.Error("failed parse must not return a partial map")
	}
}
