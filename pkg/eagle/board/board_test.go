package board

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/OpenTraceLab/OpenTraceBOM/pkg/eagle"
)

const demoBoard = `<?xml version="1.0" encoding="utf-8"?>
<!DOCTYPE eagle SYSTEM "eagle.dtd">
<eagle version="9.6.2">
<drawing>
<board>
<elements>
<element name="R1" library="rcl" package="R0603" value="10k" x="10" y="10"/>
<element name="R2" library="rcl" package="R0603" value="1k" x="20" y="10">
<attribute name="MPN" value="CUSTOM-1K" x="20" y="8" size="1.778" layer="27" display="off"/>
</element>
<element name="C1" library="rcl" package="C0603" value="100n" x="30" y="10"/>
</elements>
</board>
</drawing>
</eagle>
`

func mustParse(t *testing.T, input string) *Board {
	t.Helper()
	b, err := Parse(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Failed to parse board: %v", err)
	}
	return b
}

func render(t *testing.T, b *Board) string {
	t.Helper()
	var buf strings.Builder
	if _, err := b.WriteTo(&buf); err != nil {
		t.Fatalf("WriteTo failed: %v", err)
	}
	return buf.String()
}

func TestParseBoard(t *testing.T) {
	b := mustParse(t, demoBoard)

	if len(b.Elements) != 3 {
		t.Fatalf("Expected 3 elements, got %d", len(b.Elements))
	}
	if b.IsEmpty() {
		t.Error("IsEmpty() = true for a board with elements")
	}

	r2 := b.Element("R2")
	if r2 == nil {
		t.Fatal("Element R2 not found")
	}
	if got := r2.Attribute("MPN"); got != "CUSTOM-1K" {
		t.Errorf("R2 MPN = %q", got)
	}
	if got := r2.Attribute("value"); got != "1k" {
		t.Errorf("R2 value = %q", got)
	}
	if got := b.Element("R1").Attribute("MPN"); got != "" {
		t.Errorf("Board elements do not inherit, got MPN %q", got)
	}
}

func TestNewBoardIsEmpty(t *testing.T) {
	b := New()
	if !b.IsEmpty() {
		t.Error("New() board is not empty")
	}
	if _, ok := b.SetAttribute("R1", "MPN", "X"); ok {
		t.Error("SetAttribute on an empty board reported a target")
	}
	if err := b.Save(filepath.Join(t.TempDir(), "x.brd")); !errors.Is(err, eagle.ErrNoDocument) {
		t.Errorf("Expected ErrNoDocument, got %v", err)
	}
}

func TestBoardWithoutElements(t *testing.T) {
	b := mustParse(t, "<eagle><drawing><board><plain/></board></drawing></eagle>")
	if !b.IsEmpty() {
		t.Error("Board without elements must be empty")
	}
}

func TestBoardSetAttribute(t *testing.T) {
	tests := []struct {
		name    string
		element string
		attr    string
		value   string
		found   bool
		outcome eagle.WriteOutcome
		present string
	}{
		{
			name:    "created child carries presentation fields",
			element: "R1",
			attr:    "MPN",
			value:   "RC0603",
			found:   true,
			outcome: eagle.WriteCreated,
			present: `<element name="R1" library="rcl" package="R0603" value="10k" x="10" y="10"><attribute name="MPN" value="RC0603" layer="27" display="off"/></element>`,
		},
		{
			name:    "existing child keeps its fields",
			element: "R2",
			attr:    "MPN",
			value:   "CUSTOM-2K",
			found:   true,
			outcome: eagle.WriteUpdated,
			present: `<attribute name="MPN" value="CUSTOM-2K" x="20" y="8" size="1.778" layer="27" display="off"/>`,
		},
		{
			name:    "value is a field",
			element: "C1",
			attr:    "value",
			value:   "220n",
			found:   true,
			outcome: eagle.WriteField,
			present: `<element name="C1" library="rcl" package="C0603" value="220n" x="30" y="10"/>`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := mustParse(t, demoBoard)
			outcome, found := b.SetAttribute(tt.element, tt.attr, tt.value)
			if found != tt.found {
				t.Errorf("SetAttribute found = %v, want %v", found, tt.found)
			}
			if outcome != tt.outcome {
				t.Errorf("SetAttribute outcome = %v, want %v", outcome, tt.outcome)
			}
			if got := b.Element(tt.element).Attribute(tt.attr); got != tt.value {
				t.Errorf("Attribute(%s) = %q, want %q", tt.attr, got, tt.value)
			}
			if out := render(t, b); !strings.Contains(out, tt.present) {
				t.Errorf("Output missing %s:\n%s", tt.present, out)
			}
		})
	}
}

func TestBoardSetAttributeUnknownElement(t *testing.T) {
	b := mustParse(t, demoBoard)

	if _, ok := b.SetAttribute("UNKNOWN", "MPN", "X"); ok {
		t.Error("SetAttribute reported an unknown element as found")
	}
	if got := render(t, b); got != demoBoard {
		t.Errorf("Unknown element changed the document:\n%s", got)
	}
}

func TestBoardSetAttributeNeverPrunes(t *testing.T) {
	b := mustParse(t, demoBoard)
	b.SetAttribute("R2", "MPN", "CUSTOM-1K")
	if got := render(t, b); got != demoBoard {
		t.Errorf("Rewriting the same value changed the document:\n%s", got)
	}
}

func TestBoardSetAttributeIdempotent(t *testing.T) {
	b := mustParse(t, demoBoard)
	b.SetAttribute("C1", "OC_MOUSER", "81-GRM188")
	first := render(t, b)
	b.SetAttribute("C1", "OC_MOUSER", "81-GRM188")
	if second := render(t, b); first != second {
		t.Errorf("Second write changed the document:\n%s\n---\n%s", first, second)
	}
}

func TestBoardLoadErrors(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr error
	}{
		{"schematic instead of board", "<eagle><drawing><schematic/></drawing></eagle>", eagle.ErrMalformedDocument},
		{"element without name", "<eagle><drawing><board><elements><element value=\"1k\"/></elements></board></drawing></eagle>", eagle.ErrMalformedDocument},
		{"duplicate element", strings.Replace(demoBoard, `<element name="C1"`, `<element name="R1"`, 1), eagle.ErrDuplicateName},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(strings.NewReader(tt.input))
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestBoardLoadClearAndSave(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "in.brd")
	out := filepath.Join(dir, "out.brd")
	if err := os.WriteFile(in, []byte(demoBoard), 0644); err != nil {
		t.Fatal(err)
	}

	b, err := ParseFile(in)
	if err != nil {
		t.Fatalf("ParseFile failed: %v", err)
	}

	if err := b.Load(filepath.Join(dir, "missing.brd")); err == nil {
		t.Fatal("Load of a missing file succeeded")
	}
	if len(b.Elements) != 3 {
		t.Error("Failed load altered the board")
	}

	b.SetAttribute("R1", "value", "22k")
	if err := b.Save(out); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	reloaded, err := ParseFile(out)
	if err != nil {
		t.Fatalf("Reload failed: %v", err)
	}
	if got := reloaded.Element("R1").Attribute("value"); got != "22k" {
		t.Errorf("R1 value after reload = %q", got)
	}

	b.Clear()
	if !b.IsEmpty() {
		t.Error("Clear() left elements behind")
	}
	if _, err := b.WriteTo(&strings.Builder{}); !errors.Is(err, eagle.ErrNoDocument) {
		t.Errorf("Expected ErrNoDocument after Clear, got %v", err)
	}
}
