package termlog

import (
	"errors"
	"strings"
	"testing"
)

func TestBeautifySingleLine(t *testing.T) {
	out, err := Beautify("x := 1", 0, "go")
	if err != nil {
		t.Fatalf("Beautify failed: %v", err)
	}
	if !strings.Contains(out, "\x1b[") {
		t.Fatalf("expected escape sequences in %q", out)
	}
	if strings.HasSuffix(out, "\n") {
		t.Fatalf("single line gained a newline: %q", out)
	}
	if stripped := StripEscape(out); stripped != "x := 1" {
		t.Fatalf("unexpected stripped text %q", stripped)
	}
}

func TestBeautifyKeepsLineStructure(t *testing.T) {
	src := "a := 1\n\n\tb := 2\n"
	out, err := Beautify(src, 2, "go")
	if err != nil {
		t.Fatalf("Beautify failed: %v", err)
	}

	const expected = "  a := 1\n\n  \tb := 2\n"
	if stripped := StripEscape(out); stripped != expected {
		t.Fatalf("unexpected stripped text\nexpected:\n%q\nactual:\n%q", expected, stripped)
	}
}

func TestBeautifyGuessesLexer(t *testing.T) {
	src := `{"a": [1, 2], "b": null}`
	out, err := Beautify(src, 0, "")
	if err != nil {
		t.Fatalf("Beautify failed: %v", err)
	}
	if stripped := StripEscape(out); stripped != src {
		t.Fatalf("unexpected stripped text %q", stripped)
	}
}

func TestBeautifyNonString(t *testing.T) {
	out, err := Beautify(42, 0, "json")
	if err != nil {
		t.Fatalf("Beautify failed: %v", err)
	}
	if stripped := StripEscape(out); stripped != "42" {
		t.Fatalf("unexpected stripped text %q", stripped)
	}
}

func TestBeautifyUnknownLexer(t *testing.T) {
	_, err := Beautify("x", 0, "no-such-lexer")
	if !errors.Is(err, ErrUnknownLexer) {
		t.Fatalf("expected ErrUnknownLexer, got %v", err)
	}
}
