package main

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"pkt.systems/termlog"
)

func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	prev := termlog.CurrentConfig()
	t.Cleanup(func() { termlog.SetConfig(termlog.WithConfig(prev)) })

	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(io.Discard)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestEchoJSONCarriesMessageField(t *testing.T) {
	out, err := execute(t, "", "echo", "--json", "--color=false", "hello", "world")
	if err != nil {
		t.Fatalf("echo failed: %v", err)
	}
	want := `{"data":"hello world","message":"hello world"}` + "\n"
	if out != want {
		t.Fatalf("unexpected output\nexpected:\n%q\nactual:\n%q", want, out)
	}
}

func TestEchoText(t *testing.T) {
	out, err := execute(t, "", "echo", "--color=false", "--paint", "red", "-n", "plain", "text")
	if err != nil {
		t.Fatalf("echo failed: %v", err)
	}
	if out != "plain text" {
		t.Fatalf("unexpected output %q", out)
	}

	out, err = execute(t, "", "echo", "--color", "--paint", "red", "--palette", "solarized-dark", "hot")
	if err != nil {
		t.Fatalf("echo failed: %v", err)
	}
	if !strings.Contains(out, "\x1b[") || termlog.StripEscape(out) != "hot\n" {
		t.Fatalf("expected colored output, got %q", out)
	}
}

func TestEchoRawJSON(t *testing.T) {
	out, err := execute(t, "", "echo", "--json", "--color=false", "--raw", `{"a": [1, 2]}`)
	if err != nil {
		t.Fatalf("echo failed: %v", err)
	}
	if !strings.HasPrefix(out, `{"data":{"a":[1,2]},"message":`) {
		t.Fatalf("expected compacted raw payload, got %q", out)
	}
}

func TestEchoSilencedByVerbosity(t *testing.T) {
	out, err := execute(t, "", "echo", "--verbosity", "0", "quiet")
	if err != nil {
		t.Fatalf("echo failed: %v", err)
	}
	if out != "" {
		t.Fatalf("expected no output, got %q", out)
	}
}

func TestEchoUnknownColor(t *testing.T) {
	if _, err := execute(t, "", "echo", "--paint", "chartreuse", "x"); err == nil {
		t.Fatalf("expected error for unknown color")
	}
}

func TestFieldsFromStdin(t *testing.T) {
	out, err := execute(t, "x := a + b\n", "fields", "-")
	if err != nil {
		t.Fatalf("fields failed: %v", err)
	}
	if out != "x\na\nb\n" {
		t.Fatalf("unexpected output %q", out)
	}

	out, err = execute(t, "fmt.Println(1)", "fields", "--json", "-")
	if err != nil {
		t.Fatalf("fields failed: %v", err)
	}
	if out != "[]\n" {
		t.Fatalf("unexpected output %q", out)
	}
}

func TestFieldsFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "snippet.go")
	src := "package main\n\nfunc main() {\n\tfor i := range n {\n\t\tuse(i)\n\t}\n}\n"
	if err := os.WriteFile(path, []byte(src), 0o600); err != nil {
		t.Fatalf("write snippet: %v", err)
	}
	out, err := execute(t, "", "fields", "--json", path)
	if err != nil {
		t.Fatalf("fields failed: %v", err)
	}
	if out != `["i","n"]`+"\n" {
		t.Fatalf("unexpected output %q", out)
	}
}

func TestFieldsParseError(t *testing.T) {
	_, err := execute(t, "func (", "fields", "-")
	if err == nil || !strings.Contains(err.Error(), "-:") {
		t.Fatalf("expected parse error naming the input, got %v", err)
	}
}

func TestStrip(t *testing.T) {
	out, err := execute(t, "\x1b[31mred\x1b[0m and \x1b[38;2;1;2;3mrgb\x1b[0m", "strip")
	if err != nil {
		t.Fatalf("strip failed: %v", err)
	}
	if out != "red and rgb" {
		t.Fatalf("unexpected output %q", out)
	}
}

func TestHighlight(t *testing.T) {
	out, err := execute(t, "x := 1", "highlight", "--lexer", "go", "--indent", "2")
	if err != nil {
		t.Fatalf("highlight failed: %v", err)
	}
	if got := termlog.StripEscape(out); got != "  x := 1\n" {
		t.Fatalf("unexpected output %q", got)
	}
	if _, err := execute(t, "x", "highlight", "--lexer", "no-such-lexer"); err == nil {
		t.Fatalf("expected unknown lexer error")
	}
}

func TestPalettes(t *testing.T) {
	out, err := execute(t, "", "palettes")
	if err != nil {
		t.Fatalf("palettes failed: %v", err)
	}
	for _, name := range []string{"default", "solarized-dark", "jq", "synthwave84", "none"} {
		if !strings.Contains(out, "  "+name+"\n") {
			t.Fatalf("expected %q in output:\n%s", name, out)
		}
	}
}

func TestDemo(t *testing.T) {
	out, err := execute(t, "", "demo", "--no-banner", "--mode", "none", "--palette", "default")
	if err != nil {
		t.Fatalf("demo failed: %v", err)
	}
	if strings.Contains(out, "\x1b") {
		t.Fatalf("expected no escape sequences with --mode none")
	}
	for _, want := range []string{"default\n", "grey", "rgb(170, 0, 0)", "strike-through"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output:\n%s", want, out)
		}
	}

	out, err = execute(t, "", "demo", "--mode", "term", "--palette", "solarized-dark")
	if err != nil {
		t.Fatalf("demo failed: %v", err)
	}
	if !strings.Contains(out, "\x1b[31m") || !strings.Contains(out, "violet") {
		t.Fatalf("expected solarized terminal colors in output")
	}

	if _, err := execute(t, "", "demo", "--mode", "sepia"); err == nil {
		t.Fatalf("expected unknown mode error")
	}
}

func TestEnvFileConfiguresOutput(t *testing.T) {
	t.Setenv(termlog.EnvJSON, "")
	os.Unsetenv(termlog.EnvJSON)

	path := filepath.Join(t.TempDir(), "termlog.env")
	if err := os.WriteFile(path, []byte(termlog.EnvJSON+"=true\n"), 0o600); err != nil {
		t.Fatalf("write env file: %v", err)
	}
	out, err := execute(t, "", "--env-file", path, "echo", "--color=false", "hi")
	if err != nil {
		t.Fatalf("echo failed: %v", err)
	}
	if out != `{"data":"hi","message":"hi"}`+"\n" {
		t.Fatalf("unexpected output %q", out)
	}

	if _, err := execute(t, "", "--env-file", filepath.Join(t.TempDir(), "missing.env"), "palettes"); err == nil {
		t.Fatalf("expected error for missing env file")
	}
}
