package callsite

import (
	"bytes"
	"errors"
	"go/ast"
	"reflect"
	"sort"
	"strings"
	"testing"

	"github.com/fatih/color"

	"pkt.systems/termlog/internal/logging"
)

func keySet(m *FieldMap) []string {
	keys := m.Keys()
	sort.Strings(keys)
	if keys == nil {
		keys = []string{}
	}
	return keys
}

func sorted(names ...string) []string {
	out := append([]string{}, names...)
	sort.Strings(out)
	return out
}

func TestExtractFields(t *testing.T) {
	tests := []struct {
		name string
		code string
		want []string
	}{
		{name: "empty", code: "", want: nil},
		{
			name: "nested loops",
			code: `
				for y := 0; y < 10; y++ {
					for x := 0; x < 10; x++ {
						fmt.Printf("(y=%d, x=%d)\n", y, x)
					}
				}
			`,
			want: []string{"x", "y"},
		},
		{
			name: "function declaration",
			code: `
				func big(foo string) string {
					x := foo + strings.Repeat("-", len(foo))
					for y := range 10 {
						x += strconv.Itoa(y)
					}
					return x
				}
			`,
			want: []string{"foo", "x", "y"},
		},
		{
			name: "range over int",
			code: `for y := range 10 {}`,
			want: []string{"y"},
		},
		{
			name: "range over slice",
			code: `for _, y := range items { use(y) }`,
			want: []string{"items", "y"},
		},
		{
			name: "import alias",
			code: `import p "pdb"`,
			want: []string{"p"},
		},
		{
			name: "plain import",
			code: `import "fmt"`,
			want: nil,
		},
		{
			name: "error and recover bindings",
			code: `
				x := &strings.Builder{}
				if _, err := x.WriteString("hi"); err != nil {
					panic(err)
				}
				defer func() {
					if r := recover(); r != nil {
						fmt.Println("badness:", r)
					}
				}()
			`,
			want: []string{"err", "r", "x"},
		},
		{
			name: "type switch binding",
			code: `
				switch e := err.(type) {
				case *os.PathError:
					log.Println(e.Path)
				}
			`,
			want: []string{"e", "err"},
		},
		{
			name: "command handler",
			code: `
				func run(cmd *cobra.Command, args []string) error {
					debug, _ := cmd.Flags().GetBool("debug")
					settings.Debug = debug
					sources := matchSources(args)
					termlog.Echo(termlog.Green("ingestion package"), termlog.Verbosity(verbosity))
					if verbosity-1 > 0 && !version {
						for _, source := range sources {
							termlog.Echo("Ingesting:", termlog.Cyan(source))
						}
					}
					return ingest(sources, threads, workers)
				}
			`,
			want: []string{"args", "cmd", "debug", "settings", "source", "sources", "threads", "verbosity", "version", "workers"},
		},
		{
			name: "nested calls unwrap",
			code: `f(g(x))`,
			want: []string{"x"},
		},
		{
			name: "formatted string",
			code: `fmt.Sprintf("prefix %v suffix", x)`,
			want: []string{"x"},
		},
		{
			name: "assignment",
			code: `x = a + b`,
			want: []string{"a", "b", "x"},
		},
		{
			name: "short declaration",
			code: `x := object()`,
			want: []string{"x"},
		},
		{
			name: "var block",
			code: `
				var (
					limit = max(lo, hi)
					name  string
				)
			`,
			want: []string{"hi", "limit", "lo", "name"},
		},
		{
			name: "composite literal",
			code: `cfg := Config{Name: name, Tags: []string{tag}, Extra: map[string]int{prefix + "-a": n}}`,
			want: []string{"cfg", "n", "name", "prefix", "tag"},
		},
		{
			name: "map literal with identifier keys",
			code: `m := map[string]int{k: v, "lit": w}`,
			want: []string{"k", "m", "v", "w"},
		},
		{
			name: "struct literal keys inside map values",
			code: `m := map[string]Point{k: {X: x}}`,
			want: []string{"k", "m", "x"},
		},
		{
			name: "index and slice targets",
			code: `buf[i] = data[lo:hi]`,
			want: []string{"buf", "data", "hi", "i", "lo"},
		},
		{
			name: "select and channels",
			code: `
				select {
				case v := <-in:
					out <- v
				default:
				}
			`,
			want: []string{"in", "out", "v"},
		},
		{
			name: "goroutine closure",
			code: `go func(id int) { done <- id }(worker)`,
			want: []string{"done", "id", "worker"},
		},
		{
			name: "method receiver",
			code: `func (s *Server) Close() error { return s.ln.Close() }`,
			want: []string{"s"},
		},
		{
			name: "labels and branches",
			code: `
				outer:
				for i := range n {
					if i > limit {
						break outer
					}
				}
			`,
			want: []string{"i", "limit", "n"},
		},
		{
			name: "full file",
			code: `
				package main

				import t "pkt.systems/termlog"

				func main() {
					message := "green"
					t.Echo(t.Red(message))
				}
			`,
			want: []string{"message", "t"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Extractor{}.Extract(tt.code)
			if err != nil {
				t.Fatalf("Extract failed: %v", err)
			}
			want := sorted(tt.want...)
			if actual := keySet(got); !reflect.DeepEqual(actual, want) {
				t.Fatalf("unexpected fields\nexpected:\n%q\nactual:\n%q", want, actual)
			}
			got.Range(func(name string, value any) bool {
				if value != Unresolved {
					t.Fatalf("field %q should be unresolved, got %#v", name, value)
				}
				return true
			})
		})
	}
}

func TestExtractLiteralsOnly(t *testing.T) {
	for _, code := range []string{`1`, `"a" + "b"`, `3.14 * 2`, `true`, `nil`, `'x'`, "`raw`", `-1`} {
		got, err := Extractor{}.Extract(code)
		if err != nil {
			t.Fatalf("Extract(%q) failed: %v", code, err)
		}
		if got.Len() != 0 {
			t.Fatalf("Extract(%q): expected no fields, got %q", code, got.Keys())
		}
	}
}

func TestExtractBreadthFirstOrder(t *testing.T) {
	got, err := Extractor{}.Extract(`x = f(a) + g(h(b))`)
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}
	want := []string{"x", "a", "b"}
	if actual := got.Keys(); !reflect.DeepEqual(actual, want) {
		t.Fatalf("unexpected order\nexpected:\n%q\nactual:\n%q", want, actual)
	}
}

func TestExtractIdempotent(t *testing.T) {
	code := `
		for _, y := range items {
			total += y * weight
		}
	`
	first, err := Extractor{}.Extract(code)
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}
	second, err := Extractor{}.Extract(code)
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}
	if !reflect.DeepEqual(first.Keys(), second.Keys()) {
		t.Fatalf("keys differ between runs: %q vs %q", first.Keys(), second.Keys())
	}
}

func TestExtractMultiLineCallMatchesSingleLine(t *testing.T) {
	single := `Format("A", Red(message), "message!", count)`
	multi := `Format(
		"A",
		Red(
			message,
		),
		"message!",
		count,
	)`
	a, err := Extractor{}.Extract(single)
	if err != nil {
		t.Fatalf("Extract single failed: %v", err)
	}
	b, err := Extractor{}.Extract(multi)
	if err != nil {
		t.Fatalf("Extract multi failed: %v", err)
	}
	if !reflect.DeepEqual(a.Keys(), b.Keys()) {
		t.Fatalf("multi-line call differs\nexpected:\n%q\nactual:\n%q", a.Keys(), b.Keys())
	}
}

func TestExtractTruncates(t *testing.T) {
	code := `f(a, b, c)`
	tests := []struct {
		max  int
		want []string
	}{
		{max: 1, want: []string{}},
		{max: 3, want: []string{"a"}},
		{max: 5, want: []string{"a", "b", "c"}},
	}
	for _, tt := range tests {
		var buf bytes.Buffer
		got, err := Extractor{MaxNodes: tt.max, Log: logging.Logger{Debug: true, Out: &buf}}.Extract(code)
		if err != nil {
			t.Fatalf("Extract failed: %v", err)
		}
		if actual := keySet(got); !reflect.DeepEqual(actual, tt.want) {
			t.Fatalf("MaxNodes=%d\nexpected:\n%q\nactual:\n%q", tt.max, tt.want, actual)
		}
		if truncated := strings.Contains(buf.String(), "stopped after"); truncated != (tt.max < 5) {
			t.Fatalf("MaxNodes=%d: unexpected truncation diagnostic %q", tt.max, buf.String())
		}
	}
}

func TestExtractParseError(t *testing.T) {
	got, err := Extractor{}.Extract("func (")
	if err == nil {
		t.Fatalf("expected parse error")
	}
	var perr *ParseError
	if !errors.As(err, &perr) {
		t.Fatalf("expected *ParseError, got %T", err)
	}
	if got == nil || got.Len() != 0 {
		t.Fatalf("expected empty field map on parse error")
	}
}

func TestWalkReportsUnhandledNodes(t *testing.T) {
	prev := color.NoColor
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = prev })

	var buf bytes.Buffer
	parsed := &Parsed{Nodes: []ast.Node{&ast.BadExpr{}, ast.NewIdent("kept")}, Lines: []string{"???"}}
	got := Extractor{Log: logging.Logger{Debug: true, Out: &buf}}.Walk(parsed)
	if !reflect.DeepEqual(got.Keys(), []string{"kept"}) {
		t.Fatalf("expected walk to continue past unhandled node, got %q", got.Keys())
	}
	if !strings.Contains(buf.String(), "skipping unhandled syntax node *ast.BadExpr") {
		t.Fatalf("expected diagnostic, got %q", buf.String())
	}

	buf.Reset()
	Extractor{Log: logging.Logger{Verbose: true, Out: &buf}}.Walk(parsed)
	if buf.Len() != 0 {
		t.Fatalf("expected silent walk without debug, got %q", buf.String())
	}
}

func TestDedent(t *testing.T) {
	in := "\n\t\tif x {\n\t\t\ty()\n\t\t}\n   \n"
	want := "\nif x {\n\ty()\n}\n\n"
	if got := Dedent(in); got != want {
		t.Fatalf("Dedent\nexpected:\n%q\nactual:\n%q", want, got)
	}
	if got := Dedent("a\n  b"); got != "a\n  b" {
		t.Fatalf("Dedent without common prefix changed input: %q", got)
	}
}
