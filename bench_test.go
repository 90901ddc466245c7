package termlog

import (
	"io"
	"testing"
)

const benchCallSource = `Echo("loaded", len(items), "items for",
	user.Name, fmt.Sprintf("%d/%d", done, total),
	Red(status), WithTimestamp(verbose))`

var benchStringSink string

func BenchmarkExtractFields(b *testing.B) {
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		fields, err := ExtractFields(benchCallSource)
		if err != nil {
			b.Fatal(err)
		}
		if fields.Len() == 0 {
			b.Fatal("no fields")
		}
	}
}

func BenchmarkFormatJSONSyntheticStack(b *testing.B) {
	stack := Frames{{
		Function: "main.run",
		File:     "/app/main.go",
		Line:     12,
		Source:   `Format("user", name, "took", elapsed)`,
	}}
	logger := New(plainJSON(WithStack(stack))...)
	name, elapsed := "ada", 42

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		benchStringSink = logger.Format("user", name, "took", elapsed)
	}
}

func BenchmarkFormatJSONRuntimeStack(b *testing.B) {
	logger := New(plainJSON()...)
	name, elapsed := "ada", 42

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		benchStringSink = logger.Format("user", name, "took", elapsed)
	}
}

func BenchmarkEcho(b *testing.B) {
	logger := New(WithColor(false), WithOutput(io.Discard), WithClock(fixedClock))
	count := 7

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := logger.Echo("processed", count); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkColorizeJSON(b *testing.B) {
	line := []byte(`{"data":"A green message!","message":"green","n":[1,2.5,-3e2],"ok":true,"none":null}`)
	theme := fillTheme(themeRegistry["jq"])

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		benchStringSink = colorizeJSON(line, theme)
	}
}
