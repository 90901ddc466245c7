// Package ansi provides the escape sequences, style codes and terminal
// probing used by termlog. The JSON themes are derived from the palettes in
// pkt.systems/pslog/ansi (MIT License), trimmed to the token classes a JSON
// line contains.
package ansi

import (
	"io"
	"os"
	"regexp"
	"strings"

	"github.com/mattn/go-isatty"
)

// Sequence building blocks.
const (
	Escape     = "\x1b"
	Prefix     = Escape + "["
	TruePrefix = Prefix + "38;2;"
	Suffix     = "m"
	Reset      = Prefix + "0" + Suffix
)

// Style codes. Not every terminal honors all of them.
const (
	Bright          = Prefix + "1" + Suffix
	Dim             = Prefix + "2" + Suffix
	Italics         = Prefix + "3" + Suffix
	Underlined      = Prefix + "4" + Suffix
	Blinking        = Prefix + "5" + Suffix
	Strobing        = Prefix + "6" + Suffix
	Inverted        = Prefix + "7" + Suffix
	Hidden          = Prefix + "8" + Suffix
	StrikeThrough   = Prefix + "9" + Suffix
	DoubleUnderline = Prefix + "21" + Suffix
)

// Basic 16-colour sequences used by the JSON themes.
const (
	Bold          = "\x1b[1m"
	Faint         = "\x1b[90m"
	Red           = "\x1b[31m"
	Green         = "\x1b[32m"
	Yellow        = "\x1b[33m"
	Blue          = "\x1b[34m"
	Magenta       = "\x1b[35m"
	Cyan          = "\x1b[36m"
	BrightBlue    = "\x1b[1;34m"
	BrightMagenta = "\x1b[1;35m"
)

var escapePattern = regexp.MustCompile(`\x1b\[[0-9;]+m`)

// StripEscape removes SGR escape sequences from text.
func StripEscape(text string) string {
	if !strings.Contains(text, Escape) {
		return text
	}
	return escapePattern.ReplaceAllString(text, "")
}

// TrueColorSupported reports whether COLORTERM advertises 24-bit color. The
// check is case-sensitive and only looks for "truecolor" or "24bit".
func TrueColorSupported() bool {
	term := os.Getenv("COLORTERM")
	return strings.Contains(term, "truecolor") || strings.Contains(term, "24bit")
}

// ColorEnabled reports whether w should receive colored output: NO_COLOR
// and TERM=dumb disable color, *os.File writers must be terminals, and any
// other writer is assumed to want color.
func ColorEnabled(w io.Writer) bool {
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return false
	}
	if os.Getenv("TERM") == "dumb" {
		return false
	}
	f, ok := w.(*os.File)
	if !ok {
		return w != nil
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// Theme colors the token classes of a JSON line.
type Theme struct {
	Key         string
	String      string
	Num         string
	Bool        string
	Nil         string
	Brackets    string
	Punctuation string
}

// ThemeJQ mirrors jq's default JQ_COLORS.
var ThemeJQ = Theme{
	Key:         "\x1b[1;34m",
	String:      "\x1b[0;32m",
	Num:         "\x1b[0;39m",
	Bool:        "\x1b[0;39m",
	Nil:         "\x1b[0;90m",
	Brackets:    "\x1b[1;39m",
	Punctuation: "\x1b[1;39m",
}

// ThemeClassic is the 16-colour friendly default.
var ThemeClassic = Theme{
	Key:         Cyan,
	String:      BrightBlue,
	Num:         Magenta,
	Bool:        Yellow,
	Nil:         Faint,
	Brackets:    Faint,
	Punctuation: Faint,
}

// ThemeSolarized adapts Solarized Night with teal keys and amber literals.
var ThemeSolarized = Theme{
	Key:         "\x1b[38;5;37m",
	String:      "\x1b[38;5;86m",
	Num:         "\x1b[38;5;61m",
	Bool:        "\x1b[38;5;136m",
	Nil:         "\x1b[38;5;239m",
	Brackets:    "\x1b[38;5;33m",
	Punctuation: "\x1b[38;5;239m",
}

// ThemeTokyoNight draws on Tokyo Night's neon blues and violets.
var ThemeTokyoNight = Theme{
	Key:         "\x1b[38;5;69m",
	String:      "\x1b[38;5;110m",
	Num:         "\x1b[38;5;176m",
	Bool:        "\x1b[38;5;117m",
	Nil:         "\x1b[38;5;244m",
	Brackets:    "\x1b[38;5;74m",
	Punctuation: "\x1b[38;5;244m",
}

// ThemeSynthwave84 glows with magentas, cyans and gold accents.
var ThemeSynthwave84 = Theme{
	Key:         "\x1b[38;5;198m",
	String:      "\x1b[38;5;51m",
	Num:         "\x1b[38;5;207m",
	Bool:        "\x1b[38;5;219m",
	Nil:         "\x1b[38;5;102m",
	Brackets:    "\x1b[38;5;45m",
	Punctuation: "\x1b[38;5;102m",
}
