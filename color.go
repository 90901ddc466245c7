package termlog

import (
	"strconv"
	"strings"

	"github.com/goccy/go-json"

	"pkt.systems/termlog/internal/ansi"
	"pkt.systems/termlog/internal/callsite"
)

// Style holds the text attributes applied after the color sequence. Hidden
// overrides every other flag. Of each pair Dim/Bright,
// Underlined/DoubleUnderlined and Blinking/Strobing only the first set flag
// is honored.
type Style struct {
	Dim              bool
	Bright           bool
	Italics          bool
	Underlined       bool
	DoubleUnderlined bool
	Blinking         bool
	Strobing         bool
	Inverted         bool
	Hidden           bool
	StrikeThrough    bool
}

// Sequence returns the escape sequences for the style.
func (s Style) Sequence() string {
	if s.Hidden {
		return ansi.Hidden
	}
	var sb strings.Builder
	if s.Inverted {
		sb.WriteString(ansi.Inverted)
	}
	if s.StrikeThrough {
		sb.WriteString(ansi.StrikeThrough)
	}
	if s.Italics {
		sb.WriteString(ansi.Italics)
	}
	if s.Dim {
		sb.WriteString(ansi.Dim)
	} else if s.Bright {
		sb.WriteString(ansi.Bright)
	}
	if s.Underlined {
		sb.WriteString(ansi.Underlined)
	} else if s.DoubleUnderlined {
		sb.WriteString(ansi.DoubleUnderline)
	}
	if s.Blinking {
		sb.WriteString(ansi.Blinking)
	} else if s.Strobing {
		sb.WriteString(ansi.Strobing)
	}
	return sb.String()
}

// Mode selects the escape sequence family used by Color.Wrap.
type Mode int

const (
	// ModeAuto uses truecolor when the color asks for it, the terminal
	// code otherwise.
	ModeAuto Mode = iota
	// ModeTerm uses the 16-color terminal code.
	ModeTerm
	// ModeTrue uses a 24-bit sequence.
	ModeTrue
	// ModeNone disables coloring.
	ModeNone
)

// Color is a named RGB value with an optional terminal color code and text
// style. Colors without a terminal code fall back to truecolor.
type Color struct {
	Name      string
	Red       uint8
	Green     uint8
	Blue      uint8
	Term      int
	TrueColor bool
	Style     Style
}

// NewColor returns a color with the components clamped to 0..255. TrueColor
// follows the terminal's advertised support.
func NewColor(red, green, blue int) Color {
	return Color{
		Red:       clamp(red),
		Green:     clamp(green),
		Blue:      clamp(blue),
		TrueColor: ansi.TrueColorSupported(),
	}
}

func clamp(v int) uint8 {
	return uint8(max(0, min(v, 255)))
}

// Prefix returns the escape sequences written before the text in mode.
func (c Color) Prefix(mode Mode) string {
	var prefix string
	switch mode {
	case ModeNone:
		return ""
	case ModeTerm:
		prefix = c.termPrefix()
	case ModeTrue:
		prefix = c.truePrefix()
	default:
		if c.TrueColor {
			prefix = c.truePrefix()
		} else {
			prefix = c.termPrefix()
		}
	}
	return prefix + c.Style.Sequence()
}

func (c Color) termPrefix() string {
	if c.Term <= 0 {
		return c.truePrefix()
	}
	return ansi.Prefix + strconv.Itoa(c.Term) + ansi.Suffix
}

func (c Color) truePrefix() string {
	var sb strings.Builder
	sb.Grow(len(ansi.TruePrefix) + 12)
	sb.WriteString(ansi.TruePrefix)
	sb.WriteString(strconv.Itoa(int(c.Red)))
	sb.WriteByte(';')
	sb.WriteString(strconv.Itoa(int(c.Green)))
	sb.WriteByte(';')
	sb.WriteString(strconv.Itoa(int(c.Blue)))
	sb.WriteString(ansi.Suffix)
	return sb.String()
}

// Wrap returns the text of v surrounded by the color's escape sequences.
func (c Color) Wrap(v any, mode Mode) string {
	text := callsite.Text(v)
	prefix := c.Prefix(mode)
	if prefix == "" {
		return text
	}
	return prefix + text + ansi.Reset
}

// Paint wraps v in ModeAuto and keeps v alongside the result.
func (c Color) Paint(v any) Painted {
	return Painted{Raw: v, Text: c.Wrap(v, ModeAuto)}
}

// Painted is the result of coloring a value. Raw is the value before
// coloring; it is what a call-site field bound to the colored argument
// resolves to.
type Painted struct {
	Raw  any
	Text string
}

func (p Painted) String() string { return p.Text }

// MarshalJSON encodes the colored text without escape sequences.
func (p Painted) MarshalJSON() ([]byte, error) {
	return json.Marshal(ansi.StripEscape(p.Text))
}

func unwrapPainted(v any) (any, bool) {
	p, ok := v.(Painted)
	if !ok {
		return nil, false
	}
	return p.Raw, true
}

// RGB colors v with an arbitrary 24-bit color.
func RGB(v any, red, green, blue int) Painted {
	c := NewColor(red, green, blue)
	return Painted{Raw: v, Text: c.Wrap(v, ModeTrue)}
}
