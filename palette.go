package termlog

import (
	"errors"
	"fmt"
	"strings"

	"pkt.systems/termlog/internal/ansi"
)

var (
	// ErrColorNotFound is matched by every *ColorNotFoundError.
	ErrColorNotFound = errors.New("color not found")
	// ErrUnknownPalette is returned when a palette name is not registered.
	ErrUnknownPalette = errors.New("unknown palette")
)

// ColorNotFoundError reports a color name missing from a palette.
type ColorNotFoundError struct {
	Palette string
	Name    string
}

func (e *ColorNotFoundError) Error() string {
	return fmt.Sprintf("could not find color %q in palette %q", e.Name, e.Palette)
}

func (e *ColorNotFoundError) Is(target error) bool {
	return target == ErrColorNotFound
}

// Palette is an ordered set of named colors.
type Palette struct {
	Name   string
	names  []string
	colors map[string]Color
}

// NewPalette returns a palette holding colors under their names. A later
// color replaces an earlier one of the same name.
func NewPalette(name string, colors ...Color) *Palette {
	p := &Palette{Name: name, colors: make(map[string]Color, len(colors))}
	for _, c := range colors {
		p.Set(c)
	}
	return p
}

// Set adds or replaces c under c.Name.
func (p *Palette) Set(c Color) {
	name := colorKey(c.Name)
	if p.colors == nil {
		p.colors = make(map[string]Color)
	}
	if _, ok := p.colors[name]; !ok {
		p.names = append(p.names, name)
	}
	c.Name = name
	p.colors[name] = c
}

// Color returns the named color. Names are case-insensitive and "-" matches
// "_".
func (p *Palette) Color(name string) (Color, error) {
	if p != nil {
		if c, ok := p.colors[colorKey(name)]; ok {
			return c, nil
		}
	}
	pname := ""
	if p != nil {
		pname = p.Name
	}
	return Color{}, &ColorNotFoundError{Palette: pname, Name: name}
}

// Names returns the color names in definition order.
func (p *Palette) Names() []string {
	if p == nil {
		return nil
	}
	return append([]string(nil), p.names...)
}

func colorKey(name string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), "-", "_")
}

func termColor(name string, red, green, blue, term int) Color {
	c := NewColor(red, green, blue)
	c.Name = name
	c.Term = term
	return c
}

func dimColor(name string, red, green, blue, term int) Color {
	c := termColor(name, red, green, blue, term)
	c.Style.Dim = true
	return c
}

func alias(name string, c Color) Color {
	c.Name = name
	return c
}

// DefaultPalette mirrors the standard 16 terminal colors plus dim variants.
func DefaultPalette() *Palette {
	dimWhite := dimColor("dim_white", 85, 85, 85, 37)
	return NewPalette(PaletteDefault,
		termColor("black", 30, 30, 30, 30),
		termColor("red", 170, 0, 0, 31),
		termColor("green", 0, 170, 0, 32),
		termColor("yellow", 170, 170, 0, 33),
		termColor("blue", 0, 0, 170, 34),
		termColor("magenta", 170, 0, 170, 35),
		termColor("cyan", 0, 170, 170, 36),
		termColor("white", 170, 170, 170, 37),

		termColor("bright_black", 60, 60, 60, 90),
		termColor("bright_red", 255, 0, 0, 91),
		termColor("bright_green", 0, 255, 0, 92),
		termColor("bright_yellow", 255, 255, 0, 93),
		termColor("bright_blue", 0, 0, 255, 94),
		termColor("bright_magenta", 255, 0, 255, 95),
		termColor("bright_cyan", 0, 255, 255, 96),
		termColor("bright_white", 255, 255, 255, 97),

		dimColor("dim_black", 0, 0, 0, 30),
		dimColor("dim_red", 85, 0, 0, 31),
		dimColor("dim_green", 0, 85, 0, 32),
		dimColor("dim_yellow", 85, 85, 0, 33),
		dimColor("dim_blue", 0, 0, 85, 34),
		dimColor("dim_magenta", 85, 0, 85, 35),
		dimColor("dim_cyan", 0, 85, 85, 36),
		dimWhite,
		alias("grey", dimWhite),
	)
}

// SolarizedDarkPalette maps the terminal color names onto Solarized and adds
// the Solarized base and accent names.
func SolarizedDarkPalette() *Palette {
	black := termColor("black", 7, 54, 66, 30)
	white := termColor("white", 238, 232, 213, 37)
	brightBlack := termColor("bright_black", 0, 43, 54, 90)
	brightRed := termColor("bright_red", 203, 75, 22, 91)
	brightGreen := termColor("bright_green", 88, 110, 117, 92)
	brightYellow := termColor("bright_yellow", 101, 123, 131, 93)
	brightBlue := termColor("bright_blue", 131, 148, 150, 94)
	brightMagenta := termColor("bright_magenta", 108, 113, 196, 95)
	brightCyan := termColor("bright_cyan", 147, 161, 161, 96)
	brightWhite := termColor("bright_white", 253, 246, 227, 97)
	return NewPalette(PaletteSolarizedDark,
		black,
		termColor("red", 220, 50, 47, 31),
		termColor("green", 133, 153, 0, 32),
		termColor("yellow", 181, 137, 0, 33),
		termColor("blue", 38, 139, 210, 34),
		termColor("magenta", 211, 54, 130, 35),
		termColor("cyan", 42, 161, 152, 36),
		white,

		brightBlack,
		brightRed,
		brightGreen,
		brightYellow,
		brightBlue,
		brightMagenta,
		brightCyan,
		brightWhite,

		alias("base03", brightBlack),
		alias("base02", black),
		alias("base01", brightGreen),
		alias("base00", brightYellow),
		alias("base0", brightBlue),
		alias("base1", brightCyan),
		alias("base2", white),
		alias("base3", brightWhite),
		alias("orange", brightRed),
		alias("violet", brightMagenta),
	)
}

// StripEscape removes terminal color escape sequences from text.
func StripEscape(text string) string {
	return ansi.StripEscape(text)
}
