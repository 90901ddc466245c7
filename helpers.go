package termlog

import "pkt.systems/termlog/internal/callsite"

// Paint colors v with the named color of the configured palette.
func Paint(name string, v any) (Painted, error) {
	p, err := LookupPalette(CurrentConfig().Palette)
	if err != nil {
		return Painted{Raw: v, Text: callsite.Text(v)}, err
	}
	c, err := p.Color(name)
	if err != nil {
		return Painted{Raw: v, Text: callsite.Text(v)}, err
	}
	return c.Paint(v), nil
}

// paintNamed is Paint for the names every palette defines. An unknown
// palette or color leaves v uncolored.
func paintNamed(name string, v any) Painted {
	p, _ := Paint(name, v)
	return p
}

// Black paints v black.
func Black(v any) Painted { return paintNamed("black", v) }
// Red paints v red.
func Red(v any) Painted { return paintNamed("red", v) }
// Green paints v green.
func Green(v any) Painted { return paintNamed("green", v) }
// Yellow paints v yellow.
func Yellow(v any) Painted { return paintNamed("yellow", v) }
// Blue paints v blue.
func Blue(v any) Painted { return paintNamed("blue", v) }
// Magenta paints v magenta.
func Magenta(v any) Painted { return paintNamed("magenta", v) }
// Cyan paints v cyan.
func Cyan(v any) Painted { return paintNamed("cyan", v) }
// White paints v white.
func White(v any) Painted { return paintNamed("white", v) }

// BrightBlack paints v bright black.
func BrightBlack(v any) Painted { return paintNamed("bright_black", v) }
// BrightRed paints v bright red.
func BrightRed(v any) Painted { return paintNamed("bright_red", v) }
// BrightGreen paints v bright green.
func BrightGreen(v any) Painted { return paintNamed("bright_green", v) }
// BrightYellow paints v bright yellow.
func BrightYellow(v any) Painted { return paintNamed("bright_yellow", v) }
// BrightBlue paints v bright blue.
func BrightBlue(v any) Painted { return paintNamed("bright_blue", v) }
// BrightMagenta paints v bright magenta.
func BrightMagenta(v any) Painted { return paintNamed("bright_magenta", v) }
// BrightCyan paints v bright cyan.
func BrightCyan(v any) Painted { return paintNamed("bright_cyan", v) }
// BrightWhite paints v bright white.
func BrightWhite(v any) Painted { return paintNamed("bright_white", v) }

// DimBlack paints v dim black.
func DimBlack(v any) Painted { return paintNamed("dim_black", v) }
// DimRed paints v dim red.
func DimRed(v any) Painted { return paintNamed("dim_red", v) }
// DimGreen paints v dim green.
func DimGreen(v any) Painted { return paintNamed("dim_green", v) }
// DimYellow paints v dim yellow.
func DimYellow(v any) Painted { return paintNamed("dim_yellow", v) }
// DimBlue paints v dim blue.
func DimBlue(v any) Painted { return paintNamed("dim_blue", v) }
// DimMagenta paints v dim magenta.
func DimMagenta(v any) Painted { return paintNamed("dim_magenta", v) }
// DimCyan paints v dim cyan.
func DimCyan(v any) Painted { return paintNamed("dim_cyan", v) }
// DimWhite paints v dim white.
func DimWhite(v any) Painted { return paintNamed("dim_white", v) }

// Grey paints v grey.
func Grey(v any) Painted { return paintNamed("grey", v) }

// Solarized accents, defined by the solarized-dark palette. Other palettes
// leave v uncolored.

// Orange paints v orange.
func Orange(v any) Painted { return paintNamed("orange", v) }
// Violet paints v violet.
func Violet(v any) Painted { return paintNamed("violet", v) }
