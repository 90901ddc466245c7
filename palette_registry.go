package termlog

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"pkt.systems/termlog/internal/ansi"
)

const (
	PaletteDefault       = "default"
	PaletteSolarizedDark = "solarized-dark"

	themeDefaultName = "default"
	themeNoneName    = "none"
)

var (
	paletteMu       sync.RWMutex
	paletteRegistry = map[string]*Palette{
		PaletteDefault:       DefaultPalette(),
		PaletteSolarizedDark: SolarizedDarkPalette(),
	}
)

var themeRegistry = map[string]ansi.Theme{
	themeDefaultName: ansi.ThemeJQ,
	"jq":             ansi.ThemeJQ,
	"classic":        ansi.ThemeClassic,
	"solarized":      ansi.ThemeSolarized,
	"tokyo-night":    ansi.ThemeTokyoNight,
	"synthwave84":    ansi.ThemeSynthwave84,
}

func paletteKey(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return PaletteDefault
	}
	return strings.ReplaceAll(name, "_", "-")
}

// RegisterPalette makes p available under its name, replacing any palette
// registered under the same name.
func RegisterPalette(p *Palette) error {
	if p == nil || strings.TrimSpace(p.Name) == "" {
		return fmt.Errorf("register palette: name must not be empty")
	}
	paletteMu.Lock()
	defer paletteMu.Unlock()
	paletteRegistry[paletteKey(p.Name)] = p
	return nil
}

// LookupPalette returns the palette registered under name. The empty name
// selects the default palette.
func LookupPalette(name string) (*Palette, error) {
	key := paletteKey(name)
	paletteMu.RLock()
	p, ok := paletteRegistry[key]
	paletteMu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w %q (use one of: %s)", ErrUnknownPalette, key, strings.Join(PaletteNames(), ", "))
	}
	return p, nil
}

// PaletteNames returns the sorted list of registered palette names.
func PaletteNames() []string {
	paletteMu.RLock()
	names := make([]string, 0, len(paletteRegistry))
	for name := range paletteRegistry {
		names = append(names, name)
	}
	paletteMu.RUnlock()
	sort.Strings(names)
	return names
}

// JSONThemeNames returns the sorted list of JSON theme names, including
// "none".
func JSONThemeNames() []string {
	names := make([]string, 0, len(themeRegistry)+1)
	for name := range themeRegistry {
		names = append(names, name)
	}
	names = append(names, themeNoneName)
	sort.Strings(names)
	return names
}

// resolveTheme returns the JSON theme for name, defaulting to
// themeDefaultName when name is empty. The special name "none" and a false
// enableColor both yield the empty theme, after the name is validated.
func resolveTheme(name string, enableColor bool) (ansi.Theme, error) {
	key := themeDefaultName
	if strings.TrimSpace(name) != "" {
		key = strings.ToLower(strings.TrimSpace(name))
	}
	if key == themeNoneName {
		return ansi.Theme{}, nil
	}
	theme, ok := themeRegistry[key]
	if !ok {
		return ansi.Theme{}, fmt.Errorf("unknown JSON theme %q (use one of: %s)", key, strings.Join(JSONThemeNames(), ", "))
	}
	if !enableColor {
		return ansi.Theme{}, nil
	}
	return fillTheme(theme), nil
}

func fillTheme(t ansi.Theme) ansi.Theme {
	if t.Brackets == "" {
		t.Brackets = t.Nil
	}
	if t.Punctuation == "" {
		t.Punctuation = t.Brackets
	}
	return t
}
