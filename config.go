package termlog

import (
	"errors"
	"fmt"
	"io"
	"maps"
	"os"
	"sync"
	"time"

	"github.com/spf13/cast"

	"pkt.systems/termlog/internal/ansi"
	"pkt.systems/termlog/internal/callsite"
)

// DefaultTimeFormat is the strftime layout of record timestamps.
const DefaultTimeFormat = "%Y%m%d%H%M%S"

// Config controls how records are built, rendered and written.
type Config struct {
	// Color enables escape sequences in the output. When false they are
	// stripped, including those added by the color helpers.
	Color bool
	// JSON renders records as one JSON object per line.
	JSON bool
	// Timestamp prefixes text output with the record time and adds a
	// "timestamp" member to JSON output.
	Timestamp bool
	// TimeFormat is a strftime layout.
	TimeFormat string
	// Palette names the registered palette used by the color helpers.
	Palette string
	// JSONTheme names the theme used to color JSON output.
	JSONTheme string
	// Lexer highlights text output when color is on. Empty disables
	// highlighting.
	Lexer string
	// Verbosity below 1 silences Echo.
	Verbosity int
	// Debug writes diagnostics about call-site extraction to stderr.
	Debug bool
	// MaxNodes bounds the extraction of a single call site.
	MaxNodes int
	// Globals resolves field names that are not arguments of the call.
	Globals Scope
	// Out receives Echo output. Nil means os.Stdout.
	Out io.Writer
	// End is written after each echoed line.
	End string
	// Stack overrides the runtime call stack, mostly for tests.
	Stack Stack
	// Sources overrides how caller source files are read.
	Sources SourceReader
	// Now returns the record time. Nil means time.Now in UTC.
	Now func() time.Time
}

// Option adjusts a Config. Options are accepted by New, SetConfig and,
// inline among the messages, by Format, Echo and friends.
type Option func(*Config)

// DefaultConfig returns the configuration termlog starts with. Color is
// enabled when stdout is a terminal and NO_COLOR is unset.
func DefaultConfig() Config {
	return Config{
		Color:      ansi.ColorEnabled(os.Stdout),
		TimeFormat: DefaultTimeFormat,
		Palette:    PaletteDefault,
		JSONTheme:  themeDefaultName,
		Verbosity:  1,
		MaxNodes:   callsite.DefaultMaxNodes,
		End:        "\n",
	}
}

var (
	configMu      sync.RWMutex
	defaultConfig = DefaultConfig()
)

// SetConfig applies opts to the process-wide configuration and returns the
// result.
func SetConfig(opts ...Option) Config {
	configMu.Lock()
	defer configMu.Unlock()
	cfg := defaultConfig.clone()
	cfg.apply(opts)
	defaultConfig = cfg
	return cfg.clone()
}

// CurrentConfig returns a copy of the process-wide configuration.
func CurrentConfig() Config {
	configMu.RLock()
	defer configMu.RUnlock()
	return defaultConfig.clone()
}

func (c Config) clone() Config {
	c.Globals = maps.Clone(c.Globals)
	return c
}

func (c *Config) apply(opts []Option) {
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
}

func (c Config) now() time.Time {
	if c.Now != nil {
		return c.Now()
	}
	return time.Now().UTC()
}

func (c Config) out() io.Writer {
	if c.Out != nil {
		return c.Out
	}
	return os.Stdout
}

// Environment variables read by ConfigFromEnv.
const (
	EnvColor      = "TERMLOG_COLOR"
	EnvJSON       = "TERMLOG_JSON"
	EnvTimestamp  = "TERMLOG_TIMESTAMP"
	EnvTimeFormat = "TERMLOG_TIME_FORMAT"
	EnvPalette    = "TERMLOG_PALETTE"
	EnvJSONTheme  = "TERMLOG_JSON_THEME"
	EnvVerbosity  = "TERMLOG_VERBOSITY"
	EnvDebug      = "TERMLOG_DEBUG"
)

// ConfigFromEnv overlays the TERMLOG_* environment variables on the
// current configuration. NO_COLOR disables color regardless of
// TERMLOG_COLOR. Values that do not parse are reported and left unchanged.
func ConfigFromEnv() (Config, error) {
	prev := CurrentConfig()
	cfg := prev.clone()
	var errs []error
	envBool := func(key string, dst *bool) {
		raw, ok := os.LookupEnv(key)
		if !ok {
			return
		}
		v, err := cast.ToBoolE(raw)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", key, err))
			return
		}
		*dst = v
	}
	envString := func(key string, dst *string) {
		if raw, ok := os.LookupEnv(key); ok {
			*dst = raw
		}
	}

	envBool(EnvColor, &cfg.Color)
	envBool(EnvJSON, &cfg.JSON)
	envBool(EnvTimestamp, &cfg.Timestamp)
	envBool(EnvDebug, &cfg.Debug)
	envString(EnvTimeFormat, &cfg.TimeFormat)
	envString(EnvPalette, &cfg.Palette)
	envString(EnvJSONTheme, &cfg.JSONTheme)
	if raw, ok := os.LookupEnv(EnvVerbosity); ok {
		v, err := cast.ToIntE(raw)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", EnvVerbosity, err))
		} else {
			cfg.Verbosity = v
		}
	}
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		cfg.Color = false
	}
	if _, err := LookupPalette(cfg.Palette); err != nil {
		errs = append(errs, fmt.Errorf("%s: %w", EnvPalette, err))
		cfg.Palette = prev.Palette
	}
	if _, err := resolveTheme(cfg.JSONTheme, false); err != nil {
		errs = append(errs, fmt.Errorf("%s: %w", EnvJSONTheme, err))
		cfg.JSONTheme = prev.JSONTheme
	}
	return cfg, errors.Join(errs...)
}

// WithConfig replaces the whole configuration.
func WithConfig(cfg Config) Option {
	return func(c *Config) { *c = cfg.clone() }
}

// WithColor turns escape sequences in the output on or off.
func WithColor(enabled bool) Option {
	return func(c *Config) { c.Color = enabled }
}

// WithJSON renders records as JSON lines.
func WithJSON(enabled bool) Option {
	return func(c *Config) { c.JSON = enabled }
}

// WithTimestamp adds the record time to text and JSON output.
func WithTimestamp(enabled bool) Option {
	return func(c *Config) { c.Timestamp = enabled }
}

// WithTimeFormat sets the strftime layout. An empty layout restores
// DefaultTimeFormat.
func WithTimeFormat(layout string) Option {
	return func(c *Config) {
		if layout == "" {
			layout = DefaultTimeFormat
		}
		c.TimeFormat = layout
	}
}

// WithPalette selects the registered palette used by the color helpers.
func WithPalette(name string) Option {
	return func(c *Config) { c.Palette = name }
}

// WithJSONTheme selects the theme that colors JSON output.
func WithJSONTheme(name string) Option {
	return func(c *Config) { c.JSONTheme = name }
}

// WithLexer highlights colored text output with the named chroma lexer.
func WithLexer(name string) Option {
	return func(c *Config) { c.Lexer = name }
}

// WithVerbosity sets the verbosity; negative levels count as 0.
func WithVerbosity(level int) Option {
	return func(c *Config) { c.Verbosity = max(level, 0) }
}

// WithDebug writes call-site extraction diagnostics to stderr.
func WithDebug(enabled bool) Option {
	return func(c *Config) { c.Debug = enabled }
}

// WithMaxNodes bounds the syntax nodes visited per call site.
func WithMaxNodes(n int) Option {
	return func(c *Config) { c.MaxNodes = n }
}

// WithGlobals adds name bindings used to resolve fields.
func WithGlobals(globals map[string]any) Option {
	return func(c *Config) {
		if len(globals) == 0 {
			return
		}
		if c.Globals == nil {
			c.Globals = make(Scope, len(globals))
		}
		maps.Copy(c.Globals, globals)
	}
}

// WithGlobal adds a single name binding.
func WithGlobal(name string, value any) Option {
	return WithGlobals(map[string]any{name: value})
}

// WithOutput sets the writer Echo writes to.
func WithOutput(w io.Writer) Option {
	return func(c *Config) { c.Out = w }
}

// WithEnd sets the string Echo writes after each line.
func WithEnd(end string) Option {
	return func(c *Config) { c.End = end }
}

// WithStack replaces the runtime call stack, mostly for tests.
func WithStack(s Stack) Option {
	return func(c *Config) { c.Stack = s }
}

// WithSources replaces how caller source files are read.
func WithSources(r SourceReader) Option {
	return func(c *Config) { c.Sources = r }
}

// WithClock sets the source of record timestamps.
func WithClock(now func() time.Time) Option {
	return func(c *Config) { c.Now = now }
}
