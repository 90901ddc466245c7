package termlog

import (
	"io"
)

// Logger formats and echoes messages, enriching JSON output with the
// variables named in the calling expression.
type Logger struct {
	cfg Config
}

// New returns a logger configured from the process-wide configuration with
// opts applied.
func New(opts ...Option) *Logger {
	cfg := CurrentConfig()
	cfg.apply(opts)
	return &Logger{cfg: cfg}
}

// Default returns a logger bound to the current process-wide configuration.
func Default() *Logger {
	return &Logger{cfg: CurrentConfig()}
}

// Config returns a copy of the logger's configuration.
func (l *Logger) Config() Config {
	return l.cfg.clone()
}

// With returns a logger with opts applied on top of l's configuration.
func (l *Logger) With(opts ...Option) *Logger {
	cfg := l.cfg.clone()
	cfg.apply(opts)
	return &Logger{cfg: cfg}
}

// split applies the inline options among args and returns the remaining
// messages.
func (l *Logger) split(args []any) (Config, []any) {
	cfg := l.cfg.clone()
	msgs := make([]any, 0, len(args))
	for _, arg := range args {
		if opt, ok := arg.(Option); ok {
			cfg.apply([]Option{opt})
			continue
		}
		msgs = append(msgs, arg)
	}
	return cfg, msgs
}

func (l *Logger) build(cfg Config, args, msgs []any) *Record {
	if len(msgs) == 0 {
		return nil
	}
	fields := cfg.callerFields(args)
	ts := cfg.now()
	rec := newRecord(msgs[0], cfg, ts, fields.Clone())
	for _, msg := range msgs[1:] {
		rec = Combine(rec.Append(" "), newRecord(msg, cfg, ts, fields.Clone()))
	}
	return rec
}

// Record builds the record for args: one record per message, joined with a
// space, each carrying the fields of the call site. It returns nil when args
// hold no message.
func (l *Logger) Record(args ...any) *Record {
	cfg, msgs := l.split(args)
	return l.build(cfg, args, msgs)
}

// Format renders the messages in args. Options among args apply to this
// call only.
func (l *Logger) Format(args ...any) string {
	cfg, msgs := l.split(args)
	return l.build(cfg, args, msgs).String()
}

// Echo writes Format's result followed by the configured end string. With a
// verbosity below 1 nothing is built or written. Only the writer's error is
// returned.
func (l *Logger) Echo(args ...any) (string, error) {
	cfg, msgs := l.split(args)
	if cfg.Verbosity < 1 {
		return "", nil
	}
	text := l.build(cfg, args, msgs).String()
	_, err := io.WriteString(cfg.out(), text+cfg.End)
	return text, err
}

// Fields returns the resolved fields of the calling expression.
func (l *Logger) Fields(args ...any) *FieldMap {
	cfg, _ := l.split(args)
	return cfg.callerFields(args)
}

// Format renders args with the default logger.
func Format(args ...any) string {
	return Default().Format(args...)
}

// Echo writes args with the default logger.
func Echo(args ...any) (string, error) {
	return Default().Echo(args...)
}

// NewRecord builds the record for args with the default logger.
func NewRecord(args ...any) *Record {
	return Default().Record(args...)
}

// Fields returns the resolved fields of the calling expression using the
// default logger.
func Fields(args ...any) *FieldMap {
	return Default().Fields(args...)
}
