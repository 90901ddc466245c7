package termlog

import (
	"bytes"
	"os"
	"strings"

	"github.com/goccy/go-json"
	"github.com/ncruces/go-strftime"

	"pkt.systems/termlog/internal/ansi"
	"pkt.systems/termlog/internal/callsite"
	"pkt.systems/termlog/internal/logging"
)

// String renders the record. Text output has escape sequences stripped
// unless color is on, in which case a configured lexer highlights it. JSON
// output is a single object: data, the timestamp when enabled, then the
// fields.
func (r *Record) String() string {
	if r == nil {
		return ""
	}
	if r.JSON {
		line, err := r.MarshalJSON()
		if err != nil {
			return callsite.Text(r.Data)
		}
		if !r.Color {
			return string(line)
		}
		theme, err := resolveTheme(r.JSONTheme, true)
		if err != nil {
			diag().Debugf("%v", err)
			return string(line)
		}
		return colorizeJSON(line, theme)
	}

	text := callsite.Text(r.Data)
	if r.Color && r.Lexer != "" {
		if pretty, err := Beautify(r.Data, 0, r.Lexer); err == nil {
			text = pretty
		} else {
			diag().Debugf("%v", err)
		}
	}
	if !r.Color {
		text = ansi.StripEscape(text)
	}
	if r.IncludeTimestamp {
		text = r.timestamp() + " " + text
	}
	return text
}

// MarshalJSON encodes the record as its JSON line without color.
func (r *Record) MarshalJSON() ([]byte, error) {
	obj := callsite.NewFieldMap()
	if r == nil {
		return obj.MarshalJSON()
	}
	obj.Set("data", r.payload())
	if r.IncludeTimestamp {
		obj.Set("timestamp", r.timestamp())
	}
	obj.Update(r.Fields)
	return obj.MarshalJSON()
}

func (r *Record) timestamp() string {
	layout := r.TimeFormat
	if layout == "" {
		layout = DefaultTimeFormat
	}
	return strftime.Format(layout, r.Timestamp)
}

// payload returns the data member of the JSON line. Text loses its escape
// sequences and raw JSON is compacted and embedded as is.
func (r *Record) payload() any {
	switch d := r.Data.(type) {
	case string:
		return ansi.StripEscape(d)
	case Painted:
		return ansi.StripEscape(d.Text)
	case []byte:
		return ansi.StripEscape(string(d))
	case json.Marshaler:
		raw, err := d.MarshalJSON()
		if err != nil {
			return callsite.Text(d)
		}
		compact, err := compactJSON(raw)
		if err != nil {
			return ansi.StripEscape(string(raw))
		}
		return json.RawMessage(compact)
	}
	return r.Data
}

func diag() logging.Logger {
	return logging.Logger{Debug: CurrentConfig().Debug, Out: os.Stderr}
}

func paint(b *bytes.Buffer, seq, token string) {
	if seq == "" {
		b.WriteString(token)
		return
	}
	b.WriteString(seq)
	b.WriteString(token)
	b.WriteString(ansi.Reset)
}

// colorizeJSON walks a JSON line and wraps each token in its theme color.
func colorizeJSON(src []byte, theme ansi.Theme) string {
	b := acquireBuffer()
	defer releaseBuffer(b)
	b.Grow(len(src) + len(src)/2)

	type stackFrame struct {
		kind      byte
		expectKey bool
	}
	stack := make([]stackFrame, 0, 8)

	for i := 0; i < len(src); {
		ch := src[i]
		switch ch {
		case '{':
			stack = append(stack, stackFrame{kind: '{', expectKey: true})
			paint(b, theme.Brackets, "{")
			i++
		case '[':
			stack = append(stack, stackFrame{kind: '['})
			paint(b, theme.Brackets, "[")
			i++
		case '}', ']':
			if len(stack) > 0 {
				stack = stack[:len(stack)-1]
			}
			paint(b, theme.Brackets, string(ch))
			i++
		case ':':
			paint(b, theme.Punctuation, ":")
			if len(stack) > 0 && stack[len(stack)-1].kind == '{' {
				stack[len(stack)-1].expectKey = false
			}
			i++
		case ',':
			paint(b, theme.Punctuation, ",")
			if len(stack) > 0 && stack[len(stack)-1].kind == '{' {
				stack[len(stack)-1].expectKey = true
			}
			i++
		case '"':
			start := i
			i++
			for i < len(src) {
				if src[i] == '\\' && i+1 < len(src) {
					i += 2
					continue
				}
				if src[i] == '"' {
					i++
					break
				}
				i++
			}
			segment := string(src[start:i])
			if len(stack) > 0 && stack[len(stack)-1].kind == '{' && stack[len(stack)-1].expectKey {
				paint(b, theme.Key, segment)
				stack[len(stack)-1].expectKey = false
			} else {
				paint(b, theme.String, segment)
			}
		default:
			if (ch >= '0' && ch <= '9') || ch == '-' {
				start := i
				i++
				for i < len(src) && strings.IndexByte("0123456789.eE+-", src[i]) >= 0 {
					i++
				}
				paint(b, theme.Num, string(src[start:i]))
				continue
			}
			if word, ok := literalAt(src[i:]); ok {
				seq := theme.Bool
				if word == "null" {
					seq = theme.Nil
				}
				paint(b, seq, word)
				i += len(word)
				continue
			}
			b.WriteByte(ch)
			i++
		}
	}
	return b.String()
}

func literalAt(src []byte) (string, bool) {
	for _, word := range [...]string{"true", "false", "null"} {
		if bytes.HasPrefix(src, []byte(word)) {
			return word, true
		}
	}
	return "", false
}
