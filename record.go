package termlog

import (
	"time"

	"pkt.systems/termlog/internal/callsite"
)

// Record is one formatted message with the call-site fields it carries.
// Records are not modified after construction; Combine, Append and Prepend
// return new records.
type Record struct {
	Data      any
	Timestamp time.Time

	JSON             bool
	Color            bool
	Lexer            string
	TimeFormat       string
	IncludeTimestamp bool
	JSONTheme        string

	Fields *FieldMap
}

func newRecord(data any, cfg Config, ts time.Time, fields *FieldMap) *Record {
	return &Record{
		Data:             data,
		Timestamp:        ts,
		JSON:             cfg.JSON,
		Color:            cfg.Color,
		Lexer:            cfg.Lexer,
		TimeFormat:       cfg.TimeFormat,
		IncludeTimestamp: cfg.Timestamp,
		JSONTheme:        cfg.JSONTheme,
		Fields:           fields,
	}
}

// with returns a copy of r carrying data and fields.
func (r *Record) with(data any, fields *FieldMap) *Record {
	out := *r
	out.Data = data
	out.Fields = fields
	return &out
}

// Combine joins the payloads of left and right. The result has the flags of
// left and the union of both field sets, right winning on shared names.
func Combine(left, right *Record) *Record {
	switch {
	case left == nil && right == nil:
		return nil
	case left == nil:
		return right.with(right.Data, right.Fields.Clone())
	case right == nil:
		return left.with(left.Data, left.Fields.Clone())
	}
	fields := left.Fields.Clone()
	fields.Update(right.Fields)
	return left.with(concat(left.Data, right.Data), fields)
}

// Append returns r followed by v. A record operand is combined with
// Combine; any other value is concatenated to the payload.
func (r *Record) Append(v any) *Record {
	if other, ok := asRecord(v); ok {
		return Combine(r, other)
	}
	if r == nil {
		return nil
	}
	return r.with(concat(r.Data, v), r.Fields.Clone())
}

// Prepend returns v followed by r. The result keeps the flags of r; a
// record operand contributes its fields, and r wins on shared names.
func (r *Record) Prepend(v any) *Record {
	if r == nil {
		return nil
	}
	if other, ok := asRecord(v); ok && other != nil {
		fields := other.Fields.Clone()
		fields.Update(r.Fields)
		return r.with(concat(other.Data, r.Data), fields)
	}
	return r.with(concat(v, r.Data), r.Fields.Clone())
}

func asRecord(v any) (*Record, bool) {
	switch x := v.(type) {
	case *Record:
		return x, true
	case Record:
		return &x, true
	}
	return nil, false
}

// concat joins two payloads. Strings and byte slices join natively, with a
// mix producing a string. Anything else is joined as text.
func concat(a, b any) any {
	switch x := a.(type) {
	case string:
		switch y := b.(type) {
		case string:
			return x + y
		case []byte:
			return x + string(y)
		}
	case []byte:
		switch y := b.(type) {
		case []byte:
			out := make([]byte, 0, len(x)+len(y))
			return append(append(out, x...), y...)
		case string:
			return string(x) + y
		}
	}
	return callsite.Text(a) + callsite.Text(b)
}
