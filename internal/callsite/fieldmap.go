package callsite

import (
	"bytes"
	"fmt"

	"github.com/goccy/go-json"
	"github.com/spf13/cast"
)

type unresolved struct{}

func (unresolved) String() string { return "<unresolved>" }

// Unresolved is the placeholder value of a discovered but not yet resolved
// field.
var Unresolved any = unresolved{}

// FieldMap is an insertion-ordered name to value mapping. Names are unique;
// setting an existing name keeps its position and replaces its value.
// Read methods accept a nil receiver.
type FieldMap struct {
	keys   []string
	values map[string]any
}

// NewFieldMap returns an empty FieldMap.
func NewFieldMap() *FieldMap {
	return &FieldMap{values: make(map[string]any)}
}

func (m *FieldMap) Set(name string, value any) {
	if m.values == nil {
		m.values = make(map[string]any)
	}
	if _, ok := m.values[name]; !ok {
		m.keys = append(m.keys, name)
	}
	m.values[name] = value
}

func (m *FieldMap) Get(name string) (any, bool) {
	if m == nil {
		return nil, false
	}
	v, ok := m.values[name]
	return v, ok
}

func (m *FieldMap) Has(name string) bool {
	_, ok := m.Get(name)
	return ok
}

func (m *FieldMap) Len() int {
	if m == nil {
		return 0
	}
	return len(m.keys)
}

// Keys returns the names in insertion order.
func (m *FieldMap) Keys() []string {
	if m == nil {
		return nil
	}
	return append([]string(nil), m.keys...)
}

// Range calls fn for each field in insertion order until fn returns false.
func (m *FieldMap) Range(fn func(name string, value any) bool) {
	if m == nil {
		return
	}
	for _, k := range m.keys {
		if !fn(k, m.values[k]) {
			return
		}
	}
}

// Update appends the names of other that m lacks and overwrites the values
// of the names both share.
func (m *FieldMap) Update(other *FieldMap) {
	other.Range(func(name string, value any) bool {
		m.Set(name, value)
		return true
	})
}

func (m *FieldMap) Clone() *FieldMap {
	out := &FieldMap{values: make(map[string]any, m.Len())}
	out.Update(m)
	return out
}

// Map returns an unordered copy.
func (m *FieldMap) Map() map[string]any {
	out := make(map[string]any, m.Len())
	m.Range(func(name string, value any) bool {
		out[name] = value
		return true
	})
	return out
}

// MarshalJSON encodes the map as a JSON object in insertion order. Values
// the encoder rejects are written as their text.
func (m *FieldMap) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	first := true
	var err error
	m.Range(func(name string, value any) bool {
		if !first {
			buf.WriteByte(',')
		}
		first = false
		var key []byte
		if key, err = json.Marshal(name); err != nil {
			return false
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(EncodeValue(value))
		return true
	})
	if err != nil {
		return nil, err
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// EncodeValue returns the JSON encoding of v, falling back to the encoding
// of its text when v cannot be encoded directly.
func EncodeValue(v any) []byte {
	switch x := v.(type) {
	case unresolved:
		return []byte("null")
	case error:
		v = x.Error()
	}
	if out, err := json.Marshal(v); err == nil {
		return out
	}
	out, err := json.Marshal(Text(v))
	if err != nil {
		return []byte(`""`)
	}
	return out
}

// Text coerces v to a string.
func Text(v any) string {
	if v == nil {
		return fmt.Sprint(v)
	}
	if s, err := cast.ToStringE(v); err == nil {
		return s
	}
	return fmt.Sprint(v)
}
