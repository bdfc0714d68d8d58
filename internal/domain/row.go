package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
)

// Kind tells whether a field holds a number or a category label.
type Kind uint8

const (
	KindNumeric Kind = iota
	KindCategorical
)

func (k Kind) String() string {
	switch k {
	case KindNumeric:
		return "numeric"
	case KindCategorical:
		return "categorical"
	default:
		return "unknown"
	}
}

// MarshalJSON encodes the kind by name
func (k Kind) MarshalJSON() ([]byte, error) {
	return json.Marshal(k.String())
}

// Field is one column of a feature schema
type Field struct {
	Name string `json:"name"`
	Kind Kind   `json:"kind"`
}

// Schema is the ordered, fixed set of feature columns every row is aligned to.
// A Schema is immutable once built and may be shared between goroutines.
type Schema struct {
	fields []Field
	index  map[string]int
}

// NewSchema builds a schema from fields in order. Duplicate names are rejected.
func NewSchema(fields []Field) (*Schema, error) {
	s := &Schema{
		fields: make([]Field, len(fields)),
		index:  make(map[string]int, len(fields)),
	}
	for i, f := range fields {
		if f.Name == "" {
			return nil, fmt.Errorf("domain: schema field %d has no name", i)
		}
		if _, dup := s.index[f.Name]; dup {
			return nil, fmt.Errorf("domain: duplicate schema field %q", f.Name)
		}
		s.fields[i] = f
		s.index[f.Name] = i
	}
	return s, nil
}

// Len returns the number of fields
func (s *Schema) Len() int { return len(s.fields) }

// Fields returns a copy of the fields in schema order
func (s *Schema) Fields() []Field {
	out := make([]Field, len(s.fields))
	copy(out, s.fields)
	return out
}

// Field returns the i-th field
func (s *Schema) Field(i int) Field { return s.fields[i] }

// Lookup returns the position of a field by name
func (s *Schema) Lookup(name string) (int, bool) {
	i, ok := s.index[name]
	return i, ok
}

// Has reports whether the schema contains name
func (s *Schema) Has(name string) bool {
	_, ok := s.index[name]
	return ok
}

// NumericNames returns the numeric field names in schema order
func (s *Schema) NumericNames() []string {
	return s.namesOf(KindNumeric)
}

// CategoricalNames returns the categorical field names in schema order
func (s *Schema) CategoricalNames() []string {
	return s.namesOf(KindCategorical)
}

func (s *Schema) namesOf(kind Kind) []string {
	var out []string
	for _, f := range s.fields {
		if f.Kind == kind {
			out = append(out, f.Name)
		}
	}
	return out
}

// Value is a single cell: a number or a category label, never both.
type Value struct {
	Kind Kind
	Num  float64
	Str  string
}

// Number builds a numeric value
func Number(v float64) Value { return Value{Kind: KindNumeric, Num: v} }

// Category builds a categorical value
func Category(v string) Value { return Value{Kind: KindCategorical, Str: v} }

// Interface returns the value as float64 or string
func (v Value) Interface() any {
	if v.Kind == KindNumeric {
		return v.Num
	}
	return v.Str
}

// String formats the value for tables and CSV cells
func (v Value) String() string {
	if v.Kind == KindNumeric {
		return strconv.FormatFloat(v.Num, 'f', -1, 64)
	}
	return v.Str
}

// Row is a feature row bound to a schema. Rows are values: every mutator
// returns a copy, so a Row handed to another goroutine cannot change under it.
type Row struct {
	schema *Schema
	values []Value
}

// NewRow builds a row from values listed in schema order
func NewRow(schema *Schema, values []Value) (Row, error) {
	if schema == nil {
		return Row{}, fmt.Errorf("domain: row needs a schema")
	}
	if len(values) != schema.Len() {
		return Row{}, fmt.Errorf("domain: row has %d values, schema has %d fields", len(values), schema.Len())
	}
	for i, v := range values {
		if v.Kind != schema.fields[i].Kind {
			return Row{}, fmt.Errorf("domain: field %q expects %s, got %s", schema.fields[i].Name, schema.fields[i].Kind, v.Kind)
		}
	}
	vals := make([]Value, len(values))
	copy(vals, values)
	return Row{schema: schema, values: vals}, nil
}

// Schema returns the schema the row is bound to
func (r Row) Schema() *Schema { return r.schema }

// Len returns the number of values
func (r Row) Len() int { return len(r.values) }

// IsZero reports whether the row was never built
func (r Row) IsZero() bool { return r.schema == nil }

// At returns the i-th value
func (r Row) At(i int) Value { return r.values[i] }

// Get returns the value of a named field
func (r Row) Get(name string) (Value, bool) {
	if r.schema == nil {
		return Value{}, false
	}
	i, ok := r.schema.Lookup(name)
	if !ok {
		return Value{}, false
	}
	return r.values[i], true
}

// Num returns a numeric field; ok is false if absent or categorical
func (r Row) Num(name string) (float64, bool) {
	v, ok := r.Get(name)
	if !ok || v.Kind != KindNumeric {
		return 0, false
	}
	return v.Num, true
}

// Str returns a categorical field; ok is false if absent or numeric
func (r Row) Str(name string) (string, bool) {
	v, ok := r.Get(name)
	if !ok || v.Kind != KindCategorical {
		return "", false
	}
	return v.Str, true
}

// WithNum returns a copy of the row with a numeric field replaced.
// Unknown or categorical names leave the copy unchanged.
func (r Row) WithNum(name string, v float64) Row {
	out := r.Clone()
	if i, ok := r.schema.Lookup(name); ok && r.schema.fields[i].Kind == KindNumeric {
		out.values[i] = Number(v)
	}
	return out
}

// Clone returns an independent copy
func (r Row) Clone() Row {
	vals := make([]Value, len(r.values))
	copy(vals, r.values)
	return Row{schema: r.schema, values: vals}
}

// Equal reports whether both rows share a schema and hold identical values
func (r Row) Equal(other Row) bool {
	if r.schema != other.schema || len(r.values) != len(other.values) {
		return false
	}
	for i := range r.values {
		a, b := r.values[i], other.values[i]
		if a.Kind != b.Kind || a.Str != b.Str {
			return false
		}
		if a.Num != b.Num && !(math.IsNaN(a.Num) && math.IsNaN(b.Num)) {
			return false
		}
	}
	return true
}

// Map returns the row as a plain field -> value map (float64 or string)
func (r Row) Map() map[string]any {
	out := make(map[string]any, len(r.values))
	for i, v := range r.values {
		out[r.schema.fields[i].Name] = v.Interface()
	}
	return out
}

// MarshalJSON writes the row as an object with keys in schema order
func (r Row) MarshalJSON() ([]byte, error) {
	if r.schema == nil {
		return []byte("null"), nil
	}
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, v := range r.values {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(r.schema.fields[i].Name)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		val, err := json.Marshal(v.Interface())
		if err != nil {
			return nil, fmt.Errorf("domain: field %q: %w", r.schema.fields[i].Name, err)
		}
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
