package core

// record.go holds the ordered column/value view of one CSV line.
//
// A Record starts with every value as text. Validation converts sample_id to
// int64 and fauxness to float64 in place, so a failure payload shows the line
// as far as it got through the checks.

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Record is one CSV line keyed by header name, in header order.
type Record struct {
	columns []string
	values  map[string]any
}

// NewRecord pairs header names with the fields of one line. Missing trailing
// fields read as nil; fields beyond the header are dropped. When a header name
// repeats, the column keeps its first position and its last value.
func NewRecord(header, fields []string) Record {
	rec := Record{values: make(map[string]any, len(header))}
	for i, name := range header {
		var v any
		if i < len(fields) {
			v = fields[i]
		}
		rec.set(name, v)
	}
	return rec
}

func (r *Record) set(name string, v any) {
	if r.values == nil {
		r.values = make(map[string]any)
	}
	if _, ok := r.values[name]; !ok {
		r.columns = append(r.columns, name)
	}
	r.values[name] = v
}

// Columns returns the column names in header order.
func (r Record) Columns() []string {
	out := make([]string, len(r.columns))
	copy(out, r.columns)
	return out
}

// Get returns the value stored for a column.
func (r Record) Get(name string) (any, bool) {
	v, ok := r.values[name]
	return v, ok
}

// Text returns the column as text. Missing and nil values read as "".
func (r Record) Text(name string) string {
	switch v := r.values[name].(type) {
	case nil:
		return ""
	case string:
		return v
	default:
		return formatValue(v)
	}
}

// Int returns a converted integer column, or 0 if it was never converted.
func (r Record) Int(name string) int64 {
	v, _ := r.values[name].(int64)
	return v
}

// Float returns a converted float column, or 0 if it was never converted.
func (r Record) Float(name string) float64 {
	v, _ := r.values[name].(float64)
	return v
}

// MarshalJSON encodes the record as one object with keys in header order.
func (r Record) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, name := range r.columns {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(name)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')

		val, err := marshalValue(r.values[name])
		if err != nil {
			return nil, fmt.Errorf("column %q: %w", name, err)
		}
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// String renders the record as {name: value, ...}.
func (r Record) String() string {
	var b strings.Builder
	b.WriteByte('{')
	for i, name := range r.columns {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(name)
		b.WriteString(": ")
		if v := r.values[name]; v != nil {
			b.WriteString(formatValue(v))
		} else {
			b.WriteString("null")
		}
	}
	b.WriteByte('}')
	return b.String()
}

func marshalValue(v any) ([]byte, error) {
	switch x := v.(type) {
	case float64:
		return Float(x).MarshalJSON()
	default:
		return json.Marshal(x)
	}
}

// formatValue renders a converted value the way it appears in a data file.
func formatValue(v any) string {
	switch x := v.(type) {
	case string:
		return x
	case int64:
		return strconv.FormatInt(x, 10)
	case float64:
		return formatFloat(x)
	case nil:
		return ""
	default:
		return fmt.Sprint(x)
	}
}
