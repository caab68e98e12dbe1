package data

import (
	"bytes"
	"encoding/json"
)

// Row represents a single table row
// Values are positional and aligned with the table schema's column order.
// A published row is never mutated; updates build a new Row.
type Row []Value

// Copy creates a copy of the row so callers can modify it safely
func (r Row) Copy() Row {
	out := make(Row, len(r))
	copy(out, r)
	return out
}

// Record pairs a row with its column names so it can be rendered as an ordered object
type Record struct {
	Columns []string
	Row     Row
}

// NewRecord creates a Record view over a row
func NewRecord(columns []string, row Row) Record {
	return Record{Columns: columns, Row: row}
}

// Get returns the value of a named column
func (r Record) Get(column string) (Value, bool) {
	for i, c := range r.Columns {
		if c == column {
			if i < len(r.Row) {
				return r.Row[i], true
			}
			return Null(), true
		}
	}
	return Value{}, false
}

// Map converts the record to a plain map (used by the GraphQL resolvers)
func (r Record) Map() map[string]interface{} {
	m := make(map[string]interface{}, len(r.Columns))
	for i, c := range r.Columns {
		if i < len(r.Row) {
			m[c] = r.Row[i].Interface()
		} else {
			m[c] = nil
		}
	}
	return m
}

// MarshalJSON implements json.Marshaler
// Keys are written in column order, which a map cannot guarantee.
func (r Record) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, c := range r.Columns {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(c)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')

		v := Null()
		if i < len(r.Row) {
			v = r.Row[i]
		}
		val, err := v.MarshalJSON()
		if err != nil {
			return nil, err
		}
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// Records wraps a row slice into records sharing one column list
func Records(columns []string, rows []Row) []Record {
	out := make([]Record, len(rows))
	for i, row := range rows {
		out[i] = NewRecord(columns, row)
	}
	return out
}
