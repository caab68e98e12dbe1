package data

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
)

// Kind identifies which variant a Value holds
type Kind uint8

const (
	KindNull Kind = iota
	KindInteger
	KindFloat
	KindText
	// KindRaw holds JSON that is not a scalar we type (booleans, objects, arrays).
	// It only appears in TEXT columns and is written back verbatim.
	KindRaw
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindInteger:
		return "integer"
	case KindFloat:
		return "float"
	case KindText:
		return "text"
	case KindRaw:
		return "raw"
	default:
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
}

// Value is a single cell: Null | Integer | Float | Text | Raw
type Value struct {
	kind Kind
	i    int64
	f    float64
	s    string
}

// Null returns the null value
func Null() Value { return Value{} }

// Int wraps an integer
func Int(i int64) Value { return Value{kind: KindInteger, i: i} }

// Float wraps a float
func Float(f float64) Value { return Value{kind: KindFloat, f: f} }

// Text wraps a string
func Text(s string) Value { return Value{kind: KindText, s: s} }

// Raw wraps an arbitrary JSON document in compact form. Invalid JSON is stored as text.
func Raw(msg json.RawMessage) Value {
	var buf bytes.Buffer
	if err := json.Compact(&buf, msg); err != nil {
		return Text(string(msg))
	}
	return Value{kind: KindRaw, s: buf.String()}
}

// Kind returns the variant held by v
func (v Value) Kind() Kind { return v.kind }

// IsNull reports whether v is Null
func (v Value) IsNull() bool { return v.kind == KindNull }

// Int64 returns the integer payload (zero unless Kind is KindInteger)
func (v Value) Int64() int64 { return v.i }

// Float64 returns the float payload (zero unless Kind is KindFloat)
func (v Value) Float64() float64 { return v.f }

// IsWhole reports whether the value is numeric and has no fractional part.
// Floats beyond ±2^53 are not considered whole since they lost integer precision.
func (v Value) IsWhole() bool {
	switch v.kind {
	case KindInteger:
		return true
	case KindFloat:
		return v.f == math.Trunc(v.f) && math.Abs(v.f) <= 1<<53
	}
	return false
}

// IsNumeric reports whether the value is an Integer or a Float
func (v Value) IsNumeric() bool {
	return v.kind == KindInteger || v.kind == KindFloat
}

// String renders the value as the text used for TEXT column comparison
func (v Value) String() string {
	switch v.kind {
	case KindInteger:
		return strconv.FormatInt(v.i, 10)
	case KindFloat:
		return strconv.FormatFloat(v.f, 'f', -1, 64)
	case KindText, KindRaw:
		return v.s
	default:
		return ""
	}
}

// Interface returns the plain Go value (nil, int64, float64, string or decoded JSON)
func (v Value) Interface() interface{} {
	switch v.kind {
	case KindInteger:
		return v.i
	case KindFloat:
		return v.f
	case KindText:
		return v.s
	case KindRaw:
		var out interface{}
		if err := json.Unmarshal([]byte(v.s), &out); err != nil {
			return v.s
		}
		return out
	default:
		return nil
	}
}

// Equal compares two values of the same kind. Integer and Float compare numerically.
func (v Value) Equal(o Value) bool {
	switch {
	case v.kind == KindNull || o.kind == KindNull:
		return v.kind == o.kind
	case v.kind == KindInteger && o.kind == KindInteger:
		return v.i == o.i
	case v.IsNumeric() && o.IsNumeric():
		return v.asFloat() == o.asFloat()
	case v.kind == o.kind:
		return v.s == o.s
	}
	return false
}

func (v Value) asFloat() float64 {
	if v.kind == KindInteger {
		return float64(v.i)
	}
	return v.f
}

// MarshalJSON implements json.Marshaler
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case KindInteger:
		return []byte(strconv.FormatInt(v.i, 10)), nil
	case KindFloat:
		return json.Marshal(v.f)
	case KindText:
		return marshalString(v.s)
	case KindRaw:
		return []byte(v.s), nil
	default:
		return []byte("null"), nil
	}
}

// marshalString quotes s without HTML escaping, so <, > and & survive a round trip
func marshalString(s string) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

// ParseJSON classifies one decoded JSON document into a Value.
// Numbers without fraction or exponent that fit int64 become Integer, other numbers Float.
func ParseJSON(msg json.RawMessage) (Value, error) {
	if len(msg) == 0 {
		return Null(), nil
	}
	switch msg[0] {
	case 'n':
		return Null(), nil
	case '"':
		var s string
		if err := json.Unmarshal(msg, &s); err != nil {
			return Value{}, err
		}
		return Text(s), nil
	case 't', 'f', '{', '[':
		return Raw(msg), nil
	}
	return ParseNumber(string(msg))
}

// ParseNumber parses a JSON number literal
func ParseNumber(lit string) (Value, error) {
	if i, err := strconv.ParseInt(lit, 10, 64); err == nil {
		return Int(i), nil
	}
	f, err := strconv.ParseFloat(lit, 64)
	if err != nil {
		return Value{}, fmt.Errorf("invalid number %q: %w", lit, err)
	}
	return Float(f), nil
}
