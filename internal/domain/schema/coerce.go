package schema

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/leengari/jsonserver/internal/domain/data"
)

// Coerce converts a raw argument to a value of the given column type.
// Raw arguments come from query strings (string), decoded JSON bodies
// (json.Number, string, bool, nil) or GraphQL (int, float64, string).
// A nil argument coerces to Null for every type.
func Coerce(t ColumnType, raw interface{}) (data.Value, error) {
	if raw == nil {
		return data.Null(), nil
	}
	if v, ok := raw.(data.Value); ok {
		return coerceValue(t, v)
	}

	switch t {
	case ColumnTypeInt:
		return coerceInt(raw)
	case ColumnTypeFloat:
		return coerceFloat(raw)
	case ColumnTypeText:
		return coerceText(raw)
	default:
		return data.Value{}, fmt.Errorf("unknown column type %s", t)
	}
}

func coerceInt(raw interface{}) (data.Value, error) {
	switch v := raw.(type) {
	case int:
		return data.Int(int64(v)), nil
	case int32:
		return data.Int(int64(v)), nil
	case int64:
		return data.Int(v), nil
	case float64:
		if f := data.Float(v); f.IsWhole() {
			return data.Int(int64(v)), nil
		}
		return data.Value{}, fmt.Errorf("cannot convert %v to INT", v)
	case json.Number:
		n, err := data.ParseNumber(v.String())
		if err != nil || !n.IsWhole() {
			return data.Value{}, fmt.Errorf("cannot convert %s to INT", v)
		}
		if n.Kind() == data.KindFloat {
			return data.Int(int64(n.Float64())), nil
		}
		return n, nil
	case string:
		i, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
		if err != nil {
			return data.Value{}, fmt.Errorf("cannot convert string to INT (got '%s')", v)
		}
		return data.Int(i), nil
	default:
		return data.Value{}, fmt.Errorf("cannot convert %T to INT", raw)
	}
}

func coerceFloat(raw interface{}) (data.Value, error) {
	var f float64
	switch v := raw.(type) {
	case int:
		f = float64(v)
	case int32:
		f = float64(v)
	case int64:
		f = float64(v)
	case float32:
		f = float64(v)
	case float64:
		f = v
	case json.Number:
		n, err := v.Float64()
		if err != nil {
			return data.Value{}, fmt.Errorf("cannot convert %s to FLOAT", v)
		}
		f = n
	case string:
		n, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return data.Value{}, fmt.Errorf("cannot convert string to FLOAT (got '%s')", v)
		}
		f = n
	default:
		return data.Value{}, fmt.Errorf("cannot convert %T to FLOAT", raw)
	}
	return finiteFloat(f)
}

// finiteFloat rejects NaN and infinities, which have no JSON encoding
func finiteFloat(f float64) (data.Value, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return data.Value{}, fmt.Errorf("cannot store %v in a FLOAT column", f)
	}
	return data.Float(f), nil
}

func coerceText(raw interface{}) (data.Value, error) {
	switch v := raw.(type) {
	case string:
		return data.Text(v), nil
	case json.Number:
		return data.Text(v.String()), nil
	case int:
		return data.Text(strconv.Itoa(v)), nil
	case int64:
		return data.Text(strconv.FormatInt(v, 10)), nil
	case float64:
		return data.Text(strconv.FormatFloat(v, 'f', -1, 64)), nil
	case bool:
		return data.Text(strconv.FormatBool(v)), nil
	default:
		return data.Value{}, fmt.Errorf("cannot convert %T to TEXT", raw)
	}
}

func coerceValue(t ColumnType, v data.Value) (data.Value, error) {
	if v.IsNull() {
		return v, nil
	}
	switch t {
	case ColumnTypeInt:
		if v.Kind() == data.KindText {
			return coerceInt(v.String())
		}
		if v.IsWhole() {
			if v.Kind() == data.KindFloat {
				return data.Int(int64(v.Float64())), nil
			}
			return v, nil
		}
	case ColumnTypeFloat:
		switch v.Kind() {
		case data.KindInteger:
			return data.Float(float64(v.Int64())), nil
		case data.KindFloat:
			return finiteFloat(v.Float64())
		case data.KindText:
			return coerceFloat(v.String())
		}
	case ColumnTypeText:
		// booleans, objects and arrays stay verbatim JSON
		if v.Kind() == data.KindText || v.Kind() == data.KindRaw {
			return v, nil
		}
		return data.Text(v.String()), nil
	}
	return data.Value{}, fmt.Errorf("cannot convert %s value to %s", v.Kind(), t)
}
