package schema

import (
	"encoding/json"
	"math"
	"testing"

	"gotest.tools/v3/assert"

	"github.com/leengari/jsonserver/internal/domain/data"
)

func TestInferColumnTypes(t *testing.T) {
	columns := []string{"id", "name", "age", "score", "blob", "empty", "mixed"}
	rows := []data.Row{
		{data.Int(1), data.Text("alice"), data.Int(30), data.Float(1.5), data.Raw(json.RawMessage(`true`)), data.Null(), data.Int(1)},
		{data.Int(2), data.Text("bob"), data.Float(41.0), data.Int(2), data.Raw(json.RawMessage(`{}`)), data.Null(), data.Text("x")},
		{data.Int(3), data.Null(), data.Null(), data.Float(3.25), data.Null(), data.Null(), data.Float(2)},
	}

	s := Infer("users", columns, rows)

	assert.DeepEqual(t, s.ColumnNames(), columns)
	want := []ColumnType{
		ColumnTypeInt,   // id
		ColumnTypeText,  // name
		ColumnTypeInt,   // age: 41.0 is whole
		ColumnTypeFloat, // score
		ColumnTypeText,  // blob
		ColumnTypeText,  // empty: no evidence
		ColumnTypeText,  // mixed
	}
	for i, c := range s.Columns {
		assert.Equal(t, c.Type, want[i], "column %s", c.Name)
	}
}

func TestInferEmptyTable(t *testing.T) {
	s := Infer("things", []string{"label", "id"}, nil)

	assert.Equal(t, len(s.Columns), 2)
	assert.Equal(t, s.Columns[0].Type, ColumnTypeText)
	assert.Equal(t, s.Columns[1].Type, ColumnTypeInt)
}

func TestInferAddsIDWhenNoColumns(t *testing.T) {
	s := Infer("blank", nil, nil)

	assert.Equal(t, len(s.Columns), 1)
	assert.Equal(t, s.Columns[0].Name, IDColumn)
	assert.Equal(t, s.Columns[0].Type, ColumnTypeInt)
}

func TestConform(t *testing.T) {
	s := &TableSchema{TableName: "t", Columns: []Column{
		{Name: "id", Type: ColumnTypeInt},
		{Name: "price", Type: ColumnTypeFloat},
		{Name: "note", Type: ColumnTypeText},
	}}
	rows := []data.Row{
		{data.Float(1), data.Int(10)},
	}

	Conform(s, rows)

	assert.Equal(t, len(rows[0]), 3)
	assert.Equal(t, rows[0][0].Kind(), data.KindInteger)
	assert.Equal(t, rows[0][0].Int64(), int64(1))
	assert.Equal(t, rows[0][1].Kind(), data.KindFloat)
	assert.Equal(t, rows[0][1].Float64(), 10.0)
	assert.Assert(t, rows[0][2].IsNull())
}

func TestCoerce(t *testing.T) {
	tests := []struct {
		name    string
		typ     ColumnType
		raw     interface{}
		want    data.Value
		wantErr bool
	}{
		{"int from string", ColumnTypeInt, "42", data.Int(42), false},
		{"int from graphql int", ColumnTypeInt, 7, data.Int(7), false},
		{"int from whole float", ColumnTypeInt, 3.0, data.Int(3), false},
		{"int from json number", ColumnTypeInt, json.Number("12"), data.Int(12), false},
		{"int rejects fraction", ColumnTypeInt, 3.5, data.Value{}, true},
		{"int rejects text", ColumnTypeInt, "abc", data.Value{}, true},
		{"int rejects bool", ColumnTypeInt, true, data.Value{}, true},
		{"float from string", ColumnTypeFloat, "2.5", data.Float(2.5), false},
		{"float from int", ColumnTypeFloat, 2, data.Float(2), false},
		{"float rejects text", ColumnTypeFloat, "x", data.Value{}, true},
		{"float rejects NaN", ColumnTypeFloat, "NaN", data.Value{}, true},
		{"float rejects infinity", ColumnTypeFloat, "Infinity", data.Value{}, true},
		{"float rejects negative inf", ColumnTypeFloat, "-inf", data.Value{}, true},
		{"float rejects infinite number", ColumnTypeFloat, math.Inf(1), data.Value{}, true},
		{"float rejects NaN text value", ColumnTypeFloat, data.Text("nan"), data.Value{}, true},
		{"text from string", ColumnTypeText, "42", data.Text("42"), false},
		{"text from json number", ColumnTypeText, json.Number("42"), data.Text("42"), false},
		{"text rejects object", ColumnTypeText, map[string]interface{}{}, data.Value{}, true},
		{"nil is null", ColumnTypeInt, nil, data.Null(), false},
		{"int from text value", ColumnTypeInt, data.Text(" 9 "), data.Int(9), false},
		{"float from int value", ColumnTypeFloat, data.Int(4), data.Float(4), false},
		{"text keeps raw value", ColumnTypeText, data.Raw([]byte(`{"a":1}`)), data.Raw([]byte(`{"a":1}`)), false},
		{"text from float value", ColumnTypeText, data.Float(1.5), data.Text("1.5"), false},
		{"int rejects raw value", ColumnTypeInt, data.Raw([]byte("true")), data.Value{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Coerce(tt.typ, tt.raw)
			if tt.wantErr {
				assert.Assert(t, err != nil)
				return
			}
			assert.NilError(t, err)
			assert.Equal(t, got.Kind(), tt.want.Kind())
			assert.Assert(t, got.Equal(tt.want))
		})
	}
}
