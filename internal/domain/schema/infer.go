package schema

import (
	"github.com/leengari/jsonserver/internal/domain/data"
)

// Infer derives a TableSchema from the columns and rows of a freshly loaded table.
//
// A column is INT when every non-null value is a whole number, FLOAT when every
// non-null value is numeric and at least one is not whole, and TEXT otherwise.
// Columns without any non-null value fall back to TEXT, except id which is always INT.
// If the table has no id column at all (only possible for an empty file) one is
// prepended so that Create can still allocate ids.
func Infer(tableName string, columns []string, rows []data.Row) *TableSchema {
	s := &TableSchema{
		TableName: tableName,
		Columns:   make([]Column, 0, len(columns)+1),
	}

	for i, name := range columns {
		s.Columns = append(s.Columns, Column{
			Name: name,
			Type: inferColumn(name, i, rows),
		})
	}

	if s.IDIndex() < 0 {
		s.Columns = append([]Column{{Name: IDColumn, Type: ColumnTypeInt}}, s.Columns...)
	}

	return s
}

func inferColumn(name string, idx int, rows []data.Row) ColumnType {
	if name == IDColumn {
		return ColumnTypeInt
	}

	seen := false
	fractional := false

	for _, row := range rows {
		if idx >= len(row) {
			continue
		}
		v := row[idx]
		if v.IsNull() {
			continue
		}
		if !v.IsNumeric() {
			return ColumnTypeText
		}
		seen = true
		if !v.IsWhole() {
			fractional = true
		}
	}

	switch {
	case !seen:
		return ColumnTypeText
	case fractional:
		return ColumnTypeFloat
	default:
		return ColumnTypeInt
	}
}

// Conform rewrites loaded cells so they carry the kind of their column:
// whole floats in INT columns become Integer and integers in FLOAT columns become Float.
// Rows shorter than the schema are padded with Null. The rows slice is modified in place.
func Conform(s *TableSchema, rows []data.Row) {
	for r, row := range rows {
		if len(row) < len(s.Columns) {
			padded := make(data.Row, len(s.Columns))
			copy(padded, row)
			for i := len(row); i < len(padded); i++ {
				padded[i] = data.Null()
			}
			row = padded
			rows[r] = row
		}
		for i, col := range s.Columns {
			row[i] = conformValue(col.Type, row[i])
		}
	}
}

func conformValue(t ColumnType, v data.Value) data.Value {
	switch t {
	case ColumnTypeInt:
		if v.Kind() == data.KindFloat && v.IsWhole() {
			return data.Int(int64(v.Float64()))
		}
	case ColumnTypeFloat:
		if v.Kind() == data.KindInteger {
			return data.Float(float64(v.Int64()))
		}
	}
	return v
}
