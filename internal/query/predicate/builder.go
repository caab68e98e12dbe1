package predicate

import (
	"github.com/leengari/jsonserver/internal/domain/data"
	"github.com/leengari/jsonserver/internal/domain/errors"
	"github.com/leengari/jsonserver/internal/domain/schema"
)

// PredicateFunc is a function that tests whether a row matches certain criteria
type PredicateFunc func(data.Row) bool

// Filter is the equality filter rule of one column
type Filter struct {
	Table  string
	Column schema.Column
	Index  int // position of the column in the row
}

// Build derives one equality filter per column, in schema order.
// Only equality is supported; there are no range or partial matches.
func Build(s *schema.TableSchema) []Filter {
	filters := make([]Filter, len(s.Columns))
	for i, col := range s.Columns {
		filters[i] = Filter{Table: s.TableName, Column: col, Index: i}
	}
	return filters
}

// Bind coerces a filter argument to the column type and returns the row test.
//
//	INT   - parsed as integer, matches row[col] == value
//	FLOAT - parsed as float, exact equality
//	TEXT  - string equality against the cell's text form
//
// Null cells never match. An argument that cannot be coerced is a TypeCoercionError.
func (f Filter) Bind(raw interface{}) (PredicateFunc, error) {
	target, err := schema.Coerce(f.Column.Type, raw)
	if err != nil || target.IsNull() {
		return nil, errors.NewTypeCoercion(f.Table, f.Column.Name, raw, string(f.Column.Type))
	}

	idx := f.Index
	switch f.Column.Type {
	case schema.ColumnTypeText:
		want := target.String()
		return func(row data.Row) bool {
			if idx >= len(row) || row[idx].IsNull() {
				return false
			}
			return row[idx].String() == want
		}, nil
	default:
		return func(row data.Row) bool {
			if idx >= len(row) {
				return false
			}
			return row[idx].Equal(target)
		}, nil
	}
}

// And combines predicates conjunctively. No predicates matches every row.
func And(preds ...PredicateFunc) PredicateFunc {
	return func(row data.Row) bool {
		for _, p := range preds {
			if !p(row) {
				return false
			}
		}
		return true
	}
}

// Apply returns the rows matching pred, preserving order.
// The result never aliases the input slice.
func Apply(rows []data.Row, pred PredicateFunc) []data.Row {
	out := make([]data.Row, 0, len(rows))
	for _, row := range rows {
		if pred(row) {
			out = append(out, row)
		}
	}
	return out
}
