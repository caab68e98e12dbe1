package indexing

import (
	"log/slog"

	"github.com/leengari/jsonserver/internal/domain/data"
	"github.com/leengari/jsonserver/internal/domain/errors"
	"github.com/leengari/jsonserver/internal/domain/schema"
)

// IDIndex maps a row id to its position in the table
type IDIndex map[int64]int

// BuildIDIndex indexes the id column of rows.
// Returns a ConstraintError when an id is not an integer or is used twice.
func BuildIDIndex(table string, rows []data.Row, idIdx int) (IDIndex, error) {
	idx := make(IDIndex, len(rows))
	for rowPos, row := range rows {
		if idIdx >= len(row) || row[idIdx].Kind() != data.KindInteger {
			return nil, &errors.ConstraintError{
				Table:      table,
				Column:     schema.IDColumn,
				Constraint: "type_mismatch",
				Reason:     "id must be an integer",
				RowIndex:   rowPos,
			}
		}

		id := row[idIdx].Int64()
		if prev, dup := idx[id]; dup {
			return nil, &errors.ConstraintError{
				Table:      table,
				Column:     schema.IDColumn,
				Value:      id,
				Constraint: "unique",
				Reason:     "duplicate value",
				RowIndex:   rowPos,
				Rows:       []int{prev, rowPos},
			}
		}
		idx[id] = rowPos
	}

	slog.Debug("index built",
		slog.String("table", table),
		slog.String("column", schema.IDColumn),
		slog.Int("unique_values", len(idx)))

	return idx, nil
}

// With returns a copy of the index that also maps id to pos
func (idx IDIndex) With(id int64, pos int) IDIndex {
	out := make(IDIndex, len(idx)+1)
	for k, v := range idx {
		out[k] = v
	}
	out[id] = pos
	return out
}
