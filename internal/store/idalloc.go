package store

import (
	"math"

	"github.com/leengari/jsonserver/internal/domain/data"
	"github.com/leengari/jsonserver/internal/domain/errors"
)

// FirstID is the id given to the first row of an empty table
const FirstID int64 = 1

// NextID returns max(existing ids) + 1, or FirstID when the table is empty.
// It is unique with respect to the given rows only; callers hold the table's
// write lock so no other allocation can interleave.
func NextID(table string, rows []data.Row, idIdx int) (int64, error) {
	if len(rows) == 0 {
		return FirstID, nil
	}

	highest := int64(math.MinInt64)
	for _, row := range rows {
		if id := rowID(row, idIdx); id > highest {
			highest = id
		}
	}

	if highest == math.MaxInt64 {
		return 0, &errors.AllocationError{Table: table, Reason: "id space exhausted"}
	}
	return highest + 1, nil
}
