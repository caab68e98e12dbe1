package operations

import (
	"github.com/leengari/jsonserver/internal/domain/transaction"
	"github.com/leengari/jsonserver/internal/query/validation"
)

// Create validates every field before touching the table, then appends the
// record under a freshly allocated id and persists. Returns the new id.
func (s *Set) Create(tx *transaction.Transaction, args Args) (int64, error) {
	row, err := validation.ValidateRecord(s.table.Schema(), args)
	if err != nil {
		return 0, err
	}
	return s.table.Insert(tx, row)
}
