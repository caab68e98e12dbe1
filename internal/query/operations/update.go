package operations

import (
	"github.com/leengari/jsonserver/internal/domain/schema"
	"github.com/leengari/jsonserver/internal/domain/transaction"
	"github.com/leengari/jsonserver/internal/query/validation"
)

// Update replaces the provided fields of the row with the given id and persists.
// An unknown id is a NotFoundError and leaves the table untouched.
func (s *Set) Update(tx *transaction.Transaction, args Args) error {
	id, err := validation.ValidateID(s.table.Name(), args[schema.IDColumn])
	if err != nil {
		return err
	}
	changes, err := validation.ValidateChanges(s.table.Schema(), args)
	if err != nil {
		return err
	}
	return s.table.Update(tx, id, changes)
}

// Delete removes the rows with the given id and persists.
// Returns how many rows were removed; zero is not an error.
func (s *Set) Delete(tx *transaction.Transaction, args Args) (int, error) {
	id, err := validation.ValidateID(s.table.Name(), args[schema.IDColumn])
	if err != nil {
		return 0, err
	}
	return s.table.Delete(tx, id)
}
