package operations

import (
	"github.com/leengari/jsonserver/internal/domain/data"
	"github.com/leengari/jsonserver/internal/domain/transaction"
	"github.com/leengari/jsonserver/internal/query/pagination"
	"github.com/leengari/jsonserver/internal/query/predicate"
	"github.com/leengari/jsonserver/internal/query/validation"
)

// List filters the current rows by every column argument that is set and
// returns the requested page. It never mutates the table.
func (s *Set) List(tx *transaction.Transaction, args Args) (pagination.Page[data.Record], error) {
	name := s.table.Name()

	pageNum, err := validation.ValidateInt(name, PageNumArg, args[PageNumArg], pagination.DefaultPageNum)
	if err != nil {
		return pagination.Page[data.Record]{}, err
	}
	pageSize, err := validation.ValidateInt(name, PageSizeArg, args[PageSizeArg], pagination.DefaultPageSize)
	if err != nil {
		return pagination.Page[data.Record]{}, err
	}

	preds := make([]predicate.PredicateFunc, 0, len(s.filters))
	for _, f := range s.filters {
		raw, ok := args[f.Column.Name]
		if !ok || raw == nil {
			continue
		}
		pred, err := f.Bind(raw)
		if err != nil {
			return pagination.Page[data.Record]{}, err
		}
		preds = append(preds, pred)
	}

	rows := s.table.Snapshot()
	if len(preds) > 0 {
		rows = predicate.Apply(rows, predicate.And(preds...))
	}

	return pagination.Paginate(name, data.Records(s.table.Schema().ColumnNames(), rows), pageNum, pageSize)
}
