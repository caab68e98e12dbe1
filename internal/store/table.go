package store

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/leengari/jsonserver/internal/domain/data"
	"github.com/leengari/jsonserver/internal/domain/errors"
	"github.com/leengari/jsonserver/internal/domain/schema"
	"github.com/leengari/jsonserver/internal/domain/transaction"
	"github.com/leengari/jsonserver/internal/query/indexing"
)

// Persister writes a whole table to its backing file
type Persister interface {
	Save(path string, s *schema.TableSchema, rows []data.Row) error
}

// snapshot is one committed state of a table. It is never modified after publish.
type snapshot struct {
	rows []data.Row
	byID indexing.IDIndex
}

// Table owns one mutable, ordered table and its backing file.
//
// Mutations are serialized by writeMu for the whole mutate+persist step and
// build a new snapshot; the snapshot is published only after it was persisted.
// Readers take mu just long enough to grab the current snapshot, so they always
// see a fully committed state and are never blocked by a slow persist.
type Table struct {
	mu      sync.RWMutex
	writeMu sync.Mutex

	name      string
	path      string // backing file
	schema    *schema.TableSchema
	idIdx     int
	snap      *snapshot
	persister Persister
}

// New creates a Table from loaded rows. Rows must already be conformed to the schema.
func New(name, path string, s *schema.TableSchema, rows []data.Row, p Persister) (*Table, error) {
	idIdx := s.IDIndex()
	if idIdx < 0 {
		return nil, &errors.LoadError{Path: path, Reason: "table has no id column"}
	}
	if p == nil {
		return nil, fmt.Errorf("table %s: nil persister", name)
	}

	byID, err := indexing.BuildIDIndex(name, rows, idIdx)
	if err != nil {
		return nil, &errors.LoadError{Path: path, Reason: "invalid id column", Err: err}
	}

	return &Table{
		name:      name,
		path:      path,
		schema:    s,
		idIdx:     idIdx,
		snap:      &snapshot{rows: rows, byID: byID},
		persister: p,
	}, nil
}

// Name returns the table name
func (t *Table) Name() string { return t.name }

// Path returns the backing file path
func (t *Table) Path() string { return t.path }

// Schema returns the table schema, fixed for the table's lifetime
func (t *Table) Schema() *schema.TableSchema { return t.schema }

func (t *Table) current() *snapshot {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.snap
}

func (t *Table) publish(s *snapshot) {
	t.mu.Lock()
	t.snap = s
	t.mu.Unlock()
}

// Snapshot returns the rows of the latest committed state in natural order.
// The returned slice and its rows are shared and must not be modified.
func (t *Table) Snapshot() []data.Row {
	return t.current().rows
}

// Len returns the number of committed rows
func (t *Table) Len() int {
	return len(t.current().rows)
}

// Get returns the row with the given id
func (t *Table) Get(id int64) (data.Row, bool) {
	s := t.current()
	pos, ok := s.byID[id]
	if !ok {
		return nil, false
	}
	return s.rows[pos], true
}

// Insert appends a row, allocating its id, and persists the table.
// The id slot of row is ignored and overwritten. Returns the new id.
func (t *Table) Insert(tx *transaction.Transaction, row data.Row) (int64, error) {
	if len(row) != len(t.schema.Columns) {
		return 0, fmt.Errorf("table %s: row has %d values, schema has %d columns",
			t.name, len(row), len(t.schema.Columns))
	}

	t.writeMu.Lock()
	defer t.writeMu.Unlock()

	old := t.current()
	id, err := NextID(t.name, old.rows, t.idIdx)
	if err != nil {
		return 0, err
	}

	newRow := row.Copy()
	newRow[t.idIdx] = data.Int(id)

	rows := make([]data.Row, len(old.rows), len(old.rows)+1)
	copy(rows, old.rows)
	rows = append(rows, newRow)

	byID := old.byID.With(id, len(rows)-1)

	if err := t.commit(tx, &snapshot{rows: rows, byID: byID}); err != nil {
		return 0, err
	}
	tx.Record(transaction.ChangeTypeInsert, t.name, id)
	return id, nil
}

// Update replaces the given column positions of the row with the given id and
// persists the table. Columns not present in changes keep their values.
func (t *Table) Update(tx *transaction.Transaction, id int64, changes map[int]data.Value) error {
	t.writeMu.Lock()
	defer t.writeMu.Unlock()

	old := t.current()
	pos, ok := old.byID[id]
	if !ok {
		return &errors.NotFoundError{Table: t.name, ID: id}
	}

	newRow := old.rows[pos].Copy()
	for col, v := range changes {
		if col == t.idIdx || col < 0 || col >= len(newRow) {
			continue
		}
		newRow[col] = v
	}

	rows := make([]data.Row, len(old.rows))
	copy(rows, old.rows)
	rows[pos] = newRow

	// ids cannot change, so the index is shared with the previous snapshot
	if err := t.commit(tx, &snapshot{rows: rows, byID: old.byID}); err != nil {
		return err
	}
	tx.Record(transaction.ChangeTypeUpdate, t.name, id)
	return nil
}

// Delete removes every row with the given id and persists the table.
// Deleting an id that does not exist is not an error. Returns the number of rows removed.
func (t *Table) Delete(tx *transaction.Transaction, id int64) (int, error) {
	t.writeMu.Lock()
	defer t.writeMu.Unlock()

	old := t.current()
	rows := make([]data.Row, 0, len(old.rows))
	deleted := 0
	for _, row := range old.rows {
		if rowID(row, t.idIdx) == id {
			deleted++
			continue
		}
		rows = append(rows, row)
	}

	byID := old.byID
	if deleted > 0 {
		var err error
		if byID, err = indexing.BuildIDIndex(t.name, rows, t.idIdx); err != nil {
			return 0, err
		}
	}

	if err := t.commit(tx, &snapshot{rows: rows, byID: byID}); err != nil {
		return 0, err
	}
	if deleted > 0 {
		tx.Record(transaction.ChangeTypeDelete, t.name, id)
	}
	return deleted, nil
}

// commit persists the snapshot and publishes it. Must be called with writeMu held.
func (t *Table) commit(tx *transaction.Transaction, s *snapshot) error {
	if err := t.persister.Save(t.path, t.schema, s.rows); err != nil {
		slog.Error("persist failed, keeping previous state",
			slog.String("table", t.name),
			slog.String("path", t.path),
			slog.Any("error", err),
		)
		return &errors.PersistenceError{Table: t.name, Path: t.path, Err: err}
	}
	t.publish(s)

	if tx != nil {
		slog.Debug("table committed",
			slog.String("table", t.name),
			slog.String("tx_id", tx.ID),
			slog.Int("rows", len(s.rows)),
		)
	}
	return nil
}

func rowID(row data.Row, idIdx int) int64 {
	if idIdx >= len(row) {
		return 0
	}
	return row[idIdx].Int64()
}
