package transaction

import (
	"testing"

	"github.com/google/uuid"
	"gotest.tools/v3/assert"
)

func TestNewTransaction(t *testing.T) {
	a := NewTransaction()
	b := NewTransaction()

	_, err := uuid.Parse(a.ID)
	assert.NilError(t, err)
	assert.Assert(t, a.ID != b.ID)
	assert.Assert(t, b.Seq > a.Seq)
	assert.Assert(t, a.Active)

	a.Close()
	assert.Assert(t, !a.Active)
}

func TestRecordChanges(t *testing.T) {
	tx := NewTransaction()
	tx.Record(ChangeTypeInsert, "users", 4)
	tx.Record(ChangeTypeDelete, "users", 2)

	assert.Equal(t, len(tx.Changes), 2)
	assert.Equal(t, tx.Changes[0].Type, ChangeTypeInsert)
	assert.Equal(t, tx.Changes[1].RowID, int64(2))

	var nilTx *Transaction
	nilTx.Record(ChangeTypeUpdate, "users", 1)
}
