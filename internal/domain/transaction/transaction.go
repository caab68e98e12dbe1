package transaction

import (
	"sync/atomic"
	"time"

	"github.com/google/uuid"
)

// txIDCounter is an atomic counter for generating sequential operation numbers
var txIDCounter uint64

// ChangeType represents the type of modification
type ChangeType string

const (
	ChangeTypeInsert ChangeType = "INSERT"
	ChangeTypeUpdate ChangeType = "UPDATE"
	ChangeTypeDelete ChangeType = "DELETE"
)

// Change represents a single modification applied by an operation
type Change struct {
	Type  ChangeType
	Table string
	RowID int64
}

// Transaction is the context of one operation call.
// It is not a database transaction: nothing is rolled back, it only
// identifies the call in logs, events and spans.
type Transaction struct {
	ID        string    // Unique identifier (UUID)
	Seq       uint64    // Process-local sequence number
	Active    bool      // Whether the operation is still running
	StartTime time.Time // When the operation began
	Changes   []Change  // Modifications made
}

// NewTransaction creates a new transaction with a unique ID
func NewTransaction() *Transaction {
	return &Transaction{
		ID:        uuid.New().String(),
		Seq:       atomic.AddUint64(&txIDCounter, 1),
		Active:    true,
		StartTime: time.Now(),
		Changes:   make([]Change, 0),
	}
}

// Record appends a change to the transaction
func (tx *Transaction) Record(typ ChangeType, table string, rowID int64) {
	if tx == nil {
		return
	}
	tx.Changes = append(tx.Changes, Change{Type: typ, Table: table, RowID: rowID})
}

// Elapsed returns the time since the transaction started
func (tx *Transaction) Elapsed() time.Duration {
	return time.Since(tx.StartTime)
}

// Close marks the transaction as inactive
func (tx *Transaction) Close() {
	tx.Active = false
}
