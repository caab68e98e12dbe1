package testutil

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/leengari/jsonserver/internal/domain/data"
	"github.com/leengari/jsonserver/internal/domain/schema"
	"github.com/leengari/jsonserver/internal/store"
)

// ErrDiskFull is returned by a failing MemoryPersister
var ErrDiskFull = errors.New("testutil: disk full")

// MemoryPersister records saves instead of writing files
type MemoryPersister struct {
	mu    sync.Mutex
	Saves int
	Last  []data.Row
	Fail  bool
}

// Save implements store.Persister
func (p *MemoryPersister) Save(path string, s *schema.TableSchema, rows []data.Row) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.Fail {
		return ErrDiskFull
	}
	p.Saves++
	p.Last = rows
	return nil
}

// SaveCount returns the number of successful saves
func (p *MemoryPersister) SaveCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.Saves
}

// UsersSchema returns the schema of the users fixture table
func UsersSchema() *schema.TableSchema {
	return &schema.TableSchema{
		TableName: "users",
		Columns: []schema.Column{
			{Name: "id", Type: schema.ColumnTypeInt},
			{Name: "username", Type: schema.ColumnTypeText},
			{Name: "age", Type: schema.ColumnTypeInt},
			{Name: "score", Type: schema.ColumnTypeFloat},
		},
	}
}

// UsersRows returns the rows of the users fixture table
func UsersRows() []data.Row {
	return []data.Row{
		{data.Int(1), data.Text("alice"), data.Int(30), data.Float(9.5)},
		{data.Int(3), data.Text("bob"), data.Int(25), data.Float(7.25)},
		{data.Int(5), data.Text("42"), data.Int(30), data.Float(9.5)},
	}
}

// CreateUsersTable creates a users table with sample data backed by a MemoryPersister
func CreateUsersTable(t *testing.T) (*store.Table, *MemoryPersister) {
	t.Helper()
	p := &MemoryPersister{}
	table, err := store.New("users", "users.json", UsersSchema(), UsersRows(), p)
	if err != nil {
		t.Fatalf("failed to create users table: %v", err)
	}
	return table, p
}

// CreateNumberedTable creates a table with ids 1..n and a label column
func CreateNumberedTable(t *testing.T, n int) (*store.Table, *MemoryPersister) {
	t.Helper()
	s := &schema.TableSchema{
		TableName: "items",
		Columns: []schema.Column{
			{Name: "id", Type: schema.ColumnTypeInt},
			{Name: "label", Type: schema.ColumnTypeText},
		},
	}
	rows := make([]data.Row, n)
	for i := range rows {
		rows[i] = data.Row{data.Int(int64(i + 1)), data.Text(fmt.Sprintf("item-%d", i+1))}
	}
	p := &MemoryPersister{}
	table, err := store.New("items", "items.json", s, rows, p)
	if err != nil {
		t.Fatalf("failed to create items table: %v", err)
	}
	return table, p
}

// WriteDataFile writes a data file into dir and returns its path
func WriteDataFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write %s: %v", path, err)
	}
	return path
}

// UsersJSON is the users fixture as it would appear on disk
const UsersJSON = `[
    {"id": 1, "username": "alice", "age": 30, "score": 9.5},
    {"id": 3, "username": "bob", "age": 25, "score": 7.25},
    {"id": 5, "username": "42", "age": 30, "score": 9.5}
]`
