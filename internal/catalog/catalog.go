package catalog

import (
	"fmt"
	"log/slog"

	"github.com/leengari/jsonserver/internal/domain/schema"
	"github.com/leengari/jsonserver/internal/query/operations"
	"github.com/leengari/jsonserver/internal/storage/loader"
	"github.com/leengari/jsonserver/internal/store"
)

// Entry ties a table to its schema and synthesized operations
type Entry struct {
	Table  *store.Table
	Schema *schema.TableSchema
	Ops    *operations.Set
}

// Name returns the table name
func (e *Entry) Name() string { return e.Table.Name() }

// Catalog is the set of tables served by the process.
// It is built once at startup and not modified while serving.
type Catalog struct {
	entries []*Entry
	byName  map[string]*Entry
}

// New creates an empty catalog
func New() *Catalog {
	return &Catalog{byName: make(map[string]*Entry)}
}

// Add synthesizes the operations of a table and registers it
func (c *Catalog) Add(t *store.Table) (*Entry, error) {
	if _, exists := c.byName[t.Name()]; exists {
		return nil, fmt.Errorf("table %s registered twice", t.Name())
	}
	e := &Entry{
		Table:  t,
		Schema: t.Schema(),
		Ops:    operations.Synthesize(t),
	}
	c.entries = append(c.entries, e)
	c.byName[t.Name()] = e
	return e, nil
}

// Load builds a catalog from every data file in dir.
// Any file that cannot be loaded fails the whole load.
func Load(dir string, p store.Persister) (*Catalog, error) {
	files, err := loader.Discover(dir)
	if err != nil {
		return nil, err
	}

	c := New()
	for _, path := range files {
		lt, err := loader.LoadTable(path)
		if err != nil {
			return nil, err
		}
		t, err := store.New(lt.Name, lt.Path, lt.Schema, lt.Rows, p)
		if err != nil {
			return nil, err
		}
		if _, err := c.Add(t); err != nil {
			return nil, err
		}

		slog.Info("table loaded",
			slog.String("table", lt.Name),
			slog.Int("rows", len(lt.Rows)),
			slog.Any("columns", lt.Schema.ColumnNames()),
		)
	}

	slog.Info("catalog ready", slog.String("path", dir), slog.Int("tables", len(c.entries)))
	return c, nil
}

// Get returns the entry of a table
func (c *Catalog) Get(name string) (*Entry, bool) {
	e, ok := c.byName[name]
	return e, ok
}

// Entries returns the tables in load order (sorted by file name)
func (c *Catalog) Entries() []*Entry {
	return c.entries
}

// Names returns the table names in load order
func (c *Catalog) Names() []string {
	names := make([]string, len(c.entries))
	for i, e := range c.entries {
		names[i] = e.Name()
	}
	return names
}

// Len returns the number of tables
func (c *Catalog) Len() int {
	return len(c.entries)
}
