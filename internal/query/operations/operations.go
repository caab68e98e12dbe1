package operations

import (
	"github.com/leengari/jsonserver/internal/query/predicate"
	"github.com/leengari/jsonserver/internal/store"
)

// Args holds raw operation arguments by name.
// Values are strings (query strings), json.Number/string/bool/nil or
// data.Value (decoded JSON bodies) or int/float64/string (GraphQL).
type Args map[string]interface{}

// Set is the four operations synthesized for one table, bound to its store.
// A Set is safe for concurrent use; all state lives in the store.
type Set struct {
	table       *store.Table
	filters     []predicate.Filter
	descriptors map[Kind]Descriptor
}

// Synthesize derives the descriptors and filters of a table from its schema
func Synthesize(table *store.Table) *Set {
	s := table.Schema()
	return &Set{
		table:       table,
		filters:     predicate.Build(s),
		descriptors: describe(s),
	}
}

// Table returns the store the operations are bound to
func (s *Set) Table() *store.Table { return s.table }

// Descriptor returns the contract of one operation
func (s *Set) Descriptor(kind Kind) Descriptor {
	return s.descriptors[kind]
}

// Descriptors returns every descriptor in Kinds order
func (s *Set) Descriptors() []Descriptor {
	out := make([]Descriptor, 0, len(Kinds))
	for _, k := range Kinds {
		out = append(out, s.descriptors[k])
	}
	return out
}
