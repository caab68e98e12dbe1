package schema

// TableSchema is the ordered list of (column, type) pairs of a table,
// in the column order of the backing file
type TableSchema struct {
	TableName string   `json:"table"`
	Columns   []Column `json:"columns"`
}

// ColumnNames returns the column names in schema order
func (s *TableSchema) ColumnNames() []string {
	names := make([]string, len(s.Columns))
	for i, c := range s.Columns {
		names[i] = c.Name
	}
	return names
}

// Index returns the position of the named column, or -1
func (s *TableSchema) Index(name string) int {
	for i, c := range s.Columns {
		if c.Name == name {
			return i
		}
	}
	return -1
}

// IDIndex returns the position of the id column, or -1 if the schema has none
func (s *TableSchema) IDIndex() int {
	return s.Index(IDColumn)
}

// Column returns the named column
func (s *TableSchema) Column(name string) (Column, bool) {
	if i := s.Index(name); i >= 0 {
		return s.Columns[i], true
	}
	return Column{}, false
}

// DataColumns returns every column except id, in schema order
func (s *TableSchema) DataColumns() []Column {
	out := make([]Column, 0, len(s.Columns))
	for _, c := range s.Columns {
		if !c.IsID() {
			out = append(out, c)
		}
	}
	return out
}
