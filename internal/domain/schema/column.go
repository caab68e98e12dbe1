package schema

// ColumnType is the declared type of a column, fixed at load time
type ColumnType string

const (
	ColumnTypeInt   ColumnType = "INT"
	ColumnTypeFloat ColumnType = "FLOAT"
	ColumnTypeText  ColumnType = "TEXT"
)

// IDColumn is the system column every table carries
const IDColumn = "id"

type Column struct {
	Name string     `json:"name"`
	Type ColumnType `json:"type"`
}

// IsID reports whether the column is the system id column
func (c Column) IsID() bool {
	return c.Name == IDColumn
}
