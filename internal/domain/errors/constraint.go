package errors

import (
	"fmt"
	"strings"
)

// ConstraintError represents a violation of a table invariant found in loaded data
// (duplicate id, non-integer id)
type ConstraintError struct {
	Table      string      // table name
	Column     string      // column name (empty if table-level constraint)
	Value      interface{} // offending value (may be nil)
	Constraint string      // "unique", "type_mismatch", ...
	Reason     string      // human-readable explanation (optional)
	RowIndex   int         // row number (0-based) where violation occurred (-1 if unknown)
	Rows       []int       // for unique violations: all conflicting row positions
}

func (e *ConstraintError) Error() string {
	var parts []string

	parts = append(parts, fmt.Sprintf("constraint violation in %s.%s", e.Table, e.Column))

	if e.Constraint != "" {
		parts = append(parts, fmt.Sprintf("(%s)", e.Constraint))
	}

	if e.Value != nil {
		parts = append(parts, fmt.Sprintf("value=%v", e.Value))
	}

	if e.Reason != "" {
		parts = append(parts, e.Reason)
	}

	if e.RowIndex >= 0 {
		parts = append(parts, fmt.Sprintf("at row %d", e.RowIndex))
	}

	return strings.Join(parts, " - ")
}
