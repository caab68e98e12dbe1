package errors

import (
	"fmt"
	"strings"
)

// TypeCoercionError means a filter or field value cannot be cast to the column's declared type
type TypeCoercionError struct {
	Table    string      // table name
	Column   string      // column name
	Value    interface{} // offending value
	Expected string      // declared column type
}

func (e *TypeCoercionError) Error() string {
	return fmt.Sprintf("type coercion failed for %s.%s: value=%v, expected %s",
		e.Table, e.Column, e.Value, e.Expected)
}

// NotFoundError means an id-targeted operation found no matching row
type NotFoundError struct {
	Table string
	ID    int64
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s: no row with id=%d", e.Table, e.ID)
}

// TableNotFoundError means an operation named a table the catalog does not hold
type TableNotFoundError struct {
	Table string
}

func (e *TableNotFoundError) Error() string {
	return fmt.Sprintf("table %s not found", e.Table)
}

// ValidationError represents a missing required field or an out-of-range argument
type ValidationError struct {
	Table  string
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	var parts []string
	if e.Field != "" {
		parts = append(parts, fmt.Sprintf("validation failed for %s.%s", e.Table, e.Field))
	} else {
		parts = append(parts, fmt.Sprintf("validation failed for %s", e.Table))
	}
	if e.Reason != "" {
		parts = append(parts, e.Reason)
	}
	return strings.Join(parts, " - ")
}

// PersistenceError means the backing file could not be written.
// The in-memory table is left at its last committed state.
type PersistenceError struct {
	Table string
	Path  string
	Err   error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("failed to persist table %s to %s: %v", e.Table, e.Path, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}

// AllocationError means a new id could not be computed
type AllocationError struct {
	Table  string
	Reason string
}

func (e *AllocationError) Error() string {
	return fmt.Sprintf("id allocation failed for %s: %s", e.Table, e.Reason)
}

// LoadError means a data file could not be turned into a table
type LoadError struct {
	Path   string
	Reason string
	Err    error
}

func (e *LoadError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("cannot load %s: %s: %v", e.Path, e.Reason, e.Err)
	}
	return fmt.Sprintf("cannot load %s: %s", e.Path, e.Reason)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

func NewMissingField(table, field string) *ValidationError {
	return &ValidationError{Table: table, Field: field, Reason: "missing required value"}
}

func NewTypeCoercion(table, column string, value interface{}, expected string) *TypeCoercionError {
	return &TypeCoercionError{Table: table, Column: column, Value: value, Expected: expected}
}
