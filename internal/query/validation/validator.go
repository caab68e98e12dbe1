package validation

import (
	"github.com/leengari/jsonserver/internal/domain/data"
	"github.com/leengari/jsonserver/internal/domain/errors"
	"github.com/leengari/jsonserver/internal/domain/schema"
)

// ValidateRecord builds a full row for a new record from raw field values.
// - Every non-id column is required; a missing or null value is a ValidationError
// - Each value is coerced to its column type (TypeCoercionError otherwise)
// - Fields that are not columns are ignored
// The id slot is left Null for the allocator.
func ValidateRecord(s *schema.TableSchema, fields map[string]interface{}) (data.Row, error) {
	row := make(data.Row, len(s.Columns))
	for i, col := range s.Columns {
		if col.IsID() {
			row[i] = data.Null()
			continue
		}

		raw, exists := fields[col.Name]
		if !exists || isNull(raw) {
			return nil, errors.NewMissingField(s.TableName, col.Name)
		}

		v, err := schema.Coerce(col.Type, raw)
		if err != nil {
			return nil, errors.NewTypeCoercion(s.TableName, col.Name, raw, string(col.Type))
		}
		row[i] = v
	}
	return row, nil
}

// ValidateChanges coerces the provided subset of non-id fields.
// Absent and null fields are left out, as are the id and unknown fields.
// Returns the changes keyed by column position.
func ValidateChanges(s *schema.TableSchema, fields map[string]interface{}) (map[int]data.Value, error) {
	changes := make(map[int]data.Value, len(fields))
	for i, col := range s.Columns {
		if col.IsID() {
			continue
		}

		raw, exists := fields[col.Name]
		if !exists || isNull(raw) {
			continue
		}

		v, err := schema.Coerce(col.Type, raw)
		if err != nil {
			return nil, errors.NewTypeCoercion(s.TableName, col.Name, raw, string(col.Type))
		}
		changes[i] = v
	}
	return changes, nil
}

// ValidateID coerces a required id argument
func ValidateID(table string, raw interface{}) (int64, error) {
	if isNull(raw) {
		return 0, errors.NewMissingField(table, schema.IDColumn)
	}
	v, err := schema.Coerce(schema.ColumnTypeInt, raw)
	if err != nil {
		return 0, errors.NewTypeCoercion(table, schema.IDColumn, raw, string(schema.ColumnTypeInt))
	}
	return v.Int64(), nil
}

// ValidateInt coerces an optional integer argument, falling back to def
func ValidateInt(table, name string, raw interface{}, def int) (int, error) {
	if isNull(raw) {
		return def, nil
	}
	v, err := schema.Coerce(schema.ColumnTypeInt, raw)
	if err != nil {
		return 0, errors.NewTypeCoercion(table, name, raw, string(schema.ColumnTypeInt))
	}
	return int(v.Int64()), nil
}

func isNull(raw interface{}) bool {
	if raw == nil {
		return true
	}
	v, ok := raw.(data.Value)
	return ok && v.IsNull()
}
