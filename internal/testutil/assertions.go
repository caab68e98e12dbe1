package testutil

import (
	"testing"

	"github.com/leengari/jsonserver/internal/domain/data"
)

// AssertRowCount checks if the result has the expected number of rows
func AssertRowCount(t *testing.T, actual, expected int, context string) {
	t.Helper()
	if actual != expected {
		t.Errorf("%s: expected %d rows, got %d", context, expected, actual)
	}
}

// AssertColumnValue checks the text form of a record's column
func AssertColumnValue(t *testing.T, rec data.Record, column, expected, context string) {
	t.Helper()
	v, ok := rec.Get(column)
	if !ok {
		t.Errorf("%s: expected column '%s' to exist", context, column)
		return
	}
	if v.String() != expected {
		t.Errorf("%s: expected %s=%q, got %q", context, column, expected, v.String())
	}
}

// AssertIDs checks the ids of records in order
func AssertIDs(t *testing.T, recs []data.Record, expected []int64, context string) {
	t.Helper()
	if len(recs) != len(expected) {
		t.Errorf("%s: expected %d records, got %d", context, len(expected), len(recs))
		return
	}
	for i, rec := range recs {
		v, _ := rec.Get("id")
		if v.Int64() != expected[i] {
			t.Errorf("%s: record %d: expected id=%d, got %s", context, i, expected[i], v.String())
		}
	}
}

// AssertNoError checks that an error is nil
func AssertNoError(t *testing.T, err error, context string) {
	t.Helper()
	if err != nil {
		t.Errorf("%s: expected no error, got: %v", context, err)
	}
}

// AssertError checks that an error is not nil
func AssertError(t *testing.T, err error, context string) {
	t.Helper()
	if err == nil {
		t.Errorf("%s: expected an error, got nil", context)
	}
}

// AssertRowsEqual compares two row sequences value by value
func AssertRowsEqual(t *testing.T, actual, expected []data.Row, context string) {
	t.Helper()
	if len(actual) != len(expected) {
		t.Errorf("%s: expected %d rows, got %d", context, len(expected), len(actual))
		return
	}
	for i := range expected {
		if len(actual[i]) != len(expected[i]) {
			t.Errorf("%s: row %d: expected %d values, got %d", context, i, len(expected[i]), len(actual[i]))
			continue
		}
		for j := range expected[i] {
			a, e := actual[i][j], expected[i][j]
			if a.Kind() != e.Kind() || !a.Equal(e) {
				t.Errorf("%s: row %d col %d: expected %s(%s), got %s(%s)",
					context, i, j, e.Kind(), e.String(), a.Kind(), a.String())
			}
		}
	}
}
