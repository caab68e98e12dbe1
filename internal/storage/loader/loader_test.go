package loader

import (
	stderrors "errors"
	"os"
	"path/filepath"
	"testing"

	"gotest.tools/v3/assert"

	"github.com/leengari/jsonserver/internal/domain/data"
	"github.com/leengari/jsonserver/internal/domain/errors"
	"github.com/leengari/jsonserver/internal/domain/schema"
	"github.com/leengari/jsonserver/internal/storage/writer"
	"github.com/leengari/jsonserver/internal/testutil"
)

func TestLoadTable(t *testing.T) {
	dir := t.TempDir()
	path := testutil.WriteDataFile(t, dir, "users.json", testutil.UsersJSON)

	lt, err := LoadTable(path)
	assert.NilError(t, err)
	assert.Equal(t, lt.Name, "users")
	assert.Equal(t, lt.Path, path)
	assert.DeepEqual(t, lt.Schema, testutil.UsersSchema())
	testutil.AssertRowsEqual(t, lt.Rows, testutil.UsersRows(), "users.json")
}

func TestLoadTablePreservesKeyOrder(t *testing.T) {
	dir := t.TempDir()
	path := testutil.WriteDataFile(t, dir, "orders.json", `[
		{"zeta": "a", "id": 2, "alpha": 1.5},
		{"id": 1, "extra": true, "zeta": "b"}
	]`)

	lt, err := LoadTable(path)
	assert.NilError(t, err)
	assert.DeepEqual(t, lt.Schema.ColumnNames(), []string{"zeta", "id", "alpha", "extra"})
	assert.Equal(t, lt.Schema.Columns[2].Type, schema.ColumnTypeFloat)
	assert.Equal(t, lt.Schema.Columns[3].Type, schema.ColumnTypeText)

	// missing keys are null, rows keep file order
	assert.Equal(t, lt.Rows[0][1].Int64(), int64(2))
	assert.Assert(t, lt.Rows[0][3].IsNull())
	assert.Assert(t, lt.Rows[1][2].IsNull())
	assert.Equal(t, lt.Rows[1][3].Kind(), data.KindRaw)
}

func TestLoadEmptyArray(t *testing.T) {
	dir := t.TempDir()
	path := testutil.WriteDataFile(t, dir, "empty.json", `[]`)

	lt, err := LoadTable(path)
	assert.NilError(t, err)
	assert.Equal(t, len(lt.Rows), 0)
	assert.DeepEqual(t, lt.Schema.ColumnNames(), []string{"id"})
	assert.Equal(t, lt.Schema.Columns[0].Type, schema.ColumnTypeInt)
}

func TestLoadRejectsMalformedFiles(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"object", `{"id": 1}`},
		{"array of scalars", `[1, 2]`},
		{"truncated", `[{"id": 1}`},
		{"trailing data", `[] []`},
		{"empty file", ``},
		{"missing id", `[{"name": "x"}]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := testutil.WriteDataFile(t, t.TempDir(), "bad.json", tt.content)
			_, err := LoadTable(path)
			var lerr *errors.LoadError
			assert.Assert(t, stderrors.As(err, &lerr))
			assert.Equal(t, lerr.Path, path)
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := LoadTable(filepath.Join(t.TempDir(), "nope.json"))
	assert.Assert(t, stderrors.Is(err, os.ErrNotExist))
}

func TestDiscover(t *testing.T) {
	dir := t.TempDir()
	testutil.WriteDataFile(t, dir, "b.json", `[]`)
	testutil.WriteDataFile(t, dir, "a.json", `[]`)
	testutil.WriteDataFile(t, dir, "notes.txt", `x`)
	assert.NilError(t, os.Mkdir(filepath.Join(dir, "nested.json"), 0755))

	files, err := Discover(dir)
	assert.NilError(t, err)
	assert.DeepEqual(t, files, []string{filepath.Join(dir, "a.json"), filepath.Join(dir, "b.json")})
	assert.Equal(t, TableName(files[0]), "a")

	_, err = Discover(filepath.Join(dir, "missing"))
	assert.Assert(t, err != nil)
}

func TestRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := testutil.WriteDataFile(t, dir, "users.json", `[
		{"id": 1, "name": "a<b>&c", "tags": ["x", {"y": 1}], "ok": false, "n": 2.0},
		{"id": 2, "name": null, "tags": null, "ok": true, "n": 3}
	]`)

	first, err := LoadTable(path)
	assert.NilError(t, err)

	w := writer.New()
	assert.NilError(t, w.Save(path, first.Schema, first.Rows))

	second, err := LoadTable(path)
	assert.NilError(t, err)
	assert.DeepEqual(t, second.Schema, first.Schema)
	testutil.AssertRowsEqual(t, second.Rows, first.Rows, "reloaded")

	// writing again produces identical bytes
	before, err := os.ReadFile(path)
	assert.NilError(t, err)
	assert.NilError(t, w.Save(path, second.Schema, second.Rows))
	after, err := os.ReadFile(path)
	assert.NilError(t, err)
	assert.Equal(t, string(after), string(before))
}
