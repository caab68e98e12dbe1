package catalog

import (
	stderrors "errors"
	"testing"

	"gotest.tools/v3/assert"

	"github.com/leengari/jsonserver/internal/domain/errors"
	"github.com/leengari/jsonserver/internal/query/operations"
	"github.com/leengari/jsonserver/internal/testutil"
)

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	testutil.WriteDataFile(t, dir, "users.json", testutil.UsersJSON)
	testutil.WriteDataFile(t, dir, "empty.json", `[]`)
	p := &testutil.MemoryPersister{}

	c, err := Load(dir, p)
	assert.NilError(t, err)
	assert.Equal(t, c.Len(), 2)
	assert.DeepEqual(t, c.Names(), []string{"empty", "users"})

	users, ok := c.Get("users")
	assert.Assert(t, ok)
	assert.Equal(t, users.Table.Len(), 3)
	assert.Equal(t, users.Schema, users.Table.Schema())

	page, err := users.Ops.List(nil, operations.Args{"username": "bob"})
	assert.NilError(t, err)
	testutil.AssertIDs(t, page.PageData.Items, []int64{3}, "username=bob")

	empty, _ := c.Get("empty")
	id, err := empty.Ops.Create(nil, operations.Args{})
	assert.NilError(t, err)
	assert.Equal(t, id, int64(1))

	_, ok = c.Get("missing")
	assert.Assert(t, !ok)
}

func TestLoadFailsOnBadFile(t *testing.T) {
	dir := t.TempDir()
	testutil.WriteDataFile(t, dir, "good.json", `[]`)
	testutil.WriteDataFile(t, dir, "dup.json", `[{"id": 1}, {"id": 1}]`)

	_, err := Load(dir, &testutil.MemoryPersister{})
	var lerr *errors.LoadError
	assert.Assert(t, stderrors.As(err, &lerr))
}

func TestAddRejectsDuplicateName(t *testing.T) {
	table, _ := testutil.CreateUsersTable(t)
	c := New()
	_, err := c.Add(table)
	assert.NilError(t, err)
	_, err = c.Add(table)
	assert.Assert(t, err != nil)
}
