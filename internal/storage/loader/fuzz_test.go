package loader

import (
	"math/rand"
	"path/filepath"
	"testing"

	fuzz "github.com/google/gofuzz"
	"gotest.tools/v3/assert"

	"github.com/leengari/jsonserver/internal/domain/data"
	"github.com/leengari/jsonserver/internal/domain/schema"
	"github.com/leengari/jsonserver/internal/storage/writer"
	"github.com/leengari/jsonserver/internal/testutil"
)

type fuzzRow struct {
	Name  string
	Count int64
	Ratio int32
}

// Random tables survive a write and reload unchanged
func TestRoundTripFuzz(t *testing.T) {
	f := fuzz.New().NilChance(0).RandSource(rand.NewSource(42))
	s := &schema.TableSchema{
		TableName: "fuzz",
		Columns: []schema.Column{
			{Name: "id", Type: schema.ColumnTypeInt},
			{Name: "name", Type: schema.ColumnTypeText},
			{Name: "count", Type: schema.ColumnTypeInt},
			{Name: "ratio", Type: schema.ColumnTypeFloat},
		},
	}
	w := writer.New()

	for round := 0; round < 20; round++ {
		rows := make([]data.Row, 1+round%7)
		for i := range rows {
			var fr fuzzRow
			f.Fuzz(&fr)
			rows[i] = data.Row{
				data.Int(int64(i + 1)),
				data.Text(fr.Name),
				data.Int(fr.Count),
				// keep a fraction so the column stays FLOAT
				data.Float(float64(fr.Ratio) + 0.5),
			}
		}

		path := filepath.Join(t.TempDir(), "fuzz.json")
		assert.NilError(t, w.Save(path, s, rows))

		lt, err := LoadTable(path)
		assert.NilError(t, err)
		assert.DeepEqual(t, lt.Schema.Columns, s.Columns)
		testutil.AssertRowsEqual(t, lt.Rows, rows, "fuzzed table")
	}
}
