package integration

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/leengari/jsonserver/internal/catalog"
	"github.com/leengari/jsonserver/internal/engine"
	"github.com/leengari/jsonserver/internal/storage/writer"
	"github.com/leengari/jsonserver/internal/testutil"
)

// setupTestData writes the fixture tables into a fresh directory:
// users (ids 1, 3, 5), items (25 rows) and an empty notes table
func setupTestData(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()

	testutil.WriteDataFile(t, dir, "users.json", testutil.UsersJSON)

	var items []string
	for i := 1; i <= 25; i++ {
		items = append(items, fmt.Sprintf(`{"id": %d, "label": "item-%d", "price": %d.5}`, i, i, i))
	}
	testutil.WriteDataFile(t, dir, "items.json", "["+strings.Join(items, ",\n")+"]")
	testutil.WriteDataFile(t, dir, "notes.json", "[]")
	return dir
}

// loadEngine builds the catalog of dir with real file persistence
func loadEngine(t *testing.T, dir string, opts ...engine.Option) *engine.Engine {
	t.Helper()
	c, err := catalog.Load(dir, writer.New())
	if err != nil {
		t.Fatalf("failed to load %s: %v", dir, err)
	}
	return engine.New(c, opts...)
}

func readFile(t *testing.T, dir, name string) string {
	t.Helper()
	raw, err := os.ReadFile(filepath.Join(dir, name))
	if err != nil {
		t.Fatalf("failed to read %s: %v", name, err)
	}
	return string(raw)
}

// recordingObserver keeps every lifecycle event it sees
type recordingObserver struct {
	mu     sync.Mutex
	Events []engine.Event
}

func (o *recordingObserver) OnEvent(e engine.Event) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.Events = append(o.Events, e)
}

func (o *recordingObserver) events() []engine.Event {
	o.mu.Lock()
	defer o.mu.Unlock()
	return append([]engine.Event(nil), o.Events...)
}
