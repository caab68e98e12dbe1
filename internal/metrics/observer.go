package metrics

import (
	"github.com/leengari/jsonserver/internal/catalog"
	"github.com/leengari/jsonserver/internal/engine"
)

// Observer turns operation events into Prometheus samples
type Observer struct {
	catalog *catalog.Catalog
}

// NewObserver creates an observer and records the initial row count of every table
func NewObserver(c *catalog.Catalog) *Observer {
	for _, e := range c.Entries() {
		SetTableRows(e.Name(), e.Table.Len())
	}
	return &Observer{catalog: c}
}

// OnEvent implements engine.Observer
func (o *Observer) OnEvent(event engine.Event) {
	if event.Type != engine.EventOpEnd {
		return
	}
	ObserveOperation(event.Table, event.Operation, event.Duration, event.Err)

	if e, ok := o.catalog.Get(event.Table); ok {
		SetTableRows(event.Table, e.Table.Len())
	}
}
