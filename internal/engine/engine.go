package engine

import (
	"context"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/leengari/jsonserver/internal/catalog"
	"github.com/leengari/jsonserver/internal/domain/data"
	"github.com/leengari/jsonserver/internal/domain/errors"
	"github.com/leengari/jsonserver/internal/domain/transaction"
	"github.com/leengari/jsonserver/internal/query/operations"
	"github.com/leengari/jsonserver/internal/query/pagination"
)

const tracerName = "github.com/leengari/jsonserver/internal/engine"

// Engine is the entry point the protocol adapters call into.
// It resolves the table, runs the synthesized operation inside a span and
// reports lifecycle events to its observers.
type Engine struct {
	catalog *catalog.Catalog
	tracer  trace.Tracer

	mu        sync.RWMutex
	observers []Observer // Observers for lifecycle events
}

// Option configures an Engine
type Option func(*Engine)

// WithTracerProvider makes the engine create its spans from tp instead of the global provider
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(e *Engine) {
		e.tracer = tp.Tracer(tracerName)
	}
}

// WithObserver registers an observer at construction time
func WithObserver(o Observer) Option {
	return func(e *Engine) {
		e.observers = append(e.observers, o)
	}
}

// New creates a new Engine over a loaded catalog
func New(c *catalog.Catalog, opts ...Option) *Engine {
	e := &Engine{
		catalog:   c,
		tracer:    otel.Tracer(tracerName),
		observers: make([]Observer, 0),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Catalog returns the tables served by the engine
func (e *Engine) Catalog() *catalog.Catalog {
	return e.catalog
}

// ListTables returns the table names in catalog order
func (e *Engine) ListTables() []string {
	return e.catalog.Names()
}

// List runs the list operation of a table
func (e *Engine) List(ctx context.Context, table string, args operations.Args) (pagination.Page[data.Record], error) {
	var page pagination.Page[data.Record]
	err := e.execute(ctx, table, operations.KindList, func(tx *transaction.Transaction, ops *operations.Set) (interface{}, error) {
		var err error
		page, err = ops.List(tx, args)
		return map[string]int{"total_items": page.TotalItems, "returned": len(page.PageData.Items)}, err
	})
	return page, err
}

// Create runs the create operation of a table and returns the new id
func (e *Engine) Create(ctx context.Context, table string, args operations.Args) (int64, error) {
	var id int64
	err := e.execute(ctx, table, operations.KindCreate, func(tx *transaction.Transaction, ops *operations.Set) (interface{}, error) {
		var err error
		id, err = ops.Create(tx, args)
		return map[string]int64{"id": id}, err
	})
	return id, err
}

// Update runs the update operation of a table
func (e *Engine) Update(ctx context.Context, table string, args operations.Args) error {
	return e.execute(ctx, table, operations.KindUpdate, func(tx *transaction.Transaction, ops *operations.Set) (interface{}, error) {
		err := ops.Update(tx, args)
		return map[string]int{"changes": len(tx.Changes)}, err
	})
}

// Delete runs the delete operation of a table and returns the number of removed rows
func (e *Engine) Delete(ctx context.Context, table string, args operations.Args) (int, error) {
	var n int
	err := e.execute(ctx, table, operations.KindDelete, func(tx *transaction.Transaction, ops *operations.Set) (interface{}, error) {
		var err error
		n, err = ops.Delete(tx, args)
		return map[string]int{"deleted": n}, err
	})
	return n, err
}

type opFunc func(tx *transaction.Transaction, ops *operations.Set) (interface{}, error)

func (e *Engine) execute(ctx context.Context, table string, kind operations.Kind, fn opFunc) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	entry, ok := e.catalog.Get(table)
	if !ok {
		return &errors.TableNotFoundError{Table: table}
	}

	tx := transaction.NewTransaction()
	defer tx.Close()

	_, span := e.tracer.Start(ctx, "jsonserver."+string(kind),
		trace.WithAttributes(
			attribute.String("table", table),
			attribute.String("tx_id", tx.ID),
		),
	)
	defer span.End()

	e.notify(Event{Type: EventOpStart, TxID: tx.ID, Table: table, Operation: string(kind)})

	result, err := fn(tx, entry.Ops)

	end := Event{
		Type:      EventOpEnd,
		TxID:      tx.ID,
		Table:     table,
		Operation: string(kind),
		Duration:  tx.Elapsed(),
		Err:       err,
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	} else {
		end.Data = result
		span.SetStatus(codes.Ok, "")
	}
	span.SetAttributes(attribute.Int("changes", len(tx.Changes)))
	e.notify(end)

	return err
}

// AddObserver registers an observer to receive lifecycle events
func (e *Engine) AddObserver(observer Observer) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.observers = append(e.observers, observer)
}

// RemoveObserver unregisters an observer
func (e *Engine) RemoveObserver(observer Observer) {
	e.mu.Lock()
	defer e.mu.Unlock()
	for i, o := range e.observers {
		if o == observer {
			e.observers = append(e.observers[:i:i], e.observers[i+1:]...)
			return
		}
	}
}

// notify sends an event to all registered observers
func (e *Engine) notify(event Event) {
	event.Timestamp = time.Now()

	e.mu.RLock()
	observers := e.observers
	e.mu.RUnlock()

	for _, observer := range observers {
		observer.OnEvent(event)
	}
}
