package graph

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/graphql-go/graphql"

	"github.com/leengari/jsonserver/internal/catalog"
	"github.com/leengari/jsonserver/internal/domain/data"
	domainerrors "github.com/leengari/jsonserver/internal/domain/errors"
	"github.com/leengari/jsonserver/internal/domain/schema"
	"github.com/leengari/jsonserver/internal/engine"
	"github.com/leengari/jsonserver/internal/query/operations"
)

const (
	tablesField    = "tables"
	createArg      = "createRecord"
	updateArg      = "updateRecord"
	successMessage = "success"
	internalError  = "Internal Server Error"
)

var scalars = map[schema.ColumnType]*graphql.Scalar{
	schema.ColumnTypeInt:   graphql.Int,
	schema.ColumnTypeFloat: graphql.Float,
	schema.ColumnTypeText:  graphql.String,
}

// builder accumulates the root fields of the schema
type builder struct {
	engine    *engine.Engine
	queries   graphql.Fields
	mutations graphql.Fields
	types     map[string]bool
}

// NewSchema builds the query and mutation types of every table in the catalog
func NewSchema(e *engine.Engine) (graphql.Schema, error) {
	b := &builder{
		engine: e,
		queries: graphql.Fields{
			tablesField: &graphql.Field{
				Type:        graphql.NewList(graphql.String),
				Description: "Names of the tables served",
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return e.ListTables(), nil
				},
			},
		},
		mutations: graphql.Fields{},
		types:     map[string]bool{"Query": true, "Mutation": true},
	}

	for _, entry := range e.Catalog().Entries() {
		if err := b.addTable(entry); err != nil {
			slog.Warn("table not exposed over GraphQL", slog.String("table", entry.Name()), slog.Any("error", err))
		}
	}

	cfg := graphql.SchemaConfig{
		Query: graphql.NewObject(graphql.ObjectConfig{Name: "Query", Fields: b.queries}),
	}
	if len(b.mutations) > 0 {
		cfg.Mutation = graphql.NewObject(graphql.ObjectConfig{Name: "Mutation", Fields: b.mutations})
	}
	return graphql.NewSchema(cfg)
}

// column binds a GraphQL field name to a table column
type column struct {
	field string
	schema.Column
}

func (b *builder) addTable(entry *catalog.Entry) error {
	table := entry.Name()
	base := typeName(table)
	field := sanitize(table)

	if _, taken := b.queries[field]; taken {
		return fmt.Errorf("query field %s already defined", field)
	}
	names := []string{base, base + "PageInfo", base + "Items", base + "Record",
		"Create" + base, "Update" + base, "Delete" + base}
	for _, name := range names {
		if b.types[name] {
			return fmt.Errorf("type %s already defined", name)
		}
	}

	cols, err := columnsOf(entry.Schema)
	if err != nil {
		return err
	}

	items := graphql.Fields{}
	for _, c := range cols {
		items[c.field] = &graphql.Field{Type: scalars[c.Type]}
	}
	itemsType := graphql.NewObject(graphql.ObjectConfig{Name: base + "Items", Fields: items})
	pageInfoType := graphql.NewObject(graphql.ObjectConfig{
		Name: base + "PageInfo",
		Fields: graphql.Fields{
			"page_num":   &graphql.Field{Type: graphql.Int},
			"item_count": &graphql.Field{Type: graphql.Int},
			"items":      &graphql.Field{Type: graphql.NewList(itemsType)},
		},
	})
	pageType := graphql.NewObject(graphql.ObjectConfig{
		Name: base,
		Fields: graphql.Fields{
			"total_pages": &graphql.Field{Type: graphql.Int},
			"total_items": &graphql.Field{Type: graphql.Int},
			"page_data":   &graphql.Field{Type: pageInfoType},
		},
	})

	listArgs := graphql.FieldConfigArgument{}
	list := entry.Ops.Descriptor(operations.KindList)
	for _, c := range cols {
		listArgs[c.field] = &graphql.ArgumentConfig{Type: scalars[c.Type]}
	}
	for _, name := range []string{operations.PageSizeArg, operations.PageNumArg} {
		a, _ := list.Arg(name)
		listArgs[name] = &graphql.ArgumentConfig{Type: scalars[a.Type], DefaultValue: a.Default}
	}

	b.queries[field] = &graphql.Field{
		Type:        graphql.NewList(pageType),
		Description: fmt.Sprintf("Paginated %s records", table),
		Args:        listArgs,
		Resolve:     b.resolveList(table, cols),
	}
	for _, name := range names {
		b.types[name] = true
	}

	b.addMutations(table, base, cols)
	return nil
}

func (b *builder) addMutations(table, base string, cols []column) {
	messageField := &graphql.Field{Type: graphql.String}
	idArg := &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Int)}

	recordFields := graphql.InputObjectConfigFieldMap{}
	for _, c := range cols {
		if c.IsID() {
			continue
		}
		recordFields[c.field] = &graphql.InputObjectFieldConfig{Type: scalars[c.Type]}
	}

	// an input object needs at least one field
	if len(recordFields) > 0 {
		recordType := graphql.NewInputObject(graphql.InputObjectConfig{
			Name:   base + "Record",
			Fields: recordFields,
		})

		b.mutations["create"+base] = &graphql.Field{
			Type: graphql.NewObject(graphql.ObjectConfig{
				Name: "Create" + base,
				Fields: graphql.Fields{
					"message": messageField,
					"id":      &graphql.Field{Type: graphql.Int},
				},
			}),
			Description: fmt.Sprintf("Create %s Record", table),
			Args: graphql.FieldConfigArgument{
				createArg: &graphql.ArgumentConfig{Type: graphql.NewNonNull(recordType)},
			},
			Resolve: b.resolveCreate(table, cols),
		}
		b.mutations["update"+base] = &graphql.Field{
			Type: graphql.NewObject(graphql.ObjectConfig{
				Name:   "Update" + base,
				Fields: graphql.Fields{"message": messageField},
			}),
			Description: fmt.Sprintf("Update %s Record", table),
			Args: graphql.FieldConfigArgument{
				schema.IDColumn: idArg,
				updateArg:       &graphql.ArgumentConfig{Type: graphql.NewNonNull(recordType)},
			},
			Resolve: b.resolveUpdate(table, cols),
		}
	}

	b.mutations["delete"+base] = &graphql.Field{
		Type: graphql.NewObject(graphql.ObjectConfig{
			Name:   "Delete" + base,
			Fields: graphql.Fields{"message": messageField},
		}),
		Description: fmt.Sprintf("Delete %s", table),
		Args:        graphql.FieldConfigArgument{schema.IDColumn: idArg},
		Resolve:     b.resolveDelete(table),
	}
}

// columnsOf names every column for GraphQL, rejecting names that collide once sanitized
func columnsOf(s *schema.TableSchema) ([]column, error) {
	seen := make(map[string]string, len(s.Columns))
	out := make([]column, 0, len(s.Columns))
	for _, col := range s.Columns {
		field := sanitize(col.Name)
		if prev, dup := seen[field]; dup {
			return nil, fmt.Errorf("columns %q and %q both map to field %s", prev, col.Name, field)
		}
		if field == operations.PageNumArg || field == operations.PageSizeArg {
			return nil, fmt.Errorf("column %q collides with a paging argument", col.Name)
		}
		seen[field] = col.Name
		out = append(out, column{field: field, Column: col})
	}
	return out, nil
}

// publicError hides failures the caller cannot act on
func publicError(err error) error {
	var (
		coercion   *domainerrors.TypeCoercionError
		validation *domainerrors.ValidationError
		notFound   *domainerrors.NotFoundError
		noTable    *domainerrors.TableNotFoundError
	)
	switch {
	case errors.As(err, &coercion), errors.As(err, &validation),
		errors.As(err, &notFound), errors.As(err, &noTable):
		return err
	default:
		slog.Error("graphql resolver failed", slog.Any("error", err))
		return errors.New(internalError)
	}
}

// fieldValue converts a cell to what the GraphQL scalar of its column serializes
func fieldValue(t schema.ColumnType, v data.Value) interface{} {
	switch {
	case v.IsNull():
		return nil
	case t == schema.ColumnTypeText:
		return v.String()
	default:
		return v.Interface()
	}
}
