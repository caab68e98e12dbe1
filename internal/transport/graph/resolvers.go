package graph

import (
	"github.com/graphql-go/graphql"

	"github.com/leengari/jsonserver/internal/domain/data"
	"github.com/leengari/jsonserver/internal/domain/schema"
	"github.com/leengari/jsonserver/internal/query/operations"
)

func (b *builder) resolveList(table string, cols []column) graphql.FieldResolveFn {
	return func(p graphql.ResolveParams) (interface{}, error) {
		args := operations.Args{
			operations.PageNumArg:  p.Args[operations.PageNumArg],
			operations.PageSizeArg: p.Args[operations.PageSizeArg],
		}
		for _, c := range cols {
			if v, ok := p.Args[c.field]; ok {
				args[c.Name] = v
			}
		}

		page, err := b.engine.List(p.Context, table, args)
		if err != nil {
			return nil, publicError(err)
		}

		items := make([]map[string]interface{}, len(page.PageData.Items))
		for i, rec := range page.PageData.Items {
			items[i] = itemOf(rec, cols)
		}
		return []map[string]interface{}{{
			"total_pages": page.TotalPages,
			"total_items": page.TotalItems,
			"page_data": map[string]interface{}{
				"page_num":   page.PageData.PageNum,
				"item_count": page.PageData.ItemCount,
				"items":      items,
			},
		}}, nil
	}
}

func (b *builder) resolveCreate(table string, cols []column) graphql.FieldResolveFn {
	return func(p graphql.ResolveParams) (interface{}, error) {
		args := recordArgs(p.Args[createArg], cols)

		id, err := b.engine.Create(p.Context, table, args)
		if err != nil {
			return nil, publicError(err)
		}
		return map[string]interface{}{"message": successMessage, "id": id}, nil
	}
}

func (b *builder) resolveUpdate(table string, cols []column) graphql.FieldResolveFn {
	return func(p graphql.ResolveParams) (interface{}, error) {
		args := recordArgs(p.Args[updateArg], cols)
		args[schema.IDColumn] = p.Args[schema.IDColumn]

		if err := b.engine.Update(p.Context, table, args); err != nil {
			return nil, publicError(err)
		}
		return map[string]interface{}{"message": successMessage}, nil
	}
}

func (b *builder) resolveDelete(table string) graphql.FieldResolveFn {
	return func(p graphql.ResolveParams) (interface{}, error) {
		args := operations.Args{schema.IDColumn: p.Args[schema.IDColumn]}

		if _, err := b.engine.Delete(p.Context, table, args); err != nil {
			return nil, publicError(err)
		}
		return map[string]interface{}{"message": successMessage}, nil
	}
}

// recordArgs maps an input object back onto column names
func recordArgs(raw interface{}, cols []column) operations.Args {
	args := operations.Args{}
	fields, _ := raw.(map[string]interface{})
	for _, c := range cols {
		if c.IsID() {
			continue
		}
		if v, ok := fields[c.field]; ok {
			args[c.Name] = v
		}
	}
	return args
}

func itemOf(rec data.Record, cols []column) map[string]interface{} {
	item := make(map[string]interface{}, len(cols))
	for _, c := range cols {
		v, _ := rec.Get(c.Name)
		item[c.field] = fieldValue(c.Type, v)
	}
	return item
}
