package operations

import (
	"github.com/leengari/jsonserver/internal/domain/schema"
	"github.com/leengari/jsonserver/internal/query/pagination"
)

// Kind names one of the four synthesized operations
type Kind string

const (
	KindList   Kind = "list"
	KindCreate Kind = "create"
	KindUpdate Kind = "update"
	KindDelete Kind = "delete"
)

// Kinds lists every operation kind in registration order
var Kinds = []Kind{KindList, KindCreate, KindUpdate, KindDelete}

const (
	PageNumArg  = "page_num"
	PageSizeArg = "page_size"
)

// Arg is one named, typed argument of an operation
type Arg struct {
	Name     string
	Type     schema.ColumnType
	Required bool
	Default  interface{} // nil when there is none
}

// Descriptor is the argument contract of one operation on one table.
// Descriptors are derived once from the schema and never change.
type Descriptor struct {
	Kind  Kind
	Table string
	Args  []Arg
}

// Arg looks up an argument by name
func (d Descriptor) Arg(name string) (Arg, bool) {
	for _, a := range d.Args {
		if a.Name == name {
			return a, true
		}
	}
	return Arg{}, false
}

// Fields returns the arguments that map to table columns
func (d Descriptor) Fields() []Arg {
	out := make([]Arg, 0, len(d.Args))
	for _, a := range d.Args {
		switch {
		case d.Kind == KindList && (a.Name == PageNumArg || a.Name == PageSizeArg):
		case d.Kind != KindList && a.Name == schema.IDColumn:
		default:
			out = append(out, a)
		}
	}
	return out
}

func describe(s *schema.TableSchema) map[Kind]Descriptor {
	list := Descriptor{Kind: KindList, Table: s.TableName}
	for _, col := range s.Columns {
		list.Args = append(list.Args, Arg{Name: col.Name, Type: col.Type})
	}
	list.Args = append(list.Args,
		Arg{Name: PageNumArg, Type: schema.ColumnTypeInt, Default: pagination.DefaultPageNum},
		Arg{Name: PageSizeArg, Type: schema.ColumnTypeInt, Default: pagination.DefaultPageSize},
	)

	idArg := Arg{Name: schema.IDColumn, Type: schema.ColumnTypeInt, Required: true}
	create := Descriptor{Kind: KindCreate, Table: s.TableName}
	update := Descriptor{Kind: KindUpdate, Table: s.TableName, Args: []Arg{idArg}}
	for _, col := range s.DataColumns() {
		create.Args = append(create.Args, Arg{Name: col.Name, Type: col.Type, Required: true})
		update.Args = append(update.Args, Arg{Name: col.Name, Type: col.Type})
	}

	return map[Kind]Descriptor{
		KindList:   list,
		KindCreate: create,
		KindUpdate: update,
		KindDelete: {Kind: KindDelete, Table: s.TableName, Args: []Arg{idArg}},
	}
}
