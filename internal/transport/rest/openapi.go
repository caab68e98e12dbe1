package rest

import (
	"net/http"

	"github.com/leengari/jsonserver/internal/domain/schema"
	"github.com/leengari/jsonserver/internal/engine"
	"github.com/leengari/jsonserver/internal/query/operations"
)

const (
	apiTitle   = "FAST JSON API SERVER"
	apiVersion = "1.0.0"
	apiPrefix  = "/api/v1"
)

// Document is the subset of an OpenAPI 3 document the server describes itself with
type Document struct {
	OpenAPI string              `json:"openapi"`
	Info    Info                `json:"info"`
	Paths   map[string]PathItem `json:"paths"`
}

type Info struct {
	Title   string `json:"title"`
	Version string `json:"version"`
}

// PathItem maps a lower-case HTTP method to its operation
type PathItem map[string]*Operation

type Operation struct {
	OperationID string                    `json:"operationId"`
	Tags        []string                  `json:"tags"`
	Parameters  []Parameter               `json:"parameters,omitempty"`
	RequestBody *RequestBody              `json:"requestBody,omitempty"`
	Responses   map[string]ResponseObject `json:"responses"`
}

type Parameter struct {
	Name     string `json:"name"`
	In       string `json:"in"`
	Required bool   `json:"required"`
	Schema   Schema `json:"schema"`
}

type RequestBody struct {
	Required bool                 `json:"required"`
	Content  map[string]MediaType `json:"content"`
}

type MediaType struct {
	Schema Schema `json:"schema"`
}

type ResponseObject struct {
	Description string `json:"description"`
}

type Schema struct {
	Type       string            `json:"type"`
	Default    interface{}       `json:"default,omitempty"`
	Properties map[string]Schema `json:"properties,omitempty"`
	Required   []string          `json:"required,omitempty"`
}

var openAPITypes = map[schema.ColumnType]string{
	schema.ColumnTypeInt:   "integer",
	schema.ColumnTypeFloat: "number",
	schema.ColumnTypeText:  "string",
}

// OpenAPI describes the resource endpoints of every table from its operation descriptors
func OpenAPI(e *engine.Engine) *Document {
	doc := &Document{
		OpenAPI: "3.0.3",
		Info:    Info{Title: apiTitle, Version: apiVersion},
		Paths:   map[string]PathItem{},
	}

	for _, entry := range e.Catalog().Entries() {
		name := entry.Name()
		if reservedNames[name] {
			continue
		}
		collection := PathItem{}
		item := PathItem{}

		for _, d := range entry.Ops.Descriptors() {
			op := &Operation{
				OperationID: string(d.Kind) + "_" + name,
				Tags:        []string{name},
				Responses:   responsesFor(d.Kind),
			}
			switch d.Kind {
			case operations.KindList:
				for _, a := range d.Args {
					op.Parameters = append(op.Parameters, Parameter{
						Name:   a.Name,
						In:     "query",
						Schema: Schema{Type: openAPITypes[a.Type], Default: a.Default},
					})
				}
				collection["get"] = op
			case operations.KindCreate:
				op.RequestBody = bodyFor(d)
				collection["post"] = op
			case operations.KindUpdate:
				op.Parameters = []Parameter{idParameter()}
				op.RequestBody = bodyFor(d)
				item["put"] = op
			case operations.KindDelete:
				op.Parameters = []Parameter{idParameter()}
				item["delete"] = op
			}
		}

		doc.Paths[apiPrefix+"/"+name] = collection
		doc.Paths[apiPrefix+"/"+name+"/{id}"] = item
	}
	return doc
}

func idParameter() Parameter {
	return Parameter{
		Name:     schema.IDColumn,
		In:       "path",
		Required: true,
		Schema:   Schema{Type: openAPITypes[schema.ColumnTypeInt]},
	}
}

func bodyFor(d operations.Descriptor) *RequestBody {
	obj := Schema{Type: "object", Properties: map[string]Schema{}}
	for _, a := range d.Fields() {
		obj.Properties[a.Name] = Schema{Type: openAPITypes[a.Type]}
		if a.Required {
			obj.Required = append(obj.Required, a.Name)
		}
	}
	return &RequestBody{
		Required: true,
		Content:  map[string]MediaType{"application/json": {Schema: obj}},
	}
}

func responsesFor(kind operations.Kind) map[string]ResponseObject {
	out := map[string]ResponseObject{
		"200": {Description: "Successful Response"},
		"422": {Description: "Validation Error"},
		"500": {Description: internalMessage},
	}
	if kind == operations.KindUpdate {
		out["404"] = ResponseObject{Description: "Not Found"}
	}
	return out
}

// ServeOpenAPI writes the document of the current catalog
func (h *Handler) ServeOpenAPI(w http.ResponseWriter, r *http.Request) {
	h.render.JSON(w, http.StatusOK, OpenAPI(h.engine))
}
