package rest

import (
	"embed"
	"io/fs"
	"net/http"
)

//go:embed templates/*.tmpl
var templates embed.FS

// page names routed next to the tables, which tables cannot shadow
var reservedNames = map[string]bool{
	"graphql":      true,
	"openapi.json": true,
	"docs":         true,
	"redoc":        true,
}

type docsPage struct {
	Title   string
	SpecURL string
}

func templateNames() []string {
	names, err := fs.Glob(templates, "templates/*.tmpl")
	if err != nil {
		return nil
	}
	return names
}

// ServeDocs serves the Swagger UI page for the OpenAPI document
func (h *Handler) ServeDocs(w http.ResponseWriter, r *http.Request) {
	h.render.HTML(w, http.StatusOK, "docs", docsPage{Title: apiTitle, SpecURL: apiPrefix + "/openapi.json"})
}

// ServeReDoc serves the ReDoc page for the OpenAPI document
func (h *Handler) ServeReDoc(w http.ResponseWriter, r *http.Request) {
	h.render.HTML(w, http.StatusOK, "redoc", docsPage{Title: apiTitle, SpecURL: apiPrefix + "/openapi.json"})
}
