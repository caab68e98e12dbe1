package rest

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/unrolled/render"

	"github.com/leengari/jsonserver/internal/domain/data"
	"github.com/leengari/jsonserver/internal/domain/schema"
	"github.com/leengari/jsonserver/internal/engine"
	"github.com/leengari/jsonserver/internal/query/operations"
)

const successMessage = "success"

// Handler serves the resource endpoints of every table in the engine's catalog
type Handler struct {
	engine *engine.Engine
	render *render.Render
}

// New creates a Handler
func New(e *engine.Engine) *Handler {
	return &Handler{
		engine: e,
		render: render.New(render.Options{
			Directory:    "templates",
			Asset:        templates.ReadFile,
			AssetNames:   templateNames,
			UnEscapeHTML: true,
		}),
	}
}

// Register mounts the OpenAPI document, its pages and the routes of every table on r.
// r is expected to be the /api/v1 subrouter.
func (h *Handler) Register(r *mux.Router) {
	r.HandleFunc("/openapi.json", h.ServeOpenAPI).Methods(http.MethodGet)
	r.HandleFunc("/docs", h.ServeDocs).Methods(http.MethodGet)
	r.HandleFunc("/redoc", h.ServeReDoc).Methods(http.MethodGet)

	for _, name := range routedTables(h.engine) {
		base := "/" + name
		r.HandleFunc(base, h.list(name)).Methods(http.MethodGet)
		r.HandleFunc(base+"/", h.list(name)).Methods(http.MethodGet)
		r.HandleFunc(base, h.create(name)).Methods(http.MethodPost)
		r.HandleFunc(base+"/", h.create(name)).Methods(http.MethodPost)
		r.HandleFunc(base+"/{id}", h.update(name)).Methods(http.MethodPut)
		r.HandleFunc(base+"/{id}", h.delete(name)).Methods(http.MethodDelete)
	}
}

// routedTables returns the tables whose names do not clash with a fixed route
func routedTables(e *engine.Engine) []string {
	var out []string
	for _, name := range e.ListTables() {
		if reservedNames[name] {
			slog.Warn("table name is reserved, skipping REST routes", slog.String("table", name))
			continue
		}
		out = append(out, name)
	}
	return out
}

func (h *Handler) list(table string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		args := operations.Args{}
		for key, values := range r.URL.Query() {
			if len(values) > 0 {
				args[key] = values[0]
			}
		}

		page, err := h.engine.List(r.Context(), table, args)
		if err != nil {
			h.fail(w, r, err)
			return
		}
		h.render.JSON(w, http.StatusOK, page)
	}
}

func (h *Handler) create(table string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		args, err := decodeBody(r.Body)
		if err != nil {
			h.fail(w, r, err)
			return
		}

		id, err := h.engine.Create(r.Context(), table, args)
		if err != nil {
			h.fail(w, r, err)
			return
		}
		h.render.JSON(w, http.StatusOK, Response{Message: successMessage, ID: &id})
	}
}

func (h *Handler) update(table string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		args, err := decodeBody(r.Body)
		if err != nil {
			h.fail(w, r, err)
			return
		}
		// the path id wins over an id in the body
		args[schema.IDColumn] = mux.Vars(r)["id"]

		if err := h.engine.Update(r.Context(), table, args); err != nil {
			h.fail(w, r, err)
			return
		}
		h.render.JSON(w, http.StatusOK, Response{Message: successMessage})
	}
}

func (h *Handler) delete(table string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		args := operations.Args{schema.IDColumn: mux.Vars(r)["id"]}

		if _, err := h.engine.Delete(r.Context(), table, args); err != nil {
			h.fail(w, r, err)
			return
		}
		h.render.JSON(w, http.StatusOK, Response{Message: successMessage})
	}
}

// decodeBody reads a JSON object into typed values keyed by field name
func decodeBody(body io.Reader) (operations.Args, error) {
	raw, err := io.ReadAll(body)
	if err != nil {
		return nil, &BodyError{Err: err}
	}
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || raw[0] != '{' {
		return nil, &BodyError{Err: errors.New("expected a JSON object")}
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, &BodyError{Err: err}
	}

	args := make(operations.Args, len(fields))
	for name, msg := range fields {
		v, err := data.ParseJSON(msg)
		if err != nil {
			return nil, &BodyError{Err: err}
		}
		args[name] = v
	}
	return args, nil
}
