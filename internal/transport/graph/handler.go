package graph

import (
	"github.com/graphql-go/handler"

	"github.com/leengari/jsonserver/internal/engine"
)

// New builds the GraphQL endpoint of the engine's catalog with GraphiQL enabled
func New(e *engine.Engine) (*handler.Handler, error) {
	s, err := NewSchema(e)
	if err != nil {
		return nil, err
	}
	return handler.New(&handler.Config{
		Schema:   &s,
		Pretty:   true,
		GraphiQL: true,
	}), nil
}
