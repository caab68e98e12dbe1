package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/unrolled/render"
	"golang.org/x/sync/errgroup"

	"github.com/leengari/jsonserver/internal/engine"
	"github.com/leengari/jsonserver/internal/metrics"
	"github.com/leengari/jsonserver/internal/transport/graph"
	"github.com/leengari/jsonserver/internal/transport/rest"
)

const (
	APIPrefix       = "/api/v1"
	welcomeMessage  = "Welcome to FAST JSON SERVER"
	shutdownTimeout = 5 * time.Second
)

// Options selects what the server exposes
type Options struct {
	Addr    string
	REST    bool
	GraphQL bool
}

// Server is the HTTP front of the engine
type Server struct {
	addr string
	http *http.Server
}

// New wires the enabled adapters onto one router
func New(e *engine.Engine, opts Options) (*Server, error) {
	if !opts.REST && !opts.GraphQL {
		return nil, errors.New("no interface enabled")
	}
	rd := render.New()

	r := mux.NewRouter()
	welcome := func(w http.ResponseWriter, r *http.Request) {
		rd.JSON(w, http.StatusOK, map[string]string{"message": welcomeMessage})
	}
	r.HandleFunc(APIPrefix, welcome).Methods(http.MethodGet)
	r.HandleFunc(APIPrefix+"/", welcome).Methods(http.MethodGet)
	r.Handle("/metrics", promhttp.HandlerFor(metrics.Registry, promhttp.HandlerOpts{})).Methods(http.MethodGet)

	api := r.PathPrefix(APIPrefix).Subrouter()
	if opts.GraphQL {
		gh, err := graph.New(e)
		if err != nil {
			return nil, fmt.Errorf("failed to build GraphQL schema: %w", err)
		}
		api.Handle("/graphql", gh).Methods(http.MethodGet, http.MethodPost)
		slog.Info("GraphQL interface enabled", slog.String("path", APIPrefix+"/graphql"))
	}
	if opts.REST {
		rest.New(e).Register(api)
		slog.Info("REST interface enabled", slog.Int("tables", len(e.ListTables())))
	}

	return &Server{
		addr: opts.Addr,
		http: &http.Server{
			Handler:           wrap(r),
			ReadHeaderTimeout: 10 * time.Second,
		},
	}, nil
}

// wrap adds panic recovery, access logging and allow-all CORS
func wrap(h http.Handler) http.Handler {
	h = handlers.RecoveryHandler(handlers.RecoveryLogger(recoveryLogger{}))(h)
	h = handlers.CustomLoggingHandler(io.Discard, h, accessLog)
	return handlers.CORS(
		handlers.AllowedOrigins([]string{"*"}),
		handlers.AllowedMethods([]string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions}),
		handlers.AllowedHeaders([]string{"Accept", "Authorization", "Content-Type", "X-Requested-With"}),
		handlers.AllowCredentials(),
	)(h)
}

func accessLog(_ io.Writer, p handlers.LogFormatterParams) {
	slog.Debug("http_request",
		slog.String("method", p.Request.Method),
		slog.String("path", p.URL.Path),
		slog.Int("status", p.StatusCode),
		slog.Int("size", p.Size),
		slog.Duration("duration", time.Since(p.TimeStamp)),
	)
}

type recoveryLogger struct{}

func (recoveryLogger) Println(v ...interface{}) {
	slog.Error("recovered from panic", slog.String("error", fmt.Sprint(v...)))
}

// Handler returns the root handler
func (s *Server) Handler() http.Handler {
	return s.http.Handler
}

// Run listens on the configured address and serves until ctx is done
func (s *Server) Run(ctx context.Context) error {
	listener, err := net.Listen("tcp", s.addr)
	if err != nil {
		return fmt.Errorf("failed to bind to %s: %w", s.addr, err)
	}
	return s.Serve(ctx, listener)
}

// Serve serves on listener until ctx is done, then shuts down gracefully
func (s *Server) Serve(ctx context.Context, listener net.Listener) error {
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		slog.Info("Running on", slog.String("addr", listener.Addr().String()))
		if err := s.http.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		slog.Info("Shutting down server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return s.http.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
