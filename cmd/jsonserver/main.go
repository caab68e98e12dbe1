package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pingcap/errors"

	"github.com/leengari/jsonserver/internal/catalog"
	"github.com/leengari/jsonserver/internal/config"
	"github.com/leengari/jsonserver/internal/engine"
	"github.com/leengari/jsonserver/internal/logging"
	"github.com/leengari/jsonserver/internal/metrics"
	"github.com/leengari/jsonserver/internal/seed"
	"github.com/leengari/jsonserver/internal/server"
	"github.com/leengari/jsonserver/internal/storage/writer"
)

func main() {
	cfg := config.NewConfig()
	if err := cfg.Parse(os.Args[1:]); err != nil {
		if errors.Cause(err) == flag.ErrHelp {
			os.Exit(0)
		}
		fmt.Fprintf(os.Stderr, "verifying flags error, %v. See 'jsonserver --help'.\n", err)
		os.Exit(2)
	}
	if cfg.PrintVersion() {
		config.PrintVersionInfo(os.Stdout)
		return
	}

	logger, closeFn, err := logging.SetupLogger(logging.Options{Level: cfg.LogLevel, SeqURL: cfg.SeqURL})
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to set up logging, %v\n", err)
		os.Exit(2)
	}
	defer closeFn()
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		slog.Error("jsonserver exited with error", slog.String("error", errors.ErrorStack(err)))
		stop()
		closeFn()
		os.Exit(1)
	}
	slog.Info("jsonserver stopped")
}

// run loads the data directory and serves it until ctx is done
func run(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	if cfg.Seed {
		n, err := seed.EnsureSeeded(cfg.DataPath, seed.Demo())
		if err != nil {
			return errors.Annotatef(err, "failed to seed %s", cfg.DataPath)
		}
		if n > 0 {
			slog.Info("Seeded demo tables", slog.String("path", cfg.DataPath), slog.Int("files", n))
		}
	}

	cat, err := catalog.Load(cfg.DataPath, writer.New())
	if err != nil {
		return errors.Annotatef(err, "failed to load tables from %s", cfg.DataPath)
	}
	if cat.Len() == 0 {
		slog.Warn("no tables found, nothing will be served", slog.String("path", cfg.DataPath))
	}

	opts := []engine.Option{
		engine.WithObserver(engine.NewLoggingObserver()),
		engine.WithObserver(metrics.NewObserver(cat)),
	}
	if cfg.Trace {
		tp, shutdown := logging.SetupTracing(logger)
		defer func() {
			if err := shutdown(context.Background()); err != nil {
				slog.Warn("failed to flush spans", slog.Any("error", err))
			}
		}()
		opts = append(opts, engine.WithTracerProvider(tp))
	}
	eng := engine.New(cat, opts...)

	if cfg.MetricsAddr != "" {
		pc := &metrics.PushClient{
			Addr:     cfg.MetricsAddr,
			Interval: time.Duration(cfg.MetricsInterval) * time.Second,
			Port:     cfg.Port,
		}
		go pc.Start(ctx)
	}

	srv, err := server.New(eng, server.Options{
		Addr:    cfg.Addr(),
		REST:    cfg.ServesREST(),
		GraphQL: cfg.ServesGraphQL(),
	})
	if err != nil {
		return errors.Trace(err)
	}

	slog.Info("Application ready!",
		slog.String("data_path", cfg.DataPath),
		slog.Any("tables", eng.ListTables()),
		slog.String("server_type", cfg.ServerType),
	)
	return errors.Trace(srv.Run(ctx))
}
