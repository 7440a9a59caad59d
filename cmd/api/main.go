package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/pflag"

	"github.com/jaekwang-park/todo-file-api/internal/config"
	todohttp "github.com/jaekwang-park/todo-file-api/internal/http"
	"github.com/jaekwang-park/todo-file-api/internal/repository"
	"github.com/jaekwang-park/todo-file-api/internal/service"
)

func main() {
	// Initial logger at info level; reconfigured after config load
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	if err := run(context.Background(), os.Args[1:]); err != nil {
		logger.Error("application failed", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string) error {
	cfg, err := config.LoadWithFlags(args)
	if err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil
		}
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.ParseLogLevel(),
	}))
	slog.SetDefault(logger)

	logger.Info("config loaded",
		"env", cfg.AppEnv,
		"port", cfg.ServerPort,
		"store", cfg.StoreDriver,
		"write_lock", cfg.WriteLock,
		"metrics", cfg.MetricsEnabled,
		"log_level", cfg.LogLevel,
	)

	store, closeStore, err := openStore(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer closeStore()

	var opts []service.Option
	if cfg.WriteLock {
		opts = append(opts, service.WithWriteLock())
	} else {
		logger.Warn("write lock disabled: concurrent writes may overwrite each other")
	}
	todoSvc := service.NewTodoService(store, opts...)

	var registry *prometheus.Registry
	if cfg.MetricsEnabled {
		registry = prometheus.NewRegistry()
		registry.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
	}

	// HTTP Server
	srv := todohttp.NewServer(cfg.ServerPort, logger, todoSvc, store, registry)

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server failed", "error", err)
			stop()
		}
	}()

	logger.Info("server starting", "port", cfg.ServerPort)

	<-ctx.Done()
	logger.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}

	logger.Info("server stopped gracefully")
	return nil
}

func openStore(ctx context.Context, cfg config.Config, logger *slog.Logger) (repository.TodoStore, func(), error) {
	switch cfg.StoreDriver {
	case config.StoreDriverPostgres:
		db, err := repository.NewDB(cfg.DB.DSN())
		if err != nil {
			return nil, nil, err
		}
		logger.Info("database connected")

		store := repository.NewPostgresTodo(db, repository.DefaultCollection)
		if err := store.EnsureSchema(ctx); err != nil {
			db.Close()
			return nil, nil, err
		}
		return store, func() { db.Close() }, nil
	case config.StoreDriverFile:
		logger.Info("using file store", "path", cfg.TodosFile)
		return repository.NewFileTodo(cfg.TodosFile), func() {}, nil
	default:
		return nil, nil, fmt.Errorf("unsupported store driver %q", cfg.StoreDriver)
	}
}
