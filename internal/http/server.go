package http

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/jaekwang-park/todo-file-api/internal/middleware"
	"github.com/jaekwang-park/todo-file-api/internal/repository"
	"github.com/jaekwang-park/todo-file-api/internal/service"
)

type Server struct {
	httpServer *http.Server
	logger     *slog.Logger
}

// NewServer builds the HTTP server. When registry is nil no metrics are collected.
func NewServer(port string, logger *slog.Logger, todoSvc *service.TodoService, store repository.TodoStore, registry *prometheus.Registry) *Server {
	var gatherer prometheus.Gatherer
	if registry != nil {
		gatherer = registry
	}
	var h http.Handler = NewRouter(todoSvc, store, gatherer)

	// Apply middleware chain: request id -> logging -> recovery -> metrics -> cors -> router
	h = middleware.CORS()(h)
	if registry != nil {
		h = middleware.NewMetrics(registry).Middleware(h)
	}
	h = middleware.Recovery(logger)(h)
	h = middleware.Logging(logger)(h)
	h = middleware.RequestID(h)

	return &Server{
		httpServer: &http.Server{
			Addr:         fmt.Sprintf(":%s", port),
			Handler:      h,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 10 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		logger: logger,
	}
}

func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

func (s *Server) Start() error {
	s.logger.Info("starting server", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down server")
	return s.httpServer.Shutdown(ctx)
}
