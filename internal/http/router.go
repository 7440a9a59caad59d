package http

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/jaekwang-park/todo-file-api/internal/http/handler"
	"github.com/jaekwang-park/todo-file-api/internal/middleware"
	"github.com/jaekwang-park/todo-file-api/internal/repository"
	"github.com/jaekwang-park/todo-file-api/internal/service"
)

// NewRouter registers the todo API and health probe. A nil gatherer leaves
// /metrics unregistered.
func NewRouter(todoSvc *service.TodoService, store repository.TodoStore, gatherer prometheus.Gatherer) http.Handler {
	mux := http.NewServeMux()

	mux.Handle("/health", handler.NewHealthHandler(store))

	todoHandler := handler.NewTodoHandler(todoSvc)
	mux.Handle(handler.TodosPath, todoHandler)
	mux.Handle(handler.TodosPath+"/", todoHandler)

	if gatherer != nil {
		mux.Handle("/metrics", middleware.MetricsHandler(gatherer))
	}

	return mux
}
