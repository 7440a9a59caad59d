package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/jaekwang-park/todo-file-api/internal/repository"
)

// HealthHandler reports ok when the todo store can be read.
type HealthHandler struct {
	store   repository.TodoStore
	timeout time.Duration
}

func NewHealthHandler(store repository.TodoStore) *HealthHandler {
	return &HealthHandler{store: store, timeout: 2 * time.Second}
}

func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		WriteError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	if _, err := h.store.Load(ctx); err != nil {
		slog.Warn("health check failed", "error", err)
		WriteJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
		return
	}

	WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
