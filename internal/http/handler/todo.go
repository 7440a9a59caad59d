package handler

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/jaekwang-park/todo-file-api/internal/middleware"
	"github.com/jaekwang-park/todo-file-api/internal/service"
)

const TodosPath = "/api/todos"

type TodoHandler struct {
	svc *service.TodoService
}

func NewTodoHandler(svc *service.TodoService) *TodoHandler {
	return &TodoHandler{svc: svc}
}

// ServeHTTP routes /api/todos and /api/todos/{id}
func (h *TodoHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, TodosPath)

	// /api/todos/{id}
	if path != "" {
		id, ok := parseTodoID(strings.TrimPrefix(path, "/"))
		if !ok || !strings.HasPrefix(path, "/") {
			WriteError(w, http.StatusNotFound, "not found")
			return
		}

		switch r.Method {
		case http.MethodPut:
			h.handleUpdate(w, r, id)
		case http.MethodDelete:
			h.handleDelete(w, r, id)
		case http.MethodOptions:
			writeOptions(w, http.MethodPut, http.MethodDelete)
		default:
			WriteError(w, http.StatusMethodNotAllowed, "method not allowed")
		}
		return
	}

	// /api/todos
	switch r.Method {
	case http.MethodGet:
		h.handleList(w, r)
	case http.MethodPost:
		h.handleCreate(w, r)
	case http.MethodOptions:
		writeOptions(w, http.MethodGet, http.MethodPost)
	default:
		WriteError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

// writeOptions answers an OPTIONS request that is not a CORS preflight.
func writeOptions(w http.ResponseWriter, methods ...string) {
	w.Header().Set("Allow", strings.Join(append(methods, http.MethodOptions), ", "))
	w.WriteHeader(http.StatusOK)
}

// parseTodoID accepts unsigned decimal ids only; anything else is an unknown route.
func parseTodoID(s string) (int, bool) {
	if strings.Contains(s, "/") {
		return 0, false
	}
	id, err := strconv.ParseUint(s, 10, 63)
	if err != nil {
		return 0, false
	}
	return int(id), true
}

// decodeBody fills dst from a JSON body. Missing or malformed bodies leave dst
// at its zero value so absent fields fall back to their defaults.
func decodeBody[T any](r *http.Request, dst *T) {
	if r.Body == nil {
		return
	}
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		if !errors.Is(err, io.EOF) {
			slog.Debug("ignoring malformed request body",
				"error", err,
				"path", r.URL.Path,
				"request_id", middleware.GetRequestID(r.Context()),
			)
		}
		var zero T
		*dst = zero
	}
}

func (h *TodoHandler) handleList(w http.ResponseWriter, r *http.Request) {
	todos, err := h.svc.List(r.Context())
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	WriteJSON(w, http.StatusOK, todos)
}

type createTodoRequest struct {
	Text *string `json:"text,omitempty"`
}

func (h *TodoHandler) handleCreate(w http.ResponseWriter, r *http.Request) {
	var req createTodoRequest
	decodeBody(r, &req)

	todo, err := h.svc.Create(r.Context(), service.CreateTodoInput{Text: req.Text})
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	WriteJSON(w, http.StatusCreated, todo)
}

type updateTodoRequest struct {
	Text      *string `json:"text,omitempty"`
	Completed *bool   `json:"completed,omitempty"`
}

func (h *TodoHandler) handleUpdate(w http.ResponseWriter, r *http.Request, id int) {
	var req updateTodoRequest
	decodeBody(r, &req)

	input := service.UpdateTodoInput{
		Text:      req.Text,
		Completed: req.Completed,
	}

	todo, err := h.svc.Update(r.Context(), id, input)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	WriteJSON(w, http.StatusOK, todo)
}

func (h *TodoHandler) handleDelete(w http.ResponseWriter, r *http.Request, id int) {
	if err := h.svc.Delete(r.Context(), id); err != nil {
		handleServiceError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func handleServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, service.ErrNotFound):
		WriteError(w, http.StatusNotFound, "Todo not found")
	default:
		slog.Error("todo request failed",
			"error", err,
			"method", r.Method,
			"path", r.URL.Path,
			"request_id", middleware.GetRequestID(r.Context()),
		)
		WriteError(w, http.StatusInternalServerError, "internal server error")
	}
}
