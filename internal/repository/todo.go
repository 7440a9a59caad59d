package repository

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jaekwang-park/todo-file-api/internal/model"
)

// ErrStorage marks any failure to read, decode, encode or write the stored collection.
var ErrStorage = errors.New("storage error")

// TodoStore persists the whole todo collection as a single document.
// Load returns an empty collection when nothing has been stored yet.
// Save replaces the stored collection completely.
type TodoStore interface {
	Load(ctx context.Context) ([]model.Todo, error)
	Save(ctx context.Context, todos []model.Todo) error
}

// EncodeTodos serializes todos as a JSON array indented with two spaces.
func EncodeTodos(todos []model.Todo) ([]byte, error) {
	if todos == nil {
		todos = []model.Todo{}
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(todos); err != nil {
		return nil, fmt.Errorf("%w: encode todos: %w", ErrStorage, err)
	}
	return buf.Bytes(), nil
}

// DecodeTodos parses a stored document. A JSON null decodes to an empty collection.
func DecodeTodos(data []byte) ([]model.Todo, error) {
	var todos []model.Todo
	if err := json.Unmarshal(data, &todos); err != nil {
		return nil, fmt.Errorf("%w: decode todos: %w", ErrStorage, err)
	}
	if todos == nil {
		todos = []model.Todo{}
	}
	return todos, nil
}
