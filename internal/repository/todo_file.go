package repository

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/jaekwang-park/todo-file-api/internal/model"
)

// FileTodoStore keeps the collection in a single JSON file.
// There is no locking; concurrent writers race and the last Save wins.
type FileTodoStore struct {
	path string
}

func NewFileTodo(path string) *FileTodoStore {
	return &FileTodoStore{path: path}
}

func (s *FileTodoStore) Path() string {
	return s.path
}

func (s *FileTodoStore) Load(ctx context.Context) ([]model.Todo, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []model.Todo{}, nil
		}
		return nil, fmt.Errorf("%w: read %s: %w", ErrStorage, s.path, err)
	}

	todos, err := DecodeTodos(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", s.path, err)
	}
	return todos, nil
}

func (s *FileTodoStore) Save(ctx context.Context, todos []model.Todo) error {
	data, err := EncodeTodos(todos)
	if err != nil {
		return err
	}
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("%w: write %s: %w", ErrStorage, s.path, err)
	}
	return nil
}

// ensure compile-time interface compliance
var _ TodoStore = (*FileTodoStore)(nil)
