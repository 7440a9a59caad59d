package repository

import (
	"context"
	"sync"

	"github.com/jaekwang-park/todo-file-api/internal/model"
)

// MemoryTodoStore holds the encoded collection in memory. It goes through the
// same codec as the file store, so callers never share slices with it.
type MemoryTodoStore struct {
	mu   sync.Mutex
	data []byte
}

func NewMemoryTodo() *MemoryTodoStore {
	return &MemoryTodoStore{}
}

func (s *MemoryTodoStore) Load(ctx context.Context) ([]model.Todo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.data == nil {
		return []model.Todo{}, nil
	}
	return DecodeTodos(s.data)
}

func (s *MemoryTodoStore) Save(ctx context.Context, todos []model.Todo) error {
	data, err := EncodeTodos(todos)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.data = data
	s.mu.Unlock()
	return nil
}

// Bytes returns a copy of the stored document, or nil if nothing was saved.
func (s *MemoryTodoStore) Bytes() []byte {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.data == nil {
		return nil
	}
	out := make([]byte, len(s.data))
	copy(out, s.data)
	return out
}

var _ TodoStore = (*MemoryTodoStore)(nil)
