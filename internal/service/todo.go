package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/jaekwang-park/todo-file-api/internal/model"
	"github.com/jaekwang-park/todo-file-api/internal/repository"
)

// CreateTodoInput carries the optional fields of a create request.
// A nil Text creates a todo with empty text.
type CreateTodoInput struct {
	Text *string
}

// UpdateTodoInput carries the optional fields of an update request.
// Nil fields keep their current value.
type UpdateTodoInput struct {
	Text      *string
	Completed *bool
}

type Option func(*TodoService)

// WithWriteLock serializes Create, Update and Delete inside this process so
// concurrent requests cannot lose each other's writes.
func WithWriteLock() Option {
	return func(s *TodoService) {
		s.writeMu = &sync.Mutex{}
	}
}

func WithClock(now func() time.Time) Option {
	return func(s *TodoService) {
		s.now = now
	}
}

// TodoService loads the whole collection on every call and, for mutations,
// writes the whole collection back.
type TodoService struct {
	store   repository.TodoStore
	now     func() time.Time
	writeMu *sync.Mutex
}

func NewTodoService(store repository.TodoStore, opts ...Option) *TodoService {
	s := &TodoService{store: store, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *TodoService) lock() func() {
	if s.writeMu == nil {
		return func() {}
	}
	s.writeMu.Lock()
	return s.writeMu.Unlock
}

func (s *TodoService) List(ctx context.Context) ([]model.Todo, error) {
	todos, err := s.store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load todos: %w", err)
	}
	return todos, nil
}

func (s *TodoService) Create(ctx context.Context, input CreateTodoInput) (model.Todo, error) {
	defer s.lock()()

	todos, err := s.store.Load(ctx)
	if err != nil {
		return model.Todo{}, fmt.Errorf("failed to load todos: %w", err)
	}

	todo := model.Todo{
		ID:        model.NextTodoID(todos),
		Completed: false,
		CreatedAt: model.FormatCreatedAt(s.now()),
	}
	if input.Text != nil {
		todo.Text = *input.Text
	}

	todos = append(todos, todo)
	if err := s.store.Save(ctx, todos); err != nil {
		return model.Todo{}, fmt.Errorf("failed to create todo: %w", err)
	}

	return todo, nil
}

func (s *TodoService) Update(ctx context.Context, id int, input UpdateTodoInput) (model.Todo, error) {
	defer s.lock()()

	todos, err := s.store.Load(ctx)
	if err != nil {
		return model.Todo{}, fmt.Errorf("failed to load todos: %w", err)
	}

	for i := range todos {
		if todos[i].ID != id {
			continue
		}

		if input.Completed != nil {
			todos[i].Completed = *input.Completed
		}
		if input.Text != nil {
			todos[i].Text = *input.Text
		}

		if err := s.store.Save(ctx, todos); err != nil {
			return model.Todo{}, fmt.Errorf("failed to update todo: %w", err)
		}
		return todos[i], nil
	}

	return model.Todo{}, ErrNotFound
}

// Delete removes every todo with the given id. The collection is saved even
// when nothing matched.
func (s *TodoService) Delete(ctx context.Context, id int) error {
	defer s.lock()()

	todos, err := s.store.Load(ctx)
	if err != nil {
		return fmt.Errorf("failed to load todos: %w", err)
	}

	kept := todos[:0]
	for _, t := range todos {
		if t.ID != id {
			kept = append(kept, t)
		}
	}

	if err := s.store.Save(ctx, kept); err != nil {
		return fmt.Errorf("failed to delete todo: %w", err)
	}
	return nil
}
