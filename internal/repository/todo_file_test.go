package repository_test

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/jaekwang-park/todo-file-api/internal/model"
	"github.com/jaekwang-park/todo-file-api/internal/repository"
)

func sampleTodos() []model.Todo {
	return []model.Todo{
		{ID: 1, Text: "buy milk", Completed: false, CreatedAt: "2025-01-01T00:00:00.000000Z"},
		{ID: 3, Text: "walk <dog> & cat", Completed: true, CreatedAt: "2025-01-02T10:00:00.5"},
	}
}

func TestFileTodoStore_LoadMissingFile(t *testing.T) {
	store := repository.NewFileTodo(filepath.Join(t.TempDir(), "todos.json"))

	todos, err := store.Load(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if todos == nil || len(todos) != 0 {
		t.Errorf("expected empty non-nil collection, got %#v", todos)
	}
}

func TestFileTodoStore_SaveAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "todos.json")
	store := repository.NewFileTodo(path)
	ctx := context.Background()

	if err := store.Save(ctx, sampleTodos()); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	got, err := store.Load(ctx)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	want := sampleTodos()
	if len(got) != len(want) {
		t.Fatalf("expected %d todos, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("todo[%d] = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestFileTodoStore_PrettyPrinted(t *testing.T) {
	path := filepath.Join(t.TempDir(), "todos.json")
	store := repository.NewFileTodo(path)

	todos := []model.Todo{{ID: 1, Text: "a", CreatedAt: "2025-01-01T00:00:00Z"}}
	if err := store.Save(context.Background(), todos); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}
	want := "[\n  {\n    \"id\": 1,\n    \"text\": \"a\",\n    \"completed\": false,\n    \"createdAt\": \"2025-01-01T00:00:00Z\"\n  }\n]\n"
	if string(data) != want {
		t.Errorf("unexpected file content:\n%s", data)
	}
}

func TestFileTodoStore_SaveEmptyWritesArray(t *testing.T) {
	path := filepath.Join(t.TempDir(), "todos.json")
	store := repository.NewFileTodo(path)

	if err := store.Save(context.Background(), nil); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}
	if string(bytes.TrimSpace(data)) != "[]" {
		t.Errorf("expected [], got %q", data)
	}
}

func TestFileTodoStore_RoundTripIsNoOp(t *testing.T) {
	path := filepath.Join(t.TempDir(), "todos.json")
	store := repository.NewFileTodo(path)
	ctx := context.Background()

	if err := store.Save(ctx, sampleTodos()); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	before, _ := os.ReadFile(path)

	loaded, err := store.Load(ctx)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if err := store.Save(ctx, loaded); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	after, _ := os.ReadFile(path)

	if !bytes.Equal(before, after) {
		t.Errorf("round trip changed content:\nbefore: %s\nafter: %s", before, after)
	}
}

func TestFileTodoStore_LoadErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"malformed json", `[{"id": 1,`},
		{"empty file", ``},
		{"wrong shape", `{"id": 1}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "todos.json")
			if err := os.WriteFile(path, []byte(tt.content), 0o644); err != nil {
				t.Fatalf("setup failed: %v", err)
			}

			_, err := repository.NewFileTodo(path).Load(context.Background())
			if !errors.Is(err, repository.ErrStorage) {
				t.Errorf("expected ErrStorage, got %v", err)
			}
		})
	}
}

func TestFileTodoStore_LoadNull(t *testing.T) {
	path := filepath.Join(t.TempDir(), "todos.json")
	if err := os.WriteFile(path, []byte("null"), 0o644); err != nil {
		t.Fatalf("setup failed: %v", err)
	}

	todos, err := repository.NewFileTodo(path).Load(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(todos) != 0 {
		t.Errorf("expected empty collection, got %d", len(todos))
	}
}

func TestFileTodoStore_SaveError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing-dir", "todos.json")
	store := repository.NewFileTodo(path)

	err := store.Save(context.Background(), sampleTodos())
	if !errors.Is(err, repository.ErrStorage) {
		t.Fatalf("expected ErrStorage, got %v", err)
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("expected underlying cause to be kept, got %v", err)
	}
}

func TestMemoryTodoStore(t *testing.T) {
	store := repository.NewMemoryTodo()
	ctx := context.Background()

	if store.Bytes() != nil {
		t.Fatal("expected nil bytes before first save")
	}

	todos, err := store.Load(ctx)
	if err != nil || len(todos) != 0 {
		t.Fatalf("expected empty collection, got %v, %v", todos, err)
	}

	if err := store.Save(ctx, sampleTodos()); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	loaded, err := store.Load(ctx)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	loaded[0].Text = "mutated"

	again, _ := store.Load(ctx)
	if again[0].Text != "buy milk" {
		t.Errorf("store shares state with callers: %q", again[0].Text)
	}

	want, _ := repository.EncodeTodos(sampleTodos())
	if !bytes.Equal(store.Bytes(), want) {
		t.Errorf("memory store bytes differ from codec output")
	}
}
