package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"github.com/jaekwang-park/todo-file-api/internal/model"
)

const DefaultCollection = "default"

// undefined_table
const pqUndefinedTable = pq.ErrorCode("42P01")

// PostgresTodoStore keeps the encoded collection in one row of todo_collections.
type PostgresTodoStore struct {
	db   *sql.DB
	name string
}

func NewPostgresTodo(db *sql.DB, name string) *PostgresTodoStore {
	if name == "" {
		name = DefaultCollection
	}
	return &PostgresTodoStore{db: db, name: name}
}

func (s *PostgresTodoStore) EnsureSchema(ctx context.Context) error {
	query := `
		CREATE TABLE IF NOT EXISTS todo_collections (
			name       TEXT PRIMARY KEY,
			body       TEXT NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`

	if _, err := s.db.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("failed to create todo_collections: %w", err)
	}
	return nil
}

func (s *PostgresTodoStore) Load(ctx context.Context) ([]model.Todo, error) {
	query := `SELECT body FROM todo_collections WHERE name = $1`

	var body string
	err := s.db.QueryRowContext(ctx, query, s.name).Scan(&body)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) || isUndefinedTable(err) {
			return []model.Todo{}, nil
		}
		return nil, fmt.Errorf("%w: select collection %q: %w", ErrStorage, s.name, err)
	}

	return DecodeTodos([]byte(body))
}

func (s *PostgresTodoStore) Save(ctx context.Context, todos []model.Todo) error {
	data, err := EncodeTodos(todos)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO todo_collections (name, body, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (name) DO UPDATE SET body = EXCLUDED.body, updated_at = now()`

	if _, err := s.db.ExecContext(ctx, query, s.name, string(data)); err != nil {
		return fmt.Errorf("%w: upsert collection %q: %w", ErrStorage, s.name, err)
	}
	return nil
}

func isUndefinedTable(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == pqUndefinedTable
}

// ensure compile-time interface compliance
var _ TodoStore = (*PostgresTodoStore)(nil)
