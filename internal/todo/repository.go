package todo

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrNotFound indicates no todo matched the lookup.
var ErrNotFound = errors.New("todo: not found")

// Repository defines persistence operations for the todo list.
type Repository interface {
	List(ctx context.Context) ([]Todo, error)
	Create(ctx context.Context, item *Todo) error
	Find(ctx context.Context, id uuid.UUID) (*Todo, error)
	Update(ctx context.Context, item *Todo) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// PGRepository implements Repository using PostgreSQL.
type PGRepository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a PostgreSQL repository.
func NewRepository(pool *pgxpool.Pool) *PGRepository {
	return &PGRepository{pool: pool}
}

// List returns all todos in creation order.
func (r *PGRepository) List(ctx context.Context) ([]Todo, error) {
	const query = `
		SELECT id, text, completed, created_at, updated_at
		FROM todos ORDER BY created_at`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	todos := []Todo{}
	for rows.Next() {
		var item Todo
		if err := rows.Scan(&item.ID, &item.Text, &item.Completed, &item.CreatedAt, &item.UpdatedAt); err != nil {
			return nil, err
		}
		todos = append(todos, item)
	}
	return todos, rows.Err()
}

// Create persists a new todo.
func (r *PGRepository) Create(ctx context.Context, item *Todo) error {
	const query = `
		INSERT INTO todos (id, text, completed, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $4)`

	now := time.Now().UTC()
	item.CreatedAt = now
	item.UpdatedAt = now
	_, err := r.pool.Exec(ctx, query, item.ID, item.Text, item.Completed, now)
	return err
}

// Find fetches a todo by id.
func (r *PGRepository) Find(ctx context.Context, id uuid.UUID) (*Todo, error) {
	const query = `
		SELECT id, text, completed, created_at, updated_at
		FROM todos WHERE id = $1`

	var item Todo
	err := r.pool.QueryRow(ctx, query, id).
		Scan(&item.ID, &item.Text, &item.Completed, &item.CreatedAt, &item.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &item, nil
}

// Update rewrites the mutable fields of an existing todo.
func (r *PGRepository) Update(ctx context.Context, item *Todo) error {
	const query = `
		UPDATE todos SET text = $2, completed = $3, updated_at = $4
		WHERE id = $1`

	item.UpdatedAt = time.Now().UTC()
	tag, err := r.pool.Exec(ctx, query, item.ID, item.Text, item.Completed, item.UpdatedAt)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes a todo.
func (r *PGRepository) Delete(ctx context.Context, id uuid.UUID) error {
	const query = `DELETE FROM todos WHERE id = $1`

	tag, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

var _ Repository = (*PGRepository)(nil)
