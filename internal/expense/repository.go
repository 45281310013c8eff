package expense

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrNotFound indicates no expense matched the id+owner lookup.
var ErrNotFound = errors.New("expense: not found")

// Repository defines persistence operations for the expense ledger.
type Repository interface {
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]Expense, error)
	Create(ctx context.Context, exp *Expense) error
	FindByIDAndOwner(ctx context.Context, id, ownerID uuid.UUID) (*Expense, error)
	Update(ctx context.Context, exp *Expense) error
	Delete(ctx context.Context, id, ownerID uuid.UUID) error
}

// PGRepository implements Repository using PostgreSQL.
type PGRepository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a PostgreSQL repository.
func NewRepository(pool *pgxpool.Pool) *PGRepository {
	return &PGRepository{pool: pool}
}

// ListByOwner returns all expenses owned by ownerID, most recent first.
func (r *PGRepository) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]Expense, error) {
	const query = `
		SELECT id, user_id, description, amount, date, category, created_at, updated_at
		FROM expenses WHERE user_id = $1 ORDER BY date DESC`

	rows, err := r.pool.Query(ctx, query, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	expenses := []Expense{}
	for rows.Next() {
		var exp Expense
		if err := rows.Scan(&exp.ID, &exp.UserID, &exp.Description, &exp.Amount, &exp.Date, &exp.Category, &exp.CreatedAt, &exp.UpdatedAt); err != nil {
			return nil, err
		}
		expenses = append(expenses, exp)
	}
	return expenses, rows.Err()
}

// Create persists a new expense.
func (r *PGRepository) Create(ctx context.Context, exp *Expense) error {
	const query = `
		INSERT INTO expenses (id, user_id, description, amount, date, category, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $7)`

	now := time.Now().UTC()
	exp.CreatedAt = now
	exp.UpdatedAt = now
	_, err := r.pool.Exec(ctx, query, exp.ID, exp.UserID, exp.Description, exp.Amount, exp.Date, exp.Category, now)
	return err
}

// FindByIDAndOwner fetches an expense by the combined id+owner key. Looking
// up by id alone would leak other owners' records.
func (r *PGRepository) FindByIDAndOwner(ctx context.Context, id, ownerID uuid.UUID) (*Expense, error) {
	const query = `
		SELECT id, user_id, description, amount, date, category, created_at, updated_at
		FROM expenses WHERE id = $1 AND user_id = $2`

	var exp Expense
	err := r.pool.QueryRow(ctx, query, id, ownerID).
		Scan(&exp.ID, &exp.UserID, &exp.Description, &exp.Amount, &exp.Date, &exp.Category, &exp.CreatedAt, &exp.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &exp, nil
}

// Update rewrites the mutable fields of an existing expense.
func (r *PGRepository) Update(ctx context.Context, exp *Expense) error {
	const query = `
		UPDATE expenses SET description = $3, amount = $4, date = $5, category = $6, updated_at = $7
		WHERE id = $1 AND user_id = $2`

	exp.UpdatedAt = time.Now().UTC()
	tag, err := r.pool.Exec(ctx, query, exp.ID, exp.UserID, exp.Description, exp.Amount, exp.Date, exp.Category, exp.UpdatedAt)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes an expense under the same ownership rule as Update.
func (r *PGRepository) Delete(ctx context.Context, id, ownerID uuid.UUID) error {
	const query = `DELETE FROM expenses WHERE id = $1 AND user_id = $2`

	tag, err := r.pool.Exec(ctx, query, id, ownerID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

var _ Repository = (*PGRepository)(nil)
