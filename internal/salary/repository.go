package salary

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ledgerly/ledgerly/internal/platform/db"
)

var (
	// ErrNotFound indicates no salary record matched the lookup.
	ErrNotFound = errors.New("salary: not found")
	// ErrAlreadySet indicates the (owner, month) uniqueness constraint rejected an insert.
	ErrAlreadySet = errors.New("salary: already set for month")
)

// Repository defines persistence operations for salary records.
type Repository interface {
	FindCurrent(ctx context.Context, ownerID uuid.UUID, monthStart time.Time) (*Salary, error)
	Create(ctx context.Context, sal *Salary) error
	UpdateAmount(ctx context.Context, id uuid.UUID, amount float64) (*Salary, error)
}

// PGRepository implements Repository using PostgreSQL.
type PGRepository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a PostgreSQL repository.
func NewRepository(pool *pgxpool.Pool) *PGRepository {
	return &PGRepository{pool: pool}
}

// FindCurrent returns the latest salary whose month is on or after monthStart.
func (r *PGRepository) FindCurrent(ctx context.Context, ownerID uuid.UUID, monthStart time.Time) (*Salary, error) {
	const query = `
		SELECT id, user_id, amount, month, created_at, updated_at
		FROM salaries WHERE user_id = $1 AND month >= $2
		ORDER BY month DESC LIMIT 1`

	var sal Salary
	err := r.pool.QueryRow(ctx, query, ownerID, monthStart).
		Scan(&sal.ID, &sal.UserID, &sal.Amount, &sal.Month, &sal.CreatedAt, &sal.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &sal, nil
}

// Create persists a new salary record. The check and insert run in one
// transaction: the row lock serializes writers against an existing month,
// and the unique index still catches two inserts racing on a fresh month.
func (r *PGRepository) Create(ctx context.Context, sal *Salary) error {
	const existsQuery = `
		SELECT id FROM salaries WHERE user_id = $1 AND month = $2 FOR UPDATE`
	const insertQuery = `
		INSERT INTO salaries (id, user_id, amount, month, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $5)`

	now := time.Now().UTC()
	sal.CreatedAt = now
	sal.UpdatedAt = now
	return db.WithTx(ctx, r.pool, func(tx pgx.Tx) error {
		var existing uuid.UUID
		err := tx.QueryRow(ctx, existsQuery, sal.UserID, sal.Month).Scan(&existing)
		if err == nil {
			return ErrAlreadySet
		}
		if !errors.Is(err, pgx.ErrNoRows) {
			return err
		}

		if _, err := tx.Exec(ctx, insertQuery, sal.ID, sal.UserID, sal.Amount, sal.Month, now); err != nil {
			var pgErr *pgconn.PgError
			if errors.As(err, &pgErr) && pgErr.Code == "23505" {
				return ErrAlreadySet
			}
			return err
		}
		return nil
	})
}

// UpdateAmount mutates the amount of an existing record in place.
func (r *PGRepository) UpdateAmount(ctx context.Context, id uuid.UUID, amount float64) (*Salary, error) {
	const query = `
		UPDATE salaries SET amount = $2, updated_at = $3
		WHERE id = $1
		RETURNING id, user_id, amount, month, created_at, updated_at`

	var sal Salary
	err := r.pool.QueryRow(ctx, query, id, amount, time.Now().UTC()).
		Scan(&sal.ID, &sal.UserID, &sal.Amount, &sal.Month, &sal.CreatedAt, &sal.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &sal, nil
}

var _ Repository = (*PGRepository)(nil)
