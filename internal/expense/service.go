package expense

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ledgerly/ledgerly/internal/platform/httpx"
)

// Invalidator drops cached summaries after a mutation.
type Invalidator interface {
	Invalidate(ctx context.Context, ownerID uuid.UUID) error
}

// Service wraps the expense ledger business rules.
type Service struct {
	repo   Repository
	cache  Invalidator
	logger *slog.Logger
	now    func() time.Time
}

// NewService constructs a new Service. cache and logger may be nil.
func NewService(repo Repository, cache Invalidator, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{repo: repo, cache: cache, logger: logger, now: time.Now}
}

// WithNow overrides the service clock for testing.
func (s *Service) WithNow(fn func() time.Time) {
	if fn != nil {
		s.now = fn
	}
}

// CreateInput carries the fields for a new expense.
type CreateInput struct {
	Description string
	Amount      float64
	Date        *time.Time
	Category    Category
}

// UpdateInput carries a partial-field merge; nil fields keep their stored value.
type UpdateInput struct {
	Description *string
	Amount      *float64
	Date        *time.Time
	Category    *Category
}

// List returns all expenses owned by ownerID, most recent first.
func (s *Service) List(ctx context.Context, ownerID uuid.UUID) ([]Expense, error) {
	return s.repo.ListByOwner(ctx, ownerID)
}

// Create validates and persists a new expense. Date defaults to request time.
func (s *Service) Create(ctx context.Context, ownerID uuid.UUID, input CreateInput) (*Expense, error) {
	exp := Expense{
		ID:          uuid.New(),
		UserID:      ownerID,
		Description: strings.TrimSpace(input.Description),
		Amount:      input.Amount,
		Category:    input.Category,
		Date:        s.now(),
	}
	if input.Date != nil {
		exp.Date = *input.Date
	}
	if err := validate(&exp); err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, &exp); err != nil {
		return nil, err
	}
	s.invalidate(ctx, ownerID)
	return &exp, nil
}

// Update merges the supplied fields over the stored record and revalidates
// the result. Ownership is enforced by the id+owner lookup.
func (s *Service) Update(ctx context.Context, ownerID, expenseID uuid.UUID, input UpdateInput) (*Expense, error) {
	exp, err := s.repo.FindByIDAndOwner(ctx, expenseID, ownerID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, httpx.NotFound("Expense not found")
		}
		return nil, err
	}

	if input.Description != nil {
		exp.Description = strings.TrimSpace(*input.Description)
	}
	if input.Amount != nil {
		exp.Amount = *input.Amount
	}
	if input.Date != nil {
		exp.Date = *input.Date
	}
	if input.Category != nil {
		exp.Category = *input.Category
	}
	if err := validate(exp); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, exp); err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, httpx.NotFound("Expense not found")
		}
		return nil, err
	}
	s.invalidate(ctx, ownerID)
	return exp, nil
}

// Delete removes an expense under the same ownership rule as Update.
func (s *Service) Delete(ctx context.Context, ownerID, expenseID uuid.UUID) error {
	if err := s.repo.Delete(ctx, expenseID, ownerID); err != nil {
		if errors.Is(err, ErrNotFound) {
			return httpx.NotFound("Expense not found")
		}
		return err
	}
	s.invalidate(ctx, ownerID)
	return nil
}

// invalidate bumps the owner's summary cache version. The mutation has
// already committed, so a failed bump only risks a stale summary until the
// TTL; it is logged, not returned.
func (s *Service) invalidate(ctx context.Context, ownerID uuid.UUID) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx, ownerID); err != nil {
		s.logger.Warn("summary cache invalidate failed",
			slog.String("owner", ownerID.String()), slog.Any("error", err))
	}
}

func validate(exp *Expense) error {
	var missing []string
	if exp.Description == "" {
		missing = append(missing, "description")
	}
	if exp.Category == "" {
		missing = append(missing, "category")
	}
	if len(missing) > 0 {
		return httpx.MissingFields(missing...)
	}
	if exp.Amount < 0 {
		return httpx.Validation("Amount must not be negative")
	}
	if !ValidCategory(exp.Category) {
		return httpx.Validation("Invalid category")
	}
	return nil
}
