package summary

import (
	"context"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/ledgerly/ledgerly/internal/expense"
	"github.com/ledgerly/ledgerly/internal/salary"
)

// ExpenseSource provides the owner's expense list.
type ExpenseSource interface {
	List(ctx context.Context, ownerID uuid.UUID) ([]expense.Expense, error)
}

// SalarySource provides the owner's current salary, nil when unset.
type SalarySource interface {
	Current(ctx context.Context, ownerID uuid.UUID) (*salary.Salary, error)
}

// Service computes cached financial summaries.
type Service struct {
	expenses ExpenseSource
	salaries SalarySource
	cache    *Cache
	now      func() time.Time
}

// NewService constructs a new Service. cache may be nil to disable caching.
func NewService(expenses ExpenseSource, salaries SalarySource, cache *Cache) *Service {
	return &Service{expenses: expenses, salaries: salaries, cache: cache, now: time.Now}
}

// WithNow overrides the service clock for testing.
func (s *Service) WithNow(fn func() time.Time) {
	if fn != nil {
		s.now = fn
	}
}

// Summarize loads the owner's expenses and salary and reduces them for the
// given window, serving from cache when the owner's data has not changed.
func (s *Service) Summarize(ctx context.Context, ownerID uuid.UUID, window Window) (Summary, error) {
	now := s.now()

	var result Summary
	err := s.cache.FetchJSON(ctx, ownerID, window, now, &result, func(ctx context.Context) (Summary, error) {
		var (
			expenses []expense.Expense
			current  *salary.Salary
		)

		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() error {
			var err error
			expenses, err = s.expenses.List(gctx, ownerID)
			return err
		})
		g.Go(func() error {
			var err error
			current, err = s.salaries.Current(gctx, ownerID)
			return err
		})
		if err := g.Wait(); err != nil {
			return Summary{}, err
		}

		salaryAmount := 0.0
		if current != nil {
			salaryAmount = current.Amount
		}
		return Compute(expenses, salaryAmount, window, now), nil
	})
	return result, err
}
