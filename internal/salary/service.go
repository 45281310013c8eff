package salary

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/ledgerly/ledgerly/internal/platform/httpx"
)

// Invalidator drops cached summaries after a mutation.
type Invalidator interface {
	Invalidate(ctx context.Context, ownerID uuid.UUID) error
}

// Service wraps the salary record business rules.
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

// Current returns the salary for the current calendar month, or nil when none
// is set. Callers must treat nil as amount 0, not an error.
func (s *Service) Current(ctx context.Context, ownerID uuid.UUID) (*Salary, error) {
	sal, err := s.repo.FindCurrent(ctx, ownerID, MonthStart(s.now()))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return sal, nil
}

// Set creates the salary record for the current month, rejecting duplicates.
func (s *Service) Set(ctx context.Context, ownerID uuid.UUID, amount float64) (*Salary, error) {
	if amount < 0 {
		return nil, httpx.Validation("Amount must not be negative")
	}

	monthStart := MonthStart(s.now())
	if _, err := s.repo.FindCurrent(ctx, ownerID, monthStart); err == nil {
		return nil, httpx.Conflict("Salary already set for this month")
	} else if !errors.Is(err, ErrNotFound) {
		return nil, err
	}

	sal := &Salary{
		ID:     uuid.New(),
		UserID: ownerID,
		Amount: amount,
		Month:  monthStart,
	}
	if err := s.repo.Create(ctx, sal); err != nil {
		// The unique index closes the race between concurrent inserts that
		// both pass the existence check.
		if errors.Is(err, ErrAlreadySet) {
			return nil, httpx.Conflict("Salary already set for this month")
		}
		return nil, err
	}
	s.invalidate(ctx, ownerID)
	return sal, nil
}

// Update mutates the current month's salary amount in place.
func (s *Service) Update(ctx context.Context, ownerID uuid.UUID, amount float64) (*Salary, error) {
	if amount < 0 {
		return nil, httpx.Validation("Amount must not be negative")
	}

	sal, err := s.repo.FindCurrent(ctx, ownerID, MonthStart(s.now()))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, httpx.NotFound("No salary found for current month")
		}
		return nil, err
	}

	updated, err := s.repo.UpdateAmount(ctx, sal.ID, amount)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, httpx.NotFound("No salary found for current month")
		}
		return nil, err
	}
	s.invalidate(ctx, ownerID)
	return updated, nil
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
