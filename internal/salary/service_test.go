package salary

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/ledgerly/ledgerly/internal/platform/httpx"
)

type memoryRepo struct {
	salaries map[uuid.UUID]*Salary
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{salaries: make(map[uuid.UUID]*Salary)}
}

func (r *memoryRepo) FindCurrent(ctx context.Context, ownerID uuid.UUID, monthStart time.Time) (*Salary, error) {
	var latest *Salary
	for _, sal := range r.salaries {
		if sal.UserID != ownerID || sal.Month.Before(monthStart) {
			continue
		}
		if latest == nil || sal.Month.After(latest.Month) {
			latest = sal
		}
	}
	if latest == nil {
		return nil, ErrNotFound
	}
	copied := *latest
	return &copied, nil
}

func (r *memoryRepo) Create(ctx context.Context, sal *Salary) error {
	for _, existing := range r.salaries {
		if existing.UserID == sal.UserID && existing.Month.Equal(sal.Month) {
			return ErrAlreadySet
		}
	}
	copied := *sal
	r.salaries[sal.ID] = &copied
	return nil
}

func (r *memoryRepo) UpdateAmount(ctx context.Context, id uuid.UUID, amount float64) (*Salary, error) {
	sal, ok := r.salaries[id]
	if !ok {
		return nil, ErrNotFound
	}
	sal.Amount = amount
	copied := *sal
	return &copied, nil
}

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

type failingInvalidator struct {
	err error
}

func (f *failingInvalidator) Invalidate(ctx context.Context, ownerID uuid.UUID) error {
	return f.err
}

func TestInvalidateFailureIsLoggedNotFatal(t *testing.T) {
	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, nil))
	cache := &failingInvalidator{err: errors.New("connection refused")}
	svc := NewService(newMemoryRepo(), cache, logger)

	sal, err := svc.Set(context.Background(), uuid.New(), 5000)
	require.NoError(t, err)
	require.NotNil(t, sal)
	require.Contains(t, logs.String(), "summary cache invalidate failed")
}

func TestMonthStart(t *testing.T) {
	loc := time.FixedZone("UTC+2", 2*3600)
	ts := time.Date(2024, 3, 15, 23, 59, 0, 0, loc)
	start := MonthStart(ts)
	require.Equal(t, time.Date(2024, 3, 1, 0, 0, 0, 0, loc), start)
}

func TestSetUpdateCurrentLifecycle(t *testing.T) {
	svc := NewService(newMemoryRepo(), nil, nil)
	svc.WithNow(fixedClock(time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)))
	owner := uuid.New()

	sal, err := svc.Set(context.Background(), owner, 5000)
	require.NoError(t, err)
	require.Equal(t, 5000.0, sal.Amount)
	require.Equal(t, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), sal.Month)

	_, err = svc.Set(context.Background(), owner, 6000)
	require.ErrorIs(t, err, httpx.ErrConflict)

	updated, err := svc.Update(context.Background(), owner, 5500)
	require.NoError(t, err)
	require.Equal(t, 5500.0, updated.Amount)

	current, err := svc.Current(context.Background(), owner)
	require.NoError(t, err)
	require.NotNil(t, current)
	require.Equal(t, 5500.0, current.Amount)
}

func TestCurrentNilWhenUnset(t *testing.T) {
	svc := NewService(newMemoryRepo(), nil, nil)
	current, err := svc.Current(context.Background(), uuid.New())
	require.NoError(t, err)
	require.Nil(t, current)
}

func TestUpdateWithoutRecord(t *testing.T) {
	svc := NewService(newMemoryRepo(), nil, nil)
	_, err := svc.Update(context.Background(), uuid.New(), 5000)
	require.ErrorIs(t, err, httpx.ErrNotFound)
}

func TestNegativeAmountRejected(t *testing.T) {
	svc := NewService(newMemoryRepo(), nil, nil)
	owner := uuid.New()

	_, err := svc.Set(context.Background(), owner, -1)
	require.ErrorIs(t, err, httpx.ErrValidation)

	_, err = svc.Update(context.Background(), owner, -1)
	require.ErrorIs(t, err, httpx.ErrValidation)
}

func TestLastMonthSalaryIsNotCurrent(t *testing.T) {
	repo := newMemoryRepo()
	svc := NewService(repo, nil, nil)
	owner := uuid.New()

	svc.WithNow(fixedClock(time.Date(2024, 2, 10, 0, 0, 0, 0, time.UTC)))
	_, err := svc.Set(context.Background(), owner, 4000)
	require.NoError(t, err)

	svc.WithNow(fixedClock(time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)))
	current, err := svc.Current(context.Background(), owner)
	require.NoError(t, err)
	require.Nil(t, current)

	// March is a fresh month, so Set succeeds again.
	sal, err := svc.Set(context.Background(), owner, 4200)
	require.NoError(t, err)
	require.Equal(t, 4200.0, sal.Amount)
}
