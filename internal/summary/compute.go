// Package summary derives financial overview figures from an expense list
// and the current salary. Computation is pure and recomputed on demand.
package summary

import (
	"time"

	"github.com/ledgerly/ledgerly/internal/expense"
	"github.com/ledgerly/ledgerly/internal/platform/httpx"
	"github.com/ledgerly/ledgerly/internal/salary"
)

// Window selects the relative time range of expenses to aggregate.
type Window string

const (
	WindowAll     Window = "all"
	WindowMonth   Window = "month"
	Window3Months Window = "3months"
	Window6Months Window = "6months"
	WindowYear    Window = "year"
)

// ParseWindow validates a window query value; empty means all.
func ParseWindow(s string) (Window, error) {
	switch Window(s) {
	case "", WindowAll:
		return WindowAll, nil
	case WindowMonth, Window3Months, Window6Months, WindowYear:
		return Window(s), nil
	}
	return "", httpx.Validation("Invalid time window")
}

// Summary is the derived view over a filtered expense list plus the salary.
type Summary struct {
	Window         Window                       `json:"window"`
	TotalIncome    float64                      `json:"totalIncome"`
	TotalExpenses  float64                      `json:"totalExpenses"`
	Savings        float64                      `json:"savings"`
	CategoryTotals map[expense.Category]float64 `json:"categoryTotals"`
}

// InWindow reports whether date falls inside the window relative to now.
// The month window covers the current calendar month inclusive of both ends;
// the rolling windows have an open upper bound.
func InWindow(date time.Time, w Window, now time.Time) bool {
	switch w {
	case WindowMonth:
		start := salary.MonthStart(now)
		return !date.Before(start) && date.Before(start.AddDate(0, 1, 0))
	case Window3Months:
		return !date.Before(now.AddDate(0, -3, 0))
	case Window6Months:
		return !date.Before(now.AddDate(0, -6, 0))
	case WindowYear:
		return !date.Before(now.AddDate(0, -12, 0))
	default:
		return true
	}
}

// Compute reduces the filtered expense list into overview figures. Savings
// may be negative; the sign only drives display.
func Compute(expenses []expense.Expense, salaryAmount float64, w Window, now time.Time) Summary {
	sum := Summary{
		Window:         w,
		TotalIncome:    salaryAmount,
		CategoryTotals: map[expense.Category]float64{},
	}
	for _, exp := range expenses {
		if !InWindow(exp.Date, w, now) {
			continue
		}
		sum.TotalExpenses += exp.Amount
		sum.CategoryTotals[exp.Category] += exp.Amount
	}
	sum.Savings = sum.TotalIncome - sum.TotalExpenses
	return sum
}
