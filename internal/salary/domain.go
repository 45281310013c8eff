package salary

import (
	"time"

	"github.com/google/uuid"
)

// Salary is the per-calendar-month income record, at most one per user and month.
type Salary struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"user"`
	Amount    float64   `json:"amount"`
	Month     time.Time `json:"month"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// MonthStart returns the first instant of the calendar month containing t,
// in t's location. "Current month" is resolved in local server time.
func MonthStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}
