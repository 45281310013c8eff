package expense

import (
	"time"

	"github.com/google/uuid"
)

// Category is one of the fixed expense categories.
type Category string

// Categories is the single source of truth for the category set, in display
// order. Validation and any client selector must consume this list.
var Categories = []Category{
	"Food & Dining",
	"Transportation",
	"Housing",
	"Utilities",
	"Insurance",
	"Healthcare",
	"Entertainment",
	"Shopping",
	"Education",
	"Other",
}

// ValidCategory reports whether c belongs to the fixed set.
func ValidCategory(c Category) bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// Expense is a single spend record owned by exactly one user.
type Expense struct {
	ID          uuid.UUID `json:"id"`
	UserID      uuid.UUID `json:"user"`
	Description string    `json:"description"`
	Amount      float64   `json:"amount"`
	Date        time.Time `json:"date"`
	Category    Category  `json:"category"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}
