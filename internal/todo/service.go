package todo

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"

	"github.com/ledgerly/ledgerly/internal/platform/httpx"
)

// Service wraps the todo list business rules.
type Service struct {
	repo Repository
}

// NewService constructs a new Service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// UpdateInput carries a partial-field merge; nil fields keep their stored value.
type UpdateInput struct {
	Text      *string
	Completed *bool
}

// List returns all todos.
func (s *Service) List(ctx context.Context) ([]Todo, error) {
	return s.repo.List(ctx)
}

// Create validates and persists a new todo.
func (s *Service) Create(ctx context.Context, text string, completed bool) (*Todo, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, httpx.MissingFields("text")
	}

	item := &Todo{ID: uuid.New(), Text: text, Completed: completed}
	if err := s.repo.Create(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

// Update merges the supplied fields over the stored todo.
func (s *Service) Update(ctx context.Context, id uuid.UUID, input UpdateInput) (*Todo, error) {
	item, err := s.repo.Find(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, httpx.NotFound("Todo not found")
		}
		return nil, err
	}

	if input.Text != nil {
		text := strings.TrimSpace(*input.Text)
		if text == "" {
			return nil, httpx.MissingFields("text")
		}
		item.Text = text
	}
	if input.Completed != nil {
		item.Completed = *input.Completed
	}

	if err := s.repo.Update(ctx, item); err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, httpx.NotFound("Todo not found")
		}
		return nil, err
	}
	return item, nil
}

// Delete removes a todo.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, ErrNotFound) {
			return httpx.NotFound("Todo not found")
		}
		return err
	}
	return nil
}
