package todo

import (
	"context"
	"sort"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/ledgerly/ledgerly/internal/platform/httpx"
)

type memoryRepo struct {
	todos map[uuid.UUID]*Todo
	seq   int
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{todos: make(map[uuid.UUID]*Todo)}
}

func (r *memoryRepo) List(ctx context.Context) ([]Todo, error) {
	out := []Todo{}
	for _, item := range r.todos {
		out = append(out, *item)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (r *memoryRepo) Create(ctx context.Context, item *Todo) error {
	r.seq++
	item.CreatedAt = time.Unix(int64(r.seq), 0)
	item.UpdatedAt = item.CreatedAt
	copied := *item
	r.todos[item.ID] = &copied
	return nil
}

func (r *memoryRepo) Find(ctx context.Context, id uuid.UUID) (*Todo, error) {
	item, ok := r.todos[id]
	if !ok {
		return nil, ErrNotFound
	}
	copied := *item
	return &copied, nil
}

func (r *memoryRepo) Update(ctx context.Context, item *Todo) error {
	if _, ok := r.todos[item.ID]; !ok {
		return ErrNotFound
	}
	copied := *item
	r.todos[item.ID] = &copied
	return nil
}

func (r *memoryRepo) Delete(ctx context.Context, id uuid.UUID) error {
	if _, ok := r.todos[id]; !ok {
		return ErrNotFound
	}
	delete(r.todos, id)
	return nil
}

func TestCreateRequiresText(t *testing.T) {
	svc := NewService(newMemoryRepo())

	_, err := svc.Create(context.Background(), "  ", false)
	require.ErrorIs(t, err, httpx.ErrValidation)

	item, err := svc.Create(context.Background(), "  buy milk  ", false)
	require.NoError(t, err)
	require.Equal(t, "buy milk", item.Text)
	require.False(t, item.Completed)
}

func TestListInCreationOrder(t *testing.T) {
	svc := NewService(newMemoryRepo())

	for _, text := range []string{"first", "second", "third"} {
		_, err := svc.Create(context.Background(), text, false)
		require.NoError(t, err)
	}

	list, err := svc.List(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 3)
	require.Equal(t, "first", list[0].Text)
	require.Equal(t, "third", list[2].Text)
}

func TestUpdateMergesPartialFields(t *testing.T) {
	svc := NewService(newMemoryRepo())

	item, err := svc.Create(context.Background(), "buy milk", false)
	require.NoError(t, err)

	done := true
	updated, err := svc.Update(context.Background(), item.ID, UpdateInput{Completed: &done})
	require.NoError(t, err)
	require.True(t, updated.Completed)
	require.Equal(t, "buy milk", updated.Text)

	empty := "  "
	_, err = svc.Update(context.Background(), item.ID, UpdateInput{Text: &empty})
	require.ErrorIs(t, err, httpx.ErrValidation)
}

func TestUpdateUnknownTodo(t *testing.T) {
	svc := NewService(newMemoryRepo())

	done := true
	_, err := svc.Update(context.Background(), uuid.New(), UpdateInput{Completed: &done})
	require.ErrorIs(t, err, httpx.ErrNotFound)
}

func TestDelete(t *testing.T) {
	svc := NewService(newMemoryRepo())

	item, err := svc.Create(context.Background(), "buy milk", false)
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), item.ID))
	require.ErrorIs(t, svc.Delete(context.Background(), item.ID), httpx.ErrNotFound)
}
